package internal

import (
	"log"
	"os"
	"sync/atomic"
)

var debug atomic.Bool

func InitLogging(debugEnabled bool) {
	log.SetOutput(os.Stdout)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	debug.Store(debugEnabled)
}

// DebugEnabled reports whether diagnostic logging is on
func DebugEnabled() bool {
	return debug.Load()
}

// Debugf logs only when diagnostic logging was enabled by InitLogging
func Debugf(format string, args ...any) {
	if debug.Load() {
		log.Printf("[debug] "+format, args...)
	}
}
