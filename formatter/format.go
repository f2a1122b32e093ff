package formatter

import (
	"fmt"
	"strings"
)

// Formats lists the accepted format names
var Formats = []string{"json", "yaml"}

// Format serializes v in the named format (json or yaml, case-insensitive)
func Format(v any, format string) ([]byte, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "json":
		return BuildJSON(v)
	case "yaml", "yml":
		return BuildYAML(v)
	default:
		return nil, fmt.Errorf("unknown format %q (want one of %s)", format, strings.Join(Formats, ", "))
	}
}
