package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dhrions/ha-public-transports/internal"
	"github.com/dhrions/ha-public-transports/registry"
	"github.com/dhrions/ha-public-transports/store"
	"github.com/dhrions/ha-public-transports/wizard"
)

// DefaultFlowTTL is how long an untouched wizard run is kept
const DefaultFlowTTL = 30 * time.Minute

// session is one wizard run; its lock serialises submissions so a run never
// has two discoveries in flight. entry is set once the run has been saved.
type session struct {
	mu    sync.Mutex
	flow  *wizard.Flow
	entry *store.Entry

	lastSeen time.Time // guarded by Server.mu
}

// Option configures a Server
type Option func(*Server)

// WithFlowTTL sets how long an untouched wizard run survives
func WithFlowTTL(ttl time.Duration) Option {
	return func(s *Server) {
		if ttl > 0 {
			s.flowTTL = ttl
		}
	}
}

// Server hosts wizard runs and the entry store over HTTP
type Server struct {
	registry   *registry.Registry
	discoverer wizard.Discoverer
	store      *store.Store

	mu      sync.Mutex
	flows   map[string]*session
	flowTTL time.Duration
	now     func() time.Time

	httpServer *http.Server
}

// New wires a server; nothing listens until Start
func New(reg *registry.Registry, d wizard.Discoverer, st *store.Store, opts ...Option) *Server {
	s := &Server{
		registry:   reg,
		discoverer: d,
		store:      st,
		flows:      map[string]*session{},
		flowTTL:    DefaultFlowTTL,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Router builds the gin engine serving the API
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	api := r.Group("/api")
	api.GET("/health", s.handleHealth)
	api.GET("/cities", s.handleCities)
	api.POST("/flows", s.handleCreateFlow)
	api.GET("/flows/:id", s.handleGetFlow)
	api.POST("/flows/:id", s.handleSubmitFlow)
	api.DELETE("/flows/:id", s.handleDeleteFlow)
	api.GET("/entries", s.handleListEntries)
	api.GET("/entries/:id", s.handleGetEntry)
	return r
}

// Start listens on port in the background
func (s *Server) Start(port int) {
	addr := fmt.Sprintf(":%d", port)
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()
	log.Printf("server listening on %s", addr)
}

// Shutdown stops the listener, waiting for in-flight requests
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}

// HandleGracefulShutdown blocks until SIGINT/SIGTERM, then shuts s down
func HandleGracefulShutdown(s *Server) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs
	log.Printf("shutdown signal received")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.Shutdown(ctx); err != nil {
		log.Printf("server shutdown error: %v", err)
	} else {
		log.Printf("server shut down successfully")
	}
}

// lookup returns a live run and marks it as seen
func (s *Server) lookup(id string) (*session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	s.evictStaleLocked(now)
	sess, ok := s.flows[id]
	if ok {
		sess.lastSeen = now
	}
	return sess, ok
}

// evictStaleLocked drops runs untouched for longer than flowTTL.
// s.mu must be held.
func (s *Server) evictStaleLocked(now time.Time) {
	for id, sess := range s.flows {
		if now.Sub(sess.lastSeen) > s.flowTTL {
			delete(s.flows, id)
			internal.Debugf("flow %s expired after %v idle", id, s.flowTTL)
		}
	}
}

func (s *Server) forget(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.flows[id]
	delete(s.flows, id)
	return ok
}

func (s *Server) activeFlows() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.evictStaleLocked(s.now())
	return len(s.flows)
}

func (s *Server) newFlow() (string, *session) {
	id := uuid.NewString()
	sess := &session{flow: wizard.New(s.registry, s.discoverer)}
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	s.evictStaleLocked(now)
	sess.lastSeen = now
	s.flows[id] = sess
	return id, sess
}
