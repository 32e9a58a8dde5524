// Package server provides the HTTP API for meibo.
package server

import (
	"context"
	"fmt"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/hyperjump/meibo/internal/config"
	"github.com/hyperjump/meibo/internal/directory"
)

// Server is the HTTP server for the meibo API. The engine reference is
// atomic so a feed reload can swap the snapshot under live traffic.
type Server struct {
	engine   atomic.Pointer[directory.Engine]
	sessions *SessionManager
	config   *config.ServerConfig
	logger   *zap.Logger
	limiter  *rate.Limiter
	server   *http.Server
}

// NewServer creates a server answering queries from engine.
func NewServer(engine *directory.Engine, cfg *config.ServerConfig, logger *zap.Logger) *Server {
	s := &Server{
		sessions: NewSessionManager(engine, time.Duration(cfg.SessionTTLMinutes)*time.Minute, logger),
		config:   cfg,
		logger:   logger,
	}
	s.engine.Store(engine)
	if cfg.RateLimitRPS > 0 {
		s.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst)
	}
	return s
}

// SwapEngine replaces the snapshot served to clients. Open sessions keep
// their filters and pick up the new snapshot on their next query.
func (s *Server) SwapEngine(engine *directory.Engine) {
	s.engine.Store(engine)
	s.sessions.SwapEngine(engine)
	s.logger.Info("engine swapped", zap.Int("members", engine.Len()))
}

// Engine returns the snapshot currently being served.
func (s *Server) Engine() *directory.Engine {
	return s.engine.Load()
}

// Sessions exposes the session manager.
func (s *Server) Sessions() *SessionManager {
	return s.sessions
}

func (s *Server) router() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(middleware.Compress(5))
	if s.limiter != nil {
		r.Use(s.rateLimit)
	}

	r.Post("/api/v1/search", s.handleSearch)
	r.Post("/api/v1/search/semantic", s.handleSemanticSearch)
	r.Get("/api/v1/members", s.handleMembers)
	r.Get("/api/v1/members/{username}", s.handleMember)
	r.Get("/api/v1/members/{username}/similar", s.handleSimilar)
	r.Get("/api/v1/tags/trending", s.handleTrendingTags)
	r.Get("/api/v1/suggestions", s.handleSuggestions)
	r.Get("/api/v1/filters", s.handleFilterOptions)
	r.Get("/api/v1/stats", s.handleStats)
	r.Post("/api/v1/sessions", s.handleSessionCreate)
	r.Get("/api/v1/sessions/{id}", s.handleSessionGet)
	r.Delete("/api/v1/sessions/{id}", s.handleSessionDelete)
	r.Post("/api/v1/sessions/{id}/search", s.handleSessionSearch)
	r.Post("/api/v1/sessions/{id}/sort", s.handleSessionSort)
	r.Post("/api/v1/sessions/{id}/refresh", s.handleSessionRefresh)
	r.Post("/api/v1/sessions/{id}/clear", s.handleSessionClear)
	r.Get("/health", s.handleHealth)
	return r
}

func (s *Server) rateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.limiter.Allow() {
			s.respondError(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	s.sessions.StartSweeper()
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	s.server = &http.Server{
		Addr:    addr,
		Handler: s.router(),
	}
	s.logger.Info("starting server", zap.String("addr", addr))
	return s.server.ListenAndServe()
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	s.sessions.Stop()
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
