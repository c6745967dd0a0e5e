// Package api serves the generated artifacts over HTTP: Clash providers,
// sing-box rule-set sources, compiled binaries, a JSON index and Prometheus
// metrics.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vkotov/rulesmith/internal/config"
	"github.com/vkotov/rulesmith/internal/log"
)

// Server is the artifact HTTP server.
type Server struct {
	router     *chi.Mux
	httpServer *http.Server
	cfg        *config.Config
}

// NewServer creates the artifact server bound to addr.
func NewServer(cfg *config.Config, addr string) *Server {
	s := &Server{
		cfg:    cfg,
		router: chi.NewRouter(),
	}

	s.router.Use(RecoveryMiddleware)
	s.router.Use(LoggingMiddleware)

	s.setupRoutes()

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

func (s *Server) setupRoutes() {
	s.router.Get("/clash/{name:[a-z][a-z0-9_-]*}.yaml", s.handleArtifact("clash", s.cfg.GetAbsClashDir(), ".yaml", "text/yaml; charset=utf-8"))
	s.router.Get("/singbox/{name:[a-z][a-z0-9_-]*}.json", s.handleArtifact("singbox", s.cfg.GetAbsSingboxDir(), ".json", "application/json"))
	s.router.Get("/srs/{name:[a-z][a-z0-9_-]*}.srs", s.handleArtifact("srs", s.cfg.GetAbsSRSDir(), ".srs", "application/octet-stream"))

	s.router.Get("/api/v1/index", s.handleIndex)

	s.router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	s.router.Handle("/metrics", promhttp.Handler())
}

// Start runs the server until the listener fails or Stop is called.
func (s *Server) Start() error {
	log.Infof("Starting artifact server on %s", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Stop shuts the server down gracefully.
func (s *Server) Stop(ctx context.Context) error {
	log.Infof("Stopping artifact server")
	return s.httpServer.Shutdown(ctx)
}

// Router exposes the chi router, used by tests.
func (s *Server) Router() http.Handler {
	return s.router
}
