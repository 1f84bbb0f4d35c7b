// Package api exposes the estimation engine over HTTP
package api

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	log "github.com/sirupsen/logrus"

	"github.com/FixedOPS-AI/fixedops-ai-demo/pkg/api/handlers"
	"github.com/FixedOPS-AI/fixedops-ai-demo/pkg/api/middleware"
	"github.com/FixedOPS-AI/fixedops-ai-demo/pkg/config"
	"github.com/FixedOPS-AI/fixedops-ai-demo/pkg/engine"
)

// Server represents the HTTP API server. It shares one engine across
// requests; the catalog store inside it is safe for concurrent reads.
type Server struct {
	config *config.Config
	engine *engine.Engine
	router *chi.Mux
	server *http.Server
}

// New creates a new API server around an already-built engine.
func New(cfg *config.Config, eng *engine.Engine) *Server {
	s := &Server{
		config: cfg,
		engine: eng,
		router: chi.NewRouter(),
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// Router exposes the configured handler, mainly for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

func (s *Server) setupMiddleware() {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(chimiddleware.Recoverer)

	// Estimation is in-memory work; nothing should take longer than this.
	s.router.Use(chimiddleware.Timeout(30 * time.Second))

	origins := s.config.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
}

func (s *Server) setupRoutes() {
	s.router.Get("/health", handlers.NewHealthHandler(s.engine).Handle)

	s.router.Route("/api", func(r chi.Router) {
		estimate := handlers.NewEstimateHandler(s.engine)
		r.Post("/estimate", estimate.Handle)
		r.Post("/estimate/export", estimate.HandleExport)

		r.Post("/decode", handlers.NewDecodeHandler(s.engine).Handle)

		catalog := handlers.NewCatalogHandler(s.engine)
		r.Get("/catalog/version", catalog.Version)
		r.Get("/catalog/parts", catalog.Parts)
		r.Post("/catalog/reload", catalog.Reload)
		r.Post("/catalog/import", catalog.Import)

		r.Post("/explain", handlers.NewExplainHandler(s.engine).Handle)
		r.Post("/diff", handlers.NewDiffHandler(s.engine).Handle)

		r.Get("/scenarios", handlers.Scenarios)
		r.Get("/policy", handlers.NewPolicyHandler(s.engine).Handle)

		auditHandler := handlers.NewAuditHandler(s.engine)
		r.Get("/audit", auditHandler.List)
		r.Get("/audit/{runID}", auditHandler.Get)
	})
}

// Start starts the HTTP server and blocks until an interrupt.
func (s *Server) Start(port string) error {
	s.server = &http.Server{
		Addr:         ":" + port,
		Handler:      s.router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.WithField("port", port).Info("Starting HTTP server")
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Info("Server exited")
	return nil
}

// Stop stops the HTTP server gracefully.
func (s *Server) Stop() error {
	if s.server == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	return s.server.Shutdown(ctx)
}
