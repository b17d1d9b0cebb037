// Package server exposes the generation pipeline over HTTP.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"coolfinds/internal/config"
	"coolfinds/internal/core"
	"coolfinds/internal/logger"
	"coolfinds/internal/media"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// ArticleSynthesizer builds an article on demand.
type ArticleSynthesizer interface {
	Synthesize(ctx context.Context, topic, category, style string) (core.Article, error)
}

// ProductGenerator produces a featured-products batch.
type ProductGenerator interface {
	Generate(ctx context.Context) []core.FeaturedProduct
}

// AutonomousRunner executes one full autonomous run.
type AutonomousRunner interface {
	Run(ctx context.Context) core.RunResult
}

// Store is the slice of the key-value store the HTTP surface needs.
type Store interface {
	List() ([]string, error)
	Delete(key string) error
	ListArticles() ([]core.Article, error)
	DeleteArticlesBySlug(slug string) (int, error)
	PutFeaturedProducts(products []core.FeaturedProduct) error
	FeaturedProductsJSON() (string, error)
}

// Server represents the HTTP server
type Server struct {
	router     *chi.Mux
	httpServer *http.Server
	store      Store
	media      media.Store
	articles   ArticleSynthesizer
	products   ProductGenerator
	runner     AutonomousRunner
	config     config.Server
	log        *slog.Logger
}

// New creates a new HTTP server instance
func New(cfg config.Server, store Store, mediaStore media.Store, articles ArticleSynthesizer, products ProductGenerator, runner AutonomousRunner) *Server {
	s := &Server{
		router:   chi.NewRouter(),
		store:    store,
		media:    mediaStore,
		articles: articles,
		products: products,
		runner:   runner,
		config:   cfg,
		log:      logger.Get(),
	}

	s.setupMiddleware()
	s.setupRoutes()

	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return s
}

// setupMiddleware configures middleware for the server
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Recoverer)

	// The public site is served from a different origin, so the API stays
	// wide open, matching the production deployment.
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))
}

// setupRoutes configures routes for the server
func (s *Server) setupRoutes() {
	s.router.Route("/api", func(r chi.Router) {
		r.Post("/generate-article", s.handleGenerateArticle)
		r.Get("/articles", s.handleListArticles)
		r.Get("/products", s.handleGetProducts)

		r.Route("/admin", func(r chi.Router) {
			r.Post("/generate-products", s.handleGenerateProducts)
			r.Post("/run-autonomous", s.handleRunAutonomous)
			r.Post("/clear-articles", s.handleClearArticles)
			r.Post("/delete-article", s.handleDeleteArticle)
			r.Get("/list-images", s.handleListImages)
		})
	})

	s.router.Get("/media/{key}", s.handleServeImage)

	s.router.Get("/", s.handleRoot)
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.log.Info("Starting HTTP server",
		"addr", s.httpServer.Addr,
		"read_timeout", s.config.ReadTimeout,
		"write_timeout", s.config.WriteTimeout,
	)

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server failed to start: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info("Shutting down HTTP server gracefully...")

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	s.log.Info("HTTP server stopped")
	return nil
}

// Router returns the chi router instance (useful for testing)
func (s *Server) Router() *chi.Mux {
	return s.router
}
