// Package server provides the HTTP API for Shirabe.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/akiyama/shirabe/internal/comments"
	"github.com/akiyama/shirabe/internal/config"
	"github.com/akiyama/shirabe/internal/mail"
	"github.com/akiyama/shirabe/internal/models"
)

// Searcher is the subset of the search engine the HTTP layer needs.
type Searcher interface {
	Search(ctx context.Context, query, language string) (*models.SearchResponse, error)
	TagCloud(ctx context.Context, language string) ([]models.TagCount, error)
}

// Server is the HTTP server for the Shirabe API.
type Server struct {
	searcher Searcher
	comments comments.Repository
	mailer   mail.Sender
	config   *config.ServerConfig
	logger   *zap.Logger
	server   *http.Server
}

// NewServer creates a server with the given dependencies. mailer may be nil
// when no mail service is configured; the contact endpoint then responds 503.
func NewServer(
	searcher Searcher,
	commentRepo comments.Repository,
	mailer mail.Sender,
	cfg *config.ServerConfig,
	logger *zap.Logger,
) *Server {
	return &Server{
		searcher: searcher,
		comments: commentRepo,
		mailer:   mailer,
		config:   cfg,
		logger:   logger,
	}
}

// Router builds the chi router with all API routes.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(middleware.Compress(5))

	r.Get("/api/search", s.handleSearch)
	r.Get("/api/tags", s.handleTags)
	r.Route("/api/posts/{postID}/comments", func(r chi.Router) {
		r.Get("/", s.handleListComments)
		r.Post("/", s.handleCreateComment)
	})
	r.Post("/api/contact", s.handleContact)
	r.Get("/health", s.handleHealth)

	return r
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	s.server = &http.Server{
		Addr:    addr,
		Handler: s.Router(),
	}
	s.logger.Info("Starting server", zap.String("addr", addr))
	return s.server.ListenAndServe()
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
