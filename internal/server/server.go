// Package server exposes the expression engine over HTTP: function catalog
// and parsing endpoints, plus an in-memory dataset store that expressions
// are applied against.
package server

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/datacharts-labs/datacharts/internal/engine"
)

// Server is the HTTP front end.
type Server struct {
	processor *engine.Processor
	store     *DatasetStore
	logger    *slog.Logger
	http      *http.Server
}

// Config holds server configuration.
type Config struct {
	// Addr is the listen address, host:port.
	Addr string
	// Processor is the engine facade. Required.
	Processor *engine.Processor
	// Logger is the structured logger (optional, uses discard if nil)
	Logger *slog.Logger
}

// New creates a server with its routes mounted.
func New(cfg Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	s := &Server{
		processor: cfg.Processor,
		store:     NewDatasetStore(),
		logger:    logger,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handleHealth)
		r.Get("/environment", s.handleEnvironment)

		r.Route("/functions", func(r chi.Router) {
			r.Get("/", s.handleListFunctions)
			r.Get("/categories", s.handleFunctionCategories)
			r.Post("/parse", s.handleParse)
			r.Post("/validate", s.handleValidate)
			r.Post("/analyze", s.handleAnalyze)
			r.Get("/{name}", s.handleFunctionInfo)
		})

		r.Route("/datasets", func(r chi.Router) {
			r.Post("/", s.handleCreateDataset)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.handleGetDataset)
				r.Post("/apply", s.handleApply)
				r.Post("/validate", s.handleValidateWithData)
			})
		})
	})

	s.http = &http.Server{
		Addr:              cfg.Addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Start runs the server until the context is canceled or ListenAndServe
// fails.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", "addr", s.http.Addr)
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.http.Shutdown(shutdownCtx)
	}
}

// Handler returns the mounted router, for tests.
func (s *Server) Handler() http.Handler {
	return s.http.Handler
}

// logRequests logs each request at debug with method, path, and duration.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start))
	})
}
