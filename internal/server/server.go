// Package server exposes the conversion pipeline over HTTP.
//
// Routes:
//
//	GET  /healthz                     liveness probe
//	GET  /formats                     supported output formats
//	POST /convert/{format}            convert the graph in the request body
//	GET  /graphs                      names of stored snapshots
//	GET  /graphs/{name}/tree.{format} convert a stored snapshot
//
// Conversion options are read from the query string: vocabulary,
// namespace (repeatable), html_base, curie_keys, detailed and, for
// uploads, base. A request with Cache-Control: no-cache bypasses cached
// artifacts.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/rdftree/pkg/pipeline"
)

// DefaultMaxBodyBytes bounds uploaded graphs when no limit is configured.
const DefaultMaxBodyBytes = 10 << 20

// Lister enumerates stored snapshots.
type Lister interface {
	List(ctx context.Context) ([]string, error)
}

// Server serves conversions from one shared [pipeline.Runner].
type Server struct {
	runner   *pipeline.Runner
	defaults pipeline.Options
	logger   *log.Logger
	lister   Lister
	maxBody  int64
}

// Option configures a Server.
type Option func(*Server)

// WithLister enables GET /graphs.
func WithLister(l Lister) Option { return func(s *Server) { s.lister = l } }

// WithMaxBodyBytes bounds the size of uploaded graphs.
func WithMaxBodyBytes(n int64) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxBody = n
		}
	}
}

// New creates a server. defaults supplies the options that requests do
// not set themselves, typically read from the configuration file.
func New(runner *pipeline.Runner, defaults pipeline.Options, logger *log.Logger, opts ...Option) *Server {
	if logger == nil {
		logger = runner.Logger
	}
	s := &Server{
		runner:   runner,
		defaults: defaults,
		logger:   logger,
		maxBody:  DefaultMaxBodyBytes,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the HTTP handler with all routes registered.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.requestID)
	r.Use(s.logRequests)

	r.Get("/healthz", s.handleHealth)
	r.Get("/formats", s.handleFormats)
	r.Post("/convert/{format}", s.handleConvert)
	r.Get("/graphs", s.handleGraphs)
	r.Get("/graphs/{name}/tree.{format}", s.handleTree)
	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	s.logger.Info("listening", "addr", addr)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		s.logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}
