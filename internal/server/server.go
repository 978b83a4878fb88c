// Package server exposes the render pipeline over HTTP.
//
// Routes:
//
//	GET  /healthz   liveness and build version
//	POST /render    scene in, encoded artifact out
//	POST /measure   scene in, measured size as JSON
//	POST /tree      scene in, node-link diagram of the view tree
//
// Scene bodies may be TOML, YAML or JSON, chosen by the "scene" query
// parameter or the request Content-Type. Every response carries an
// X-Request-ID header.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/viewstack/pkg/buildinfo"
	"github.com/matzehuels/viewstack/pkg/pipeline"
)

// Defaults for [Options].
const (
	DefaultMaxBody        = 1 << 20
	DefaultRequestTimeout = 30 * time.Second
)

// Options configures a Server.
type Options struct {
	// MaxBody caps scene request bodies in bytes.
	MaxBody int64
	// RequestTimeout bounds each request, including PDF conversion.
	RequestTimeout time.Duration
}

// Server serves render requests. It is safe for concurrent use; each request
// builds its own view tree and surface.
type Server struct {
	runner *pipeline.Runner
	logger *log.Logger
	opts   Options
	router chi.Router
}

// New creates a server backed by runner.
func New(runner *pipeline.Runner, logger *log.Logger, opts Options) *Server {
	if opts.MaxBody <= 0 {
		opts.MaxBody = DefaultMaxBody
	}
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = DefaultRequestTimeout
	}
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{runner: runner, logger: logger, opts: opts}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(requestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(s.opts.RequestTimeout))

	r.Get("/healthz", s.handleHealth)
	r.Group(func(r chi.Router) {
		r.Use(middleware.AllowContentType("application/json", "application/toml", "application/yaml", "application/x-yaml", "text/yaml", "text/plain"))
		r.Post("/render", s.handleRender)
		r.Post("/measure", s.handleMeasure)
		r.Post("/tree", s.handleTree)
	})
	return r
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is canceled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr, "version", buildinfo.String())
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		s.logger.Info("shutting down")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return ctx.Err()
	}
}
