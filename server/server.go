// Package server exposes the lexer, parser and interpreter over HTTP, along
// with stored sheets that programs can be run against.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/teksel-io/teksel/interpreter"
	"github.com/teksel-io/teksel/sheet"
	"github.com/teksel-io/teksel/store"
)

const (
	// DefaultTimeout bounds the handling of one request.
	DefaultTimeout = 10 * time.Second

	// DefaultMaxBodySize limits request bodies to 1 MiB.
	DefaultMaxBodySize = 1 << 20
)

// Server serves the teksel HTTP API.
type Server struct {
	store          store.Store
	logger         zerolog.Logger
	rows           int
	recursionLimit int
	timeout        time.Duration
	maxBodySize    int64
	router         chi.Router
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger used for request logs.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithRows sets the height of grids created for requests without cells.
func WithRows(rows int) Option {
	return func(s *Server) {
		if rows > 0 {
			s.rows = rows
		}
	}
}

// WithRecursionLimit sets the recursion limit of every evaluation.
func WithRecursionLimit(limit int) Option {
	return func(s *Server) {
		if limit > 0 {
			s.recursionLimit = limit
		}
	}
}

// WithTimeout bounds the handling of each request.
func WithTimeout(timeout time.Duration) Option {
	return func(s *Server) {
		if timeout > 0 {
			s.timeout = timeout
		}
	}
}

// WithMaxBodySize limits the size of request bodies.
func WithMaxBodySize(size int64) Option {
	return func(s *Server) {
		if size > 0 {
			s.maxBodySize = size
		}
	}
}

// New returns a server backed by the given store.
func New(st store.Store, opts ...Option) *Server {
	s := &Server{
		store:          st,
		logger:         zerolog.Nop(),
		rows:           sheet.DefaultRows,
		recursionLimit: interpreter.DefaultRecursionLimit,
		timeout:        DefaultTimeout,
		maxBodySize:    DefaultMaxBodySize,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(s.timeout))

	r.Post("/lexer", s.handleLexer)
	r.Post("/parser", s.handleParser)
	r.Post("/interpret", s.handleInterpret)
	r.Get("/examples", s.handleExamples)
	r.Route("/sheets", func(r chi.Router) {
		r.Post("/", s.handleCreateSheet)
		r.Get("/{id}", s.handleGetSheet)
		r.Post("/{id}/run", s.handleRunSheet)
	})
	return r
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 5 * time.Second,
	}
	errc := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", addr).Msg("listening")
		errc <- srv.ListenAndServe()
	}()
	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
