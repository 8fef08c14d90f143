// Package api exposes stored trees over HTTP and WebSocket.
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"
	"github.com/rskv-p/treekit/config"
	"github.com/rskv-p/treekit/constant"
	"github.com/rskv-p/treekit/pkg/x_log"
	"github.com/rskv-p/treekit/store"
)

// Server serves the tree API.
type Server struct {
	store     *store.Store
	cfg       config.HTTPConfig
	branching int

	nc      *nats.Conn
	subject string

	log zerolog.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithBus enables POST /trees/{id}/publish/{order} on subject.
func WithBus(nc *nats.Conn, subject string) Option {
	return func(s *Server) {
		s.nc = nc
		s.subject = subject
	}
}

// WithBranching sets the default branching factor for built trees.
func WithBranching(k int) Option {
	return func(s *Server) {
		if k > 0 {
			s.branching = k
		}
	}
}

// NewServer creates a Server over st.
func NewServer(st *store.Store, cfg config.HTTPConfig, opts ...Option) *Server {
	s := &Server{
		store:     st,
		cfg:       cfg,
		branching: constant.DefaultBranching,
		log:       x_log.New("api"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Router builds the chi route tree.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	if s.cfg.JWTSecret != "" {
		r.Post("/auth/login", s.handleLogin)
	}

	r.Group(func(r chi.Router) {
		if s.cfg.JWTSecret != "" {
			r.Use(JWTMiddleware(s.cfg.JWTSecret))
		}

		r.Route("/trees", func(r chi.Router) {
			r.Post("/", s.handleCreate)
			r.Get("/", s.handleList)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.handleGet)
				r.Delete("/", s.handleDelete)
				r.Get("/walk/{order}", s.handleWalk)
				r.Get("/stats", s.handleStats)
				r.Get("/contains", s.handleContains)
				r.Get("/between", s.handleBetween)
				r.Post("/insert", s.handleInsert)
				r.Get("/stream/{order}", s.handleStream)
				r.Post("/publish/{order}", s.handlePublish)
			})
		})
	})
	return r
}

// ListenAndServe serves until ctx is cancelled, then shuts down.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:        s.cfg.Addr,
		Handler:     s.Router(),
		ReadTimeout: s.cfg.ReadTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", s.cfg.Addr).Bool("auth", s.cfg.JWTSecret != "").Msg("api listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	s.log.Info().Msg("api stopped")
	return nil
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		l := s.log.With().Str("req_id", middleware.GetReqID(r.Context())).Logger()
		next.ServeHTTP(ww, r.WithContext(x_log.WithLogger(r.Context(), &l)))

		l.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("elapsed", time.Since(start)).
			Msg("request")
	})
}
