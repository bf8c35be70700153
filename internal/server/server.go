// Package server exposes the report as a small HTTP dashboard.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/KaramelBytes/edareport/internal/dataset"
	"github.com/KaramelBytes/edareport/internal/render"
	"github.com/KaramelBytes/edareport/internal/report"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// Config wires the server to its data.
type Config struct {
	Addr        string
	DataPath    string
	ImagePath   string
	PreviewRows int
	Chart       render.Options
	// Reload drops the cached table before every request so edits to the
	// data file show up without a restart.
	Reload bool
}

// Server serves the report page, chart SVGs and artifact JSON.
type Server struct {
	cfg    Config
	cache  *dataset.Cache
	logger *zap.Logger
	router *chi.Mux
}

// New builds a server reading through cache.
func New(cfg Config, cache *dataset.Cache, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{cfg: cfg, cache: cache, logger: logger, router: chi.NewRouter()}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(s.requestLogger)
	s.router.Use(middleware.Recoverer)
}

func (s *Server) setupRoutes() {
	s.router.Get("/", s.handleIndex)
	s.router.Get("/charts/{id}.svg", s.handleChart)
	s.router.Get("/api/artifacts", s.handleArtifacts)
	s.router.Get("/image", s.handleImage)
	s.router.Get("/healthz", s.handleHealth)
}

// ListenAndServe runs until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("dashboard listening", zap.String("addr", s.cfg.Addr), zap.String("data", s.cfg.DataPath))
		errCh <- srv.ListenAndServe()
	}()
	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		defer func() {
			s.logger.Info("request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Duration("elapsed", time.Since(start)),
				zap.String("request_id", middleware.GetReqID(r.Context())))
		}()
		next.ServeHTTP(ww, r)
	})
}

func (s *Server) table() (*dataset.Table, error) {
	if s.cfg.Reload {
		s.cache.Invalidate(s.cfg.DataPath)
	}
	return s.cache.Get(s.cfg.DataPath)
}

// document loads the table through the cache and builds a fresh report.
func (s *Server) document(ctx context.Context, raw bool) (*report.Document, error) {
	t, err := s.table()
	if err != nil {
		return nil, err
	}
	return report.Build(ctx, t, report.Options{
		ImagePath:   s.cfg.ImagePath,
		Raw:         raw,
		PreviewRows: s.cfg.PreviewRows,
		Chart:       s.cfg.Chart,
	})
}
