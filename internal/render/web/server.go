// Package web serves the dashboard over HTTP: an HTML page, a JSON API,
// a manual refresh endpoint, a health check and Prometheus metrics.
package web

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/rickgao/kalshi-signals/internal/api"
	"github.com/rickgao/kalshi-signals/internal/dashboard"
)

// Dashboard computes snapshots.
type Dashboard interface {
	Refresh(ctx context.Context) (*dashboard.Snapshot, error)
	ClearCache(ctx context.Context) error
}

// StatusChecker reports exchange health.
type StatusChecker interface {
	GetExchangeStatus(ctx context.Context) (*api.ExchangeStatusResponse, error)
}

// Config holds server configuration.
type Config struct {
	Addr            string        // Listen address (default: ":8080")
	RefreshInterval time.Duration // Browser auto-refresh (default: 10m)
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		Addr:            ":8080",
		RefreshInterval: 10 * time.Minute,
		ReadTimeout:     10 * time.Second,
		WriteTimeout:    2 * time.Minute,
	}
}

// Server wraps the Echo HTTP server.
type Server struct {
	echo    *echo.Echo
	cfg     Config
	dash    Dashboard
	status  StatusChecker
	metrics http.Handler
	logger  *slog.Logger
	page    *page
}

// Option configures a Server.
type Option func(*Server)

// WithStatus enables the exchange check in /health.
func WithStatus(s StatusChecker) Option {
	return func(srv *Server) {
		srv.status = s
	}
}

// WithMetrics serves h at /metrics.
func WithMetrics(h http.Handler) Option {
	return func(srv *Server) {
		srv.metrics = h
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(srv *Server) {
		if l != nil {
			srv.logger = l
		}
	}
}

// NewServer creates a server for dash. Zero config fields take their defaults.
func NewServer(cfg Config, dash Dashboard, opts ...Option) *Server {
	def := DefaultConfig()
	if cfg.Addr == "" {
		cfg.Addr = def.Addr
	}
	if cfg.RefreshInterval <= 0 {
		cfg.RefreshInterval = def.RefreshInterval
	}
	if cfg.ReadTimeout <= 0 {
		cfg.ReadTimeout = def.ReadTimeout
	}
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = def.WriteTimeout
	}

	s := &Server{
		cfg:    cfg,
		dash:   dash,
		logger: slog.Default(),
		page:   newPage(),
	}
	for _, opt := range opts {
		opt(s)
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Server.ReadTimeout = cfg.ReadTimeout
	e.Server.WriteTimeout = cfg.WriteTimeout

	// Middleware
	e.Use(recoverer(s.logger))
	e.Use(requestLogging(s.logger))

	s.echo = e
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.echo.GET("/", s.index)
	s.echo.GET("/health", s.health)

	g := s.echo.Group("/api")
	g.GET("/snapshot", s.snapshot)
	g.POST("/refresh", s.refresh)

	if s.metrics != nil {
		s.echo.GET("/metrics", echo.WrapHandler(s.metrics))
	}
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start listens in the background.
func (s *Server) Start() error {
	go func() {
		s.logger.Info("http server listening", "addr", s.cfg.Addr)
		if err := s.echo.Start(s.cfg.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("http server error", "err", err)
		}
	}()
	return nil
}

// Stop gracefully shuts down the HTTP server.
func (s *Server) Stop(ctx context.Context) error {
	if err := s.echo.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}
	s.logger.Info("http server stopped")
	return nil
}
