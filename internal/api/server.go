package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/ihumphrey-usgs/csm/internal/config"
	"github.com/ihumphrey-usgs/csm/internal/registry"
	"github.com/ihumphrey-usgs/csm/internal/utils"
)

// Server wraps the HTTP server implementation and lifecycle helpers.
type Server struct {
	cfg        config.ServerConfig
	logger     *slog.Logger
	registry   *registry.Registry
	httpServer *http.Server
	listener   net.Listener
	latencies  *utils.LatencyTracker
}

// NewServer constructs an HTTP server bound to the configured address.
func NewServer(cfg config.ServerConfig, logger *slog.Logger, reg *registry.Registry) (*Server, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if reg == nil {
		return nil, fmt.Errorf("registry is required")
	}

	lis, err := net.Listen("tcp", cfg.Address)
	if err != nil {
		return nil, fmt.Errorf("listen on %s: %w", cfg.Address, err)
	}

	s := &Server{
		cfg:       cfg,
		logger:    logger,
		registry:  reg,
		listener:  lis,
		latencies: utils.NewLatencyTracker(1024),
	}
	s.httpServer = &http.Server{
		Handler:      s.routes(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 15 * time.Second,
	}
	return s, nil
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)

	r.Get("/healthz", s.handleHealth)

	r.Route("/v1/models", func(r chi.Router) {
		r.Get("/", s.handleListModels)
		r.Route("/{model}", func(r chi.Router) {
			r.Get("/", s.handleDescribeModel)
			r.Get("/groups/{param}", s.handleGetGroup)
			r.Put("/groups/{param}", s.handleSetGroup)
			r.Get("/curves/{group}", s.handleGetCurve)
			r.Put("/curves/{group}", s.handleSetCurve)
			r.Get("/coefficient", s.handleCoefficient)
			r.Get("/matrix", s.handleMatrix)
		})
	})

	return r
}

// Start serves incoming requests until Shutdown is invoked.
func (s *Server) Start() error {
	if s.httpServer == nil || s.listener == nil {
		return fmt.Errorf("server not initialised")
	}
	if err := s.httpServer.Serve(s.listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown attempts a graceful shutdown, falling back to Close after the
// context expires.
func (s *Server) Shutdown(ctx context.Context) {
	if s.httpServer == nil {
		return
	}
	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.httpServer.Close()
	}
}

// Address exposes the bound listener address (useful for tests).
func (s *Server) Address() string {
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// GracefulTimeout returns the configured graceful timeout duration.
func (s *Server) GracefulTimeout() time.Duration {
	return s.cfg.GracefulTimeout
}
