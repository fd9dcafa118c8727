package main

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/householdservices/portal/internal/config"
	"github.com/householdservices/portal/internal/routes"
	"github.com/householdservices/portal/internal/server"
	"github.com/householdservices/portal/pkg/logging"
	"github.com/householdservices/portal/pkg/web"
	"github.com/householdservices/portal/web/app"
)

// Service coordinates the lifecycle of all subsystems.
type Service struct {
	ctx        context.Context
	cancel     context.CancelFunc
	shutdownWg sync.WaitGroup
	ready      atomic.Bool

	logger          *slog.Logger
	app             *app.Module
	server          server.System
	tracingShutdown func(context.Context) error
}

// NewService creates and initializes the service with all subsystems.
// The page application, with its route table and templates, is built here
// and handed to the route system; nothing is looked up globally.
func NewService(cfg *config.Config) (*Service, error) {
	ctx, cancel := context.WithCancel(context.Background())

	logger := logging.New(&cfg.Logging, nil)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	module, err := app.NewModule(app.Options{
		BasePath: cfg.Web.BasePath,
		Title:    cfg.Web.Title,
		Logger:   logger.With("system", "web"),
		Metrics:  web.NewMetrics(registry),
	})
	if err != nil {
		cancel()
		return nil, fmt.Errorf("app init failed: %w", err)
	}

	s := &Service{
		ctx:    ctx,
		cancel: cancel,
		logger: logger,
		app:    module,
	}

	if cfg.Tracing.Enabled {
		shutdown, err := initTracing(ctx, &cfg.Tracing, logger)
		if err != nil {
			cancel()
			return nil, fmt.Errorf("tracing init failed: %w", err)
		}
		s.tracingShutdown = shutdown
	}

	routeSys := routes.New(logger)
	registerRoutes(routeSys, s, cfg, registry)

	handler := buildMiddleware(logger, cfg).Apply(routeSys.Build())
	handler = wrapTracingHandler(cfg.Tracing.Enabled, "portal", handler)
	s.server = server.New(&cfg.Server, handler, logger, cfg.ShutdownTimeoutDuration())

	logger.Info(
		"service initialized",
		"addr", cfg.Server.Addr(),
		"base_path", cfg.Web.BasePath,
		"routes", module.Routes().Len(),
	)

	return s, nil
}

// Start begins all subsystems and returns when they are ready.
func (s *Service) Start() error {
	s.logger.Info("starting service")

	if err := s.server.Start(s.ctx, &s.shutdownWg); err != nil {
		return fmt.Errorf("server start failed: %w", err)
	}

	s.ready.Store(true)
	s.logger.Info("service started", "addr", s.server.Addr())
	return nil
}

// Ready reports whether the service is accepting navigations.
func (s *Service) Ready() bool {
	return s.ready.Load()
}

// Addr returns the address the server is bound to.
func (s *Service) Addr() string {
	return s.server.Addr()
}

// Shutdown gracefully stops all subsystems within the provided context deadline.
func (s *Service) Shutdown(ctx context.Context) error {
	s.logger.Info("initiating shutdown")

	s.ready.Store(false)
	s.cancel()

	done := make(chan struct{})
	go func() {
		s.shutdownWg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		return fmt.Errorf("shutdown timeout: %w", ctx.Err())
	}

	if s.tracingShutdown != nil {
		if err := s.tracingShutdown(ctx); err != nil {
			return fmt.Errorf("tracing shutdown failed: %w", err)
		}
	}

	s.logger.Info("all subsystems shut down successfully")
	return nil
}
