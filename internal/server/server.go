// Package server provides HTTP server lifecycle management with graceful shutdown.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/householdservices/portal/internal/config"
)

// System manages the HTTP server lifecycle including startup and shutdown.
type System interface {
	// Start binds the listen address and serves in the background until ctx
	// is cancelled, then shuts down gracefully. wg is released once shutdown
	// completes.
	Start(ctx context.Context, wg *sync.WaitGroup) error

	// Addr returns the bound address, which differs from the configured one
	// when port 0 was requested.
	Addr() string
}

type server struct {
	http            *http.Server
	logger          *slog.Logger
	shutdownTimeout time.Duration

	mu   sync.Mutex
	addr string
}

// New creates a server system with the specified configuration, handler, and logger.
func New(cfg *config.ServerConfig, handler http.Handler, logger *slog.Logger, shutdownTimeout time.Duration) System {
	return &server{
		http: &http.Server{
			Addr:           cfg.Addr(),
			Handler:        handler,
			ReadTimeout:    cfg.ReadTimeoutDuration(),
			WriteTimeout:   cfg.WriteTimeoutDuration(),
			IdleTimeout:    cfg.IdleTimeoutDuration(),
			MaxHeaderBytes: cfg.MaxHeaderBytes(),
			ErrorLog:       slog.NewLogLogger(logger.Handler(), slog.LevelError),
		},
		logger:          logger,
		shutdownTimeout: shutdownTimeout,
		addr:            cfg.Addr(),
	}
}

func (s *server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addr
}

func (s *server) Start(ctx context.Context, wg *sync.WaitGroup) error {
	ln, err := net.Listen("tcp", s.http.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.http.Addr, err)
	}

	s.mu.Lock()
	s.addr = ln.Addr().String()
	s.mu.Unlock()

	go func() {
		s.logger.Info("server listening", "addr", ln.Addr().String())
		if err := s.http.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("server error", "error", err)
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		<-ctx.Done()
		s.logger.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()

		if err := s.http.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("server shutdown error", "error", err)
		} else {
			s.logger.Info("server shutdown complete")
		}
	}()

	return nil
}
