package api_gateway

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/momopress-backend/internal/api_gateway/handler"
	"github.com/momopress-backend/internal/api_gateway/service"
	"github.com/momopress-backend/internal/config"
	"github.com/momopress-backend/internal/platform/observability"
)

// Services are the dependencies the HTTP layer is built on
type Services struct {
	Transactions service.TransactionService
	Snapshots    service.SnapshotService
	Exports      service.ExportService
	Users        service.UserService
	// HealthChecks are pinged by /health, keyed by dependency name
	HealthChecks map[string]handler.Pinger
	Metrics      *observability.Metrics
}

// Server handles HTTP requests and manages the application's lifecycle
type Server struct {
	logger          *slog.Logger // For structured logging
	httpServer      *http.Server // Underlying HTTP server
	httpRouter      *gin.Engine  // Gin router instance
	shutdownTimeout time.Duration
}

// NewServer creates and configures a new HTTP server with the given services
func NewServer(log *slog.Logger, cfg *config.Config, services Services) *Server {
	if cfg.Application.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	httpRouter := gin.New()

	setupRouter(log, httpRouter, handlers{
		transactions: handler.NewTransactionHandler(log, services.Transactions),
		snapshots:    handler.NewSnapshotHandler(log, services.Snapshots),
		exports:      handler.NewExportHandler(log, services.Exports),
		users:        handler.NewUserHandler(log, services.Users),
		sessions:     handler.NewSessionHandler(log, services.Users),
		health:       handler.NewHealthHandler(services.HealthChecks),
	}, services.Metrics, cfg.Server.StaticDir)

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      httpRouter,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return &Server{
		logger:          log,
		httpServer:      httpServer,
		httpRouter:      httpRouter,
		shutdownTimeout: cfg.Server.ShutdownTimeout,
	}
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.httpRouter
}

// Start begins listening for HTTP requests
func (s *Server) Start() error {
	s.logger.Info("starting HTTP server", "addr", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start HTTP server: %w", err)
	}
	return nil
}

// Stop gracefully shuts down the HTTP server, waiting at most the configured shutdown timeout
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("stopping HTTP server")

	shutdownCtx, cancel := context.WithTimeout(ctx, s.shutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop HTTP server: %w", err)
	}
	return nil
}
