package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/momopress-backend/internal/api_gateway"
	"github.com/momopress-backend/internal/api_gateway/handler"
	"github.com/momopress-backend/internal/api_gateway/service"
	"github.com/momopress-backend/internal/config"
	"github.com/momopress-backend/internal/data/artifact"
	"github.com/momopress-backend/internal/data/mongo"
	"github.com/momopress-backend/internal/data/postgres"
	"github.com/momopress-backend/internal/data/source"
	"github.com/momopress-backend/internal/logger"
	"github.com/momopress-backend/internal/normalizer"
	"github.com/momopress-backend/internal/platform/messaging/producers"
	"github.com/momopress-backend/internal/platform/observability"
	"github.com/momopress-backend/internal/platform/persistence"
	"github.com/momopress-backend/internal/refresh"
)

func main() {
	// Create base context with cancellation
	appCtx, cancelAppCtx := context.WithCancel(context.Background())
	defer cancelAppCtx()

	// Initialize configuration
	cfg, err := config.LoadConfig("api_gateway")
	if err != nil {
		// logger is not initialized yet, so we use fmt
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.NewLogger(cfg)

	// Initialize databases with app context
	postgresDB, err := persistence.NewPostgresDB(appCtx, log, &cfg.Postgres)
	if err != nil {
		log.Error("Failed to initialize PostgreSQL", "error", err)
		os.Exit(1)
	}

	mongoDB, err := persistence.NewMongoDB(appCtx, log, &cfg.MongoDB)
	if err != nil {
		log.Error("Failed to initialize MongoDB", "error", err)
		os.Exit(1)
	}

	// Publishes multi-period export requests for the export worker
	kafkaProducer, err := producers.NewExportRequestProducer(appCtx, log, &cfg.Kafka)
	if err != nil {
		log.Error("Failed to initialize export request producer", "error", err)
		os.Exit(1)
	}

	norm, err := normalizer.FromConfig(&cfg.Rules)
	if err != nil {
		log.Error("Failed to load normalization rules", "error", err)
		os.Exit(1)
	}

	artifactWriter, err := artifact.NewWriter(log, &cfg.Artifact)
	if err != nil {
		log.Error("Failed to initialize artifact writer", "error", err)
		os.Exit(1)
	}

	metrics := observability.NewMetrics()

	// Initialize repositories
	userRepo := postgres.NewUserRepository(log, postgresDB)
	sessionRepo := postgres.NewSessionRepository(log, postgresDB)
	settingsRepo := postgres.NewSettingsRepository(log, postgresDB)
	snapshotRepo := mongo.NewSnapshotRepository(log, mongoDB.Database())

	pipeline := refresh.NewPipeline(
		source.NewFileLoader(log, cfg.Source.TransactionsPath),
		norm,
		artifactWriter,
		snapshotRepo,
		metrics,
		log,
	)

	// Initialize REST server
	server := api_gateway.NewServer(log, cfg, api_gateway.Services{
		Transactions: service.NewTransactionService(log, pipeline, settingsRepo, cfg.Spending.DefaultBudget),
		Snapshots:    service.NewSnapshotService(snapshotRepo),
		Exports:      service.NewExportService(log, kafkaProducer),
		Users:        service.NewUserService(log, postgresDB, userRepo, sessionRepo, settingsRepo),
		HealthChecks: map[string]handler.Pinger{
			"postgres": postgresDB,
			"mongodb":  mongoDB,
		},
		Metrics: metrics,
	})
	log.Info("REST server initialized")

	// Create error channel for server errors
	errChan := make(chan error, 1)

	go func() {
		if err := server.Start(); err != nil {
			errChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	// Set up signal handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	// Wait for a shutdown signal or error
	var serverErr error
	select {
	case <-quit:
		log.Info("Shutdown signal received")
	case err := <-errChan:
		log.Error("Server error occurred", "error", err)
		serverErr = err
	}

	// Cancel the application context
	cancelAppCtx()

	// Create a shutdown context with timeout
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancelShutdown()

	log.Info("Starting graceful shutdown...")

	// Stop accepting requests before closing what they depend on
	if err = server.Stop(shutdownCtx); err != nil {
		log.Error("Error during server shutdown", "error", err)
	}

	if err = kafkaProducer.Close(); err != nil {
		log.Error("Error closing Kafka producer", "error", err)
	}

	postgresDB.Close()

	if err = mongoDB.Close(shutdownCtx); err != nil {
		log.Error("Error closing MongoDB connection", "error", err)
	}

	// Final status
	if serverErr != nil {
		log.Error("HTTP server shutdown with errors", "error", serverErr)
	}
	if err != nil {
		log.Error("Server shutdown completed with errors")
	} else {
		log.Info("Server shutdown completed successfully")
	}
}
