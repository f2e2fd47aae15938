package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/momopress-backend/internal/config"
	"github.com/momopress-backend/internal/data/artifact"
	"github.com/momopress-backend/internal/data/mongo"
	"github.com/momopress-backend/internal/data/source"
	"github.com/momopress-backend/internal/export_worker/consumer"
	"github.com/momopress-backend/internal/export_worker/service"
	"github.com/momopress-backend/internal/logger"
	"github.com/momopress-backend/internal/normalizer"
	"github.com/momopress-backend/internal/platform/messaging/consumers"
	"github.com/momopress-backend/internal/platform/messaging/producers"
	"github.com/momopress-backend/internal/platform/persistence"
	"github.com/momopress-backend/internal/refresh"
)

func main() {
	// Create base context with cancellation
	appCtx, cancelAppCtx := context.WithCancel(context.Background())
	defer cancelAppCtx()

	// Initialize configuration
	cfg, err := config.LoadConfig("export_worker")
	if err != nil {
		// logger is not initialized yet, so we use fmt
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.NewLogger(cfg)

	log.Info("Starting Export Worker",
		"app_name", cfg.Application.Name,
		"env", cfg.Application.Env,
	)

	mongoDB, err := persistence.NewMongoDB(appCtx, log, &cfg.MongoDB)
	if err != nil {
		log.Error("Failed to initialize MongoDB", "error", err)
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

	pipeline := refresh.NewPipeline(
		source.NewFileLoader(log, cfg.Source.TransactionsPath),
		norm,
		artifactWriter,
		mongo.NewSnapshotRepository(log, mongoDB.Database()),
		nil,
		log,
	)

	exportService, err := service.NewWorkerPoolExportService(pipeline, service.WorkerPoolConfig{Size: cfg.WorkerPool.Size}, log)
	if err != nil {
		log.Error("Failed to initialize worker pool", "error", err)
		os.Exit(1)
	}

	// dlqProducer is nil when KAFKA_DLQ_TOPIC is empty; the handler then drops bad messages
	dlqProducer, err := producers.NewDLQProducer(appCtx, log, &cfg.Kafka)
	if err != nil {
		log.Error("Failed to initialize DLQ Kafka producer", "error", err)
		os.Exit(1)
	}

	eventHandler := consumer.NewExportEventHandler(log, exportService, dlqProducer)

	kafkaConsumer := consumers.NewKafkaConsumer(log, &cfg.Kafka)
	if err := kafkaConsumer.Subscribe(appCtx, eventHandler.HandleMessage); err != nil {
		log.Error("Failed to subscribe to export requests", "error", err)
		os.Exit(1)
	}

	// Set up signal handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	select {
	case <-quit:
		log.Info("Shutdown signal received")
	case <-kafkaConsumer.Done():
		log.Error("Kafka consumer stopped unexpectedly")
	}

	// Cancel the application context
	cancelAppCtx()

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelShutdown()

	log.Info("Starting graceful shutdown...")

	select {
	case <-kafkaConsumer.Done():
		log.Info("Kafka consumer stopped")
	case <-shutdownCtx.Done():
		log.Warn("Shutdown timeout reached, forcing exit")
	}

	exportService.Shutdown()

	if err = dlqProducer.Close(); err != nil {
		log.Error("Error closing DLQ Kafka producer", "error", err)
	}

	if err = kafkaConsumer.Close(); err != nil {
		log.Error("Error closing Kafka consumer", "error", err)
	}

	if err = mongoDB.Close(shutdownCtx); err != nil {
		log.Error("Error closing MongoDB connection", "error", err)
	}

	if err != nil {
		log.Error("Export Worker shutdown completed with errors")
	} else {
		log.Info("Export Worker shutdown completed successfully")
	}
}
