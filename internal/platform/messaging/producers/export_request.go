package producers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/segmentio/kafka-go"

	"github.com/momopress-backend/internal/config"
)

// ExportRequestProducer publishes export requests from the api gateway.
type ExportRequestProducer struct {
	logger *slog.Logger
	writer KafkaWriter
	topic  string
}

// NewExportRequestProducer ensures the export topic exists and returns a producer for it.
func NewExportRequestProducer(ctx context.Context, logger *slog.Logger, cfg *config.KafkaConfig) (*ExportRequestProducer, error) {
	if cfg.ExportTopic == "" {
		return nil, fmt.Errorf("kafka export topic is not configured")
	}

	if err := ensureTopic(ctx, logger, cfg, cfg.ExportTopic); err != nil {
		return nil, err
	}

	writer := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers),
		Topic:                  cfg.ExportTopic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		WriteTimeout:           cfg.MaxWait,
		AllowAutoTopicCreation: false,
	}

	return &ExportRequestProducer{
		logger: logger,
		writer: writer,
		topic:  cfg.ExportTopic,
	}, nil
}

// Publish writes value as JSON under key. Writes are synchronous so the
// caller only acknowledges requests the broker accepted.
func (p *ExportRequestProducer) Publish(ctx context.Context, key string, value interface{}) error {
	jsonValue, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal export request: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(key),
		Value: jsonValue,
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.logger.Error("Failed to publish export request",
			"topic", p.topic,
			"key", key,
			"error", err,
		)
		return fmt.Errorf("failed to publish message to %s: %w", p.topic, err)
	}

	p.logger.Debug("Published export request", "topic", p.topic, "key", key)
	return nil
}

func (p *ExportRequestProducer) Close() error {
	p.logger.Info("Closing export request producer", "topic", p.topic)
	if err := p.writer.Close(); err != nil {
		return fmt.Errorf("failed to close kafka writer for topic %s: %w", p.topic, err)
	}
	return nil
}
