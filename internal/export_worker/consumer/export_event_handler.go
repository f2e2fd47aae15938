package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/momopress-backend/internal/domain/shared"
	"github.com/momopress-backend/internal/domain/transaction"
	"github.com/momopress-backend/internal/export_worker/service"
	"github.com/momopress-backend/internal/platform/messaging/producers"
)

// ExportEventHandler handles export request messages from Kafka
type ExportEventHandler struct {
	exportService service.ExportService
	producer      producers.DeadLetterPublisher
	logger        *slog.Logger
}

// NewExportEventHandler creates a new handler. producer may be nil when no DLQ is configured.
func NewExportEventHandler(
	logger *slog.Logger,
	exportService service.ExportService,
	producer producers.DeadLetterPublisher,
) *ExportEventHandler {
	return &ExportEventHandler{
		exportService: exportService,
		producer:      producer,
		logger:        logger,
	}
}

// HandleMessage processes one Kafka message. Returning nil commits the offset.
// Requests that can never succeed are parked in the DLQ; other failures are returned
// so the consumer retries the message.
func (h *ExportEventHandler) HandleMessage(ctx context.Context, key []byte, value []byte) error {
	var request shared.ExportRequest
	if err := json.Unmarshal(value, &request); err != nil {
		return h.deadLetter(ctx, key, value, "Failed to unmarshal export request", err)
	}

	logger := h.logger.With("request_id", request.RequestID.String())
	if request.CorrelationID != "" {
		logger = logger.With("correlation_id", request.CorrelationID)
	}

	if err := request.Validate(); err != nil {
		return h.deadLetter(ctx, key, value, "Invalid export request", err)
	}

	logger.Info("Received export request", "periods", len(request.Periods))

	if err := h.exportService.ProcessExport(ctx, &request); err != nil {
		if isPermanent(err) {
			return h.deadLetter(ctx, key, value, "Export request cannot be processed", err)
		}
		logger.Error("Failed to process export request", "error", err)
		return fmt.Errorf("processing export %s failed: %w", request.RequestID, err)
	}

	logger.Info("Successfully processed export request")
	return nil
}

// isPermanent reports errors a retry cannot fix until the source data changes.
func isPermanent(err error) bool {
	return errors.Is(err, transaction.ErrMissingField{}) ||
		errors.Is(err, transaction.ErrInvalidPeriod) ||
		errors.Is(err, shared.ErrNoPeriods) ||
		errors.Is(err, shared.ErrTooManyPeriods)
}

func (h *ExportEventHandler) deadLetter(ctx context.Context, key, value []byte, msg string, cause error) error {
	h.logger.Error(msg, "error", cause, "message_key", string(key))

	if h.producer == nil {
		h.logger.Warn("No DLQ configured, dropping message", "message_key", string(key))
		return nil
	}

	reason := fmt.Sprintf("%s: %s", msg, cause.Error())
	if err := h.producer.PublishToDLQ(ctx, string(key), value, reason); err != nil {
		if errors.Is(err, producers.ErrDLQDisabled) {
			h.logger.Warn("No DLQ configured, dropping message", "message_key", string(key))
			return nil
		}
		h.logger.Error("Failed to publish message to DLQ",
			"dlq_error", err,
			"original_error", cause,
			"message_key", string(key),
		)
		// Leave the offset uncommitted so the message is not lost
		return fmt.Errorf("%s: %w", msg, cause)
	}

	h.logger.Info("Published unprocessable message to DLQ", "message_key", string(key), "reason", reason)
	return nil
}
