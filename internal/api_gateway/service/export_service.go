package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/momopress-backend/internal/domain/shared"
	"github.com/momopress-backend/internal/platform/messaging/producers"
)

// ExportServiceImpl implements the ExportService interface
type ExportServiceImpl struct {
	producer producers.MessagePublisher
	logger   *slog.Logger
}

// NewExportService creates a new export service
func NewExportService(logger *slog.Logger, producer producers.MessagePublisher) ExportService {
	return &ExportServiceImpl{
		producer: producer,
		logger:   logger,
	}
}

// RequestExport publishes the request keyed by its ID. A nil RequestID is replaced.
func (s *ExportServiceImpl) RequestExport(ctx context.Context, request *shared.ExportRequest) (uuid.UUID, error) {
	if err := request.Validate(); err != nil {
		return uuid.Nil, err
	}
	if request.RequestID == uuid.Nil {
		request.RequestID = uuid.New()
	}

	key := request.RequestID.String()
	if err := s.producer.Publish(ctx, key, request); err != nil {
		s.logger.Error("Failed to publish export request",
			"request_id", key,
			"periods", len(request.Periods),
			"error", err,
		)
		return uuid.Nil, err
	}

	s.logger.Info("Export request published",
		"request_id", key,
		"periods", len(request.Periods),
		"correlation_id", request.CorrelationID,
	)
	return request.RequestID, nil
}
