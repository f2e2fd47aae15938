package service

import (
	"context"

	"github.com/momopress-backend/internal/domain/shared"
	"github.com/momopress-backend/internal/domain/transaction"
	"github.com/momopress-backend/internal/refresh"
)

// ExportService processes export requests consumed from Kafka.
type ExportService interface {
	ProcessExport(ctx context.Context, request *shared.ExportRequest) error
}

// PeriodRefresher rewrites the artifact and the snapshot of one period.
type PeriodRefresher interface {
	Refresh(ctx context.Context, period transaction.Period, correlationID string) (*refresh.Result, error)
}
