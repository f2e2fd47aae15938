package shared

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/momopress-backend/internal/domain/transaction"
)

// ErrNoPeriods is returned for an export request without periods.
var ErrNoPeriods = errors.New("export request has no periods")

// MaxExportPeriods bounds how many periods one request may ask for.
const MaxExportPeriods = 24

// ErrTooManyPeriods is returned when a request exceeds MaxExportPeriods.
var ErrTooManyPeriods = errors.New("export request has too many periods")

// ExportRequest defines a Kafka message asking the export worker to refresh
// the snapshots and artifacts of one or more periods.
type ExportRequest struct {
	RequestID     uuid.UUID            `json:"request_id"`
	Periods       []transaction.Period `json:"periods"`
	CorrelationID string               `json:"correlation_id"`
	Timestamp     time.Time            `json:"timestamp"`
}

// Validate checks every period and the period count.
func (r *ExportRequest) Validate() error {
	if len(r.Periods) == 0 {
		return ErrNoPeriods
	}
	if len(r.Periods) > MaxExportPeriods {
		return ErrTooManyPeriods
	}
	for _, p := range r.Periods {
		if err := p.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// ExportStatus is the lifecycle state reported for an export request.
type ExportStatus string

const (
	ExportStatusPending   ExportStatus = "PENDING"
	ExportStatusCompleted ExportStatus = "COMPLETED"
	ExportStatusFailed    ExportStatus = "FAILED"
)
