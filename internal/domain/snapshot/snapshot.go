package snapshot

import (
	"context"
	"time"

	"github.com/momopress-backend/internal/domain/transaction"
)

// Snapshot is the stored result of normalizing one period.
// Saving a snapshot for a period replaces the previous one.
type Snapshot struct {
	Period        transaction.Period                  `json:"period" bson:"period"`
	Key           string                              `json:"key" bson:"_id"` // Period.String()
	Transactions  []transaction.NormalizedTransaction `json:"transactions" bson:"transactions"`
	Received      float64                             `json:"received" bson:"received"`
	Sent          float64                             `json:"sent" bson:"sent"`
	SourceCount   int                                 `json:"source_count" bson:"source_count"` // raw records read
	CorrelationID string                              `json:"correlation_id,omitempty" bson:"correlation_id,omitempty"`
	GeneratedAt   time.Time                           `json:"generated_at" bson:"generated_at"`
}

// Repository manages snapshot persistence
type Repository interface {
	Save(ctx context.Context, s *Snapshot) error
	Get(ctx context.Context, period transaction.Period) (*Snapshot, error)
	// List returns snapshots newest period first, without their transactions.
	List(ctx context.Context, limit, offset int) ([]*Snapshot, error)
	Count(ctx context.Context) (int64, error)
}

// ErrSnapshotNotFound indicates no snapshot was stored for the period
type ErrSnapshotNotFound struct {
	Period transaction.Period
}

func (e ErrSnapshotNotFound) Error() string {
	return "snapshot not found: " + e.Period.String()
}

// Is matches any ErrSnapshotNotFound when the target period is zero.
func (e ErrSnapshotNotFound) Is(target error) bool {
	t, ok := target.(ErrSnapshotNotFound)
	if !ok {
		return false
	}
	return t.Period == (transaction.Period{}) || t.Period == e.Period
}
