package mongo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/momopress-backend/internal/domain/snapshot"
	"github.com/momopress-backend/internal/domain/transaction"
)

const (
	// SnapshotCollectionName is the name of the snapshot collection in MongoDB
	SnapshotCollectionName = "period_snapshots"
)

// SnapshotRepository implements the snapshot.Repository interface for MongoDB.
// Documents are keyed by period ("YYYY-MM").
type SnapshotRepository struct {
	db     *mongo.Database
	logger *slog.Logger
}

// NewSnapshotRepository creates a new MongoDB snapshot repository
func NewSnapshotRepository(logger *slog.Logger, db *mongo.Database) *SnapshotRepository {
	return &SnapshotRepository{
		db:     db,
		logger: logger,
	}
}

// Save inserts or replaces the snapshot of s.Period.
func (r *SnapshotRepository) Save(ctx context.Context, s *snapshot.Snapshot) error {
	collection := r.db.Collection(SnapshotCollectionName)

	s.Key = s.Period.String()
	if s.Transactions == nil {
		s.Transactions = []transaction.NormalizedTransaction{}
	}

	_, err := collection.ReplaceOne(ctx, bson.M{"_id": s.Key}, s, options.Replace().SetUpsert(true))
	if err != nil {
		r.logger.Error("Failed to save snapshot",
			"period", s.Key,
			"error", err)
		return fmt.Errorf("failed to save snapshot: %w", err)
	}

	return nil
}

// Get retrieves the snapshot of a period.
// Returns ErrSnapshotNotFound if the period was never refreshed.
func (r *SnapshotRepository) Get(ctx context.Context, period transaction.Period) (*snapshot.Snapshot, error) {
	collection := r.db.Collection(SnapshotCollectionName)

	var s snapshot.Snapshot
	err := collection.FindOne(ctx, bson.M{"_id": period.String()}).Decode(&s)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, snapshot.ErrSnapshotNotFound{Period: period}
		}
		r.logger.Error("Failed to get snapshot",
			"period", period.String(),
			"error", err)
		return nil, fmt.Errorf("failed to get snapshot: %w", err)
	}

	return &s, nil
}

// List retrieves paginated snapshots, newest period first, without transactions.
func (r *SnapshotRepository) List(ctx context.Context, limit, offset int) ([]*snapshot.Snapshot, error) {
	collection := r.db.Collection(SnapshotCollectionName)

	opts := options.Find().
		SetSort(bson.D{{Key: "period.year", Value: -1}, {Key: "period.month", Value: -1}}).
		SetProjection(bson.M{"transactions": 0}).
		SetSkip(int64(offset)).
		SetLimit(int64(limit))

	cursor, err := collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		r.logger.Error("Failed to list snapshots", "error", err)
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}
	defer cursor.Close(ctx)

	snapshots := []*snapshot.Snapshot{}
	if err := cursor.All(ctx, &snapshots); err != nil {
		r.logger.Error("Failed to decode snapshots", "error", err)
		return nil, fmt.Errorf("failed to decode snapshots: %w", err)
	}

	return snapshots, nil
}

// Count counts the stored snapshots
func (r *SnapshotRepository) Count(ctx context.Context) (int64, error) {
	collection := r.db.Collection(SnapshotCollectionName)

	count, err := collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		r.logger.Error("Failed to count snapshots", "error", err)
		return 0, fmt.Errorf("failed to count snapshots: %w", err)
	}

	return count, nil
}

var _ snapshot.Repository = (*SnapshotRepository)(nil)
