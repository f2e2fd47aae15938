package service

import (
	"context"

	"github.com/momopress-backend/internal/domain/snapshot"
	"github.com/momopress-backend/internal/domain/transaction"
)

// SnapshotServiceImpl implements the SnapshotService interface
type SnapshotServiceImpl struct {
	snapshotRepo snapshot.Repository
}

// NewSnapshotService creates a new snapshot service
func NewSnapshotService(snapshotRepo snapshot.Repository) SnapshotService {
	return &SnapshotServiceImpl{snapshotRepo: snapshotRepo}
}

func (s *SnapshotServiceImpl) GetSnapshot(ctx context.Context, period transaction.Period) (*snapshot.Snapshot, error) {
	if err := period.Validate(); err != nil {
		return nil, err
	}
	return s.snapshotRepo.Get(ctx, period)
}

func (s *SnapshotServiceImpl) ListSnapshots(ctx context.Context, page, perPage int) ([]*snapshot.Snapshot, int64, error) {
	offset := (page - 1) * perPage

	snapshots, err := s.snapshotRepo.List(ctx, perPage, offset)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.snapshotRepo.Count(ctx)
	if err != nil {
		return nil, 0, err
	}

	return snapshots, total, nil
}
