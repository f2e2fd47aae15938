// Package refresh runs the period pipeline shared by the api gateway, the export
// worker and the normalize CLI: load the raw export, normalize one period, write
// the UI artifact and store the snapshot.
package refresh

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/momopress-backend/internal/data/source"
	"github.com/momopress-backend/internal/domain/snapshot"
	"github.com/momopress-backend/internal/domain/transaction"
	"github.com/momopress-backend/internal/insights"
	"github.com/momopress-backend/internal/normalizer"
	"github.com/momopress-backend/internal/platform/observability"
)

// ArtifactWriter persists the normalized sequence of a period for the UI.
type ArtifactWriter interface {
	Write(period transaction.Period, txs []transaction.NormalizedTransaction) (string, error)
}

// SnapshotSaver stores the normalized sequence of a period.
type SnapshotSaver interface {
	Save(ctx context.Context, s *snapshot.Snapshot) error
}

// Result describes one completed refresh.
type Result struct {
	Period       transaction.Period
	Transactions []transaction.NormalizedTransaction
	SourceCount  int
	ArtifactPath string
	Snapshot     *snapshot.Snapshot
}

// Pipeline wires the source, the normalizer and the sinks together.
// The artifact writer and the snapshot saver are optional.
type Pipeline struct {
	loader     source.Loader
	normalizer *normalizer.Normalizer
	artifacts  ArtifactWriter
	snapshots  SnapshotSaver
	metrics    *observability.Metrics
	logger     *slog.Logger
	now        func() time.Time
}

func NewPipeline(
	loader source.Loader,
	norm *normalizer.Normalizer,
	artifacts ArtifactWriter,
	snapshots SnapshotSaver,
	metrics *observability.Metrics,
	logger *slog.Logger,
) *Pipeline {
	return &Pipeline{
		loader:     loader,
		normalizer: norm,
		artifacts:  artifacts,
		snapshots:  snapshots,
		metrics:    metrics,
		logger:     logger,
		now:        time.Now,
	}
}

// Normalize loads the export and returns the period's normalized sequence
// together with the number of raw records read. Nothing is written.
func (p *Pipeline) Normalize(ctx context.Context, period transaction.Period) ([]transaction.NormalizedTransaction, int, error) {
	if err := period.Validate(); err != nil {
		return nil, 0, err
	}

	records, err := p.loader.Load(ctx)
	if err != nil {
		return nil, 0, err
	}

	start := p.now()
	txs, err := p.normalizer.Normalize(records, period)
	if err != nil {
		return nil, len(records), fmt.Errorf("normalize %s: %w", period, err)
	}
	p.metrics.ObserveNormalize(p.now().Sub(start), len(records), len(txs))

	return txs, len(records), nil
}

// Refresh normalizes period, writes the artifact and saves the snapshot.
func (p *Pipeline) Refresh(ctx context.Context, period transaction.Period, correlationID string) (*Result, error) {
	logger := p.logger.With("period", period.String())
	if correlationID != "" {
		logger = logger.With("correlation_id", correlationID)
	}

	result, err := p.refresh(ctx, period, correlationID, logger)
	if err != nil {
		p.metrics.IncRefresh(observability.RefreshFailure)
		logger.Error("Period refresh failed", "error", err)
		return nil, err
	}

	p.metrics.IncRefresh(observability.RefreshSuccess)
	logger.Info("Period refreshed",
		"count", len(result.Transactions),
		"source_count", result.SourceCount,
		"artifact", result.ArtifactPath,
	)
	return result, nil
}

func (p *Pipeline) refresh(ctx context.Context, period transaction.Period, correlationID string, logger *slog.Logger) (*Result, error) {
	txs, sourceCount, err := p.Normalize(ctx, period)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Period:       period,
		Transactions: txs,
		SourceCount:  sourceCount,
	}

	if p.artifacts != nil {
		path, err := p.artifacts.Write(period, txs)
		if err != nil {
			return nil, fmt.Errorf("write artifact for %s: %w", period, err)
		}
		result.ArtifactPath = path
	}

	if p.snapshots != nil {
		summary := insights.Summarize(txs)
		snap := &snapshot.Snapshot{
			Period:        period,
			Key:           period.String(),
			Transactions:  txs,
			Received:      summary.Received,
			Sent:          summary.Sent,
			SourceCount:   sourceCount,
			CorrelationID: correlationID,
			GeneratedAt:   p.now().UTC(),
		}
		if err := p.snapshots.Save(ctx, snap); err != nil {
			return nil, fmt.Errorf("save snapshot for %s: %w", period, err)
		}
		result.Snapshot = snap
	} else {
		logger.Debug("No snapshot store configured, skipping snapshot")
	}

	return result, nil
}
