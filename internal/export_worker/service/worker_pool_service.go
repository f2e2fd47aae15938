package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/momopress-backend/internal/domain/shared"
	"github.com/panjf2000/ants/v2"
)

// WorkerPoolExportService refreshes the periods of an export request concurrently,
// one pool task per period.
type WorkerPoolExportService struct {
	refresher PeriodRefresher
	pool      *ants.Pool
	logger    *slog.Logger
}

type WorkerPoolConfig struct {
	Size int
}

func NewWorkerPoolExportService(
	refresher PeriodRefresher,
	config WorkerPoolConfig,
	logger *slog.Logger,
) (*WorkerPoolExportService, error) {
	pool, err := ants.NewPool(config.Size)
	if err != nil {
		return nil, err
	}

	return &WorkerPoolExportService{
		refresher: refresher,
		pool:      pool,
		logger:    logger,
	}, nil
}

// ProcessExport blocks until every period has been refreshed and returns the
// joined errors of the periods that failed.
func (s *WorkerPoolExportService) ProcessExport(ctx context.Context, request *shared.ExportRequest) error {
	if err := request.Validate(); err != nil {
		return err
	}

	logger := s.logger.With("request_id", request.RequestID.String())
	if request.CorrelationID != "" {
		logger = logger.With("correlation_id", request.CorrelationID)
	}
	logger.Info("Submitting export to worker pool", "periods", len(request.Periods))

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)
	record := func(err error) {
		mu.Lock()
		errs = append(errs, err)
		mu.Unlock()
	}

	for _, period := range request.Periods {
		wg.Add(1)
		err := s.pool.Submit(func() {
			defer wg.Done()
			result, err := s.refresher.Refresh(ctx, period, request.CorrelationID)
			if err != nil {
				record(fmt.Errorf("period %s: %w", period, err))
				return
			}
			logger.Debug("Period refreshed", "period", period.String(), "count", len(result.Transactions))
		})
		if err != nil {
			wg.Done()
			logger.Error("Failed to submit period to worker pool", "period", period.String(), "error", err)
			record(fmt.Errorf("period %s: %w", period, err))
		}
	}
	wg.Wait()

	if len(errs) > 0 {
		logger.Error("Export finished with errors", "failed", len(errs), "periods", len(request.Periods))
		return errors.Join(errs...)
	}
	logger.Info("Export completed", "periods", len(request.Periods))
	return nil
}

// Shutdown gracefully shuts down the worker pool.
func (s *WorkerPoolExportService) Shutdown() {
	s.logger.Info("Shutting down worker pool", "running_workers", s.pool.Running())
	s.pool.Release()
}

// Running returns the number of running workers in the pool.
func (s *WorkerPoolExportService) Running() int {
	return s.pool.Running()
}

// Capacity returns the capacity of the worker pool.
func (s *WorkerPoolExportService) Capacity() int {
	return s.pool.Cap()
}
