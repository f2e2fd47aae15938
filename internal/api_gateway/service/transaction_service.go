package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/momopress-backend/internal/domain/transaction"
	"github.com/momopress-backend/internal/domain/user"
	"github.com/momopress-backend/internal/insights"
	"github.com/momopress-backend/internal/refresh"
)

// TransactionServiceImpl implements the TransactionService interface
type TransactionServiceImpl struct {
	refresher     Refresher
	settingsRepo  user.SettingsRepository
	defaultBudget float64
	logger        *slog.Logger
}

// NewTransactionService creates a new transaction service
func NewTransactionService(logger *slog.Logger, refresher Refresher, settingsRepo user.SettingsRepository, defaultBudget float64) TransactionService {
	return &TransactionServiceImpl{
		refresher:     refresher,
		settingsRepo:  settingsRepo,
		defaultBudget: defaultBudget,
		logger:        logger,
	}
}

func (s *TransactionServiceImpl) ListTransactions(ctx context.Context, period transaction.Period, query string) (*TransactionList, error) {
	txs, _, err := s.refresher.Normalize(ctx, period)
	if err != nil {
		return nil, err
	}

	txs = insights.Search(txs, query)
	return &TransactionList{
		Period:       period,
		Transactions: txs,
		Summary:      insights.Summarize(txs),
	}, nil
}

func (s *TransactionServiceImpl) Spending(ctx context.Context, period transaction.Period, phone string) (*insights.Breakdown, error) {
	budget, err := s.budgetFor(ctx, phone)
	if err != nil {
		return nil, err
	}

	txs, _, err := s.refresher.Normalize(ctx, period)
	if err != nil {
		return nil, err
	}

	breakdown := insights.Spending(txs, insights.DefaultBuckets, budget)
	return &breakdown, nil
}

// budgetFor falls back to the default budget when the user has no monthly limit.
func (s *TransactionServiceImpl) budgetFor(ctx context.Context, phone string) (float64, error) {
	if phone == "" || s.settingsRepo == nil {
		return s.defaultBudget, nil
	}

	settings, err := s.settingsRepo.Get(ctx, user.NormalizePhone(phone))
	if err != nil {
		var notFound user.ErrSettingsNotFound
		if errors.As(err, &notFound) {
			return s.defaultBudget, nil
		}
		s.logger.Error("Failed to load monthly limit", "phone", phone, "error", err)
		return 0, err
	}
	if settings.MonthlyLimit <= 0 {
		return s.defaultBudget, nil
	}
	return settings.MonthlyLimit, nil
}

func (s *TransactionServiceImpl) RefreshPeriod(ctx context.Context, period transaction.Period, correlationID string) (*refresh.Result, error) {
	return s.refresher.Refresh(ctx, period, correlationID)
}
