package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/momopress-backend/internal/domain/transaction"
	"github.com/momopress-backend/internal/domain/user"
	"github.com/momopress-backend/internal/logger"
	"github.com/momopress-backend/internal/refresh"
)

const defaultBudget = 1000000

func normalized() []transaction.NormalizedTransaction {
	return []transaction.NormalizedTransaction{
		{ID: "MPR202511030007", Name: "Eric", Phone: "0788000000", Amount: 5000, Category: "Income"},
		{ID: "MPR202511040008", Name: "Bank Transfer", Amount: -250000, Category: "Transfers"},
		{ID: "MPR202511050009", Name: "Simba Supermarket", Amount: -250000, Category: "Merchant"},
	}
}

func TestTransactionService_ListTransactions(t *testing.T) {
	ctx := context.Background()
	period := transaction.Period{Year: 2025, Month: 11}

	t.Run("search and summary", func(t *testing.T) {
		refresher := new(MockRefresher)
		refresher.On("Normalize", ctx, period).Return(normalized(), 10, nil).Once()
		svc := NewTransactionService(logger.Discard(), refresher, nil, defaultBudget)

		list, err := svc.ListTransactions(ctx, period, "BANK")
		require.NoError(t, err)
		require.Len(t, list.Transactions, 1)
		assert.Equal(t, "MPR202511040008", list.Transactions[0].ID)
		assert.Equal(t, 250000.0, list.Summary.Sent)
		assert.Equal(t, 0.0, list.Summary.Received)
		assert.Equal(t, 1, list.Summary.Count)
		refresher.AssertExpectations(t)
	})

	t.Run("propagates pipeline errors", func(t *testing.T) {
		refresher := new(MockRefresher)
		refresher.On("Normalize", ctx, period).Return(nil, 0, transaction.ErrMissingField{Field: "Amount"}).Once()
		svc := NewTransactionService(logger.Discard(), refresher, nil, defaultBudget)

		_, err := svc.ListTransactions(ctx, period, "")
		assert.ErrorIs(t, err, transaction.ErrMissingField{})
	})
}

func TestTransactionService_Spending(t *testing.T) {
	ctx := context.Background()
	period := transaction.Period{Year: 2025, Month: 11}

	tests := []struct {
		name         string
		phone        string
		settings     *user.Settings
		settingsErr  error
		wantBudget   float64
		wantProgress float64
		wantErr      bool
	}{
		{name: "no phone uses default", wantBudget: defaultBudget, wantProgress: 50},
		{name: "monthly limit", phone: "0781234567", settings: &user.Settings{MonthlyLimit: 400000}, wantBudget: 400000, wantProgress: 100},
		{name: "zero limit uses default", phone: "0781234567", settings: &user.Settings{}, wantBudget: defaultBudget, wantProgress: 50},
		{name: "no settings uses default", phone: "0781234567", settingsErr: user.ErrSettingsNotFound{Phone: "+250781234567"}, wantBudget: defaultBudget, wantProgress: 50},
		{name: "settings failure", phone: "0781234567", settingsErr: errors.New("db down"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			refresher := new(MockRefresher)
			settingsRepo := new(MockSettingsRepository)
			if tt.phone != "" {
				settingsRepo.On("Get", ctx, "+250781234567").Return(tt.settings, tt.settingsErr).Once()
			}
			if !tt.wantErr {
				refresher.On("Normalize", ctx, period).Return(normalized(), 3, nil).Once()
			}
			svc := NewTransactionService(logger.Discard(), refresher, settingsRepo, defaultBudget)

			breakdown, err := svc.Spending(ctx, period, tt.phone)
			if tt.wantErr {
				assert.Error(t, err)
				refresher.AssertNotCalled(t, "Normalize")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantBudget, breakdown.Budget)
			assert.Equal(t, 500000.0, breakdown.Total)
			assert.InDelta(t, tt.wantProgress, breakdown.Progress, 1e-9)
			settingsRepo.AssertExpectations(t)
		})
	}
}

func TestTransactionService_RefreshPeriod(t *testing.T) {
	ctx := context.Background()
	period := transaction.Period{Year: 2025, Month: 11}
	refresher := new(MockRefresher)
	expected := &refresh.Result{Period: period, SourceCount: 3}
	refresher.On("Refresh", ctx, period, "corr").Return(expected, nil).Once()

	svc := NewTransactionService(logger.Discard(), refresher, nil, defaultBudget)
	result, err := svc.RefreshPeriod(ctx, period, "corr")
	require.NoError(t, err)
	assert.Same(t, expected, result)
}
