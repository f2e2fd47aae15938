package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/momopress-backend/internal/domain/shared"
	"github.com/momopress-backend/internal/domain/snapshot"
	"github.com/momopress-backend/internal/domain/transaction"
	"github.com/momopress-backend/internal/domain/user"
	"github.com/momopress-backend/internal/insights"
	"github.com/momopress-backend/internal/refresh"
)

// Refresher is the period pipeline used by the transaction service
type Refresher interface {
	Normalize(ctx context.Context, period transaction.Period) ([]transaction.NormalizedTransaction, int, error)
	Refresh(ctx context.Context, period transaction.Period, correlationID string) (*refresh.Result, error)
}

// TransactionService serves normalized transactions and their insights
type TransactionService interface {
	// ListTransactions returns the period's sequence filtered by query, plus its summary
	ListTransactions(ctx context.Context, period transaction.Period, query string) (*TransactionList, error)

	// Spending returns the spending breakdown against the user's monthly limit when
	// phone is set and has one, or against the default budget otherwise
	Spending(ctx context.Context, period transaction.Period, phone string) (*insights.Breakdown, error)

	// RefreshPeriod rewrites the artifact and the snapshot of the period
	RefreshPeriod(ctx context.Context, period transaction.Period, correlationID string) (*refresh.Result, error)
}

// SnapshotService reads stored period snapshots
type SnapshotService interface {
	// GetSnapshot returns ErrSnapshotNotFound if the period was never refreshed
	GetSnapshot(ctx context.Context, period transaction.Period) (*snapshot.Snapshot, error)

	// ListSnapshots returns one page of snapshots and the total count
	ListSnapshots(ctx context.Context, page, perPage int) ([]*snapshot.Snapshot, int64, error)
}

// ExportService queues asynchronous multi-period refreshes
type ExportService interface {
	// RequestExport validates and publishes the request, returning its ID
	RequestExport(ctx context.Context, request *shared.ExportRequest) (uuid.UUID, error)
}

// UserService covers sign-up, login, password reset and personalization
type UserService interface {
	SignUp(ctx context.Context, fullName, phone, password, confirm string) (*user.User, error)
	Login(ctx context.Context, phone, password string, rememberMe bool) (*user.Session, error)
	Logout(ctx context.Context, phone string) error
	// CurrentSession returns ErrSessionNotFound when phone is logged out
	CurrentSession(ctx context.Context, phone string) (*user.Session, error)
	// RememberedPhone returns "" when no login was remembered
	RememberedPhone(ctx context.Context) (string, error)
	ResetPassword(ctx context.Context, phone, password, confirm string) error

	// GetSettings returns the defaults when the user never saved settings
	GetSettings(ctx context.Context, phone string) (*user.Settings, error)
	UpdateSettings(ctx context.Context, phone string, update SettingsUpdate) (*user.Settings, error)
}

// TransactionList is the history view of a period
type TransactionList struct {
	Period       transaction.Period
	Transactions []transaction.NormalizedTransaction
	Summary      insights.Summary
}

// SettingsUpdate carries the settings fields to change; nil fields are kept
type SettingsUpdate struct {
	OnboardingStep *int
	Theme          *string
	MonthlyLimit   *float64
	WeeklyChecks   *bool
	CustomMessages *bool
}
