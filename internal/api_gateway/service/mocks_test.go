package service

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"

	"github.com/momopress-backend/internal/domain/snapshot"
	"github.com/momopress-backend/internal/domain/transaction"
	"github.com/momopress-backend/internal/domain/user"
	"github.com/momopress-backend/internal/refresh"
)

type MockRefresher struct {
	mock.Mock
}

func (m *MockRefresher) Normalize(ctx context.Context, period transaction.Period) ([]transaction.NormalizedTransaction, int, error) {
	args := m.Called(ctx, period)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]transaction.NormalizedTransaction), args.Int(1), args.Error(2)
}

func (m *MockRefresher) Refresh(ctx context.Context, period transaction.Period, correlationID string) (*refresh.Result, error) {
	args := m.Called(ctx, period, correlationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*refresh.Result), args.Error(1)
}

type MockSettingsRepository struct {
	mock.Mock
}

func (m *MockSettingsRepository) Get(ctx context.Context, phone string) (*user.Settings, error) {
	args := m.Called(ctx, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.Settings), args.Error(1)
}

func (m *MockSettingsRepository) Upsert(ctx context.Context, s *user.Settings) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

type MockSnapshotRepository struct {
	mock.Mock
}

func (m *MockSnapshotRepository) Save(ctx context.Context, s *snapshot.Snapshot) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockSnapshotRepository) Get(ctx context.Context, period transaction.Period) (*snapshot.Snapshot, error) {
	args := m.Called(ctx, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*snapshot.Snapshot), args.Error(1)
}

func (m *MockSnapshotRepository) List(ctx context.Context, limit, offset int) ([]*snapshot.Snapshot, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*snapshot.Snapshot), args.Error(1)
}

func (m *MockSnapshotRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, key string, value interface{}) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

func (m *MockPublisher) Close() error {
	args := m.Called()
	return args.Error(0)
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, u *user.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockUserRepository) GetByPhone(ctx context.Context, phone string) (*user.User, error) {
	args := m.Called(ctx, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserRepository) UpdatePassword(ctx context.Context, phone, passwordHash string) error {
	args := m.Called(ctx, phone, passwordHash)
	return args.Error(0)
}

func (m *MockUserRepository) WithTx(tx pgx.Tx) user.Repository {
	args := m.Called(tx)
	return args.Get(0).(user.Repository)
}

type MockSessionRepository struct {
	mock.Mock
}

func (m *MockSessionRepository) Save(ctx context.Context, s *user.Session) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockSessionRepository) Get(ctx context.Context, phone string) (*user.Session, error) {
	args := m.Called(ctx, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.Session), args.Error(1)
}

func (m *MockSessionRepository) Delete(ctx context.Context, phone string) error {
	args := m.Called(ctx, phone)
	return args.Error(0)
}

func (m *MockSessionRepository) SetRemembered(ctx context.Context, phone string) error {
	args := m.Called(ctx, phone)
	return args.Error(0)
}

func (m *MockSessionRepository) ClearRemembered(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockSessionRepository) GetRemembered(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockSessionRepository) WithTx(tx pgx.Tx) user.SessionRepository {
	args := m.Called(tx)
	return args.Get(0).(user.SessionRepository)
}

// MockTxRunner runs the function with a nil transaction; repositories under
// test return themselves from WithTx.
type MockTxRunner struct {
	mock.Mock
}

func (m *MockTxRunner) ExecuteTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	args := m.Called(ctx)
	if err := args.Error(0); err != nil {
		return err
	}
	return fn(nil)
}
