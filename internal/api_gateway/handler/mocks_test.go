package handler

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/momopress-backend/internal/api_gateway/service"
	"github.com/momopress-backend/internal/domain/shared"
	"github.com/momopress-backend/internal/domain/snapshot"
	"github.com/momopress-backend/internal/domain/transaction"
	"github.com/momopress-backend/internal/domain/user"
	"github.com/momopress-backend/internal/insights"
	"github.com/momopress-backend/internal/refresh"
)

type MockTransactionService struct {
	mock.Mock
}

func (m *MockTransactionService) ListTransactions(ctx context.Context, period transaction.Period, query string) (*service.TransactionList, error) {
	args := m.Called(ctx, period, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.TransactionList), args.Error(1)
}

func (m *MockTransactionService) Spending(ctx context.Context, period transaction.Period, phone string) (*insights.Breakdown, error) {
	args := m.Called(ctx, period, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*insights.Breakdown), args.Error(1)
}

func (m *MockTransactionService) RefreshPeriod(ctx context.Context, period transaction.Period, correlationID string) (*refresh.Result, error) {
	args := m.Called(ctx, period, correlationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*refresh.Result), args.Error(1)
}

type MockSnapshotService struct {
	mock.Mock
}

func (m *MockSnapshotService) GetSnapshot(ctx context.Context, period transaction.Period) (*snapshot.Snapshot, error) {
	args := m.Called(ctx, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*snapshot.Snapshot), args.Error(1)
}

func (m *MockSnapshotService) ListSnapshots(ctx context.Context, page, perPage int) ([]*snapshot.Snapshot, int64, error) {
	args := m.Called(ctx, page, perPage)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*snapshot.Snapshot), args.Get(1).(int64), args.Error(2)
}

type MockExportService struct {
	mock.Mock
}

func (m *MockExportService) RequestExport(ctx context.Context, request *shared.ExportRequest) (uuid.UUID, error) {
	args := m.Called(ctx, request)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) SignUp(ctx context.Context, fullName, phone, password, confirm string) (*user.User, error) {
	args := m.Called(ctx, fullName, phone, password, confirm)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserService) Login(ctx context.Context, phone, password string, rememberMe bool) (*user.Session, error) {
	args := m.Called(ctx, phone, password, rememberMe)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.Session), args.Error(1)
}

func (m *MockUserService) Logout(ctx context.Context, phone string) error {
	args := m.Called(ctx, phone)
	return args.Error(0)
}

func (m *MockUserService) CurrentSession(ctx context.Context, phone string) (*user.Session, error) {
	args := m.Called(ctx, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.Session), args.Error(1)
}

func (m *MockUserService) RememberedPhone(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockUserService) ResetPassword(ctx context.Context, phone, password, confirm string) error {
	args := m.Called(ctx, phone, password, confirm)
	return args.Error(0)
}

func (m *MockUserService) GetSettings(ctx context.Context, phone string) (*user.Settings, error) {
	args := m.Called(ctx, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.Settings), args.Error(1)
}

func (m *MockUserService) UpdateSettings(ctx context.Context, phone string, update service.SettingsUpdate) (*user.Settings, error) {
	args := m.Called(ctx, phone, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.Settings), args.Error(1)
}

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

// decode unmarshals the response envelope, with Data left raw.
func decode(t *testing.T, rr *httptest.ResponseRecorder) (map[string]json.RawMessage, *ErrorInfo) {
	t.Helper()
	var body struct {
		Data  map[string]json.RawMessage `json:"data"`
		Error *ErrorInfo                 `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	return body.Data, body.Error
}
