package user

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
)

// Session is the signed-in state of a user.
type Session struct {
	Phone     string    `json:"phone"`
	FullName  string    `json:"full_name"`
	LoginTime time.Time `json:"login_time"`
}

// Repository defines user persistence operations
type Repository interface {
	Create(ctx context.Context, u *User) error
	GetByPhone(ctx context.Context, phone string) (*User, error)
	UpdatePassword(ctx context.Context, phone, passwordHash string) error
	WithTx(tx pgx.Tx) Repository
}

// SessionRepository stores active sessions, at most one per phone, and the
// remembered login phone.
type SessionRepository interface {
	Save(ctx context.Context, s *Session) error
	Get(ctx context.Context, phone string) (*Session, error)
	Delete(ctx context.Context, phone string) error

	SetRemembered(ctx context.Context, phone string) error
	ClearRemembered(ctx context.Context) error
	// GetRemembered returns "" when no phone is remembered.
	GetRemembered(ctx context.Context) (string, error)

	WithTx(tx pgx.Tx) SessionRepository
}

// SettingsRepository stores personalization settings.
type SettingsRepository interface {
	// Get returns ErrSettingsNotFound when the user never saved settings.
	Get(ctx context.Context, phone string) (*Settings, error)
	Upsert(ctx context.Context, s *Settings) error
}

// ErrUserNotFound indicates no user is registered with the phone
type ErrUserNotFound struct {
	Phone string
}

func (e ErrUserNotFound) Error() string {
	return "user not found: " + e.Phone
}

// Is matches any ErrUserNotFound when the target phone is empty.
func (e ErrUserNotFound) Is(target error) bool {
	t, ok := target.(ErrUserNotFound)
	if !ok {
		return false
	}
	return t.Phone == "" || t.Phone == e.Phone
}

// ErrDuplicatePhone indicates the phone is already registered
type ErrDuplicatePhone struct {
	Phone string
}

func (e ErrDuplicatePhone) Error() string {
	return "phone number already registered: " + e.Phone
}

// ErrSessionNotFound indicates there is no active session for the phone
type ErrSessionNotFound struct {
	Phone string
}

func (e ErrSessionNotFound) Error() string {
	return "no active session: " + e.Phone
}

// ErrSettingsNotFound indicates the user never saved settings
type ErrSettingsNotFound struct {
	Phone string
}

func (e ErrSettingsNotFound) Error() string {
	return "settings not found: " + e.Phone
}
