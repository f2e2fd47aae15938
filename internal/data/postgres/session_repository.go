package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/momopress-backend/internal/domain/user"
	"github.com/momopress-backend/internal/platform/persistence"
)

// SessionRepository implements the user.SessionRepository interface for PostgreSQL
type SessionRepository struct {
	querier persistence.Querier
	logger  *slog.Logger
}

// NewSessionRepository creates a new PostgreSQL session repository.
func NewSessionRepository(logger *slog.Logger, db *persistence.PostgresDB) user.SessionRepository {
	return &SessionRepository{
		querier: db.Pool(),
		logger:  logger,
	}
}

// WithTx returns a repository that runs every statement in tx.
func (r *SessionRepository) WithTx(tx pgx.Tx) user.SessionRepository {
	return &SessionRepository{
		querier: tx,
		logger:  r.logger,
	}
}

// Save creates or replaces the session of s.Phone.
func (r *SessionRepository) Save(ctx context.Context, s *user.Session) error {
	query := `
		INSERT INTO sessions (phone, full_name, login_time)
		VALUES ($1, $2, $3)
		ON CONFLICT (phone) DO UPDATE SET full_name = EXCLUDED.full_name, login_time = EXCLUDED.login_time
	`

	if _, err := r.querier.Exec(ctx, query, s.Phone, s.FullName, s.LoginTime); err != nil {
		r.logger.Error("Failed to save session", "phone", s.Phone, "error", err)
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// Get returns the session of phone, or ErrSessionNotFound.
func (r *SessionRepository) Get(ctx context.Context, phone string) (*user.Session, error) {
	query := `
		SELECT phone, full_name, login_time
		FROM sessions
		WHERE phone = $1
	`

	var s user.Session
	err := r.querier.QueryRow(ctx, query, phone).Scan(&s.Phone, &s.FullName, &s.LoginTime)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, user.ErrSessionNotFound{Phone: phone}
		}
		r.logger.Error("Failed to get session", "phone", phone, "error", err)
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	return &s, nil
}

// Delete removes the session of phone. Deleting a missing session is not an error.
func (r *SessionRepository) Delete(ctx context.Context, phone string) error {
	if _, err := r.querier.Exec(ctx, `DELETE FROM sessions WHERE phone = $1`, phone); err != nil {
		r.logger.Error("Failed to delete session", "phone", phone, "error", err)
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// SetRemembered stores phone as the remembered login.
func (r *SessionRepository) SetRemembered(ctx context.Context, phone string) error {
	query := `
		INSERT INTO remembered_login (id, phone, updated_at)
		VALUES (1, $1, NOW())
		ON CONFLICT (id) DO UPDATE SET phone = EXCLUDED.phone, updated_at = EXCLUDED.updated_at
	`

	if _, err := r.querier.Exec(ctx, query, phone); err != nil {
		r.logger.Error("Failed to remember phone", "phone", phone, "error", err)
		return fmt.Errorf("failed to remember phone: %w", err)
	}
	return nil
}

// ClearRemembered forgets the remembered login.
func (r *SessionRepository) ClearRemembered(ctx context.Context) error {
	if _, err := r.querier.Exec(ctx, `DELETE FROM remembered_login`); err != nil {
		r.logger.Error("Failed to clear remembered phone", "error", err)
		return fmt.Errorf("failed to clear remembered phone: %w", err)
	}
	return nil
}

// GetRemembered returns the remembered phone or "".
func (r *SessionRepository) GetRemembered(ctx context.Context) (string, error) {
	var phone string
	err := r.querier.QueryRow(ctx, `SELECT phone FROM remembered_login WHERE id = 1`).Scan(&phone)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		r.logger.Error("Failed to get remembered phone", "error", err)
		return "", fmt.Errorf("failed to get remembered phone: %w", err)
	}
	return phone, nil
}
