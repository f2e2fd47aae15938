// Package postgres provides PostgreSQL implementations of the user, session and
// settings repositories.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/momopress-backend/internal/domain/user"
	"github.com/momopress-backend/internal/platform/persistence"
)

const uniqueViolation = "23505"

// UserRepository implements the user.Repository interface for PostgreSQL
type UserRepository struct {
	querier persistence.Querier // Can be *pgxpool.Pool or pgx.Tx
	logger  *slog.Logger
}

// NewUserRepository creates a new PostgreSQL user repository.
func NewUserRepository(logger *slog.Logger, db *persistence.PostgresDB) user.Repository {
	return &UserRepository{
		querier: db.Pool(),
		logger:  logger,
	}
}

// WithTx returns a repository that runs every statement in tx.
func (r *UserRepository) WithTx(tx pgx.Tx) user.Repository {
	return &UserRepository{
		querier: tx,
		logger:  r.logger,
	}
}

// Create stores a new user. Returns ErrDuplicatePhone if the phone is taken.
func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	query := `
		INSERT INTO users (id, full_name, phone, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.querier.Exec(ctx, query,
		u.ID,
		u.FullName,
		u.Phone,
		u.PasswordHash,
		u.CreatedAt,
		u.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return user.ErrDuplicatePhone{Phone: u.Phone}
		}
		r.logger.Error("Failed to create user", "phone", u.Phone, "error", err)
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

// GetByPhone retrieves a user by normalized phone number
func (r *UserRepository) GetByPhone(ctx context.Context, phone string) (*user.User, error) {
	query := `
		SELECT id, full_name, phone, password_hash, created_at, updated_at
		FROM users
		WHERE phone = $1
	`

	var u user.User
	err := r.querier.QueryRow(ctx, query, phone).Scan(
		&u.ID,
		&u.FullName,
		&u.Phone,
		&u.PasswordHash,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, user.ErrUserNotFound{Phone: phone}
		}
		r.logger.Error("Failed to get user", "phone", phone, "error", err)
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &u, nil
}

// UpdatePassword replaces the password hash of a user.
func (r *UserRepository) UpdatePassword(ctx context.Context, phone, passwordHash string) error {
	query := `
		UPDATE users
		SET password_hash = $1, updated_at = NOW()
		WHERE phone = $2
	`

	result, err := r.querier.Exec(ctx, query, passwordHash, phone)
	if err != nil {
		r.logger.Error("Failed to update password", "phone", phone, "error", err)
		return fmt.Errorf("failed to update password: %w", err)
	}

	if result.RowsAffected() == 0 {
		return user.ErrUserNotFound{Phone: phone}
	}

	return nil
}
