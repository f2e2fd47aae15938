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

// SettingsRepository implements the user.SettingsRepository interface for PostgreSQL
type SettingsRepository struct {
	querier persistence.Querier
	logger  *slog.Logger
}

// NewSettingsRepository creates a new PostgreSQL settings repository.
func NewSettingsRepository(logger *slog.Logger, db *persistence.PostgresDB) user.SettingsRepository {
	return &SettingsRepository{
		querier: db.Pool(),
		logger:  logger,
	}
}

// Get retrieves the settings of phone, or ErrSettingsNotFound.
func (r *SettingsRepository) Get(ctx context.Context, phone string) (*user.Settings, error) {
	query := `
		SELECT phone, onboarding_step, theme, monthly_limit, weekly_checks, custom_messages, updated_at
		FROM user_settings
		WHERE phone = $1
	`

	var (
		s     user.Settings
		theme string
	)
	err := r.querier.QueryRow(ctx, query, phone).Scan(
		&s.Phone,
		&s.OnboardingStep,
		&theme,
		&s.MonthlyLimit,
		&s.WeeklyChecks,
		&s.CustomMessages,
		&s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, user.ErrSettingsNotFound{Phone: phone}
		}
		r.logger.Error("Failed to get settings", "phone", phone, "error", err)
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}
	s.Theme = user.Theme(theme)

	return &s, nil
}

// Upsert creates or replaces the settings of s.Phone.
func (r *SettingsRepository) Upsert(ctx context.Context, s *user.Settings) error {
	query := `
		INSERT INTO user_settings (phone, onboarding_step, theme, monthly_limit, weekly_checks, custom_messages, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (phone) DO UPDATE SET
			onboarding_step = EXCLUDED.onboarding_step,
			theme = EXCLUDED.theme,
			monthly_limit = EXCLUDED.monthly_limit,
			weekly_checks = EXCLUDED.weekly_checks,
			custom_messages = EXCLUDED.custom_messages,
			updated_at = EXCLUDED.updated_at
	`

	_, err := r.querier.Exec(ctx, query,
		s.Phone,
		s.OnboardingStep,
		string(s.Theme),
		s.MonthlyLimit,
		s.WeeklyChecks,
		s.CustomMessages,
		s.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to save settings", "phone", s.Phone, "error", err)
		return fmt.Errorf("failed to save settings: %w", err)
	}

	return nil
}
