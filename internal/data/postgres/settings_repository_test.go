package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/momopress-backend/internal/domain/user"
	"github.com/momopress-backend/internal/logger"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingsRepository(t *testing.T) {
	ctx := context.Background()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := &SettingsRepository{querier: mock, logger: logger.Discard()}
	now := time.Now()
	settings := &user.Settings{
		Phone:          "+250781234567",
		OnboardingStep: 2,
		Theme:          user.ThemeLight,
		MonthlyLimit:   250000,
		WeeklyChecks:   true,
		CustomMessages: false,
		UpdatedAt:      now,
	}

	t.Run("get", func(t *testing.T) {
		rows := pgxmock.NewRows([]string{"phone", "onboarding_step", "theme", "monthly_limit", "weekly_checks", "custom_messages", "updated_at"}).
			AddRow(settings.Phone, settings.OnboardingStep, "light", settings.MonthlyLimit, settings.WeeklyChecks, settings.CustomMessages, now)
		mock.ExpectQuery(`FROM user_settings\s+WHERE phone = \$1`).WithArgs(settings.Phone).WillReturnRows(rows)

		got, err := repo.Get(ctx, settings.Phone)
		require.NoError(t, err)
		assert.Equal(t, settings, got)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("get missing", func(t *testing.T) {
		mock.ExpectQuery(`FROM user_settings`).WithArgs(settings.Phone).WillReturnError(pgx.ErrNoRows)

		got, err := repo.Get(ctx, settings.Phone)
		assert.Nil(t, got)
		var notFound user.ErrSettingsNotFound
		require.ErrorAs(t, err, &notFound)
		assert.Equal(t, settings.Phone, notFound.Phone)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("upsert", func(t *testing.T) {
		mock.ExpectExec(`INSERT INTO user_settings .* ON CONFLICT \(phone\) DO UPDATE`).
			WithArgs(settings.Phone, 2, "light", 250000.0, true, false, now).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))

		assert.NoError(t, repo.Upsert(ctx, settings))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("upsert failure", func(t *testing.T) {
		mock.ExpectExec(`INSERT INTO user_settings`).
			WithArgs(settings.Phone, 2, "light", 250000.0, true, false, now).
			WillReturnError(errors.New("check violation"))

		err := repo.Upsert(ctx, settings)
		assert.Contains(t, err.Error(), "failed to save settings")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
