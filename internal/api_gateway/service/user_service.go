package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/momopress-backend/internal/domain/user"
	"github.com/momopress-backend/internal/platform/persistence"
)

// UserServiceImpl implements the UserService interface
type UserServiceImpl struct {
	txRunner     persistence.TxRunner
	userRepo     user.Repository
	sessionRepo  user.SessionRepository
	settingsRepo user.SettingsRepository
	logger       *slog.Logger
	now          func() time.Time
}

// NewUserService creates a new user service
func NewUserService(
	logger *slog.Logger,
	txRunner persistence.TxRunner,
	userRepo user.Repository,
	sessionRepo user.SessionRepository,
	settingsRepo user.SettingsRepository,
) UserService {
	return &UserServiceImpl{
		txRunner:     txRunner,
		userRepo:     userRepo,
		sessionRepo:  sessionRepo,
		settingsRepo: settingsRepo,
		logger:       logger,
		now:          time.Now,
	}
}

// SignUp registers a user. Returns ErrDuplicatePhone if the phone is taken.
func (s *UserServiceImpl) SignUp(ctx context.Context, fullName, phone, password, confirm string) (*user.User, error) {
	u, err := user.NewUser(fullName, phone, password, confirm)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.Create(ctx, u); err != nil {
		return nil, err
	}

	s.logger.Info("User registered", "user_id", u.ID.String(), "phone", u.Phone)
	return u, nil
}

// Login checks the password and opens a session. With rememberMe the phone is
// remembered for the next login, otherwise any remembered phone is forgotten.
func (s *UserServiceImpl) Login(ctx context.Context, phone, password string, rememberMe bool) (*user.Session, error) {
	if !user.ValidatePhone(phone) {
		return nil, user.ErrInvalidPhone
	}
	normalized := user.NormalizePhone(phone)

	u, err := s.userRepo.GetByPhone(ctx, normalized)
	if err != nil {
		return nil, err
	}
	if err := u.CheckPassword(password); err != nil {
		s.logger.Warn("Login rejected", "phone", normalized)
		return nil, err
	}

	session := &user.Session{
		Phone:     u.Phone,
		FullName:  u.FullName,
		LoginTime: s.now().UTC(),
	}
	if err := s.sessionRepo.Save(ctx, session); err != nil {
		return nil, err
	}

	if rememberMe {
		err = s.sessionRepo.SetRemembered(ctx, u.Phone)
	} else {
		err = s.sessionRepo.ClearRemembered(ctx)
	}
	if err != nil {
		return nil, err
	}

	s.logger.Info("User logged in", "phone", u.Phone, "remember_me", rememberMe)
	return session, nil
}

func (s *UserServiceImpl) Logout(ctx context.Context, phone string) error {
	return s.sessionRepo.Delete(ctx, user.NormalizePhone(phone))
}

func (s *UserServiceImpl) CurrentSession(ctx context.Context, phone string) (*user.Session, error) {
	return s.sessionRepo.Get(ctx, user.NormalizePhone(phone))
}

func (s *UserServiceImpl) RememberedPhone(ctx context.Context) (string, error) {
	return s.sessionRepo.GetRemembered(ctx)
}

// ResetPassword replaces the password and ends the user's session in one transaction.
func (s *UserServiceImpl) ResetPassword(ctx context.Context, phone, password, confirm string) error {
	if !user.ValidatePhone(phone) {
		return user.ErrInvalidPhone
	}
	normalized := user.NormalizePhone(phone)

	err := s.txRunner.ExecuteTx(ctx, func(tx pgx.Tx) error {
		users := s.userRepo.WithTx(tx)
		u, err := users.GetByPhone(ctx, normalized)
		if err != nil {
			return err
		}
		if err := u.SetPassword(password, confirm); err != nil {
			return err
		}
		if err := users.UpdatePassword(ctx, u.Phone, u.PasswordHash); err != nil {
			return err
		}
		return s.sessionRepo.WithTx(tx).Delete(ctx, u.Phone)
	})
	if err != nil {
		return err
	}

	s.logger.Info("Password reset", "phone", normalized)
	return nil
}

func (s *UserServiceImpl) GetSettings(ctx context.Context, phone string) (*user.Settings, error) {
	normalized := user.NormalizePhone(phone)

	settings, err := s.settingsRepo.Get(ctx, normalized)
	if err != nil {
		var notFound user.ErrSettingsNotFound
		if errors.As(err, &notFound) {
			defaults := user.DefaultSettings(normalized)
			return &defaults, nil
		}
		return nil, err
	}
	return settings, nil
}

// UpdateSettings applies update over the stored (or default) settings of a registered user.
func (s *UserServiceImpl) UpdateSettings(ctx context.Context, phone string, update SettingsUpdate) (*user.Settings, error) {
	normalized := user.NormalizePhone(phone)
	if _, err := s.userRepo.GetByPhone(ctx, normalized); err != nil {
		return nil, err
	}

	settings, err := s.GetSettings(ctx, normalized)
	if err != nil {
		return nil, err
	}

	if update.OnboardingStep != nil {
		settings.OnboardingStep = *update.OnboardingStep
	}
	if update.Theme != nil {
		settings.Theme = user.Theme(*update.Theme)
	}
	if update.MonthlyLimit != nil {
		settings.MonthlyLimit = *update.MonthlyLimit
	}
	if update.WeeklyChecks != nil {
		settings.WeeklyChecks = *update.WeeklyChecks
	}
	if update.CustomMessages != nil {
		settings.CustomMessages = *update.CustomMessages
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	settings.UpdatedAt = s.now().UTC()

	if err := s.settingsRepo.Upsert(ctx, settings); err != nil {
		return nil, err
	}
	return settings, nil
}
