package user

import "time"

// Theme is the app colour scheme.
type Theme string

const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

// MaxOnboardingStep is the last step of the personalization flow.
const MaxOnboardingStep = 2

// Settings are a user's personalization choices.
type Settings struct {
	Phone          string    `json:"phone"`
	OnboardingStep int       `json:"onboarding_step"`
	Theme          Theme     `json:"theme"`
	MonthlyLimit   float64   `json:"monthly_limit"` // 0 means no limit set
	WeeklyChecks   bool      `json:"weekly_checks"`
	CustomMessages bool      `json:"custom_messages"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// DefaultSettings are used for users that never saved settings.
func DefaultSettings(phone string) Settings {
	return Settings{
		Phone: phone,
		Theme: ThemeDark,
	}
}

// Validate checks the user-editable fields.
func (s Settings) Validate() error {
	if s.Theme != ThemeDark && s.Theme != ThemeLight {
		return ErrInvalidTheme
	}
	if s.OnboardingStep < 0 || s.OnboardingStep > MaxOnboardingStep {
		return ErrInvalidOnboardingStep
	}
	if s.MonthlyLimit < 0 {
		return ErrInvalidMonthlyLimit
	}
	return nil
}
