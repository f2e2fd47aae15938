package handler

import (
	"github.com/momopress-backend/internal/domain/transaction"
	"github.com/momopress-backend/internal/insights"
)

// UpdateTransactionsResponse is returned by the legacy refresh trigger
type UpdateTransactionsResponse struct {
	Success     bool   `json:"success"`
	Period      string `json:"period"`
	Count       int    `json:"count"`
	SourceCount int    `json:"source_count"`
	Artifact    string `json:"artifact,omitempty"`
}

// TransactionListResponse represents the history view of a period
type TransactionListResponse struct {
	Period       string                              `json:"period"`
	Transactions []transaction.NormalizedTransaction `json:"transactions"`
	Summary      insights.Summary                    `json:"summary"`
}

// PeriodRequest identifies one month
type PeriodRequest struct {
	Year  int `json:"year" binding:"required"`
	Month int `json:"month" binding:"required"`
}

// CreateExportRequest asks for an asynchronous refresh of several periods
type CreateExportRequest struct {
	Periods     []PeriodRequest `json:"periods" binding:"required,min=1,dive"`
	Correlation string          `json:"correlation,omitempty"`
}

// ExportAcceptedResponse acknowledges a queued export
type ExportAcceptedResponse struct {
	RequestID string `json:"request_id"`
	Status    string `json:"status"`
}

// SignUpRequest represents the sign-up form
type SignUpRequest struct {
	FullName        string `json:"full_name"`
	Phone           string `json:"phone" binding:"required"`
	Password        string `json:"password" binding:"required"`
	ConfirmPassword string `json:"confirm_password"`
}

// UserResponse represents a registered user in API responses
type UserResponse struct {
	ID               string `json:"id"`
	FullName         string `json:"full_name"`
	Phone            string `json:"phone"`
	PasswordStrength string `json:"password_strength,omitempty"`
	CreatedAt        string `json:"created_at"`
}

// LoginRequest represents the login form
type LoginRequest struct {
	Phone      string `json:"phone" binding:"required"`
	Password   string `json:"password" binding:"required"`
	RememberMe bool   `json:"remember_me"`
}

// SessionResponse represents an active session
type SessionResponse struct {
	Phone     string `json:"phone"`
	FullName  string `json:"full_name"`
	LoginTime string `json:"login_time"`
}

// RememberedResponse carries the remembered login phone, empty when none
type RememberedResponse struct {
	Phone string `json:"phone"`
}

// ResetPasswordRequest represents the forgot-password form
type ResetPasswordRequest struct {
	Password        string `json:"password" binding:"required"`
	ConfirmPassword string `json:"confirm_password"`
}

// UpdateSettingsRequest changes personalization settings; omitted fields are kept
type UpdateSettingsRequest struct {
	OnboardingStep *int     `json:"onboarding_step"`
	Theme          *string  `json:"theme"`
	MonthlyLimit   *float64 `json:"monthly_limit"`
	WeeklyChecks   *bool    `json:"weekly_checks"`
	CustomMessages *bool    `json:"custom_messages"`
}

// PaginationParams represents pagination parameters for list endpoints
type PaginationParams struct {
	Page    int `form:"page,default=1" binding:"min=1"`
	PerPage int `form:"per_page,default=12" binding:"min=1,max=100"`
}
