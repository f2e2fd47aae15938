package handler

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/momopress-backend/internal/api_gateway/service"
	"github.com/momopress-backend/internal/domain/user"
)

// UserHandler handles sign-up, password reset and settings
type UserHandler struct {
	userService service.UserService
	logger      *slog.Logger
}

// NewUserHandler creates a new user handler
func NewUserHandler(logger *slog.Logger, userService service.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
		logger:      logger,
	}
}

// SignUp registers a user
func (h *UserHandler) SignUp(c *gin.Context) {
	var req SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	u, err := h.userService.SignUp(c.Request.Context(), req.FullName, req.Phone, req.Password, req.ConfirmPassword)
	if err != nil {
		respondError(c, h.logger, "Failed to sign up", err)
		return
	}

	response := mapUserToResponse(u)
	response.PasswordStrength = user.StrengthLabel(user.PasswordStrength(req.Password))
	RespondCreated(c, response)
}

// ResetPassword sets a new password for /users/:phone
func (h *UserHandler) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	if err := h.userService.ResetPassword(c.Request.Context(), c.Param("phone"), req.Password, req.ConfirmPassword); err != nil {
		respondError(c, h.logger, "Failed to reset password", err)
		return
	}
	RespondNoContent(c)
}

// GetSettings returns the personalization settings of /users/:phone
func (h *UserHandler) GetSettings(c *gin.Context) {
	settings, err := h.userService.GetSettings(c.Request.Context(), c.Param("phone"))
	if err != nil {
		respondError(c, h.logger, "Failed to get settings", err)
		return
	}
	RespondOK(c, settings)
}

// UpdateSettings applies a partial settings update
func (h *UserHandler) UpdateSettings(c *gin.Context) {
	var req UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	settings, err := h.userService.UpdateSettings(c.Request.Context(), c.Param("phone"), service.SettingsUpdate{
		OnboardingStep: req.OnboardingStep,
		Theme:          req.Theme,
		MonthlyLimit:   req.MonthlyLimit,
		WeeklyChecks:   req.WeeklyChecks,
		CustomMessages: req.CustomMessages,
	})
	if err != nil {
		respondError(c, h.logger, "Failed to update settings", err)
		return
	}
	RespondOK(c, settings)
}

func mapUserToResponse(u *user.User) UserResponse {
	return UserResponse{
		ID:        u.ID.String(),
		FullName:  u.FullName,
		Phone:     u.Phone,
		CreatedAt: u.CreatedAt.Format(time.RFC3339),
	}
}
