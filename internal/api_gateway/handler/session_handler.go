package handler

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/momopress-backend/internal/api_gateway/service"
)

// SessionHandler handles login, logout and the remembered phone
type SessionHandler struct {
	userService service.UserService
	logger      *slog.Logger
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(logger *slog.Logger, userService service.UserService) *SessionHandler {
	return &SessionHandler{
		userService: userService,
		logger:      logger,
	}
}

// Login opens a session
func (h *SessionHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	session, err := h.userService.Login(c.Request.Context(), req.Phone, req.Password, req.RememberMe)
	if err != nil {
		respondError(c, h.logger, "Failed to log in", err)
		return
	}

	RespondCreated(c, SessionResponse{
		Phone:     session.Phone,
		FullName:  session.FullName,
		LoginTime: session.LoginTime.Format(time.RFC3339),
	})
}

// Logout ends the session of /sessions/:phone
func (h *SessionHandler) Logout(c *gin.Context) {
	if err := h.userService.Logout(c.Request.Context(), c.Param("phone")); err != nil {
		respondError(c, h.logger, "Failed to log out", err)
		return
	}
	RespondNoContent(c)
}

// Current returns the open session of /sessions/:phone
func (h *SessionHandler) Current(c *gin.Context) {
	session, err := h.userService.CurrentSession(c.Request.Context(), c.Param("phone"))
	if err != nil {
		respondError(c, h.logger, "Failed to get session", err)
		return
	}

	RespondOK(c, SessionResponse{
		Phone:     session.Phone,
		FullName:  session.FullName,
		LoginTime: session.LoginTime.Format(time.RFC3339),
	})
}

// Remembered returns the phone stored by the last "remember me" login
func (h *SessionHandler) Remembered(c *gin.Context) {
	phone, err := h.userService.RememberedPhone(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, "Failed to get remembered phone", err)
		return
	}
	RespondOK(c, RememberedResponse{Phone: phone})
}
