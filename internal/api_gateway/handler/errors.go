package handler

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/momopress-backend/internal/domain/shared"
	"github.com/momopress-backend/internal/domain/snapshot"
	"github.com/momopress-backend/internal/domain/transaction"
	"github.com/momopress-backend/internal/domain/user"
)

const invalidPeriodMessage = "Invalid year or month"

// respondError maps domain errors to HTTP responses. Anything unmapped,
// including an unreadable transaction source, is a 500.
func respondError(c *gin.Context, logger *slog.Logger, msg string, err error) {
	var (
		missing     transaction.ErrMissingField
		dup         user.ErrDuplicatePhone
		notFound    user.ErrUserNotFound
		noSession   user.ErrSessionNotFound
		snapMissing snapshot.ErrSnapshotNotFound
	)

	switch {
	case errors.Is(err, transaction.ErrInvalidPeriod):
		RespondBadRequest(c, invalidPeriodMessage)
	case errors.Is(err, shared.ErrNoPeriods), errors.Is(err, shared.ErrTooManyPeriods):
		RespondBadRequest(c, err.Error())
	case errors.As(err, &missing):
		logger.Warn(msg, "error", err)
		RespondUnprocessable(c, missing.Error())
	case errors.Is(err, user.ErrValidation):
		RespondBadRequest(c, validationMessage(err))
	case errors.As(err, &dup):
		RespondConflict(c, "Phone number already registered")
	case errors.As(err, &notFound):
		RespondNotFound(c, "User not found")
	case errors.As(err, &noSession):
		RespondNotFound(c, "No active session")
	case errors.Is(err, user.ErrInvalidCredentials):
		RespondUnauthorized(c, "Incorrect password")
	case errors.As(err, &snapMissing):
		RespondNotFound(c, "No snapshot for "+snapMissing.Period.String())
	default:
		logger.Error(msg, "error", err)
		RespondInternalError(c)
	}
}

// validationMessage strips the "validation failed: " prefix of user errors.
func validationMessage(err error) string {
	return strings.TrimPrefix(err.Error(), user.ErrValidation.Error()+": ")
}
