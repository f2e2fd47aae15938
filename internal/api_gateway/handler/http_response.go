package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/momopress-backend/internal/api_gateway/middleware"
)

// Response is the envelope every JSON endpoint answers with.
type Response struct {
	Data          interface{} `json:"data,omitempty"`
	Error         *ErrorInfo  `json:"error,omitempty"`
	CorrelationID string      `json:"correlation_id,omitempty"`
	Meta          *MetaInfo   `json:"meta,omitempty"`
}

// ErrorInfo is a machine code plus the message shown to the user.
type ErrorInfo struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// MetaInfo carries pagination for list endpoints.
type MetaInfo struct {
	Page       int `json:"page,omitempty"`
	PerPage    int `json:"per_page,omitempty"`
	TotalPages int `json:"total_pages,omitempty"`
	TotalItems int `json:"total_items,omitempty"`
}

// NewPaginatedResponse wraps one page of data with its pagination meta.
func NewPaginatedResponse(data interface{}, page, perPage, totalItems int) *Response {
	meta := &MetaInfo{Page: page, PerPage: perPage, TotalItems: totalItems}
	if perPage > 0 {
		meta.TotalPages = (totalItems + perPage - 1) / perPage
	}
	return &Response{Data: data, Meta: meta}
}

func respond(c *gin.Context, status int, r *Response) {
	r.CorrelationID = middleware.GetCorrelationID(c)
	c.JSON(status, r)
}

func RespondWithData(c *gin.Context, status int, data interface{}) {
	respond(c, status, &Response{Data: data})
}

func RespondWithError(c *gin.Context, status int, code, message string) {
	respond(c, status, &Response{Error: &ErrorInfo{Code: code, Message: message}})
}

func RespondWithPaginatedData(c *gin.Context, status int, data interface{}, page, perPage, totalItems int) {
	respond(c, status, NewPaginatedResponse(data, page, perPage, totalItems))
}

func RespondOK(c *gin.Context, data interface{})       { RespondWithData(c, http.StatusOK, data) }
func RespondCreated(c *gin.Context, data interface{})  { RespondWithData(c, http.StatusCreated, data) }
func RespondAccepted(c *gin.Context, data interface{}) { RespondWithData(c, http.StatusAccepted, data) }

// RespondNoContent writes 204 without a body, so it carries no envelope.
func RespondNoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

func RespondBadRequest(c *gin.Context, message string) {
	RespondWithError(c, http.StatusBadRequest, "BAD_REQUEST", message)
}

func RespondUnauthorized(c *gin.Context, message string) {
	RespondWithError(c, http.StatusUnauthorized, "UNAUTHORIZED", orDefault(message, "Unauthorized"))
}

func RespondNotFound(c *gin.Context, message string) {
	RespondWithError(c, http.StatusNotFound, "NOT_FOUND", orDefault(message, "Resource not found"))
}

func RespondConflict(c *gin.Context, message string) {
	RespondWithError(c, http.StatusConflict, "CONFLICT", message)
}

func RespondUnprocessable(c *gin.Context, message string) {
	RespondWithError(c, http.StatusUnprocessableEntity, "UNPROCESSABLE_ENTITY", message)
}

// RespondInternalError hides the cause; callers log it first.
func RespondInternalError(c *gin.Context) {
	RespondWithError(c, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "An internal server error occurred")
}

func orDefault(message, fallback string) string {
	if message == "" {
		return fallback
	}
	return message
}
