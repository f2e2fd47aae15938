package handler

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/momopress-backend/internal/api_gateway/middleware"
	"github.com/momopress-backend/internal/api_gateway/service"
	"github.com/momopress-backend/internal/domain/shared"
	"github.com/momopress-backend/internal/domain/transaction"
)

// ExportHandler queues multi-period refreshes for the export worker
type ExportHandler struct {
	exportService service.ExportService
	logger        *slog.Logger
}

// NewExportHandler creates a new export handler
func NewExportHandler(logger *slog.Logger, exportService service.ExportService) *ExportHandler {
	return &ExportHandler{
		exportService: exportService,
		logger:        logger,
	}
}

// Create validates every period and publishes one export request
func (h *ExportHandler) Create(c *gin.Context) {
	var req CreateExportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	periods := make([]transaction.Period, 0, len(req.Periods))
	for _, p := range req.Periods {
		period := transaction.Period{Year: p.Year, Month: p.Month}
		if err := period.Validate(); err != nil {
			RespondBadRequest(c, invalidPeriodMessage)
			return
		}
		periods = append(periods, period)
	}

	correlationID := req.Correlation
	if !middleware.ValidCorrelationID(correlationID) {
		correlationID = middleware.GetCorrelationID(c)
	}

	exportRequest := &shared.ExportRequest{
		RequestID:     uuid.New(),
		Periods:       periods,
		CorrelationID: correlationID,
		Timestamp:     time.Now().UTC(),
	}

	requestID, err := h.exportService.RequestExport(c.Request.Context(), exportRequest)
	if err != nil {
		respondError(c, h.logger, "Failed to request export", err)
		return
	}

	RespondAccepted(c, ExportAcceptedResponse{
		RequestID: requestID.String(),
		Status:    string(shared.ExportStatusPending),
	})
}
