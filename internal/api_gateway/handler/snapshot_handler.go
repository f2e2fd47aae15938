package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/momopress-backend/internal/api_gateway/service"
	"github.com/momopress-backend/internal/domain/transaction"
)

// SnapshotHandler serves stored period snapshots
type SnapshotHandler struct {
	snapshotService service.SnapshotService
	logger          *slog.Logger
}

// NewSnapshotHandler creates a new snapshot handler
func NewSnapshotHandler(logger *slog.Logger, snapshotService service.SnapshotService) *SnapshotHandler {
	return &SnapshotHandler{
		snapshotService: snapshotService,
		logger:          logger,
	}
}

// Get returns the last snapshot of /:year/:month, or 404
func (h *SnapshotHandler) Get(c *gin.Context) {
	period, err := transaction.ParsePeriod(c.Param("year"), c.Param("month"))
	if err != nil {
		RespondBadRequest(c, invalidPeriodMessage)
		return
	}

	snap, err := h.snapshotService.GetSnapshot(c.Request.Context(), period)
	if err != nil {
		respondError(c, h.logger, "Failed to get snapshot", err)
		return
	}
	RespondOK(c, snap)
}

// List returns snapshot headers, newest period first
func (h *SnapshotHandler) List(c *gin.Context) {
	var pagination PaginationParams
	if err := c.ShouldBindQuery(&pagination); err != nil {
		RespondBadRequest(c, "Invalid pagination parameters")
		return
	}

	snapshots, total, err := h.snapshotService.ListSnapshots(c.Request.Context(), pagination.Page, pagination.PerPage)
	if err != nil {
		respondError(c, h.logger, "Failed to list snapshots", err)
		return
	}

	RespondWithPaginatedData(c, http.StatusOK, snapshots, pagination.Page, pagination.PerPage, int(total))
}
