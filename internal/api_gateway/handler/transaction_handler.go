package handler

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/momopress-backend/internal/api_gateway/middleware"
	"github.com/momopress-backend/internal/api_gateway/service"
	"github.com/momopress-backend/internal/domain/transaction"
)

// TransactionHandler handles HTTP requests for normalized transactions
type TransactionHandler struct {
	transactionService service.TransactionService
	logger             *slog.Logger
}

// NewTransactionHandler creates a new transaction handler
func NewTransactionHandler(logger *slog.Logger, transactionService service.TransactionService) *TransactionHandler {
	return &TransactionHandler{
		transactionService: transactionService,
		logger:             logger,
	}
}

// UpdateTransactions is the legacy refresh trigger: GET /api/updateTransactions?year=&month=
func (h *TransactionHandler) UpdateTransactions(c *gin.Context) {
	period, err := transaction.ParsePeriod(c.Query("year"), c.Query("month"))
	if err != nil {
		h.logger.Warn("Rejected refresh", "year", c.Query("year"), "month", c.Query("month"))
		RespondBadRequest(c, invalidPeriodMessage)
		return
	}
	h.refresh(c, period)
}

// RefreshPeriod refreshes the period named in the path
func (h *TransactionHandler) RefreshPeriod(c *gin.Context) {
	period, err := transaction.ParsePeriod(c.Param("year"), c.Param("month"))
	if err != nil {
		RespondBadRequest(c, invalidPeriodMessage)
		return
	}
	h.refresh(c, period)
}

func (h *TransactionHandler) refresh(c *gin.Context, period transaction.Period) {
	result, err := h.transactionService.RefreshPeriod(c.Request.Context(), period, middleware.GetCorrelationID(c))
	if err != nil {
		respondError(c, h.logger, "Failed to refresh period", err)
		return
	}

	RespondOK(c, UpdateTransactionsResponse{
		Success:     true,
		Period:      period.String(),
		Count:       len(result.Transactions),
		SourceCount: result.SourceCount,
		Artifact:    result.ArtifactPath,
	})
}

// List returns the normalized sequence of a period, optionally searched with q
func (h *TransactionHandler) List(c *gin.Context) {
	period, err := transaction.ParsePeriod(c.Query("year"), c.Query("month"))
	if err != nil {
		RespondBadRequest(c, invalidPeriodMessage)
		return
	}

	list, err := h.transactionService.ListTransactions(c.Request.Context(), period, c.Query("q"))
	if err != nil {
		respondError(c, h.logger, "Failed to list transactions", err)
		return
	}

	RespondOK(c, TransactionListResponse{
		Period:       list.Period.String(),
		Transactions: list.Transactions,
		Summary:      list.Summary,
	})
}

// Spending returns the spending breakdown of a period
func (h *TransactionHandler) Spending(c *gin.Context) {
	period, err := transaction.ParsePeriod(c.Query("year"), c.Query("month"))
	if err != nil {
		RespondBadRequest(c, invalidPeriodMessage)
		return
	}

	breakdown, err := h.transactionService.Spending(c.Request.Context(), period, c.Query("phone"))
	if err != nil {
		respondError(c, h.logger, "Failed to compute spending", err)
		return
	}

	RespondOK(c, breakdown)
}
