package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/finbooks/finbooks_app/internal/apperrors"
	portssvc "github.com/finbooks/finbooks_app/internal/core/ports/services"
	"github.com/finbooks/finbooks_app/internal/core/services"
	"github.com/finbooks/finbooks_app/internal/dto"
	"github.com/finbooks/finbooks_app/internal/middleware"
)

// bankTransactionHandler handles the review queue and batch posting routes.
type bankTransactionHandler struct {
	txnService    portssvc.BankTransactionSvcFacade
	posterService portssvc.PosterSvcFacade
}

func newBankTransactionHandler(ts portssvc.BankTransactionSvcFacade, ps portssvc.PosterSvcFacade) *bankTransactionHandler {
	return &bankTransactionHandler{txnService: ts, posterService: ps}
}

// registerBankTransactionRoutes registers review and posting routes.
func registerBankTransactionRoutes(rg *gin.RouterGroup, txnService portssvc.BankTransactionSvcFacade, posterService portssvc.PosterSvcFacade) {
	h := newBankTransactionHandler(txnService, posterService)

	txns := rg.Group("/bank-transactions")
	{
		txns.GET("", h.listTransactions)
		txns.POST("/post", h.postBatch)
		txns.POST("/:id/approve", h.approveTransaction)
		txns.POST("/:id/reject", h.rejectTransaction)
	}

	rg.GET("/journal-entries/:id", h.getJournalEntry)
}

// getJournalEntry returns one posted journal entry with its lines, following
// the journalEntryID a posted bank transaction carries.
func (h *bankTransactionHandler) getJournalEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	journalEntryID := c.Param("id")

	entry, err := h.posterService.GetJournalEntry(c.Request.Context(), journalEntryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Journal entry not found"})
			return
		}
		logger.Error("Failed to get journal entry",
			slog.String("journal_entry_id", journalEntryID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get journal entry"})
		return
	}

	c.JSON(http.StatusOK, entry)
}

func (h *bankTransactionHandler) listTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	transactions, err := h.txnService.ListTransactions(c.Request.Context(), params)
	if err != nil {
		logger.Error("Failed to list transactions", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list transactions"})
		return
	}

	c.JSON(http.StatusOK, dto.ToBankTransactionResponses(transactions))
}

func (h *bankTransactionHandler) approveTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transactionID := c.Param("id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	// The body is optional; approving with no overrides accepts the
	// advisor's suggestion as-is.
	var req dto.ApproveTransactionRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
			return
		}
	}

	txn, err := h.txnService.ApproveTransaction(c.Request.Context(), transactionID, req, userID)
	if err != nil {
		h.writeReviewError(c, logger, transactionID, err, "approve")
		return
	}

	c.JSON(http.StatusOK, dto.ToBankTransactionResponse(txn))
}

func (h *bankTransactionHandler) rejectTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transactionID := c.Param("id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	txn, err := h.txnService.RejectTransaction(c.Request.Context(), transactionID, userID)
	if err != nil {
		h.writeReviewError(c, logger, transactionID, err, "reject")
		return
	}

	c.JSON(http.StatusOK, dto.ToBankTransactionResponse(txn))
}

func (h *bankTransactionHandler) writeReviewError(c *gin.Context, logger *slog.Logger, transactionID string, err error, action string) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found"})
	case errors.Is(err, services.ErrNotReviewable):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		logger.Error("Failed to "+action+" transaction",
			slog.String("transaction_id", transactionID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to " + action + " transaction"})
	}
}

func (h *bankTransactionHandler) postBatch(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.PostBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	resp, err := h.posterService.PostBatch(c.Request.Context(), req.TransactionIDs, userID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrResolution):
			// Missing category or unseeded equity account. Nothing posted.
			logger.Warn("Posting batch rejected", slog.String("error", err.Error()))
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrConflict):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			logger.Error("Posting batch failed", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to post batch"})
		}
		return
	}

	c.JSON(http.StatusOK, resp)
}
