// internal/handlers/ledger.go
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/wasteyuse/creatorly-backend/internal/models"
	"github.com/wasteyuse/creatorly-backend/internal/services"
	"github.com/wasteyuse/creatorly-backend/internal/utils"
)

type LedgerHandler struct {
	ledgerService *services.LedgerService
}

func NewLedgerHandler(ledgerService *services.LedgerService) *LedgerHandler {
	return &LedgerHandler{
		ledgerService: ledgerService,
	}
}

// GET /transactions
func (h *LedgerHandler) ListMine(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	filter := buildLedgerFilter(c)
	filter.UserID = &userID

	h.list(c, filter)
}

// GET /transactions/summary
func (h *LedgerHandler) Summary(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	summary, err := h.ledgerService.Summarize(userID)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, summary)
}

// GET /admin/transactions
func (h *LedgerHandler) ListAll(c *gin.Context) {
	filter := buildLedgerFilter(c)
	if userIDStr := c.Query("user_id"); userIDStr != "" {
		if userID, err := uuid.Parse(userIDStr); err == nil {
			filter.UserID = &userID
		}
	}
	if submissionIDStr := c.Query("submission_id"); submissionIDStr != "" {
		if submissionID, err := uuid.Parse(submissionIDStr); err == nil {
			filter.SubmissionID = &submissionID
		}
	}

	h.list(c, filter)
}

func (h *LedgerHandler) list(c *gin.Context, filter services.LedgerFilter) {
	transactions, total, err := h.ledgerService.List(filter)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.PaginatedResponse(c, utils.CreatePaginationResult(transactions, total, filter.PaginationParams))
}

func buildLedgerFilter(c *gin.Context) services.LedgerFilter {
	filter := services.LedgerFilter{
		PaginationParams: utils.GetPaginationParams(c),
	}
	if filter.PaginationParams.Status != "" {
		status := models.TransactionStatus(filter.PaginationParams.Status)
		filter.Status = &status
	}
	if typeStr := c.Query("type"); typeStr != "" {
		transactionType := models.TransactionType(typeStr)
		filter.Type = &transactionType
	}
	return filter
}
