// internal/handlers/payout.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/wasteyuse/creatorly-backend/internal/models"
	"github.com/wasteyuse/creatorly-backend/internal/services"
	"github.com/wasteyuse/creatorly-backend/internal/utils"
)

type PayoutHandler struct {
	payoutService *services.PayoutService
}

func NewPayoutHandler(payoutService *services.PayoutService) *PayoutHandler {
	return &PayoutHandler{
		payoutService: payoutService,
	}
}

// GET /payouts/balance
func (h *PayoutHandler) GetBalance(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	balance, err := h.payoutService.GetBalance(userID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			utils.NotFoundResponse(c, "User")
			return
		}
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, balance)
}

// POST /payouts/methods
func (h *PayoutHandler) AddMethod(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req services.AddPayoutMethodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid input", err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	method, err := h.payoutService.AddMethod(userID, &req)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.CreatedResponse(c, gin.H{"payout_method": method})
}

// GET /payouts/methods
func (h *PayoutHandler) ListMethods(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	methods, err := h.payoutService.ListMethods(userID)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{"payout_methods": methods})
}

// POST /payouts/requests
func (h *PayoutHandler) CreateRequest(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req services.CreatePayoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid input", err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	request, err := h.payoutService.CreateRequest(userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			utils.NotFoundResponse(c, "User")
		case errors.Is(err, services.ErrKYCNotApproved):
			utils.ForbiddenResponse(c, err.Error())
		case errors.Is(err, services.ErrPayoutBounds),
			errors.Is(err, services.ErrInsufficientBalance),
			errors.Is(err, services.ErrPayoutMethodNotFound):
			utils.BadRequestResponse(c, err.Error(), nil)
		default:
			utils.InternalErrorResponse(c, err.Error())
		}
		return
	}

	utils.CreatedResponse(c, gin.H{"payout_request": request})
}

// GET /payouts/requests
func (h *PayoutHandler) ListMyRequests(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	filter := buildPayoutFilter(c)
	filter.UserID = &userID

	h.list(c, filter)
}

// GET /admin/payouts
func (h *PayoutHandler) ListRequests(c *gin.Context) {
	filter := buildPayoutFilter(c)
	if userIDStr := c.Query("user_id"); userIDStr != "" {
		if userID, err := uuid.Parse(userIDStr); err == nil {
			filter.UserID = &userID
		}
	}

	h.list(c, filter)
}

func (h *PayoutHandler) list(c *gin.Context, filter services.PayoutFilter) {
	requests, total, err := h.payoutService.ListRequests(filter)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.PaginatedResponse(c, utils.CreatePaginationResult(requests, total, filter.PaginationParams))
}

func buildPayoutFilter(c *gin.Context) services.PayoutFilter {
	filter := services.PayoutFilter{
		PaginationParams: utils.GetPaginationParams(c),
	}
	if filter.PaginationParams.Status != "" {
		status := models.PayoutStatus(filter.PaginationParams.Status)
		filter.Status = &status
	}
	return filter
}

// PUT /admin/payouts/:id/status
func (h *PayoutHandler) UpdateStatus(c *gin.Context) {
	adminID, ok := currentUserID(c)
	if !ok {
		return
	}

	payoutID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req struct {
		Status models.PayoutStatus `json:"status" validate:"required,oneof=approved rejected paid"`
		Notes  string              `json:"notes,omitempty"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid input", err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	request, err := h.payoutService.UpdateStatus(payoutID, req.Status, adminID, req.Notes)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrPayoutNotFound):
			utils.NotFoundResponse(c, "Payout request")
		case errors.Is(err, services.ErrInvalidTransition):
			utils.ConflictResponse(c, err.Error())
		default:
			utils.InternalErrorResponse(c, err.Error())
		}
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message":        "Payout status updated",
		"payout_request": request,
	})
}
