// internal/handlers/support.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/wasteyuse/creatorly-backend/internal/models"
	"github.com/wasteyuse/creatorly-backend/internal/services"
	"github.com/wasteyuse/creatorly-backend/internal/utils"
)

type SupportHandler struct {
	supportService *services.SupportService
}

func NewSupportHandler(supportService *services.SupportService) *SupportHandler {
	return &SupportHandler{
		supportService: supportService,
	}
}

// POST /support/tickets
func (h *SupportHandler) CreateTicket(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req services.CreateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid input", err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	ticket, err := h.supportService.CreateTicket(userID, req)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.CreatedResponse(c, gin.H{"ticket": ticket})
}

// GET /support/tickets
func (h *SupportHandler) ListMyTickets(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	filter := buildTicketFilter(c)
	filter.UserID = &userID

	h.list(c, filter)
}

// GET /support/tickets/:id
func (h *SupportHandler) GetTicket(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	ticketID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	ticket, err := h.supportService.GetUserTicket(ticketID, userID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrTicketNotFound):
			utils.NotFoundResponse(c, "Ticket")
		case errors.Is(err, services.ErrTicketNotOwned):
			utils.ForbiddenResponse(c, "")
		default:
			utils.InternalErrorResponse(c, err.Error())
		}
		return
	}

	utils.SuccessResponse(c, gin.H{"ticket": ticket})
}

// GET /admin/support/tickets
func (h *SupportHandler) ListTickets(c *gin.Context) {
	filter := buildTicketFilter(c)
	if userIDStr := c.Query("user_id"); userIDStr != "" {
		if userID, err := uuid.Parse(userIDStr); err == nil {
			filter.UserID = &userID
		}
	}

	h.list(c, filter)
}

func (h *SupportHandler) list(c *gin.Context, filter services.TicketFilter) {
	tickets, total, err := h.supportService.ListTickets(filter)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.PaginatedResponse(c, utils.CreatePaginationResult(tickets, total, filter.PaginationParams))
}

func buildTicketFilter(c *gin.Context) services.TicketFilter {
	filter := services.TicketFilter{
		PaginationParams: utils.GetPaginationParams(c),
	}
	if filter.PaginationParams.Status != "" {
		status := models.TicketStatus(filter.PaginationParams.Status)
		filter.Status = &status
	}
	return filter
}

// PUT /admin/support/tickets/:id/status
func (h *SupportHandler) UpdateTicketStatus(c *gin.Context) {
	adminID, ok := currentUserID(c)
	if !ok {
		return
	}

	ticketID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req struct {
		Status models.TicketStatus `json:"status" validate:"required,oneof=open in_progress resolved closed"`
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

	ticket, err := h.supportService.UpdateTicketStatus(ticketID, req.Status, adminID, req.Notes)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrTicketNotFound):
			utils.NotFoundResponse(c, "Ticket")
		case errors.Is(err, services.ErrInvalidTicketStatus):
			utils.BadRequestResponse(c, err.Error(), nil)
		default:
			utils.InternalErrorResponse(c, err.Error())
		}
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": "Ticket updated",
		"ticket":  ticket,
	})
}
