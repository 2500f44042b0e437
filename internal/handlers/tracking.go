// internal/handlers/tracking.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/wasteyuse/creatorly-backend/internal/services"
	"github.com/wasteyuse/creatorly-backend/internal/utils"
)

type TrackingHandler struct {
	trackingService *services.TrackingService
}

func NewTrackingHandler(trackingService *services.TrackingService) *TrackingHandler {
	return &TrackingHandler{
		trackingService: trackingService,
	}
}

// POST /track/view
func (h *TrackingHandler) TrackView(c *gin.Context) {
	var req struct {
		SubmissionID uuid.UUID `json:"submission_id" validate:"required"`
		IsAffiliate  bool      `json:"is_affiliate"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid input", err.Error())
		return
	}
	if req.SubmissionID == uuid.Nil {
		utils.BadRequestResponse(c, "submission_id is required", nil)
		return
	}

	result, err := h.trackingService.RecordView(req.SubmissionID, req.IsAffiliate, c.ClientIP())
	if err != nil {
		switch {
		case errors.Is(err, services.ErrSubmissionNotFound):
			utils.NotFoundResponse(c, "Submission")
		case errors.Is(err, services.ErrNotAProduct):
			utils.BadRequestResponse(c, err.Error(), nil)
		default:
			utils.InternalErrorResponse(c, err.Error())
		}
		return
	}

	utils.SuccessResponse(c, result)
}

// POST /admin/submissions/:id/conversion
func (h *TrackingHandler) TrackConversion(c *gin.Context) {
	submissionID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	conversions, err := h.trackingService.RecordConversion(submissionID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrSubmissionNotFound):
			utils.NotFoundResponse(c, "Submission")
		case errors.Is(err, services.ErrNotAProduct):
			utils.BadRequestResponse(c, err.Error(), nil)
		default:
			utils.InternalErrorResponse(c, err.Error())
		}
		return
	}

	utils.SuccessResponse(c, gin.H{"conversions": conversions})
}

// POST /track/recalculate-views
func (h *TrackingHandler) RecalculateViews(c *gin.Context) {
	var req struct {
		UserID uuid.UUID `json:"user_id" validate:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid input", err.Error())
		return
	}
	if req.UserID == uuid.Nil {
		utils.BadRequestResponse(c, "user_id is required", nil)
		return
	}

	totalViews, err := h.trackingService.RecalculateTotalViews(req.UserID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			utils.NotFoundResponse(c, "User")
			return
		}
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{"total_views": totalViews})
}
