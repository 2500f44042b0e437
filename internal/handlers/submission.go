// internal/handlers/submission.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/wasteyuse/creatorly-backend/internal/models"
	"github.com/wasteyuse/creatorly-backend/internal/services"
	"github.com/wasteyuse/creatorly-backend/internal/utils"
)

type SubmissionHandler struct {
	submissionService *services.SubmissionService
}

func NewSubmissionHandler(submissionService *services.SubmissionService) *SubmissionHandler {
	return &SubmissionHandler{
		submissionService: submissionService,
	}
}

// POST /submissions
func (h *SubmissionHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req services.CreateSubmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid input", err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	submission, err := h.submissionService.Create(userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotACreator):
			utils.ForbiddenResponse(c, err.Error())
		case errors.Is(err, services.ErrAssetNotFound):
			utils.BadRequestResponse(c, err.Error(), nil)
		default:
			utils.InternalErrorResponse(c, err.Error())
		}
		return
	}

	utils.CreatedResponse(c, gin.H{"submission": submission})
}

// GET /submissions/:id
func (h *SubmissionHandler) Get(c *gin.Context) {
	submissionID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	submission, err := h.submissionService.GetByID(submissionID)
	if err != nil {
		utils.NotFoundResponse(c, "Submission")
		return
	}

	utils.SuccessResponse(c, gin.H{"submission": submission})
}

// GET /submissions/mine
func (h *SubmissionHandler) ListMine(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	filter := buildSubmissionFilter(c)
	filter.CreatorID = &userID

	h.list(c, filter)
}

// GET /submissions
func (h *SubmissionHandler) List(c *gin.Context) {
	filter := buildSubmissionFilter(c)
	if creatorIDStr := c.Query("creator_id"); creatorIDStr != "" {
		if creatorID, err := uuid.Parse(creatorIDStr); err == nil {
			filter.CreatorID = &creatorID
		}
	}

	h.list(c, filter)
}

func (h *SubmissionHandler) list(c *gin.Context, filter services.SubmissionFilter) {
	submissions, total, err := h.submissionService.List(filter)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.PaginatedResponse(c, utils.CreatePaginationResult(submissions, total, filter.PaginationParams))
}

func buildSubmissionFilter(c *gin.Context) services.SubmissionFilter {
	filter := services.SubmissionFilter{
		PaginationParams: utils.GetPaginationParams(c),
	}
	if filter.PaginationParams.Status != "" {
		status := models.SubmissionStatus(filter.PaginationParams.Status)
		filter.Status = &status
	}
	if typeStr := c.Query("type"); typeStr != "" {
		submissionType := models.SubmissionType(typeStr)
		filter.Type = &submissionType
	}
	return filter
}

// POST /admin/submissions/:id/approve
func (h *SubmissionHandler) Approve(c *gin.Context) {
	adminID, ok := currentUserID(c)
	if !ok {
		return
	}

	submissionID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	submission, err := h.submissionService.Approve(submissionID, adminID)
	if err != nil {
		h.reviewError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message":    "Submission approved",
		"submission": submission,
	})
}

// POST /admin/submissions/:id/reject
func (h *SubmissionHandler) Reject(c *gin.Context) {
	adminID, ok := currentUserID(c)
	if !ok {
		return
	}

	submissionID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req struct {
		Reason string `json:"reason" validate:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid input", err.Error())
		return
	}

	submission, err := h.submissionService.Reject(submissionID, adminID, req.Reason)
	if err != nil {
		h.reviewError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message":    "Submission rejected",
		"submission": submission,
	})
}

func (h *SubmissionHandler) reviewError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrSubmissionNotFound):
		utils.NotFoundResponse(c, "Submission")
	case errors.Is(err, services.ErrSubmissionReviewed):
		utils.ConflictResponse(c, err.Error())
	case errors.Is(err, services.ErrRejectionNeedsReason):
		utils.BadRequestResponse(c, err.Error(), nil)
	default:
		utils.InternalErrorResponse(c, err.Error())
	}
}
