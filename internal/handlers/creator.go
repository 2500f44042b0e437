// internal/handlers/creator.go
package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/wasteyuse/creatorly-backend/internal/services"
	"github.com/wasteyuse/creatorly-backend/internal/utils"
)

type CreatorHandler struct {
	creatorService *services.CreatorService
}

func NewCreatorHandler(creatorService *services.CreatorService) *CreatorHandler {
	return &CreatorHandler{
		creatorService: creatorService,
	}
}

// POST /creators/apply
func (h *CreatorHandler) Apply(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	user, err := h.creatorService.Apply(userID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			utils.NotFoundResponse(c, "User")
		case errors.Is(err, services.ErrAlreadyCreator):
			utils.ConflictResponse(c, err.Error())
		default:
			utils.InternalErrorResponse(c, err.Error())
		}
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": "Creator application submitted",
		"user":    user,
	})
}

// PUT /creators/me
func (h *CreatorHandler) UpdateProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req services.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid input", err.Error())
		return
	}

	user, err := h.creatorService.UpdateProfile(userID, &req)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			utils.NotFoundResponse(c, "User")
			return
		}
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{"user": user})
}

// GET /creators/:id
func (h *CreatorHandler) GetPublicProfile(c *gin.Context) {
	creatorID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	user, err := h.creatorService.GetPublicProfile(creatorID)
	if err != nil {
		utils.NotFoundResponse(c, "Creator")
		return
	}

	utils.SuccessResponse(c, gin.H{"creator": user})
}

// GET /creators
func (h *CreatorHandler) List(c *gin.Context) {
	filter := services.CreatorFilter{
		PaginationParams: utils.GetPaginationParams(c),
	}
	if approvedStr := c.Query("approved"); approvedStr != "" {
		if approved, err := strconv.ParseBool(approvedStr); err == nil {
			filter.Approved = &approved
		}
	}

	creators, total, err := h.creatorService.List(filter)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.PaginatedResponse(c, utils.CreatePaginationResult(creators, total, filter.PaginationParams))
}

// POST /admin/creators/:id/approve
func (h *CreatorHandler) Approve(c *gin.Context) {
	adminID, ok := currentUserID(c)
	if !ok {
		return
	}

	creatorID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	user, err := h.creatorService.Approve(creatorID, adminID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			utils.NotFoundResponse(c, "User")
			return
		}
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": "Creator approved",
		"user":    user,
	})
}
