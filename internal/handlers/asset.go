// internal/handlers/asset.go
package handlers

import (
	"errors"
	"mime/multipart"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/wasteyuse/creatorly-backend/internal/models"
	"github.com/wasteyuse/creatorly-backend/internal/services"
	"github.com/wasteyuse/creatorly-backend/internal/utils"
)

type AssetHandler struct {
	assetService *services.AssetService
}

func NewAssetHandler(assetService *services.AssetService) *AssetHandler {
	return &AssetHandler{
		assetService: assetService,
	}
}

// POST /admin/assets
//
// Accepts multipart form data with an optional file part; metadata comes
// from the remaining form fields.
func (h *AssetHandler) Add(c *gin.Context) {
	adminID, ok := currentUserID(c)
	if !ok {
		return
	}

	req := services.AddAssetRequest{
		Title:       c.PostForm("title"),
		Type:        c.PostForm("type"),
		Description: c.PostForm("description"),
		FileURL:     c.PostForm("file_url"),
	}
	if tags := c.PostForm("tags"); tags != "" {
		for _, tag := range strings.Split(tags, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				req.Tags = append(req.Tags, tag)
			}
		}
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	var file multipart.File
	var header *multipart.FileHeader
	if f, fh, err := c.Request.FormFile("file"); err == nil {
		file = f
		header = fh
		defer f.Close()
	}

	asset, err := h.assetService.Add(adminID, &req, file, header)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.CreatedResponse(c, gin.H{"asset": asset})
}

// GET /assets
func (h *AssetHandler) List(c *gin.Context) {
	filter := services.AssetFilter{
		PaginationParams: utils.GetPaginationParams(c),
	}
	if typeStr := c.Query("type"); typeStr != "" {
		filter.Type = &typeStr
	}

	// Non-admin listing only exposes approved assets.
	userType, _ := utils.GetUserTypeFromContext(c)
	if userType == string(models.UserTypeAdmin) && filter.PaginationParams.Status != "" {
		status := models.WorkflowStatus(filter.PaginationParams.Status)
		filter.WorkflowStatus = &status
	} else {
		approved := models.WorkflowStatusApproved
		filter.WorkflowStatus = &approved
	}

	assets, total, err := h.assetService.List(filter)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.PaginatedResponse(c, utils.CreatePaginationResult(assets, total, filter.PaginationParams))
}

// GET /assets/:id
func (h *AssetHandler) Get(c *gin.Context) {
	assetID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	asset, err := h.assetService.GetByID(assetID)
	if err != nil {
		utils.NotFoundResponse(c, "Asset")
		return
	}

	utils.SuccessResponse(c, gin.H{"asset": asset})
}

// PUT /admin/assets/:id/status
func (h *AssetHandler) UpdateWorkflowStatus(c *gin.Context) {
	adminID, ok := currentUserID(c)
	if !ok {
		return
	}

	assetID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req struct {
		Status models.WorkflowStatus `json:"status" validate:"required,oneof=draft in_review approved rejected"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid input", err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	asset, err := h.assetService.UpdateWorkflowStatus(assetID, adminID, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrAssetNotFound):
			utils.NotFoundResponse(c, "Asset")
		case errors.Is(err, services.ErrInvalidWorkflowStatus):
			utils.ConflictResponse(c, err.Error())
		default:
			utils.InternalErrorResponse(c, err.Error())
		}
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": "Asset status updated",
		"asset":   asset,
	})
}
