// internal/handlers/kyc.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/wasteyuse/creatorly-backend/internal/models"
	"github.com/wasteyuse/creatorly-backend/internal/services"
	"github.com/wasteyuse/creatorly-backend/internal/utils"
)

type KYCHandler struct {
	kycService *services.KYCService
}

func NewKYCHandler(kycService *services.KYCService) *KYCHandler {
	return &KYCHandler{
		kycService: kycService,
	}
}

// POST /kyc/documents
func (h *KYCHandler) UploadDocument(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	documentType := c.PostForm("document_type")
	if documentType == "" {
		utils.BadRequestResponse(c, "document_type is required", nil)
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		utils.BadRequestResponse(c, "No file provided", err.Error())
		return
	}
	defer file.Close()

	document, err := h.kycService.UploadDocument(userID, documentType, file, header)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			utils.NotFoundResponse(c, "User")
			return
		}
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.CreatedResponse(c, gin.H{"document": document})
}

// GET /kyc/status
func (h *KYCHandler) GetStatus(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	status, err := h.kycService.GetStatus(userID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			utils.NotFoundResponse(c, "User")
			return
		}
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, status)
}

// PUT /admin/kyc/:userId
func (h *KYCHandler) Review(c *gin.Context) {
	adminID, ok := currentUserID(c)
	if !ok {
		return
	}

	userID, ok := parseIDParam(c, "userId")
	if !ok {
		return
	}

	var req struct {
		Status models.KYCStatus `json:"status" validate:"required,oneof=approved rejected"`
		Reason string           `json:"reason,omitempty"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid input", err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	user, err := h.kycService.Review(userID, adminID, req.Status, req.Reason)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			utils.NotFoundResponse(c, "User")
		case errors.Is(err, services.ErrInvalidKYCStatus),
			errors.Is(err, services.ErrKYCReasonMissing):
			utils.BadRequestResponse(c, err.Error(), nil)
		default:
			utils.InternalErrorResponse(c, err.Error())
		}
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": "KYC review recorded",
		"user":    user,
	})
}

// GET /admin/kyc/:userId/documents
func (h *KYCHandler) DocumentURLs(c *gin.Context) {
	userID, ok := parseIDParam(c, "userId")
	if !ok {
		return
	}

	urls, err := h.kycService.DocumentURLs(userID)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{"documents": urls})
}
