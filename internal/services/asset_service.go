// internal/services/asset_service.go
package services

import (
	"errors"
	"fmt"
	"mime/multipart"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/wasteyuse/creatorly-backend/internal/models"
	"github.com/wasteyuse/creatorly-backend/internal/utils"
)

var (
	ErrAssetNotFound         = errors.New("asset not found")
	ErrInvalidWorkflowStatus = errors.New("invalid workflow status")
)

// AssetService manages the admin asset library creators draw submission
// material from.
type AssetService struct {
	db      *gorm.DB
	storage *StorageService
}

type AddAssetRequest struct {
	Title       string   `json:"title" validate:"required,min=3,max=255"`
	Type        string   `json:"type" validate:"required"`
	Description string   `json:"description,omitempty"`
	FileURL     string   `json:"file_url,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

type AssetFilter struct {
	utils.PaginationParams
	Type           *string                `json:"type,omitempty"`
	WorkflowStatus *models.WorkflowStatus `json:"workflow_status,omitempty"`
}

func NewAssetService(db *gorm.DB, storage *StorageService) *AssetService {
	return &AssetService{db: db, storage: storage}
}

// Add registers an asset. When a file is supplied it is uploaded to the
// public assets bucket; otherwise the given file URL is stored as-is.
func (s *AssetService) Add(adminID uuid.UUID, req *AddAssetRequest, file multipart.File, header *multipart.FileHeader) (*models.Asset, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	asset := &models.Asset{
		Title:          req.Title,
		Type:           req.Type,
		Description:    req.Description,
		FileURL:        req.FileURL,
		Tags:           pq.StringArray(req.Tags),
		WorkflowStatus: models.WorkflowStatusDraft,
		CreatedBy:      adminID,
	}

	if file != nil && header != nil {
		result, err := s.storage.UploadFile(file, header, s.storage.GetDefaultUploadOptions("assets"))
		if err != nil {
			return nil, err
		}
		asset.StorageKey = result.Key
		asset.FileURL = result.URL
	}

	if asset.FileURL == "" {
		return nil, errors.New("either a file or a file URL is required")
	}

	if err := s.db.Create(asset).Error; err != nil {
		return nil, fmt.Errorf("failed to create asset: %w", err)
	}

	return asset, nil
}

// workflowTransitions encodes the asset review lifecycle.
var workflowTransitions = map[models.WorkflowStatus][]models.WorkflowStatus{
	models.WorkflowStatusDraft:    {models.WorkflowStatusInReview},
	models.WorkflowStatusInReview: {models.WorkflowStatusApproved, models.WorkflowStatusRejected},
	models.WorkflowStatusRejected: {models.WorkflowStatusInReview},
}

func (s *AssetService) UpdateWorkflowStatus(assetID, adminID uuid.UUID, target models.WorkflowStatus) (*models.Asset, error) {
	var asset models.Asset
	if err := s.db.First(&asset, "id = ?", assetID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAssetNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	allowed := false
	for _, next := range workflowTransitions[asset.WorkflowStatus] {
		if next == target {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidWorkflowStatus, asset.WorkflowStatus, target)
	}

	now := time.Now()
	asset.WorkflowStatus = target
	asset.ReviewedBy = &adminID
	asset.ReviewedAt = &now

	if err := s.db.Save(&asset).Error; err != nil {
		return nil, fmt.Errorf("failed to update asset: %w", err)
	}

	return &asset, nil
}

func (s *AssetService) GetByID(id uuid.UUID) (*models.Asset, error) {
	var asset models.Asset
	if err := s.db.First(&asset, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAssetNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &asset, nil
}

func (s *AssetService) List(filter AssetFilter) ([]models.Asset, int64, error) {
	query := s.db.Model(&models.Asset{})

	if filter.Type != nil {
		query = query.Where("type = ?", *filter.Type)
	}
	if filter.WorkflowStatus != nil {
		query = query.Where("workflow_status = ?", *filter.WorkflowStatus)
	}
	if filter.Search != "" {
		searchTerm := "%" + filter.Search + "%"
		query = query.Where("title LIKE ? OR description LIKE ?", searchTerm, searchTerm)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count assets: %w", err)
	}

	allowedSortFields := []string{"created_at", "title", "type", "workflow_status"}
	query = utils.ApplySort(query, filter.PaginationParams, allowedSortFields)
	query = utils.ApplyPagination(query, filter.PaginationParams)

	var assets []models.Asset
	if err := query.Find(&assets).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch assets: %w", err)
	}

	return assets, total, nil
}
