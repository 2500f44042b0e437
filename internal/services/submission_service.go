// internal/services/submission_service.go
package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/wasteyuse/creatorly-backend/internal/config"
	"github.com/wasteyuse/creatorly-backend/internal/models"
	"github.com/wasteyuse/creatorly-backend/internal/utils"
)

var (
	ErrNotACreator          = errors.New("only approved creators can submit content")
	ErrSubmissionReviewed   = errors.New("submission has already been reviewed")
	ErrRejectionNeedsReason = errors.New("rejection requires a reason")
)

type SubmissionService struct {
	db  *gorm.DB
	cfg *config.Config
}

type CreateSubmissionRequest struct {
	Type       models.SubmissionType `json:"type" validate:"required,oneof=content product video image"`
	ContentURL string                `json:"content_url" validate:"required,url"`
	AssetID    *uuid.UUID            `json:"asset_id,omitempty"`
}

type SubmissionFilter struct {
	utils.PaginationParams
	CreatorID *uuid.UUID               `json:"creator_id,omitempty"`
	Type      *models.SubmissionType   `json:"type,omitempty"`
	Status    *models.SubmissionStatus `json:"status,omitempty"`
}

func NewSubmissionService(db *gorm.DB, cfg *config.Config) *SubmissionService {
	return &SubmissionService{db: db, cfg: cfg}
}

func (s *SubmissionService) Create(creatorID uuid.UUID, req *CreateSubmissionRequest) (*models.Submission, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	// The creator flag is checked against the database, not the token: the
	// flag may have been revoked since the token was issued.
	var creator models.User
	if err := s.db.First(&creator, "id = ?", creatorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("user not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	if !creator.IsCreator || !creator.IsApproved {
		return nil, ErrNotACreator
	}

	if req.AssetID != nil {
		var asset models.Asset
		if err := s.db.First(&asset, "id = ?", *req.AssetID).Error; err != nil {
			return nil, ErrAssetNotFound
		}
		if asset.WorkflowStatus != models.WorkflowStatusApproved {
			return nil, errors.New("asset is not approved for use")
		}
	}

	submission := &models.Submission{
		CreatorID:  creatorID,
		Type:       req.Type,
		ContentURL: req.ContentURL,
		Status:     models.SubmissionStatusPending,
		AssetID:    req.AssetID,
	}

	if err := s.db.Create(submission).Error; err != nil {
		return nil, fmt.Errorf("failed to create submission: %w", err)
	}

	return submission, nil
}

func (s *SubmissionService) GetByID(id uuid.UUID) (*models.Submission, error) {
	var submission models.Submission
	if err := s.db.Preload("Creator").Preload("Asset").First(&submission, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubmissionNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &submission, nil
}

func (s *SubmissionService) List(filter SubmissionFilter) ([]models.Submission, int64, error) {
	query := s.db.Model(&models.Submission{})

	if filter.CreatorID != nil {
		query = query.Where("creator_id = ?", *filter.CreatorID)
	}
	if filter.Type != nil {
		query = query.Where("type = ?", *filter.Type)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count submissions: %w", err)
	}

	allowedSortFields := []string{"created_at", "views", "earnings", "status"}
	query = utils.ApplySort(query, filter.PaginationParams, allowedSortFields)
	query = utils.ApplyPagination(query, filter.PaginationParams)

	var submissions []models.Submission
	if err := query.Find(&submissions).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch submissions: %w", err)
	}

	return submissions, total, nil
}

// Approve transitions a pending submission to approved. Approving a product
// submission synthesizes its affiliate link from the submission identifier.
func (s *SubmissionService) Approve(id, adminID uuid.UUID) (*models.Submission, error) {
	return s.review(id, adminID, models.SubmissionStatusApproved, "")
}

// Reject transitions a pending submission to rejected.
func (s *SubmissionService) Reject(id, adminID uuid.UUID, reason string) (*models.Submission, error) {
	if reason == "" {
		return nil, ErrRejectionNeedsReason
	}
	return s.review(id, adminID, models.SubmissionStatusRejected, reason)
}

func (s *SubmissionService) review(id, adminID uuid.UUID, target models.SubmissionStatus, reason string) (*models.Submission, error) {
	var submission models.Submission
	if err := s.db.First(&submission, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubmissionNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	// Review is one-way: once approved or rejected a submission is never
	// silently flipped back.
	if submission.Status != models.SubmissionStatusPending {
		return nil, ErrSubmissionReviewed
	}

	now := time.Now()
	submission.Status = target
	submission.ReviewedBy = &adminID
	submission.ReviewedAt = &now

	if target == models.SubmissionStatusApproved && submission.IsProduct() {
		submission.AffiliateLink = s.AffiliateLink(submission.ID)
	}

	if err := s.db.Save(&submission).Error; err != nil {
		return nil, fmt.Errorf("failed to update submission: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"submission_id": submission.ID,
		"status":        target,
		"admin_id":      adminID,
		"reason":        reason,
	}).Info("Submission reviewed")

	return &submission, nil
}

// AffiliateLink templates the submission identifier into the public
// affiliate URL pattern. Deterministic, so re-deriving it is harmless.
func (s *SubmissionService) AffiliateLink(submissionID uuid.UUID) string {
	return fmt.Sprintf("%s/aff/%s", s.cfg.Frontend.BaseURL, submissionID)
}
