// internal/services/kyc_service.go
package services

import (
	"errors"
	"fmt"
	"mime/multipart"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/wasteyuse/creatorly-backend/internal/config"
	"github.com/wasteyuse/creatorly-backend/internal/models"
)

var (
	ErrInvalidKYCStatus = errors.New("KYC status must be approved or rejected")
	ErrKYCReasonMissing = errors.New("KYC rejection requires a non-empty reason")
)

// KYCService handles identity verification: document upload into the private
// bucket, admin review, and time-limited document access.
type KYCService struct {
	db      *gorm.DB
	cfg     *config.Config
	storage *StorageService
}

type KYCStatusResponse struct {
	Status          models.KYCStatus     `json:"status"`
	RejectionReason string               `json:"rejection_reason,omitempty"`
	ReviewedAt      *time.Time           `json:"reviewed_at,omitempty"`
	Documents       []models.KYCDocument `json:"documents"`
}

func NewKYCService(db *gorm.DB, cfg *config.Config, storage *StorageService) *KYCService {
	return &KYCService{db: db, cfg: cfg, storage: storage}
}

// UploadDocument stores an identity document in the private bucket and
// resets a previously rejected verification back to pending.
func (s *KYCService) UploadDocument(userID uuid.UUID, documentType string, file multipart.File, header *multipart.FileHeader) (*models.KYCDocument, error) {
	if documentType == "" {
		return nil, errors.New("document type is required")
	}

	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	result, err := s.storage.UploadFile(file, header, s.storage.GetDefaultUploadOptions("kyc"))
	if err != nil {
		return nil, err
	}

	doc := &models.KYCDocument{
		UserID:       userID,
		DocumentType: documentType,
		StorageKey:   result.Key,
		FileName:     header.Filename,
		MimeType:     result.MimeType,
	}

	if err := s.db.Create(doc).Error; err != nil {
		return nil, fmt.Errorf("failed to save document record: %w", err)
	}

	// Re-submission after rejection reopens the review
	if user.KYCStatus == models.KYCStatusRejected {
		if err := s.db.Model(&user).Updates(map[string]interface{}{
			"kyc_status":           models.KYCStatusPending,
			"kyc_rejection_reason": "",
		}).Error; err != nil {
			return nil, fmt.Errorf("failed to reset KYC status: %w", err)
		}
	}

	return doc, nil
}

func (s *KYCService) GetStatus(userID uuid.UUID) (*KYCStatusResponse, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	var docs []models.KYCDocument
	if err := s.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&docs).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch documents: %w", err)
	}

	return &KYCStatusResponse{
		Status:          user.KYCStatus,
		RejectionReason: user.KYCRejectionReason,
		ReviewedAt:      user.KYCReviewedAt,
		Documents:       docs,
	}, nil
}

// Review sets a user's KYC status. Rejection requires a reason; approval
// clears any previous one.
func (s *KYCService) Review(userID, adminID uuid.UUID, status models.KYCStatus, reason string) (*models.User, error) {
	if status != models.KYCStatusApproved && status != models.KYCStatusRejected {
		return nil, ErrInvalidKYCStatus
	}
	if status == models.KYCStatusRejected && reason == "" {
		return nil, ErrKYCReasonMissing
	}

	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	now := time.Now()
	updates := map[string]interface{}{
		"kyc_status":      status,
		"kyc_reviewed_at": &now,
	}
	if status == models.KYCStatusRejected {
		updates["kyc_rejection_reason"] = reason
	} else {
		updates["kyc_rejection_reason"] = ""
	}

	if err := s.db.Model(&user).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update KYC status: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"user_id":  userID,
		"admin_id": adminID,
		"status":   status,
	}).Info("KYC reviewed")

	user.KYCStatus = status
	user.KYCReviewedAt = &now
	if status == models.KYCStatusRejected {
		user.KYCRejectionReason = reason
	} else {
		user.KYCRejectionReason = ""
	}
	return &user, nil
}

// DocumentURLs returns presigned, short-lived URLs for a user's KYC
// documents, for admin review.
func (s *KYCService) DocumentURLs(userID uuid.UUID) (map[string]string, error) {
	var docs []models.KYCDocument
	if err := s.db.Where("user_id = ?", userID).Find(&docs).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch documents: %w", err)
	}

	expiry := time.Duration(s.cfg.AWS.SignedURLExpiry) * time.Minute
	urls := make(map[string]string, len(docs))
	for _, doc := range docs {
		url, err := s.storage.GeneratePresignedURL(doc.StorageKey, expiry)
		if err != nil {
			return nil, err
		}
		urls[doc.ID.String()] = url
	}

	return urls, nil
}
