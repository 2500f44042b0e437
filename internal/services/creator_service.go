// internal/services/creator_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/wasteyuse/creatorly-backend/internal/models"
	"github.com/wasteyuse/creatorly-backend/internal/utils"
)

var (
	ErrUserNotFound   = errors.New("user not found")
	ErrAlreadyCreator = errors.New("user is already an approved creator")
)

// CreatorService handles the member -> creator lifecycle: a member applies,
// an approved admin grants creator status.
type CreatorService struct {
	db *gorm.DB
}

type UpdateProfileRequest struct {
	ProfileData map[string]interface{} `json:"profile_data,omitempty"`
}

type CreatorFilter struct {
	utils.PaginationParams
	Approved *bool `json:"approved,omitempty"`
}

func NewCreatorService(db *gorm.DB) *CreatorService {
	return &CreatorService{db: db}
}

// Apply marks the caller as a creator applicant, pending admin approval.
func (s *CreatorService) Apply(userID uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if user.IsCreator && user.IsApproved {
		return nil, ErrAlreadyCreator
	}

	user.IsCreator = true
	if err := s.db.Model(&user).Update("is_creator", true).Error; err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return &user, nil
}

// Approve marks a creator applicant as creator + approved.
func (s *CreatorService) Approve(userID, adminID uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	user.IsCreator = true
	user.IsApproved = true
	if err := s.db.Model(&user).Updates(map[string]interface{}{
		"is_creator":  true,
		"is_approved": true,
	}).Error; err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"user_id":  userID,
		"admin_id": adminID,
	}).Info("Creator approved")

	return &user, nil
}

func (s *CreatorService) UpdateProfile(userID uuid.UUID, req *UpdateProfileRequest) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if req.ProfileData != nil {
		user.ProfileData = models.JSONB(req.ProfileData)
		if err := s.db.Model(&user).Update("profile_data", user.ProfileData).Error; err != nil {
			return nil, fmt.Errorf("failed to update profile: %w", err)
		}
	}

	return &user, nil
}

func (s *CreatorService) GetPublicProfile(userID uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.Select("id", "username", "profile_data", "is_creator", "is_approved",
		"total_views", "created_at").First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &user, nil
}

func (s *CreatorService) List(filter CreatorFilter) ([]models.User, int64, error) {
	query := s.db.Model(&models.User{}).Where("is_creator = ?", true)

	if filter.Approved != nil {
		query = query.Where("is_approved = ?", *filter.Approved)
	}
	if filter.Search != "" {
		searchTerm := "%" + filter.Search + "%"
		query = query.Where("username LIKE ? OR email LIKE ?", searchTerm, searchTerm)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count creators: %w", err)
	}

	allowedSortFields := []string{"created_at", "username", "total_earnings", "total_views"}
	query = utils.ApplySort(query, filter.PaginationParams, allowedSortFields)
	query = utils.ApplyPagination(query, filter.PaginationParams)

	var creators []models.User
	if err := query.Find(&creators).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch creators: %w", err)
	}

	return creators, total, nil
}
