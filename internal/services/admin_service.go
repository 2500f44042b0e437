// internal/services/admin_service.go
package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/wasteyuse/creatorly-backend/internal/models"
	"github.com/wasteyuse/creatorly-backend/internal/utils"
)

type AdminService struct {
	db *gorm.DB
}

type AdminDashboardStats struct {
	TotalUsers         int64   `json:"total_users"`
	ActiveUsers        int64   `json:"active_users"`
	TotalCreators      int64   `json:"total_creators"`
	PendingCreators    int64   `json:"pending_creators"`
	TotalSubmissions   int64   `json:"total_submissions"`
	PendingSubmissions int64   `json:"pending_submissions"`
	TotalViews         int64   `json:"total_views"`
	TotalEarnings      float64 `json:"total_earnings"`
	MonthlyEarnings    float64 `json:"monthly_earnings"`
	PendingPayouts     int64   `json:"pending_payouts"`
	PendingKYC         int64   `json:"pending_kyc"`
	OpenTickets        int64   `json:"open_tickets"`
}

type AdminUserFilter struct {
	utils.PaginationParams
	UserType      *models.UserType   `json:"user_type,omitempty"`
	Status        *models.UserStatus `json:"status,omitempty"`
	KYCStatus     *models.KYCStatus  `json:"kyc_status,omitempty"`
	IsCreator     *bool              `json:"is_creator,omitempty"`
	CreatedAfter  *time.Time         `json:"created_after,omitempty"`
	CreatedBefore *time.Time         `json:"created_before,omitempty"`
}

func NewAdminService(db *gorm.DB) *AdminService {
	return &AdminService{db: db}
}

// Dashboard Statistics
func (s *AdminService) GetDashboardStats() (*AdminDashboardStats, error) {
	stats := &AdminDashboardStats{}
	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	// User statistics
	s.db.Model(&models.User{}).Count(&stats.TotalUsers)
	s.db.Model(&models.User{}).Where("status = ?", models.UserStatusActive).Count(&stats.ActiveUsers)
	s.db.Model(&models.User{}).Where("is_creator = ? AND is_approved = ?", true, true).Count(&stats.TotalCreators)
	s.db.Model(&models.User{}).Where("is_creator = ? AND is_approved = ?", true, false).Count(&stats.PendingCreators)

	// Submission statistics
	s.db.Model(&models.Submission{}).Count(&stats.TotalSubmissions)
	s.db.Model(&models.Submission{}).
		Where("status = ?", models.SubmissionStatusPending).Count(&stats.PendingSubmissions)
	s.db.Model(&models.Submission{}).
		Select("COALESCE(SUM(views), 0)").Scan(&stats.TotalViews)

	// Earnings from the ledger, not the materialized counters
	s.db.Model(&models.Transaction{}).
		Where("type IN ?", []models.TransactionType{models.TransactionTypeEarning, models.TransactionTypeAffiliate}).
		Select("COALESCE(SUM(amount), 0)").Scan(&stats.TotalEarnings)

	s.db.Model(&models.Transaction{}).
		Where("type IN ? AND created_at >= ?",
			[]models.TransactionType{models.TransactionTypeEarning, models.TransactionTypeAffiliate}, monthStart).
		Select("COALESCE(SUM(amount), 0)").Scan(&stats.MonthlyEarnings)

	// Review queues
	s.db.Model(&models.PayoutRequest{}).
		Where("status = ?", models.PayoutStatusPending).Count(&stats.PendingPayouts)
	s.db.Model(&models.User{}).
		Where("kyc_status = ? AND is_creator = ?", models.KYCStatusPending, true).Count(&stats.PendingKYC)
	s.db.Model(&models.SupportTicket{}).
		Where("status = ?", models.TicketStatusOpen).Count(&stats.OpenTickets)

	return stats, nil
}

// User Management
func (s *AdminService) GetUsers(filter AdminUserFilter) ([]models.User, int64, error) {
	query := s.db.Model(&models.User{})

	// Apply filters
	if filter.UserType != nil {
		query = query.Where("user_type = ?", *filter.UserType)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.KYCStatus != nil {
		query = query.Where("kyc_status = ?", *filter.KYCStatus)
	}
	if filter.IsCreator != nil {
		query = query.Where("is_creator = ?", *filter.IsCreator)
	}
	if filter.Search != "" {
		searchTerm := "%" + filter.Search + "%"
		query = query.Where("username LIKE ? OR email LIKE ?", searchTerm, searchTerm)
	}
	if filter.CreatedAfter != nil {
		query = query.Where("created_at >= ?", *filter.CreatedAfter)
	}
	if filter.CreatedBefore != nil {
		query = query.Where("created_at <= ?", *filter.CreatedBefore)
	}

	// Get total count
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}

	// Apply sorting and pagination
	allowedSortFields := []string{"created_at", "updated_at", "username", "email", "user_type", "status", "total_earnings"}
	query = utils.ApplySort(query, filter.PaginationParams, allowedSortFields)
	query = utils.ApplyPagination(query, filter.PaginationParams)

	// Execute query
	var users []models.User
	if err := query.Find(&users).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch users: %w", err)
	}

	return users, total, nil
}

func (s *AdminService) UpdateUserStatus(userID uuid.UUID, status models.UserStatus, adminID uuid.UUID, reason string) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if user.UserType == models.UserTypeAdmin && status != models.UserStatusActive {
		return nil, errors.New("cannot suspend an admin account")
	}

	user.Status = status
	if err := s.db.Model(&user).Update("status", status).Error; err != nil {
		return nil, fmt.Errorf("failed to update user status: %w", err)
	}

	return &user, nil
}

// Settings
func (s *AdminService) GetSettings(category string) ([]models.AdminSettings, error) {
	query := s.db.Model(&models.AdminSettings{})
	if category != "" {
		query = query.Where("category = ?", category)
	}

	var settings []models.AdminSettings
	if err := query.Order("category, key").Find(&settings).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch settings: %w", err)
	}
	return settings, nil
}

func (s *AdminService) UpdateSetting(category, key string, value models.JSONB, adminID uuid.UUID) (*models.AdminSettings, error) {
	var setting models.AdminSettings
	if err := s.db.Where("category = ? AND key = ?", category, key).First(&setting).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("setting not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	setting.Value = value
	setting.UpdatedBy = adminID
	if err := s.db.Save(&setting).Error; err != nil {
		return nil, fmt.Errorf("failed to update setting: %w", err)
	}

	return &setting, nil
}
