// internal/services/ledger_service.go
package services

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/wasteyuse/creatorly-backend/internal/models"
	"github.com/wasteyuse/creatorly-backend/internal/utils"
)

// LedgerService exposes the append-only transaction log. Writes happen
// inside the tracking and payout workflows; this service only reads.
type LedgerService struct {
	db *gorm.DB
}

type LedgerFilter struct {
	utils.PaginationParams
	UserID       *uuid.UUID                `json:"user_id,omitempty"`
	Type         *models.TransactionType   `json:"type,omitempty"`
	Status       *models.TransactionStatus `json:"status,omitempty"`
	SubmissionID *uuid.UUID                `json:"submission_id,omitempty"`
}

type LedgerSummary struct {
	EarningTotal   float64 `json:"earning_total"`
	AffiliateTotal float64 `json:"affiliate_total"`
	PayoutTotal    float64 `json:"payout_total"`
	EntryCount     int64   `json:"entry_count"`
}

func NewLedgerService(db *gorm.DB) *LedgerService {
	return &LedgerService{db: db}
}

func (s *LedgerService) List(filter LedgerFilter) ([]models.Transaction, int64, error) {
	query := s.db.Model(&models.Transaction{})

	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}
	if filter.Type != nil {
		query = query.Where("type = ?", *filter.Type)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.SubmissionID != nil {
		query = query.Where("submission_id = ?", *filter.SubmissionID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count transactions: %w", err)
	}

	allowedSortFields := []string{"created_at", "amount", "type", "status"}
	query = utils.ApplySort(query, filter.PaginationParams, allowedSortFields)
	query = utils.ApplyPagination(query, filter.PaginationParams)

	var transactions []models.Transaction
	if err := query.Find(&transactions).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch transactions: %w", err)
	}

	return transactions, total, nil
}

// Summarize aggregates a user's ledger by entry type. Payout totals only
// count paid entries.
func (s *LedgerService) Summarize(userID uuid.UUID) (*LedgerSummary, error) {
	summary := &LedgerSummary{}

	if err := s.db.Model(&models.Transaction{}).
		Where("user_id = ? AND type = ?", userID, models.TransactionTypeEarning).
		Select("COALESCE(SUM(amount), 0)").Scan(&summary.EarningTotal).Error; err != nil {
		return nil, fmt.Errorf("failed to sum earnings: %w", err)
	}

	if err := s.db.Model(&models.Transaction{}).
		Where("user_id = ? AND type = ?", userID, models.TransactionTypeAffiliate).
		Select("COALESCE(SUM(amount), 0)").Scan(&summary.AffiliateTotal).Error; err != nil {
		return nil, fmt.Errorf("failed to sum affiliate earnings: %w", err)
	}

	if err := s.db.Model(&models.Transaction{}).
		Where("user_id = ? AND type = ? AND status = ?",
			userID, models.TransactionTypePayout, models.TransactionStatusPaid).
		Select("COALESCE(SUM(amount), 0)").Scan(&summary.PayoutTotal).Error; err != nil {
		return nil, fmt.Errorf("failed to sum payouts: %w", err)
	}

	if err := s.db.Model(&models.Transaction{}).
		Where("user_id = ?", userID).Count(&summary.EntryCount).Error; err != nil {
		return nil, fmt.Errorf("failed to count entries: %w", err)
	}

	return summary, nil
}
