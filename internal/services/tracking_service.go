// internal/services/tracking_service.go
package services

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/wasteyuse/creatorly-backend/internal/config"
	"github.com/wasteyuse/creatorly-backend/internal/database"
	"github.com/wasteyuse/creatorly-backend/internal/models"
	"github.com/wasteyuse/creatorly-backend/internal/utils"
)

var (
	ErrSubmissionNotFound = errors.New("submission not found")
	ErrNotAProduct        = errors.New("affiliate hits only apply to product submissions")
)

// TrackingService records views and affiliate hits against submissions and
// keeps the submission counters, the owning profile's running totals and the
// transaction ledger consistent. All three writes happen in one database
// transaction holding a row lock on the submission, so concurrent hits on the
// same submission serialize instead of losing updates.
type TrackingService struct {
	db  *gorm.DB
	cfg *config.Config

	// best-effort duplicate suppression per (submission, client) pair
	dedupWindow time.Duration
	mtx         sync.Mutex
	seen        map[string]time.Time
	lastSweep   time.Time
}

type ViewResult struct {
	Recorded        bool    `json:"recorded"`
	Duplicate       bool    `json:"duplicate,omitempty"`
	Views           int64   `json:"views"`
	AffiliateClicks int64   `json:"affiliate_clicks"`
	Earnings        float64 `json:"earnings"`
	Delta           float64 `json:"delta"`
}

func NewTrackingService(db *gorm.DB, cfg *config.Config) *TrackingService {
	return &TrackingService{
		db:          db,
		cfg:         cfg,
		dedupWindow: time.Hour,
		seen:        make(map[string]time.Time),
		lastSweep:   time.Now(),
	}
}

// sweepSeen drops expired entries. Called with the mutex held; runs at most
// once a minute so the hot path stays cheap.
func (s *TrackingService) sweepSeen() {
	if time.Since(s.lastSweep) < time.Minute {
		return
	}
	for key, at := range s.seen {
		if time.Since(at) > s.dedupWindow {
			delete(s.seen, key)
		}
	}
	s.lastSweep = time.Now()
}

// isDuplicate marks the (submission, client) pair as seen and reports whether
// it was already seen inside the dedup window. An empty clientIP disables
// suppression (trusted internal callers).
func (s *TrackingService) isDuplicate(submissionID uuid.UUID, clientIP string) bool {
	if clientIP == "" {
		return false
	}

	key := utils.HashString(submissionID.String() + "|" + clientIP)

	s.mtx.Lock()
	defer s.mtx.Unlock()

	s.sweepSeen()

	if at, ok := s.seen[key]; ok && time.Since(at) < s.dedupWindow {
		return true
	}
	s.seen[key] = time.Now()
	return false
}

// RecordView implements the view/conversion recorder contract: a no-op for
// submissions that are not approved, a view increment with the per-mille
// earnings formula for regular hits, and a flat-rate click increment for
// affiliate hits on product submissions. The earnings delta is propagated to
// the creator's running balance and, when positive, appended to the ledger.
func (s *TrackingService) RecordView(submissionID uuid.UUID, isAffiliate bool, clientIP string) (*ViewResult, error) {
	if s.isDuplicate(submissionID, clientIP) {
		return &ViewResult{Recorded: false, Duplicate: true}, nil
	}

	result := &ViewResult{}

	err := database.WithTransaction(s.db, func(tx *gorm.DB) error {
		var submission models.Submission
		if err := lockForUpdate(tx).First(&submission, "id = ?", submissionID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrSubmissionNotFound
			}
			return fmt.Errorf("database error: %w", err)
		}

		if submission.Status != models.SubmissionStatusApproved {
			// Unreviewed and rejected submissions never earn
			result.Views = submission.Views
			result.AffiliateClicks = submission.AffiliateClicks
			result.Earnings = submission.Earnings
			return nil
		}

		previousEarnings := submission.Earnings
		transactionType := models.TransactionTypeEarning
		source := "view"

		if isAffiliate {
			if !submission.IsProduct() {
				return ErrNotAProduct
			}
			submission.AffiliateClicks++
			transactionType = models.TransactionTypeAffiliate
			source = "affiliate_click"
		} else {
			submission.Views++
		}

		// Earnings are the sum of both components, recomputed from the
		// counters so a view can never clobber accrued affiliate earnings.
		submission.Earnings = float64(submission.Views)/float64(s.cfg.Earnings.ViewsPerRupee) +
			float64(submission.AffiliateClicks)*s.cfg.Earnings.AffiliateHitRate

		delta := submission.Earnings - previousEarnings

		updates := map[string]interface{}{
			"views":            submission.Views,
			"affiliate_clicks": submission.AffiliateClicks,
			"earnings":         submission.Earnings,
		}
		if err := tx.Model(&models.Submission{}).Where("id = ?", submission.ID).Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to update submission: %w", err)
		}

		profileUpdates := map[string]interface{}{
			"total_earnings": gorm.Expr("total_earnings + ?", delta),
		}
		if !isAffiliate {
			profileUpdates["total_views"] = gorm.Expr("total_views + 1")
		}
		if err := tx.Model(&models.User{}).Where("id = ?", submission.CreatorID).Updates(profileUpdates).Error; err != nil {
			return fmt.Errorf("failed to update creator totals: %w", err)
		}

		if delta > 0 {
			entry := &models.Transaction{
				UserID:       submission.CreatorID,
				Type:         transactionType,
				Amount:       delta,
				Status:       models.TransactionStatusApproved,
				Source:       source,
				SubmissionID: &submission.ID,
			}
			if err := tx.Create(entry).Error; err != nil {
				return fmt.Errorf("failed to append ledger entry: %w", err)
			}
		}

		result.Recorded = true
		result.Views = submission.Views
		result.AffiliateClicks = submission.AffiliateClicks
		result.Earnings = submission.Earnings
		result.Delta = delta
		return nil
	})
	if err != nil {
		return nil, err
	}

	if result.Recorded {
		logrus.WithFields(logrus.Fields{
			"submission_id": submissionID,
			"affiliate":     isAffiliate,
			"views":         result.Views,
			"delta":         result.Delta,
		}).Debug("View recorded")
	}

	return result, nil
}

// RecordConversion bumps the affiliate conversion counter for a product
// submission. Conversions are bookkeeping only; earnings accrue per click.
func (s *TrackingService) RecordConversion(submissionID uuid.UUID) (int64, error) {
	var conversions int64

	err := database.WithTransaction(s.db, func(tx *gorm.DB) error {
		var submission models.Submission
		if err := lockForUpdate(tx).First(&submission, "id = ?", submissionID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrSubmissionNotFound
			}
			return fmt.Errorf("database error: %w", err)
		}

		if !submission.IsProduct() {
			return ErrNotAProduct
		}

		submission.AffiliateConversions++
		if err := tx.Model(&models.Submission{}).Where("id = ?", submission.ID).
			Update("affiliate_conversions", submission.AffiliateConversions).Error; err != nil {
			return fmt.Errorf("failed to update submission: %w", err)
		}

		conversions = submission.AffiliateConversions
		return nil
	})

	return conversions, err
}

// RecalculateTotalViews recomputes and persists a user's total view count as
// the sum of their submission view counters.
func (s *TrackingService) RecalculateTotalViews(userID uuid.UUID) (int64, error) {
	var total int64

	err := database.WithTransaction(s.db, func(tx *gorm.DB) error {
		var user models.User
		if err := lockForUpdate(tx).First(&user, "id = ?", userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return fmt.Errorf("database error: %w", err)
		}

		if err := tx.Model(&models.Submission{}).
			Where("creator_id = ?", userID).
			Select("COALESCE(SUM(views), 0)").Scan(&total).Error; err != nil {
			return fmt.Errorf("failed to sum submission views: %w", err)
		}

		if err := tx.Model(&models.User{}).Where("id = ?", userID).
			Update("total_views", total).Error; err != nil {
			return fmt.Errorf("failed to persist total views: %w", err)
		}

		return nil
	})

	return total, err
}

// lockForUpdate takes a row lock on databases that support it. SQLite (used
// in tests) serializes writers anyway.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "postgres" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}
