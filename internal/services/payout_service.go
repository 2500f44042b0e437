// internal/services/payout_service.go
package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/payout"
	"gorm.io/gorm"

	"github.com/wasteyuse/creatorly-backend/internal/config"
	"github.com/wasteyuse/creatorly-backend/internal/database"
	"github.com/wasteyuse/creatorly-backend/internal/models"
	"github.com/wasteyuse/creatorly-backend/internal/utils"
)

var (
	ErrPayoutNotFound       = errors.New("payout request not found")
	ErrPayoutBounds         = errors.New("payout amount out of bounds")
	ErrInsufficientBalance  = errors.New("insufficient available balance")
	ErrKYCNotApproved       = errors.New("KYC verification required before payout")
	ErrInvalidTransition    = errors.New("invalid payout status transition")
	ErrPayoutMethodNotFound = errors.New("payout method not found")
)

// PayoutService owns the withdrawal workflow. Requested amounts are validated
// server side against the configured bounds and the caller's available
// balance, both computed inside the transaction that writes the request row.
type PayoutService struct {
	db     *gorm.DB
	cfg    *config.Config
	wallet *WalletService
}

type AddPayoutMethodRequest struct {
	MethodType string `json:"method_type" validate:"required,payout_method"`
	Details    string `json:"details" validate:"required,min=3,max=255"`
	IsDefault  bool   `json:"is_default"`
}

type CreatePayoutRequest struct {
	Amount         float64    `json:"amount" validate:"required,gt=0"`
	PayoutMethodID *uuid.UUID `json:"payout_method_id,omitempty"`
}

type PayoutFilter struct {
	utils.PaginationParams
	UserID *uuid.UUID           `json:"user_id,omitempty"`
	Status *models.PayoutStatus `json:"status,omitempty"`
}

type Balance struct {
	TotalEarnings    float64 `json:"total_earnings"`
	PendingPayouts   float64 `json:"pending_payouts"`
	PaidOut          float64 `json:"paid_out"`
	AvailableBalance float64 `json:"available_balance"`
	Currency         string  `json:"currency"`
}

func NewPayoutService(db *gorm.DB, cfg *config.Config, wallet *WalletService) *PayoutService {
	// Initialize Stripe
	stripe.Key = cfg.Payment.StripeSecretKey

	return &PayoutService{
		db:     db,
		cfg:    cfg,
		wallet: wallet,
	}
}

// Payout methods

func (s *PayoutService) AddMethod(userID uuid.UUID, req *AddPayoutMethodRequest) (*models.PayoutMethod, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	method := &models.PayoutMethod{
		UserID:     userID,
		MethodType: req.MethodType,
		Details:    req.Details,
		IsDefault:  req.IsDefault,
	}

	err := database.WithTransaction(s.db, func(tx *gorm.DB) error {
		if req.IsDefault {
			if err := tx.Model(&models.PayoutMethod{}).Where("user_id = ?", userID).
				Update("is_default", false).Error; err != nil {
				return fmt.Errorf("failed to clear default method: %w", err)
			}
		}
		if err := tx.Create(method).Error; err != nil {
			return fmt.Errorf("failed to save payout method: %w", err)
		}
		if req.IsDefault {
			if err := tx.Model(&models.User{}).Where("id = ?", userID).
				Update("default_payout_method", method.MethodType).Error; err != nil {
				return fmt.Errorf("failed to update default method: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return method, nil
}

func (s *PayoutService) ListMethods(userID uuid.UUID) ([]models.PayoutMethod, error) {
	var methods []models.PayoutMethod
	if err := s.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&methods).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch payout methods: %w", err)
	}
	return methods, nil
}

// Balance

// availableBalance computes the spendable balance: lifetime earnings minus
// every non-rejected payout amount. Funds are held from request time and
// released only when a request is rejected.
func (s *PayoutService) availableBalance(tx *gorm.DB, user *models.User) (Balance, error) {
	balance := Balance{
		TotalEarnings: user.TotalEarnings,
		Currency:      s.cfg.Payment.Currency,
	}

	var held float64
	if err := tx.Model(&models.PayoutRequest{}).
		Where("user_id = ? AND status IN ?", user.ID,
			[]models.PayoutStatus{models.PayoutStatusPending, models.PayoutStatusApproved}).
		Select("COALESCE(SUM(amount), 0)").Scan(&held).Error; err != nil {
		return balance, fmt.Errorf("failed to sum pending payouts: %w", err)
	}

	var paid float64
	if err := tx.Model(&models.PayoutRequest{}).
		Where("user_id = ? AND status = ?", user.ID, models.PayoutStatusPaid).
		Select("COALESCE(SUM(amount), 0)").Scan(&paid).Error; err != nil {
		return balance, fmt.Errorf("failed to sum paid payouts: %w", err)
	}

	balance.PendingPayouts = held
	balance.PaidOut = paid
	balance.AvailableBalance = user.TotalEarnings - held - paid
	return balance, nil
}

func (s *PayoutService) GetBalance(userID uuid.UUID) (*Balance, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	balance, err := s.availableBalance(s.db, &user)
	if err != nil {
		return nil, err
	}
	return &balance, nil
}

// Requests

func (s *PayoutService) CreateRequest(userID uuid.UUID, req *CreatePayoutRequest) (*models.PayoutRequest, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	if req.Amount < s.cfg.Payment.MinimumPayout || req.Amount > s.cfg.Payment.MaximumPayout {
		return nil, fmt.Errorf("%w: amount must be between %.2f and %.2f", ErrPayoutBounds,
			s.cfg.Payment.MinimumPayout, s.cfg.Payment.MaximumPayout)
	}

	request := &models.PayoutRequest{
		UserID:      userID,
		Amount:      req.Amount,
		Status:      models.PayoutStatusPending,
		RequestedAt: time.Now(),
	}

	err := database.WithTransaction(s.db, func(tx *gorm.DB) error {
		var user models.User
		if err := lockForUpdate(tx).First(&user, "id = ?", userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return fmt.Errorf("database error: %w", err)
		}

		if user.KYCStatus != models.KYCStatusApproved {
			return ErrKYCNotApproved
		}

		balance, err := s.availableBalance(tx, &user)
		if err != nil {
			return err
		}
		if req.Amount > balance.AvailableBalance {
			return ErrInsufficientBalance
		}

		if req.PayoutMethodID != nil {
			var method models.PayoutMethod
			if err := tx.Where("id = ? AND user_id = ?", *req.PayoutMethodID, userID).
				First(&method).Error; err != nil {
				return ErrPayoutMethodNotFound
			}
			request.PayoutMethodID = &method.ID
			request.PaymentMethod = method.Label()
		} else {
			// No explicit method: fall back to the user's default, if any
			var method models.PayoutMethod
			err := tx.Where("user_id = ? AND is_default = ?", userID, true).
				First(&method).Error
			switch {
			case err == nil:
				request.PayoutMethodID = &method.ID
				request.PaymentMethod = method.Label()
			case !errors.Is(err, gorm.ErrRecordNotFound):
				return fmt.Errorf("database error: %w", err)
			}
		}

		if err := tx.Create(request).Error; err != nil {
			return fmt.Errorf("failed to create payout request: %w", err)
		}

		// Ledger row for the requested withdrawal; finalized on admin action
		entry := &models.Transaction{
			UserID:   userID,
			Type:     models.TransactionTypePayout,
			Amount:   req.Amount,
			Status:   models.TransactionStatusPending,
			Source:   "payout_request",
			PayoutID: &request.ID,
		}
		return tx.Create(entry).Error
	})
	if err != nil {
		return nil, err
	}

	return request, nil
}

func (s *PayoutService) GetRequest(id uuid.UUID) (*models.PayoutRequest, error) {
	var request models.PayoutRequest
	if err := s.db.Preload("Method").First(&request, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPayoutNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &request, nil
}

func (s *PayoutService) ListRequests(filter PayoutFilter) ([]models.PayoutRequest, int64, error) {
	query := s.db.Model(&models.PayoutRequest{})

	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count payout requests: %w", err)
	}

	allowedSortFields := []string{"created_at", "requested_at", "amount", "status"}
	query = utils.ApplySort(query, filter.PaginationParams, allowedSortFields)
	query = utils.ApplyPagination(query, filter.PaginationParams)

	var requests []models.PayoutRequest
	if err := query.Find(&requests).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch payout requests: %w", err)
	}

	return requests, total, nil
}

// validTransitions encodes the payout state machine: pending may be approved
// or rejected, approved may be paid. Rejected and paid are terminal.
var validTransitions = map[models.PayoutStatus][]models.PayoutStatus{
	models.PayoutStatusPending:  {models.PayoutStatusApproved, models.PayoutStatusRejected},
	models.PayoutStatusApproved: {models.PayoutStatusPaid},
}

func canTransition(from, to models.PayoutStatus) bool {
	for _, allowed := range validTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// UpdateStatus moves a payout request through its lifecycle. Rejection
// releases the held funds, payment finalizes the ledger row, credits the
// user's wallet and, when Stripe is configured, triggers the disbursement.
func (s *PayoutService) UpdateStatus(id uuid.UUID, target models.PayoutStatus, adminID uuid.UUID, notes string) (*models.PayoutRequest, error) {
	var request models.PayoutRequest

	err := database.WithTransaction(s.db, func(tx *gorm.DB) error {
		if err := lockForUpdate(tx).First(&request, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPayoutNotFound
			}
			return fmt.Errorf("database error: %w", err)
		}

		if !canTransition(request.Status, target) {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, request.Status, target)
		}

		now := time.Now()
		request.Status = target
		request.ProcessedBy = &adminID
		request.ProcessedAt = &now
		if notes != "" {
			request.AdminNotes = notes
		}

		ledgerStatus := models.TransactionStatusPending
		switch target {
		case models.PayoutStatusApproved:
			ledgerStatus = models.TransactionStatusApproved
		case models.PayoutStatusRejected:
			ledgerStatus = models.TransactionStatusFailed
		case models.PayoutStatusPaid:
			ledgerStatus = models.TransactionStatusPaid
			if err := s.wallet.CreditTx(tx, request.UserID, request.Amount,
				"payout:"+request.ID.String()); err != nil {
				return err
			}
		}

		if err := tx.Model(&models.Transaction{}).
			Where("payout_id = ? AND type = ?", request.ID, models.TransactionTypePayout).
			Update("status", ledgerStatus).Error; err != nil {
			return fmt.Errorf("failed to update ledger entry: %w", err)
		}

		if err := tx.Save(&request).Error; err != nil {
			return fmt.Errorf("failed to update payout request: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if target == models.PayoutStatusPaid && s.cfg.Payment.StripeSecretKey != "" {
		s.disburse(&request)
	}

	return &request, nil
}

// disburse pushes the paid amount out through Stripe. The payout row is
// already terminal; a transport failure here is logged for manual follow-up
// rather than rolled back.
func (s *PayoutService) disburse(request *models.PayoutRequest) {
	params := &stripe.PayoutParams{
		Amount:   stripe.Int64(int64(request.Amount * 100)),
		Currency: stripe.String(s.cfg.Payment.Currency),
	}
	params.AddMetadata("payout_request_id", request.ID.String())
	params.AddMetadata("user_id", request.UserID.String())

	p, err := payout.New(params)
	if err != nil {
		logrus.WithError(err).WithField("payout_id", request.ID).
			Error("Stripe disbursement failed")
		return
	}

	if err := s.db.Model(&models.PayoutRequest{}).Where("id = ?", request.ID).
		Update("payout_ref", p.ID).Error; err != nil {
		logrus.WithError(err).WithField("payout_id", request.ID).
			Error("Failed to store payout reference")
	}
}
