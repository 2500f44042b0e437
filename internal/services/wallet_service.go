// internal/services/wallet_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/wasteyuse/creatorly-backend/internal/database"
	"github.com/wasteyuse/creatorly-backend/internal/models"
)

var ErrInsufficientFunds = errors.New("insufficient wallet balance")

// WalletService manages disbursed funds. Credits come from paid payouts;
// debits come from platform purchases.
type WalletService struct {
	db *gorm.DB
}

func NewWalletService(db *gorm.DB) *WalletService {
	return &WalletService{db: db}
}

func (s *WalletService) Get(userID uuid.UUID) (*models.Wallet, error) {
	var wallet models.Wallet
	err := s.db.Where("user_id = ?", userID).First(&wallet).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		wallet = models.Wallet{UserID: userID, Currency: "INR"}
		if err := s.db.Create(&wallet).Error; err != nil {
			return nil, fmt.Errorf("failed to create wallet: %w", err)
		}
		return &wallet, nil
	}
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &wallet, nil
}

// CreditTx adds funds inside an existing transaction.
func (s *WalletService) CreditTx(tx *gorm.DB, userID uuid.UUID, amount float64, reference string) error {
	if amount <= 0 {
		return errors.New("credit amount must be positive")
	}

	var wallet models.Wallet
	err := lockForUpdate(tx).Where("user_id = ?", userID).First(&wallet).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		wallet = models.Wallet{UserID: userID, Currency: "INR"}
		if err := tx.Create(&wallet).Error; err != nil {
			return fmt.Errorf("failed to create wallet: %w", err)
		}
	} else if err != nil {
		return fmt.Errorf("database error: %w", err)
	}

	if err := tx.Model(&models.Wallet{}).Where("id = ?", wallet.ID).
		Update("balance", gorm.Expr("balance + ?", amount)).Error; err != nil {
		return fmt.Errorf("failed to credit wallet: %w", err)
	}

	entry := &models.WalletTransaction{
		WalletID:  wallet.ID,
		EntryType: models.WalletEntryCredit,
		Amount:    amount,
		Reference: reference,
	}
	return tx.Create(entry).Error
}

// DeductBalance removes funds atomically, failing when the balance is short.
func (s *WalletService) DeductBalance(userID uuid.UUID, amount float64, reference string) error {
	if amount <= 0 {
		return errors.New("debit amount must be positive")
	}

	return database.WithTransaction(s.db, func(tx *gorm.DB) error {
		var wallet models.Wallet
		if err := lockForUpdate(tx).Where("user_id = ?", userID).First(&wallet).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrInsufficientFunds
			}
			return fmt.Errorf("database error: %w", err)
		}

		if wallet.Balance < amount {
			return ErrInsufficientFunds
		}

		if err := tx.Model(&models.Wallet{}).Where("id = ?", wallet.ID).
			Update("balance", gorm.Expr("balance - ?", amount)).Error; err != nil {
			return fmt.Errorf("failed to debit wallet: %w", err)
		}

		entry := &models.WalletTransaction{
			WalletID:  wallet.ID,
			EntryType: models.WalletEntryDebit,
			Amount:    amount,
			Reference: reference,
		}
		return tx.Create(entry).Error
	})
}

func (s *WalletService) History(userID uuid.UUID) ([]models.WalletTransaction, error) {
	wallet, err := s.Get(userID)
	if err != nil {
		return nil, err
	}

	var entries []models.WalletTransaction
	if err := s.db.Where("wallet_id = ?", wallet.ID).
		Order("created_at DESC").Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch wallet history: %w", err)
	}
	return entries, nil
}
