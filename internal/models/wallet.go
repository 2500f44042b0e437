// internal/models/wallet.go
package models

import (
	"github.com/google/uuid"
)

// Wallet holds funds already disbursed to a user. Paid payouts credit it;
// platform purchases debit it.
type Wallet struct {
	BaseModel
	UserID   uuid.UUID `json:"user_id" gorm:"type:uuid;uniqueIndex;not null"`
	Balance  float64   `json:"balance" gorm:"type:decimal(12,3);default:0"`
	Currency string    `json:"currency" gorm:"size:10;default:'INR'"`

	User User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

type WalletTransaction struct {
	BaseModel
	WalletID  uuid.UUID       `json:"wallet_id" gorm:"type:uuid;not null;index"`
	EntryType WalletEntryType `json:"entry_type" gorm:"type:varchar(10);not null"`
	Amount    float64         `json:"amount" gorm:"type:decimal(12,3);not null"`
	Reference string          `json:"reference" gorm:"size:255"`

	Wallet Wallet `json:"wallet,omitempty" gorm:"foreignKey:WalletID"`
}
