// internal/models/transaction.go
package models

import (
	"github.com/google/uuid"
)

// Transaction is an append-only ledger row. One row is written per earnings
// delta and per payout lifecycle event, in the same database transaction as
// the balance mutation it describes. Rows are never deleted; only
// payout-linked rows ever have their status updated.
type Transaction struct {
	BaseModel
	UserID       uuid.UUID         `json:"user_id" gorm:"type:uuid;not null;index"`
	Type         TransactionType   `json:"type" gorm:"type:varchar(20);not null;index"`
	Amount       float64           `json:"amount" gorm:"type:decimal(12,3);not null"`
	Status       TransactionStatus `json:"status" gorm:"type:varchar(20);default:'approved';index"`
	Source       string            `json:"source" gorm:"size:255"`
	SubmissionID *uuid.UUID        `json:"submission_id" gorm:"type:uuid;index"`
	PayoutID     *uuid.UUID        `json:"payout_id" gorm:"type:uuid;index"`

	// Relationships
	User       User           `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Submission *Submission    `json:"submission,omitempty" gorm:"foreignKey:SubmissionID"`
	Payout     *PayoutRequest `json:"payout,omitempty" gorm:"foreignKey:PayoutID"`
}
