// internal/models/payout.go
package models

import (
	"time"

	"github.com/google/uuid"
)

// PayoutMethod is a saved disbursement destination. It is a first-class
// record, not a sentinel row in the payout table.
type PayoutMethod struct {
	BaseModel
	UserID     uuid.UUID `json:"user_id" gorm:"type:uuid;not null;index"`
	MethodType string    `json:"method_type" gorm:"size:50;not null"`
	Details    string    `json:"details" gorm:"size:255;not null"`
	IsDefault  bool      `json:"is_default" gorm:"default:false"`

	User User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

// Label renders the method in the "<TYPE>: <details>" wire format.
func (m *PayoutMethod) Label() string {
	return m.MethodType + ": " + m.Details
}

type PayoutRequest struct {
	BaseModel
	UserID         uuid.UUID    `json:"user_id" gorm:"type:uuid;not null;index"`
	Amount         float64      `json:"amount" gorm:"type:decimal(12,3);not null"`
	Status         PayoutStatus `json:"status" gorm:"type:varchar(20);default:'pending';index"`
	PayoutMethodID *uuid.UUID   `json:"payout_method_id" gorm:"type:uuid;index"`
	PaymentMethod  string       `json:"payment_method" gorm:"size:255"`
	RequestedAt    time.Time    `json:"requested_at" gorm:"not null"`
	ProcessedBy    *uuid.UUID   `json:"processed_by" gorm:"type:uuid"`
	ProcessedAt    *time.Time   `json:"processed_at"`
	AdminNotes     string       `json:"admin_notes,omitempty" gorm:"type:text"`
	PayoutRef      string       `json:"payout_ref,omitempty" gorm:"size:255"`

	// Relationships
	User      User          `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Method    *PayoutMethod `json:"method,omitempty" gorm:"foreignKey:PayoutMethodID"`
	Processor *User         `json:"processor,omitempty" gorm:"foreignKey:ProcessedBy"`
}
