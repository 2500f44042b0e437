// internal/models/support.go
package models

import (
	"time"

	"github.com/google/uuid"
)

type SupportTicket struct {
	BaseModel
	UserID     uuid.UUID    `json:"user_id" gorm:"type:uuid;not null;index"`
	Subject    string       `json:"subject" gorm:"size:255;not null"`
	Message    string       `json:"message" gorm:"type:text;not null"`
	Status     TicketStatus `json:"status" gorm:"type:varchar(20);default:'open';index"`
	AdminNotes string       `json:"admin_notes,omitempty" gorm:"type:text"`
	ResolvedBy *uuid.UUID   `json:"resolved_by" gorm:"type:uuid"`
	ResolvedAt *time.Time   `json:"resolved_at"`

	// Relationships
	User     User  `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Resolver *User `json:"resolver,omitempty" gorm:"foreignKey:ResolvedBy"`
}
