// internal/models/user.go
package models

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type User struct {
	BaseModel
	Username      string     `json:"username" gorm:"uniqueIndex;size:50;not null"`
	Email         string     `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash  string     `json:"-" gorm:"size:255;not null"`
	UserType      UserType   `json:"user_type" gorm:"type:varchar(20);not null;default:'member'"`
	Status        UserStatus `json:"status" gorm:"type:varchar(20);default:'active'"`
	ProfileData   JSONB      `json:"profile_data" gorm:"type:jsonb"`
	IsCreator     bool       `json:"is_creator" gorm:"default:false;index"`
	IsApproved    bool       `json:"is_approved" gorm:"default:false;index"`
	TotalEarnings float64    `json:"total_earnings" gorm:"type:decimal(12,3);default:0"`
	TotalViews    int64      `json:"total_views" gorm:"default:0"`

	KYCStatus          KYCStatus  `json:"kyc_status" gorm:"type:varchar(20);default:'pending';index"`
	KYCRejectionReason string     `json:"kyc_rejection_reason,omitempty" gorm:"type:text"`
	KYCReviewedAt      *time.Time `json:"kyc_reviewed_at"`

	DefaultPayoutMethod string     `json:"default_payout_method" gorm:"size:50"`
	LastLoginAt         *time.Time `json:"last_login_at"`

	// Relationships
	Submissions    []Submission    `json:"submissions,omitempty" gorm:"foreignKey:CreatorID"`
	PayoutMethods  []PayoutMethod  `json:"payout_methods,omitempty" gorm:"foreignKey:UserID"`
	PayoutRequests []PayoutRequest `json:"payout_requests,omitempty" gorm:"foreignKey:UserID"`
	Transactions   []Transaction   `json:"transactions,omitempty" gorm:"foreignKey:UserID"`
}

func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hashedPassword)
	return nil
}

func (u *User) CheckPassword(password string) error {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
}

// KYCDocument is an identity document uploaded for verification. Files live
// in the private bucket and are only served through presigned URLs.
type KYCDocument struct {
	BaseModel
	UserID       uuid.UUID `json:"user_id" gorm:"type:uuid;not null;index"`
	DocumentType string `json:"document_type" gorm:"size:50;not null"`
	StorageKey   string `json:"-" gorm:"size:512;not null"`
	FileName     string `json:"file_name" gorm:"size:255"`
	MimeType     string `json:"mime_type" gorm:"size:100"`

	User User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}
