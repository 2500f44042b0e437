// internal/models/submission.go
package models

import (
	"time"

	"github.com/google/uuid"
)

type Submission struct {
	BaseModel
	CreatorID  uuid.UUID        `json:"creator_id" gorm:"type:uuid;not null;index"`
	Type       SubmissionType   `json:"type" gorm:"type:varchar(20);not null;index"`
	ContentURL string           `json:"content_url" gorm:"size:2048;not null"`
	Status     SubmissionStatus `json:"status" gorm:"type:varchar(20);default:'pending';index"`
	AssetID    *uuid.UUID       `json:"asset_id" gorm:"type:uuid;index"`

	Views    int64   `json:"views" gorm:"default:0"`
	Earnings float64 `json:"earnings" gorm:"type:decimal(12,3);default:0"`

	AffiliateLink        string `json:"affiliate_link,omitempty" gorm:"size:2048"`
	AffiliateClicks      int64  `json:"affiliate_clicks" gorm:"default:0"`
	AffiliateConversions int64  `json:"affiliate_conversions" gorm:"default:0"`

	ReviewedBy *uuid.UUID `json:"reviewed_by" gorm:"type:uuid"`
	ReviewedAt *time.Time `json:"reviewed_at"`

	// Relationships
	Creator  User   `json:"creator,omitempty" gorm:"foreignKey:CreatorID"`
	Asset    *Asset `json:"asset,omitempty" gorm:"foreignKey:AssetID"`
	Reviewer *User  `json:"reviewer,omitempty" gorm:"foreignKey:ReviewedBy"`
}

// IsProduct reports whether the submission earns through affiliate hits
// rather than view counts.
func (s *Submission) IsProduct() bool {
	return s.Type == SubmissionTypeProduct
}
