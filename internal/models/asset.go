// internal/models/asset.go
package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Asset is an admin-managed file reference creators can use as submission
// material. Its review lifecycle (workflow status) is independent of the
// submission review lifecycle.
type Asset struct {
	BaseModel
	Title          string         `json:"title" gorm:"size:255;not null"`
	Type           string         `json:"type" gorm:"size:50;not null;index"`
	Description    string         `json:"description" gorm:"type:text"`
	StorageKey     string         `json:"storage_key" gorm:"size:512"`
	FileURL        string         `json:"file_url" gorm:"size:2048;not null"`
	Tags           pq.StringArray `json:"tags" gorm:"type:text[]"`
	WorkflowStatus WorkflowStatus `json:"workflow_status" gorm:"type:varchar(20);default:'draft';index"`
	CreatedBy      uuid.UUID      `json:"created_by" gorm:"type:uuid;not null;index"`
	ReviewedBy     *uuid.UUID     `json:"reviewed_by" gorm:"type:uuid"`
	ReviewedAt     *time.Time     `json:"reviewed_at"`

	// Relationships
	Creator  User  `json:"creator,omitempty" gorm:"foreignKey:CreatedBy"`
	Reviewer *User `json:"reviewer,omitempty" gorm:"foreignKey:ReviewedBy"`
}
