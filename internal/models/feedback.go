package models

import (
	"time"

	"github.com/google/uuid"
)

// Feedback is one submitted feedback record for a generated recipe.
type Feedback struct {
	ID             uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt      time.Time   `json:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at"`
	RecipeID       string      `gorm:"size:64;not null;index" json:"recipe_id"`
	Reasons        StringArray `gorm:"type:jsonb;not null;default:'[]'" json:"reasons"`
	Comment        string      `gorm:"size:1000" json:"comment"`
	FutureInterest string      `gorm:"size:20;not null" json:"future_interest"` // interested, notInterested, requestChange
	Rating         *int        `json:"rating,omitempty"`
	UserAgent      string      `gorm:"size:512" json:"user_agent"`
	IPAddress      string      `gorm:"size:64" json:"ip_address"`
}

// TableName returns the table name for the Feedback model
func (Feedback) TableName() string {
	return "feedback"
}
