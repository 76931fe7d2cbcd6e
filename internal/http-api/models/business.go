package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Business struct {
	ID           string `gorm:"primaryKey;type:uuid" json:"id"`
	OwnerID      string `gorm:"type:uuid;not null;index" json:"owner_id"`
	Name         string `gorm:"not null" json:"name"`
	BusinessType string `json:"business_type"`
	Industry     string `json:"industry"`

	// Review funnel settings. An empty GoogleReviewURL disables redirection
	// entirely; EnableSmartFilter limits redirects to favorable ratings.
	GoogleReviewURL   string `json:"google_review_url"`
	EnableSmartFilter bool   `gorm:"default:true" json:"enable_smart_filter"`

	// Preferred AI model id ("gemini", "claude"); empty means use the
	// process-wide default.
	PreferredModel string `json:"preferred_model"`

	PlanID    string    `gorm:"index" json:"plan_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Associations
	Owner User `json:"owner,omitempty" gorm:"foreignKey:OwnerID"`
}

func (b *Business) BeforeCreate(tx *gorm.DB) (err error) {
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	return
}

func (Business) TableName() string {
	return "businesses"
}
