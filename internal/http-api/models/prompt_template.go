package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PromptTemplate holds an enhancement prompt. A row with an empty BusinessID
// is the global default; a business row overrides it while Active.
type PromptTemplate struct {
	ID         string    `gorm:"primaryKey;type:uuid" json:"id"`
	BusinessID string    `gorm:"type:uuid;index" json:"business_id,omitempty"`
	Name       string    `json:"name"`
	Template   string    `gorm:"type:text;not null" json:"template"`
	Active     bool      `gorm:"default:true" json:"active"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (t *PromptTemplate) BeforeCreate(tx *gorm.DB) (err error) {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	return
}

func (PromptTemplate) TableName() string {
	return "prompt_templates"
}
