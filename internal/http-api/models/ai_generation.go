package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GenerationStatus string

const (
	GenerationStatusPending     GenerationStatus = "PENDING"
	GenerationStatusApproved    GenerationStatus = "APPROVED"
	GenerationStatusRejected    GenerationStatus = "REJECTED"
	GenerationStatusRegenerated GenerationStatus = "REGENERATED"
)

type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNegative Sentiment = "negative"
	SentimentNeutral  Sentiment = "neutral"
)

// AIGeneration is one enhancement attempt. Regeneration creates a new row
// and marks the prior one REGENERATED, never overwrites.
type AIGeneration struct {
	ID         string `gorm:"primaryKey;type:uuid" json:"id"`
	ReviewID   string `gorm:"type:uuid;not null;index" json:"review_id"`
	BusinessID string `gorm:"type:uuid;not null;index" json:"business_id"`

	OriginalText string  `gorm:"type:text" json:"original_text"`
	EnhancedText string  `gorm:"type:text" json:"enhanced_text"`
	Confidence   float64 `json:"confidence"`

	Sentiment    Sentiment  `gorm:"type:varchar(10);default:'neutral'" json:"sentiment"`
	Keywords     StringList `gorm:"type:jsonb" json:"keywords"`
	Improvements StringList `gorm:"type:jsonb" json:"improvements"`

	Status        GenerationStatus `gorm:"type:varchar(20);default:'PENDING';not null;index" json:"status"`
	ApprovedBy    string           `json:"approved_by,omitempty"`
	ApprovedAt    *time.Time       `json:"approved_at,omitempty"`
	RejectionNote string           `json:"rejection_note,omitempty"`

	ModelUsed   string    `json:"model_used"`
	LatencyMS   int64     `json:"latency_ms"`
	GeneratedAt time.Time `gorm:"autoCreateTime" json:"generated_at"`

	// Associations
	Review   Review   `json:"review,omitempty" gorm:"foreignKey:ReviewID;constraint:OnDelete:CASCADE;"`
	Business Business `json:"business,omitempty" gorm:"foreignKey:BusinessID;constraint:OnDelete:CASCADE;"`
}

func (g *AIGeneration) BeforeCreate(tx *gorm.DB) (err error) {
	if g.ID == "" {
		g.ID = uuid.New().String()
	}
	return
}

func (AIGeneration) TableName() string {
	return "ai_generations"
}
