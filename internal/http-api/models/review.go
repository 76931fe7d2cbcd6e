package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReviewStatus string

const (
	ReviewStatusPending     ReviewStatus = "PENDING"
	ReviewStatusAIGenerated ReviewStatus = "AI_GENERATED"
	ReviewStatusApproved    ReviewStatus = "APPROVED"
	ReviewStatusPublished   ReviewStatus = "PUBLISHED"
	ReviewStatusRejected    ReviewStatus = "REJECTED"
)

type Review struct {
	ID         string `gorm:"primaryKey;type:uuid" json:"id"`
	BusinessID string `gorm:"type:uuid;not null;index" json:"business_id"`
	CustomerID string `gorm:"type:uuid;index" json:"customer_id"`

	Rating          int          `gorm:"not null;check:rating >= 1 AND rating <= 5" json:"rating"`
	Feedback        string       `gorm:"type:text" json:"feedback"`
	GeneratedReview string       `gorm:"type:text" json:"generated_review,omitempty"`
	Status          ReviewStatus `gorm:"type:varchar(20);default:'PENDING';not null;index" json:"status"`
	FormData        JSONMap      `gorm:"type:jsonb" json:"form_data,omitempty"`

	ModerationNote string     `json:"moderation_note,omitempty"`
	ModeratedAt    *time.Time `json:"moderated_at,omitempty"`
	ModeratedBy    string     `json:"moderated_by,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Associations
	Business Business `json:"business,omitempty" gorm:"foreignKey:BusinessID;constraint:OnDelete:CASCADE;"`
	Customer Customer `json:"customer,omitempty" gorm:"foreignKey:CustomerID"`
}

func (r *Review) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	return
}

func (Review) TableName() string {
	return "reviews"
}
