package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Customer struct {
	ID         string    `gorm:"primaryKey;type:uuid" json:"id"`
	BusinessID string    `gorm:"type:uuid;not null;index" json:"business_id"`
	Name       string    `json:"name"`
	Email      string    `gorm:"index" json:"email"`
	Phone      string    `json:"phone"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	// Associations
	Business Business `json:"business,omitempty" gorm:"foreignKey:BusinessID;constraint:OnDelete:CASCADE;"`
}

func (c *Customer) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return
}

func (Customer) TableName() string {
	return "customers"
}
