package repository

import (
	"reviewhub/internal/http-api/models"

	"gorm.io/gorm"
)

type TemplateRepository interface {
	// GetActiveByBusiness returns the business's active template override, or
	// gorm.ErrRecordNotFound when it has none.
	GetActiveByBusiness(businessID string) (*models.PromptTemplate, error)
	// GetGlobalDefault returns the active template row with no business.
	GetGlobalDefault() (*models.PromptTemplate, error)
	Upsert(template *models.PromptTemplate) error
}

type templateRepository struct {
	db *gorm.DB
}

func NewTemplateRepository(db *gorm.DB) TemplateRepository {
	return &templateRepository{db: db}
}

func (r *templateRepository) GetActiveByBusiness(businessID string) (*models.PromptTemplate, error) {
	var template models.PromptTemplate
	err := r.db.Where("business_id = ? AND active = true", businessID).
		Order("updated_at DESC").
		First(&template).Error
	if err != nil {
		return nil, err
	}
	return &template, nil
}

func (r *templateRepository) GetGlobalDefault() (*models.PromptTemplate, error) {
	var template models.PromptTemplate
	err := r.db.Where("business_id = '' AND active = true").
		Order("updated_at DESC").
		First(&template).Error
	if err != nil {
		return nil, err
	}
	return &template, nil
}

func (r *templateRepository) Upsert(template *models.PromptTemplate) error {
	if template.ID == "" {
		return r.db.Create(template).Error
	}
	return r.db.Save(template).Error
}
