package repository

import (
	"reviewhub/internal/http-api/models"

	"gorm.io/gorm"
)

type GenerationRepository interface {
	Create(generation *models.AIGeneration) error
	GetByID(id string) (*models.AIGeneration, error)
	Update(generation *models.AIGeneration) error
	// GetLatestPendingByReview returns the newest PENDING generation for a
	// review, or gorm.ErrRecordNotFound.
	GetLatestPendingByReview(reviewID string) (*models.AIGeneration, error)
	ListByReview(reviewID string) ([]models.AIGeneration, error)
}

type generationRepository struct {
	db *gorm.DB
}

func NewGenerationRepository(db *gorm.DB) GenerationRepository {
	return &generationRepository{db: db}
}

func (r *generationRepository) Create(generation *models.AIGeneration) error {
	return r.db.Create(generation).Error
}

func (r *generationRepository) GetByID(id string) (*models.AIGeneration, error) {
	var generation models.AIGeneration
	if err := r.db.First(&generation, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &generation, nil
}

func (r *generationRepository) Update(generation *models.AIGeneration) error {
	return r.db.Save(generation).Error
}

func (r *generationRepository) GetLatestPendingByReview(reviewID string) (*models.AIGeneration, error) {
	var generation models.AIGeneration
	err := r.db.Where("review_id = ? AND status = ?", reviewID, models.GenerationStatusPending).
		Order("generated_at DESC").
		First(&generation).Error
	if err != nil {
		return nil, err
	}
	return &generation, nil
}

func (r *generationRepository) ListByReview(reviewID string) ([]models.AIGeneration, error) {
	var generations []models.AIGeneration
	err := r.db.Where("review_id = ?", reviewID).
		Order("generated_at DESC").
		Find(&generations).Error
	if err != nil {
		return nil, err
	}
	return generations, nil
}
