package repository

import (
	"reviewhub/internal/http-api/models"

	"gorm.io/gorm"
)

type ReviewRepository interface {
	Create(review *models.Review) error
	GetByID(id string) (*models.Review, error)
	Update(review *models.Review) error
	// UpdateStatus persists a status change together with the moderation
	// fields that accompany it.
	UpdateStatus(review *models.Review) error
	ListByBusiness(businessID string, status models.ReviewStatus, page, pageSize int) ([]models.Review, int64, error)
	ExistsByID(id string) (bool, error)
}

type reviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Create(review *models.Review) error {
	return r.db.Create(review).Error
}

func (r *reviewRepository) GetByID(id string) (*models.Review, error) {
	var review models.Review
	if err := r.db.First(&review, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepository) Update(review *models.Review) error {
	return r.db.Save(review).Error
}

func (r *reviewRepository) UpdateStatus(review *models.Review) error {
	return r.db.Model(review).Select(
		"status", "generated_review", "moderation_note", "moderated_at", "moderated_by", "updated_at",
	).Updates(review).Error
}

// ListByBusiness retrieves reviews for a business with optional status filter
// and pagination, newest first
func (r *reviewRepository) ListByBusiness(businessID string, status models.ReviewStatus, page, pageSize int) ([]models.Review, int64, error) {
	var reviews []models.Review
	var total int64

	query := r.db.Model(&models.Review{}).Where("business_id = ?", businessID)
	if status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	if err := query.Order("created_at DESC").Offset(offset).Limit(pageSize).Find(&reviews).Error; err != nil {
		return nil, 0, err
	}

	return reviews, total, nil
}

func (r *reviewRepository) ExistsByID(id string) (bool, error) {
	var count int64
	if err := r.db.Model(&models.Review{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
