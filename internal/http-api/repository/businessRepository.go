package repository

import (
	"reviewhub/internal/http-api/models"

	"gorm.io/gorm"
)

type BusinessRepository interface {
	Create(business *models.Business) error
	GetByID(id string) (*models.Business, error)
	GetByOwner(ownerID string) (*models.Business, error)
	Update(business *models.Business) error
}

type businessRepository struct {
	db *gorm.DB
}

func NewBusinessRepository(db *gorm.DB) BusinessRepository {
	return &businessRepository{db: db}
}

func (r *businessRepository) Create(business *models.Business) error {
	return r.db.Create(business).Error
}

func (r *businessRepository) GetByID(id string) (*models.Business, error) {
	var business models.Business
	if err := r.db.First(&business, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &business, nil
}

func (r *businessRepository) GetByOwner(ownerID string) (*models.Business, error) {
	var business models.Business
	if err := r.db.Where("owner_id = ?", ownerID).First(&business).Error; err != nil {
		return nil, err
	}
	return &business, nil
}

func (r *businessRepository) Update(business *models.Business) error {
	return r.db.Save(business).Error
}
