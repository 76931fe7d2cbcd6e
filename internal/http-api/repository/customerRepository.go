package repository

import (
	"errors"

	"reviewhub/internal/http-api/models"

	"gorm.io/gorm"
)

type CustomerRepository interface {
	Create(customer *models.Customer) error
	GetByID(id string) (*models.Customer, error)
	// FindOrCreateByEmail reuses an existing customer of the business when the
	// email matches, otherwise creates a new one.
	FindOrCreateByEmail(businessID, email, name string) (*models.Customer, error)
}

type customerRepository struct {
	db *gorm.DB
}

func NewCustomerRepository(db *gorm.DB) CustomerRepository {
	return &customerRepository{db: db}
}

func (r *customerRepository) Create(customer *models.Customer) error {
	return r.db.Create(customer).Error
}

func (r *customerRepository) GetByID(id string) (*models.Customer, error) {
	var customer models.Customer
	if err := r.db.First(&customer, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *customerRepository) FindOrCreateByEmail(businessID, email, name string) (*models.Customer, error) {
	var customer models.Customer
	err := r.db.Where("business_id = ? AND email = ?", businessID, email).First(&customer).Error
	if err == nil {
		return &customer, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	customer = models.Customer{
		BusinessID: businessID,
		Email:      email,
		Name:       name,
	}
	if err := r.db.Create(&customer).Error; err != nil {
		return nil, err
	}
	return &customer, nil
}
