package service

import (
	"context"
	"time"

	"reviewhub/internal/http-api/models"

	"github.com/stretchr/testify/mock"
)

// MockReviewRepository mocks the ReviewRepository interface
type MockReviewRepository struct {
	mock.Mock
}

func (m *MockReviewRepository) Create(review *models.Review) error {
	args := m.Called(review)
	return args.Error(0)
}

func (m *MockReviewRepository) GetByID(id string) (*models.Review, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Review), args.Error(1)
}

func (m *MockReviewRepository) Update(review *models.Review) error {
	args := m.Called(review)
	return args.Error(0)
}

func (m *MockReviewRepository) UpdateStatus(review *models.Review) error {
	args := m.Called(review)
	return args.Error(0)
}

func (m *MockReviewRepository) ListByBusiness(businessID string, status models.ReviewStatus, page, pageSize int) ([]models.Review, int64, error) {
	args := m.Called(businessID, status, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]models.Review), args.Get(1).(int64), args.Error(2)
}

func (m *MockReviewRepository) ExistsByID(id string) (bool, error) {
	args := m.Called(id)
	return args.Bool(0), args.Error(1)
}

// MockGenerationRepository mocks the GenerationRepository interface
type MockGenerationRepository struct {
	mock.Mock
}

func (m *MockGenerationRepository) Create(generation *models.AIGeneration) error {
	args := m.Called(generation)
	return args.Error(0)
}

func (m *MockGenerationRepository) GetByID(id string) (*models.AIGeneration, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AIGeneration), args.Error(1)
}

func (m *MockGenerationRepository) Update(generation *models.AIGeneration) error {
	args := m.Called(generation)
	return args.Error(0)
}

func (m *MockGenerationRepository) GetLatestPendingByReview(reviewID string) (*models.AIGeneration, error) {
	args := m.Called(reviewID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AIGeneration), args.Error(1)
}

func (m *MockGenerationRepository) ListByReview(reviewID string) ([]models.AIGeneration, error) {
	args := m.Called(reviewID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.AIGeneration), args.Error(1)
}

// MockBusinessRepository mocks the BusinessRepository interface
type MockBusinessRepository struct {
	mock.Mock
}

func (m *MockBusinessRepository) Create(business *models.Business) error {
	args := m.Called(business)
	return args.Error(0)
}

func (m *MockBusinessRepository) GetByID(id string) (*models.Business, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Business), args.Error(1)
}

func (m *MockBusinessRepository) GetByOwner(ownerID string) (*models.Business, error) {
	args := m.Called(ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Business), args.Error(1)
}

func (m *MockBusinessRepository) Update(business *models.Business) error {
	args := m.Called(business)
	return args.Error(0)
}

// MockCustomerRepository mocks the CustomerRepository interface
type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) Create(customer *models.Customer) error {
	args := m.Called(customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) GetByID(id string) (*models.Customer, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindOrCreateByEmail(businessID, email, name string) (*models.Customer, error) {
	args := m.Called(businessID, email, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Customer), args.Error(1)
}

// MockSubscriptionRepository mocks the SubscriptionRepository interface
type MockSubscriptionRepository struct {
	mock.Mock
}

func (m *MockSubscriptionRepository) GetPlanByID(id string) (*models.SubscriptionPlan, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SubscriptionPlan), args.Error(1)
}

func (m *MockSubscriptionRepository) GetPlanByName(name string) (*models.SubscriptionPlan, error) {
	args := m.Called(name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SubscriptionPlan), args.Error(1)
}

func (m *MockSubscriptionRepository) SeedDefaultPlans() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockSubscriptionRepository) GetUsage(businessID string, month time.Time, feature models.Feature) (*models.SubscriptionUsage, error) {
	args := m.Called(businessID, month, feature)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SubscriptionUsage), args.Error(1)
}

func (m *MockSubscriptionRepository) IncrementUsage(businessID string, month time.Time, feature models.Feature, success bool, latencyMS int64) error {
	args := m.Called(businessID, month, feature, success, latencyMS)
	return args.Error(0)
}

func (m *MockSubscriptionRepository) ListUsageForMonth(month time.Time) ([]models.SubscriptionUsage, error) {
	args := m.Called(month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.SubscriptionUsage), args.Error(1)
}

func (m *MockSubscriptionRepository) CreateSnapshots(snapshots []models.UsageSnapshot) error {
	args := m.Called(snapshots)
	return args.Error(0)
}

// MockTemplateRepository mocks the TemplateRepository interface
type MockTemplateRepository struct {
	mock.Mock
}

func (m *MockTemplateRepository) GetActiveByBusiness(businessID string) (*models.PromptTemplate, error) {
	args := m.Called(businessID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PromptTemplate), args.Error(1)
}

func (m *MockTemplateRepository) GetGlobalDefault() (*models.PromptTemplate, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PromptTemplate), args.Error(1)
}

func (m *MockTemplateRepository) Upsert(template *models.PromptTemplate) error {
	args := m.Called(template)
	return args.Error(0)
}

// MockSettingRepository mocks the SettingRepository interface
type MockSettingRepository struct {
	mock.Mock
}

func (m *MockSettingRepository) Get(key string) (string, error) {
	args := m.Called(key)
	return args.String(0), args.Error(1)
}

func (m *MockSettingRepository) Set(key, value string) error {
	args := m.Called(key, value)
	return args.Error(0)
}

// MockQuotaService mocks the QuotaService interface
type MockQuotaService struct {
	mock.Mock
}

func (m *MockQuotaService) CheckUsageLimit(businessID string, feature models.Feature) (*UsageCheck, error) {
	args := m.Called(businessID, feature)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*UsageCheck), args.Error(1)
}

func (m *MockQuotaService) RecordUsage(businessID string, feature models.Feature, success bool, latency time.Duration) {
	m.Called(businessID, feature, success, latency)
}

func (m *MockQuotaService) UsageSummary(businessID string) ([]UsageCheck, error) {
	args := m.Called(businessID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]UsageCheck), args.Error(1)
}

func (m *MockQuotaService) SnapshotMonth(month time.Time) (int, error) {
	args := m.Called(month)
	return args.Int(0), args.Error(1)
}

// MockReviewService mocks the ReviewService interface
type MockReviewService struct {
	mock.Mock
}

func (m *MockReviewService) CreateReview(input SubmitReviewInput) (*SubmitResult, error) {
	args := m.Called(input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*SubmitResult), args.Error(1)
}

func (m *MockReviewService) GetReview(id, businessID string) (*models.Review, error) {
	args := m.Called(id, businessID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Review), args.Error(1)
}

func (m *MockReviewService) ListReviews(businessID string, status models.ReviewStatus, page, pageSize int) ([]models.Review, int64, error) {
	args := m.Called(businessID, status, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]models.Review), args.Get(1).(int64), args.Error(2)
}

func (m *MockReviewService) UpdateStatus(id, businessID string, status models.ReviewStatus, generatedReview, moderatedBy string) (*models.Review, error) {
	args := m.Called(id, businessID, status, generatedReview, moderatedBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Review), args.Error(1)
}

func (m *MockReviewService) MarkAIGenerated(review *models.Review, generatedText string) error {
	args := m.Called(review, generatedText)
	return args.Error(0)
}

func (m *MockReviewService) Approve(reviewID, businessID, approvedBy string) (*models.Review, error) {
	args := m.Called(reviewID, businessID, approvedBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Review), args.Error(1)
}

func (m *MockReviewService) Reject(reviewID, businessID, note, moderatedBy string) (*models.Review, error) {
	args := m.Called(reviewID, businessID, note, moderatedBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Review), args.Error(1)
}

// stubProvider is a scriptable AI provider for tests.
type stubProvider struct {
	name     string
	generate func(ctx context.Context, prompt string) (string, error)
}

func (p *stubProvider) Name() string { return p.name }

func (p *stubProvider) GenerateContent(ctx context.Context, prompt string) (string, error) {
	return p.generate(ctx, prompt)
}
