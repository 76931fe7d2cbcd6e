package service

import (
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"reviewhub/internal/http-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

func newQuotaServiceForTest() (QuotaService, *MockSubscriptionRepository, *MockBusinessRepository) {
	subscriptionRepo := new(MockSubscriptionRepository)
	businessRepo := new(MockBusinessRepository)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewQuotaService(subscriptionRepo, businessRepo, logger), subscriptionRepo, businessRepo
}

func proPlan() *models.SubscriptionPlan {
	return &models.SubscriptionPlan{
		ID:                 "plan-pro",
		Name:               "pro",
		AIEnhancementLimit: 10,
		ReviewLimit:        models.UnlimitedSentinel,
		CustomTemplates:    true,
	}
}

func TestCheckUsageLimit_UnderNumericLimit(t *testing.T) {
	svc, subscriptionRepo, businessRepo := newQuotaServiceForTest()

	businessRepo.On("GetByID", "biz-1").Return(&models.Business{ID: "biz-1", PlanID: "plan-pro"}, nil)
	subscriptionRepo.On("GetPlanByID", "plan-pro").Return(proPlan(), nil)
	subscriptionRepo.On("GetUsage", "biz-1", mock.Anything, models.FeatureAIEnhancement).
		Return(&models.SubscriptionUsage{Count: 9}, nil)

	check, err := svc.CheckUsageLimit("biz-1", models.FeatureAIEnhancement)
	assert.NoError(t, err)
	assert.True(t, check.Allowed)
	assert.Equal(t, 9, check.Used)
	assert.Equal(t, 10, check.Limit)
	assert.Equal(t, "pro", check.PlanName)
}

func TestCheckUsageLimit_AtNumericLimit(t *testing.T) {
	svc, subscriptionRepo, businessRepo := newQuotaServiceForTest()

	businessRepo.On("GetByID", "biz-1").Return(&models.Business{ID: "biz-1", PlanID: "plan-pro"}, nil)
	subscriptionRepo.On("GetPlanByID", "plan-pro").Return(proPlan(), nil)
	subscriptionRepo.On("GetUsage", "biz-1", mock.Anything, models.FeatureAIEnhancement).
		Return(&models.SubscriptionUsage{Count: 10}, nil)

	check, err := svc.CheckUsageLimit("biz-1", models.FeatureAIEnhancement)
	assert.NoError(t, err)
	assert.False(t, check.Allowed)
	assert.Equal(t, 10, check.Used)
}

func TestCheckUsageLimit_UnlimitedSentinel(t *testing.T) {
	svc, subscriptionRepo, businessRepo := newQuotaServiceForTest()

	businessRepo.On("GetByID", "biz-1").Return(&models.Business{ID: "biz-1", PlanID: "plan-pro"}, nil)
	subscriptionRepo.On("GetPlanByID", "plan-pro").Return(proPlan(), nil)
	subscriptionRepo.On("GetUsage", "biz-1", mock.Anything, models.FeatureReviews).
		Return(&models.SubscriptionUsage{Count: 99999}, nil)

	check, err := svc.CheckUsageLimit("biz-1", models.FeatureReviews)
	assert.NoError(t, err)
	assert.True(t, check.Allowed)
	assert.True(t, check.Unlimited)
	assert.Equal(t, models.UnlimitedSentinel, check.Limit)
}

func TestCheckUsageLimit_BooleanFeature(t *testing.T) {
	svc, subscriptionRepo, businessRepo := newQuotaServiceForTest()

	businessRepo.On("GetByID", "biz-1").Return(&models.Business{ID: "biz-1", PlanID: "plan-pro"}, nil)
	subscriptionRepo.On("GetPlanByID", "plan-pro").Return(proPlan(), nil)

	check, err := svc.CheckUsageLimit("biz-1", models.FeatureCustomTemplates)
	assert.NoError(t, err)
	assert.True(t, check.Allowed)
}

func TestCheckUsageLimit_FailsClosedToFreePlan(t *testing.T) {
	svc, subscriptionRepo, businessRepo := newQuotaServiceForTest()

	// Business and free-plan lookups both fail; the built-in free plan wins.
	businessRepo.On("GetByID", "biz-1").Return(nil, errors.New("db down"))
	subscriptionRepo.On("GetPlanByName", "free").Return(nil, errors.New("db down"))
	subscriptionRepo.On("GetUsage", "biz-1", mock.Anything, models.FeatureAIEnhancement).
		Return(nil, gorm.ErrRecordNotFound)

	check, err := svc.CheckUsageLimit("biz-1", models.FeatureAIEnhancement)
	assert.NoError(t, err)
	assert.Equal(t, "free", check.PlanName)
	assert.Equal(t, 10, check.Limit)
	assert.True(t, check.Allowed) // nothing used yet this month

	customTemplates, err := svc.CheckUsageLimit("biz-1", models.FeatureCustomTemplates)
	assert.NoError(t, err)
	assert.False(t, customTemplates.Allowed)
}

func TestCheckUsageLimit_UnknownFeature(t *testing.T) {
	svc, subscriptionRepo, businessRepo := newQuotaServiceForTest()

	businessRepo.On("GetByID", "biz-1").Return(&models.Business{ID: "biz-1", PlanID: "plan-pro"}, nil)
	subscriptionRepo.On("GetPlanByID", "plan-pro").Return(proPlan(), nil)

	_, err := svc.CheckUsageLimit("biz-1", models.Feature("teleportation"))
	assert.Error(t, err)
}

func TestRecordUsage_SwallowsRepositoryErrors(t *testing.T) {
	svc, subscriptionRepo, _ := newQuotaServiceForTest()

	subscriptionRepo.On("IncrementUsage", "biz-1", mock.Anything, models.FeatureAIEnhancement, false, int64(1200)).
		Return(errors.New("db down"))

	// Must not panic or propagate.
	svc.RecordUsage("biz-1", models.FeatureAIEnhancement, false, 1200*time.Millisecond)
	subscriptionRepo.AssertExpectations(t)
}

func TestUsageSummary_CoversAllFeatures(t *testing.T) {
	svc, subscriptionRepo, businessRepo := newQuotaServiceForTest()

	businessRepo.On("GetByID", "biz-1").Return(&models.Business{ID: "biz-1", PlanID: "plan-pro"}, nil)
	subscriptionRepo.On("GetPlanByID", "plan-pro").Return(proPlan(), nil)
	subscriptionRepo.On("GetUsage", "biz-1", mock.Anything, mock.Anything).
		Return(&models.SubscriptionUsage{Count: 3}, nil)

	checks, err := svc.UsageSummary("biz-1")
	assert.NoError(t, err)
	assert.Len(t, checks, 3)

	features := make(map[models.Feature]bool)
	for _, check := range checks {
		features[check.Feature] = true
	}
	assert.True(t, features[models.FeatureAIEnhancement])
	assert.True(t, features[models.FeatureReviews])
	assert.True(t, features[models.FeatureCustomTemplates])
}

func TestSnapshotMonth(t *testing.T) {
	svc, subscriptionRepo, _ := newQuotaServiceForTest()

	month := time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC)
	rows := []models.SubscriptionUsage{
		{BusinessID: "biz-1", Month: month, FeatureType: models.FeatureAIEnhancement, Count: 8, SuccessCount: 7, FailureCount: 1},
		{BusinessID: "biz-2", Month: month, FeatureType: models.FeatureReviews, Count: 40, SuccessCount: 40},
	}
	subscriptionRepo.On("ListUsageForMonth", month).Return(rows, nil)
	subscriptionRepo.On("CreateSnapshots", mock.AnythingOfType("[]models.UsageSnapshot")).Return(nil)

	// A mid-month timestamp normalizes to the month start.
	count, err := svc.SnapshotMonth(time.Date(2025, time.July, 19, 14, 30, 0, 0, time.UTC))
	assert.NoError(t, err)
	assert.Equal(t, 2, count)
	subscriptionRepo.AssertExpectations(t)
}
