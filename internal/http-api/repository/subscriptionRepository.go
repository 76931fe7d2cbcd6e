package repository

import (
	"time"

	"reviewhub/internal/http-api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SubscriptionRepository interface {
	GetPlanByID(id string) (*models.SubscriptionPlan, error)
	GetPlanByName(name string) (*models.SubscriptionPlan, error)
	// SeedDefaultPlans creates the built-in plans if missing; run at startup.
	SeedDefaultPlans() error

	GetUsage(businessID string, month time.Time, feature models.Feature) (*models.SubscriptionUsage, error)
	// IncrementUsage upserts the (business, month, feature) ledger row and
	// bumps its counters. The ledger is append-only: counters never go down.
	IncrementUsage(businessID string, month time.Time, feature models.Feature, success bool, latencyMS int64) error

	ListUsageForMonth(month time.Time) ([]models.SubscriptionUsage, error)
	CreateSnapshots(snapshots []models.UsageSnapshot) error
}

type subscriptionRepository struct {
	db *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) SubscriptionRepository {
	return &subscriptionRepository{db: db}
}

func (r *subscriptionRepository) GetPlanByID(id string) (*models.SubscriptionPlan, error) {
	var plan models.SubscriptionPlan
	if err := r.db.First(&plan, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &plan, nil
}

func (r *subscriptionRepository) GetPlanByName(name string) (*models.SubscriptionPlan, error) {
	var plan models.SubscriptionPlan
	if err := r.db.Where("name = ?", name).First(&plan).Error; err != nil {
		return nil, err
	}
	return &plan, nil
}

func (r *subscriptionRepository) SeedDefaultPlans() error {
	plans := []models.SubscriptionPlan{
		{
			Name:               "free",
			DisplayName:        "Free",
			AIEnhancementLimit: 10,
			ReviewLimit:        100,
			CustomTemplates:    false,
		},
		{
			Name:               "pro",
			DisplayName:        "Pro",
			PriceCents:         2900,
			AIEnhancementLimit: 200,
			ReviewLimit:        models.UnlimitedSentinel,
			CustomTemplates:    true,
		},
		{
			Name:               "enterprise",
			DisplayName:        "Enterprise",
			PriceCents:         9900,
			AIEnhancementLimit: models.UnlimitedSentinel,
			ReviewLimit:        models.UnlimitedSentinel,
			CustomTemplates:    true,
		},
	}
	for _, plan := range plans {
		if err := r.db.Where("name = ?", plan.Name).FirstOrCreate(&plan).Error; err != nil {
			return err
		}
	}
	return nil
}

func (r *subscriptionRepository) GetUsage(businessID string, month time.Time, feature models.Feature) (*models.SubscriptionUsage, error) {
	var usage models.SubscriptionUsage
	err := r.db.Where("business_id = ? AND month = ? AND feature_type = ?", businessID, month, feature).
		First(&usage).Error
	if err != nil {
		return nil, err
	}
	return &usage, nil
}

func (r *subscriptionRepository) IncrementUsage(businessID string, month time.Time, feature models.Feature, success bool, latencyMS int64) error {
	now := time.Now().UTC()
	row := models.SubscriptionUsage{
		BusinessID:     businessID,
		Month:          month,
		FeatureType:    feature,
		Count:          1,
		TotalLatencyMS: latencyMS,
		LastUsedAt:     now,
	}
	successInc, failureInc := 0, 1
	if success {
		successInc, failureInc = 1, 0
		row.SuccessCount = 1
		row.FailureCount = 0
	} else {
		row.FailureCount = 1
	}

	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "business_id"}, {Name: "month"}, {Name: "feature_type"}},
		DoUpdates: clause.Assignments(map[string]any{
			"count":            gorm.Expr("subscription_usage.count + 1"),
			"success_count":    gorm.Expr("subscription_usage.success_count + ?", successInc),
			"failure_count":    gorm.Expr("subscription_usage.failure_count + ?", failureInc),
			"total_latency_ms": gorm.Expr("subscription_usage.total_latency_ms + ?", latencyMS),
			"last_used_at":     now,
		}),
	}).Create(&row).Error
}

func (r *subscriptionRepository) ListUsageForMonth(month time.Time) ([]models.SubscriptionUsage, error) {
	var rows []models.SubscriptionUsage
	if err := r.db.Where("month = ?", month).Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *subscriptionRepository) CreateSnapshots(snapshots []models.UsageSnapshot) error {
	if len(snapshots) == 0 {
		return nil
	}
	return r.db.Create(&snapshots).Error
}
