package service

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"reviewhub/internal/http-api/models"
	"reviewhub/internal/http-api/repository"

	"gorm.io/gorm"
)

// QuotaExceededError carries the detail surfaced with a 403 upgrade hint.
type QuotaExceededError struct {
	Feature  models.Feature
	Used     int
	Limit    int
	PlanName string
}

func (e *QuotaExceededError) Error() string {
	return fmt.Sprintf("monthly limit reached for %s: %d/%d on plan %s", e.Feature, e.Used, e.Limit, e.PlanName)
}

// UsageCheck answers "is this action allowed right now?".
type UsageCheck struct {
	Allowed   bool           `json:"allowed"`
	Feature   models.Feature `json:"feature"`
	Used      int            `json:"used"`
	Limit     int            `json:"limit"` // models.UnlimitedSentinel when unlimited
	Unlimited bool           `json:"unlimited"`
	PlanName  string         `json:"plan_name"`
}

type QuotaService interface {
	CheckUsageLimit(businessID string, feature models.Feature) (*UsageCheck, error)
	// RecordUsage appends to the ledger. Best-effort: failures are logged and
	// never propagate to the calling operation.
	RecordUsage(businessID string, feature models.Feature, success bool, latency time.Duration)
	// UsageSummary reports the current month's checks for every known feature.
	UsageSummary(businessID string) ([]UsageCheck, error)
	// SnapshotMonth freezes the ledger rows of the given month; returns the
	// number of snapshot rows written.
	SnapshotMonth(month time.Time) (int, error)
}

type quotaService struct {
	subscriptionRepo repository.SubscriptionRepository
	businessRepo     repository.BusinessRepository
	logger           *slog.Logger
}

func NewQuotaService(
	subscriptionRepo repository.SubscriptionRepository,
	businessRepo repository.BusinessRepository,
	logger *slog.Logger,
) QuotaService {
	return &quotaService{
		subscriptionRepo: subscriptionRepo,
		businessRepo:     businessRepo,
		logger:           logger,
	}
}

// monthStart returns the first of the current month in UTC, the window the
// ledger aggregates over.
func monthStart(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// resolvePlan fails closed: any lookup problem degrades to the free plan.
func (s *quotaService) resolvePlan(businessID string) *models.SubscriptionPlan {
	business, err := s.businessRepo.GetByID(businessID)
	if err == nil && business.PlanID != "" {
		plan, err := s.subscriptionRepo.GetPlanByID(business.PlanID)
		if err == nil {
			return plan
		}
		s.logger.Warn("plan lookup failed, falling back to free plan",
			"business_id", businessID, "plan_id", business.PlanID, "error", err)
	}
	plan, err := s.subscriptionRepo.GetPlanByName("free")
	if err != nil {
		return models.FreePlan()
	}
	return plan
}

// CheckUsageLimit is a soft limit: two concurrent checks near the boundary can
// both pass before either increment lands. The domain tolerates the small
// overage, so there is no cross-request locking here.
func (s *quotaService) CheckUsageLimit(businessID string, feature models.Feature) (*UsageCheck, error) {
	plan := s.resolvePlan(businessID)

	limit, known := plan.FeatureLimit(feature)
	if !known {
		return nil, fmt.Errorf("unknown feature %q", feature)
	}

	check := &UsageCheck{
		Feature:  feature,
		PlanName: plan.Name,
	}

	switch limit.Kind {
	case models.LimitUnlimited:
		check.Allowed = true
		check.Unlimited = true
		check.Limit = models.UnlimitedSentinel
		check.Used = s.usedThisMonth(businessID, feature)
	case models.LimitBoolean:
		check.Allowed = limit.Enabled
		check.Limit = models.UnlimitedSentinel
	case models.LimitNumeric:
		used := s.usedThisMonth(businessID, feature)
		check.Used = used
		check.Limit = limit.Limit
		check.Allowed = used < limit.Limit
	}
	return check, nil
}

func (s *quotaService) usedThisMonth(businessID string, feature models.Feature) int {
	usage, err := s.subscriptionRepo.GetUsage(businessID, monthStart(time.Now()), feature)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Warn("usage lookup failed, treating as zero",
				"business_id", businessID, "feature", feature, "error", err)
		}
		return 0
	}
	return usage.Count
}

// RecordUsage counts every attempt, success or failure alike; the cost is
// incurred either way.
func (s *quotaService) RecordUsage(businessID string, feature models.Feature, success bool, latency time.Duration) {
	err := s.subscriptionRepo.IncrementUsage(businessID, monthStart(time.Now()), feature, success, latency.Milliseconds())
	if err != nil {
		// Log-and-continue: usage accounting must never fail the operation.
		s.logger.Error("failed to record usage",
			"business_id", businessID, "feature", feature, "success", success, "error", err)
	}
}

func (s *quotaService) UsageSummary(businessID string) ([]UsageCheck, error) {
	features := []models.Feature{models.FeatureAIEnhancement, models.FeatureReviews, models.FeatureCustomTemplates}
	checks := make([]UsageCheck, 0, len(features))
	for _, feature := range features {
		check, err := s.CheckUsageLimit(businessID, feature)
		if err != nil {
			return nil, err
		}
		checks = append(checks, *check)
	}
	return checks, nil
}

func (s *quotaService) SnapshotMonth(month time.Time) (int, error) {
	month = monthStart(month)
	rows, err := s.subscriptionRepo.ListUsageForMonth(month)
	if err != nil {
		return 0, err
	}

	snapshots := make([]models.UsageSnapshot, 0, len(rows))
	for _, row := range rows {
		snapshots = append(snapshots, models.UsageSnapshot{
			BusinessID:   row.BusinessID,
			Month:        row.Month,
			FeatureType:  row.FeatureType,
			Count:        row.Count,
			SuccessCount: row.SuccessCount,
			FailureCount: row.FailureCount,
		})
	}
	if err := s.subscriptionRepo.CreateSnapshots(snapshots); err != nil {
		return 0, err
	}
	return len(snapshots), nil
}
