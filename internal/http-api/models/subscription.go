package models

import (
	"time"
)

// Feature identifies a plan-gated capability.
type Feature string

const (
	FeatureAIEnhancement   Feature = "ai_enhancement"
	FeatureReviews         Feature = "reviews"
	FeatureCustomTemplates Feature = "custom_templates"
)

// LimitKind tags the FeatureLimit union.
type LimitKind int

const (
	LimitUnlimited LimitKind = iota
	LimitBoolean
	LimitNumeric
)

// FeatureLimit is the resolved limit for one feature on one plan, either
// unlimited, an on/off switch, or a monthly count.
type FeatureLimit struct {
	Kind    LimitKind
	Enabled bool // valid when Kind == LimitBoolean
	Limit   int  // valid when Kind == LimitNumeric
}

func Unlimited() FeatureLimit           { return FeatureLimit{Kind: LimitUnlimited} }
func BooleanLimit(on bool) FeatureLimit { return FeatureLimit{Kind: LimitBoolean, Enabled: on} }
func NumericLimit(n int) FeatureLimit   { return FeatureLimit{Kind: LimitNumeric, Limit: n} }

// UnlimitedSentinel is the stored value meaning "no monthly cap".
const UnlimitedSentinel = -1

type SubscriptionPlan struct {
	ID          string `gorm:"primaryKey;type:uuid" json:"id"`
	Name        string `gorm:"uniqueIndex;not null" json:"name"` // "free", "pro", ...
	DisplayName string `json:"display_name"`
	PriceCents  int    `json:"price_cents"`

	// Monthly caps; UnlimitedSentinel (-1) means no cap.
	AIEnhancementLimit int  `gorm:"default:10" json:"ai_enhancement_limit"`
	ReviewLimit        int  `gorm:"default:100" json:"review_limit"`
	CustomTemplates    bool `gorm:"default:false" json:"custom_templates"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (SubscriptionPlan) TableName() string {
	return "subscription_plans"
}

// FeatureLimit resolves a feature to its typed limit. The second return is
// false for features the plan does not know about.
func (p *SubscriptionPlan) FeatureLimit(feature Feature) (FeatureLimit, bool) {
	switch feature {
	case FeatureAIEnhancement:
		if p.AIEnhancementLimit == UnlimitedSentinel {
			return Unlimited(), true
		}
		return NumericLimit(p.AIEnhancementLimit), true
	case FeatureReviews:
		if p.ReviewLimit == UnlimitedSentinel {
			return Unlimited(), true
		}
		return NumericLimit(p.ReviewLimit), true
	case FeatureCustomTemplates:
		return BooleanLimit(p.CustomTemplates), true
	default:
		return FeatureLimit{}, false
	}
}

// FreePlan is the most restrictive plan, used when lookup fails (fail closed).
func FreePlan() *SubscriptionPlan {
	return &SubscriptionPlan{
		Name:               "free",
		DisplayName:        "Free",
		AIEnhancementLimit: 10,
		ReviewLimit:        100,
		CustomTemplates:    false,
	}
}

// SubscriptionUsage is one ledger row aggregating a business's usage of a
// feature within one calendar month. Rows are only ever incremented.
type SubscriptionUsage struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	BusinessID  string    `gorm:"type:uuid;not null;uniqueIndex:idx_usage_month,priority:1" json:"business_id"`
	Month       time.Time `gorm:"not null;uniqueIndex:idx_usage_month,priority:2" json:"month"` // first of month, UTC
	FeatureType Feature   `gorm:"type:varchar(40);not null;uniqueIndex:idx_usage_month,priority:3" json:"feature_type"`

	Count          int   `gorm:"default:0" json:"count"` // total attempts
	SuccessCount   int   `gorm:"default:0" json:"success_count"`
	FailureCount   int   `gorm:"default:0" json:"failure_count"`
	TotalLatencyMS int64 `gorm:"default:0" json:"total_latency_ms"`

	LastUsedAt time.Time `json:"last_used_at"`

	// Associations
	Business Business `json:"-" gorm:"foreignKey:BusinessID;constraint:OnDelete:CASCADE;"`
}

func (SubscriptionUsage) TableName() string {
	return "subscription_usage"
}

// UsageSnapshot is a frozen copy of a closed month's ledger row, produced by
// the monthly rollup job for billing export.
type UsageSnapshot struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	BusinessID   string    `gorm:"type:uuid;not null;index" json:"business_id"`
	Month        time.Time `gorm:"not null;index" json:"month"`
	FeatureType  Feature   `gorm:"type:varchar(40);not null" json:"feature_type"`
	Count        int       `json:"count"`
	SuccessCount int       `json:"success_count"`
	FailureCount int       `json:"failure_count"`
	CreatedAt    time.Time `json:"created_at"`
}

func (UsageSnapshot) TableName() string {
	return "usage_snapshots"
}
