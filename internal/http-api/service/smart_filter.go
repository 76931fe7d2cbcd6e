package service

import (
	"strings"

	"reviewhub/internal/http-api/models"
)

// Ratings at or above this go to the external review site when the smart
// filter is enabled.
const smartFilterThreshold = 4

// ShouldRedirectExternally decides whether the customer is sent to the
// business's external review page after submitting. Pure decision: the review
// is stored internally either way.
//
// Rules, in order: no URL means no redirect; filter disabled means always
// redirect; otherwise only favorable ratings redirect.
func ShouldRedirectExternally(business *models.Business, submittedRating int) bool {
	if business == nil || strings.TrimSpace(business.GoogleReviewURL) == "" {
		return false
	}
	if !business.EnableSmartFilter {
		return true
	}
	return submittedRating >= smartFilterThreshold
}
