package middleware

import (
	"net/http"

	"reviewhub/internal/http-api/models"
	"reviewhub/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

// QuotaMiddleware gates a route on the caller's monthly limit for a feature.
// On breach it returns 403 with an upgrade hint. Must run after AuthMiddleware.
func QuotaMiddleware(quota service.QuotaService, feature models.Feature) gin.HandlerFunc {
	return func(c *gin.Context) {
		businessID, ok := BusinessID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "no business in token"})
			c.Abort()
			return
		}

		check, err := quota.CheckUsageLimit(businessID, feature)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "quota check failed"})
			c.Abort()
			return
		}
		if !check.Allowed {
			c.JSON(http.StatusForbidden, gin.H{
				"success":         false,
				"error":           "monthly limit reached",
				"upgradeRequired": true,
				"feature":         check.Feature,
				"used":            check.Used,
				"limit":           check.Limit,
				"plan":            check.PlanName,
			})
			c.Abort()
			return
		}
		c.Next()
	}
}
