package handler

import (
	"net/http"

	"reviewhub/internal/http-api/middleware"
	"reviewhub/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

type SubscriptionHandler struct {
	quotaService service.QuotaService
}

func NewSubscriptionHandler(quotaService service.QuotaService) *SubscriptionHandler {
	return &SubscriptionHandler{quotaService: quotaService}
}

// RegisterRoutes registers subscription status routes
func (h *SubscriptionHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/subscription/usage", h.Usage)
}

// Usage reports the current month's per-feature usage against plan limits
// GET /api/subscription/usage
func (h *SubscriptionHandler) Usage(c *gin.Context) {
	businessID, ok := middleware.BusinessID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "no business in token"})
		return
	}

	checks, err := h.quotaService.UsageSummary(businessID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to load usage"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": checks})
}
