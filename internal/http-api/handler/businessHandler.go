package handler

import (
	"errors"
	"net/http"

	"reviewhub/internal/http-api/cache"
	"reviewhub/internal/http-api/dto"
	"reviewhub/internal/http-api/middleware"
	"reviewhub/internal/http-api/models"
	"reviewhub/internal/http-api/repository"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type BusinessHandler struct {
	businessRepo repository.BusinessRepository
	templateRepo repository.TemplateRepository
	cacheStore   *cache.Store
}

func NewBusinessHandler(businessRepo repository.BusinessRepository, templateRepo repository.TemplateRepository, cacheStore *cache.Store) *BusinessHandler {
	return &BusinessHandler{
		businessRepo: businessRepo,
		templateRepo: templateRepo,
		cacheStore:   cacheStore,
	}
}

// RegisterRoutes registers business settings routes
func (h *BusinessHandler) RegisterRoutes(router *gin.RouterGroup) {
	business := router.Group("/business")
	{
		business.GET("/settings", h.GetSettings)
		business.PUT("/settings", h.UpdateSettings)
		business.PUT("/template", h.UpsertTemplate)
	}
}

// GetSettings returns the caller's business settings
// GET /api/business/settings
func (h *BusinessHandler) GetSettings(c *gin.Context) {
	businessID, ok := middleware.BusinessID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "no business in token"})
		return
	}

	business, err := h.businessRepo.GetByID(businessID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "business not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "internal server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": dto.FromModelToBusinessSettings(business)})
}

// UpdateSettings applies partial updates to the smart-filter and AI settings
// PUT /api/business/settings
func (h *BusinessHandler) UpdateSettings(c *gin.Context) {
	businessID, ok := middleware.BusinessID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "no business in token"})
		return
	}

	var req dto.UpdateBusinessSettingsDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	business, err := h.businessRepo.GetByID(businessID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "business not found"})
		return
	}

	if req.GoogleReviewURL != nil {
		business.GoogleReviewURL = *req.GoogleReviewURL
	}
	if req.EnableSmartFilter != nil {
		business.EnableSmartFilter = *req.EnableSmartFilter
	}
	if req.PreferredModel != nil {
		business.PreferredModel = *req.PreferredModel
	}

	if err := h.businessRepo.Update(business); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to save settings"})
		return
	}

	// Settings are read on every submission; drop the stale cache entry.
	_ = h.cacheStore.Delete(c.Request.Context(), cache.BusinessKey(businessID))

	c.JSON(http.StatusOK, gin.H{"success": true, "data": dto.FromModelToBusinessSettings(business)})
}

// UpsertTemplate creates or replaces the business prompt template override
// PUT /api/business/template
func (h *BusinessHandler) UpsertTemplate(c *gin.Context) {
	businessID, ok := middleware.BusinessID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "no business in token"})
		return
	}

	var req dto.UpsertTemplateDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	template := &models.PromptTemplate{
		BusinessID: businessID,
		Name:       req.Name,
		Template:   req.Template,
		Active:     true,
	}
	if req.Active != nil {
		template.Active = *req.Active
	}

	if existing, err := h.templateRepo.GetActiveByBusiness(businessID); err == nil {
		template.ID = existing.ID
	}

	if err := h.templateRepo.Upsert(template); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to save template"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": template})
}
