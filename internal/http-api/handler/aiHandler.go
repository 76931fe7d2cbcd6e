package handler

import (
	"net/http"

	"reviewhub/internal/http-api/dto"
	"reviewhub/internal/http-api/middleware"
	"reviewhub/internal/http-api/models"
	"reviewhub/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

type AIHandler struct {
	aiService     service.AIService
	reviewService service.ReviewService
	quotaService  service.QuotaService
}

func NewAIHandler(aiService service.AIService, reviewService service.ReviewService, quotaService service.QuotaService) *AIHandler {
	return &AIHandler{
		aiService:     aiService,
		reviewService: reviewService,
		quotaService:  quotaService,
	}
}

// RegisterRoutes registers authenticated AI routes; enhancement routes carry
// the quota gate.
func (h *AIHandler) RegisterRoutes(router *gin.RouterGroup) {
	ai := router.Group("/ai")
	{
		quotaGate := middleware.QuotaMiddleware(h.quotaService, models.FeatureAIEnhancement)
		ai.POST("/enhance-review", quotaGate, h.EnhanceReview)
		ai.POST("/regenerate-review/:reviewId", quotaGate, h.RegenerateReview)
		ai.POST("/approve-review/:reviewId", h.ApproveReview)
		ai.POST("/reject-review/:reviewId", h.RejectReview)
		ai.GET("/generations/:reviewId", h.ListGenerations)
	}
}

// RegisterPublicRoutes registers the anonymous quick-enhance route
func (h *AIHandler) RegisterPublicRoutes(router *gin.RouterGroup) {
	router.POST("/ai/enhance-text", h.QuickEnhance)
}

// RegisterAdminRoutes registers the default-model override
func (h *AIHandler) RegisterAdminRoutes(router *gin.RouterGroup) {
	router.PUT("/ai/default-model", h.SetDefaultModel)
	router.GET("/ai/default-model", h.GetDefaultModel)
}

// EnhanceReview runs the enhancement workflow for a pending review
// POST /api/ai/enhance-review
func (h *AIHandler) EnhanceReview(c *gin.Context) {
	businessID, ok := middleware.BusinessID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "no business in token"})
		return
	}

	var req dto.EnhanceReviewDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	generation, err := h.aiService.EnhanceReview(c.Request.Context(), req.ReviewID, businessID, service.EnhanceOptions{
		PreferredModel: req.PreferredModel,
		CustomPrompt:   req.CustomPrompt,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": dto.FromModelToGenerationResponse(generation)})
}

// RegenerateReview supersedes the prior attempt with a fresh one
// POST /api/ai/regenerate-review/:reviewId
func (h *AIHandler) RegenerateReview(c *gin.Context) {
	businessID, ok := middleware.BusinessID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "no business in token"})
		return
	}

	var req dto.RegenerateReviewDTO
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	generation, err := h.aiService.Regenerate(c.Request.Context(), c.Param("reviewId"), businessID, service.EnhanceOptions{
		PreferredModel: req.PreferredModel,
		CustomPrompt:   req.CustomPrompt,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": dto.FromModelToGenerationResponse(generation)})
}

// ApproveReview approves the pending generation and the review
// POST /api/ai/approve-review/:reviewId
func (h *AIHandler) ApproveReview(c *gin.Context) {
	businessID, ok := middleware.BusinessID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "no business in token"})
		return
	}

	userID, _ := c.Get("userID")
	approvedBy, _ := userID.(string)

	review, err := h.reviewService.Approve(c.Param("reviewId"), businessID, approvedBy)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": dto.FromModelToReviewResponse(review)})
}

// RejectReview rejects the pending generation; the review reverts to PENDING
// POST /api/ai/reject-review/:reviewId
func (h *AIHandler) RejectReview(c *gin.Context) {
	businessID, ok := middleware.BusinessID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "no business in token"})
		return
	}

	var req dto.RejectReviewDTO
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	userID, _ := c.Get("userID")
	moderatedBy, _ := userID.(string)

	review, err := h.reviewService.Reject(c.Param("reviewId"), businessID, req.Note, moderatedBy)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": dto.FromModelToReviewResponse(review)})
}

// ListGenerations returns the full attempt history for a review
// GET /api/ai/generations/:reviewId
func (h *AIHandler) ListGenerations(c *gin.Context) {
	businessID, ok := middleware.BusinessID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "no business in token"})
		return
	}

	generations, err := h.aiService.ListGenerations(c.Param("reviewId"), businessID)
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]dto.GenerationResponse, 0, len(generations))
	for i := range generations {
		responses = append(responses, *dto.FromModelToGenerationResponse(&generations[i]))
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": responses})
}

// QuickEnhance is the public enhance path; generation never fails, only
// validation can reject.
// POST /api/ai/enhance-text
func (h *AIHandler) QuickEnhance(c *gin.Context) {
	var req dto.QuickEnhanceDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	result, err := h.aiService.QuickEnhance(c.Request.Context(), service.QuickEnhanceInput{
		Text:         req.Text,
		BusinessName: req.BusinessName,
		Seed:         req.Seed,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": result})
}

// SetDefaultModel persists the admin override
// PUT /api/admin/ai/default-model
func (h *AIHandler) SetDefaultModel(c *gin.Context) {
	var req dto.SetDefaultModelDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	if err := h.aiService.SetDefaultModel(c.Request.Context(), req.Model); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "model": req.Model})
}

// GetDefaultModel reports the effective default model
// GET /api/admin/ai/default-model
func (h *AIHandler) GetDefaultModel(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true, "model": h.aiService.DefaultModel(c.Request.Context())})
}
