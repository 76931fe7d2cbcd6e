package handler

import (
	"net/http"
	"strconv"

	"reviewhub/internal/http-api/dto"
	"reviewhub/internal/http-api/middleware"
	"reviewhub/internal/http-api/models"
	"reviewhub/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

type ReviewHandler struct {
	reviewService service.ReviewService
}

func NewReviewHandler(reviewService service.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

// RegisterRoutes registers authenticated review routes
func (h *ReviewHandler) RegisterRoutes(router *gin.RouterGroup) {
	reviews := router.Group("/reviews")
	{
		reviews.POST("", h.Create)
		reviews.GET("", h.List)
		reviews.GET("/:id", h.Get)
		reviews.PUT("/:id/status", h.UpdateStatus)
	}
}

// RegisterPublicRoutes registers the anonymous submission route
func (h *ReviewHandler) RegisterPublicRoutes(router *gin.RouterGroup) {
	router.POST("/reviews/public", h.CreatePublic)
}

// Create submits a review on behalf of the authenticated business
// POST /api/reviews
func (h *ReviewHandler) Create(c *gin.Context) {
	businessID, ok := middleware.BusinessID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "no business in token"})
		return
	}

	var req dto.CreateReviewDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}
	if req.BusinessID != businessID {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "business not found"})
		return
	}

	h.create(c, req)
}

// CreatePublic submits a review anonymously, e.g. from a QR landing page
// POST /api/reviews/public
func (h *ReviewHandler) CreatePublic(c *gin.Context) {
	var req dto.CreateReviewDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}
	h.create(c, req)
}

func (h *ReviewHandler) create(c *gin.Context, req dto.CreateReviewDTO) {
	result, err := h.reviewService.CreateReview(service.SubmitReviewInput{
		ID:            req.ID,
		BusinessID:    req.BusinessID,
		CustomerID:    req.CustomerID,
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		Rating:        req.Rating,
		Feedback:      req.Feedback,
		FormData:      models.JSONMap(req.FormData),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data": dto.SubmitReviewResponse{
			Review:      dto.FromModelToReviewResponse(result.Review),
			Redirect:    result.Redirect,
			RedirectURL: result.RedirectURL,
		},
	})
}

// Get retrieves a single review owned by the caller's business
// GET /api/reviews/:id
func (h *ReviewHandler) Get(c *gin.Context) {
	businessID, ok := middleware.BusinessID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "no business in token"})
		return
	}

	review, err := h.reviewService.GetReview(c.Param("id"), businessID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": dto.FromModelToReviewResponse(review)})
}

// List returns the business's reviews, optionally filtered by status
// GET /api/reviews?status=AI_GENERATED&page=1&page_size=20
func (h *ReviewHandler) List(c *gin.Context) {
	businessID, ok := middleware.BusinessID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "no business in token"})
		return
	}

	// Clamp here too: totalPages below divides by pageSize, so a bad query
	// value must never reach the arithmetic.
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	status := models.ReviewStatus(c.Query("status"))

	reviews, total, err := h.reviewService.ListReviews(businessID, status, page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]dto.ReviewResponse, 0, len(reviews))
	for i := range reviews {
		responses = append(responses, *dto.FromModelToReviewResponse(&reviews[i]))
	}

	totalPages := int(total) / pageSize
	if int(total)%pageSize != 0 {
		totalPages++
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": dto.PaginatedReviewResponse{
			Reviews:    responses,
			Total:      total,
			Page:       page,
			PageSize:   pageSize,
			TotalPages: totalPages,
		},
	})
}

// UpdateStatus performs a guarded lifecycle transition
// PUT /api/reviews/:id/status
func (h *ReviewHandler) UpdateStatus(c *gin.Context) {
	businessID, ok := middleware.BusinessID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "no business in token"})
		return
	}

	var req dto.UpdateReviewStatusDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	userID, _ := c.Get("userID")
	moderatedBy, _ := userID.(string)

	review, err := h.reviewService.UpdateStatus(
		c.Param("id"), businessID,
		models.ReviewStatus(req.Status), req.GeneratedReview, moderatedBy,
	)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": dto.FromModelToReviewResponse(review)})
}
