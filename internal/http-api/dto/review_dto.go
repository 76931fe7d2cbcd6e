package dto

import (
	"time"

	"reviewhub/internal/http-api/models"
)

// CreateReviewDTO for submitting a review (authenticated or public)
type CreateReviewDTO struct {
	ID            string         `json:"id,omitempty"`
	BusinessID    string         `json:"businessId" binding:"required,uuid"`
	CustomerID    string         `json:"customerId,omitempty"`
	CustomerName  string         `json:"customerName,omitempty"`
	CustomerEmail string         `json:"customerEmail,omitempty" binding:"omitempty,email"`
	Rating        int            `json:"rating" binding:"required,min=1,max=5"`
	Feedback      string         `json:"feedback"`
	FormData      map[string]any `json:"formData,omitempty"`
}

// UpdateReviewStatusDTO for the generic status transition endpoint
type UpdateReviewStatusDTO struct {
	Status          string `json:"status" binding:"required"`
	GeneratedReview string `json:"generatedReview,omitempty"`
}

// ReviewResponse for returning review information
type ReviewResponse struct {
	ID              string              `json:"id"`
	BusinessID      string              `json:"business_id"`
	CustomerID      string              `json:"customer_id,omitempty"`
	Rating          int                 `json:"rating"`
	Feedback        string              `json:"feedback"`
	GeneratedReview string              `json:"generated_review,omitempty"`
	Status          models.ReviewStatus `json:"status"`
	FormData        models.JSONMap      `json:"form_data,omitempty"`
	ModerationNote  string              `json:"moderation_note,omitempty"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
}

// FromModelToReviewResponse converts a Review model to ReviewResponse DTO
func FromModelToReviewResponse(review *models.Review) *ReviewResponse {
	return &ReviewResponse{
		ID:              review.ID,
		BusinessID:      review.BusinessID,
		CustomerID:      review.CustomerID,
		Rating:          review.Rating,
		Feedback:        review.Feedback,
		GeneratedReview: review.GeneratedReview,
		Status:          review.Status,
		FormData:        review.FormData,
		ModerationNote:  review.ModerationNote,
		CreatedAt:       review.CreatedAt,
		UpdatedAt:       review.UpdatedAt,
	}
}

// SubmitReviewResponse pairs the stored review with the redirect decision
type SubmitReviewResponse struct {
	Review      *ReviewResponse `json:"review"`
	Redirect    bool            `json:"redirect"`
	RedirectURL string          `json:"redirect_url,omitempty"`
}

// PaginatedReviewResponse for the moderation queue listing
type PaginatedReviewResponse struct {
	Reviews    []ReviewResponse `json:"reviews"`
	Total      int64            `json:"total"`
	Page       int              `json:"page"`
	PageSize   int              `json:"page_size"`
	TotalPages int              `json:"total_pages"`
}
