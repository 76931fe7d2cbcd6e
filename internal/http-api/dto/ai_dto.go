package dto

import (
	"time"

	"reviewhub/internal/http-api/models"
)

// EnhanceReviewDTO for the authenticated enhancement endpoint
type EnhanceReviewDTO struct {
	ReviewID       string `json:"reviewId" binding:"required,uuid"`
	PreferredModel string `json:"preferredModel,omitempty"`
	CustomPrompt   string `json:"customPrompt,omitempty"`
}

// RegenerateReviewDTO for regeneration; both fields optional
type RegenerateReviewDTO struct {
	PreferredModel string `json:"preferredModel,omitempty"`
	CustomPrompt   string `json:"customPrompt,omitempty"`
}

// RejectReviewDTO carries the moderation note for a rejection
type RejectReviewDTO struct {
	Note string `json:"note,omitempty"`
}

// QuickEnhanceDTO for the public enhance-text endpoint
type QuickEnhanceDTO struct {
	Text         string `json:"text" binding:"required"`
	BusinessName string `json:"businessName,omitempty"`
	Seed         int64  `json:"seed,omitempty"`
}

// SetDefaultModelDTO for the admin default-model override
type SetDefaultModelDTO struct {
	Model string `json:"model" binding:"required"`
}

// GenerationResponse for returning one enhancement attempt
type GenerationResponse struct {
	ID            string                  `json:"id"`
	ReviewID      string                  `json:"review_id"`
	OriginalText  string                  `json:"original_text"`
	EnhancedText  string                  `json:"enhanced_text"`
	Confidence    float64                 `json:"confidence"`
	Sentiment     models.Sentiment        `json:"sentiment"`
	Keywords      []string                `json:"keywords"`
	Improvements  []string                `json:"improvements"`
	Status        models.GenerationStatus `json:"status"`
	RejectionNote string                  `json:"rejection_note,omitempty"`
	ModelUsed     string                  `json:"model_used"`
	LatencyMS     int64                   `json:"latency_ms"`
	GeneratedAt   time.Time               `json:"generated_at"`
}

// FromModelToGenerationResponse converts an AIGeneration model to its DTO
func FromModelToGenerationResponse(generation *models.AIGeneration) *GenerationResponse {
	return &GenerationResponse{
		ID:            generation.ID,
		ReviewID:      generation.ReviewID,
		OriginalText:  generation.OriginalText,
		EnhancedText:  generation.EnhancedText,
		Confidence:    generation.Confidence,
		Sentiment:     generation.Sentiment,
		Keywords:      generation.Keywords,
		Improvements:  generation.Improvements,
		Status:        generation.Status,
		RejectionNote: generation.RejectionNote,
		ModelUsed:     generation.ModelUsed,
		LatencyMS:     generation.LatencyMS,
		GeneratedAt:   generation.GeneratedAt,
	}
}
