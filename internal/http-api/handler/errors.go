package handler

import (
	"errors"
	"net/http"

	"reviewhub/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

// respondError maps service errors onto the stable JSON error envelope.
func respondError(c *gin.Context, err error) {
	var contentErr *service.ContentError
	var stateErr *service.StateTransitionError
	var enhanceErr *service.EnhancementError

	switch {
	case errors.Is(err, service.ErrInvalidRating):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error(), "field": "rating"})
	case errors.Is(err, service.ErrReviewExists):
		c.JSON(http.StatusConflict, gin.H{"success": false, "error": err.Error()})
	case errors.Is(err, service.ErrReviewNotFound), errors.Is(err, service.ErrBusinessNotFound):
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": err.Error()})
	case errors.Is(err, service.ErrNoPendingGeneration):
		c.JSON(http.StatusConflict, gin.H{"success": false, "error": err.Error()})
	case errors.As(err, &contentErr):
		c.JSON(http.StatusBadRequest, gin.H{
			"success":     false,
			"error":       "feedback failed validation",
			"reasons":     contentErr.Reasons,
			"suggestions": contentErr.Suggestions,
		})
	case errors.As(err, &stateErr):
		c.JSON(http.StatusConflict, gin.H{
			"success":       false,
			"error":         stateErr.Error(),
			"current_state": stateErr.CurrentState,
		})
	case errors.As(err, &enhanceErr):
		c.JSON(http.StatusInternalServerError, gin.H{
			"success":   false,
			"error":     enhanceErr.Error(),
			"retryable": enhanceErr.Retryable,
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "internal server error"})
	}
}
