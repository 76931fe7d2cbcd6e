package dto

import "reviewhub/internal/http-api/models"

// UpdateBusinessSettingsDTO uses pointers so omitted fields keep their value
type UpdateBusinessSettingsDTO struct {
	GoogleReviewURL   *string `json:"googleReviewUrl,omitempty" binding:"omitempty,url"`
	EnableSmartFilter *bool   `json:"enableSmartFilter,omitempty"`
	PreferredModel    *string `json:"preferredModel,omitempty"`
}

// BusinessSettingsResponse is the settings subset owners can read and edit
type BusinessSettingsResponse struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	BusinessType      string `json:"business_type"`
	Industry          string `json:"industry"`
	GoogleReviewURL   string `json:"google_review_url"`
	EnableSmartFilter bool   `json:"enable_smart_filter"`
	PreferredModel    string `json:"preferred_model"`
}

func FromModelToBusinessSettings(business *models.Business) *BusinessSettingsResponse {
	return &BusinessSettingsResponse{
		ID:                business.ID,
		Name:              business.Name,
		BusinessType:      business.BusinessType,
		Industry:          business.Industry,
		GoogleReviewURL:   business.GoogleReviewURL,
		EnableSmartFilter: business.EnableSmartFilter,
		PreferredModel:    business.PreferredModel,
	}
}

// UpsertTemplateDTO creates or updates the business prompt template override
type UpsertTemplateDTO struct {
	Name     string `json:"name,omitempty"`
	Template string `json:"template" binding:"required"`
	Active   *bool  `json:"active,omitempty"`
}
