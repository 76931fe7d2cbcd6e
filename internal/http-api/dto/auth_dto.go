package dto

// RegisterDTO creates an owner account and its business
type RegisterDTO struct {
	Username     string `json:"username" binding:"required,min=3,max=50"`
	Password     string `json:"password" binding:"required,min=8"`
	Email        string `json:"email" binding:"required,email"`
	BusinessName string `json:"businessName" binding:"required"`
	BusinessType string `json:"businessType,omitempty"`
	Industry     string `json:"industry,omitempty"`
}

// LoginDTO for username/password login
type LoginDTO struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RefreshDTO exchanges a refresh token for a new access token
type RefreshDTO struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// TokenResponse returned on login/refresh
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	UserID       string `json:"user_id"`
	Username     string `json:"username"`
	BusinessID   string `json:"business_id,omitempty"`
}
