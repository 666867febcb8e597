package dto

import "github.com/noah-isme/curriculum-scheduler/internal/models"

// IssueTokenRequest asks for a signed API token.
type IssueTokenRequest struct {
	Subject string          `json:"subject" validate:"required"`
	Role    models.UserRole `json:"role" validate:"required,oneof=ADMIN REGISTRAR VIEWER"`
	Name    string          `json:"name,omitempty"`
}

// TokenResponse carries a signed token.
type TokenResponse struct {
	AccessToken string `json:"accessToken"`
	TokenType   string `json:"tokenType"`
	ExpiresIn   int64  `json:"expiresIn"`
}
