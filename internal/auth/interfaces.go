package auth

import (
	"drive-upload-backend/pkg/models"

	"golang.org/x/oauth2"
)

// Provider defines the oauth2 configuration source for a cloud storage provider
type Provider interface {
	OAuthConfig(app models.OAuth2App) *oauth2.Config
}
