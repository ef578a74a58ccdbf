package auth

import (
	"context"
	"drive-upload-backend/pkg/models"
	"errors"
	"net/http"
	"time"

	"golang.org/x/oauth2"
)

var (
	ErrNotConnected = errors.New("google Drive account is not connected")
	ErrMissingApp   = errors.New("oauth2 app is not configured")
)

// Service resolves the acting user's Drive credential from a call context
type Service struct {
	httpClient *http.Client
	driveAuth  Provider
}

func NewService(driveAuth Provider, timeout time.Duration) *Service {
	return &Service{
		httpClient: &http.Client{Timeout: timeout},
		driveAuth:  driveAuth,
	}
}

// DriveTokenSource returns a token source bound to the acting user's stored Drive token.
// Tokens with an expiry and a refresh token are refreshed through the OAuth app.
func (s *Service) DriveTokenSource(ctx context.Context, callCtx *models.Context) (oauth2.TokenSource, error) {
	if callCtx.OAuth2 == nil || !callCtx.OAuth2.User.HasToken() {
		return nil, ErrNotConnected
	}

	stored := callCtx.OAuth2.User.Token
	token := &oauth2.Token{
		AccessToken:  stored.AccessToken,
		RefreshToken: stored.RefreshToken,
		TokenType:    stored.TokenType,
		Expiry:       stored.Expiry,
	}

	if stored.RefreshToken == "" || stored.Expiry.IsZero() {
		return oauth2.StaticTokenSource(token), nil
	}

	app := callCtx.OAuth2.OAuth2App
	if app.ClientID == "" || app.ClientSecret == "" {
		return nil, ErrMissingApp
	}

	// Refresh requests go through the service HTTP client
	ctx = context.WithValue(ctx, oauth2.HTTPClient, s.httpClient)
	return s.driveAuth.OAuthConfig(app).TokenSource(ctx, token), nil
}
