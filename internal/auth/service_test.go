package auth

import (
	"context"
	"drive-upload-backend/pkg/models"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

type mockProvider struct {
	tokenURL string
}

func (p *mockProvider) OAuthConfig(app models.OAuth2App) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     app.ClientID,
		ClientSecret: app.ClientSecret,
		Endpoint:     oauth2.Endpoint{TokenURL: p.tokenURL, AuthStyle: oauth2.AuthStyleInParams},
	}
}

func callContext(token *models.Token, app models.OAuth2App) *models.Context {
	return &models.Context{
		OAuth2: &models.OAuth2Context{
			OAuth2App: app,
			User:      &models.OAuth2User{Token: token},
		},
	}
}

func TestDriveTokenSource_NotConnected(t *testing.T) {
	service := NewService(&mockProvider{}, time.Second)

	tests := []struct {
		name    string
		callCtx *models.Context
	}{
		{"no oauth2", &models.Context{}},
		{"no user", &models.Context{OAuth2: &models.OAuth2Context{}}},
		{"no token", callContext(nil, models.OAuth2App{})},
		{"empty token", callContext(&models.Token{}, models.OAuth2App{})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts, err := service.DriveTokenSource(context.Background(), tt.callCtx)
			assert.ErrorIs(t, err, ErrNotConnected)
			assert.Nil(t, ts)
		})
	}
}

func TestDriveTokenSource_Static(t *testing.T) {
	service := NewService(&mockProvider{}, time.Second)

	ts, err := service.DriveTokenSource(context.Background(), callContext(&models.Token{AccessToken: "drive-token"}, models.OAuth2App{}))
	require.NoError(t, err)

	token, err := ts.Token()
	require.NoError(t, err)
	assert.Equal(t, "drive-token", token.AccessToken)
}

func TestDriveTokenSource_MissingApp(t *testing.T) {
	service := NewService(&mockProvider{}, time.Second)

	_, err := service.DriveTokenSource(context.Background(), callContext(&models.Token{
		AccessToken:  "drive-token",
		RefreshToken: "refresh",
		Expiry:       time.Now().Add(-time.Hour),
	}, models.OAuth2App{ClientID: "id"}))
	assert.ErrorIs(t, err, ErrMissingApp)
}

func TestDriveTokenSource_Refresh(t *testing.T) {
	var refreshes atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		refreshes.Add(1)
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "refresh_token", r.PostForm.Get("grant_type"))
		assert.Equal(t, "refresh", r.PostForm.Get("refresh_token"))
		assert.Equal(t, "id", r.PostForm.Get("client_id"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token": "fresh-token", "token_type": "Bearer", "expires_in": 3600}`))
	}))
	defer server.Close()

	service := NewService(&mockProvider{tokenURL: server.URL}, time.Second)
	app := models.OAuth2App{ClientID: "id", ClientSecret: "secret"}

	t.Run("expired", func(t *testing.T) {
		ts, err := service.DriveTokenSource(context.Background(), callContext(&models.Token{
			AccessToken:  "stale-token",
			RefreshToken: "refresh",
			Expiry:       time.Now().Add(-time.Hour),
		}, app))
		require.NoError(t, err)

		token, err := ts.Token()
		require.NoError(t, err)
		assert.Equal(t, "fresh-token", token.AccessToken)
		assert.Equal(t, int32(1), refreshes.Load())
	})

	t.Run("still valid", func(t *testing.T) {
		ts, err := service.DriveTokenSource(context.Background(), callContext(&models.Token{
			AccessToken:  "valid-token",
			RefreshToken: "refresh",
			Expiry:       time.Now().Add(time.Hour),
		}, app))
		require.NoError(t, err)

		token, err := ts.Token()
		require.NoError(t, err)
		assert.Equal(t, "valid-token", token.AccessToken)
		assert.Equal(t, int32(1), refreshes.Load())
	})
}
