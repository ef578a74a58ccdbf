package models

import (
	"time"
)

// Token represents a stored OAuth token for the acting user's Google Drive account
type Token struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token,omitempty"`
	TokenType    string    `json:"token_type,omitempty"`
	Expiry       time.Time `json:"expiry,omitempty"`
	Scope        string    `json:"scope,omitempty"`
}

// OAuth2App holds the OAuth app credentials configured in the Mattermost app
type OAuth2App struct {
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
}

// OAuth2Context is the oauth2 bag expanded into a call context
type OAuth2Context struct {
	OAuth2App
	ConnectURL  string     `json:"connect_url,omitempty"`
	CompleteURL string     `json:"complete_url,omitempty"`
	User        *OAuth2User `json:"user,omitempty"`
}

// OAuth2User is the per-user oauth2 data stored by the app
type OAuth2User struct {
	Token *Token `json:"token,omitempty"`
	Email string `json:"email,omitempty"`
}

// HasToken checks if the user has a usable Drive token
func (u *OAuth2User) HasToken() bool {
	return u != nil && u.Token != nil && u.Token.AccessToken != ""
}
