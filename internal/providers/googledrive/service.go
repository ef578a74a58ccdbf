package googledrive

import (
	"context"
	"drive-upload-backend/pkg/models"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2"
)

// Service builds per-user Google Drive clients
type Service struct {
	httpClient *http.Client
	uploadURL  string
	tokenURL   string
}

// NewGoogleDriveService creates a new Google Drive service. headerTimeout caps the wait for
// response headers only; the body transfer is bounded by the caller's context.
func NewGoogleDriveService(uploadURL, tokenURL string, headerTimeout time.Duration) *Service {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.ResponseHeaderTimeout = headerTimeout

	return &Service{
		httpClient: &http.Client{Transport: transport},
		uploadURL:  strings.TrimSuffix(uploadURL, "/"),
		tokenURL:   tokenURL,
	}
}

// OAuthConfig returns the oauth2 config for the given app credentials
func (s *Service) OAuthConfig(app models.OAuth2App) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     app.ClientID,
		ClientSecret: app.ClientSecret,
		Endpoint: oauth2.Endpoint{
			AuthURL:  "https://accounts.google.com/o/oauth2/v2/auth",
			TokenURL: s.tokenURL,
		},
		Scopes: []string{"https://www.googleapis.com/auth/drive.file"},
	}
}

// Client is an authenticated Drive handle bound to one user's credential
type Client struct {
	httpClient *http.Client
	uploadURL  string
}

// ForTokenSource returns a Drive client that authenticates every request with the token source
func (s *Service) ForTokenSource(ctx context.Context, ts oauth2.TokenSource) *Client {
	// oauth2.NewClient picks the base transport up from the context
	ctx = context.WithValue(ctx, oauth2.HTTPClient, s.httpClient)
	return &Client{
		httpClient: oauth2.NewClient(ctx, ts),
		uploadURL:  s.uploadURL,
	}
}

// UploadFile creates a file in Drive with a multipart upload. The content is streamed straight
// into the request body, nothing is buffered on disk.
func (c *Client) UploadFile(ctx context.Context, meta models.FileMetadata, media models.Media, fields string) (*models.RemoteFile, error) {
	params := url.Values{}
	params.Set("uploadType", "multipart")
	if fields != "" {
		params.Set("fields", fields)
	}
	apiURL := fmt.Sprintf("%s/files?%s", c.uploadURL, params.Encode())

	body, writer := io.Pipe()
	mw := multipart.NewWriter(writer)
	go func() {
		writer.CloseWithError(writeMultipart(mw, meta, media))
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL, body)
	if err != nil {
		body.Close()
		return nil, fmt.Errorf("failed to create upload request: %w", err)
	}
	req.Header.Set("Content-Type", "multipart/related; boundary="+mw.Boundary())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		body.Close()
		return nil, fmt.Errorf("failed to execute upload request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, handleAPIError(resp)
	}

	var file models.RemoteFile
	if err := json.NewDecoder(resp.Body).Decode(&file); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &file, nil
}

func writeMultipart(mw *multipart.Writer, meta models.FileMetadata, media models.Media) error {
	header := textproto.MIMEHeader{}
	header.Set("Content-Type", "application/json; charset=UTF-8")
	part, err := mw.CreatePart(header)
	if err != nil {
		return fmt.Errorf("failed to create metadata part: %w", err)
	}
	if err := json.NewEncoder(part).Encode(meta); err != nil {
		return fmt.Errorf("failed to encode metadata: %w", err)
	}

	mimeType := media.MimeType
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}
	header = textproto.MIMEHeader{}
	header.Set("Content-Type", mimeType)
	part, err = mw.CreatePart(header)
	if err != nil {
		return fmt.Errorf("failed to create media part: %w", err)
	}
	if _, err := io.Copy(part, media.Body); err != nil {
		return fmt.Errorf("failed to write file content: %w", err)
	}

	return mw.Close()
}

// handleAPIError processes Google Drive API error responses
func handleAPIError(resp *http.Response) error {
	body, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err != nil {
		return fmt.Errorf("API request failed with status %d", resp.StatusCode)
	}

	var errorResponse APIError
	if err := json.Unmarshal(body, &errorResponse); err != nil || errorResponse.Error.Message == "" {
		return fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	status := errorResponse.Error.Status
	if status == "" && len(errorResponse.Error.Errors) > 0 {
		status = errorResponse.Error.Errors[0].Reason
	}
	return fmt.Errorf("google Drive API error (%d): %s - %s",
		resp.StatusCode, status, errorResponse.Error.Message)
}
