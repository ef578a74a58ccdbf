package mattermost

import (
	"bytes"
	"context"
	"drive-upload-backend/pkg/models"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client talks to the Mattermost REST API on behalf of one access token
type Client struct {
	httpClient  *http.Client
	siteURL     string
	accessToken string
}

// NewHTTPClient returns an HTTP client that only caps the wait for response headers. File
// bodies are streamed for as long as the request context allows.
func NewHTTPClient(headerTimeout time.Duration) *http.Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.ResponseHeaderTimeout = headerTimeout
	return &http.Client{Transport: transport}
}

// NewClient creates a Mattermost client for the given site and access token
func NewClient(httpClient *http.Client, siteURL, accessToken string) *Client {
	if httpClient == nil {
		httpClient = NewHTTPClient(30 * time.Second)
	}
	return &Client{
		httpClient:  httpClient,
		siteURL:     strings.TrimSuffix(siteURL, "/"),
		accessToken: accessToken,
	}
}

// GetPost retrieves a post with its file metadata
func (c *Client) GetPost(ctx context.Context, postID string) (*models.Post, error) {
	resp, err := c.do(ctx, http.MethodGet, "/posts/"+url.PathEscape(postID), nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, handleAPIError(resp)
	}

	var post models.Post
	if err := json.NewDecoder(resp.Body).Decode(&post); err != nil {
		return nil, fmt.Errorf("failed to decode post: %w", err)
	}
	return &post, nil
}

// GetMessage retrieves a post and resolves its attachments into a single ordered record list
func (c *Client) GetMessage(ctx context.Context, postID string) (*models.SourceMessage, error) {
	post, err := c.GetPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	return post.SourceMessage(), nil
}

// GetAttachmentContent streams the raw content of an uploaded file. The caller closes the stream.
func (c *Client) GetAttachmentContent(ctx context.Context, fileID string) (io.ReadCloser, error) {
	resp, err := c.do(ctx, http.MethodGet, "/files/"+url.PathEscape(fileID), nil)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()
		return nil, handleAPIError(resp)
	}
	return resp.Body, nil
}

// CreateMessage creates a post
func (c *Client) CreateMessage(ctx context.Context, post *models.PostCreate) (*models.Post, error) {
	payload, err := json.Marshal(post)
	if err != nil {
		return nil, fmt.Errorf("failed to encode post: %w", err)
	}

	resp, err := c.do(ctx, http.MethodPost, "/posts", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		return nil, handleAPIError(resp)
	}

	var created models.Post
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return nil, fmt.Errorf("failed to decode created post: %w", err)
	}
	return &created, nil
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.siteURL+"/api/v4"+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.accessToken))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	return resp, nil
}

// handleAPIError processes Mattermost API error responses
func handleAPIError(resp *http.Response) error {
	body, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err != nil {
		return fmt.Errorf("API request failed with status %d", resp.StatusCode)
	}

	var appErr AppError
	if err := json.Unmarshal(body, &appErr); err != nil || appErr.Message == "" {
		return fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	return fmt.Errorf("mattermost API error (%d): %s - %s", resp.StatusCode, appErr.ID, appErr.Message)
}
