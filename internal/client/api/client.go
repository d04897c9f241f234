// Package api is the typed HTTP client the publisher CLI talks to the
// backend with. Responses use the {success, data, error} envelope; the
// session token is replayed as a raw Cookie header rather than a jar.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"
)

// Document is the admin-facing document payload.
type Document struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Slug        string     `json:"slug"`
	Summary     string     `json:"summary,omitempty"`
	FolderID    *string    `json:"folder_id,omitempty"`
	IsPublished bool       `json:"is_published"`
	IsPrivate   bool       `json:"is_private"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Folder is the admin-facing folder payload.
type Folder struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Slug      string  `json:"slug"`
	ParentID  *string `json:"parent_id,omitempty"`
	SortOrder int     `json:"sort_order"`
}

// DocumentPage is one page of the admin document listing.
type DocumentPage struct {
	Items []Document `json:"items"`
	Total int        `json:"total"`
	Page  int        `json:"page"`
	Limit int        `json:"limit"`
}

// CreateDocumentInput is the create payload.
type CreateDocumentInput struct {
	Title      string  `json:"title"`
	Slug       string  `json:"slug,omitempty"`
	Summary    string  `json:"summary,omitempty"`
	Content    string  `json:"content"`
	FolderID   *string `json:"folder_id,omitempty"`
	Published  *bool   `json:"is_published,omitempty"`
	Private    *bool   `json:"is_private,omitempty"`
	AccessCode string  `json:"access_code,omitempty"`
}

// UpdateDocumentInput is the partial update payload.
type UpdateDocumentInput struct {
	Title      *string `json:"title,omitempty"`
	Slug       *string `json:"slug,omitempty"`
	Summary    *string `json:"summary,omitempty"`
	Content    *string `json:"content,omitempty"`
	FolderID   *string `json:"folder_id,omitempty"`
	Published  *bool   `json:"is_published,omitempty"`
	Private    *bool   `json:"is_private,omitempty"`
	AccessCode *string `json:"access_code,omitempty"`
}

// CreateFolderInput is the folder create payload.
type CreateFolderInput struct {
	Name      string  `json:"name"`
	Slug      string  `json:"slug,omitempty"`
	ParentID  *string `json:"parent_id,omitempty"`
	SortOrder int     `json:"sort_order,omitempty"`
}

// APIError carries the backend's failure envelope plus the HTTP status.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %s (status %d)", e.Message, e.Status)
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

// Client talks to one backend instance.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// Option mutates the client configuration.
type Option func(*Client)

// WithToken sets the session token replayed on every request.
func WithToken(token string) Option {
	return func(c *Client) {
		c.token = token
	}
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// New builds a client for the given base URL.
func New(baseURL string, opts ...Option) *Client {
	client := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}
	return client
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var payload *bytes.Buffer
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("api: encode request: %w", err)
		}
		payload = bytes.NewBuffer(raw)
	} else {
		payload = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, payload)
	if err != nil {
		return fmt.Errorf("api: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Cookie", "auth_token="+c.token)
	}

	res, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("api: %s %s: %w", method, path, err)
	}
	defer res.Body.Close()

	var env envelope
	if err := json.NewDecoder(res.Body).Decode(&env); err != nil {
		return fmt.Errorf("api: decode response: %w", err)
	}
	if !env.Success {
		message := env.Error
		if message == "" {
			message = fmt.Sprintf("HTTP %d", res.StatusCode)
		}
		return &APIError{Status: res.StatusCode, Message: message}
	}
	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("api: decode data: %w", err)
		}
	}
	return nil
}

var tokenCookiePattern = regexp.MustCompile(`auth_token=([^;]+)`)

// Login exchanges the admin password for a session token, extracted from
// the Set-Cookie header the backend answers with.
func (c *Client) Login(ctx context.Context, password string) (string, error) {
	raw, err := json.Marshal(map[string]string{"password": password})
	if err != nil {
		return "", fmt.Errorf("api: encode login: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/admin/login", bytes.NewBuffer(raw))
	if err != nil {
		return "", fmt.Errorf("api: build login request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("api: login: %w", err)
	}
	defer res.Body.Close()

	var env envelope
	if err := json.NewDecoder(res.Body).Decode(&env); err != nil {
		return "", fmt.Errorf("api: decode login response: %w", err)
	}
	if !env.Success {
		message := env.Error
		if message == "" {
			message = "login failed"
		}
		return "", &APIError{Status: res.StatusCode, Message: message}
	}

	for _, header := range res.Header.Values("Set-Cookie") {
		if match := tokenCookiePattern.FindStringSubmatch(header); match != nil {
			c.token = match[1]
			return match[1], nil
		}
	}
	return "", fmt.Errorf("api: login response carried no session cookie")
}

// ListDocuments fetches one page of the admin document inventory.
func (c *Client) ListDocuments(ctx context.Context, page, limit int) (*DocumentPage, error) {
	out := new(DocumentPage)
	path := fmt.Sprintf("/api/admin/documents?page=%d&limit=%d", page, limit)
	if err := c.do(ctx, http.MethodGet, path, nil, out); err != nil {
		return nil, err
	}
	return out, nil
}

// AllDocuments pages through the complete document inventory.
func (c *Client) AllDocuments(ctx context.Context) ([]Document, error) {
	var all []Document
	for page := 1; ; page++ {
		chunk, err := c.ListDocuments(ctx, page, 100)
		if err != nil {
			return nil, err
		}
		all = append(all, chunk.Items...)
		if len(all) >= chunk.Total || len(chunk.Items) == 0 {
			return all, nil
		}
	}
}

// CreateDocument creates a new remote document.
func (c *Client) CreateDocument(ctx context.Context, input CreateDocumentInput) (*Document, error) {
	out := new(Document)
	if err := c.do(ctx, http.MethodPost, "/api/admin/documents", input, out); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateDocument updates an existing remote document.
func (c *Client) UpdateDocument(ctx context.Context, id string, input UpdateDocumentInput) (*Document, error) {
	out := new(Document)
	if err := c.do(ctx, http.MethodPut, "/api/admin/documents/"+id, input, out); err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteDocument removes a remote document.
func (c *Client) DeleteDocument(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/admin/documents/"+id, nil, nil)
}

// ListFolders fetches the complete remote folder inventory.
func (c *Client) ListFolders(ctx context.Context) ([]Folder, error) {
	var out []Folder
	if err := c.do(ctx, http.MethodGet, "/api/admin/folders", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateFolder creates a new remote folder.
func (c *Client) CreateFolder(ctx context.Context, input CreateFolderInput) (*Folder, error) {
	out := new(Folder)
	if err := c.do(ctx, http.MethodPost, "/api/admin/folders", input, out); err != nil {
		return nil, err
	}
	return out, nil
}
