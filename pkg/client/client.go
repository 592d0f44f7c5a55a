// Package client is the consumer-side counterpart of the bug tracker API: a
// small HTTP client, a form-submission state machine and a render guard.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Bug mirrors the wire shape of a bug record.
type Bug struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	Priority    string    `json:"priority"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// CreateBugInput is the creation payload.
type CreateBugInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    string `json:"priority,omitempty"`
}

// APIError carries a normalized failure envelope from the server.
type APIError struct {
	Status      int
	Message     string
	FieldErrors map[string]string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (%d): %s", e.Status, e.Message)
}

type envelope struct {
	Success bool              `json:"success"`
	Count   int               `json:"count"`
	Data    json.RawMessage   `json:"data"`
	Err     string            `json:"error"`
	Details map[string]string `json:"details"`
}

// Client calls the bug tracker REST API.
type Client struct {
	baseURL string
	http    *http.Client
	token   string
}

// Option mutates client construction.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithToken attaches a bearer token to every request.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// New builds a client for the given base URL, e.g. "http://localhost:8080".
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CreateBug submits a new bug report.
func (c *Client) CreateBug(ctx context.Context, input CreateBugInput) (*Bug, error) {
	var bug Bug
	if err := c.do(ctx, http.MethodPost, "/api/v1/bugs", input, &bug, nil); err != nil {
		return nil, err
	}
	return &bug, nil
}

// ListBugs fetches every bug, newest first, plus the server-reported count.
func (c *Client) ListBugs(ctx context.Context) ([]Bug, int, error) {
	var bugs []Bug
	var count int
	if err := c.do(ctx, http.MethodGet, "/api/v1/bugs", nil, &bugs, &count); err != nil {
		return nil, 0, err
	}
	return bugs, count, nil
}

// GetBug fetches one bug by id.
func (c *Client) GetBug(ctx context.Context, id string) (*Bug, error) {
	var bug Bug
	if err := c.do(ctx, http.MethodGet, "/api/v1/bugs/"+id, nil, &bug, nil); err != nil {
		return nil, err
	}
	return &bug, nil
}

// UpdateBug applies a partial update. Fields map onto the PUT body as-is.
func (c *Client) UpdateBug(ctx context.Context, id string, fields map[string]any) (*Bug, error) {
	var bug Bug
	if err := c.do(ctx, http.MethodPut, "/api/v1/bugs/"+id, fields, &bug, nil); err != nil {
		return nil, err
	}
	return &bug, nil
}

// DeleteBug removes a bug by id.
func (c *Client) DeleteBug(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/v1/bugs/"+id, nil, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any, count *int) error {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	if !env.Success {
		return &APIError{
			Status:      resp.StatusCode,
			Message:     env.Err,
			FieldErrors: env.Details,
		}
	}
	if count != nil {
		*count = env.Count
	}
	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("decode data: %w", err)
		}
	}
	return nil
}
