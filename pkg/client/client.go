// Package client is a Go client for the e-library API. Besides the raw HTTP
// calls it carries the portal's session behavior: the view state machine, the
// optimistic admin mutations with rollback, and the demo-catalog fallback.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/JesloDev/e-library/internal/core/domain"
	"github.com/JesloDev/e-library/internal/core/ports"
)

// Client calls the e-library API over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
	token      string
}

// APIError is the decoded {"error": ...} envelope plus the HTTP status.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("request failed with status %d", e.Status)
}

// New constructs a client for the given API base URL.
func New(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// SetToken installs the bearer token used on authenticated calls.
func (c *Client) SetToken(token string) {
	c.token = token
}

type loginResponse struct {
	Token string             `json:"token"`
	User  *ports.UserProfile `json:"user"`
}

// Login authenticates and installs the returned session token.
func (c *Client) Login(ctx context.Context, email, password string) (*ports.UserProfile, error) {
	var resp loginResponse
	err := c.do(ctx, http.MethodPost, "/api/auth/login", map[string]string{
		"email":    email,
		"password": password,
	}, &resp)
	if err != nil {
		return nil, err
	}
	c.token = resp.Token
	return resp.User, nil
}

// Register redeems a registration link token for a new unapproved account.
func (c *Client) Register(ctx context.Context, email, password, name, token string) error {
	return c.do(ctx, http.MethodPost, "/api/auth/register", map[string]string{
		"email":    email,
		"password": password,
		"name":     name,
		"token":    token,
	}, nil)
}

// Logout revokes the current session token.
func (c *Client) Logout(ctx context.Context) error {
	err := c.do(ctx, http.MethodPost, "/api/auth/logout", nil, nil)
	c.token = ""
	return err
}

// Books fetches the catalog narrowed by the filter, newest first.
func (c *Client) Books(ctx context.Context, filter domain.Filter) ([]domain.Book, error) {
	q := url.Values{}
	if filter.Search != "" {
		q.Set("search", filter.Search)
	}
	if filter.Category != "" {
		q.Set("category", filter.Category)
	}
	if filter.Department != "" {
		q.Set("department", filter.Department)
	}
	if filter.Level != "" {
		q.Set("level", filter.Level)
	}

	path := "/api/books"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var books []domain.Book
	if err := c.do(ctx, http.MethodGet, path, nil, &books); err != nil {
		return nil, err
	}
	return books, nil
}

// PendingUser is one unapproved account awaiting review.
type PendingUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// PendingUsers lists unapproved accounts.
func (c *Client) PendingUsers(ctx context.Context) ([]PendingUser, error) {
	var users []PendingUser
	if err := c.do(ctx, http.MethodGet, "/api/admin/pending-users", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// ApproveUser promotes a pending account.
func (c *Client) ApproveUser(ctx context.Context, userID string) error {
	return c.do(ctx, http.MethodPost, "/api/admin/approve-user", map[string]string{"userId": userID}, nil)
}

// GenerateLink mints a fresh 24-hour registration link.
func (c *Client) GenerateLink(ctx context.Context) (*domain.RegistrationLink, error) {
	var link domain.RegistrationLink
	if err := c.do(ctx, http.MethodPost, "/api/admin/generate-link", nil, &link); err != nil {
		return nil, err
	}
	return &link, nil
}

// Links lists outstanding registration links, newest first.
func (c *Client) Links(ctx context.Context) ([]domain.RegistrationLink, error) {
	var links []domain.RegistrationLink
	if err := c.do(ctx, http.MethodGet, "/api/admin/links", nil, &links); err != nil {
		return nil, err
	}
	return links, nil
}

// DeleteLink revokes a registration link.
func (c *Client) DeleteLink(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/admin/links/"+url.PathEscape(id), nil, nil)
}

// DeleteBook removes a catalog record.
func (c *Client) DeleteBook(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/admin/books/"+url.PathEscape(id), nil, nil)
}

// do issues one JSON request and decodes the response into out (when non-nil).
// Non-2xx responses are returned as *APIError; a non-JSON error body still
// surfaces the HTTP status.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(raw)
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

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("could not connect: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode}
		var envelope struct {
			Error string `json:"error"`
		}
		if decodeErr := json.NewDecoder(resp.Body).Decode(&envelope); decodeErr == nil {
			apiErr.Message = envelope.Error
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
