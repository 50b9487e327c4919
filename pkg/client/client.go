// Package client is the typed HTTP client for the giveaway API. It also
// carries the pre-submission validation path: attribute bags are checked
// against the current schema in the client before a request leaves the
// process, because the server stores bags as submitted.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/mkondo/giveaway/internal/entities"
)

// Client calls the giveaway API. The zero value is not usable; use New.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithToken sets the bearer token attached to every request.
func WithToken(token string) Option {
	return func(c *Client) {
		c.token = token
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		c.http = h
	}
}

// New creates a client for the API at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetToken replaces the bearer token, typically after Login.
func (c *Client) SetToken(token string) {
	c.token = token
}

// APIError is a non-2xx response from the server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("server returned %d: %s", e.StatusCode, e.Message)
}

// do sends a request and decodes the JSON response into out (when out is
// non-nil). Non-2xx responses become *APIError; transport failures are
// returned wrapped.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		return &APIError{StatusCode: resp.StatusCode, Message: apiErr.Error}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

// LoginResult is the identity returned by Login.
type LoginResult struct {
	Token    string `json:"token"`
	UserID   int    `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// Register creates a new account. The account starts pending and cannot
// log in until approved.
func (c *Client) Register(ctx context.Context, username, password, email string) (*entities.User, error) {
	req := map[string]string{"username": username, "password": password, "email": email}
	var user entities.User
	if err := c.do(ctx, http.MethodPost, "/register", req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Login authenticates and stores the returned token on the client.
func (c *Client) Login(ctx context.Context, login, password string) (*LoginResult, error) {
	req := map[string]string{"login": login, "password": password}
	var result LoginResult
	if err := c.do(ctx, http.MethodPost, "/login", req, &result); err != nil {
		return nil, err
	}
	c.token = result.Token
	return &result, nil
}

// ItemFilter narrows ListItems. Zero values mean no filtering.
type ItemFilter struct {
	TypeID  int
	OwnerID int
	Keyword string
}

// ListItems returns items matching the filter.
func (c *Client) ListItems(ctx context.Context, filter ItemFilter) ([]*entities.Item, error) {
	q := url.Values{}
	if filter.TypeID != 0 {
		q.Set("type_id", strconv.Itoa(filter.TypeID))
	}
	if filter.OwnerID != 0 {
		q.Set("owner_id", strconv.Itoa(filter.OwnerID))
	}
	if filter.Keyword != "" {
		q.Set("keyword", filter.Keyword)
	}
	path := "/items"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var items []*entities.Item
	if err := c.do(ctx, http.MethodGet, path, nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// GetItem returns one item by ID.
func (c *Client) GetItem(ctx context.Context, id int) (*entities.Item, error) {
	var item entities.Item
	if err := c.do(ctx, http.MethodGet, "/items/"+strconv.Itoa(id), nil, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// CreateItem posts a new listing. The attribute bag travels as
// submitted; call ValidateItem first to catch schema violations.
func (c *Client) CreateItem(ctx context.Context, item *entities.Item) (*entities.Item, error) {
	req := itemPayload(item)
	var created entities.Item
	if err := c.do(ctx, http.MethodPost, "/items", req, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateItem replaces an item's editable fields.
func (c *Client) UpdateItem(ctx context.Context, item *entities.Item) (*entities.Item, error) {
	req := itemPayload(item)
	var updated entities.Item
	if err := c.do(ctx, http.MethodPut, "/items/"+strconv.Itoa(item.ID), req, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteItem removes an item.
func (c *Client) DeleteItem(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, "/items/"+strconv.Itoa(id), nil, nil)
}

func itemPayload(item *entities.Item) map[string]interface{} {
	return map[string]interface{}{
		"type_name":   item.TypeName,
		"name":        item.Name,
		"description": item.Description,
		"address":     item.Address,
		"phone":       item.Phone,
		"email":       item.Email,
		"attributes":  item.Attributes,
		"status":      item.Status,
	}
}
