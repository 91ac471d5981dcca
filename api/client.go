// ABOUTME: HTTP client for the CRM REST backend
// ABOUTME: Issues authenticated JSON requests and decodes entity responses
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"crmterm/models"
)

// ServerError is a non-2xx response from the backend. Message carries the
// body's "error" field when one was present; callers that want the server's
// own wording check for it with errors.As.
type ServerError struct {
	StatusCode int
	Message    string
}

func (e *ServerError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("request failed with status %d", e.StatusCode)
}

// Client talks to the CRM backend. It holds no entity state: every call is a
// fresh request, with no retries and no caching.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
	log     *zap.Logger
}

// NewClient creates a backend client. baseURL includes the API prefix
// (e.g. https://crm.example.com/api).
func NewClient(baseURL, token string, timeout time.Duration, log *zap.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http:    &http.Client{Timeout: timeout},
		log:     log,
	}
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	c.log.Debug("api request", zap.String("method", method), zap.String("path", path))

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		srvErr := &ServerError{StatusCode: resp.StatusCode}
		var errBody struct {
			Error string `json:"error"`
		}
		if decodeErr := json.NewDecoder(resp.Body).Decode(&errBody); decodeErr == nil {
			srvErr.Message = errBody.Error
		}
		c.log.Debug("api error response",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.String("message", srvErr.Message))
		return srvErr
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// Customers

func (c *Client) ListCustomers(ctx context.Context) ([]models.Customer, error) {
	var out []models.Customer
	err := c.do(ctx, http.MethodGet, "/customers", nil, &out)
	return out, err
}

func (c *Client) CreateCustomer(ctx context.Context, p CustomerPayload) (*models.Customer, error) {
	var out models.Customer
	if err := c.do(ctx, http.MethodPost, "/customers", p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateCustomer(ctx context.Context, id int, p CustomerPayload) (*models.Customer, error) {
	var out models.Customer
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/customers/%d", id), p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteCustomer(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/customers/%d", id), nil, nil)
}

// Contacts

func (c *Client) ListContacts(ctx context.Context) ([]models.Contact, error) {
	var out []models.Contact
	err := c.do(ctx, http.MethodGet, "/contacts", nil, &out)
	return out, err
}

func (c *Client) CreateContact(ctx context.Context, p ContactPayload) (*models.Contact, error) {
	var out models.Contact
	if err := c.do(ctx, http.MethodPost, "/contacts", p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateContact(ctx context.Context, id int, p ContactPayload) (*models.Contact, error) {
	var out models.Contact
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/contacts/%d", id), p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteContact(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/contacts/%d", id), nil, nil)
}

// Deals

func (c *Client) ListDeals(ctx context.Context) ([]models.Deal, error) {
	var out []models.Deal
	err := c.do(ctx, http.MethodGet, "/deals", nil, &out)
	return out, err
}

func (c *Client) CreateDeal(ctx context.Context, p DealPayload) (*models.Deal, error) {
	var out models.Deal
	if err := c.do(ctx, http.MethodPost, "/deals", p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateDeal(ctx context.Context, id int, p DealPayload) (*models.Deal, error) {
	var out models.Deal
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/deals/%d", id), p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteDeal(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/deals/%d", id), nil, nil)
}

// Activities

func (c *Client) ListActivities(ctx context.Context) ([]models.Activity, error) {
	var out []models.Activity
	err := c.do(ctx, http.MethodGet, "/activities", nil, &out)
	return out, err
}

func (c *Client) CreateActivity(ctx context.Context, p ActivityPayload) (*models.Activity, error) {
	var out models.Activity
	if err := c.do(ctx, http.MethodPost, "/activities", p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateActivity(ctx context.Context, id int, p ActivityPayload) (*models.Activity, error) {
	var out models.Activity
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/activities/%d", id), p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteActivity(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/activities/%d", id), nil, nil)
}

// DashboardStats fetches the pre-aggregated dashboard summary.
func (c *Client) DashboardStats(ctx context.Context) (*models.DashboardStats, error) {
	var out models.DashboardStats
	if err := c.do(ctx, http.MethodGet, "/dashboard/stats", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
