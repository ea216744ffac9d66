// Package client is the dealership-side library for the inquiry
// service. The front end embeds it to create, list and transition
// inquiries over HTTP; the service stays a separate deployable unit.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"inquiry-service/internal/models"
	"inquiry-service/internal/policy"
	"inquiry-service/internal/service"
)

// ErrTransient marks timeouts and connection failures. The caller
// should surface "could not submit, please retry" and let the user
// retry once; the client never retries on its own, since resending a
// create would duplicate the message.
var ErrTransient = errors.New("inquiry service unavailable")

const defaultTimeout = 5 * time.Second

// Config is resolved once at startup and passed in; the client holds
// no mutable global state.
type Config struct {
	BaseURL string // e.g. http://inquiries:8080/api
	APIKey  string
	Timeout time.Duration
}

// Client talks to the inquiry service
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// New creates a client from immutable configuration
func New(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		http:    &http.Client{Timeout: timeout},
	}
}

// APIError carries the service's error envelope
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

// Create submits a new inquiry on behalf of the acting buyer
func (c *Client) Create(ctx context.Context, actor policy.Actor, req *service.CreateInquiryRequest) (*models.Inquiry, error) {
	var inq models.Inquiry
	if err := c.do(ctx, actor, http.MethodPost, "/inquiries", req, http.StatusCreated, &inq); err != nil {
		return nil, err
	}
	return &inq, nil
}

// ListByBuyer fetches the buyer's outgoing inquiries
func (c *Client) ListByBuyer(ctx context.Context, actor policy.Actor, buyerID int64) ([]models.InquiryDetail, error) {
	path := "/inquiries?" + url.Values{"buyer_id": {strconv.FormatInt(buyerID, 10)}}.Encode()
	var items []models.InquiryDetail
	if err := c.do(ctx, actor, http.MethodGet, path, nil, http.StatusOK, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// ListBySeller fetches the inquiries addressed to the acting seller
func (c *Client) ListBySeller(ctx context.Context, actor policy.Actor, sellerID int64) ([]models.InquiryDetail, error) {
	path := "/inquiries?" + url.Values{"seller_id": {strconv.FormatInt(sellerID, 10)}}.Encode()
	var items []models.InquiryDetail
	if err := c.do(ctx, actor, http.MethodGet, path, nil, http.StatusOK, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// UpdateStatus transitions an inquiry
func (c *Client) UpdateStatus(ctx context.Context, actor policy.Actor, inquiryID int64, status string) error {
	path := fmt.Sprintf("/inquiries/%d/status", inquiryID)
	body := &service.UpdateStatusRequest{Status: status}
	return c.do(ctx, actor, http.MethodPut, path, body, http.StatusOK, nil)
}

func (c *Client) do(ctx context.Context, actor policy.Actor, method, path string, body interface{}, wantStatus int, out interface{}) error {
	var reqBody *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reqBody = bytes.NewReader(payload)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Api-Key", c.apiKey)
	req.Header.Set("X-Actor-Id", strconv.FormatInt(actor.ID, 10))
	req.Header.Set("X-Actor-Role", actor.Role)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTransient, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != wantStatus {
		return c.apiError(resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

// apiError extracts the {"error": ...} envelope; non-JSON bodies fall
// back to the HTTP status text.
func (c *Client) apiError(resp *http.Response) error {
	var envelope struct {
		Error string `json:"error"`
	}
	msg := ""
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err == nil {
		msg = envelope.Error
	}
	if msg == "" {
		msg = http.StatusText(resp.StatusCode)
	}
	return &APIError{StatusCode: resp.StatusCode, Message: msg}
}
