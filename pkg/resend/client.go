package resend

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/marqenbd/marqen-backend/pkg/config"
)

const (
	baseURL = "https://api.resend.com"

	// placeholderKey is the unfilled value shipped in .env templates; it
	// counts as not configured.
	placeholderKey = "your_resend_api_key_here"
)

// Email is a single transactional message.
type Email struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

// SendResult carries the provider-assigned message id.
type SendResult struct {
	ID string `json:"id"`
}

type apiError struct {
	Message string `json:"message"`
}

// Client is a thin HTTP client for the Resend transactional email API.
type Client struct {
	http   *resty.Client
	apiKey string
}

// New builds a Resend client. A client with a missing or placeholder key is
// still returned; Configured reports whether sends can work.
func New(cfg config.ResendConfig) *Client {
	http := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(15 * time.Second).
		SetAuthToken(cfg.APIKey)
	return &Client{http: http, apiKey: cfg.APIKey}
}

// Configured reports whether an API key is present.
func (c *Client) Configured() bool {
	return c.apiKey != "" && c.apiKey != placeholderKey
}

// Send delivers a single email and returns the provider message id.
func (c *Client) Send(ctx context.Context, email Email) (*SendResult, error) {
	if !c.Configured() {
		return nil, fmt.Errorf("resend api key is not configured")
	}

	var result SendResult
	var apiErr apiError
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(email).
		SetResult(&result).
		SetError(&apiErr).
		Post("/emails")
	if err != nil {
		return nil, fmt.Errorf("sending email: %w", err)
	}
	if resp.IsError() {
		if apiErr.Message != "" {
			return nil, fmt.Errorf("resend: status %d: %s", resp.StatusCode(), apiErr.Message)
		}
		return nil, fmt.Errorf("resend: status %d", resp.StatusCode())
	}
	return &result, nil
}
