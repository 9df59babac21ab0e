// Package resend provides a lightweight Resend API client for outbound
// transactional email. Uses raw HTTP calls (no SDK) to minimize external
// dependencies.
package resend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultBaseURL = "https://api.resend.com"

// sendTimeout bounds a single delivery attempt so email can never hang the
// submission path.
const sendTimeout = 5 * time.Second

// ErrNotConfigured is returned when no API key is set. Callers must treat
// this as "email service not configured", not as a delivery failure.
var ErrNotConfigured = errors.New("resend: not configured")

// Email is a single outbound message.
type Email struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	HTML    string `json:"html"`
}

// Client is the outbound email transport interface.
type Client interface {
	// Send delivers one email. Returns ErrNotConfigured when no API key is
	// set, or an error describing a transport failure or non-success
	// response.
	Send(ctx context.Context, email Email) error
}

// RealClient is the raw HTTP implementation of Client.
type RealClient struct {
	APIKey     string
	BaseURL    string // defaults to the public Resend API; overridable in tests
	httpClient *http.Client
}

// NewClient creates a RealClient. An empty apiKey produces a client whose
// Send always reports ErrNotConfigured.
func NewClient(apiKey string) *RealClient {
	return &RealClient{
		APIKey:     apiKey,
		BaseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: sendTimeout},
	}
}

var _ Client = (*RealClient)(nil)

// Send posts the email to the Resend API.
func (c *RealClient) Send(ctx context.Context, email Email) error {
	if c.APIKey == "" {
		return ErrNotConfigured
	}

	payload, err := json.Marshal(email)
	if err != nil {
		return fmt.Errorf("resend: marshal: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/emails", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("resend: build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("resend: send: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("resend: status %d: %s", resp.StatusCode, string(body))
	}
	return nil
}
