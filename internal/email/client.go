// Package email delivers transactional email through an HTTP JSON delivery
// API (Postmark-style single-send endpoint).
package email

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Client talks to the email delivery API.
type Client struct {
	http      *http.Client
	baseURL   string
	sender    string
	authToken string
}

// NewClient creates a new email client. The timeout bounds each delivery
// request end to end.
func NewClient(baseURL, sender, authToken string, timeout time.Duration) *Client {
	return &Client{
		http:      &http.Client{Timeout: timeout},
		baseURL:   baseURL,
		sender:    sender,
		authToken: authToken,
	}
}

type sendRequest struct {
	From     string `json:"From"`
	To       string `json:"To"`
	Subject  string `json:"Subject"`
	HTMLBody string `json:"HtmlBody"`
	TextBody string `json:"TextBody"`
}

// Send posts one email to the delivery API. Any non-2xx response is an
// error; the caller decides whether the failure is retryable.
func (c *Client) Send(ctx context.Context, to, subject, htmlBody, textBody string) error {
	payload, err := json.Marshal(sendRequest{
		From:     c.sender,
		To:       to,
		Subject:  subject,
		HTMLBody: htmlBody,
		TextBody: textBody,
	})
	if err != nil {
		return fmt.Errorf("encode email request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/email", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build email request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Server-Token", c.authToken)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("send email to %q: %w", to, err)
	}

	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("send email to %q: delivery api returned %s", to, resp.Status)
	}

	return nil
}
