package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client sends mail through the SendGrid v3 REST API.
type Client struct {
	BaseURL string
	APIKey  string
	Sender  string
	HTTP    *http.Client
	Skip    bool
}

// New creates a SendGrid client. skip turns Send into a no-op success, used
// when the relay key is absent and in tests.
func New(apiKey, sender string, skip bool) *Client {
	return &Client{
		BaseURL: "https://api.sendgrid.com/v3",
		APIKey:  apiKey,
		Sender:  sender,
		Skip:    skip,
		HTTP:    &http.Client{Timeout: 30 * time.Second},
	}
}

// Configured reports whether real delivery is possible.
func (c *Client) Configured() bool {
	return c.APIKey != ""
}

type sendRequest struct {
	Personalizations []personalization `json:"personalizations"`
	From             address           `json:"from"`
	Subject          string            `json:"subject"`
	Content          []bodyPart        `json:"content"`
}

type personalization struct {
	To []address `json:"to"`
}

type address struct {
	Email string `json:"email"`
}

type bodyPart struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

// Send delivers one HTML email.
func (c *Client) Send(ctx context.Context, to, subject, html string) error {
	if c.Skip || c.APIKey == "" {
		return nil
	}

	body, _ := json.Marshal(sendRequest{
		Personalizations: []personalization{{To: []address{{Email: to}}}},
		From:             address{Email: c.Sender},
		Subject:          subject,
		Content:          []bodyPart{{Type: "text/html", Value: html}},
	})

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/mail/send", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("sendgrid: create request failed: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.APIKey)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("sendgrid: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("sendgrid: send failed (%d): %s", resp.StatusCode, string(bodyBytes))
	}
	return nil
}
