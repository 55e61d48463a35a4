package genai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client calls the Gemini generateContent REST API.
type Client struct {
	BaseURL string
	APIKey  string
	Model   string
	HTTP    *http.Client
	Skip    bool
}

// New creates a client. skip short-circuits requests with a canned reply,
// used in dev and tests.
func New(apiKey, model string, skip bool) *Client {
	if model == "" {
		model = "gemini-pro"
	}
	return &Client{
		BaseURL: "https://generativelanguage.googleapis.com/v1beta",
		APIKey:  apiKey,
		Model:   model,
		Skip:    skip,
		HTTP: &http.Client{
			Timeout: 30 * time.Second, // generation can take a while
		},
	}
}

// Configured reports whether the client can reach the API at all.
func (c *Client) Configured() bool {
	return c.Skip || c.APIKey != ""
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// GenerateContent sends a prompt and returns the first candidate text.
func (c *Client) GenerateContent(ctx context.Context, prompt string) (string, error) {
	if c.Skip {
		return "This is a mock assistant reply.", nil
	}
	if c.APIKey == "" {
		return "", fmt.Errorf("gemini api key not configured")
	}

	body, _ := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	})

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.BaseURL, c.Model, c.APIKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return "", fmt.Errorf("gemini request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("gemini error %s: %s", resp.Status, string(bodyBytes))
	}

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("empty generation response")
	}
	return out.Candidates[0].Content.Parts[0].Text, nil
}
