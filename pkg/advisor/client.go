// Package advisor provides the public Go client for the Card Advisor API.
package advisor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client is the public client for the Card Advisor HTTP API.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// ClientConfig holds client configuration.
type ClientConfig struct {
	BaseURL string
	Timeout time.Duration
}

// NewClient creates a new Card Advisor client.
func NewClient(cfg ClientConfig) (*Client, error) {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "http://localhost:5000"
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    cfg.BaseURL,
	}, nil
}

// ChatRequest represents one chat turn request.
type ChatRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"sessionId,omitempty"`
}

// ChatResponse represents a chat turn response.
type ChatResponse struct {
	Response  string `json:"response"`
	SessionID string `json:"sessionId"`
	Intent    string `json:"intent,omitempty"`
	Card      string `json:"card,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Chat sends one message and returns the advisor's answer. Pass the returned
// SessionID on subsequent calls to keep conversation context.
func (c *Client) Chat(ctx context.Context, sessionID, message string) (*ChatResponse, error) {
	body, err := json.Marshal(ChatRequest{Message: message, SessionID: sessionID})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/chat", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errResp errorResponse
		if err := json.Unmarshal(data, &errResp); err == nil && errResp.Error != "" {
			return nil, fmt.Errorf("API error: %s (status %d)", errResp.Error, resp.StatusCode)
		}
		return nil, fmt.Errorf("API error: status %d", resp.StatusCode)
	}

	var chatResp ChatResponse
	if err := json.Unmarshal(data, &chatResp); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}

	return &chatResp, nil
}
