package agent

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"agentbuddy/pkg/config"
	"agentbuddy/pkg/logging"
)

const (
	headerAPIKey     = "x-api-key"
	maxErrorBodySize = 512
)

// Client talks to a remote agent flow endpoint.
type Client struct {
	httpClient *http.Client
	url        string
	apiKey     string
}

// NewClient creates a client from config. A zero request timeout leaves
// the request to run until the transport gives up.
func NewClient(cfg config.Config) (*Client, error) {
	httpClient := &http.Client{}
	if timeout := cfg.RequestTimeout(); timeout > 0 {
		httpClient.Timeout = timeout
	}
	return NewClientWithHTTPClient(cfg, httpClient)
}

// NewClientWithHTTPClient creates a client using the given HTTP client.
func NewClientWithHTTPClient(cfg config.Config, httpClient *http.Client) (*Client, error) {
	url := strings.TrimSpace(cfg.AgentURL)
	if url == "" {
		return nil, fmt.Errorf("agent_url is required")
	}
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	return &Client{
		httpClient: httpClient,
		url:        url,
		apiKey:     cfg.AgentKey,
	}, nil
}

// URL returns the endpoint the client posts to.
func (c *Client) URL() string {
	return c.url
}

// Ask posts one utterance for the given session and returns the raw reply
// text. Normalization is left to the caller.
func (c *Client) Ask(ctx context.Context, sessionID, text string) (string, error) {
	payload, err := json.Marshal(NewRunRequest(sessionID, text))
	if err != nil {
		return "", fmt.Errorf("failed to marshal run request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(headerAPIKey, c.apiKey)

	logger := slog.Default()
	if logger.Enabled(ctx, logging.LevelTrace) {
		logger.Log(ctx, logging.LevelTrace, "agent_request_payload",
			"session_id", sessionID,
			"body", string(payload),
		)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		slog.Debug("agent_request_failed", "session_id", sessionID, "error", err)
		return "", fmt.Errorf("agent request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read agent response: %w", err)
	}

	slog.Debug("agent_response",
		"session_id", sessionID,
		"status", resp.StatusCode,
		"bytes", len(body),
		"latency_ms", time.Since(start).Milliseconds(),
	)
	if logger.Enabled(ctx, logging.LevelTrace) {
		logger.Log(ctx, logging.LevelTrace, "agent_response_payload",
			"session_id", sessionID,
			"body", string(body),
		)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &StatusError{
			StatusCode: resp.StatusCode,
			Body:       truncate(strings.TrimSpace(string(body)), maxErrorBodySize),
		}
	}

	return ExtractReply(body)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
