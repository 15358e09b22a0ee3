// Package llm talks to a locally running Ollama or LM Studio server
// over the OpenAI-compatible chat completions API.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

const defaultBaseURL = "http://localhost:11434"

// Client is a single-model handle to a local completion server
type Client struct {
	baseURL string
	model   string
	client  *http.Client
}

// NewClient creates a client for the given server and model. An empty
// baseURL falls back to OLLAMA_HOST, then to the local default.
func NewClient(baseURL, model string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = os.Getenv("OLLAMA_HOST")
	}
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	// Normalize URL: strip trailing /, /v1, /v1/chat/completions
	baseURL = strings.TrimRight(baseURL, "/")
	baseURL = strings.TrimSuffix(baseURL, "/v1/chat/completions")
	baseURL = strings.TrimSuffix(baseURL, "/v1")

	if timeout <= 0 {
		timeout = 120 * time.Second
	}

	return &Client{
		baseURL: baseURL,
		model:   model,
		client:  &http.Client{Timeout: timeout},
	}
}

// Model returns the configured model identifier
func (c *Client) Model() string {
	return c.model
}

// Timeout returns the configured request timeout
func (c *Client) Timeout() time.Duration {
	return c.client.Timeout
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
	Stream   bool          `json:"stream"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// StatusError reports a non-200 answer from the model server
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	body := e.Body
	if len(body) > 200 {
		body = body[:200] + "..."
	}
	return fmt.Sprintf("model server returned status %d: %s", e.StatusCode, body)
}

// UnreachableError means the server did not answer at all
type UnreachableError struct {
	BaseURL string
	Err     error
}

func (e *UnreachableError) Error() string {
	return fmt.Sprintf("model server unreachable at %s (is ollama running?): %v", e.BaseURL, e.Err)
}

// Generate sends the prompt and returns the raw response text. The
// caller is expected to sanitize it before showing it to anyone.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	body := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "user", Content: prompt},
		},
		Stream: false,
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	url := c.baseURL + "/v1/chat/completions"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := c.client.Do(httpReq)
	if err != nil {
		return "", &UnreachableError{BaseURL: c.baseURL, Err: err}
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}

	if httpResp.StatusCode != http.StatusOK {
		return "", &StatusError{StatusCode: httpResp.StatusCode, Body: string(respBody)}
	}

	var result chatResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", fmt.Errorf("parsing response: %w", err)
	}

	if len(result.Choices) == 0 {
		return "", fmt.Errorf("no choices in response")
	}
	if result.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("empty text content in response")
	}

	return result.Choices[0].Message.Content, nil
}

// Ping verifies the model server is reachable. Run once at startup, the
// way a gh auth check gates a GitHub tool.
func (c *Client) Ping(ctx context.Context) error {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/models", nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	httpResp, err := c.client.Do(httpReq)
	if err != nil {
		return &UnreachableError{BaseURL: c.baseURL, Err: err}
	}
	defer httpResp.Body.Close()
	io.Copy(io.Discard, httpResp.Body)

	if httpResp.StatusCode != http.StatusOK {
		return &StatusError{StatusCode: httpResp.StatusCode, Body: httpResp.Status}
	}
	return nil
}
