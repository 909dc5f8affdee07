package internal

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Generator produces text from a prompt. OllamaClient implements it; tests
// inject fakes.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// OllamaClient calls an Ollama-compatible /api/generate endpoint. Calls are
// single-shot: a failed generation surfaces immediately, there is no retry.
type OllamaClient struct {
	baseURL   string
	model     string
	maxTokens int
	client    *http.Client
}

// OllamaClientOption configures an OllamaClient.
type OllamaClientOption func(*OllamaClient)

// WithOllamaHTTPClient overrides the underlying HTTP client.
func WithOllamaHTTPClient(hc *http.Client) OllamaClientOption {
	return func(c *OllamaClient) { c.client = hc }
}

// NewOllamaClient creates a client for the given inference server and model.
func NewOllamaClient(baseURL, model string, maxTokens int, opts ...OllamaClientOption) *OllamaClient {
	c := &OllamaClient{
		baseURL:   baseURL,
		model:     model,
		maxTokens: maxTokens,
		// Local generation can be slow on first model load.
		client: &http.Client{Timeout: 5 * time.Minute},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Model returns the configured model name.
func (c *OllamaClient) Model() string {
	return c.model
}

type ollamaGenerateRequest struct {
	Model   string        `json:"model"`
	Prompt  string        `json:"prompt"`
	Stream  bool          `json:"stream"`
	Options ollamaOptions `json:"options"`
}

type ollamaOptions struct {
	NumPredict  int     `json:"num_predict,omitempty"`
	Temperature float64 `json:"temperature,omitempty"`
}

type ollamaGenerateResponse struct {
	Response string `json:"response"`
}

// Generate sends a prompt and returns the model's text verbatim.
func (c *OllamaClient) Generate(ctx context.Context, prompt string) (string, error) {
	reqBody := ollamaGenerateRequest{
		Model:  c.model,
		Prompt: prompt,
		Stream: false,
		Options: ollamaOptions{
			NumPredict:  c.maxTokens,
			Temperature: 0.9,
		},
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	endpoint := c.baseURL + "/api/generate"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("generation request failed: %w", err)
	}

	respBody, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("generation error (%d): %s", resp.StatusCode, string(respBody))
	}

	var genResp ollamaGenerateResponse
	if err := json.Unmarshal(respBody, &genResp); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	return genResp.Response, nil
}

// Ping checks that the inference server is reachable, used by healthcheck.
func (c *OllamaClient) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/tags", nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("inference server unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("inference server returned %d", resp.StatusCode)
	}
	return nil
}
