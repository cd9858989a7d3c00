package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	defaultBaseURL     = "https://api.deepseek.com"
	defaultModel       = "deepseek-chat"
	defaultHTTPTimeout = 120 * time.Second
	defaultMaxRetries  = 3
	defaultRetryDelay  = time.Second
)

// DeepSeek wraps the DeepSeek chat completion API with bounded retries and
// exponential backoff.
type DeepSeek struct {
	apiKey     string
	baseURL    string
	model      string
	maxRetries int
	retryDelay time.Duration
	httpClient *http.Client
}

// DeepSeekOption customizes the DeepSeek client.
type DeepSeekOption func(*DeepSeek)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) DeepSeekOption {
	return func(c *DeepSeek) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithBaseURL overrides the default API base (useful for tests/mocks).
func WithBaseURL(base string) DeepSeekOption {
	return func(c *DeepSeek) {
		base = strings.TrimSpace(base)
		if base != "" {
			c.baseURL = strings.TrimRight(base, "/")
		}
	}
}

// WithModel overrides the default model name.
func WithModel(model string) DeepSeekOption {
	return func(c *DeepSeek) {
		model = strings.TrimSpace(model)
		if model != "" {
			c.model = model
		}
	}
}

// WithRetries overrides the retry budget and the initial backoff delay.
func WithRetries(maxRetries int, delay time.Duration) DeepSeekOption {
	return func(c *DeepSeek) {
		if maxRetries > 0 {
			c.maxRetries = maxRetries
		}
		if delay > 0 {
			c.retryDelay = delay
		}
	}
}

// NewDeepSeek constructs a DeepSeek API client.
func NewDeepSeek(apiKey string, opts ...DeepSeekOption) *DeepSeek {
	client := &DeepSeek{
		apiKey:     strings.TrimSpace(apiKey),
		baseURL:    defaultBaseURL,
		model:      defaultModel,
		maxRetries: defaultMaxRetries,
		retryDelay: defaultRetryDelay,
		httpClient: &http.Client{Timeout: defaultHTTPTimeout},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

// Transform sends the prompt pair through the chat completion endpoint,
// retrying with doubling delays until the budget is spent.
func (c *DeepSeek) Transform(ctx context.Context, systemPrompt, content string) (string, error) {
	delay := c.retryDelay
	var lastErr error
	for attempt := 0; attempt < c.maxRetries; attempt++ {
		result, err := c.complete(ctx, systemPrompt, content)
		if err == nil {
			return result, nil
		}
		lastErr = err
		if attempt == c.maxRetries-1 {
			break
		}
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(delay):
		}
		delay *= 2
	}
	return "", lastErr
}

func (c *DeepSeek) complete(ctx context.Context, systemPrompt, content string) (string, error) {
	if c.apiKey == "" {
		return "", errors.New("deepseek: api key required")
	}

	endpoint, err := url.JoinPath(c.baseURL, "/chat/completions")
	if err != nil {
		return "", fmt.Errorf("deepseek: build url: %w", err)
	}
	encoded, err := json.Marshal(chatCompletionRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: content},
		},
		Stream: false,
	})
	if err != nil {
		return "", fmt.Errorf("deepseek: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(encoded))
	if err != nil {
		return "", fmt.Errorf("deepseek: request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("deepseek: request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("deepseek: read body: %w", err)
	}
	if resp.StatusCode >= http.StatusMultipleChoices {
		return "", fmt.Errorf("deepseek: http %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var completion chatCompletionResponse
	if err := json.Unmarshal(body, &completion); err != nil {
		return "", fmt.Errorf("deepseek: decode response: %w", err)
	}
	if completion.Error != nil {
		return "", fmt.Errorf("deepseek: api error: %s", strings.TrimSpace(completion.Error.Message))
	}
	if len(completion.Choices) == 0 {
		return "", errors.New("deepseek: empty choices")
	}
	result := strings.TrimSpace(completion.Choices[0].Message.Content)
	if result == "" {
		return "", errors.New("deepseek: empty content")
	}
	return result, nil
}

type chatCompletionRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
	Stream   bool          `json:"stream"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}
