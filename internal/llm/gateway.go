package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
)

const maxErrorBody = 512

// GatewayClient implements Client for an OpenAI-compatible chat-completions endpoint
type GatewayClient struct {
	http   *resty.Client
	config *Config
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float32       `json:"temperature,omitempty"`
}

// NewGatewayClient creates a client that posts to {BaseURL}/chat/completions
func NewGatewayClient(config *Config, apiKey string) (*GatewayClient, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	if config.BaseURL == "" {
		return nil, fmt.Errorf("gateway base URL is required")
	}

	client := resty.New().
		SetBaseURL(strings.TrimSuffix(config.BaseURL, "/")).
		SetAuthToken(apiKey).
		SetHeader("Content-Type", "application/json").
		SetTimeout(config.Timeout)

	return &GatewayClient{http: client, config: config}, nil
}

// GenerateJSON sends a single chat completion and returns the first choice's content
func (c *GatewayClient) GenerateJSON(ctx context.Context, system, user string) (string, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(chatRequest{
			Model: c.config.Model,
			Messages: []chatMessage{
				{Role: "system", Content: system},
				{Role: "user", Content: user},
			},
			Temperature: c.config.Temperature,
		}).
		Post("/chat/completions")
	if err != nil {
		return "", fmt.Errorf("chat completion request failed: %w", err)
	}

	if resp.IsError() {
		body := resp.String()
		if len(body) > maxErrorBody {
			body = body[:maxErrorBody]
		}
		return "", &StatusError{StatusCode: resp.StatusCode(), Body: body}
	}

	content := gjson.Get(resp.String(), "choices.0.message.content").String()
	if strings.TrimSpace(content) == "" {
		return "", ErrEmptyResponse
	}

	return CleanJSONBlock(content), nil
}

// Model returns the configured model name
func (c *GatewayClient) Model() string {
	return c.config.Model
}

// Close is a no-op; the underlying HTTP client holds no exclusive resources
func (c *GatewayClient) Close() error {
	return nil
}
