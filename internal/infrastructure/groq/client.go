package groq

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/rs/zerolog/log"

	"github.com/foodpulse/foodpulse/internal/chatbot"
	"github.com/foodpulse/foodpulse/internal/domain/entity"
	"github.com/foodpulse/foodpulse/internal/domain/repository"
	"github.com/foodpulse/foodpulse/internal/metrics"
)

const (
	DefaultURL       = "https://api.groq.com/openai/v1/chat/completions"
	DefaultChatModel = "llama-3.1-8b-instant"
	DefaultTimeout   = 15 * time.Second

	placeholderKey = "YOUR_GROQ_API_KEY_HERE"
	maxBodyBytes   = 1 << 20
)

// ErrConfigurationMissing no usable API key was supplied.
var ErrConfigurationMissing = errors.New("groq api key is not configured")

// StatusError non-200 answer from the API.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("groq api returned status %d: %s", e.Code, e.Body)
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string    `json:"model"`
	Messages    []message `json:"messages"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
	Temperature float64   `json:"temperature"`
	TopP        float64   `json:"top_p,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message message `json:"message"`
	} `json:"choices"`
}

// Client talks to an OpenAI-compatible chat-completions endpoint.
type Client struct {
	apiKey     string
	url        string
	model      string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithURL overrides the endpoint.
func WithURL(url string) Option {
	return func(c *Client) { c.url = url }
}

// WithModel overrides the model name.
func WithModel(model string) Option {
	return func(c *Client) { c.model = model }
}

// WithTimeout bounds every call.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// WithHTTPClient replaces the transport entirely.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// NewClient fails with ErrConfigurationMissing for an empty or placeholder key.
func NewClient(apiKey string, opts ...Option) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" || apiKey == placeholderKey {
		return nil, ErrConfigurationMissing
	}

	c := &Client{
		apiKey:     apiKey,
		url:        DefaultURL,
		model:      DefaultChatModel,
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

var _ repository.CompletionClient = (*Client)(nil)

// Complete asks the model to answer query from the platform document. All
// failures collapse into OutcomeRateLimited or OutcomeAPIError.
func (c *Client) Complete(ctx context.Context, query, history string) entity.Completion {
	req := chatRequest{
		Model: c.model,
		Messages: []message{
			{Role: "system", Content: chatbot.SystemPrompt(history, query)},
			{Role: "user", Content: query},
		},
		MaxTokens:   500,
		Temperature: 0.3,
		TopP:        0.9,
	}

	start := time.Now()
	text, err := c.send(ctx, req)
	metrics.RemoteLatency.Observe(time.Since(start).Seconds())

	completion := entity.Completion{Outcome: entity.OutcomeSuccess, Text: text}
	if err != nil {
		var statusErr *StatusError
		if errors.As(err, &statusErr) && statusErr.Code == http.StatusTooManyRequests {
			completion = entity.Completion{Outcome: entity.OutcomeRateLimited}
		} else {
			log.Error().Err(err).Str("model", c.model).Msg("remote completion failed")
			completion = entity.Completion{Outcome: entity.OutcomeAPIError}
		}
	}
	metrics.RemoteCompletions.WithLabelValues(string(completion.Outcome)).Inc()
	return completion
}

// send posts req and returns the trimmed text of the first choice.
func (c *Client) send(ctx context.Context, req chatRequest) (string, error) {
	body, err := sonic.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", &StatusError{Code: resp.StatusCode, Body: string(data)}
	}

	var out chatResponse
	if err := sonic.Unmarshal(data, &out); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if len(out.Choices) == 0 {
		return "", errors.New("response has no choices")
	}
	return strings.TrimSpace(out.Choices[0].Message.Content), nil
}
