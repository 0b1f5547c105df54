package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/johnquangdev/meeting-recovery/pkg/config"
)

const (
	defaultBaseURL = "https://openrouter.ai/api/v1"
	maxErrorBody   = 4 << 10
)

// Client is a minimal client for OpenRouter-compatible chat completion calls
type Client struct {
	apiKey       string
	baseURL      string
	model        string
	temperature  float64
	maxTokens    int
	referer      string
	title        string
	maxRetries   int
	retryBackoff time.Duration
	client       *http.Client
}

// NewClient creates a chat completions client from the LLM config.
func NewClient(cfg *config.LLMConfig) *Client {
	c := &Client{
		baseURL:      defaultBaseURL,
		model:        "deepseek/deepseek-r1-0528",
		temperature:  0.3,
		maxTokens:    4000,
		retryBackoff: 750 * time.Millisecond,
		client:       &http.Client{Timeout: 60 * time.Second},
	}
	if cfg == nil {
		return c
	}

	c.apiKey = cfg.APIKey
	if cfg.BaseURL != "" {
		c.baseURL = strings.TrimRight(cfg.BaseURL, "/")
	}
	if cfg.Model != "" {
		c.model = cfg.Model
	}
	if cfg.Temperature > 0 {
		c.temperature = cfg.Temperature
	}
	if cfg.MaxTokens > 0 {
		c.maxTokens = cfg.MaxTokens
	}
	if cfg.Timeout > 0 {
		c.client.Timeout = cfg.Timeout
	}
	if cfg.RetryBackoff > 0 {
		c.retryBackoff = cfg.RetryBackoff
	}
	c.maxRetries = cfg.MaxRetries
	c.referer = cfg.Referer
	c.title = cfg.Title
	return c
}

// Message is a single chat message
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest is the shape for chat completion requests
type ChatRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature,omitempty"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
}

// ChatResponse is a minimal response shape
type ChatResponse struct {
	Choices []struct {
		Message *struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Complete sends one system + user exchange and returns the assistant content.
// Transient upstream failures (429/5xx) are retried up to maxRetries times with
// jittered exponential backoff; timeouts and client errors fail immediately.
func (c *Client) Complete(ctx context.Context, system, user string) (string, error) {
	if c.apiKey == "" {
		return "", &Error{Kind: KindMissingCredentials, Err: errors.New("OPENROUTER_API_KEY is not configured")}
	}

	body, err := json.Marshal(ChatRequest{
		Model: c.model,
		Messages: []Message{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Temperature: c.temperature,
		MaxTokens:   c.maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode chat request: %w", err)
	}

	var content string
	operation := func() error {
		out, err := c.do(ctx, body)
		if err != nil {
			var aiErr *Error
			if errors.As(err, &aiErr) && aiErr.Retryable() {
				return err
			}
			return backoff.Permanent(err)
		}
		content = out
		return nil
	}

	if err := backoff.Retry(operation, c.newBackOff(ctx)); err != nil {
		return "", asError(err)
	}
	return content, nil
}

// asError keeps *Error results as they are. Anything else comes from the
// backoff loop itself, typically the context expiring between attempts.
func asError(err error) error {
	var aiErr *Error
	if errors.As(err, &aiErr) {
		return err
	}
	return classifyTransportError(err)
}

func (c *Client) newBackOff(ctx context.Context) backoff.BackOff {
	eb := backoff.NewExponentialBackOff()
	eb.InitialInterval = c.retryBackoff
	eb.RandomizationFactor = 0.5
	eb.Multiplier = 2
	eb.MaxElapsedTime = 0

	retries := c.maxRetries
	if retries < 0 {
		retries = 0
	}
	return backoff.WithContext(backoff.WithMaxRetries(eb, uint64(retries)), ctx)
}

func (c *Client) do(ctx context.Context, body []byte) (string, error) {
	endpoint := c.baseURL + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build chat request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	if c.referer != "" {
		req.Header.Set("HTTP-Referer", c.referer)
	}
	if c.title != "" {
		req.Header.Set("X-Title", c.title)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return "", classifyTransportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return "", &Error{
			Kind:       KindUpstreamHTTP,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(snippet)),
			Err:        fmt.Errorf("upstream returned %s", resp.Status),
		}
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", classifyTransportError(err)
	}

	var cr ChatResponse
	if err := json.Unmarshal(raw, &cr); err != nil {
		return "", &Error{Kind: KindMalformedResponse, Err: fmt.Errorf("invalid response body: %w", err)}
	}
	if len(cr.Choices) == 0 || cr.Choices[0].Message == nil {
		return "", &Error{Kind: KindMalformedResponse, Err: errors.New("response has no choices or message")}
	}
	return cr.Choices[0].Message.Content, nil
}

func classifyTransportError(err error) error {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return &Error{Kind: KindTimeout, Err: err}
	}
	return &Error{Kind: KindNetwork, Err: err}
}
