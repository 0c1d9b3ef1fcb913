package predictor

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
)

// openAIClient implements Predictor against any OpenAI-compatible chat
// completion endpoint (OpenRouter by default).
type openAIClient struct {
	client      *openai.Client
	httpClient  *http.Client
	model       string
	maxTokens   int
	temperature float32
	reqTimeout  time.Duration
}

// NewOpenAI constructs an OpenAI-compatible Predictor. An API key is required.
func NewOpenAI(opts Options) (Predictor, error) {
	opts = opts.withDefaults()
	if strings.TrimSpace(opts.APIKey) == "" {
		return nil, errors.New("openai backend requires an api key")
	}
	cfg := openai.DefaultConfig(opts.APIKey)
	cfg.BaseURL = defaultOpenAIURL
	if opts.BaseURL != "" {
		cfg.BaseURL = strings.TrimRight(opts.BaseURL, "/")
	}
	hc := &http.Client{Transport: newTransport(opts.ConnectTimeout)}
	cfg.HTTPClient = hc
	return &openAIClient{
		client:      openai.NewClientWithConfig(cfg),
		httpClient:  hc,
		model:       opts.Model,
		maxTokens:   opts.NumPredict,
		temperature: opts.Temperature,
		reqTimeout:  opts.RequestTimeout,
	}, nil
}

func (c *openAIClient) Predict(ctx context.Context, prompt string) (string, error) {
	if c == nil || c.client == nil {
		return "", fmt.Errorf("%w: openai client not initialized", ErrUnavailable)
	}
	if c.reqTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.reqTimeout)
		defer cancel()
	}
	req := openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		MaxTokens:   c.maxTokens,
		Temperature: c.temperature,
	}
	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) {
			return "", &StatusError{Backend: "openai", Status: apiErr.HTTPStatusCode, Body: apiErr.Message}
		}
		var reqErr *openai.RequestError
		if errors.As(err, &reqErr) {
			return "", &StatusError{Backend: "openai", Status: reqErr.HTTPStatusCode, Body: reqErr.Error()}
		}
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: openai returned no choices", ErrUnavailable)
	}
	return resp.Choices[0].Message.Content, nil
}

func (c *openAIClient) Close() error {
	c.httpClient.CloseIdleConnections()
	return nil
}
