package predictor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// maxReplyBytes bounds how much of a reply body is read. Word lists are tiny;
// anything larger is a misbehaving server.
const maxReplyBytes = 1 << 20

// ollamaClient implements Predictor against Ollama's native /api/generate endpoint.
type ollamaClient struct {
	baseURL     string
	model       string
	numPredict  int
	topK        int
	temperature float32
	reqTimeout  time.Duration
	httpClient  *http.Client
}

// NewOllama constructs an Ollama-backed Predictor.
func NewOllama(opts Options) Predictor {
	opts = opts.withDefaults()
	base := strings.TrimRight(opts.BaseURL, "/")
	if base == "" {
		base = defaultOllamaURL
	}
	return &ollamaClient{
		baseURL:     base,
		model:       opts.Model,
		numPredict:  opts.NumPredict,
		topK:        opts.TopK,
		temperature: opts.Temperature,
		reqTimeout:  opts.RequestTimeout,
		httpClient:  &http.Client{Transport: newTransport(opts.ConnectTimeout), Timeout: 0},
	}
}

type ollamaGenerateRequest struct {
	Model   string        `json:"model"`
	Prompt  string        `json:"prompt"`
	Stream  bool          `json:"stream"`
	Options ollamaOptions `json:"options"`
}

type ollamaOptions struct {
	NumPredict  int     `json:"num_predict,omitempty"`
	TopK        int     `json:"top_k,omitempty"`
	Temperature float32 `json:"temperature,omitempty"`
}

type ollamaGenerateResponse struct {
	Response string `json:"response"`
	Done     bool   `json:"done"`
	Error    string `json:"error,omitempty"`
}

func (c *ollamaClient) Predict(ctx context.Context, prompt string) (string, error) {
	if c == nil || c.httpClient == nil {
		return "", fmt.Errorf("%w: ollama client not initialized", ErrUnavailable)
	}
	if c.reqTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.reqTimeout)
		defer cancel()
	}

	payload := ollamaGenerateRequest{
		Model:  c.model,
		Prompt: prompt,
		Stream: false,
		Options: ollamaOptions{
			NumPredict:  c.numPredict,
			TopK:        c.topK,
			Temperature: c.temperature,
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal ollama request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", &StatusError{Backend: "ollama", Status: resp.StatusCode, Body: strings.TrimSpace(string(b))}
	}

	var out ollamaGenerateResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxReplyBytes)).Decode(&out); err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", fmt.Errorf("decode ollama response: %w", err)
	}
	if out.Error != "" {
		return "", fmt.Errorf("%w: ollama: %s", ErrUnavailable, out.Error)
	}
	return out.Response, nil
}

func (c *ollamaClient) Close() error {
	c.httpClient.CloseIdleConnections()
	return nil
}
