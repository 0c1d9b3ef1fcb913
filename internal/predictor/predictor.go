// Package predictor talks to the external text-prediction service that
// proposes candidate words. Implementations return the raw model reply; the
// suggestion engine is responsible for parsing and validating it.
package predictor

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"
)

// Predictor sends a prompt to a language model and returns its textual reply.
// Implementations must be safe for concurrent use.
type Predictor interface {
	Predict(ctx context.Context, prompt string) (string, error)
	// Close releases pooled connections. Outstanding calls are not interrupted.
	Close() error
}

// Backend selects the wire protocol used to reach the model.
type Backend string

const (
	BackendOllama Backend = "ollama"
	BackendOpenAI Backend = "openai"
)

// Options configures a Predictor. Zero values fall back to package defaults.
type Options struct {
	Backend        Backend
	BaseURL        string
	Model          string
	APIKey         string
	RequestTimeout time.Duration
	ConnectTimeout time.Duration
	// Generation knobs. NumPredict maps to max_tokens on OpenAI-compatible servers.
	NumPredict  int
	TopK        int
	Temperature float32
	// RateLimit caps requests per second across all sessions (0 disables).
	RateLimit float64
	Burst     int
}

const (
	defaultOllamaURL      = "http://localhost:11434"
	defaultOpenAIURL      = "https://openrouter.ai/api/v1"
	defaultRequestTimeout = 30 * time.Second
	defaultConnectTimeout = 5 * time.Second
	defaultNumPredict     = 128
	defaultTopK           = 15
)

// New constructs the Predictor described by opts.
func New(opts Options) (Predictor, error) {
	var (
		p   Predictor
		err error
	)
	switch opts.Backend {
	case BackendOllama, "":
		p = NewOllama(opts)
	case BackendOpenAI:
		p, err = NewOpenAI(opts)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unknown predictor backend %q", opts.Backend)
	}
	if opts.RateLimit > 0 {
		p = WithRateLimit(p, opts.RateLimit, opts.Burst)
	}
	return p, nil
}

func (o Options) withDefaults() Options {
	if o.RequestTimeout <= 0 {
		o.RequestTimeout = defaultRequestTimeout
	}
	if o.ConnectTimeout <= 0 {
		o.ConnectTimeout = defaultConnectTimeout
	}
	if o.NumPredict <= 0 {
		o.NumPredict = defaultNumPredict
	}
	if o.TopK <= 0 {
		o.TopK = defaultTopK
	}
	return o
}

// newTransport returns the pooled transport shared by every call of one client.
// Client-level timeouts stay at zero: each call carries a context deadline.
func newTransport(connectTimeout time.Duration) *http.Transport {
	return &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   connectTimeout,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   16,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}
}
