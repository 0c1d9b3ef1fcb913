package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"wordgrid/internal/httpapi"
	"wordgrid/internal/manager"
	"wordgrid/internal/predictor"
	"wordgrid/internal/suggest"
)

// modelPool is what the fake model proposes, most likely first.
var modelPool = []string{
	"want", "need", "like", "feel", "have", "am", "think", "see", "go", "love",
	"hope", "can", "will", "should", "would", "could", "know", "get", "make", "take",
	"give", "tell", "ask", "help", "try", "wait", "stay", "leave", "come", "play",
}

// fakeOllama serves /api/generate like a well-behaved model: it returns the
// requested number of pool words that the prompt does not exclude.
type fakeOllama struct {
	mu      sync.Mutex
	prompts []string
	// gate, when set, blocks every call until closed.
	gate    chan struct{}
	entered chan struct{}
}

func (f *fakeOllama) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Prompt string `json:"prompt"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	f.mu.Lock()
	f.prompts = append(f.prompts, req.Prompt)
	gate, entered := f.gate, f.entered
	f.mu.Unlock()
	if gate != nil {
		select {
		case entered <- struct{}{}:
		default:
		}
		select {
		case <-gate:
		case <-r.Context().Done():
			return
		}
	}
	excluded := excludedWords(req.Prompt)
	var words []string
	for _, w := range modelPool {
		if !excluded[w] {
			words = append(words, w)
		}
	}
	b, _ := json.Marshal(words)
	_ = json.NewEncoder(w).Encode(map[string]any{"response": "Here you go: " + string(b), "done": true})
}

func (f *fakeOllama) Prompts() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.prompts...)
}

func excludedWords(prompt string) map[string]bool {
	out := map[string]bool{}
	const marker = "(already used): "
	i := strings.Index(prompt, marker)
	if i < 0 {
		return out
	}
	line := prompt[i+len(marker):]
	if j := strings.IndexByte(line, '\n'); j >= 0 {
		line = line[:j]
	}
	for _, w := range strings.Split(line, ", ") {
		out[strings.TrimSpace(w)] = true
	}
	return out
}

// newStack wires a fake model, the real predictor client, the engine, the
// manager and the HTTP API.
func newStack(t *testing.T, model *fakeOllama, cfg manager.ManagerConfig) (*httptest.Server, *manager.Manager) {
	t.Helper()
	upstream := httptest.NewServer(model)
	t.Cleanup(upstream.Close)

	p, err := predictor.New(predictor.Options{BaseURL: upstream.URL, Model: "fake", RequestTimeout: 5 * time.Second})
	if err != nil {
		t.Fatalf("predictor: %v", err)
	}
	t.Cleanup(func() { _ = p.Close() })
	gen, err := suggest.NewGenerator(p)
	if err != nil {
		t.Fatalf("generator: %v", err)
	}
	cfg.Generator = gen
	cfg.Backend = "ollama"
	mgr := manager.NewWithConfig(cfg)
	t.Cleanup(func() { _ = mgr.Close() })

	srv := httptest.NewServer(httpapi.NewMux(mgr))
	t.Cleanup(srv.Close)
	return srv, mgr
}

func httpGet(t *testing.T, url string) (*http.Response, []byte) {
	t.Helper()
	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, url, nil)
	if err != nil {
		t.Fatalf("new req: %v", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do req: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	return resp, body
}

func httpPostJSON(t *testing.T, url string, payload any) (*http.Response, []byte) {
	t.Helper()
	b, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	req, err := http.NewRequestWithContext(context.Background(), http.MethodPost, url, bytes.NewReader(b))
	if err != nil {
		t.Fatalf("new req: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do req: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	return resp, body
}

func decode[T any](t *testing.T, body []byte) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(body, &v); err != nil {
		t.Fatalf("json: %v (%s)", err, body)
	}
	return v
}

func mustStatus(t *testing.T, resp *http.Response, body []byte, want int) {
	t.Helper()
	if resp.StatusCode != want {
		t.Fatalf("status=%d want %d body=%s", resp.StatusCode, want, body)
	}
}

func overlap(a, b []string) []string {
	seen := map[string]bool{}
	for _, w := range a {
		seen[strings.ToLower(w)] = true
	}
	var out []string
	for _, w := range b {
		if seen[strings.ToLower(w)] {
			out = append(out, w)
		}
	}
	return out
}

