package suggest

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
)

// fakePredictor records prompts and answers through fn.
type fakePredictor struct {
	mu      sync.Mutex
	fn      func(ctx context.Context, call int, prompt string) (string, error)
	prompts []string
}

func (f *fakePredictor) Predict(ctx context.Context, prompt string) (string, error) {
	f.mu.Lock()
	call := len(f.prompts)
	f.prompts = append(f.prompts, prompt)
	fn := f.fn
	f.mu.Unlock()
	if fn == nil {
		return "", nil
	}
	return fn(ctx, call, prompt)
}

func (f *fakePredictor) Close() error { return nil }

func (f *fakePredictor) Prompts() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.prompts...)
}

func (f *fakePredictor) LastPrompt() string {
	p := f.Prompts()
	if len(p) == 0 {
		return ""
	}
	return p[len(p)-1]
}

func replyWith(words ...string) func(context.Context, int, string) (string, error) {
	return func(context.Context, int, string) (string, error) { return wordsJSON(words...), nil }
}

func wordsJSON(words ...string) string {
	b, _ := json.Marshal(words)
	return "Here you go:\n" + string(b)
}

func hasExclusionLine(prompt string) bool {
	return strings.Contains(prompt, "Do NOT include")
}

func assertUnique(words []string) (dup string, ok bool) {
	seen := map[string]bool{}
	for _, w := range words {
		n := Normalize(w)
		if seen[n] {
			return w, false
		}
		seen[n] = true
	}
	return "", true
}

var drinksAndFood = []string{
	"water", "food", "tea", "coffee", "juice",
	"milk", "bread", "soup", "rice", "apple",
	"cake", "pizza", "salad", "fruit", "cheese",
}

var feelings = []string{
	"calm", "cold", "warm", "sleepy", "dizzy",
	"excited", "bored", "nervous", "proud", "lonely",
	"angry", "scared", "relaxed", "fine", "great",
}
