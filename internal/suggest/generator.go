package suggest

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"wordgrid/internal/predictor"
)

// Generator produces exactly WordCount candidates per call. It queries the
// predictor, re-queries on short yield, and fills any remaining shortfall
// with the fallback cascade. Predictor failures are absorbed, never returned.
// A Generator is safe for concurrent use.
type Generator struct {
	predictor  predictor.Predictor
	count      int
	maxRetries int
	log        zerolog.Logger
}

// Generation is the outcome of one Generate call.
type Generation struct {
	Words []string
	// Attempts is the number of predictor queries made.
	Attempts int
	// Report tells which cascade tier supplied each word.
	Report   FillReport
	Duration time.Duration
}

// NewGenerator builds a Generator around p. A nil p is allowed: every call is
// then served by the fallback cascade.
func NewGenerator(p predictor.Predictor, opts ...Option) (*Generator, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.wordCount < 1 || o.wordCount > MaxWordCount {
		return nil, ErrInvalidWordCount
	}
	return &Generator{predictor: p, count: o.wordCount, maxRetries: o.maxRetries, log: o.log}, nil
}

// WordCount returns the size of every candidate set.
func (g *Generator) WordCount() int { return g.count }

// HasPredictor reports whether a predictor backend is configured.
func (g *Generator) HasPredictor() bool { return g.predictor != nil }

// Generate returns the most likely candidates for contextText, none of them
// equivalent to a word in exclude unless the curated vocabulary runs out.
func (g *Generator) Generate(ctx context.Context, contextText string, mode Mode, exclude map[string]struct{}) Generation {
	return g.run(ctx, promptDisplay, contextText, mode, exclude, nil)
}

// Alternatives is Generate with a prompt asking for less common words, used
// to fill the background cache.
func (g *Generator) Alternatives(ctx context.Context, contextText string, mode Mode, exclude map[string]struct{}) Generation {
	return g.run(ctx, promptAlternative, contextText, mode, exclude, nil)
}

// Branch is Generate in continuation mode for a lookahead branch. Words in
// keep remain excluded even after the curated vocabulary runs out and the
// rest of exclude is relaxed.
func (g *Generator) Branch(ctx context.Context, contextText string, exclude, keep map[string]struct{}) Generation {
	return g.run(ctx, promptDisplay, contextText, ModeContinuation, exclude, keep)
}

func (g *Generator) run(ctx context.Context, kind promptKind, contextText string, mode Mode, exclude, keep map[string]struct{}) Generation {
	start := time.Now()
	seen := wordSet(exclude).clone()
	merged := make([]string, 0, g.count)
	attempts := 0

	for attempt := 0; attempt <= g.maxRetries && len(merged) < g.count; attempt++ {
		if ctx.Err() != nil {
			break
		}
		if g.predictor == nil {
			g.log.Warn().Str("kind", kind.String()).Msg("no predictor configured; using fallback words")
			predictorCalls.WithLabelValues(resultNoPredictor).Inc()
			break
		}
		attempts++
		prompt := buildPrompt(kind, mode, contextText, g.count, promptExclusions(merged, exclude))
		words, err := g.query(ctx, prompt)
		if err != nil {
			ev := g.log.Warn()
			if errors.Is(err, errNoWordArray) {
				ev = g.log.Debug()
			}
			ev.Err(err).Int("attempt", attempt).Str("mode", mode.String()).Msg("predictor query yielded no words")
			if isContextErr(err) {
				break
			}
			continue
		}
		for _, w := range words {
			if len(merged) == g.count {
				break
			}
			n := Normalize(w)
			if n == "" || seen.has(n) {
				continue
			}
			seen[n] = struct{}{}
			merged = append(merged, strings.TrimSpace(w))
		}
	}

	words, report := defaultVocabulary.cascade(merged, exclude, keep, mode, g.count)
	observeGeneration(kind, mode, report)
	return Generation{Words: words, Attempts: attempts, Report: report, Duration: time.Since(start)}
}

var errNoWordArray = errors.New("reply holds no word array")

func (g *Generator) query(ctx context.Context, prompt string) ([]string, error) {
	start := time.Now()
	reply, err := g.predictor.Predict(ctx, prompt)
	predictorDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		predictorCalls.WithLabelValues(resultError).Inc()
		return nil, err
	}
	words, ok := ParseWordArray(reply)
	if !ok {
		predictorCalls.WithLabelValues(resultParseError).Inc()
		return nil, errNoWordArray
	}
	predictorCalls.WithLabelValues(resultOK).Inc()
	return words, nil
}

func isContextErr(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
