package predictor

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"
)

// limited throttles calls to the wrapped Predictor with a token bucket.
type limited struct {
	next Predictor
	lim  *rate.Limiter
}

// WithRateLimit wraps p so that at most rps calls per second (with the given
// burst) reach the model service. Waiting honours ctx.
func WithRateLimit(p Predictor, rps float64, burst int) Predictor {
	if burst < 1 {
		burst = 1
	}
	return &limited{next: p, lim: rate.NewLimiter(rate.Limit(rps), burst)}
}

func (l *limited) Predict(ctx context.Context, prompt string) (string, error) {
	if err := l.lim.Wait(ctx); err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		// Wait refuses up front when the token would arrive after the deadline.
		if _, ok := ctx.Deadline(); ok {
			return "", fmt.Errorf("rate limit: %w", context.DeadlineExceeded)
		}
		return "", err
	}
	return l.next.Predict(ctx, prompt)
}

func (l *limited) Close() error { return l.next.Close() }
