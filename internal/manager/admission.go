package manager

import (
	"context"
	"time"
)

// beginGeneration reserves one of the foreground generation slots, waiting at
// most maxWait. Returns a release func to be deferred.
func (m *Manager) beginGeneration(ctx context.Context) (func(), error) {
	// Fast path: respect an already-canceled context
	if err := ctx.Err(); err != nil {
		return func() {}, err
	}
	select {
	case m.admitCh <- struct{}{}:
		return func() { <-m.admitCh }, nil
	default:
	}

	timer := time.NewTimer(m.maxWait)
	defer timer.Stop()
	select {
	case m.admitCh <- struct{}{}:
		return func() { <-m.admitCh }, nil
	case <-ctx.Done():
		return func() {}, ctx.Err()
	case <-timer.C:
		admissionRejections.Inc()
		return func() {}, ErrTooBusy("generation queue full")
	}
}

// Inflight reports the number of admitted foreground generations.
func (m *Manager) Inflight() int { return len(m.admitCh) }
