package manager

import (
	"context"
	"time"

	"wordgrid/internal/suggest"
)

func (m *Manager) startJanitor(interval time.Duration) {
	ctx, cancel := context.WithCancel(context.Background())
	m.stopJanitor = cancel
	m.janitorDone = make(chan struct{})
	go func() {
		defer close(m.janitorDone)
		t := time.NewTicker(interval)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-t.C:
				m.evictIdle(now)
			}
		}
	}()
}

// evictIdle closes sessions unused for longer than idleTTL as of now and
// returns how many were evicted.
func (m *Manager) evictIdle(now time.Time) int {
	if m.idleTTL <= 0 {
		return 0
	}
	m.mu.Lock()
	var victims []*suggest.Session
	for id, s := range m.sessions {
		if now.Sub(s.LastUsed()) > m.idleTTL {
			delete(m.sessions, id)
			victims = append(victims, s)
		}
	}
	sessionsGauge.Set(float64(len(m.sessions)))
	pub := m.pub
	m.mu.Unlock()

	for _, s := range victims {
		_ = s.Close()
		m.evictions.Add(1)
		evictionsTotal.Inc()
		m.log.Info().Str("session", s.ID()).Dur("idle_ttl", m.idleTTL).Msg("session evicted")
		pub.Publish(suggest.Event{Name: "session_evicted", SessionID: s.ID()})
	}
	return len(victims)
}
