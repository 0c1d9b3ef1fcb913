package manager

import (
	"context"
	"testing"
	"time"

	"wordgrid/internal/suggest"
)

type stubPredictor struct{ reply string }

func (p stubPredictor) Predict(context.Context, string) (string, error) { return p.reply, nil }
func (stubPredictor) Close() error                                     { return nil }

func newTestManager(t *testing.T, cfg ManagerConfig) *Manager {
	t.Helper()
	if cfg.Generator == nil {
		gen, err := suggest.NewGenerator(stubPredictor{reply: `["tea","coffee"]`})
		if err != nil {
			t.Fatalf("NewGenerator: %v", err)
		}
		cfg.Generator = gen
	}
	m := NewWithConfig(cfg)
	t.Cleanup(func() { _ = m.Close() })
	return m
}

func TestNewWithConfigDefaults(t *testing.T) {
	m := newTestManager(t, ManagerConfig{})
	if m.maxSessions != defaultMaxSessions {
		t.Fatalf("expected default maxSessions=%d got %d", defaultMaxSessions, m.maxSessions)
	}
	if cap(m.admitCh) != defaultMaxInflight {
		t.Fatalf("expected default inflight=%d got %d", defaultMaxInflight, cap(m.admitCh))
	}
	if m.maxWait != defaultMaxWait {
		t.Fatalf("expected default maxWait=%v got %v", defaultMaxWait, m.maxWait)
	}
	if m.stopJanitor != nil {
		t.Fatalf("janitor must not run without IdleTTL")
	}
}

func TestNewWithConfig_NilGeneratorServesFallback(t *testing.T) {
	m := NewWithConfig(ManagerConfig{})
	defer m.Close()
	if m.Ready() {
		t.Fatalf("no predictor: Ready should be false")
	}
	if m.WordCount() != suggest.DefaultWordCount {
		t.Fatalf("WordCount=%d", m.WordCount())
	}
}

func TestSession_DefaultCreatedOnDemand(t *testing.T) {
	m := newTestManager(t, ManagerConfig{})
	s1, err := m.Session("")
	if err != nil {
		t.Fatalf("Session: %v", err)
	}
	s2, err := m.Session(DefaultSessionID)
	if err != nil || s1 != s2 {
		t.Fatalf("default session not shared: %v", err)
	}
	if s1.ID() != DefaultSessionID {
		t.Fatalf("id=%q", s1.ID())
	}
}

func TestSession_UnknownIDNotFound(t *testing.T) {
	m := newTestManager(t, ManagerConfig{})
	if _, err := m.Session("nope"); !IsSessionNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestCreateDelete(t *testing.T) {
	m := newTestManager(t, ManagerConfig{})
	id, err := m.Create()
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if len(id) != 36 {
		t.Fatalf("expected uuid, got %q", id)
	}
	s, err := m.Session(id)
	if err != nil {
		t.Fatalf("Session: %v", err)
	}
	if err := m.Delete(id); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := m.Session(id); !IsSessionNotFound(err) {
		t.Fatalf("deleted session still reachable: %v", err)
	}
	if _, err := s.Words(context.Background(), suggest.Request{}); err != suggest.ErrSessionClosed {
		t.Fatalf("deleted session must be closed, got %v", err)
	}
	if err := m.Delete(id); !IsSessionNotFound(err) {
		t.Fatalf("second delete: %v", err)
	}
}

func TestCreate_MaxSessions(t *testing.T) {
	m := newTestManager(t, ManagerConfig{MaxSessions: 2})
	if _, err := m.Session(""); err != nil {
		t.Fatalf("default: %v", err)
	}
	for i := 0; i < 2; i++ {
		if _, err := m.Create(); err != nil {
			t.Fatalf("Create %d: %v", i, err)
		}
	}
	if _, err := m.Create(); !IsTooBusy(err) {
		t.Fatalf("expected too busy, got %v", err)
	}
}

func TestClose_ClosesSessions(t *testing.T) {
	m := NewWithConfig(ManagerConfig{IdleTTL: time.Hour})
	s, _ := m.Session("")
	if err := m.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := m.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
	if _, err := s.Refresh(context.Background(), suggest.Request{}); err != suggest.ErrSessionClosed {
		t.Fatalf("session not closed: %v", err)
	}
	if _, err := m.Session(""); err != suggest.ErrSessionClosed {
		t.Fatalf("closed manager must refuse sessions, got %v", err)
	}
	if _, err := m.Create(); err != suggest.ErrSessionClosed {
		t.Fatalf("closed manager must refuse creation, got %v", err)
	}
}

func TestEventPublisher_SessionLifecycle(t *testing.T) {
	m := newTestManager(t, ManagerConfig{})
	pub := suggest.NewMemoryPublisher()
	m.SetEventPublisher(pub)
	id, _ := m.Create()
	_ = m.Delete(id)
	want := map[string]bool{"session_created": false, "session_closed": false, "session_deleted": false}
	for _, name := range pub.Names() {
		if _, ok := want[name]; ok {
			want[name] = true
		}
	}
	for k, v := range want {
		if !v {
			t.Fatalf("expected event %q to be published; got events: %v", k, pub.Names())
		}
	}
}
