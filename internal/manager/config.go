package manager

import (
	"time"

	"github.com/rs/zerolog"

	"wordgrid/internal/suggest"
)

// Defaults applied when corresponding ManagerConfig fields are unset.
const (
	defaultMaxSessions   = 64
	defaultMaxInflight   = 16
	defaultMaxWait       = 30 * time.Second
	defaultSweepInterval = time.Minute
)

// ManagerConfig encapsulates all tunables for Manager construction.
type ManagerConfig struct {
	// Generator is shared by every session. Required.
	Generator *suggest.Generator
	// Backend names the predictor backend for status reporting.
	Backend string
	// MaxSessions caps explicitly created sessions (negative = unlimited).
	MaxSessions int
	// MaxInflight caps concurrent foreground generations across sessions.
	MaxInflight int
	// MaxWait bounds how long a request waits for admission before 429.
	MaxWait time.Duration
	// IdleTTL evicts sessions unused for longer (0 disables eviction).
	IdleTTL       time.Duration
	SweepInterval time.Duration
	HistoryWindow int
	Logger        zerolog.Logger
	Publisher     suggest.EventPublisher
}

// NewWithConfig constructs a Manager from ManagerConfig and starts the idle
// janitor when IdleTTL is set. Call Close to stop it.
func NewWithConfig(cfg ManagerConfig) *Manager {
	m := &Manager{
		gen:           cfg.Generator,
		backend:       cfg.Backend,
		sessions:      make(map[string]*suggest.Session),
		idleTTL:       cfg.IdleTTL,
		historyWindow: cfg.HistoryWindow,
		log:           cfg.Logger,
		pub:           cfg.Publisher,
		startTime:     time.Now(),
	}
	switch {
	case cfg.MaxSessions == 0:
		m.maxSessions = defaultMaxSessions
	case cfg.MaxSessions < 0:
		m.maxSessions = 0
	default:
		m.maxSessions = cfg.MaxSessions
	}
	maxInflight := cfg.MaxInflight
	if maxInflight <= 0 {
		maxInflight = defaultMaxInflight
	}
	m.admitCh = make(chan struct{}, maxInflight)
	if cfg.MaxWait <= 0 {
		m.maxWait = defaultMaxWait
	} else {
		m.maxWait = cfg.MaxWait
	}
	if m.pub == nil {
		m.pub = noopPublisher{}
	}
	if m.gen == nil {
		// A generator without predictor still serves the fallback vocabulary.
		m.gen, _ = suggest.NewGenerator(nil)
	}
	if m.idleTTL > 0 {
		interval := cfg.SweepInterval
		if interval <= 0 {
			interval = min(defaultSweepInterval, m.idleTTL)
		}
		m.startJanitor(interval)
	}
	return m
}

type noopPublisher struct{}

func (noopPublisher) Publish(suggest.Event) {}
