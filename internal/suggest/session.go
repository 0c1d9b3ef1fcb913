package suggest

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/semaphore"

	"wordgrid/pkg/types"
)

// Request is the conversation state a candidate operation is computed for.
type Request struct {
	History []types.ChatMessage
	// Sentence holds the words already committed to the sentence being built.
	Sentence      []string
	SentenceStart bool
}

// Result is returned by Session.Words and Session.Refresh.
type Result struct {
	Words []string
	// Cached is the background cache held by the session after the call.
	Cached    []string
	Duration  time.Duration
	FromCache bool
}

// Stats summarizes session state for status reporting.
type Stats struct {
	UsedWords       int
	LayerWords      int
	Branches        int
	CacheGenerating bool
	LastUsed        time.Time
}

// Session is the suggestion state of one conversation: exclusion scopes,
// lookahead tree, background cache and the task generating it.
type Session struct {
	id     string
	gen    *Generator
	window int
	log    zerolog.Logger
	pub    EventPublisher

	// ctx bounds background work; cancelled by Close.
	ctx    context.Context
	cancel context.CancelFunc
	// genLock admits a single background cache generation.
	genLock *semaphore.Weighted
	tasks   sync.WaitGroup

	mu         sync.Mutex
	closed     bool
	excl       *Exclusions
	tree       *branchTree
	cache      Cache
	generating bool
	lastUsed   time.Time
}

// NewSession creates a session drawing candidates from gen. Options other
// than logging, events and the history window are ignored.
func NewSession(id string, gen *Generator, opts ...Option) *Session {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Session{
		id:       id,
		gen:      gen,
		window:   o.historyWindow,
		log:      o.log.With().Str("session", id).Logger(),
		pub:      o.pub,
		ctx:      ctx,
		cancel:   cancel,
		genLock:  semaphore.NewWeighted(1),
		excl:     NewExclusions(),
		tree:     newBranchTree(),
		lastUsed: time.Now(),
	}
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// Words generates the display set after a sentence start or a committed word.
// A sentence start clears the sentence scope and the lookahead tree; any
// other call opens a new layer.
func (s *Session) Words(ctx context.Context, req Request) (Result, error) {
	start := time.Now()
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return Result{}, ErrSessionClosed
	}
	if req.SentenceStart {
		s.excl.ClearSentence()
		s.tree.clear()
	} else {
		s.excl.ClearLayer()
	}
	exclude := s.activeLocked()
	s.mu.Unlock()

	gen := s.gen.Generate(ctx, BuildContext(req.History, req.Sentence, s.window), ModeFor(req.SentenceStart), exclude)

	cached := s.recordShown(gen.Words)
	s.publish(EventWordsGenerated, map[string]any{
		"mode": ModeFor(req.SentenceStart).String(), "attempts": gen.Attempts, "fallback": gen.Report.Fallback(),
	})
	return Result{Words: gen.Words, Cached: cached, Duration: time.Since(start)}, nil
}

// Refresh replaces the display set within the current layer. A fresh
// background cache is served (and consumed) instead of querying the predictor.
func (s *Session) Refresh(ctx context.Context, req Request) (Result, error) {
	start := time.Now()
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return Result{}, ErrSessionClosed
	}
	exclude := s.activeLocked()
	if s.cache.FreshFor(req.Sentence, req.SentenceStart, exclude) {
		words := s.cache.Words
		s.cache = Cache{}
		s.excl.RecordShown(words, true)
		s.lastUsed = time.Now()
		s.mu.Unlock()
		s.publish(EventCacheServed, map[string]any{"words": len(words)})
		return Result{Words: words, Cached: []string{}, Duration: time.Since(start), FromCache: true}, nil
	}
	s.mu.Unlock()

	gen := s.gen.Generate(ctx, BuildContext(req.History, req.Sentence, s.window), ModeFor(req.SentenceStart), exclude)

	cached := s.recordShown(gen.Words)
	s.publish(EventWordsRefreshed, map[string]any{
		"mode": ModeFor(req.SentenceStart).String(), "attempts": gen.Attempts, "fallback": gen.Report.Fallback(),
	})
	return Result{Words: gen.Words, Cached: cached, Duration: time.Since(start)}, nil
}

// GenerateCache fills the background cache for req. When a generation is
// already running it returns the stored cache at once with Started false.
// The generation itself runs under the session's lifetime, so it completes
// even if ctx ends first; in that case the previously stored words are
// returned with Started false, since the new set is not stored yet.
func (s *Session) GenerateCache(ctx context.Context, req Request) (CacheResult, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return CacheResult{}, ErrSessionClosed
	}
	if !s.genLock.TryAcquire(1) {
		words := append([]string(nil), s.cache.Words...)
		s.mu.Unlock()
		cacheRequestsTotal.WithLabelValues("in_progress").Inc()
		s.publish(EventCacheBusy, nil)
		return CacheResult{Words: words}, nil
	}
	exclude := s.excl.Combined()
	previous := append([]string(nil), s.cache.Words...)
	s.generating = true
	s.tasks.Add(1)
	s.lastUsed = time.Now()
	s.mu.Unlock()
	cacheRequestsTotal.WithLabelValues("generated").Inc()
	s.publish(EventCacheStarted, nil)

	contextText := BuildContext(req.History, req.Sentence, s.window)
	sentence := append([]string(nil), req.Sentence...)
	mode := ModeFor(req.SentenceStart)
	done := make(chan []string, 1)
	go func() {
		defer s.tasks.Done()
		defer s.genLock.Release(1)
		gen := s.gen.Alternatives(s.ctx, contextText, mode, exclude)
		s.mu.Lock()
		s.generating = false
		if s.ctx.Err() != nil {
			s.mu.Unlock()
			done <- nil
			return
		}
		s.cache = Cache{Words: gen.Words, Context: sentence, SentenceStart: req.SentenceStart}
		s.mu.Unlock()
		s.publish(EventCacheStored, map[string]any{"attempts": gen.Attempts, "fallback": gen.Report.Fallback()})
		done <- append([]string(nil), gen.Words...)
	}()

	select {
	case words := <-done:
		if words == nil {
			return CacheResult{}, ErrSessionClosed
		}
		return CacheResult{Words: words, Started: true}, nil
	case <-ctx.Done():
		return CacheResult{Words: previous}, nil
	}
}

// ResetBranch regenerates the next-word set of the branch under firstWord.
// The result never shares a word with the branch's previous set or the branch
// word itself. Older branch history and the words used in the current
// sentence are excluded while the curated vocabulary lasts.
func (s *Session) ResetBranch(ctx context.Context, req Request, firstWord string) ([]string, error) {
	first := strings.TrimSpace(firstWord)
	if Normalize(first) == "" {
		return nil, ErrInvalidRequest("first_word is required")
	}
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil, ErrSessionClosed
	}
	exclude := s.tree.exclusionFor(first, s.excl.usedSet())
	keep := s.tree.latestFor(first)
	s.lastUsed = time.Now()
	s.mu.Unlock()

	sentence := append(append([]string(nil), req.Sentence...), first)
	gen := s.gen.Branch(ctx, BuildContext(req.History, sentence, s.window), exclude, keep)

	s.mu.Lock()
	s.tree.record(first, gen.Words)
	s.mu.Unlock()
	s.publish(EventBranchReset, map[string]any{"first_word": first, "fallback": gen.Report.Fallback()})
	return gen.Words, nil
}

// CachedWords returns a copy of the stored background cache.
func (s *Session) CachedWords() Cache {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cache.clone()
}

// UsedWords returns the normalized words shown since the sentence began.
func (s *Session) UsedWords() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.excl.Used()
}

// ClearUsedWords marks a sentence boundary: both exclusion scopes, the
// lookahead tree and the cache are emptied.
func (s *Session) ClearUsedWords() {
	s.mu.Lock()
	s.excl.ClearSentence()
	s.tree.clear()
	s.cache = Cache{}
	s.lastUsed = time.Now()
	s.mu.Unlock()
	s.publish(EventUsedCleared, nil)
}

// Branches returns a copy of the lookahead tree.
func (s *Session) Branches() Branches {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tree.snapshot()
}

// Stats reports counters for status pages.
func (s *Session) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Stats{
		UsedWords:       s.excl.UsedSize(),
		LayerWords:      s.excl.LayerSize(),
		Branches:        len(s.tree.level1),
		CacheGenerating: s.generating,
		LastUsed:        s.lastUsed,
	}
}

// LastUsed returns the time of the last operation.
func (s *Session) LastUsed() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastUsed
}

// Close cancels any in-flight background generation and waits for it to
// return. Foreground calls already running complete normally. Close is
// idempotent; the shared predictor is not closed.
func (s *Session) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.mu.Unlock()
	s.cancel()
	s.tasks.Wait()
	s.publish(EventSessionClosed, nil)
	return nil
}

// activeLocked returns the foreground exclusion set. Requires s.mu.
func (s *Session) activeLocked() map[string]struct{} {
	exclude, overflowed := s.excl.Active()
	if overflowed {
		layerOverflowsTotal.Inc()
		s.log.Debug().Int("bound", LayerBound).Msg("layer exclusions cleared")
		s.pub.Publish(Event{Name: EventLayerOverflow, SessionID: s.id})
	}
	s.lastUsed = time.Now()
	return exclude
}

// recordShown records a display set and returns a copy of the cache words.
func (s *Session) recordShown(words []string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.excl.RecordShown(words, true)
	s.lastUsed = time.Now()
	return append([]string{}, s.cache.Words...)
}

func (s *Session) publish(name string, fields map[string]any) {
	s.pub.Publish(Event{Name: name, SessionID: s.id, Fields: fields})
}
