package manager

import (
	"context"

	"wordgrid/internal/suggest"
	"wordgrid/pkg/types"
)

func toRequest(r types.WordRequest) suggest.Request {
	return suggest.Request{History: r.ChatHistory, Sentence: r.CurrentSentence, SentenceStart: r.IsSentenceStart}
}

func nonNil(words []string) []string {
	if words == nil {
		return []string{}
	}
	return words
}

// Words serves the display set after a sentence start or a committed word.
func (m *Manager) Words(ctx context.Context, req types.WordRequest) (types.WordResponse, error) {
	return m.display(ctx, req, (*suggest.Session).Words)
}

// Refresh serves a new display set within the current layer.
func (m *Manager) Refresh(ctx context.Context, req types.WordRequest) (types.WordResponse, error) {
	return m.display(ctx, req, (*suggest.Session).Refresh)
}

func (m *Manager) display(ctx context.Context, req types.WordRequest,
	op func(*suggest.Session, context.Context, suggest.Request) (suggest.Result, error)) (types.WordResponse, error) {
	s, err := m.Session(req.SessionID)
	if err != nil {
		return types.WordResponse{}, err
	}
	release, err := m.beginGeneration(ctx)
	if err != nil {
		return types.WordResponse{}, err
	}
	defer release()
	res, err := op(s, ctx, toRequest(req))
	if err != nil {
		return types.WordResponse{}, err
	}
	return types.WordResponse{
		SessionID:   s.ID(),
		Words:       res.Words,
		CachedWords: nonNil(res.Cached),
		DurationMS:  res.Duration.Milliseconds(),
		FromCache:   res.FromCache,
	}, nil
}

// GenerateCache fills the session's background cache. It is not subject to
// admission: each session runs at most one such generation.
func (m *Manager) GenerateCache(ctx context.Context, req types.WordRequest) (types.CacheGenerateResponse, error) {
	s, err := m.Session(req.SessionID)
	if err != nil {
		return types.CacheGenerateResponse{}, err
	}
	res, err := s.GenerateCache(ctx, toRequest(req))
	if err != nil {
		return types.CacheGenerateResponse{}, err
	}
	status := "generated"
	if !res.Started {
		status = "in_progress"
	}
	return types.CacheGenerateResponse{SessionID: s.ID(), CachedWords: nonNil(res.Words), Status: status}, nil
}

// Cache reports the stored cache and the words used in the current sentence.
func (m *Manager) Cache(_ context.Context, id string) (types.CacheResponse, error) {
	s, err := m.Session(id)
	if err != nil {
		return types.CacheResponse{}, err
	}
	c := s.CachedWords()
	return types.CacheResponse{
		SessionID:    s.ID(),
		CachedWords:  nonNil(c.Words),
		CacheContext: nonNil(c.Context),
		UsedWords:    nonNil(s.UsedWords()),
	}, nil
}

// ClearUsed marks a sentence boundary for the session.
func (m *Manager) ClearUsed(_ context.Context, id string) error {
	s, err := m.Session(id)
	if err != nil {
		return err
	}
	s.ClearUsedWords()
	return nil
}

// ResetBranch regenerates the next-word set under req.FirstWord.
func (m *Manager) ResetBranch(ctx context.Context, req types.ResetBranchRequest) (types.BranchResponse, error) {
	s, err := m.Session(req.SessionID)
	if err != nil {
		return types.BranchResponse{}, err
	}
	release, err := m.beginGeneration(ctx)
	if err != nil {
		return types.BranchResponse{}, err
	}
	defer release()
	words, err := s.ResetBranch(ctx, toRequest(req.WordRequest), req.FirstWord)
	if err != nil {
		return types.BranchResponse{}, err
	}
	return types.BranchResponse{SessionID: s.ID(), Words: words}, nil
}

// CreateSession starts a new session.
func (m *Manager) CreateSession(_ context.Context) (types.SessionResponse, error) {
	id, err := m.Create()
	if err != nil {
		return types.SessionResponse{}, err
	}
	return types.SessionResponse{SessionID: id}, nil
}

// DeleteSession closes a session.
func (m *Manager) DeleteSession(_ context.Context, id string) error {
	return m.Delete(id)
}

// Health reports liveness and whether a predictor is configured.
func (m *Manager) Health() types.HealthResponse {
	return types.HealthResponse{Status: "healthy", ModelLoaded: m.Ready()}
}
