package manager

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wordgrid/internal/suggest"
	"wordgrid/pkg/types"
)

func TestOps_WordFlow(t *testing.T) {
	m := newTestManager(t, ManagerConfig{Backend: "ollama"})
	ctx := context.Background()

	res, err := m.Words(ctx, types.WordRequest{IsSentenceStart: true})
	require.NoError(t, err)
	assert.Equal(t, DefaultSessionID, res.SessionID)
	assert.Len(t, res.Words, suggest.DefaultWordCount)
	assert.Equal(t, []string{"tea", "coffee"}, res.Words[:2])
	assert.NotNil(t, res.CachedWords)

	cache, err := m.Cache(ctx, "")
	require.NoError(t, err)
	assert.Contains(t, cache.UsedWords, "tea")
	assert.NotNil(t, cache.CachedWords)
	assert.NotNil(t, cache.CacheContext)

	gen, err := m.GenerateCache(ctx, types.WordRequest{IsSentenceStart: true})
	require.NoError(t, err)
	assert.Equal(t, "generated", gen.Status)
	assert.Len(t, gen.CachedWords, suggest.DefaultWordCount)

	refresh, err := m.Refresh(ctx, types.WordRequest{IsSentenceStart: true})
	require.NoError(t, err)
	assert.True(t, refresh.FromCache)
	assert.Equal(t, gen.CachedWords, refresh.Words)

	br, err := m.ResetBranch(ctx, types.ResetBranchRequest{FirstWord: "I"})
	require.NoError(t, err)
	assert.Len(t, br.Words, suggest.DefaultWordCount)

	_, err = m.ResetBranch(ctx, types.ResetBranchRequest{})
	assert.True(t, suggest.IsInvalidRequest(err))

	require.NoError(t, m.ClearUsed(ctx, ""))
	cache, err = m.Cache(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, cache.UsedWords)

	st := m.Status()
	require.Len(t, st.Sessions, 1)
	assert.Equal(t, DefaultSessionID, st.Sessions[0].ID)
	assert.Equal(t, "ollama", st.Predictor)
	assert.Equal(t, suggest.DefaultWordCount, st.WordCount)
}

type slowPredictor struct{ delay time.Duration }

func (p slowPredictor) Predict(ctx context.Context, _ string) (string, error) {
	select {
	case <-time.After(p.delay):
		return `["tea","coffee"]`, nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func (slowPredictor) Close() error { return nil }

func TestOps_GenerateCacheCallerDeadlineReportsInProgress(t *testing.T) {
	gen, err := suggest.NewGenerator(slowPredictor{delay: 200 * time.Millisecond})
	require.NoError(t, err)
	m := newTestManager(t, ManagerConfig{Generator: gen})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	res, err := m.GenerateCache(ctx, types.WordRequest{IsSentenceStart: true})
	require.NoError(t, err)
	assert.Equal(t, "in_progress", res.Status)
	assert.Empty(t, res.CachedWords)

	assert.Eventually(t, func() bool {
		c, err := m.Cache(context.Background(), "")
		return err == nil && len(c.CachedWords) == suggest.DefaultWordCount
	}, 5*time.Second, 20*time.Millisecond, "generation completes after the caller left")
}

func TestOps_SessionLifecycle(t *testing.T) {
	m := newTestManager(t, ManagerConfig{})
	ctx := context.Background()
	sr, err := m.CreateSession(ctx)
	require.NoError(t, err)

	res, err := m.Words(ctx, types.WordRequest{SessionID: sr.SessionID, IsSentenceStart: true})
	require.NoError(t, err)
	assert.Equal(t, sr.SessionID, res.SessionID)

	require.NoError(t, m.DeleteSession(ctx, sr.SessionID))
	_, err = m.Words(ctx, types.WordRequest{SessionID: sr.SessionID})
	assert.True(t, IsSessionNotFound(err))
	_, err = m.Cache(ctx, sr.SessionID)
	assert.True(t, IsSessionNotFound(err))
	assert.True(t, IsSessionNotFound(m.ClearUsed(ctx, sr.SessionID)))
}

func TestOps_Health(t *testing.T) {
	m := newTestManager(t, ManagerConfig{})
	h := m.Health()
	assert.Equal(t, "healthy", h.Status)
	assert.True(t, h.ModelLoaded)
}
