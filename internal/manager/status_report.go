package manager

import (
	"sort"
	"time"

	"wordgrid/pkg/types"
)

// Status builds a detailed status response for /status.
func (m *Manager) Status() types.StatusResponse {
	m.mu.RLock()
	defer m.mu.RUnlock()
	now := time.Now()
	resp := types.StatusResponse{
		MaxSessions:    m.maxSessions,
		Predictor:      m.backend,
		WordCount:      m.gen.WordCount(),
		EvictionsTotal: m.evictions.Load(),
		UptimeSeconds:  int64(now.Sub(m.startTime).Seconds()),
		ServerTimeUnix: now.Unix(),
	}
	if !m.gen.HasPredictor() {
		resp.Predictor = "none"
	}
	resp.Sessions = make([]types.SessionStatus, 0, len(m.sessions))
	for id, s := range m.sessions {
		st := s.Stats()
		resp.Sessions = append(resp.Sessions, types.SessionStatus{
			ID:              id,
			LastUsed:        st.LastUsed.Unix(),
			UsedWords:       st.UsedWords,
			LayerWords:      st.LayerWords,
			Branches:        st.Branches,
			CacheGenerating: st.CacheGenerating,
		})
	}
	sort.Slice(resp.Sessions, func(i, j int) bool { return resp.Sessions[i].ID < resp.Sessions[j].ID })
	return resp
}
