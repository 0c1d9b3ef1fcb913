package ipc

import "wordgrid/pkg/types"

// Op names accepted in Request.Op.
const (
	OpWords         = "words"
	OpRefresh       = "refresh"
	OpGenerateCache = "generate_cache"
	OpCache         = "cache"
	OpClearUsed     = "clear_used"
	OpResetBranch   = "reset_branch"
	OpHealth        = "health"
)

// Request is one inbound frame. Short field tags keep frames small.
type Request struct {
	ID        string              `msgpack:"id"`
	Op        string              `msgpack:"op"`
	SessionID string              `msgpack:"sid,omitempty"`
	History   []types.ChatMessage `msgpack:"h,omitempty"`
	Sentence  []string            `msgpack:"s,omitempty"`
	// Nil means sentence start, matching the HTTP default.
	SentenceStart *bool  `msgpack:"ss,omitempty"`
	FirstWord     string `msgpack:"fw,omitempty"`
}

// Response is one outbound frame.
type Response struct {
	ID        string   `msgpack:"id"`
	OK        bool     `msgpack:"ok"`
	SessionID string   `msgpack:"sid,omitempty"`
	Words     []string `msgpack:"w,omitempty"`
	Cached    []string `msgpack:"cw,omitempty"`
	Used      []string `msgpack:"u,omitempty"`
	Status    string   `msgpack:"st,omitempty"`
	TimeTaken int64    `msgpack:"t,omitempty"`
	FromCache bool     `msgpack:"fc,omitempty"`
	// Set on health responses when a predictor backend is configured.
	ModelLoaded bool   `msgpack:"ml,omitempty"`
	Error       string `msgpack:"e,omitempty"`
	Code        int    `msgpack:"c,omitempty"`
}

func (r Request) wordRequest() types.WordRequest {
	start := true
	if r.SentenceStart != nil {
		start = *r.SentenceStart
	}
	return types.WordRequest{
		SessionID:       r.SessionID,
		ChatHistory:     r.History,
		CurrentSentence: r.Sentence,
		IsSentenceStart: start,
	}
}
