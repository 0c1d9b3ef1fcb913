package types

// ChatMessage is one turn of the surrounding conversation.
type ChatMessage struct {
	// Message text as displayed in the chat.
	// example: Do you want some tea?
	Text string `json:"text" msgpack:"text" example:"Do you want some tea?"`
	// True when the AAC user authored the message.
	// example: false
	IsUser bool `json:"is_user" msgpack:"is_user" example:"false"`
}

// WordRequest is the payload for /api/words, /api/refresh and /api/generate-cache.
type WordRequest struct {
	// Optional session identifier. Empty selects the shared default session.
	// example: 1f0c6a4e-2d7b-4b8e-9a55-0d2f1f3f7c11
	SessionID string `json:"session_id,omitempty" example:"1f0c6a4e-2d7b-4b8e-9a55-0d2f1f3f7c11"`
	// Conversation so far, oldest first. Only the most recent messages are used.
	ChatHistory []ChatMessage `json:"chat_history"`
	// Words already committed to the sentence being built.
	// example: ["I","want"]
	CurrentSentence []string `json:"current_sentence"`
	// True when the next word starts a new sentence. Defaults to true when omitted.
	// example: false
	IsSentenceStart bool `json:"is_sentence_start"`
}

// ResetBranchRequest is the payload for /api/reset-branch.
type ResetBranchRequest struct {
	WordRequest
	// First-level word whose second-level predictions are regenerated.
	// example: help
	FirstWord string `json:"first_word" example:"help"`
}

// SessionRequest carries only a session id (used by /api/clear-used).
type SessionRequest struct {
	SessionID string `json:"session_id,omitempty"`
}

// WordResponse is returned by /api/words and /api/refresh.
type WordResponse struct {
	// Session the words were generated for.
	SessionID string `json:"session_id"`
	// Candidates ordered from most to least likely. Always exactly the configured word count.
	// example: ["want","need","feel"]
	Words []string `json:"words"`
	// Cached alternative words currently held by the session (may be empty).
	CachedWords []string `json:"cached_words"`
	// Wall-clock generation time in milliseconds.
	// example: 412
	DurationMS int64 `json:"duration_ms" example:"412"`
	// True when the words were served from the background cache.
	FromCache bool `json:"from_cache,omitempty"`
}

// CacheGenerateResponse is returned by /api/generate-cache.
type CacheGenerateResponse struct {
	SessionID   string   `json:"session_id"`
	CachedWords []string `json:"cached_words"`
	// "generated" when this call ran a generation, "in_progress" when another one was already running.
	// example: generated
	Status string `json:"status" example:"generated"`
}

// CacheResponse is returned by GET /api/cache.
type CacheResponse struct {
	SessionID   string   `json:"session_id"`
	CachedWords []string `json:"cached_words"`
	// Sentence tokens the cache was computed for.
	CacheContext []string `json:"cache_context"`
	// Normalized words shown since the current sentence began, sorted.
	UsedWords []string `json:"used_words"`
}

// BranchResponse is returned by /api/reset-branch.
type BranchResponse struct {
	SessionID string   `json:"session_id"`
	Words     []string `json:"words"`
}

// SessionResponse is returned by POST /api/sessions.
type SessionResponse struct {
	// example: 1f0c6a4e-2d7b-4b8e-9a55-0d2f1f3f7c11
	SessionID string `json:"session_id"`
}

// ClearResponse is returned by /api/clear-used and DELETE /api/sessions/{id}.
type ClearResponse struct {
	SessionID string `json:"session_id"`
	// example: cleared
	Status string `json:"status" example:"cleared"`
}

// HealthResponse is returned by /api/health.
type HealthResponse struct {
	// example: healthy
	Status string `json:"status" example:"healthy"`
	// True when a predictor backend is configured.
	ModelLoaded bool `json:"model_loaded"`
}

// ErrorResponse is a consistent JSON error payload.
type ErrorResponse struct {
	// Error message.
	// example: invalid JSON body
	Error string `json:"error" example:"invalid JSON body"`
	// HTTP status code.
	// example: 400
	Code int `json:"code" example:"400"`
}

// SessionStatus summarizes one live session for /status.
type SessionStatus struct {
	// example: default
	ID string `json:"id" example:"default"`
	// Last time this session served a request (unix seconds).
	// example: 1700000000
	LastUsed int64 `json:"last_used_unix" example:"1700000000"`
	// Number of normalized words shown in the current sentence.
	UsedWords int `json:"used_words"`
	// Number of words excluded in the current layer.
	LayerWords int `json:"layer_words"`
	// Number of lookahead branches built in the current sentence.
	Branches int `json:"branches"`
	// True while a background cache generation is running.
	CacheGenerating bool `json:"cache_generating"`
}

// StatusResponse is returned by GET /status.
type StatusResponse struct {
	Sessions []SessionStatus `json:"sessions"`
	// Maximum concurrent sessions (0 = unlimited).
	// example: 64
	MaxSessions int `json:"max_sessions" example:"64"`
	// Predictor backend in use.
	// example: ollama
	Predictor string `json:"predictor" example:"ollama"`
	// Words per candidate set.
	// example: 15
	WordCount int `json:"word_count" example:"15"`
	// Total sessions evicted for inactivity.
	EvictionsTotal uint64 `json:"evictions_total"`
	// Uptime of the server in seconds.
	// example: 3600
	UptimeSeconds int64 `json:"uptime_seconds" example:"3600"`
	// Server time in unix seconds.
	ServerTimeUnix int64 `json:"server_time_unix"`
}
