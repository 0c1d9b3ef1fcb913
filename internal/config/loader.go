package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Config holds runtime parameters for the service. Load applies file values
// on top of Default(); ApplyEnv and command-line flags override both.
type Config struct {
	Addr string `json:"addr" yaml:"addr" toml:"addr"`

	// Logging
	LogLevel     string `json:"log_level" yaml:"log_level" toml:"log_level"`
	LogFormat    string `json:"log_format" yaml:"log_format" toml:"log_format"`
	// LogFile receives the process log instead of stderr. Supports ~.
	LogFile      string `json:"log_file" yaml:"log_file" toml:"log_file"`
	// Per-request log level: off|error|info|debug.
	HTTPLogLevel string `json:"http_log_level" yaml:"http_log_level" toml:"http_log_level"`

	// Predictor
	Backend               string  `json:"backend" yaml:"backend" toml:"backend"`
	BaseURL               string  `json:"base_url" yaml:"base_url" toml:"base_url"`
	Model                 string  `json:"model" yaml:"model" toml:"model"`
	APIKey                string  `json:"api_key" yaml:"api_key" toml:"api_key"`
	RequestTimeoutSeconds int     `json:"request_timeout_seconds" yaml:"request_timeout_seconds" toml:"request_timeout_seconds"`
	ConnectTimeoutSeconds int     `json:"connect_timeout_seconds" yaml:"connect_timeout_seconds" toml:"connect_timeout_seconds"`
	NumPredict            int     `json:"num_predict" yaml:"num_predict" toml:"num_predict"`
	TopK                  int     `json:"top_k" yaml:"top_k" toml:"top_k"`
	Temperature           float32 `json:"temperature" yaml:"temperature" toml:"temperature"`
	RateLimit             float64 `json:"rate_limit" yaml:"rate_limit" toml:"rate_limit"`
	RateBurst             int     `json:"rate_burst" yaml:"rate_burst" toml:"rate_burst"`

	// Word engine
	WordCount     int `json:"word_count" yaml:"word_count" toml:"word_count"`
	MaxRetries    int `json:"max_retries" yaml:"max_retries" toml:"max_retries"`
	HistoryWindow int `json:"history_window" yaml:"history_window" toml:"history_window"`

	// Sessions
	MaxSessions        int `json:"max_sessions" yaml:"max_sessions" toml:"max_sessions"`
	MaxInflight        int `json:"max_inflight" yaml:"max_inflight" toml:"max_inflight"`
	MaxWaitSeconds     int `json:"max_wait_seconds" yaml:"max_wait_seconds" toml:"max_wait_seconds"`
	SessionIdleSeconds int `json:"session_idle_seconds" yaml:"session_idle_seconds" toml:"session_idle_seconds"`

	// HTTP
	MaxBodyBytes         int64    `json:"max_body_bytes" yaml:"max_body_bytes" toml:"max_body_bytes"`
	APITimeoutSeconds    int      `json:"api_timeout_seconds" yaml:"api_timeout_seconds" toml:"api_timeout_seconds"`
	CORSEnabled          bool     `json:"cors_enabled" yaml:"cors_enabled" toml:"cors_enabled"`
	CORSAllowedOrigins   []string `json:"cors_allowed_origins" yaml:"cors_allowed_origins" toml:"cors_allowed_origins"`
	CORSAllowedMethods   []string `json:"cors_allowed_methods" yaml:"cors_allowed_methods" toml:"cors_allowed_methods"`
	CORSAllowedHeaders   []string `json:"cors_allowed_headers" yaml:"cors_allowed_headers" toml:"cors_allowed_headers"`
	ShutdownGraceSeconds int      `json:"shutdown_grace_seconds" yaml:"shutdown_grace_seconds" toml:"shutdown_grace_seconds"`
}

const (
	DefaultOllamaModel     = "llama3.2"
	DefaultOpenRouterModel = "google/gemini-2.0-flash-001"
)

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Addr:                  ":8000",
		LogLevel:              "info",
		LogFormat:             "console",
		HTTPLogLevel:          "off",
		Backend:               "ollama",
		RequestTimeoutSeconds: 30,
		ConnectTimeoutSeconds: 5,
		NumPredict:            128,
		TopK:                  15,
		Temperature:           0.7,
		WordCount:             15,
		MaxRetries:            2,
		HistoryWindow:         10,
		MaxSessions:           64,
		MaxInflight:           16,
		MaxWaitSeconds:        30,
		SessionIdleSeconds:    3600,
		MaxBodyBytes:          1 << 20,
		CORSEnabled:           true,
		CORSAllowedOrigins:    []string{"http://localhost:3000", "http://localhost:5173", "http://127.0.0.1:3000"},
		ShutdownGraceSeconds:  10,
	}
}

// Load reads a configuration file based on its extension and applies it on
// top of Default(). Keys absent from the file keep their defaults.
// Supports: .yaml/.yml, .json, .toml
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, fmt.Errorf("empty config path")
	}
	path, err := ExpandHome(path)
	if err != nil {
		return cfg, err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	case ".json":
		if err := json.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	case ".toml":
		if err := toml.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	default:
		return cfg, fmt.Errorf("unsupported config extension: %s", ext)
	}
	return cfg, nil
}

// Marshal renders cfg in the format named by ext (yaml, json or toml).
func Marshal(cfg Config, format string) ([]byte, error) {
	switch strings.TrimPrefix(strings.ToLower(format), ".") {
	case "yaml", "yml":
		return yaml.Marshal(cfg)
	case "json":
		return json.MarshalIndent(cfg, "", "  ")
	case "toml":
		return toml.Marshal(cfg)
	default:
		return nil, fmt.Errorf("unsupported config format: %s", format)
	}
}

// ApplyEnv overlays WORDGRID_* variables and OPENROUTER_API_KEY onto cfg.
// Malformed numbers are reported, not ignored.
func ApplyEnv(cfg *Config, getenv func(string) string) error {
	if getenv == nil {
		getenv = os.Getenv
	}
	str := func(key string, dst *string) {
		if v := getenv(key); v != "" {
			*dst = v
		}
	}
	var errs []error
	num := func(key string, dst *int) {
		if v := getenv(key); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", key, err))
				return
			}
			*dst = n
		}
	}

	str("WORDGRID_ADDR", &cfg.Addr)
	str("WORDGRID_LOG_LEVEL", &cfg.LogLevel)
	str("WORDGRID_LOG_FORMAT", &cfg.LogFormat)
	str("WORDGRID_BACKEND", &cfg.Backend)
	str("WORDGRID_BASE_URL", &cfg.BaseURL)
	str("WORDGRID_MODEL", &cfg.Model)
	str("WORDGRID_API_KEY", &cfg.APIKey)
	num("WORDGRID_WORD_COUNT", &cfg.WordCount)
	num("WORDGRID_MAX_SESSIONS", &cfg.MaxSessions)
	num("WORDGRID_REQUEST_TIMEOUT_SECONDS", &cfg.RequestTimeoutSeconds)

	// An OpenRouter key alone selects the openai backend.
	if cfg.APIKey == "" {
		if v := getenv("OPENROUTER_API_KEY"); v != "" {
			cfg.APIKey = v
			if getenv("WORDGRID_BACKEND") == "" {
				cfg.Backend = "openai"
			}
		}
	}
	if cfg.Model == "" {
		str("OPENROUTER_MODEL", &cfg.Model)
	}
	return errors.Join(errs...)
}

// ResolvedModel returns the configured model or the backend default.
func (c Config) ResolvedModel() string {
	if c.Model != "" {
		return c.Model
	}
	if c.Backend == "openai" {
		return DefaultOpenRouterModel
	}
	return DefaultOllamaModel
}

// Validate checks ranges and enumerations.
func (c Config) Validate() error {
	var errs []error
	switch c.Backend {
	case "ollama", "openai", "none":
	default:
		errs = append(errs, fmt.Errorf("backend must be ollama, openai or none, got %q", c.Backend))
	}
	if c.Backend == "openai" && c.APIKey == "" {
		errs = append(errs, errors.New("backend openai requires api_key (or OPENROUTER_API_KEY)"))
	}
	if c.WordCount < 1 || c.WordCount > 48 {
		errs = append(errs, fmt.Errorf("word_count must be in 1..48, got %d", c.WordCount))
	}
	if c.MaxRetries < 0 {
		errs = append(errs, fmt.Errorf("max_retries must be >= 0, got %d", c.MaxRetries))
	}
	if c.HistoryWindow < 0 {
		errs = append(errs, fmt.Errorf("history_window must be >= 0, got %d", c.HistoryWindow))
	}
	if c.RateLimit < 0 {
		errs = append(errs, fmt.Errorf("rate_limit must be >= 0, got %v", c.RateLimit))
	}
	switch c.LogFormat {
	case "console", "json":
	default:
		errs = append(errs, fmt.Errorf("log_format must be console or json, got %q", c.LogFormat))
	}
	return errors.Join(errs...)
}

// ExpandHome expands a leading '~' to the user's home directory.
func ExpandHome(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("home dir: %w", err)
	}
	if path == "~" {
		return home, nil
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~/")), nil
}

// Discover returns the first existing file among the standard locations
// (./wordgrid.{toml,yaml,yml,json}, then ~/.config/wordgrid/config.*), or "".
func Discover() string {
	var candidates []string
	for _, dir := range []string{".", "~/.config/wordgrid"} {
		base := "wordgrid"
		if dir != "." {
			base = "config"
		}
		for _, ext := range []string{".toml", ".yaml", ".yml", ".json"} {
			candidates = append(candidates, filepath.Join(dir, base+ext))
		}
	}
	for _, c := range candidates {
		p, err := ExpandHome(c)
		if err != nil {
			continue
		}
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}
