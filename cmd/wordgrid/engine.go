package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"

	"wordgrid/internal/config"
	"wordgrid/internal/manager"
	"wordgrid/internal/predictor"
	"wordgrid/internal/suggest"
)

// newLogger builds the process logger. The returned closer releases the log
// file, if any.
func newLogger(cfg config.Config, stderr io.Writer) (zerolog.Logger, io.Closer, error) {
	var out io.Writer = stderr
	var closer io.Closer = nopCloser{}
	if cfg.LogFile != "" {
		path, err := config.ExpandHome(cfg.LogFile)
		if err != nil {
			return zerolog.Nop(), closer, err
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return zerolog.Nop(), closer, fmt.Errorf("open log file: %w", err)
		}
		out, closer = f, f
	}
	if cfg.LogFormat == "console" {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}
	lvl, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil || cfg.LogLevel == "" {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(out).Level(lvl).With().Timestamp().Logger(), closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// newPredictor returns nil for the "none" backend; the engine then serves
// its fallback vocabulary only.
func newPredictor(cfg config.Config) (predictor.Predictor, error) {
	if cfg.Backend == "none" {
		return nil, nil
	}
	return predictor.New(predictor.Options{
		Backend:        predictor.Backend(cfg.Backend),
		BaseURL:        cfg.BaseURL,
		Model:          cfg.ResolvedModel(),
		APIKey:         cfg.APIKey,
		RequestTimeout: time.Duration(cfg.RequestTimeoutSeconds) * time.Second,
		ConnectTimeout: time.Duration(cfg.ConnectTimeoutSeconds) * time.Second,
		NumPredict:     cfg.NumPredict,
		TopK:           cfg.TopK,
		Temperature:    cfg.Temperature,
		RateLimit:      cfg.RateLimit,
		Burst:          cfg.RateBurst,
	})
}

// engine bundles the predictor and the session manager built from cfg.
type engine struct {
	pred predictor.Predictor
	mgr  *manager.Manager
}

func newEngine(cfg config.Config, log zerolog.Logger) (*engine, error) {
	p, err := newPredictor(cfg)
	if err != nil {
		return nil, fmt.Errorf("predictor: %w", err)
	}
	gen, err := suggest.NewGenerator(p,
		suggest.WithWordCount(cfg.WordCount),
		suggest.WithMaxRetries(cfg.MaxRetries),
		suggest.WithLogger(log),
	)
	if err != nil {
		if p != nil {
			_ = p.Close()
		}
		return nil, err
	}
	mgr := manager.NewWithConfig(manager.ManagerConfig{
		Generator:     gen,
		Backend:       cfg.Backend,
		MaxSessions:   cfg.MaxSessions,
		MaxInflight:   cfg.MaxInflight,
		MaxWait:       time.Duration(cfg.MaxWaitSeconds) * time.Second,
		IdleTTL:       time.Duration(cfg.SessionIdleSeconds) * time.Second,
		HistoryWindow: cfg.HistoryWindow,
		Logger:        log,
		Publisher:     suggest.LogPublisher{Log: log},
	})
	log.Info().
		Str("backend", cfg.Backend).
		Str("model", cfg.ResolvedModel()).
		Int("word_count", gen.WordCount()).
		Bool("predictor", p != nil).
		Msg("engine ready")
	return &engine{pred: p, mgr: mgr}, nil
}

// Close stops the sessions before releasing the shared predictor.
func (e *engine) Close() error {
	err := e.mgr.Close()
	if e.pred != nil {
		if cerr := e.pred.Close(); err == nil {
			err = cerr
		}
	}
	return err
}
