package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"wordgrid/internal/config"
)

// globalFlags are shared by every subcommand.
type globalFlags struct {
	configPath string
	logLevel   string
	logFormat  string
	backend    string
	baseURL    string
	model      string
	wordCount  int
}

func newRootCmd() *cobra.Command {
	g := &globalFlags{}
	root := &cobra.Command{
		Use:           "wordgrid",
		Short:         "Next-word suggestion service for grid-based AAC keyboards",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	pf := root.PersistentFlags()
	pf.StringVar(&g.configPath, "config", "", "Config file (.yaml|.yml|.json|.toml); defaults to ./wordgrid.* or ~/.config/wordgrid/config.*")
	pf.StringVar(&g.logLevel, "log-level", "", "Log level: debug|info|warn|error")
	pf.StringVar(&g.logFormat, "log-format", "", "Log format: console|json")
	pf.StringVar(&g.backend, "backend", "", "Predictor backend: ollama|openai|none")
	pf.StringVar(&g.baseURL, "base-url", "", "Predictor base URL")
	pf.StringVar(&g.model, "model", "", "Predictor model name")
	pf.IntVar(&g.wordCount, "word-count", 0, "Words per candidate set (1..48)")

	root.AddCommand(newServeCmd(g), newIPCCmd(g), newPredictCmd(g), newConfigCmd(g))
	return root
}

// loadConfig resolves defaults, the config file, the environment and the
// flags that were explicitly set, in that order, and validates the result.
func loadConfig(g *globalFlags, flags *pflag.FlagSet) (config.Config, error) {
	path := g.configPath
	if path == "" {
		path = config.Discover()
	}
	cfg := config.Default()
	if path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return cfg, fmt.Errorf("load config: %w", err)
		}
	}
	if err := config.ApplyEnv(&cfg, os.Getenv); err != nil {
		return cfg, fmt.Errorf("environment: %w", err)
	}
	set := func(name string, fn func()) {
		if f := flags.Lookup(name); f != nil && f.Changed {
			fn()
		}
	}
	set("log-level", func() { cfg.LogLevel = g.logLevel })
	set("log-format", func() { cfg.LogFormat = g.logFormat })
	set("backend", func() { cfg.Backend = g.backend })
	set("base-url", func() { cfg.BaseURL = g.baseURL })
	set("model", func() { cfg.Model = g.model })
	set("word-count", func() { cfg.WordCount = g.wordCount })
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// splitCSV splits a comma-separated list, trimming blanks and dropping empties.
func splitCSV(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
