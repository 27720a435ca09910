package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/calctutor/internal/coach"
	"github.com/abhisek/calctutor/internal/config"
	"github.com/abhisek/calctutor/internal/llm"
	"github.com/abhisek/calctutor/internal/store"
)

var (
	fileCfg config.FileConfig
	logger  = slog.Default()
	logFile *os.File
)

// setup loads the config file and installs the default logger. The TUI
// logs to a file because it owns the terminal; serve logs JSON.
func setup(cmd *cobra.Command, _ []string) error {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		path = config.DefaultConfigPath()
	}
	cfg, err := config.LoadConfig(path)
	if err != nil {
		return err
	}
	fileCfg = cfg

	level, err := fileCfg.LogLevel()
	if err != nil {
		return err
	}
	if s, _ := cmd.Flags().GetString("log-level"); s != "" {
		if level, err = config.ParseLevel(s); err != nil {
			return err
		}
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	switch cmd.Name() {
	case "serve":
		handler = slog.NewJSONHandler(os.Stderr, opts)
	case "calctutor", "play":
		handler = slog.NewTextHandler(openLogFile(), opts)
	default:
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	logger = slog.New(handler)
	slog.SetDefault(logger)
	return nil
}

// openLogFile opens the TUI log, discarding logs if that fails.
func openLogFile() io.Writer {
	path := config.DefaultLogPath()
	if err := store.EnsureDir(path); err != nil {
		return io.Discard
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return io.Discard
	}
	logFile = f
	return f
}

func closeLog() {
	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then CALCTUTOR_DB, then [store] path from the config, then the XDG default.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if os.Getenv("CALCTUTOR_DB") == "" {
		if p := fileCfg.StorePath(); p != "" {
			return p, store.EnsureDir(p)
		}
	}
	return store.DefaultDBPath()
}

// openStore opens the resolved database.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return st, nil
}

var errNoProvider = errors.New("no LLM provider configured")

// llmConfig resolves provider settings from the environment and the
// [llm] config section.
func llmConfig() (llm.Config, error) {
	cfg, ok := llm.ResolveConfig()
	if !ok {
		cfg = llm.DefaultConfig()
	}
	if err := fileCfg.ApplyLLM(&cfg); err != nil {
		return llm.Config{}, err
	}
	if cfg.Provider == "" {
		return llm.Config{}, errNoProvider
	}
	return cfg, nil
}

// newCoach builds the coach service, or returns errNoProvider when no LLM
// is configured. repo may be nil.
func newCoach(ctx context.Context, repo store.EventRepo) (*coach.Service, llm.Provider, error) {
	cfg, err := llmConfig()
	if err != nil {
		return nil, nil, err
	}
	provider, err := llm.NewProvider(ctx, cfg, repo, logger)
	if err != nil {
		return nil, nil, err
	}
	coachCfg := coach.DefaultConfig()
	coachCfg.Timeout = cfg.Timeout
	return coach.NewService(provider, coachCfg), provider, nil
}
