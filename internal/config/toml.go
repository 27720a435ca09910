// Package config loads the optional TOML configuration file and merges it
// with environment overrides.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/abhisek/calctutor/internal/llm"
)

// DefaultServerAddr is the listen address for "serve" when nothing else is set.
const DefaultServerAddr = "127.0.0.1:8080"

// ErrUnknownProvider is returned when [llm] provider names no known backend.
var ErrUnknownProvider = llm.ErrUnknownProvider

// FileConfig represents the TOML configuration file. Unset keys stay nil so
// they never override defaults or environment.
type FileConfig struct {
	Store  StoreConfig  `toml:"store"`
	Server ServerConfig `toml:"server"`
	Log    LogConfig    `toml:"log"`
	LLM    LLMConfig    `toml:"llm"`
}

type StoreConfig struct {
	Path *string `toml:"path"`
}

type ServerConfig struct {
	Addr *string `toml:"addr"`
}

type LogConfig struct {
	Level *string `toml:"level"`
}

type LLMConfig struct {
	Provider *string `toml:"provider"`
	Model    *string `toml:"model"`
	Timeout  *string `toml:"timeout"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return FileConfig{}, fmt.Errorf("unknown config keys: %s", strings.Join(keys, ", "))
	}
	return cfg, nil
}

// ServerAddr returns the configured listen address or the default.
func (c FileConfig) ServerAddr() string {
	if c.Server.Addr != nil && *c.Server.Addr != "" {
		return *c.Server.Addr
	}
	return DefaultServerAddr
}

// StorePath returns the configured database path, or "" to use the default.
func (c FileConfig) StorePath() string {
	if c.Store.Path != nil {
		return *c.Store.Path
	}
	return ""
}

// LogLevel returns the configured level, defaulting to info.
func (c FileConfig) LogLevel() (slog.Level, error) {
	if c.Log.Level == nil {
		return slog.LevelInfo, nil
	}
	return ParseLevel(*c.Log.Level)
}

// ParseLevel parses debug, info, warn or error (case-insensitive).
func ParseLevel(s string) (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q", s)
	}
	return lvl, nil
}

// ApplyLLM layers the [llm] section over cfg. Environment variables take
// precedence: a provider set through CALCTUTOR_LLM_PROVIDER is not replaced.
func (c FileConfig) ApplyLLM(cfg *llm.Config) error {
	if c.LLM.Provider != nil && os.Getenv("CALCTUTOR_LLM_PROVIDER") == "" {
		p := strings.ToLower(strings.TrimSpace(*c.LLM.Provider))
		if !slices.Contains(llm.Providers(), p) {
			return fmt.Errorf("%w: %q", ErrUnknownProvider, p)
		}
		cfg.Provider = p
	}
	if c.LLM.Model != nil && *c.LLM.Model != "" {
		cfg.SetModel(*c.LLM.Model)
	}
	if c.LLM.Timeout != nil {
		d, err := time.ParseDuration(*c.LLM.Timeout)
		if err != nil {
			return fmt.Errorf("invalid llm timeout: %w", err)
		}
		if d <= 0 {
			return errors.New("llm timeout must be positive")
		}
		cfg.Timeout = d
	}
	return nil
}
