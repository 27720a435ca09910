package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/calctutor/internal/llm"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadConfig_MissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultServerAddr, cfg.ServerAddr())
	assert.Empty(t, cfg.StorePath())

	lvl, err := cfg.LogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelInfo, lvl)
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	_, err := LoadConfig("")
	require.Error(t, err)
}

func TestLoadConfig_AllSections(t *testing.T) {
	path := writeConfig(t, `
[store]
path = "/tmp/ct.db"

[server]
addr = ":9090"

[log]
level = "debug"

[llm]
provider = "openai"
model = "gpt-4o"
timeout = "5s"
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/ct.db", cfg.StorePath())
	assert.Equal(t, ":9090", cfg.ServerAddr())
	lvl, err := cfg.LogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, lvl)

	t.Setenv("CALCTUTOR_LLM_PROVIDER", "")
	lc := llm.DefaultConfig()
	require.NoError(t, cfg.ApplyLLM(&lc))
	assert.Equal(t, "openai", lc.Provider)
	assert.Equal(t, "gpt-4o", lc.Model())
	assert.Equal(t, 5*time.Second, lc.Timeout)
}

func TestLoadConfig_UnknownKey(t *testing.T) {
	path := writeConfig(t, "[server]\nport = 80\n")
	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "server.port")
}

func TestLoadConfig_Malformed(t *testing.T) {
	path := writeConfig(t, "[server\naddr = ")
	_, err := LoadConfig(path)
	require.Error(t, err)
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{"debug", slog.LevelDebug, false},
		{"INFO", slog.LevelInfo, false},
		{" warn ", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"loud", slog.LevelInfo, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestApplyLLM(t *testing.T) {
	str := func(s string) *string { return &s }

	t.Run("unknown provider", func(t *testing.T) {
		t.Setenv("CALCTUTOR_LLM_PROVIDER", "")
		cfg := FileConfig{LLM: LLMConfig{Provider: str("skynet")}}
		lc := llm.DefaultConfig()
		err := cfg.ApplyLLM(&lc)
		require.ErrorIs(t, err, ErrUnknownProvider)
	})

	t.Run("env provider wins", func(t *testing.T) {
		t.Setenv("CALCTUTOR_LLM_PROVIDER", "gemini")
		cfg := FileConfig{LLM: LLMConfig{Provider: str("openai")}}
		lc := llm.DefaultConfig()
		lc.Provider = "gemini"
		require.NoError(t, cfg.ApplyLLM(&lc))
		assert.Equal(t, "gemini", lc.Provider)
	})

	t.Run("bad timeout", func(t *testing.T) {
		lc := llm.DefaultConfig()
		require.Error(t, FileConfig{LLM: LLMConfig{Timeout: str("soon")}}.ApplyLLM(&lc))
		require.Error(t, FileConfig{LLM: LLMConfig{Timeout: str("-1s")}}.ApplyLLM(&lc))
	})

	t.Run("empty section leaves defaults", func(t *testing.T) {
		lc := llm.DefaultConfig()
		require.NoError(t, FileConfig{}.ApplyLLM(&lc))
		assert.Equal(t, llm.DefaultConfig(), lc)
	})
}

func TestXDGPaths(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("XDG_DATA_HOME", dir)
	assert.Equal(t, filepath.Join(dir, "calctutor", "config.toml"), DefaultConfigPath())
	assert.Equal(t, filepath.Join(dir, "calctutor", "calctutor.log"), DefaultLogPath())
}
