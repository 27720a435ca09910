package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open("file:" + t.Name() + "?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases,
		// so journal_mode is checked in TestOpenFileUsesWAL.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestOpenFileUsesWAL(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "calctutor.db"))
	require.NoError(t, err)
	defer s.Close()

	var mode string
	require.NoError(t, s.DB().QueryRow("PRAGMA journal_mode").Scan(&mode))
	assert.Equal(t, "wal", mode)
}

func TestMigrationCreatesTables(t *testing.T) {
	s := openTestStore(t)
	for _, table := range []string{"attempt_events", "reveal_events", "llm_request_events", "event_sequence"} {
		var name string
		err := s.DB().QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		if err != nil {
			t.Errorf("table %s: %v", table, err)
		}
	}
}

func TestSequenceCounter(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	for want := int64(1); want <= 5; want++ {
		got, err := s.seq.Next(ctx)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestAppendAndQueryAttempts(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	attempts := []AttemptEventData{
		{SessionID: "s1", Function: "x^2", Technique: "power", Answer: "x^3", CorrectAnswer: "x^3/3", Kind: "incorrect", Attempt: 1},
		{SessionID: "s1", Function: "x^2", Technique: "power", Answer: "x^3/3", CorrectAnswer: "x^3/3", Kind: "exact", Correct: true, Attempt: 2},
		{SessionID: "s2", Function: "sin(x)", Technique: "trig", Answer: "cos(x)", CorrectAnswer: "-cos(x)", Kind: "partial", Reason: "sign", Attempt: 1},
	}
	for _, a := range attempts {
		require.NoError(t, repo.AppendAttempt(ctx, a))
	}

	all, err := repo.QueryAttempts(ctx, QueryOpts{})
	require.NoError(t, err)
	require.Len(t, all, 3)

	// Newest first.
	assert.Equal(t, "s2", all[0].SessionID)
	assert.Equal(t, "sign", all[0].Reason)
	assert.True(t, all[1].Correct)
	assert.False(t, all[2].Correct)
	assert.Greater(t, all[0].Sequence, all[1].Sequence)
	assert.False(t, all[0].Timestamp.IsZero())

	limited, err := repo.QueryAttempts(ctx, QueryOpts{Limit: 1})
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Equal(t, all[0].Sequence, limited[0].Sequence)

	power, err := repo.QueryAttempts(ctx, QueryOpts{Technique: "power"})
	require.NoError(t, err)
	assert.Len(t, power, 2)

	session, err := repo.QueryAttempts(ctx, QueryOpts{SessionID: "s2"})
	require.NoError(t, err)
	assert.Len(t, session, 1)

	after, err := repo.QueryAttempts(ctx, QueryOpts{After: all[1].Sequence})
	require.NoError(t, err)
	require.Len(t, after, 1)
	assert.Equal(t, "s2", after[0].SessionID)

	future, err := repo.QueryAttempts(ctx, QueryOpts{From: time.Now().Add(time.Hour)})
	require.NoError(t, err)
	assert.Empty(t, future)
}

func TestTechniqueStats(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	require.NoError(t, repo.AppendAttempt(ctx, AttemptEventData{Technique: "power", Kind: "incorrect", Attempt: 1}))
	require.NoError(t, repo.AppendAttempt(ctx, AttemptEventData{Technique: "power", Kind: "exact", Correct: true, Attempt: 2}))
	require.NoError(t, repo.AppendAttempt(ctx, AttemptEventData{Technique: "trig", Kind: "partial", Attempt: 1}))
	require.NoError(t, repo.AppendReveal(ctx, RevealEventData{Technique: "trig", Kind: RevealHint, Index: 0, Text: "h"}))
	require.NoError(t, repo.AppendReveal(ctx, RevealEventData{Technique: "trig", Kind: RevealHint, Index: 1, Text: "h"}))
	require.NoError(t, repo.AppendReveal(ctx, RevealEventData{Technique: "parts", Kind: RevealStep, Index: 0, Text: "s"}))

	stats, err := repo.TechniqueStats(ctx)
	require.NoError(t, err)
	require.Len(t, stats, 3)

	assert.Equal(t, TechniqueStat{Technique: "parts", Steps: 1}, stats[0])
	assert.Equal(t, TechniqueStat{Technique: "power", Attempts: 2, Correct: 1}, stats[1])
	assert.Equal(t, TechniqueStat{Technique: "trig", Attempts: 1, Partial: 1, Hints: 2}, stats[2])
	assert.InDelta(t, 0.5, stats[1].Accuracy(), 1e-9)
	assert.Zero(t, stats[0].Accuracy())
}

func TestAppendAndQueryLLMEvents(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	require.NoError(t, repo.AppendLLMRequest(ctx, LLMRequestEventData{
		Provider: "mock", Model: "mock-model", Purpose: "coach",
		InputTokens: 10, OutputTokens: 20, LatencyMs: 5, Success: true,
	}))
	require.NoError(t, repo.AppendLLMRequest(ctx, LLMRequestEventData{
		Provider: "mock", Model: "mock-model", Purpose: "coach", ErrorMessage: "boom",
	}))

	events, err := repo.QueryLLMEvents(ctx, QueryOpts{})
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "boom", events[0].ErrorMessage)
	assert.False(t, events[0].Success)
	assert.True(t, events[1].Success)
	assert.Equal(t, 20, events[1].OutputTokens)
}

func TestLLMUsageByModel(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	for _, e := range []LLMRequestEventData{
		{Model: "gpt-4o-mini", InputTokens: 10, OutputTokens: 5, LatencyMs: 100},
		{Model: "gpt-4o-mini", InputTokens: 20, OutputTokens: 5, LatencyMs: 300},
		{Model: "claude-haiku-4-5", InputTokens: 1, OutputTokens: 1, LatencyMs: 50},
	} {
		require.NoError(t, repo.AppendLLMRequest(ctx, e))
	}

	usage, err := repo.LLMUsageByModel(ctx)
	require.NoError(t, err)
	require.Len(t, usage, 2)
	assert.Equal(t, ModelUsage{Model: "gpt-4o-mini", Calls: 2, InputTokens: 30, OutputTokens: 10, AvgLatencyMs: 200}, usage[0])
	assert.Equal(t, "claude-haiku-4-5", usage[1].Model)
}

func TestEventsShareSequence(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	require.NoError(t, repo.AppendAttempt(ctx, AttemptEventData{Technique: "power", Kind: "exact"}))
	require.NoError(t, repo.AppendLLMRequest(ctx, LLMRequestEventData{Provider: "mock"}))
	require.NoError(t, repo.AppendAttempt(ctx, AttemptEventData{Technique: "power", Kind: "exact"}))

	attempts, err := repo.QueryAttempts(ctx, QueryOpts{})
	require.NoError(t, err)
	llm, err := repo.QueryLLMEvents(ctx, QueryOpts{})
	require.NoError(t, err)

	assert.Equal(t, int64(3), attempts[0].Sequence)
	assert.Equal(t, int64(2), llm[0].Sequence)
	assert.Equal(t, int64(1), attempts[1].Sequence)
}

func TestReset(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	require.NoError(t, repo.AppendAttempt(ctx, AttemptEventData{Technique: "power", Kind: "exact"}))
	require.NoError(t, repo.AppendReveal(ctx, RevealEventData{Technique: "power", Kind: RevealHint}))
	require.NoError(t, repo.AppendLLMRequest(ctx, LLMRequestEventData{Provider: "mock"}))

	require.NoError(t, s.Reset(ctx))

	attempts, err := repo.QueryAttempts(ctx, QueryOpts{})
	require.NoError(t, err)
	assert.Empty(t, attempts)
	stats, err := repo.TechniqueStats(ctx)
	require.NoError(t, err)
	assert.Empty(t, stats)

	// The sequence keeps counting after a reset.
	require.NoError(t, repo.AppendAttempt(ctx, AttemptEventData{Technique: "power", Kind: "exact"}))
	attempts, err = repo.QueryAttempts(ctx, QueryOpts{})
	require.NoError(t, err)
	require.Len(t, attempts, 1)
	assert.Equal(t, int64(4), attempts[0].Sequence)
}

func TestDefaultDBPath(t *testing.T) {
	dir := t.TempDir()

	t.Run("env override", func(t *testing.T) {
		want := filepath.Join(dir, "custom", "db.sqlite")
		t.Setenv("CALCTUTOR_DB", want)
		got, err := DefaultDBPath()
		require.NoError(t, err)
		assert.Equal(t, want, got)
		assert.DirExists(t, filepath.Dir(want))
	})

	t.Run("xdg data home", func(t *testing.T) {
		t.Setenv("CALCTUTOR_DB", "")
		t.Setenv("XDG_DATA_HOME", dir)
		got, err := DefaultDBPath()
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "calctutor", "calctutor.db"), got)
	})
}
