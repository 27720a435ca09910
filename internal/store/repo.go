package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit     int       // max results (0 = unlimited)
	After     int64     // sequence > After
	Technique string    // exact technique match, "" = any
	SessionID string    // exact session match, "" = any
	From      time.Time // timestamp >= From
}

// AttemptEventData captures one graded submission.
type AttemptEventData struct {
	SessionID     string
	Function      string
	Technique     string
	Answer        string
	CorrectAnswer string
	Kind          string
	Reason        string
	Correct       bool
	Attempt       int
}

// AttemptEvent is a stored attempt.
type AttemptEvent struct {
	Sequence  int64
	Timestamp time.Time
	AttemptEventData
}

// RevealKind distinguishes hint reveals from step reveals.
type RevealKind string

const (
	RevealHint RevealKind = "hint"
	RevealStep RevealKind = "step"
)

// RevealEventData captures one hint or step shown to the learner.
type RevealEventData struct {
	SessionID string
	Technique string
	Kind      RevealKind
	Index     int
	Text      string
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
}

// LLMRequestEvent is a stored LLM request.
type LLMRequestEvent struct {
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// ModelUsage aggregates LLM token usage for one model.
type ModelUsage struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// TechniqueStat aggregates attempts for one technique.
type TechniqueStat struct {
	Technique string
	Attempts  int
	Correct   int
	Partial   int
	Hints     int
	Steps     int
}

// Accuracy returns Correct/Attempts, or 0 with no attempts.
func (s TechniqueStat) Accuracy() float64 {
	if s.Attempts == 0 {
		return 0
	}
	return float64(s.Correct) / float64(s.Attempts)
}

// EventRepo provides append and query access to practice events.
type EventRepo interface {
	// AppendAttempt records a graded submission.
	AppendAttempt(ctx context.Context, data AttemptEventData) error

	// AppendReveal records a hint or step reveal.
	AppendReveal(ctx context.Context, data RevealEventData) error

	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryAttempts returns attempts newest first.
	QueryAttempts(ctx context.Context, opts QueryOpts) ([]AttemptEvent, error)

	// QueryLLMEvents returns LLM request events newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestEvent, error)

	// LLMUsageByModel aggregates LLM events per model, most calls first.
	LLMUsageByModel(ctx context.Context) ([]ModelUsage, error)

	// TechniqueStats aggregates attempts and reveals per technique, ordered
	// by technique name.
	TechniqueStats(ctx context.Context) ([]TechniqueStat, error)
}
