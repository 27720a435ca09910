package session

import (
	"context"
	"log/slog"

	"github.com/abhisek/calctutor/internal/answer"
	"github.com/abhisek/calctutor/internal/store"
)

// Phase represents where the learner is on the current problem.
type Phase int

const (
	PhaseAnswering Phase = iota // Accepting submissions
	PhaseSolved                 // Exact or equivalent answer given
	PhaseExhausted              // No attempts left; all steps revealed
)

func (p Phase) String() string {
	switch p {
	case PhaseSolved:
		return "solved"
	case PhaseExhausted:
		return "exhausted"
	default:
		return "answering"
	}
}

// Recorder persists practice events. store.EventRepo satisfies it.
type Recorder interface {
	AppendAttempt(ctx context.Context, data store.AttemptEventData) error
	AppendReveal(ctx context.Context, data store.RevealEventData) error
}

// State tracks the runtime state of one problem.
type State struct {
	Problem *Problem
	Phase   Phase

	// Attempts is the number of non-empty submissions so far.
	Attempts int

	// HintsRevealed and StepsShown count from the front of the sequence.
	HintsRevealed int
	StepsShown    int

	// LastVerdict is the most recent verdict, including empty ones.
	LastVerdict *answer.Verdict

	// Recorder persists attempts and reveals (nil disables history).
	Recorder Recorder

	// Logger receives recording failures. Nil uses slog.Default().
	Logger *slog.Logger
}

// NewState creates the state for a freshly started problem.
func NewState(p *Problem, rec Recorder) *State {
	return &State{Problem: p, Phase: PhaseAnswering, Recorder: rec}
}

// Finished reports whether the problem no longer accepts submissions.
func (s *State) Finished() bool {
	return s.Phase != PhaseAnswering
}

// AttemptsLeft returns how many submissions remain.
func (s *State) AttemptsLeft() int {
	return max(answer.MaxAttempts-s.Attempts, 0)
}

// RevealedHints returns the hints shown so far.
func (s *State) RevealedHints() []string {
	return s.Problem.Sequencer.Hints(s.HintsRevealed)
}

// ShownSteps returns the steps shown so far.
func (s *State) ShownSteps() []string {
	return s.Problem.Sequencer.Steps(s.StepsShown)
}

func (s *State) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}
