package coach

import (
	"time"

	"github.com/abhisek/calctutor/internal/answer"
)

// Explanation is an LLM-written note on what likely went wrong.
type Explanation struct {
	Title   string
	Mistake string
	Hint    string
}

// Input holds the context for one explanation request.
type Input struct {
	Function      string
	TechniqueName string
	Answer        string
	CorrectAnswer string
	Verdict       answer.Verdict

	// RevealedHints are the canned hints the learner has already seen.
	RevealedHints []string
}

// Config holds coach generation settings.
type Config struct {
	MaxTokens   int
	Temperature float64

	// Timeout bounds one explanation request. Zero means no limit.
	Timeout time.Duration
}

// DefaultConfig returns the settings used by the TUI and the CLI.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   400,
		Temperature: 0.3,
		Timeout:     20 * time.Second,
	}
}
