package technique

import "strings"

// Sequencer serves a technique's hints and interpolated steps by index.
// How many have been revealed is tracked by the caller.
type Sequencer struct {
	hints []string
	steps []string
}

// noAnswerStep stands in for any step that would quote the answer when
// none is stored for the input.
const noAnswerStep = "No worked answer is stored for this function. Finish the integration yourself and add + C."

// Sequencer returns the hint/step sequence for t, with step templates
// filled in from input and answer. An unknown technique yields an empty
// sequence. With UnknownAnswer, steps that quote the answer are replaced
// by a neutral line so the step count stays the same.
func (c *Catalog) Sequencer(t Technique, input, answer string) *Sequencer {
	e, ok := c.entries[t]
	if !ok {
		return &Sequencer{}
	}
	r := strings.NewReplacer("{input}", input, "{answer}", answer)
	steps := make([]string, len(e.Steps))
	for i, s := range e.Steps {
		if answer == UnknownAnswer && strings.Contains(s, "{answer}") {
			steps[i] = noAnswerStep
			continue
		}
		steps[i] = r.Replace(s)
	}
	return &Sequencer{hints: e.Hints, steps: steps}
}

// NextHint returns the hint following the first revealed ones.
func (s *Sequencer) NextHint(revealed int) (string, bool) {
	return at(s.hints, revealed)
}

// NextStep returns the step following the first shown ones.
func (s *Sequencer) NextStep(shown int) (string, bool) {
	return at(s.steps, shown)
}

// HintCount returns the number of hints.
func (s *Sequencer) HintCount() int { return len(s.hints) }

// StepCount returns the number of steps.
func (s *Sequencer) StepCount() int { return len(s.steps) }

// Hints returns the first n hints (all of them if n exceeds the count).
func (s *Sequencer) Hints(n int) []string { return prefix(s.hints, n) }

// Steps returns the first n steps (all of them if n exceeds the count).
func (s *Sequencer) Steps(n int) []string { return prefix(s.steps, n) }

func at(items []string, i int) (string, bool) {
	if i < 0 || i >= len(items) {
		return "", false
	}
	return items[i], true
}

func prefix(items []string, n int) []string {
	if n <= 0 {
		return nil
	}
	if n > len(items) {
		n = len(items)
	}
	out := make([]string, n)
	copy(out, items[:n])
	return out
}
