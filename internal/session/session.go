package session

import (
	"context"
	"strings"

	"github.com/abhisek/calctutor/internal/answer"
	"github.com/abhisek/calctutor/internal/store"
)

// Submit validates a learner answer against the problem's answer.
//
// Empty answers get an empty verdict and do not use up an attempt. Once the
// problem is finished further submissions are ignored and Submit returns
// the last verdict with false.
func (s *State) Submit(ctx context.Context, learnerAnswer string) (answer.Verdict, bool) {
	if s.Finished() {
		if s.LastVerdict != nil {
			return *s.LastVerdict, false
		}
		return answer.Verdict{}, false
	}

	attempt := s.Attempts
	if strings.TrimSpace(learnerAnswer) != "" {
		attempt++
	}
	v := answer.Validate(learnerAnswer, s.Problem.CorrectAnswer, attempt)
	s.LastVerdict = &v
	if v.Kind == answer.KindEmpty {
		return v, true
	}

	s.Attempts = attempt
	switch {
	case v.IsCorrect:
		s.Phase = PhaseSolved
	case !v.HasMoreAttempts:
		s.Phase = PhaseExhausted
		s.StepsShown = s.Problem.Sequencer.StepCount()
	}

	s.recordAttempt(ctx, learnerAnswer, v)
	return v, true
}

// RevealHint shows the next hint. It returns false when none are left.
func (s *State) RevealHint(ctx context.Context) (string, bool) {
	text, ok := s.Problem.Sequencer.NextHint(s.HintsRevealed)
	if !ok {
		return "", false
	}
	idx := s.HintsRevealed
	s.HintsRevealed++
	s.recordReveal(ctx, store.RevealHint, idx, text)
	return text, true
}

// RevealStep shows the next worked-solution step. It returns false when
// none are left.
func (s *State) RevealStep(ctx context.Context) (string, bool) {
	text, ok := s.Problem.Sequencer.NextStep(s.StepsShown)
	if !ok {
		return "", false
	}
	idx := s.StepsShown
	s.StepsShown++
	s.recordReveal(ctx, store.RevealStep, idx, text)
	return text, true
}

func (s *State) recordAttempt(ctx context.Context, learnerAnswer string, v answer.Verdict) {
	if s.Recorder == nil {
		return
	}
	p := s.Problem
	err := s.Recorder.AppendAttempt(ctx, store.AttemptEventData{
		SessionID:     p.ID,
		Function:      p.Input,
		Technique:     string(p.Classification.Technique),
		Answer:        learnerAnswer,
		CorrectAnswer: p.CorrectAnswer,
		Kind:          string(v.Kind),
		Reason:        string(v.Reason),
		Correct:       v.IsCorrect,
		Attempt:       v.Attempt,
	})
	if err != nil {
		s.logger().Warn("failed to record attempt", "session", p.ID, "error", err)
	}
}

func (s *State) recordReveal(ctx context.Context, kind store.RevealKind, idx int, text string) {
	if s.Recorder == nil {
		return
	}
	p := s.Problem
	err := s.Recorder.AppendReveal(ctx, store.RevealEventData{
		SessionID: p.ID,
		Technique: string(p.Classification.Technique),
		Kind:      kind,
		Index:     idx,
		Text:      text,
	})
	if err != nil {
		s.logger().Warn("failed to record reveal", "session", p.ID, "kind", kind, "error", err)
	}
}
