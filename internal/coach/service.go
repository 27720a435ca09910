// Package coach asks an LLM to explain near-miss and wrong answers. It
// never decides correctness; verdicts come from the answer package.
package coach

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/abhisek/calctutor/internal/answer"
	"github.com/abhisek/calctutor/internal/llm"
)

// ErrRevealsAnswer is returned when the model's explanation contains the
// reference antiderivative.
var ErrRevealsAnswer = errors.New("explanation reveals the answer")

// ErrNotApplicable is returned for verdicts that need no explanation.
var ErrNotApplicable = errors.New("verdict does not need an explanation")

// Result is a finished explanation request.
type Result struct {
	Explanation *Explanation
	Err         error
}

// Service generates explanations, either synchronously with Explain or in
// the background with Request and Consume.
type Service struct {
	provider llm.Provider
	cfg      Config

	mu      sync.Mutex
	gen     int
	pending Result
	ready   bool
}

// NewService creates a coach service.
func NewService(provider llm.Provider, cfg Config) *Service {
	return &Service{provider: provider, cfg: cfg}
}

// Applicable reports whether a verdict warrants an explanation: partial or
// incorrect answers only.
func Applicable(v answer.Verdict) bool {
	return v.Kind == answer.KindPartial || v.Kind == answer.KindIncorrect
}

// Request starts async generation. Only one request is in flight at a
// time: a newer request discards the result of an older one.
func (s *Service) Request(ctx context.Context, input Input) {
	s.mu.Lock()
	s.gen++
	gen := s.gen
	s.ready = false
	s.pending = Result{}
	s.mu.Unlock()

	go func() {
		exp, err := s.Explain(ctx, input)
		s.mu.Lock()
		defer s.mu.Unlock()
		if gen != s.gen {
			return
		}
		s.pending = Result{Explanation: exp, Err: err}
		s.ready = true
	}()
}

// Consume returns the pending result if one is ready and clears the slot.
func (s *Service) Consume() (Result, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.ready {
		return Result{}, false
	}
	res := s.pending
	s.pending = Result{}
	s.ready = false
	return res, true
}

// Explain generates an explanation and blocks until it is done.
func (s *Service) Explain(ctx context.Context, input Input) (*Explanation, error) {
	if !Applicable(input.Verdict) {
		return nil, ErrNotApplicable
	}

	ctx = llm.WithPurpose(ctx, llm.PurposeCoach)
	if s.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.Timeout)
		defer cancel()
	}

	req := llm.UserRequest(systemPrompt, buildUserMessage(input), ExplanationSchema, s.cfg.MaxTokens)
	req.Temperature = s.cfg.Temperature

	resp, err := s.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("explanation generation: %w", err)
	}

	var out struct {
		Title   string `json:"title"`
		Mistake string `json:"mistake"`
		Hint    string `json:"hint"`
	}
	if err := resp.Decode(&out); err != nil {
		return nil, fmt.Errorf("parse explanation response: %w", err)
	}

	exp := &Explanation{
		Title:   strings.TrimSpace(out.Title),
		Mistake: strings.TrimSpace(out.Mistake),
		Hint:    strings.TrimSpace(out.Hint),
	}
	if reveals(exp, input.CorrectAnswer) {
		return nil, ErrRevealsAnswer
	}
	return exp, nil
}

// reveals compares in the validator's normal form, so "x^3 / 3" in prose
// still counts as the answer "x^3/3". Very short answers are not checked.
func reveals(exp *Explanation, correct string) bool {
	c := answer.Normalize(correct)
	if len(c) < 3 {
		return false
	}
	for _, text := range []string{exp.Mistake, exp.Hint} {
		if strings.Contains(answer.Normalize(text), c) {
			return true
		}
	}
	return false
}
