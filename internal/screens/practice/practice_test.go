package practice

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/calctutor/internal/coach"
	"github.com/abhisek/calctutor/internal/llm"
	"github.com/abhisek/calctutor/internal/router"
	"github.com/abhisek/calctutor/internal/session"
	"github.com/abhisek/calctutor/internal/store"
	"github.com/abhisek/calctutor/internal/technique"
)

// mockEventRepo implements store.EventRepo for testing.
type mockEventRepo struct {
	attempts []store.AttemptEventData
	reveals  []store.RevealEventData
}

func (m *mockEventRepo) AppendAttempt(_ context.Context, data store.AttemptEventData) error {
	m.attempts = append(m.attempts, data)
	return nil
}
func (m *mockEventRepo) AppendReveal(_ context.Context, data store.RevealEventData) error {
	m.reveals = append(m.reveals, data)
	return nil
}
func (m *mockEventRepo) AppendLLMRequest(context.Context, store.LLMRequestEventData) error {
	return nil
}
func (m *mockEventRepo) QueryAttempts(context.Context, store.QueryOpts) ([]store.AttemptEvent, error) {
	return nil, nil
}
func (m *mockEventRepo) QueryLLMEvents(context.Context, store.QueryOpts) ([]store.LLMRequestEvent, error) {
	return nil, nil
}
func (m *mockEventRepo) LLMUsageByModel(context.Context) ([]store.ModelUsage, error) {
	return nil, nil
}
func (m *mockEventRepo) TechniqueStats(context.Context) ([]store.TechniqueStat, error) {
	return nil, nil
}

var (
	enterKey = tea.KeyPressMsg{Code: tea.KeyEnter}
	hintKey  = tea.KeyPressMsg{Code: 'h', Mod: tea.ModCtrl}
	stepKey  = tea.KeyPressMsg{Code: 's', Mod: tea.ModCtrl}
	newKey   = tea.KeyPressMsg{Code: 'n', Mod: tea.ModCtrl}
)

func newScreen(t *testing.T, repo store.EventRepo, svc *coach.Service) *PracticeScreen {
	t.Helper()
	s := New(technique.Default(), repo, svc)
	s.Init()
	return s
}

func start(t *testing.T, s *PracticeScreen, fn string) {
	t.Helper()
	s.input.SetValue(fn)
	s.Update(enterKey)
	if s.state == nil {
		t.Fatalf("expected problem to start for %q", fn)
	}
}

func submit(s *PracticeScreen, ans string) tea.Cmd {
	s.input.SetValue(ans)
	_, cmd := s.Update(enterKey)
	return cmd
}

func TestStartRequiresFunction(t *testing.T) {
	s := newScreen(t, nil, nil)
	s.Update(enterKey)

	if s.state != nil {
		t.Fatal("empty input should not start a problem")
	}
	if s.notice != "Enter a function to integrate." {
		t.Errorf("notice = %q", s.notice)
	}
}

func TestStartShowsTechnique(t *testing.T) {
	s := newScreen(t, nil, nil)
	start(t, s, "x^2")

	if got := s.state.Problem.Classification.Technique; got != technique.Power {
		t.Errorf("technique = %q, want power", got)
	}
	view := s.View(100, 40)
	if !strings.Contains(view, s.state.Problem.TechniqueName) {
		t.Error("view should show the technique name")
	}
	if !strings.Contains(view, "Attempts left: 3") {
		t.Error("view should show attempts left")
	}
}

func TestSubmitCorrectSolves(t *testing.T) {
	repo := &mockEventRepo{}
	s := newScreen(t, repo, nil)
	start(t, s, "x^2")

	submit(s, "x^3/3 + C")

	if s.state.Phase != session.PhaseSolved {
		t.Errorf("phase = %v, want solved", s.state.Phase)
	}
	if len(repo.attempts) != 1 || !repo.attempts[0].Correct {
		t.Errorf("attempts = %+v", repo.attempts)
	}
	if s.input.Value() != "" {
		t.Error("input should be cleared after a graded submission")
	}
}

func TestSubmitEmptyKeepsAttempts(t *testing.T) {
	repo := &mockEventRepo{}
	s := newScreen(t, repo, nil)
	start(t, s, "x^2")

	submit(s, "   ")

	if s.state.Attempts != 0 {
		t.Errorf("attempts = %d, want 0", s.state.Attempts)
	}
	if len(repo.attempts) != 0 {
		t.Error("empty answers should not be recorded")
	}
}

func TestExhaustedShowsAllSteps(t *testing.T) {
	s := newScreen(t, nil, nil)
	start(t, s, "x^2")

	for range 3 {
		submit(s, "x^3")
	}

	if s.state.Phase != session.PhaseExhausted {
		t.Fatalf("phase = %v, want exhausted", s.state.Phase)
	}
	if len(s.state.ShownSteps()) != s.state.Problem.Sequencer.StepCount() {
		t.Error("all steps should be shown after the last attempt")
	}
	if !strings.Contains(s.View(100, 60), "The correct answer is x^3/3.") {
		t.Error("view should reveal the answer on the last attempt")
	}
}

func TestRevealHintsAndSteps(t *testing.T) {
	repo := &mockEventRepo{}
	s := newScreen(t, repo, nil)
	start(t, s, "x^2")

	total := s.state.Problem.Sequencer.HintCount()
	for range total {
		s.Update(hintKey)
	}
	if s.state.HintsRevealed != total {
		t.Errorf("hints revealed = %d, want %d", s.state.HintsRevealed, total)
	}
	if s.notice != "" {
		t.Errorf("unexpected notice %q", s.notice)
	}

	s.Update(hintKey)
	if s.notice != "No more hints." {
		t.Errorf("notice = %q", s.notice)
	}

	s.Update(stepKey)
	if s.state.StepsShown != 1 {
		t.Errorf("steps shown = %d, want 1", s.state.StepsShown)
	}
	if len(repo.reveals) != total+1 {
		t.Errorf("recorded reveals = %d, want %d", len(repo.reveals), total+1)
	}
}

func TestNewProblemReplacesScreen(t *testing.T) {
	s := newScreen(t, nil, nil)
	start(t, s, "x^2")

	_, cmd := s.Update(newKey)
	if cmd == nil {
		t.Fatal("expected a command")
	}
	msg, ok := cmd().(router.ReplaceScreenMsg)
	if !ok {
		t.Fatalf("expected ReplaceScreenMsg, got %T", cmd())
	}
	if next := msg.Screen.(*PracticeScreen); next.state != nil {
		t.Error("replacement screen should wait for a new function")
	}
}

func TestCoachExplainsWrongAnswer(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockJSON(map[string]string{
		"title":   "Sign of the cosine term",
		"mistake": "Differentiating cos gives negative sine.",
		"hint":    "Differentiate your answer and compare.",
	}))
	s := newScreen(t, nil, coach.NewService(mock, coach.DefaultConfig()))
	start(t, s, "sin(x)")

	if cmd := submit(s, "cos(x)"); cmd == nil {
		t.Fatal("expected a coach poll command")
	}
	if !s.coachPending {
		t.Fatal("expected coach request to be pending")
	}

	deadline := time.Now().Add(5 * time.Second)
	for s.coachPending && time.Now().Before(deadline) {
		s.Update(coachPollMsg{gen: s.gen})
		time.Sleep(10 * time.Millisecond)
	}

	if s.explanation == nil {
		t.Fatalf("expected explanation, coach error %q", s.coachErr)
	}
	if !strings.Contains(s.View(100, 60), "Sign of the cosine term") {
		t.Error("view should show the explanation")
	}
}

func TestCorrectAnswerSkipsCoach(t *testing.T) {
	mock := llm.NewMockProvider()
	s := newScreen(t, nil, coach.NewService(mock, coach.DefaultConfig()))
	start(t, s, "x^2")

	if cmd := submit(s, "x^3/3"); cmd != nil {
		t.Error("correct answers should not start a coach request")
	}
	if mock.CallCount() != 0 {
		t.Errorf("provider calls = %d, want 0", mock.CallCount())
	}
}

func TestUnknownAnswerSkipsCoach(t *testing.T) {
	mock := llm.NewMockProvider()
	s := newScreen(t, nil, coach.NewService(mock, coach.DefaultConfig()))
	start(t, s, "x^7+x")

	if cmd := submit(s, "x^8/8"); cmd != nil {
		t.Error("a function without a stored answer should not start a coach request")
	}
	if mock.CallCount() != 0 {
		t.Errorf("provider calls = %d, want 0", mock.CallCount())
	}
	if strings.Contains(s.View(100, 60), "Answer depends on technique used") {
		t.Error("view should not quote the missing-answer placeholder")
	}
}

func TestStalePollIgnored(t *testing.T) {
	s := newScreen(t, nil, nil)
	start(t, s, "x^2")

	_, cmd := s.Update(coachPollMsg{gen: 42})
	if cmd != nil {
		t.Error("stale poll should not reschedule")
	}
}
