// Package practice is the interactive screen for one integration problem:
// the learner types a function, sees the suggested technique, reveals
// hints and steps, and submits antiderivatives.
package practice

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/calctutor/internal/answer"
	"github.com/abhisek/calctutor/internal/coach"
	"github.com/abhisek/calctutor/internal/router"
	"github.com/abhisek/calctutor/internal/screen"
	"github.com/abhisek/calctutor/internal/session"
	"github.com/abhisek/calctutor/internal/store"
	"github.com/abhisek/calctutor/internal/technique"
	"github.com/abhisek/calctutor/internal/ui/components"
	"github.com/abhisek/calctutor/internal/ui/layout"
)

const inputLimit = 256

// PracticeScreen implements screen.Screen for a practice problem.
type PracticeScreen struct {
	catalog   *technique.Catalog
	eventRepo store.EventRepo
	coach     *coach.Service

	input components.TextInput
	state *session.State

	// notice is a one-line message below the input, cleared on the next key.
	notice string

	// gen increments for every coach request so polls for an older
	// verdict stop on their own.
	gen          int
	coachPending bool
	explanation  *coach.Explanation
	coachErr     string
}

var _ screen.Screen = (*PracticeScreen)(nil)
var _ screen.KeyHintProvider = (*PracticeScreen)(nil)

// New creates a practice screen waiting for a function. eventRepo and
// coachSvc may be nil.
func New(catalog *technique.Catalog, eventRepo store.EventRepo, coachSvc *coach.Service) *PracticeScreen {
	return &PracticeScreen{
		catalog:   catalog,
		eventRepo: eventRepo,
		coach:     coachSvc,
		input:     components.NewTextInput("∫", "f(x), e.g. x^2 or sin(x)", inputLimit),
	}
}

func (s *PracticeScreen) Init() tea.Cmd {
	return s.input.Init()
}

func (s *PracticeScreen) Title() string {
	return "Practice"
}

func (s *PracticeScreen) KeyHints() []layout.KeyHint {
	if s.state == nil {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Analyze"},
			{Key: "Esc", Description: "Back"},
		}
	}
	if s.state.Finished() {
		return []layout.KeyHint{
			{Key: "Enter/Ctrl+N", Description: "New problem"},
			{Key: "Ctrl+H", Description: "Hint"},
			{Key: "Esc", Description: "Back"},
		}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Submit"},
		{Key: "Ctrl+H", Description: "Hint"},
		{Key: "Ctrl+S", Description: "Step"},
		{Key: "Ctrl+N", Description: "New"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *PracticeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case coachPollMsg:
		return s.handleCoachPoll(msg)

	case tea.KeyPressMsg:
		if cmd, handled := s.handleKey(msg); handled {
			return s, cmd
		}
	}

	if s.state != nil && s.state.Finished() {
		return s, nil
	}
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *PracticeScreen) handleKey(msg tea.KeyPressMsg) (tea.Cmd, bool) {
	switch msg.String() {
	case "enter":
		s.notice = ""
		switch {
		case s.state == nil:
			return s.startProblem(), true
		case s.state.Finished():
			return s.newProblem(), true
		default:
			return s.submit(), true
		}

	case "ctrl+n":
		return s.newProblem(), true

	case "ctrl+h":
		if s.state == nil {
			return nil, true
		}
		if _, ok := s.state.RevealHint(context.Background()); !ok {
			s.notice = "No more hints."
		} else {
			s.notice = ""
		}
		return nil, true

	case "ctrl+s":
		if s.state == nil {
			return nil, true
		}
		if _, ok := s.state.RevealStep(context.Background()); !ok {
			s.notice = "All steps are shown."
		} else {
			s.notice = ""
		}
		return nil, true
	}
	return nil, false
}

// startProblem analyzes the typed function and switches to answering.
func (s *PracticeScreen) startProblem() tea.Cmd {
	fn := strings.TrimSpace(s.input.Value())
	if fn == "" {
		s.notice = "Enter a function to integrate."
		return nil
	}

	var rec session.Recorder
	if s.eventRepo != nil {
		rec = s.eventRepo
	}
	s.state = session.NewState(session.Start(fn, s.catalog), rec)
	s.input = components.NewTextInput("F(x) =", "antiderivative, + C optional", inputLimit)
	return s.input.Init()
}

// newProblem replaces this screen with a fresh one so back still returns
// to the menu.
func (s *PracticeScreen) newProblem() tea.Cmd {
	next := New(s.catalog, s.eventRepo, s.coach)
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: next}
	}
}

func (s *PracticeScreen) submit() tea.Cmd {
	submitted := s.input.Value()
	v, ok := s.state.Submit(context.Background(), submitted)
	if !ok {
		return nil
	}
	if v.Kind != answer.KindEmpty {
		s.input.Reset()
	}

	s.explanation = nil
	s.coachErr = ""
	s.coachPending = false
	if s.coach == nil || !coach.Applicable(v) || !s.state.Problem.HasAnswer() {
		return nil
	}

	s.gen++
	s.coachPending = true
	s.coach.Request(context.Background(), coach.Input{
		Function:      s.state.Problem.Input,
		TechniqueName: s.state.Problem.TechniqueName,
		Answer:        submitted,
		CorrectAnswer: s.state.Problem.CorrectAnswer,
		Verdict:       v,
		RevealedHints: s.state.RevealedHints(),
	})
	return coachPollCmd(s.gen)
}

func (s *PracticeScreen) handleCoachPoll(msg coachPollMsg) (screen.Screen, tea.Cmd) {
	if msg.gen != s.gen || !s.coachPending {
		return s, nil
	}
	res, ok := s.coach.Consume()
	if !ok {
		return s, coachPollCmd(s.gen)
	}
	s.coachPending = false
	if res.Err != nil {
		s.coachErr = res.Err.Error()
		return s, nil
	}
	s.explanation = res.Explanation
	return s, nil
}
