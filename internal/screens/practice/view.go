package practice

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/calctutor/internal/session"
	"github.com/abhisek/calctutor/internal/ui/components"
	"github.com/abhisek/calctutor/internal/ui/theme"
)

func (s *PracticeScreen) View(width, height int) string {
	inner := max(width-8, 20)

	var sections []string
	if s.state == nil {
		sections = append(sections,
			theme.Subtitle.Width(inner).Render("Type a function of x and press Enter."),
			s.input.View(),
		)
	} else {
		sections = append(sections, s.renderTechniqueCard(inner))
		sections = append(sections, s.renderStatus(inner))
		if hints := s.renderList("Hints", s.state.RevealedHints()); hints != "" {
			sections = append(sections, hints)
		}
		if steps := s.renderList("Steps", s.state.ShownSteps()); steps != "" {
			sections = append(sections, steps)
		}
		if fb := s.renderFeedback(inner); fb != "" {
			sections = append(sections, fb)
		}
		if !s.state.Finished() {
			sections = append(sections, s.input.View())
		}
	}
	if s.notice != "" {
		sections = append(sections, theme.Hint.Render(s.notice))
	}

	body := lipgloss.NewStyle().Padding(1, 4).Render(strings.Join(sections, "\n\n"))
	return lipgloss.NewStyle().Width(width).MaxHeight(height).Render(body)
}

func (s *PracticeScreen) renderTechniqueCard(width int) string {
	p := s.state.Problem
	difficulty := string(p.Classification.Difficulty)

	badge := lipgloss.NewStyle().
		Foreground(theme.DifficultyColor(difficulty)).
		Bold(true).
		Render("[" + difficulty + "]")

	header := theme.Math.Render("∫ "+p.Input+" dx") + "   " +
		lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(p.TechniqueName) + " " + badge

	desc := theme.Body.Width(width - 6).Render(p.Classification.Description)

	return theme.Card.Width(width).Render(header + "\n\n" + desc)
}

func (s *PracticeScreen) renderStatus(width int) string {
	st := s.state
	var status string
	switch st.Phase {
	case session.PhaseSolved:
		status = lipgloss.NewStyle().Foreground(theme.Success).Bold(true).Render("Solved")
	case session.PhaseExhausted:
		status = lipgloss.NewStyle().Foreground(theme.Error).Bold(true).Render("Out of attempts")
	default:
		status = theme.Body.Render(fmt.Sprintf("Attempts left: %d", st.AttemptsLeft()))
	}
	if !st.Problem.HasAnswer() {
		status += "  " + theme.Hint.Render("(no stored answer for this function)")
	}

	bar := components.NewProgressBar("Progress", st.Progress(), true, min(width, 50)).View()
	return status + "\n" + bar
}

func (s *PracticeScreen) renderList(title string, items []string) string {
	if len(items) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render(title))
	for i, item := range items {
		b.WriteString(fmt.Sprintf("\n  %d. %s", i+1, item))
	}
	return b.String()
}

func (s *PracticeScreen) renderFeedback(width int) string {
	v := s.state.LastVerdict
	if v == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().
		Foreground(theme.FeedbackColor(string(v.Feedback))).
		Bold(true).
		Render(v.Message))

	switch {
	case s.coachPending:
		b.WriteString("\n" + theme.Hint.Render("Asking the coach..."))
	case s.coachErr != "":
		b.WriteString("\n" + theme.Hint.Render("Coach unavailable: "+s.coachErr))
	case s.explanation != nil:
		e := s.explanation
		card := lipgloss.NewStyle().Foreground(theme.Info).Bold(true).Render(e.Title) + "\n" +
			theme.Body.Width(width-6).Render(e.Mistake) + "\n" +
			theme.Hint.Width(width-6).Render("Try: "+e.Hint)
		b.WriteString("\n" + theme.Card.Width(width).Render(card))
	}
	return b.String()
}
