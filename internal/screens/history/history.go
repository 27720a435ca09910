package history

import (
	"context"
	"fmt"
	"image/color"
	"strings"

	tea "charm.land/bubbletea/v2"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/calctutor/internal/answer"
	"github.com/abhisek/calctutor/internal/screen"
	"github.com/abhisek/calctutor/internal/store"
	"github.com/abhisek/calctutor/internal/ui/layout"
	"github.com/abhisek/calctutor/internal/ui/theme"
)

// attemptLimit caps how many recent attempts the screen lists.
const attemptLimit = 50

type historyLoadedMsg struct {
	Attempts []store.AttemptEvent
	Stats    []store.TechniqueStat
	Err      error
}

// HistoryScreen lists recent attempts with per-technique accuracy.
type HistoryScreen struct {
	eventRepo store.EventRepo
	attempts  []store.AttemptEvent
	stats     []store.TechniqueStat
	selected  int
	expanded  map[int]bool
	loaded    bool
	errMsg    string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(eventRepo store.EventRepo) *HistoryScreen {
	return &HistoryScreen{
		eventRepo: eventRepo,
		expanded:  make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	repo := s.eventRepo
	return func() tea.Msg {
		ctx := context.Background()
		attempts, err := repo.QueryAttempts(ctx, store.QueryOpts{Limit: attemptLimit})
		if err != nil {
			return historyLoadedMsg{Err: err}
		}
		// Accuracy is a nicety; the list still renders without it.
		stats, _ := repo.TechniqueStats(ctx)
		return historyLoadedMsg{Attempts: attempts, Stats: stats}
	}
}

func (s *HistoryScreen) Title() string { return "History" }

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Details"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		s.loaded = true
		s.attempts, s.stats = msg.Attempts, msg.Stats
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		}
	case tea.KeyPressMsg:
		last := len(s.attempts) - 1
		switch msg.String() {
		case "up", "k":
			s.selected = max(s.selected-1, 0)
		case "down", "j":
			s.selected = max(min(s.selected+1, last), 0)
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	center := func(line string) string {
		return lipgloss.PlaceHorizontal(width, lipgloss.Center, line)
	}
	notice := func(c color.Color, text string) string {
		return "\n\n" + center(lipgloss.NewStyle().Foreground(c).Render(text))
	}

	switch {
	case s.errMsg != "":
		return notice(theme.Error, "Error: "+s.errMsg)
	case !s.loaded:
		return notice(theme.TextDim, "Loading history...")
	case len(s.attempts) == 0:
		return notice(theme.TextDim, "No attempts yet. Start practicing!")
	}

	lines := []string{""}
	if st := s.statsLine(); st != "" {
		lines = append(lines, center(st), "")
	}
	for i, a := range s.attempts {
		cursor, style := "  ", lipgloss.NewStyle().Foreground(kindColor(a.Kind))
		if i == s.selected {
			cursor, style = "> ", style.Bold(true)
		}
		row := fmt.Sprintf("%s%s  %-12s  %-24s  %s", cursor,
			a.Timestamp.Local().Format("Jan 02 15:04"), a.Technique, truncate(a.Function, 24), a.Kind)
		lines = append(lines, center(style.Render(row)))

		if s.expanded[i] {
			detail := fmt.Sprintf("    attempt %d  answered %s  expected %s", a.Attempt, a.Answer, a.CorrectAnswer)
			if a.Reason != "" {
				detail += "  (" + a.Reason + ")"
			}
			lines = append(lines, center(theme.Hint.Render(detail)))
		}
	}
	return lipgloss.NewStyle().MaxHeight(height).Render(strings.Join(lines, "\n"))
}

// statsLine renders "technique NN%" for every technique with attempts.
func (s *HistoryScreen) statsLine() string {
	var parts []string
	for _, st := range s.stats {
		if st.Attempts == 0 {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s %.0f%%", st.Technique, st.Accuracy()*100))
	}
	if len(parts) == 0 {
		return ""
	}
	return theme.Hint.Render(strings.Join(parts, "  ·  "))
}

// kindColor colors an attempt the way its verdict was shown.
func kindColor(kind string) color.Color {
	switch answer.Kind(kind) {
	case answer.KindExact, answer.KindEquivalent:
		return theme.FeedbackColor(string(answer.FeedbackSuccess))
	case answer.KindPartial:
		return theme.FeedbackColor(string(answer.FeedbackWarning))
	case answer.KindIncorrect:
		return theme.FeedbackColor(string(answer.FeedbackError))
	default:
		return theme.Text
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
