package home

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/calctutor/internal/coach"
	"github.com/abhisek/calctutor/internal/router"
	"github.com/abhisek/calctutor/internal/screen"
	"github.com/abhisek/calctutor/internal/screens/history"
	"github.com/abhisek/calctutor/internal/screens/practice"
	"github.com/abhisek/calctutor/internal/store"
	"github.com/abhisek/calctutor/internal/technique"
	"github.com/abhisek/calctutor/internal/ui/components"
	"github.com/abhisek/calctutor/internal/ui/layout"
	"github.com/abhisek/calctutor/internal/ui/theme"
)

type statsLoadedMsg struct {
	Stats []store.TechniqueStat
	Err   error
}

// HomeScreen is the main menu.
type HomeScreen struct {
	eventRepo store.EventRepo
	menu      components.Menu
	stats     []store.TechniqueStat
	statsErr  error
}

var (
	_ screen.Screen          = (*HomeScreen)(nil)
	_ screen.KeyHintProvider = (*HomeScreen)(nil)
	_ screen.Resumer         = (*HomeScreen)(nil)
)

// New creates the home screen. eventRepo and coachSvc may be nil; without a
// repo history is disabled, without a coach wrong answers get no
// explanation.
func New(catalog *technique.Catalog, eventRepo store.EventRepo, coachSvc *coach.Service) *HomeScreen {
	items := []components.MenuItem{
		{
			Label:       "Practice",
			Key:         "p",
			Description: "Integrate a function with hints",
			Action: func() tea.Cmd {
				return func() tea.Msg {
					return router.PushScreenMsg{Screen: practice.New(catalog, eventRepo, coachSvc)}
				}
			},
		},
		{
			Label:       "History",
			Key:         "h",
			Description: "Past attempts and accuracy",
			Disabled:    eventRepo == nil,
			Action: func() tea.Cmd {
				return func() tea.Msg {
					return router.PushScreenMsg{Screen: history.New(eventRepo)}
				}
			},
		},
		{
			Label: "Quit",
			Key:   "q",
			Action: func() tea.Cmd {
				return tea.Quit
			},
		},
	}

	return &HomeScreen{
		eventRepo: eventRepo,
		menu:      components.NewMenu(items),
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return h.loadStats()
}

// Resume reloads stats after a practice or history screen is closed.
func (h *HomeScreen) Resume() tea.Cmd {
	return h.loadStats()
}

func (h *HomeScreen) loadStats() tea.Cmd {
	if h.eventRepo == nil {
		return nil
	}
	repo := h.eventRepo
	return func() tea.Msg {
		stats, err := repo.TechniqueStats(context.Background())
		return statsLoadedMsg{Stats: stats, Err: err}
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if msg, ok := msg.(statsLoadedMsg); ok {
		h.stats, h.statsErr = msg.Stats, msg.Err
		return h, nil
	}
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(theme.Title.Width(width).Render("∫ f(x) dx"))
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Width(width).Render("Pick a technique, take a hint, check your antiderivative."))
	b.WriteString("\n\n")

	if line := h.statsLine(); line != "" {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, line))
		b.WriteString("\n\n")
	}

	menu := theme.Card.Width(min(56, max(width-4, 20))).Render(strings.TrimRight(h.menu.View(), "\n"))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, menu))

	return lipgloss.NewStyle().Height(height).Render(b.String())
}

// statsLine summarizes all recorded attempts.
func (h *HomeScreen) statsLine() string {
	if h.statsErr != nil {
		return lipgloss.NewStyle().Foreground(theme.Error).Render("Could not load stats: " + h.statsErr.Error())
	}
	var attempts, correct int
	for _, s := range h.stats {
		attempts += s.Attempts
		correct += s.Correct
	}
	if attempts == 0 {
		return ""
	}
	acc := float64(correct) / float64(attempts) * 100
	return theme.Hint.Render(fmt.Sprintf("%d attempts  %d correct  %.0f%% accuracy", attempts, correct, acc))
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}
