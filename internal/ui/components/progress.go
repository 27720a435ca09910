package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/calctutor/internal/ui/theme"
)

// ProgressBar shows how much of a problem's hints and steps are revealed.
// Percent is clamped to [0, 1]; a full bar turns green.
type ProgressBar struct {
	Label       string
	Percent     float64
	ShowPercent bool
	Width       int
}

func NewProgressBar(label string, percent float64, showPercent bool, width int) ProgressBar {
	return ProgressBar{Label: label, Percent: percent, ShowPercent: showPercent, Width: width}
}

func (p ProgressBar) View() string {
	pct := min(max(p.Percent, 0), 1)

	var prefix, suffix string
	if p.Label != "" {
		prefix = lipgloss.NewStyle().Foreground(theme.Text).Render(p.Label) + "  "
	}
	if p.ShowPercent {
		suffix = lipgloss.NewStyle().Foreground(theme.TextDim).
			Render(fmt.Sprintf("  %3d%%", int(pct*100+0.5)))
	}

	cells := max(p.Width-lipgloss.Width(prefix)-lipgloss.Width(suffix), 4)
	filled := int(float64(cells)*pct + 0.5)

	fill := theme.Secondary
	if pct == 1 {
		fill = theme.Success
	}
	on := lipgloss.NewStyle().Background(fill).Render(strings.Repeat(" ", filled))
	off := lipgloss.NewStyle().Background(theme.Border).Render(strings.Repeat(" ", cells-filled))
	return prefix + on + off + suffix
}
