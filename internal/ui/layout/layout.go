// Package layout renders the frame around every screen.
package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/calctutor/internal/ui/theme"
)

// The practice card and hint lists need at least this much room.
const (
	MinWidth  = 80
	MinHeight = 24
)

// KeyHint is one "key description" pair in the footer.
type KeyHint struct {
	Key         string
	Description string
}

var (
	brand = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	plain = lipgloss.NewStyle().Foreground(theme.Text)
	dim   = lipgloss.NewStyle().Foreground(theme.TextDim)
	key   = plain.Bold(true)
)

func bar(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Width(width).
		Background(theme.BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border)
}

func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// RenderMinSizeMessage asks the user to resize the terminal.
func RenderMinSizeMessage(width, height int) string {
	text := fmt.Sprintf("Terminal too small!\n\nNeed %d x %d, have %d x %d.", MinWidth, MinHeight, width, height)
	return plain.Width(width).Height(height).Align(lipgloss.Center).Render(text)
}

// RenderHeader centers title between the brand on the left and status on
// the right.
func RenderHeader(title, status string, width int) string {
	left, mid, right := brand.Render("  ∫ calctutor"), plain.Render(title), dim.Render(status)
	lw, mw, rw := lipgloss.Width(left), lipgloss.Width(mid), lipgloss.Width(right)

	inner := max(width-4, 0)
	gap1 := max((inner-mw)/2-lw, 1)
	gap2 := max(inner-lw-gap1-mw-rw, 1)

	line := left + strings.Repeat(" ", gap1) + mid + strings.Repeat(" ", gap2) + right
	return bar(width).Render(line)
}

func RenderFooter(hints []KeyHint, width int) string {
	var b strings.Builder
	b.WriteString(" ")
	for _, h := range hints {
		b.WriteString("  " + key.Render(h.Key) + " " + dim.Render(h.Description) + " ")
	}
	return bar(width).Render(b.String())
}

// RenderFrame stacks header, content and footer, giving content whatever
// height is left.
func RenderFrame(header, content, footer string, width, height int) string {
	rest := max(height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	body := lipgloss.NewStyle().Width(width).Height(rest).Render(content)
	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}
