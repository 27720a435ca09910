package components

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/bubbles/v2/textinput"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/calctutor/internal/ui/theme"
)

// TextInput wraps bubbles/textinput for typing functions and answers.
// Ctrl-key chords are left to the screen; only printable input and
// editing keys reach the field.
type TextInput struct {
	Model  textinput.Model
	Prompt string
}

// NewTextInput creates a focused text input with a label and character limit.
func NewTextInput(prompt, placeholder string, charLimit int) TextInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = ""
	if charLimit > 0 {
		ti.CharLimit = charLimit
	}
	ti.Focus()

	return TextInput{Model: ti, Prompt: prompt}
}

// Init returns the initial command.
func (t TextInput) Init() tea.Cmd {
	return t.Model.Focus()
}

// Update handles messages.
func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	return t, cmd
}

// View renders the prompt and the field.
func (t TextInput) View() string {
	prompt := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render(t.Prompt)
	return prompt + " " + t.Model.View()
}

// Value returns the current input value.
func (t TextInput) Value() string {
	return t.Model.Value()
}

// SetValue replaces the field content.
func (t *TextInput) SetValue(s string) {
	t.Model.SetValue(s)
}

// Reset clears the field.
func (t *TextInput) Reset() {
	t.Model.Reset()
}
