package practice

import (
	"time"

	tea "charm.land/bubbletea/v2"
)

// coachPollInterval is how often the screen checks for a finished
// explanation.
const coachPollInterval = 150 * time.Millisecond

// coachPollMsg asks the screen to check the coach service for a result.
// gen ties the poll to the problem that requested it.
type coachPollMsg struct {
	gen int
}

func coachPollCmd(gen int) tea.Cmd {
	return tea.Tick(coachPollInterval, func(time.Time) tea.Msg {
		return coachPollMsg{gen: gen}
	})
}
