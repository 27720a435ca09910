// Package router keeps the stack of TUI screens. Screens navigate by
// returning PushScreenMsg, PopScreenMsg or ReplaceScreenMsg commands.
package router

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/calctutor/internal/screen"
)

type PushScreenMsg struct{ Screen screen.Screen }

type PopScreenMsg struct{}

// ReplaceScreenMsg swaps the top screen, e.g. "new problem" on practice.
type ReplaceScreenMsg struct{ Screen screen.Screen }

// Router is a stack of screens that never drops below its root.
type Router struct {
	stack []screen.Screen
}

func New(root screen.Screen) *Router {
	return &Router{stack: []screen.Screen{root}}
}

func (r *Router) top() int { return len(r.stack) - 1 }

// Push makes s active and returns its Init command.
func (r *Router) Push(s screen.Screen) tea.Cmd {
	r.stack = append(r.stack, s)
	return s.Init()
}

// Pop drops the active screen unless it is the root. The screen revealed
// underneath gets a Resume call when it implements screen.Resumer.
func (r *Router) Pop() tea.Cmd {
	if r.top() == 0 {
		return nil
	}
	r.stack = r.stack[:r.top()]
	if res, ok := r.stack[r.top()].(screen.Resumer); ok {
		return res.Resume()
	}
	return nil
}

func (r *Router) Replace(s screen.Screen) tea.Cmd {
	r.stack[r.top()] = s
	return s.Init()
}

func (r *Router) Active() screen.Screen { return r.stack[r.top()] }

func (r *Router) Depth() int { return len(r.stack) }

// Update applies navigation messages and forwards everything else to the
// active screen.
func (r *Router) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case PushScreenMsg:
		return r.Push(msg.Screen)
	case PopScreenMsg:
		return r.Pop()
	case ReplaceScreenMsg:
		return r.Replace(msg.Screen)
	}

	next, cmd := r.Active().Update(msg)
	r.stack[r.top()] = next
	return cmd
}

func (r *Router) View(width, height int) string {
	return r.Active().View(width, height)
}
