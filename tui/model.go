// Package tui runs the game in a terminal with Bubble Tea.
//
// Bubble Tea delivers messages to Update one at a time, so ticks and key
// presses reach the loop strictly serialized.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/brensch/gridsnake/loop"
)

// TickMsg asks the loop to advance. Gen ties it to the schedule that
// produced it so ticks from before a restart are dropped.
type TickMsg struct {
	Gen uint64
}

func tickCmd(gen uint64) tea.Cmd {
	return tea.Tick(loop.Interval, func(time.Time) tea.Msg {
		return TickMsg{Gen: gen}
	})
}

type Model struct {
	loop   *loop.Loop
	styles Styles
}

func NewModel(l *loop.Loop) Model {
	return Model{loop: l, styles: DefaultStyles()}
}

func (m Model) Init() tea.Cmd {
	if !m.loop.Running() {
		return nil
	}
	return tickCmd(m.loop.Generation())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.loop.Stop()
			return m, tea.Quit
		case "r", "enter":
			if m.loop.State().GameOver {
				return m, tickCmd(m.loop.OnRestart())
			}
			return m, nil
		}
		m.loop.OnKey(loop.Key(msg.String()))
	case TickMsg:
		if m.loop.OnTick(msg.Gen) {
			return m, tickCmd(msg.Gen)
		}
	}
	return m, nil
}

func (m Model) View() string {
	return Render(m.loop.State(), m.styles)
}
