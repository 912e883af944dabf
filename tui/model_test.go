package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/brensch/gridsnake/game"
	"github.com/brensch/gridsnake/loop"
)

type fixedRand int

func (f fixedRand) IntN(n int) int { return int(f) % n }

func newModel() (Model, *loop.Loop) {
	l := loop.New(fixedRand(0), nil)
	return NewModel(l), l
}

func key(s string) tea.KeyMsg {
	switch s {
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	mm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return mm, cmd
}

func TestModel_InitSchedulesTick(t *testing.T) {
	m, _ := newModel()
	if m.Init() == nil {
		t.Fatalf("Init returned no tick")
	}
}

func TestModel_TickAdvancesAndReschedules(t *testing.T) {
	m, l := newModel()
	m, cmd := update(t, m, TickMsg{Gen: l.Generation()})
	if cmd == nil {
		t.Fatalf("tick not rescheduled")
	}
	if head := l.State().Snake[0]; head != (game.Point{X: 9, Y: 10}) {
		t.Fatalf("head=%v", head)
	}

	_, cmd = update(t, m, TickMsg{Gen: l.Generation() + 41})
	if cmd != nil {
		t.Fatalf("foreign tick rescheduled")
	}
	if l.State().Turn != 1 {
		t.Fatalf("foreign tick applied")
	}
}

func TestModel_ArrowKeysSteer(t *testing.T) {
	m, l := newModel()
	m, _ = update(t, m, key("left")) // reverse, ignored
	m, _ = update(t, m, key("x"))    // unknown, ignored
	m, _ = update(t, m, key("up"))
	update(t, m, TickMsg{Gen: l.Generation()})

	if head := l.State().Snake[0]; head != (game.Point{X: 8, Y: 9}) {
		t.Fatalf("head=%v want (8,9)", head)
	}
}

func TestModel_GameOverAndRestart(t *testing.T) {
	m, l := newModel()
	gen := l.Generation()

	var cmd tea.Cmd
	for i := 0; i < 50; i++ {
		m, cmd = update(t, m, TickMsg{Gen: gen})
		if cmd == nil {
			break
		}
	}
	if !l.State().GameOver {
		t.Fatalf("game not over")
	}
	if !strings.Contains(m.View(), "Game Over!") {
		t.Fatalf("view missing game over notice:\n%s", m.View())
	}

	m, cmd = update(t, m, key("r"))
	if cmd == nil {
		t.Fatalf("restart did not schedule a tick")
	}
	if l.State().GameOver || l.State().Score != 0 || l.Generation() == gen {
		t.Fatalf("restart failed: %+v gen=%d", l.State(), l.Generation())
	}
	if strings.Contains(m.View(), "Game Over!") {
		t.Fatalf("game over notice after restart")
	}
	if msg := cmd(); msg != (TickMsg{Gen: l.Generation()}) {
		t.Fatalf("restart tick=%#v", msg)
	}
}

func TestModel_RestartIgnoredMidGame(t *testing.T) {
	m, l := newModel()
	gen := l.Generation()
	_, cmd := update(t, m, key("enter"))
	if cmd != nil || l.Generation() != gen {
		t.Fatalf("restart accepted while playing")
	}
}

func TestModel_QuitStopsLoop(t *testing.T) {
	m, l := newModel()
	gen := l.Generation()
	_, cmd := update(t, m, key("ctrl+c"))
	if cmd == nil {
		t.Fatalf("no quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("cmd did not quit")
	}
	if l.Running() || l.OnTick(gen) {
		t.Fatalf("loop still ticking after quit")
	}
}

func TestBoard(t *testing.T) {
	s := game.Snapshot{
		Snake: []game.Point{{X: 2, Y: 1}, {X: 1, Y: 1}, {X: 0, Y: 1}},
		Food:  game.Point{X: 19, Y: 19},
	}
	lines := Board(s)
	if len(lines) != game.BoardSize {
		t.Fatalf("rows=%d", len(lines))
	}
	if want := " o o @" + strings.Repeat(" .", game.BoardSize-3); lines[1] != want {
		t.Fatalf("row 1=%q want %q", lines[1], want)
	}
	if !strings.HasSuffix(lines[19], " *") {
		t.Fatalf("food missing: %q", lines[19])
	}
	if n := strings.Count(strings.Join(lines, ""), "*"); n != 1 {
		t.Fatalf("food cells=%d want 1", n)
	}
}

func TestBoard_NoFood(t *testing.T) {
	s := game.Snapshot{Snake: []game.Point{{X: 0, Y: 0}}, Food: game.NoFood}
	if joined := strings.Join(Board(s), ""); strings.Contains(joined, "*") {
		t.Fatalf("drew food for NoFood")
	}
}

func TestRender_Score(t *testing.T) {
	s := game.Snapshot{Snake: []game.Point{{X: 5, Y: 5}}, Food: game.Point{X: 1, Y: 1}, Score: 12}
	out := Render(s, DefaultStyles())
	if !strings.Contains(out, "Score: 12") {
		t.Fatalf("score missing:\n%s", out)
	}
	if strings.Contains(out, "Game Over!") {
		t.Fatalf("game over shown while playing")
	}
}
