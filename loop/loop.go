// Package loop drives a game.GameState from timer ticks and key presses.
//
// A Loop is owned by a single driver that delivers ticks and keys one at a
// time. It holds the only live state and replaces it wholesale on every
// transition; observers only ever see copies.
package loop

import (
	"log/slog"
	"time"

	"github.com/brensch/gridsnake/game"
)

// Interval is the fixed time between ticks.
const Interval = 120 * time.Millisecond

// Key is a raw key identifier as reported by the terminal.
type Key string

const (
	KeyUp    Key = "up"
	KeyDown  Key = "down"
	KeyLeft  Key = "left"
	KeyRight Key = "right"
)

var keyDirections = map[Key]game.Direction{
	KeyUp:    game.Up,
	KeyDown:  game.Down,
	KeyLeft:  game.Left,
	KeyRight: game.Right,
}

// DirectionForKey maps an arrow key to a direction.
func DirectionForKey(k Key) (game.Direction, bool) {
	d, ok := keyDirections[k]
	return d, ok
}

// Observer receives every published snapshot. It must not block.
type Observer func(game.Snapshot)

type Loop struct {
	state      game.GameState
	rng        game.Rand
	logger     *slog.Logger
	observers  []Observer
	running    bool
	generation uint64
}

// New starts a game immediately. The caller schedules the first tick for
// Generation().
func New(rng game.Rand, logger *slog.Logger) *Loop {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	l := &Loop{
		state:      game.New(rng),
		rng:        rng,
		logger:     logger,
		running:    true,
		generation: 1,
	}
	l.logger.Info("game started", "generation", l.generation, "food", l.state.Food)
	return l
}

// Observe registers fn and immediately hands it the current snapshot.
func (l *Loop) Observe(fn Observer) {
	l.observers = append(l.observers, fn)
	fn(l.state.Snapshot())
}

func (l *Loop) publish() {
	if len(l.observers) == 0 {
		return
	}
	snap := l.state.Snapshot()
	for _, fn := range l.observers {
		fn(snap)
	}
}

// State returns a copy of the current state for rendering.
func (l *Loop) State() game.Snapshot {
	return l.state.Snapshot()
}

// Running reports whether ticks should currently be scheduled.
func (l *Loop) Running() bool {
	return l.running
}

// Generation identifies the current tick schedule. It changes on every
// restart and on Stop.
func (l *Loop) Generation() uint64 {
	return l.generation
}

// OnTick advances the game if gen belongs to the current schedule. It
// returns whether another tick should be scheduled for gen.
func (l *Loop) OnTick(gen uint64) bool {
	if gen != l.generation || !l.running {
		return false
	}

	cause := l.state.NextCollision()
	l.state = l.state.Tick(l.rng)
	l.publish()

	if l.state.GameOver {
		l.running = false
		l.logger.Info("game over",
			"cause", cause.String(),
			"score", l.state.Score,
			"turn", l.state.Turn,
			"length", len(l.state.Snake),
		)
		return false
	}
	return true
}

// OnKey forwards arrow keys to the game. Anything else, and every key after
// the game has ended, is ignored.
func (l *Loop) OnKey(k Key) {
	if l.state.GameOver {
		return
	}
	d, ok := DirectionForKey(k)
	if !ok {
		return
	}
	next, eff := l.state.SetDirection(d)
	if eff != d {
		l.logger.Debug("direction rejected", "requested", d.String(), "heading", l.state.Heading.String())
		return
	}
	l.state = next
}

// OnRestart replaces the game with a fresh one and starts a new tick
// schedule. Ticks still in flight for the old schedule are dropped.
func (l *Loop) OnRestart() uint64 {
	prevScore := l.state.Score
	l.state = game.Reset(l.rng)
	l.generation++
	l.running = true
	l.logger.Info("game restarted", "generation", l.generation, "previous_score", prevScore)
	l.publish()
	return l.generation
}

// Stop cancels the tick schedule. No tick delivered afterwards has any
// effect until OnRestart.
func (l *Loop) Stop() {
	l.generation++
	if l.running {
		l.running = false
		l.logger.Info("loop stopped", "score", l.state.Score, "turn", l.state.Turn)
	}
}
