package game

// Collision names what ended a game.
type Collision int

const (
	NoCollision Collision = iota
	WallCollision
	SelfCollision
)

func (c Collision) String() string {
	switch c {
	case WallCollision:
		return "wall"
	case SelfCollision:
		return "self"
	}
	return "none"
}

// SetDirection records a requested heading for the next tick and returns the
// direction that tick will use.
//
// A request for the exact reverse of the heading used by the most recent tick
// is rejected while the snake is longer than one segment. Comparing against
// Heading rather than Pending stops two quick presses between ticks from
// turning the snake back onto its own neck.
func (s GameState) SetDirection(req Direction) (GameState, Direction) {
	if s.GameOver || !req.Valid() {
		return s, s.Pending
	}
	if len(s.Snake) > 1 && req == s.Heading.Opposite() {
		return s, s.Pending
	}
	out := s.Clone()
	out.Pending = req
	return out, req
}

// NextCollision reports what the head would hit if the snake moved one cell
// along the pending heading. Walls are checked before the body.
func (s GameState) NextCollision() Collision {
	newHead := s.Head().Add(s.Pending)
	if !newHead.InBounds() {
		return WallCollision
	}
	// The tail still occupies its cell until this step has completed.
	if contains(s.Snake, newHead) {
		return SelfCollision
	}
	return NoCollision
}

// Tick advances the game by one cell.
//
// On collision the snake is left where it was and GameOver is set. Ticking a
// finished game returns it unchanged.
func (s GameState) Tick(rng Rand) GameState {
	if s.GameOver {
		return s
	}

	if s.NextCollision() != NoCollision {
		out := s.Clone()
		out.GameOver = true
		return out
	}

	newHead := s.Head().Add(s.Pending)
	newSnake := make([]Point, 0, len(s.Snake)+1)
	newSnake = append(newSnake, newHead)
	newSnake = append(newSnake, s.Snake...)

	out := s
	out.Heading = s.Pending
	out.Turn++

	if newHead == s.Food {
		out.Score++
		out.Food = PlaceFood(newSnake, rng)
	} else {
		newSnake = newSnake[:len(newSnake)-1]
	}
	out.Snake = newSnake

	return out
}
