// Package game defines the core state and transitions for a single-player
// grid snake game.
//
// GameState is a value. Every transition returns a new state with its own
// snake slice, so a state handed to a renderer can never change underneath it.
package game

import (
	"fmt"
	"strings"
)

// BoardSize is the width and height of the square grid.
const BoardSize = 20

// Point is a board coordinate. (0,0) is the top-left cell and Y grows downward.
type Point struct {
	X int
	Y int
}

// NoFood marks a board with no free cell left for food.
var NoFood = Point{X: -1, Y: -1}

// Add returns p translated by d.
func (p Point) Add(d Direction) Point {
	return Point{X: p.X + d.X, Y: p.Y + d.Y}
}

// InBounds reports whether p lies on the board.
func (p Point) InBounds() bool {
	return p.X >= 0 && p.X < BoardSize && p.Y >= 0 && p.Y < BoardSize
}

// Direction is a unit step on the grid.
type Direction struct {
	X int
	Y int
}

var (
	Up    = Direction{X: 0, Y: -1}
	Down  = Direction{X: 0, Y: 1}
	Left  = Direction{X: -1, Y: 0}
	Right = Direction{X: 1, Y: 0}
)

// Opposite returns the reverse direction.
func (d Direction) Opposite() Direction {
	return Direction{X: -d.X, Y: -d.Y}
}

// Valid reports whether d is one of the four unit steps.
func (d Direction) Valid() bool {
	switch d {
	case Up, Down, Left, Right:
		return true
	}
	return false
}

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	}
	return fmt.Sprintf("(%d,%d)", d.X, d.Y)
}

// InitialSnake is the head-first body every game starts with.
var InitialSnake = []Point{{X: 8, Y: 10}, {X: 7, Y: 10}, {X: 6, Y: 10}}

// InitialHeading is the direction every game starts with.
var InitialHeading = Right

// GameState is the complete simulation state.
//
// Heading is the direction applied by the most recent tick. Pending is the
// last accepted request and is what the next tick will apply.
type GameState struct {
	Snake    []Point
	Heading  Direction
	Pending  Direction
	Food     Point
	Score    int
	GameOver bool
	Turn     int
}

// New returns a fresh game with the fixed starting snake and random food.
func New(rng Rand) GameState {
	snake := make([]Point, len(InitialSnake))
	copy(snake, InitialSnake)
	return GameState{
		Snake:   snake,
		Heading: InitialHeading,
		Pending: InitialHeading,
		Food:    PlaceFood(snake, rng),
	}
}

// Reset discards everything about the current game and starts over.
func Reset(rng Rand) GameState {
	return New(rng)
}

// Head returns the first body segment.
func (s GameState) Head() Point {
	return s.Snake[0]
}

// Occupies reports whether any snake segment sits on p.
func (s GameState) Occupies(p Point) bool {
	return contains(s.Snake, p)
}

// Clone performs a deep copy of the state.
func (s GameState) Clone() GameState {
	out := s
	out.Snake = make([]Point, len(s.Snake))
	copy(out.Snake, s.Snake)
	return out
}

// Snapshot is the read-only view handed to presentation.
type Snapshot struct {
	Snake    []Point
	Food     Point
	Score    int
	GameOver bool
	Heading  Direction
	Turn     int
}

// Snapshot copies the parts of the state a renderer needs.
func (s GameState) Snapshot() Snapshot {
	snake := make([]Point, len(s.Snake))
	copy(snake, s.Snake)
	return Snapshot{
		Snake:    snake,
		Food:     s.Food,
		Score:    s.Score,
		GameOver: s.GameOver,
		Heading:  s.Heading,
		Turn:     s.Turn,
	}
}

// String draws the board: H head, o body, F food, . empty.
func (s GameState) String() string {
	grid := make([][]byte, BoardSize)
	for y := range grid {
		grid[y] = []byte(strings.Repeat(".", BoardSize))
	}
	if s.Food.InBounds() {
		grid[s.Food.Y][s.Food.X] = 'F'
	}
	for i, p := range s.Snake {
		if !p.InBounds() {
			continue
		}
		if i == 0 {
			grid[p.Y][p.X] = 'H'
		} else {
			grid[p.Y][p.X] = 'o'
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Turn=%d Score=%d Heading=%s Pending=%s Over=%t\n", s.Turn, s.Score, s.Heading, s.Pending, s.GameOver)
	for _, row := range grid {
		b.Write(row)
		b.WriteByte('\n')
	}
	return b.String()
}

func contains(body []Point, p Point) bool {
	for _, bp := range body {
		if bp == p {
			return true
		}
	}
	return false
}
