// food.go implements food placement.

package game

// Rand is the randomness food placement draws from.
// *math/rand/v2.Rand satisfies it.
type Rand interface {
	IntN(n int) int
}

// maxFoodAttempts bounds rejection sampling before falling back to a scan of
// the free cells. On a mostly empty board the first draw almost always lands.
const maxFoodAttempts = 4 * BoardSize * BoardSize

// PlaceFood picks a uniformly random cell not covered by snake.
// It returns NoFood when the snake fills the whole board.
func PlaceFood(snake []Point, rng Rand) Point {
	for range maxFoodAttempts {
		p := Point{X: rng.IntN(BoardSize), Y: rng.IntN(BoardSize)}
		if !contains(snake, p) {
			return p
		}
	}

	occupied := make(map[Point]bool, len(snake))
	for _, p := range snake {
		occupied[p] = true
	}
	freeSpots := make([]Point, 0, BoardSize*BoardSize)
	for y := 0; y < BoardSize; y++ {
		for x := 0; x < BoardSize; x++ {
			if p := (Point{X: x, Y: y}); !occupied[p] {
				freeSpots = append(freeSpots, p)
			}
		}
	}
	if len(freeSpots) == 0 {
		return NoFood
	}
	return freeSpots[rng.IntN(len(freeSpots))]
}
