package game

import "math/rand"

// DefaultSpawn4Probability is the chance a spawned tile is a 4 instead of a 2.
const DefaultSpawn4Probability = 0.10

// Engine owns tile identity allocation and spawn randomness for one game.
// The ID sequence restarts on Initialize, so identities are unique only
// within a single game.
type Engine struct {
	rng        *rand.Rand
	spawn4Prob float64
	nextTileID int
}

// NewEngine creates an engine backed by the given random source.
// Inject a seeded source in tests for deterministic spawns.
func NewEngine(rng *rand.Rand) *Engine {
	return &Engine{
		rng:        rng,
		spawn4Prob: DefaultSpawn4Probability,
	}
}

// SetSpawn4Probability overrides the chance of spawning a 4 (0.0-1.0).
func (e *Engine) SetSpawn4Probability(p float64) {
	if p < 0 || p > 1 {
		return
	}
	e.spawn4Prob = p
}

// nextID allocates a tile identity. IDs are monotonically increasing and
// never reused while a tile is live.
func (e *Engine) nextID() int {
	e.nextTileID++
	return e.nextTileID
}

// Initialize returns the opening board: two spawned tiles on an empty
// grid. The identity allocator restarts.
func (e *Engine) Initialize() []Tile {
	e.nextTileID = 0
	tiles := e.Spawn(nil)
	return e.Spawn(tiles)
}

// Spawn adds one tile (2 or 4) on a uniformly random empty cell and
// clears the New/Merged flags on all previously existing tiles. A full
// board is returned unchanged apart from the flag reset; that state is
// only reachable transiently and is not an error.
func (e *Engine) Spawn(tiles []Tile) []Tile {
	out := make([]Tile, 0, len(tiles)+1)
	for _, t := range tiles {
		t.New = false
		t.Merged = false
		out = append(out, t)
	}

	empty := emptyCells(tiles)
	if len(empty) == 0 {
		return out
	}

	cell := empty[e.rng.Intn(len(empty))]
	value := 2
	if e.rng.Float64() < e.spawn4Prob {
		value = 4
	}

	return append(out, Tile{
		ID:    e.nextID(),
		Value: value,
		Row:   cell[0],
		Col:   cell[1],
		New:   true,
	})
}

// emptyCells returns the coordinates of all unoccupied cells in row-major
// order. The order is stable so seeded runs are reproducible.
func emptyCells(tiles []Tile) [][2]int {
	var occupied [BoardSize][BoardSize]bool
	for _, t := range tiles {
		occupied[t.Row][t.Col] = true
	}

	var cells [][2]int
	for r := range BoardSize {
		for c := range BoardSize {
			if !occupied[r][c] {
				cells = append(cells, [2]int{r, c})
			}
		}
	}
	return cells
}
