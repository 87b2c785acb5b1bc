// Package game implements the 2048 engine: tile-identity move resolution,
// tile spawning, terminal-state detection, and the session controller that
// sequences them. The package contains pure logic with no UI or storage
// dependencies beyond a narrow persistence interface.
package game

// Direction represents a move direction.
type Direction int

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

// String returns a human-readable name for the direction.
func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "unknown"
	}
}

// BoardSize is the board dimension. The game is always played on 4x4.
const BoardSize = 4

// WinValue is the tile value that wins the game.
const WinValue = 2048

// Tile is a single numbered square. A tile keeps its identity while it
// slides; a merge consumes both source tiles and produces a tile with a
// fresh ID at the destination. New and Merged describe only the most
// recent move and are cleared before the next one resolves.
type Tile struct {
	ID     int
	Value  int
	Row    int
	Col    int
	New    bool
	Merged bool
}

// Board is the value grid derived from a tile set. Zero means empty.
type Board [BoardSize][BoardSize]int

// Grid materializes a tile set into its value grid.
func Grid(tiles []Tile) Board {
	var b Board
	for _, t := range tiles {
		b[t.Row][t.Col] = t.Value
	}
	return b
}

// HasEmptyCell returns true if there's at least one empty cell.
func (b Board) HasEmptyCell() bool {
	for y := range BoardSize {
		for x := range BoardSize {
			if b[y][x] == 0 {
				return true
			}
		}
	}
	return false
}

// HasAdjacentPair returns true if any two row- or column-adjacent tiles
// share a value. Diagonals never merge and are not checked.
func (b Board) HasAdjacentPair() bool {
	for y := range BoardSize {
		for x := range BoardSize {
			val := b[y][x]
			if val == 0 {
				continue
			}
			if x < BoardSize-1 && b[y][x+1] == val {
				return true
			}
			if y < BoardSize-1 && b[y+1][x] == val {
				return true
			}
		}
	}
	return false
}

// MaxTile returns the maximum tile value on the board.
func (b Board) MaxTile() int {
	maxVal := 0
	for y := range BoardSize {
		for x := range BoardSize {
			if b[y][x] > maxVal {
				maxVal = b[y][x]
			}
		}
	}
	return maxVal
}

// vector returns the per-step row/col delta for the direction.
func (d Direction) vector() (dr, dc int) {
	switch d {
	case DirUp:
		return -1, 0
	case DirDown:
		return 1, 0
	case DirLeft:
		return 0, -1
	default:
		return 0, 1
	}
}

// traversal returns all cell coordinates in settle order: cells nearest
// the destination edge first, so leading tiles vacate space before
// trailing tiles slide into the gaps they leave.
func (d Direction) traversal() [BoardSize * BoardSize][2]int {
	var order [BoardSize * BoardSize][2]int
	i := 0
	for r := range BoardSize {
		for c := range BoardSize {
			row, col := r, c
			if d == DirDown {
				row = BoardSize - 1 - r
			}
			if d == DirRight {
				col = BoardSize - 1 - c
			}
			order[i] = [2]int{row, col}
			i++
		}
	}
	return order
}

// inBounds reports whether (row, col) is on the board.
func inBounds(row, col int) bool {
	return row >= 0 && row < BoardSize && col >= 0 && col < BoardSize
}

// cloneTiles returns a copy of the tile set.
func cloneTiles(tiles []Tile) []Tile {
	out := make([]Tile, len(tiles))
	copy(out, tiles)
	return out
}
