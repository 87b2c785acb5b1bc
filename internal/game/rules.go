package game

// HasWon returns true if any tile has reached the winning value.
func HasWon(tiles []Tile) bool {
	for _, t := range tiles {
		if t.Value >= WinValue {
			return true
		}
	}
	return false
}

// CanMove returns true if any legal move remains: an empty cell always
// permits a move; on a full board a move exists iff two row- or
// column-adjacent tiles share a value.
func CanMove(tiles []Tile) bool {
	grid := Grid(tiles)
	return grid.HasEmptyCell() || grid.HasAdjacentPair()
}
