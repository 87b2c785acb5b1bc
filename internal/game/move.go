package game

// MoveResult is the outcome of resolving one directional move.
type MoveResult struct {
	Tiles  []Tile // resulting tile set, row-major order
	Score  int    // sum of merged tile values created by this move
	Moved  bool   // any tile changed position
	Merged bool   // at least one merge occurred
}

// Move resolves a directional shove of all tiles into a new tile set.
// Tiles slide along the movement vector until blocked; two equal tiles
// merge into a fresh-identity tile of double value at the blocking cell.
// Merging is strictly pairwise per move: a cell that received a merge
// cannot absorb a second one, so chains never form within a single move.
// The input tile set is not modified.
func (e *Engine) Move(tiles []Tile, dir Direction) MoveResult {
	work := make([]Tile, len(tiles))
	for i, t := range tiles {
		t.New = false
		t.Merged = false
		work[i] = t
	}

	var grid [BoardSize][BoardSize]*Tile
	for i := range work {
		grid[work[i].Row][work[i].Col] = &work[i]
	}

	// Per-cell marker: a destination that already absorbed a merge this
	// move blocks further merges into it.
	var mergedInto [BoardSize][BoardSize]bool

	res := MoveResult{}
	dr, dc := dir.vector()

	for _, cell := range dir.traversal() {
		t := grid[cell[0]][cell[1]]
		if t == nil {
			continue
		}

		// Walk step by step toward the destination edge.
		row, col := t.Row, t.Col
		for {
			nr, nc := row+dr, col+dc
			if !inBounds(nr, nc) {
				break
			}

			next := grid[nr][nc]
			if next == nil {
				row, col = nr, nc
				continue
			}

			if next.Value == t.Value && !mergedInto[nr][nc] {
				// Both sources die; the destination holds a new identity.
				grid[t.Row][t.Col] = nil
				*next = Tile{
					ID:     e.nextID(),
					Value:  t.Value * 2,
					Row:    nr,
					Col:    nc,
					Merged: true,
				}
				mergedInto[nr][nc] = true
				res.Score += next.Value
				res.Merged = true
				res.Moved = true
				t = nil
			}
			break
		}

		if t != nil && (row != t.Row || col != t.Col) {
			grid[t.Row][t.Col] = nil
			t.Row, t.Col = row, col
			grid[row][col] = t
			res.Moved = true
		}
	}

	// Every surviving tile sits in the grid at its final position.
	res.Tiles = make([]Tile, 0, len(work))
	for r := range BoardSize {
		for c := range BoardSize {
			if grid[r][c] != nil {
				res.Tiles = append(res.Tiles, *grid[r][c])
			}
		}
	}

	return res
}
