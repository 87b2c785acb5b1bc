package game

import (
	"math/rand"
	"testing"
)

func TestInitialize(t *testing.T) {
	e := NewEngine(rand.New(rand.NewSource(3)))
	tiles := e.Initialize()

	if len(tiles) != 2 {
		t.Fatalf("initial tile count = %d, want 2", len(tiles))
	}
	for _, tile := range tiles {
		if tile.Value != 2 && tile.Value != 4 {
			t.Errorf("initial tile value = %d, want 2 or 4", tile.Value)
		}
	}
	if tiles[0].Row == tiles[1].Row && tiles[0].Col == tiles[1].Col {
		t.Error("initial tiles share a cell")
	}
	if tiles[0].ID == tiles[1].ID {
		t.Error("initial tiles share an identity")
	}
}

func TestInitializeRestartsIDAllocator(t *testing.T) {
	e := NewEngine(rand.New(rand.NewSource(3)))
	first := e.Initialize()
	second := e.Initialize()

	if first[0].ID != second[0].ID || first[1].ID != second[1].ID {
		t.Errorf("allocator did not restart: %d,%d then %d,%d",
			first[0].ID, first[1].ID, second[0].ID, second[1].ID)
	}
}

func TestSpawnOnEmptyCell(t *testing.T) {
	e := NewEngine(rand.New(rand.NewSource(5)))
	tiles := tilesFromBoard(Board{
		{2, 4, 2, 4},
		{4, 2, 4, 2},
		{2, 4, 2, 0},
	})
	e.nextTileID = len(tiles)

	out := e.Spawn(tiles)
	if len(out) != len(tiles)+1 {
		t.Fatalf("tile count = %d, want %d", len(out), len(tiles)+1)
	}

	spawned := out[len(out)-1]
	if !spawned.New {
		t.Error("spawned tile should carry the New flag")
	}
	if Grid(tiles)[spawned.Row][spawned.Col] != 0 {
		t.Errorf("spawned onto occupied cell (%d,%d)", spawned.Row, spawned.Col)
	}
}

func TestSpawnOnFullBoard(t *testing.T) {
	var full Board
	for r := range BoardSize {
		for c := range BoardSize {
			full[r][c] = 2
		}
	}
	tiles := tilesFromBoard(full)

	e := NewEngine(rand.New(rand.NewSource(5)))
	e.nextTileID = len(tiles)

	out := e.Spawn(tiles)
	if len(out) != len(tiles) {
		t.Fatalf("tile count = %d, want %d", len(out), len(tiles))
	}
	if Grid(out) != full {
		t.Error("full board should be returned unchanged")
	}
}

func TestSpawnClearsTransientFlags(t *testing.T) {
	tiles := []Tile{
		{ID: 1, Value: 4, Row: 0, Col: 0, Merged: true},
		{ID: 2, Value: 2, Row: 1, Col: 1, New: true},
	}

	e := NewEngine(rand.New(rand.NewSource(5)))
	e.nextTileID = len(tiles)

	out := e.Spawn(tiles)
	for _, tile := range out[:len(tiles)] {
		if tile.New || tile.Merged {
			t.Errorf("tile %d still carries flags from the previous move", tile.ID)
		}
	}
}

func TestSpawnValueDistribution(t *testing.T) {
	e := NewEngine(rand.New(rand.NewSource(9)))

	fours := 0
	const n = 5000
	for range n {
		out := e.Spawn(nil)
		if out[0].Value == 4 {
			fours++
		}
	}

	ratio := float64(fours) / n
	if ratio < 0.07 || ratio > 0.13 {
		t.Errorf("spawn-4 ratio = %.3f, want ~0.10", ratio)
	}
}

func TestHasWon(t *testing.T) {
	tests := []struct {
		name  string
		board Board
		want  bool
	}{
		{"empty", Board{}, false},
		{"below target", Board{{1024, 1024, 0, 0}}, false},
		{"at target", Board{{2048, 2, 0, 0}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HasWon(tilesFromBoard(tt.board)); got != tt.want {
				t.Errorf("HasWon = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCanMove(t *testing.T) {
	tests := []struct {
		name  string
		board Board
		want  bool
	}{
		{"empty board", Board{}, true},
		{"one empty cell", Board{
			{2, 4, 2, 4},
			{4, 2, 4, 2},
			{2, 4, 2, 4},
			{4, 2, 4, 0},
		}, true},
		{"full with horizontal pair", Board{
			{2, 2, 8, 4},
			{4, 8, 4, 2},
			{2, 4, 2, 4},
			{4, 2, 4, 2},
		}, true},
		{"full with vertical pair", Board{
			{2, 4, 2, 4},
			{4, 8, 4, 2},
			{2, 8, 2, 4},
			{4, 2, 4, 2},
		}, true},
		{"full with no pairs", Board{
			{2, 4, 2, 4},
			{4, 2, 4, 2},
			{2, 4, 2, 4},
			{4, 2, 4, 2},
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanMove(tilesFromBoard(tt.board)); got != tt.want {
				t.Errorf("CanMove = %v, want %v", got, tt.want)
			}
		})
	}
}
