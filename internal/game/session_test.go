package game

import (
	"errors"
	"testing"
)

// recordingStore is an in-memory BestScoreStore for tests.
type recordingStore struct {
	best   int
	writes int
	fail   bool
}

func (r *recordingStore) BestScore() (int, error) {
	if r.fail {
		return 0, errors.New("store unavailable")
	}
	return r.best, nil
}

func (r *recordingStore) SetBestScore(score int) error {
	if r.fail {
		return errors.New("store unavailable")
	}
	r.best = score
	r.writes++
	return nil
}

// moveAny applies the first direction that results in an accepted move.
func moveAny(t *testing.T, s *Session) MoveOutcome {
	t.Helper()
	for _, dir := range []Direction{DirLeft, DirRight, DirUp, DirDown} {
		if out := s.Move(dir); out.Moved {
			return out
		}
	}
	t.Fatal("no direction produced a move")
	return MoveOutcome{}
}

func TestNewSessionStartsWithTwoTiles(t *testing.T) {
	s := NewSession(SessionConfig{Seed: 1})

	tiles := s.Tiles()
	if len(tiles) != 2 {
		t.Fatalf("tile count = %d, want 2", len(tiles))
	}
	if s.Score() != 0 {
		t.Errorf("score = %d, want 0", s.Score())
	}
	if s.GameOver() || s.Won() || s.CanUndo() {
		t.Error("fresh session should have no terminal flags and no undo")
	}
}

func TestMoveSpawnsAndScores(t *testing.T) {
	s := NewSession(SessionConfig{Seed: 1})
	s.tiles = tilesFromBoard(Board{{2, 2, 0, 0}})

	out := s.Move(DirLeft)
	if !out.Moved || !out.Merged {
		t.Fatalf("outcome = %+v, want moved and merged", out)
	}
	if out.ScoreGained != 4 || s.Score() != 4 {
		t.Errorf("score = %d (gained %d), want 4", s.Score(), out.ScoreGained)
	}

	// One merged tile plus one spawned tile.
	if got := len(s.Tiles()); got != 2 {
		t.Errorf("tile count = %d, want 2", got)
	}
	if !s.CanUndo() {
		t.Error("an accepted move should arm undo")
	}
}

func TestRejectedMoveIsFullNoOp(t *testing.T) {
	s := NewSession(SessionConfig{Seed: 1})
	s.tiles = tilesFromBoard(Board{{2, 4, 8, 16}})

	out := s.Move(DirLeft)
	if out.Moved {
		t.Fatal("packed row should not move left")
	}
	if got := len(s.Tiles()); got != 4 {
		t.Errorf("tile count = %d, want 4 (no spawn on rejected move)", got)
	}
	if s.Score() != 0 || s.CanUndo() {
		t.Error("rejected move must not change score or arm undo")
	}
}

func TestUndoIsSingleLevel(t *testing.T) {
	s := NewSession(SessionConfig{Seed: 1})

	moveAny(t, s)
	afterFirst := Grid(s.Tiles())
	scoreFirst := s.Score()

	moveAny(t, s)

	if !s.Undo() {
		t.Fatal("undo should succeed after a move")
	}
	if got := Grid(s.Tiles()); got != afterFirst {
		t.Errorf("undo restored\n%v\nwant state after first move\n%v", got, afterFirst)
	}
	if s.Score() != scoreFirst {
		t.Errorf("undo score = %d, want %d", s.Score(), scoreFirst)
	}
	if s.CanUndo() {
		t.Error("undo must consume the snapshot")
	}
	if s.Undo() {
		t.Error("second undo should be a no-op")
	}
}

func TestUndoClearsTerminalFlags(t *testing.T) {
	s := NewSession(SessionConfig{Seed: 1})
	s.prev = &snapshot{tiles: tilesFromBoard(Board{{2, 0, 2, 0}}), score: 12}
	s.gameOver = true

	if !s.Undo() {
		t.Fatal("undo should succeed")
	}
	if s.GameOver() {
		t.Error("undo should leave the terminal state")
	}
	if s.Score() != 12 {
		t.Errorf("score = %d, want 12", s.Score())
	}
}

func TestGameOverAfterSpawnFillsLastCell(t *testing.T) {
	s := NewSession(SessionConfig{Seed: 1})
	s.tiles = tilesFromBoard(Board{
		{8, 16, 2, 4},
		{16, 8, 4, 2},
		{8, 16, 2, 4},
		{32, 64, 8, 0},
	})

	out := s.Move(DirRight)
	if !out.Moved {
		t.Fatal("bottom row should slide right")
	}
	if !out.GameOver || !s.GameOver() {
		t.Errorf("board %v should be game over after the spawn", s.Grid())
	}
}

func TestWinTriggersOnceAndKeepPlayingSuppressesIt(t *testing.T) {
	s := NewSession(SessionConfig{Seed: 1})
	s.tiles = tilesFromBoard(Board{{1024, 1024, 0, 0}})

	out := s.Move(DirLeft)
	if !out.Won || !s.Won() {
		t.Fatal("merging to 2048 should set won")
	}

	// Moves are rejected while the win overlay is up.
	if reject := s.Move(DirRight); reject.Moved {
		t.Error("move should be rejected while won and not keep-playing")
	}

	s.KeepPlaying()
	if s.Won() {
		t.Error("keep playing should dismiss the win overlay")
	}
	if !s.IsKeepPlaying() {
		t.Error("keep playing flag should be set")
	}

	// Another winning tile must not retrigger the overlay.
	s.tiles = tilesFromBoard(Board{{2048, 1024, 1024, 0}})
	out = s.Move(DirRight)
	if !out.Moved {
		t.Fatal("move should be accepted after keep playing")
	}
	if out.Won || s.Won() {
		t.Error("win overlay retriggered after keep playing")
	}
}

func TestKeepPlayingOnlyValidFromWin(t *testing.T) {
	s := NewSession(SessionConfig{Seed: 1})
	s.KeepPlaying()
	if s.IsKeepPlaying() {
		t.Error("keep playing should be ignored when the game is not won")
	}
}

func TestNewGamePreservesBestScore(t *testing.T) {
	store := &recordingStore{best: 100}
	s := NewSession(SessionConfig{Seed: 1, Store: store})

	if s.Best() != 100 {
		t.Fatalf("best = %d, want 100 from store", s.Best())
	}

	s.tiles = tilesFromBoard(Board{{64, 64, 64, 64}})
	s.Move(DirLeft)
	if s.Best() != 256 {
		t.Fatalf("best = %d, want 256", s.Best())
	}
	if store.best != 256 || store.writes != 1 {
		t.Errorf("store best = %d after %d writes, want 256 after 1", store.best, store.writes)
	}

	s.NewGame()
	if s.Score() != 0 {
		t.Errorf("score = %d, want 0 after new game", s.Score())
	}
	if s.Best() != 256 {
		t.Errorf("best = %d, want 256 preserved across games", s.Best())
	}
	if s.CanUndo() || s.Won() || s.GameOver() || s.IsKeepPlaying() {
		t.Error("new game should clear all per-game state")
	}
}

func TestSessionSurvivesFailingStore(t *testing.T) {
	s := NewSession(SessionConfig{Seed: 1, Store: &recordingStore{fail: true}})
	s.tiles = tilesFromBoard(Board{{2, 2, 0, 0}})

	out := s.Move(DirLeft)
	if !out.Moved || s.Best() != 4 {
		t.Errorf("best = %d, want 4 kept in memory despite store failure", s.Best())
	}
}

func TestDeferredSpawnToken(t *testing.T) {
	s := NewSession(SessionConfig{Seed: 1, DeferSpawn: true})
	s.tiles = tilesFromBoard(Board{{2, 2, 0, 0}})

	out := s.Move(DirLeft)
	if out.SpawnToken == 0 {
		t.Fatal("deferred move should return a spawn token")
	}
	if got := len(s.Tiles()); got != 1 {
		t.Fatalf("tile count = %d before spawn completes, want 1", got)
	}

	// A second move is rejected while the spawn is pending.
	if second := s.Move(DirRight); second.Moved {
		t.Error("move accepted while a spawn is pending")
	}

	if s.CompleteSpawn(out.SpawnToken - 1) {
		t.Error("stale token must not spawn")
	}
	if !s.CompleteSpawn(out.SpawnToken) {
		t.Fatal("current token should spawn")
	}
	if got := len(s.Tiles()); got != 2 {
		t.Errorf("tile count = %d after spawn, want 2", got)
	}
	if s.CompleteSpawn(out.SpawnToken) {
		t.Error("token must be single-use")
	}
}

func TestResetInvalidatesPendingSpawn(t *testing.T) {
	s := NewSession(SessionConfig{Seed: 1, DeferSpawn: true})
	s.tiles = tilesFromBoard(Board{{2, 2, 0, 0}})

	out := s.Move(DirLeft)
	s.NewGame()

	if s.CompleteSpawn(out.SpawnToken) {
		t.Error("new game must invalidate the pending spawn")
	}
	if got := len(s.Tiles()); got != 2 {
		t.Errorf("tile count = %d, want the 2 fresh tiles only", got)
	}

	// Same discipline for undo.
	out = moveAny(t, s)
	if out.SpawnToken == 0 {
		t.Fatal("expected a pending spawn")
	}
	if !s.Undo() {
		t.Fatal("undo should succeed")
	}
	if s.CompleteSpawn(out.SpawnToken) {
		t.Error("undo must invalidate the pending spawn")
	}
}
