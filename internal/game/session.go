package game

import (
	"math/rand"
	"time"
)

// BestScoreStore persists the best score across games. Writes are
// last-write-wins; implementations live outside the engine. A nil store
// disables persistence.
type BestScoreStore interface {
	BestScore() (int, error)
	SetBestScore(score int) error
}

// snapshot is a single-slot undo record.
type snapshot struct {
	tiles []Tile
	score int
}

// SessionConfig configures a game session.
type SessionConfig struct {
	// Seed for the spawn RNG. 0 means seed from the current time.
	Seed int64

	// Spawn4Prob overrides the chance of spawning a 4. Values outside
	// (0, 1] fall back to the engine default.
	Spawn4Prob float64

	// DeferSpawn delays the post-move spawn until the presentation layer
	// calls CompleteSpawn with the token returned by Move. Used to let
	// merge animations finish before the new tile pops in.
	DeferSpawn bool

	// Store persists the best score. May be nil.
	Store BestScoreStore
}

// Session drives one player's game: it sequences move resolution,
// spawning, terminal checks, the single-level undo snapshot, and best
// score persistence. All methods are for a single goroutine; the only
// asynchrony is the optional deferred spawn, which is fenced by a
// monotonic token.
type Session struct {
	engine *Engine
	tiles  []Tile
	score  int
	best   int

	gameOver    bool
	won         bool
	keepPlaying bool

	prev  *snapshot
	store BestScoreStore

	deferSpawn   bool
	spawnPending bool
	spawnToken   uint64
}

// MoveOutcome reports what a Move call did, for the presentation layer.
type MoveOutcome struct {
	Moved       bool
	Merged      bool
	ScoreGained int
	SpawnToken  uint64 // nonzero when a spawn is pending for this move
	Won         bool
	GameOver    bool
}

// NewSession creates a session and starts the first game.
func NewSession(cfg SessionConfig) *Session {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	engine := NewEngine(rand.New(rand.NewSource(seed)))
	if cfg.Spawn4Prob > 0 {
		engine.SetSpawn4Probability(cfg.Spawn4Prob)
	}

	s := &Session{
		engine:     engine,
		store:      cfg.Store,
		deferSpawn: cfg.DeferSpawn,
	}

	if s.store != nil {
		if best, err := s.store.BestScore(); err == nil {
			s.best = best
		}
	}

	s.NewGame()
	return s
}

// Move applies one directional move. It is a full no-op while the game is
// over, while a win overlay is showing, while a spawn is pending, or when
// no tile would change position.
func (s *Session) Move(dir Direction) MoveOutcome {
	if s.gameOver || (s.won && !s.keepPlaying) || s.spawnPending {
		return MoveOutcome{}
	}

	res := s.engine.Move(s.tiles, dir)
	if !res.Moved {
		return MoveOutcome{}
	}

	s.prev = &snapshot{tiles: cloneTiles(s.tiles), score: s.score}
	s.tiles = res.Tiles
	s.score += res.Score

	if s.score > s.best {
		s.best = s.score
		if s.store != nil {
			//nolint:errcheck // Best-effort persist, the session keeps the value either way
			s.store.SetBestScore(s.best)
		}
	}

	out := MoveOutcome{
		Moved:       true,
		Merged:      res.Merged,
		ScoreGained: res.Score,
	}

	if s.deferSpawn {
		s.spawnPending = true
		s.spawnToken++
		out.SpawnToken = s.spawnToken
	} else {
		s.applySpawn()
	}

	out.Won = s.won
	out.GameOver = s.gameOver
	return out
}

// CompleteSpawn applies the deferred spawn for the given token. A stale
// token (superseded by undo or a new game) is ignored. Returns true if
// the spawn was applied.
func (s *Session) CompleteSpawn(token uint64) bool {
	if !s.spawnPending || token != s.spawnToken {
		return false
	}
	s.spawnPending = false
	s.applySpawn()
	return true
}

// applySpawn places the post-move tile and recomputes the terminal flags.
func (s *Session) applySpawn() {
	s.tiles = s.engine.Spawn(s.tiles)
	if !s.won && !s.keepPlaying && HasWon(s.tiles) {
		s.won = true
	}
	s.gameOver = !CanMove(s.tiles)
}

// NewGame resets everything except the best score and invalidates any
// pending spawn.
func (s *Session) NewGame() {
	s.spawnToken++
	s.spawnPending = false
	s.tiles = s.engine.Initialize()
	s.score = 0
	s.gameOver = false
	s.won = false
	s.keepPlaying = false
	s.prev = nil
}

// Undo restores the board and score from before the last accepted move.
// Undo is single-level: the snapshot is consumed, so it cannot chain.
// Returns false when there is nothing to undo.
func (s *Session) Undo() bool {
	if s.prev == nil {
		return false
	}
	s.spawnToken++
	s.spawnPending = false
	s.tiles = s.prev.tiles
	s.score = s.prev.score
	s.prev = nil
	s.gameOver = false
	s.won = false
	return true
}

// KeepPlaying dismisses the win overlay and lets the game continue past
// the winning tile. The overlay never retriggers for this game. Valid
// only while the win overlay is showing.
func (s *Session) KeepPlaying() {
	if !s.won {
		return
	}
	s.won = false
	s.keepPlaying = true
}

// Tiles returns a copy of the live tile set, carrying the New/Merged
// animation hints from the most recent move.
func (s *Session) Tiles() []Tile {
	return cloneTiles(s.tiles)
}

// Grid returns the value grid for the current board.
func (s *Session) Grid() Board {
	return Grid(s.tiles)
}

// Score returns the current game's score.
func (s *Session) Score() int {
	return s.score
}

// Best returns the best score across games.
func (s *Session) Best() int {
	return s.best
}

// GameOver reports whether no legal moves remain.
func (s *Session) GameOver() bool {
	return s.gameOver
}

// Won reports whether the win overlay is showing.
func (s *Session) Won() bool {
	return s.won
}

// IsKeepPlaying reports whether the player dismissed a win this game.
func (s *Session) IsKeepPlaying() bool {
	return s.keepPlaying
}

// CanUndo reports whether an undo snapshot is available.
func (s *Session) CanUndo() bool {
	return s.prev != nil
}

// SpawnPending reports whether a deferred spawn has not fired yet.
func (s *Session) SpawnPending() bool {
	return s.spawnPending
}

// MaxTile returns the highest tile value on the board.
func (s *Session) MaxTile() int {
	return s.Grid().MaxTile()
}
