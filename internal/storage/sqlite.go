// Package storage provides SQLite-based persistence for the best score,
// user settings, and finished-game history.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/tui-2048/internal/game"
)

// GameKey is the fixed identifier scores and settings are stored under.
// There is a single game, but the schema keys rows anyway so the database
// stays forward-compatible with variants.
const GameKey = "2048"

// Settings keys.
const (
	settingMute = "mute"
)

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// GameRecord represents one finished game.
type GameRecord struct {
	ID        int64
	Score     int
	MaxTile   int
	Won       bool
	CreatedAt time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS best_scores (
			game_id TEXT PRIMARY KEY,
			score INTEGER NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS settings (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS games (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			game_id TEXT NOT NULL,
			score INTEGER NOT NULL,
			max_tile INTEGER NOT NULL,
			won INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_games_game_id ON games(game_id);
		CREATE INDEX IF NOT EXISTS idx_games_recent ON games(game_id, created_at DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// BestScore returns the persisted best score, or 0 if none exists.
func (s *Store) BestScore() (int, error) {
	var score int
	err := s.db.QueryRow(
		"SELECT score FROM best_scores WHERE game_id = ?",
		GameKey,
	).Scan(&score)

	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query best score: %w", err)
	}

	return score, nil
}

// SetBestScore stores the best score. Last write wins.
func (s *Store) SetBestScore(score int) error {
	_, err := s.db.Exec(
		`INSERT INTO best_scores (game_id, score, updated_at)
		 VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(game_id) DO UPDATE SET score = excluded.score, updated_at = excluded.updated_at`,
		GameKey, score,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save best score: %w", err)
	}
	return nil
}

// Mute returns the persisted mute flag. Defaults to false.
func (s *Store) Mute() (bool, error) {
	var value string
	err := s.db.QueryRow(
		"SELECT value FROM settings WHERE key = ?",
		settingMute,
	).Scan(&value)

	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("storage: cannot query mute setting: %w", err)
	}

	muted, err := strconv.ParseBool(value)
	if err != nil {
		return false, nil
	}
	return muted, nil
}

// SetMute stores the mute flag. Last write wins.
func (s *Store) SetMute(muted bool) error {
	_, err := s.db.Exec(
		`INSERT INTO settings (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		settingMute, strconv.FormatBool(muted),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save mute setting: %w", err)
	}
	return nil
}

// SaveGame records a finished game for the history view.
// Returns the ID of the inserted record.
func (s *Store) SaveGame(score, maxTile int, won bool) (int64, error) {
	result, err := s.db.Exec(
		"INSERT INTO games (game_id, score, max_tile, won) VALUES (?, ?, ?, ?)",
		GameKey, score, maxTile, won,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save game: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// RecentGames retrieves the most recently finished games, newest first.
func (s *Store) RecentGames(limit int) ([]GameRecord, error) {
	return s.queryGames(
		`SELECT id, score, max_tile, won, created_at
		 FROM games
		 WHERE game_id = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		limit,
	)
}

// TopGames retrieves the highest scoring finished games.
func (s *Store) TopGames(limit int) ([]GameRecord, error) {
	return s.queryGames(
		`SELECT id, score, max_tile, won, created_at
		 FROM games
		 WHERE game_id = ?
		 ORDER BY score DESC
		 LIMIT ?`,
		limit,
	)
}

func (s *Store) queryGames(query string, limit int) ([]GameRecord, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(query, GameKey, limit)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query games: %w", err)
	}
	defer rows.Close()

	var records []GameRecord
	for rows.Next() {
		var rec GameRecord
		var createdAt any
		if err := rows.Scan(&rec.ID, &rec.Score, &rec.MaxTile, &rec.Won, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}

		// Parse the datetime - handle both time.Time and string
		switch v := createdAt.(type) {
		case time.Time:
			rec.CreatedAt = v
		case string:
			if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
				rec.CreatedAt = parsed
			}
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return records, nil
}

// ClearHistory deletes all finished-game records. The best score and
// settings are untouched.
func (s *Store) ClearHistory() error {
	_, err := s.db.Exec("DELETE FROM games WHERE game_id = ?", GameKey)
	if err != nil {
		return fmt.Errorf("storage: cannot clear history: %w", err)
	}
	return nil
}

// Stats contains aggregated statistics across finished games.
type Stats struct {
	GamesCount  int
	BestScore   int
	AvgScore    float64
	HighestTile int
	Wins        int
}

// GetStats retrieves aggregated statistics for the history view.
func (s *Store) GetStats() (*Stats, error) {
	stats := &Stats{}

	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0),
		        COALESCE(MAX(max_tile), 0), COALESCE(SUM(won), 0)
		 FROM games WHERE game_id = ?`,
		GameKey,
	).Scan(&stats.GamesCount, &stats.BestScore, &stats.AvgScore, &stats.HighestTile, &stats.Wins)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get stats: %w", err)
	}

	return stats, nil
}

// Ensure Store satisfies the session's persistence interface.
var _ game.BestScoreStore = (*Store)(nil)
