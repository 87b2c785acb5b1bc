// Package config provides YAML-based configuration loading with embedded
// defaults for the 2048 terminal game.
package config

// Config is the root configuration.
type Config struct {
	Game    GameConfig    `yaml:"game"`
	UI      UIConfig      `yaml:"ui"`
	Storage StorageConfig `yaml:"storage"`
}

// GameConfig tunes the engine-facing knobs. The board size and the
// winning tile are fixed by the rules and deliberately not configurable.
type GameConfig struct {
	// Spawn4Probability is the chance a spawned tile is a 4 (0.0-1.0).
	Spawn4Probability float64 `yaml:"spawn4_probability"`

	// SpawnDelayMS delays the post-move spawn so merge animations can
	// finish before the new tile pops in. 0 spawns synchronously.
	SpawnDelayMS int `yaml:"spawn_delay_ms"`
}

// UIConfig tunes presentation.
type UIConfig struct {
	Theme     string `yaml:"theme"`      // "classic" or "mono"
	ShowHints bool   `yaml:"show_hints"` // control hints under the board
}

// StorageConfig tunes persistence.
type StorageConfig struct {
	Path string `yaml:"path"` // SQLite database path, ~ is expanded
}

// Default returns the hardcoded fallback configuration, used when the
// embedded YAML cannot be parsed.
func Default() Config {
	return Config{
		Game: GameConfig{
			Spawn4Probability: 0.10,
			SpawnDelayMS:      0,
		},
		UI: UIConfig{
			Theme:     "classic",
			ShowHints: true,
		},
		Storage: StorageConfig{
			Path: "~/.tui2048/scores.db",
		},
	}
}
