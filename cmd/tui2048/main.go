// tui2048 is a terminal 2048 with undo, persistent best score, and an
// SSH server for remote play.
//
// Usage:
//
//	tui2048                  - Play (same as 'tui2048 play')
//	tui2048 play             - Play the game
//	tui2048 scores           - Show best score and game history
//	tui2048 serve            - Start SSH server for remote play
//
// Global flags:
//
//	--config <path>       - Path to a config YAML
//	--db <path>           - Database path (default: ~/.tui2048/scores.db)
//	--seed <value>        - RNG seed for reproducible games
//	--spawn-delay <ms>    - Delay before the new tile appears (-1 = from config)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/config"
)

var (
	// Global flags
	flagConfig     string
	flagDBPath     string
	flagSeed       int64
	flagSpawnDelay int
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tui2048",
	Short: "2048 in your terminal",
	Long: `tui2048 is a terminal version of the 2048 puzzle: slide tiles, merge
equal pairs, reach 2048. One level of undo, a persistent best score, and
remote play over SSH.

Available commands:
  play     - Play the game (default)
  scores   - Show best score and game history
  serve    - Start SSH server for remote play

Examples:
  tui2048
  tui2048 play --seed 42
  tui2048 play --spawn-delay 120
  tui2048 scores
  tui2048 serve --ssh :2222`,
	Run: runPlay,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to database (overrides config)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().IntVar(&flagSpawnDelay, "spawn-delay", -1, "New-tile delay in ms (-1 = from config)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
}

// loadConfig loads the YAML config and applies flag overrides.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}

	if flagDBPath != "" {
		cfg.Storage.Path = flagDBPath
	}
	if flagSpawnDelay >= 0 {
		cfg.Game.SpawnDelayMS = flagSpawnDelay
	}

	return cfg, nil
}
