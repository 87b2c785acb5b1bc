package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-2048/internal/game"
	"github.com/vovakirdan/tui-2048/internal/platform/tui"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play the game",
	Long: `Start the game in the current terminal.

Controls:
  Arrows/WASD/HJKL - Move tiles
  u                - Undo last move
  n                - New game
  c                - Keep playing after winning
  m                - Toggle mute
  t                - Game history
  q/Ctrl+C         - Quit

Examples:
  tui2048 play
  tui2048 play --seed 42
  tui2048 play --config ./my-config.yaml`,
	Run: runPlay,
}

func runPlay(cmd *cobra.Command, args []string) {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Open storage; the game still works without it.
	store, err := storage.Open(cfg.Storage.Path)
	if err != nil {
		log.Warn("could not open database, playing without persistence", "error", err)
		store = nil
	}

	var bestStore game.BestScoreStore
	if store != nil {
		bestStore = store
	}

	session := game.NewSession(game.SessionConfig{
		Seed:       flagSeed,
		Spawn4Prob: cfg.Game.Spawn4Probability,
		DeferSpawn: cfg.Game.SpawnDelayMS > 0,
		Store:      bestStore,
	})

	// Sanity-check the terminal before entering the alt screen.
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		if w < tui.MinWidth || h < tui.MinHeight {
			fmt.Fprintf(os.Stderr, "Terminal too small (%dx%d), need at least %dx%d\n",
				w, h, tui.MinWidth, tui.MinHeight)
			os.Exit(1)
		}
	}

	runErr := tui.Run(session, store, cfg)

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
