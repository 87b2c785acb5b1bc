package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/storage"
)

var (
	flagScoresLimit int
	flagScoresTop   bool
	flagScoresClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show best score and game history",
	Long: `Display the persisted best score and the most recent finished games.

Examples:
  tui2048 scores
  tui2048 scores --limit 25
  tui2048 scores --top
  tui2048 scores --clear`,
	Run: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "How many games to show")
	scoresCmd.Flags().BoolVar(&flagScoresTop, "top", false, "Sort by score instead of recency")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete the game history (keeps the best score)")
}

func runScores(cmd *cobra.Command, args []string) {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	store, err := storage.Open(cfg.Storage.Path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagScoresClear {
		if err := store.ClearHistory(); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing history: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Game history cleared.")
		return
	}

	best, err := store.BestScore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading best score: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Best score: %d\n", best)
	fmt.Println()

	var games []storage.GameRecord
	if flagScoresTop {
		games, err = store.TopGames(flagScoresLimit)
	} else {
		games, err = store.RecentGames(flagScoresLimit)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving games: %v\n", err)
		os.Exit(1)
	}

	if len(games) == 0 {
		fmt.Println("No finished games recorded yet.")
		fmt.Println()
		fmt.Println("Run 'tui2048 play' to start one.")
		return
	}

	heading := "Recent games:"
	if flagScoresTop {
		heading = "Top games:"
	}
	fmt.Println(heading)
	fmt.Println()
	fmt.Printf("  %-10s  %-8s  %-4s  %s\n", "Score", "Max", "Won", "Date")
	fmt.Printf("  %-10s  %-8s  %-4s  %s\n", "-----", "---", "---", "----")

	for _, g := range games {
		won := ""
		if g.Won {
			won = "yes"
		}
		fmt.Printf("  %-10d  %-8d  %-4s  %s\n",
			g.Score, g.MaxTile, won, g.CreatedAt.Format("2006-01-02 15:04"))
	}

	if stats, err := store.GetStats(); err == nil && stats.GamesCount > 0 {
		fmt.Println()
		fmt.Printf("Played %d games, %d won, highest tile %d\n",
			stats.GamesCount, stats.Wins, stats.HighestTile)
	}
}
