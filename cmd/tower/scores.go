package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tower/internal/storage"
)

var (
	flagScoresLimit int
	flagScoresClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [key]",
	Short: "Show high scores",
	Long: `Display the top high scores.

Runs are recorded under the best-score key of their difficulty
(tower, tower_easy, tower_hard). Without a key, the key of the
selected --difficulty is used.

Examples:
  tower scores
  tower scores tower_hard
  tower scores --difficulty easy --limit 20
  tower scores --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of scores to show")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete all scores and the best score for the key")
}

func runScores(_ *cobra.Command, args []string) error {
	key := effectiveConfig(flagDifficulty).Scoring.BestScoreKey
	if len(args) == 1 {
		key = args[0]
	}

	store, err := storage.OpenURL(context.Background(), flagDBPath)
	if err != nil {
		return fmt.Errorf("open scores database: %w", err)
	}
	defer closeStore(store)

	if flagScoresClear {
		if err := store.ClearScores(key); err != nil {
			return fmt.Errorf("clear scores: %w", err)
		}
		fmt.Printf("Cleared scores for %s\n", key)
		return nil
	}

	scores, err := store.TopScores(key, flagScoresLimit)
	if err != nil {
		return fmt.Errorf("retrieve scores: %w", err)
	}

	fmt.Printf("High Scores - %s\n", key)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Play 'tower play' to set the first high score!")
		return nil
	}

	fmt.Printf("  %-4s  %-10s  %s\n", "Rank", "Score", "Date")
	fmt.Printf("  %-4s  %-10s  %s\n", "----", "-----", "----")

	for i, entry := range scores {
		dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-10d  %s\n", i+1, entry.Score, dateStr)
	}

	fmt.Println()
	best, ok, err := store.BestScore(key)
	switch {
	case err != nil:
		logger.Warn("could not read best score", "key", key, "error", err)
	case ok:
		fmt.Printf("Best: %d\n", best)
	}

	stats, err := store.GetGameStats(key)
	if err != nil {
		logger.Warn("could not read stats", "key", key, "error", err)
		return nil
	}
	fmt.Printf("Runs: %d  |  Average: %.1f  |  Last played: %s\n",
		stats.GamesCount, stats.AvgScore, stats.LastPlayed.Format("2006-01-02 15:04"))
	return nil
}
