// tower is an endless vertical platformer for the terminal.
//
// Usage:
//
//	tower play               - Play a run
//	tower menu               - Title menu with difficulty picker and scoreboard
//	tower serve              - Start SSH server for remote play
//	tower scores [key]       - Show high scores
//	tower sim                - Run a headless autopilot session
//	tower config dump        - Print the effective configuration
//	tower list               - List registered games
//
// Global flags:
//
//	--fps <rate>          - Set frame rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible platforms
//	--db <path|url>       - SQLite path or postgres:// URL (default: ~/.tower/scores.db)
//	--config <path>       - Custom YAML or TOML tuning file
//	--difficulty <name>   - Difficulty preset: easy, normal, hard
//	--log-level <level>   - debug, info, warn, error
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tower/internal/config"
	"github.com/vovakirdan/tui-tower/internal/games/tower"
	"github.com/vovakirdan/tui-tower/internal/platform/tui"
	"github.com/vovakirdan/tui-tower/internal/storage"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string
)

var logger = log.NewWithOptions(os.Stderr, log.Options{
	ReportTimestamp: true,
	Prefix:          "tower",
	Level:           log.WarnLevel,
})

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tower",
	Short: "Icy Tower - climb an endless tower in your terminal",
	Long: `Icy Tower is an endless vertical platformer: jump from platform to
platform while the tower scrolls down. Fall off the bottom of the screen
and the run is over.

Available commands:
  play     - Play a run directly
  menu     - Title menu with difficulty picker and scoreboard
  serve    - Start SSH server for remote play
  scores   - View high scores
  sim      - Run a headless autopilot session
  config   - Inspect the tuning configuration
  list     - Show registered games

Examples:
  tower play
  tower play --difficulty hard
  tower menu --db postgres://tower@localhost/tower
  tower serve --ssh :2222
  tower sim --ticks 5000 --seed 42`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Frame rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.tower/scores.db", "SQLite path or postgres:// URL for scores")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom tuning config (YAML or TOML)")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "warn", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(listCmd)
}

// setup applies the global flags shared by every command.
func setup(_ *cobra.Command, _ []string) error {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level: %w", err)
	}
	logger.SetLevel(level)

	if _, err := config.ParsePreset(flagDifficulty); err != nil {
		return err
	}

	tower.SetLogger(logger)
	tower.SetConfigPath(flagConfig)
	tower.SetDifficultyPreset(flagDifficulty)
	return nil
}

// openStore opens the score store named by --db and hands it to the game as
// its best-score store. A store that cannot be opened is logged and the
// game runs without persistence.
func openStore(ctx context.Context) storage.ScoreStore {
	store, err := storage.OpenURL(ctx, flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "db", flagDBPath, "error", err)
		return nil
	}
	tower.SetBestScoreStore(store)
	return store
}

// closeStore closes store if it was opened.
func closeStore(store storage.ScoreStore) {
	if store == nil {
		return
	}
	if err := store.Close(); err != nil {
		logger.Warn("could not close scores database", "error", err)
	}
}

// effectiveConfig loads the tuning config and applies the difficulty preset,
// falling back to the defaults when the config cannot be read.
func effectiveConfig(preset string) config.TowerConfig {
	cfg, err := config.LoadTower(flagConfig)
	if err != nil {
		logger.Warn("using default tower config", "error", err)
		cfg = config.DefaultTowerConfig()
	}
	p, err := config.ParsePreset(preset)
	if err == nil {
		config.ApplyPreset(&cfg, p)
	}
	return cfg
}

// scoreBoards lists one scoreboard per difficulty preset.
func scoreBoards() []tui.ScoreBoard {
	presets := []struct {
		name  string
		title string
	}{
		{"normal", "Icy Tower"},
		{"easy", "Icy Tower (easy)"},
		{"hard", "Icy Tower (hard)"},
	}

	boards := make([]tui.ScoreBoard, 0, len(presets))
	for _, p := range presets {
		boards = append(boards, tui.ScoreBoard{
			Key:   effectiveConfig(p.name).Scoring.BestScoreKey,
			Title: p.title,
		})
	}
	return boards
}
