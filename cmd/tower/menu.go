package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tower/internal/games/tower"
	"github.com/vovakirdan/tui-tower/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with the title menu",
	Long: `Start in interactive menu mode.

Pick a difficulty and play; after a run you return to the menu.
The scoreboard lists the best runs of every difficulty.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select
  Tab          - Scoreboard
  Q            - Quit

Examples:
  tower menu
  tower menu --fps 30
  tower menu --db ./scores.db`,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	store := openStore(context.Background())
	defer closeStore(store)

	cfg := runtimeConfig()
	bestKey := effectiveConfig(flagDifficulty).Scoring.BestScoreKey

	for {
		menuResult, err := tui.RunMenu(store, bestKey, cfg)
		if err != nil {
			return fmt.Errorf("menu: %w", err)
		}

		// Keep any size changes
		cfg = menuResult.Config

		switch menuResult.Choice {
		case tui.ChoiceScores:
			goBack, err := tui.RunScoreboard(store, scoreBoards(), cfg.ScreenW, cfg.ScreenH)
			if err != nil {
				return fmt.Errorf("scoreboard: %w", err)
			}
			if !goBack {
				return nil
			}

		case tui.ChoicePlay:
			difficulty := menuResult.Difficulty
			if difficulty == "" {
				difficulty = flagDifficulty
			}

			if flagSeed == 0 {
				cfg.Seed = time.Now().UnixNano()
			}

			logger.Debug("starting run", "difficulty", difficulty, "seed", cfg.Seed)
			goBack, err := tui.Run(tower.NewWithDifficulty(difficulty), store, logger, cfg)
			if err != nil {
				return fmt.Errorf("run game: %w", err)
			}
			if !goBack {
				return nil
			}

		default:
			return nil
		}
	}
}
