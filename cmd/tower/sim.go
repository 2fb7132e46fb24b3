package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tower/internal/games/tower"
)

var (
	flagSimTicks   int
	flagSimNoise   float64
	flagSimPersist bool
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run a headless autopilot session",
	Long: `Run the simulation without a terminal, driven by a simple autopilot
that jumps whenever it stands on a platform and steers under the next one.

Every frame lasts exactly the configured reference frame, so the same
--seed and config always produce the same run.

Examples:
  tower sim
  tower sim --ticks 10000 --seed 42
  tower sim --noise 0.5 --difficulty hard
  tower sim --persist --db ./scores.db`,
	RunE: runSim,
}

func init() {
	simCmd.Flags().IntVar(&flagSimTicks, "ticks", 3600, "Maximum number of frames to simulate")
	simCmd.Flags().Float64Var(&flagSimNoise, "noise", 0.1, "Share of frames with random input (0..1)")
	simCmd.Flags().BoolVar(&flagSimPersist, "persist", false, "Read and write the best score in --db")
}

func runSim(_ *cobra.Command, _ []string) error {
	cfg := effectiveConfig(flagDifficulty)

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	var store tower.BestScoreStore = tower.NewMemoryStore()
	if flagSimPersist {
		s := openStore(context.Background())
		defer closeStore(s)
		if s != nil {
			store = s
		}
	}

	session, err := tower.NewSession(cfg, seed, store, tower.WithLogger(logger))
	if err != nil {
		return err
	}

	start := time.Now()
	res := tower.Simulate(session, tower.NewAutopilot(seed, flagSimNoise), flagSimTicks)
	snap := res.Snapshot

	fmt.Printf("seed:      %d\n", seed)
	fmt.Printf("ticks:     %d (%s)\n", res.Ticks, time.Since(start).Round(time.Millisecond))
	fmt.Printf("phase:     %s\n", snap.Phase)
	fmt.Printf("scrolled:  %.1f\n", snap.Scrolled)
	fmt.Printf("score:     %d\n", snap.Score)
	if snap.Phase == tower.PhaseEnded {
		fmt.Printf("final:     %d\n", snap.FinalScore)
	}
	fmt.Printf("best:      %d\n", snap.BestScore)
	fmt.Printf("platforms: %d\n", len(snap.Platforms))
	if res.NewBest {
		fmt.Println("new best score!")
	}
	if res.PersistErr != nil {
		logger.Warn("best score not saved", "error", res.PersistErr)
	}
	return nil
}
