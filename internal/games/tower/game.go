// Package tower implements an endless vertical platformer.
// The player climbs a procedurally generated ladder of platforms while the
// camera scrolls the world down; falling below the screen ends the run.
package tower

import (
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-tower/internal/config"
	"github.com/vovakirdan/tui-tower/internal/core"
	"github.com/vovakirdan/tui-tower/internal/registry"
)

// ID is the registry identifier of the game.
const ID = "tower"

var (
	configPath       string
	difficultyPreset config.DifficultyPreset
	bestScoreStore   BestScoreStore
	logger           = log.New(io.Discard)
)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names are ignored.
func SetDifficultyPreset(preset string) {
	p, err := config.ParsePreset(preset)
	if err != nil {
		p = ""
	}
	difficultyPreset = p
}

// SetBestScoreStore sets the store new games read and write the best score with.
func SetBestScoreStore(s BestScoreStore) {
	bestScoreStore = s
}

// SetLogger sets the logger handed to new sessions.
func SetLogger(l *log.Logger) {
	if l != nil {
		logger = l
	}
}

// Game adapts a Session to the platform's Game interface: it maps actions
// to session transitions and draws snapshots into the screen buffer.
type Game struct {
	session *Session
	err     error // Set when the config could not be used
	rng     *rand.Rand
	paused  bool
	newBest bool

	preset    config.DifficultyPreset
	ownPreset bool // preset overrides the package-wide one
}

// New creates a new tower game instance. Call Reset before use.
func New() *Game {
	return &Game{}
}

// NewWithDifficulty creates a game that plays preset regardless of
// SetDifficultyPreset. Unknown names play the configured values.
func NewWithDifficulty(preset string) *Game {
	p, err := config.ParsePreset(preset)
	if err != nil {
		p = ""
	}
	return &Game{preset: p, ownPreset: true}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return ID
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Icy Tower"
}

// Reset loads the configuration and builds an idle session.
func (g *Game) Reset(rc core.RuntimeConfig) {
	g.paused = false
	g.newBest = false
	g.err = nil

	seed := rc.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	g.rng = rand.New(rand.NewSource(seed))

	cfg, err := config.LoadTower(configPath)
	if err != nil {
		logger.Warn("using default tower config", "error", err)
		cfg = config.DefaultTowerConfig()
	}
	preset := difficultyPreset
	if g.ownPreset {
		preset = g.preset
	}
	config.ApplyPreset(&cfg, preset)

	g.session, g.err = NewSession(cfg, seed, bestScoreStore, WithLogger(logger))
	if g.err != nil {
		logger.Error("cannot start tower", "error", g.err)
	}
}

// Session returns the underlying session, nil if the config was rejected.
func (g *Game) Session() *Session {
	return g.session
}

// Err returns the configuration error that prevented a session, if any.
func (g *Game) Err() error {
	return g.err
}

// ScoreKey returns the key runs of this configuration are recorded under.
func (g *Game) ScoreKey() string {
	if g.session == nil {
		return ID
	}
	return g.session.Config().Scoring.BestScoreKey
}

// Step advances the game by the elapsed wall-clock time.
func (g *Game) Step(in core.InputFrame, elapsed time.Duration) core.StepResult {
	if g.session == nil {
		return core.StepResult{State: g.State()}
	}

	switch g.session.Phase() {
	case PhaseIdle:
		if in.Has(core.ActionJump) || in.Has(core.ActionConfirm) {
			g.session.Start()
		}
		return core.StepResult{State: g.State()}

	case PhaseEnded:
		if in.Has(core.ActionRestart) || in.Has(core.ActionConfirm) {
			g.newBest = false
			g.session.StartWithSeed(g.rng.Int63())
		}
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	res := g.session.Tick(elapsed, in)
	if res.NewBest {
		g.newBest = true
	}

	return core.StepResult{State: g.State()}
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	if g.session == nil {
		dst.Clear()
		drawCenteredMessage(dst, "CONFIG ERROR", fmt.Sprint(g.err), "Press Q to quit")
		return
	}

	snap := g.session.Snapshot()
	ScreenSink{Dst: dst}.Draw(snap)

	switch {
	case snap.Phase == PhaseIdle:
		drawCenteredMessage(dst, "ICY TOWER", "←/→ move   Space jump", "Press Space to start")
	case snap.Phase == PhaseEnded:
		title := "GAME OVER"
		if g.newBest {
			title = "NEW BEST!"
		}
		drawCenteredMessage(dst, title, fmt.Sprintf("Score: %d  |  Best: %d", snap.FinalScore, snap.BestScore), "Press R to restart")
	case g.paused:
		drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.session == nil {
		return core.GameState{}
	}

	phase := g.session.Phase()
	score := g.session.Score()
	if phase == PhaseEnded {
		score = g.session.FinalScore()
	}

	return core.GameState{
		Score:     score,
		BestScore: g.session.BestScore(),
		Started:   phase != PhaseIdle,
		GameOver:  phase == PhaseEnded,
		Paused:    g.paused,
	}
}

// Register the game with the registry
func init() {
	registry.Register(ID, func() registry.Game {
		return New()
	})
}
