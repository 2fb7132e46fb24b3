package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-tower/internal/core"
	"github.com/vovakirdan/tui-tower/internal/registry"
	"github.com/vovakirdan/tui-tower/internal/storage"
)

// Model is the Bubble Tea model that drives a game: it is the frame clock,
// the intent source and the render target.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      storage.ScoreStore
	logger     *log.Logger
	config     core.RuntimeConfig
	keyMapper  *KeyMapper
	keys       *HeldKeys
	gameState  core.GameState
	lastTick   time.Time
	quitting   bool
	back       bool // Left with Back instead of Quit
	scoreSaved bool // Whether score has been saved for current game over
}

// NewModel creates a new Bubble Tea model for the given game.
// store and logger may be nil.
func NewModel(game registry.Game, store storage.ScoreStore, logger *log.Logger, cfg core.RuntimeConfig) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	return Model{
		game:      game,
		screen:    core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:     store,
		logger:    logger,
		config:    cfg,
		keyMapper: NewKeyMapper(),
		keys:      NewHeldKeys(),
	}
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.FrameInterval())
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg, time.Now())

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg, now time.Time) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}

	// Back leaves only when no run is in progress
	if action == core.ActionBack && (!m.gameState.Started || m.gameState.GameOver) {
		m.back = true
		return m, tea.Quit
	}

	m.keys.Press(action, now)
	return m, nil
}

// handleResize processes window resize events.
// The world is sized in its own units, so the run continues at the new size.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)
	return m, nil
}

// handleTick advances the game by the wall-clock time since the previous tick.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	elapsed := m.config.FrameInterval()
	if !m.lastTick.IsZero() {
		elapsed = now.Sub(m.lastTick)
	}
	m.lastTick = now

	prev := m.gameState
	result := m.game.Step(m.keys.Frame(now), elapsed)
	m.gameState = result.State

	// The key that started the run must not act in it
	if !prev.Started && m.gameState.Started {
		m.keys.Release()
	}

	// A restart began a new run
	if prev.GameOver && !m.gameState.GameOver {
		m.scoreSaved = false
		m.keys.Release()
	}

	if m.gameState.GameOver && !m.scoreSaved {
		m.saveScore()
	}

	return m, tickCmd(m.config.FrameInterval())
}

// ScoreKeyer is implemented by games whose score history is split by
// configuration, such as difficulty presets.
type ScoreKeyer interface {
	ScoreKey() string
}

// scoreKey returns the key finished runs are saved under.
func (m Model) scoreKey() string {
	if k, ok := m.game.(ScoreKeyer); ok && k.ScoreKey() != "" {
		return k.ScoreKey()
	}
	return m.game.ID()
}

// saveScore records the finished run in the score history (once).
func (m *Model) saveScore() {
	m.scoreSaved = true
	if m.store == nil || m.gameState.Score <= 0 {
		return
	}
	key := m.scoreKey()
	if _, err := m.store.SaveScore(key, m.gameState.Score); err != nil {
		m.logger.Warn("could not save score", "key", key, "score", m.gameState.Score, "error", err)
	}
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	dir := filepath.Join(os.Getenv("HOME"), ".tower", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("could not create screenshot directory", "dir", dir, "error", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))

	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("could not save screenshot", "path", path, "error", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// State returns the last game state seen by the model.
func (m Model) State() core.GameState {
	return m.gameState
}

// IsQuitting reports whether the player asked to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// WentBack reports whether the player left with Back.
func (m Model) WentBack() bool {
	return m.back
}

// Run starts the Bubble Tea program for game.
// Returns true when the player asked to go back to the menu.
func Run(game registry.Game, store storage.ScoreStore, logger *log.Logger, cfg core.RuntimeConfig) (goBack bool, err error) {
	model := NewModel(game, store, logger, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	final, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := final.(Model)
	return ok && m.WentBack(), nil
}
