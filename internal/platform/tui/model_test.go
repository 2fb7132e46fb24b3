package tui

import (
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-tower/internal/core"
	"github.com/vovakirdan/tui-tower/internal/registry"
	"github.com/vovakirdan/tui-tower/internal/storage"
)

// stubGame starts on Jump and ends its run with a fixed score as soon as
// Confirm arrives.
type stubGame struct {
	key          string
	resets       int
	state        core.GameState
	runningJumps int // Frames with Jump held while running
}

func (g *stubGame) ID() string    { return "stub" }
func (g *stubGame) Title() string { return "Stub" }

func (g *stubGame) Reset(core.RuntimeConfig) {
	g.resets++
	g.state = core.GameState{}
}

func (g *stubGame) Step(in core.InputFrame, _ time.Duration) core.StepResult {
	if in.Has(core.ActionJump) {
		if g.state.Started && !g.state.GameOver {
			g.runningJumps++
		}
		g.state.Started = true
	}
	if in.Has(core.ActionConfirm) && !g.state.GameOver {
		g.state = core.GameState{Score: 7, Started: true, GameOver: true}
	}
	return core.StepResult{State: g.state}
}

func (g *stubGame) Render(dst *core.Screen) { dst.DrawText(0, 0, "stub") }
func (g *stubGame) State() core.GameState   { return g.state }
func (g *stubGame) ScoreKey() string        { return g.key }

func openTestStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("storage.Open: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func testRuntime() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 1}
}

func update(t *testing.T, m tea.Model, msg tea.Msg) tea.Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next
}

func TestModelSavesScoreUnderScoreKey(t *testing.T) {
	store := openTestStore(t)
	game := &stubGame{key: "stub_hard"}

	m := NewModel(game, store, nil, testRuntime())
	m.Init()

	var tm tea.Model = m
	tm = update(t, tm, tea.KeyMsg{Type: tea.KeyEnter})
	tm = update(t, tm, TickMsg(time.Now()))
	tm = update(t, tm, TickMsg(time.Now()))

	if !tm.(Model).State().GameOver {
		t.Fatal("game should be over")
	}

	scores, err := store.TopScores("stub_hard", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(scores) != 1 || scores[0].Score != 7 {
		t.Errorf("saved scores = %+v, want one entry of 7", scores)
	}
	if others, _ := store.TopScores("stub", 10); len(others) != 0 {
		t.Errorf("score saved under the game ID: %+v", others)
	}
}

func TestModelStartKeyDoesNotCarryIntoRun(t *testing.T) {
	game := &stubGame{}
	m := NewModel(game, nil, nil, testRuntime())
	m.Init()

	now := time.Now()
	var tm tea.Model = m
	tm = update(t, tm, runeKey(' '))
	tm = update(t, tm, TickMsg(now))
	if !tm.(Model).State().Started {
		t.Fatal("jump should start the run")
	}

	// Within the initial hold window of the start press
	for i := 1; i <= 5; i++ {
		tm = update(t, tm, TickMsg(now.Add(time.Duration(i)*16*time.Millisecond)))
	}
	if game.runningJumps != 0 {
		t.Errorf("start press was held into the run for %d frames", game.runningJumps)
	}
}

func TestModelBackOnlyOutsideRun(t *testing.T) {
	m := NewModel(&stubGame{}, nil, nil, testRuntime())
	m.Init()

	tm := update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if !tm.(Model).WentBack() {
		t.Error("Esc on the start screen should go back")
	}

	running := &stubGame{}
	m = NewModel(running, nil, nil, testRuntime())
	m.Init()
	running.state = core.GameState{Started: true}
	tm = update(t, m, TickMsg(time.Now()))
	tm = update(t, tm, tea.KeyMsg{Type: tea.KeyEsc})
	if tm.(Model).WentBack() {
		t.Error("Esc during a run must not leave the game")
	}
}

func TestModelQuit(t *testing.T) {
	m := NewModel(&stubGame{}, nil, nil, testRuntime())
	tm := update(t, m, runeKey('q'))
	if !tm.(Model).IsQuitting() {
		t.Error("q should quit")
	}
	if tm.View() != "" {
		t.Error("quitting model should render nothing")
	}
}

func TestSessionModelFlow(t *testing.T) {
	store := openTestStore(t)
	var created []*stubGame
	factory := func(difficulty string) registry.Game {
		g := &stubGame{key: "stub_" + difficulty}
		created = append(created, g)
		return g
	}
	boards := []ScoreBoard{{Key: "stub_", Title: "Stub"}}

	var tm tea.Model = NewSessionModel(factory, store, nil, testRuntime(), "stub_", boards)

	// Play is the first entry
	tm = update(t, tm, tea.KeyMsg{Type: tea.KeyEnter})
	if s := tm.(SessionModel); s.screen != screenGame {
		t.Fatalf("screen = %v, want game", s.screen)
	}
	if len(created) != 1 || created[0].resets != 1 {
		t.Fatalf("factory calls = %d, want one reset game", len(created))
	}

	// Stale ticks after leaving the game are ignored
	tm = update(t, tm, tea.KeyMsg{Type: tea.KeyEsc})
	if s := tm.(SessionModel); s.screen != screenMenu {
		t.Fatalf("screen = %v, want menu after back", s.screen)
	}
	tm = update(t, tm, TickMsg(time.Now()))

	tm = update(t, tm, tea.KeyMsg{Type: tea.KeyTab})
	if s := tm.(SessionModel); s.screen != screenScores {
		t.Fatalf("screen = %v, want scores", s.screen)
	}

	tm = update(t, tm, tea.KeyMsg{Type: tea.KeyEsc})
	if s := tm.(SessionModel); s.screen != screenMenu {
		t.Fatalf("screen = %v, want menu after scores", s.screen)
	}

	tm = update(t, tm, runeKey('q'))
	if !tm.(SessionModel).quitting {
		t.Error("q on the menu should end the session")
	}
}

func TestSessionModelPlaysSelectedDifficulty(t *testing.T) {
	var got []string
	factory := func(difficulty string) registry.Game {
		got = append(got, difficulty)
		return &stubGame{}
	}

	var tm tea.Model = NewSessionModel(factory, nil, nil, testRuntime(), "stub", nil)
	tm = update(t, tm, tea.KeyMsg{Type: tea.KeyDown})
	tm = update(t, tm, tea.KeyMsg{Type: tea.KeyDown})
	update(t, tm, tea.KeyMsg{Type: tea.KeyEnter})

	if len(got) != 1 || got[0] != "hard" {
		t.Errorf("factory difficulties = %v, want [hard]", got)
	}
}
