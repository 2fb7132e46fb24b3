package tower

import (
	"testing"

	"github.com/vovakirdan/tui-tower/internal/config"
	"github.com/vovakirdan/tui-tower/internal/core"
)

func TestAutopilotJumpsWhenGrounded(t *testing.T) {
	p := NewAutopilot(1, 0)
	s := Snapshot{
		Body:      core.NewRectF(100, 100, 20, 20),
		Platforms: []core.RectF{core.NewRectF(100, 120, 80, 10)},
	}

	in := p.Next(s)
	if !in.Has(core.ActionJump) {
		t.Error("grounded autopilot should jump")
	}

	s.Airborne = true
	if p.Next(s).Has(core.ActionJump) {
		t.Error("airborne autopilot should not jump")
	}
}

func TestAutopilotSteersToNearestPlatformAbove(t *testing.T) {
	p := NewAutopilot(1, 0)
	s := Snapshot{
		Airborne: true,
		Body:     core.NewRectF(100, 300, 20, 20),
		Platforms: []core.RectF{
			core.NewRectF(0, 330, 400, 10),  // Below the feet
			core.NewRectF(300, 250, 80, 10), // Nearest above, to the right
			core.NewRectF(0, 150, 80, 10),   // Further above, to the left
		},
	}

	in := p.Next(s)
	if !in.Has(core.ActionRight) || in.Has(core.ActionLeft) {
		t.Errorf("autopilot should steer right, got left=%v right=%v", in.Has(core.ActionLeft), in.Has(core.ActionRight))
	}

	// Centered under the target: no horizontal input
	s.Body = core.NewRectF(330, 300, 20, 20)
	in = p.Next(s)
	if in.Has(core.ActionLeft) || in.Has(core.ActionRight) {
		t.Error("autopilot centered under its target should not steer")
	}
}

func TestSimulateIsDeterministic(t *testing.T) {
	run := func() SimResult {
		s, err := NewSession(config.DefaultTowerConfig(), 99, NewMemoryStore())
		if err != nil {
			t.Fatal(err)
		}
		return Simulate(s, NewAutopilot(7, 0.2), 3000)
	}

	a, b := run(), run()
	if a.Ticks != b.Ticks || a.Snapshot.Score != b.Snapshot.Score || a.Snapshot.Body != b.Snapshot.Body {
		t.Errorf("runs diverged: %d/%d ticks, score %d/%d", a.Ticks, b.Ticks, a.Snapshot.Score, b.Snapshot.Score)
	}
	if a.Ticks == 0 || a.Ticks > 3000 {
		t.Errorf("Ticks = %d, want 1..3000", a.Ticks)
	}
}

func TestSimulateReportsPersistedBest(t *testing.T) {
	store := NewMemoryStore()
	s, err := NewSession(config.DefaultTowerConfig(), 99, store)
	if err != nil {
		t.Fatal(err)
	}

	res := Simulate(s, NewAutopilot(7, 0.2), 100_000)
	if res.Snapshot.Phase == PhaseEnded && res.Snapshot.FinalScore > 0 {
		if !res.NewBest || store.Writes() != 1 {
			t.Errorf("NewBest = %v, writes = %d; want a single persisted best", res.NewBest, store.Writes())
		}
	}
	if res.PersistErr != nil {
		t.Errorf("PersistErr = %v", res.PersistErr)
	}
}
