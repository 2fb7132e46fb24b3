package tower

import (
	"math"
	"math/rand"
	"time"

	"github.com/vovakirdan/tui-tower/internal/core"
)

// Autopilot plays headless runs. It steers under the nearest platform above
// the body and jumps whenever the body rests on something. A seeded share of
// frames is replaced with random input so runs explore the field.
type Autopilot struct {
	rng   *rand.Rand
	noise float64
}

// NewAutopilot creates an autopilot. noise is the chance per frame of a
// random intent, clamped to [0, 1].
func NewAutopilot(seed int64, noise float64) *Autopilot {
	return &Autopilot{
		rng:   rand.New(rand.NewSource(seed)),
		noise: core.ClampF(noise, 0, 1),
	}
}

// Next picks the intents for the frame following s.
func (a *Autopilot) Next(s Snapshot) core.InputFrame {
	in := core.NewInputFrame()

	if a.noise > 0 && a.rng.Float64() < a.noise {
		switch a.rng.Intn(4) {
		case 0:
			in.Set(core.ActionLeft)
		case 1:
			in.Set(core.ActionRight)
		case 2:
			in.Set(core.ActionJump)
		}
		return in
	}

	if !s.Airborne {
		in.Set(core.ActionJump)
	}

	target := nearestAbove(s)
	if target < 0 {
		return in
	}

	p := s.Platforms[target]
	dx := (p.X + p.W/2) - (s.Body.X + s.Body.W/2)
	if math.Abs(dx) > p.W/4 {
		if dx < 0 {
			in.Set(core.ActionLeft)
		} else {
			in.Set(core.ActionRight)
		}
	}
	return in
}

// nearestAbove returns the index of the lowest platform whose top is above
// the body's feet, or -1.
func nearestAbove(s Snapshot) int {
	feet := s.Body.Bottom()
	best := -1
	for i, p := range s.Platforms {
		if p.Y >= feet {
			continue
		}
		if best < 0 || p.Y > s.Platforms[best].Y {
			best = i
		}
	}
	return best
}

// SimResult summarises a headless run.
type SimResult struct {
	Ticks      int
	Snapshot   Snapshot
	NewBest    bool
	PersistErr error
}

// Simulate restarts s and drives it with p at the nominal frame
// length until the run ends or maxTicks frames have passed.
func Simulate(s *Session, p *Autopilot, maxTicks int) SimResult {
	s.Start()
	frame := time.Duration(s.Config().Physics.FrameMillis * float64(time.Millisecond))

	var res SimResult
	for res.Ticks < maxTicks && s.Phase() == PhaseRunning {
		tr := s.Tick(frame, p.Next(s.Snapshot()))
		res.Ticks++
		if tr.Ended {
			res.NewBest = tr.NewBest
			res.PersistErr = tr.PersistErr
		}
	}
	res.Snapshot = s.Snapshot()
	return res
}
