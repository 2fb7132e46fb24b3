package tower

import "github.com/vovakirdan/tui-tower/internal/core"

// Snapshot is an immutable view of one settled tick, handed to a RenderSink.
// Platforms is a private copy; sinks may keep it.
type Snapshot struct {
	Phase      Phase
	Tick       uint64
	Viewport   core.RectF
	Body       core.RectF
	Airborne   bool
	Platforms  []core.RectF
	Threshold  float64
	Scrolled   float64
	Score      int
	BestScore  int
	FinalScore int // Valid when Phase is PhaseEnded
}

// RenderSink consumes snapshots. Nothing flows back into the simulation.
type RenderSink interface {
	Draw(s Snapshot)
}

// snapshot captures the current world state.
func (s *Session) snapshot() Snapshot {
	w := s.world
	plats := make([]core.RectF, 0, w.field.Len())
	for _, p := range w.field.platforms {
		plats = append(plats, p.Rect())
	}

	return Snapshot{
		Phase:      s.phase,
		Tick:       s.ticks,
		Viewport:   core.NewRectF(0, 0, s.cfg.Viewport.Width, s.cfg.Viewport.Height),
		Body:       w.body.Rect(),
		Airborne:   w.body.Airborne,
		Platforms:  plats,
		Threshold:  w.camera.Threshold(),
		Scrolled:   w.camera.Scrolled(),
		Score:      s.score,
		BestScore:  s.best,
		FinalScore: s.finalScore,
	}
}
