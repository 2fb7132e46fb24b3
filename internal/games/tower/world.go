package tower

import (
	"math/rand"

	"github.com/vovakirdan/tui-tower/internal/config"
)

// World is the per-session simulation context. It owns the body, the
// platform field and the camera; components receive pointers into it for
// the duration of a call and keep nothing across ticks.
type World struct {
	cfg    config.TowerConfig
	body   Body
	field  *Field
	camera Camera
}

// NewWorld builds a fresh world: the body stands on the seeded start
// platform, horizontally centered, StartMargin above the viewport bottom.
func NewWorld(cfg config.TowerConfig, seed int64) *World {
	vp := cfg.Viewport
	pl := cfg.Player

	body := Body{
		X: (vp.Width - pl.Width) / 2,
		Y: vp.Height - cfg.Platforms.StartMargin - pl.Height,
		W: pl.Width,
		H: pl.Height,
	}

	field := NewField(rand.New(rand.NewSource(seed)), cfg.Platforms, vp.Width)
	field.Seed(body.Rect())

	return &World{
		cfg:    cfg,
		body:   body,
		field:  field,
		camera: NewCamera(vp.Height, cfg.Camera.ThresholdFraction),
	}
}

// step runs the body simulator and the collision query.
// Reports whether the body ended the tick on a platform.
func (w *World) step(dt float64, in Intents) bool {
	prevBottom := w.body.Bottom()

	StepBody(&w.body, dt, in, w.cfg.Physics, w.cfg.Viewport.Width)

	_, landed := w.field.Collide(&w.body, prevBottom)
	w.body.Airborne = !landed
	return landed
}

// scroll runs the camera. Returns the distance scrolled this tick.
func (w *World) scroll() float64 {
	return w.camera.Update(&w.body, w.field, w.cfg.Viewport.Height)
}

// fellOut reports whether the body dropped below the viewport plus the
// falling margin.
func (w *World) fellOut() bool {
	return w.body.Y > w.cfg.Viewport.Height+w.cfg.Scoring.FallMargin
}
