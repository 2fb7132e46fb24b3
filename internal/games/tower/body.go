package tower

import (
	"math"
	"time"

	"github.com/vovakirdan/tui-tower/internal/config"
	"github.com/vovakirdan/tui-tower/internal/core"
)

// Intents is the set of actions currently held by the player.
// core.InputFrame satisfies it.
type Intents interface {
	Has(a core.Action) bool
}

// Body is the player-controlled rectangle. Y grows downward.
type Body struct {
	X, Y     float64 // Top-left corner
	VX, VY   float64 // Velocity in world units per reference frame
	W, H     float64 // Hitbox size, fixed for a session
	Airborne bool    // False only while resting on a platform
}

// Rect returns the body hitbox.
func (b Body) Rect() core.RectF {
	return core.NewRectF(b.X, b.Y, b.W, b.H)
}

// Bottom returns the y-coordinate of the body's bottom edge.
func (b Body) Bottom() float64 {
	return b.Y + b.H
}

// frameFactor converts wall-clock elapsed time into the number of reference
// frames to integrate. Stalls (backgrounded terminal, debugger) are clamped
// to MaxStepMillis so the body never teleports.
func frameFactor(elapsed time.Duration, ph config.PhysicsConfig) float64 {
	ms := float64(elapsed) / float64(time.Millisecond)
	ms = core.ClampF(ms, 0, ph.MaxStepMillis)
	return ms / ph.FrameMillis
}

// StepBody applies input, gravity and integration for one tick, then wraps
// the body horizontally inside a playfield of the given width.
// Landing is resolved afterwards by Field.Collide.
func StepBody(b *Body, dt float64, in Intents, ph config.PhysicsConfig, width float64) {
	left := in.Has(core.ActionLeft)
	right := in.Has(core.ActionRight)

	// Opposite keys cancel out and the body coasts
	switch {
	case left && !right:
		b.VX = -ph.MoveSpeed
	case right && !left:
		b.VX = ph.MoveSpeed
	default:
		b.VX *= ph.Damping
		if math.Abs(b.VX) < ph.StopThreshold {
			b.VX = 0
		}
	}

	// Jump only from a platform
	if in.Has(core.ActionJump) && !b.Airborne {
		b.VY = ph.JumpImpulse
		b.Airborne = true
	}

	b.VY += ph.Gravity * dt

	b.X += b.VX * dt
	b.Y += b.VY * dt

	wrap(b, width)
}

// wrap moves a body that left the playfield completely to the opposite edge.
func wrap(b *Body, width float64) {
	switch {
	case b.X+b.W < 0:
		b.X = width
	case b.X > width:
		b.X = -b.W
	}
}
