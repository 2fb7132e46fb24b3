package tower

import (
	"math"
	"testing"
	"time"

	"github.com/vovakirdan/tui-tower/internal/config"
	"github.com/vovakirdan/tui-tower/internal/core"
)

// testConfig returns the default tuning with a 10ms reference frame so that
// a 10ms tick integrates exactly one frame.
func testConfig() config.TowerConfig {
	cfg := config.DefaultTowerConfig()
	cfg.Physics.FrameMillis = 10
	cfg.Physics.MaxStepMillis = 50
	return cfg
}

const frame = 10 * time.Millisecond

func held(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

func TestFrameFactor(t *testing.T) {
	ph := testConfig().Physics

	tests := []struct {
		name    string
		elapsed time.Duration
		want    float64
	}{
		{"one frame", 10 * time.Millisecond, 1},
		{"half frame", 5 * time.Millisecond, 0.5},
		{"zero", 0, 0},
		{"negative clamps to zero", -time.Second, 0},
		{"stall clamps to ceiling", 10 * time.Second, 5},
		{"exact ceiling", 50 * time.Millisecond, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := frameFactor(tt.elapsed, ph)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("frameFactor(%v) = %v, want %v", tt.elapsed, got, tt.want)
			}
		})
	}
}

func TestStepBodyHorizontal(t *testing.T) {
	ph := testConfig().Physics

	tests := []struct {
		name   string
		vx     float64
		in     core.InputFrame
		wantVX float64
	}{
		{"left snaps to speed", 0, held(core.ActionLeft), -ph.MoveSpeed},
		{"right snaps to speed", -3, held(core.ActionRight), ph.MoveSpeed},
		{"no input damps", 5, held(), 5 * ph.Damping},
		{"both held damps", 5, held(core.ActionLeft, core.ActionRight), 5 * ph.Damping},
		{"below threshold stops", 0.1, held(), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := Body{X: 100, Y: 100, VX: tt.vx, W: 20, H: 20, Airborne: true}
			StepBody(&b, 1, tt.in, ph, 400)
			if math.Abs(b.VX-tt.wantVX) > 1e-9 {
				t.Errorf("VX = %v, want %v", b.VX, tt.wantVX)
			}
		})
	}
}

func TestStepBodyDampingReachesZero(t *testing.T) {
	ph := testConfig().Physics
	b := Body{X: 100, Y: 100, VX: ph.MoveSpeed, W: 20, H: 20, Airborne: true}

	for i := 0; i < 100; i++ {
		StepBody(&b, 1, held(), ph, 400)
	}

	if b.VX != 0 {
		t.Errorf("VX should settle at exactly 0, got %v", b.VX)
	}
}

func TestStepBodyJump(t *testing.T) {
	ph := testConfig().Physics

	b := Body{X: 100, Y: 100, W: 20, H: 20}
	StepBody(&b, 1, held(core.ActionJump), ph, 400)

	if !b.Airborne {
		t.Error("jump should mark the body airborne")
	}
	wantVY := ph.JumpImpulse + ph.Gravity
	if math.Abs(b.VY-wantVY) > 1e-9 {
		t.Errorf("VY = %v, want %v", b.VY, wantVY)
	}
	if b.Y >= 100 {
		t.Errorf("jump should move the body up, Y = %v", b.Y)
	}
}

func TestStepBodyJumpIgnoredWhileAirborne(t *testing.T) {
	ph := testConfig().Physics

	b := Body{X: 100, Y: 100, VY: 2, W: 20, H: 20, Airborne: true}
	StepBody(&b, 1, held(core.ActionJump), ph, 400)

	wantVY := 2 + ph.Gravity
	if math.Abs(b.VY-wantVY) > 1e-9 {
		t.Errorf("airborne jump must be ignored: VY = %v, want %v", b.VY, wantVY)
	}
}

func TestStepBodyGravityScalesWithElapsed(t *testing.T) {
	ph := testConfig().Physics

	b := Body{X: 100, Y: 100, W: 20, H: 20, Airborne: true}
	StepBody(&b, 2, held(), ph, 400)

	if math.Abs(b.VY-2*ph.Gravity) > 1e-9 {
		t.Errorf("VY = %v, want %v", b.VY, 2*ph.Gravity)
	}
	// Semi-implicit: position uses the updated velocity
	if math.Abs(b.Y-(100+4*ph.Gravity)) > 1e-9 {
		t.Errorf("Y = %v, want %v", b.Y, 100+4*ph.Gravity)
	}
}

func TestWrap(t *testing.T) {
	const width = 400.0

	tests := []struct {
		name  string
		x     float64
		wantX float64
	}{
		{"fully off left", -20.5, width},
		{"fully off right", width + 0.5, -20},
		{"partially off left stays", -10, -10},
		{"right side on the left edge stays", -20, -20},
		{"partially off right stays", width - 5, width - 5},
		{"inside", 150, 150},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := Body{X: tt.x, W: 20, H: 20}
			wrap(&b, width)
			if b.X != tt.wantX {
				t.Errorf("X = %v, want %v", b.X, tt.wantX)
			}
		})
	}
}

func TestWrapKeepsVelocity(t *testing.T) {
	ph := testConfig().Physics

	b := Body{X: -19, VX: -ph.MoveSpeed, Y: 100, W: 20, H: 20, Airborne: true}
	StepBody(&b, 1, held(core.ActionLeft), ph, 400)

	if b.X != 400 {
		t.Errorf("body should reappear at the right edge, X = %v", b.X)
	}
	if b.VX != -ph.MoveSpeed {
		t.Errorf("wrap must not change velocity, VX = %v", b.VX)
	}
}
