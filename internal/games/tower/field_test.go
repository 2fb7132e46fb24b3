package tower

import (
	"math/rand"
	"testing"

	"github.com/vovakirdan/tui-tower/internal/core"
)

func newTestField(platforms ...Platform) *Field {
	cfg := testConfig()
	f := NewField(rand.New(rand.NewSource(1)), cfg.Platforms, cfg.Viewport.Width)
	f.platforms = append(f.platforms, platforms...)
	return f
}

func TestCollideLanding(t *testing.T) {
	f := newTestField(Platform{X: 100, Y: 300, W: 80, H: 10})

	b := Body{X: 120, Y: 285, VY: 10, W: 20, H: 20, Airborne: true}
	prevBottom := 295.0

	p, ok := f.Collide(&b, prevBottom)
	if !ok {
		t.Fatal("body crossing the top edge from above should land")
	}
	if p.Y != 300 {
		t.Errorf("landed on wrong platform: %+v", p)
	}
	if b.Y != 300-b.H {
		t.Errorf("Y = %v, want %v", b.Y, 300-b.H)
	}
	if b.VY != 0 {
		t.Errorf("VY = %v, want 0", b.VY)
	}
	if b.Airborne {
		t.Error("landing should clear the airborne flag")
	}
}

func TestCollideNoLanding(t *testing.T) {
	plat := Platform{X: 100, Y: 300, W: 80, H: 10}

	tests := []struct {
		name       string
		body       Body
		prevBottom float64
	}{
		{"moving up", Body{X: 120, Y: 285, VY: -5, W: 20, H: 20}, 310},
		{"already below top", Body{X: 120, Y: 295, VY: 5, W: 20, H: 20}, 305},
		{"not reached yet", Body{X: 120, Y: 270, VY: 5, W: 20, H: 20}, 285},
		{"left of platform", Body{X: 70, Y: 285, VY: 10, W: 20, H: 20}, 295},
		{"right of platform", Body{X: 181, Y: 285, VY: 10, W: 20, H: 20}, 295},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newTestField(plat)
			b := tt.body
			before := b
			if _, ok := f.Collide(&b, tt.prevBottom); ok {
				t.Fatal("unexpected landing")
			}
			if b != before {
				t.Errorf("body changed without landing: %+v -> %+v", before, b)
			}
		})
	}
}

func TestCollideLandsOnEdgeContact(t *testing.T) {
	plat := Platform{X: 100, Y: 300, W: 80, H: 10}

	tests := []struct {
		name string
		x    float64
	}{
		{"right side touches left edge", 80},
		{"left side touches right edge", 180},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newTestField(plat)
			b := Body{X: tt.x, Y: 285, VY: 10, W: 20, H: 20, Airborne: true}
			if _, ok := f.Collide(&b, 295); !ok {
				t.Fatal("body touching the platform edge should land")
			}
			if b.Y != 280 || b.VY != 0 || b.Airborne {
				t.Errorf("body after landing = %+v", b)
			}
		})
	}
}

func TestCollideFirstMatchWins(t *testing.T) {
	f := newTestField(
		Platform{X: 100, Y: 300, W: 80, H: 10},
		Platform{X: 100, Y: 302, W: 80, H: 10},
	)

	b := Body{X: 120, Y: 285, VY: 20, W: 20, H: 20}
	p, ok := f.Collide(&b, 275)
	if !ok {
		t.Fatal("expected a landing")
	}
	if p.Y != 300 {
		t.Errorf("first qualifying platform should win, got Y=%v", p.Y)
	}
	if b.Y != 280 {
		t.Errorf("Y = %v, want 280", b.Y)
	}
}

func TestCollideRestingBodyStaysLanded(t *testing.T) {
	cfg := testConfig()
	f := newTestField(Platform{X: 100, Y: 300, W: 80, H: 10})

	b := Body{X: 120, Y: 280, W: 20, H: 20}
	for i := 0; i < 100; i++ {
		prev := b.Bottom()
		StepBody(&b, 1, held(), cfg.Physics, cfg.Viewport.Width)
		if _, ok := f.Collide(&b, prev); !ok {
			t.Fatalf("tick %d: resting body fell through, Y=%v", i, b.Y)
		}
	}
	if b.Y != 280 {
		t.Errorf("resting body drifted to Y=%v", b.Y)
	}
}

func TestSeed(t *testing.T) {
	cfg := testConfig()
	f := newTestField()
	body := core.NewRectF(190, 540, 20, 20)

	f.Seed(body)

	start := f.platforms[0]
	if start.Y != body.Bottom() {
		t.Errorf("start platform top = %v, want %v", start.Y, body.Bottom())
	}
	if start.W != cfg.Platforms.StartWidth {
		t.Errorf("start platform width = %v, want %v", start.W, cfg.Platforms.StartWidth)
	}
	if !body.OverlapsX(start.Rect()) {
		t.Error("start platform must be under the body")
	}
	if top := f.Top(); top > -cfg.Platforms.SpawnAbove {
		t.Errorf("seeded field top = %v, want <= %v", top, -cfg.Platforms.SpawnAbove)
	}
}

func TestSeedClampsStartPlatform(t *testing.T) {
	f := newTestField()
	f.Seed(core.NewRectF(0, 540, 20, 20))

	if x := f.platforms[0].X; x != 0 {
		t.Errorf("start platform X = %v, want 0", x)
	}
}

func TestGenerateRanges(t *testing.T) {
	cfg := testConfig()
	pc := cfg.Platforms
	f := newTestField()
	f.Seed(core.NewRectF(190, 540, 20, 20))

	// Ladder excludes the start platform
	ladder := f.Platforms()[1:]
	prevY := f.platforms[0].Y
	for i, p := range ladder {
		if p.W < pc.MinWidth || p.W > pc.MaxWidth {
			t.Errorf("platform %d width %v outside [%v, %v]", i, p.W, pc.MinWidth, pc.MaxWidth)
		}
		if p.X < 0 || p.Rect().Right() > cfg.Viewport.Width {
			t.Errorf("platform %d outside playfield: x=%v w=%v", i, p.X, p.W)
		}
		gap := prevY - p.Y
		if gap < pc.MinGap || gap > pc.MaxGap {
			t.Errorf("platform %d gap %v outside [%v, %v]", i, gap, pc.MinGap, pc.MaxGap)
		}
		if p.H != pc.Height {
			t.Errorf("platform %d height %v, want %v", i, p.H, pc.Height)
		}
		prevY = p.Y
	}
}

func TestPruneAndGenerate(t *testing.T) {
	cfg := testConfig()
	limit := cfg.Viewport.Height + cfg.Platforms.EvictMargin

	f := newTestField(
		Platform{X: 0, Y: limit + 1, W: 80, H: 10},
		Platform{X: 0, Y: limit, W: 80, H: 10},
		Platform{X: 0, Y: 200, W: 80, H: 10},
	)

	f.PruneAndGenerate(cfg.Viewport.Height)

	for _, p := range f.platforms {
		if p.Y > limit {
			t.Errorf("platform at %v should have been evicted", p.Y)
		}
	}
	if top := f.Top(); top > -cfg.Platforms.SpawnAbove {
		t.Errorf("field not refilled, top = %v", top)
	}
}

func TestGenerateFromEmptyField(t *testing.T) {
	cfg := testConfig()
	f := newTestField()

	f.PruneAndGenerate(cfg.Viewport.Height)

	if f.Len() == 0 {
		t.Fatal("empty field must be refilled")
	}
	if top := f.Top(); top > -cfg.Platforms.SpawnAbove {
		t.Errorf("top = %v, want <= %v", top, -cfg.Platforms.SpawnAbove)
	}
}

func TestScrollBy(t *testing.T) {
	f := newTestField(
		Platform{X: 0, Y: 100, W: 80, H: 10},
		Platform{X: 0, Y: -50, W: 80, H: 10},
	)

	f.ScrollBy(25)

	if f.platforms[0].Y != 125 || f.platforms[1].Y != -25 {
		t.Errorf("platforms not shifted: %+v", f.platforms)
	}
}

func TestPlatformsReturnsCopy(t *testing.T) {
	f := newTestField(Platform{X: 0, Y: 100, W: 80, H: 10})

	ps := f.Platforms()
	ps[0].Y = 999

	if f.platforms[0].Y != 100 {
		t.Error("Platforms must not expose internal storage")
	}
}
