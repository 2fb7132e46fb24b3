package tower

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/tui-tower/internal/config"
	"github.com/vovakirdan/tui-tower/internal/core"
)

// landingSlack absorbs float rounding when a resting body is re-checked
// against the platform it was snapped onto.
const landingSlack = 1e-6

// Platform is a horizontal ledge the body can land on from above.
type Platform struct {
	X, Y float64 // Top-left corner; Y is the landing surface
	W, H float64
}

// Rect returns the platform rectangle.
func (p Platform) Rect() core.RectF {
	return core.NewRectF(p.X, p.Y, p.W, p.H)
}

// Field owns the working set of platforms: it seeds, collides, scrolls,
// evicts and generates them. Platform order carries no meaning.
type Field struct {
	platforms []Platform
	rng       *rand.Rand
	cfg       config.PlatformConfig
	width     float64 // Playfield width
}

// NewField creates an empty field. Call Seed before use.
func NewField(rng *rand.Rand, cfg config.PlatformConfig, width float64) *Field {
	return &Field{
		platforms: make([]Platform, 0, 16),
		rng:       rng,
		cfg:       cfg,
		width:     width,
	}
}

// Seed clears the field, puts a wide platform directly under the body and a
// randomized ladder above it up to the spawn threshold.
func (f *Field) Seed(body core.RectF) {
	f.platforms = f.platforms[:0]

	w := f.cfg.StartWidth
	x := body.X + body.W/2 - w/2
	x = core.ClampF(x, 0, math.Max(f.width-w, 0))

	f.platforms = append(f.platforms, Platform{
		X: x,
		Y: body.Bottom(),
		W: w,
		H: f.cfg.Height,
	})

	f.generate()
}

// Collide lands the body on the first platform whose top surface it crossed
// from above during this tick. prevBottom is the body's bottom edge before
// integration. Returns the platform landed on, if any.
func (f *Field) Collide(b *Body, prevBottom float64) (Platform, bool) {
	if b.VY < 0 {
		return Platform{}, false
	}

	rect := b.Rect()
	newBottom := rect.Bottom()

	for _, p := range f.platforms {
		top := p.Y
		if prevBottom > top+landingSlack || newBottom < top {
			continue
		}
		// Edge contact is enough to stand on a platform
		if !rect.TouchesX(p.Rect()) {
			continue
		}

		b.Y = top - b.H
		b.VY = 0
		b.Airborne = false
		return p, true
	}

	return Platform{}, false
}

// ScrollBy shifts every platform down by distance.
func (f *Field) ScrollBy(distance float64) {
	for i := range f.platforms {
		f.platforms[i].Y += distance
	}
}

// PruneAndGenerate evicts platforms that fell out of reach below the viewport
// and tops the field back up above it.
func (f *Field) PruneAndGenerate(viewportHeight float64) {
	limit := viewportHeight + f.cfg.EvictMargin

	kept := f.platforms[:0]
	for _, p := range f.platforms {
		if p.Y <= limit {
			kept = append(kept, p)
		}
	}
	f.platforms = kept

	f.generate()
}

// generate appends platforms above the highest one until it sits at or
// above the spawn threshold.
func (f *Field) generate() {
	if len(f.platforms) == 0 {
		f.platforms = append(f.platforms, f.randomPlatform(-f.cfg.SpawnAbove))
	}

	top := f.Top()
	for top > -f.cfg.SpawnAbove {
		top -= f.uniform(f.cfg.MinGap, f.cfg.MaxGap)
		f.platforms = append(f.platforms, f.randomPlatform(top))
	}
}

// randomPlatform creates a platform at height y with random width and x.
func (f *Field) randomPlatform(y float64) Platform {
	w := f.uniform(f.cfg.MinWidth, f.cfg.MaxWidth)
	return Platform{
		X: f.rng.Float64() * math.Max(f.width-w, 0),
		Y: y,
		W: w,
		H: f.cfg.Height,
	}
}

func (f *Field) uniform(lo, hi float64) float64 {
	return lo + f.rng.Float64()*(hi-lo)
}

// Top returns the y-coordinate of the highest platform.
// An empty field reports +Inf.
func (f *Field) Top() float64 {
	top := math.Inf(1)
	for _, p := range f.platforms {
		if p.Y < top {
			top = p.Y
		}
	}
	return top
}

// Len returns the number of platforms in the working set.
func (f *Field) Len() int {
	return len(f.platforms)
}

// Platforms returns a copy of the working set.
func (f *Field) Platforms() []Platform {
	out := make([]Platform, len(f.platforms))
	copy(out, f.platforms)
	return out
}

// MaxWorkingSet is an upper bound on Len for a given viewport height: every
// platform lies between the eviction line and one gap above the spawn
// threshold, and consecutive platforms are at least MinGap apart.
func MaxWorkingSet(cfg config.PlatformConfig, viewportHeight float64) int {
	span := viewportHeight + cfg.EvictMargin + cfg.SpawnAbove + cfg.MaxGap
	return int(math.Ceil(span/cfg.MinGap)) + 2
}
