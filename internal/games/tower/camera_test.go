package tower

import "testing"

func TestCameraBelowThresholdDoesNotScroll(t *testing.T) {
	cfg := testConfig()
	c := NewCamera(cfg.Viewport.Height, 0.5)
	f := newTestField(Platform{X: 0, Y: 100, W: 80, H: 10})
	b := Body{Y: 300, W: 20, H: 20}

	if d := c.Update(&b, f, cfg.Viewport.Height); d != 0 {
		t.Errorf("scrolled %v with body on the threshold", d)
	}
	if f.platforms[0].Y != 100 {
		t.Error("platforms moved without a scroll")
	}
}

func TestCameraScroll(t *testing.T) {
	cfg := testConfig()
	c := NewCamera(cfg.Viewport.Height, 0.5)
	f := newTestField(Platform{X: 0, Y: 100, W: 80, H: 10})
	b := Body{Y: 280, W: 20, H: 20}

	d := c.Update(&b, f, cfg.Viewport.Height)

	if d != 20 {
		t.Errorf("scroll = %v, want 20", d)
	}
	if b.Y != c.Threshold() {
		t.Errorf("body Y = %v, want pinned to %v", b.Y, c.Threshold())
	}
	if f.platforms[0].Y != 120 {
		t.Errorf("platform Y = %v, want 120", f.platforms[0].Y)
	}
	if top := f.Top(); top > -cfg.Platforms.SpawnAbove {
		t.Errorf("field not refilled after scroll, top = %v", top)
	}

	b.Y = 290
	c.Update(&b, f, cfg.Viewport.Height)
	if c.Scrolled() != 30 {
		t.Errorf("cumulative scroll = %v, want 30", c.Scrolled())
	}
}

func TestCameraScrollEvicts(t *testing.T) {
	cfg := testConfig()
	c := NewCamera(cfg.Viewport.Height, 0.5)
	limit := cfg.Viewport.Height + cfg.Platforms.EvictMargin
	f := newTestField(Platform{X: 0, Y: limit - 5, W: 80, H: 10})
	b := Body{Y: 290, W: 20, H: 20}

	c.Update(&b, f, cfg.Viewport.Height)

	for _, p := range f.platforms {
		if p.Y > limit {
			t.Errorf("platform at %v should be evicted in the scroll tick", p.Y)
		}
	}
}
