package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := Parse(configFileName, DefaultYAML())
	if err != nil {
		t.Fatalf("Parse(embedded) failed: %v", err)
	}
	if cfg != DefaultTowerConfig() {
		t.Errorf("embedded defaults differ from DefaultTowerConfig():\n%+v\n%+v", cfg, DefaultTowerConfig())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should be valid: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*TowerConfig)
		want   error
	}{
		{"zero viewport width", func(c *TowerConfig) { c.Viewport.Width = 0 }, ErrInvalidViewport},
		{"negative viewport height", func(c *TowerConfig) { c.Viewport.Height = -600 }, ErrInvalidViewport},
		{"gap min over max", func(c *TowerConfig) { c.Platforms.MinGap = 80 }, ErrInvalidRange},
		{"width min over max", func(c *TowerConfig) { c.Platforms.MinWidth = 130 }, ErrInvalidRange},
		{"width wider than viewport", func(c *TowerConfig) { c.Platforms.MaxWidth = 500 }, ErrInvalidRange},
		{"zero player", func(c *TowerConfig) { c.Player.Width = 0 }, ErrInvalidPlayer},
		{"damping of one", func(c *TowerConfig) { c.Physics.Damping = 1 }, ErrInvalidPhysics},
		{"upward gravity", func(c *TowerConfig) { c.Physics.Gravity = -1 }, ErrInvalidPhysics},
		{"downward jump", func(c *TowerConfig) { c.Physics.JumpImpulse = 3 }, ErrInvalidPhysics},
		{"camera at top", func(c *TowerConfig) { c.Camera.ThresholdFraction = 0 }, ErrInvalidCamera},
		{"zero divisor", func(c *TowerConfig) { c.Scoring.PixelsPerPoint = 0 }, ErrInvalidScoring},
		{"empty key", func(c *TowerConfig) { c.Scoring.BestScoreKey = "" }, ErrInvalidScoring},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultTowerConfig()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if !errors.Is(err, tc.want) {
				t.Errorf("Validate() = %v, expected %v", err, tc.want)
			}
		})
	}
}

func TestValidateReportsAllFaults(t *testing.T) {
	cfg := DefaultTowerConfig()
	cfg.Viewport.Height = 0
	cfg.Platforms.MinGap = 100

	err := cfg.Validate()
	if !errors.Is(err, ErrInvalidViewport) || !errors.Is(err, ErrInvalidRange) {
		t.Errorf("Validate() should join both faults, got %v", err)
	}
}

func TestLoadTowerCustomYAMLOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := []byte("physics:\n  gravity: 0.9\nscoring:\n  pixels_per_point: 5\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadTower(path)
	if err != nil {
		t.Fatalf("LoadTower() failed: %v", err)
	}
	if cfg.Physics.Gravity != 0.9 || cfg.Scoring.PixelsPerPoint != 5 {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	if cfg.Physics.JumpImpulse != DefaultTowerConfig().Physics.JumpImpulse {
		t.Errorf("unset field should keep default, got jump %g", cfg.Physics.JumpImpulse)
	}
}

func TestLoadTowerCustomTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.toml")
	data := []byte("[viewport]\nwidth = 320\nheight = 480\n\n[platforms]\nmax_width = 100\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadTower(path)
	if err != nil {
		t.Fatalf("LoadTower() failed: %v", err)
	}
	if cfg.Viewport.Width != 320 || cfg.Viewport.Height != 480 || cfg.Platforms.MaxWidth != 100 {
		t.Errorf("toml values not applied: %+v", cfg)
	}
	if cfg.Platforms.MinWidth != 80 {
		t.Errorf("unset field should keep default, got %g", cfg.Platforms.MinWidth)
	}
}

func TestLoadTowerMissingCustomPath(t *testing.T) {
	_, err := LoadTower(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Error("missing custom path should be an error")
	}
}

func TestLoadTowerBadSyntax(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("physics: [unterminated"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadTower(path); err == nil {
		t.Error("malformed yaml should be an error")
	}
}

func TestPresets(t *testing.T) {
	if _, err := ParsePreset("nightmare"); err == nil {
		t.Error("unknown preset should be rejected")
	}

	for _, name := range []string{"", "easy", "normal", "hard"} {
		preset, err := ParsePreset(name)
		if err != nil {
			t.Fatalf("ParsePreset(%q) failed: %v", name, err)
		}
		cfg := DefaultTowerConfig()
		ApplyPreset(&cfg, preset)
		if err := cfg.Validate(); err != nil {
			t.Errorf("preset %q produced invalid config: %v", name, err)
		}
	}

	hard := DefaultTowerConfig()
	ApplyPreset(&hard, DifficultyHard)
	if hard.Platforms.MaxGap <= DefaultTowerConfig().Platforms.MaxGap {
		t.Error("hard preset should widen gaps")
	}
	if hard.Scoring.BestScoreKey == DefaultTowerConfig().Scoring.BestScoreKey {
		t.Error("hard preset should track its own best score")
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	data, err := Marshal(DefaultTowerConfig())
	if err != nil {
		t.Fatalf("Marshal() failed: %v", err)
	}
	cfg, err := Parse("dump.yaml", data)
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}
	if cfg != DefaultTowerConfig() {
		t.Error("dumped config should parse back to the same values")
	}
}
