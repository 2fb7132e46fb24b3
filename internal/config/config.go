// Package config provides YAML/TOML-based tuning configuration for the
// tower game, with embedded defaults and difficulty presets.
package config

import (
	"errors"
	"fmt"
)

// Configuration faults. Validate wraps one of these for every broken field.
var (
	ErrInvalidViewport = errors.New("config: invalid viewport")
	ErrInvalidPlayer   = errors.New("config: invalid player")
	ErrInvalidRange    = errors.New("config: invalid platform range")
	ErrInvalidPhysics  = errors.New("config: invalid physics")
	ErrInvalidCamera   = errors.New("config: invalid camera")
	ErrInvalidScoring  = errors.New("config: invalid scoring")
)

// TowerConfig contains every tuning value of the simulation.
// All distances are world units (y grows downward), all velocities are
// world units per reference frame (see PhysicsConfig.FrameMillis).
type TowerConfig struct {
	Viewport  ViewportConfig `yaml:"viewport" toml:"viewport"`
	Physics   PhysicsConfig  `yaml:"physics" toml:"physics"`
	Player    PlayerConfig   `yaml:"player" toml:"player"`
	Platforms PlatformConfig `yaml:"platforms" toml:"platforms"`
	Camera    CameraConfig   `yaml:"camera" toml:"camera"`
	Scoring   ScoringConfig  `yaml:"scoring" toml:"scoring"`
}

// ViewportConfig is the visible play area in world units.
type ViewportConfig struct {
	Width  float64 `yaml:"width" toml:"width"`
	Height float64 `yaml:"height" toml:"height"`
}

// PhysicsConfig defines body integration parameters.
type PhysicsConfig struct {
	Gravity       float64 `yaml:"gravity" toml:"gravity"`               // Added to vy per reference frame
	JumpImpulse   float64 `yaml:"jump_impulse" toml:"jump_impulse"`     // vy set on jump (negative = up)
	MoveSpeed     float64 `yaml:"move_speed" toml:"move_speed"`         // |vx| while left/right is held
	Damping       float64 `yaml:"damping" toml:"damping"`               // vx multiplier per tick with no horizontal input
	StopThreshold float64 `yaml:"stop_threshold" toml:"stop_threshold"` // |vx| below this snaps to zero
	FrameMillis   float64 `yaml:"frame_millis" toml:"frame_millis"`     // Reference frame length velocities are tuned for
	MaxStepMillis float64 `yaml:"max_step_millis" toml:"max_step_millis"`
}

// PlayerConfig defines the body hitbox.
type PlayerConfig struct {
	Width  float64 `yaml:"width" toml:"width"`
	Height float64 `yaml:"height" toml:"height"`
}

// PlatformConfig defines generation and eviction of platforms.
type PlatformConfig struct {
	Height      float64 `yaml:"height" toml:"height"`
	MinGap      float64 `yaml:"min_gap" toml:"min_gap"`
	MaxGap      float64 `yaml:"max_gap" toml:"max_gap"`
	MinWidth    float64 `yaml:"min_width" toml:"min_width"`
	MaxWidth    float64 `yaml:"max_width" toml:"max_width"`
	SpawnAbove  float64 `yaml:"spawn_above" toml:"spawn_above"`   // Generate until the top platform is this far above the viewport
	EvictMargin float64 `yaml:"evict_margin" toml:"evict_margin"` // Evict once this far below the viewport
	StartWidth  float64 `yaml:"start_width" toml:"start_width"`   // Width of the seeded platform under the body
	StartMargin float64 `yaml:"start_margin" toml:"start_margin"` // Gap between the seeded platform and the viewport bottom
}

// CameraConfig defines when the world scrolls.
type CameraConfig struct {
	ThresholdFraction float64 `yaml:"threshold_fraction" toml:"threshold_fraction"` // Fraction of viewport height from the top
}

// ScoringConfig defines score derivation and termination.
type ScoringConfig struct {
	PixelsPerPoint float64 `yaml:"pixels_per_point" toml:"pixels_per_point"`
	FallMargin     float64 `yaml:"fall_margin" toml:"fall_margin"`
	BestScoreKey   string  `yaml:"best_score_key" toml:"best_score_key"`
}

// Validate reports every configuration fault at once.
// A config that fails validation must not be used to start a session.
func (c TowerConfig) Validate() error {
	var errs []error
	fail := func(kind error, format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: %s", kind, fmt.Sprintf(format, args...)))
	}

	v := c.Viewport
	if v.Width <= 0 || v.Height <= 0 {
		fail(ErrInvalidViewport, "dimensions must be positive, got %gx%g", v.Width, v.Height)
	}

	p := c.Player
	if p.Width <= 0 || p.Height <= 0 {
		fail(ErrInvalidPlayer, "size must be positive, got %gx%g", p.Width, p.Height)
	}

	pl := c.Platforms
	if pl.Height <= 0 {
		fail(ErrInvalidRange, "height must be positive, got %g", pl.Height)
	}
	if pl.MinGap <= 0 {
		fail(ErrInvalidRange, "min_gap must be positive, got %g", pl.MinGap)
	}
	if pl.MinGap > pl.MaxGap {
		fail(ErrInvalidRange, "min_gap %g exceeds max_gap %g", pl.MinGap, pl.MaxGap)
	}
	if pl.MinWidth <= 0 {
		fail(ErrInvalidRange, "min_width must be positive, got %g", pl.MinWidth)
	}
	if pl.MinWidth > pl.MaxWidth {
		fail(ErrInvalidRange, "min_width %g exceeds max_width %g", pl.MinWidth, pl.MaxWidth)
	}
	if v.Width > 0 && pl.MaxWidth > v.Width {
		fail(ErrInvalidRange, "max_width %g exceeds viewport width %g", pl.MaxWidth, v.Width)
	}
	if pl.StartWidth <= 0 {
		fail(ErrInvalidRange, "start_width must be positive, got %g", pl.StartWidth)
	}
	if pl.SpawnAbove < 0 || pl.EvictMargin < 0 || pl.StartMargin < 0 {
		fail(ErrInvalidRange, "spawn_above, evict_margin and start_margin must not be negative")
	}

	ph := c.Physics
	if ph.FrameMillis <= 0 || ph.MaxStepMillis <= 0 {
		fail(ErrInvalidPhysics, "frame_millis and max_step_millis must be positive")
	}
	if ph.Damping < 0 || ph.Damping >= 1 {
		fail(ErrInvalidPhysics, "damping must be in [0, 1), got %g", ph.Damping)
	}
	if ph.StopThreshold < 0 || ph.MoveSpeed < 0 {
		fail(ErrInvalidPhysics, "stop_threshold and move_speed must not be negative")
	}
	if ph.Gravity <= 0 {
		fail(ErrInvalidPhysics, "gravity must be positive, got %g", ph.Gravity)
	}
	if ph.JumpImpulse >= 0 {
		fail(ErrInvalidPhysics, "jump_impulse must be negative (upward), got %g", ph.JumpImpulse)
	}

	if f := c.Camera.ThresholdFraction; f <= 0 || f >= 1 {
		fail(ErrInvalidCamera, "threshold_fraction must be in (0, 1), got %g", f)
	}

	s := c.Scoring
	if s.PixelsPerPoint <= 0 {
		fail(ErrInvalidScoring, "pixels_per_point must be positive, got %g", s.PixelsPerPoint)
	}
	if s.FallMargin < 0 {
		fail(ErrInvalidScoring, "fall_margin must not be negative, got %g", s.FallMargin)
	}
	if s.BestScoreKey == "" {
		fail(ErrInvalidScoring, "best_score_key must not be empty")
	}

	return errors.Join(errs...)
}
