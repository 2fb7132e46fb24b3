package config

import (
	_ "embed"
)

//go:embed defaults/tower.yaml
var defaultTowerYAML []byte

// DefaultTowerConfig returns the hardcoded default configuration.
// It mirrors defaults/tower.yaml and is used when the embedded file cannot be parsed.
func DefaultTowerConfig() TowerConfig {
	return TowerConfig{
		Viewport: ViewportConfig{
			Width:  400,
			Height: 600,
		},
		Physics: PhysicsConfig{
			Gravity:       0.6,
			JumpImpulse:   -15,
			MoveSpeed:     5,
			Damping:       0.8,
			StopThreshold: 0.1,
			FrameMillis:   16.667,
			MaxStepMillis: 50,
		},
		Player: PlayerConfig{
			Width:  20,
			Height: 20,
		},
		Platforms: PlatformConfig{
			Height:      10,
			MinGap:      50,
			MaxGap:      70,
			MinWidth:    80,
			MaxWidth:    120,
			SpawnAbove:  60,
			EvictMargin: 100,
			StartWidth:  200,
			StartMargin: 40,
		},
		Camera: CameraConfig{
			ThresholdFraction: 0.5,
		},
		Scoring: ScoringConfig{
			PixelsPerPoint: 10,
			FallMargin:     0,
			BestScoreKey:   "tower",
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultTowerYAML
}
