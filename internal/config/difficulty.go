package config

import "fmt"

// DifficultyPreset represents a named difficulty level.
// Presets rewrite tuning values once at load time; nothing changes mid-session.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ParsePreset converts a CLI value into a preset. Empty means "use the config as is".
func ParsePreset(s string) (DifficultyPreset, error) {
	switch DifficultyPreset(s) {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard:
		return DifficultyPreset(s), nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal or hard)", s)
	}
}

// ApplyPreset modifies the config based on a difficulty preset.
// Normal and empty leave the config untouched.
func ApplyPreset(cfg *TowerConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Platforms.MinGap = 40
		cfg.Platforms.MaxGap = 60
		cfg.Platforms.MinWidth = 100
		cfg.Platforms.MaxWidth = 140
		cfg.Scoring.BestScoreKey = "tower_easy"
	case DifficultyHard:
		cfg.Physics.Gravity = 0.7
		cfg.Platforms.MinGap = 60
		cfg.Platforms.MaxGap = 90
		cfg.Platforms.MinWidth = 60
		cfg.Platforms.MaxWidth = 100
		cfg.Scoring.BestScoreKey = "tower_hard"
	}

	// Keep generated widths placeable on narrow viewports
	if cfg.Platforms.MaxWidth > cfg.Viewport.Width && cfg.Viewport.Width > 0 {
		cfg.Platforms.MaxWidth = cfg.Viewport.Width
	}
}
