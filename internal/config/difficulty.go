package config

import (
	"fmt"
	"strings"
)

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// Presets lists the known presets in display order.
func Presets() []DifficultyPreset {
	return []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard}
}

// ParsePreset parses a preset name. An empty name is normal.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard:
		return p, nil
	default:
		return "", fmt.Errorf("unknown difficulty %q (want easy, normal or hard)", s)
	}
}

// ApplyLazerPreset modifies the config based on a difficulty preset.
// Normal leaves the loaded configuration untouched.
func ApplyLazerPreset(cfg *LazerConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Palette.Forward = Unlimited
		cfg.Palette.Backward = Unlimited
		cfg.Puzzle.ExtraMirrors = 2
		cfg.History.Depth = max(cfg.History.Depth, 100)
	case DifficultyHard:
		cfg.Palette.Forward = limitStock(cfg.Palette.Forward, 3)
		cfg.Palette.Backward = limitStock(cfg.Palette.Backward, 3)
		cfg.Palette.Blockers = 0
		cfg.Puzzle.ExtraMirrors = 0
		cfg.History.Depth = min(cfg.History.Depth, 5)
	}
}

// limitStock caps a stock count, treating Unlimited as larger than any cap.
func limitStock(n, limit int) int {
	if n == Unlimited || n > limit {
		return limit
	}
	return n
}
