// Package config provides YAML-based game configuration loading and
// difficulty presets for Lazer Showdown.
package config

import "fmt"

// Unlimited marks a palette stock that never runs out.
const Unlimited = -1

// LazerConfig contains all configuration for the laser game.
type LazerConfig struct {
	Grid    GridConfig    `yaml:"grid"`
	Palette PaletteConfig `yaml:"palette"`
	Puzzle  PuzzleConfig  `yaml:"puzzle"`
	Beam    BeamConfig    `yaml:"beam"`
	Dice    DiceConfig    `yaml:"dice"`
	History HistoryConfig `yaml:"history"`
}

// GridConfig defines the sandbox board size.
type GridConfig struct {
	Rows int `yaml:"rows"`
	Cols int `yaml:"cols"`
}

// PaletteConfig defines the sandbox piece stock. Counts of -1 are unlimited.
type PaletteConfig struct {
	Emitters int   `yaml:"emitters"`
	Forward  int   `yaml:"forward"`
	Backward int   `yaml:"backward"`
	Blockers int   `yaml:"blockers"`
	Targets  []int `yaml:"targets"` // One entry per target piece, by point value
}

// PuzzleConfig tunes puzzle mode.
type PuzzleConfig struct {
	ExtraMirrors int `yaml:"extra_mirrors"` // Added to each board's mirror stock
}

// BeamConfig defines beam tracing and animation.
type BeamConfig struct {
	TicksPerCell int `yaml:"ticks_per_cell"`
	LingerTicks  int `yaml:"linger_ticks"` // How long the full beam stays visible
	StepLimit    int `yaml:"step_limit"`   // 0 uses 4*rows*cols
}

// DiceConfig defines the dice roll.
type DiceConfig struct {
	Count int `yaml:"count"`
	Sides int `yaml:"sides"`
}

// HistoryConfig bounds undo/redo.
type HistoryConfig struct {
	Depth int `yaml:"depth"`
}

// Validate reports the first setting that cannot be used.
func (c LazerConfig) Validate() error {
	switch {
	case c.Grid.Rows <= 0 || c.Grid.Cols <= 0:
		return fmt.Errorf("config: grid must be at least 1x1, got %dx%d", c.Grid.Rows, c.Grid.Cols)
	case c.Beam.TicksPerCell <= 0:
		return fmt.Errorf("config: beam.ticks_per_cell must be positive, got %d", c.Beam.TicksPerCell)
	case c.Beam.StepLimit < 0:
		return fmt.Errorf("config: beam.step_limit must not be negative, got %d", c.Beam.StepLimit)
	case c.Dice.Count < 0 || (c.Dice.Count > 0 && c.Dice.Sides < 2):
		return fmt.Errorf("config: dice needs count >= 0 and sides >= 2, got %dd%d", c.Dice.Count, c.Dice.Sides)
	case c.History.Depth < 0:
		return fmt.Errorf("config: history.depth must not be negative, got %d", c.History.Depth)
	}
	for _, v := range c.Palette.Targets {
		if v <= 0 {
			return fmt.Errorf("config: target values must be positive, got %d", v)
		}
	}
	return nil
}
