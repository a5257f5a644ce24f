package config

import (
	_ "embed"
)

//go:embed defaults/lazer.yaml
var defaultLazerYAML []byte

// DefaultLazerConfig returns the built-in configuration.
// It matches defaults/lazer.yaml.
func DefaultLazerConfig() LazerConfig {
	return LazerConfig{
		Grid: GridConfig{Rows: 8, Cols: 8},
		Palette: PaletteConfig{
			Emitters: 1,
			Forward:  Unlimited,
			Backward: Unlimited,
			Targets:  []int{20, 30, 50},
		},
		Beam: BeamConfig{
			TicksPerCell: 2,
			LingerTicks:  20,
		},
		Dice:    DiceConfig{Count: 2, Sides: 6},
		History: HistoryConfig{Depth: 50},
	}
}
