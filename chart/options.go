package chart

import (
	"github.com/caarlos0/env/v11"
)

// Options holds the render defaults for built charts. All of them can be
// overridden per deployment through CHART_* environment variables.
type Options struct {
	Width     float64 `env:"CHART_WIDTH" envDefault:"800"`
	Height    float64 `env:"CHART_HEIGHT" envDefault:"300"`
	PadLeft   float64 `env:"CHART_PAD_LEFT" envDefault:"40"`
	PadRight  float64 `env:"CHART_PAD_RIGHT" envDefault:"10"`
	PadTop    float64 `env:"CHART_PAD_TOP" envDefault:"10"`
	PadBottom float64 `env:"CHART_PAD_BOTTOM" envDefault:"20"`
	MaxPoints int     `env:"CHART_MAX_POINTS" envDefault:"300"`
}

// DefaultOptions returns the built-in render defaults.
func DefaultOptions() Options {
	return Options{
		Width:     800,
		Height:    300,
		PadLeft:   40,
		PadRight:  10,
		PadTop:    10,
		PadBottom: 20,
		MaxPoints: 300,
	}
}

// OptionsFromEnv reads Options from the environment, falling back to the
// built-in defaults when parsing fails.
func OptionsFromEnv() Options {
	var opts Options
	if err := env.Parse(&opts); err != nil {
		return DefaultOptions()
	}
	return opts
}
