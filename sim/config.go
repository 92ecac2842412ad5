package sim

import (
	"fmt"
	"math"
	"time"
)

const (
	DefaultBodies       = 10
	DefaultRadius       = 20.0
	DefaultGravity      = 0.1
	DefaultFriction     = 0.99 // velocity kept per tick
	DefaultStepDivision = 1.0
	DefaultTickInterval = 16 * time.Millisecond // ~60 fps, best effort
	DefaultWidth        = 400.0
	DefaultHeight       = 400.0
	DefaultMaxSpin      = 0.05 // radians per tick
)

// Config holds the simulation-wide constants. Bodies, Radius, Width, Height
// and MaxSpin only matter when spawning.
type Config struct {
	Bodies       int           `yaml:"bodies"`
	Radius       float64       `yaml:"radius"`
	Gravity      float64       `yaml:"gravity"`
	Friction     float64       `yaml:"friction"`
	StepDivision float64       `yaml:"step_division"`
	TickInterval time.Duration `yaml:"tick_interval"`
	Width        float64       `yaml:"width"`
	Height       float64       `yaml:"height"`
	MaxSpin      float64       `yaml:"max_spin"`
	Seed         int64         `yaml:"seed"` // 0 picks a time-based seed
}

func DefaultConfig() Config {
	return Config{
		Bodies:       DefaultBodies,
		Radius:       DefaultRadius,
		Gravity:      DefaultGravity,
		Friction:     DefaultFriction,
		StepDivision: DefaultStepDivision,
		TickInterval: DefaultTickInterval,
		Width:        DefaultWidth,
		Height:       DefaultHeight,
		MaxSpin:      DefaultMaxSpin,
	}
}

func (c Config) Validate() error {
	switch {
	case c.Bodies < 0:
		return fmt.Errorf("%w: bodies = %d", ErrInvalidConfig, c.Bodies)
	case !(c.Radius > 0) || math.IsInf(c.Radius, 1):
		return fmt.Errorf("%w: radius = %v", ErrInvalidConfig, c.Radius)
	case c.StepDivision == 0 || math.IsNaN(c.StepDivision):
		return fmt.Errorf("%w: %w", ErrInvalidConfig, ErrZeroStepDivision)
	case c.TickInterval <= 0:
		return fmt.Errorf("%w: tick interval = %s", ErrInvalidConfig, c.TickInterval)
	case !(c.Width > 0) || !(c.Height > 0):
		return fmt.Errorf("%w: world size = %vx%v", ErrInvalidConfig, c.Width, c.Height)
	case c.MaxSpin < 0:
		return fmt.Errorf("%w: max spin = %v", ErrInvalidConfig, c.MaxSpin)
	}
	return nil
}
