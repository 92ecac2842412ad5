package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"ballpit/sim"
)

const EnvPrefix = "BALLPIT_"

// Settings is everything the binaries need.
type Settings struct {
	Addr           string     `yaml:"addr"`
	SpriteDir      string     `yaml:"sprite_dir"`
	Palette        []string   `yaml:"palette"`
	BroadcastEvery int        `yaml:"broadcast_every"`
	MaxTicks       int        `yaml:"max_ticks"`
	Sim            sim.Config `yaml:"sim"`
}

func Default() Settings {
	return Settings{
		Addr:           ":8080",
		SpriteDir:      "assets",
		Palette:        append([]string(nil), sim.DefaultPalette...),
		BroadcastEvery: 1,
		Sim:            sim.DefaultConfig(),
	}
}

// Load starts from Default, applies the YAML file at path (if path is not
// empty and the file exists), then BALLPIT_* environment variables.
func Load(path string) (Settings, error) {
	s := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return s, fmt.Errorf("read %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, &s); err != nil {
				return s, fmt.Errorf("parse %s: %w", path, err)
			}
		}
	}
	if err := s.applyEnv(); err != nil {
		return s, err
	}
	if err := s.Validate(); err != nil {
		return s, err
	}
	return s, nil
}

func (s Settings) Validate() error {
	if s.BroadcastEvery < 0 {
		return fmt.Errorf("broadcast_every = %d, must be >= 0", s.BroadcastEvery)
	}
	if s.MaxTicks < 0 {
		return fmt.Errorf("max_ticks = %d, must be >= 0", s.MaxTicks)
	}
	return s.Sim.Validate()
}

func (s *Settings) applyEnv() error {
	str := func(name string, dst *string) {
		if v, err := GetEnvVariable(EnvPrefix + name); err == nil {
			*dst = v
		}
	}
	integer := func(name string, dst *int) error {
		v, err := GetEnvVariable(EnvPrefix + name)
		if err != nil {
			return nil
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s%s: %w", EnvPrefix, name, err)
		}
		*dst = n
		return nil
	}
	float := func(name string, dst *float64) error {
		v, err := GetEnvVariable(EnvPrefix + name)
		if err != nil {
			return nil
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%s%s: %w", EnvPrefix, name, err)
		}
		*dst = f
		return nil
	}

	str("ADDR", &s.Addr)
	str("SPRITE_DIR", &s.SpriteDir)
	if v, err := GetEnvVariable(EnvPrefix + "PALETTE"); err == nil {
		s.Palette = strings.Split(v, ",")
	}
	if v, err := GetEnvVariable(EnvPrefix + "TICK_INTERVAL"); err == nil {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%sTICK_INTERVAL: %w", EnvPrefix, err)
		}
		s.Sim.TickInterval = d
	}
	if v, err := GetEnvVariable(EnvPrefix + "SEED"); err == nil {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%sSEED: %w", EnvPrefix, err)
		}
		s.Sim.Seed = n
	}

	for _, err := range []error{
		integer("BROADCAST_EVERY", &s.BroadcastEvery),
		integer("MAX_TICKS", &s.MaxTicks),
		integer("BODIES", &s.Sim.Bodies),
		float("RADIUS", &s.Sim.Radius),
		float("GRAVITY", &s.Sim.Gravity),
		float("FRICTION", &s.Sim.Friction),
		float("STEP_DIVISION", &s.Sim.StepDivision),
		float("WIDTH", &s.Sim.Width),
		float("HEIGHT", &s.Sim.Height),
		float("MAX_SPIN", &s.Sim.MaxSpin),
	} {
		if err != nil {
			return err
		}
	}
	return nil
}
