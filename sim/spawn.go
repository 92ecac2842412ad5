package sim

import (
	"math/rand"
	"time"
)

// NewRand returns a generator for seed, or a time-seeded one when seed is 0.
func NewRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// Spawn fills a world with cfg.Bodies balls of cfg.Radius placed uniformly in
// [0,Width)x[0,Height), at rest, spinning at a rate in [-MaxSpin, MaxSpin).
// A nil rng is seeded from cfg.Seed; a nil pick leaves sprites empty.
func Spawn(cfg Config, rng *rand.Rand, pick SpritePicker) (*World, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		rng = NewRand(cfg.Seed)
	}
	if pick == nil {
		pick = NoSprite
	}

	bodies := make([]*Body, 0, cfg.Bodies)
	for i := 0; i < cfg.Bodies; i++ {
		pos := Vec(rng.Float64()*cfg.Width, rng.Float64()*cfg.Height)
		b, err := NewBody(pos, cfg.Radius)
		if err != nil {
			return nil, err
		}
		b.ID = i + 1
		b.Sprite = pick()
		b.AngularVelocity = rng.Float64()*2*cfg.MaxSpin - cfg.MaxSpin
		bodies = append(bodies, b)
	}
	return NewWorld(cfg, bodies...)
}
