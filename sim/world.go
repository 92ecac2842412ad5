package sim

import (
	"context"
	"fmt"
	"time"
)

// World owns an ordered, fixed set of bodies. The order never changes and
// is the pair iteration order of Step.
type World struct {
	Tick int

	cfg    Config
	bodies []*Body
}

// NewWorld validates cfg and takes ownership of bodies. Bodies with a zero ID
// are numbered by position, starting at 1.
func NewWorld(cfg Config, bodies ...*Body) (*World, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	seen := make(map[*Body]struct{}, len(bodies))
	owned := make([]*Body, 0, len(bodies))
	for i, b := range bodies {
		if b == nil {
			return nil, fmt.Errorf("body %d is nil: %w", i, ErrInvalidConfig)
		}
		if _, dup := seen[b]; dup {
			return nil, fmt.Errorf("body %d: %w", i, ErrDuplicateBody)
		}
		seen[b] = struct{}{}
		if b.ID == 0 {
			b.ID = i + 1
		}
		owned = append(owned, b)
	}
	return &World{cfg: cfg, bodies: owned}, nil
}

func (w *World) Config() Config { return w.cfg }

func (w *World) Len() int { return len(w.bodies) }

// Body returns the i-th body in iteration order.
func (w *World) Body(i int) *Body { return w.bodies[i] }

// Bodies returns a snapshot of every body for rendering.
func (w *World) Bodies() []BodyView {
	out := make([]BodyView, len(w.bodies))
	for i, b := range w.bodies {
		out[i] = b.View()
	}
	return out
}

// Step runs one tick and returns the number of impulses applied.
//
// Every body gets gravity, integration and friction in stored order, then each
// unordered pair (i<j) is checked once in lexicographic order. A resolution
// that re-creates overlap with an earlier pair is left for the next tick.
func (w *World) Step() int {
	for _, b := range w.bodies {
		b.ApplyGravity(w.cfg.Gravity)
		b.Integrate(w.cfg.StepDivision)
		b.ApplyFriction(w.cfg.Friction)
	}

	hits := 0
	for i := 0; i < len(w.bodies); i++ {
		for j := i + 1; j < len(w.bodies); j++ {
			if w.bodies[i].CheckCollision(w.bodies[j]) {
				hits++
			}
		}
	}
	w.Tick++
	return hits
}

// Advance runs n ticks back to back.
func (w *World) Advance(n int) int {
	hits := 0
	for i := 0; i < n; i++ {
		hits += w.Step()
	}
	return hits
}

// Run steps the world on a ticker until ctx is done or maxTicks ticks have
// run (0 means no limit). onTick, if set, is called after every tick and is
// where a frame gets drawn. Missed ticks are not caught up.
func (w *World) Run(ctx context.Context, maxTicks int, onTick func(*World)) error {
	ticker := time.NewTicker(w.cfg.TickInterval)
	defer ticker.Stop()

	for n := 0; maxTicks <= 0 || n < maxTicks; n++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
		w.Step()
		if onTick != nil {
			onTick(w)
		}
	}
	return nil
}
