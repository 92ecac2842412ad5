package sim

import (
	"fmt"
	"math"
)

// Body is a circular ball. Its mass is defined to be its radius so larger
// balls are heavier.
type Body struct {
	ID       int
	Position Vector2
	Velocity Vector2
	Radius   float64

	// Cosmetic spin. Collisions never touch it.
	Angle           float64
	AngularVelocity float64

	Sprite SpriteRef
}

// BodyView is a read-only copy of the state a renderer needs.
type BodyView struct {
	ID       int
	Position Vector2
	Velocity Vector2
	Radius   float64
	Angle    float64
	Sprite   SpriteRef
}

func NewBody(pos Vector2, radius float64) (*Body, error) {
	if !(radius > 0) || math.IsInf(radius, 1) {
		return nil, fmt.Errorf("new body with radius %v: %w", radius, ErrNonPositiveRadius)
	}
	return &Body{Position: pos, Radius: radius}, nil
}

func (b *Body) Mass() float64 { return b.Radius }

func (b *Body) AddForce(f Vector2) {
	b.Velocity = b.Velocity.Add(f.Div(b.Mass()))
}

// Integrate moves the body by velocity/stepDivision and advances its spin.
// stepDivision must be non-zero; a zero value panics.
func (b *Body) Integrate(stepDivision float64) {
	if stepDivision == 0 {
		panic(ErrZeroStepDivision)
	}
	b.Position = b.Position.Add(b.Velocity.Div(stepDivision))
	b.Angle += b.AngularVelocity
}

// ApplyFriction scales velocity by coefficient. Values outside (0,1] are not
// rejected.
func (b *Body) ApplyFriction(coefficient float64) {
	b.Velocity = b.Velocity.Scale(coefficient)
}

func (b *Body) ApplyGravity(g float64) {
	b.AddForce(Vec(0, g))
}

// Overlaps reports whether the circles intersect. Exact tangency is not an overlap.
func (b *Body) Overlaps(o *Body) bool {
	return b.Position.DistanceTo(o.Position) < b.Radius+o.Radius
}

// ResolveCollisionWith exchanges impulse along the line between the centres.
// Only velocities change; overlapping bodies are not pushed apart. It returns
// false without touching either body when o is b or the centres coincide.
func (b *Body) ResolveCollisionWith(o *Body) bool {
	if b == o {
		return false
	}
	normal, ok := b.Position.Sub(o.Position).Normalize()
	if !ok {
		return false
	}
	rv := b.Velocity.Sub(o.Velocity)
	j := rv.Dot(normal) / (1/b.Mass() + 1/o.Mass())
	impulse := normal.Scale(j)

	b.Velocity = b.Velocity.Sub(impulse.Div(b.Mass()))
	o.Velocity = o.Velocity.Add(impulse.Div(o.Mass()))
	return true
}

// CheckCollision resolves the pair if it overlaps and reports whether an
// impulse was applied.
func (b *Body) CheckCollision(o *Body) bool {
	if !b.Overlaps(o) {
		return false
	}
	return b.ResolveCollisionWith(o)
}

func (b *Body) View() BodyView {
	return BodyView{
		ID:       b.ID,
		Position: b.Position,
		Velocity: b.Velocity,
		Radius:   b.Radius,
		Angle:    b.Angle,
		Sprite:   b.Sprite,
	}
}
