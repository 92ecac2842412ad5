package sim

import (
	"errors"
	"math"
	"math/rand"
	"testing"
)

const eps = 1e-9

func near(a, b float64) bool { return math.Abs(a-b) <= eps*math.Max(1, math.Abs(b)) }

func momentum(bs ...*Body) Vector2 {
	var p Vector2
	for _, b := range bs {
		p = p.Add(b.Velocity.Scale(b.Mass()))
	}
	return p
}

func TestNewBodyRejectsNonPositiveRadius(t *testing.T) {
	for _, r := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		if _, err := NewBody(Zero, r); !errors.Is(err, ErrNonPositiveRadius) {
			t.Fatalf("NewBody(radius=%v) err = %v, want ErrNonPositiveRadius", r, err)
		}
	}
	b, err := NewBody(Vec(1, 2), 20)
	if err != nil {
		t.Fatalf("NewBody: %v", err)
	}
	if b.Mass() != 20 {
		t.Fatalf("mass = %f, want radius 20", b.Mass())
	}
}

func TestGravityScalesByMass(t *testing.T) {
	b := &Body{Radius: 20}
	b.ApplyGravity(0.1)
	if !near(b.Velocity.Y, 0.005) || b.Velocity.X != 0 {
		t.Fatalf("velocity after gravity = %v, want (0, 0.005)", b.Velocity)
	}
}

func TestIntegrateMovesAndSpins(t *testing.T) {
	b := &Body{Radius: 1, Velocity: Vec(4, -2), AngularVelocity: 0.03}
	b.Integrate(1)
	b.Integrate(2)
	if b.Position != Vec(6, -3) {
		t.Fatalf("position = %v, want (6,-3)", b.Position)
	}
	if !near(b.Angle, 0.06) {
		t.Fatalf("angle = %f, want 0.06", b.Angle)
	}
}

func TestIntegratePanicsOnZeroStepDivision(t *testing.T) {
	defer func() {
		r := recover()
		if err, ok := r.(error); !ok || !errors.Is(err, ErrZeroStepDivision) {
			t.Fatalf("recovered %v, want ErrZeroStepDivision", r)
		}
	}()
	(&Body{Radius: 1}).Integrate(0)
}

func TestFrictionShrinksWithoutReversing(t *testing.T) {
	b := &Body{Radius: 1, Velocity: Vec(3, -4)}
	prev := b.Velocity.Len()
	for i := 0; i < 200; i++ {
		b.ApplyFriction(0.9)
		cur := b.Velocity.Len()
		if cur >= prev {
			t.Fatalf("iteration %d: |v| went %g -> %g", i, prev, cur)
		}
		if b.Velocity.X < 0 || b.Velocity.Y > 0 {
			t.Fatalf("iteration %d: direction reversed: %v", i, b.Velocity)
		}
		prev = cur
	}
	if prev > 1e-8 {
		t.Fatalf("|v| after 200 applications = %g, want ~0", prev)
	}
}

func TestOverlapIsStrict(t *testing.T) {
	a := &Body{Radius: 10}
	b := &Body{Radius: 10, Position: Vec(20, 0)}
	if a.Overlaps(b) || b.Overlaps(a) {
		t.Fatalf("tangent bodies reported as overlapping")
	}
	b.Position = Vec(20-1e-6, 0)
	if !a.Overlaps(b) {
		t.Fatalf("bodies closer than r1+r2 not reported as overlapping")
	}
	if a.CheckCollision(&Body{Radius: 10, Position: Vec(0, 20)}) {
		t.Fatalf("CheckCollision resolved a tangent pair")
	}
}

// Locked numbers for radii 10/20 (masses 10/20) closing head-on at 5 each.
func TestResolveCollisionFixture(t *testing.T) {
	a := &Body{Radius: 10, Position: Vec(0, 0), Velocity: Vec(5, 0)}
	b := &Body{Radius: 20, Position: Vec(15, 0), Velocity: Vec(-5, 0)}
	if !a.Overlaps(b) {
		t.Fatalf("fixture bodies should overlap")
	}

	if !a.ResolveCollisionWith(b) {
		t.Fatalf("expected impulse to be applied")
	}

	want := -5.0 / 3.0
	if !near(a.Velocity.X, want) || !near(b.Velocity.X, want) {
		t.Fatalf("post velocities a=%v b=%v, want both x=%f", a.Velocity, b.Velocity, want)
	}
	if a.Velocity.Y != 0 || b.Velocity.Y != 0 {
		t.Fatalf("y velocity changed: a=%v b=%v", a.Velocity, b.Velocity)
	}
	if a.Position != Vec(0, 0) || b.Position != Vec(15, 0) {
		t.Fatalf("positions moved: a=%v b=%v", a.Position, b.Position)
	}
}

func TestCollisionConservesMomentum(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 100; i++ {
		a := &Body{
			Radius:   1 + rng.Float64()*30,
			Position: Vec(rng.Float64()*10, rng.Float64()*10),
			Velocity: Vec(rng.Float64()*20-10, rng.Float64()*20-10),
		}
		b := &Body{
			Radius:   1 + rng.Float64()*30,
			Position: Vec(rng.Float64()*10, rng.Float64()*10),
			Velocity: Vec(rng.Float64()*20-10, rng.Float64()*20-10),
		}
		before := momentum(a, b)
		a.ResolveCollisionWith(b)
		after := momentum(a, b)
		if math.Abs(before.X-after.X) > 1e-9 || math.Abs(before.Y-after.Y) > 1e-9 {
			t.Fatalf("case %d: momentum %v -> %v", i, before, after)
		}
	}
}

func TestCollisionIsSymmetric(t *testing.T) {
	mk := func() (*Body, *Body) {
		return &Body{Radius: 12, Position: Vec(3, 4), Velocity: Vec(2, -1)},
			&Body{Radius: 7, Position: Vec(10, 9), Velocity: Vec(-3, 0.5)}
	}
	a1, b1 := mk()
	a2, b2 := mk()

	a1.ResolveCollisionWith(b1)
	b2.ResolveCollisionWith(a2)

	if !near(a1.Velocity.X, a2.Velocity.X) || !near(a1.Velocity.Y, a2.Velocity.Y) ||
		!near(b1.Velocity.X, b2.Velocity.X) || !near(b1.Velocity.Y, b2.Velocity.Y) {
		t.Fatalf("(A,B) gave a=%v b=%v; (B,A) gave a=%v b=%v",
			a1.Velocity, b1.Velocity, a2.Velocity, b2.Velocity)
	}
}

func TestCoincidentCentresAreSkipped(t *testing.T) {
	a := &Body{Radius: 10, Position: Vec(5, 5), Velocity: Vec(1, 0)}
	b := &Body{Radius: 10, Position: Vec(5, 5), Velocity: Vec(-1, 0)}

	if !a.Overlaps(b) {
		t.Fatalf("coincident bodies should overlap")
	}
	if a.CheckCollision(b) {
		t.Fatalf("expected no impulse for coincident centres")
	}
	if a.Velocity != Vec(1, 0) || b.Velocity != Vec(-1, 0) {
		t.Fatalf("velocities changed: a=%v b=%v", a.Velocity, b.Velocity)
	}
	if a.ResolveCollisionWith(a) {
		t.Fatalf("body collided with itself")
	}
}
