package sim

import (
	"math"
	"testing"
)

func TestVectorArithmetic(t *testing.T) {
	a := Vec(3, 4)
	b := Vec(1, -2)

	if got := a.Add(b); got != Vec(4, 2) {
		t.Fatalf("Add = %v, want (4,2)", got)
	}
	if got := a.Sub(b); got != Vec(2, 6) {
		t.Fatalf("Sub = %v, want (2,6)", got)
	}
	if got := a.Scale(2); got != Vec(6, 8) {
		t.Fatalf("Scale = %v, want (6,8)", got)
	}
	if got := a.Div(2); got != Vec(1.5, 2) {
		t.Fatalf("Div = %v, want (1.5,2)", got)
	}
	if got := a.Dot(b); got != -5 {
		t.Fatalf("Dot = %f, want -5", got)
	}
	if got := a.Len(); got != 5 {
		t.Fatalf("Len = %f, want 5", got)
	}
	if got := a.DistanceTo(Vec(0, 0)); got != 5 {
		t.Fatalf("DistanceTo = %f, want 5", got)
	}
	if a != Vec(3, 4) {
		t.Fatalf("operations mutated receiver: %v", a)
	}
}

func TestNormalize(t *testing.T) {
	n, ok := Vec(0, -10).Normalize()
	if !ok || n != Vec(0, -1) {
		t.Fatalf("Normalize((0,-10)) = %v, %v; want (0,-1), true", n, ok)
	}

	n, ok = Zero.Normalize()
	if ok || n != Zero {
		t.Fatalf("Normalize(zero) = %v, %v; want zero, false", n, ok)
	}
}

func TestDivByZeroIsUnguarded(t *testing.T) {
	v := Vec(1, 0).Div(0)
	if !math.IsInf(v.X, 1) || !math.IsNaN(v.Y) {
		t.Fatalf("Div(0) = %v, want (+Inf, NaN)", v)
	}
	if v.IsFinite() {
		t.Fatalf("IsFinite reported true for %v", v)
	}
}
