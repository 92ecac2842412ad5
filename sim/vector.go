package sim

import (
	"math"

	"github.com/golang/geo/r2"
)

// Vector2 is an immutable 2D vector. Every operation returns a new value.
type Vector2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

var Zero = Vector2{}

func Vec(x, y float64) Vector2 { return Vector2{X: x, Y: y} }

func (v Vector2) point() r2.Point { return r2.Point{X: v.X, Y: v.Y} }

func fromPoint(p r2.Point) Vector2 { return Vector2{X: p.X, Y: p.Y} }

func (v Vector2) Add(o Vector2) Vector2 { return fromPoint(v.point().Add(o.point())) }

func (v Vector2) Sub(o Vector2) Vector2 { return fromPoint(v.point().Sub(o.point())) }

func (v Vector2) Scale(k float64) Vector2 { return fromPoint(v.point().Mul(k)) }

// Div divides both components by k. It is not guarded: k == 0 gives
// infinite or NaN components, the same as plain float division.
func (v Vector2) Div(k float64) Vector2 { return Vector2{X: v.X / k, Y: v.Y / k} }

func (v Vector2) Dot(o Vector2) float64 { return v.point().Dot(o.point()) }

func (v Vector2) Len() float64 { return v.point().Norm() }

func (v Vector2) DistanceTo(o Vector2) float64 { return v.Sub(o).Len() }

// Normalize returns the unit vector in the direction of v. A zero-length
// vector has no direction; it yields (Zero, false) instead of NaN components.
func (v Vector2) Normalize() (Vector2, bool) {
	l := v.Len()
	if l == 0 || math.IsNaN(l) {
		return Zero, false
	}
	return v.Div(l), true
}

// IsFinite reports whether neither component is NaN or infinite.
func (v Vector2) IsFinite() bool {
	return !math.IsNaN(v.X) && !math.IsNaN(v.Y) && !math.IsInf(v.X, 0) && !math.IsInf(v.Y, 0)
}
