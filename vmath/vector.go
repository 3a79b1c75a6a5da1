package vmath

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Vec2 is a float64 2D vector value, all operations return new values
type Vec2 struct {
	X, Y float64
}

// V2 builds a Vec2
func V2(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

func (v Vec2) gl() mgl64.Vec2 {
	return mgl64.Vec2{v.X, v.Y}
}

func fromGL(g mgl64.Vec2) Vec2 {
	return Vec2{X: g[0], Y: g[1]}
}

// Add returns v + o
func (v Vec2) Add(o Vec2) Vec2 {
	return fromGL(v.gl().Add(o.gl()))
}

// Sub returns v - o
func (v Vec2) Sub(o Vec2) Vec2 {
	return fromGL(v.gl().Sub(o.gl()))
}

// Scale multiplies both components by s
func (v Vec2) Scale(s float64) Vec2 {
	return fromGL(v.gl().Mul(s))
}

// Negate returns the opposite vector
func (v Vec2) Negate() Vec2 {
	return Vec2{X: -v.X, Y: -v.Y}
}

// Dot returns x1*x2 + y1*y2
func (v Vec2) Dot(o Vec2) float64 {
	return v.gl().Dot(o.gl())
}

// Length returns the Euclidean magnitude
func (v Vec2) Length() float64 {
	return v.gl().Len()
}

// Distance returns the Euclidean distance between v and o
func (v Vec2) Distance(o Vec2) float64 {
	return v.Sub(o).Length()
}

// Normalize returns the unit vector, zero-safe
func (v Vec2) Normalize() Vec2 {
	if v.IsZero() {
		return Vec2{}
	}
	return fromGL(v.gl().Normalize())
}

// IsZero reports whether both components are exactly zero
func (v Vec2) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

// IsFinite reports whether neither component is NaN or Inf
func (v Vec2) IsFinite() bool {
	return !math.IsNaN(v.X) && !math.IsNaN(v.Y) && !math.IsInf(v.X, 0) && !math.IsInf(v.Y, 0)
}

// ApproxEqual compares components within epsilon
func (v Vec2) ApproxEqual(o Vec2, epsilon float64) bool {
	return mgl64.FloatEqualThreshold(v.X, o.X, epsilon) && mgl64.FloatEqualThreshold(v.Y, o.Y, epsilon)
}
