package vmath

import "math"

// Rect is an axis-aligned rectangle with top-left origin
type Rect struct {
	X, Y          float64 // Top-left corner
	Width, Height float64
}

// NewRect builds a Rect
func NewRect(x, y, w, h float64) Rect {
	return Rect{X: x, Y: y, Width: w, Height: h}
}

// Valid reports whether both dimensions are strictly positive and finite
func (r Rect) Valid() bool {
	return r.Width > 0 && r.Height > 0 && !math.IsInf(r.Width, 0) && !math.IsInf(r.Height, 0)
}

// Empty reports whether the rect has no area
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// MaxX returns the right edge
func (r Rect) MaxX() float64 { return r.X + r.Width }

// MaxY returns the bottom edge
func (r Rect) MaxY() float64 { return r.Y + r.Height }

// Position returns the top-left corner as a vector
func (r Rect) Position() Vec2 {
	return Vec2{X: r.X, Y: r.Y}
}

// Center returns the center point
func (r Rect) Center() Vec2 {
	return Vec2{X: r.X + r.Width*0.5, Y: r.Y + r.Height*0.5}
}

// SetPosition moves the rect in place, keeping its size
func (r *Rect) SetPosition(x, y float64) {
	r.X = x
	r.Y = y
}

// Intersects reports whether the interiors of r and o overlap
func (r Rect) Intersects(o Rect) bool {
	if r.Empty() || o.Empty() {
		return false
	}
	return o.X < r.MaxX() && o.MaxX() > r.X && o.Y < r.MaxY() && o.MaxY() > r.Y
}

// Contains reports whether o lies fully inside r
func (r Rect) Contains(o Rect) bool {
	if r.Empty() || o.Empty() {
		return false
	}
	return o.X >= r.X && o.Y >= r.Y && o.MaxX() <= r.MaxX() && o.MaxY() <= r.MaxY()
}

// ContainsPoint reports whether p is inside r, right and bottom edges excluded
func (r Rect) ContainsPoint(p Vec2) bool {
	return p.X >= r.X && p.X < r.MaxX() && p.Y >= r.Y && p.Y < r.MaxY()
}

// Intersection returns the overlap rect, zero-sized when disjoint
func (r Rect) Intersection(o Rect) Rect {
	x0 := math.Max(r.X, o.X)
	y0 := math.Max(r.Y, o.Y)
	x1 := math.Min(r.MaxX(), o.MaxX())
	y1 := math.Min(r.MaxY(), o.MaxY())
	if x1 <= x0 || y1 <= y0 {
		return Rect{X: x0, Y: y0}
	}
	return Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}
