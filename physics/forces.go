package physics

import (
	"github.com/lixenwraith/platform2d/parameter"
)

// ApplyForces rebuilds acceleration from gravity, constraint regions and applied forces
// Gravity is appended to the force list so it is visible to debug renderers until cleared
func ApplyForces(b *Body, w *World, dt float64) {
	b.Acceleration.X = 0
	b.Acceleration.Y = 0

	b.AddForce(w.gravity)

	for _, c := range w.constraints {
		ApplyConstraint(b, c, dt)
	}

	for _, f := range b.Forces {
		b.Acceleration.X += f.X
		b.Acceleration.Y += f.Y
	}
}

// ApplyConstraint adds the push of one region scaled by the overlap width
// Returns false when the body does not overlap the region
func ApplyConstraint(b *Body, c *Body, dt float64) bool {
	if !c.Contains(b.Rect) && !b.Intersects(c.Rect) {
		return false
	}

	p := c.Intersection(b.Rect)
	denom := b.Width * b.Mass
	kx := p.Width / denom * dt
	ky := p.Width * parameter.ConstraintVerticalFactor / denom * dt

	for _, f := range c.Forces {
		b.Acceleration.X += f.X * kx
		b.Acceleration.Y += f.Y * ky
	}
	return true
}
