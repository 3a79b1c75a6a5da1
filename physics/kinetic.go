package physics

import (
	"github.com/lixenwraith/platform2d/parameter"
	"github.com/lixenwraith/platform2d/vmath"
)

// Integrate performs semi-implicit Euler with friction: v += a*dt*k; p += v*dt; v *= friction
// Friction lands after the position update so it shapes next frame's displacement
func Integrate(b *Body, dt float64) {
	f := b.material().Friction

	b.Velocity.X += b.Acceleration.X * dt * parameter.PhysicTimeFactor
	b.Velocity.Y += b.Acceleration.Y * dt * parameter.PhysicTimeFactor

	b.X += b.Velocity.X * dt
	b.Y += b.Velocity.Y * dt

	b.Velocity.X *= f
	b.Velocity.Y *= f
}

// ApplyImpulse adds a velocity delta outside the force pipeline
func ApplyImpulse(b *Body, v vmath.Vec2) {
	b.Velocity.X += v.X
	b.Velocity.Y += v.Y
}

// ReflectBoundsX clamps horizontally into [0, width) and reflects with elasticity
// Returns true if reflection occurred
func ReflectBoundsX(b *Body, width float64) bool {
	e := b.material().Elasticity
	hit := false
	if b.X < 0 {
		b.X = 0
		b.Velocity.X *= -e
		hit = true
	}
	if b.X > width-b.Width {
		b.X = width - b.Width
		b.Velocity.X *= -e
		hit = true
	}
	return hit
}

// ReflectBoundsY clamps vertically into [0, height) and reflects with elasticity
// Returns true if reflection occurred
func ReflectBoundsY(b *Body, height float64) bool {
	e := b.material().Elasticity
	hit := false
	if b.Y < 0 {
		b.Y = 0
		b.Velocity.Y *= -e
		hit = true
	}
	if b.Y > height-b.Height {
		b.Y = height - b.Height
		b.Velocity.Y *= -e
		hit = true
	}
	return hit
}

// ReflectBounds keeps the body inside the play area on both axes, sets Contact on any hit
// The check runs unconditionally, the area origin is treated as (0,0) as in the play area model
func ReflectBounds(b *Body, area vmath.Rect) bool {
	rx := ReflectBoundsX(b, area.Width)
	ry := ReflectBoundsY(b, area.Height)
	if rx || ry {
		b.Contact = true
		return true
	}
	return false
}

// CapSpeed limits the velocity magnitude to maxSpeed, returns true if clamped
func CapSpeed(b *Body, maxSpeed float64) bool {
	speed := b.Velocity.Length()
	if speed <= maxSpeed || speed == 0 {
		return false
	}
	b.Velocity = b.Velocity.Scale(maxSpeed / speed)
	return true
}
