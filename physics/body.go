package physics

import (
	"github.com/lixenwraith/platform2d/parameter"
	"github.com/lixenwraith/platform2d/vmath"
)

// Body is the simulated state of an axis-aligned rectangle
type Body struct {
	vmath.Rect

	// Velocity in units per ms, Acceleration in units per ms² before time factor
	Velocity     vmath.Vec2
	Acceleration vmath.Vec2

	// Forces applied this frame; constraint regions keep theirs as a constant field
	Forces []vmath.Vec2

	Mass     float64
	Material *Material

	// Static bodies are never integrated, they may still emit forces
	Static bool

	// Contact is set when the last boundary response touched the play area edge
	Contact bool
}

// NewBody creates a dynamic body with default mass and material
func NewBody(bounds vmath.Rect) Body {
	return Body{
		Rect:     bounds,
		Forces:   make([]vmath.Vec2, 0, 4),
		Mass:     parameter.DefaultMass,
		Material: DefaultMaterial,
	}
}

// AddForce appends an instantaneous force for the current frame
func (b *Body) AddForce(f vmath.Vec2) {
	b.Forces = append(b.Forces, f)
}

// SetForce replaces all forces with a single vector
func (b *Body) SetForce(f vmath.Vec2) {
	b.Forces = append(b.Forces[:0], f)
}

// ClearForces empties the force list keeping capacity
func (b *Body) ClearForces() {
	b.Forces = b.Forces[:0]
}

// NetForce returns the sum of accumulated forces
func (b *Body) NetForce() vmath.Vec2 {
	var sum vmath.Vec2
	for _, f := range b.Forces {
		sum.X += f.X
		sum.Y += f.Y
	}
	return sum
}

// material returns the body material, falling back to the default profile
func (b *Body) material() *Material {
	if b.Material == nil {
		return DefaultMaterial
	}
	return b.Material
}
