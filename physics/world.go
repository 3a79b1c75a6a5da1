package physics

import (
	"github.com/lixenwraith/platform2d/parameter"
	"github.com/lixenwraith/platform2d/vmath"
)

// World holds gravity, the play area bounds and the constraint regions
// Read-only while a physics step runs; mutate only between frames
type World struct {
	gravity     vmath.Vec2
	playArea    vmath.Rect
	constraints []*Body
}

// NewWorld creates a world with the given gravity and play area
func NewWorld(gravity vmath.Vec2, playArea vmath.Rect) *World {
	return &World{
		gravity:     gravity,
		playArea:    playArea,
		constraints: make([]*Body, 0, 4),
	}
}

// NewDefaultWorld creates a gravity-free world over the default play area
func NewDefaultWorld() *World {
	return NewWorld(vmath.Vec2{}, vmath.NewRect(0, 0, parameter.DefaultPlayAreaWidth, parameter.DefaultPlayAreaHeight))
}

// Gravity returns the gravity vector
func (w *World) Gravity() vmath.Vec2 {
	return w.gravity
}

// SetGravity replaces the gravity vector
func (w *World) SetGravity(g vmath.Vec2) {
	w.gravity = g
}

// PlayArea returns the bounds bodies are kept inside
func (w *World) PlayArea() vmath.Rect {
	return w.playArea
}

// AddConstraint registers a constraint region, forcing it static
func (w *World) AddConstraint(c *Body) {
	c.Static = true
	w.constraints = append(w.constraints, c)
}

// Constraints returns the ordered constraint list, callers must not mutate it
func (w *World) Constraints() []*Body {
	return w.constraints
}

// ClearConstraints drops every constraint region
func (w *World) ClearConstraints() {
	clear(w.constraints)
	w.constraints = w.constraints[:0]
}
