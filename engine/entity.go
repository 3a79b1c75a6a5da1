package engine

import (
	"github.com/lixenwraith/platform2d/core"
	"github.com/lixenwraith/platform2d/parameter"
	"github.com/lixenwraith/platform2d/physics"
)

// Entity is a simulated rectangle with a render kind and attached behaviors
type Entity struct {
	physics.Body

	ID       core.EntityID
	Name     string
	Priority int32 // Lower values update and draw first
	Active   bool

	// LifespanMs is parameter.LifespanInfinite or the age at which the entity deactivates
	LifespanMs float64
	AgeMs      float64

	Kind    Kind
	Variant any
	Style   Style

	// StickToCamera entities are drawn in screen space over the world
	StickToCamera bool

	Attributes map[string]any
	Behaviors  []Behavior
}

// Age advances the lifespan timer, deactivation is one-way
func (e *Entity) Age(dt float64) {
	if e.LifespanMs == parameter.LifespanInfinite {
		return
	}
	e.AgeMs += dt
	if e.AgeMs > e.LifespanMs {
		e.Active = false
	}
}

// Expired reports whether the entity was deactivated by its lifespan
func (e *Entity) Expired() bool {
	return !e.Active && e.LifespanMs != parameter.LifespanInfinite && e.AgeMs > e.LifespanMs
}

// Integrated reports whether the physics step applies to the entity this frame
func (e *Entity) Integrated() bool {
	return e.Active && !e.Static
}

// AddBehavior attaches a behavior, evaluated in insertion order
func (e *Entity) AddBehavior(b Behavior) *Entity {
	e.Behaviors = append(e.Behaviors, b)
	return e
}

// Attr returns an attribute value
func (e *Entity) Attr(key string) (any, bool) {
	v, ok := e.Attributes[key]
	return v, ok
}

// SetAttr stores an attribute value
func (e *Entity) SetAttr(key string, v any) {
	if e.Attributes == nil {
		e.Attributes = make(map[string]any, 4)
	}
	e.Attributes[key] = v
}

// FloatAttr returns a numeric attribute as float64, def when absent or not numeric
func (e *Entity) FloatAttr(key string, def float64) float64 {
	switch v := e.Attributes[key].(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	default:
		return def
	}
}

// Text returns the text payload
func (e *Entity) Text() (*TextVariant, bool) {
	v, ok := e.Variant.(*TextVariant)
	return v, ok
}

// Image returns the image payload
func (e *Entity) Image() (*ImageVariant, bool) {
	v, ok := e.Variant.(*ImageVariant)
	return v, ok
}

// Camera returns the camera payload
func (e *Entity) Camera() (*CameraVariant, bool) {
	v, ok := e.Variant.(*CameraVariant)
	return v, ok
}

// Particles returns the emitter payload
func (e *Entity) Particles() (*ParticlesVariant, bool) {
	v, ok := e.Variant.(*ParticlesVariant)
	return v, ok
}
