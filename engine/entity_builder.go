package engine

import (
	"fmt"

	"github.com/lixenwraith/platform2d/core"
	"github.com/lixenwraith/platform2d/parameter"
	"github.com/lixenwraith/platform2d/physics"
	"github.com/lixenwraith/platform2d/vmath"
)

var entityIDs core.IDGenerator

// EntityBuilder provides a fluent interface for constructing entities
// It reserves an entity ID upfront; geometry and mass are validated by Build()
//
// Example usage:
//
//	player, err := engine.NewEntity("player").
//	    At(160, 100).Size(16, 16).
//	    WithMaterial(playerMaterial).
//	    WithMass(80).
//	    Build()
type EntityBuilder struct {
	entity Entity
	sized  bool
	built  bool
}

// NewEntity creates a builder for an active box entity with default physics
// Entities built without Size() get a 1x1 footprint
func NewEntity(name string) *EntityBuilder {
	eb := &EntityBuilder{
		entity: Entity{
			Body:       physics.NewBody(vmath.NewRect(0, 0, 1, 1)),
			ID:         entityIDs.Next(),
			Name:       name,
			Active:     true,
			LifespanMs: parameter.LifespanInfinite,
			Kind:       KindBox,
			Style:      Style{Fill: ColorNone, Border: ColorWhite},
		},
	}
	if name == "" {
		eb.entity.Name = fmt.Sprintf("entity%d", eb.entity.ID)
	}
	return eb
}

func (eb *EntityBuilder) check() {
	if eb.built {
		panic("entity already built - cannot modify after Build()")
	}
}

// At sets the top-left position
func (eb *EntityBuilder) At(x, y float64) *EntityBuilder {
	eb.check()
	eb.entity.SetPosition(x, y)
	return eb
}

// Size sets the footprint
func (eb *EntityBuilder) Size(w, h float64) *EntityBuilder {
	eb.check()
	eb.entity.Width = w
	eb.entity.Height = h
	eb.sized = true
	return eb
}

// Bounds sets position and size from a rect
func (eb *EntityBuilder) Bounds(r vmath.Rect) *EntityBuilder {
	return eb.At(r.X, r.Y).Size(r.Width, r.Height)
}

// WithVelocity sets the initial velocity
func (eb *EntityBuilder) WithVelocity(vx, vy float64) *EntityBuilder {
	eb.check()
	eb.entity.Velocity = vmath.V2(vx, vy)
	return eb
}

// WithMaterial sets the shared material profile
func (eb *EntityBuilder) WithMaterial(m *physics.Material) *EntityBuilder {
	eb.check()
	eb.entity.Material = m
	return eb
}

// WithMass sets the mass, validated by Build
func (eb *EntityBuilder) WithMass(m float64) *EntityBuilder {
	eb.check()
	eb.entity.Mass = m
	return eb
}

// WithForce appends an applied force
func (eb *EntityBuilder) WithForce(f vmath.Vec2) *EntityBuilder {
	eb.check()
	eb.entity.AddForce(f)
	return eb
}

// WithPriority sets the update and draw order
func (eb *EntityBuilder) WithPriority(p int32) *EntityBuilder {
	eb.check()
	eb.entity.Priority = p
	return eb
}

// Static excludes the entity from integration
func (eb *EntityBuilder) Static() *EntityBuilder {
	eb.check()
	eb.entity.Static = true
	return eb
}

// StickToCamera draws the entity in screen space
func (eb *EntityBuilder) StickToCamera() *EntityBuilder {
	eb.check()
	eb.entity.StickToCamera = true
	return eb
}

// WithLifespan deactivates the entity once its age exceeds ms
func (eb *EntityBuilder) WithLifespan(ms float64) *EntityBuilder {
	eb.check()
	eb.entity.LifespanMs = ms
	return eb
}

// WithStyle sets fill and border colors
func (eb *EntityBuilder) WithStyle(fill, border Color) *EntityBuilder {
	eb.check()
	eb.entity.Style = Style{Fill: fill, Border: border}
	return eb
}

// WithAttr stores an attribute
func (eb *EntityBuilder) WithAttr(key string, v any) *EntityBuilder {
	eb.check()
	eb.entity.SetAttr(key, v)
	return eb
}

// WithBehavior attaches a behavior
func (eb *EntityBuilder) WithBehavior(b Behavior) *EntityBuilder {
	eb.check()
	eb.entity.AddBehavior(b)
	return eb
}

// AsText turns the entity into a text label
func (eb *EntityBuilder) AsText(text string, shadow Color) *EntityBuilder {
	eb.check()
	eb.entity.Kind = KindText
	eb.entity.Variant = &TextVariant{Text: text, Shadow: shadow}
	if !eb.sized {
		eb.entity.Width = float64(len(text))
	}
	return eb
}

// AsImage turns the entity into an image drawn from the asset cache
func (eb *EntityBuilder) AsImage(key string) *EntityBuilder {
	eb.check()
	eb.entity.Kind = KindImage
	eb.entity.Variant = &ImageVariant{Key: key}
	return eb
}

// AsParticles turns the entity into an emitter
func (eb *EntityBuilder) AsParticles(max, chunk int, spawn SpawnFunc) *EntityBuilder {
	eb.check()
	eb.entity.Kind = KindParticles
	eb.entity.Static = true
	eb.entity.Variant = &ParticlesVariant{Max: max, Chunk: chunk, Spawn: spawn}
	return eb
}

// Build validates and returns the entity
// No further modifications are allowed through this builder
func (eb *EntityBuilder) Build() (*Entity, error) {
	eb.check()
	e := &eb.entity
	if !e.Rect.Valid() {
		return nil, fmt.Errorf("entity %q size %vx%v: %w", e.Name, e.Width, e.Height, ErrDegenerateGeometry)
	}
	if e.Mass <= 0 {
		return nil, fmt.Errorf("entity %q mass %v: %w", e.Name, e.Mass, ErrDegenerateGeometry)
	}
	if e.Kind == KindParticles {
		if p, _ := e.Particles(); p.Spawn == nil || p.Chunk <= 0 {
			return nil, fmt.Errorf("entity %q emitter needs spawn func and positive chunk: %w", e.Name, ErrDegenerateGeometry)
		}
	}
	eb.built = true
	return e, nil
}

// MustBuild is Build for fixtures whose values are known valid
func (eb *EntityBuilder) MustBuild() *Entity {
	e, err := eb.Build()
	if err != nil {
		panic(err)
	}
	return e
}

// NewConstraintRegion creates a static region pushing overlapping entities with force
// The force is kept across frames
func NewConstraintRegion(name string, bounds vmath.Rect, force vmath.Vec2) (*Entity, error) {
	e, err := NewEntity(name).Bounds(bounds).Static().Build()
	if err != nil {
		return nil, err
	}
	e.Kind = KindConstraint
	e.SetForce(force)
	return e, nil
}

// NewCamera creates a camera following target through a viewport
func NewCamera(name string, target *Entity, tween float64, viewport vmath.Rect) (*Entity, error) {
	if target == nil {
		return nil, fmt.Errorf("camera %q: %w", name, ErrNoTarget)
	}
	if !viewport.Valid() {
		return nil, fmt.Errorf("camera %q viewport %vx%v: %w", name, viewport.Width, viewport.Height, ErrDegenerateGeometry)
	}
	if tween <= 0 || tween > 1 {
		return nil, fmt.Errorf("camera %q tween factor %v outside (0,1]: %w", name, tween, ErrDegenerateGeometry)
	}
	e, err := NewEntity(name).Bounds(viewport).Static().Build()
	if err != nil {
		return nil, err
	}
	e.Kind = KindCamera
	e.Variant = &CameraVariant{Target: target, TweenFactor: tween, Viewport: viewport}
	return e, nil
}
