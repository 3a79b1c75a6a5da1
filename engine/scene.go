package engine

import (
	"fmt"

	"github.com/lixenwraith/platform2d/physics"
)

// Scene is a set of entities sharing a world and a camera
// Load runs once per scene instance, Create on every activation after Reset
type Scene interface {
	Name() string

	Load(ctx *GameContext) error
	Create(ctx *GameContext) error
	Input(ctx *GameContext)
	Update(ctx *GameContext, dt float64)
	Close(ctx *GameContext)
	Dispose(ctx *GameContext)

	Entities() *EntityRegistry
	World() *physics.World
	Camera() *Entity
	Reset()
	Validate() error
}

// BaseScene implements the bookkeeping half of Scene, embed it and override the hooks
type BaseScene struct {
	name          string
	entities      *EntityRegistry
	world         *physics.World
	camera        *Entity
	requireCamera bool
}

// NewBaseScene creates a scene over the default gravity-free world
func NewBaseScene(name string) BaseScene {
	return BaseScene{
		name:     name,
		entities: NewEntityRegistry(),
		world:    physics.NewDefaultWorld(),
	}
}

func (s *BaseScene) Name() string { return s.name }

func (s *BaseScene) Entities() *EntityRegistry { return s.entities }

func (s *BaseScene) World() *physics.World { return s.world }

// SetWorld replaces the world, constraints of the previous world are discarded with it
func (s *BaseScene) SetWorld(w *physics.World) { s.world = w }

func (s *BaseScene) Camera() *Entity { return s.camera }

// SetCamera installs the camera, it is updated after the physics step and never integrated
func (s *BaseScene) SetCamera(c *Entity) { s.camera = c }

// RequireCamera makes activation fail without a camera
func (s *BaseScene) RequireCamera() { s.requireCamera = true }

// Add registers an entity
func (s *BaseScene) Add(e *Entity) { s.entities.Add(e) }

// AddConstraint registers a constraint region with both the registry and the world
func (s *BaseScene) AddConstraint(e *Entity) {
	s.entities.Add(e)
	if s.world != nil {
		s.world.AddConstraint(&e.Body)
	}
}

// Get returns an entity by name
func (s *BaseScene) Get(name string) (*Entity, bool) { return s.entities.Get(name) }

func (s *BaseScene) Load(*GameContext) error   { return nil }
func (s *BaseScene) Create(*GameContext) error { return nil }
func (s *BaseScene) Input(*GameContext)        {}
func (s *BaseScene) Close(*GameContext)        {}
func (s *BaseScene) Dispose(*GameContext)      {}

// Update emits particles and drops entities whose lifespan ended
func (s *BaseScene) Update(_ *GameContext, _ float64) {
	s.emitParticles()
	s.entities.Prune()
}

// Reset clears entities, constraints and camera
func (s *BaseScene) Reset() {
	s.entities.Reset()
	if s.world != nil {
		s.world.ClearConstraints()
	}
	s.camera = nil
}

// Validate checks activation preconditions
func (s *BaseScene) Validate() error {
	if s.world == nil {
		return fmt.Errorf("scene %q: %w", s.name, ErrNoWorld)
	}
	if s.camera == nil {
		if s.requireCamera {
			return fmt.Errorf("scene %q: %w", s.name, ErrNoCamera)
		}
		return nil
	}
	cv, ok := s.camera.Camera()
	if !ok {
		return fmt.Errorf("scene %q camera %q is a %s entity: %w", s.name, s.camera.Name, s.camera.Kind, ErrNoCamera)
	}
	if cv.Target == nil {
		return fmt.Errorf("scene %q camera %q: %w", s.name, s.camera.Name, ErrNoTarget)
	}
	if !cv.Viewport.Valid() {
		return fmt.Errorf("scene %q camera %q viewport: %w", s.name, s.camera.Name, ErrDegenerateGeometry)
	}
	return nil
}

func (s *BaseScene) emitParticles() {
	s.entities.Each(func(e *Entity) bool {
		if !e.Active || e.Kind != KindParticles {
			return true
		}
		pv, ok := e.Particles()
		if !ok || pv.Spawn == nil {
			return true
		}
		for i := 0; i < pv.Chunk && pv.Emitted < pv.Max; i++ {
			if p := pv.Spawn(e, pv.Emitted); p != nil {
				s.entities.Add(p)
			}
			pv.Emitted++
		}
		return true
	})
}
