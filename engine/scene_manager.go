package engine

import (
	"fmt"

	"github.com/lixenwraith/platform2d/log"
	"github.com/lixenwraith/platform2d/registry"
	"github.com/lixenwraith/platform2d/status"
)

// SceneManager owns the scene instances and drives the active one
type SceneManager struct {
	ctx    *GameContext
	scenes map[string]Scene
	order  []string
	loaded map[string]bool
	active Scene
}

// NewSceneManager creates an empty manager bound to ctx
func NewSceneManager(ctx *GameContext) *SceneManager {
	return &SceneManager{
		ctx:    ctx,
		scenes: make(map[string]Scene),
		loaded: make(map[string]bool),
	}
}

// Add registers a scene instance under its name
func (m *SceneManager) Add(s Scene) error {
	name := s.Name()
	if _, ok := m.scenes[name]; ok {
		return fmt.Errorf("scene %q: %w", name, ErrDuplicateScene)
	}
	m.scenes[name] = s
	m.order = append(m.order, name)
	return nil
}

// LoadRegistered instantiates the named scenes from the factory registry
// The whole list is resolved before any scene is added
func (m *SceneManager) LoadRegistered(names []string) error {
	built := make([]Scene, 0, len(names))
	for _, name := range names {
		factory, ok := registry.GetScene(name)
		if !ok {
			return fmt.Errorf("scene %q: %w", name, ErrUnknownScene)
		}
		s, ok := factory().(Scene)
		if !ok {
			return fmt.Errorf("scene %q factory returned a non-scene: %w", name, ErrUnknownScene)
		}
		built = append(built, s)
	}
	for _, s := range built {
		if err := m.Add(s); err != nil {
			return err
		}
	}
	return nil
}

// Names returns scene names in registration order
func (m *SceneManager) Names() []string {
	return append([]string(nil), m.order...)
}

// Get returns a scene by name
func (m *SceneManager) Get(name string) (Scene, bool) {
	s, ok := m.scenes[name]
	return s, ok
}

// Active returns the running scene, nil before the first activation
func (m *SceneManager) Active() Scene {
	return m.active
}

// Activate closes the running scene then rebuilds and validates the named one
// On error no scene is active
func (m *SceneManager) Activate(name string) error {
	next, ok := m.scenes[name]
	if !ok {
		return fmt.Errorf("activate %q: %w", name, ErrUnknownScene)
	}

	if m.active != nil {
		m.active.Close(m.ctx)
		m.active = nil
	}

	next.Reset()
	if !m.loaded[name] {
		if err := next.Load(m.ctx); err != nil {
			return fmt.Errorf("load scene %q: %w", name, err)
		}
		m.loaded[name] = true
	}
	if err := next.Create(m.ctx); err != nil {
		return fmt.Errorf("create scene %q: %w", name, err)
	}
	if err := next.Validate(); err != nil {
		return fmt.Errorf("activate %q: %w", name, err)
	}

	m.active = next
	m.ctx.Metrics.Labels.Get(status.KeyScene).Store(name)
	m.ctx.Log.Info("scene activated", log.String("scene", name), log.Int("entities", next.Entities().Len()))
	m.dumpTree(next)
	return nil
}

// Restart clears the running scene and activates name
func (m *SceneManager) Restart(name string) error {
	if m.active != nil {
		m.active.Reset()
	}
	return m.Activate(name)
}

// Input runs the scene input hook then every active entity's input behaviors
func (m *SceneManager) Input() {
	s := m.active
	if s == nil {
		return
	}
	s.Input(m.ctx)
	if m.active != s {
		// Scene switched by its own input
		return
	}
	s.Entities().Each(func(e *Entity) bool {
		if !e.Active {
			return true
		}
		for _, b := range e.Behaviors {
			if ib, ok := b.(InputBehavior); ok {
				ib.Input(m.ctx, e)
			}
		}
		return true
	})
}

// DisposeAll closes the running scene and disposes every scene
func (m *SceneManager) DisposeAll() {
	if m.active != nil {
		m.active.Close(m.ctx)
		m.active = nil
	}
	for _, name := range m.order {
		m.scenes[name].Dispose(m.ctx)
	}
}

func (m *SceneManager) dumpTree(s Scene) {
	if m.ctx.Debug() < 1 {
		return
	}
	l := m.ctx.Log.With(log.String("scene", s.Name()))
	s.Entities().Each(func(e *Entity) bool {
		l.Debug("entity",
			log.Uint64("id", uint64(e.ID)),
			log.String("name", e.Name),
			log.String("kind", e.Kind.String()),
			log.Int("priority", int(e.Priority)),
			log.Bool("static", e.Static),
		)
		return true
	})
}
