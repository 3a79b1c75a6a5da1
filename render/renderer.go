package render

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/platform2d/engine"
	"github.com/lixenwraith/platform2d/log"
	"github.com/lixenwraith/platform2d/registry"
)

type layerEntry struct {
	layer    Layer
	priority RenderPriority
	index    int // registration order for stable sort
}

// Renderer coordinates the render pipeline over a tcell screen
// Render runs on the loop goroutine only
type Renderer struct {
	canvas   *Canvas
	plugins  map[engine.Kind]Plugin
	layers   []layerEntry
	regCount int
	reported map[engine.Kind]bool
}

var _ engine.Renderer = (*Renderer)(nil)

// NewRenderer creates a renderer drawing a logical buffer of worldW x worldH units
func NewRenderer(screen tcell.Screen, worldW, worldH float64) *Renderer {
	return &Renderer{
		canvas:   NewCanvas(screen, worldW, worldH),
		plugins:  make(map[engine.Kind]Plugin),
		layers:   make([]layerEntry, 0, 8),
		reported: make(map[engine.Kind]bool),
	}
}

// NewDefaultRenderer creates a renderer with the built-in plugins and layers
func NewDefaultRenderer(screen tcell.Screen, worldW, worldH float64) *Renderer {
	r := NewRenderer(screen, worldW, worldH)
	for _, p := range DefaultPlugins() {
		r.RegisterPlugin(p)
	}
	r.Register(WorldLayer{}, PriorityWorld)
	r.Register(DebugLayer{}, PriorityDebug)
	r.Register(HUDLayer{}, PriorityHUD)
	r.Register(StatsLayer{}, PriorityStats)
	return r
}

// DefaultPlugins returns one plugin per drawable kind
func DefaultPlugins() []Plugin {
	return []Plugin{BoxPlugin{}, TextPlugin{}, NewImagePlugin(), ConstraintPlugin{}, ParticlesPlugin{}}
}

// RegisterPlugin sets the plugin for its kind, replacing any previous one
func (r *Renderer) RegisterPlugin(p Plugin) {
	r.plugins[p.Kind()] = p
}

// Register adds a layer at the specified priority. Maintains sorted order via insertion sort
func (r *Renderer) Register(l Layer, priority RenderPriority) {
	entry := layerEntry{
		layer:    l,
		priority: priority,
		index:    r.regCount,
	}
	r.regCount++

	pos := len(r.layers)
	for i, e := range r.layers {
		if priority < e.priority || (priority == e.priority && entry.index < e.index) {
			pos = i
			break
		}
	}

	r.layers = append(r.layers, layerEntry{})
	copy(r.layers[pos+1:], r.layers[pos:])
	r.layers[pos] = entry
}

// LoadRegistered instantiates every plugin and layer from the registry
func (r *Renderer) LoadRegistered(ctx *engine.GameContext) error {
	for _, name := range registry.PluginNames() {
		factory, _ := registry.GetPlugin(name)
		p, ok := factory().(Plugin)
		if !ok {
			return fmt.Errorf("plugin %q: factory does not produce a render.Plugin", name)
		}
		r.RegisterPlugin(p)
	}
	for _, name := range registry.LayerNames() {
		entry, _ := registry.GetLayer(name)
		l, ok := entry.Factory(ctx).(Layer)
		if !ok {
			return fmt.Errorf("layer %q: factory does not produce a render.Layer", name)
		}
		r.Register(l, RenderPriority(entry.Priority))
	}
	return nil
}

// Canvas returns the drawing surface
func (r *Renderer) Canvas() *Canvas { return r.canvas }

// Render executes the pipeline: clear, render visible layers, show
func (r *Renderer) Render(ctx *engine.GameContext, s engine.Scene) {
	r.canvas.Begin()

	rc := RenderContext{Game: ctx, Scene: s, Canvas: r.canvas, renderer: r}
	for _, entry := range r.layers {
		if vt, ok := entry.layer.(VisibilityToggle); ok && !vt.IsVisible(ctx) {
			continue
		}
		entry.layer.Render(rc)
	}

	r.canvas.Show()
}

func (r *Renderer) reportUnhandled(l log.Log, k engine.Kind) {
	if r.reported[k] {
		return
	}
	r.reported[k] = true
	l.Warn("entity kind not drawn", log.String("kind", k.String()), log.Err(ErrUnhandledKind))
}
