package registry

import (
	"sort"
	"sync"
)

// Forward declarations to avoid import cycles
// Actual types resolved at lookup time via any

// SceneFactory creates an engine.Scene
type SceneFactory func() any

// PluginFactory creates a render.Plugin for one entity kind
type PluginFactory func() any

// LayerFactory creates a render.Layer from a GameContext
type LayerFactory func(ctx any) any

// LayerEntry holds factory and priority metadata
type LayerEntry struct {
	Factory  LayerFactory
	Priority int
}

var (
	scenesMu  sync.RWMutex
	scenes    = make(map[string]SceneFactory)
	pluginsMu sync.RWMutex
	plugins   = make(map[string]PluginFactory)
	layersMu  sync.RWMutex
	layers    = make(map[string]LayerEntry)
)

// RegisterScene adds a scene factory by name, a later call replaces the factory
func RegisterScene(name string, factory SceneFactory) {
	scenesMu.Lock()
	defer scenesMu.Unlock()
	scenes[name] = factory
}

// GetScene retrieves a scene factory by name
func GetScene(name string) (SceneFactory, bool) {
	scenesMu.RLock()
	defer scenesMu.RUnlock()
	f, ok := scenes[name]
	return f, ok
}

// SceneNames returns all registered scene names, sorted
func SceneNames() []string {
	scenesMu.RLock()
	defer scenesMu.RUnlock()
	return sortedKeys(scenes)
}

// RegisterPlugin adds a render plugin factory keyed by entity kind name
func RegisterPlugin(kind string, factory PluginFactory) {
	pluginsMu.Lock()
	defer pluginsMu.Unlock()
	plugins[kind] = factory
}

// GetPlugin retrieves a plugin factory by kind name
func GetPlugin(kind string) (PluginFactory, bool) {
	pluginsMu.RLock()
	defer pluginsMu.RUnlock()
	f, ok := plugins[kind]
	return f, ok
}

// PluginNames returns all registered kind names, sorted
func PluginNames() []string {
	pluginsMu.RLock()
	defer pluginsMu.RUnlock()
	return sortedKeys(plugins)
}

// RegisterLayer adds a render layer factory with priority
func RegisterLayer(name string, factory LayerFactory, priority int) {
	layersMu.Lock()
	defer layersMu.Unlock()
	layers[name] = LayerEntry{Factory: factory, Priority: priority}
}

// GetLayer retrieves a layer entry by name
func GetLayer(name string) (LayerEntry, bool) {
	layersMu.RLock()
	defer layersMu.RUnlock()
	e, ok := layers[name]
	return e, ok
}

// LayerNames returns all registered layer names, sorted
func LayerNames() []string {
	layersMu.RLock()
	defer layersMu.RUnlock()
	return sortedKeys(layers)
}

// Clear drops every registration, used by tests
func Clear() {
	scenesMu.Lock()
	clear(scenes)
	scenesMu.Unlock()
	pluginsMu.Lock()
	clear(plugins)
	pluginsMu.Unlock()
	layersMu.Lock()
	clear(layers)
	layersMu.Unlock()
}

func sortedKeys[V any](m map[string]V) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
