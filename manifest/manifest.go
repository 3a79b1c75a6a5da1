package manifest

import (
	"github.com/lixenwraith/platform2d/demo"
	"github.com/lixenwraith/platform2d/registry"
	"github.com/lixenwraith/platform2d/render"
)

// RegisterScenes registers all scene factories by name
func RegisterScenes() {
	registry.RegisterScene(demo.SceneTitle, func() any {
		return demo.NewTitleScene()
	})
	registry.RegisterScene(demo.SceneDemo, func() any {
		return demo.NewDemoScene()
	})
}

// RegisterPlugins registers one render plugin per drawable entity kind
func RegisterPlugins() {
	for _, p := range render.DefaultPlugins() {
		registry.RegisterPlugin(p.Kind().String(), func() any {
			return p
		})
	}
}

// RegisterLayers registers all render layers with priorities
func RegisterLayers() {
	registry.RegisterLayer("world", func(ctx any) any {
		return render.WorldLayer{}
	}, int(render.PriorityWorld))
	registry.RegisterLayer("debug", func(ctx any) any {
		return render.DebugLayer{}
	}, int(render.PriorityDebug))
	registry.RegisterLayer("hud", func(ctx any) any {
		return render.HUDLayer{}
	}, int(render.PriorityHUD))
	registry.RegisterLayer("stats", func(ctx any) any {
		return render.StatsLayer{}
	}, int(render.PriorityStats))
}

// RegisterAll registers scenes, plugins and layers
func RegisterAll() {
	RegisterScenes()
	RegisterPlugins()
	RegisterLayers()
}
