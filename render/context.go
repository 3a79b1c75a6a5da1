package render

import (
	"fmt"

	"github.com/lixenwraith/platform2d/engine"
	"github.com/lixenwraith/platform2d/log"
	"github.com/lixenwraith/platform2d/parameter"
)

const debugVectors = parameter.DebugVectors

// RenderContext is passed to every layer for one frame
type RenderContext struct {
	Game   *engine.GameContext
	Scene  engine.Scene
	Canvas *Canvas

	renderer *Renderer
}

// DrawEntity dispatches to the kind plugin then runs the entity draw behaviors
func (rc RenderContext) DrawEntity(e *engine.Entity) {
	if p, ok := rc.renderer.plugins[e.Kind]; ok {
		p.Draw(rc.Canvas, rc.Game, e)
	} else {
		rc.renderer.reportUnhandled(rc.Game.Log, e.Kind)
	}
	for _, b := range e.Behaviors {
		if db, ok := b.(engine.DrawBehavior); ok {
			db.Draw(rc.Game, e, rc.Canvas)
		}
	}
}

// Drawable reports whether e is drawn by the world or HUD layers
func Drawable(e *engine.Entity) bool {
	return e.Active && e.Kind != engine.KindCamera
}

func formatEmitter(pv *engine.ParticlesVariant) string {
	return fmt.Sprintf("*%d/%d", pv.Emitted, pv.Max)
}

func logKey(key string) log.Field { return log.String("key", key) }

func logErr(err error) log.Field { return log.Err(err) }
