package render

import (
	"strings"

	"github.com/lixenwraith/platform2d/engine"
	"github.com/lixenwraith/platform2d/parameter"
	"github.com/lixenwraith/platform2d/status"
	"github.com/lixenwraith/platform2d/vmath"
)

// Layer draws one pass of the frame
type Layer interface {
	Render(rc RenderContext)
}

// VisibilityToggle is implemented by layers shown conditionally
type VisibilityToggle interface {
	IsVisible(ctx *engine.GameContext) bool
}

// cameraOffset returns the camera viewport origin, zero without a camera
func cameraOffset(s engine.Scene) vmath.Vec2 {
	cam := s.Camera()
	if cam == nil {
		return vmath.Vec2{}
	}
	if cv, ok := cam.Camera(); ok {
		return cv.Viewport.Position()
	}
	return cam.Position()
}

// WorldLayer draws world-space entities translated by the camera
type WorldLayer struct{}

func (WorldLayer) Render(rc RenderContext) {
	rc.Canvas.SetOffset(cameraOffset(rc.Scene))
	rc.Scene.Entities().Each(func(e *engine.Entity) bool {
		if Drawable(e) && !e.StickToCamera {
			rc.DrawEntity(e)
		}
		return true
	})
}

// HUDLayer draws entities stuck to the camera, their positions are screen-relative world units
type HUDLayer struct{}

func (HUDLayer) Render(rc RenderContext) {
	rc.Canvas.SetOffset(vmath.Vec2{})
	rc.Scene.Entities().Each(func(e *engine.Entity) bool {
		if Drawable(e) && e.StickToCamera {
			rc.DrawEntity(e)
		}
		return true
	})
}

// Debug vector colors
var (
	colorPlayArea     = engine.RGB(0x60, 0x60, 0x60)
	colorBounds       = engine.RGB(0x80, 0x80, 0x00)
	colorVelocity     = engine.RGB(0x00, 0xC0, 0x00)
	colorAcceleration = engine.RGB(0xC0, 0x00, 0x00)
	colorForce        = engine.RGB(0xC0, 0xC0, 0x00)
)

// DebugVectorScale magnifies vectors so per-frame quantities are visible
const DebugVectorScale = parameter.DebugVectorScale

// DebugLayer outlines the play area and draws motion vectors of matching dynamic entities
type DebugLayer struct{}

func (DebugLayer) IsVisible(ctx *engine.GameContext) bool {
	return ctx.Debug() >= debugVectors
}

func (DebugLayer) Render(rc RenderContext) {
	rc.Canvas.SetOffset(cameraOffset(rc.Scene))
	area := rc.Scene.World().PlayArea()
	rc.Canvas.Box(area.X, area.Y, area.Width, area.Height, engine.Style{Fill: engine.ColorNone, Border: colorPlayArea})

	filter := rc.Game.DebugFilter
	rc.Scene.Entities().Each(func(e *engine.Entity) bool {
		if !e.Active || e.Static || e.StickToCamera {
			return true
		}
		if filter != "" && !strings.Contains(e.Name, filter) {
			return true
		}
		drawVectors(rc.Canvas, e)
		return true
	})
}

func drawVectors(c *Canvas, e *engine.Entity) {
	c.Box(e.X, e.Y, e.Width, e.Height, engine.Style{Fill: engine.ColorNone, Border: colorBounds})

	o := e.Center()
	vector := func(v vmath.Vec2, fg engine.Color) {
		end := o.Add(v.Scale(DebugVectorScale))
		c.Line(o.X, o.Y, end.X, end.Y, fg)
	}
	for _, f := range e.Forces {
		vector(f, colorForce)
	}
	vector(e.Acceleration, colorAcceleration)
	vector(e.Velocity, colorVelocity)
}

// StatsLayer prints the metrics line on the top row
type StatsLayer struct{}

func (StatsLayer) IsVisible(ctx *engine.GameContext) bool {
	return ctx.Debug() >= 1
}

func (StatsLayer) Render(rc RenderContext) {
	rc.Canvas.TextAt(0, 0, status.StatsLine(rc.Game.Metrics), engine.ColorWhite)
}
