package engine

import (
	"github.com/lixenwraith/platform2d/log"
	"github.com/lixenwraith/platform2d/parameter"
)

// Global key names handled by Game before the scene sees input
const (
	KeyExit       = "escape"
	KeyDebugCycle = "d"
	KeyDebugOff   = "ctrl_d"
	KeyReset      = "ctrl_z"
)

// Renderer draws the active scene
type Renderer interface {
	Render(ctx *GameContext, s Scene)
}

// Renderers fans a frame out to several renderers in order
type Renderers []Renderer

func (rs Renderers) Render(ctx *GameContext, s Scene) {
	for _, r := range rs {
		r.Render(ctx, s)
	}
}

// FrameInput is implemented by key sources that latch events per frame
type FrameInput interface {
	BeginFrame()
}

// Game binds the scene manager, the stepper and the renderer into loop phases
type Game struct {
	Ctx          *GameContext
	Stepper      Stepper
	Renderer     Renderer
	DefaultScene string
}

var _ Phases = (*Game)(nil)

// Input latches key events, applies global keys then runs scene input
func (g *Game) Input() {
	if fi, ok := g.Ctx.Keys.(FrameInput); ok {
		fi.BeginFrame()
	}

	switch {
	case g.Ctx.Typed(KeyExit):
		g.Ctx.RequestExit()
		return
	case g.Ctx.Typed(KeyDebugOff):
		g.Ctx.SetDebug(parameter.DebugOff)
	case g.Ctx.Typed(KeyDebugCycle):
		g.Ctx.SetDebug(NextDebugLevel(g.Ctx.Debug()))
	case g.Ctx.Typed(KeyReset):
		if err := g.Ctx.Scenes.Restart(g.DefaultScene); err != nil {
			g.Ctx.Log.Error("scene reset failed", log.String("scene", g.DefaultScene), log.Err(err))
		}
		return
	}

	g.Ctx.Scenes.Input()
}

// Update steps the active scene
func (g *Game) Update(dt float64) {
	if s := g.Ctx.Scenes.Active(); s != nil {
		g.Stepper.Step(g.Ctx, s, dt)
	}
}

// Draw renders the active scene
func (g *Game) Draw() {
	s := g.Ctx.Scenes.Active()
	if s == nil || g.Renderer == nil {
		return
	}
	g.Renderer.Render(g.Ctx, s)
}

// NextDebugLevel cycles 1..DebugMax, wrapping back to 1
func NextDebugLevel(level int) int {
	if level < parameter.DebugMax {
		return level + 1
	}
	return 1
}
