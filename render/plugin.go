package render

import (
	"errors"

	"github.com/lixenwraith/platform2d/engine"
)

// ErrUnhandledKind is reported once per kind when no plugin is registered for it
var ErrUnhandledKind = errors.New("render: unhandled entity kind")

// Plugin draws every entity of one kind
type Plugin interface {
	Kind() engine.Kind
	Draw(c *Canvas, ctx *engine.GameContext, e *engine.Entity)
}

// BoxPlugin draws filled rectangles
type BoxPlugin struct{}

func (BoxPlugin) Kind() engine.Kind { return engine.KindBox }

func (BoxPlugin) Draw(c *Canvas, _ *engine.GameContext, e *engine.Entity) {
	c.Box(e.X, e.Y, e.Width, e.Height, e.Style)
}

// TextPlugin draws labels, Style.Border is the text color
// A shadow is drawn one cell right and down
type TextPlugin struct{}

func (TextPlugin) Kind() engine.Kind { return engine.KindText }

func (TextPlugin) Draw(c *Canvas, _ *engine.GameContext, e *engine.Entity) {
	tv, ok := e.Text()
	if !ok {
		return
	}
	col, row := c.ToCell(e.X, e.Y)
	if tv.Shadow != engine.ColorNone {
		c.TextAt(col+1, row+1, tv.Text, tv.Shadow)
	}
	c.TextAt(col, row, tv.Text, e.Style.Border)
}

// ImagePlugin draws images resolved through the asset loader
// Missing loader or failed keys fall back to a box, each failed key is logged once
type ImagePlugin struct {
	failed map[string]bool
}

func NewImagePlugin() *ImagePlugin {
	return &ImagePlugin{failed: make(map[string]bool)}
}

func (*ImagePlugin) Kind() engine.Kind { return engine.KindImage }

func (p *ImagePlugin) Draw(c *Canvas, ctx *engine.GameContext, e *engine.Entity) {
	iv, ok := e.Image()
	if !ok || ctx.Assets == nil || p.failed[iv.Key] {
		c.Box(e.X, e.Y, e.Width, e.Height, e.Style)
		return
	}
	img, err := ctx.Assets.Image(iv.Key)
	if err != nil {
		p.failed[iv.Key] = true
		ctx.Log.Warn("image unavailable, drawing box", logKey(iv.Key), logErr(err))
		c.Box(e.X, e.Y, e.Width, e.Height, e.Style)
		return
	}
	c.Image(e.X, e.Y, e.Width, e.Height, img)
}

// ConstraintPlugin draws constraint regions as a tinted area
type ConstraintPlugin struct{}

func (ConstraintPlugin) Kind() engine.Kind { return engine.KindConstraint }

func (ConstraintPlugin) Draw(c *Canvas, _ *engine.GameContext, e *engine.Entity) {
	style := e.Style
	if style.Fill == engine.ColorNone {
		style.Fill = engine.ColorBlue.Scale(0.5)
	}
	style.Border = engine.ColorNone
	c.Box(e.X, e.Y, e.Width, e.Height, style)
}

// ParticlesPlugin draws nothing for the emitter itself, particles are regular entities
// At vector debug level the emitter shows its emission count
type ParticlesPlugin struct{}

func (ParticlesPlugin) Kind() engine.Kind { return engine.KindParticles }

func (ParticlesPlugin) Draw(c *Canvas, ctx *engine.GameContext, e *engine.Entity) {
	if ctx.Debug() < debugVectors {
		return
	}
	pv, ok := e.Particles()
	if !ok {
		return
	}
	c.Text(e.X, e.Y, formatEmitter(pv), engine.ColorGray)
}
