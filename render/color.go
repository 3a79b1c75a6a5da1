package render

import (
	"image/color"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/platform2d/engine"
)

// TcellColor converts a packed color, ColorNone maps to the terminal default
func TcellColor(c engine.Color) tcell.Color {
	r, g, b, ok := c.Channels()
	if !ok {
		return tcell.ColorDefault
	}
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

// fromImageColor converts a decoded pixel, transparent pixels return ColorNone
func fromImageColor(c color.Color) engine.Color {
	r, g, b, a := c.RGBA()
	if a < 0x8000 {
		return engine.ColorNone
	}
	return engine.RGB(uint8(r>>8), uint8(g>>8), uint8(b>>8))
}
