package render

import (
	"image"
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/platform2d/engine"
	"github.com/lixenwraith/platform2d/vmath"
)

// Canvas maps world units to terminal cells and draws into a tcell screen
// The scale is recomputed on Begin so terminal resizes take effect on the next frame
type Canvas struct {
	screen tcell.Screen

	worldW, worldH float64 // Logical buffer size in world units
	cols, rows     int
	scaleX, scaleY float64 // Cells per world unit
	offset         vmath.Vec2
}

var _ engine.Drawer = (*Canvas)(nil)

// NewCanvas creates a canvas for a logical buffer of worldW x worldH units
func NewCanvas(screen tcell.Screen, worldW, worldH float64) *Canvas {
	c := &Canvas{screen: screen, worldW: worldW, worldH: worldH}
	c.Begin()
	return c
}

// Begin refreshes the scale from the screen size and clears the screen
func (c *Canvas) Begin() {
	c.cols, c.rows = c.screen.Size()
	c.scaleX, c.scaleY = 1, 1
	if c.worldW > 0 {
		c.scaleX = float64(c.cols) / c.worldW
	}
	if c.worldH > 0 {
		c.scaleY = float64(c.rows) / c.worldH
	}
	c.offset = vmath.Vec2{}
	c.screen.Clear()
}

// Size returns the screen size in cells
func (c *Canvas) Size() (cols, rows int) { return c.cols, c.rows }

// Scale returns cells per world unit on both axes
func (c *Canvas) Scale() (sx, sy float64) { return c.scaleX, c.scaleY }

// SetOffset sets the world position drawn at the top-left cell, the camera viewport origin
func (c *Canvas) SetOffset(v vmath.Vec2) { c.offset = v }

// Offset returns the current translation
func (c *Canvas) Offset() vmath.Vec2 { return c.offset }

// ToCell converts a world position to a cell position
func (c *Canvas) ToCell(x, y float64) (col, row int) {
	col = int(math.Floor((x - c.offset.X) * c.scaleX))
	row = int(math.Floor((y - c.offset.Y) * c.scaleY))
	return col, row
}

// cellSpan converts a world extent into a cell count, at least one cell
func cellSpan(v, scale float64) int {
	n := int(math.Round(v * scale))
	if n < 1 {
		return 1
	}
	return n
}

func (c *Canvas) inside(col, row int) bool {
	return col >= 0 && row >= 0 && col < c.cols && row < c.rows
}

// SetCell writes one cell in screen space, off-screen cells are dropped
func (c *Canvas) SetCell(col, row int, r rune, style tcell.Style) {
	if !c.inside(col, row) {
		return
	}
	c.screen.SetContent(col, row, r, nil, style)
}

// TextAt writes a string in screen space
func (c *Canvas) TextAt(col, row int, s string, fg engine.Color) {
	style := tcell.StyleDefault.Foreground(TcellColor(fg))
	for _, r := range s {
		c.SetCell(col, row, r, style)
		col++
	}
}

// Text writes a string at a world position
func (c *Canvas) Text(x, y float64, s string, fg engine.Color) {
	col, row := c.ToCell(x, y)
	c.TextAt(col, row, s, fg)
}

// Box fills and outlines a world rectangle, ColorNone skips either part
func (c *Canvas) Box(x, y, w, h float64, s engine.Style) {
	col, row := c.ToCell(x, y)
	cw := cellSpan(w, c.scaleX)
	ch := cellSpan(h, c.scaleY)

	if s.Fill != engine.ColorNone {
		fill := tcell.StyleDefault.Background(TcellColor(s.Fill))
		for j := 0; j < ch; j++ {
			for i := 0; i < cw; i++ {
				c.SetCell(col+i, row+j, ' ', fill)
			}
		}
	}
	if s.Border == engine.ColorNone {
		return
	}

	border := tcell.StyleDefault.Foreground(TcellColor(s.Border))
	if s.Fill != engine.ColorNone {
		border = border.Background(TcellColor(s.Fill))
	}
	if cw == 1 && ch == 1 {
		c.SetCell(col, row, '■', border)
		return
	}
	right, bottom := col+cw-1, row+ch-1
	for i := col + 1; i < right; i++ {
		c.SetCell(i, row, tcell.RuneHLine, border)
		c.SetCell(i, bottom, tcell.RuneHLine, border)
	}
	for j := row + 1; j < bottom; j++ {
		c.SetCell(col, j, tcell.RuneVLine, border)
		c.SetCell(right, j, tcell.RuneVLine, border)
	}
	c.SetCell(col, row, tcell.RuneULCorner, border)
	c.SetCell(right, row, tcell.RuneURCorner, border)
	c.SetCell(col, bottom, tcell.RuneLLCorner, border)
	c.SetCell(right, bottom, tcell.RuneLRCorner, border)
}

// Line draws a world segment with Bresenham stepping over cells
func (c *Canvas) Line(x0, y0, x1, y1 float64, fg engine.Color) {
	style := tcell.StyleDefault.Foreground(TcellColor(fg))
	c0, r0 := c.ToCell(x0, y0)
	c1, r1 := c.ToCell(x1, y1)

	dx := abs(c1 - c0)
	dy := -abs(r1 - r0)
	sx, sy := 1, 1
	if c0 > c1 {
		sx = -1
	}
	if r0 > r1 {
		sy = -1
	}
	e := dx + dy
	for {
		c.SetCell(c0, r0, '·', style)
		if c0 == c1 && r0 == r1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			c0 += sx
		}
		if e2 <= dx {
			e += dx
			r0 += sy
		}
	}
}

// Image samples img at each cell center of the world rectangle, transparent pixels are skipped
func (c *Canvas) Image(x, y, w, h float64, img image.Image) {
	col, row := c.ToCell(x, y)
	cw := cellSpan(w, c.scaleX)
	ch := cellSpan(h, c.scaleY)
	b := img.Bounds()

	for j := 0; j < ch; j++ {
		py := b.Min.Y + (2*j+1)*b.Dy()/(2*ch)
		for i := 0; i < cw; i++ {
			px := b.Min.X + (2*i+1)*b.Dx()/(2*cw)
			pc := fromImageColor(img.At(px, py))
			if pc == engine.ColorNone {
				continue
			}
			c.SetCell(col+i, row+j, ' ', tcell.StyleDefault.Background(TcellColor(pc)))
		}
	}
}

// Show flushes the frame to the terminal
func (c *Canvas) Show() { c.screen.Show() }

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
