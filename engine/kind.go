package engine

import (
	"github.com/lixenwraith/platform2d/vmath"
)

// Kind selects the render plugin and the variant payload carried by an entity
type Kind uint8

const (
	KindBox Kind = iota
	KindText
	KindImage
	KindConstraint
	KindCamera
	KindParticles
)

var kindNames = [...]string{
	KindBox:        "box",
	KindText:       "text",
	KindImage:      "image",
	KindConstraint: "constraint",
	KindCamera:     "camera",
	KindParticles:  "particles",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// TextVariant is the payload of KindText
type TextVariant struct {
	Text   string
	Shadow Color
}

// ImageVariant is the payload of KindImage, Key is resolved by the asset cache
// A key of the form "path|x,y,w,h" selects a sub-image
type ImageVariant struct {
	Key string
}

// CameraVariant is the payload of KindCamera
// Target is a weak reference, the camera never owns its lifetime
type CameraVariant struct {
	Target      *Entity
	TweenFactor float64
	Viewport    vmath.Rect
}

// SpawnFunc creates one particle for the given emitter, seq is the particle sequence number
type SpawnFunc func(emitter *Entity, seq int) *Entity

// ParticlesVariant is the payload of KindParticles
type ParticlesVariant struct {
	Max     int // Emission stops once Emitted reaches Max
	Chunk   int // Particles created per update
	Emitted int
	Spawn   SpawnFunc
}

// Color is a packed 0xRRGGBB value, ColorNone disables the fill or border
type Color int32

const ColorNone Color = -1

// RGB packs three channels into a Color
func RGB(r, g, b uint8) Color {
	return Color(int32(r)<<16 | int32(g)<<8 | int32(b))
}

// Channels unpacks the color, ok is false for ColorNone
func (c Color) Channels() (r, g, b uint8, ok bool) {
	if c < 0 {
		return 0, 0, 0, false
	}
	return uint8(c >> 16), uint8(c >> 8), uint8(c), true
}

// Scale darkens the color by factor in [0,1]
func (c Color) Scale(f float64) Color {
	r, g, b, ok := c.Channels()
	if !ok {
		return c
	}
	return RGB(uint8(float64(r)*f), uint8(float64(g)*f), uint8(float64(b)*f))
}

// Common colors
const (
	ColorBlack Color = 0x000000
	ColorWhite Color = 0xFFFFFF
	ColorBlue  Color = 0x0000FF
	ColorGray  Color = 0x404040
)

// Style carries the draw colors of an entity
type Style struct {
	Fill   Color
	Border Color
}
