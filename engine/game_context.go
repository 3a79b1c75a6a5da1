package engine

import (
	"image"
	"sync/atomic"

	"github.com/lixenwraith/platform2d/log"
	"github.com/lixenwraith/platform2d/status"
)

// KeyState is the keyboard view offered to scenes and behaviors
// Key names are lower-case ("up", "space", "page_up", "g")
type KeyState interface {
	Pressed(key string) bool // Held, including terminal auto-repeat
	Typed(key string) bool   // An event for key arrived this frame
}

// SoundPlayer plays named sound effects
type SoundPlayer interface {
	Load(name, path string) error
	Play(name string) error
	Stop(name string)
	StopAll()
}

// AssetLoader resolves image keys, "path|x,y,w,h" selects a sub-image
type AssetLoader interface {
	Image(key string) (image.Image, error)
}

// GameContext holds the services shared by scenes, behaviors and the frame loop
type GameContext struct {
	// ===== Immutable After Init =====
	// Set once by NewGameContext or by the caller before the loop starts

	Log     log.Log
	Metrics *status.Registry
	Keys    KeyState    // Nil disables keyboard-driven behaviors
	Sounds  SoundPlayer // Nil is silent
	Assets  AssetLoader // Nil makes image entities render as boxes
	Scenes  *SceneManager

	// Screen is the logical draw buffer in world units
	ScreenWidth, ScreenHeight float64

	// DebugFilter restricts debug vector drawing to entities whose name contains it
	DebugFilter string

	// ===== Atomic (Self-Synchronized) =====

	FrameNumber atomic.Int64
	debug       atomic.Int32
	exit        atomic.Bool
}

// NewGameContext creates a context with a scene manager bound to it
func NewGameContext(logger log.Log, screenWidth, screenHeight float64) *GameContext {
	if logger == nil {
		logger = log.Nop()
	}
	ctx := &GameContext{
		Log:          logger,
		Metrics:      status.NewRegistry(),
		ScreenWidth:  screenWidth,
		ScreenHeight: screenHeight,
	}
	ctx.Scenes = NewSceneManager(ctx)
	return ctx
}

// Debug returns the current debug level
func (ctx *GameContext) Debug() int {
	return int(ctx.debug.Load())
}

// SetDebug sets the debug level
func (ctx *GameContext) SetDebug(level int) {
	ctx.debug.Store(int32(level))
}

// RequestExit stops the loop at the next frame boundary
func (ctx *GameContext) RequestExit() {
	ctx.exit.Store(true)
}

// ExitRequested reports whether RequestExit was called
func (ctx *GameContext) ExitRequested() bool {
	return ctx.exit.Load()
}

// Pressed forwards to Keys, false without a keyboard
func (ctx *GameContext) Pressed(key string) bool {
	return ctx.Keys != nil && ctx.Keys.Pressed(key)
}

// Typed forwards to Keys, false without a keyboard
func (ctx *GameContext) Typed(key string) bool {
	return ctx.Keys != nil && ctx.Keys.Typed(key)
}

// PlaySound plays a named sound, failures are logged and never stop the frame
func (ctx *GameContext) PlaySound(name string) {
	if ctx.Sounds == nil {
		return
	}
	if err := ctx.Sounds.Play(name); err != nil {
		ctx.Log.Warn("sound playback failed", log.String("sound", name), log.Err(err))
	}
}
