package physics

import (
	"math"

	"github.com/lixenwraith/platform2d/parameter"
	"github.com/lixenwraith/platform2d/vmath"
)

// Follow moves pos one tween step toward centering target inside a viewport of the given size
// dt is clamped to CameraMaxTweenStepMs so a long frame cannot overshoot
// Steps are rounded up, matching the integer-pixel camera of the renderer
func Follow(pos vmath.Vec2, target vmath.Rect, viewport vmath.Rect, factor, dt float64) vmath.Vec2 {
	step := factor * math.Min(dt, parameter.CameraMaxTweenStepMs)

	goalX := target.X + target.Width*0.5 - viewport.Width*0.5
	goalY := target.Y + target.Height*0.5 - viewport.Height*0.5

	return vmath.Vec2{
		X: pos.X + math.Ceil((goalX-pos.X)*step),
		Y: pos.Y + math.Ceil((goalY-pos.Y)*step),
	}
}

// FollowGoal returns the camera position that centers target in the viewport
func FollowGoal(target vmath.Rect, viewport vmath.Rect) vmath.Vec2 {
	return vmath.Vec2{
		X: target.X + target.Width*0.5 - viewport.Width*0.5,
		Y: target.Y + target.Height*0.5 - viewport.Height*0.5,
	}
}
