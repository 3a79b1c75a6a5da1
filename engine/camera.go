package engine

import (
	"github.com/lixenwraith/platform2d/physics"
)

// UpdateCamera ages the camera then moves it one tween step toward its target
// The viewport follows the camera position in place
func UpdateCamera(cam *Entity, dt float64) {
	cv, ok := cam.Camera()
	if !ok || cv.Target == nil {
		return
	}
	cam.Age(dt)

	pos := physics.Follow(cam.Position(), cv.Target.Rect, cv.Viewport, cv.TweenFactor, dt)
	cam.SetPosition(pos.X, pos.Y)
	cv.Viewport.SetPosition(pos.X, pos.Y)
}
