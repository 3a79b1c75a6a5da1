package demo

import (
	"github.com/lixenwraith/platform2d/engine"
	"github.com/lixenwraith/platform2d/input"
	"github.com/lixenwraith/platform2d/log"
)

// Scene names
const (
	SceneTitle = "title"
	SceneDemo  = "demo"
)

const (
	titleBackground = "images/backgrounds/volcano.png"
	welcomeText     = "Welcome to Platform2D! Press Space"
)

// TitleScene shows a welcome message and switches to the demo on Space or Enter
type TitleScene struct {
	engine.BaseScene
	Next string
}

func NewTitleScene() *TitleScene {
	return &TitleScene{BaseScene: engine.NewBaseScene(SceneTitle), Next: SceneDemo}
}

func (s *TitleScene) Create(ctx *engine.GameContext) error {
	w, h := ctx.ScreenWidth, ctx.ScreenHeight

	background, err := engine.NewEntity("background").
		Size(w, h).
		AsImage(titleBackground).
		WithStyle(engine.ColorNone, engine.ColorNone).
		Static().
		Build()
	if err != nil {
		return err
	}
	s.Add(background)

	welcome, err := engine.NewEntity("welcome").
		At((w-float64(len(welcomeText)))*0.5, h*0.5).
		AsText(welcomeText, engine.ColorBlack).
		WithStyle(engine.ColorNone, engine.ColorWhite).
		WithPriority(1).
		Static().
		Build()
	if err != nil {
		return err
	}
	s.Add(welcome)
	return nil
}

func (s *TitleScene) Input(ctx *engine.GameContext) {
	if !ctx.Typed(input.KeySpace) && !ctx.Typed(input.KeyEnter) {
		return
	}
	if err := ctx.Scenes.Activate(s.Next); err != nil {
		ctx.Log.Error("scene switch failed", log.String("scene", s.Next), log.Err(err))
	}
}
