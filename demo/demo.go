package demo

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/lixenwraith/platform2d/engine"
	"github.com/lixenwraith/platform2d/input"
	"github.com/lixenwraith/platform2d/log"
	"github.com/lixenwraith/platform2d/parameter"
	"github.com/lixenwraith/platform2d/physics"
	"github.com/lixenwraith/platform2d/vmath"
)

// Sound names played by the demo
const (
	SoundClic = "clic"
	SoundTic  = "tic"
	SoundToc  = "toc"
)

// Demo tuning
const (
	InitialEnemies  = 10
	EnemyBatch      = 10
	MaxStars        = parameter.StarMax
	StarsPerUpdate  = parameter.StarsPerChunk
	CameraTween     = parameter.DefaultCameraTween
	waterRatio      = 0.30
	heartKey        = "images/tiles01.png|0,96,16,16"
	enemyPriority   = 10
	playerMassKg    = 80.0
	enemyMassKg     = 10.0
	playerSpeed     = 5.0
	playerMaxSpeed  = 1.0
	enemyKick       = 0.5
	playerLives     = 3
	playerEnergy    = 100
	playerMana      = 100
	waterForceY     = -0.3
	hudShadowFactor = 0.2
)

const (
	demoBackground     = "images/backgrounds/forest.jpg"
	backgroundPriority = -10
)

var (
	Gravity  = vmath.V2(0, 0.981)
	PlayArea = vmath.NewRect(0, 0, 320, 200)

	PlayerMaterial = physics.MustMaterial("player", 1.0, 0.30, 0.92)
	EnemyMaterial  = physics.MustMaterial("enemy", 0.7, 0.80, 0.99)

	waterColor  = engine.RGB(51, 51, 178)
	shadowColor = engine.ColorWhite.Scale(hudShadowFactor)
)

// DemoScene is the physics playground: a player, a water region, enemies and a star field
type DemoScene struct {
	engine.BaseScene

	rng     *rand.Rand
	enemies int // Enemies created since activation, used for names and priorities
}

func NewDemoScene() *DemoScene {
	seed := uint64(time.Now().UnixNano())
	return NewDemoSceneSeeded(seed)
}

// NewDemoSceneSeeded creates the scene with a deterministic random source
func NewDemoSceneSeeded(seed uint64) *DemoScene {
	s := &DemoScene{
		BaseScene: engine.NewBaseScene(SceneDemo),
		rng:       rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
	s.RequireCamera()
	return s
}

func (s *DemoScene) Create(ctx *engine.GameContext) error {
	s.enemies = 0
	world := physics.NewWorld(Gravity, PlayArea)
	s.SetWorld(world)

	background, err := engine.NewEntity("background").
		Bounds(PlayArea).
		AsImage(demoBackground).
		WithStyle(engine.ColorNone, engine.ColorNone).
		WithPriority(backgroundPriority).
		Static().
		Build()
	if err != nil {
		return err
	}
	s.Add(background)

	player, err := engine.NewEntity("player").
		At(PlayArea.Width*0.5, PlayArea.Height*0.5).
		Size(16, 16).
		WithMaterial(PlayerMaterial).
		WithMass(playerMassKg).
		WithAttr(AttrEnergy, playerEnergy).
		WithAttr(AttrMana, playerMana).
		WithAttr(AttrLives, playerLives).
		WithAttr(AttrSpeed, playerSpeed).
		WithAttr(AttrMaxSpeed, playerMaxSpeed).
		WithBehavior(PlayerBehavior{}).
		Build()
	if err != nil {
		return err
	}
	s.Add(player)

	if err := s.createHUD(ctx, player); err != nil {
		return err
	}

	water, err := engine.NewConstraintRegion("water",
		vmath.NewRect(0, PlayArea.Height*(1-waterRatio), PlayArea.Width, PlayArea.Height*waterRatio),
		vmath.V2(0, waterForceY))
	if err != nil {
		return err
	}
	water.Priority = 2
	water.Material = physics.WaterMaterial
	water.Style = engine.Style{Fill: waterColor, Border: engine.ColorNone}
	s.AddConstraint(water)

	stars, err := engine.NewEntity("ps01").
		Bounds(PlayArea).
		WithPriority(parameter.StarPriority).
		WithStyle(engine.ColorBlack, engine.ColorNone).
		AsParticles(MaxStars, StarsPerUpdate, s.spawnStar).
		Build()
	if err != nil {
		return err
	}
	s.Add(stars)

	if err := s.AddEnemies(player, InitialEnemies); err != nil {
		return err
	}

	cam, err := engine.NewCamera("cam01", player, CameraTween, vmath.NewRect(0, 0, ctx.ScreenWidth, ctx.ScreenHeight))
	if err != nil {
		return err
	}
	s.SetCamera(cam)

	ctx.PlaySound(SoundToc)
	return nil
}

func (s *DemoScene) createHUD(ctx *engine.GameContext, player *engine.Entity) error {
	w := ctx.ScreenWidth
	lives := fmt.Sprint(player.FloatAttr(AttrLives, 0))

	hud := []*engine.EntityBuilder{
		engine.NewEntity("score").
			At(8, 16).
			AsText("000000", shadowColor).
			WithStyle(engine.ColorNone, engine.ColorWhite).
			WithPriority(1),
		engine.NewEntity("heart").
			At(w-32, 16).
			Size(16, 16).
			AsImage(heartKey).
			WithStyle(engine.RGB(0xC0, 0, 0), engine.ColorNone).
			WithPriority(1),
		engine.NewEntity("lives").
			At(w-24, 20).
			AsText(lives, shadowColor).
			WithStyle(engine.ColorNone, engine.ColorWhite).
			WithPriority(2),
	}
	for _, b := range hud {
		e, err := b.Static().StickToCamera().Build()
		if err != nil {
			return err
		}
		s.Add(e)
	}
	return nil
}

// spawnStar creates one static star of random shade inside the emitter
func (s *DemoScene) spawnStar(emitter *engine.Entity, seq int) *engine.Entity {
	shade := engine.ColorWhite.Scale(float64(s.rng.IntN(parameter.StarShades)) / parameter.StarShades)
	return engine.NewEntity(fmt.Sprintf("%s-%d", emitter.Name, seq)).
		At(emitter.X+emitter.Width*s.rng.Float64(), emitter.Y+emitter.Height*s.rng.Float64()).
		Size(parameter.StarSize, parameter.StarSize).
		WithStyle(shade, shade).
		WithPriority(parameter.StarPriority).
		Static().
		MustBuild()
}

// AddEnemies creates n enemies at random positions reacting to target
func (s *DemoScene) AddEnemies(target *engine.Entity, n int) error {
	for i := 0; i < n; i++ {
		e, err := engine.NewEntity(fmt.Sprintf("enemy_%d", s.enemies)).
			At(s.rng.Float64()*PlayArea.Width, s.rng.Float64()*PlayArea.Height).
			Size(8, 8).
			WithMaterial(EnemyMaterial).
			WithStyle(engine.ColorBlue, engine.ColorGray).
			WithAttr(AttrEnergy, playerEnergy).
			WithAttr(AttrMana, playerMana).
			WithPriority(int32(enemyPriority + s.enemies)).
			WithMass(enemyMassKg).
			WithBehavior(EnemyBehavior{Target: target}).
			Build()
		if err != nil {
			return err
		}
		kick := vmath.V2(s.rng.Float64()*2-1, s.rng.Float64()*2-1).Scale(enemyKick)
		physics.ApplyImpulse(&e.Body, kick)
		s.Add(e)
		s.enemies++
	}
	return nil
}

// Enemies returns the number of enemies created since activation
func (s *DemoScene) Enemies() int { return s.enemies }

func (s *DemoScene) Input(ctx *engine.GameContext) {
	n := 0
	switch {
	case ctx.Typed(input.KeyShiftPgUp):
		n = EnemyBatch * 10
	case ctx.Typed(input.KeyCtrlPgUp):
		n = EnemyBatch * 5
	case ctx.Typed(input.KeyPageUp):
		n = EnemyBatch
	}
	if n > 0 {
		player, _ := s.Get("player")
		if err := s.AddEnemies(player, n); err != nil {
			ctx.Log.Error("add enemies failed", log.Err(err))
		}
		ctx.PlaySound(SoundTic)
		ctx.Log.Debug("enemies added", log.Int("count", n), log.Int("total", s.enemies))
	}

	if ctx.Typed(input.KeyGravity) {
		w := s.World()
		w.SetGravity(w.Gravity().Negate())
		ctx.PlaySound(SoundClic)
	}
}
