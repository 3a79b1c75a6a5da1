package demo

import (
	"github.com/lixenwraith/platform2d/engine"
	"github.com/lixenwraith/platform2d/input"
	"github.com/lixenwraith/platform2d/physics"
	"github.com/lixenwraith/platform2d/vmath"
)

// Player attribute keys, AttrMaxSpeed is in units per ms and 0 leaves the player uncapped
const (
	AttrEnergy   = "energy"
	AttrMana     = "mana"
	AttrLives    = "lives"
	AttrSpeed    = "speed"
	AttrMaxSpeed = "max_speed"
)

const defaultSpeed = 0.5

// PlayerBehavior pushes the entity with arrow keys, force magnitude is the speed attribute
type PlayerBehavior struct{}

func (PlayerBehavior) Input(ctx *engine.GameContext, e *engine.Entity) {
	speed := e.FloatAttr(AttrSpeed, defaultSpeed)
	if ctx.Pressed(input.KeyUp) {
		e.AddForce(vmath.V2(0, -speed))
	}
	if ctx.Pressed(input.KeyDown) {
		e.AddForce(vmath.V2(0, speed))
	}
	if ctx.Pressed(input.KeyLeft) {
		e.AddForce(vmath.V2(-speed, 0))
	}
	if ctx.Pressed(input.KeyRight) {
		e.AddForce(vmath.V2(speed, 0))
	}
}

// Update keeps the player under its max speed once forces are integrated
func (PlayerBehavior) Update(_ *engine.GameContext, e *engine.Entity, _ float64) {
	if limit := e.FloatAttr(AttrMaxSpeed, 0); limit > 0 {
		physics.CapSpeed(&e.Body, limit)
	}
}

// EnemyRange is the distance under which enemies react to the player
const EnemyRange = 40.0

// EnemyForceFactor scales the player position into the reaction force
const EnemyForceFactor = -0.05

// EnemyBehavior reacts when the target comes within EnemyRange
// The force is the target position scaled by EnemyForceFactor, not a relative direction
type EnemyBehavior struct {
	Target *engine.Entity
}

func (b EnemyBehavior) Update(_ *engine.GameContext, e *engine.Entity, _ float64) {
	if b.Target == nil || !b.Target.Active {
		return
	}
	p := b.Target.Position()
	if p.Distance(e.Position()) < EnemyRange {
		e.AddForce(p.Scale(EnemyForceFactor))
	}
}
