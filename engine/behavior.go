package engine

// Behavior is attached to an entity and implements any of the capability interfaces below
type Behavior any

// InputBehavior reacts to the keyboard before the physics step
type InputBehavior interface {
	Input(ctx *GameContext, e *Entity)
}

// UpdateBehavior runs after integration and before boundary response
// Forces added here survive until the end of the entity's step only
type UpdateBehavior interface {
	Update(ctx *GameContext, e *Entity, dt float64)
}

// DrawBehavior draws extra decoration after the entity's render plugin
type DrawBehavior interface {
	Draw(ctx *GameContext, e *Entity, d Drawer)
}

// Drawer is the subset of the renderer canvas exposed to behaviors, coordinates in world units
type Drawer interface {
	Text(x, y float64, s string, fg Color)
	Box(x, y, w, h float64, s Style)
	Line(x0, y0, x1, y1 float64, fg Color)
}

// InputFunc adapts a function to InputBehavior
type InputFunc func(ctx *GameContext, e *Entity)

func (f InputFunc) Input(ctx *GameContext, e *Entity) { f(ctx, e) }

// UpdateFunc adapts a function to UpdateBehavior
type UpdateFunc func(ctx *GameContext, e *Entity, dt float64)

func (f UpdateFunc) Update(ctx *GameContext, e *Entity, dt float64) { f(ctx, e, dt) }
