package engine

import (
	"fmt"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/lixenwraith/platform2d/physics"
)

// minChunk is the smallest per-worker slice worth a goroutine
const minChunk = 32

// Stepper advances a scene by one frame
//
// Sequential mode runs the whole per-entity sequence before moving to the next entity
// With Workers > 1 integration, then lifecycle and boundary response, run as two
// parallel passes over all entities. A behavior may read other entities, so a frame
// where any integrated entity has an UpdateBehavior runs sequentially instead
type Stepper struct {
	Workers int
}

// Step runs the physics phase, then the camera tween, then the scene update hook
func (st *Stepper) Step(ctx *GameContext, s Scene, dt float64) {
	w := s.World()
	reg := s.Entities()

	if st.Workers > 1 {
		st.stepParallel(ctx, s, w, reg, dt)
	} else {
		reg.Each(func(e *Entity) bool {
			if e.Integrated() {
				stepEntity(ctx, w, e, dt)
			}
			return true
		})
	}

	if cam := s.Camera(); cam != nil {
		UpdateCamera(cam, dt)
	}
	s.Update(ctx, dt)
}

// stepEntity is the ordered per-entity sequence
func stepEntity(ctx *GameContext, w *physics.World, e *Entity, dt float64) {
	integrate(w, e, dt)
	runBehaviors(ctx, e, dt)
	settle(w, e, dt)
}

func integrate(w *physics.World, e *Entity, dt float64) {
	e.Contact = false
	physics.ApplyForces(&e.Body, w, dt)
	physics.Integrate(&e.Body, dt)
}

func runBehaviors(ctx *GameContext, e *Entity, dt float64) {
	for _, b := range e.Behaviors {
		if ub, ok := b.(UpdateBehavior); ok {
			ub.Update(ctx, e, dt)
		}
	}
}

func settle(w *physics.World, e *Entity, dt float64) {
	e.Age(dt)
	physics.ReflectBounds(&e.Body, w.PlayArea())
	e.ClearForces()
}

func (st *Stepper) stepParallel(ctx *GameContext, s Scene, w *physics.World, reg *EntityRegistry, dt float64) {
	reg.begin()
	defer reg.end()

	// Entities added by behaviors go to the pending buffer, the slice below stays stable
	items := make([]*Entity, 0, len(reg.items))
	for _, e := range reg.items {
		if e.Integrated() {
			items = append(items, e)
		}
	}

	if slices.ContainsFunc(items, hasUpdateBehavior) {
		for _, e := range items {
			// An earlier behavior may have deactivated e this frame
			if e.Integrated() {
				stepEntity(ctx, w, e, dt)
			}
		}
		return
	}

	st.parallel(items, func(e *Entity) { integrate(w, e, dt) })
	st.parallel(items, func(e *Entity) { settle(w, e, dt) })
}

func hasUpdateBehavior(e *Entity) bool {
	for _, b := range e.Behaviors {
		if _, ok := b.(UpdateBehavior); ok {
			return true
		}
	}
	return false
}

// parallel applies fn to every entity using at most Workers goroutines
// A panic in a worker is re-raised on the caller goroutine
func (st *Stepper) parallel(items []*Entity, fn func(e *Entity)) {
	if len(items) < minChunk*2 {
		for _, e := range items {
			fn(e)
		}
		return
	}

	chunk := (len(items) + st.Workers - 1) / st.Workers
	chunk = max(chunk, minChunk)

	var g errgroup.Group
	g.SetLimit(st.Workers)
	for start := 0; start < len(items); start += chunk {
		part := items[start:min(start+chunk, len(items))]
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("physics worker panic: %v", r)
				}
			}()
			for _, e := range part {
				fn(e)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		panic(err)
	}
}
