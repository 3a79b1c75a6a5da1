package engine

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/platform2d/physics"
	"github.com/lixenwraith/platform2d/vmath"
)

type testScene struct {
	BaseScene
	trace   []string
	created int
	closed  int
	loaded  int
	fail    error
	setup   func(s *testScene) error
}

func newTestScene(name string) *testScene {
	return &testScene{BaseScene: NewBaseScene(name)}
}

func (s *testScene) Load(*GameContext) error {
	s.loaded++
	return nil
}

func (s *testScene) Create(*GameContext) error {
	s.created++
	if s.setup != nil {
		return s.setup(s)
	}
	return s.fail
}

func (s *testScene) Close(*GameContext) { s.closed++ }

func (s *testScene) Update(ctx *GameContext, dt float64) {
	s.trace = append(s.trace, "scene")
	s.BaseScene.Update(ctx, dt)
}

func newTestContext() *GameContext {
	return NewGameContext(nil, 320, 200)
}

func TestStepScenarioWithAppliedForce(t *testing.T) {
	s := newTestScene("s")
	s.SetWorld(physics.NewWorld(vmath.V2(0, 0.981), vmath.NewRect(0, 0, 200, 200)))
	e := NewEntity("e").At(100, 100).Size(50, 50).WithVelocity(1, 1).WithForce(vmath.V2(0.5, 0.5)).MustBuild()
	s.Add(e)

	var st Stepper
	st.Step(newTestContext(), s, 16)

	require.InDelta(t, 116.64, e.X, 0.01)
	require.InDelta(t, 117.8957, e.Y, 0.01)
	require.Empty(t, e.Forces)
}

func TestStepScenarioDirectAccelerationIsReset(t *testing.T) {
	s := newTestScene("s")
	s.SetWorld(physics.NewWorld(vmath.V2(0, 0.981), vmath.NewRect(0, 0, 200, 200)))
	e := NewEntity("e").At(100, 100).Size(50, 50).WithVelocity(1, 1).MustBuild()
	e.Acceleration = vmath.V2(0.5, 0.5)
	s.Add(e)

	var st Stepper
	st.Step(newTestContext(), s, 16)

	require.InDelta(t, 116.0, e.X, 0.01)
	require.InDelta(t, 117.2557, e.Y, 0.01)
}

func TestStepSkipsStaticAndInactive(t *testing.T) {
	s := newTestScene("s")
	s.SetWorld(physics.NewWorld(vmath.V2(0, 1), vmath.NewRect(0, 0, 320, 200)))

	hud := NewEntity("hud").At(10, 10).WithVelocity(1, 1).Static().MustBuild()
	dead := NewEntity("dead").At(50, 50).WithVelocity(1, 1).MustBuild()
	dead.Active = false
	s.Add(hud)
	s.Add(dead)

	var st Stepper
	st.Step(newTestContext(), s, 16)

	assert.Equal(t, vmath.V2(10, 10), hud.Position())
	assert.Equal(t, vmath.V2(50, 50), dead.Position())
	assert.Empty(t, hud.Forces)
}

func TestStepOrderBehaviorsThenBoundsThenClear(t *testing.T) {
	s := newTestScene("s")
	s.SetWorld(physics.NewWorld(vmath.V2(0, 0.981), vmath.NewRect(0, 0, 320, 200)))

	var seenForces int
	var seenX float64
	e := NewEntity("e").At(-5, 50).Size(10, 10).WithVelocity(-1, 0).
		WithBehavior(UpdateFunc(func(_ *GameContext, e *Entity, _ float64) {
			seenForces = len(e.Forces)
			seenX = e.X
			e.AddForce(vmath.V2(100, 0))
		})).MustBuild()
	s.Add(e)

	var st Stepper
	st.Step(newTestContext(), s, 16)

	require.Equal(t, 1, seenForces, "gravity is visible to behaviors")
	require.Less(t, seenX, 0.0, "behaviors run before boundary response")
	require.Equal(t, 0.0, e.X)
	require.True(t, e.Contact)
	require.Empty(t, e.Forces, "behavior forces are cleared with the frame")
}

func TestStepContactResetsEachFrame(t *testing.T) {
	s := newTestScene("s")
	e := NewEntity("e").At(-1, 50).MustBuild()
	s.Add(e)

	var st Stepper
	ctx := newTestContext()
	st.Step(ctx, s, 16)
	require.True(t, e.Contact)

	e.Velocity = vmath.Vec2{}
	st.Step(ctx, s, 16)
	require.False(t, e.Contact)
}

func TestStepLifespanDeactivates(t *testing.T) {
	s := newTestScene("s")
	spark := NewEntity("spark").At(10, 10).WithLifespan(20).MustBuild()
	s.Add(spark)

	var st Stepper
	ctx := newTestContext()
	st.Step(ctx, s, 16)
	require.True(t, spark.Active)
	st.Step(ctx, s, 16)
	require.False(t, spark.Active)

	// Expired entities are pruned by the scene update
	_, ok := s.Get("spark")
	require.False(t, ok)
}

func TestStepLifespanAgesOnlyIntegratedEntities(t *testing.T) {
	s := newTestScene("s")
	sign := NewEntity("sign").At(10, 10).Size(4, 4).WithLifespan(500).Static().MustBuild()
	s.Add(sign)

	target := NewEntity("target").At(50, 50).Size(4, 4).MustBuild()
	s.Add(target)
	cam, err := NewCamera("cam", target, 0.05, vmath.NewRect(0, 0, 100, 100))
	require.NoError(t, err)
	cam.LifespanMs = 500
	s.SetCamera(cam)

	var st Stepper
	ctx := newTestContext()
	for i := 0; i < 100; i++ {
		st.Step(ctx, s, 16)
	}

	require.True(t, sign.Active)
	require.Zero(t, sign.AgeMs)
	_, ok := s.Get("sign")
	require.True(t, ok)

	require.False(t, cam.Active)
	require.InDelta(t, 1600.0, cam.AgeMs, 1e-9)
}

func TestStepCameraFollowsMovedTargetThenSceneUpdate(t *testing.T) {
	s := newTestScene("s")
	s.SetWorld(physics.NewWorld(vmath.Vec2{}, vmath.NewRect(0, 0, 1000, 1000)))

	player := NewEntity("player").At(400, 300).Size(16, 16).WithVelocity(1, 0).MustBuild()
	player.Material = physics.MustMaterial("ice", 1, 0.5, 1.0)
	s.Add(player)

	cam, err := NewCamera("cam", player, 0.05, vmath.NewRect(0, 0, 320, 200))
	require.NoError(t, err)
	s.SetCamera(cam)

	var st Stepper
	st.Step(newTestContext(), s, 10)

	// Player moved to x=410 before the tween: goal x = 410+8-160 = 258
	require.Equal(t, 410.0, player.X)
	require.Equal(t, 129.0, cam.X)
	require.Equal(t, []string{"scene"}, s.trace)
}

func TestStepParticlesEmitInChunks(t *testing.T) {
	s := newTestScene("s")
	ps := NewEntity("ps").Size(320, 200).AsParticles(25, 10, func(em *Entity, seq int) *Entity {
		return NewEntity(fmt.Sprintf("%s-%d", em.Name, seq)).At(float64(seq), 0).Static().MustBuild()
	}).MustBuild()
	s.Add(ps)

	var st Stepper
	ctx := newTestContext()
	st.Step(ctx, s, 16)
	require.Equal(t, 11, s.Entities().Len())
	st.Step(ctx, s, 16)
	st.Step(ctx, s, 16)
	st.Step(ctx, s, 16)
	require.Equal(t, 26, s.Entities().Len())

	pv, _ := ps.Particles()
	require.Equal(t, 25, pv.Emitted)
}

func TestStepParallelMatchesSequential(t *testing.T) {
	// follow adds a follower after a falling leader, the follower records the leader Y it observed
	build := func(follow bool) (*testScene, *[]float64) {
		s := newTestScene("s")
		s.SetWorld(physics.NewWorld(vmath.V2(0, 0.981), vmath.NewRect(0, 0, 320, 200)))
		water, err := NewConstraintRegion("water", vmath.NewRect(0, 140, 320, 60), vmath.V2(0, -0.3))
		require.NoError(t, err)
		s.AddConstraint(water)
		for i := 0; i < 200; i++ {
			s.Add(NewEntity(fmt.Sprintf("e%d", i)).
				At(float64(i%300), float64(i%190)).Size(8, 8).
				WithVelocity(float64(i%7)-3, float64(i%5)-2).
				WithMass(10).
				WithPriority(int32(i % 4)).
				MustBuild())
		}

		seen := new([]float64)
		if follow {
			leader := NewEntity("leader").At(100, 180).Size(8, 8).WithVelocity(0, 3).WithPriority(-2).MustBuild()
			s.Add(leader)
			s.Add(NewEntity("follower").At(10, 10).Size(8, 8).WithPriority(-1).
				WithBehavior(UpdateFunc(func(_ *GameContext, _ *Entity, _ float64) {
					*seen = append(*seen, leader.Y)
				})).
				MustBuild())
		}
		return s, seen
	}

	for _, follow := range []bool{false, true} {
		t.Run(fmt.Sprintf("follow=%v", follow), func(t *testing.T) {
			seq, seqSeen := build(follow)
			par, parSeen := build(follow)
			ctx := newTestContext()
			for i := 0; i < 30; i++ {
				(&Stepper{}).Step(ctx, seq, 16)
				(&Stepper{Workers: 4}).Step(ctx, par, 16)
			}

			a, b := seq.Entities().Snapshot(), par.Entities().Snapshot()
			require.Equal(t, len(a), len(b))
			for i := range a {
				require.Equal(t, a[i].Name, b[i].Name)
				require.Equal(t, a[i].Position(), b[i].Position(), a[i].Name)
				require.Equal(t, a[i].Velocity, b[i].Velocity, a[i].Name)
			}

			require.Equal(t, *seqSeen, *parSeen)
			for _, y := range *parSeen {
				require.LessOrEqual(t, y, 192.0, "behaviors see clamped positions")
			}
		})
	}
}

func TestStepParallelRepanicsOnCaller(t *testing.T) {
	s := newTestScene("s")
	for i := 0; i < 100; i++ {
		s.Add(NewEntity(fmt.Sprintf("e%d", i)).MustBuild())
	}
	// A nil world makes every worker panic
	s.SetWorld(nil)

	st := Stepper{Workers: 2}
	require.Panics(t, func() { st.Step(newTestContext(), s, 16) })
}
