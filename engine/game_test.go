package engine

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/platform2d/parameter"
	"github.com/lixenwraith/platform2d/status"
)

func TestFrameDelta(t *testing.T) {
	assert.Equal(t, 10.0, FrameDelta(10))
	assert.Equal(t, 15.0, FrameDelta(15))
	assert.Equal(t, parameter.ClampedFrameMs, FrameDelta(16))
	assert.Equal(t, parameter.ClampedFrameMs, FrameDelta(250))
}

func TestFrameWait(t *testing.T) {
	assert.Equal(t, 6*time.Millisecond, FrameWait(10))
	assert.Equal(t, time.Millisecond, FrameWait(16))
	assert.Equal(t, time.Millisecond, FrameWait(40))
}

func TestNextDebugLevel(t *testing.T) {
	assert.Equal(t, 1, NextDebugLevel(0))
	assert.Equal(t, 5, NextDebugLevel(4))
	assert.Equal(t, 1, NextDebugLevel(5))
}

type recordPhases struct {
	inputs, updates, draws int
	dts                    []float64
}

func (r *recordPhases) Input()            { r.inputs++ }
func (r *recordPhases) Update(dt float64) { r.updates++; r.dts = append(r.dts, dt) }
func (r *recordPhases) Draw()             { r.draws++ }

func TestLoopFrameCadence(t *testing.T) {
	ctx := newTestContext()
	clock := NewMockTimeProvider(time.Unix(0, 0))
	phases := &recordPhases{}
	loop := NewLoop(ctx, phases, clock, clock.Sleep)

	wait := loop.Frame()
	require.Equal(t, 0.0, phases.dts[0])
	require.Equal(t, 16*time.Millisecond, wait)

	clock.Advance(10 * time.Millisecond)
	wait = loop.Frame()
	require.Equal(t, 10.0, phases.dts[1])
	require.Equal(t, 6*time.Millisecond, wait)

	clock.Advance(200 * time.Millisecond)
	loop.Frame()
	require.Equal(t, 16.0, phases.dts[2])

	loop.SetUpdate(false)
	loop.SetDraw(false)
	loop.Frame()
	require.Equal(t, 4, phases.inputs)
	require.Equal(t, 3, phases.updates)
	require.Equal(t, 3, phases.draws)
	require.Equal(t, int64(4), ctx.FrameNumber.Load())
}

func TestLoopPublishesStats(t *testing.T) {
	ctx := newTestContext()
	s := newTestScene("s")
	s.setup = func(s *testScene) error {
		s.Add(NewEntity("a").MustBuild())
		s.Add(NewEntity("b").Static().MustBuild())
		return nil
	}
	require.NoError(t, ctx.Scenes.Add(s))
	require.NoError(t, ctx.Scenes.Activate("s"))
	ctx.SetDebug(3)

	clock := NewMockTimeProvider(time.Unix(0, 0))
	loop := NewLoop(ctx, &recordPhases{}, clock, clock.Sleep)

	// Frames of 15 ms for a little over one second of game time
	for i := 0; i < 70; i++ {
		loop.Frame()
		clock.Advance(15 * time.Millisecond)
	}

	m := ctx.Metrics
	assert.Equal(t, int64(2), m.Ints.Get(status.KeyObjects).Load())
	assert.Equal(t, int64(1), m.Ints.Get(status.KeyStatic).Load())
	assert.Equal(t, int64(2), m.Ints.Get(status.KeyActive).Load())
	assert.Equal(t, int64(3), m.Ints.Get(status.KeyDebug).Load())
	assert.Greater(t, m.Ints.Get(status.KeyFPS).Load(), int64(60))
	assert.Greater(t, loop.GameTimeMs(), 1000.0)
}

func TestLoopRunStopsOnExitAndCancel(t *testing.T) {
	ctx := newTestContext()
	clock := NewMockTimeProvider(time.Unix(0, 0))
	phases := &recordPhases{}
	loop := NewLoop(ctx, phases, clock, func(d time.Duration) {
		clock.Advance(d)
		if phases.inputs == 5 {
			ctx.RequestExit()
		}
	})
	require.NoError(t, loop.Run(context.Background()))
	require.Equal(t, 5, phases.inputs)

	cancelled, cancel := context.WithCancel(context.Background())
	cancel()
	ctx2 := newTestContext()
	phases2 := &recordPhases{}
	require.NoError(t, NewLoop(ctx2, phases2, clock, clock.Sleep).Run(cancelled))
	require.Zero(t, phases2.inputs)
}

func TestGameGlobalKeys(t *testing.T) {
	ctx := newTestContext()
	keys := &fakeKeys{typed: map[string]bool{}}
	ctx.Keys = keys

	s := newTestScene("demo")
	created := 0
	s.setup = func(s *testScene) error {
		created++
		s.Add(NewEntity("player").MustBuild())
		return nil
	}
	require.NoError(t, ctx.Scenes.Add(s))
	require.NoError(t, ctx.Scenes.Activate("demo"))

	g := &Game{Ctx: ctx, DefaultScene: "demo"}

	keys.typed = map[string]bool{KeyDebugCycle: true}
	g.Input()
	require.Equal(t, 1, ctx.Debug())
	require.Equal(t, 1, keys.frames)

	keys.typed = map[string]bool{KeyDebugOff: true}
	g.Input()
	require.Equal(t, 0, ctx.Debug())

	keys.typed = map[string]bool{KeyReset: true}
	g.Input()
	require.Equal(t, 2, created)
	require.Equal(t, 1, s.Entities().Len())

	keys.typed = map[string]bool{KeyExit: true}
	g.Input()
	require.True(t, ctx.ExitRequested())
}

type countingRenderer struct{ frames int }

func (r *countingRenderer) Render(*GameContext, Scene) { r.frames++ }

func TestGameUpdateAndDrawNeedActiveScene(t *testing.T) {
	ctx := newTestContext()
	r := &countingRenderer{}
	g := &Game{Ctx: ctx, Renderer: r}

	g.Update(16)
	g.Draw()
	require.Zero(t, r.frames)

	require.NoError(t, ctx.Scenes.Add(newTestScene("s")))
	require.NoError(t, ctx.Scenes.Activate("s"))
	g.Draw()
	require.Equal(t, 1, r.frames)
}

func TestRenderersFanOut(t *testing.T) {
	a, b := &countingRenderer{}, &countingRenderer{}
	Renderers{a, b}.Render(newTestContext(), newTestScene("s"))
	require.Equal(t, 1, a.frames)
	require.Equal(t, 1, b.frames)
}
