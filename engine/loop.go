package engine

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/platform2d/parameter"
	"github.com/lixenwraith/platform2d/status"
)

// FrameDelta returns the dt fed to the update, frames at or over budget count as ClampedFrameMs
func FrameDelta(elapsedMs float64) float64 {
	if elapsedMs < parameter.TargetFrameMs {
		return elapsedMs
	}
	return parameter.ClampedFrameMs
}

// FrameWait returns the pacing sleep after a frame of dt ms, never below MinSleep
func FrameWait(dt float64) time.Duration {
	wait := time.Duration(parameter.TargetFrameMs-int(dt)) * time.Millisecond
	return max(wait, parameter.MinSleep)
}

// Phases are the per-frame callbacks driven by the loop
type Phases interface {
	Input()
	Update(dt float64)
	Draw()
}

// Loop is the single-threaded input, update, draw cadence
type Loop struct {
	ctx    *GameContext
	phases Phases
	clock  TimeProvider
	sleep  func(time.Duration)

	updateOn atomic.Bool
	drawOn   atomic.Bool

	prev    time.Time
	started bool

	// Frame statistics, loop goroutine only
	frames, updates int64
	fps, ups        int64
	cumulated       float64
	gameTime        float64
	sinceRefresh    float64

	fpsM, upsM      *atomic.Int64
	objM, staticM   *atomic.Int64
	activeM, debugM *atomic.Int64
	timeM           *atomic.Int64
	elapsedM        *status.Gauge
}

// NewLoop creates a loop with update and draw enabled
// Nil clock and sleep default to the wall clock
func NewLoop(ctx *GameContext, phases Phases, clock TimeProvider, sleep func(time.Duration)) *Loop {
	if clock == nil {
		clock = NewMonotonicTimeProvider()
	}
	if sleep == nil {
		sleep = time.Sleep
	}
	l := &Loop{
		ctx:      ctx,
		phases:   phases,
		clock:    clock,
		sleep:    sleep,
		fpsM:     ctx.Metrics.Ints.Get(status.KeyFPS),
		upsM:     ctx.Metrics.Ints.Get(status.KeyUPS),
		objM:     ctx.Metrics.Ints.Get(status.KeyObjects),
		staticM:  ctx.Metrics.Ints.Get(status.KeyStatic),
		activeM:  ctx.Metrics.Ints.Get(status.KeyActive),
		debugM:   ctx.Metrics.Ints.Get(status.KeyDebug),
		timeM:    ctx.Metrics.Ints.Get(status.KeyTime),
		elapsedM: ctx.Metrics.Floats.Get(status.KeyElapsed),
	}
	l.updateOn.Store(true)
	l.drawOn.Store(true)
	return l
}

// SetUpdate toggles the update phase, false pauses the simulation
func (l *Loop) SetUpdate(on bool) { l.updateOn.Store(on) }

// SetDraw toggles the draw phase, false while the output is hidden
func (l *Loop) SetDraw(on bool) { l.drawOn.Store(on) }

// GameTimeMs returns the accumulated simulated time
func (l *Loop) GameTimeMs() float64 { return l.gameTime }

// Run drives frames until ctx is cancelled or an exit is requested
func (l *Loop) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return nil
		}
		if l.ctx.ExitRequested() {
			return nil
		}
		l.sleep(l.Frame())
	}
}

// Frame runs one iteration and returns the pacing sleep the caller should apply
func (l *Loop) Frame() time.Duration {
	now := l.clock.Now()
	if !l.started {
		l.prev = now
		l.started = true
	}
	dt := FrameDelta(float64(now.Sub(l.prev).Milliseconds()))
	l.prev = now

	l.phases.Input()
	if l.updateOn.Load() {
		l.phases.Update(dt)
		l.updates++
	}

	l.cumulated += dt
	l.sinceRefresh += dt
	if l.cumulated > parameter.StatsWindowMs {
		l.gameTime += l.cumulated
		l.fps, l.ups = l.frames, l.updates
		l.cumulated = 0
		l.frames, l.updates = 0, 0
	}
	if l.sinceRefresh >= parameter.StatsRefreshMs {
		l.sinceRefresh = 0
		l.publish(dt)
	}

	if l.drawOn.Load() {
		l.frames++
		l.phases.Draw()
	}
	l.ctx.FrameNumber.Add(1)

	return FrameWait(dt)
}

func (l *Loop) publish(dt float64) {
	l.fpsM.Store(l.fps)
	l.upsM.Store(l.ups)
	l.debugM.Store(int64(l.ctx.Debug()))
	l.timeM.Store(int64(l.gameTime))
	l.elapsedM.Set(dt)
	if s := l.ctx.Scenes.Active(); s != nil {
		total, static, active := s.Entities().Counts()
		l.objM.Store(int64(total))
		l.staticM.Store(int64(static))
		l.activeM.Store(int64(active))
	}
}
