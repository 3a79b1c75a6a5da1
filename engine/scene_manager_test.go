package engine

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/platform2d/registry"
	"github.com/lixenwraith/platform2d/status"
	"github.com/lixenwraith/platform2d/vmath"
)

func TestActivateLifecycle(t *testing.T) {
	ctx := newTestContext()
	title := newTestScene("title")
	demo := newTestScene("demo")
	require.NoError(t, ctx.Scenes.Add(title))
	require.NoError(t, ctx.Scenes.Add(demo))

	require.NoError(t, ctx.Scenes.Activate("title"))
	require.Same(t, title, ctx.Scenes.Active())

	require.NoError(t, ctx.Scenes.Activate("demo"))
	assert.Equal(t, 1, title.closed)
	assert.Same(t, demo, ctx.Scenes.Active())
	assert.Equal(t, "demo", ctx.Metrics.Labels.Get(status.KeyScene).Load())

	require.NoError(t, ctx.Scenes.Activate("title"))
	assert.Equal(t, 1, title.loaded, "load runs once per instance")
	assert.Equal(t, 2, title.created, "create runs on every activation")
}

func TestActivateUnknownScene(t *testing.T) {
	ctx := newTestContext()
	err := ctx.Scenes.Activate("nowhere")
	require.ErrorIs(t, err, ErrUnknownScene)
	require.Nil(t, ctx.Scenes.Active())
}

func TestAddDuplicateScene(t *testing.T) {
	ctx := newTestContext()
	require.NoError(t, ctx.Scenes.Add(newTestScene("a")))
	require.ErrorIs(t, ctx.Scenes.Add(newTestScene("a")), ErrDuplicateScene)
}

func TestActivateFailsFast(t *testing.T) {
	tests := []struct {
		name  string
		setup func(s *testScene) error
		want  error
	}{
		{
			name: "no world",
			setup: func(s *testScene) error {
				s.SetWorld(nil)
				return nil
			},
			want: ErrNoWorld,
		},
		{
			name: "camera required",
			setup: func(s *testScene) error {
				s.RequireCamera()
				return nil
			},
			want: ErrNoCamera,
		},
		{
			name: "camera lost its target",
			setup: func(s *testScene) error {
				target := NewEntity("p").MustBuild()
				cam, err := NewCamera("cam", target, 0.05, vmath.NewRect(0, 0, 320, 200))
				if err != nil {
					return err
				}
				cv, _ := cam.Camera()
				cv.Target = nil
				s.SetCamera(cam)
				return nil
			},
			want: ErrNoTarget,
		},
		{
			name: "camera is not a camera",
			setup: func(s *testScene) error {
				s.SetCamera(NewEntity("box").MustBuild())
				return nil
			},
			want: ErrNoCamera,
		},
		{
			name: "create error propagates",
			setup: func(s *testScene) error {
				return ErrDegenerateGeometry
			},
			want: ErrDegenerateGeometry,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := newTestContext()
			s := newTestScene("s")
			s.setup = tt.setup
			require.NoError(t, ctx.Scenes.Add(s))

			err := ctx.Scenes.Activate("s")
			require.ErrorIs(t, err, tt.want)
			require.Nil(t, ctx.Scenes.Active())
		})
	}
}

func TestActivateResetsScene(t *testing.T) {
	ctx := newTestContext()
	s := newTestScene("s")
	s.setup = func(s *testScene) error {
		s.Add(NewEntity("player").MustBuild())
		return nil
	}
	require.NoError(t, ctx.Scenes.Add(s))

	require.NoError(t, ctx.Scenes.Activate("s"))
	require.NoError(t, ctx.Scenes.Restart("s"))
	require.Equal(t, 1, s.Entities().Len())
}

func TestLoadRegistered(t *testing.T) {
	t.Cleanup(registry.Clear)
	registry.RegisterScene("title", func() any { return newTestScene("title") })
	registry.RegisterScene("broken", func() any { return 42 })

	ctx := newTestContext()
	require.NoError(t, ctx.Scenes.LoadRegistered([]string{"title"}))
	require.Equal(t, []string{"title"}, ctx.Scenes.Names())

	err := ctx.Scenes.LoadRegistered([]string{"missing"})
	require.True(t, errors.Is(err, ErrUnknownScene))

	err = ctx.Scenes.LoadRegistered([]string{"broken"})
	require.ErrorIs(t, err, ErrUnknownScene)
}

type fakeKeys struct {
	typed   map[string]bool
	pressed map[string]bool
	frames  int
}

func (k *fakeKeys) Pressed(key string) bool { return k.pressed[key] }
func (k *fakeKeys) Typed(key string) bool   { return k.typed[key] }
func (k *fakeKeys) BeginFrame()             { k.frames++ }

func TestInputRunsBehaviorsOfActiveEntities(t *testing.T) {
	ctx := newTestContext()
	ctx.Keys = &fakeKeys{pressed: map[string]bool{"right": true}}

	s := newTestScene("s")
	var pushed []string
	push := InputFunc(func(ctx *GameContext, e *Entity) {
		if ctx.Pressed("right") {
			e.AddForce(vmath.V2(5, 0))
			pushed = append(pushed, e.Name)
		}
	})
	s.setup = func(s *testScene) error {
		s.Add(NewEntity("player").WithBehavior(push).MustBuild())
		sleeper := NewEntity("sleeper").WithBehavior(push).MustBuild()
		sleeper.Active = false
		s.Add(sleeper)
		return nil
	}
	require.NoError(t, ctx.Scenes.Add(s))
	require.NoError(t, ctx.Scenes.Activate("s"))

	ctx.Scenes.Input()
	require.Equal(t, []string{"player"}, pushed)
}
