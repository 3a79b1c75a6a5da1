package render

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/lixenwraith/platform2d/engine"
	"github.com/lixenwraith/platform2d/log"
	"github.com/lixenwraith/platform2d/vmath"
)

// Screen 80x50 over a 320x200 world gives 4 world units per cell on both axes
func newTestScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	t.Cleanup(screen.Fini)
	screen.SetSize(80, 50)
	return screen
}

func newScene() *engine.BaseScene {
	s := engine.NewBaseScene("test")
	return &s
}

func cellRune(screen tcell.Screen, col, row int) rune {
	r, _, _, _ := screen.GetContent(col, row)
	return r
}

func cellBackground(screen tcell.Screen, col, row int) tcell.Color {
	_, _, style, _ := screen.GetContent(col, row)
	_, bg, _ := style.Decompose()
	return bg
}

func TestCanvasMapping(t *testing.T) {
	c := NewCanvas(newTestScreen(t), 320, 200)

	sx, sy := c.Scale()
	require.InDelta(t, 0.25, sx, 1e-12)
	require.InDelta(t, 0.25, sy, 1e-12)

	col, row := c.ToCell(40, 41)
	assert.Equal(t, 10, col)
	assert.Equal(t, 10, row)

	c.SetOffset(vmath.V2(40, 0))
	col, _ = c.ToCell(40, 41)
	assert.Equal(t, 0, col)
}

func TestBoxPluginFills(t *testing.T) {
	screen := newTestScreen(t)
	r := NewDefaultRenderer(screen, 320, 200)
	ctx := engine.NewGameContext(nil, 320, 200)

	s := newScene()
	red := engine.RGB(0xFF, 0, 0)
	s.Add(engine.NewEntity("box").At(40, 40).Size(16, 16).WithStyle(red, engine.ColorNone).MustBuild())

	r.Render(ctx, s)

	assert.Equal(t, TcellColor(red), cellBackground(screen, 10, 10))
	assert.Equal(t, TcellColor(red), cellBackground(screen, 13, 13))
	assert.NotEqual(t, TcellColor(red), cellBackground(screen, 14, 10))
}

func TestWorldLayerFollowsCamera(t *testing.T) {
	screen := newTestScreen(t)
	r := NewDefaultRenderer(screen, 320, 200)
	ctx := engine.NewGameContext(nil, 320, 200)

	s := newScene()
	player := engine.NewEntity("player").At(100, 40).Size(16, 16).AsText("P", engine.ColorNone).MustBuild()
	hud := engine.NewEntity("hud").At(0, 8).AsText("HUD", engine.ColorNone).StickToCamera().MustBuild()
	cam, err := engine.NewCamera("cam", player, 1, vmath.NewRect(60, 0, 320, 200))
	require.NoError(t, err)
	s.Add(player)
	s.Add(hud)
	s.SetCamera(cam)

	r.Render(ctx, s)

	// World entity translated by the viewport origin, HUD untouched
	assert.Equal(t, 'P', cellRune(screen, 10, 10))
	assert.Equal(t, 'H', cellRune(screen, 0, 2))
}

func TestTextShadow(t *testing.T) {
	screen := newTestScreen(t)
	r := NewDefaultRenderer(screen, 320, 200)
	ctx := engine.NewGameContext(nil, 320, 200)

	s := newScene()
	s.Add(engine.NewEntity("title").At(0, 0).AsText("AB", engine.ColorGray).MustBuild())
	r.Render(ctx, s)

	assert.Equal(t, 'A', cellRune(screen, 0, 0))
	assert.Equal(t, 'B', cellRune(screen, 1, 0))
	assert.Equal(t, 'B', cellRune(screen, 2, 1))
}

func TestUnhandledKindReportedOnce(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	ctx := engine.NewGameContext(log.FromZap(zap.New(core)), 320, 200)

	r := NewRenderer(newTestScreen(t), 320, 200)
	r.Register(WorldLayer{}, PriorityWorld)

	s := newScene()
	for _, name := range []string{"a", "b"} {
		e := engine.NewEntity(name).MustBuild()
		e.Kind = engine.KindImage
		s.Add(e)
	}

	r.Render(ctx, s)
	r.Render(ctx, s)

	entries := logs.FilterMessage("entity kind not drawn").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "image", entries[0].ContextMap()["kind"])
}

type traceLayer struct {
	name  string
	trace *[]string
}

func (l traceLayer) Render(RenderContext) { *l.trace = append(*l.trace, l.name) }

type hiddenLayer struct{ traceLayer }

func (hiddenLayer) IsVisible(*engine.GameContext) bool { return false }

func TestLayerOrder(t *testing.T) {
	var trace []string
	r := NewRenderer(newTestScreen(t), 320, 200)
	r.Register(traceLayer{"stats", &trace}, PriorityStats)
	r.Register(traceLayer{"world", &trace}, PriorityWorld)
	r.Register(traceLayer{"world2", &trace}, PriorityWorld)
	r.Register(hiddenLayer{traceLayer{"hidden", &trace}}, PriorityBackground)
	r.Register(traceLayer{"hud", &trace}, PriorityHUD)

	r.Render(engine.NewGameContext(nil, 320, 200), newScene())

	require.Equal(t, []string{"world", "world2", "hud", "stats"}, trace)
}

func TestStatsLayerFollowsDebugLevel(t *testing.T) {
	screen := newTestScreen(t)
	r := NewDefaultRenderer(screen, 320, 200)
	ctx := engine.NewGameContext(nil, 320, 200)
	s := newScene()

	r.Render(ctx, s)
	assert.Equal(t, ' ', cellRune(screen, 0, 0))

	ctx.SetDebug(1)
	r.Render(ctx, s)
	assert.Equal(t, '[', cellRune(screen, 0, 0))
}

func TestDebugLayerDrawsVelocity(t *testing.T) {
	screen := newTestScreen(t)
	r := NewDefaultRenderer(screen, 320, 200)
	ctx := engine.NewGameContext(nil, 320, 200)
	ctx.SetDebug(2)

	s := newScene()
	s.Add(engine.NewEntity("mover").At(100, 100).Size(8, 8).WithVelocity(0.4, 0).WithStyle(engine.ColorNone, engine.ColorNone).MustBuild())
	r.Render(ctx, s)

	// Center (104,104) to (144,104): cells 26..36 on row 26
	assert.Equal(t, '·', cellRune(screen, 36, 26))
	assert.Equal(t, tcell.RuneULCorner, cellRune(screen, 25, 25))
}
