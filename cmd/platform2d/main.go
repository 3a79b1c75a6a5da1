package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/profile"

	"github.com/lixenwraith/platform2d/asset"
	"github.com/lixenwraith/platform2d/audio"
	"github.com/lixenwraith/platform2d/config"
	"github.com/lixenwraith/platform2d/core"
	"github.com/lixenwraith/platform2d/demo"
	"github.com/lixenwraith/platform2d/engine"
	"github.com/lixenwraith/platform2d/input"
	"github.com/lixenwraith/platform2d/log"
	"github.com/lixenwraith/platform2d/manifest"
	"github.com/lixenwraith/platform2d/parameter"
	"github.com/lixenwraith/platform2d/render"
	"github.com/lixenwraith/platform2d/telemetry"
)

// testModeFrames bounds a test mode run, the screen is simulated
const testModeFrames = 300

// tone is a synthesized fallback for a sound without a configured file
type tone struct {
	freq float64
	dur  time.Duration
}

var defaultTones = map[string]tone{
	demo.SoundClic: {parameter.ToneClicHz, parameter.ToneClicDur},
	demo.SoundTic:  {parameter.ToneTicHz, parameter.ToneTicDur},
	demo.SoundToc:  {parameter.ToneTocHz, parameter.ToneTocDur},
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	cfg, warnings, err := config.Resolve(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "platform2d: %v\n", err)
		return 2
	}

	switch cfg.Profile {
	case config.ProfileCPU:
		defer profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	case config.ProfileMem:
		defer profile.Start(profile.MemProfileAllocs, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	}

	var paths []string
	if cfg.LogFile != "" {
		paths = append(paths, cfg.LogFile)
	}
	logger, err := log.New(log.LevelFromDebug(cfg.Debug), paths...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "platform2d: logger: %v\n", err)
		return 1
	}
	defer logger.Sync()
	for _, w := range warnings {
		logger.Warn("configuration", log.String("warning", w))
	}

	screen, err := newScreen(cfg.TestMode)
	if err != nil {
		logger.Error("terminal init failed", log.Err(err))
		return 1
	}
	core.SetCrashTerminal(screen)
	defer screen.Fini()

	if err := runGame(cfg, logger, screen); err != nil {
		logger.Error("game stopped", log.Err(err))
		return 1
	}
	return 0
}

func newScreen(test bool) (tcell.Screen, error) {
	if test {
		sim := tcell.NewSimulationScreen("UTF-8")
		if err := sim.Init(); err != nil {
			return nil, err
		}
		sim.SetSize(80, 25)
		return sim, nil
	}
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	return screen, nil
}

func runGame(cfg *config.Config, logger *log.Logger, screen tcell.Screen) error {
	w, h := float64(cfg.Buffer.W), float64(cfg.Buffer.H)
	ctx := engine.NewGameContext(logger, w, h)
	ctx.SetDebug(cfg.Debug)
	ctx.DebugFilter = cfg.DebugFilter

	keys := input.NewKeyboard(0)
	ctx.Keys = keys

	sounds := audio.NewSoundManager(logger)
	if cfg.Audio.Enabled && !cfg.TestMode {
		if err := sounds.Init(cfg.Audio.SampleRate); err != nil {
			logger.Warn("audio disabled", log.Err(err))
		}
	}
	loadSounds(sounds, cfg, logger)
	defer sounds.Close()
	ctx.Sounds = sounds

	assets := asset.NewCache(cfg.AssetRoot)
	defer assets.Close()
	ctx.Assets = assets

	manifest.RegisterAll()
	if err := ctx.Scenes.LoadRegistered(cfg.Scenes); err != nil {
		return err
	}
	defer ctx.Scenes.DisposeAll()

	renderer := render.NewRenderer(screen, w, h)
	if err := renderer.LoadRegistered(ctx); err != nil {
		return err
	}
	renderers := engine.Renderers{renderer}

	if cfg.Telemetry.Addr != "" {
		feed := telemetry.NewFeed(logger, cfg.Telemetry.Every, w, h)
		srv := &http.Server{Addr: cfg.Telemetry.Addr, Handler: feed}
		core.Go(func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("telemetry server failed", log.Err(err))
			}
		})
		defer srv.Close()
		defer feed.Close()
		renderers = append(renderers, feed)
		logger.Info("telemetry listening", log.String("addr", cfg.Telemetry.Addr), log.String("session", feed.Session()))
	}

	logger.Info("starting",
		log.String("buffer", cfg.Buffer.String()),
		log.String("window", cfg.Window.String()),
		log.Any("scenes", cfg.Scenes),
		log.Int("workers", cfg.Workers),
	)
	if err := ctx.Scenes.Activate(cfg.DefaultScene); err != nil {
		return err
	}

	game := &engine.Game{
		Ctx:          ctx,
		Stepper:      engine.Stepper{Workers: cfg.Workers},
		Renderer:     renderers,
		DefaultScene: cfg.DefaultScene,
	}

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if cfg.TestMode {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithCancel(runCtx)
		defer cancel()
		game.Renderer = engine.Renderers{renderers, frameLimit(testModeFrames, cancel)}
	}

	core.Go(func() { pollEvents(screen, keys, stop) })

	loop := engine.NewLoop(ctx, game, nil, nil)
	return loop.Run(runCtx)
}

// loadSounds loads configured files and synthesizes the missing demo sounds
func loadSounds(sm *audio.SoundManager, cfg *config.Config, logger log.Log) {
	for name, path := range cfg.Audio.Sounds {
		if !filepath.IsAbs(path) {
			path = filepath.Join(cfg.AssetRoot, path)
		}
		if err := sm.Load(name, path); err != nil {
			logger.Warn("sound not loaded", log.String("sound", name), log.Err(err))
		}
	}
	for name, t := range defaultTones {
		if sm.Len(name) > 0 {
			continue
		}
		if err := sm.Tone(name, t.freq, t.dur); err != nil {
			logger.Warn("tone not created", log.String("sound", name), log.Err(err))
		}
	}
}

// pollEvents feeds the keyboard until the screen is finalized
func pollEvents(screen tcell.Screen, keys *input.Keyboard, stop context.CancelFunc) {
	for {
		ev := screen.PollEvent()
		if ev == nil {
			return
		}
		switch ev := ev.(type) {
		case *tcell.EventResize:
			screen.Sync()
		case *tcell.EventKey:
			if ev.Key() == tcell.KeyCtrlC {
				stop()
				return
			}
			keys.HandleEvent(ev)
		}
	}
}

// frameLimit cancels the run after n drawn frames
func frameLimit(n int64, cancel context.CancelFunc) engine.Renderer {
	return renderFunc(func(ctx *engine.GameContext, _ engine.Scene) {
		if ctx.FrameNumber.Load() >= n {
			cancel()
		}
	})
}

type renderFunc func(ctx *engine.GameContext, s engine.Scene)

func (f renderFunc) Render(ctx *engine.GameContext, s engine.Scene) { f(ctx, s) }
