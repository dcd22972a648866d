// Package game runs the helium runtime: it owns the world, the scene
// orchestrator and the render loop, and boots the configured scene.
package game

import (
	"context"
	"errors"
	"sync"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"helium/internal/components"
	"helium/internal/config"
	"helium/internal/engine"
	"helium/internal/entrypoints"
	"helium/internal/logging"
	"helium/internal/orchestrator"
	"helium/internal/world"
)

const (
	headlessInterval = 16 * time.Millisecond
	shutdownTimeout  = 5 * time.Second
)

type Game struct {
	cfg    *config.Config
	logger *logging.Logger

	World        *world.World
	Orchestrator *orchestrator.Orchestrator
	DebugMode    bool

	ctx         context.Context
	cancel      context.CancelFunc
	transitions sync.WaitGroup

	// Debug timing (ms)
	updateMs float64
	drawMs   float64
}

func New(cfg *config.Config, logger *logging.Logger) *Game {
	ctx, cancel := context.WithCancel(context.Background())

	reg := engine.NewRegistry()
	components.Register(reg)

	w := world.New(cfg.Scenes.Dir,
		world.WithRegistry(reg),
		world.WithLogger(logger.With("component", "world").Logger),
	)
	o := orchestrator.New(w, orchestrator.WithLogger(logger.With("component", "orchestrator").Logger))
	entrypoints.Register(reg, entrypoints.Deps{
		Orchestrator: o,
		Logger:       logger.With("component", "entrypoint").Logger,
		Context:      ctx,
	})
	logger.Debug("component types registered", "types", reg.Names())

	return &Game{
		cfg:          cfg,
		logger:       logger,
		World:        w,
		Orchestrator: o,
		DebugMode:    cfg.Debug.Overlay,
		ctx:          ctx,
		cancel:       cancel,
	}
}

// Run opens the window and renders until it is closed or ctx ends.
func (g *Game) Run(ctx context.Context) error {
	if g.cfg.Window.HighDPI {
		rl.SetConfigFlags(rl.FlagWindowHighdpi)
	}
	rl.InitWindow(g.cfg.Window.Width, g.cfg.Window.Height, g.cfg.Window.Title)
	defer rl.CloseWindow()
	rl.SetTargetFPS(g.cfg.Window.TargetFPS)
	initOverlayStyle()

	stopWatch := g.watch()
	defer stopWatch()
	g.Boot()

	for !rl.WindowShouldClose() && ctx.Err() == nil {
		g.Update()
		g.Draw()
	}
	return g.shutdown()
}

// RunHeadless drives the world without a window until ctx ends.
func (g *Game) RunHeadless(ctx context.Context) error {
	stopWatch := g.watch()
	defer stopWatch()
	g.Boot()

	g.World.Run(ctx, headlessInterval)
	return g.shutdown()
}

// Boot loads the configured boot scene, replacing anything loaded.
func (g *Game) Boot() {
	ref := engine.SceneRef(g.cfg.Scenes.Boot)
	g.Transition("boot", func(ctx context.Context) error {
		return g.Orchestrator.LoadScene(ctx, orchestrator.LoadSingle, ref, nil)
	})
}

// Transition runs fn on its own goroutine so the render loop keeps pumping
// the world while fn waits for it.
func (g *Game) Transition(name string, fn func(ctx context.Context) error) {
	g.transitions.Add(1)
	go func() {
		defer g.transitions.Done()
		if err := fn(g.ctx); err != nil && !errors.Is(err, context.Canceled) {
			g.logger.Error("scene transition failed", "transition", name, "error", err)
		}
	}()
}

func (g *Game) Update() {
	updateStart := time.Now()
	g.World.Pump()

	if rl.IsKeyPressed(rl.KeyF1) {
		g.DebugMode = !g.DebugMode
	}
	g.World.Update(rl.GetFrameTime())
	g.updateMs = float64(time.Since(updateStart).Microseconds()) / 1000.0
}

func (g *Game) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(rl.NewColor(20, 20, 30, 255))

	drawStart := time.Now()
	g.World.Draw()
	g.drawMs = float64(time.Since(drawStart).Microseconds()) / 1000.0

	if g.DebugMode {
		g.drawOverlay()
	}
	rl.EndDrawing()
}

// shutdown cancels running transitions and pumps the world until pending
// unloads finished, then releases what is left.
func (g *Game) shutdown() error {
	g.cancel()

	done := make(chan error, 1)
	go func() {
		g.transitions.Wait()
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		done <- g.Orchestrator.WaitUnloads(ctx)
	}()

	var err error
	for waiting := true; waiting; {
		select {
		case err = <-done:
			waiting = false
		default:
			g.World.Pump()
			time.Sleep(time.Millisecond)
		}
	}

	g.World.Close()
	g.logger.Info("shutdown complete")
	return err
}
