package engine

import (
	"fmt"
	"sync/atomic"

	"github.com/spaghettifunk/ray/engine/assets"
	"github.com/spaghettifunk/ray/engine/config"
	"github.com/spaghettifunk/ray/engine/core"
	"github.com/spaghettifunk/ray/engine/platform"
	"github.com/spaghettifunk/ray/engine/renderer"
	"github.com/spaghettifunk/ray/engine/systems"
)

type Stage uint8

const (
	// Engine is in an uninitialized state
	EngineStageUninitialized Stage = iota
	// Engine is currently initializing
	EngineStageInitializing
	// Engine initialization is complete
	EngineStageInitialized
	// Engine is currently running
	EngineStageRunning
	// Engine is in the process of shutting down
	EngineStageShuttingDown
)

type Engine struct {
	currentStage  Stage
	gameInstance  *Game
	config        *config.Config
	isRunning     atomic.Bool
	isSuspended   bool
	platform      *platform.Platform
	renderer      *renderer.Renderer
	assetManager  *assets.AssetManager
	systemManager *systems.SystemManager
	scene         *systems.RenderScene
	width         uint32
	height        uint32
	clock         *core.Clock
	lastTime      float64
}

func New(g *Game) (*Engine, error) {
	if g.ApplicationConfig == nil {
		g.ApplicationConfig = &ApplicationConfig{}
	}
	cfg, err := g.ApplicationConfig.Load()
	if err != nil {
		return nil, err
	}
	cfg.Apply()

	e := &Engine{
		currentStage: EngineStageUninitialized,
		gameInstance: g,
		config:       cfg,
		clock:        core.NewClock(),
		platform:     platform.New(),
		assetManager: assets.NewAssetManager(cfg.Assets.Dir),
		scene:        &systems.RenderScene{},
		isSuspended:  false,
		width:        cfg.Window.Width,
		height:       cfg.Window.Height,
		lastTime:     0,
	}
	e.isRunning.Store(true)
	return e, nil
}

func (e *Engine) Initialize() error {
	e.currentStage = EngineStageInitializing

	rendererType, err := renderer.ParseRendererType(e.config.Renderer.Type)
	if err != nil {
		return err
	}
	backend, err := renderer.LookupBackend(rendererType, e.config.Renderer.Debug)
	if err != nil {
		return err
	}

	if err := e.platform.Startup(platform.WindowConfig{
		Title:     e.config.Application.Name,
		PosX:      e.config.Window.PosX,
		PosY:      e.config.Window.PosY,
		Width:     e.config.Window.Width,
		Height:    e.config.Window.Height,
		Resizable: e.config.Window.Resizable,
	}, backend.Hints); err != nil {
		return err
	}
	e.platform.SetResizeCallback(e.onResized)

	if err := e.assetManager.Initialize(e.config.Assets.HotReload); err != nil {
		return err
	}

	r, err := renderer.Initialize(e.config.Renderer, e.platform, e.platform.ProcAddress)
	if err != nil {
		return err
	}
	e.renderer = r

	sm, err := systems.NewSystemManager(r.Device(), e.assetManager)
	if err != nil {
		return err
	}
	if err := sm.Initialize(r.Context(), r.Swapchain(), systems.NewRenderSetting(e.config.Renderer)); err != nil {
		return err
	}
	e.systemManager = sm
	e.gameInstance.SystemManager = sm

	if err := e.gameInstance.FnInitialize(); err != nil {
		return err
	}

	w, h := e.platform.FramebufferSize()
	e.width, e.height = uint32(w), uint32(h)
	if err := e.gameInstance.FnOnResize(e.width, e.height); err != nil {
		return err
	}
	e.currentStage = EngineStageInitialized
	return nil
}

func (e *Engine) Run() error {
	if e.currentStage != EngineStageInitialized {
		return fmt.Errorf("engine run before initialize: %w", core.ErrNotSetup)
	}
	e.currentStage = EngineStageRunning

	e.clock.Start()
	e.clock.Update()
	e.lastTime = e.clock.Elapsed()

	var targetFrameSeconds float64 = 1.0 / 60.0
	limitFrames := e.config.Renderer.SwapInterval == 0
	pipeline := e.systemManager.Pipeline()

	for e.isRunning.Load() {
		if !e.platform.PumpMessages() {
			e.isRunning.Store(false)
			break
		}
		if e.isSuspended {
			platform.Sleep(10)
			continue
		}

		// Update clock and get delta time.
		e.clock.Update()
		currentTime := e.clock.Elapsed()
		delta := currentTime - e.lastTime
		frameStartTime := platform.GetAbsoluteTime()

		e.assetManager.Drain(e.systemManager.OnAssetChange)
		e.systemManager.Update()

		if err := e.gameInstance.FnUpdate(delta); err != nil {
			core.LogError("game update failed, shutting down: %s", err)
			e.isRunning.Store(false)
			break
		}

		e.scene.Clear()
		if err := e.gameInstance.FnRender(e.scene, delta); err != nil {
			core.LogError("game render failed, shutting down: %s", err)
			e.isRunning.Store(false)
			break
		}
		pipeline.Render(e.scene)

		// give the rest of the frame back to the OS when vsync is off
		frameElapsedTime := platform.GetAbsoluteTime() - frameStartTime
		if remaining := targetFrameSeconds - frameElapsedTime; limitFrames && remaining > 0 {
			platform.Sleep(remaining*1000 - 1)
		}

		e.lastTime = currentTime
	}
	return nil
}

func (e *Engine) Shutdown() error {
	e.currentStage = EngineStageShuttingDown
	if e.gameInstance.FnShutdown != nil {
		if err := e.gameInstance.FnShutdown(); err != nil {
			core.LogError(err.Error())
		}
	}
	if e.systemManager != nil {
		if err := e.systemManager.Shutdown(); err != nil {
			return err
		}
	}
	if e.renderer != nil {
		if err := e.renderer.Shutdown(); err != nil {
			return err
		}
	}
	if err := e.assetManager.Shutdown(); err != nil {
		return err
	}
	if err := e.platform.Shutdown(); err != nil {
		return err
	}
	e.currentStage = EngineStageUninitialized
	return nil
}

// Stop asks the main loop to exit after the current frame. Safe to call
// from any goroutine.
func (e *Engine) Stop() {
	e.isRunning.Store(false)
}

// GetFramebufferSize returns the width and height (in this order)
// of the application framebuffer.
func (e *Engine) GetFramebufferSize() (uint32, uint32) {
	return e.width, e.height
}

func (e *Engine) Stage() Stage {
	return e.currentStage
}

func (e *Engine) onResized(width, height uint32) {
	if width == e.width && height == e.height {
		return
	}
	e.width = width
	e.height = height
	core.LogDebug("Window resize: %d, %d", width, height)

	// Handle minimization
	if width == 0 || height == 0 {
		core.LogInfo("Window minimized, suspending application.")
		e.isSuspended = true
		return
	}
	if e.isSuspended {
		core.LogInfo("Window restored, resuming application.")
		e.isSuspended = false
	}
	e.systemManager.Pipeline().SetWindowResolution(width, height)
	if err := e.gameInstance.FnOnResize(width, height); err != nil {
		core.LogError(err.Error())
	}
}
