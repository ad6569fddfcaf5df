package engine

import (
	"github.com/spaghettifunk/ray/engine/systems"
)

type Game struct {
	ApplicationConfig *ApplicationConfig
	SystemManager     *systems.SystemManager
	State             interface{}
	FnInitialize      Initialize
	FnUpdate          Update
	FnRender          Render
	FnOnResize        OnResize
	FnShutdown        Shutdown
}

type Initialize func() error
type Update func(deltaTime float64) error

// Render fills the scene drawn this frame. The scene is empty on entry.
type Render func(scene *systems.RenderScene, deltaTime float64) error
type OnResize func(width uint32, height uint32) error
type Shutdown func() error
