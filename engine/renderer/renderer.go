package renderer

import (
	"fmt"
	"strings"

	"github.com/spaghettifunk/ray/engine/config"
	"github.com/spaghettifunk/ray/engine/core"
	"github.com/spaghettifunk/ray/engine/renderer/gl"
	"github.com/spaghettifunk/ray/engine/renderer/metadata"
	"github.com/spaghettifunk/ray/engine/renderer/opengl"
)

type RendererType uint8

const (
	OpenGLCore RendererType = iota
	OpenGLES2
	OpenGLES3
)

func (t RendererType) String() string {
	switch t {
	case OpenGLCore:
		return "opengl"
	case OpenGLES2:
		return "gles2"
	case OpenGLES3:
		return "gles3"
	}
	return "unknown"
}

func ParseRendererType(s string) (RendererType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "opengl", "gl", "core":
		return OpenGLCore, nil
	case "gles2", "es2":
		return OpenGLES2, nil
	case "gles3", "es3":
		return OpenGLES3, nil
	}
	return 0, fmt.Errorf("renderer type '%s': %w", s, core.ErrUnsupported)
}

// Renderer owns the device of the active backend together with the
// swapchain and the context bound to the window.
type Renderer struct {
	backend   Backend
	device    metadata.GraphicsDevice
	swapchain metadata.GraphicsSwapchain
	context   metadata.GraphicsContext
}

// NewGraphicsDevice loads the GL entry points of the context current on
// the calling thread and wraps them in a device of the given type.
func NewGraphicsDevice(t RendererType, debug bool, load gl.ProcAddressFunc) (metadata.GraphicsDevice, error) {
	fns, err := gl.Load(load)
	if err != nil {
		err = fmt.Errorf("failed to load %s entry points: %w", t, err)
		core.LogError(err.Error())
		return nil, err
	}
	return openDevice(t, debug, fns)
}

func openDevice(t RendererType, debug bool, fns gl.Functions) (metadata.GraphicsDevice, error) {
	backend, err := LookupBackend(t, debug)
	if err != nil {
		return nil, err
	}
	return opengl.NewDevice(metadata.DeviceDesc{Type: backend.Device, Debug: debug}, fns)
}

// Initialize builds device, swapchain and context on canvas. The canvas
// context must already be current.
func Initialize(cfg config.RendererConfig, canvas metadata.Canvas, load gl.ProcAddressFunc) (*Renderer, error) {
	t, err := ParseRendererType(cfg.Type)
	if err != nil {
		core.LogError(err.Error())
		return nil, err
	}
	fns, err := gl.Load(load)
	if err != nil {
		err = fmt.Errorf("failed to load %s entry points: %w", t, err)
		core.LogError(err.Error())
		return nil, err
	}
	return initialize(t, cfg, canvas, fns)
}

func initialize(t RendererType, cfg config.RendererConfig, canvas metadata.Canvas, fns gl.Functions) (*Renderer, error) {
	backend, err := LookupBackend(t, cfg.Debug)
	if err != nil {
		return nil, err
	}
	device, err := openDevice(t, cfg.Debug, fns)
	if err != nil {
		return nil, err
	}

	swapchain, err := device.CreateSwapchain(metadata.SwapchainDesc{
		Canvas:      canvas,
		Interval:    metadata.SwapInterval(cfg.SwapInterval),
		ColorFormat: metadata.TextureFormatR8G8B8A8,
		DepthFormat: metadata.TextureFormatDepth24Stencil8,
	})
	if err != nil {
		device.Close()
		return nil, err
	}

	context, err := device.CreateDeviceContext(metadata.ContextDesc{Swapchain: swapchain})
	if err != nil {
		swapchain.Close()
		device.Close()
		return nil, err
	}
	context.SetWireframe(cfg.Wireframe)

	core.LogInfo("renderer: %s backend ready", t)
	return &Renderer{
		backend:   backend,
		device:    device,
		swapchain: swapchain,
		context:   context,
	}, nil
}

func (r *Renderer) Backend() Backend {
	return r.backend
}

func (r *Renderer) Device() metadata.GraphicsDevice {
	return r.device
}

func (r *Renderer) Swapchain() metadata.GraphicsSwapchain {
	return r.swapchain
}

func (r *Renderer) Context() metadata.GraphicsContext {
	return r.context
}

// OnResize records the new window size on the swapchain.
func (r *Renderer) OnResize(width, height uint32) {
	r.swapchain.SetWindowResolution(width, height)
}

func (r *Renderer) Shutdown() error {
	r.context.Close()
	r.swapchain.Close()
	r.device.Close()
	return nil
}
