package platform

import (
	"fmt"
	"runtime"
	"time"
	"unsafe"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/spaghettifunk/ray/engine/core"
	"github.com/spaghettifunk/ray/engine/renderer/metadata"
)

var startTime float64 = 0

func init() {
	// GLFW event handling and every GL call must run on the main OS thread
	runtime.LockOSThread()
}

type ClientAPI uint8

const (
	ClientAPIOpenGL ClientAPI = iota
	ClientAPIOpenGLES
)

// ContextHints select the native context the window is created with.
type ContextHints struct {
	API   ClientAPI
	Major int
	Minor int
	// Core requests a forward-compatible core profile. Ignored for ES.
	Core  bool
	Debug bool
}

type WindowConfig struct {
	Title     string
	PosX      uint32
	PosY      uint32
	Width     uint32
	Height    uint32
	Resizable bool
}

// ResizeFunc is called from PumpMessages with the new framebuffer size.
type ResizeFunc func(width, height uint32)

type Platform struct {
	Window   *glfw.Window
	onResize ResizeFunc
}

var _ metadata.Canvas = (*Platform)(nil)

func New() *Platform {
	return &Platform{
		Window: nil,
	}
}

func (p *Platform) Startup(config WindowConfig, hints ContextHints) error {
	if err := glfw.Init(); err != nil {
		err = fmt.Errorf("failed to initialize glfw: %w", err)
		core.LogError(err.Error())
		return err
	}

	glfw.WindowHint(glfw.Visible, glfw.False)
	glfw.WindowHint(glfw.Resizable, glfwBool(config.Resizable))
	applyContextHints(hints)

	window, err := glfw.CreateWindow(int(config.Width), int(config.Height), config.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		err = fmt.Errorf("failed to create window with %s %d.%d context: %w", hints.API, hints.Major, hints.Minor, err)
		core.LogError(err.Error())
		return err
	}
	p.Window = window
	p.Window.MakeContextCurrent()

	p.Window.SetFramebufferSizeCallback(p.framebufferSizeCallback)
	p.Window.SetKeyCallback(keyCallback)
	p.Window.SetPos(int(config.PosX), int(config.PosY))
	p.Window.Show()

	startTime = glfw.GetTime()

	core.LogInfo("window '%s' %dx%d created", config.Title, config.Width, config.Height)
	return nil
}

func applyContextHints(hints ContextHints) {
	if hints.API == ClientAPIOpenGLES {
		glfw.WindowHint(glfw.ClientAPI, glfw.OpenGLESAPI)
	} else {
		glfw.WindowHint(glfw.ClientAPI, glfw.OpenGLAPI)
		if hints.Core {
			glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
			glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
		}
	}
	glfw.WindowHint(glfw.ContextVersionMajor, hints.Major)
	glfw.WindowHint(glfw.ContextVersionMinor, hints.Minor)
	glfw.WindowHint(glfw.OpenGLDebugContext, glfwBool(hints.Debug))
}

func (p *Platform) Shutdown() error {
	if p.Window != nil {
		p.Window.Destroy()
		p.Window = nil
	}
	glfw.Terminate()
	return nil
}

// PumpMessages processes pending window events. It returns false once the
// window was asked to close.
func (p *Platform) PumpMessages() bool {
	glfw.PollEvents()
	return p.Window != nil && !p.Window.ShouldClose()
}

func (p *Platform) SetResizeCallback(fn ResizeFunc) {
	p.onResize = fn
}

// ProcAddress resolves GL entry points for the current context.
func (p *Platform) ProcAddress(name string) unsafe.Pointer {
	return glfw.GetProcAddress(name)
}

func (p *Platform) MakeContextCurrent() {
	p.Window.MakeContextCurrent()
}

func (p *Platform) SwapBuffers() {
	p.Window.SwapBuffers()
}

func (p *Platform) SetSwapInterval(interval int) {
	glfw.SwapInterval(interval)
}

func (p *Platform) FramebufferSize() (int, int) {
	return p.Window.GetFramebufferSize()
}

func (p *Platform) ContentScale() (float32, float32) {
	return p.Window.GetContentScale()
}

func (p *Platform) Close() {
	p.Window.SetShouldClose(true)
}

// GetAbsoluteTime returns seconds since the window was created.
func GetAbsoluteTime() float64 {
	return glfw.GetTime() - startTime
}

func Sleep(ms float64) {
	time.Sleep(time.Duration(ms * float64(time.Millisecond)))
}

func (p *Platform) framebufferSizeCallback(w *glfw.Window, width, height int) {
	if p.onResize != nil {
		p.onResize(uint32(width), uint32(height))
	}
}

func keyCallback(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	if key == glfw.KeyEscape && action == glfw.Press {
		w.SetShouldClose(true)
	}
}

func glfwBool(b bool) int {
	if b {
		return glfw.True
	}
	return glfw.False
}

func (a ClientAPI) String() string {
	if a == ClientAPIOpenGLES {
		return "OpenGL ES"
	}
	return "OpenGL"
}
