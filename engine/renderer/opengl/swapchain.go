package opengl

import (
	"fmt"

	"github.com/spaghettifunk/ray/engine/core"
	"github.com/spaghettifunk/ray/engine/renderer/metadata"
)

// Swapchain presents to a canvas. The canvas owns the native context and
// its default framebuffer.
type Swapchain struct {
	deviceRef
	desc   metadata.SwapchainDesc
	active bool
}

var _ metadata.GraphicsSwapchain = (*Swapchain)(nil)

func NewSwapchain(device *Device, desc metadata.SwapchainDesc) (*Swapchain, error) {
	if desc.Canvas == nil {
		err := fmt.Errorf("swapchain: missing canvas: %w", core.ErrInvalidDesc)
		core.LogError(err.Error())
		return nil, err
	}
	if desc.Width == 0 || desc.Height == 0 {
		w, h := desc.Canvas.FramebufferSize()
		desc.Width, desc.Height = uint32(w), uint32(h)
	}
	s := &Swapchain{deviceRef: device.ref(), desc: desc}
	desc.Canvas.SetSwapInterval(int(desc.Interval))
	return s, nil
}

func (s *Swapchain) Close() {
	s.active = false
}

func (s *Swapchain) Desc() metadata.SwapchainDesc {
	return s.desc
}

// SetActive makes the canvas context current on the calling thread.
func (s *Swapchain) SetActive(active bool) {
	if active && !s.active {
		s.desc.Canvas.MakeContextCurrent()
	}
	s.active = active
}

func (s *Swapchain) Active() bool {
	return s.active
}

func (s *Swapchain) SetSwapInterval(interval metadata.SwapInterval) {
	if s.desc.Interval == interval {
		return
	}
	s.desc.Interval = interval
	s.desc.Canvas.SetSwapInterval(int(interval))
}

func (s *Swapchain) SwapInterval() metadata.SwapInterval {
	return s.desc.Interval
}

func (s *Swapchain) SetWindowResolution(width, height uint32) {
	s.desc.Width, s.desc.Height = width, height
}

func (s *Swapchain) WindowResolution() (uint32, uint32) {
	return s.desc.Width, s.desc.Height
}

func (s *Swapchain) FramebufferScale() (float32, float32) {
	return s.desc.Canvas.ContentScale()
}

func (s *Swapchain) Present() {
	s.desc.Canvas.SwapBuffers()
}
