package metadata

/**
 * @brief The presentable surface a swapchain drives. Implemented by the
 * platform window.
 */
type Canvas interface {
	MakeContextCurrent()
	SwapBuffers()
	SetSwapInterval(interval int)
	FramebufferSize() (int, int)
	ContentScale() (float32, float32)
}

type SwapchainDesc struct {
	Canvas      Canvas
	Width       uint32
	Height      uint32
	Interval    SwapInterval
	ColorFormat TextureFormat
	DepthFormat TextureFormat
}
