package renderer

import (
	"testing"

	"github.com/spaghettifunk/ray/engine/config"
	"github.com/spaghettifunk/ray/engine/core"
	"github.com/spaghettifunk/ray/engine/platform"
	"github.com/spaghettifunk/ray/engine/renderer/gl/gltest"
	"github.com/spaghettifunk/ray/engine/renderer/metadata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCanvas struct {
	current  int
	interval int
}

func (c *fakeCanvas) MakeContextCurrent()              { c.current++ }
func (c *fakeCanvas) SwapBuffers()                     {}
func (c *fakeCanvas) SetSwapInterval(interval int)     { c.interval = interval }
func (c *fakeCanvas) FramebufferSize() (int, int)      { return 800, 600 }
func (c *fakeCanvas) ContentScale() (float32, float32) { return 1, 1 }

func TestParseRendererType(t *testing.T) {
	cases := map[string]RendererType{
		"":       OpenGLCore,
		"OpenGL": OpenGLCore,
		"gles2":  OpenGLES2,
		" es3 ":  OpenGLES3,
	}
	for in, want := range cases {
		got, err := ParseRendererType(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseRendererType("vulkan")
	assert.ErrorIs(t, err, core.ErrUnsupported)
}

func TestRendererTypeStringRoundTrip(t *testing.T) {
	for _, typ := range []RendererType{OpenGLCore, OpenGLES2, OpenGLES3} {
		got, err := ParseRendererType(typ.String())
		require.NoError(t, err)
		assert.Equal(t, typ, got)
	}
}

func TestLookupBackend(t *testing.T) {
	b, err := LookupBackend(OpenGLES2, true)
	require.NoError(t, err)
	assert.Equal(t, metadata.DeviceTypeOpenGLES2, b.Device)
	assert.Equal(t, platform.ClientAPIOpenGLES, b.Hints.API)
	assert.Equal(t, 2, b.Hints.Major)
	assert.True(t, b.Hints.Debug)

	b, err = LookupBackend(OpenGLCore, false)
	require.NoError(t, err)
	assert.True(t, b.Hints.Core)
	assert.False(t, b.Hints.Debug)

	_, err = LookupBackend(RendererType(42), false)
	assert.ErrorIs(t, err, core.ErrUnsupported)
}

func TestOpenDeviceChecksProfile(t *testing.T) {
	device, err := openDevice(OpenGLCore, false, gltest.NewRecorder())
	require.NoError(t, err)
	assert.Equal(t, metadata.DeviceTypeOpenGLCore, device.Desc().Type)

	// a desktop context cannot back an ES device
	_, err = openDevice(OpenGLES2, false, gltest.NewRecorder())
	assert.ErrorIs(t, err, core.ErrUnsupported)

	device, err = openDevice(OpenGLES2, false, gltest.NewES2Recorder())
	require.NoError(t, err)
	assert.Equal(t, uint32(1), device.Properties().MaxViewports)
}

func TestInitialize(t *testing.T) {
	canvas := &fakeCanvas{}
	cfg := config.Default().Renderer
	cfg.Wireframe = true

	r, err := initialize(OpenGLES3, cfg, canvas, gltest.NewES3Recorder())
	require.NoError(t, err)
	defer r.Shutdown()

	assert.Equal(t, OpenGLES3, r.Backend().Type)
	assert.Equal(t, 1, canvas.interval)
	assert.Equal(t, 1, canvas.current)
	assert.True(t, r.Context().IsOpen())
	assert.True(t, r.Context().Wireframe())

	w, h := r.Swapchain().WindowResolution()
	assert.Equal(t, uint32(800), w)
	assert.Equal(t, uint32(600), h)

	r.OnResize(1024, 768)
	w, h = r.Swapchain().WindowResolution()
	assert.Equal(t, uint32(1024), w)
	assert.Equal(t, uint32(768), h)
}
