package opengl_test

import (
	"runtime"
	"testing"

	"github.com/spaghettifunk/ray/engine/renderer/gl/gltest"
	"github.com/spaghettifunk/ray/engine/renderer/metadata"
	"github.com/spaghettifunk/ray/engine/renderer/opengl"
	"github.com/stretchr/testify/require"
)

// newDevice creates a device over r and clears the calls made while
// probing the context. The device stays reachable until the test ends.
func newDevice(t *testing.T, typ metadata.DeviceType, r *gltest.Recorder) *opengl.Device {
	t.Helper()
	device, err := opengl.NewDevice(metadata.DeviceDesc{Type: typ}, r)
	require.NoError(t, err)
	t.Cleanup(func() { runtime.KeepAlive(device) })
	r.Reset()
	return device
}

type fakeCanvas struct {
	current  int
	swaps    int
	interval int
}

func (c *fakeCanvas) MakeContextCurrent()              { c.current++ }
func (c *fakeCanvas) SwapBuffers()                     { c.swaps++ }
func (c *fakeCanvas) SetSwapInterval(interval int)     { c.interval = interval }
func (c *fakeCanvas) FramebufferSize() (int, int)      { return 1280, 720 }
func (c *fakeCanvas) ContentScale() (float32, float32) { return 2, 2 }

// argsOf returns the arguments of every call named name.
func argsOf(r *gltest.Recorder, name string) [][]any {
	var out [][]any
	for _, c := range r.Calls(name) {
		out = append(out, c.Args)
	}
	return out
}
