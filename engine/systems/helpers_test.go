package systems

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"io/fs"
	"runtime"
	"sync"
	"testing"

	"github.com/spaghettifunk/ray/engine/assets"
	"github.com/spaghettifunk/ray/engine/renderer/gl"
	"github.com/spaghettifunk/ray/engine/renderer/gl/gltest"
	"github.com/spaghettifunk/ray/engine/renderer/metadata"
	"github.com/spaghettifunk/ray/engine/renderer/opengl"
	"github.com/stretchr/testify/require"
)

// memAssets serves assets from memory, keyed by resolved path.
type memAssets struct {
	mutex sync.Mutex
	files map[string][]byte
	reads map[string]int
}

func newMemAssets(files map[string]string) *memAssets {
	m := &memAssets{files: map[string][]byte{}, reads: map[string]int{}}
	for name, content := range files {
		m.files[assets.Resolve(name)] = []byte(content)
	}
	return m
}

func (m *memAssets) Put(name string, data []byte) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.files[assets.Resolve(name)] = data
}

func (m *memAssets) ReadFile(name string) ([]byte, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	key := assets.Resolve(name)
	m.reads[key]++
	data, ok := m.files[key]
	if !ok {
		return nil, fs.ErrNotExist
	}
	return data, nil
}

func (m *memAssets) Resolve(name string) string {
	return assets.Resolve(name)
}

// newRecorder reflects the uniforms used by the test materials for every
// linked program.
func newRecorder() *gltest.Recorder {
	r := gltest.NewRecorder()
	r.Uniforms = []gltest.Variable{
		{Name: "texSource", Size: 1, Type: gl.Sampler2D},
		{Name: "fogDensity", Size: 1, Type: gl.Float},
		{Name: "tint", Size: 1, Type: gl.FloatVec4},
		{Name: "model", Size: 1, Type: gl.FloatMat4},
		{Name: "resolution", Size: 1, Type: gl.FloatVec2},
	}
	r.Attributes = []gltest.Variable{
		{Name: "position", Size: 1, Type: gl.FloatVec2},
	}
	return r
}

func newDevice(t *testing.T, r *gltest.Recorder) *opengl.Device {
	t.Helper()
	device, err := opengl.NewDevice(metadata.DeviceDesc{Type: metadata.DeviceTypeOpenGLCore}, r)
	require.NoError(t, err)
	t.Cleanup(func() { runtime.KeepAlive(device) })
	r.Reset()
	return device
}

// encodePNG builds a width x height image colored by fn.
func encodePNG(t *testing.T, width, height int, fn func(x, y int) color.NRGBA) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetNRGBA(x, y, fn(x, y))
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func solid(c color.NRGBA) func(x, y int) color.NRGBA {
	return func(x, y int) color.NRGBA { return c }
}
