package systems

import (
	"image/color"
	"testing"
	"time"

	"github.com/spaghettifunk/ray/engine/core"
	"github.com/spaghettifunk/ray/engine/renderer/metadata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	red   = color.NRGBA{R: 255, A: 255}
	green = color.NRGBA{G: 255, A: 255}
	blue  = color.NRGBA{B: 255, A: 255}
	white = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
)

func TestDecodeImageFlipsRows(t *testing.T) {
	data := encodePNG(t, 2, 2, func(x, y int) color.NRGBA {
		return [2][2]color.NRGBA{{red, green}, {blue, white}}[y][x]
	})

	desc, err := DecodeImage(data, 0)
	require.NoError(t, err)
	assert.Equal(t, uint32(2), desc.Width)
	assert.Equal(t, uint32(2), desc.Height)
	assert.Equal(t, metadata.TextureFormatR8G8B8A8, desc.Format)
	assert.Equal(t, uint32(2), desc.MipLevel)
	assert.NotZero(t, desc.Flags&metadata.TextureFlagMipmap)

	// the bottom row of the image comes first
	assert.Equal(t, []byte{
		0, 0, 255, 255, 255, 255, 255, 255,
		255, 0, 0, 255, 0, 255, 0, 255,
	}, desc.Stream)
}

func TestDecodeImageScalesDown(t *testing.T) {
	data := encodePNG(t, 64, 32, solid(green))

	desc, err := DecodeImage(data, 16)
	require.NoError(t, err)
	assert.Equal(t, uint32(16), desc.Width)
	assert.Equal(t, uint32(8), desc.Height)
	assert.Equal(t, uint32(5), desc.MipLevel)
	require.Len(t, desc.Stream, 16*8*4)
	// resampling a flat color may round by one
	assert.InDelta(t, 0, desc.Stream[0], 1)
	assert.InDelta(t, 255, desc.Stream[1], 1)
	assert.InDelta(t, 255, desc.Stream[3], 1)
}

func TestDecodeImageRejectsGarbage(t *testing.T) {
	_, err := DecodeImage([]byte("not an image"), 0)
	assert.ErrorIs(t, err, core.ErrInvalidDesc)
}

func TestDefaultTextureDesc(t *testing.T) {
	desc := DefaultTextureDesc()
	assert.Equal(t, uint32(256), desc.Width)
	require.Len(t, desc.Stream, 256*256*4)
	// white tile at the origin, blue tile next to it
	assert.Equal(t, []byte{255, 255, 255, 255}, desc.Stream[:4])
	assert.Equal(t, []byte{0, 0, 255, 255}, desc.Stream[8*4:8*4+4])
}

func newTextureSystem(t *testing.T, limit uint32, files *memAssets, js *JobSystem) *TextureSystem {
	t.Helper()
	ts, err := NewTextureSystem(&TextureSystemConfig{MaxTextureCount: limit}, newDevice(t, newRecorder()), files, js)
	require.NoError(t, err)
	require.NoError(t, ts.Initialize())
	t.Cleanup(func() { _ = ts.Shutdown() })
	return ts
}

func TestTextureAcquireRelease(t *testing.T) {
	files := newMemAssets(nil)
	files.Put("textures/crate.png", encodePNG(t, 4, 4, solid(red)))
	ts := newTextureSystem(t, 8, files, nil)

	def, err := ts.Acquire(DefaultTextureName, true)
	require.NoError(t, err)
	assert.Same(t, ts.GetDefaultTexture(), def)
	assert.Equal(t, 0, ts.Count())

	first, err := ts.Acquire("textures/crate.png", true)
	require.NoError(t, err)
	second, err := ts.Acquire("./textures/crate.png", true)
	require.NoError(t, err)
	assert.Same(t, first, second)
	assert.Equal(t, 1, ts.Count())
	assert.Equal(t, 1, files.reads["textures/crate.png"])
	assert.Equal(t, uint32(4), first.Desc().Width)

	ts.Release("textures/crate.png")
	_, ok := ts.Get("textures/crate.png")
	assert.True(t, ok)
	ts.Release("textures/crate.png")
	_, ok = ts.Get("textures/crate.png")
	assert.False(t, ok)
	assert.Equal(t, 0, ts.Count())
}

func TestTextureWithoutAutoReleaseStays(t *testing.T) {
	files := newMemAssets(nil)
	files.Put("ui.png", encodePNG(t, 2, 2, solid(white)))
	ts := newTextureSystem(t, 8, files, nil)

	_, err := ts.Acquire("ui.png", false)
	require.NoError(t, err)
	ts.Release("ui.png")
	assert.Equal(t, 1, ts.Count())
}

func TestTexturePoolExhausted(t *testing.T) {
	files := newMemAssets(nil)
	files.Put("a.png", encodePNG(t, 2, 2, solid(red)))
	files.Put("b.png", encodePNG(t, 2, 2, solid(blue)))
	ts := newTextureSystem(t, 1, files, nil)

	_, err := ts.Acquire("missing.png", true)
	assert.Error(t, err)
	assert.Equal(t, 0, ts.Count())

	// the failed load gave its slot back
	_, err = ts.Acquire("a.png", true)
	require.NoError(t, err)
	_, err = ts.Acquire("b.png", true)
	assert.ErrorIs(t, err, core.ErrPoolExhausted)
}

func TestTextureWrap(t *testing.T) {
	ts := newTextureSystem(t, 8, newMemAssets(nil), nil)
	texture, err := ts.device.CreateTexture(metadata.NewTextureDesc(8, 8, metadata.TextureDim2D, metadata.TextureFormatR8G8B8A8))
	require.NoError(t, err)

	name, err := ts.Wrap("", texture)
	require.NoError(t, err)
	assert.Contains(t, name, "tex:")
	got, ok := ts.Get(name)
	require.True(t, ok)
	assert.Same(t, texture, got)

	_, err = ts.Wrap(name, texture)
	assert.ErrorIs(t, err, core.ErrDuplicateSlot)

	ts.Release(name)
	assert.Equal(t, 0, ts.Count())
}

func TestTextureReloadInline(t *testing.T) {
	files := newMemAssets(nil)
	files.Put("textures/crate.png", encodePNG(t, 4, 4, solid(red)))
	ts := newTextureSystem(t, 8, files, nil)

	var reloaded []string
	ts.OnReload(func(name string, texture metadata.GraphicsTexture) {
		reloaded = append(reloaded, name)
	})

	old, err := ts.Acquire("textures/crate.png", true)
	require.NoError(t, err)
	files.Put("textures/crate.png", encodePNG(t, 8, 2, solid(blue)))
	ts.Reload("textures/crate.png")

	assert.Equal(t, uint32(1), ts.Generation("textures/crate.png"))
	assert.Equal(t, []string{"textures/crate.png"}, reloaded)
	current, ok := ts.Get("textures/crate.png")
	require.True(t, ok)
	assert.NotSame(t, old, current)
	assert.Equal(t, uint32(8), current.Desc().Width)
	assert.Zero(t, old.InstanceID())

	// a broken file keeps the loaded texture
	files.Put("textures/crate.png", []byte("garbage"))
	ts.Reload("textures/crate.png")
	assert.Equal(t, uint32(1), ts.Generation("textures/crate.png"))

	// unknown textures are ignored
	ts.Reload("textures/other.png")
	assert.Len(t, reloaded, 1)
}

func TestTextureReloadOnJobSystem(t *testing.T) {
	js, err := NewJobSystem(2, 4)
	require.NoError(t, err)
	t.Cleanup(func() { _ = js.Shutdown() })

	files := newMemAssets(nil)
	files.Put("sky.png", encodePNG(t, 2, 2, solid(white)))
	ts := newTextureSystem(t, 8, files, js)
	_, err = ts.Acquire("sky.png", true)
	require.NoError(t, err)

	files.Put("sky.png", encodePNG(t, 4, 4, solid(blue)))
	ts.Reload("sky.png")
	require.Eventually(t, func() bool {
		js.Update()
		return ts.Generation("sky.png") == 1
	}, time.Second, time.Millisecond)

	current, _ := ts.Get("sky.png")
	assert.Equal(t, uint32(4), current.Desc().Width)
}
