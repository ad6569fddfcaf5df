package opengl_test

import (
	"testing"

	"github.com/spaghettifunk/ray/engine/core"
	"github.com/spaghettifunk/ray/engine/renderer/gl"
	"github.com/spaghettifunk/ray/engine/renderer/gl/gltest"
	"github.com/spaghettifunk/ray/engine/renderer/metadata"
	"github.com/spaghettifunk/ray/engine/renderer/opengl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextureRGBA8WithoutMipmap(t *testing.T) {
	r := gltest.NewRecorder()
	device := newDevice(t, metadata.DeviceTypeOpenGLCore, r)

	desc := metadata.NewTextureDesc(256, 256, metadata.TextureDim2D, metadata.TextureFormatR8G8B8A8)
	desc.Stream = make([]byte, 256*256*4)
	tex, err := opengl.NewTexture(device, desc)
	require.NoError(t, err)

	assert.Equal(t, uint32(gl.Texture2D), tex.Target())
	assert.Zero(t, r.Count("GenerateMipmap"))
	assert.Equal(t, 1, r.Count("TexStorage2D"))
	assert.Equal(t, 1, r.Count("TexSubImage2D"))
}

func TestTextureRGBA8WithoutData(t *testing.T) {
	r := gltest.NewRecorder()
	device := newDevice(t, metadata.DeviceTypeOpenGLCore, r)

	tex, err := opengl.NewTexture(device, metadata.NewTextureDesc(256, 256, metadata.TextureDim2D, metadata.TextureFormatR8G8B8A8))
	require.NoError(t, err)

	assert.NotZero(t, tex.InstanceID())
	assert.Equal(t, uint32(gl.Texture2D), tex.Target())
	assert.Equal(t, uint32(1), tex.Desc().MipLevel)
	assert.Equal(t, 1, r.Count("TexStorage2D"))
	assert.Zero(t, r.Count("TexSubImage2D"))
	assert.Zero(t, r.Count("GenerateMipmap"))
}

func TestTextureMipmapAfterUpload(t *testing.T) {
	r := gltest.NewRecorder()
	device := newDevice(t, metadata.DeviceTypeOpenGLCore, r)

	desc := metadata.NewTextureDesc(64, 64, metadata.TextureDim2D, metadata.TextureFormatR8G8B8A8)
	desc.MipLevel = 7
	desc.Flags = metadata.TextureFlagMipmap
	desc.Stream = make([]byte, 64*64*4)
	_, err := opengl.NewTexture(device, desc)
	require.NoError(t, err)

	names := r.Names()
	upload, mipmap := -1, -1
	for i, n := range names {
		switch n {
		case "TexSubImage2D":
			upload = i
		case "GenerateMipmap":
			mipmap = i
		}
	}
	require.NotEqual(t, -1, mipmap)
	assert.Less(t, upload, mipmap)
}

func TestTextureCompressedDXT1(t *testing.T) {
	r := gltest.NewRecorder()
	r.ExtensionList = []string{"GL_EXT_texture_compression_s3tc"}
	device := newDevice(t, metadata.DeviceTypeOpenGLCore, r)

	desc := metadata.NewTextureDesc(128, 128, metadata.TextureDim2D, metadata.TextureFormatRGBADXT1)
	regions := opengl.ComputeCompressedUpload(desc)
	require.Len(t, regions, 1)
	assert.Equal(t, 8, opengl.CompressedBlockSize(desc.Format))
	assert.Equal(t, 8192, regions[0].Size)

	desc.Stream = make([]byte, 8192)
	_, err := opengl.NewTexture(device, desc)
	require.NoError(t, err)

	calls := argsOf(r, "CompressedTexSubImage2D")
	require.Len(t, calls, 1)
	// target, level, x, y, width, height, format, bytes
	assert.Equal(t, int32(128), calls[0][4])
	assert.Equal(t, uint32(gl.CompressedRGBAS3TCDXT1EXT), calls[0][6])
	assert.Equal(t, 8192, calls[0][7])
}

func TestComputeCompressedUploadMipChain(t *testing.T) {
	desc := metadata.NewTextureDesc(128, 64, metadata.TextureDim2D, metadata.TextureFormatRGBADXT5)
	desc.MipLevel = 8

	regions := opengl.ComputeCompressedUpload(desc)
	require.Len(t, regions, 8)
	assert.Equal(t, 32*16*16, regions[0].Size)
	assert.Equal(t, regions[0].Size, regions[1].Offset)
	assert.Equal(t, int32(64), regions[1].Width)
	assert.Equal(t, int32(32), regions[1].Height)
	// w and h floor at 1, a block is still whole
	last := regions[7]
	assert.Equal(t, int32(1), last.Width)
	assert.Equal(t, int32(1), last.Height)
	assert.Equal(t, 16, last.Size)
}

func TestComputeCompressedUploadCubeReservesSixLevels(t *testing.T) {
	desc := metadata.NewTextureDesc(16, 16, metadata.TextureDimCube, metadata.TextureFormatRGBADXT3)
	assert.Len(t, opengl.ComputeCompressedUpload(desc), 6)
}

func TestTextureCompressedWithoutExtension(t *testing.T) {
	r := gltest.NewRecorder()
	device := newDevice(t, metadata.DeviceTypeOpenGLCore, r)

	desc := metadata.NewTextureDesc(128, 128, metadata.TextureDim2D, metadata.TextureFormatRGBADXT1)
	_, err := opengl.NewTexture(device, desc)
	assert.ErrorIs(t, err, core.ErrUnsupported)
	assert.Zero(t, r.Count("GenTexture"))
}

func TestTextureUnsupportedTargetAllocatesNothing(t *testing.T) {
	r := gltest.NewES2Recorder()
	device := newDevice(t, metadata.DeviceTypeOpenGLES2, r)

	desc := metadata.NewTextureDesc(32, 32, metadata.TextureDim3D, metadata.TextureFormatR8G8B8A8)
	_, err := opengl.NewTexture(device, desc)
	assert.ErrorIs(t, err, core.ErrUnsupported)
	assert.Zero(t, r.Count("GenTexture"))
}

func TestTextureDescRoundTrip(t *testing.T) {
	r := gltest.NewRecorder()
	device := newDevice(t, metadata.DeviceTypeOpenGLCore, r)

	desc := metadata.NewTextureDesc(512, 256, metadata.TextureDim2DArray, metadata.TextureFormatR16G16B16A16F)
	desc.Name = "gbuffer"
	desc.Depth = 4
	desc.SamplerFilter = metadata.SamplerFilterNearest
	tex, err := opengl.NewTexture(device, desc)
	require.NoError(t, err)

	assert.Equal(t, desc, tex.Desc())
	assert.Equal(t, metadata.GraphicsDevice(device), tex.Device())
}

func TestTextureCloseTwice(t *testing.T) {
	r := gltest.NewRecorder()
	device := newDevice(t, metadata.DeviceTypeOpenGLCore, r)

	tex, err := opengl.NewTexture(device, metadata.NewTextureDesc(4, 4, metadata.TextureDim2D, metadata.TextureFormatR8G8B8A8))
	require.NoError(t, err)

	tex.Close()
	tex.Close()
	assert.Equal(t, 1, r.Count("DeleteTexture"))
	assert.Zero(t, tex.InstanceID())
	assert.Equal(t, metadata.TextureDesc{}, tex.Desc())
}

func TestTextureSetupTwice(t *testing.T) {
	r := gltest.NewRecorder()
	device := newDevice(t, metadata.DeviceTypeOpenGLCore, r)

	desc := metadata.NewTextureDesc(4, 4, metadata.TextureDim2D, metadata.TextureFormatR8G8B8A8)
	tex, err := opengl.NewTexture(device, desc)
	require.NoError(t, err)
	assert.ErrorIs(t, tex.Setup(desc), core.ErrAlreadySetup)
}

func TestES2TextureUsesTexImage(t *testing.T) {
	r := gltest.NewES2Recorder()
	device := newDevice(t, metadata.DeviceTypeOpenGLES2, r)

	desc := metadata.NewTextureDesc(64, 64, metadata.TextureDim2D, metadata.TextureFormatR8G8B8A8)
	desc.Stream = make([]byte, 64*64*4)
	_, err := opengl.NewTexture(device, desc)
	require.NoError(t, err)

	assert.Zero(t, r.Count("TexStorage2D"))
	assert.Equal(t, 1, r.Count("TexImage2D"))
}
