package opengl_test

import (
	"testing"

	"github.com/spaghettifunk/ray/engine/renderer/gl"
	"github.com/spaghettifunk/ray/engine/renderer/metadata"
	"github.com/spaghettifunk/ray/engine/renderer/opengl"
	"github.com/stretchr/testify/assert"
)

func TestCoreTextureTargets(t *testing.T) {
	tables := opengl.TablesFor(metadata.DeviceTypeOpenGLCore)
	tests := []struct {
		dim         metadata.TextureDim
		single      uint32
		multisample uint32
	}{
		{metadata.TextureDim2D, gl.Texture2D, gl.Texture2DMultisample},
		{metadata.TextureDim3D, gl.Texture3D, gl.InvalidEnum},
		{metadata.TextureDim2DArray, gl.Texture2DArray, gl.Texture2DMultisampleArray},
		{metadata.TextureDim3DArray, gl.Texture2D, gl.Texture2DMultisampleArray},
		{metadata.TextureDimCube, gl.TextureCubeMap, gl.InvalidEnum},
		{metadata.TextureDimCubeArray, gl.TextureCubeMapArray, gl.InvalidEnum},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.single, tables.TextureTarget(tt.dim, false), "dim %d", tt.dim)
		assert.Equal(t, tt.multisample, tables.TextureTarget(tt.dim, true), "dim %d multisample", tt.dim)
	}
}

func TestES2TextureTargets(t *testing.T) {
	tables := opengl.TablesFor(metadata.DeviceTypeOpenGLES2)

	assert.Equal(t, uint32(gl.Texture2D), tables.TextureTarget(metadata.TextureDim2D, false))
	assert.Equal(t, uint32(gl.TextureCubeMap), tables.TextureTarget(metadata.TextureDimCube, false))
	assert.Equal(t, uint32(gl.InvalidEnum), tables.TextureTarget(metadata.TextureDim3D, false))
	assert.Equal(t, uint32(gl.InvalidEnum), tables.TextureTarget(metadata.TextureDim2DArray, false))
	assert.Equal(t, uint32(gl.InvalidEnum), tables.TextureTarget(metadata.TextureDim2D, true))
}

func TestES3TextureTargets(t *testing.T) {
	tables := opengl.TablesFor(metadata.DeviceTypeOpenGLES3)

	assert.Equal(t, uint32(gl.Texture2DMultisample), tables.TextureTarget(metadata.TextureDim2D, true))
	assert.Equal(t, uint32(gl.Texture2DArray), tables.TextureTarget(metadata.TextureDim2DArray, false))
	assert.Equal(t, uint32(gl.InvalidEnum), tables.TextureTarget(metadata.TextureDim2DArray, true))
	assert.Equal(t, uint32(gl.InvalidEnum), tables.TextureTarget(metadata.TextureDimCubeArray, false))
}

func TestKnownMappingQuirks(t *testing.T) {
	assert.Len(t, opengl.KnownMappingQuirks, 3)

	for _, typ := range []metadata.DeviceType{metadata.DeviceTypeOpenGLCore, metadata.DeviceTypeOpenGLES2, metadata.DeviceTypeOpenGLES3} {
		tables := opengl.TablesFor(typ)
		for _, q := range opengl.KnownMappingQuirks {
			var got uint32
			switch q.Input {
			case "R5G5B5A1":
				got = tables.TextureType(metadata.TextureFormatR5G5B5A1)
			case "OneMinusConstantColor":
				got = tables.BlendFactor(metadata.BlendFactorOneMinusConstantColor)
			case "OneMinusConstantAlpha":
				got = tables.BlendFactor(metadata.BlendFactorOneMinusConstantAlpha)
			default:
				t.Fatalf("unexpected quirk input %q", q.Input)
			}
			assert.Equal(t, q.Returned, got, "%s %s on %s", q.Table, q.Input, typ)
			assert.NotEqual(t, q.Expected, got)
		}
	}
}

func TestCompressedFormats(t *testing.T) {
	tables := opengl.TablesFor(metadata.DeviceTypeOpenGLCore)

	assert.Equal(t, uint32(gl.CompressedRGBAS3TCDXT1EXT), tables.TextureInternalFormat(metadata.TextureFormatRGBADXT1))
	assert.Equal(t, uint32(gl.CompressedRGBS3TCDXT1EXT), tables.TextureInternalFormat(metadata.TextureFormatRGBDXT1))
	assert.Equal(t, uint32(gl.CompressedRGRGTC2), tables.TextureInternalFormat(metadata.TextureFormatRGATI2))
	assert.Equal(t, uint32(gl.InvalidEnum), tables.TextureFormat(metadata.TextureFormatRGBADXT1))
	assert.Equal(t, uint32(gl.InvalidEnum), tables.TextureType(metadata.TextureFormatRGBADXT5))
}

func TestHybridTopologies(t *testing.T) {
	tables := opengl.TablesFor(metadata.DeviceTypeOpenGLCore)

	assert.Equal(t, uint32(gl.Points), tables.VertexType(metadata.VertexTypePointOrLine))
	assert.Equal(t, uint32(gl.Triangles), tables.VertexType(metadata.VertexTypeTriangleOrLine))
	assert.Equal(t, uint32(gl.TriangleFan), tables.VertexType(metadata.VertexTypeFanOrLine))
}

func TestES2RejectsIntegerVertexFormats(t *testing.T) {
	tables := opengl.TablesFor(metadata.DeviceTypeOpenGLES2)

	assert.Equal(t, uint32(gl.InvalidEnum), tables.VertexFormat(metadata.VertexFormatInt4))
	assert.Equal(t, uint32(gl.Float), tables.VertexFormat(metadata.VertexFormatFloat3))
	assert.Equal(t, uint32(gl.InvalidEnum), tables.ShaderStage(metadata.ShaderStageGeometry))
}
