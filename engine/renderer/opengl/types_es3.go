package opengl

import (
	"github.com/spaghettifunk/ray/engine/renderer/gl"
	"github.com/spaghettifunk/ray/engine/renderer/metadata"
)

// es3Tables covers OpenGL ES 3.x: the core tables without cube map arrays,
// multisample arrays, 16-bit normalized formats and the geometry and
// tessellation stages.
type es3Tables struct {
	coreTables
}

func (t es3Tables) ShaderStage(s metadata.ShaderStage) uint32 {
	switch s {
	case metadata.ShaderStageVertex:
		return gl.VertexShader
	case metadata.ShaderStageFragment:
		return gl.FragmentShader
	case metadata.ShaderStageCompute:
		return gl.ComputeShader
	}
	return t.invalid("es3 shader stage", s)
}

func (t es3Tables) TextureTarget(dim metadata.TextureDim, multisample bool) uint32 {
	switch dim {
	case metadata.TextureDimCubeArray:
		return t.invalid("es3 texture dim", "cube array")
	case metadata.TextureDim2DArray, metadata.TextureDim3DArray:
		if multisample {
			return t.invalid("es3 multisample texture dim", dim)
		}
	}
	return t.coreTables.TextureTarget(dim, multisample)
}

func es3Unsupported(f metadata.TextureFormat) bool {
	switch f {
	case metadata.TextureFormatR16G16B16, metadata.TextureFormatR16G16B16A16,
		metadata.TextureFormatR16G16B16SNorm, metadata.TextureFormatR16G16B16A16SNorm:
		return true
	}
	return false
}

func (t es3Tables) TextureFormat(f metadata.TextureFormat) uint32 {
	switch {
	case es3Unsupported(f):
		return t.invalid("es3 texture format", f)
	case f == metadata.TextureFormatSR8G8B8:
		return gl.RGB
	case f == metadata.TextureFormatSR8G8B8A8:
		return gl.RGBA
	}
	return t.coreTables.TextureFormat(f)
}

func (t es3Tables) TextureType(f metadata.TextureFormat) uint32 {
	switch {
	case es3Unsupported(f):
		return t.invalid("es3 texture type", f)
	case f == metadata.TextureFormatDepthComponent32:
		return gl.Float
	case f == metadata.TextureFormatR10G10B10A2:
		return gl.UnsignedInt2101010Rev
	}
	return t.coreTables.TextureType(f)
}

func (t es3Tables) TextureInternalFormat(f metadata.TextureFormat) uint32 {
	if es3Unsupported(f) {
		return t.invalid("es3 texture internal format", f)
	}
	return t.coreTables.TextureInternalFormat(f)
}
