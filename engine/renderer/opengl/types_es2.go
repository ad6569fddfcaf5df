package opengl

import (
	"github.com/spaghettifunk/ray/engine/renderer/gl"
	"github.com/spaghettifunk/ray/engine/renderer/metadata"
)

// es2Tables covers OpenGL ES 2.0 with the usual OES/EXT texture extensions.
// Only 2D and cube textures exist, attributes are never integer, and texture
// uploads take an unsized internal format equal to the pixel format.
type es2Tables struct {
	coreTables
}

func (t es2Tables) VertexFormat(f metadata.VertexFormat) uint32 {
	switch {
	case f >= metadata.VertexFormatInt && f <= metadata.VertexFormatInt4,
		f >= metadata.VertexFormatUint && f <= metadata.VertexFormatUint4:
		return t.invalid("es2 vertex format", f)
	}
	return t.coreTables.VertexFormat(f)
}

func (t es2Tables) ShaderStage(s metadata.ShaderStage) uint32 {
	switch s {
	case metadata.ShaderStageVertex:
		return gl.VertexShader
	case metadata.ShaderStageFragment:
		return gl.FragmentShader
	}
	return t.invalid("es2 shader stage", s)
}

func (t es2Tables) TextureTarget(dim metadata.TextureDim, multisample bool) uint32 {
	if multisample {
		return t.invalid("es2 multisample texture dim", dim)
	}
	switch dim {
	case metadata.TextureDim2D:
		return gl.Texture2D
	case metadata.TextureDimCube:
		return gl.TextureCubeMap
	}
	return t.invalid("es2 texture dim", dim)
}

func (t es2Tables) TextureFormat(f metadata.TextureFormat) uint32 {
	switch f {
	case metadata.TextureFormatDepthComponent16, metadata.TextureFormatDepthComponent24:
		return gl.DepthComponent
	case metadata.TextureFormatDepth24Stencil8:
		return gl.DepthStencil
	case metadata.TextureFormatR5G6B5, metadata.TextureFormatR8G8B8,
		metadata.TextureFormatR16G16B16F, metadata.TextureFormatR32G32B32F:
		return gl.RGB
	case metadata.TextureFormatR4G4B4A4, metadata.TextureFormatR5G5B5A1, metadata.TextureFormatR8G8B8A8,
		metadata.TextureFormatR16G16B16A16F, metadata.TextureFormatR32G32B32A32F:
		return gl.RGBA
	case metadata.TextureFormatSR8G8B8:
		return gl.SRGB
	case metadata.TextureFormatSR8G8B8A8:
		return gl.SRGBAlphaEXT
	case metadata.TextureFormatR8, metadata.TextureFormatR16F, metadata.TextureFormatR32F:
		return gl.Red
	case metadata.TextureFormatRG16F, metadata.TextureFormatRG32F:
		return gl.RG
	}
	return t.invalid("es2 texture format", f)
}

func (t es2Tables) TextureType(f metadata.TextureFormat) uint32 {
	switch f {
	case metadata.TextureFormatDepthComponent16:
		return gl.UnsignedShort
	case metadata.TextureFormatDepthComponent24:
		return gl.UnsignedInt
	case metadata.TextureFormatDepth24Stencil8:
		return gl.UnsignedInt248
	case metadata.TextureFormatR4G4B4A4:
		return gl.UnsignedShort4444
	case metadata.TextureFormatR5G6B5:
		return gl.UnsignedShort565
	case metadata.TextureFormatR5G5B5A1:
		// listed in KnownMappingQuirks
		return gl.UnsignedShort565
	case metadata.TextureFormatR8, metadata.TextureFormatR8G8B8, metadata.TextureFormatR8G8B8A8,
		metadata.TextureFormatSR8G8B8, metadata.TextureFormatSR8G8B8A8:
		return gl.UnsignedByte
	case metadata.TextureFormatR16G16B16F, metadata.TextureFormatR16G16B16A16F,
		metadata.TextureFormatR16F, metadata.TextureFormatRG16F:
		return gl.HalfFloatOES
	case metadata.TextureFormatR32G32B32F, metadata.TextureFormatR32G32B32A32F,
		metadata.TextureFormatR32F, metadata.TextureFormatRG32F:
		return gl.Float
	}
	return t.invalid("es2 texture type", f)
}

func (t es2Tables) TextureInternalFormat(f metadata.TextureFormat) uint32 {
	if f.IsCompressed() {
		return t.compressedInternalFormat(f)
	}
	return t.TextureFormat(f)
}
