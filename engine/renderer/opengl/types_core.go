package opengl

import (
	"github.com/spaghettifunk/ray/engine/renderer/gl"
	"github.com/spaghettifunk/ray/engine/renderer/metadata"
)

// coreTables holds the desktop core profile translations. The ES tables
// embed it and override what the profile lacks.
type coreTables struct {
	quiet bool
}

func (t coreTables) VertexType(v metadata.VertexType) uint32 {
	switch v {
	case metadata.VertexTypePoint, metadata.VertexTypePointOrLine:
		return gl.Points
	case metadata.VertexTypeLine:
		return gl.Lines
	case metadata.VertexTypeTriangle, metadata.VertexTypeTriangleOrLine:
		return gl.Triangles
	case metadata.VertexTypeFan, metadata.VertexTypeFanOrLine:
		return gl.TriangleFan
	}
	return t.invalid("vertex type", v)
}

func (t coreTables) VertexFormat(f metadata.VertexFormat) uint32 {
	switch f {
	case metadata.VertexFormatChar, metadata.VertexFormatChar2, metadata.VertexFormatChar3, metadata.VertexFormatChar4:
		return gl.Byte
	case metadata.VertexFormatShort, metadata.VertexFormatShort2, metadata.VertexFormatShort3, metadata.VertexFormatShort4:
		return gl.Short
	case metadata.VertexFormatInt, metadata.VertexFormatInt2, metadata.VertexFormatInt3, metadata.VertexFormatInt4:
		return gl.Int
	case metadata.VertexFormatUchar, metadata.VertexFormatUchar2, metadata.VertexFormatUchar3, metadata.VertexFormatUchar4:
		return gl.UnsignedByte
	case metadata.VertexFormatUshort, metadata.VertexFormatUshort2, metadata.VertexFormatUshort3, metadata.VertexFormatUshort4:
		return gl.UnsignedShort
	case metadata.VertexFormatUint, metadata.VertexFormatUint2, metadata.VertexFormatUint3, metadata.VertexFormatUint4:
		return gl.UnsignedInt
	case metadata.VertexFormatFloat, metadata.VertexFormatFloat2, metadata.VertexFormatFloat3, metadata.VertexFormatFloat4,
		metadata.VertexFormatFloat3x3, metadata.VertexFormatFloat4x4:
		return gl.Float
	}
	return t.invalid("vertex format", f)
}

func (t coreTables) IndexType(i metadata.IndexType) uint32 {
	switch i {
	case metadata.IndexTypeNone:
		return gl.None
	case metadata.IndexTypeUint16:
		return gl.UnsignedShort
	case metadata.IndexTypeUint32:
		return gl.UnsignedInt
	}
	return t.invalid("index type", i)
}

func (t coreTables) ShaderStage(s metadata.ShaderStage) uint32 {
	switch s {
	case metadata.ShaderStageVertex:
		return gl.VertexShader
	case metadata.ShaderStageFragment:
		return gl.FragmentShader
	case metadata.ShaderStageCompute:
		return gl.ComputeShader
	case metadata.ShaderStageGeometry:
		return gl.GeometryShader
	case metadata.ShaderStageTessControl:
		return gl.TessControlShader
	case metadata.ShaderStageTessEvaluation:
		return gl.TessEvaluationShader
	}
	return t.invalid("shader stage", s)
}

func (t coreTables) TextureTarget(dim metadata.TextureDim, multisample bool) uint32 {
	switch dim {
	case metadata.TextureDim2D:
		if multisample {
			return gl.Texture2DMultisample
		}
		return gl.Texture2D
	case metadata.TextureDim3D:
		if multisample {
			return t.invalid("multisample texture dim", "3D")
		}
		return gl.Texture3D
	case metadata.TextureDim2DArray:
		if multisample {
			return gl.Texture2DMultisampleArray
		}
		return gl.Texture2DArray
	case metadata.TextureDim3DArray:
		if multisample {
			return gl.Texture2DMultisampleArray
		}
		return gl.Texture2D
	case metadata.TextureDimCube:
		if multisample {
			return t.invalid("multisample texture dim", "cube")
		}
		return gl.TextureCubeMap
	case metadata.TextureDimCubeArray:
		if multisample {
			return t.invalid("multisample texture dim", "cube array")
		}
		return gl.TextureCubeMapArray
	}
	return t.invalid("texture dim", dim)
}

func (t coreTables) TextureFormat(f metadata.TextureFormat) uint32 {
	switch f {
	case metadata.TextureFormatStencil8:
		return gl.StencilIndex
	case metadata.TextureFormatDepthComponent16, metadata.TextureFormatDepthComponent24, metadata.TextureFormatDepthComponent32:
		return gl.DepthComponent
	case metadata.TextureFormatDepth24Stencil8, metadata.TextureFormatDepth32Stencil8:
		return gl.DepthStencil
	case metadata.TextureFormatR5G6B5, metadata.TextureFormatR8G8B8, metadata.TextureFormatR16G16B16,
		metadata.TextureFormatR11G11B10F, metadata.TextureFormatR16G16B16F, metadata.TextureFormatR32G32B32F,
		metadata.TextureFormatR8G8B8SNorm, metadata.TextureFormatR16G16B16SNorm:
		return gl.RGB
	case metadata.TextureFormatR4G4B4A4, metadata.TextureFormatR5G5B5A1, metadata.TextureFormatR8G8B8A8,
		metadata.TextureFormatR10G10B10A2, metadata.TextureFormatR16G16B16A16, metadata.TextureFormatR16G16B16A16F,
		metadata.TextureFormatR32G32B32A32F, metadata.TextureFormatR8G8B8A8SNorm, metadata.TextureFormatR16G16B16A16SNorm:
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
	return t.invalid("texture format", f)
}

func (t coreTables) TextureType(f metadata.TextureFormat) uint32 {
	switch f {
	case metadata.TextureFormatStencil8:
		return gl.StencilIndex8
	case metadata.TextureFormatDepthComponent16, metadata.TextureFormatDepthComponent24, metadata.TextureFormatDepthComponent32:
		return gl.UnsignedInt
	case metadata.TextureFormatDepth24Stencil8:
		return gl.UnsignedInt248
	case metadata.TextureFormatDepth32Stencil8:
		return gl.Float32UnsignedInt248Rev
	case metadata.TextureFormatR4G4B4A4:
		return gl.UnsignedShort4444
	case metadata.TextureFormatR5G6B5:
		return gl.UnsignedShort565
	case metadata.TextureFormatR5G5B5A1:
		// listed in KnownMappingQuirks
		return gl.UnsignedShort565
	case metadata.TextureFormatR8, metadata.TextureFormatR8G8B8, metadata.TextureFormatR8G8B8A8,
		metadata.TextureFormatSR8G8B8, metadata.TextureFormatSR8G8B8A8, metadata.TextureFormatR10G10B10A2:
		return gl.UnsignedByte
	case metadata.TextureFormatR16G16B16, metadata.TextureFormatR16G16B16A16:
		return gl.UnsignedShort
	case metadata.TextureFormatR8G8B8SNorm, metadata.TextureFormatR8G8B8A8SNorm,
		metadata.TextureFormatR16G16B16SNorm, metadata.TextureFormatR16G16B16A16SNorm,
		metadata.TextureFormatR16G16B16F, metadata.TextureFormatR16G16B16A16F,
		metadata.TextureFormatR32G32B32F, metadata.TextureFormatR32G32B32A32F,
		metadata.TextureFormatR11G11B10F, metadata.TextureFormatR16F, metadata.TextureFormatR32F,
		metadata.TextureFormatRG16F, metadata.TextureFormatRG32F:
		return gl.Float
	}
	return t.invalid("texture type", f)
}

func (t coreTables) TextureInternalFormat(f metadata.TextureFormat) uint32 {
	switch f {
	case metadata.TextureFormatStencil8:
		return gl.StencilIndex8
	case metadata.TextureFormatDepthComponent16:
		return gl.DepthComponent16
	case metadata.TextureFormatDepthComponent24:
		return gl.DepthComponent24
	case metadata.TextureFormatDepthComponent32:
		return gl.DepthComponent32F
	case metadata.TextureFormatDepth24Stencil8:
		return gl.Depth24Stencil8
	case metadata.TextureFormatDepth32Stencil8:
		return gl.Depth32FStencil8
	case metadata.TextureFormatR4G4B4A4:
		return gl.RGBA4
	case metadata.TextureFormatR5G6B5:
		return gl.RGB565
	case metadata.TextureFormatR5G5B5A1:
		return gl.RGB5A1
	case metadata.TextureFormatR10G10B10A2:
		return gl.RGB10A2
	case metadata.TextureFormatR8G8B8SNorm:
		return gl.RGB8SNorm
	case metadata.TextureFormatR8G8B8A8SNorm:
		return gl.RGBA8SNorm
	case metadata.TextureFormatR16G16B16SNorm:
		return gl.RGB16SNorm
	case metadata.TextureFormatR16G16B16A16SNorm:
		return gl.RGBA16SNorm
	case metadata.TextureFormatR8G8B8:
		return gl.RGB8
	case metadata.TextureFormatR8G8B8A8:
		return gl.RGBA8
	case metadata.TextureFormatR16G16B16:
		return gl.RGB16
	case metadata.TextureFormatR16G16B16A16:
		return gl.RGBA16
	case metadata.TextureFormatR16G16B16F:
		return gl.RGB16F
	case metadata.TextureFormatR32G32B32F:
		return gl.RGB32F
	case metadata.TextureFormatR16G16B16A16F:
		return gl.RGBA16F
	case metadata.TextureFormatR32G32B32A32F:
		return gl.RGBA32F
	case metadata.TextureFormatSR8G8B8:
		return gl.SRGB8
	case metadata.TextureFormatSR8G8B8A8:
		return gl.SRGB8Alpha8
	case metadata.TextureFormatR8:
		return gl.R8
	case metadata.TextureFormatR16F:
		return gl.R16F
	case metadata.TextureFormatR32F:
		return gl.R32F
	case metadata.TextureFormatRG16F:
		return gl.RG16F
	case metadata.TextureFormatRG32F:
		return gl.RG32F
	case metadata.TextureFormatR11G11B10F:
		return gl.R11FG11FB10F
	}
	return t.compressedInternalFormat(f)
}

func (t coreTables) compressedInternalFormat(f metadata.TextureFormat) uint32 {
	switch f {
	case metadata.TextureFormatRGBDXT1:
		return gl.CompressedRGBS3TCDXT1EXT
	case metadata.TextureFormatRGBADXT1:
		return gl.CompressedRGBAS3TCDXT1EXT
	case metadata.TextureFormatRGBADXT3:
		return gl.CompressedRGBAS3TCDXT3EXT
	case metadata.TextureFormatRGBADXT5:
		return gl.CompressedRGBAS3TCDXT5EXT
	case metadata.TextureFormatRGATI2:
		return gl.CompressedRGRGTC2
	}
	return t.invalid("texture internal format", f)
}

func (t coreTables) CompareFunction(f metadata.CompareFunction) uint32 {
	switch f {
	case metadata.CompareFunctionNone:
		return gl.None
	case metadata.CompareFunctionLequal:
		return gl.Lequal
	case metadata.CompareFunctionEqual:
		return gl.Equal
	case metadata.CompareFunctionGreater:
		return gl.Greater
	case metadata.CompareFunctionLess:
		return gl.Less
	case metadata.CompareFunctionGequal:
		return gl.Gequal
	case metadata.CompareFunctionNotEqual:
		return gl.Notequal
	case metadata.CompareFunctionAlways:
		return gl.Always
	case metadata.CompareFunctionNever:
		return gl.Never
	}
	return t.invalid("compare function", f)
}

func (t coreTables) BlendFactor(f metadata.BlendFactor) uint32 {
	switch f {
	case metadata.BlendFactorZero:
		return gl.Zero
	case metadata.BlendFactorOne:
		return gl.One
	case metadata.BlendFactorDstCol:
		return gl.DstColor
	case metadata.BlendFactorSrcColor:
		return gl.SrcColor
	case metadata.BlendFactorSrcAlpha:
		return gl.SrcAlpha
	case metadata.BlendFactorDstAlpha:
		return gl.DstAlpha
	case metadata.BlendFactorOneMinusSrcCol:
		return gl.OneMinusSrcColor
	case metadata.BlendFactorOneMinusDstCol:
		return gl.OneMinusDstColor
	case metadata.BlendFactorOneMinusSrcAlpha:
		return gl.OneMinusSrcAlpha
	case metadata.BlendFactorOneMinusDstAlpha:
		return gl.OneMinusDstAlpha
	case metadata.BlendFactorConstantColor:
		return gl.ConstantColor
	case metadata.BlendFactorConstantAlpha:
		return gl.ConstantAlpha
	case metadata.BlendFactorOneMinusConstantColor, metadata.BlendFactorOneMinusConstantAlpha:
		// listed in KnownMappingQuirks
		return gl.ConstantAlpha
	case metadata.BlendFactorSrcAlphaSaturate:
		return gl.SrcAlphaSaturate
	}
	return t.invalid("blend factor", f)
}

func (t coreTables) BlendOperation(op metadata.BlendOperation) uint32 {
	switch op {
	case metadata.BlendOperationAdd:
		return gl.FuncAdd
	case metadata.BlendOperationSubtract:
		return gl.FuncSubtract
	case metadata.BlendOperationRevSubtract:
		return gl.FuncReverseSubtract
	}
	return t.invalid("blend operation", op)
}

func (t coreTables) CullMode(m metadata.CullMode) uint32 {
	switch m {
	case metadata.CullModeNone:
		return gl.None
	case metadata.CullModeFront:
		return gl.Front
	case metadata.CullModeBack:
		return gl.Back
	case metadata.CullModeFrontBack:
		return gl.FrontAndBack
	}
	return t.invalid("cull mode", m)
}

func (t coreTables) FrontFace(f metadata.FrontFace) uint32 {
	switch f {
	case metadata.FrontFaceCW:
		return gl.CW
	case metadata.FrontFaceCCW:
		return gl.CCW
	}
	return t.invalid("front face", f)
}

func (t coreTables) FillMode(m metadata.FillMode) uint32 {
	switch m {
	case metadata.FillModePoint:
		return gl.Point
	case metadata.FillModeWireframe:
		return gl.Line
	case metadata.FillModeSolid:
		return gl.Fill
	}
	return t.invalid("fill mode", m)
}

func (t coreTables) StencilOperation(op metadata.StencilOperation) uint32 {
	switch op {
	case metadata.StencilOperationKeep:
		return gl.Keep
	case metadata.StencilOperationReplace:
		return gl.Replace
	case metadata.StencilOperationIncr:
		return gl.Incr
	case metadata.StencilOperationDecr:
		return gl.Decr
	case metadata.StencilOperationZero:
		return gl.Zero
	case metadata.StencilOperationIncrWrap:
		return gl.IncrWrap
	case metadata.StencilOperationDecrWrap:
		return gl.DecrWrap
	}
	return t.invalid("stencil operation", op)
}

func (t coreTables) SamplerWrap(w metadata.SamplerWrap) uint32 {
	switch w {
	case metadata.SamplerWrapRepeat:
		return gl.Repeat
	case metadata.SamplerWrapMirror:
		return gl.MirroredRepeat
	case metadata.SamplerWrapClampToEdge:
		return gl.ClampToEdge
	}
	return t.invalid("sampler wrap", w)
}

func (t coreTables) SamplerFilter(f metadata.SamplerFilter) uint32 {
	switch f {
	case metadata.SamplerFilterNearest:
		return gl.Nearest
	case metadata.SamplerFilterLinear:
		return gl.Linear
	case metadata.SamplerFilterNearestMipmapLinear:
		return gl.NearestMipmapLinear
	case metadata.SamplerFilterNearestMipmapNearest:
		return gl.NearestMipmapNearest
	case metadata.SamplerFilterLinearMipmapNearest:
		return gl.LinearMipmapNearest
	case metadata.SamplerFilterLinearMipmapLinear:
		return gl.LinearMipmapLinear
	}
	return t.invalid("sampler filter", f)
}
