package metadata

/** @brief The native API family a device is created against. */
type DeviceType int

const (
	DeviceTypeOpenGLCore DeviceType = iota
	DeviceTypeOpenGLES2
	DeviceTypeOpenGLES3
)

func (t DeviceType) String() string {
	switch t {
	case DeviceTypeOpenGLCore:
		return "OpenGL Core"
	case DeviceTypeOpenGLES2:
		return "OpenGL ES2"
	case DeviceTypeOpenGLES3:
		return "OpenGL ES3"
	}
	return "unknown"
}

/**
 * @brief Primitive topology. The OrLine variants draw as their solid
 * topology unless the context is in wireframe mode, where they draw as lines.
 */
type VertexType int

const (
	VertexTypePoint VertexType = iota
	VertexTypeLine
	VertexTypeTriangle
	VertexTypeFan
	VertexTypePointOrLine
	VertexTypeTriangleOrLine
	VertexTypeFanOrLine
)

// IsHybrid reports whether the topology has a wireframe substitute.
func (t VertexType) IsHybrid() bool {
	return t == VertexTypePointOrLine || t == VertexTypeTriangleOrLine || t == VertexTypeFanOrLine
}

/** @brief The format of a single vertex attribute. */
type VertexFormat int

const (
	VertexFormatUndefined VertexFormat = iota
	VertexFormatChar
	VertexFormatChar2
	VertexFormatChar3
	VertexFormatChar4
	VertexFormatShort
	VertexFormatShort2
	VertexFormatShort3
	VertexFormatShort4
	VertexFormatInt
	VertexFormatInt2
	VertexFormatInt3
	VertexFormatInt4
	VertexFormatUchar
	VertexFormatUchar2
	VertexFormatUchar3
	VertexFormatUchar4
	VertexFormatUshort
	VertexFormatUshort2
	VertexFormatUshort3
	VertexFormatUshort4
	VertexFormatUint
	VertexFormatUint2
	VertexFormatUint3
	VertexFormatUint4
	VertexFormatFloat
	VertexFormatFloat2
	VertexFormatFloat3
	VertexFormatFloat4
	VertexFormatFloat3x3
	VertexFormatFloat4x4
)

// Count is the number of scalar components of the format.
func (f VertexFormat) Count() int {
	switch f {
	case VertexFormatChar, VertexFormatShort, VertexFormatInt, VertexFormatUchar, VertexFormatUshort, VertexFormatUint, VertexFormatFloat:
		return 1
	case VertexFormatChar2, VertexFormatShort2, VertexFormatInt2, VertexFormatUchar2, VertexFormatUshort2, VertexFormatUint2, VertexFormatFloat2:
		return 2
	case VertexFormatChar3, VertexFormatShort3, VertexFormatInt3, VertexFormatUchar3, VertexFormatUshort3, VertexFormatUint3, VertexFormatFloat3:
		return 3
	case VertexFormatChar4, VertexFormatShort4, VertexFormatInt4, VertexFormatUchar4, VertexFormatUshort4, VertexFormatUint4, VertexFormatFloat4:
		return 4
	case VertexFormatFloat3x3:
		return 9
	case VertexFormatFloat4x4:
		return 16
	}
	return 0
}

// Size is the byte size of one attribute of the format.
func (f VertexFormat) Size() int {
	switch {
	case f >= VertexFormatChar && f <= VertexFormatChar4, f >= VertexFormatUchar && f <= VertexFormatUchar4:
		return f.Count()
	case f >= VertexFormatShort && f <= VertexFormatShort4, f >= VertexFormatUshort && f <= VertexFormatUshort4:
		return f.Count() * 2
	case f != VertexFormatUndefined:
		return f.Count() * 4
	}
	return 0
}

// IsInteger reports whether the format feeds integer shader inputs.
func (f VertexFormat) IsInteger() bool {
	return f >= VertexFormatChar && f <= VertexFormatUint4
}

type IndexType int

const (
	IndexTypeNone IndexType = iota
	IndexTypeUint16
	IndexTypeUint32
)

// Size returns the byte size of one index.
func (t IndexType) Size() int {
	switch t {
	case IndexTypeUint16:
		return 2
	case IndexTypeUint32:
		return 4
	}
	return 0
}

type ShaderStage int

const (
	ShaderStageVertex ShaderStage = iota
	ShaderStageFragment
	ShaderStageGeometry
	ShaderStageCompute
	ShaderStageTessControl
	ShaderStageTessEvaluation
)

func (s ShaderStage) String() string {
	switch s {
	case ShaderStageVertex:
		return "vertex"
	case ShaderStageFragment:
		return "fragment"
	case ShaderStageGeometry:
		return "geometry"
	case ShaderStageCompute:
		return "compute"
	case ShaderStageTessControl:
		return "tess control"
	case ShaderStageTessEvaluation:
		return "tess evaluation"
	}
	return "unknown"
}

/** @brief Dimensionality of a texture. */
type TextureDim int

const (
	TextureDim2D TextureDim = iota
	TextureDim3D
	TextureDim2DArray
	TextureDim3DArray
	TextureDimCube
	TextureDimCubeArray
)

/** @brief Engine-level texture formats. The DXT and ATI2 formats are block compressed. */
type TextureFormat int

const (
	TextureFormatUndefined TextureFormat = iota
	TextureFormatStencil8
	TextureFormatDepthComponent16
	TextureFormatDepthComponent24
	TextureFormatDepthComponent32
	TextureFormatDepth24Stencil8
	TextureFormatDepth32Stencil8
	TextureFormatR4G4B4A4
	TextureFormatR5G6B5
	TextureFormatR5G5B5A1
	TextureFormatR8G8B8
	TextureFormatR8G8B8A8
	TextureFormatR10G10B10A2
	TextureFormatR16G16B16
	TextureFormatR16G16B16A16
	TextureFormatR16G16B16F
	TextureFormatR16G16B16A16F
	TextureFormatR32G32B32F
	TextureFormatR32G32B32A32F
	TextureFormatR8G8B8SNorm
	TextureFormatR8G8B8A8SNorm
	TextureFormatR16G16B16SNorm
	TextureFormatR16G16B16A16SNorm
	TextureFormatSR8G8B8
	TextureFormatSR8G8B8A8
	TextureFormatR8
	TextureFormatR16F
	TextureFormatR32F
	TextureFormatRG16F
	TextureFormatRG32F
	TextureFormatR11G11B10F
	TextureFormatRGBDXT1
	TextureFormatRGBADXT1
	TextureFormatRGBADXT3
	TextureFormatRGBADXT5
	TextureFormatRGATI2
)

func (f TextureFormat) IsCompressed() bool {
	return f >= TextureFormatRGBDXT1 && f <= TextureFormatRGATI2
}

func (f TextureFormat) IsDepth() bool {
	return f >= TextureFormatDepthComponent16 && f <= TextureFormatDepth32Stencil8
}

// PixelSize is the byte size of one texel, zero for compressed formats.
func (f TextureFormat) PixelSize() int {
	switch f {
	case TextureFormatStencil8, TextureFormatR8:
		return 1
	case TextureFormatDepthComponent16, TextureFormatR4G4B4A4, TextureFormatR5G6B5, TextureFormatR5G5B5A1, TextureFormatR16F:
		return 2
	case TextureFormatDepthComponent24, TextureFormatR8G8B8, TextureFormatR8G8B8SNorm, TextureFormatSR8G8B8:
		return 3
	case TextureFormatDepthComponent32, TextureFormatDepth24Stencil8, TextureFormatR8G8B8A8, TextureFormatR10G10B10A2,
		TextureFormatR8G8B8A8SNorm, TextureFormatSR8G8B8A8, TextureFormatR32F, TextureFormatRG16F, TextureFormatR11G11B10F:
		return 4
	case TextureFormatR16G16B16, TextureFormatR16G16B16F, TextureFormatR16G16B16SNorm:
		return 6
	case TextureFormatDepth32Stencil8, TextureFormatR16G16B16A16, TextureFormatR16G16B16A16F, TextureFormatR16G16B16A16SNorm, TextureFormatRG32F:
		return 8
	case TextureFormatR32G32B32F:
		return 12
	case TextureFormatR32G32B32A32F:
		return 16
	}
	return 0
}

func (f TextureFormat) IsStencil() bool {
	return f == TextureFormatStencil8 || f == TextureFormatDepth24Stencil8 || f == TextureFormatDepth32Stencil8
}

type SamplerWrap int

const (
	SamplerWrapRepeat SamplerWrap = iota
	SamplerWrapMirror
	SamplerWrapClampToEdge
)

type SamplerFilter int

const (
	SamplerFilterNearest SamplerFilter = iota
	SamplerFilterLinear
	SamplerFilterNearestMipmapLinear
	SamplerFilterNearestMipmapNearest
	SamplerFilterLinearMipmapNearest
	SamplerFilterLinearMipmapLinear
)

/** @brief Anisotropic filtering level. Zero disables it. */
type SamplerAnis int

const (
	SamplerAnis0  SamplerAnis = 0
	SamplerAnis1  SamplerAnis = 1
	SamplerAnis2  SamplerAnis = 2
	SamplerAnis4  SamplerAnis = 4
	SamplerAnis8  SamplerAnis = 8
	SamplerAnis16 SamplerAnis = 16
)

type CompareFunction int

const (
	CompareFunctionNone CompareFunction = iota
	CompareFunctionLequal
	CompareFunctionEqual
	CompareFunctionGreater
	CompareFunctionLess
	CompareFunctionGequal
	CompareFunctionNotEqual
	CompareFunctionAlways
	CompareFunctionNever
)

type BlendFactor int

const (
	BlendFactorZero BlendFactor = iota
	BlendFactorOne
	BlendFactorDstCol
	BlendFactorSrcColor
	BlendFactorSrcAlpha
	BlendFactorDstAlpha
	BlendFactorOneMinusSrcCol
	BlendFactorOneMinusDstCol
	BlendFactorOneMinusSrcAlpha
	BlendFactorOneMinusDstAlpha
	BlendFactorConstantColor
	BlendFactorConstantAlpha
	BlendFactorOneMinusConstantColor
	BlendFactorOneMinusConstantAlpha
	BlendFactorSrcAlphaSaturate
)

type BlendOperation int

const (
	BlendOperationAdd BlendOperation = iota
	BlendOperationSubtract
	BlendOperationRevSubtract
)

type CullMode int

const (
	CullModeNone CullMode = iota
	CullModeFront
	CullModeBack
	CullModeFrontBack
)

type FrontFace int

const (
	FrontFaceCW FrontFace = iota
	FrontFaceCCW
)

type FillMode int

const (
	FillModeSolid FillMode = iota
	FillModeWireframe
	FillModePoint
)

type StencilOperation int

const (
	StencilOperationKeep StencilOperation = iota
	StencilOperationReplace
	StencilOperationIncr
	StencilOperationDecr
	StencilOperationZero
	StencilOperationIncrWrap
	StencilOperationDecrWrap
)

/** @brief Bit mask of color channels written by the output merger. */
type ColorMask uint8

const (
	ColorMaskRed   ColorMask = 0x1
	ColorMaskGreen ColorMask = 0x2
	ColorMaskBlue  ColorMask = 0x4
	ColorMaskAlpha ColorMask = 0x8
	ColorMaskAll   ColorMask = ColorMaskRed | ColorMaskGreen | ColorMaskBlue | ColorMaskAlpha
)

/** @brief Selects which planes a clear touches. */
type ClearFlags uint8

const (
	ClearFlagColor   ClearFlags = 0x1
	ClearFlagDepth   ClearFlags = 0x2
	ClearFlagStencil ClearFlags = 0x4
	ClearFlagAll     ClearFlags = ClearFlagColor | ClearFlagDepth | ClearFlagStencil
)

/** @brief What a GraphicsData buffer is bound as. */
type DataType int

const (
	DataTypeVertex DataType = iota
	DataTypeIndex
	DataTypeUniform
)

/** @brief Buffer usage hints. */
type UsageFlags uint32

const (
	UsageReadBit      UsageFlags = 0x1
	UsageWriteBit     UsageFlags = 0x2
	UsageDynamicBit   UsageFlags = 0x4
	UsageImmutableBit UsageFlags = 0x8
)

/** @brief Intended layout of a framebuffer attachment. */
type ImageLayout int

const (
	ImageLayoutUndefined ImageLayout = iota
	ImageLayoutColorAttachmentOptimal
	ImageLayoutDepthStencilAttachmentOptimal
	ImageLayoutDepthStencilReadOnlyOptimal
	ImageLayoutShaderReadOnlyOptimal
	ImageLayoutPresentSrc
)

/** @brief Texture behavior flags. */
type TextureFlags uint32

const (
	TextureFlagMipmap       TextureFlags = 0x1
	TextureFlagRenderTarget TextureFlags = 0x2
)

/** @brief The type of value a uniform holds. */
type UniformType int

const (
	UniformTypeNone UniformType = iota
	UniformTypeBool
	UniformTypeInt
	UniformTypeInt2
	UniformTypeInt3
	UniformTypeInt4
	UniformTypeFloat
	UniformTypeFloat2
	UniformTypeFloat3
	UniformTypeFloat4
	UniformTypeFloat3x3
	UniformTypeFloat4x4
	UniformTypeFloatArray
	UniformTypeFloat2Array
	UniformTypeFloat3Array
	UniformTypeFloat4Array
	UniformTypeTexture
	UniformTypeBuffer
)

func (t UniformType) String() string {
	switch t {
	case UniformTypeBool:
		return "bool"
	case UniformTypeInt:
		return "int"
	case UniformTypeInt2:
		return "int2"
	case UniformTypeInt3:
		return "int3"
	case UniformTypeInt4:
		return "int4"
	case UniformTypeFloat:
		return "float"
	case UniformTypeFloat2:
		return "float2"
	case UniformTypeFloat3:
		return "float3"
	case UniformTypeFloat4:
		return "float4"
	case UniformTypeFloat3x3:
		return "float3x3"
	case UniformTypeFloat4x4:
		return "float4x4"
	case UniformTypeFloatArray:
		return "float[]"
	case UniformTypeFloat2Array:
		return "float2[]"
	case UniformTypeFloat3Array:
		return "float3[]"
	case UniformTypeFloat4Array:
		return "float4[]"
	case UniformTypeTexture:
		return "texture"
	case UniformTypeBuffer:
		return "buffer"
	}
	return "none"
}

/** @brief Swap interval for presentation. */
type SwapInterval int

const (
	SwapIntervalFree  SwapInterval = 0
	SwapIntervalVsync SwapInterval = 1
	SwapIntervalFps30 SwapInterval = 2
	SwapIntervalFps15 SwapInterval = 3
)

type StencilFace int

const (
	StencilFaceFront StencilFace = iota
	StencilFaceBack
	StencilFaceAll
)
