package gl

// Native enumerants used by the OpenGL backends. Values are shared by
// desktop GL and GLES where both define them.
const (
	None  = 0
	Zero  = 0
	One   = 1
	False = 0
	True  = 1

	NoError                     = 0
	InvalidEnum                 = 0x0500
	InvalidValue                = 0x0501
	InvalidOperation            = 0x0502
	OutOfMemory                 = 0x0505
	InvalidFramebufferOperation = 0x0506
	InvalidIndex                = 0xFFFFFFFF

	// primitives
	Points        = 0x0000
	Lines         = 0x0001
	LineStrip     = 0x0003
	Triangles     = 0x0004
	TriangleStrip = 0x0005
	TriangleFan   = 0x0006

	// data types
	Byte          = 0x1400
	UnsignedByte  = 0x1401
	Short         = 0x1402
	UnsignedShort = 0x1403
	Int           = 0x1404
	UnsignedInt   = 0x1405
	Float         = 0x1406
	HalfFloat     = 0x140B
	HalfFloatOES  = 0x8D61

	UnsignedShort4444        = 0x8033
	UnsignedShort5551        = 0x8034
	UnsignedShort565         = 0x8363
	UnsignedInt2101010Rev    = 0x8368
	UnsignedInt248           = 0x84FA
	Float32UnsignedInt248Rev = 0x8DAD

	// shader stages
	FragmentShader       = 0x8B30
	VertexShader         = 0x8B31
	GeometryShader       = 0x8DD9
	ComputeShader        = 0x91B9
	TessControlShader    = 0x8E88
	TessEvaluationShader = 0x8E87

	// texture targets
	Texture2D                 = 0x0DE1
	Texture3D                 = 0x806F
	Texture2DArray            = 0x8C1A
	Texture2DMultisample      = 0x9100
	Texture2DMultisampleArray = 0x9102
	TextureCubeMap            = 0x8513
	TextureCubeMapPositiveX   = 0x8515
	TextureCubeMapArray       = 0x9009

	// pixel formats
	StencilIndex   = 0x1901
	DepthComponent = 0x1902
	Red            = 0x1903
	Alpha          = 0x1906
	RGB            = 0x1907
	RGBA           = 0x1908
	Luminance      = 0x1909
	RG             = 0x8227
	DepthStencil   = 0x84F9
	SRGB           = 0x8C40
	SRGBAlphaEXT   = 0x8C42

	// sized internal formats
	StencilIndex8     = 0x8D48
	DepthComponent16  = 0x81A5
	DepthComponent24  = 0x81A6
	DepthComponent32F = 0x8CAC
	Depth24Stencil8   = 0x88F0
	Depth32FStencil8  = 0x8CAD
	RGBA4             = 0x8056
	RGB565            = 0x8D62
	RGB5A1            = 0x8057
	RGB10A2           = 0x8059
	RGB8SNorm         = 0x8F96
	RGBA8SNorm        = 0x8F97
	RGB16SNorm        = 0x8F9A
	RGBA16SNorm       = 0x8F9B
	RGB8              = 0x8051
	RGBA8             = 0x8058
	RGB16             = 0x8054
	RGBA16            = 0x805B
	RGB16F            = 0x881B
	RGB32F            = 0x8815
	RGBA16F           = 0x881A
	RGBA32F           = 0x8814
	SRGB8             = 0x8C41
	SRGB8Alpha8       = 0x8C43
	R8                = 0x8229
	R16F              = 0x822D
	R32F              = 0x822E
	RG16F             = 0x822F
	RG32F             = 0x8230
	R11FG11FB10F      = 0x8C3A

	// compressed formats
	CompressedRGBS3TCDXT1EXT  = 0x83F0
	CompressedRGBAS3TCDXT1EXT = 0x83F1
	CompressedRGBAS3TCDXT3EXT = 0x83F2
	CompressedRGBAS3TCDXT5EXT = 0x83F3
	CompressedRGRGTC2         = 0x8DBD

	// compare functions
	Never    = 0x0200
	Less     = 0x0201
	Equal    = 0x0202
	Lequal   = 0x0203
	Greater  = 0x0204
	Notequal = 0x0205
	Gequal   = 0x0206
	Always   = 0x0207

	// blending
	SrcColor              = 0x0300
	OneMinusSrcColor      = 0x0301
	SrcAlpha              = 0x0302
	OneMinusSrcAlpha      = 0x0303
	DstAlpha              = 0x0304
	OneMinusDstAlpha      = 0x0305
	DstColor              = 0x0306
	OneMinusDstColor      = 0x0307
	SrcAlphaSaturate      = 0x0308
	ConstantColor         = 0x8001
	OneMinusConstantColor = 0x8002
	ConstantAlpha         = 0x8003
	OneMinusConstantAlpha = 0x8004
	FuncAdd               = 0x8006
	FuncSubtract          = 0x800A
	FuncReverseSubtract   = 0x800B

	// rasterizer
	Front        = 0x0404
	Back         = 0x0405
	FrontAndBack = 0x0408
	CW           = 0x0900
	CCW          = 0x0901
	Point        = 0x1B00
	Line         = 0x1B01
	Fill         = 0x1B02

	// stencil operations
	Keep     = 0x1E00
	Replace  = 0x1E01
	Incr     = 0x1E02
	Decr     = 0x1E03
	Invert   = 0x150A
	IncrWrap = 0x8507
	DecrWrap = 0x8508

	// sampling
	Repeat               = 0x2901
	ClampToEdge          = 0x812F
	MirroredRepeat       = 0x8370
	Nearest              = 0x2600
	Linear               = 0x2601
	NearestMipmapNearest = 0x2700
	LinearMipmapNearest  = 0x2701
	NearestMipmapLinear  = 0x2702
	LinearMipmapLinear   = 0x2703

	TextureMagFilter           = 0x2800
	TextureMinFilter           = 0x2801
	TextureWrapS               = 0x2802
	TextureWrapT               = 0x2803
	TextureWrapR               = 0x8072
	TextureBaseLevel           = 0x813C
	TextureMaxLevel            = 0x813D
	TextureCompareMode         = 0x884C
	TextureCompareFunc         = 0x884D
	CompareRefToTexture        = 0x884E
	TextureMaxAnisotropyEXT    = 0x84FE
	MaxTextureMaxAnisotropyEXT = 0x84FF

	// capabilities
	CullFace               = 0x0B44
	DepthTest              = 0x0B71
	StencilTest            = 0x0B90
	Blend                  = 0x0BE2
	ScissorTest            = 0x0C11
	PolygonOffsetFill      = 0x8037
	Multisample            = 0x809D
	TextureCubeMapSeamless = 0x884F
	FramebufferSRGB        = 0x8DB9
	DebugOutput            = 0x92E0
	DebugOutputSynchronous = 0x8242

	// clear bits
	DepthBufferBit   = 0x00000100
	StencilBufferBit = 0x00000400
	ColorBufferBit   = 0x00004000

	UnpackAlignment = 0x0CF5
	PackAlignment   = 0x0D05

	// buffers
	ArrayBuffer        = 0x8892
	ElementArrayBuffer = 0x8893
	UniformBuffer      = 0x8A11
	DrawIndirectBuffer = 0x8F3F
	StreamDraw         = 0x88E0
	StaticDraw         = 0x88E4
	DynamicDraw        = 0x88E8
	MapReadBit         = 0x0001
	MapWriteBit        = 0x0002
	MapInvalidateRange = 0x0004

	// framebuffers
	Framebuffer                            = 0x8D40
	ReadFramebuffer                        = 0x8CA8
	DrawFramebuffer                        = 0x8CA9
	ColorAttachment0                       = 0x8CE0
	DepthAttachment                        = 0x8D00
	StencilAttachment                      = 0x8D20
	DepthStencilAttachment                 = 0x821A
	FramebufferComplete                    = 0x8CD5
	FramebufferIncompleteAttachment        = 0x8CD6
	FramebufferIncompleteMissingAttachment = 0x8CD7
	FramebufferIncompleteDimensions        = 0x8CD9
	FramebufferIncompleteDrawBuffer        = 0x8CDB
	FramebufferIncompleteReadBuffer        = 0x8CDC
	FramebufferUnsupported                 = 0x8CDD
	FramebufferIncompleteMultisample       = 0x8D56
	FramebufferIncompleteLayerTargets      = 0x8DA8

	Texture0 = 0x84C0

	// program queries
	CompileStatus    = 0x8B81
	LinkStatus       = 0x8B82
	InfoLogLength    = 0x8B84
	ActiveUniforms   = 0x8B86
	ActiveAttributes = 0x8B89

	// reflected uniform types
	FloatVec2            = 0x8B50
	FloatVec3            = 0x8B51
	FloatVec4            = 0x8B52
	IntVec2              = 0x8B53
	IntVec3              = 0x8B54
	IntVec4              = 0x8B55
	Bool                 = 0x8B56
	BoolVec2             = 0x8B57
	BoolVec3             = 0x8B58
	BoolVec4             = 0x8B59
	FloatMat2            = 0x8B5A
	FloatMat3            = 0x8B5B
	FloatMat4            = 0x8B5C
	Sampler2D            = 0x8B5E
	Sampler3D            = 0x8B5F
	SamplerCube          = 0x8B60
	Sampler2DShadow      = 0x8B62
	Sampler2DArray       = 0x8DC1
	Sampler2DArrayShadow = 0x8DC4
	SamplerCubeShadow    = 0x8DC5
	SamplerCubeMapArray  = 0x900C
	Sampler2DMultisample = 0x9108
	IntSampler2D         = 0x8DCA
	UnsignedIntSampler2D = 0x8DD2

	// strings
	Vendor                 = 0x1F00
	Renderer               = 0x1F01
	Version                = 0x1F02
	Extensions             = 0x1F03
	ShadingLanguageVersion = 0x8B8C
	NumExtensions          = 0x821D

	// limits
	MaxTextureSize        = 0x0D33
	Max3DTextureSize      = 0x8073
	MaxCubeMapTextureSize = 0x851C
	MaxArrayTextureLayers = 0x88FF
	MaxVertexAttribs      = 0x8869
	MaxUniformBlockSize   = 0x8A30
	MaxColorAttachments   = 0x8CDF
	MaxDrawBuffers        = 0x8824
	MaxViewports          = 0x825B
	MaxViewportDims       = 0x0D3A
	MaxRenderbufferSize   = 0x84E8
	MaxTextureImageUnits  = 0x8872
	MaxSamples            = 0x8D57
	MaxTextureLodBias     = 0x84FD
	MaxElementsIndices    = 0x80E9

	// debug output
	DebugSeverityHigh         = 0x9146
	DebugSeverityMedium       = 0x9147
	DebugSeverityLow          = 0x9148
	DebugSeverityNotification = 0x826B
	DontCare                  = 0x1100
)
