package metadata

import "github.com/spaghettifunk/ray/engine/math"

// GraphicsResource is implemented by everything a device creates. Device
// returns nil once the owning device is gone; it never keeps it alive.
type GraphicsResource interface {
	Close()
	Device() GraphicsDevice
}

// GraphicsTexture is a sampled or render-target image.
type GraphicsTexture interface {
	GraphicsResource
	InstanceID() uint32
	Desc() TextureDesc
}

type GraphicsSampler interface {
	GraphicsResource
	InstanceID() uint32
	Desc() SamplerDesc
}

// GraphicsData is a vertex, index or uniform buffer.
type GraphicsData interface {
	GraphicsResource
	InstanceID() uint32
	Desc() DataDesc
	Size() int
	Resize(size int) error
	Update(offset int, data []byte) error
	Map(offset, count int) ([]byte, error)
	Unmap()
}

type GraphicsInputLayout interface {
	GraphicsResource
	InstanceID() uint32
	Desc() InputLayoutDesc
}

type GraphicsFramebufferLayout interface {
	GraphicsResource
	Desc() FramebufferLayoutDesc
}

// GraphicsFramebuffer is a render texture. Only one framebuffer is active
// per context at a time.
type GraphicsFramebuffer interface {
	GraphicsResource
	InstanceID() uint32
	Desc() FramebufferDesc
	SetActive(active bool)
	Active() bool
	SetLayer(layer uint32)
	Layer() uint32
	Discard(attachments []uint32)
	ResolveTexture() GraphicsTexture
}

type GraphicsState interface {
	GraphicsResource
	Desc() StateDesc
}

type GraphicsShader interface {
	GraphicsResource
	InstanceID() uint32
	Desc() ShaderDesc
}

type GraphicsProgram interface {
	GraphicsResource
	InstanceID() uint32
	Desc() ProgramDesc
	Uniforms() []ProgramUniform
	Uniform(name string) (ProgramUniform, bool)
	Attributes() []ProgramAttribute
}

type GraphicsPipeline interface {
	GraphicsResource
	Desc() PipelineDesc
}

type GraphicsDescriptorSetLayout interface {
	GraphicsResource
	Desc() DescriptorSetLayoutDesc
}

// GraphicsDescriptorPool bounds how many descriptor sets, and how many
// uniforms of each type, can be live at once.
type GraphicsDescriptorPool interface {
	GraphicsResource
	Desc() DescriptorPoolDesc
	Allocate(owner any, uniforms []UniformLayout) (uint32, error)
	Free(slot uint32)
}

type GraphicsDescriptorSet interface {
	GraphicsResource
	Desc() DescriptorSetDesc
	UniformSets() []*UniformSet
	UniformSet(name string) *UniformSet
}

// GraphicsSwapchain owns presentation to a canvas.
type GraphicsSwapchain interface {
	GraphicsResource
	Desc() SwapchainDesc
	SetActive(active bool)
	Active() bool
	SetSwapInterval(interval SwapInterval)
	SwapInterval() SwapInterval
	SetWindowResolution(width, height uint32)
	WindowResolution() (uint32, uint32)
	FramebufferScale() (float32, float32)
	Present()
}

// GraphicsContext issues every bind, clear and draw for one native context.
// All calls must happen on the thread owning that context.
type GraphicsContext interface {
	GraphicsResource
	Desc() ContextDesc

	Open() error
	IsOpen() bool

	SetViewport(i uint32, viewport Viewport)
	Viewport(i uint32) Viewport
	SetScissor(i uint32, scissor Scissor)
	Scissor(i uint32) Scissor
	SetWireframe(enable bool)
	Wireframe() bool
	SetSwapInterval(interval SwapInterval)
	SwapInterval() SwapInterval

	SetStencilCompareMask(face StencilFace, mask uint32)
	SetStencilReference(face StencilFace, ref int32)
	SetStencilWriteMask(face StencilFace, mask uint32)

	SetRenderPipeline(pipeline GraphicsPipeline)
	RenderPipeline() GraphicsPipeline
	SetDescriptorSet(set GraphicsDescriptorSet)
	DescriptorSet() GraphicsDescriptorSet

	SetInputLayout(layout GraphicsInputLayout)
	SetVertexBufferData(i uint32, data GraphicsData, offset int)
	VertexBufferData(i uint32) GraphicsData
	SetIndexBufferData(data GraphicsData, offset int, indexType IndexType)
	IndexBufferData() GraphicsData

	UpdateBuffer(data GraphicsData, offset int, bytes []byte) error
	MapBuffer(data GraphicsData, offset, count int) ([]byte, error)
	UnmapBuffer(data GraphicsData)

	SetTexture(unit uint32, texture GraphicsTexture, sampler GraphicsSampler)

	SetFramebuffer(target GraphicsFramebuffer)
	SetFramebufferLayer(target GraphicsFramebuffer, layer uint32)
	Framebuffer() GraphicsFramebuffer
	ClearFramebuffer(i uint32, flags ClearFlags, color math.Vec4, depth float32, stencil int32)
	DiscardFramebuffer(target GraphicsFramebuffer, attachments []uint32)
	BlitFramebuffer(src GraphicsFramebuffer, srcRect Viewport, dest GraphicsFramebuffer, destRect Viewport)
	ReadFramebuffer(target GraphicsFramebuffer, x, y int32, width, height uint32, format TextureFormat) ([]byte, error)

	Draw(vertexCount, instanceCount, startVertice, startInstances uint32)
	DrawIndexed(indexCount, instanceCount, startIndice, startVertice, startInstances uint32)
	DrawRenderBuffer(indirect RenderIndirect)
	DrawIndirect(data GraphicsData, offset int, drawCount uint32)

	Present()
}

// GraphicsDevice is the resource factory of one backend.
type GraphicsDevice interface {
	Desc() DeviceDesc
	Properties() DeviceProperties
	Close()

	CreateSwapchain(desc SwapchainDesc) (GraphicsSwapchain, error)
	CreateDeviceContext(desc ContextDesc) (GraphicsContext, error)
	CreateTexture(desc TextureDesc) (GraphicsTexture, error)
	CreateSampler(desc SamplerDesc) (GraphicsSampler, error)
	CreateGraphicsData(desc DataDesc) (GraphicsData, error)
	CreateInputLayout(desc InputLayoutDesc) (GraphicsInputLayout, error)
	CreateFramebufferLayout(desc FramebufferLayoutDesc) (GraphicsFramebufferLayout, error)
	CreateFramebuffer(desc FramebufferDesc) (GraphicsFramebuffer, error)
	CreateState(desc StateDesc) (GraphicsState, error)
	CreateShader(desc ShaderDesc) (GraphicsShader, error)
	CreateProgram(desc ProgramDesc) (GraphicsProgram, error)
	CreatePipeline(desc PipelineDesc) (GraphicsPipeline, error)
	CreateDescriptorSetLayout(desc DescriptorSetLayoutDesc) (GraphicsDescriptorSetLayout, error)
	CreateDescriptorPool(desc DescriptorPoolDesc) (GraphicsDescriptorPool, error)
	CreateDescriptorSet(desc DescriptorSetDesc) (GraphicsDescriptorSet, error)
}
