package opengl

import (
	"fmt"

	"github.com/spaghettifunk/ray/engine/containers"
	"github.com/spaghettifunk/ray/engine/core"
	"github.com/spaghettifunk/ray/engine/math"
	"github.com/spaghettifunk/ray/engine/renderer/gl"
	"github.com/spaghettifunk/ray/engine/renderer/metadata"
)

const debugQueueSize = 64

type vertexBinding struct {
	data   metadata.GraphicsData
	offset int
}

// bindings is one side of the deferred binding diff.
type bindings struct {
	layout      metadata.GraphicsInputLayout
	vertex      []vertexBinding
	index       metadata.GraphicsData
	indexOffset int
	indexType   metadata.IndexType
}

func (b *bindings) vertexAt(slot uint32) vertexBinding {
	if int(slot) < len(b.vertex) {
		return b.vertex[slot]
	}
	return vertexBinding{}
}

type textureUnit struct {
	texture uint32
	target  uint32
	sampler uint32
}

type uniformKey struct {
	program uint32
	set     *metadata.UniformSet
}

type blockKey struct {
	program uint32
	name    string
}

// DeviceContext records binds, clears and draws against one native context.
// Bindings set between draws are only sent to the driver when a draw needs
// them, in layout, vertex buffer, index buffer order.
type DeviceContext struct {
	deviceRef
	desc     metadata.ContextDesc
	fns      gl.Functions
	tables   Tables
	features *gl.Features
	es2      bool
	open     bool

	viewports    []metadata.Viewport
	scissors     []metadata.Scissor
	maxViewports uint32
	wireframe    bool

	state         metadata.StateDesc
	pipeline      metadata.GraphicsPipeline
	program       metadata.GraphicsProgram
	descriptorSet metadata.GraphicsDescriptorSet

	pending   bindings
	applied   bindings
	locations []uint32

	units        []textureUnit
	samplerUnits map[uint32]bool
	uploaded     map[uniformKey]uint64
	blocks       map[blockKey]uint32

	framebuffer  metadata.GraphicsFramebuffer
	clearColor   math.Vec4
	clearDepth   float32
	clearStencil int32

	debug *containers.RingQueue[gl.DebugMessage]
}

var _ metadata.GraphicsContext = (*DeviceContext)(nil)

// NewDeviceContext creates a context and opens it.
func NewDeviceContext(device *Device, desc metadata.ContextDesc) (*DeviceContext, error) {
	c := &DeviceContext{
		deviceRef: device.ref(),
		desc:      desc,
		fns:       device.fns,
		tables:    device.tables,
		features:  device.features,
		es2:       device.isES2(),
	}
	if err := c.Open(); err != nil {
		return nil, err
	}
	return c, nil
}

// Open seeds the default state once. Calling it on an open context does
// nothing.
func (c *DeviceContext) Open() error {
	if c.open {
		return nil
	}
	device, err := c.owner()
	if err != nil {
		return err
	}
	if c.desc.Swapchain != nil {
		c.desc.Swapchain.SetActive(true)
	}
	props := device.properties

	if device.desc.Debug {
		c.initDebugControl()
	}

	fns := c.fns
	fns.ClearDepthf(1)
	fns.ClearColor(0, 0, 0, 0)
	fns.ClearStencil(0)
	fns.PixelStorei(gl.UnpackAlignment, 1)
	c.clearColor = math.Vec4{}
	c.clearDepth = 1
	c.clearStencil = 0

	c.state = metadata.DefaultStateDesc()
	c.stateApplier().apply(&c.state, metadata.DefaultStateDesc(), true)

	c.maxViewports = max(props.MaxViewports, 1)
	c.viewports = make([]metadata.Viewport, c.maxViewports)
	c.scissors = make([]metadata.Scissor, c.maxViewports)
	c.units = make([]textureUnit, max(props.MaxPerStageDescriptorSamplers, 1))
	c.samplerUnits = make(map[uint32]bool)
	c.uploaded = make(map[uniformKey]uint64)
	c.blocks = make(map[blockKey]uint32)
	c.pending = bindings{}
	c.applied = bindings{}
	c.wireframe = false

	c.open = true
	core.LogDebug("opengl: context open, %d viewports, %d texture units", c.maxViewports, len(c.units))
	return nil
}

func (c *DeviceContext) initDebugControl() {
	if c.es2 || !c.features.DebugOutput {
		core.LogWarn("opengl: debug output is not supported by this context")
		return
	}
	c.fns.Enable(gl.DebugOutput)
	c.fns.Enable(gl.DebugOutputSynchronous)
	c.fns.DebugMessageControl(gl.DontCare, gl.DontCare, gl.DontCare, true)
	c.debug = containers.NewRingQueue[gl.DebugMessage](debugQueueSize)
}

func (c *DeviceContext) stateApplier() stateApplier {
	return stateApplier{fns: c.fns, tables: c.tables, features: c.features, es2: c.es2}
}

func (c *DeviceContext) IsOpen() bool {
	return c.open
}

// Close unbinds everything the context holds. The native context belongs
// to the swapchain canvas.
func (c *DeviceContext) Close() {
	if !c.open {
		return
	}
	if c.program != nil {
		c.deactivateProgram(c.program)
		c.fns.UseProgram(0)
	}
	if c.applied.layout != nil && usesVertexArraysFor(c) {
		c.fns.BindVertexArray(0)
	}
	if c.framebuffer != nil {
		c.framebuffer.SetActive(false)
		c.fns.BindFramebuffer(gl.Framebuffer, 0)
	}
	c.pipeline, c.program, c.descriptorSet, c.framebuffer = nil, nil, nil, nil
	c.pending, c.applied = bindings{}, bindings{}
	c.locations = nil
	c.units = nil
	c.uploaded = nil
	c.debug = nil
	c.open = false
}

func usesVertexArraysFor(c *DeviceContext) bool {
	return c.features.VertexArrayObject && !c.es2
}

func (c *DeviceContext) Desc() metadata.ContextDesc {
	return c.desc
}

func (c *DeviceContext) checkViewportIndex(what string, i uint32) bool {
	if i >= c.maxViewports {
		err := fmt.Errorf("%s %d of %d: %w", what, i, c.maxViewports, core.ErrOutOfRange)
		core.LogError(err.Error())
		return false
	}
	return true
}

func (c *DeviceContext) SetViewport(i uint32, viewport metadata.Viewport) {
	if !c.open || !c.checkViewportIndex("viewport", i) {
		return
	}
	if c.viewports[i] == viewport {
		return
	}
	if c.maxViewports > 1 {
		c.fns.ViewportIndexedf(i, viewport.Left, viewport.Top, viewport.Width, viewport.Height)
	} else {
		c.fns.Viewport(int32(viewport.Left), int32(viewport.Top), int32(viewport.Width), int32(viewport.Height))
	}
	c.viewports[i] = viewport
}

func (c *DeviceContext) Viewport(i uint32) metadata.Viewport {
	if int(i) >= len(c.viewports) {
		return metadata.Viewport{}
	}
	return c.viewports[i]
}

func (c *DeviceContext) SetScissor(i uint32, scissor metadata.Scissor) {
	if !c.open || !c.checkViewportIndex("scissor", i) {
		return
	}
	if c.scissors[i] == scissor {
		return
	}
	if c.maxViewports > 1 {
		c.fns.ScissorIndexed(i, scissor.Left, scissor.Top, int32(scissor.Width), int32(scissor.Height))
	} else {
		c.fns.Scissor(scissor.Left, scissor.Top, int32(scissor.Width), int32(scissor.Height))
	}
	c.scissors[i] = scissor
}

func (c *DeviceContext) Scissor(i uint32) metadata.Scissor {
	if int(i) >= len(c.scissors) {
		return metadata.Scissor{}
	}
	return c.scissors[i]
}

// SetWireframe draws the hybrid topologies as lines while enabled.
func (c *DeviceContext) SetWireframe(enable bool) {
	c.wireframe = enable
}

func (c *DeviceContext) Wireframe() bool {
	return c.wireframe
}

func (c *DeviceContext) SetSwapInterval(interval metadata.SwapInterval) {
	if c.desc.Swapchain != nil {
		c.desc.Swapchain.SetSwapInterval(interval)
	}
}

func (c *DeviceContext) SwapInterval() metadata.SwapInterval {
	if c.desc.Swapchain != nil {
		return c.desc.Swapchain.SwapInterval()
	}
	return metadata.SwapIntervalFree
}

func (c *DeviceContext) stencilFaces(face metadata.StencilFace) []*metadata.StencilFaceState {
	switch face {
	case metadata.StencilFaceFront:
		return []*metadata.StencilFaceState{&c.state.StencilFront}
	case metadata.StencilFaceBack:
		return []*metadata.StencilFaceState{&c.state.StencilBack}
	}
	return []*metadata.StencilFaceState{&c.state.StencilFront, &c.state.StencilBack}
}

func (c *DeviceContext) glFace(s *metadata.StencilFaceState) uint32 {
	if s == &c.state.StencilBack {
		return gl.Back
	}
	return gl.Front
}

func (c *DeviceContext) SetStencilCompareMask(face metadata.StencilFace, mask uint32) {
	for _, s := range c.stencilFaces(face) {
		if s.ReadMask == mask {
			continue
		}
		s.ReadMask = mask
		c.fns.StencilFuncSeparate(c.glFace(s), c.tables.CompareFunction(s.Func), s.Ref, s.ReadMask)
	}
}

func (c *DeviceContext) SetStencilReference(face metadata.StencilFace, ref int32) {
	for _, s := range c.stencilFaces(face) {
		if s.Ref == ref {
			continue
		}
		s.Ref = ref
		c.fns.StencilFuncSeparate(c.glFace(s), c.tables.CompareFunction(s.Func), s.Ref, s.ReadMask)
	}
}

func (c *DeviceContext) SetStencilWriteMask(face metadata.StencilFace, mask uint32) {
	for _, s := range c.stencilFaces(face) {
		if s.WriteMask == mask {
			continue
		}
		s.WriteMask = mask
		c.fns.StencilMaskSeparate(c.glFace(s), mask)
	}
}

// SetRenderPipeline makes the pipeline's program current and applies its
// state. Setting the current pipeline again re-applies the program without
// deactivating it. The pipeline's input layout, when it has one, becomes
// the pending layout.
func (c *DeviceContext) SetRenderPipeline(pipeline metadata.GraphicsPipeline) {
	if !c.open {
		return
	}
	if pipeline == nil {
		if c.program != nil {
			c.deactivateProgram(c.program)
			c.fns.UseProgram(0)
		}
		c.pipeline, c.program = nil, nil
		return
	}

	desc := pipeline.Desc()
	program := desc.Program
	if c.program != nil && c.program != program {
		c.deactivateProgram(c.program)
	}
	if c.program != program {
		// attribute locations belong to the program
		c.applied.layout = nil
	}
	c.activateProgram(program)
	c.program = program

	next := metadata.DefaultStateDesc()
	if desc.State != nil {
		next = desc.State.Desc()
	}
	c.stateApplier().apply(&c.state, next, false)

	if desc.InputLayout != nil {
		c.pending.layout = desc.InputLayout
	}
	c.pipeline = pipeline
}

func (c *DeviceContext) RenderPipeline() metadata.GraphicsPipeline {
	return c.pipeline
}

// activateProgram binds the program and, the first time, points its
// samplers at their texture units.
func (c *DeviceContext) activateProgram(program metadata.GraphicsProgram) {
	id := program.InstanceID()
	c.fns.UseProgram(id)
	if c.samplerUnits[id] {
		return
	}
	for _, u := range program.Uniforms() {
		if u.Type == metadata.UniformTypeTexture {
			c.fns.Uniform1i(u.Location, int32(u.Binding))
		}
	}
	c.samplerUnits[id] = true
}

// deactivateProgram releases per-program vertex state. Without vertex array
// objects the enabled attribute arrays belong to the context.
func (c *DeviceContext) deactivateProgram(program metadata.GraphicsProgram) {
	if !c.es2 {
		return
	}
	for _, a := range program.Attributes() {
		c.fns.DisableVertexAttribArray(a.Location)
	}
	c.applied.layout = nil
}

func (c *DeviceContext) SetDescriptorSet(set metadata.GraphicsDescriptorSet) {
	c.descriptorSet = set
}

func (c *DeviceContext) DescriptorSet() metadata.GraphicsDescriptorSet {
	return c.descriptorSet
}

func (c *DeviceContext) SetInputLayout(layout metadata.GraphicsInputLayout) {
	c.pending.layout = layout
}

func (c *DeviceContext) SetVertexBufferData(i uint32, data metadata.GraphicsData, offset int) {
	for int(i) >= len(c.pending.vertex) {
		c.pending.vertex = append(c.pending.vertex, vertexBinding{})
	}
	c.pending.vertex[i] = vertexBinding{data: data, offset: offset}
}

func (c *DeviceContext) VertexBufferData(i uint32) metadata.GraphicsData {
	return c.pending.vertexAt(i).data
}

// SetIndexBufferData binds an index buffer. IndexTypeNone takes the index
// type from the input layout at draw time.
func (c *DeviceContext) SetIndexBufferData(data metadata.GraphicsData, offset int, indexType metadata.IndexType) {
	c.pending.index = data
	c.pending.indexOffset = offset
	c.pending.indexType = indexType
}

func (c *DeviceContext) IndexBufferData() metadata.GraphicsData {
	return c.pending.index
}

func (c *DeviceContext) UpdateBuffer(data metadata.GraphicsData, offset int, bytes []byte) error {
	if !c.open {
		return core.ErrContextClosed
	}
	if data == nil {
		return fmt.Errorf("update buffer: nil buffer: %w", core.ErrInvalidDesc)
	}
	return data.Update(offset, bytes)
}

func (c *DeviceContext) MapBuffer(data metadata.GraphicsData, offset, count int) ([]byte, error) {
	if !c.open {
		return nil, core.ErrContextClosed
	}
	if data == nil {
		return nil, fmt.Errorf("map buffer: nil buffer: %w", core.ErrInvalidDesc)
	}
	return data.Map(offset, count)
}

func (c *DeviceContext) UnmapBuffer(data metadata.GraphicsData) {
	if data != nil {
		data.Unmap()
	}
}

// SetTexture binds a texture and optional sampler to a texture unit. On
// profiles without sampler objects the sampler state is written onto the
// texture.
func (c *DeviceContext) SetTexture(unit uint32, texture metadata.GraphicsTexture, sampler metadata.GraphicsSampler) {
	if !c.open {
		return
	}
	if int(unit) >= len(c.units) {
		err := fmt.Errorf("texture unit %d of %d: %w", unit, len(c.units), core.ErrOutOfRange)
		core.LogError(err.Error())
		return
	}

	next := textureUnit{target: gl.Texture2D}
	if texture != nil {
		desc := texture.Desc()
		next.texture = texture.InstanceID()
		next.target = c.tables.TextureTarget(desc.Dim, desc.IsMultisample())
	}
	if sampler != nil {
		next.sampler = sampler.InstanceID()
	}
	cur := c.units[unit]
	if cur == next {
		return
	}

	c.fns.ActiveTexture(gl.Texture0 + unit)
	if cur.texture != 0 && cur.target != next.target {
		c.fns.BindTexture(cur.target, 0)
	}
	c.fns.BindTexture(next.target, next.texture)
	if c.es2 || !c.features.SamplerObjects {
		if sampler != nil && texture != nil {
			s := sampler.Desc()
			applyTextureSampling(c.fns, c.features, next.target, s.Wrap, s.Filter, s.Anis)
		}
	} else if cur.sampler != next.sampler {
		c.fns.BindSampler(unit, next.sampler)
	}
	c.units[unit] = next
}

// SetFramebuffer deactivates the current render target and activates the
// new one, resetting viewport 0 to its size. Nil binds the default
// framebuffer.
func (c *DeviceContext) SetFramebuffer(target metadata.GraphicsFramebuffer) {
	if !c.open || c.framebuffer == target {
		return
	}
	if c.framebuffer != nil {
		c.framebuffer.SetActive(false)
	}
	c.framebuffer = target
	if target == nil {
		c.fns.BindFramebuffer(gl.Framebuffer, 0)
		return
	}
	target.SetActive(true)
	if resolve := target.ResolveTexture(); resolve != nil {
		desc := resolve.Desc()
		c.SetViewport(0, metadata.NewViewport(0, 0, float32(desc.Width), float32(desc.Height)))
	}
}

func (c *DeviceContext) SetFramebufferLayer(target metadata.GraphicsFramebuffer, layer uint32) {
	if target == nil {
		return
	}
	c.SetFramebuffer(target)
	target.SetLayer(layer)
}

func (c *DeviceContext) Framebuffer() metadata.GraphicsFramebuffer {
	return c.framebuffer
}

// ClearFramebuffer clears the bound target. Clear values are only sent when
// they change, and depth writes are enabled for the duration of a depth
// clear.
func (c *DeviceContext) ClearFramebuffer(i uint32, flags metadata.ClearFlags, color math.Vec4, depth float32, stencil int32) {
	if !c.open {
		return
	}
	var mask uint32
	if flags&metadata.ClearFlagColor != 0 {
		mask |= gl.ColorBufferBit
		if c.clearColor != color {
			c.fns.ClearColor(color.X, color.Y, color.Z, color.W)
			c.clearColor = color
		}
	}
	if flags&metadata.ClearFlagDepth != 0 {
		mask |= gl.DepthBufferBit
		if c.clearDepth != depth {
			c.fns.ClearDepthf(depth)
			c.clearDepth = depth
		}
	}
	if flags&metadata.ClearFlagStencil != 0 {
		mask |= gl.StencilBufferBit
		if c.clearStencil != stencil {
			c.fns.ClearStencil(stencil)
			c.clearStencil = stencil
		}
	}
	if mask == 0 {
		return
	}

	forceDepthWrite := mask&gl.DepthBufferBit != 0 && !c.state.DepthWrite
	if forceDepthWrite {
		c.fns.DepthMask(true)
	}
	c.fns.Clear(mask)
	if forceDepthWrite {
		c.fns.DepthMask(false)
	}
}

func (c *DeviceContext) DiscardFramebuffer(target metadata.GraphicsFramebuffer, attachments []uint32) {
	if !c.open || target == nil {
		return
	}
	c.SetFramebuffer(target)
	target.Discard(attachments)
}

// BlitFramebuffer copies color between targets; nil names the default
// framebuffer. ES2 has no blit.
func (c *DeviceContext) BlitFramebuffer(src metadata.GraphicsFramebuffer, srcRect metadata.Viewport, dest metadata.GraphicsFramebuffer, destRect metadata.Viewport) {
	if !c.open {
		return
	}
	if c.es2 || !c.features.BlitFramebuffer {
		core.LogWarn("opengl: blit framebuffer is not supported by this context")
		return
	}
	c.fns.BindFramebuffer(gl.ReadFramebuffer, framebufferID(src))
	c.fns.BindFramebuffer(gl.DrawFramebuffer, framebufferID(dest))

	filter := uint32(gl.Nearest)
	if srcRect.Width != destRect.Width || srcRect.Height != destRect.Height {
		filter = gl.Linear
	}
	c.fns.BlitFramebuffer(
		int32(srcRect.Left), int32(srcRect.Top), int32(srcRect.Left+srcRect.Width), int32(srcRect.Top+srcRect.Height),
		int32(destRect.Left), int32(destRect.Top), int32(destRect.Left+destRect.Width), int32(destRect.Top+destRect.Height),
		gl.ColorBufferBit, filter)

	c.fns.BindFramebuffer(gl.Framebuffer, framebufferID(c.framebuffer))
}

func framebufferID(target metadata.GraphicsFramebuffer) uint32 {
	if target == nil {
		return 0
	}
	return target.InstanceID()
}

// ReadFramebuffer reads back a region of the target's first color
// attachment in the given format.
func (c *DeviceContext) ReadFramebuffer(target metadata.GraphicsFramebuffer, x, y int32, width, height uint32, format metadata.TextureFormat) ([]byte, error) {
	if !c.open {
		return nil, core.ErrContextClosed
	}
	glFormat := c.tables.TextureFormat(format)
	glType := c.tables.TextureType(format)
	size := format.PixelSize()
	if glFormat == gl.InvalidEnum || glType == gl.InvalidEnum || size == 0 {
		err := fmt.Errorf("read framebuffer: format %d: %w", format, core.ErrUnsupported)
		core.LogError(err.Error())
		return nil, err
	}
	if width == 0 || height == 0 {
		return nil, fmt.Errorf("read framebuffer: empty region: %w", core.ErrInvalidDesc)
	}
	c.SetFramebuffer(target)
	pixels := make([]byte, int(width)*int(height)*size)
	c.fns.ReadPixels(x, y, int32(width), int32(height), glFormat, glType, pixels)
	return pixels, nil
}

func (c *DeviceContext) Draw(vertexCount, instanceCount, startVertice, startInstances uint32) {
	c.DrawRenderBuffer(metadata.RenderIndirect{
		NumVertices:    vertexCount,
		NumInstances:   instanceCount,
		StartVertice:   startVertice,
		StartInstances: startInstances,
	})
}

func (c *DeviceContext) DrawIndexed(indexCount, instanceCount, startIndice, startVertice, startInstances uint32) {
	c.DrawRenderBuffer(metadata.RenderIndirect{
		NumIndices:     indexCount,
		NumInstances:   instanceCount,
		StartIndice:    startIndice,
		StartVertice:   startVertice,
		StartInstances: startInstances,
	})
}

// DrawRenderBuffer validates the pending bindings against the draw and
// silently skips it when a buffer is missing or too small.
func (c *DeviceContext) DrawRenderBuffer(r metadata.RenderIndirect) {
	if !c.open || c.program == nil || c.pending.layout == nil {
		return
	}
	layout := c.pending.layout.Desc()
	vbo := c.pending.vertexAt(0)
	if vbo.data == nil {
		return
	}
	stride := layout.VertexSize(0)
	if vbo.data.Size() < vbo.offset+stride*(int(r.StartVertice)+int(r.NumVertices)) {
		return
	}

	indexType := c.pending.indexType
	if indexType == metadata.IndexTypeNone {
		indexType = layout.IndexType
	}
	indexed := indexType != metadata.IndexTypeNone
	if indexed {
		ibo := c.pending.index
		if ibo == nil {
			return
		}
		if ibo.Size() < c.pending.indexOffset+indexType.Size()*(int(r.StartIndice)+int(r.NumIndices)) {
			return
		}
	}

	topology := layout.Topology
	if c.wireframe && topology.IsHybrid() {
		topology = metadata.VertexTypeLine
	}
	mode := c.tables.VertexType(topology)

	c.flush()
	c.uploadUniforms()

	instances := int32(max(r.NumInstances, 1))
	instanced := instances > 1 && c.features.Instancing
	if indexed {
		offset := c.pending.indexOffset + indexType.Size()*int(r.StartIndice)
		xtype := c.tables.IndexType(indexType)
		if instanced {
			c.fns.DrawElementsInstanced(mode, int32(r.NumIndices), xtype, offset, instances)
		} else {
			c.fns.DrawElements(mode, int32(r.NumIndices), xtype, offset)
		}
		return
	}
	if instanced {
		c.fns.DrawArraysInstanced(mode, int32(r.StartVertice), int32(r.NumVertices), instances)
	} else {
		c.fns.DrawArrays(mode, int32(r.StartVertice), int32(r.NumVertices))
	}
}

// DrawIndirect needs indirect draw buffers, which no GL profile here
// exposes.
func (c *DeviceContext) DrawIndirect(data metadata.GraphicsData, offset int, drawCount uint32) {
	core.LogWarn("opengl: draw indirect is not supported")
}

// flush sends the pending bindings that differ from the applied ones. A new
// layout invalidates the vertex buffers, and with vertex array objects the
// index buffer too, since both are recorded in the array object.
func (c *DeviceContext) flush() {
	fns := c.fns
	vao := usesVertexArraysFor(c)
	desc := c.pending.layout.Desc()

	if c.pending.layout != c.applied.layout {
		if vao {
			fns.BindVertexArray(c.pending.layout.InstanceID())
			c.applied.index = nil
		} else if c.locations != nil && c.applied.layout != nil {
			disableAttributes(fns, c.applied.layout.Desc(), c.locations)
		}
		c.locations = attributeLocations(desc, c.program)
		c.applied.layout = c.pending.layout
		c.applied.vertex = nil
	}

	for slot, b := range c.pending.vertex {
		if b.data == nil || c.applied.vertexAt(uint32(slot)) == b {
			continue
		}
		fns.BindBuffer(gl.ArrayBuffer, b.data.InstanceID())
		specifyAttributes(fns, c.tables, desc, c.locations, uint32(slot), b.offset, !c.es2)
		for len(c.applied.vertex) <= slot {
			c.applied.vertex = append(c.applied.vertex, vertexBinding{})
		}
		c.applied.vertex[slot] = b
	}

	if c.pending.index != c.applied.index {
		var id uint32
		if c.pending.index != nil {
			id = c.pending.index.InstanceID()
		}
		fns.BindBuffer(gl.ElementArrayBuffer, id)
		c.applied.index = c.pending.index
	}
}

// uploadUniforms writes every value of the bound descriptor set whose
// version changed since it was last written to the current program.
func (c *DeviceContext) uploadUniforms() {
	if c.descriptorSet == nil {
		return
	}
	program := c.program
	id := program.InstanceID()
	for _, set := range c.descriptorSet.UniformSets() {
		if set.Type() == metadata.UniformTypeTexture {
			if u, ok := program.Uniform(set.Name()); ok {
				c.SetTexture(u.Binding, set.Texture(), set.Sampler())
			}
			continue
		}
		key := uniformKey{program: id, set: set}
		if c.uploaded[key] == set.Version() {
			continue
		}
		c.uploaded[key] = set.Version()

		if set.Type() == metadata.UniformTypeBuffer {
			c.bindUniformBlock(program, set)
			continue
		}
		u, ok := program.Uniform(set.Name())
		if !ok {
			continue
		}
		if u.Type != set.Type() {
			core.LogWarn("opengl: uniform '%s' is %s in program %d, set holds %s", set.Name(), u.Type, id, set.Type())
			continue
		}
		c.uploadUniform(u.Location, set)
	}
}

func (c *DeviceContext) uploadUniform(location int32, set *metadata.UniformSet) {
	fns := c.fns
	switch set.Type() {
	case metadata.UniformTypeBool:
		v := int32(0)
		if set.Bool() {
			v = 1
		}
		fns.Uniform1i(location, v)
	case metadata.UniformTypeInt:
		fns.Uniform1i(location, set.Int())
	case metadata.UniformTypeInt2:
		v := set.Int4()
		fns.Uniform2iv(location, []int32{v.X, v.Y})
	case metadata.UniformTypeInt3:
		v := set.Int4()
		fns.Uniform3iv(location, []int32{v.X, v.Y, v.Z})
	case metadata.UniformTypeInt4:
		v := set.Int4()
		fns.Uniform4iv(location, []int32{v.X, v.Y, v.Z, v.W})
	case metadata.UniformTypeFloat:
		fns.Uniform1f(location, set.Float())
	case metadata.UniformTypeFloat2:
		v := set.Float4()
		fns.Uniform2fv(location, []float32{v.X, v.Y})
	case metadata.UniformTypeFloat3:
		v := set.Float4()
		fns.Uniform3fv(location, []float32{v.X, v.Y, v.Z})
	case metadata.UniformTypeFloat4:
		v := set.Float4()
		fns.Uniform4fv(location, []float32{v.X, v.Y, v.Z, v.W})
	case metadata.UniformTypeFloat3x3:
		m := set.Float3x3()
		fns.UniformMatrix3fv(location, false, m.Data[:])
	case metadata.UniformTypeFloat4x4:
		m := set.Float4x4()
		fns.UniformMatrix4fv(location, false, m.Data[:])
	case metadata.UniformTypeFloatArray:
		fns.Uniform1fv(location, set.FloatArray())
	case metadata.UniformTypeFloat2Array:
		fns.Uniform2fv(location, set.FloatArray())
	case metadata.UniformTypeFloat3Array:
		fns.Uniform3fv(location, set.FloatArray())
	case metadata.UniformTypeFloat4Array:
		fns.Uniform4fv(location, set.FloatArray())
	}
}

// bindUniformBlock attaches a buffer to the block of the same name,
// assigning the program's next binding point on first use.
func (c *DeviceContext) bindUniformBlock(program metadata.GraphicsProgram, set *metadata.UniformSet) {
	buffer := set.Buffer()
	if buffer == nil {
		return
	}
	key := blockKey{program: program.InstanceID(), name: set.Name()}
	binding, ok := c.blocks[key]
	if !ok {
		index := c.fns.GetUniformBlockIndex(key.program, key.name)
		if index == gl.InvalidIndex {
			return
		}
		for k := range c.blocks {
			if k.program == key.program {
				binding++
			}
		}
		c.fns.UniformBlockBinding(key.program, index, binding)
		c.blocks[key] = binding
	}
	c.fns.BindBufferBase(gl.UniformBuffer, binding, buffer.InstanceID())
}

// Present logs the debug messages of the frame and swaps.
func (c *DeviceContext) Present() {
	if !c.open {
		return
	}
	if c.debug != nil {
		for _, m := range c.fns.DebugMessages(debugQueueSize) {
			if c.debug.IsFull() {
				c.debug.Dequeue()
			}
			c.debug.Enqueue(m)
		}
		c.debug.Drain(logDebugMessage)
	}
	if c.desc.Swapchain != nil {
		c.desc.Swapchain.Present()
	}
}

func logDebugMessage(m gl.DebugMessage) {
	switch m.Severity {
	case gl.DebugSeverityHigh:
		core.LogError("opengl: [%d] %s", m.ID, m.Message)
	case gl.DebugSeverityMedium:
		core.LogWarn("opengl: [%d] %s", m.ID, m.Message)
	default:
		core.LogDebug("opengl: [%d] %s", m.ID, m.Message)
	}
}
