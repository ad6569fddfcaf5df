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

func TestGraphicsDataUpload(t *testing.T) {
	r := gltest.NewRecorder()
	device := newDevice(t, metadata.DeviceTypeOpenGLCore, r)

	data, err := opengl.NewGraphicsData(device, metadata.DataDesc{
		Type:   metadata.DataTypeVertex,
		Usage:  metadata.UsageDynamicBit,
		Stride: 12,
		Stream: make([]byte, 36),
	})
	require.NoError(t, err)

	assert.Equal(t, 36, data.Size())
	assert.Equal(t, 36, data.Desc().Size())
	assert.Equal(t, 3, data.Desc().ElementCount())
	assert.Nil(t, data.Desc().Stream)

	call, ok := r.Last("BufferData")
	require.True(t, ok)
	assert.Equal(t, []any{uint32(gl.ArrayBuffer), 36, 36, uint32(gl.DynamicDraw)}, call.Args)
}

func TestGraphicsDataUpdateOutOfRange(t *testing.T) {
	r := gltest.NewRecorder()
	device := newDevice(t, metadata.DeviceTypeOpenGLCore, r)

	data, err := opengl.NewGraphicsData(device, metadata.DataDesc{Type: metadata.DataTypeVertex, StreamSize: 16})
	require.NoError(t, err)

	assert.ErrorIs(t, data.Update(8, make([]byte, 16)), core.ErrOutOfRange)
	assert.Zero(t, r.Count("BufferSubData"))
	assert.NoError(t, data.Update(8, make([]byte, 8)))
	assert.Equal(t, 1, r.Count("BufferSubData"))
}

func TestGraphicsDataMapCore(t *testing.T) {
	r := gltest.NewRecorder()
	device := newDevice(t, metadata.DeviceTypeOpenGLCore, r)

	data, err := opengl.NewGraphicsData(device, metadata.DataDesc{Type: metadata.DataTypeVertex, StreamSize: 8})
	require.NoError(t, err)

	mem, err := data.Map(0, 4)
	require.NoError(t, err)
	copy(mem, []byte{1, 2, 3, 4})
	data.Unmap()

	assert.Equal(t, 1, r.Count("MapBufferRange"))
	assert.Equal(t, 1, r.Count("UnmapBuffer"))
	assert.Equal(t, []byte{1, 2, 3, 4, 0, 0, 0, 0}, r.Buffers[data.InstanceID()])
}

func TestGraphicsDataMapES2WritesMirror(t *testing.T) {
	r := gltest.NewES2Recorder()
	device := newDevice(t, metadata.DeviceTypeOpenGLES2, r)

	data, err := opengl.NewGraphicsData(device, metadata.DataDesc{Type: metadata.DataTypeIndex, Stream: []byte{9, 9, 9, 9}})
	require.NoError(t, err)

	mem, err := data.Map(2, 2)
	require.NoError(t, err)
	copy(mem, []byte{5, 6})

	_, err = data.Map(0, 1)
	assert.ErrorIs(t, err, core.ErrInvalidDesc)

	data.Unmap()
	assert.Zero(t, r.Count("MapBufferRange"))
	assert.Equal(t, []any{uint32(gl.ArrayBuffer), 2, 2}, argsOf(r, "BufferSubData")[0])
	assert.Equal(t, []byte{9, 9, 5, 6}, r.Buffers[data.InstanceID()])
}

func TestGraphicsDataRejectsUniformOnES2(t *testing.T) {
	r := gltest.NewES2Recorder()
	device := newDevice(t, metadata.DeviceTypeOpenGLES2, r)

	_, err := opengl.NewGraphicsData(device, metadata.DataDesc{Type: metadata.DataTypeUniform, StreamSize: 64})
	assert.ErrorIs(t, err, core.ErrUnsupported)
	assert.Zero(t, r.Count("GenBuffer"))
}

func TestGraphicsDataEmpty(t *testing.T) {
	r := gltest.NewRecorder()
	device := newDevice(t, metadata.DeviceTypeOpenGLCore, r)

	_, err := opengl.NewGraphicsData(device, metadata.DataDesc{Type: metadata.DataTypeVertex})
	assert.ErrorIs(t, err, core.ErrInvalidDesc)
}

func TestShaderCompile(t *testing.T) {
	r := gltest.NewRecorder()
	device := newDevice(t, metadata.DeviceTypeOpenGLCore, r)

	shader, err := opengl.NewShader(device, metadata.ShaderDesc{Stage: metadata.ShaderStageVertex, Source: "void main() {}"})
	require.NoError(t, err)
	assert.Equal(t, "main", shader.Desc().Main)
	assert.NotZero(t, shader.InstanceID())

	shader.Close()
	shader.Close()
	assert.Equal(t, 1, r.Count("DeleteShader"))
}

func TestShaderCompileFailure(t *testing.T) {
	r := gltest.NewRecorder()
	r.FailCompile = true
	device := newDevice(t, metadata.DeviceTypeOpenGLCore, r)

	_, err := opengl.NewShader(device, metadata.ShaderDesc{Stage: metadata.ShaderStageFragment, Source: "void main() {"})
	require.ErrorIs(t, err, core.ErrNativeFailure)
	assert.Contains(t, err.Error(), "syntax error")
	assert.Equal(t, 1, r.Count("DeleteShader"))
}

func TestShaderEmptySource(t *testing.T) {
	r := gltest.NewRecorder()
	device := newDevice(t, metadata.DeviceTypeOpenGLCore, r)

	_, err := opengl.NewShader(device, metadata.ShaderDesc{Stage: metadata.ShaderStageVertex, Source: "  \n"})
	assert.ErrorIs(t, err, core.ErrInvalidDesc)
	assert.Zero(t, r.Count("CreateShader"))
}

func newShaders(t *testing.T, device *opengl.Device) []metadata.GraphicsShader {
	t.Helper()
	vs, err := opengl.NewShader(device, metadata.ShaderDesc{Stage: metadata.ShaderStageVertex, Source: "void main() {}"})
	require.NoError(t, err)
	fs, err := opengl.NewShader(device, metadata.ShaderDesc{Stage: metadata.ShaderStageFragment, Source: "void main() {}"})
	require.NoError(t, err)
	return []metadata.GraphicsShader{vs, fs}
}

func TestProgramReflection(t *testing.T) {
	r := gltest.NewRecorder()
	r.Uniforms = []gltest.Variable{
		{Name: "albedo", Size: 1, Type: gl.Sampler2D},
		{Name: "weights[0]", Size: 4, Type: gl.Float},
		{Name: "normalMap", Size: 1, Type: gl.Sampler2D},
		{Name: "model", Size: 1, Type: gl.FloatMat4},
	}
	r.Attributes = []gltest.Variable{
		{Name: "position", Size: 1, Type: gl.FloatVec3},
		{Name: "uv", Size: 1, Type: gl.FloatVec2},
	}
	device := newDevice(t, metadata.DeviceTypeOpenGLCore, r)

	program, err := opengl.NewProgram(device, metadata.ProgramDesc{Shaders: newShaders(t, device)})
	require.NoError(t, err)
	assert.Equal(t, 2, r.Count("AttachShader"))
	assert.Equal(t, 2, r.Count("DetachShader"))

	require.Len(t, program.Uniforms(), 4)
	albedo, ok := program.Uniform("albedo")
	require.True(t, ok)
	assert.Equal(t, metadata.UniformTypeTexture, albedo.Type)
	assert.Equal(t, uint32(0), albedo.Binding)

	normal, _ := program.Uniform("normalMap")
	assert.Equal(t, uint32(1), normal.Binding)

	weights, ok := program.Uniform("weights")
	require.True(t, ok)
	assert.Equal(t, metadata.UniformTypeFloatArray, weights.Type)
	assert.Equal(t, int32(4), weights.Count)
	assert.Equal(t, int32(1), weights.Location)

	model, _ := program.Uniform("model")
	assert.Equal(t, metadata.UniformTypeFloat4x4, model.Type)
	assert.Equal(t, int32(1), model.Count)

	_, ok = program.Uniform("missing")
	assert.False(t, ok)

	attrs := program.Attributes()
	require.Len(t, attrs, 2)
	assert.Equal(t, metadata.ProgramAttribute{Name: "uv", Location: 1, Format: metadata.VertexFormatFloat2}, attrs[1])
}

func TestProgramLinkFailure(t *testing.T) {
	r := gltest.NewRecorder()
	device := newDevice(t, metadata.DeviceTypeOpenGLCore, r)
	shaders := newShaders(t, device)

	r.FailLink = true
	_, err := opengl.NewProgram(device, metadata.ProgramDesc{Shaders: shaders})
	require.ErrorIs(t, err, core.ErrNativeFailure)
	assert.Equal(t, 1, r.Count("DeleteProgram"))
	assert.Equal(t, 2, r.Count("DetachShader"))
}

func TestProgramWithoutShaders(t *testing.T) {
	r := gltest.NewRecorder()
	device := newDevice(t, metadata.DeviceTypeOpenGLCore, r)

	_, err := opengl.NewProgram(device, metadata.ProgramDesc{})
	assert.ErrorIs(t, err, core.ErrInvalidDesc)
}

func TestDescriptorSetLayoutValidation(t *testing.T) {
	r := gltest.NewRecorder()
	device := newDevice(t, metadata.DeviceTypeOpenGLCore, r)

	var desc metadata.DescriptorSetLayoutDesc
	desc.AddComponent("model", metadata.UniformTypeFloat4x4, metadata.ShaderStageVertex)
	desc.AddComponent("model", metadata.UniformTypeFloat4, metadata.ShaderStageFragment)
	_, err := opengl.NewDescriptorSetLayout(device, desc)
	assert.ErrorIs(t, err, core.ErrDuplicateSlot)

	var unnamed metadata.DescriptorSetLayoutDesc
	unnamed.AddComponent("", metadata.UniformTypeFloat)
	_, err = opengl.NewDescriptorSetLayout(device, unnamed)
	assert.ErrorIs(t, err, core.ErrInvalidDesc)
}

func TestDescriptorSetLayoutRejectsBlocksOnES2(t *testing.T) {
	r := gltest.NewES2Recorder()
	device := newDevice(t, metadata.DeviceTypeOpenGLES2, r)

	var desc metadata.DescriptorSetLayoutDesc
	desc.AddComponent("lights", metadata.UniformTypeBuffer, metadata.ShaderStageFragment)
	_, err := opengl.NewDescriptorSetLayout(device, desc)
	assert.ErrorIs(t, err, core.ErrUnsupported)
}

func TestDescriptorPoolExhaustion(t *testing.T) {
	r := gltest.NewRecorder()
	device := newDevice(t, metadata.DeviceTypeOpenGLCore, r)

	var layoutDesc metadata.DescriptorSetLayoutDesc
	layoutDesc.AddComponent("albedo", metadata.UniformTypeTexture, metadata.ShaderStageFragment)
	layoutDesc.AddComponent("tint", metadata.UniformTypeFloat4, metadata.ShaderStageFragment)
	layout, err := opengl.NewDescriptorSetLayout(device, layoutDesc)
	require.NoError(t, err)

	pool, err := opengl.NewDescriptorPool(device, metadata.DescriptorPoolDesc{
		MaxSets: 2,
		Components: []metadata.DescriptorPoolComponent{
			{Type: metadata.UniformTypeTexture, Count: 4},
			{Type: metadata.UniformTypeFloat4, Count: 4},
		},
	})
	require.NoError(t, err)

	first, err := opengl.NewDescriptorSet(device, metadata.DescriptorSetDesc{Layout: layout, Pool: pool})
	require.NoError(t, err)
	_, err = opengl.NewDescriptorSet(device, metadata.DescriptorSetDesc{Layout: layout, Pool: pool})
	require.NoError(t, err)
	assert.Equal(t, 2, pool.InUse())

	_, err = opengl.NewDescriptorSet(device, metadata.DescriptorSetDesc{Layout: layout, Pool: pool})
	assert.ErrorIs(t, err, core.ErrPoolExhausted)

	first.Close()
	first.Close()
	assert.Equal(t, 1, pool.InUse())
	_, err = opengl.NewDescriptorSet(device, metadata.DescriptorSetDesc{Layout: layout, Pool: pool})
	assert.NoError(t, err)
}

func TestDescriptorPoolComponentLimits(t *testing.T) {
	r := gltest.NewRecorder()
	device := newDevice(t, metadata.DeviceTypeOpenGLCore, r)

	pool, err := opengl.NewDescriptorPool(device, metadata.DescriptorPoolDesc{
		MaxSets:    8,
		Components: []metadata.DescriptorPoolComponent{{Type: metadata.UniformTypeTexture, Count: 1}},
	})
	require.NoError(t, err)

	tex := []metadata.UniformLayout{{Name: "albedo", Type: metadata.UniformTypeTexture}}
	_, err = pool.Allocate("a", tex)
	require.NoError(t, err)
	_, err = pool.Allocate("b", tex)
	assert.ErrorIs(t, err, core.ErrPoolExhausted)

	// types the pool does not list are never served
	_, err = pool.Allocate("c", []metadata.UniformLayout{{Name: "x", Type: metadata.UniformTypeFloat}})
	assert.ErrorIs(t, err, core.ErrPoolExhausted)

	_, err = opengl.NewDescriptorPool(device, metadata.DescriptorPoolDesc{})
	assert.ErrorIs(t, err, core.ErrInvalidDesc)
}

func TestDescriptorSetUniformValues(t *testing.T) {
	r := gltest.NewRecorder()
	device := newDevice(t, metadata.DeviceTypeOpenGLCore, r)

	var layoutDesc metadata.DescriptorSetLayoutDesc
	layoutDesc.AddComponent("exposure", metadata.UniformTypeFloat, metadata.ShaderStageFragment)
	layout, err := opengl.NewDescriptorSetLayout(device, layoutDesc)
	require.NoError(t, err)

	set, err := opengl.NewDescriptorSet(device, metadata.DescriptorSetDesc{Layout: layout})
	require.NoError(t, err)

	u := set.UniformSet("exposure")
	require.NotNil(t, u)
	u.SetFloat(1.5)
	// a mismatched assignment is ignored
	u.SetInt(3)
	assert.Equal(t, float32(1.5), u.Float())
	assert.Equal(t, uint64(1), u.Version())
	assert.Nil(t, set.UniformSet("gamma"))
}

func newColorLayout(t *testing.T, device *opengl.Device, depth bool) *opengl.FramebufferLayout {
	t.Helper()
	var desc metadata.FramebufferLayoutDesc
	require.NoError(t, desc.AddComponent(metadata.NewAttachment(0, metadata.ImageLayoutColorAttachmentOptimal, metadata.TextureFormatR8G8B8A8)))
	if depth {
		require.NoError(t, desc.AddComponent(metadata.NewAttachment(1, metadata.ImageLayoutDepthStencilAttachmentOptimal, metadata.TextureFormatDepth24Stencil8)))
	}
	layout, err := opengl.NewFramebufferLayout(device, desc)
	require.NoError(t, err)
	return layout
}

func newFramebuffer(t *testing.T, device *opengl.Device, r *gltest.Recorder) *opengl.Framebuffer {
	t.Helper()
	color, err := opengl.NewTexture(device, metadata.NewTextureDesc(320, 240, metadata.TextureDim2D, metadata.TextureFormatR8G8B8A8))
	require.NoError(t, err)
	depth, err := opengl.NewTexture(device, metadata.NewTextureDesc(320, 240, metadata.TextureDim2D, metadata.TextureFormatDepth24Stencil8))
	require.NoError(t, err)

	desc := metadata.FramebufferDesc{Layout: newColorLayout(t, device, true), SharedDepthStencilTexture: depth}
	require.NoError(t, desc.Attach(color))
	fb, err := opengl.NewFramebuffer(device, desc)
	require.NoError(t, err)
	r.Reset()
	return fb
}

func TestFramebufferSetup(t *testing.T) {
	r := gltest.NewRecorder()
	device := newDevice(t, metadata.DeviceTypeOpenGLCore, r)

	color, err := opengl.NewTexture(device, metadata.NewTextureDesc(320, 240, metadata.TextureDim2D, metadata.TextureFormatR8G8B8A8))
	require.NoError(t, err)
	depth, err := opengl.NewTexture(device, metadata.NewTextureDesc(320, 240, metadata.TextureDim2D, metadata.TextureFormatDepth24Stencil8))
	require.NoError(t, err)

	desc := metadata.FramebufferDesc{Layout: newColorLayout(t, device, true), SharedDepthStencilTexture: depth}
	require.NoError(t, desc.Attach(color))
	r.Reset()

	fb, err := opengl.NewFramebuffer(device, desc)
	require.NoError(t, err)

	assert.Equal(t, uint32(320), fb.Desc().Width)
	assert.Equal(t, uint32(240), fb.Desc().Height)
	assert.Equal(t, metadata.GraphicsTexture(color), fb.ResolveTexture())

	attachments := argsOf(r, "FramebufferTexture2D")
	require.Len(t, attachments, 2)
	assert.Equal(t, uint32(gl.ColorAttachment0), attachments[0][1])
	assert.Equal(t, uint32(gl.DepthStencilAttachment), attachments[1][1])
	assert.Equal(t, []any{[]uint32{gl.ColorAttachment0}}, argsOf(r, "DrawBuffers")[0])
}

func TestFramebufferIncomplete(t *testing.T) {
	r := gltest.NewRecorder()
	device := newDevice(t, metadata.DeviceTypeOpenGLCore, r)

	color, err := opengl.NewTexture(device, metadata.NewTextureDesc(64, 64, metadata.TextureDim2D, metadata.TextureFormatR8G8B8A8))
	require.NoError(t, err)
	desc := metadata.FramebufferDesc{Layout: newColorLayout(t, device, false)}
	require.NoError(t, desc.Attach(color))

	r.FramebufferStatus = gl.FramebufferIncompleteAttachment
	r.Reset()
	_, err = opengl.NewFramebuffer(device, desc)
	require.ErrorIs(t, err, core.ErrNativeFailure)
	assert.Contains(t, err.Error(), "incomplete attachment")
	assert.Equal(t, 1, r.Count("DeleteFramebuffer"))
}

func TestFramebufferNothingToAttach(t *testing.T) {
	r := gltest.NewRecorder()
	device := newDevice(t, metadata.DeviceTypeOpenGLCore, r)

	_, err := opengl.NewFramebuffer(device, metadata.FramebufferDesc{Layout: newColorLayout(t, device, false)})
	assert.ErrorIs(t, err, core.ErrInvalidDesc)
	assert.Zero(t, r.Count("GenFramebuffer"))
}

func TestFramebufferDiscard(t *testing.T) {
	r := gltest.NewRecorder()
	device := newDevice(t, metadata.DeviceTypeOpenGLCore, r)
	fb := newFramebuffer(t, device, r)

	// inactive targets are left alone
	fb.Discard(nil)
	assert.Zero(t, r.Count("InvalidateFramebuffer"))

	fb.SetActive(true)
	fb.Discard([]uint32{1})
	calls := argsOf(r, "InvalidateFramebuffer")
	require.Len(t, calls, 1)
	assert.Equal(t, []uint32{gl.DepthStencilAttachment}, calls[0][1])

	fb.Discard(nil)
	assert.Equal(t, []uint32{gl.ColorAttachment0, gl.DepthStencilAttachment}, argsOf(r, "InvalidateFramebuffer")[1][1])
}

func TestFramebufferDiscardES2(t *testing.T) {
	r := gltest.NewES2Recorder()
	device := newDevice(t, metadata.DeviceTypeOpenGLES2, r)

	color, err := opengl.NewTexture(device, metadata.NewTextureDesc(64, 64, metadata.TextureDim2D, metadata.TextureFormatR8G8B8A8))
	require.NoError(t, err)
	desc := metadata.FramebufferDesc{Layout: newColorLayout(t, device, false)}
	require.NoError(t, desc.Attach(color))
	fb, err := opengl.NewFramebuffer(device, desc)
	require.NoError(t, err)
	assert.Zero(t, r.Count("DrawBuffers"))

	fb.SetActive(true)
	fb.Discard(nil)
	assert.Zero(t, r.Count("InvalidateFramebuffer"))
}

func TestFramebufferLayerSwitch(t *testing.T) {
	r := gltest.NewRecorder()
	device := newDevice(t, metadata.DeviceTypeOpenGLCore, r)

	texDesc := metadata.NewTextureDesc(128, 128, metadata.TextureDim2DArray, metadata.TextureFormatR8G8B8A8)
	texDesc.Depth = 4
	color, err := opengl.NewTexture(device, texDesc)
	require.NoError(t, err)
	desc := metadata.FramebufferDesc{Layout: newColorLayout(t, device, false)}
	require.NoError(t, desc.Attach(color))
	fb, err := opengl.NewFramebuffer(device, desc)
	require.NoError(t, err)

	fb.SetLayer(2)
	r.Reset()
	fb.SetActive(true)

	call, ok := r.Last("FramebufferTextureLayer")
	require.True(t, ok)
	assert.Equal(t, int32(2), call.Args[4])

	r.Reset()
	fb.SetLayer(2)
	assert.Zero(t, r.Count("FramebufferTextureLayer"))
	assert.Equal(t, uint32(2), fb.Layer())
}

func TestFramebufferLayerSwitchMovesDepth(t *testing.T) {
	r := gltest.NewRecorder()
	device := newDevice(t, metadata.DeviceTypeOpenGLCore, r)

	colorDesc := metadata.NewTextureDesc(128, 128, metadata.TextureDim2DArray, metadata.TextureFormatR8G8B8A8)
	colorDesc.Depth = 4
	color, err := opengl.NewTexture(device, colorDesc)
	require.NoError(t, err)
	depthDesc := metadata.NewTextureDesc(128, 128, metadata.TextureDim2DArray, metadata.TextureFormatDepth24Stencil8)
	depthDesc.Depth = 4
	depth, err := opengl.NewTexture(device, depthDesc)
	require.NoError(t, err)

	desc := metadata.FramebufferDesc{Layout: newColorLayout(t, device, true), SharedDepthStencilTexture: depth}
	require.NoError(t, desc.Attach(color))
	fb, err := opengl.NewFramebuffer(device, desc)
	require.NoError(t, err)
	fb.SetActive(true)
	r.Reset()

	fb.SetLayer(3)
	layers := argsOf(r, "FramebufferTextureLayer")
	require.Len(t, layers, 2)
	assert.Equal(t, []any{uint32(gl.Framebuffer), uint32(gl.ColorAttachment0), color.InstanceID(), int32(0), int32(3)}, layers[0])
	assert.Equal(t, []any{uint32(gl.Framebuffer), uint32(gl.DepthStencilAttachment), depth.InstanceID(), int32(0), int32(3)}, layers[1])
}

func TestFramebufferCloseResetsDesc(t *testing.T) {
	r := gltest.NewRecorder()
	device := newDevice(t, metadata.DeviceTypeOpenGLCore, r)
	fb := newFramebuffer(t, device, r)
	require.Equal(t, uint32(320), fb.Desc().Width)

	fb.SetLayer(1)
	fb.Close()
	fb.Close()
	assert.Equal(t, 1, r.Count("DeleteFramebuffer"))
	assert.Zero(t, fb.InstanceID())
	assert.Zero(t, fb.Layer())
	assert.Equal(t, metadata.FramebufferDesc{}, fb.Desc())
	assert.Nil(t, fb.ResolveTexture())
}

func TestFramebufferLayoutValidation(t *testing.T) {
	r := gltest.NewES2Recorder()
	device := newDevice(t, metadata.DeviceTypeOpenGLES2, r)

	_, err := opengl.NewFramebufferLayout(device, metadata.FramebufferLayoutDesc{})
	assert.ErrorIs(t, err, core.ErrInvalidDesc)

	var two metadata.FramebufferLayoutDesc
	require.NoError(t, two.AddComponent(metadata.NewAttachment(0, metadata.ImageLayoutColorAttachmentOptimal, metadata.TextureFormatR8G8B8A8)))
	require.NoError(t, two.AddComponent(metadata.NewAttachment(1, metadata.ImageLayoutColorAttachmentOptimal, metadata.TextureFormatR8G8B8A8)))
	_, err = opengl.NewFramebufferLayout(device, two)
	assert.ErrorIs(t, err, core.ErrUnsupported)
}
