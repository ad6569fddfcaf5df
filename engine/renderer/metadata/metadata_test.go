package metadata

import (
	"testing"

	"github.com/spaghettifunk/ray/engine/core"
	"github.com/spaghettifunk/ray/engine/math"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFramebufferLayoutRejectsDuplicateSlot(t *testing.T) {
	var desc FramebufferLayoutDesc
	require.NoError(t, desc.AddComponent(NewAttachment(0, ImageLayoutColorAttachmentOptimal, TextureFormatR8G8B8A8)))
	require.NoError(t, desc.AddComponent(NewAttachment(1, ImageLayoutDepthStencilAttachmentOptimal, TextureFormatDepth24Stencil8)))

	err := desc.AddComponent(NewAttachment(1, ImageLayoutColorAttachmentOptimal, TextureFormatR16G16B16A16F))
	assert.ErrorIs(t, err, core.ErrDuplicateSlot)

	err = desc.AddComponent(NewAttachment(2, ImageLayoutColorAttachmentOptimal, TextureFormatUndefined))
	assert.ErrorIs(t, err, core.ErrInvalidDesc)

	assert.Len(t, desc.Components(), 2)
	assert.Len(t, desc.ColorComponents(), 1)
}

func TestInputLayoutOffsets(t *testing.T) {
	var desc InputLayoutDesc
	desc.AddComponent(NewVertexComponent("POSITION", 0, VertexFormatFloat3))
	desc.AddComponent(NewVertexComponent("TEXCOORD", 0, VertexFormatFloat2))
	desc.AddComponent(NewVertexComponent("COLOR", 0, VertexFormatUchar4))

	assert.Equal(t, 0, desc.Components[0].Offset)
	assert.Equal(t, 12, desc.Components[1].Offset)
	assert.Equal(t, 20, desc.Components[2].Offset)
	assert.Equal(t, 24, desc.VertexSize(0))
}

func TestUniformSetRejectsMismatchedType(t *testing.T) {
	u := NewUniformSet("fogDensity", UniformTypeFloat)
	u.SetFloat(0.5)
	u.SetInt(3)
	assert.Equal(t, float32(0.5), u.Float())
	assert.Equal(t, uint64(1), u.Version())

	arr := NewUniformSet("offsets", UniformTypeFloat2Array)
	arr.SetFloat2Array([]math.Vec2{{X: 1, Y: 2}, {X: 3, Y: 4}})
	assert.Equal(t, []float32{1, 2, 3, 4}, arr.FloatArray())
}

func TestUniformSetCopyFrom(t *testing.T) {
	src := NewUniformSet("exposure", UniformTypeFloat)
	src.SetFloat(1.5)

	dst := NewUniformSet("exposure", UniformTypeFloat)
	dst.CopyFrom(src)
	assert.Equal(t, float32(1.5), dst.Float())
	assert.Equal(t, uint64(1), dst.Version())

	other := NewUniformSet("exposure", UniformTypeInt)
	other.CopyFrom(src)
	assert.Equal(t, uint64(0), other.Version())
}

func TestMaterialParamPropagates(t *testing.T) {
	a := NewUniformSet("color", UniformTypeFloat3)
	b := NewUniformSet("color", UniformTypeFloat3)
	p := NewMaterialParam("color", UniformTypeFloat3)
	p.Link(a)
	p.Link(b)
	p.Link(nil)

	p.SetFloat3(math.NewVec3(0, 0.3, 0.99))
	assert.Equal(t, math.Vec4{Y: 0.3, Z: 0.99}, a.Float4())
	assert.Equal(t, a.Float4(), b.Float4())
	assert.Len(t, p.Linked(), 2)
}

func TestDevicePropertiesProbes(t *testing.T) {
	p := DefaultDeviceProperties()
	assert.Equal(t, uint32(2048), p.MaxImageArrayLayers)
	assert.False(t, p.IsTextureSupport(TextureFormatR8G8B8A8))

	p.SupportTextures = []TextureFormat{TextureFormatR8G8B8A8}
	p.SupportTextureDims = []TextureDim{TextureDim2D}
	p.SupportShaders = []ShaderStage{ShaderStageVertex, ShaderStageFragment}
	p.SupportAttributes = []VertexFormat{VertexFormatFloat3}
	assert.True(t, p.IsTextureSupport(TextureFormatR8G8B8A8))
	assert.True(t, p.IsTextureDimSupport(TextureDim2D))
	assert.False(t, p.IsTextureDimSupport(TextureDim3D))
	assert.True(t, p.IsShaderSupport(ShaderStageFragment))
	assert.False(t, p.IsShaderSupport(ShaderStageCompute))
	assert.True(t, p.IsVertexSupport(VertexFormatFloat3))
}

func TestVertexFormatSizes(t *testing.T) {
	assert.Equal(t, 4, VertexFormatUchar4.Size())
	assert.Equal(t, 6, VertexFormatShort3.Size())
	assert.Equal(t, 64, VertexFormatFloat4x4.Size())
	assert.Equal(t, 0, VertexFormatUndefined.Size())
	assert.Equal(t, 2, IndexTypeUint16.Size())
}
