package opengl

import (
	"fmt"
	"weak"

	"github.com/spaghettifunk/ray/engine/core"
	"github.com/spaghettifunk/ray/engine/renderer/gl"
	"github.com/spaghettifunk/ray/engine/renderer/metadata"
)

// Device is the resource factory for one native GL context. All of the
// Core, ES2 and ES3 profiles share it; the profile picks the translation
// tables and the code paths gated by the capability table.
type Device struct {
	desc       metadata.DeviceDesc
	fns        gl.Functions
	tables     Tables
	features   *gl.Features
	properties metadata.DeviceProperties
	self       weak.Pointer[Device]
	nextID     uint32
}

var _ metadata.GraphicsDevice = (*Device)(nil)

// NewDevice wraps the context current on the calling thread. The context
// must match the requested profile.
func NewDevice(desc metadata.DeviceDesc, fns gl.Functions) (*Device, error) {
	features, err := gl.LoadFeatures(fns)
	if err != nil {
		err = fmt.Errorf("opengl: %w: %w", core.ErrNativeFailure, err)
		core.LogError(err.Error())
		return nil, err
	}
	if err := checkProfile(desc.Type, features); err != nil {
		core.LogError(err.Error())
		return nil, err
	}

	d := &Device{
		desc:     desc,
		fns:      fns,
		tables:   TablesFor(desc.Type),
		features: features,
	}
	d.self = weak.Make(d)
	d.properties = queryProperties(desc.Type, fns, features)

	core.LogInfo("opengl: %s device on %s", desc.Type, features)
	return d, nil
}

func checkProfile(t metadata.DeviceType, f *gl.Features) error {
	var ok bool
	switch t {
	case metadata.DeviceTypeOpenGLCore:
		ok = !f.ES && f.AtLeast(3, 3)
	case metadata.DeviceTypeOpenGLES2:
		ok = f.ES && f.AtLeast(2, 0)
	case metadata.DeviceTypeOpenGLES3:
		ok = f.ES && f.AtLeast(3, 0)
	}
	if !ok {
		return fmt.Errorf("opengl: context %s cannot back a %s device: %w", f, t, core.ErrUnsupported)
	}
	return nil
}

func (d *Device) Desc() metadata.DeviceDesc {
	return d.desc
}

func (d *Device) Properties() metadata.DeviceProperties {
	return d.properties
}

// Features returns the capability table of the context.
func (d *Device) Features() *gl.Features {
	return d.features
}

// Functions returns the native entry points.
func (d *Device) Functions() gl.Functions {
	return d.fns
}

func (d *Device) Tables() Tables {
	return d.tables
}

// Close waits for queued commands. The native context belongs to the
// window and is destroyed with it; resources report a nil device once this
// one is collected.
func (d *Device) Close() {
	d.fns.Finish()
	core.LogDebug("opengl: %s device closed", d.desc.Type)
}

func (d *Device) isES2() bool {
	return d.desc.Type == metadata.DeviceTypeOpenGLES2
}

func (d *Device) ref() deviceRef {
	return deviceRef{device: d.self}
}

func (d *Device) newInstanceID() uint32 {
	d.nextID++
	return d.nextID
}

func (d *Device) CreateSwapchain(desc metadata.SwapchainDesc) (metadata.GraphicsSwapchain, error) {
	return NewSwapchain(d, desc)
}

func (d *Device) CreateDeviceContext(desc metadata.ContextDesc) (metadata.GraphicsContext, error) {
	return NewDeviceContext(d, desc)
}

func (d *Device) CreateTexture(desc metadata.TextureDesc) (metadata.GraphicsTexture, error) {
	return NewTexture(d, desc)
}

func (d *Device) CreateSampler(desc metadata.SamplerDesc) (metadata.GraphicsSampler, error) {
	return NewSampler(d, desc)
}

func (d *Device) CreateGraphicsData(desc metadata.DataDesc) (metadata.GraphicsData, error) {
	return NewGraphicsData(d, desc)
}

func (d *Device) CreateInputLayout(desc metadata.InputLayoutDesc) (metadata.GraphicsInputLayout, error) {
	return NewInputLayout(d, desc)
}

func (d *Device) CreateFramebufferLayout(desc metadata.FramebufferLayoutDesc) (metadata.GraphicsFramebufferLayout, error) {
	return NewFramebufferLayout(d, desc)
}

func (d *Device) CreateFramebuffer(desc metadata.FramebufferDesc) (metadata.GraphicsFramebuffer, error) {
	return NewFramebuffer(d, desc)
}

func (d *Device) CreateState(desc metadata.StateDesc) (metadata.GraphicsState, error) {
	return NewState(d, desc)
}

func (d *Device) CreateShader(desc metadata.ShaderDesc) (metadata.GraphicsShader, error) {
	return NewShader(d, desc)
}

func (d *Device) CreateProgram(desc metadata.ProgramDesc) (metadata.GraphicsProgram, error) {
	return NewProgram(d, desc)
}

func (d *Device) CreatePipeline(desc metadata.PipelineDesc) (metadata.GraphicsPipeline, error) {
	return NewPipeline(d, desc)
}

func (d *Device) CreateDescriptorSetLayout(desc metadata.DescriptorSetLayoutDesc) (metadata.GraphicsDescriptorSetLayout, error) {
	return NewDescriptorSetLayout(d, desc)
}

func (d *Device) CreateDescriptorPool(desc metadata.DescriptorPoolDesc) (metadata.GraphicsDescriptorPool, error) {
	return NewDescriptorPool(d, desc)
}

func (d *Device) CreateDescriptorSet(desc metadata.DescriptorSetDesc) (metadata.GraphicsDescriptorSet, error) {
	return NewDescriptorSet(d, desc)
}

// deviceRef is embedded by every resource. It never keeps the device alive.
type deviceRef struct {
	device weak.Pointer[Device]
}

func (r deviceRef) Device() metadata.GraphicsDevice {
	if d := r.device.Value(); d != nil {
		return d
	}
	return nil
}

func (r deviceRef) owner() (*Device, error) {
	d := r.device.Value()
	if d == nil {
		return nil, core.ErrDeviceReleased
	}
	return d, nil
}

func queryProperties(t metadata.DeviceType, fns gl.Functions, f *gl.Features) metadata.DeviceProperties {
	p := metadata.DefaultDeviceProperties()
	set := func(dst *uint32, pname uint32) {
		if v := fns.GetIntegerv(pname); v > 0 {
			*dst = uint32(v)
		}
	}
	set(&p.MaxImageDimension1D, gl.MaxTextureSize)
	set(&p.MaxImageDimension2D, gl.MaxTextureSize)
	set(&p.MaxImageDimensionCube, gl.MaxCubeMapTextureSize)
	set(&p.MaxVertexInputAttributes, gl.MaxVertexAttribs)
	set(&p.MaxVertexInputBindings, gl.MaxVertexAttribs)
	set(&p.MaxPerStageDescriptorSamplers, gl.MaxTextureImageUnits)
	set(&p.MaxFramebufferWidth, gl.MaxRenderbufferSize)
	set(&p.MaxFramebufferHeight, gl.MaxRenderbufferSize)
	set(&p.MaxDrawIndexedIndexValue, gl.MaxElementsIndices)
	if f.Texture3D {
		set(&p.MaxImageDimension3D, gl.Max3DTextureSize)
		set(&p.MaxImageArrayLayers, gl.MaxArrayTextureLayers)
		set(&p.MaxFramebufferLayers, gl.MaxArrayTextureLayers)
	}
	if f.UniformBufferObject {
		set(&p.MaxUniformBufferRange, gl.MaxUniformBlockSize)
	}
	if f.DrawBuffers {
		set(&p.MaxFramebufferColorAttachments, gl.MaxColorAttachments)
		set(&p.MaxFragmentOutputAttachments, gl.MaxDrawBuffers)
	}
	if f.ViewportArray {
		set(&p.MaxViewports, gl.MaxViewports)
	}
	if v := fns.GetFloatv(gl.MaxTextureLodBias); v > 0 {
		p.MaxSamplerLodBias = v
	}
	if f.TextureFilterAnisotropic {
		p.MaxSamplerAnisotropy = f.MaxAnisotropy
	}
	if f.MultisampleTexture {
		if samples := fns.GetIntegerv(gl.MaxSamples); samples > 0 {
			p.FramebufferColorSampleCounts = uint32(samples<<1) - 1
		}
	}

	// probe the tables without a diagnostic per unsupported entry
	tables := tablesFor(t, true)
	for format := metadata.TextureFormatStencil8; format <= metadata.TextureFormatRGATI2; format++ {
		if tables.TextureInternalFormat(format) == gl.InvalidEnum {
			continue
		}
		if format >= metadata.TextureFormatRGBDXT1 && format <= metadata.TextureFormatRGBADXT5 && !f.S3TC {
			continue
		}
		if format == metadata.TextureFormatRGATI2 && !f.RGTC {
			continue
		}
		p.SupportTextures = append(p.SupportTextures, format)
	}
	for dim := metadata.TextureDim2D; dim <= metadata.TextureDimCubeArray; dim++ {
		if tables.TextureTarget(dim, false) == gl.InvalidEnum {
			continue
		}
		if dim == metadata.TextureDimCubeArray && !f.CubeMapArray {
			continue
		}
		p.SupportTextureDims = append(p.SupportTextureDims, dim)
	}
	for format := metadata.VertexFormatChar; format <= metadata.VertexFormatFloat4x4; format++ {
		if tables.VertexFormat(format) != gl.InvalidEnum {
			p.SupportAttributes = append(p.SupportAttributes, format)
		}
	}
	for stage := metadata.ShaderStageVertex; stage <= metadata.ShaderStageTessEvaluation; stage++ {
		if tables.ShaderStage(stage) == gl.InvalidEnum {
			continue
		}
		if stage != metadata.ShaderStageVertex && stage != metadata.ShaderStageFragment && !f.AtLeast(stageVersion(f.ES, stage)) {
			continue
		}
		p.SupportShaders = append(p.SupportShaders, stage)
	}
	return p
}

// stageVersion is the first context version exposing a shader stage.
func stageVersion(es bool, stage metadata.ShaderStage) (int, int) {
	switch stage {
	case metadata.ShaderStageGeometry:
		return 3, 2
	case metadata.ShaderStageCompute:
		if es {
			return 3, 1
		}
		return 4, 3
	case metadata.ShaderStageTessControl, metadata.ShaderStageTessEvaluation:
		return 4, 0
	}
	return 2, 0
}
