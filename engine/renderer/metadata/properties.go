package metadata

import "slices"

/**
 * @brief Limits and supported feature lists of a device. Backends start
 * from DefaultDeviceProperties and overwrite what they can query.
 */
type DeviceProperties struct {
	MaxImageDimension1D   uint32
	MaxImageDimension2D   uint32
	MaxImageDimension3D   uint32
	MaxImageDimensionCube uint32
	MaxImageArrayLayers   uint32

	MaxTexelBufferElements    uint32
	MaxUniformBufferRange     uint32
	MaxStorageBufferRange     uint32
	MaxSamplerAllocationCount uint32
	MaxBoundDescriptorSets    uint32

	MaxPerStageDescriptorSamplers       uint32
	MaxPerStageDescriptorUniformBuffers uint32

	MaxVertexInputAttributes      uint32
	MaxVertexInputBindings        uint32
	MaxVertexInputAttributeOffset uint32
	MaxVertexInputBindingStride   uint32

	MaxFragmentOutputAttachments uint32
	MaxDrawIndexedIndexValue     uint32
	MaxSamplerLodBias            float32
	MaxSamplerAnisotropy         float32

	MaxViewports           uint32
	MaxViewportDimensionsW uint32
	MaxViewportDimensionsH uint32
	MinViewportBoundsRange float32
	MaxViewportBoundsRange float32

	MinTexelOffset int32
	MaxTexelOffset int32

	MaxFramebufferWidth            uint32
	MaxFramebufferHeight           uint32
	MaxFramebufferLayers           uint32
	MaxFramebufferColorAttachments uint32
	FramebufferColorSampleCounts   uint32

	MinPointSizeRange float32
	MaxPointSizeRange float32
	MinLineWidthRange float32
	MaxLineWidthRange float32

	SupportTextures    []TextureFormat
	SupportTextureDims []TextureDim
	SupportAttributes  []VertexFormat
	SupportShaders     []ShaderStage
}

func DefaultDeviceProperties() DeviceProperties {
	return DeviceProperties{
		MaxImageArrayLayers:            2048,
		MaxTexelBufferElements:         65536,
		MaxUniformBufferRange:          16384,
		MaxStorageBufferRange:          0x1000000,
		MaxSamplerAllocationCount:      1000,
		MaxVertexInputAttributes:       16,
		MaxVertexInputBindings:         16,
		MaxVertexInputAttributeOffset:  2048,
		MaxVertexInputBindingStride:    2048,
		MaxFragmentOutputAttachments:   1,
		MaxDrawIndexedIndexValue:       65535,
		MaxSamplerLodBias:              2.0,
		MaxViewports:                   1,
		MinViewportBoundsRange:         -32768,
		MaxViewportBoundsRange:         32767,
		MinTexelOffset:                 -8,
		MaxTexelOffset:                 7,
		MaxFramebufferWidth:            16384,
		MaxFramebufferHeight:           16384,
		MaxFramebufferLayers:           2048,
		MaxFramebufferColorAttachments: 1,
		FramebufferColorSampleCounts:   15,
		MinPointSizeRange:              1.0,
		MaxPointSizeRange:              1.0,
		MinLineWidthRange:              1.0,
		MaxLineWidthRange:              1.0,
	}
}

func (p DeviceProperties) IsTextureSupport(format TextureFormat) bool {
	return slices.Contains(p.SupportTextures, format)
}

func (p DeviceProperties) IsTextureDimSupport(dim TextureDim) bool {
	return slices.Contains(p.SupportTextureDims, dim)
}

func (p DeviceProperties) IsVertexSupport(format VertexFormat) bool {
	return slices.Contains(p.SupportAttributes, format)
}

func (p DeviceProperties) IsShaderSupport(stage ShaderStage) bool {
	return slices.Contains(p.SupportShaders, stage)
}
