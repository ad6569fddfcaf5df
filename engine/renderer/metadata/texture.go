package metadata

import "github.com/spaghettifunk/ray/engine/math"

/**
 * @brief Describes a texture at creation time. The texture keeps a copy and
 * answers every later query about size, format and sampling from it.
 */
type TextureDesc struct {
	/** @brief Debug name. */
	Name   string
	Width  uint32
	Height uint32
	/** @brief Depth for 3D textures, layer count for arrays. */
	Depth uint32
	/** @brief Number of mip levels. Zero is treated as one. */
	MipLevel uint32
	/** @brief Base mip level the upload starts at. */
	MipBase uint32
	/** @brief Layer the upload starts at, for array and cube targets. */
	LayerBase uint32
	Dim       TextureDim
	Format    TextureFormat
	/** @brief Samples per texel; above one selects a multisample target. */
	Samples uint32
	Flags   TextureFlags

	SamplerWrap   SamplerWrap
	SamplerFilter SamplerFilter
	SamplerAnis   SamplerAnis

	/** @brief Optional initial content. Nil allocates storage only. */
	Stream []byte
}

func NewTextureDesc(width, height uint32, dim TextureDim, format TextureFormat) TextureDesc {
	return TextureDesc{
		Width:         width,
		Height:        height,
		Depth:         1,
		MipLevel:      1,
		Dim:           dim,
		Format:        format,
		SamplerWrap:   SamplerWrapRepeat,
		SamplerFilter: SamplerFilterLinear,
	}
}

// Levels returns MipLevel with the zero value treated as one.
func (d TextureDesc) Levels() uint32 {
	if d.MipLevel == 0 {
		return 1
	}
	return d.MipLevel
}

// Layers returns Depth with the zero value treated as one.
func (d TextureDesc) Layers() uint32 {
	if d.Depth == 0 {
		return 1
	}
	return d.Depth
}

func (d TextureDesc) IsMultisample() bool {
	return d.Samples > 1
}

// Size returns the texture extent as a vector, handy for texel-size uniforms.
func (d TextureDesc) Size() math.Vec2 {
	return math.NewVec2(float32(d.Width), float32(d.Height))
}
