package opengl

import (
	"github.com/spaghettifunk/ray/engine/core"
	"github.com/spaghettifunk/ray/engine/renderer/gl"
	"github.com/spaghettifunk/ray/engine/renderer/metadata"
)

// Tables translates engine enums into native enumerants. Every method returns
// gl.InvalidEnum, after logging a warning, for input the profile cannot
// represent.
type Tables interface {
	VertexType(t metadata.VertexType) uint32
	VertexFormat(f metadata.VertexFormat) uint32
	IndexType(t metadata.IndexType) uint32
	ShaderStage(s metadata.ShaderStage) uint32
	TextureTarget(dim metadata.TextureDim, multisample bool) uint32
	TextureFormat(f metadata.TextureFormat) uint32
	TextureType(f metadata.TextureFormat) uint32
	TextureInternalFormat(f metadata.TextureFormat) uint32
	CompareFunction(f metadata.CompareFunction) uint32
	BlendFactor(f metadata.BlendFactor) uint32
	BlendOperation(op metadata.BlendOperation) uint32
	CullMode(m metadata.CullMode) uint32
	FrontFace(f metadata.FrontFace) uint32
	FillMode(m metadata.FillMode) uint32
	StencilOperation(op metadata.StencilOperation) uint32
	SamplerWrap(w metadata.SamplerWrap) uint32
	SamplerFilter(f metadata.SamplerFilter) uint32
}

// TablesFor returns the translation tables of a device type.
func TablesFor(t metadata.DeviceType) Tables {
	return tablesFor(t, false)
}

// tablesFor with quiet set skips the diagnostic on invalid input, for
// capability probing.
func tablesFor(t metadata.DeviceType, quiet bool) Tables {
	base := coreTables{quiet: quiet}
	switch t {
	case metadata.DeviceTypeOpenGLES2:
		return es2Tables{base}
	case metadata.DeviceTypeOpenGLES3:
		return es3Tables{base}
	}
	return base
}

// MappingQuirk records a translation that deliberately keeps a historical
// value instead of the native enumerant with the matching name.
type MappingQuirk struct {
	Table    string
	Input    string
	Returned uint32
	Expected uint32
}

// KnownMappingQuirks lists every such translation shared by all profiles.
var KnownMappingQuirks = []MappingQuirk{
	{Table: "TextureType", Input: "R5G5B5A1", Returned: gl.UnsignedShort565, Expected: gl.UnsignedShort5551},
	{Table: "BlendFactor", Input: "OneMinusConstantColor", Returned: gl.ConstantAlpha, Expected: gl.OneMinusConstantColor},
	{Table: "BlendFactor", Input: "OneMinusConstantAlpha", Returned: gl.ConstantAlpha, Expected: gl.OneMinusConstantAlpha},
}

func (t coreTables) invalid(what string, v any) uint32 {
	if !t.quiet {
		core.LogWarn("opengl: invalid %s %v", what, v)
	}
	return gl.InvalidEnum
}
