package metadata

import "github.com/spaghettifunk/ray/engine/math"

/** @brief Blend setup for one color attachment. */
type ColorBlend struct {
	Enable    bool
	Op        BlendOperation
	Src       BlendFactor
	Dst       BlendFactor
	AlphaOp   BlendOperation
	AlphaSrc  BlendFactor
	AlphaDst  BlendFactor
	WriteMask ColorMask
}

/** @brief Stencil operations for one face. */
type StencilFaceState struct {
	Func      CompareFunction
	Ref       int32
	ReadMask  uint32
	WriteMask uint32
	Fail      StencilOperation
	ZFail     StencilOperation
	Pass      StencilOperation
}

/**
 * @brief The fixed-function state bound together with a program.
 */
type StateDesc struct {
	Blends     []ColorBlend
	BlendColor math.Vec4

	CullMode      CullMode
	FrontFace     FrontFace
	FillMode      FillMode
	ScissorTest   bool
	LineWidth     float32
	PolygonOffset bool
	DepthBias     float32
	DepthSlope    float32

	DepthEnable    bool
	DepthWrite     bool
	DepthFunc      CompareFunction
	DepthBoundsMin float32
	DepthBoundsMax float32

	StencilEnable bool
	StencilFront  StencilFaceState
	StencilBack   StencilFaceState
}

func defaultStencilFace() StencilFaceState {
	return StencilFaceState{
		Func:      CompareFunctionAlways,
		ReadMask:  0xFFFFFFFF,
		WriteMask: 0xFFFFFFFF,
		Fail:      StencilOperationKeep,
		ZFail:     StencilOperationKeep,
		Pass:      StencilOperationKeep,
	}
}

// DefaultStateDesc matches what a freshly opened device context applies.
func DefaultStateDesc() StateDesc {
	return StateDesc{
		Blends: []ColorBlend{{
			Op:        BlendOperationAdd,
			Src:       BlendFactorSrcAlpha,
			Dst:       BlendFactorOneMinusSrcAlpha,
			AlphaOp:   BlendOperationAdd,
			AlphaSrc:  BlendFactorSrcAlpha,
			AlphaDst:  BlendFactorOneMinusSrcAlpha,
			WriteMask: ColorMaskAll,
		}},
		CullMode:       CullModeBack,
		FrontFace:      FrontFaceCW,
		FillMode:       FillModeSolid,
		LineWidth:      1.0,
		DepthEnable:    true,
		DepthWrite:     true,
		DepthFunc:      CompareFunctionLequal,
		DepthBoundsMax: 1.0,
		StencilFront:   defaultStencilFace(),
		StencilBack:    defaultStencilFace(),
	}
}

// Blend returns the blend state of attachment i, falling back to the first
// entry and then to a disabled blend.
func (d StateDesc) Blend(i int) ColorBlend {
	if i < len(d.Blends) {
		return d.Blends[i]
	}
	if len(d.Blends) > 0 {
		return d.Blends[0]
	}
	return ColorBlend{WriteMask: ColorMaskAll}
}
