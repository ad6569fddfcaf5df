package opengl

import (
	"fmt"

	"github.com/spaghettifunk/ray/engine/core"
	"github.com/spaghettifunk/ray/engine/renderer/gl"
	"github.com/spaghettifunk/ray/engine/renderer/metadata"
)

// State is an immutable fixed-function state block. The context applies it
// against what is already bound, so only changed values reach the driver.
type State struct {
	deviceRef
	desc metadata.StateDesc
}

var _ metadata.GraphicsState = (*State)(nil)

func NewState(device *Device, desc metadata.StateDesc) (*State, error) {
	tables := device.tables
	if desc.DepthEnable && tables.CompareFunction(desc.DepthFunc) == gl.InvalidEnum {
		err := fmt.Errorf("state: depth function %d: %w", desc.DepthFunc, core.ErrInvalidDesc)
		core.LogError(err.Error())
		return nil, err
	}
	if desc.FillMode != metadata.FillModeSolid && !device.features.PolygonMode {
		core.LogWarn("state: fill mode %d is not supported by %s, drawing solid", desc.FillMode, device.desc.Type)
		desc.FillMode = metadata.FillModeSolid
	}
	if desc.LineWidth <= 0 {
		desc.LineWidth = 1
	}
	desc.Blends = append([]metadata.ColorBlend(nil), desc.Blends...)
	return &State{deviceRef: device.ref(), desc: desc}, nil
}

func (s *State) Close() {}

func (s *State) Desc() metadata.StateDesc {
	return s.desc
}

// stateApplier issues the native calls turning the applied state into the
// requested one.
type stateApplier struct {
	fns      gl.Functions
	tables   Tables
	features *gl.Features
	es2      bool
}

func enableCap(fns gl.Functions, cap uint32, on bool) {
	if on {
		fns.Enable(cap)
	} else {
		fns.Disable(cap)
	}
}

// apply diffs next against cur and updates cur in place. With force every
// value is reissued; Open seeds the context that way.
func (a stateApplier) apply(cur *metadata.StateDesc, next metadata.StateDesc, force bool) {
	fns, t := a.fns, a.tables

	a.applyBlend(cur, next, force)

	if force || cur.CullMode != next.CullMode {
		if next.CullMode == metadata.CullModeNone {
			fns.Disable(gl.CullFace)
		} else {
			fns.Enable(gl.CullFace)
			fns.CullFace(t.CullMode(next.CullMode))
		}
	}
	if force || cur.FrontFace != next.FrontFace {
		fns.FrontFace(t.FrontFace(next.FrontFace))
	}
	if (force || cur.FillMode != next.FillMode) && a.features.PolygonMode && !a.es2 {
		fns.PolygonMode(gl.FrontAndBack, t.FillMode(next.FillMode))
	}
	if force || cur.ScissorTest != next.ScissorTest {
		enableCap(fns, gl.ScissorTest, next.ScissorTest)
	}
	if force || cur.LineWidth != next.LineWidth {
		fns.LineWidth(next.LineWidth)
	}
	if force || cur.PolygonOffset != next.PolygonOffset {
		enableCap(fns, gl.PolygonOffsetFill, next.PolygonOffset)
	}
	if next.PolygonOffset && (force || cur.DepthSlope != next.DepthSlope || cur.DepthBias != next.DepthBias) {
		fns.PolygonOffset(next.DepthSlope, next.DepthBias)
	}

	if force || cur.DepthEnable != next.DepthEnable {
		enableCap(fns, gl.DepthTest, next.DepthEnable)
	}
	if force || cur.DepthWrite != next.DepthWrite {
		fns.DepthMask(next.DepthWrite)
	}
	if force || cur.DepthFunc != next.DepthFunc {
		fns.DepthFunc(t.CompareFunction(next.DepthFunc))
	}

	if force || cur.StencilEnable != next.StencilEnable {
		enableCap(fns, gl.StencilTest, next.StencilEnable)
	}
	a.applyStencilFace(gl.Front, cur.StencilFront, next.StencilFront, force)
	a.applyStencilFace(gl.Back, cur.StencilBack, next.StencilBack, force)

	blends := cur.Blends
	*cur = next
	cur.Blends = append(blends[:0], next.Blends...)
}

func (a stateApplier) applyBlend(cur *metadata.StateDesc, next metadata.StateDesc, force bool) {
	fns, t := a.fns, a.tables

	// equations and factors are global below GL 4; attachment 0 drives them
	was, want := cur.Blend(0), next.Blend(0)
	if force || was.Enable != want.Enable {
		enableCap(fns, gl.Blend, want.Enable)
	}
	if force || was.Op != want.Op || was.AlphaOp != want.AlphaOp {
		fns.BlendEquationSeparate(t.BlendOperation(want.Op), t.BlendOperation(want.AlphaOp))
	}
	if force || was.Src != want.Src || was.Dst != want.Dst || was.AlphaSrc != want.AlphaSrc || was.AlphaDst != want.AlphaDst {
		fns.BlendFuncSeparate(t.BlendFactor(want.Src), t.BlendFactor(want.Dst), t.BlendFactor(want.AlphaSrc), t.BlendFactor(want.AlphaDst))
	}
	if force || cur.BlendColor != next.BlendColor {
		c := next.BlendColor
		fns.BlendColor(c.X, c.Y, c.Z, c.W)
	}

	count := max(len(cur.Blends), len(next.Blends), 1)
	if a.es2 {
		count = 1
	}
	for i := 0; i < count; i++ {
		was, want := cur.Blend(i), next.Blend(i)
		if !force && was.WriteMask == want.WriteMask {
			continue
		}
		m := want.WriteMask
		r, g, b, al := m&metadata.ColorMaskRed != 0, m&metadata.ColorMaskGreen != 0, m&metadata.ColorMaskBlue != 0, m&metadata.ColorMaskAlpha != 0
		if i == 0 && count == 1 {
			fns.ColorMask(r, g, b, al)
		} else {
			fns.ColorMaski(uint32(i), r, g, b, al)
		}
	}
}

func (a stateApplier) applyStencilFace(face uint32, was, want metadata.StencilFaceState, force bool) {
	fns, t := a.fns, a.tables
	if force || was.Func != want.Func || was.Ref != want.Ref || was.ReadMask != want.ReadMask {
		fns.StencilFuncSeparate(face, t.CompareFunction(want.Func), want.Ref, want.ReadMask)
	}
	if force || was.Fail != want.Fail || was.ZFail != want.ZFail || was.Pass != want.Pass {
		fns.StencilOpSeparate(face, t.StencilOperation(want.Fail), t.StencilOperation(want.ZFail), t.StencilOperation(want.Pass))
	}
	if force || was.WriteMask != want.WriteMask {
		fns.StencilMaskSeparate(face, want.WriteMask)
	}
}
