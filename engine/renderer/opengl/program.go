package opengl

import (
	"fmt"
	"strings"

	"github.com/spaghettifunk/ray/engine/core"
	"github.com/spaghettifunk/ray/engine/renderer/gl"
	"github.com/spaghettifunk/ray/engine/renderer/metadata"
)

// Program is a linked shader program with its reflected interface.
type Program struct {
	deviceRef
	desc       metadata.ProgramDesc
	handle     uint32
	uniforms   []metadata.ProgramUniform
	attributes []metadata.ProgramAttribute
}

var _ metadata.GraphicsProgram = (*Program)(nil)

func NewProgram(device *Device, desc metadata.ProgramDesc) (*Program, error) {
	p := &Program{deviceRef: device.ref()}
	if err := p.Setup(desc); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Program) Setup(desc metadata.ProgramDesc) error {
	if p.handle != 0 {
		return fmt.Errorf("program: %w", core.ErrAlreadySetup)
	}
	device, err := p.owner()
	if err != nil {
		return err
	}
	if len(desc.Shaders) == 0 {
		err := fmt.Errorf("program: no shaders: %w", core.ErrInvalidDesc)
		core.LogError(err.Error())
		return err
	}

	fns := device.fns
	handle := fns.CreateProgram()
	if handle == 0 {
		err := fmt.Errorf("program: CreateProgram failed: %w", core.ErrNativeFailure)
		core.LogError(err.Error())
		return err
	}
	for _, shader := range desc.Shaders {
		fns.AttachShader(handle, shader.InstanceID())
	}
	fns.LinkProgram(handle)
	for _, shader := range desc.Shaders {
		fns.DetachShader(handle, shader.InstanceID())
	}
	if fns.GetProgrami(handle, gl.LinkStatus) == gl.False {
		log := fns.GetProgramInfoLog(handle)
		fns.DeleteProgram(handle)
		err := fmt.Errorf("program: link failed: %s: %w", strings.TrimSpace(log), core.ErrNativeFailure)
		core.LogError(err.Error())
		return err
	}

	p.handle = handle
	p.desc = desc
	p.desc.Shaders = append([]metadata.GraphicsShader(nil), desc.Shaders...)
	p.reflectUniforms(fns)
	p.reflectAttributes(fns)
	core.LogDebug("program %d: %d uniforms, %d attributes", handle, len(p.uniforms), len(p.attributes))
	return nil
}

func (p *Program) reflectUniforms(fns gl.Functions) {
	count := fns.GetProgrami(p.handle, gl.ActiveUniforms)
	unit := uint32(0)
	for i := int32(0); i < count; i++ {
		raw, size, xtype := fns.GetActiveUniform(p.handle, uint32(i))
		location := fns.GetUniformLocation(p.handle, raw)
		// block members have no location
		if location < 0 {
			continue
		}
		typ := uniformType(xtype, size)
		if typ == metadata.UniformTypeNone {
			core.LogWarn("program %d: uniform '%s' has unsupported type 0x%X", p.handle, raw, xtype)
			continue
		}
		u := metadata.ProgramUniform{
			Name:     strings.TrimSuffix(raw, "[0]"),
			Type:     typ,
			Location: location,
			Count:    max(size, 1),
		}
		if typ == metadata.UniformTypeTexture {
			u.Binding = unit
			unit++
		}
		p.uniforms = append(p.uniforms, u)
	}
}

func (p *Program) reflectAttributes(fns gl.Functions) {
	count := fns.GetProgrami(p.handle, gl.ActiveAttributes)
	for i := int32(0); i < count; i++ {
		name, _, xtype := fns.GetActiveAttrib(p.handle, uint32(i))
		location := fns.GetAttribLocation(p.handle, name)
		// built-ins such as gl_VertexID
		if location < 0 {
			continue
		}
		p.attributes = append(p.attributes, metadata.ProgramAttribute{
			Name:     name,
			Location: uint32(location),
			Format:   attributeFormat(xtype),
		})
	}
}

// uniformType maps a reflected GL type; arrays of scalars and vectors map to
// the flattened array types.
func uniformType(xtype uint32, size int32) metadata.UniformType {
	if size > 1 {
		switch xtype {
		case gl.Float:
			return metadata.UniformTypeFloatArray
		case gl.FloatVec2:
			return metadata.UniformTypeFloat2Array
		case gl.FloatVec3:
			return metadata.UniformTypeFloat3Array
		case gl.FloatVec4:
			return metadata.UniformTypeFloat4Array
		}
	}
	switch xtype {
	case gl.Bool:
		return metadata.UniformTypeBool
	case gl.Int, gl.UnsignedInt:
		return metadata.UniformTypeInt
	case gl.IntVec2, gl.BoolVec2:
		return metadata.UniformTypeInt2
	case gl.IntVec3, gl.BoolVec3:
		return metadata.UniformTypeInt3
	case gl.IntVec4, gl.BoolVec4:
		return metadata.UniformTypeInt4
	case gl.Float:
		return metadata.UniformTypeFloat
	case gl.FloatVec2:
		return metadata.UniformTypeFloat2
	case gl.FloatVec3:
		return metadata.UniformTypeFloat3
	case gl.FloatVec4:
		return metadata.UniformTypeFloat4
	case gl.FloatMat3:
		return metadata.UniformTypeFloat3x3
	case gl.FloatMat4:
		return metadata.UniformTypeFloat4x4
	case gl.Sampler2D, gl.Sampler3D, gl.SamplerCube, gl.Sampler2DShadow, gl.Sampler2DArray,
		gl.Sampler2DArrayShadow, gl.SamplerCubeShadow, gl.SamplerCubeMapArray,
		gl.Sampler2DMultisample, gl.IntSampler2D, gl.UnsignedIntSampler2D:
		return metadata.UniformTypeTexture
	}
	return metadata.UniformTypeNone
}

func attributeFormat(xtype uint32) metadata.VertexFormat {
	switch xtype {
	case gl.Float:
		return metadata.VertexFormatFloat
	case gl.FloatVec2:
		return metadata.VertexFormatFloat2
	case gl.FloatVec3:
		return metadata.VertexFormatFloat3
	case gl.FloatVec4:
		return metadata.VertexFormatFloat4
	case gl.FloatMat3:
		return metadata.VertexFormatFloat3x3
	case gl.FloatMat4:
		return metadata.VertexFormatFloat4x4
	case gl.Int:
		return metadata.VertexFormatInt
	case gl.IntVec2:
		return metadata.VertexFormatInt2
	case gl.IntVec3:
		return metadata.VertexFormatInt3
	case gl.IntVec4:
		return metadata.VertexFormatInt4
	case gl.UnsignedInt:
		return metadata.VertexFormatUint
	}
	return metadata.VertexFormatUndefined
}

func (p *Program) Close() {
	if p.handle == 0 {
		return
	}
	if device, err := p.owner(); err == nil {
		device.fns.DeleteProgram(p.handle)
	}
	p.handle = 0
	p.uniforms = nil
	p.attributes = nil
}

func (p *Program) InstanceID() uint32 {
	return p.handle
}

func (p *Program) Desc() metadata.ProgramDesc {
	return p.desc
}

func (p *Program) Uniforms() []metadata.ProgramUniform {
	return p.uniforms
}

func (p *Program) Uniform(name string) (metadata.ProgramUniform, bool) {
	for _, u := range p.uniforms {
		if u.Name == name {
			return u, true
		}
	}
	return metadata.ProgramUniform{}, false
}

func (p *Program) Attributes() []metadata.ProgramAttribute {
	return p.attributes
}
