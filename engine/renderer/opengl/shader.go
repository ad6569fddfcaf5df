package opengl

import (
	"fmt"
	"strings"

	"github.com/spaghettifunk/ray/engine/core"
	"github.com/spaghettifunk/ray/engine/renderer/gl"
	"github.com/spaghettifunk/ray/engine/renderer/metadata"
)

// Shader is one compiled GLSL stage.
type Shader struct {
	deviceRef
	desc   metadata.ShaderDesc
	handle uint32
}

var _ metadata.GraphicsShader = (*Shader)(nil)

func NewShader(device *Device, desc metadata.ShaderDesc) (*Shader, error) {
	s := &Shader{deviceRef: device.ref()}
	if err := s.Setup(desc); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Shader) Setup(desc metadata.ShaderDesc) error {
	if s.handle != 0 {
		return fmt.Errorf("shader: %w", core.ErrAlreadySetup)
	}
	device, err := s.owner()
	if err != nil {
		return err
	}
	if strings.TrimSpace(desc.Source) == "" {
		err := fmt.Errorf("shader: empty %s source: %w", desc.Stage, core.ErrInvalidDesc)
		core.LogError(err.Error())
		return err
	}
	stage := device.tables.ShaderStage(desc.Stage)
	if stage == gl.InvalidEnum {
		err := fmt.Errorf("shader: stage %s: %w", desc.Stage, core.ErrUnsupported)
		core.LogError(err.Error())
		return err
	}

	fns := device.fns
	handle := fns.CreateShader(stage)
	if handle == 0 {
		err := fmt.Errorf("shader: CreateShader failed: %w", core.ErrNativeFailure)
		core.LogError(err.Error())
		return err
	}
	fns.ShaderSource(handle, desc.Source)
	fns.CompileShader(handle)
	if fns.GetShaderi(handle, gl.CompileStatus) == gl.False {
		log := fns.GetShaderInfoLog(handle)
		fns.DeleteShader(handle)
		err := fmt.Errorf("shader: %s compile failed: %s: %w", desc.Stage, strings.TrimSpace(log), core.ErrNativeFailure)
		core.LogError(err.Error())
		return err
	}

	if desc.Main == "" {
		desc.Main = "main"
	}
	s.handle = handle
	s.desc = desc
	return nil
}

func (s *Shader) Close() {
	if s.handle == 0 {
		return
	}
	if device, err := s.owner(); err == nil {
		device.fns.DeleteShader(s.handle)
	}
	s.handle = 0
}

func (s *Shader) InstanceID() uint32 {
	return s.handle
}

func (s *Shader) Desc() metadata.ShaderDesc {
	return s.desc
}
