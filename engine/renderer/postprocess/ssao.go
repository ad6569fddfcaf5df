package postprocess

import (
	"github.com/spaghettifunk/ray/engine/renderer/metadata"
)

const SSAOMaterial = "sys:fx/ssao.yaml"

// SSAO approximates ambient occlusion in screen space by darkening pixels
// whose neighbours are brighter in the color target. Depth is not sampled.
type SSAO struct {
	Base
	effect

	radius    float32
	bias      float32
	intensity float32

	radiusParam    *metadata.MaterialParam
	biasParam      *metadata.MaterialParam
	intensityParam *metadata.MaterialParam
	project        *metadata.MaterialParam
	texSource      *metadata.MaterialParam
}

var _ RenderPostProcess = (*SSAO)(nil)

// NewSSAO runs in the lighting queue, ahead of the color stages.
func NewSSAO() *SSAO {
	s := &SSAO{radius: 1.0, bias: 0.025, intensity: 1.0}
	s.Init(s, metadata.RenderQueueLighting)
	return s
}

func (s *SSAO) OnActivate(p Pipeline) error {
	if err := s.load(p, SSAOMaterial, "ssao"); err != nil {
		return err
	}
	s.radiusParam = s.param("radius", metadata.UniformTypeFloat)
	s.biasParam = s.param("bias", metadata.UniformTypeFloat)
	s.intensityParam = s.param("intensity", metadata.UniformTypeFloat)
	s.project = s.param("matProject", metadata.UniformTypeFloat4x4)
	s.texSource = s.param("texSource", metadata.UniformTypeTexture)
	s.SetParameters(s.radius, s.bias, s.intensity)
	return nil
}

func (s *SSAO) OnDeactivate(p Pipeline) {
	s.release(p)
	s.radiusParam, s.biasParam, s.intensityParam, s.project, s.texSource = nil, nil, nil, nil, nil
}

func (s *SSAO) SetParameters(radius, bias, intensity float32) {
	s.radius, s.bias, s.intensity = radius, bias, intensity
	if s.radiusParam == nil {
		return
	}
	s.radiusParam.SetFloat(radius)
	s.biasParam.SetFloat(bias)
	s.intensityParam.SetFloat(intensity)
}

func (s *SSAO) OnRender(p Pipeline, source, dest metadata.GraphicsFramebuffer) bool {
	if camera := p.Camera(); camera != nil {
		s.project.SetFloat4x4(camera.Projection())
	}
	s.blit(p, source, dest, s.texSource)
	return true
}
