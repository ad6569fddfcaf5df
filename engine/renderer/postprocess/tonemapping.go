package postprocess

import (
	"github.com/spaghettifunk/ray/engine/renderer/metadata"
)

const ToneMappingMaterial = "sys:fx/tonemapping.yaml"

// ToneMapping maps HDR color to display range with a filmic curve.
type ToneMapping struct {
	Base
	effect

	exposure float32
	gamma    float32

	exposureParam *metadata.MaterialParam
	gammaParam    *metadata.MaterialParam
	texSource     *metadata.MaterialParam
}

var _ RenderPostProcess = (*ToneMapping)(nil)

func NewToneMapping() *ToneMapping {
	t := &ToneMapping{exposure: 1.0, gamma: 2.2}
	t.Init(t, metadata.RenderQueuePostprocess)
	return t
}

func (t *ToneMapping) OnActivate(p Pipeline) error {
	if err := t.load(p, ToneMappingMaterial, "filmic"); err != nil {
		return err
	}
	t.exposureParam = t.param("exposure", metadata.UniformTypeFloat)
	t.gammaParam = t.param("gamma", metadata.UniformTypeFloat)
	t.texSource = t.param("texSource", metadata.UniformTypeTexture)
	t.exposureParam.SetFloat(t.exposure)
	t.gammaParam.SetFloat(t.gamma)
	return nil
}

func (t *ToneMapping) OnDeactivate(p Pipeline) {
	t.release(p)
	t.exposureParam, t.gammaParam, t.texSource = nil, nil, nil
}

func (t *ToneMapping) SetExposure(v float32) {
	t.exposure = v
	if t.exposureParam != nil {
		t.exposureParam.SetFloat(v)
	}
}

func (t *ToneMapping) SetGamma(v float32) {
	t.gamma = v
	if t.gammaParam != nil {
		t.gammaParam.SetFloat(v)
	}
}

func (t *ToneMapping) OnRender(p Pipeline, source, dest metadata.GraphicsFramebuffer) bool {
	t.blit(p, source, dest, t.texSource)
	return true
}
