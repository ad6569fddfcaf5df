package postprocess

import (
	"github.com/spaghettifunk/ray/engine/math"
	"github.com/spaghettifunk/ray/engine/renderer/metadata"
)

const DOFMaterial = "sys:fx/dof.yaml"

// DepthOfField blurs what lies outside the focus range.
type DepthOfField struct {
	Base
	effect

	focusDistance float32
	focusRange    float32

	distance  *metadata.MaterialParam
	rng       *metadata.MaterialParam
	texelStep *metadata.MaterialParam
	texSource *metadata.MaterialParam
}

var _ RenderPostProcess = (*DepthOfField)(nil)

func NewDepthOfField() *DepthOfField {
	d := &DepthOfField{focusDistance: 10, focusRange: 5}
	d.Init(d, metadata.RenderQueuePostprocess)
	return d
}

func (d *DepthOfField) OnActivate(p Pipeline) error {
	if err := d.load(p, DOFMaterial, "dof"); err != nil {
		return err
	}
	d.distance = d.param("focusDistance", metadata.UniformTypeFloat)
	d.rng = d.param("focusRange", metadata.UniformTypeFloat)
	d.texelStep = d.param("texelStep", metadata.UniformTypeFloat2)
	d.texSource = d.param("texSource", metadata.UniformTypeTexture)
	d.SetFocus(d.focusDistance, d.focusRange)
	return nil
}

func (d *DepthOfField) OnDeactivate(p Pipeline) {
	d.release(p)
	d.distance, d.rng, d.texelStep, d.texSource = nil, nil, nil, nil
}

func (d *DepthOfField) SetFocus(distance, rng float32) {
	d.focusDistance, d.focusRange = distance, rng
	if d.distance != nil {
		d.distance.SetFloat(distance)
		d.rng.SetFloat(rng)
	}
}

func (d *DepthOfField) Focus() (float32, float32) {
	return d.focusDistance, d.focusRange
}

func (d *DepthOfField) OnRender(p Pipeline, source, dest metadata.GraphicsFramebuffer) bool {
	d.texelStep.SetFloat2(math.NewVec2(texelStep(source)))
	d.blit(p, source, dest, d.texSource)
	return true
}
