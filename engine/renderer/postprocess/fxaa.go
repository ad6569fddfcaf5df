package postprocess

import (
	"github.com/spaghettifunk/ray/engine/math"
	"github.com/spaghettifunk/ray/engine/renderer/metadata"
)

const FXAAMaterial = "sys:fx/fxaa.yaml"

// FXAA is fast approximate anti-aliasing on the final color.
type FXAA struct {
	Base
	effect

	texelStep *metadata.MaterialParam
	texSource *metadata.MaterialParam
}

var _ RenderPostProcess = (*FXAA)(nil)

func NewFXAA() *FXAA {
	f := &FXAA{}
	f.Init(f, metadata.RenderQueuePostprocess)
	return f
}

func (f *FXAA) OnActivate(p Pipeline) error {
	if err := f.load(p, FXAAMaterial, "fxaa"); err != nil {
		return err
	}
	f.texelStep = f.param("texelStep", metadata.UniformTypeFloat2)
	f.texSource = f.param("texSource", metadata.UniformTypeTexture)
	return nil
}

func (f *FXAA) OnDeactivate(p Pipeline) {
	f.release(p)
	f.texelStep, f.texSource = nil, nil
}

func (f *FXAA) OnRender(p Pipeline, source, dest metadata.GraphicsFramebuffer) bool {
	f.texelStep.SetFloat2(math.NewVec2(texelStep(source)))
	f.blit(p, source, dest, f.texSource)
	return true
}
