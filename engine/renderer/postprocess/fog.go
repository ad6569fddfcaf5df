package postprocess

import (
	"github.com/spaghettifunk/ray/engine/math"
	"github.com/spaghettifunk/ray/engine/renderer/metadata"
)

const FogMaterial = "sys:fx/fog.yaml"

// Fog blends an exponential height fog over the scene.
type Fog struct {
	Base
	effect

	falloff float32
	density float32
	color   math.Vec3

	fogFalloff *metadata.MaterialParam
	fogDensity *metadata.MaterialParam
	fogColor   *metadata.MaterialParam
	texSource  *metadata.MaterialParam
}

var _ RenderPostProcess = (*Fog)(nil)

func NewFog() *Fog {
	f := &Fog{
		falloff: 10.0,
		density: 0.0001,
		color:   math.NewVec3(0.0, 0.3, 0.99),
	}
	f.Init(f, metadata.RenderQueuePostprocess)
	return f
}

func (f *Fog) OnActivate(p Pipeline) error {
	if err := f.load(p, FogMaterial, "fog"); err != nil {
		return err
	}
	f.fogFalloff = f.param("fogFalloff", metadata.UniformTypeFloat)
	f.fogDensity = f.param("fogDensity", metadata.UniformTypeFloat)
	f.fogColor = f.param("fogColor", metadata.UniformTypeFloat3)
	f.texSource = f.param("texSource", metadata.UniformTypeTexture)

	f.fogFalloff.SetFloat(f.falloff)
	f.fogDensity.SetFloat(f.density)
	f.fogColor.SetFloat3(f.color)
	return nil
}

func (f *Fog) OnDeactivate(p Pipeline) {
	f.release(p)
	f.fogFalloff, f.fogDensity, f.fogColor, f.texSource = nil, nil, nil, nil
}

func (f *Fog) SetFalloff(v float32) {
	f.falloff = v
	if f.fogFalloff != nil {
		f.fogFalloff.SetFloat(v)
	}
}

func (f *Fog) SetDensity(v float32) {
	f.density = v
	if f.fogDensity != nil {
		f.fogDensity.SetFloat(v)
	}
}

func (f *Fog) SetColor(v math.Vec3) {
	f.color = v
	if f.fogColor != nil {
		f.fogColor.SetFloat3(v)
	}
}

func (f *Fog) OnRender(p Pipeline, source, dest metadata.GraphicsFramebuffer) bool {
	f.blit(p, source, dest, f.texSource)
	return true
}
