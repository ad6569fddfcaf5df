package postprocess

import (
	"fmt"

	"github.com/spaghettifunk/ray/engine/core"
	"github.com/spaghettifunk/ray/engine/renderer/components"
	"github.com/spaghettifunk/ray/engine/renderer/metadata"
)

// Pipeline is the part of the render pipeline a stage draws through.
type Pipeline interface {
	CreateMaterial(name string) (*metadata.Material, error)
	DestroyMaterial(material *metadata.Material)
	CreateTexture(desc metadata.TextureDesc) (metadata.GraphicsTexture, error)
	CreateTextureFromFile(name string) (metadata.GraphicsTexture, error)
	ReleaseTexture(name string)
	SetFramebuffer(target metadata.GraphicsFramebuffer)
	DiscardFramebuffer(target metadata.GraphicsFramebuffer, attachments []uint32)
	DrawScreenQuad(pass *metadata.MaterialPass)
	Camera() *components.Camera
	FramebufferSize() (uint32, uint32)
}

// Hooks are the callbacks Base drives when the active flag flips.
type Hooks interface {
	OnActivate(p Pipeline) error
	OnDeactivate(p Pipeline)
}

// RenderPostProcess is a full-screen stage run after the scene is drawn.
// OnRender returns true when it wrote its result to dest, in which case
// the pipeline swaps source and dest before the next stage.
type RenderPostProcess interface {
	Hooks
	SetPipeline(p Pipeline)
	Pipeline() Pipeline
	SetActive(active bool) error
	Active() bool
	SetRenderQueue(queue metadata.RenderQueue)
	RenderQueue() metadata.RenderQueue
	OnResolutionChange(p Pipeline, width, height uint32)
	OnRenderPre(p Pipeline)
	OnRenderPost(p Pipeline)
	OnRender(p Pipeline, source, dest metadata.GraphicsFramebuffer) bool
}

// Base carries the active flag and render queue of a stage. Embedders call
// Init with themselves so that SetActive reaches their hooks.
type Base struct {
	active   bool
	queue    metadata.RenderQueue
	pipeline Pipeline
	hooks    Hooks
}

func (b *Base) Init(hooks Hooks, queue metadata.RenderQueue) {
	b.hooks = hooks
	b.queue = queue
}

func (b *Base) SetPipeline(p Pipeline) {
	b.pipeline = p
}

func (b *Base) Pipeline() Pipeline {
	return b.pipeline
}

// SetActive calls OnActivate or OnDeactivate when the flag changes and
// nothing otherwise. A failed activation leaves the stage inactive.
func (b *Base) SetActive(active bool) error {
	if b.active == active {
		return nil
	}
	if b.pipeline == nil || b.hooks == nil {
		err := fmt.Errorf("post process has no pipeline: %w", core.ErrNotSetup)
		core.LogError(err.Error())
		return err
	}
	if active {
		if err := b.hooks.OnActivate(b.pipeline); err != nil {
			return err
		}
	} else {
		b.hooks.OnDeactivate(b.pipeline)
	}
	b.active = active
	return nil
}

func (b *Base) Active() bool {
	return b.active
}

func (b *Base) SetRenderQueue(queue metadata.RenderQueue) {
	b.queue = queue
}

func (b *Base) RenderQueue() metadata.RenderQueue {
	return b.queue
}

func (b *Base) OnResolutionChange(p Pipeline, width, height uint32) {}

func (b *Base) OnRenderPre(p Pipeline) {}

func (b *Base) OnRenderPost(p Pipeline) {}

// effect is the material and pass shared by the single-pass stages.
type effect struct {
	material *metadata.Material
	pass     *metadata.MaterialPass
}

func (e *effect) load(p Pipeline, name, pass string) error {
	material, err := p.CreateMaterial(name)
	if err != nil {
		return err
	}
	var found *metadata.MaterialPass
	for _, tech := range material.Techs {
		if found = tech.Pass(pass); found != nil {
			break
		}
	}
	if found == nil {
		p.DestroyMaterial(material)
		err := fmt.Errorf("material '%s' has no pass '%s': %w", name, pass, core.ErrInvalidDesc)
		core.LogError(err.Error())
		return err
	}
	e.material, e.pass = material, found
	return nil
}

func (e *effect) release(p Pipeline) {
	if e.material != nil {
		p.DestroyMaterial(e.material)
	}
	e.material, e.pass = nil, nil
}

// param returns the named parameter, or a detached one so that missing
// parameters are harmless to assign.
func (e *effect) param(name string, typ metadata.UniformType) *metadata.MaterialParam {
	if p := e.material.Param(name); p != nil {
		return p
	}
	core.LogWarn("material '%s' has no parameter '%s'", e.material.Name, name)
	return metadata.NewMaterialParam(name, typ)
}

// blit draws the pass from source into dest.
func (e *effect) blit(p Pipeline, source, dest metadata.GraphicsFramebuffer, texSource *metadata.MaterialParam) {
	texSource.SetTexture(source.ResolveTexture(), nil)
	p.SetFramebuffer(dest)
	p.DiscardFramebuffer(dest, []uint32{0})
	p.DrawScreenQuad(e.pass)
}

// texelStep is the size of one texel of the source image in UV units.
func texelStep(source metadata.GraphicsFramebuffer) (float32, float32) {
	texture := source.ResolveTexture()
	if texture == nil {
		return 0, 0
	}
	desc := texture.Desc()
	if desc.Width == 0 || desc.Height == 0 {
		return 0, 0
	}
	return 1 / float32(desc.Width), 1 / float32(desc.Height)
}
