package metadata

import "github.com/spaghettifunk/ray/engine/math"

/** @brief Ordering bucket controlling draw submission sequence. */
type RenderQueue int

const (
	RenderQueueOpaque RenderQueue = iota
	RenderQueueTransparent
	RenderQueueLighting
	RenderQueuePostprocess
)

func (q RenderQueue) String() string {
	switch q {
	case RenderQueueOpaque:
		return "opaque"
	case RenderQueueTransparent:
		return "transparent"
	case RenderQueueLighting:
		return "lighting"
	case RenderQueuePostprocess:
		return "postprocess"
	}
	return "unknown"
}

/**
 * @brief One pass of a technique: the pipeline to bind and the uniform
 * values to bind with it.
 */
type MaterialPass struct {
	Name          string
	Pipeline      GraphicsPipeline
	DescriptorSet GraphicsDescriptorSet
}

/** @brief The passes a material runs in one render queue. */
type MaterialTech struct {
	Name   string
	Queue  RenderQueue
	Passes []*MaterialPass
}

func (t *MaterialTech) Pass(name string) *MaterialPass {
	for _, p := range t.Passes {
		if p.Name == name {
			return p
		}
	}
	return nil
}

/**
 * @brief A named material parameter. Assigning it writes the value into the
 * uniform set of the same name in every pass.
 */
type MaterialParam struct {
	Name string
	Type UniformType
	sets []*UniformSet
}

func NewMaterialParam(name string, typ UniformType) *MaterialParam {
	return &MaterialParam{Name: name, Type: typ}
}

// Link attaches a pass uniform to the parameter.
func (p *MaterialParam) Link(set *UniformSet) {
	if set != nil {
		p.sets = append(p.sets, set)
	}
}

func (p *MaterialParam) Linked() []*UniformSet {
	return p.sets
}

func (p *MaterialParam) SetBool(v bool) {
	for _, s := range p.sets {
		s.SetBool(v)
	}
}

func (p *MaterialParam) SetInt(v int32) {
	for _, s := range p.sets {
		s.SetInt(v)
	}
}

func (p *MaterialParam) SetFloat(v float32) {
	for _, s := range p.sets {
		s.SetFloat(v)
	}
}

func (p *MaterialParam) SetFloat2(v math.Vec2) {
	for _, s := range p.sets {
		s.SetFloat2(v)
	}
}

func (p *MaterialParam) SetFloat3(v math.Vec3) {
	for _, s := range p.sets {
		s.SetFloat3(v)
	}
}

func (p *MaterialParam) SetFloat4(v math.Vec4) {
	for _, s := range p.sets {
		s.SetFloat4(v)
	}
}

func (p *MaterialParam) SetFloat4x4(v math.Mat4) {
	for _, s := range p.sets {
		s.SetFloat4x4(v)
	}
}

func (p *MaterialParam) SetTexture(texture GraphicsTexture, sampler GraphicsSampler) {
	for _, s := range p.sets {
		s.SetTexture(texture, sampler)
	}
}

/**
 * @brief A material: techniques per render queue plus the parameters
 * shared by their passes.
 */
type Material struct {
	Name   string
	Techs  []*MaterialTech
	Params map[string]*MaterialParam
}

func (m *Material) Tech(queue RenderQueue) *MaterialTech {
	for _, t := range m.Techs {
		if t.Queue == queue {
			return t
		}
	}
	return nil
}

// Param returns the named parameter or nil.
func (m *Material) Param(name string) *MaterialParam {
	if m.Params == nil {
		return nil
	}
	return m.Params[name]
}
