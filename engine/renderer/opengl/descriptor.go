package opengl

import (
	"fmt"

	"github.com/spaghettifunk/ray/engine/core"
	"github.com/spaghettifunk/ray/engine/renderer/metadata"
)

type DescriptorSetLayout struct {
	deviceRef
	desc metadata.DescriptorSetLayoutDesc
}

var _ metadata.GraphicsDescriptorSetLayout = (*DescriptorSetLayout)(nil)

func NewDescriptorSetLayout(device *Device, desc metadata.DescriptorSetLayoutDesc) (*DescriptorSetLayout, error) {
	seen := make(map[string]struct{}, len(desc.Components))
	for _, c := range desc.Components {
		if c.Name == "" || c.Type == metadata.UniformTypeNone {
			err := fmt.Errorf("descriptor set layout: uniform '%s' of type %s: %w", c.Name, c.Type, core.ErrInvalidDesc)
			core.LogError(err.Error())
			return nil, err
		}
		if _, ok := seen[c.Name]; ok {
			err := fmt.Errorf("descriptor set layout: uniform '%s': %w", c.Name, core.ErrDuplicateSlot)
			core.LogError(err.Error())
			return nil, err
		}
		if c.Type == metadata.UniformTypeBuffer && (device.isES2() || !device.features.UniformBufferObject) {
			err := fmt.Errorf("descriptor set layout: uniform block '%s': %w", c.Name, core.ErrUnsupported)
			core.LogError(err.Error())
			return nil, err
		}
		seen[c.Name] = struct{}{}
	}
	desc.Components = append([]metadata.UniformLayout(nil), desc.Components...)
	return &DescriptorSetLayout{deviceRef: device.ref(), desc: desc}, nil
}

func (l *DescriptorSetLayout) Close() {}

func (l *DescriptorSetLayout) Desc() metadata.DescriptorSetLayoutDesc {
	return l.desc
}

// DescriptorPool accounts for live descriptor sets. GL has no native pool;
// the limits are enforced so the same content behaves alike on every
// backend.
type DescriptorPool struct {
	deviceRef
	desc      metadata.DescriptorPoolDesc
	sets      *core.Identifier[uint32, any]
	used      map[metadata.UniformType]uint32
	allocated map[uint32][]metadata.UniformLayout
}

var _ metadata.GraphicsDescriptorPool = (*DescriptorPool)(nil)

func NewDescriptorPool(device *Device, desc metadata.DescriptorPoolDesc) (*DescriptorPool, error) {
	if desc.MaxSets == 0 {
		err := fmt.Errorf("descriptor pool: zero max sets: %w", core.ErrInvalidDesc)
		core.LogError(err.Error())
		return nil, err
	}
	desc.Components = append([]metadata.DescriptorPoolComponent(nil), desc.Components...)
	return &DescriptorPool{
		deviceRef: device.ref(),
		desc:      desc,
		sets:      core.NewIdentifier[uint32, any](int(desc.MaxSets)),
		used:      make(map[metadata.UniformType]uint32),
		allocated: make(map[uint32][]metadata.UniformLayout),
	}, nil
}

func (p *DescriptorPool) capacity(typ metadata.UniformType) (uint32, bool) {
	for _, c := range p.desc.Components {
		if c.Type == typ {
			return c.Count, true
		}
	}
	return 0, false
}

// Allocate reserves a set slot and the uniforms it declares. A pool without
// components only bounds the number of sets.
func (p *DescriptorPool) Allocate(owner any, uniforms []metadata.UniformLayout) (uint32, error) {
	if len(p.desc.Components) > 0 {
		need := make(map[metadata.UniformType]uint32)
		for _, u := range uniforms {
			need[u.Type]++
		}
		for typ, n := range need {
			limit, ok := p.capacity(typ)
			if !ok || p.used[typ]+n > limit {
				err := fmt.Errorf("descriptor pool: %d %s uniforms (in use %d of %d): %w", n, typ, p.used[typ], limit, core.ErrPoolExhausted)
				core.LogError(err.Error())
				return 0, err
			}
		}
	}
	slot, err := p.sets.AquireNewID(owner)
	if err != nil {
		core.LogError("descriptor pool: %s", err)
		return 0, err
	}
	for _, u := range uniforms {
		p.used[u.Type]++
	}
	p.allocated[slot] = uniforms
	return slot, nil
}

func (p *DescriptorPool) Free(slot uint32) {
	uniforms, ok := p.allocated[slot]
	if !ok {
		return
	}
	for _, u := range uniforms {
		p.used[u.Type]--
	}
	delete(p.allocated, slot)
	if err := p.sets.ReleaseID(slot); err != nil {
		core.LogWarn("descriptor pool: %s", err)
	}
}

// InUse returns the number of live sets.
func (p *DescriptorPool) InUse() int {
	return p.sets.InUse()
}

func (p *DescriptorPool) Close() {
	for slot := range p.allocated {
		p.Free(slot)
	}
}

func (p *DescriptorPool) Desc() metadata.DescriptorPoolDesc {
	return p.desc
}

// DescriptorSet holds one value per uniform of its layout. Values are
// uploaded by the context when the set is drawn with.
type DescriptorSet struct {
	deviceRef
	desc   metadata.DescriptorSetDesc
	sets   []*metadata.UniformSet
	slot   uint32
	pooled bool
}

var _ metadata.GraphicsDescriptorSet = (*DescriptorSet)(nil)

func NewDescriptorSet(device *Device, desc metadata.DescriptorSetDesc) (*DescriptorSet, error) {
	if desc.Layout == nil {
		err := fmt.Errorf("descriptor set: missing layout: %w", core.ErrInvalidDesc)
		core.LogError(err.Error())
		return nil, err
	}
	s := &DescriptorSet{deviceRef: device.ref(), desc: desc}
	components := desc.Layout.Desc().Components
	if desc.Pool != nil {
		slot, err := desc.Pool.Allocate(s, components)
		if err != nil {
			return nil, err
		}
		s.slot, s.pooled = slot, true
	}
	for _, c := range components {
		s.sets = append(s.sets, metadata.NewUniformSet(c.Name, c.Type))
	}
	return s, nil
}

func (s *DescriptorSet) Close() {
	if s.pooled {
		s.desc.Pool.Free(s.slot)
		s.pooled = false
	}
	s.sets = nil
}

func (s *DescriptorSet) Desc() metadata.DescriptorSetDesc {
	return s.desc
}

func (s *DescriptorSet) UniformSets() []*metadata.UniformSet {
	return s.sets
}

func (s *DescriptorSet) UniformSet(name string) *metadata.UniformSet {
	for _, u := range s.sets {
		if u.Name() == name {
			return u
		}
	}
	return nil
}
