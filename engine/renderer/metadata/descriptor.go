package metadata

import (
	"github.com/spaghettifunk/ray/engine/core"
	"github.com/spaghettifunk/ray/engine/math"
)

/** @brief One uniform declared by a descriptor set layout. */
type UniformLayout struct {
	Name   string
	Type   UniformType
	Stages []ShaderStage
}

type DescriptorSetLayoutDesc struct {
	Components []UniformLayout
}

func (d *DescriptorSetLayoutDesc) AddComponent(name string, typ UniformType, stages ...ShaderStage) {
	d.Components = append(d.Components, UniformLayout{Name: name, Type: typ, Stages: stages})
}

/** @brief How many uniforms of a type the pool can serve. */
type DescriptorPoolComponent struct {
	Type  UniformType
	Count uint32
}

type DescriptorPoolDesc struct {
	MaxSets    uint32
	Components []DescriptorPoolComponent
}

type DescriptorSetDesc struct {
	Layout GraphicsDescriptorSetLayout
	Pool   GraphicsDescriptorPool
}

/**
 * @brief The value bound to one uniform of a descriptor set.
 *
 * A set of a given type only accepts values of that type; mismatched
 * assignments are logged and ignored.
 */
type UniformSet struct {
	name string
	typ  UniformType

	b       bool
	i       math.IVec4
	f       math.Vec4
	m3      math.Mat3
	m4      math.Mat4
	farray  []float32
	texture GraphicsTexture
	sampler GraphicsSampler
	buffer  GraphicsData
	version uint64
}

func NewUniformSet(name string, typ UniformType) *UniformSet {
	return &UniformSet{name: name, typ: typ}
}

func (u *UniformSet) Name() string {
	return u.name
}

func (u *UniformSet) Type() UniformType {
	return u.typ
}

// Version increases on every accepted assignment.
func (u *UniformSet) Version() uint64 {
	return u.version
}

func (u *UniformSet) accept(typ UniformType) bool {
	if u.typ != typ {
		core.LogWarn("uniform '%s' is %s, cannot assign %s", u.name, u.typ, typ)
		return false
	}
	u.version++
	return true
}

// CopyFrom takes over the value held by o when both are of the same type.
func (u *UniformSet) CopyFrom(o *UniformSet) {
	if o == nil || o == u || o.typ != u.typ {
		return
	}
	u.b, u.i, u.f, u.m3, u.m4 = o.b, o.i, o.f, o.m3, o.m4
	u.farray = append([]float32(nil), o.farray...)
	u.texture, u.sampler, u.buffer = o.texture, o.sampler, o.buffer
	u.version++
}

func (u *UniformSet) SetBool(v bool) {
	if u.accept(UniformTypeBool) {
		u.b = v
	}
}

func (u *UniformSet) SetInt(v int32) {
	if u.accept(UniformTypeInt) {
		u.i = math.IVec4{X: v}
	}
}

func (u *UniformSet) SetInt2(v math.IVec2) {
	if u.accept(UniformTypeInt2) {
		u.i = math.IVec4{X: v.X, Y: v.Y}
	}
}

func (u *UniformSet) SetInt3(v math.IVec3) {
	if u.accept(UniformTypeInt3) {
		u.i = math.IVec4{X: v.X, Y: v.Y, Z: v.Z}
	}
}

func (u *UniformSet) SetInt4(v math.IVec4) {
	if u.accept(UniformTypeInt4) {
		u.i = v
	}
}

func (u *UniformSet) SetFloat(v float32) {
	if u.accept(UniformTypeFloat) {
		u.f = math.Vec4{X: v}
	}
}

func (u *UniformSet) SetFloat2(v math.Vec2) {
	if u.accept(UniformTypeFloat2) {
		u.f = math.Vec4{X: v.X, Y: v.Y}
	}
}

func (u *UniformSet) SetFloat3(v math.Vec3) {
	if u.accept(UniformTypeFloat3) {
		u.f = v.ToVec4(0)
	}
}

func (u *UniformSet) SetFloat4(v math.Vec4) {
	if u.accept(UniformTypeFloat4) {
		u.f = v
	}
}

func (u *UniformSet) SetFloat3x3(v math.Mat3) {
	if u.accept(UniformTypeFloat3x3) {
		u.m3 = v
	}
}

func (u *UniformSet) SetFloat4x4(v math.Mat4) {
	if u.accept(UniformTypeFloat4x4) {
		u.m4 = v
	}
}

func (u *UniformSet) SetFloatArray(v []float32) {
	if u.accept(UniformTypeFloatArray) {
		u.farray = append(u.farray[:0], v...)
	}
}

func (u *UniformSet) SetFloat2Array(v []math.Vec2) {
	if u.accept(UniformTypeFloat2Array) {
		u.farray = u.farray[:0]
		for _, e := range v {
			u.farray = append(u.farray, e.X, e.Y)
		}
	}
}

func (u *UniformSet) SetFloat3Array(v []math.Vec3) {
	if u.accept(UniformTypeFloat3Array) {
		u.farray = u.farray[:0]
		for _, e := range v {
			u.farray = append(u.farray, e.X, e.Y, e.Z)
		}
	}
}

func (u *UniformSet) SetFloat4Array(v []math.Vec4) {
	if u.accept(UniformTypeFloat4Array) {
		u.farray = u.farray[:0]
		for _, e := range v {
			u.farray = append(u.farray, e.X, e.Y, e.Z, e.W)
		}
	}
}

// SetTexture binds a texture and an optional sampler. A nil sampler uses the
// sampling state of the texture descriptor.
func (u *UniformSet) SetTexture(texture GraphicsTexture, sampler GraphicsSampler) {
	if u.accept(UniformTypeTexture) {
		u.texture = texture
		u.sampler = sampler
	}
}

func (u *UniformSet) SetBuffer(buffer GraphicsData) {
	if u.accept(UniformTypeBuffer) {
		u.buffer = buffer
	}
}

func (u *UniformSet) Bool() bool {
	return u.b
}

func (u *UniformSet) Int() int32 {
	return u.i.X
}

func (u *UniformSet) Int4() math.IVec4 {
	return u.i
}

func (u *UniformSet) Float() float32 {
	return u.f.X
}

func (u *UniformSet) Float4() math.Vec4 {
	return u.f
}

func (u *UniformSet) Float3x3() math.Mat3 {
	return u.m3
}

func (u *UniformSet) Float4x4() math.Mat4 {
	return u.m4
}

// FloatArray returns array values flattened component by component.
func (u *UniformSet) FloatArray() []float32 {
	return u.farray
}

func (u *UniformSet) Texture() GraphicsTexture {
	return u.texture
}

func (u *UniformSet) Sampler() GraphicsSampler {
	return u.sampler
}

func (u *UniformSet) Buffer() GraphicsData {
	return u.buffer
}
