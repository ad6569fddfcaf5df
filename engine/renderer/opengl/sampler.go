package opengl

import (
	"fmt"

	"github.com/spaghettifunk/ray/engine/core"
	"github.com/spaghettifunk/ray/engine/renderer/gl"
	"github.com/spaghettifunk/ray/engine/renderer/metadata"
)

// Sampler owns a native sampler object when the profile has them. On ES2 it
// only carries its descriptor, which the context writes onto the texture
// bound next to it.
type Sampler struct {
	deviceRef
	desc   metadata.SamplerDesc
	handle uint32
	id     uint32
}

var _ metadata.GraphicsSampler = (*Sampler)(nil)

func NewSampler(device *Device, desc metadata.SamplerDesc) (*Sampler, error) {
	s := &Sampler{deviceRef: device.ref()}
	if err := s.Setup(desc); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Sampler) Setup(desc metadata.SamplerDesc) error {
	if s.id != 0 {
		return fmt.Errorf("sampler: %w", core.ErrAlreadySetup)
	}
	device, err := s.owner()
	if err != nil {
		return err
	}
	tables := device.tables
	wrap := tables.SamplerWrap(desc.Wrap)
	filter := tables.SamplerFilter(desc.Filter)
	if wrap == gl.InvalidEnum || filter == gl.InvalidEnum {
		err := fmt.Errorf("sampler: wrap %d / filter %d: %w", desc.Wrap, desc.Filter, core.ErrUnsupported)
		core.LogError(err.Error())
		return err
	}

	if !usesSamplerObjects(device) {
		s.id = device.newInstanceID()
		s.desc = desc
		return nil
	}

	fns := device.fns
	handle := fns.GenSampler()
	if handle == 0 {
		err := fmt.Errorf("sampler: GenSampler failed: %w", core.ErrNativeFailure)
		core.LogError(err.Error())
		return err
	}
	fns.SamplerParameteri(handle, gl.TextureWrapS, int32(wrap))
	fns.SamplerParameteri(handle, gl.TextureWrapT, int32(wrap))
	fns.SamplerParameteri(handle, gl.TextureWrapR, int32(wrap))
	fns.SamplerParameteri(handle, gl.TextureMinFilter, int32(filter))
	fns.SamplerParameteri(handle, gl.TextureMagFilter, int32(magFilter(desc.Filter)))
	if desc.Compare != metadata.CompareFunctionNone {
		fns.SamplerParameteri(handle, gl.TextureCompareMode, gl.CompareRefToTexture)
		fns.SamplerParameteri(handle, gl.TextureCompareFunc, int32(tables.CompareFunction(desc.Compare)))
	}
	if desc.Anis > metadata.SamplerAnis0 && device.features.TextureFilterAnisotropic {
		fns.SamplerParameterf(handle, gl.TextureMaxAnisotropyEXT, min(float32(desc.Anis), max(device.features.MaxAnisotropy, 1)))
	}

	s.handle = handle
	s.id = handle
	s.desc = desc
	return nil
}

func usesSamplerObjects(device *Device) bool {
	return device.features.SamplerObjects && !device.isES2()
}

func (s *Sampler) Close() {
	if s.id == 0 {
		return
	}
	if s.handle != 0 {
		if device, err := s.owner(); err == nil {
			device.fns.DeleteSampler(s.handle)
		}
	}
	s.handle = 0
	s.id = 0
}

// InstanceID is the native sampler name, or a device-unique id on profiles
// without sampler objects.
func (s *Sampler) InstanceID() uint32 {
	return s.id
}

func (s *Sampler) Desc() metadata.SamplerDesc {
	return s.desc
}
