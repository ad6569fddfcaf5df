package opengl

import (
	"fmt"

	"github.com/spaghettifunk/ray/engine/core"
	"github.com/spaghettifunk/ray/engine/renderer/gl"
	"github.com/spaghettifunk/ray/engine/renderer/metadata"
)

// GraphicsData is a native buffer object. Uploads and mapping go through the
// array buffer binding point so a bound vertex array never picks up a
// different index buffer.
type GraphicsData struct {
	deviceRef
	desc   metadata.DataDesc
	handle uint32
	usage  uint32
	size   int

	// mirror keeps a CPU copy on profiles without buffer mapping.
	mirror    []byte
	mapped    []byte
	mapOffset int
}

var _ metadata.GraphicsData = (*GraphicsData)(nil)

func NewGraphicsData(device *Device, desc metadata.DataDesc) (*GraphicsData, error) {
	d := &GraphicsData{deviceRef: device.ref()}
	if err := d.Setup(desc); err != nil {
		return nil, err
	}
	return d, nil
}

func bufferUsage(flags metadata.UsageFlags) uint32 {
	switch {
	case flags&metadata.UsageImmutableBit != 0:
		return gl.StaticDraw
	case flags&metadata.UsageDynamicBit != 0:
		return gl.DynamicDraw
	case flags&metadata.UsageWriteBit != 0:
		return gl.StreamDraw
	}
	return gl.StaticDraw
}

func (d *GraphicsData) Setup(desc metadata.DataDesc) error {
	if d.handle != 0 {
		return fmt.Errorf("graphics data: %w", core.ErrAlreadySetup)
	}
	device, err := d.owner()
	if err != nil {
		return err
	}
	if desc.Size() <= 0 {
		err := fmt.Errorf("graphics data: empty buffer: %w", core.ErrInvalidDesc)
		core.LogError(err.Error())
		return err
	}
	if desc.Type == metadata.DataTypeUniform && (device.isES2() || !device.features.UniformBufferObject) {
		err := fmt.Errorf("graphics data: uniform buffers: %w", core.ErrUnsupported)
		core.LogError(err.Error())
		return err
	}

	fns := device.fns
	handle := fns.GenBuffer()
	if handle == 0 {
		err := fmt.Errorf("graphics data: GenBuffer failed: %w", core.ErrNativeFailure)
		core.LogError(err.Error())
		return err
	}
	d.usage = bufferUsage(desc.Usage)
	d.size = desc.Size()
	fns.BindBuffer(gl.ArrayBuffer, handle)
	fns.BufferData(gl.ArrayBuffer, d.size, desc.Stream, d.usage)

	if !usesBufferMapping(device) {
		d.mirror = make([]byte, d.size)
		copy(d.mirror, desc.Stream)
	}

	d.handle = handle
	d.desc = desc
	d.desc.Stream = nil
	d.desc.StreamSize = d.size
	return nil
}

func usesBufferMapping(device *Device) bool {
	return device.features.MapBufferRange && !device.isES2()
}

func (d *GraphicsData) Close() {
	if d.handle == 0 {
		return
	}
	if device, err := d.owner(); err == nil {
		device.fns.DeleteBuffer(d.handle)
	}
	d.handle = 0
	d.size = 0
	d.mirror = nil
	d.mapped = nil
}

func (d *GraphicsData) InstanceID() uint32 {
	return d.handle
}

func (d *GraphicsData) Desc() metadata.DataDesc {
	return d.desc
}

func (d *GraphicsData) Size() int {
	return d.size
}

// Resize reallocates the buffer. The previous content is lost.
func (d *GraphicsData) Resize(size int) error {
	device, err := d.owner()
	if err != nil {
		return err
	}
	if size <= 0 {
		return fmt.Errorf("graphics data: resize to %d: %w", size, core.ErrInvalidDesc)
	}
	if d.mapped != nil {
		d.Unmap()
	}
	device.fns.BindBuffer(gl.ArrayBuffer, d.handle)
	device.fns.BufferData(gl.ArrayBuffer, size, nil, d.usage)
	d.size = size
	d.desc.StreamSize = size
	if d.mirror != nil {
		d.mirror = make([]byte, size)
	}
	return nil
}

func (d *GraphicsData) checkRange(offset, count int) error {
	if offset < 0 || count < 0 || offset+count > d.size {
		err := fmt.Errorf("graphics data: range [%d, %d) exceeds %d bytes: %w", offset, offset+count, d.size, core.ErrOutOfRange)
		core.LogError(err.Error())
		return err
	}
	return nil
}

func (d *GraphicsData) Update(offset int, data []byte) error {
	device, err := d.owner()
	if err != nil {
		return err
	}
	if err := d.checkRange(offset, len(data)); err != nil {
		return err
	}
	device.fns.BindBuffer(gl.ArrayBuffer, d.handle)
	device.fns.BufferSubData(gl.ArrayBuffer, offset, data)
	if d.mirror != nil {
		copy(d.mirror[offset:], data)
	}
	return nil
}

// Map exposes count bytes from offset for writing until Unmap. On profiles
// without buffer mapping the slice is a CPU copy written back on Unmap.
func (d *GraphicsData) Map(offset, count int) ([]byte, error) {
	device, err := d.owner()
	if err != nil {
		return nil, err
	}
	if d.mapped != nil {
		err := fmt.Errorf("graphics data: already mapped: %w", core.ErrInvalidDesc)
		core.LogError(err.Error())
		return nil, err
	}
	if err := d.checkRange(offset, count); err != nil {
		return nil, err
	}

	if d.mirror != nil {
		d.mapped = d.mirror[offset : offset+count]
	} else {
		access := uint32(gl.MapWriteBit)
		if d.desc.Usage&metadata.UsageReadBit != 0 {
			access |= gl.MapReadBit
		}
		device.fns.BindBuffer(gl.ArrayBuffer, d.handle)
		d.mapped = device.fns.MapBufferRange(gl.ArrayBuffer, offset, count, access)
		if d.mapped == nil {
			err := fmt.Errorf("graphics data: MapBufferRange failed: %w", core.ErrNativeFailure)
			core.LogError(err.Error())
			return nil, err
		}
	}
	d.mapOffset = offset
	return d.mapped, nil
}

func (d *GraphicsData) Unmap() {
	if d.mapped == nil {
		return
	}
	device, err := d.owner()
	if err != nil {
		d.mapped = nil
		return
	}
	fns := device.fns
	fns.BindBuffer(gl.ArrayBuffer, d.handle)
	if d.mirror != nil {
		fns.BufferSubData(gl.ArrayBuffer, d.mapOffset, d.mapped)
	} else if !fns.UnmapBuffer(gl.ArrayBuffer) {
		core.LogWarn("graphics data: buffer %d content was lost while mapped", d.handle)
	}
	d.mapped = nil
}
