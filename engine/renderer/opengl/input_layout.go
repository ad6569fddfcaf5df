package opengl

import (
	"fmt"

	"github.com/spaghettifunk/ray/engine/core"
	"github.com/spaghettifunk/ray/engine/renderer/gl"
	"github.com/spaghettifunk/ray/engine/renderer/metadata"
)

// InputLayout describes vertex attributes. With vertex array objects it owns
// one and the context re-specifies pointers only when the vertex buffer
// changes; without them the pointers are specified on every flush.
type InputLayout struct {
	deviceRef
	desc metadata.InputLayoutDesc
	vao  uint32
	id   uint32
}

var _ metadata.GraphicsInputLayout = (*InputLayout)(nil)

func NewInputLayout(device *Device, desc metadata.InputLayoutDesc) (*InputLayout, error) {
	l := &InputLayout{deviceRef: device.ref()}
	if err := l.Setup(desc); err != nil {
		return nil, err
	}
	return l, nil
}

func (l *InputLayout) Setup(desc metadata.InputLayoutDesc) error {
	if l.id != 0 {
		return fmt.Errorf("input layout: %w", core.ErrAlreadySetup)
	}
	device, err := l.owner()
	if err != nil {
		return err
	}
	if len(desc.Components) == 0 {
		err := fmt.Errorf("input layout: no components: %w", core.ErrInvalidDesc)
		core.LogError(err.Error())
		return err
	}
	if device.tables.VertexType(desc.Topology) == gl.InvalidEnum {
		err := fmt.Errorf("input layout: topology %d: %w", desc.Topology, core.ErrUnsupported)
		core.LogError(err.Error())
		return err
	}
	if device.tables.IndexType(desc.IndexType) == gl.InvalidEnum {
		err := fmt.Errorf("input layout: index type %d: %w", desc.IndexType, core.ErrUnsupported)
		core.LogError(err.Error())
		return err
	}
	for _, c := range desc.Components {
		if device.tables.VertexFormat(c.Format) == gl.InvalidEnum {
			err := fmt.Errorf("input layout: attribute '%s' format %d: %w", c.Semantic, c.Format, core.ErrUnsupported)
			core.LogError(err.Error())
			return err
		}
		if c.Divisor > 0 && !device.features.Instancing {
			err := fmt.Errorf("input layout: attribute '%s' divisor: %w", c.Semantic, core.ErrUnsupported)
			core.LogError(err.Error())
			return err
		}
	}

	if usesVertexArrays(device) {
		l.vao = device.fns.GenVertexArray()
		if l.vao == 0 {
			err := fmt.Errorf("input layout: GenVertexArray failed: %w", core.ErrNativeFailure)
			core.LogError(err.Error())
			return err
		}
		l.id = l.vao
	} else {
		l.id = device.newInstanceID()
	}
	l.desc = desc
	return nil
}

func usesVertexArrays(device *Device) bool {
	return device.features.VertexArrayObject && !device.isES2()
}

func (l *InputLayout) Close() {
	if l.id == 0 {
		return
	}
	if l.vao != 0 {
		if device, err := l.owner(); err == nil {
			device.fns.DeleteVertexArray(l.vao)
		}
	}
	l.vao = 0
	l.id = 0
}

func (l *InputLayout) InstanceID() uint32 {
	return l.id
}

func (l *InputLayout) Desc() metadata.InputLayoutDesc {
	return l.desc
}

// attributeName is the shader input a component feeds.
func attributeName(c metadata.VertexComponent) string {
	if c.SemanticIndex > 0 {
		return fmt.Sprintf("%s%d", c.Semantic, c.SemanticIndex)
	}
	return c.Semantic
}

// attributeLocations resolves every component of desc to a shader input
// location: the reflected location of the program when it declares the
// input, the component index otherwise.
func attributeLocations(desc metadata.InputLayoutDesc, program metadata.GraphicsProgram) []uint32 {
	locations := make([]uint32, len(desc.Components))
	next := uint32(0)
	for i, c := range desc.Components {
		locations[i] = next
		if program != nil {
			name := attributeName(c)
			for _, a := range program.Attributes() {
				if a.Name == name {
					locations[i] = a.Location
					break
				}
			}
		}
		next = locations[i] + attributeSlots(c.Format)
	}
	return locations
}

// attributeSlots is the number of locations a format occupies.
func attributeSlots(f metadata.VertexFormat) uint32 {
	switch f {
	case metadata.VertexFormatFloat3x3:
		return 3
	case metadata.VertexFormatFloat4x4:
		return 4
	}
	return 1
}

// specifyAttributes points every component of the given slot at the buffer
// bound to the array buffer binding, starting offset bytes in. Without
// integerInputs every attribute is converted to float.
func specifyAttributes(fns gl.Functions, tables Tables, desc metadata.InputLayoutDesc, locations []uint32, slot uint32, offset int, integerInputs bool) {
	stride := int32(desc.VertexSize(slot))
	for i, c := range desc.Components {
		if c.Slot != slot {
			continue
		}
		xtype := tables.VertexFormat(c.Format)
		slots := attributeSlots(c.Format)
		size := int32(c.Format.Count()) / int32(slots)
		columnBytes := c.Format.Size() / int(slots)
		for col := uint32(0); col < slots; col++ {
			loc := locations[i] + col
			base := offset + c.Offset + int(col)*columnBytes
			fns.EnableVertexAttribArray(loc)
			if integerInputs && c.Format.IsInteger() && !isNormalizedFormat(c.Format) {
				fns.VertexAttribIPointer(loc, size, xtype, stride, base)
			} else {
				fns.VertexAttribPointer(loc, size, xtype, isNormalizedFormat(c.Format), stride, base)
			}
			if c.Divisor > 0 {
				fns.VertexAttribDivisor(loc, c.Divisor)
			}
		}
	}
}

// isNormalizedFormat reports whether the format is read as normalized
// floats: the 8-bit unsigned formats, typically packed colors.
func isNormalizedFormat(f metadata.VertexFormat) bool {
	return f >= metadata.VertexFormatUchar && f <= metadata.VertexFormatUchar4
}

// disableAttributes turns off every location the layout uses.
func disableAttributes(fns gl.Functions, desc metadata.InputLayoutDesc, locations []uint32) {
	for i, c := range desc.Components {
		for col := uint32(0); col < attributeSlots(c.Format); col++ {
			fns.DisableVertexAttribArray(locations[i] + col)
		}
	}
}
