package metadata

/**
 * @brief A single vertex attribute inside an input layout.
 */
type VertexComponent struct {
	/** @brief Attribute name as it appears in the shader. */
	Semantic string
	/** @brief Semantic index, appended to the name when greater than zero. */
	SemanticIndex uint32
	Format        VertexFormat
	/** @brief Byte offset inside the vertex. Computed when left at -1. */
	Offset int
	/** @brief Vertex buffer slot feeding the attribute. */
	Slot uint32
	/** @brief Instance divisor; zero for per-vertex data. */
	Divisor uint32
}

func NewVertexComponent(semantic string, index uint32, format VertexFormat) VertexComponent {
	return VertexComponent{Semantic: semantic, SemanticIndex: index, Format: format, Offset: -1}
}

type InputLayoutDesc struct {
	Components []VertexComponent
	IndexType  IndexType
	Topology   VertexType
}

// AddComponent appends an attribute, placing it after the previous one when
// its offset is unset.
func (d *InputLayoutDesc) AddComponent(c VertexComponent) {
	if c.Offset < 0 {
		c.Offset = 0
		for _, prev := range d.Components {
			if prev.Slot == c.Slot {
				end := prev.Offset + prev.Format.Size()
				if end > c.Offset {
					c.Offset = end
				}
			}
		}
	}
	d.Components = append(d.Components, c)
}

// VertexSize is the stride of one vertex in the given slot.
func (d InputLayoutDesc) VertexSize(slot uint32) int {
	size := 0
	for _, c := range d.Components {
		if c.Slot != slot {
			continue
		}
		if end := c.Offset + c.Format.Size(); end > size {
			size = end
		}
	}
	return size
}
