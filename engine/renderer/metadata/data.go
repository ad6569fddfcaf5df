package metadata

/**
 * @brief Describes a vertex, index or uniform buffer.
 */
type DataDesc struct {
	Type  DataType
	Usage UsageFlags
	/** @brief Byte size of one element: vertex stride or index size. */
	Stride uint32
	/** @brief Initial content. May be nil when StreamSize is set. */
	Stream []byte
	/** @brief Buffer size in bytes. Defaults to len(Stream). */
	StreamSize int
}

func (d DataDesc) Size() int {
	if d.StreamSize > 0 {
		return d.StreamSize
	}
	return len(d.Stream)
}

// ElementCount is Size divided by Stride, or zero without a stride.
func (d DataDesc) ElementCount() int {
	if d.Stride == 0 {
		return 0
	}
	return d.Size() / int(d.Stride)
}
