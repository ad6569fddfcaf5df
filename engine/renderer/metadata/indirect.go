package metadata

/**
 * @brief Parameters of a single draw submission.
 */
type RenderIndirect struct {
	StartVertice   uint32
	NumVertices    uint32
	StartIndice    uint32
	NumIndices     uint32
	StartInstances uint32
	NumInstances   uint32
}

func NewDrawIndirect(numVertices, startVertice uint32) RenderIndirect {
	return RenderIndirect{NumVertices: numVertices, StartVertice: startVertice, NumInstances: 1}
}

func NewDrawIndexedIndirect(numIndices, startIndice, startVertice uint32) RenderIndirect {
	return RenderIndirect{NumIndices: numIndices, StartIndice: startIndice, StartVertice: startVertice, NumInstances: 1}
}
