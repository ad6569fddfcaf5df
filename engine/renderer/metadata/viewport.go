package metadata

type Viewport struct {
	Left     float32
	Top      float32
	Width    float32
	Height   float32
	MinDepth float32
	MaxDepth float32
}

func NewViewport(left, top, width, height float32) Viewport {
	return Viewport{Left: left, Top: top, Width: width, Height: height, MaxDepth: 1}
}

type Scissor struct {
	Left   int32
	Top    int32
	Width  uint32
	Height uint32
}

func NewScissor(left, top int32, width, height uint32) Scissor {
	return Scissor{Left: left, Top: top, Width: width, Height: height}
}
