package systems

import (
	"github.com/spaghettifunk/ray/engine/math"
	"github.com/spaghettifunk/ray/engine/renderer/components"
	"github.com/spaghettifunk/ray/engine/renderer/metadata"
)

// RenderObject is one draw of a scene.
type RenderObject struct {
	Queue        metadata.RenderQueue
	Material     *metadata.Material
	VertexBuffer metadata.GraphicsData
	IndexBuffer  metadata.GraphicsData
	IndexType    metadata.IndexType
	Indirect     metadata.RenderIndirect
	Transform    math.Mat4
}

func NewRenderObject(material *metadata.Material, queue metadata.RenderQueue) *RenderObject {
	return &RenderObject{Queue: queue, Material: material, Transform: math.NewMat4Identity()}
}

// RenderScene is what the pipeline draws in a frame. A nil camera keeps the
// pipeline's current one.
type RenderScene struct {
	Camera  *components.Camera
	Objects []*RenderObject
}

func (s *RenderScene) Add(objects ...*RenderObject) {
	s.Objects = append(s.Objects, objects...)
}

func (s *RenderScene) Clear() {
	s.Objects = s.Objects[:0]
}
