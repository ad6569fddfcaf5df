package systems

import (
	"encoding/binary"
	"fmt"
	gomath "math"

	"github.com/spaghettifunk/ray/engine/core"
	"github.com/spaghettifunk/ray/engine/math"
	"github.com/spaghettifunk/ray/engine/renderer/metadata"
)

// Vertex3D is the interleaved vertex used by generated geometry.
type Vertex3D struct {
	Position math.Vec3
	Normal   math.Vec3
	Texcoord math.Vec2
}

// vertex3DSize is the stride of Vertex3D in a vertex buffer.
const vertex3DSize = 32

// GeometryConfig is the CPU side of a geometry.
type GeometryConfig struct {
	Name       string
	Vertices   []Vertex3D
	Indices    []uint32
	MinExtents math.Vec3
	MaxExtents math.Vec3
}

// Geometry holds the GPU buffers of a mesh.
type Geometry struct {
	Name         string
	VertexBuffer metadata.GraphicsData
	IndexBuffer  metadata.GraphicsData
	VertexCount  uint32
	IndexCount   uint32
	MinExtents   math.Vec3
	MaxExtents   math.Vec3
}

// GeometryLayout is the input layout matching Vertex3D. Material passes
// drawing generated geometry declare the same attributes.
func GeometryLayout() metadata.InputLayoutDesc {
	var layout metadata.InputLayoutDesc
	layout.Topology = metadata.VertexTypeTriangle
	layout.IndexType = metadata.IndexTypeUint32
	layout.AddComponent(metadata.NewVertexComponent("position", 0, metadata.VertexFormatFloat3))
	layout.AddComponent(metadata.NewVertexComponent("normal", 0, metadata.VertexFormatFloat3))
	layout.AddComponent(metadata.NewVertexComponent("texcoord", 0, metadata.VertexFormatFloat2))
	return layout
}

// RenderObject wraps the geometry in a draw of material.
func (g *Geometry) RenderObject(material *metadata.Material, queue metadata.RenderQueue) *RenderObject {
	object := NewRenderObject(material, queue)
	object.VertexBuffer = g.VertexBuffer
	object.IndexBuffer = g.IndexBuffer
	object.IndexType = metadata.IndexTypeUint32
	object.Indirect = metadata.NewDrawIndexedIndirect(g.IndexCount, 0, 0)
	return object
}

type geometryReference struct {
	referenceCount uint64
	geometry       *Geometry
}

type GeometrySystemConfig struct {
	MaxGeometryCount uint32
}

type GeometrySystem struct {
	Config     *GeometrySystemConfig
	device     metadata.GraphicsDevice
	registered map[string]*geometryReference
}

func NewGeometrySystem(config *GeometrySystemConfig, device metadata.GraphicsDevice) (*GeometrySystem, error) {
	if config.MaxGeometryCount == 0 {
		err := fmt.Errorf("func NewGeometrySystem - config.MaxGeometryCount must be > 0: %w", core.ErrInvalidDesc)
		core.LogError(err.Error())
		return nil, err
	}
	return &GeometrySystem{
		Config:     config,
		device:     device,
		registered: make(map[string]*geometryReference),
	}, nil
}

// Acquire uploads config, or returns the geometry already registered under
// its name.
func (gs *GeometrySystem) Acquire(config *GeometryConfig) (*Geometry, error) {
	if ref, ok := gs.registered[config.Name]; ok {
		ref.referenceCount++
		return ref.geometry, nil
	}
	if uint32(len(gs.registered)) >= gs.Config.MaxGeometryCount {
		err := fmt.Errorf("geometry '%s': %w", config.Name, core.ErrPoolExhausted)
		core.LogError(err.Error())
		return nil, err
	}
	if len(config.Vertices) == 0 || len(config.Indices) == 0 {
		err := fmt.Errorf("geometry '%s' has no vertices or indices: %w", config.Name, core.ErrInvalidDesc)
		core.LogError(err.Error())
		return nil, err
	}

	vb, err := gs.device.CreateGraphicsData(metadata.DataDesc{
		Type:   metadata.DataTypeVertex,
		Usage:  metadata.UsageImmutableBit,
		Stride: vertex3DSize,
		Stream: packVertices(config.Vertices),
	})
	if err != nil {
		return nil, err
	}
	ib, err := gs.device.CreateGraphicsData(metadata.DataDesc{
		Type:   metadata.DataTypeIndex,
		Usage:  metadata.UsageImmutableBit,
		Stride: 4,
		Stream: packIndices(config.Indices),
	})
	if err != nil {
		vb.Close()
		return nil, err
	}

	g := &Geometry{
		Name:         config.Name,
		VertexBuffer: vb,
		IndexBuffer:  ib,
		VertexCount:  uint32(len(config.Vertices)),
		IndexCount:   uint32(len(config.Indices)),
		MinExtents:   config.MinExtents,
		MaxExtents:   config.MaxExtents,
	}
	gs.registered[config.Name] = &geometryReference{referenceCount: 1, geometry: g}
	return g, nil
}

// Release drops a reference and frees the buffers on the last one.
func (gs *GeometrySystem) Release(name string) {
	ref, ok := gs.registered[name]
	if !ok {
		core.LogWarn("geometry '%s' released but never acquired", name)
		return
	}
	if ref.referenceCount > 0 {
		ref.referenceCount--
	}
	if ref.referenceCount == 0 {
		ref.geometry.VertexBuffer.Close()
		ref.geometry.IndexBuffer.Close()
		delete(gs.registered, name)
	}
}

func (gs *GeometrySystem) Count() int {
	return len(gs.registered)
}

func (gs *GeometrySystem) Shutdown() error {
	for name, ref := range gs.registered {
		ref.geometry.VertexBuffer.Close()
		ref.geometry.IndexBuffer.Close()
		delete(gs.registered, name)
	}
	return nil
}

func packVertices(vertices []Vertex3D) []byte {
	stream := make([]byte, 0, len(vertices)*vertex3DSize)
	put := func(values ...float32) {
		for _, v := range values {
			stream = binary.LittleEndian.AppendUint32(stream, gomath.Float32bits(v))
		}
	}
	for _, v := range vertices {
		put(v.Position.X, v.Position.Y, v.Position.Z)
		put(v.Normal.X, v.Normal.Y, v.Normal.Z)
		put(v.Texcoord.X, v.Texcoord.Y)
	}
	return stream
}

func packIndices(indices []uint32) []byte {
	stream := make([]byte, 0, len(indices)*4)
	for _, i := range indices {
		stream = binary.LittleEndian.AppendUint32(stream, i)
	}
	return stream
}

func nonZero(what string, v float32) float32 {
	if v == 0 {
		core.LogWarn("%s must be nonzero. Defaulting to one.", what)
		return 1
	}
	return v
}

// GeneratePlaneConfig builds a plane in the XY plane facing +Z, split into
// segments with the texture repeated tileX by tileY times.
func GeneratePlaneConfig(width, height float32, xSegmentCount, ySegmentCount uint32, tileX, tileY float32, name string) *GeometryConfig {
	width = nonZero("width", width)
	height = nonZero("height", height)
	tileX = nonZero("tileX", tileX)
	tileY = nonZero("tileY", tileY)
	if xSegmentCount < 1 {
		core.LogWarn("xSegmentCount must be a positive number. Defaulting to one.")
		xSegmentCount = 1
	}
	if ySegmentCount < 1 {
		core.LogWarn("ySegmentCount must be a positive number. Defaulting to one.")
		ySegmentCount = 1
	}

	segments := xSegmentCount * ySegmentCount
	config := &GeometryConfig{
		Name:       name,
		Vertices:   make([]Vertex3D, segments*4),
		Indices:    make([]uint32, segments*6),
		MinExtents: math.NewVec3(-width*0.5, -height*0.5, 0),
		MaxExtents: math.NewVec3(width*0.5, height*0.5, 0),
	}

	segWidth := width / float32(xSegmentCount)
	segHeight := height / float32(ySegmentCount)
	normal := math.NewVec3(0, 0, 1)
	for y := uint32(0); y < ySegmentCount; y++ {
		for x := uint32(0); x < xSegmentCount; x++ {
			minX := float32(x)*segWidth - width*0.5
			minY := float32(y)*segHeight - height*0.5
			maxX := minX + segWidth
			maxY := minY + segHeight
			minU := float32(x) / float32(xSegmentCount) * tileX
			minV := float32(y) / float32(ySegmentCount) * tileY
			maxU := float32(x+1) / float32(xSegmentCount) * tileX
			maxV := float32(y+1) / float32(ySegmentCount) * tileY

			offset := (y*xSegmentCount + x) * 4
			config.Vertices[offset+0] = Vertex3D{math.NewVec3(minX, minY, 0), normal, math.NewVec2(minU, minV)}
			config.Vertices[offset+1] = Vertex3D{math.NewVec3(maxX, maxY, 0), normal, math.NewVec2(maxU, maxV)}
			config.Vertices[offset+2] = Vertex3D{math.NewVec3(minX, maxY, 0), normal, math.NewVec2(minU, maxV)}
			config.Vertices[offset+3] = Vertex3D{math.NewVec3(maxX, minY, 0), normal, math.NewVec2(maxU, minV)}
			quadIndices(config.Indices[(y*xSegmentCount+x)*6:], offset)
		}
	}
	return config
}

// GenerateCubeConfig builds an axis aligned box centered on the origin.
func GenerateCubeConfig(width, height, depth, tileX, tileY float32, name string) *GeometryConfig {
	width = nonZero("width", width)
	height = nonZero("height", height)
	depth = nonZero("depth", depth)
	tileX = nonZero("tileX", tileX)
	tileY = nonZero("tileY", tileY)

	minX, minY, minZ := -width*0.5, -height*0.5, -depth*0.5
	maxX, maxY, maxZ := width*0.5, height*0.5, depth*0.5

	// corners of each face in the order min-uv, max-uv, (min,max), (max,min)
	faces := []struct {
		normal  math.Vec3
		corners [4]math.Vec3
	}{
		{math.NewVec3(0, 0, 1), [4]math.Vec3{{X: minX, Y: minY, Z: maxZ}, {X: maxX, Y: maxY, Z: maxZ}, {X: minX, Y: maxY, Z: maxZ}, {X: maxX, Y: minY, Z: maxZ}}},
		{math.NewVec3(0, 0, -1), [4]math.Vec3{{X: maxX, Y: minY, Z: minZ}, {X: minX, Y: maxY, Z: minZ}, {X: maxX, Y: maxY, Z: minZ}, {X: minX, Y: minY, Z: minZ}}},
		{math.NewVec3(-1, 0, 0), [4]math.Vec3{{X: minX, Y: minY, Z: minZ}, {X: minX, Y: maxY, Z: maxZ}, {X: minX, Y: maxY, Z: minZ}, {X: minX, Y: minY, Z: maxZ}}},
		{math.NewVec3(1, 0, 0), [4]math.Vec3{{X: maxX, Y: minY, Z: maxZ}, {X: maxX, Y: maxY, Z: minZ}, {X: maxX, Y: maxY, Z: maxZ}, {X: maxX, Y: minY, Z: minZ}}},
		{math.NewVec3(0, -1, 0), [4]math.Vec3{{X: maxX, Y: minY, Z: maxZ}, {X: minX, Y: minY, Z: minZ}, {X: maxX, Y: minY, Z: minZ}, {X: minX, Y: minY, Z: maxZ}}},
		{math.NewVec3(0, 1, 0), [4]math.Vec3{{X: minX, Y: maxY, Z: maxZ}, {X: maxX, Y: maxY, Z: minZ}, {X: minX, Y: maxY, Z: minZ}, {X: maxX, Y: maxY, Z: maxZ}}},
	}
	uvs := [4]math.Vec2{{X: 0, Y: 0}, {X: tileX, Y: tileY}, {X: 0, Y: tileY}, {X: tileX, Y: 0}}

	config := &GeometryConfig{
		Name:       name,
		Vertices:   make([]Vertex3D, 0, len(faces)*4),
		Indices:    make([]uint32, len(faces)*6),
		MinExtents: math.NewVec3(minX, minY, minZ),
		MaxExtents: math.NewVec3(maxX, maxY, maxZ),
	}
	for i, face := range faces {
		for c, corner := range face.corners {
			config.Vertices = append(config.Vertices, Vertex3D{Position: corner, Normal: face.normal, Texcoord: uvs[c]})
		}
		quadIndices(config.Indices[i*6:], uint32(i*4))
	}
	return config
}

func quadIndices(dst []uint32, offset uint32) {
	dst[0] = offset + 0
	dst[1] = offset + 1
	dst[2] = offset + 2
	dst[3] = offset + 0
	dst[4] = offset + 3
	dst[5] = offset + 1
}
