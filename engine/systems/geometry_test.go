package systems

import (
	"encoding/binary"
	gomath "math"
	"testing"

	"github.com/spaghettifunk/ray/engine/core"
	"github.com/spaghettifunk/ray/engine/math"
	"github.com/spaghettifunk/ray/engine/renderer/metadata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateCubeConfig(t *testing.T) {
	cfg := GenerateCubeConfig(2, 4, 6, 1, 1, "box")
	require.Len(t, cfg.Vertices, 24)
	require.Len(t, cfg.Indices, 36)
	assert.Equal(t, math.NewVec3(-1, -2, -3), cfg.MinExtents)
	assert.Equal(t, math.NewVec3(1, 2, 3), cfg.MaxExtents)

	for i, v := range cfg.Vertices {
		assert.InDelta(t, 1, v.Normal.Length(), 1e-6, "vertex %d", i)
		// every vertex lies on the face its normal points out of
		switch {
		case v.Normal.X != 0:
			assert.Equal(t, v.Normal.X, v.Position.X)
		case v.Normal.Y != 0:
			assert.Equal(t, v.Normal.Y*2, v.Position.Y)
		default:
			assert.Equal(t, v.Normal.Z*3, v.Position.Z)
		}
	}
	for _, i := range cfg.Indices {
		assert.Less(t, i, uint32(24))
	}
	assert.Equal(t, []uint32{4, 5, 6, 4, 7, 5}, cfg.Indices[6:12])
}

func TestGeneratePlaneConfig(t *testing.T) {
	cfg := GeneratePlaneConfig(4, 2, 2, 3, 2, 1, "floor")
	require.Len(t, cfg.Vertices, 2*3*4)
	require.Len(t, cfg.Indices, 2*3*6)

	first := cfg.Vertices[0]
	assert.Equal(t, math.NewVec3(-2, -1, 0), first.Position)
	assert.Equal(t, math.NewVec3(0, 0, 1), first.Normal)
	last := cfg.Vertices[len(cfg.Vertices)-3]
	assert.InDelta(t, 2, last.Position.X, 1e-6)
	assert.InDelta(t, 1, last.Position.Y, 1e-6)
	assert.InDelta(t, 2, last.Texcoord.X, 1e-6)
	assert.InDelta(t, 1, last.Texcoord.Y, 1e-6)

	zero := GeneratePlaneConfig(0, 0, 0, 0, 0, 0, "degenerate")
	assert.Len(t, zero.Vertices, 4)
	assert.Equal(t, math.NewVec3(0.5, 0.5, 0), zero.MaxExtents)
}

func TestGeometryLayoutMatchesVertex(t *testing.T) {
	layout := GeometryLayout()
	assert.Equal(t, vertex3DSize, layout.VertexSize(0))
	require.Len(t, layout.Components, 3)
	assert.Equal(t, 12, layout.Components[1].Offset)
	assert.Equal(t, 24, layout.Components[2].Offset)
}

func TestGeometryAcquireUploads(t *testing.T) {
	r := newRecorder()
	device := newDevice(t, r)
	gs, err := NewGeometrySystem(&GeometrySystemConfig{MaxGeometryCount: 1}, device)
	require.NoError(t, err)

	g, err := gs.Acquire(GenerateCubeConfig(1, 1, 1, 1, 1, "cube"))
	require.NoError(t, err)
	assert.Equal(t, uint32(24), g.VertexCount)
	assert.Equal(t, uint32(36), g.IndexCount)

	vertices := r.Buffers[g.VertexBuffer.InstanceID()]
	require.Len(t, vertices, 24*vertex3DSize)
	// front face, first vertex: position (-0.5, -0.5, 0.5), normal +Z
	assert.Equal(t, float32(-0.5), gomath.Float32frombits(binary.LittleEndian.Uint32(vertices[0:])))
	assert.Equal(t, float32(0.5), gomath.Float32frombits(binary.LittleEndian.Uint32(vertices[8:])))
	assert.Equal(t, float32(1), gomath.Float32frombits(binary.LittleEndian.Uint32(vertices[20:])))
	indices := r.Buffers[g.IndexBuffer.InstanceID()]
	require.Len(t, indices, 36*4)
	assert.Equal(t, uint32(3), binary.LittleEndian.Uint32(indices[16:]))

	same, err := gs.Acquire(&GeometryConfig{Name: "cube"})
	require.NoError(t, err)
	assert.Same(t, g, same)

	_, err = gs.Acquire(GeneratePlaneConfig(1, 1, 1, 1, 1, 1, "plane"))
	assert.ErrorIs(t, err, core.ErrPoolExhausted)

	object := g.RenderObject(nil, metadata.RenderQueueOpaque)
	assert.Equal(t, uint32(36), object.Indirect.NumIndices)
	assert.Equal(t, metadata.IndexTypeUint32, object.IndexType)
	assert.Same(t, g.VertexBuffer, object.VertexBuffer)

	gs.Release("cube")
	assert.Equal(t, 1, gs.Count())
	gs.Release("cube")
	assert.Equal(t, 0, gs.Count())
	assert.Equal(t, 2, r.Count("DeleteBuffer"))
}

func TestGeometryAcquireEmpty(t *testing.T) {
	gs, err := NewGeometrySystem(&GeometrySystemConfig{MaxGeometryCount: 4}, newDevice(t, newRecorder()))
	require.NoError(t, err)
	_, err = gs.Acquire(&GeometryConfig{Name: "empty"})
	assert.ErrorIs(t, err, core.ErrInvalidDesc)
	assert.Equal(t, 0, gs.Count())
}
