package components

import (
	"testing"

	"github.com/spaghettifunk/ray/engine/math"
	"github.com/stretchr/testify/assert"
)

func TestCameraViewFollowsPosition(t *testing.T) {
	c := NewCamera()
	assert.Equal(t, math.NewMat4Identity(), c.View())

	c.SetPosition(math.NewVec3(0, 0, 5))
	view := c.View()
	// the inverse translation moves the eye back to the origin
	assert.InDelta(t, -5, view.Data[14], 1e-5)
}

func TestCameraPitchClamped(t *testing.T) {
	c := NewCamera()
	c.Pitch(10)
	assert.InDelta(t, 1.55334306, c.EulerRotation().X, 1e-6)
	c.Pitch(-20)
	assert.InDelta(t, -1.55334306, c.EulerRotation().X, 1e-6)
}

func TestCameraProjection(t *testing.T) {
	c := NewCamera()
	c.SetPerspective(math.DegToRad(60), 2, 0.1, 100)
	p := c.Projection()
	assert.Equal(t, math.NewMat4Perspective(math.DegToRad(60), 2, 0.1, 100), p)

	c.SetAperture(1)
	assert.Equal(t, float32(1), c.Aperture())
	assert.NotEqual(t, p, c.Projection())

	c.SetOrthographic(0, 320, 0, 240, -1, 1)
	assert.Equal(t, ProjectionOrthographic, c.ProjectionType())
	assert.Equal(t, math.NewMat4Orthographic(0, 320, 0, 240, -1, 1), c.Projection())
}
