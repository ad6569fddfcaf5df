package math

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClamp(t *testing.T) {
	assert.Equal(t, 3, Clamp(5, 0, 3))
	assert.Equal(t, float32(0), Clamp(float32(-1), 0, 1))
	assert.Equal(t, uint32(2), Clamp(uint32(2), 1, 4))
}

func TestMat4InverseOfTranslation(t *testing.T) {
	tr := NewMat4Translation(NewVec3(1, 2, 3))
	id := tr.Mul(tr.Inverse())
	want := NewMat4Identity()
	for i := range want.Data {
		assert.InDelta(t, want.Data[i], id.Data[i], 1e-5)
	}
}

func TestLookAtMovesEyeToOrigin(t *testing.T) {
	eye := NewVec3(0, 0, 5)
	view := NewMat4LookAt(eye, NewVec3Zero(), NewVec3Up())
	// row-vector convention: p * view
	x := eye.X*view.Data[0] + eye.Y*view.Data[4] + eye.Z*view.Data[8] + view.Data[12]
	y := eye.X*view.Data[1] + eye.Y*view.Data[5] + eye.Z*view.Data[9] + view.Data[13]
	z := eye.X*view.Data[2] + eye.Y*view.Data[6] + eye.Z*view.Data[10] + view.Data[14]
	assert.InDelta(t, 0, x, 1e-5)
	assert.InDelta(t, 0, y, 1e-5)
	assert.InDelta(t, 0, z, 1e-5)
}
