package components

import (
	"github.com/spaghettifunk/ray/engine/math"
)

type ProjectionType uint8

const (
	ProjectionPerspective ProjectionType = iota
	ProjectionOrthographic
)

/**
 * @brief A view into the scene: position and Euler rotation for the view
 * matrix, plus the projection the render pipeline uploads with it.
 */
type Camera struct {
	/**
	 * @brief The position of this camera.
	 * NOTE: use SetPosition so the view matrix is rebuilt.
	 */
	position math.Vec3
	/** @brief Euler angles (pitch, yaw, roll) in radians. */
	eulerRotation math.Vec3
	viewDirty     bool
	view          math.Mat4

	projectionType ProjectionType
	fov            float32
	aperture       float32
	ortho          math.Vec4
	near           float32
	far            float32
	projDirty      bool
	projection     math.Mat4
}

func NewCamera() *Camera {
	camera := &Camera{}
	camera.Reset()
	return camera
}

func (c *Camera) Reset() {
	c.eulerRotation = math.NewVec3Zero()
	c.position = math.NewVec3Zero()
	c.view = math.NewMat4Identity()
	c.viewDirty = false

	c.projectionType = ProjectionPerspective
	c.fov = math.DegToRad(45)
	c.aperture = 16.0 / 9.0
	c.ortho = math.NewVec4(-1, 1, -1, 1)
	c.near = 0.1
	c.far = 1000
	c.projDirty = true
}

func (c *Camera) Position() math.Vec3 {
	return c.position
}

func (c *Camera) SetPosition(position math.Vec3) {
	c.position = position
	c.viewDirty = true
}

func (c *Camera) EulerRotation() math.Vec3 {
	return c.eulerRotation
}

func (c *Camera) SetEulerRotation(rotation math.Vec3) {
	c.eulerRotation = rotation
	c.viewDirty = true
}

func (c *Camera) View() math.Mat4 {
	if c.viewDirty {
		rotation := math.NewMat4EulerXYZ(c.eulerRotation.X, c.eulerRotation.Y, c.eulerRotation.Z)
		translation := math.NewMat4Translation(c.position)

		c.view = rotation.Mul(translation).Inverse()
		c.viewDirty = false
	}
	return c.view
}

// SetPerspective switches to a perspective projection. fov is in radians,
// aperture is the width/height ratio.
func (c *Camera) SetPerspective(fov, aperture, near, far float32) {
	c.projectionType = ProjectionPerspective
	c.fov = fov
	c.aperture = aperture
	c.near = near
	c.far = far
	c.projDirty = true
}

func (c *Camera) SetOrthographic(left, right, bottom, top, near, far float32) {
	c.projectionType = ProjectionOrthographic
	c.ortho = math.NewVec4(left, right, bottom, top)
	c.near = near
	c.far = far
	c.projDirty = true
}

func (c *Camera) ProjectionType() ProjectionType {
	return c.projectionType
}

// SetAperture updates the aspect ratio, typically after a resize.
func (c *Camera) SetAperture(aperture float32) {
	if aperture > 0 && aperture != c.aperture {
		c.aperture = aperture
		c.projDirty = true
	}
}

func (c *Camera) Aperture() float32 {
	return c.aperture
}

func (c *Camera) Near() float32 {
	return c.near
}

func (c *Camera) Far() float32 {
	return c.far
}

func (c *Camera) Projection() math.Mat4 {
	if c.projDirty {
		if c.projectionType == ProjectionOrthographic {
			c.projection = math.NewMat4Orthographic(c.ortho.X, c.ortho.Y, c.ortho.Z, c.ortho.W, c.near, c.far)
		} else {
			c.projection = math.NewMat4Perspective(c.fov, c.aperture, c.near, c.far)
		}
		c.projDirty = false
	}
	return c.projection
}

func (c *Camera) ViewProjection() math.Mat4 {
	return c.View().Mul(c.Projection())
}

func (c *Camera) Forward() math.Vec3 {
	return c.View().Forward()
}

func (c *Camera) Right() math.Vec3 {
	return c.View().Right()
}

func (c *Camera) MoveForward(amount float32) {
	c.position = c.position.Add(c.Forward().MulScalar(amount))
	c.viewDirty = true
}

func (c *Camera) MoveRight(amount float32) {
	c.position = c.position.Add(c.Right().MulScalar(amount))
	c.viewDirty = true
}

func (c *Camera) MoveUp(amount float32) {
	c.position = c.position.Add(math.NewVec3Up().MulScalar(amount))
	c.viewDirty = true
}

func (c *Camera) Yaw(amount float32) {
	c.eulerRotation.Y += amount
	c.viewDirty = true
}

func (c *Camera) Pitch(amount float32) {
	c.eulerRotation.X += amount

	// Clamp to avoid Gimbal lock.
	limit := float32(1.55334306) // 89 degrees
	c.eulerRotation.X = math.Clamp(c.eulerRotation.X, -limit, limit)

	c.viewDirty = true
}
