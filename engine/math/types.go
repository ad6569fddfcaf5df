package math

// Vec2 represents a 2D vector
type Vec2 struct {
	X, Y float32
}

// Vec3 represents a 3D vector
type Vec3 struct {
	X, Y, Z float32
}

// Vec4 represents a 4D vector
type Vec4 struct {
	X, Y, Z, W float32
}

// IVec2 represents a 2D integer vector
type IVec2 struct {
	X, Y int32
}

// IVec3 represents a 3D integer vector
type IVec3 struct {
	X, Y, Z int32
}

// IVec4 represents a 4D integer vector
type IVec4 struct {
	X, Y, Z, W int32
}

/** @brief a 3x3 matrix, column major. */
type Mat3 struct {
	Data [9]float32
}

/** @brief a 4x4 matrix, typically used to represent object transformations. Column major. */
type Mat4 struct {
	/** @brief The matrix elements */
	Data [16]float32
}
