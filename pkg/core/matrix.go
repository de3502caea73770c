package core

// Matrix3 is a 3x3 matrix stored as three column vectors.
type Matrix3 struct {
	X, Y, Z Vec3
}

// MulVec returns the matrix-vector product.
func (m Matrix3) MulVec(v Vec3) Vec3 {
	return m.X.Multiply(v.X).Add(m.Y.Multiply(v.Y)).Add(m.Z.Multiply(v.Z))
}

// Transpose returns the transposed matrix.
func (m Matrix3) Transpose() Matrix3 {
	return Matrix3{
		X: Vec3{m.X.X, m.Y.X, m.Z.X},
		Y: Vec3{m.X.Y, m.Y.Y, m.Z.Y},
		Z: Vec3{m.X.Z, m.Y.Z, m.Z.Z},
	}
}

// NormalFrame returns the rotation that maps +Y onto the given normal.
// The helper axis is +Y unless the normal is nearly parallel to it
// (|n·Y| > NormalFrameCosThreshold), in which case +X is used instead.
func NormalFrame(normal UnitVec3) Matrix3 {
	n := normal.Vec()
	helper := NewVec3(0, 1, 0)
	if Abs(helper.Dot(n)) > NormalFrameCosThreshold {
		helper = NewVec3(1, 0, 0)
	}
	axis0 := helper.Cross(n).Unit().Vec()
	axis1 := axis0.Cross(n)
	return Matrix3{X: axis0, Y: n, Z: axis1}
}

// TransformIntoFrame rotates a direction sampled around +Y into the frame
// of the given normal.
func TransformIntoFrame(normal UnitVec3, sample Vec3) UnitVec3 {
	return NormalFrame(normal).MulVec(sample).Unit()
}

// TransformFromFrame rotates a world-space direction into the local frame
// whose +Y is the given normal. The frame is orthonormal, so the inverse
// rotation is the transpose.
func TransformFromFrame(normal UnitVec3, direction Vec3) UnitVec3 {
	return NormalFrame(normal).Transpose().MulVec(direction).Unit()
}
