package multi

// Vec3 is a 3-vector whose components are lane-wide scalars: one Vec3
// value holds Width independent geometric vectors.
type Vec3[S Scalar[S, B], B Mask[B]] struct {
	X, Y, Z S
}

// NewVec3 creates a lane-wide vector from three lane-wide components.
func NewVec3[S Scalar[S, B], B Mask[B]](x, y, z S) Vec3[S, B] {
	return Vec3[S, B]{X: x, Y: y, Z: z}
}

// SplatVec3 replicates one float32 triple across all lanes.
func SplatVec3[S Scalar[S, B], B Mask[B]](num Num[S, B], x, y, z float32) Vec3[S, B] {
	return Vec3[S, B]{X: num.Splat(x), Y: num.Splat(y), Z: num.Splat(z)}
}

// Add returns the elementwise sum.
func (v Vec3[S, B]) Add(other Vec3[S, B]) Vec3[S, B] {
	return Vec3[S, B]{v.X.Add(other.X), v.Y.Add(other.Y), v.Z.Add(other.Z)}
}

// Sub returns the elementwise difference.
func (v Vec3[S, B]) Sub(other Vec3[S, B]) Vec3[S, B] {
	return Vec3[S, B]{v.X.Sub(other.X), v.Y.Sub(other.Y), v.Z.Sub(other.Z)}
}

// Scale multiplies every component by a lane-wide scalar.
func (v Vec3[S, B]) Scale(s S) Vec3[S, B] {
	return Vec3[S, B]{v.X.Mul(s), v.Y.Mul(s), v.Z.Mul(s)}
}

// Neg returns the negated vector.
func (v Vec3[S, B]) Neg() Vec3[S, B] {
	return Vec3[S, B]{v.X.Neg(), v.Y.Neg(), v.Z.Neg()}
}

// Dot returns the lane-wide dot product.
func (v Vec3[S, B]) Dot(other Vec3[S, B]) S {
	return v.X.Mul(other.X).Add(v.Y.Mul(other.Y)).Add(v.Z.Mul(other.Z))
}

// Cross returns the lane-wide cross product.
func (v Vec3[S, B]) Cross(other Vec3[S, B]) Vec3[S, B] {
	return Vec3[S, B]{
		X: v.Y.Mul(other.Z).Sub(v.Z.Mul(other.Y)),
		Y: v.Z.Mul(other.X).Sub(v.X.Mul(other.Z)),
		Z: v.X.Mul(other.Y).Sub(v.Y.Mul(other.X)),
	}
}

// Length returns the lane-wide magnitude.
func (v Vec3[S, B]) Length() S {
	return v.Dot(v).Sqrt()
}

// Normalize returns the vector scaled to unit length per lane.
func (v Vec3[S, B]) Normalize() Vec3[S, B] {
	length := v.Length()
	return Vec3[S, B]{v.X.Div(length), v.Y.Div(length), v.Z.Div(length)}
}

// Select keeps the receiver's lanes where the mask is set.
func (v Vec3[S, B]) Select(mask B, other Vec3[S, B]) Vec3[S, B] {
	return Vec3[S, B]{
		X: v.X.Select(mask, other.X),
		Y: v.Y.Select(mask, other.Y),
		Z: v.Z.Select(mask, other.Z),
	}
}

// Lane extracts one geometric vector as plain floats.
func (v Vec3[S, B]) Lane(i int) (x, y, z float32) {
	return v.X.Lane(i), v.Y.Lane(i), v.Z.Lane(i)
}
