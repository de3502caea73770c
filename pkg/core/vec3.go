package core

import "fmt"

// Vec3 represents a 3D vector of float32 components.
type Vec3 struct {
	X, Y, Z float32
}

// Color3 is an RGB triple in linear space.
type Color3 = Vec3

// NewVec3 creates a new Vec3.
func NewVec3(x, y, z float32) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

func (v Vec3) String() string {
	return fmt.Sprintf("{%.4g, %.4g, %.4g}", v.X, v.Y, v.Z)
}

// Add returns the sum of two vectors.
func (v Vec3) Add(other Vec3) Vec3 {
	return Vec3{v.X + other.X, v.Y + other.Y, v.Z + other.Z}
}

// Subtract returns the difference of two vectors.
func (v Vec3) Subtract(other Vec3) Vec3 {
	return Vec3{v.X - other.X, v.Y - other.Y, v.Z - other.Z}
}

// SubtractAccurate returns v - other computed in float64 and downcast.
// Edge vectors of large-magnitude triangles lose too many bits in a
// float32 subtraction; the prepared triangle form uses this instead.
func (v Vec3) SubtractAccurate(other Vec3) Vec3 {
	return Vec3{
		X: float32(float64(v.X) - float64(other.X)),
		Y: float32(float64(v.Y) - float64(other.Y)),
		Z: float32(float64(v.Z) - float64(other.Z)),
	}
}

// Multiply returns the vector scaled by a scalar.
func (v Vec3) Multiply(scalar float32) Vec3 {
	return Vec3{v.X * scalar, v.Y * scalar, v.Z * scalar}
}

// MultiplyVec returns the component-wise product of two vectors.
func (v Vec3) MultiplyVec(other Vec3) Vec3 {
	return Vec3{v.X * other.X, v.Y * other.Y, v.Z * other.Z}
}

// Divide returns the vector divided by a scalar.
func (v Vec3) Divide(scalar float32) Vec3 {
	return Vec3{v.X / scalar, v.Y / scalar, v.Z / scalar}
}

// Negate returns the negative of the vector.
func (v Vec3) Negate() Vec3 {
	return Vec3{-v.X, -v.Y, -v.Z}
}

// Dot returns the dot product of two vectors.
func (v Vec3) Dot(other Vec3) float32 {
	return v.X*other.X + v.Y*other.Y + v.Z*other.Z
}

// Cross returns the cross product of two vectors.
func (v Vec3) Cross(other Vec3) Vec3 {
	return Vec3{
		X: v.Y*other.Z - v.Z*other.Y,
		Y: v.Z*other.X - v.X*other.Z,
		Z: v.X*other.Y - v.Y*other.X,
	}
}

// Length returns the magnitude of the vector.
func (v Vec3) Length() float32 {
	return Sqrt(v.Dot(v))
}

// LengthSquared returns the squared magnitude of the vector.
func (v Vec3) LengthSquared() float32 {
	return v.Dot(v)
}

// Min returns the component-wise minimum of two vectors.
func (v Vec3) Min(other Vec3) Vec3 {
	return Vec3{min(v.X, other.X), min(v.Y, other.Y), min(v.Z, other.Z)}
}

// Max returns the component-wise maximum of two vectors.
func (v Vec3) Max(other Vec3) Vec3 {
	return Vec3{max(v.X, other.X), max(v.Y, other.Y), max(v.Z, other.Z)}
}

// Clamp returns a vector with components clamped to [minVal, maxVal].
func (v Vec3) Clamp(minVal, maxVal float32) Vec3 {
	return Vec3{
		X: max(minVal, min(maxVal, v.X)),
		Y: max(minVal, min(maxVal, v.Y)),
		Z: max(minVal, min(maxVal, v.Z)),
	}
}

// IsZero returns true if all components are zero.
func (v Vec3) IsZero() bool {
	return v.X == 0 && v.Y == 0 && v.Z == 0
}

// IsFinite reports whether all components are finite.
func (v Vec3) IsFinite() bool {
	return IsFinite(v.X) && IsFinite(v.Y) && IsFinite(v.Z)
}

// ApproxEqual compares two vectors component-wise within eps.
func (v Vec3) ApproxEqual(other Vec3, eps float32) bool {
	return ApproxEqual(v.X, other.X, eps) &&
		ApproxEqual(v.Y, other.Y, eps) &&
		ApproxEqual(v.Z, other.Z, eps)
}

// Unit returns the normalized form of the vector as a UnitVec3.
// A zero vector normalizes to the zero vector.
func (v Vec3) Unit() UnitVec3 {
	length := v.Length()
	if length == 0 {
		return UnitVec3{}
	}
	return UnitVec3{v: v.Divide(length)}
}

// UnitVec3 is a Vec3 produced by Vec3.Unit (directly or through Negate and
// Cross), so it has magnitude 1. The exceptions are the zero value and the
// result of normalizing a zero vector, which both have length 0.
type UnitVec3 struct {
	v Vec3
}

// Vec returns the underlying vector value.
func (u UnitVec3) Vec() Vec3 {
	return u.v
}

// Negate returns the opposite direction, which is still unit length.
func (u UnitVec3) Negate() UnitVec3 {
	return UnitVec3{v: u.v.Negate()}
}

// Dot returns the dot product with a plain vector.
func (u UnitVec3) Dot(other Vec3) float32 {
	return u.v.Dot(other)
}

// DotUnit returns the dot product with another unit vector.
func (u UnitVec3) DotUnit(other UnitVec3) float32 {
	return u.v.Dot(other.v)
}

// Cross returns the renormalized cross product with another unit vector.
func (u UnitVec3) Cross(other UnitVec3) UnitVec3 {
	return u.v.Cross(other.v).Unit()
}

func (u UnitVec3) String() string {
	return u.v.String()
}
