package core

import "math"

// Epsilons used across the engine. BigEpsilon is the self-intersection
// offset for bounce and shadow rays and the degenerate-determinant cutoff
// in the triangle intersector.
const (
	Epsilon    float32 = 1.1920929e-07
	BigEpsilon float32 = 3e-5
)

// NormalFrameCosThreshold is the |n·Y| limit above which the normal-frame
// construction switches its helper axis from +Y to +X to avoid a
// degenerate cross product.
const NormalFrameCosThreshold float32 = 0.95

// Sqrt returns the square root of x.
func Sqrt(x float32) float32 {
	return float32(math.Sqrt(float64(x)))
}

// Abs returns the absolute value of x.
func Abs(x float32) float32 {
	return float32(math.Abs(float64(x)))
}

// Pow returns x**y.
func Pow(x, y float32) float32 {
	return float32(math.Pow(float64(x), float64(y)))
}

// Sin returns the sine of x (radians).
func Sin(x float32) float32 {
	return float32(math.Sin(float64(x)))
}

// Cos returns the cosine of x (radians).
func Cos(x float32) float32 {
	return float32(math.Cos(float64(x)))
}

// Tan returns the tangent of x (radians).
func Tan(x float32) float32 {
	return float32(math.Tan(float64(x)))
}

// Atan returns the arctangent of x.
func Atan(x float32) float32 {
	return float32(math.Atan(float64(x)))
}

// Acos returns the arccosine of x.
func Acos(x float32) float32 {
	return float32(math.Acos(float64(x)))
}

// Inf returns positive infinity.
func Inf() float32 {
	return float32(math.Inf(1))
}

// IsFinite reports whether x is neither NaN nor infinite.
func IsFinite(x float32) bool {
	f := float64(x)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// ApproxEqual reports whether a and b differ by less than eps.
func ApproxEqual(a, b, eps float32) bool {
	return Abs(a-b) < eps
}
