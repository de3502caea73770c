package sampler

import (
	"math"

	"github.com/xaanimus/xsray/pkg/core"
)

// DirectionWarper maps a 2D uniform sample to a direction distributed
// around +Y, and reports the density of a direction it produced. PDF
// assumes its argument came from Warp.
type DirectionWarper interface {
	Warp(u, v float32) core.Vec3
	PDF(dir core.Vec3) float32
}

// UniformDiskWarper maps the unit square onto the unit disk with
// constant density 1/π.
type UniformDiskWarper struct{}

// Warp returns a point on the unit disk.
func (UniformDiskWarper) Warp(u, v float32) core.Vec2 {
	theta := 2 * math.Pi * float64(u)
	radius := core.Sqrt(v)
	return core.NewVec2(
		radius*float32(math.Cos(theta)),
		radius*float32(math.Sin(theta)),
	)
}

// PDF returns the constant disk density.
func (UniformDiskWarper) PDF() float32 {
	return 1 / math.Pi
}

// UniformHemisphereWarper distributes directions uniformly over the
// hemisphere around +Y, density 1/(2π).
type UniformHemisphereWarper struct{}

// Warp returns a direction on the upper hemisphere.
func (UniformHemisphereWarper) Warp(u, v float32) core.Vec3 {
	height := u
	theta := 2 * math.Pi * float64(v)
	r := core.Sqrt(1 - height*height)
	return core.NewVec3(
		r*float32(math.Cos(theta)),
		height,
		-r*float32(math.Sin(theta)),
	)
}

// PDF returns the constant hemisphere density.
func (UniformHemisphereWarper) PDF(core.Vec3) float32 {
	return 1 / (2 * math.Pi)
}

// UniformSphereWarper distributes directions uniformly over the full
// sphere, density 1/(4π).
type UniformSphereWarper struct{}

// Warp returns a direction on the unit sphere.
func (UniformSphereWarper) Warp(u, v float32) core.Vec3 {
	height := u*2 - 1
	theta := 2 * math.Pi * float64(v)
	r := core.Sqrt(1 - height*height)
	return core.NewVec3(
		r*float32(math.Cos(theta)),
		height,
		-r*float32(math.Sin(theta)),
	)
}

// PDF returns the constant sphere density.
func (UniformSphereWarper) PDF(core.Vec3) float32 {
	return 1 / (4 * math.Pi)
}

// CosineHemisphereWarper distributes directions over the hemisphere
// around +Y with density cosθ/π.
type CosineHemisphereWarper struct{}

// Warp returns a cosine-distributed direction on the upper hemisphere.
func (CosineHemisphereWarper) Warp(u, v float32) core.Vec3 {
	height := core.Sqrt(u)
	theta := 2 * math.Pi * float64(v)
	r := core.Sqrt(1 - height*height)
	return core.NewVec3(
		r*float32(math.Cos(theta)),
		height,
		-r*float32(math.Sin(theta)),
	)
}

// PDF returns cosθ/π for a direction on the hemisphere.
func (CosineHemisphereWarper) PDF(dir core.Vec3) float32 {
	return max(dir.Y, 0) / math.Pi
}

// GGXHalfVectorWarper samples microfacet half-vectors around +Y from the
// GGX normal distribution with roughness Alpha. Density is D(h)·cosθ.
type GGXHalfVectorWarper struct {
	Alpha float32
}

// Warp returns a half-vector: θ = atan(α·√(ξ/(1−ξ))), φ = 2π·η.
func (w GGXHalfVectorWarper) Warp(u, v float32) core.Vec3 {
	theta := core.Atan(w.Alpha * core.Sqrt(u/(1-u)))
	phi := 2 * math.Pi * float64(v)
	sinTheta := core.Sin(theta)
	return core.NewVec3(
		sinTheta*float32(math.Cos(phi)),
		core.Cos(theta),
		-sinTheta*float32(math.Sin(phi)),
	)
}

// PDF returns D(h)·cosθ, the density of the half-vector warp.
func (w GGXHalfVectorWarper) PDF(dir core.Vec3) float32 {
	cosTheta := dir.Y
	if cosTheta <= 0 {
		return 0
	}
	return GGXDistribution(cosTheta, w.Alpha) * cosTheta
}

// GGXDistribution evaluates the GGX normal distribution D for a
// half-vector whose angle from the normal has the given cosine.
func GGXDistribution(cosTheta, alpha float32) float32 {
	if cosTheta <= 0 {
		return 0
	}
	a2 := alpha * alpha
	d := (a2-1)*cosTheta*cosTheta + 1
	return a2 / (math.Pi * d * d)
}

// SampleDirection draws one direction from a warper using the sampler.
func SampleDirection(w DirectionWarper, s Sampler) core.Vec3 {
	u, v := s.Get2D()
	return w.Warp(u, v)
}
