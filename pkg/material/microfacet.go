package material

import (
	"github.com/xaanimus/xsray/pkg/core"
	"github.com/xaanimus/xsray/pkg/sampler"
)

// Microfacet is a GGX microfacet reflective surface: Cook-Torrance with
// Schlick Fresnel, the GGX normal distribution and its shadowing-masking
// term, colorized by the albedo.
type Microfacet struct {
	Albedo            core.Color3
	IndexOfRefraction float32
	Roughness         float32

	warper sampler.GGXHalfVectorWarper
}

// NewMicrofacet creates a GGX microfacet reflective material.
func NewMicrofacet(albedo core.Color3, ior, roughness float32) *Microfacet {
	return &Microfacet{
		Albedo:            albedo,
		IndexOfRefraction: ior,
		Roughness:         roughness,
		warper:            sampler.GGXHalfVectorWarper{Alpha: roughness},
	}
}

// Sample draws a half-vector from the GGX distribution around the normal
// and reflects the outgoing direction about it.
func (m *Microfacet) Sample(normal, outgoing core.UnitVec3, s sampler.Sampler) SampleResult {
	local := sampler.SampleDirection(m.warper, s)
	half := core.TransformIntoFrame(normal, local)
	incoming := reflect(outgoing, half)
	return SampleResult{
		Incoming: incoming,
		PDF:      m.PDF(normal, incoming, outgoing),
	}
}

// PDF returns D(h)·|n·h|, the density of the half-vector warp for the
// half-vector implied by the direction pair.
func (m *Microfacet) PDF(normal, incoming, outgoing core.UnitVec3) float32 {
	half := halfVector(incoming, outgoing)
	cosTheta := core.Abs(normal.DotUnit(half))
	return sampler.GGXDistribution(cosTheta, m.Roughness) * cosTheta
}

// BRDFCos evaluates F·D·G / (4|n·wi||n·wo|) · (n·wi), colorized by the
// albedo and clamped to zero componentwise.
func (m *Microfacet) BRDFCos(normal, incoming, outgoing core.UnitVec3) core.Color3 {
	nDotWi := normal.DotUnit(incoming)
	nDotWo := normal.DotUnit(outgoing)
	if nDotWi <= 0 || nDotWo <= 0 {
		return core.Color3{}
	}

	half := halfVector(incoming, outgoing)
	fresnel := fresnelSchlick(incoming, half, fresnelAtNormal(m.IndexOfRefraction))
	distribution := sampler.GGXDistribution(normal.DotUnit(half), m.Roughness)
	geometry := ggxGeometry(outgoing, half, normal, m.Roughness)

	scale := fresnel * distribution * geometry * nDotWi /
		(4 * core.Abs(nDotWi) * core.Abs(nDotWo))
	if !core.IsFinite(scale) {
		return core.Color3{}
	}
	return m.Albedo.Multiply(scale).Max(core.Color3{})
}

// ggxGeometry is the GGX shadowing-masking term for the viewing
// direction: 2·χ⁺(v·h / v·n) / (1 + √(1 + α²·tan²θv)).
func ggxGeometry(outgoing, half, normal core.UnitVec3, alpha float32) float32 {
	a2 := alpha * alpha
	vDotN := outgoing.DotUnit(normal)
	vDotH := outgoing.DotUnit(half)
	thetaV := core.Acos(vDotN)

	numer := 2 * chiPlus(vDotH/vDotN)
	tan := core.Tan(thetaV)
	denom := 1 + core.Sqrt(1+a2*tan*tan)
	return numer / denom
}

// chiPlus is the positive characteristic function: 1 for x > 0, else 0.
func chiPlus(x float32) float32 {
	if x > 0 {
		return 1
	}
	return 0
}

// fresnelAtNormal converts an index of refraction to the reflectance at
// normal incidence: ((n-1)/(n+1))².
func fresnelAtNormal(ior float32) float32 {
	r := (ior - 1) / (ior + 1)
	return r * r
}

// fresnelSchlick is Schlick's approximation of the Fresnel term.
func fresnelSchlick(incoming, half core.UnitVec3, normalReflectance float32) float32 {
	f0 := normalReflectance
	c := 1 - incoming.DotUnit(half)
	return f0 + (1-f0)*c*c*c*c*c
}
