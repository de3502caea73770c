// Package material implements the surface reflectance models. Materials
// are immutable values shared by many triangles; all directions point away
// from the surface.
package material

import (
	"github.com/xaanimus/xsray/pkg/core"
	"github.com/xaanimus/xsray/pkg/sampler"
)

// SampleResult is a sampled incoming light direction and its density.
type SampleResult struct {
	Incoming core.UnitVec3
	PDF      float32
}

// Material models a surface BRDF.
type Material interface {
	// Sample draws an incoming direction in the hemisphere around the
	// normal, given the outgoing (toward-viewer) direction, and returns
	// it with its density. The density agrees with PDF.
	Sample(normal, outgoing core.UnitVec3, s sampler.Sampler) SampleResult

	// PDF returns the density with which Sample would have produced the
	// given incoming direction. Always >= 0.
	PDF(normal, incoming, outgoing core.UnitVec3) float32

	// BRDFCos returns the BRDF multiplied by |n·incoming|, componentwise
	// >= 0. Configurations on the wrong side of the surface yield the
	// zero color rather than negative or NaN values.
	BRDFCos(normal, incoming, outgoing core.UnitVec3) core.Color3
}

// reflect mirrors the outgoing direction about the given axis (typically
// a half-vector): -wo + 2(wo·m)m, renormalized.
func reflect(outgoing, axis core.UnitVec3) core.UnitVec3 {
	wo := outgoing.Vec()
	m := axis.Vec()
	return wo.Negate().Add(m.Multiply(2 * wo.Dot(m))).Unit()
}

// halfVector returns the normalized midpoint direction of two unit
// vectors.
func halfVector(a, b core.UnitVec3) core.UnitVec3 {
	return a.Vec().Add(b.Vec()).Unit()
}
