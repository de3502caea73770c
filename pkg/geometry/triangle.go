// Package geometry holds the triangle primitives and the lane-packed
// ray/triangle intersection pipeline.
package geometry

import (
	"github.com/xaanimus/xsray/pkg/core"
	"github.com/xaanimus/xsray/pkg/material"
)

// Triangle is an authored triangle: three positions, three vertex normals
// (renormalized when interpolated) and a shared material reference.
type Triangle struct {
	P0, P1, P2 core.Vec3
	N0, N1, N2 core.Vec3
	Material   material.Material

	bbox core.AABox
	area float32
}

// NewTriangle creates a triangle and precomputes its bounding box and
// surface area.
func NewTriangle(p0, p1, p2, n0, n1, n2 core.Vec3, mat material.Material) *Triangle {
	e1 := p1.SubtractAccurate(p0)
	e2 := p2.SubtractAccurate(p0)
	return &Triangle{
		P0: p0, P1: p1, P2: p2,
		N0: n0, N1: n1, N2: n2,
		Material: mat,
		bbox:     core.NewAABoxFromPoints(p0, p1, p2),
		area:     e1.Cross(e2).Length() * 0.5,
	}
}

// BoundingBox returns the cached axis-aligned bounding box.
func (t *Triangle) BoundingBox() core.AABox {
	return t.bbox
}

// SurfaceArea returns the cached triangle area.
func (t *Triangle) SurfaceArea() float32 {
	return t.area
}

// InterpolateNormal returns the renormalized barycentric blend of the
// vertex normals: alpha·N0 + beta·N1 + gamma·N2.
func (t *Triangle) InterpolateNormal(alpha, beta, gamma float32) core.UnitVec3 {
	blended := t.N0.Multiply(alpha).
		Add(t.N1.Multiply(beta)).
		Add(t.N2.Multiply(gamma))
	return blended.Unit()
}

// PreparedTriangle is the traversal-time form: the anchor position and
// the two edge vectors, with edges subtracted in float64 to avoid
// catastrophic cancellation on large-magnitude meshes. Created once at
// scene build and immutable afterwards.
type PreparedTriangle struct {
	P0 core.Vec3
	E1 core.Vec3
	E2 core.Vec3
}

// Prepare converts a triangle into its edge form.
func Prepare(t *Triangle) PreparedTriangle {
	return PreparedTriangle{
		P0: t.P0,
		E1: t.P1.SubtractAccurate(t.P0),
		E2: t.P2.SubtractAccurate(t.P0),
	}
}
