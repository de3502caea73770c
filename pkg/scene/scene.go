// Package scene owns the render-time world: camera, triangles in BVH
// leaf order, the acceleration structure, lights and materials. A scene
// is built once and read-only afterwards, so any number of workers may
// share it.
package scene

import (
	"github.com/xaanimus/xsray/pkg/bvh"
	"github.com/xaanimus/xsray/pkg/core"
	"github.com/xaanimus/xsray/pkg/geometry"
	"github.com/xaanimus/xsray/pkg/material"
)

// IntersectionRecord describes the closest hit along a ray, or no hit
// when T is infinite.
type IntersectionRecord struct {
	T        float32
	Position core.Vec3
	Normal   core.UnitVec3
	Material material.Material
}

// NoIntersection returns the miss record.
func NoIntersection() IntersectionRecord {
	return IntersectionRecord{T: core.Inf()}
}

// Intersected reports whether the record holds a finite hit.
func (r IntersectionRecord) Intersected() bool {
	return core.IsFinite(r.T)
}

// Scene is the fully built world.
type Scene struct {
	Camera     *Camera
	Lights     []PointLight
	Materials  map[string]material.Material
	Background core.Color3

	triangles   []*geometry.Triangle
	tree        *bvh.BVH
	intersector *geometry.Intersector8
}

// New builds a scene: the triangles are sorted into BVH leaf order, the
// flat tree is built with the given splitter, and the prepared triangles
// are packed for the lane intersector.
func New(camera *Camera, triangles []*geometry.Triangle, lights []PointLight,
	materials map[string]material.Material, background core.Color3, splitter bvh.Splitter) *Scene {

	prims := make([]bvh.Primitive, len(triangles))
	for i, t := range triangles {
		prims[i] = t
	}
	tree, order := bvh.Build(prims, splitter)

	sorted := make([]*geometry.Triangle, len(triangles))
	prepared := make([]geometry.PreparedTriangle, len(triangles))
	for i, input := range order {
		sorted[i] = triangles[input]
		prepared[i] = geometry.Prepare(sorted[i])
	}

	return &Scene{
		Camera:      camera,
		Lights:      lights,
		Materials:   materials,
		Background:  background,
		triangles:   sorted,
		tree:        tree,
		intersector: geometry.NewIntersector8(prepared),
	}
}

// Triangles returns the triangle array in BVH leaf order.
func (s *Scene) Triangles() []*geometry.Triangle {
	return s.triangles
}

// BVH returns the acceleration structure.
func (s *Scene) BVH() *bvh.BVH {
	return s.tree
}

// Intersect returns the closest intersection along the ray, probing the
// candidate ranges produced by BVH traversal in ascending order while
// keeping the global minimum t.
func (s *Scene) Intersect(ray core.Ray) IntersectionRecord {
	packed := core.NewPackedRay(ray)
	var rangeBuf [64]bvh.Range
	ranges := s.tree.Traverse(&packed, rangeBuf[:0])

	best := geometry.NoHit()
	for _, r := range ranges {
		s.intersector.IntersectRange(ray, r, &best)
	}
	if !best.Intersected() {
		return NoIntersection()
	}

	triangle := s.triangles[best.Index]
	alpha := 1 - best.Beta - best.Gamma
	return IntersectionRecord{
		T:        best.T,
		Position: ray.At(best.T),
		Normal:   triangle.InterpolateNormal(alpha, best.Beta, best.Gamma),
		Material: triangle.Material,
	}
}

// IntersectObstruction reports whether any triangle blocks the open
// segment from origin to target. The ray starts at the self-intersection
// epsilon and ends at the target, and the query stops at the first hit
// rather than the closest.
func (s *Scene) IntersectObstruction(origin, target core.Vec3) bool {
	ray := core.NewShadowRayTo(origin, target)
	packed := core.NewPackedRay(ray)
	var rangeBuf [64]bvh.Range
	ranges := s.tree.Traverse(&packed, rangeBuf[:0])

	best := geometry.NoHit()
	for _, r := range ranges {
		s.intersector.IntersectRange(ray, r, &best)
		if best.Intersected() {
			return true
		}
	}
	return false
}
