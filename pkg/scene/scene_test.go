package scene

import (
	"math/rand"
	"testing"

	"github.com/xaanimus/xsray/pkg/bvh"
	"github.com/xaanimus/xsray/pkg/core"
	"github.com/xaanimus/xsray/pkg/geometry"
	"github.com/xaanimus/xsray/pkg/material"
)

// quad builds two triangles spanning the square [x0,x1]x[z0,z1] at the
// given height with +y normals.
func quad(x0, z0, x1, z1, y float32, mat material.Material) []*geometry.Triangle {
	up := core.NewVec3(0, 1, 0)
	a := core.NewVec3(x0, y, z0)
	b := core.NewVec3(x1, y, z0)
	c := core.NewVec3(x1, y, z1)
	d := core.NewVec3(x0, y, z1)
	return []*geometry.Triangle{
		geometry.NewTriangle(a, b, c, up, up, up, mat),
		geometry.NewTriangle(a, c, d, up, up, up, mat),
	}
}

func testScene(triangles []*geometry.Triangle) *Scene {
	camera := NewCamera(core.NewVec3(0, 5, 0), core.NewVec3(0, -1, 0), core.NewVec3(0, 0, 1), 1, 1, 1)
	return New(camera, triangles, nil, nil, core.Color3{}, bvh.NewSAHSplitter())
}

func TestScene_IntersectClosest(t *testing.T) {
	mat := material.NewDiffuse(core.NewVec3(1, 1, 1))
	// Two stacked floors; the ray from above must hit the higher one.
	var triangles []*geometry.Triangle
	triangles = append(triangles, quad(-5, -5, 5, 5, 0, mat)...)
	triangles = append(triangles, quad(-5, -5, 5, 5, 2, mat)...)
	scn := testScene(triangles)

	ray := core.NewRay(core.NewVec3(0.5, 10, 0.5), core.NewVec3(0, -1, 0).Unit())
	record := scn.Intersect(ray)

	if !record.Intersected() {
		t.Fatal("expected a hit")
	}
	if !core.ApproxEqual(record.T, 8, 1e-4) {
		t.Errorf("t = %v, want 8 (upper floor)", record.T)
	}
	if !record.Position.ApproxEqual(core.NewVec3(0.5, 2, 0.5), 1e-3) {
		t.Errorf("position = %v, want {0.5, 2, 0.5}", record.Position)
	}
	if !record.Normal.Vec().ApproxEqual(core.NewVec3(0, 1, 0), 1e-5) {
		t.Errorf("normal = %v, want +y", record.Normal)
	}
	if record.Material != mat {
		t.Error("record does not reference the triangle's material")
	}
}

func TestScene_IntersectMiss(t *testing.T) {
	mat := material.NewDiffuse(core.NewVec3(1, 1, 1))
	scn := testScene(quad(-1, -1, 1, 1, 0, mat))

	ray := core.NewRay(core.NewVec3(10, 5, 10), core.NewVec3(0, -1, 0).Unit())
	record := scn.Intersect(ray)
	if record.Intersected() {
		t.Errorf("expected a miss, got t = %v", record.T)
	}
}

func TestScene_EmptySceneNeverHits(t *testing.T) {
	scn := testScene(nil)

	ray := core.NewRay(core.NewVec3(0, 5, 0), core.NewVec3(0, -1, 0).Unit())
	if scn.Intersect(ray).Intersected() {
		t.Error("empty scene produced a hit")
	}
	if scn.IntersectObstruction(core.NewVec3(0, 5, 0), core.NewVec3(0, -5, 0)) {
		t.Error("empty scene produced an obstruction")
	}
}

func TestScene_IntersectObstruction(t *testing.T) {
	mat := material.NewDiffuse(core.NewVec3(1, 1, 1))
	scn := testScene(quad(-5, -5, 5, 5, 0, mat))

	tests := []struct {
		name     string
		from, to core.Vec3
		expected bool
	}{
		{
			name: "floor between the points",
			from: core.NewVec3(0, -1, 0), to: core.NewVec3(0, 1, 0),
			expected: true,
		},
		{
			name: "both points above the floor",
			from: core.NewVec3(0, 1, 0), to: core.NewVec3(3, 2, 3),
			expected: false,
		},
		{
			name: "segment stops short of the floor",
			from: core.NewVec3(0, 5, 0), to: core.NewVec3(0, 1, 0),
			expected: false,
		},
		{
			name: "origin on the floor looking up is not self-obstructed",
			from: core.NewVec3(0, 0, 0), to: core.NewVec3(0, 3, 0),
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := scn.IntersectObstruction(tt.from, tt.to); got != tt.expected {
				t.Errorf("IntersectObstruction = %v, want %v", got, tt.expected)
			}
		})
	}
}

// The obstruction query agrees with the closest-hit query on the same
// segment: obstructed iff the closest hit lies before the target.
func TestScene_ObstructionMatchesClosestHit(t *testing.T) {
	mat := material.NewDiffuse(core.NewVec3(1, 1, 1))
	var triangles []*geometry.Triangle
	triangles = append(triangles, quad(-4, -4, 4, 4, 0, mat)...)
	triangles = append(triangles, quad(-2, -2, 2, 2, 3, mat)...)
	scn := testScene(triangles)

	rng := rand.New(rand.NewSource(67))
	randPoint := func() core.Vec3 {
		return core.NewVec3(
			rng.Float32()*12-6,
			rng.Float32()*8-2,
			rng.Float32()*12-6,
		)
	}

	for trial := 0; trial < 500; trial++ {
		from := randPoint()
		to := randPoint()
		if from.Subtract(to).IsZero() {
			continue
		}

		obstructed := scn.IntersectObstruction(from, to)
		record := scn.Intersect(core.NewShadowRayTo(from, to))
		want := record.Intersected() && record.T < to.Subtract(from).Length()
		if obstructed != want {
			t.Fatalf("trial %d: obstruction = %v, closest-hit says %v (t=%v)",
				trial, obstructed, want, record.T)
		}
	}
}

func TestScene_TrianglesSortedIntoLeafOrder(t *testing.T) {
	mat := material.NewDiffuse(core.NewVec3(1, 1, 1))
	var triangles []*geometry.Triangle
	for i := 0; i < 40; i++ {
		x := float32(i%10) * 3
		z := float32(i/10) * 3
		triangles = append(triangles, quad(x, z, x+1, z+1, 0, mat)...)
	}
	scn := testScene(triangles)

	if got := len(scn.Triangles()); got != len(triangles) {
		t.Fatalf("scene holds %d triangles, want %d", got, len(triangles))
	}

	// Leaf ranges of the tree must line up with the triangle array.
	for _, node := range scn.BVH().Nodes {
		if node.Leaf && node.End > len(scn.Triangles()) {
			t.Fatalf("leaf range [%d,%d) exceeds triangle count", node.Start, node.End)
		}
	}
}
