package geometry

import (
	"testing"

	"github.com/xaanimus/xsray/pkg/core"
)

func TestTriangle_BoundingBoxAndArea(t *testing.T) {
	n := core.NewVec3(0, 0, 1)
	tri := NewTriangle(
		core.NewVec3(0, 0, 0), core.NewVec3(2, 0, 0), core.NewVec3(0, 2, 0),
		n, n, n,
		nil,
	)

	box := tri.BoundingBox()
	if box.Lower != core.NewVec3(0, 0, 0) || box.Upper != core.NewVec3(2, 2, 0) {
		t.Errorf("bounding box = %v, want {0,0,0}..{2,2,0}", box)
	}
	if got := tri.SurfaceArea(); !core.ApproxEqual(got, 2, 1e-6) {
		t.Errorf("area = %v, want 2", got)
	}
}

func TestTriangle_InterpolateNormal(t *testing.T) {
	// Distinct, non-unit vertex normals: the blend must renormalize.
	tri := NewTriangle(
		core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0), core.NewVec3(0, 1, 0),
		core.NewVec3(0, 0, 2), core.NewVec3(2, 0, 0), core.NewVec3(0, 2, 0),
		nil,
	)

	tests := []struct {
		name                string
		alpha, beta, gamma  float32
		expected            core.Vec3
	}{
		{name: "vertex 0", alpha: 1, beta: 0, gamma: 0, expected: core.NewVec3(0, 0, 1)},
		{name: "vertex 1", alpha: 0, beta: 1, gamma: 0, expected: core.NewVec3(1, 0, 0)},
		{name: "vertex 2", alpha: 0, beta: 0, gamma: 1, expected: core.NewVec3(0, 1, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tri.InterpolateNormal(tt.alpha, tt.beta, tt.gamma)
			if !got.Vec().ApproxEqual(tt.expected, 1e-6) {
				t.Errorf("normal = %v, want %v", got, tt.expected)
			}
			if l := got.Vec().Length(); !core.ApproxEqual(l, 1, 1e-6) {
				t.Errorf("normal length = %v, want 1", l)
			}
		})
	}
}

func TestPrepare_EdgeForm(t *testing.T) {
	n := core.NewVec3(0, 1, 0)
	tri := NewTriangle(
		core.NewVec3(1, 2, 3), core.NewVec3(4, 2, 3), core.NewVec3(1, 6, 3),
		n, n, n,
		nil,
	)
	prepared := Prepare(tri)

	if prepared.P0 != tri.P0 {
		t.Errorf("P0 = %v, want %v", prepared.P0, tri.P0)
	}
	if prepared.E1 != core.NewVec3(3, 0, 0) {
		t.Errorf("E1 = %v, want {3, 0, 0}", prepared.E1)
	}
	if prepared.E2 != core.NewVec3(0, 4, 0) {
		t.Errorf("E2 = %v, want {0, 4, 0}", prepared.E2)
	}
}

func TestBuildTriangles_Validation(t *testing.T) {
	positions := []core.Vec3{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 0, Y: 1, Z: 0}}
	normals := []core.Vec3{{X: 0, Y: 0, Z: 1}}

	tests := []struct {
		name    string
		face    MeshFace
		wantErr bool
	}{
		{
			name: "valid face",
			face: MeshFace{Positions: [3]int{0, 1, 2}, Normals: [3]int{0, 0, 0}},
		},
		{
			name:    "position out of bounds",
			face:    MeshFace{Positions: [3]int{0, 1, 3}, Normals: [3]int{0, 0, 0}},
			wantErr: true,
		},
		{
			name:    "negative normal index",
			face:    MeshFace{Positions: [3]int{0, 1, 2}, Normals: [3]int{0, -1, 0}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mesh := &MeshData{Positions: positions, Normals: normals, Faces: []MeshFace{tt.face}}
			_, err := BuildTriangles(mesh, nil)
			if (err != nil) != tt.wantErr {
				t.Errorf("BuildTriangles error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
