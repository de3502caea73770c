package geometry

import (
	"fmt"

	"github.com/xaanimus/xsray/pkg/core"
	"github.com/xaanimus/xsray/pkg/material"
)

// MeshFace references one triangle by vertex indices: a position triple
// and a normal triple.
type MeshFace struct {
	Positions [3]int
	Normals   [3]int
}

// MeshData is the decoded form of a mesh file: shared position and normal
// arrays plus index triples. Decoders (OBJ, glTF) produce this; the scene
// builder turns it into triangles.
type MeshData struct {
	Positions []core.Vec3
	Normals   []core.Vec3
	Faces     []MeshFace
}

// BuildTriangles expands mesh data into triangles carrying the given
// material. Faces referencing vertices outside the arrays are reported as
// errors rather than skipped, so malformed meshes fail scene construction.
func BuildTriangles(mesh *MeshData, mat material.Material) ([]*Triangle, error) {
	triangles := make([]*Triangle, 0, len(mesh.Faces))
	for i, face := range mesh.Faces {
		for _, p := range face.Positions {
			if p < 0 || p >= len(mesh.Positions) {
				return nil, fmt.Errorf("face %d references position %d of %d", i, p, len(mesh.Positions))
			}
		}
		for _, n := range face.Normals {
			if n < 0 || n >= len(mesh.Normals) {
				return nil, fmt.Errorf("face %d references normal %d of %d", i, n, len(mesh.Normals))
			}
		}
		triangles = append(triangles, NewTriangle(
			mesh.Positions[face.Positions[0]],
			mesh.Positions[face.Positions[1]],
			mesh.Positions[face.Positions[2]],
			mesh.Normals[face.Normals[0]],
			mesh.Normals[face.Normals[1]],
			mesh.Normals[face.Normals[2]],
			mat,
		))
	}
	return triangles, nil
}
