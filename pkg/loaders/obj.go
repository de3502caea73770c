package loaders

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xaanimus/xsray/pkg/core"
	"github.com/xaanimus/xsray/pkg/geometry"
)

// LoadMesh decodes a mesh file by extension: .obj uses the wavefront
// decoder, .gltf and .glb the glTF decoder.
func LoadMesh(path string) (*geometry.MeshData, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".obj":
		return LoadOBJ(path)
	case ".gltf", ".glb":
		return LoadGLTF(path)
	default:
		return nil, fmt.Errorf("unsupported mesh format %q", filepath.Ext(path))
	}
}

// LoadOBJ decodes a wavefront OBJ file. Supported statements are v, vn
// and f with position//normal or position/texcoord/normal references;
// vt statements and the texcoord part of a face reference are ignored
// without being parsed. Faces with more or fewer
// than three vertices are rejected.
func LoadOBJ(path string) (*geometry.MeshData, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open obj file: %w", err)
	}
	defer file.Close()

	mesh := &geometry.MeshData{}
	scanner := bufio.NewScanner(file)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)

		switch fields[0] {
		case "v":
			vertex, err := parseVec3(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("line %d: vertex: %w", lineNo, err)
			}
			mesh.Positions = append(mesh.Positions, vertex)
		case "vn":
			normal, err := parseVec3(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("line %d: normal: %w", lineNo, err)
			}
			mesh.Normals = append(mesh.Normals, normal)
		case "f":
			if len(fields) != 4 {
				return nil, fmt.Errorf("line %d: polygons must be triangles, got %d vertices", lineNo, len(fields)-1)
			}
			face, err := parseFace(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("line %d: face: %w", lineNo, err)
			}
			mesh.Faces = append(mesh.Faces, face)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read obj file: %w", err)
	}
	return mesh, nil
}

func parseVec3(fields []string) (core.Vec3, error) {
	if len(fields) < 3 {
		return core.Vec3{}, fmt.Errorf("need 3 components, got %d", len(fields))
	}
	var out [3]float32
	for i := 0; i < 3; i++ {
		value, err := strconv.ParseFloat(fields[i], 32)
		if err != nil {
			return core.Vec3{}, err
		}
		out[i] = float32(value)
	}
	return core.NewVec3(out[0], out[1], out[2]), nil
}

// parseFace decodes three vertex references. OBJ indices are 1-based;
// they are converted to 0-based here and bounds-checked later against the
// assembled arrays.
func parseFace(fields []string) (geometry.MeshFace, error) {
	var face geometry.MeshFace
	for i, field := range fields {
		parts := strings.Split(field, "/")
		var posRef, normRef string
		switch len(parts) {
		case 3:
			// position/texcoord/normal; texcoord may be empty (v//vn).
			posRef, normRef = parts[0], parts[2]
		default:
			return geometry.MeshFace{}, fmt.Errorf("vertex %q must reference position and normal", field)
		}

		pos, err := strconv.Atoi(posRef)
		if err != nil {
			return geometry.MeshFace{}, err
		}
		norm, err := strconv.Atoi(normRef)
		if err != nil {
			return geometry.MeshFace{}, err
		}
		face.Positions[i] = pos - 1
		face.Normals[i] = norm - 1
	}
	return face, nil
}
