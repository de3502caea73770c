package loaders

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/qmuntal/gltf"

	"github.com/xaanimus/xsray/pkg/core"
	"github.com/xaanimus/xsray/pkg/geometry"
)

// LoadGLTF decodes a glTF or GLB file into mesh data. Only triangle
// primitives are accepted; anything else fails the load, matching the
// triangles-only contract of the OBJ decoder. Missing normals are
// replaced by flat face normals.
func LoadGLTF(path string) (*geometry.MeshData, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gltf: %w", err)
	}

	mesh := &geometry.MeshData{}
	for _, m := range doc.Meshes {
		for _, prim := range m.Primitives {
			if prim.Mode != gltf.PrimitiveTriangles {
				return nil, fmt.Errorf("mesh %q: polygons must be triangles, got primitive mode %v", m.Name, prim.Mode)
			}
			if err := appendPrimitive(doc, prim, mesh); err != nil {
				return nil, fmt.Errorf("mesh %q: %w", m.Name, err)
			}
		}
	}
	return mesh, nil
}

func appendPrimitive(doc *gltf.Document, prim *gltf.Primitive, mesh *geometry.MeshData) error {
	posIdx, ok := prim.Attributes[gltf.POSITION]
	if !ok {
		return fmt.Errorf("primitive has no positions")
	}
	positions, err := readVec3Accessor(doc, int(posIdx))
	if err != nil {
		return fmt.Errorf("read positions: %w", err)
	}

	var normals []core.Vec3
	if normIdx, ok := prim.Attributes[gltf.NORMAL]; ok {
		normals, err = readVec3Accessor(doc, int(normIdx))
		if err != nil {
			return fmt.Errorf("read normals: %w", err)
		}
	}

	var indices []int
	if prim.Indices != nil {
		indices, err = readIndices(doc, int(*prim.Indices))
		if err != nil {
			return fmt.Errorf("read indices: %w", err)
		}
	} else {
		indices = make([]int, len(positions))
		for i := range indices {
			indices[i] = i
		}
	}
	if len(indices)%3 != 0 {
		return fmt.Errorf("index count %d is not a multiple of 3", len(indices))
	}

	basePos := len(mesh.Positions)
	baseNorm := len(mesh.Normals)
	mesh.Positions = append(mesh.Positions, positions...)

	hasNormals := len(normals) == len(positions)
	if hasNormals {
		mesh.Normals = append(mesh.Normals, normals...)
	}

	for i := 0; i+2 < len(indices); i += 3 {
		i0, i1, i2 := indices[i], indices[i+1], indices[i+2]
		if i0 >= len(positions) || i1 >= len(positions) || i2 >= len(positions) {
			return fmt.Errorf("face index out of bounds")
		}

		var face geometry.MeshFace
		face.Positions = [3]int{basePos + i0, basePos + i1, basePos + i2}
		if hasNormals {
			face.Normals = [3]int{baseNorm + i0, baseNorm + i1, baseNorm + i2}
		} else {
			// Flat-shade: one face normal shared by the three vertices.
			e1 := positions[i1].Subtract(positions[i0])
			e2 := positions[i2].Subtract(positions[i0])
			mesh.Normals = append(mesh.Normals, e1.Cross(e2).Unit().Vec())
			idx := len(mesh.Normals) - 1
			face.Normals = [3]int{idx, idx, idx}
		}
		mesh.Faces = append(mesh.Faces, face)
	}
	return nil
}

// readVec3Accessor reads VEC3 float data from an accessor.
func readVec3Accessor(doc *gltf.Document, accessorIdx int) ([]core.Vec3, error) {
	accessor := doc.Accessors[accessorIdx]
	if accessor.Type != gltf.AccessorVec3 {
		return nil, fmt.Errorf("expected VEC3, got %v", accessor.Type)
	}
	data, start, stride, err := accessorBytes(doc, accessor, 12)
	if err != nil {
		return nil, err
	}

	result := make([]core.Vec3, accessor.Count)
	for i := 0; i < int(accessor.Count); i++ {
		offset := start + i*stride
		result[i] = core.NewVec3(
			readFloat32(data[offset:]),
			readFloat32(data[offset+4:]),
			readFloat32(data[offset+8:]),
		)
	}
	return result, nil
}

// readIndices reads SCALAR index data of any supported component width.
func readIndices(doc *gltf.Document, accessorIdx int) ([]int, error) {
	accessor := doc.Accessors[accessorIdx]
	if accessor.Type != gltf.AccessorScalar {
		return nil, fmt.Errorf("expected SCALAR, got %v", accessor.Type)
	}

	var componentSize int
	switch accessor.ComponentType {
	case gltf.ComponentUbyte:
		componentSize = 1
	case gltf.ComponentUshort:
		componentSize = 2
	case gltf.ComponentUint:
		componentSize = 4
	default:
		return nil, fmt.Errorf("unexpected index component type %v", accessor.ComponentType)
	}

	data, start, stride, err := accessorBytes(doc, accessor, componentSize)
	if err != nil {
		return nil, err
	}

	result := make([]int, accessor.Count)
	for i := 0; i < int(accessor.Count); i++ {
		offset := start + i*stride
		switch componentSize {
		case 1:
			result[i] = int(data[offset])
		case 2:
			result[i] = int(binary.LittleEndian.Uint16(data[offset:]))
		default:
			result[i] = int(binary.LittleEndian.Uint32(data[offset:]))
		}
	}
	return result, nil
}

// accessorBytes resolves an accessor to its backing bytes, returning the
// start offset and element stride.
func accessorBytes(doc *gltf.Document, accessor *gltf.Accessor, defaultStride int) ([]byte, int, int, error) {
	if accessor.BufferView == nil {
		return nil, 0, 0, fmt.Errorf("accessor has no buffer view")
	}
	bufferView := doc.BufferViews[*accessor.BufferView]
	buffer := doc.Buffers[bufferView.Buffer]
	if buffer.Data == nil {
		return nil, 0, 0, fmt.Errorf("buffer has no data")
	}

	start := int(bufferView.ByteOffset) + int(accessor.ByteOffset)
	stride := int(bufferView.ByteStride)
	if stride == 0 {
		stride = defaultStride
	}
	return buffer.Data, start, stride, nil
}

func readFloat32(data []byte) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(data))
}
