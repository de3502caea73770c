// Package bvh builds and traverses the bounding-volume hierarchy used to
// accelerate ray queries. The tree is stored as a single flat array in
// depth-first preorder: the left subtree of an internal node at index i
// starts at i+1 and the right subtree at i+1+size(left), so traversal is
// one loop that either visits the next node or jumps past a subtree.
package bvh

import (
	"sort"

	"github.com/xaanimus/xsray/pkg/core"
	"github.com/xaanimus/xsray/pkg/multi"
)

// Primitive is what the builder needs to know about an object.
type Primitive interface {
	BoundingBox() core.AABox
	SurfaceArea() float32
}

// Node is one entry of the flattened tree. Internal nodes carry the count
// of nodes in their entire subtree (including themselves); leaves carry a
// half-open [Start,End) index range into the sorted primitive order.
type Node struct {
	Box         core.AABox
	SubtreeSize int
	Start, End  int
	Leaf        bool

	packed multi.Float8
}

// Range is a half-open run of candidate primitive indices.
type Range struct {
	Start, End int
}

// BVH is the flat preorder node array. The root, if any, is index 0.
type BVH struct {
	Nodes []Node
}

type buildEntry struct {
	Entry
	centroid core.Vec3
	input    int
}

// Build constructs the hierarchy. It returns the tree together with the
// leaf-order permutation: order[i] is the input index of the primitive at
// sorted position i. Leaf ranges index that sorted order, so callers must
// rearrange their primitive storage to match.
func Build(prims []Primitive, splitter Splitter) (*BVH, []int) {
	entries := make([]buildEntry, len(prims))
	for i, prim := range prims {
		box := prim.BoundingBox()
		entries[i] = buildEntry{
			Entry:    Entry{Box: box, Area: prim.SurfaceArea()},
			centroid: box.Center(),
			input:    i,
		}
	}

	tree := &BVH{}
	scratch := make([]Entry, len(entries))
	tree.build(entries, 0, splitter, scratch)

	for i := range tree.Nodes {
		tree.Nodes[i].packed = tree.Nodes[i].Box.Packed()
	}

	order := make([]int, len(entries))
	for i, entry := range entries {
		order[i] = entry.input
	}
	return tree, order
}

// build emits the subtree over entries (whose first element sits at
// startIndex in the final order) and returns the number of nodes emitted.
func (b *BVH) build(entries []buildEntry, startIndex int, splitter Splitter, scratch []Entry) int {
	if len(entries) == 0 {
		return 0
	}

	box := core.EmptyAABox()
	for _, entry := range entries {
		box = box.Union(entry.Box)
	}

	// Stable sort by centroid along the widest axis, so equal centroids
	// keep their input order and builds reproduce across platforms.
	axis := box.WidestAxis()
	sort.SliceStable(entries, func(i, j int) bool {
		return axisComponent(entries[i].centroid, axis) < axisComponent(entries[j].centroid, axis)
	})

	view := scratch[:len(entries)]
	for i := range entries {
		view[i] = entries[i].Entry
	}
	split := splitter.SplitIndex(view)
	if split == 0 {
		b.Nodes = append(b.Nodes, Node{
			Box:         box,
			SubtreeSize: 1,
			Start:       startIndex,
			End:         startIndex + len(entries),
			Leaf:        true,
		})
		return 1
	}

	nodeIndex := len(b.Nodes)
	b.Nodes = append(b.Nodes, Node{Box: box})
	leftSize := b.build(entries[:split], startIndex, splitter, scratch)
	rightSize := b.build(entries[split:], startIndex+split, splitter, scratch)
	b.Nodes[nodeIndex].SubtreeSize = 1 + leftSize + rightSize
	return b.Nodes[nodeIndex].SubtreeSize
}

func axisComponent(v core.Vec3, axis int) float32 {
	switch axis {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}

// Traverse walks the flat array and appends the [start,end) range of
// every leaf whose box the ray intersects. Because the left subtree is
// stored first, the ranges come out in ascending order and the caller can
// scan primitives linearly. The out slice is reused across calls.
func (b *BVH) Traverse(ray *core.PackedRay, out []Range) []Range {
	i := 0
	for i < len(b.Nodes) {
		node := &b.Nodes[i]
		if node.Leaf {
			if ray.IntersectsPacked(node.packed) {
				out = append(out, Range{Start: node.Start, End: node.End})
			}
			i++
			continue
		}
		if ray.IntersectsPacked(node.packed) {
			i++
		} else {
			i += node.SubtreeSize
		}
	}
	return out
}
