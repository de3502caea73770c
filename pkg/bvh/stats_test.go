package bvh

import "testing"

func TestCollectStats_Empty(t *testing.T) {
	tree, _ := Build(nil, NewSAHSplitter())
	stats := tree.CollectStats()
	if stats.TotalNodes != 0 || stats.LeafNodes != 0 {
		t.Errorf("empty stats = %+v, want zeros", stats)
	}
}

func TestCollectStats_SingleLeaf(t *testing.T) {
	tree, _ := Build(randomPrims(1, 11), NewSAHSplitter())
	stats := tree.CollectStats()

	if stats.TotalNodes != 1 || stats.LeafNodes != 1 {
		t.Errorf("stats = %+v, want one leaf node", stats)
	}
	if stats.MaxDepth != 0 {
		t.Errorf("MaxDepth = %d, want 0", stats.MaxDepth)
	}
	if stats.TotalPrimitives != 1 {
		t.Errorf("TotalPrimitives = %d, want 1", stats.TotalPrimitives)
	}
}

func TestCollectStats_CountsMatchTree(t *testing.T) {
	prims := randomPrims(100, 12)
	tree, _ := Build(prims, MedianSplitter{})
	stats := tree.CollectStats()

	if stats.TotalNodes != len(tree.Nodes) {
		t.Errorf("TotalNodes = %d, want %d", stats.TotalNodes, len(tree.Nodes))
	}
	if stats.TotalPrimitives != len(prims) {
		t.Errorf("TotalPrimitives = %d, want %d", stats.TotalPrimitives, len(prims))
	}

	leaves := 0
	for _, node := range tree.Nodes {
		if node.Leaf {
			leaves++
		}
	}
	if stats.LeafNodes != leaves {
		t.Errorf("LeafNodes = %d, want %d", stats.LeafNodes, leaves)
	}

	// The median splitter halves runs down to single primitives, so 100
	// primitives sit at depth ceil(log2(100)) = 7.
	if stats.MaxDepth != 7 {
		t.Errorf("MaxDepth = %d, want 7", stats.MaxDepth)
	}
	if stats.AvgLeafSize != 1 {
		t.Errorf("AvgLeafSize = %v, want 1", stats.AvgLeafSize)
	}
}
