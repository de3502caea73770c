package bvh

// Stats summarizes the structure of a built tree.
type Stats struct {
	TotalNodes      int
	LeafNodes       int
	TotalPrimitives int
	MaxDepth        int
	MaxLeafSize     int
	AvgLeafSize     float64
}

// CollectStats walks the flat array once and gathers structural
// statistics. Depth is recovered from the preorder layout: a node at
// index i is a child of the nearest ancestor whose subtree still covers
// i.
func (b *BVH) CollectStats() Stats {
	stats := Stats{}
	if len(b.Nodes) == 0 {
		return stats
	}

	// Stack of subtree end indices; its height is the current depth.
	var ends []int
	for i, node := range b.Nodes {
		for len(ends) > 0 && i >= ends[len(ends)-1] {
			ends = ends[:len(ends)-1]
		}

		stats.TotalNodes++
		depth := len(ends)
		if depth > stats.MaxDepth {
			stats.MaxDepth = depth
		}

		if node.Leaf {
			stats.LeafNodes++
			size := node.End - node.Start
			stats.TotalPrimitives += size
			if size > stats.MaxLeafSize {
				stats.MaxLeafSize = size
			}
		} else {
			ends = append(ends, i+node.SubtreeSize)
		}
	}

	if stats.LeafNodes > 0 {
		stats.AvgLeafSize = float64(stats.TotalPrimitives) / float64(stats.LeafNodes)
	}
	return stats
}
