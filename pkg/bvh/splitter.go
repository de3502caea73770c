package bvh

import "github.com/xaanimus/xsray/pkg/core"

// Entry is the per-primitive information the builder and splitters work
// with: the bounding box and the primitive's own surface area.
type Entry struct {
	Box  core.AABox
	Area float32
}

// Splitter chooses where to split a centroid-sorted run of primitives.
type Splitter interface {
	// SplitIndex returns an index m in [0, len(sorted)); the left child
	// takes sorted[:m] and the right child sorted[m:]. Returning 0 means
	// the run should become a leaf.
	SplitIndex(sorted []Entry) int
}

// MedianSplitter splits every run in half. Fast to build, mediocre trees.
type MedianSplitter struct{}

// SplitIndex returns the midpoint of the run.
func (MedianSplitter) SplitIndex(sorted []Entry) int {
	return len(sorted) / 2
}

// SAHSplitter evaluates the surface-area heuristic at a fixed number of
// equal-count candidate positions and keeps the cheapest, or refuses to
// split when no candidate beats intersecting the whole run.
type SAHSplitter struct {
	Subdivisions     int
	TraversalCost    float32
	IntersectionCost float32
}

// NewSAHSplitter returns a splitter with the shipped defaults.
func NewSAHSplitter() SAHSplitter {
	return SAHSplitter{
		Subdivisions:     50,
		TraversalCost:    2.0,
		IntersectionCost: 1.0,
	}
}

// SplitIndex returns the cheapest candidate split, or 0 when the
// do-not-split baseline of len·IntersectionCost is cheaper.
func (s SAHSplitter) SplitIndex(sorted []Entry) int {
	n := len(sorted)
	if n <= 1 {
		return 0
	}

	// Prefix sums of the primitive surface areas, so each candidate
	// evaluates in constant time.
	prefix := make([]float32, n+1)
	for i, entry := range sorted {
		prefix[i+1] = prefix[i] + entry.Area
	}
	total := prefix[n]

	step := n / s.Subdivisions
	if step < 1 {
		step = 1
	}

	bestIndex := 0
	bestCost := float32(n) * s.IntersectionCost
	for m := step; m < n; m += step {
		leftArea := prefix[m]
		rightArea := total - leftArea
		cost := s.TraversalCost + s.IntersectionCost*
			(leftArea/total*float32(m)+rightArea/total*float32(n-m))
		if cost < bestCost {
			bestCost = cost
			bestIndex = m
		}
	}

	return bestIndex
}
