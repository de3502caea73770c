package geometry

import (
	"github.com/xaanimus/xsray/pkg/bvh"
	"github.com/xaanimus/xsray/pkg/core"
	"github.com/xaanimus/xsray/pkg/multi"
)

// Hit records the closest intersection found so far. Beta and Gamma are
// the barycentric weights of vertices 1 and 2; the weight of vertex 0 is
// 1 - Beta - Gamma. Index is the triangle's position in the sorted order.
type Hit struct {
	T     float32
	Beta  float32
	Gamma float32
	Index int
}

// NoHit returns a hit record at infinite distance.
func NoHit() Hit {
	return Hit{T: core.Inf(), Index: -1}
}

// Intersected reports whether the record holds a finite hit.
func (h Hit) Intersected() bool {
	return core.IsFinite(h.T)
}

// Intersector tests rays against prepared triangles packed into
// lane-wide blocks, so the same Möller-Trumbore expression runs 1-, 4- or
// 8-wide depending on the width family it is instantiated with.
type Intersector[S multi.Scalar[S, B], B multi.Mask[B]] struct {
	num   multi.Num[S, B]
	p0    []multi.Vec3[S, B]
	e1    []multi.Vec3[S, B]
	e2    []multi.Vec3[S, B]
	count int
}


// NewIntersector packs the prepared triangles into blocks of the family's
// width. Padding lanes hold degenerate (zero-edge) triangles, which the
// determinant cutoff rejects.
func NewIntersector[S multi.Scalar[S, B], B multi.Mask[B]](num multi.Num[S, B], prepared []PreparedTriangle) *Intersector[S, B] {
	width := num.Width()
	blocks := (len(prepared) + width - 1) / width

	it := &Intersector[S, B]{
		num:   num,
		p0:    make([]multi.Vec3[S, B], blocks),
		e1:    make([]multi.Vec3[S, B], blocks),
		e2:    make([]multi.Vec3[S, B], blocks),
		count: len(prepared),
	}

	for block := 0; block < blocks; block++ {
		it.p0[block] = packLanes(num, prepared, block, func(t PreparedTriangle) core.Vec3 { return t.P0 })
		it.e1[block] = packLanes(num, prepared, block, func(t PreparedTriangle) core.Vec3 { return t.E1 })
		it.e2[block] = packLanes(num, prepared, block, func(t PreparedTriangle) core.Vec3 { return t.E2 })
	}
	return it
}

func packLanes[S multi.Scalar[S, B], B multi.Mask[B]](num multi.Num[S, B], prepared []PreparedTriangle, block int, get func(PreparedTriangle) core.Vec3) multi.Vec3[S, B] {
	width := num.Width()
	xs := make([]float32, width)
	ys := make([]float32, width)
	zs := make([]float32, width)
	for lane := 0; lane < width; lane++ {
		idx := block*width + lane
		if idx < len(prepared) {
			v := get(prepared[idx])
			xs[lane], ys[lane], zs[lane] = v.X, v.Y, v.Z
		}
	}
	return multi.NewVec3[S, B](num.FromLanes(xs), num.FromLanes(ys), num.FromLanes(zs))
}

// IntersectRange runs Möller-Trumbore over the blocks covering the given
// primitive range and folds the closest lane into best. Block granularity
// means a few triangles just outside the range may be probed as well;
// they are real scene triangles, so the closest-hit result is unchanged.
func (it *Intersector[S, B]) IntersectRange(ray core.Ray, r bvh.Range, best *Hit) {
	if r.Start >= r.End {
		return
	}
	width := it.num.Width()
	firstBlock := r.Start / width
	lastBlock := (r.End - 1) / width

	origin := multi.SplatVec3(it.num, ray.Origin.X, ray.Origin.Y, ray.Origin.Z)
	d := ray.Direction.Vec()
	dir := multi.SplatVec3(it.num, d.X, d.Y, d.Z)
	tStart := it.num.Splat(ray.TStart)
	tEnd := it.num.Splat(ray.TEnd)
	zero := it.num.Zero()
	one := it.num.One()
	inf := it.num.Inf()
	bigEps := it.num.BigEpsilon()

	for block := firstBlock; block <= lastBlock; block++ {
		e1 := it.e1[block]
		e2 := it.e2[block]

		h := dir.Cross(e2)
		a := e1.Dot(h)
		valid := a.Abs().GreaterEq(bigEps)

		f := one.Div(a)
		s := origin.Sub(it.p0[block])
		u := f.Mul(s.Dot(h))
		valid = valid.And(u.GreaterEq(zero)).And(u.LessEq(one))

		q := s.Cross(e1)
		v := f.Mul(dir.Dot(q))
		valid = valid.And(v.GreaterEq(zero)).And(u.Add(v).LessEq(one))

		t := f.Mul(e2.Dot(q))
		valid = valid.And(t.GreaterEq(tStart)).And(t.Less(tEnd))
		valid = valid.And(t.Less(it.num.Splat(best.T)))

		tMasked := t.Select(valid, inf)
		lane := tMasked.ArgMin()
		tLane := tMasked.Lane(lane)
		if tLane < best.T {
			index := block*width + lane
			if index < it.count {
				best.T = tLane
				best.Beta = u.Lane(lane)
				best.Gamma = v.Lane(lane)
				best.Index = index
			}
		}
	}
}

// Intersector1 and Intersector8 are the scalar and 8-wide instantiations.
type Intersector1 = Intersector[multi.Float1, multi.Bool1]

// Intersector8 is the default width used by the scene.
type Intersector8 = Intersector[multi.Float8, multi.Bool8]

// NewIntersector1 packs triangles for the scalar path.
func NewIntersector1(prepared []PreparedTriangle) *Intersector1 {
	return NewIntersector[multi.Float1, multi.Bool1](multi.Num1{}, prepared)
}

// NewIntersector8 packs triangles for the 8-wide path.
func NewIntersector8(prepared []PreparedTriangle) *Intersector8 {
	return NewIntersector[multi.Float8, multi.Bool8](multi.Num8{}, prepared)
}
