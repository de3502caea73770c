package core

import "github.com/xaanimus/xsray/pkg/multi"

// AABox is an axis-aligned bounding box. Invariant: Lower <= Upper
// componentwise, except for the empty box which is the union identity.
type AABox struct {
	Lower Vec3
	Upper Vec3
}

// NewAABox creates a box from its corners.
func NewAABox(lower, upper Vec3) AABox {
	return AABox{Lower: lower, Upper: upper}
}

// EmptyAABox returns the empty box (+inf lower, -inf upper), the identity
// element for Union.
func EmptyAABox() AABox {
	return AABox{
		Lower: NewVec3(Inf(), Inf(), Inf()),
		Upper: NewVec3(-Inf(), -Inf(), -Inf()),
	}
}

// NewAABoxFromPoints returns the smallest box containing all points.
func NewAABoxFromPoints(points ...Vec3) AABox {
	box := EmptyAABox()
	for _, p := range points {
		box.Lower = box.Lower.Min(p)
		box.Upper = box.Upper.Max(p)
	}
	return box
}

// Union returns the smallest box containing both boxes.
func (b AABox) Union(other AABox) AABox {
	return AABox{
		Lower: b.Lower.Min(other.Lower),
		Upper: b.Upper.Max(other.Upper),
	}
}

// UnionAll returns the smallest box containing all given boxes; an empty
// input yields the empty box.
func UnionAll(boxes []AABox) AABox {
	box := EmptyAABox()
	for _, other := range boxes {
		box = box.Union(other)
	}
	return box
}

// Center returns the centroid of the box.
func (b AABox) Center() Vec3 {
	return b.Lower.Add(b.Upper).Multiply(0.5)
}

// Size returns the extent of the box along each axis.
func (b AABox) Size() Vec3 {
	return b.Upper.Subtract(b.Lower)
}

// SurfaceArea returns the total surface area of the box.
func (b AABox) SurfaceArea() float32 {
	size := b.Size()
	return 2 * (size.X*size.Y + size.Y*size.Z + size.Z*size.X)
}

// WidestAxis returns the axis (0=X, 1=Y, 2=Z) of greatest extent.
// Ties resolve to x over y and z, then y over z.
func (b AABox) WidestAxis() int {
	size := b.Size()
	if size.X >= size.Y && size.X >= size.Z {
		return 0
	}
	if size.Y >= size.Z {
		return 1
	}
	return 2
}

// Packed returns the box as one 8-wide lane: lower xyz in lanes 0-2,
// upper xyz in lanes 3-5. Lanes 6 and 7 are unused padding.
func (b AABox) Packed() multi.Float8 {
	return multi.Float8{
		b.Lower.X, b.Lower.Y, b.Lower.Z,
		b.Upper.X, b.Upper.Y, b.Upper.Z,
		0, 0,
	}
}

// PackedRay is the precomputed form of a ray used for box tests: origin
// and inverse direction replicated so that a single subtract and multiply
// against a packed box yields the slab parameters for both corners.
type PackedRay struct {
	origin multi.Float8
	invDir multi.Float8
	TStart float32
	TEnd   float32
}

// NewPackedRay precomputes the packed representation of a ray.
func NewPackedRay(ray Ray) PackedRay {
	o := ray.Origin
	d := ray.Direction.Vec()
	ix, iy, iz := 1/d.X, 1/d.Y, 1/d.Z
	return PackedRay{
		origin: multi.Float8{o.X, o.Y, o.Z, o.X, o.Y, o.Z, 0, 0},
		invDir: multi.Float8{ix, iy, iz, ix, iy, iz, 0, 0},
		TStart: ray.TStart,
		TEnd:   ray.TEnd,
	}
}

// IntersectsPacked runs the slab test against a packed box. The result
// matches the scalar AABox test on the same ray.
func (r *PackedRay) IntersectsPacked(box multi.Float8) bool {
	t := box.Sub(r.origin).Mul(r.invDir)

	nearMax := -Inf()
	farMin := Inf()
	for axis := 0; axis < 3; axis++ {
		t1 := t.Lane(axis)
		t2 := t.Lane(axis + 3)
		near, far := t1, t2
		if near > far {
			near, far = far, near
		}
		nearMax = max(nearMax, near)
		farMin = min(farMin, far)
	}

	return nearMax <= farMin && r.TStart <= farMin && nearMax <= r.TEnd
}

// Intersects runs the scalar slab test: per-axis entry/exit parameters
// from the inverse direction, then the three inclusive checks
// near <= far, TStart <= far and near <= TEnd.
func (b AABox) Intersects(ray *PackedRay) bool {
	nearMax := -Inf()
	farMin := Inf()

	lower := [3]float32{b.Lower.X, b.Lower.Y, b.Lower.Z}
	upper := [3]float32{b.Upper.X, b.Upper.Y, b.Upper.Z}
	for axis := 0; axis < 3; axis++ {
		origin := ray.origin.Lane(axis)
		invDir := ray.invDir.Lane(axis)
		t1 := (lower[axis] - origin) * invDir
		t2 := (upper[axis] - origin) * invDir

		near, far := t1, t2
		if near > far {
			near, far = far, near
		}
		nearMax = max(nearMax, near)
		farMin = min(farMin, far)
	}

	return nearMax <= farMin && ray.TStart <= farMin && nearMax <= ray.TEnd
}
