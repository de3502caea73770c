package core

import (
	"math/rand"
	"testing"
)

func TestAABox_Union(t *testing.T) {
	a := NewAABox(NewVec3(0, 0, 0), NewVec3(1, 1, 1))
	b := NewAABox(NewVec3(-1, 0, 0.5), NewVec3(10, 20, 30))

	got := a.Union(b)
	want := NewAABox(NewVec3(-1, 0, 0), NewVec3(10, 20, 30))
	if got != want {
		t.Errorf("Union = %v, want %v", got, want)
	}
}

func TestAABox_EmptyIsUnionIdentity(t *testing.T) {
	box := NewAABox(NewVec3(1, 2, 3), NewVec3(4, 5, 6))
	if got := EmptyAABox().Union(box); got != box {
		t.Errorf("empty union box = %v, want %v", got, box)
	}
	if got := UnionAll(nil); got != EmptyAABox() {
		t.Errorf("UnionAll(nil) = %v, want empty box", got)
	}
}

func TestAABox_WidestAxis(t *testing.T) {
	tests := []struct {
		name     string
		box      AABox
		expected int
	}{
		{name: "x widest", box: NewAABox(NewVec3(0, 0, 0), NewVec3(3, 1, 1)), expected: 0},
		{name: "y widest", box: NewAABox(NewVec3(0, 0, 0), NewVec3(1, 3, 1)), expected: 1},
		{name: "z widest", box: NewAABox(NewVec3(0, 0, 0), NewVec3(1, 1, 3)), expected: 2},
		{name: "xyz tie goes to x", box: NewAABox(NewVec3(0, 0, 0), NewVec3(1, 1, 1)), expected: 0},
		{name: "yz tie goes to y", box: NewAABox(NewVec3(0, 0, 0), NewVec3(0.5, 1, 1)), expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.box.WidestAxis(); got != tt.expected {
				t.Errorf("WidestAxis = %d, want %d", got, tt.expected)
			}
		})
	}
}

func TestAABox_Intersects(t *testing.T) {
	unitBox := NewAABox(NewVec3(0, 0, 0), NewVec3(1, 1, 1))
	diag := NewVec3(1, 1, 1).Unit()

	tests := []struct {
		name      string
		box       AABox
		ray       Ray
		shouldHit bool
	}{
		{
			name:      "diagonal ray toward box hits",
			box:       unitBox,
			ray:       NewShadowRay(NewVec3(-1, -1, -1), diag),
			shouldHit: true,
		},
		{
			name:      "ray leaving from far corner misses",
			box:       unitBox,
			ray:       NewShadowRay(NewVec3(1, 1, 1), diag),
			shouldHit: false,
		},
		{
			name:      "origin on box face still hits",
			box:       unitBox,
			ray:       NewRay(NewVec3(0, 0.5, 0.5), NewVec3(1, 0, 0).Unit()),
			shouldHit: true,
		},
		{
			name:      "ray pointing away misses",
			box:       unitBox,
			ray:       NewRay(NewVec3(2, 0.5, 0.5), NewVec3(1, 0, 0).Unit()),
			shouldHit: false,
		},
		{
			name: "range ending before box misses",
			box:  unitBox,
			ray: Ray{
				Origin:    NewVec3(-5, 0.5, 0.5),
				Direction: NewVec3(1, 0, 0).Unit(),
				TStart:    0,
				TEnd:      1,
			},
			shouldHit: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			packed := NewPackedRay(tt.ray)
			if got := tt.box.Intersects(&packed); got != tt.shouldHit {
				t.Errorf("Intersects = %v, want %v", got, tt.shouldHit)
			}
		})
	}
}

// The packed 8-wide path and the scalar path must agree on every ray.
func TestAABox_PackedMatchesScalar(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	randVec := func(scale float32) Vec3 {
		return NewVec3(
			(rng.Float32()-0.5)*scale,
			(rng.Float32()-0.5)*scale,
			(rng.Float32()-0.5)*scale,
		)
	}

	for i := 0; i < 1000; i++ {
		corner := randVec(10)
		box := NewAABoxFromPoints(corner, corner.Add(randVec(5)))

		dir := randVec(2)
		if dir.IsZero() {
			continue
		}
		ray := NewRay(randVec(20), dir.Unit())
		packed := NewPackedRay(ray)

		scalar := box.Intersects(&packed)
		wide := packed.IntersectsPacked(box.Packed())
		if scalar != wide {
			t.Fatalf("case %d: scalar = %v, packed = %v for box %v ray %v",
				i, scalar, wide, box, ray.Origin)
		}
	}
}
