// Package multi provides width-polymorphic scalar algebra so that
// intersection code is written once and instantiated 1-, 4- or 8-wide.
// The lane types are portable array-backed values; on targets with SIMD
// support the compiler is free to vectorize the fixed-size loops.
package multi

import "math"

// Mask is a lane-wide boolean produced by comparisons.
type Mask[B any] interface {
	And(B) B
	Or(B) B
	All() bool
	Any() bool
}

// Scalar is a lane-wide float32 value. All operations are elementwise
// unless noted; Lane, ArgMin, HMin and HMax reduce across lanes.
type Scalar[S, B any] interface {
	Add(S) S
	Sub(S) S
	Mul(S) S
	Div(S) S
	Neg() S
	Abs() S
	Sqrt() S
	Min(S) S
	Max(S) S
	Less(S) B
	LessEq(S) B
	Greater(S) B
	GreaterEq(S) B
	// Select keeps the receiver's lanes where the mask is set and takes
	// the other value's lanes elsewhere.
	Select(B, S) S
	Lane(int) float32
	ArgMin() int
	HMin() float32
	HMax() float32
}

// Num provides the constants and constructors of one lane width.
type Num[S Scalar[S, B], B Mask[B]] interface {
	Width() int
	Splat(float32) S
	// FromLanes builds a value from one float per lane; values must have
	// Width elements.
	FromLanes(values []float32) S
	Zero() S
	One() S
	Inf() S
	NegInf() S
	Epsilon() S
	BigEpsilon() S
	MaskAll(bool) B
}

const (
	epsilon    float32 = 1.1920929e-07
	bigEpsilon float32 = 3e-5
)

func inf32() float32 { return float32(math.Inf(1)) }

// Float1 is the scalar (width 1) lane type.
type Float1 float32

// Bool1 is the width-1 mask.
type Bool1 bool

func (a Bool1) And(b Bool1) Bool1 { return a && b }
func (a Bool1) Or(b Bool1) Bool1  { return a || b }
func (a Bool1) All() bool         { return bool(a) }
func (a Bool1) Any() bool         { return bool(a) }

func (a Float1) Add(b Float1) Float1 { return a + b }
func (a Float1) Sub(b Float1) Float1 { return a - b }
func (a Float1) Mul(b Float1) Float1 { return a * b }
func (a Float1) Div(b Float1) Float1 { return a / b }
func (a Float1) Neg() Float1         { return -a }

func (a Float1) Abs() Float1 {
	return Float1(math.Abs(float64(a)))
}

func (a Float1) Sqrt() Float1 {
	return Float1(math.Sqrt(float64(a)))
}

func (a Float1) Min(b Float1) Float1 {
	if b < a {
		return b
	}
	return a
}

func (a Float1) Max(b Float1) Float1 {
	if b > a {
		return b
	}
	return a
}

func (a Float1) Less(b Float1) Bool1      { return a < b }
func (a Float1) LessEq(b Float1) Bool1    { return a <= b }
func (a Float1) Greater(b Float1) Bool1   { return a > b }
func (a Float1) GreaterEq(b Float1) Bool1 { return a >= b }

func (a Float1) Select(mask Bool1, other Float1) Float1 {
	if mask {
		return a
	}
	return other
}

func (a Float1) Lane(int) float32 { return float32(a) }
func (a Float1) ArgMin() int      { return 0 }
func (a Float1) HMin() float32    { return float32(a) }
func (a Float1) HMax() float32    { return float32(a) }

// Num1 is the width-1 family.
type Num1 struct{}

func (Num1) Width() int             { return 1 }
func (Num1) Splat(x float32) Float1 { return Float1(x) }

func (Num1) FromLanes(values []float32) Float1 { return Float1(values[0]) }
func (Num1) Zero() Float1            { return 0 }
func (Num1) One() Float1             { return 1 }
func (Num1) Inf() Float1             { return Float1(inf32()) }
func (Num1) NegInf() Float1          { return Float1(-inf32()) }
func (Num1) Epsilon() Float1         { return Float1(epsilon) }
func (Num1) BigEpsilon() Float1      { return Float1(bigEpsilon) }
func (Num1) MaskAll(set bool) Bool1  { return Bool1(set) }

// Float4 is the 4-wide lane type.
type Float4 [4]float32

// Bool4 is the 4-wide mask.
type Bool4 [4]bool

func (a Bool4) And(b Bool4) Bool4 {
	var r Bool4
	for i := range a {
		r[i] = a[i] && b[i]
	}
	return r
}

func (a Bool4) Or(b Bool4) Bool4 {
	var r Bool4
	for i := range a {
		r[i] = a[i] || b[i]
	}
	return r
}

func (a Bool4) All() bool {
	for i := range a {
		if !a[i] {
			return false
		}
	}
	return true
}

func (a Bool4) Any() bool {
	for i := range a {
		if a[i] {
			return true
		}
	}
	return false
}

func (a Float4) Add(b Float4) Float4 {
	var r Float4
	for i := range a {
		r[i] = a[i] + b[i]
	}
	return r
}

func (a Float4) Sub(b Float4) Float4 {
	var r Float4
	for i := range a {
		r[i] = a[i] - b[i]
	}
	return r
}

func (a Float4) Mul(b Float4) Float4 {
	var r Float4
	for i := range a {
		r[i] = a[i] * b[i]
	}
	return r
}

func (a Float4) Div(b Float4) Float4 {
	var r Float4
	for i := range a {
		r[i] = a[i] / b[i]
	}
	return r
}

func (a Float4) Neg() Float4 {
	var r Float4
	for i := range a {
		r[i] = -a[i]
	}
	return r
}

func (a Float4) Abs() Float4 {
	var r Float4
	for i := range a {
		r[i] = float32(math.Abs(float64(a[i])))
	}
	return r
}

func (a Float4) Sqrt() Float4 {
	var r Float4
	for i := range a {
		r[i] = float32(math.Sqrt(float64(a[i])))
	}
	return r
}

func (a Float4) Min(b Float4) Float4 {
	var r Float4
	for i := range a {
		r[i] = a[i]
		if b[i] < r[i] {
			r[i] = b[i]
		}
	}
	return r
}

func (a Float4) Max(b Float4) Float4 {
	var r Float4
	for i := range a {
		r[i] = a[i]
		if b[i] > r[i] {
			r[i] = b[i]
		}
	}
	return r
}

func (a Float4) Less(b Float4) Bool4 {
	var r Bool4
	for i := range a {
		r[i] = a[i] < b[i]
	}
	return r
}

func (a Float4) LessEq(b Float4) Bool4 {
	var r Bool4
	for i := range a {
		r[i] = a[i] <= b[i]
	}
	return r
}

func (a Float4) Greater(b Float4) Bool4 {
	var r Bool4
	for i := range a {
		r[i] = a[i] > b[i]
	}
	return r
}

func (a Float4) GreaterEq(b Float4) Bool4 {
	var r Bool4
	for i := range a {
		r[i] = a[i] >= b[i]
	}
	return r
}

func (a Float4) Select(mask Bool4, other Float4) Float4 {
	var r Float4
	for i := range a {
		if mask[i] {
			r[i] = a[i]
		} else {
			r[i] = other[i]
		}
	}
	return r
}

func (a Float4) Lane(i int) float32 { return a[i] }

func (a Float4) ArgMin() int {
	best := 0
	for i := 1; i < len(a); i++ {
		if a[i] < a[best] {
			best = i
		}
	}
	return best
}

func (a Float4) HMin() float32 { return a[a.ArgMin()] }

func (a Float4) HMax() float32 {
	best := a[0]
	for i := 1; i < len(a); i++ {
		if a[i] > best {
			best = a[i]
		}
	}
	return best
}

// Num4 is the 4-wide family.
type Num4 struct{}

func (Num4) Width() int { return 4 }

func (Num4) Splat(x float32) Float4 {
	return Float4{x, x, x, x}
}

func (Num4) FromLanes(values []float32) Float4 {
	return Float4(values[:4])
}

func (n Num4) Zero() Float4       { return n.Splat(0) }
func (n Num4) One() Float4        { return n.Splat(1) }
func (n Num4) Inf() Float4        { return n.Splat(inf32()) }
func (n Num4) NegInf() Float4     { return n.Splat(-inf32()) }
func (n Num4) Epsilon() Float4    { return n.Splat(epsilon) }
func (n Num4) BigEpsilon() Float4 { return n.Splat(bigEpsilon) }

func (Num4) MaskAll(set bool) Bool4 {
	return Bool4{set, set, set, set}
}

// Float8 is the 8-wide lane type.
type Float8 [8]float32

// Bool8 is the 8-wide mask.
type Bool8 [8]bool

func (a Bool8) And(b Bool8) Bool8 {
	var r Bool8
	for i := range a {
		r[i] = a[i] && b[i]
	}
	return r
}

func (a Bool8) Or(b Bool8) Bool8 {
	var r Bool8
	for i := range a {
		r[i] = a[i] || b[i]
	}
	return r
}

func (a Bool8) All() bool {
	for i := range a {
		if !a[i] {
			return false
		}
	}
	return true
}

func (a Bool8) Any() bool {
	for i := range a {
		if a[i] {
			return true
		}
	}
	return false
}

func (a Float8) Add(b Float8) Float8 {
	var r Float8
	for i := range a {
		r[i] = a[i] + b[i]
	}
	return r
}

func (a Float8) Sub(b Float8) Float8 {
	var r Float8
	for i := range a {
		r[i] = a[i] - b[i]
	}
	return r
}

func (a Float8) Mul(b Float8) Float8 {
	var r Float8
	for i := range a {
		r[i] = a[i] * b[i]
	}
	return r
}

func (a Float8) Div(b Float8) Float8 {
	var r Float8
	for i := range a {
		r[i] = a[i] / b[i]
	}
	return r
}

func (a Float8) Neg() Float8 {
	var r Float8
	for i := range a {
		r[i] = -a[i]
	}
	return r
}

func (a Float8) Abs() Float8 {
	var r Float8
	for i := range a {
		r[i] = float32(math.Abs(float64(a[i])))
	}
	return r
}

func (a Float8) Sqrt() Float8 {
	var r Float8
	for i := range a {
		r[i] = float32(math.Sqrt(float64(a[i])))
	}
	return r
}

func (a Float8) Min(b Float8) Float8 {
	var r Float8
	for i := range a {
		r[i] = a[i]
		if b[i] < r[i] {
			r[i] = b[i]
		}
	}
	return r
}

func (a Float8) Max(b Float8) Float8 {
	var r Float8
	for i := range a {
		r[i] = a[i]
		if b[i] > r[i] {
			r[i] = b[i]
		}
	}
	return r
}

func (a Float8) Less(b Float8) Bool8 {
	var r Bool8
	for i := range a {
		r[i] = a[i] < b[i]
	}
	return r
}

func (a Float8) LessEq(b Float8) Bool8 {
	var r Bool8
	for i := range a {
		r[i] = a[i] <= b[i]
	}
	return r
}

func (a Float8) Greater(b Float8) Bool8 {
	var r Bool8
	for i := range a {
		r[i] = a[i] > b[i]
	}
	return r
}

func (a Float8) GreaterEq(b Float8) Bool8 {
	var r Bool8
	for i := range a {
		r[i] = a[i] >= b[i]
	}
	return r
}

func (a Float8) Select(mask Bool8, other Float8) Float8 {
	var r Float8
	for i := range a {
		if mask[i] {
			r[i] = a[i]
		} else {
			r[i] = other[i]
		}
	}
	return r
}

func (a Float8) Lane(i int) float32 { return a[i] }

func (a Float8) ArgMin() int {
	best := 0
	for i := 1; i < len(a); i++ {
		if a[i] < a[best] {
			best = i
		}
	}
	return best
}

func (a Float8) HMin() float32 { return a[a.ArgMin()] }

func (a Float8) HMax() float32 {
	best := a[0]
	for i := 1; i < len(a); i++ {
		if a[i] > best {
			best = a[i]
		}
	}
	return best
}

// Num8 is the 8-wide family.
type Num8 struct{}

func (Num8) Width() int { return 8 }

func (Num8) Splat(x float32) Float8 {
	return Float8{x, x, x, x, x, x, x, x}
}

func (Num8) FromLanes(values []float32) Float8 {
	return Float8(values[:8])
}

func (n Num8) Zero() Float8       { return n.Splat(0) }
func (n Num8) One() Float8        { return n.Splat(1) }
func (n Num8) Inf() Float8        { return n.Splat(inf32()) }
func (n Num8) NegInf() Float8     { return n.Splat(-inf32()) }
func (n Num8) Epsilon() Float8    { return n.Splat(epsilon) }
func (n Num8) BigEpsilon() Float8 { return n.Splat(bigEpsilon) }

func (Num8) MaskAll(set bool) Bool8 {
	return Bool8{set, set, set, set, set, set, set, set}
}
