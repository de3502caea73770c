package core

// Ray is a half-open parametric segment: points Origin + t*Direction for
// t in [TStart, TEnd). Invariant: 0 <= TStart <= TEnd.
type Ray struct {
	Origin    Vec3
	Direction UnitVec3
	TStart    float32
	TEnd      float32
}

// NewRay creates a ray over the full positive parameter range.
func NewRay(origin Vec3, direction UnitVec3) Ray {
	return Ray{
		Origin:    origin,
		Direction: direction,
		TStart:    0,
		TEnd:      Inf(),
	}
}

// NewShadowRay creates a ray whose parameter range starts at BigEpsilon,
// so that a ray leaving a surface does not re-intersect it.
func NewShadowRay(origin Vec3, direction UnitVec3) Ray {
	ray := NewRay(origin, direction)
	ray.TStart = BigEpsilon
	return ray
}

// NewShadowRayTo creates a shadow ray from origin toward target whose
// parameter range ends at the target, for obstruction queries.
func NewShadowRayTo(origin, target Vec3) Ray {
	toTarget := target.Subtract(origin)
	ray := NewShadowRay(origin, toTarget.Unit())
	ray.TEnd = toTarget.Length()
	return ray
}

// At returns the point at parameter t along the ray.
func (r Ray) At(t float32) Vec3 {
	return r.Origin.Add(r.Direction.Vec().Multiply(t))
}
