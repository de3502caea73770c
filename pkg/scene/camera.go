package scene

import "github.com/xaanimus/xsray/pkg/core"

// Camera shoots rays from normalized image coordinates through a
// rectangular plane at PlaneDistance in front of the position. The basis
// is right-handed and orthonormal with back = -direction.
type Camera struct {
	Position      core.Vec3
	PlaneWidth    float32
	PlaneHeight   float32
	PlaneDistance float32

	direction core.UnitVec3
	right     core.UnitVec3
	up        core.UnitVec3
	back      core.UnitVec3
}

// NewCamera creates a camera looking along direction with the given
// (not necessarily orthogonal) up hint.
func NewCamera(position, direction, up core.Vec3, planeWidth, planeHeight, planeDistance float32) *Camera {
	c := &Camera{
		Position:      position,
		PlaneWidth:    planeWidth,
		PlaneHeight:   planeHeight,
		PlaneDistance: planeDistance,
	}
	c.LookAt(direction, up)
	return c
}

// LookAt rebuilds the orthonormal basis from a view direction and an up
// hint: back = -direction, right = up x back, up = back x right.
func (c *Camera) LookAt(direction, up core.Vec3) {
	c.direction = direction.Unit()
	c.back = c.direction.Negate()
	c.right = up.Unit().Cross(c.back)
	c.up = c.back.Cross(c.right)
}

// Direction returns the view direction.
func (c *Camera) Direction() core.UnitVec3 {
	return c.direction
}

// Right returns the camera-space right axis.
func (c *Camera) Right() core.UnitVec3 {
	return c.right
}

// Up returns the camera-space up axis.
func (c *Camera) Up() core.UnitVec3 {
	return c.up
}

// ShootRay returns the normalized primary ray through plane coordinates
// (u, v); both are in [0,1] when the ray lies inside the image.
func (c *Camera) ShootRay(u, v float32) core.Ray {
	direction := c.direction.Vec().Multiply(c.PlaneDistance).
		Add(c.right.Vec().Multiply((u - 0.5) * c.PlaneWidth)).
		Add(c.up.Vec().Multiply((v - 0.5) * c.PlaneHeight))
	return core.NewRay(c.Position, direction.Unit())
}
