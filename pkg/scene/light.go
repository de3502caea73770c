package scene

import "github.com/xaanimus/xsray/pkg/core"

// PointLight is an achromatic point light: position and scalar radiant
// intensity. Reflected color comes entirely from the BRDFs it lights.
type PointLight struct {
	Position  core.Vec3
	Intensity float32
}
