package material

import (
	"math"

	"github.com/xaanimus/xsray/pkg/core"
	"github.com/xaanimus/xsray/pkg/sampler"
)

// Diffuse is a Lambertian surface with a single albedo color.
type Diffuse struct {
	Albedo core.Color3

	warper sampler.CosineHemisphereWarper
}

// NewDiffuse creates a diffuse material.
func NewDiffuse(albedo core.Color3) *Diffuse {
	return &Diffuse{Albedo: albedo}
}

// Sample draws a cosine-distributed direction around the normal.
func (d *Diffuse) Sample(normal, outgoing core.UnitVec3, s sampler.Sampler) SampleResult {
	local := sampler.SampleDirection(d.warper, s)
	incoming := core.TransformIntoFrame(normal, local)
	return SampleResult{
		Incoming: incoming,
		PDF:      d.PDF(normal, incoming, outgoing),
	}
}

// PDF returns cosθ/π in the frame of the normal.
func (d *Diffuse) PDF(normal, incoming, outgoing core.UnitVec3) float32 {
	local := core.TransformFromFrame(normal, incoming.Vec())
	return d.warper.PDF(local.Vec())
}

// BRDFCos returns albedo/π · max(n·wi, 0), or zero when the outgoing
// direction is below the surface.
func (d *Diffuse) BRDFCos(normal, incoming, outgoing core.UnitVec3) core.Color3 {
	if normal.DotUnit(outgoing) <= 0 {
		return core.Color3{}
	}
	cosine := max(normal.DotUnit(incoming), 0)
	return d.Albedo.Multiply(cosine / math.Pi)
}
