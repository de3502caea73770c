// Package integrator implements the unidirectional path tracer that
// drives the sampler, materials and light connection.
package integrator

import (
	"sync"

	"github.com/xaanimus/xsray/pkg/core"
	"github.com/xaanimus/xsray/pkg/material"
	"github.com/xaanimus/xsray/pkg/sampler"
	"github.com/xaanimus/xsray/pkg/scene"
)

// PathTracer estimates pixel radiance by tracing paths of material
// bounces and connecting the last vertex to a sampled light.
type PathTracer struct {
	MaxBounces      int
	SamplesPerPixel int
	// ShadeShadowRays is accepted for scene compatibility but not
	// implemented; enabling it logs a warning once and does nothing.
	ShadeShadowRays bool

	logger   core.Logger
	warnOnce sync.Once
}

// NewPathTracer creates a path tracer with the given bounce and sample
// limits.
func NewPathTracer(maxBounces, samplesPerPixel int, logger core.Logger) *PathTracer {
	if logger == nil {
		logger = core.SilentLogger{}
	}
	return &PathTracer{
		MaxBounces:      maxBounces,
		SamplesPerPixel: samplesPerPixel,
		logger:          logger,
	}
}

// pathVertex is one surface interaction along a path.
type pathVertex struct {
	position core.Vec3
	normal   core.UnitVec3
	mat      material.Material
	outgoing core.UnitVec3 // toward the previous vertex (or camera)
	incoming core.UnitVec3 // sampled direction to the next vertex
	pdf      float32
}

// EstimatePixel averages SamplesPerPixel path samples for the pixel whose
// center maps to plane coordinates (u, v). pixelSize is the extent of one
// pixel in plane units, used to jitter within the pixel footprint. The
// sampler provides the pixel's deterministic number stream.
func (pt *PathTracer) EstimatePixel(scn *scene.Scene, u, v, pixelSize float32, smp sampler.Sampler) core.Color3 {
	if pt.ShadeShadowRays {
		pt.warnOnce.Do(func() {
			pt.logger.Printf("shade_shadow_rays is not implemented; ignoring")
		})
	}

	sum := core.Color3{}
	for i := 0; i < pt.SamplesPerPixel; i++ {
		ju, jv := smp.Get2D()
		sampleU := u + (ju-0.5)*pixelSize
		sampleV := v + (jv-0.5)*pixelSize

		bounces := smp.GetIndex(pt.MaxBounces + 1)
		vertices, escaped := pt.tracePath(scn, sampleU, sampleV, bounces, smp)

		var contribution core.Color3
		if len(vertices) == 0 && escaped {
			contribution = scn.Background
		} else {
			contribution = pt.shadePath(scn, vertices, smp)
		}
		sum = sum.Add(sanitize(contribution))
	}
	return sum.Divide(float32(pt.SamplesPerPixel))
}

// tracePath walks up to bounces+1 surface interactions starting from the
// primary ray through (u, v). It reports whether the path left the scene
// on its first segment (so the caller can use the background color).
func (pt *PathTracer) tracePath(scn *scene.Scene, u, v float32, bounces int, smp sampler.Sampler) ([]pathVertex, bool) {
	ray := scn.Camera.ShootRay(u, v)

	vertices := make([]pathVertex, 0, bounces+1)
	for i := 0; i <= bounces; i++ {
		record := scn.Intersect(ray)
		if !record.Intersected() {
			return vertices, len(vertices) == 0
		}

		outgoing := ray.Direction.Negate()
		result := record.Material.Sample(record.Normal, outgoing, smp)
		vertices = append(vertices, pathVertex{
			position: record.Position,
			normal:   record.Normal,
			mat:      record.Material,
			outgoing: outgoing,
			incoming: result.Incoming,
			pdf:      result.PDF,
		})

		ray = core.NewShadowRay(record.Position, result.Incoming)
	}
	return vertices, false
}

// shadePath connects the last vertex of the path to a uniformly sampled
// light and accumulates throughput along the vertices: brdf·cos/pdf at
// every vertex except the last, brdf·cos toward the light at the last,
// then the light's intensity over squared distance.
func (pt *PathTracer) shadePath(scn *scene.Scene, vertices []pathVertex, smp sampler.Sampler) core.Color3 {
	if len(vertices) == 0 || len(scn.Lights) == 0 {
		return core.Color3{}
	}

	light := scn.Lights[smp.GetIndex(len(scn.Lights))]
	last := vertices[len(vertices)-1]
	if scn.IntersectObstruction(last.position, light.Position) {
		return core.Color3{}
	}

	throughput := core.NewVec3(1, 1, 1)
	for _, vertex := range vertices[:len(vertices)-1] {
		if vertex.pdf <= 0 {
			return core.Color3{}
		}
		weight := vertex.mat.BRDFCos(vertex.normal, vertex.incoming, vertex.outgoing)
		throughput = throughput.MultiplyVec(weight).Divide(vertex.pdf)
	}

	toLight := light.Position.Subtract(last.position)
	distanceSquared := toLight.LengthSquared()
	if distanceSquared <= 0 {
		return core.Color3{}
	}
	connection := last.mat.BRDFCos(last.normal, toLight.Unit(), last.outgoing)
	throughput = throughput.MultiplyVec(connection)

	// The light was picked with probability 1/len(lights).
	scale := float32(len(scn.Lights)) * light.Intensity / distanceSquared
	return throughput.Multiply(scale)
}

// sanitize clamps NaN or otherwise non-finite contributions to zero so a
// pathological sample darkens a pixel instead of aborting the render.
func sanitize(color core.Color3) core.Color3 {
	if !color.IsFinite() {
		return core.Color3{}
	}
	return color.Max(core.Color3{})
}
