// Package loaders reads scene descriptions and mesh files and assembles
// the render-time scene.
package loaders

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/xaanimus/xsray/pkg/bvh"
	"github.com/xaanimus/xsray/pkg/core"
	"github.com/xaanimus/xsray/pkg/geometry"
	"github.com/xaanimus/xsray/pkg/integrator"
	"github.com/xaanimus/xsray/pkg/material"
	"github.com/xaanimus/xsray/pkg/renderer"
	"github.com/xaanimus/xsray/pkg/sampler"
	"github.com/xaanimus/xsray/pkg/scene"
)

// SceneSpec mirrors the on-disk scene description. YAML and JSON encode
// the same structure; the file extension selects the decoder.
type SceneSpec struct {
	Background []float32            `yaml:"background" json:"background"`
	Camera     CameraSpec           `yaml:"camera" json:"camera"`
	Materials  map[string]MaterialSpec `yaml:"materials" json:"materials"`
	Meshes     []MeshSpec           `yaml:"meshes" json:"meshes"`
	Lights     []LightSpec          `yaml:"lights" json:"lights"`
	Renderer   RendererSpec         `yaml:"renderer" json:"renderer"`
	Integrator IntegratorSpec       `yaml:"integrator" json:"integrator"`
	BVH        BVHSpec              `yaml:"bvh" json:"bvh"`
}

// CameraSpec describes the camera. PlaneHeight may be omitted; it then
// defaults to PlaneWidth divided by the image aspect ratio.
type CameraSpec struct {
	Position      []float32 `yaml:"position" json:"position"`
	Direction     []float32 `yaml:"direction" json:"direction"`
	Up            []float32 `yaml:"up" json:"up"`
	PlaneWidth    float32   `yaml:"plane_width" json:"plane_width"`
	PlaneHeight   float32   `yaml:"plane_height" json:"plane_height"`
	PlaneDistance float32   `yaml:"plane_distance" json:"plane_distance"`
}

// MaterialSpec describes one named material.
type MaterialSpec struct {
	Kind      string    `yaml:"kind" json:"kind"`
	Color     []float32 `yaml:"color" json:"color"`
	IOR       float32   `yaml:"ior" json:"ior"`
	Roughness float32   `yaml:"roughness" json:"roughness"`
}

// MeshSpec references a mesh file and the material it is shaded with.
type MeshSpec struct {
	Src      string `yaml:"src" json:"src"`
	Material string `yaml:"material" json:"material"`
}

// LightSpec describes one point light.
type LightSpec struct {
	Position  []float32 `yaml:"position" json:"position"`
	Intensity float32   `yaml:"intensity" json:"intensity"`
}

// RendererSpec holds image dimensions and post-processing parameters.
type RendererSpec struct {
	Width    int     `yaml:"width" json:"width"`
	Height   int     `yaml:"height" json:"height"`
	Exposure float32 `yaml:"exposure" json:"exposure"`
	Gamma    float32 `yaml:"gamma" json:"gamma"`
}

// IntegratorSpec selects and parameterizes the integrator.
type IntegratorSpec struct {
	Kind            string      `yaml:"kind" json:"kind"`
	MaxBounces      int         `yaml:"max_bounces" json:"max_bounces"`
	SamplesPerPixel int         `yaml:"samples_per_pixel" json:"samples_per_pixel"`
	ShadeShadowRays bool        `yaml:"shade_shadow_rays" json:"shade_shadow_rays"`
	Sampler         SamplerSpec `yaml:"sampler" json:"sampler"`
}

// SamplerSpec selects the number source feeding the per-pixel sequence.
type SamplerSpec struct {
	Kind           string `yaml:"kind" json:"kind"`
	BaseX          uint32 `yaml:"base_x" json:"base_x"`
	BaseY          uint32 `yaml:"base_y" json:"base_y"`
	SequenceLength int    `yaml:"sequence_length" json:"sequence_length"`
}

// BVHSpec selects the split strategy used when building the hierarchy.
type BVHSpec struct {
	Splitter string `yaml:"splitter" json:"splitter"`
}

// LoadSceneSpec reads and decodes a scene description file. Extensions
// .yaml and .yml use the YAML decoder; .json uses encoding/json.
func LoadSceneSpec(path string) (*SceneSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scene file: %w", err)
	}

	spec := &SceneSpec{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		if err := json.Unmarshal(data, spec); err != nil {
			return nil, fmt.Errorf("parse scene json: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, spec); err != nil {
			return nil, fmt.Errorf("parse scene yaml: %w", err)
		}
	}

	if err := spec.validate(); err != nil {
		return nil, err
	}
	return spec, nil
}

func (s *SceneSpec) validate() error {
	if s.Renderer.Width <= 0 || s.Renderer.Height <= 0 {
		return fmt.Errorf("renderer dimensions must be positive, got %dx%d", s.Renderer.Width, s.Renderer.Height)
	}
	if s.Integrator.Kind != "" && s.Integrator.Kind != "path-tracer" {
		return fmt.Errorf("unknown integrator kind %q", s.Integrator.Kind)
	}
	if s.Integrator.MaxBounces < 0 {
		return fmt.Errorf("max_bounces must not be negative, got %d", s.Integrator.MaxBounces)
	}
	if s.Integrator.SamplesPerPixel <= 0 {
		return fmt.Errorf("samples_per_pixel must be positive, got %d", s.Integrator.SamplesPerPixel)
	}
	if s.Camera.PlaneWidth <= 0 || s.Camera.PlaneDistance <= 0 {
		return fmt.Errorf("camera plane_width and plane_distance must be positive")
	}
	for name, mat := range s.Materials {
		switch mat.Kind {
		case "diffuse", "microfacet":
		default:
			return fmt.Errorf("material %q has unknown kind %q", name, mat.Kind)
		}
	}
	switch s.BVH.Splitter {
	case "", "sah", "median":
	default:
		return fmt.Errorf("unknown bvh splitter %q", s.BVH.Splitter)
	}
	return nil
}

// vec3From converts a 3-element float slice, defaulting missing input to
// the zero vector.
func vec3From(values []float32, what string) (core.Vec3, error) {
	if values == nil {
		return core.Vec3{}, nil
	}
	if len(values) != 3 {
		return core.Vec3{}, fmt.Errorf("%s needs 3 components, got %d", what, len(values))
	}
	return core.NewVec3(values[0], values[1], values[2]), nil
}

// Build assembles the render-time objects from a validated description.
// Mesh paths resolve relative to baseDir. All construction errors halt
// the build; nothing is rendered on a malformed description.
func Build(spec *SceneSpec, baseDir string, logger core.Logger) (*scene.Scene, *renderer.Renderer, error) {
	materials := make(map[string]material.Material, len(spec.Materials))
	for name, m := range spec.Materials {
		color, err := vec3From(m.Color, "material color")
		if err != nil {
			return nil, nil, fmt.Errorf("material %q: %w", name, err)
		}
		switch m.Kind {
		case "diffuse":
			materials[name] = material.NewDiffuse(color)
		case "microfacet":
			materials[name] = material.NewMicrofacet(color, m.IOR, m.Roughness)
		}
	}

	var triangles []*geometry.Triangle
	for _, meshSpec := range spec.Meshes {
		mat, ok := materials[meshSpec.Material]
		if !ok {
			return nil, nil, fmt.Errorf("mesh %q references unknown material %q", meshSpec.Src, meshSpec.Material)
		}
		mesh, err := LoadMesh(filepath.Join(baseDir, meshSpec.Src))
		if err != nil {
			return nil, nil, fmt.Errorf("mesh %q: %w", meshSpec.Src, err)
		}
		tris, err := geometry.BuildTriangles(mesh, mat)
		if err != nil {
			return nil, nil, fmt.Errorf("mesh %q: %w", meshSpec.Src, err)
		}
		triangles = append(triangles, tris...)
	}

	lights := make([]scene.PointLight, 0, len(spec.Lights))
	for i, l := range spec.Lights {
		position, err := vec3From(l.Position, "light position")
		if err != nil {
			return nil, nil, fmt.Errorf("light %d: %w", i, err)
		}
		lights = append(lights, scene.PointLight{Position: position, Intensity: l.Intensity})
	}

	camera, err := buildCamera(spec)
	if err != nil {
		return nil, nil, err
	}

	background, err := vec3From(spec.Background, "background")
	if err != nil {
		return nil, nil, err
	}

	var splitter bvh.Splitter
	if spec.BVH.Splitter == "median" {
		splitter = bvh.MedianSplitter{}
	} else {
		splitter = bvh.NewSAHSplitter()
	}

	world := scene.New(camera, triangles, lights, materials, background, splitter)
	if logger != nil {
		stats := world.BVH().CollectStats()
		logger.Printf("scene: %d triangles, bvh: %d nodes (%d leaves, max depth %d, avg %.1f tris/leaf)",
			len(triangles), stats.TotalNodes, stats.LeafNodes, stats.MaxDepth, stats.AvgLeafSize)
	}

	base, err := buildPixelSampler(spec.Integrator)
	if err != nil {
		return nil, nil, err
	}

	pathTracer := integrator.NewPathTracer(spec.Integrator.MaxBounces, spec.Integrator.SamplesPerPixel, logger)
	pathTracer.ShadeShadowRays = spec.Integrator.ShadeShadowRays

	settings := renderer.Settings{
		Width:    spec.Renderer.Width,
		Height:   spec.Renderer.Height,
		Exposure: spec.Renderer.Exposure,
		Gamma:    spec.Renderer.Gamma,
	}
	r := renderer.New(world, pathTracer, settings, base, spec.Integrator.SamplesPerPixel, logger)
	return world, r, nil
}

func buildCamera(spec *SceneSpec) (*scene.Camera, error) {
	position, err := vec3From(spec.Camera.Position, "camera position")
	if err != nil {
		return nil, err
	}
	direction, err := vec3From(spec.Camera.Direction, "camera direction")
	if err != nil {
		return nil, err
	}
	up, err := vec3From(spec.Camera.Up, "camera up")
	if err != nil {
		return nil, err
	}
	if direction.IsZero() {
		return nil, fmt.Errorf("camera direction must be set")
	}
	if up.IsZero() {
		up = core.NewVec3(0, 1, 0)
	}

	planeHeight := spec.Camera.PlaneHeight
	if planeHeight <= 0 {
		aspect := float32(spec.Renderer.Width) / float32(spec.Renderer.Height)
		planeHeight = spec.Camera.PlaneWidth / aspect
	}
	return scene.NewCamera(position, direction, up,
		spec.Camera.PlaneWidth, planeHeight, spec.Camera.PlaneDistance), nil
}

// buildPixelSampler materializes the per-pixel number sequence from the
// configured source sampler.
func buildPixelSampler(spec IntegratorSpec) (*sampler.NumberSequenceSampler, error) {
	var source sampler.Sampler
	switch spec.Sampler.Kind {
	case "", "pseudorandom":
		source = sampler.NewPseudorandomSampler(1)
	case "halton":
		halton, err := sampler.NewHaltonSampler(spec.Sampler.BaseX, spec.Sampler.BaseY)
		if err != nil {
			return nil, err
		}
		source = halton
	default:
		return nil, fmt.Errorf("unknown sampler kind %q", spec.Sampler.Kind)
	}

	length := spec.Sampler.SequenceLength
	if length <= 0 {
		// Enough pairs that one pixel's draws do not wrap mid-sample.
		length = spec.SamplesPerPixel * (2*spec.MaxBounces + 8)
	}
	return sampler.NewNumberSequenceSampler(source, length), nil
}
