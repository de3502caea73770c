// Package renderer tiles the image, drives the integrator for every
// pixel and post-processes the floating-point buffer into an 8-bit image.
package renderer

import (
	"image"
	"image/color"

	"github.com/xaanimus/xsray/pkg/core"
	"github.com/xaanimus/xsray/pkg/sampler"
	"github.com/xaanimus/xsray/pkg/scene"
)

// Integrator estimates radiance for an image-plane point.
type Integrator interface {
	// EstimatePixel returns the averaged radiance for the pixel whose
	// center maps to (u, v); pixelSize is one pixel's extent in plane
	// units and smp the pixel's deterministic sample stream.
	EstimatePixel(scn *scene.Scene, u, v, pixelSize float32, smp sampler.Sampler) core.Color3
}

// Settings controls image dimensions, post-processing and parallelism.
type Settings struct {
	Width    int
	Height   int
	Exposure float32
	Gamma    float32
	TileSize int
	// Workers is the number of parallel tile workers; 0 auto-detects
	// the CPU count and 1 renders sequentially.
	Workers int
}

// DefaultGamma is applied when the scene description leaves gamma unset.
const DefaultGamma float32 = 2.2

// DefaultTileSize is the tile edge used to partition the image.
const DefaultTileSize = 8

// RenderStats summarizes a finished render.
type RenderStats struct {
	TotalPixels  int
	TotalSamples int
}

// Renderer renders a read-only scene with a fixed sample budget.
type Renderer struct {
	scene      *scene.Scene
	integrator Integrator
	settings   Settings
	base       *sampler.NumberSequenceSampler
	samples    int
	logger     core.Logger
}

// New creates a renderer. base provides the pre-generated number
// sequence; every pixel gets its own cursor over the shared sequence,
// seeded by pixel index. samplesPerPixel is used only for statistics.
func New(scn *scene.Scene, integrator Integrator, settings Settings,
	base *sampler.NumberSequenceSampler, samplesPerPixel int, logger core.Logger) *Renderer {

	if settings.TileSize <= 0 {
		settings.TileSize = DefaultTileSize
	}
	if settings.Gamma <= 0 {
		settings.Gamma = DefaultGamma
	}
	if logger == nil {
		logger = core.SilentLogger{}
	}
	return &Renderer{
		scene:      scn,
		integrator: integrator,
		settings:   settings,
		base:       base,
		samples:    samplesPerPixel,
		logger:     logger,
	}
}

// SetWorkers overrides the worker count before rendering.
func (r *Renderer) SetWorkers(workers int) {
	r.settings.Workers = workers
}

// Settings returns the renderer's effective settings.
func (r *Renderer) Settings() Settings {
	return r.settings
}

// Render fills and returns the linear RGB float buffer, one Color3 per
// pixel in row-major order.
func (r *Renderer) Render() ([]core.Color3, RenderStats) {
	width := r.settings.Width
	height := r.settings.Height
	buffer := make([]core.Color3, width*height)

	tiles := tileBounds(width, height, r.settings.TileSize)
	workers := r.settings.Workers
	if workers == 1 || len(tiles) == 1 {
		for _, tile := range tiles {
			r.renderTile(tile, buffer)
		}
	} else {
		pool := newWorkerPool(r, workers)
		pool.run(tiles, buffer)
	}

	return buffer, RenderStats{
		TotalPixels:  width * height,
		TotalSamples: width * height * r.samples,
	}
}

// renderTile renders every pixel inside the bounds into the shared
// buffer. Tiles never overlap, so concurrent workers need no locking.
func (r *Renderer) renderTile(bounds image.Rectangle, buffer []core.Color3) {
	width := r.settings.Width
	height := r.settings.Height
	pixelSize := 1 / float32(width)

	smp := r.base.ResetCopy()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			// The divisor is the width on both axes, preserving square
			// pixels; v runs bottom-up.
			u := (float32(x) + 0.5) / float32(width)
			v := (float32(height-1-y) + 0.5) / float32(width)

			smp.SeedIndex(y*width + x)
			buffer[y*width+x] = r.integrator.EstimatePixel(r.scene, u, v, pixelSize, smp)
		}
	}
}

// tileBounds partitions the image into tileSize x tileSize rectangles,
// with partial tiles at the right and bottom edges.
func tileBounds(width, height, tileSize int) []image.Rectangle {
	var tiles []image.Rectangle
	for y := 0; y < height; y += tileSize {
		for x := 0; x < width; x += tileSize {
			tiles = append(tiles, image.Rect(
				x, y,
				min(x+tileSize, width),
				min(y+tileSize, height),
			))
		}
	}
	return tiles
}

// ToImage applies exposure and gamma to the float buffer and quantizes
// it into an 8-bit RGBA image for the image writer.
func ToImage(buffer []core.Color3, settings Settings) *image.RGBA {
	gamma := settings.Gamma
	if gamma <= 0 {
		gamma = DefaultGamma
	}
	exposure := settings.Exposure
	if exposure == 0 {
		exposure = 1
	}

	img := image.NewRGBA(image.Rect(0, 0, settings.Width, settings.Height))
	for y := 0; y < settings.Height; y++ {
		for x := 0; x < settings.Width; x++ {
			linear := buffer[y*settings.Width+x].Multiply(exposure)
			img.SetRGBA(x, y, color.RGBA{
				R: quantize(linear.X, gamma),
				G: quantize(linear.Y, gamma),
				B: quantize(linear.Z, gamma),
				A: 255,
			})
		}
	}
	return img
}

// quantize gamma-corrects one channel, clips it to [0,1] and scales to
// 8 bits.
func quantize(value, gamma float32) uint8 {
	corrected := core.Pow(max(value, 0), 1/gamma)
	clipped := min(max(corrected, 0), 1)
	return uint8(clipped * 255)
}
