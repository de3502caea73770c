package renderer

import (
	"sync"
	"testing"

	"github.com/xaanimus/xsray/pkg/bvh"
	"github.com/xaanimus/xsray/pkg/core"
	"github.com/xaanimus/xsray/pkg/sampler"
	"github.com/xaanimus/xsray/pkg/scene"
)

// recordingIntegrator captures the (u, v) coordinates it is asked to
// shade and returns a fixed color.
type recordingIntegrator struct {
	mu     sync.Mutex
	points [][2]float32
	color  core.Color3
}

func (ri *recordingIntegrator) EstimatePixel(scn *scene.Scene, u, v, pixelSize float32, smp sampler.Sampler) core.Color3 {
	ri.mu.Lock()
	ri.points = append(ri.points, [2]float32{u, v})
	ri.mu.Unlock()
	return ri.color
}

func emptyScene() *scene.Scene {
	camera := scene.NewCamera(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1), core.NewVec3(0, 1, 0), 1, 1, 1)
	return scene.New(camera, nil, nil, nil, core.Color3{}, bvh.NewSAHSplitter())
}

func baseSampler() *sampler.NumberSequenceSampler {
	return sampler.NewNumberSequenceSampler(sampler.NewPseudorandomSampler(1), 64)
}

func TestRenderer_PixelToUVMapping(t *testing.T) {
	integ := &recordingIntegrator{color: core.NewVec3(1, 0, 0)}
	settings := Settings{Width: 4, Height: 2, Workers: 1}
	r := New(emptyScene(), integ, settings, baseSampler(), 1, nil)

	buffer, stats := r.Render()
	if stats.TotalPixels != 8 {
		t.Errorf("TotalPixels = %d, want 8", stats.TotalPixels)
	}
	if len(buffer) != 8 {
		t.Fatalf("buffer length = %d, want 8", len(buffer))
	}

	// Every pixel was shaded exactly once.
	if len(integ.points) != 8 {
		t.Fatalf("integrator called %d times, want 8", len(integ.points))
	}

	// Both axes divide by the width, so v steps match u steps and the
	// top row has the largest v.
	seen := make(map[[2]float32]bool)
	for _, p := range integ.points {
		seen[p] = true
	}
	expected := [][2]float32{
		{0.125, 0.375}, // pixel (0,0): top-left
		{0.875, 0.375}, // pixel (3,0)
		{0.125, 0.125}, // pixel (0,1): bottom-left
		{0.875, 0.125}, // pixel (3,1)
	}
	for _, want := range expected {
		if !seen[want] {
			t.Errorf("uv %v never shaded; got %v", want, integ.points)
		}
	}
}

func TestRenderer_TilesCoverImageOnce(t *testing.T) {
	// Dimensions that do not divide evenly by the tile size exercise
	// the partial edge tiles.
	integ := &recordingIntegrator{color: core.NewVec3(0.5, 0.5, 0.5)}
	settings := Settings{Width: 19, Height: 11, Workers: 1}
	r := New(emptyScene(), integ, settings, baseSampler(), 1, nil)

	buffer, _ := r.Render()
	if len(integ.points) != 19*11 {
		t.Errorf("integrator called %d times, want %d", len(integ.points), 19*11)
	}
	for i, c := range buffer {
		if c != integ.color {
			t.Fatalf("pixel %d = %v, want %v", i, c, integ.color)
		}
	}
}

func TestRenderer_ParallelMatchesSequential(t *testing.T) {
	// The per-pixel sampler streams are seeded by pixel index, so the
	// worker count must not change the image.
	sequential := &recordingIntegrator{color: core.NewVec3(0.25, 0.5, 0.75)}
	r1 := New(emptyScene(), sequential, Settings{Width: 16, Height: 16, Workers: 1}, baseSampler(), 1, nil)
	buf1, _ := r1.Render()

	parallel := &recordingIntegrator{color: core.NewVec3(0.25, 0.5, 0.75)}
	r2 := New(emptyScene(), parallel, Settings{Width: 16, Height: 16, Workers: 4}, baseSampler(), 1, nil)
	buf2, _ := r2.Render()

	for i := range buf1 {
		if buf1[i] != buf2[i] {
			t.Fatalf("pixel %d differs between worker counts", i)
		}
	}
}

func TestTileBounds(t *testing.T) {
	tiles := tileBounds(20, 10, 8)

	covered := make([][]int, 10)
	for y := range covered {
		covered[y] = make([]int, 20)
	}
	for _, tile := range tiles {
		for y := tile.Min.Y; y < tile.Max.Y; y++ {
			for x := tile.Min.X; x < tile.Max.X; x++ {
				covered[y][x]++
			}
		}
	}
	for y := range covered {
		for x := range covered[y] {
			if covered[y][x] != 1 {
				t.Fatalf("pixel (%d,%d) covered %d times", x, y, covered[y][x])
			}
		}
	}
}

func TestToImage_ExposureAndGamma(t *testing.T) {
	buffer := []core.Color3{core.NewVec3(0.25, 1, 4)}
	settings := Settings{Width: 1, Height: 1, Exposure: 2, Gamma: 2}

	img := ToImage(buffer, settings)
	pixel := img.RGBAAt(0, 0)

	// 0.25 * 2 = 0.5, sqrt(0.5) ≈ 0.7071 → 180.
	if pixel.R != 180 {
		t.Errorf("R = %d, want 180", pixel.R)
	}
	// Values above one clip to 255.
	if pixel.G != 255 || pixel.B != 255 {
		t.Errorf("G,B = %d,%d, want 255,255", pixel.G, pixel.B)
	}
	if pixel.A != 255 {
		t.Errorf("A = %d, want 255", pixel.A)
	}
}

func TestToImage_NegativeClampsToBlack(t *testing.T) {
	buffer := []core.Color3{core.NewVec3(-1, -0.5, 0)}
	settings := Settings{Width: 1, Height: 1, Exposure: 1, Gamma: 2.2}

	img := ToImage(buffer, settings)
	pixel := img.RGBAAt(0, 0)
	if pixel.R != 0 || pixel.G != 0 || pixel.B != 0 {
		t.Errorf("pixel = %v, want black", pixel)
	}
}
