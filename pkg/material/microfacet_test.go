package material

import (
	"testing"

	"github.com/xaanimus/xsray/pkg/core"
	"github.com/xaanimus/xsray/pkg/sampler"
)

func TestMicrofacet_SamplePDFSelfConsistent(t *testing.T) {
	mat := NewMicrofacet(core.NewVec3(0.9, 0.8, 0.7), 1.5, 0.3)
	normal := core.NewVec3(0, 1, 0).Unit()
	outgoing := core.NewVec3(0.3, 1, 0.1).Unit()
	smp := sampler.NewPseudorandomSampler(53)

	for i := 0; i < 1000; i++ {
		result := mat.Sample(normal, outgoing, smp)
		pdf := mat.PDF(normal, result.Incoming, outgoing)
		if !core.ApproxEqual(pdf, result.PDF, 1e-3*max(pdf, 1)) {
			t.Fatalf("draw %d: PDF = %v, sample reported %v", i, pdf, result.PDF)
		}
		if pdf < 0 {
			t.Fatalf("draw %d: negative pdf %v", i, pdf)
		}
	}
}

func TestMicrofacet_MirrorReflectionForSmoothSurface(t *testing.T) {
	// With vanishing roughness the sampled half-vector is the normal,
	// so sampling reduces to mirror reflection.
	mat := NewMicrofacet(core.NewVec3(1, 1, 1), 1.5, 1e-5)
	normal := core.NewVec3(0, 1, 0).Unit()
	outgoing := core.NewVec3(1, 1, 0).Unit()
	smp := sampler.NewPseudorandomSampler(59)

	mirrored := core.NewVec3(-1, 1, 0).Unit()
	for i := 0; i < 100; i++ {
		result := mat.Sample(normal, outgoing, smp)
		if !result.Incoming.Vec().ApproxEqual(mirrored.Vec(), 1e-2) {
			t.Fatalf("draw %d: incoming = %v, want mirror %v", i, result.Incoming, mirrored)
		}
	}
}

func TestMicrofacet_BRDFCosNonNegative(t *testing.T) {
	mat := NewMicrofacet(core.NewVec3(0.9, 0.6, 0.4), 1.8, 0.4)
	normal := core.NewVec3(0, 1, 0).Unit()
	outgoing := core.NewVec3(0.4, 1, -0.3).Unit()
	smp := sampler.NewPseudorandomSampler(61)

	sphere := sampler.UniformSphereWarper{}
	for i := 0; i < 10000; i++ {
		incoming := sampler.SampleDirection(sphere, smp).Unit()
		got := mat.BRDFCos(normal, incoming, outgoing)
		if got.X < 0 || got.Y < 0 || got.Z < 0 {
			t.Fatalf("BRDFCos = %v has a negative channel", got)
		}
		if !got.IsFinite() {
			t.Fatalf("BRDFCos = %v is not finite", got)
		}
	}
}

func TestMicrofacet_WrongSideIsZero(t *testing.T) {
	mat := NewMicrofacet(core.NewVec3(1, 1, 1), 1.5, 0.2)
	normal := core.NewVec3(0, 1, 0).Unit()

	tests := []struct {
		name     string
		incoming core.UnitVec3
		outgoing core.UnitVec3
	}{
		{
			name:     "incoming below surface",
			incoming: core.NewVec3(0, -1, 0).Unit(),
			outgoing: core.NewVec3(0, 1, 0).Unit(),
		},
		{
			name:     "outgoing below surface",
			incoming: core.NewVec3(0, 1, 0).Unit(),
			outgoing: core.NewVec3(0.2, -1, 0).Unit(),
		},
		{
			name:     "grazing outgoing",
			incoming: core.NewVec3(0, 1, 0).Unit(),
			outgoing: core.NewVec3(1, 0, 0).Unit(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mat.BRDFCos(normal, tt.incoming, tt.outgoing)
			if !got.IsZero() {
				t.Errorf("BRDFCos = %v, want zero", got)
			}
		})
	}
}

func TestFresnelAtNormal(t *testing.T) {
	// Glass at n = 1.5 reflects four percent at normal incidence.
	if got := fresnelAtNormal(1.5); !core.ApproxEqual(got, 0.04, 1e-6) {
		t.Errorf("fresnelAtNormal(1.5) = %v, want 0.04", got)
	}
}

func TestGGXGeometry_BackfacingIsZero(t *testing.T) {
	normal := core.NewVec3(0, 1, 0).Unit()
	outgoing := core.NewVec3(0.2, 1, 0).Unit()
	// Half-vector on the opposite side of the outgoing direction.
	half := core.NewVec3(-0.9, 0.1, 0).Unit()

	if got := ggxGeometry(outgoing, half, normal, 0.3); got != 0 {
		t.Errorf("geometry term = %v, want 0 for backfacing half-vector", got)
	}
}
