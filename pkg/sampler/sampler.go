// Package sampler provides the random and low-discrepancy number sources
// that drive Monte-Carlo integration, plus the warpers that map uniform
// samples onto sampling domains.
package sampler

import (
	"fmt"
	"math/rand"
)

// Sampler produces numbers in [0,1). Implementations are deterministic
// given their construction state, so per-pixel streams are reproducible.
type Sampler interface {
	// Get1D returns the next value in [0,1).
	Get1D() float32
	// Get2D returns the next pair in [0,1)².
	Get2D() (float32, float32)
	// GetIndex returns an integer in [0, limit).
	GetIndex(limit int) int
}

// indexFrom maps a unit sample to an integer in [0, limit).
func indexFrom(u float32, limit int) int {
	i := int(u * float32(limit))
	if i >= limit {
		i = limit - 1
	}
	return i
}

// PseudorandomSampler draws from a math/rand generator owned by one
// worker. It is not safe for concurrent use; give each worker its own.
type PseudorandomSampler struct {
	rng *rand.Rand
}

// NewPseudorandomSampler creates a sampler over a fresh generator.
func NewPseudorandomSampler(seed int64) *PseudorandomSampler {
	return &PseudorandomSampler{rng: rand.New(rand.NewSource(seed))}
}

// Get1D returns the next pseudorandom value in [0,1).
func (s *PseudorandomSampler) Get1D() float32 {
	return s.rng.Float32()
}

// Get2D returns the next pseudorandom pair in [0,1)².
func (s *PseudorandomSampler) Get2D() (float32, float32) {
	return s.rng.Float32(), s.rng.Float32()
}

// GetIndex returns a pseudorandom integer in [0, limit).
func (s *PseudorandomSampler) GetIndex(limit int) int {
	return s.rng.Intn(limit)
}

// HaltonSampler produces the low-discrepancy Halton sequence over a pair
// of bases. Bases must be greater than one and should be coprime so the
// two dimensions do not correlate.
type HaltonSampler struct {
	idx   uint32
	baseX uint32
	baseY uint32
}

// NewHaltonSampler validates the bases and creates a sampler. A base of
// one or less cannot enumerate digits and is rejected.
func NewHaltonSampler(baseX, baseY uint32) (*HaltonSampler, error) {
	if baseX <= 1 || baseY <= 1 {
		return nil, fmt.Errorf("halton base must be greater than 1, got (%d, %d)", baseX, baseY)
	}
	return &HaltonSampler{baseX: baseX, baseY: baseY}, nil
}

// haltonSequence returns element idx of the Halton sequence for a base,
// by mirroring the base-b digits of idx about the radix point.
func haltonSequence(idx, base uint32) float32 {
	f := float32(1)
	r := float32(0)
	for i := idx; i > 0; i /= base {
		f /= float32(base)
		r += f * float32(i%base)
	}
	return r
}

// Get1D returns the next value of the base-x sequence.
func (s *HaltonSampler) Get1D() float32 {
	s.idx++
	return haltonSequence(s.idx, s.baseX)
}

// Get2D returns the next pair: the same index evaluated in both bases.
func (s *HaltonSampler) Get2D() (float32, float32) {
	s.idx++
	return haltonSequence(s.idx, s.baseX), haltonSequence(s.idx, s.baseY)
}

// GetIndex returns an integer in [0, limit) from the base-x sequence.
func (s *HaltonSampler) GetIndex(limit int) int {
	return indexFrom(s.Get1D(), limit)
}

// NumberSequenceSampler cycles through a finite pre-generated sequence of
// pairs. Copies share the backing sequence, so handing every pixel its own
// cursor is cheap; SeedIndex makes the stream deterministic per pixel.
type NumberSequenceSampler struct {
	sequence [][2]float32
	idx      int
}

// NewNumberSequenceSampler materializes n pairs from the source sampler.
func NewNumberSequenceSampler(source Sampler, n int) *NumberSequenceSampler {
	sequence := make([][2]float32, n)
	for i := range sequence {
		u, v := source.Get2D()
		sequence[i] = [2]float32{u, v}
	}
	return &NumberSequenceSampler{sequence: sequence}
}

// SeedIndex positions the cursor deterministically, typically from a
// pixel index.
func (s *NumberSequenceSampler) SeedIndex(seed int) {
	s.idx = seed % len(s.sequence)
}

// Reset rewinds the cursor to the start of the sequence.
func (s *NumberSequenceSampler) Reset() {
	s.idx = 0
}

// ResetCopy returns a new sampler sharing the backing sequence with its
// cursor at zero.
func (s *NumberSequenceSampler) ResetCopy() *NumberSequenceSampler {
	return &NumberSequenceSampler{sequence: s.sequence}
}

// Get1D returns the first component of the next pair.
func (s *NumberSequenceSampler) Get1D() float32 {
	u, _ := s.Get2D()
	return u
}

// Get2D returns the next pair, cycling at the end of the sequence.
func (s *NumberSequenceSampler) Get2D() (float32, float32) {
	s.idx = (s.idx + 1) % len(s.sequence)
	pair := s.sequence[s.idx]
	return pair[0], pair[1]
}

// GetIndex returns an integer in [0, limit).
func (s *NumberSequenceSampler) GetIndex(limit int) int {
	return indexFrom(s.Get1D(), limit)
}
