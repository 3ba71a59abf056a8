package sampler

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"

	"github.com/gogpu/sampler/kernel"
)

// Resource is a GPU-side object attached to a ShaderObj, typically the
// uploaded LUT texture. The engine destroys an attached resource when the
// LUT it was built from goes stale.
type Resource interface {
	Destroy()
}

// LUTLayout identifies how a ShaderObj's weights are laid out.
type LUTLayout uint8

const (
	// LUTEmpty is the layout of an unpopulated slot.
	LUTEmpty LUTLayout = iota

	// LUTRadial is a 1D radial profile, used by polar filters.
	LUTRadial

	// LUTPhase is a rows-by-taps phase matrix packed four weights per
	// texel, used by separable filters.
	LUTPhase
)

// ShaderObj is a caller-owned cache slot for one materialized filter LUT.
// The zero value is an empty slot ready for use. The filter engines
// populate it lazily and repopulate it whenever the requested
// configuration fingerprint differs from the stored one; a stale slot's
// attached GPU resource is destroyed before the weights are replaced.
//
// A ShaderObj is not safe for concurrent use. Callers serialize access to
// a slot and use one slot per (filter configuration, scaling ratio)
// combination in flight; sharing a slot across configurations forces a
// rebuild on every call.
type ShaderObj struct {
	layout      LUTLayout
	fingerprint uint64
	weights     []float32

	entries int // radial samples, or phase rows
	taps    int // phase taps per row
	stride  int // phase taps padded to a multiple of 4

	radius float64
	cutoff float64

	builds   int
	resource Resource
}

// lutData is one materialized LUT, produced by the build callback of
// ensure.
type lutData struct {
	layout  LUTLayout
	weights []float32
	entries int
	taps    int
	stride  int
	radius  float64
	cutoff  float64
}

// ensure repopulates the slot when the requested fingerprint differs from
// the stored one. build materializes the weights for the request; it runs
// only on a rebuild. Reports whether a rebuild happened.
func (s *ShaderObj) ensure(fp uint64, build func() lutData) bool {
	if s.layout != LUTEmpty && s.fingerprint == fp {
		return false
	}
	d := build()
	if s.resource != nil {
		s.resource.Destroy()
		s.resource = nil
	}
	s.layout = d.layout
	s.weights = d.weights
	s.entries = d.entries
	s.taps = d.taps
	s.stride = d.stride
	s.radius = d.radius
	s.cutoff = d.cutoff
	s.fingerprint = fp
	s.builds++
	return true
}

// Destroy releases the attached GPU resource, if any, and empties the
// slot. The build counter survives so instrumentation can span the full
// slot lifetime. Safe to call on an empty slot.
func (s *ShaderObj) Destroy() {
	if s.resource != nil {
		s.resource.Destroy()
		s.resource = nil
	}
	s.layout = LUTEmpty
	s.fingerprint = 0
	s.weights = nil
	s.entries = 0
	s.taps = 0
	s.stride = 0
	s.radius = 0
	s.cutoff = 0
}

// Empty reports whether the slot holds no LUT.
func (s *ShaderObj) Empty() bool { return s.layout == LUTEmpty }

// Layout reports how the weights are laid out.
func (s *ShaderObj) Layout() LUTLayout { return s.layout }

// Fingerprint returns the configuration fingerprint the stored LUT was
// built from, or 0 for an empty slot.
func (s *ShaderObj) Fingerprint() uint64 { return s.fingerprint }

// Weights returns the materialized weights: the radial profile for
// LUTRadial, or rows of stride padded taps for LUTPhase. The slice is the
// slot's backing store; callers must not modify it.
func (s *ShaderObj) Weights() []float32 { return s.weights }

// Resolution reports the LUT precision: radial sample count, or phase row
// count.
func (s *ShaderObj) Resolution() int { return s.entries }

// Rows reports the phase row count, or 0 for a radial LUT.
func (s *ShaderObj) Rows() int {
	if s.layout != LUTPhase {
		return 0
	}
	return s.entries
}

// Taps reports the taps per phase row, or 0 for a radial LUT.
func (s *ShaderObj) Taps() int { return s.taps }

// Stride reports the padded taps per phase row, or 0 for a radial LUT.
func (s *ShaderObj) Stride() int { return s.stride }

// Radius reports the support radius in source texels the LUT spans.
func (s *ShaderObj) Radius() float64 { return s.radius }

// CutoffRadius reports the radius beyond which the stored weights fall
// below the cutoff threshold. Equals Radius for phase LUTs.
func (s *ShaderObj) CutoffRadius() float64 { return s.cutoff }

// Builds reports how many times this slot's LUT has been (re)built.
func (s *ShaderObj) Builds() int { return s.builds }

// Resource returns the attached GPU resource, or nil.
func (s *ShaderObj) Resource() Resource { return s.resource }

// SetResource attaches a GPU resource to the slot, destroying any
// previously attached one. Called by the upload layer after materializing
// the weights on the GPU.
func (s *ShaderObj) SetResource(r Resource) {
	if s.resource != nil && s.resource != r {
		s.resource.Destroy()
	}
	s.resource = r
}

// lutFingerprint hashes every input that affects LUT contents or layout.
// Kernel identity is its name plus shape parameters; the weight function
// itself is taken to be determined by the name.
func lutFingerprint(layout LUTLayout, cfg kernel.Config, entries int,
	cutoff, invScale, antiring float64, noWiden bool) uint64 {

	d := xxhash.New()
	_, _ = d.WriteString(cfg.Kernel.Name)
	var buf [8]byte
	put := func(v uint64) {
		binary.LittleEndian.PutUint64(buf[:], v)
		_, _ = d.Write(buf[:])
	}
	var flags uint64
	if cfg.Polar {
		flags |= 1
	}
	if noWiden {
		flags |= 2
	}
	put(uint64(layout)<<32 | flags)
	put(math.Float64bits(cfg.Kernel.Radius))
	put(math.Float64bits(cfg.Radius))
	put(math.Float64bits(cfg.Blur))
	put(math.Float64bits(cfg.Taper))
	put(uint64(entries))
	put(math.Float64bits(cutoff))
	put(math.Float64bits(invScale))
	put(math.Float64bits(antiring))
	return d.Sum64()
}
