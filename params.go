package sampler

import "github.com/gogpu/sampler/kernel"

// FilterParams configures the polar and orthogonal filter engines: a
// kernel configuration plus LUT precision, truncation and dispatch knobs.
type FilterParams struct {
	// Filter is the kernel configuration to sample with.
	Filter kernel.Config

	// LUTEntries is the precision of the LUT: radial samples for polar
	// filters, phase rows for separable ones. 0 means 64.
	LUTEntries int

	// Cutoff is the weight magnitude below which the kernel tail is
	// truncated. 0 means 0.001. Only relevant for polar filters.
	Cutoff float64

	// Antiring is the antiringing strength in [0,1]. 0 disables it.
	// Only relevant for separable filters; polar calls ignore it.
	Antiring float64

	// NoCompute forces the fragment fallback even when compute
	// dispatch is available.
	NoCompute bool

	// NoWidening disables kernel widening (anti-aliasing) when
	// downscaling.
	NoWidening bool

	// LUT is the caller-owned cache slot the engine populates and
	// reuses. Must point to a ShaderObj; the zero value is the empty
	// slot. Reusing one slot across different filter configurations or
	// scaling ratios forces a rebuild every call.
	LUT *ShaderObj
}

// DefaultFilterParams returns the default filter parameters. The Filter
// field is left zero; callers pick a kernel.
func DefaultFilterParams() FilterParams {
	return FilterParams{
		LUTEntries: 64,
		Cutoff:     0.001,
	}
}

// lutEntries resolves the LUT resolution default.
func (p *FilterParams) lutEntries() int {
	if p.LUTEntries <= 0 {
		return 64
	}
	return p.LUTEntries
}

// cutoff resolves the cutoff default.
func (p *FilterParams) cutoff() float64 {
	if p.Cutoff == 0 {
		return 0.001
	}
	return p.Cutoff
}

// DebandParams configures the deband engine.
type DebandParams struct {
	// Iterations is the number of debanding steps per sample. Each
	// step reduces a bit more banding but the strength of each falls
	// off quickly; values above 4 are practically useless. 0 skips the
	// averaging entirely, leaving a pure grain pass.
	Iterations int

	// Threshold is the cut-off below which local variation is treated
	// as banding. Higher values deband more aggressively but
	// progressively eat image detail.
	Threshold float64

	// Radius is the initial sampling radius. It grows linearly each
	// iteration. A larger radius finds more gradients, a smaller one
	// smooths more aggressively.
	Radius float64

	// Grain is the amount of noise added after filtering, covering up
	// remaining quantization. For HDR sources even small grain shifts
	// brightness noticeably; scale it down or disable it there.
	Grain float64
}

// DefaultDebandParams are the recommended deband defaults: one iteration,
// mild grain.
var DefaultDebandParams = DebandParams{
	Iterations: 1,
	Threshold:  4.0,
	Radius:     16.0,
	Grain:      6.0,
}
