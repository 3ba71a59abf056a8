package kernel

import (
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"
)

// Response computes the magnitude frequency response of the configured
// kernel, normalized so the DC bin is 1. The kernel is sampled symmetrically
// over its full support and zero-padded to n points; the result holds
// n/2 + 1 bins from DC up to Nyquist.
//
// This is a design-time diagnostic: a resampling kernel should hold near 1
// in the pass band and fall off before Nyquist. It is not used on any
// shader-generation path.
func Response(cfg Config, n int) []float64 {
	if n < 8 {
		n = 8
	}

	r := cfg.SupportRadius()
	samples := make([]float64, n)

	// Sample the kernel over [-r, r] centered in the padded window, at
	// 4x oversampling relative to the support so adjacent bins resolve
	// the transition band.
	span := int(math.Ceil(r * 8))
	if span*2 >= n {
		span = n/2 - 1
	}
	for i := -span; i <= span; i++ {
		x := float64(i) / 8
		idx := (i + n) % n
		samples[idx] = cfg.Weight(x)
	}

	fft := fourier.NewFFT(n)
	coeffs := fft.Coefficients(nil, samples)

	resp := make([]float64, len(coeffs))
	for i, c := range coeffs {
		resp[i] = cmplx.Abs(c)
	}
	if resp[0] > 0 {
		inv := 1 / resp[0]
		for i := range resp {
			resp[i] *= inv
		}
	}
	return resp
}

// SidelobeLevel returns the peak response past the first zero crossing of
// the response, relative to DC. Lower is better; values near 0 indicate a
// well-behaved low-pass kernel.
func SidelobeLevel(cfg Config, n int) float64 {
	resp := Response(cfg, n)

	// Walk down from DC to the first minimum, then report the largest
	// peak after it.
	i := 1
	for i < len(resp) && resp[i] <= resp[i-1] {
		i++
	}
	peak := 0.0
	for ; i < len(resp); i++ {
		if resp[i] > peak {
			peak = resp[i]
		}
	}
	return peak
}
