package kernel

import "math"

// RadialProfile is a materialized polar filter LUT: the kernel sampled by
// distance over [0, Radius]. Weights are not normalized; the shader divides
// by the runtime weight sum so that truncated kernel support loses no
// energy at the edges.
type RadialProfile struct {
	// Weights holds Entries samples of the kernel over [0, Radius].
	Weights []float32

	// Radius is the full support radius in source texels, after widening.
	Radius float64

	// CutoffRadius is the radius beyond which |weight| stays under the
	// cutoff threshold. The sampling loop bounds itself by this value.
	CutoffRadius float64
}

// RadialLUT samples the configured kernel radially into entries discrete
// weights. invScale >= 1 widens the kernel for downscaling; cutoff in [0,1)
// trims the effective sampling radius where the response becomes negligible.
//
// Identical arguments produce byte-identical profiles: the evaluation is
// pure float64 math rounded to float32 once per entry.
func RadialLUT(cfg Config, entries int, invScale, cutoff float64) RadialProfile {
	if entries < 2 {
		entries = 2
	}
	if invScale < 1 {
		invScale = 1
	}

	radius := cfg.SupportRadius() * invScale
	step := radius / float64(entries-1)

	p := RadialProfile{
		Weights: make([]float32, entries),
		Radius:  radius,
	}
	for i := 0; i < entries; i++ {
		x := float64(i) * step
		p.Weights[i] = float32(cfg.Weight(x / invScale))
	}

	// Find the last entry whose magnitude still clears the cutoff.
	p.CutoffRadius = radius
	if cutoff > 0 {
		last := -1
		for i := entries - 1; i >= 0; i-- {
			if math.Abs(float64(p.Weights[i])) >= cutoff {
				last = i
				break
			}
		}
		switch {
		case last < 0:
			p.CutoffRadius = 0
		case last < entries-1:
			p.CutoffRadius = float64(last+1) * step
		}
	}
	return p
}

// PhaseMatrix is a materialized separable filter LUT: one row of tap
// weights per sub-texel phase. Each row is normalized to sum to 1, so the
// shader applies it without runtime renormalization. Taps are padded to a
// multiple of 4 for packing into RGBA texels.
type PhaseMatrix struct {
	// Weights is row-major, Rows * Stride float32 values.
	Weights []float32

	// Rows is the number of phase rows (the LUT resolution).
	Rows int

	// Taps is the number of meaningful weights per row.
	Taps int

	// Stride is Taps rounded up to a multiple of 4.
	Stride int

	// Radius is the support radius in source texels, after widening.
	Radius float64
}

// PhaseLUT builds the phase matrix for a separable kernel. Row r holds the
// weights for sub-texel offset r/rows; tap n sits at integer offset
// n - (taps/2 - 1) from the base texel.
func PhaseLUT(cfg Config, rows int, invScale float64) PhaseMatrix {
	if rows < 1 {
		rows = 1
	}
	if invScale < 1 {
		invScale = 1
	}

	radius := cfg.SupportRadius() * invScale
	taps := 2 * int(math.Ceil(radius))
	if taps < 2 {
		taps = 2
	}
	stride := (taps + 3) / 4 * 4

	m := PhaseMatrix{
		Weights: make([]float32, rows*stride),
		Rows:    rows,
		Taps:    taps,
		Stride:  stride,
		Radius:  radius,
	}

	row := make([]float64, taps)
	for r := 0; r < rows; r++ {
		fcoord := float64(r) / float64(rows)
		sum := 0.0
		for n := 0; n < taps; n++ {
			x := float64(n-(taps/2-1)) - fcoord
			w := cfg.Weight(x / invScale)
			row[n] = w
			sum += w
		}
		if sum == 0 {
			// Degenerate support: fall back to the nearest tap.
			row[taps/2-1] = 1
			sum = 1
		}
		base := r * stride
		for n := 0; n < taps; n++ {
			m.Weights[base+n] = float32(row[n] / sum)
		}
	}
	return m
}
