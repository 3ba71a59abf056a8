package kernel

import (
	"math"
	"testing"
)

func TestRadialLUTDeterministic(t *testing.T) {
	cfg := Config{Kernel: EwaLanczos, Polar: true}

	a := RadialLUT(cfg, 64, 1, 0.001)
	b := RadialLUT(cfg, 64, 1, 0.001)

	if len(a.Weights) != len(b.Weights) {
		t.Fatalf("profile lengths differ: %d != %d", len(a.Weights), len(b.Weights))
	}
	for i := range a.Weights {
		if a.Weights[i] != b.Weights[i] {
			t.Errorf("Weights[%d] = %v != %v (rebuild not byte-identical)", i, a.Weights[i], b.Weights[i])
		}
	}
	if a.Radius != b.Radius || a.CutoffRadius != b.CutoffRadius {
		t.Errorf("radii differ: (%v,%v) != (%v,%v)", a.Radius, a.CutoffRadius, b.Radius, b.CutoffRadius)
	}
}

func TestRadialLUTSpansSupport(t *testing.T) {
	cfg := Config{Kernel: Lanczos3, Polar: true}

	p := RadialLUT(cfg, 64, 1, 0.001)

	if len(p.Weights) != 64 {
		t.Errorf("entries = %d, want 64", len(p.Weights))
	}
	if p.Radius != 3.0 {
		t.Errorf("Radius = %v, want 3.0", p.Radius)
	}
	if p.Weights[0] != 1.0 {
		t.Errorf("Weights[0] = %v, want 1.0", p.Weights[0])
	}
}

func TestRadialLUTMonotonicNearZero(t *testing.T) {
	// The main lobe decreases monotonically from the center.
	cfg := Config{Kernel: Lanczos3, Polar: true}

	p := RadialLUT(cfg, 64, 1, 0.001)

	// The first zero of lanczos3 sits at radius 1; entries below that
	// must be non-increasing.
	lobe := int(1.0 / 3.0 * 64)
	for i := 1; i < lobe; i++ {
		if p.Weights[i] > p.Weights[i-1] {
			t.Errorf("Weights[%d] = %v > Weights[%d] = %v (not monotonic in main lobe)",
				i, p.Weights[i], i-1, p.Weights[i-1])
		}
	}
}

func TestRadialLUTWidening(t *testing.T) {
	cfg := Config{Kernel: EwaLanczos, Polar: true}

	narrow := RadialLUT(cfg, 32, 1, 0)
	wide := RadialLUT(cfg, 32, 2, 0)

	if got, want := wide.Radius, narrow.Radius*2; math.Abs(got-want) > 1e-12 {
		t.Errorf("widened Radius = %v, want %v", got, want)
	}

	// Widening stretches the profile: entry i of the widened LUT equals
	// entry i of the narrow one, both sampling the same normalized
	// position.
	for i := range narrow.Weights {
		if narrow.Weights[i] != wide.Weights[i] {
			t.Errorf("Weights[%d]: narrow %v != wide %v", i, narrow.Weights[i], wide.Weights[i])
		}
	}
}

func TestRadialLUTCutoffTrims(t *testing.T) {
	cfg := Config{Kernel: EwaLanczos, Polar: true}

	loose := RadialLUT(cfg, 64, 1, 0.001)
	tight := RadialLUT(cfg, 64, 1, 0.5)

	if tight.CutoffRadius >= loose.CutoffRadius {
		t.Errorf("cutoff 0.5 radius = %v, want < %v", tight.CutoffRadius, loose.CutoffRadius)
	}
	if loose.CutoffRadius > loose.Radius {
		t.Errorf("CutoffRadius %v exceeds Radius %v", loose.CutoffRadius, loose.Radius)
	}
}

func TestRadialLUTCutoffDegenerate(t *testing.T) {
	// A cutoff no weight reaches collapses the support entirely.
	cfg := Config{Kernel: BSpline, Polar: true}

	p := RadialLUT(cfg, 64, 1, 10)

	if p.CutoffRadius != 0 {
		t.Errorf("CutoffRadius = %v, want 0", p.CutoffRadius)
	}
}

func TestPhaseLUTRowsNormalized(t *testing.T) {
	configs := []Config{
		{Kernel: CatmullRom},
		{Kernel: Lanczos3},
		{Kernel: Mitchell, Blur: 1.5},
	}

	for _, cfg := range configs {
		m := PhaseLUT(cfg, 64, 1)
		for r := 0; r < m.Rows; r++ {
			sum := 0.0
			for n := 0; n < m.Taps; n++ {
				sum += float64(m.Weights[r*m.Stride+n])
			}
			if math.Abs(sum-1.0) > 1e-5 {
				t.Errorf("%s row %d sum = %v, want 1.0", cfg.Kernel.Name, r, sum)
			}
		}
	}
}

func TestPhaseLUTTapCount(t *testing.T) {
	tests := []struct {
		cfg      Config
		invScale float64
		taps     int
		stride   int
	}{
		{Config{Kernel: CatmullRom}, 1, 4, 4},
		{Config{Kernel: Lanczos3}, 1, 6, 8},
		{Config{Kernel: Lanczos3}, 2, 12, 12},
		{Config{Kernel: Triangle}, 1, 2, 4},
	}

	for _, tt := range tests {
		m := PhaseLUT(tt.cfg, 64, tt.invScale)
		if m.Taps != tt.taps {
			t.Errorf("PhaseLUT(%s, invScale=%v) taps = %d, want %d",
				tt.cfg.Kernel.Name, tt.invScale, m.Taps, tt.taps)
		}
		if m.Stride != tt.stride {
			t.Errorf("PhaseLUT(%s, invScale=%v) stride = %d, want %d",
				tt.cfg.Kernel.Name, tt.invScale, m.Stride, tt.stride)
		}
		if len(m.Weights) != m.Rows*m.Stride {
			t.Errorf("Weights length = %d, want %d", len(m.Weights), m.Rows*m.Stride)
		}
	}
}

func TestPhaseLUTZeroPhaseInterpolates(t *testing.T) {
	// At phase 0 an interpolating kernel puts all weight on the base tap.
	m := PhaseLUT(Config{Kernel: CatmullRom}, 64, 1)

	center := m.Taps/2 - 1
	for n := 0; n < m.Taps; n++ {
		want := 0.0
		if n == center {
			want = 1.0
		}
		if got := float64(m.Weights[n]); math.Abs(got-want) > 1e-6 {
			t.Errorf("phase 0 tap %d = %v, want %v", n, got, want)
		}
	}
}

func TestPhaseLUTPadTapsZero(t *testing.T) {
	m := PhaseLUT(Config{Kernel: Lanczos3}, 16, 1)

	for r := 0; r < m.Rows; r++ {
		for n := m.Taps; n < m.Stride; n++ {
			if got := m.Weights[r*m.Stride+n]; got != 0 {
				t.Errorf("row %d pad tap %d = %v, want 0", r, n, got)
			}
		}
	}
}

func BenchmarkRadialLUT(b *testing.B) {
	cfg := Config{Kernel: EwaLanczos, Polar: true}

	for i := 0; i < b.N; i++ {
		_ = RadialLUT(cfg, 64, 1, 0.001)
	}
}

func BenchmarkPhaseLUT(b *testing.B) {
	cfg := Config{Kernel: Lanczos3}

	for i := 0; i < b.N; i++ {
		_ = PhaseLUT(cfg, 64, 1)
	}
}
