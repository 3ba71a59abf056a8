package kernel

import (
	"math"
	"testing"
)

func TestInterpolatingKernelsUnityAtZero(t *testing.T) {
	kernels := []Kernel{Box, Triangle, Hermite, CatmullRom, Lanczos3, EwaLanczos}

	for _, k := range kernels {
		if got := k.Weight(0); math.Abs(got-1.0) > 1e-12 {
			t.Errorf("%s.Weight(0) = %v, want 1.0", k.Name, got)
		}
	}
}

func TestKernelsVanishBeyondRadius(t *testing.T) {
	kernels := []Kernel{Box, Triangle, Gaussian, Hermite, BSpline, Mitchell, CatmullRom, Lanczos3, EwaLanczos}

	for _, k := range kernels {
		for _, x := range []float64{k.Radius, k.Radius + 0.5, k.Radius * 2} {
			if got := k.Weight(x); got != 0 {
				t.Errorf("%s.Weight(%v) = %v, want 0 (radius %v)", k.Name, x, got, k.Radius)
			}
		}
	}
}

func TestBSplineAtZero(t *testing.T) {
	// The cubic B-spline is an approximating kernel: weight(0) = 2/3.
	if got := BSpline.Weight(0); math.Abs(got-2.0/3.0) > 1e-12 {
		t.Errorf("BSpline.Weight(0) = %v, want %v", got, 2.0/3.0)
	}
}

func TestLanczos3ZeroCrossings(t *testing.T) {
	// Lanczos vanishes at the nonzero integers inside its support.
	for _, x := range []float64{1, 2} {
		if got := Lanczos3.Weight(x); math.Abs(got) > 1e-12 {
			t.Errorf("Lanczos3.Weight(%v) = %v, want 0", x, got)
		}
	}
}

func TestJincFirstZero(t *testing.T) {
	k := Jinc()

	z := 1.2196698912665045
	if got := k.Weight(z); math.Abs(got) > 1e-9 {
		t.Errorf("Jinc.Weight(%v) = %v, want ~0", z, got)
	}

	// Response stays positive before the first zero.
	if got := k.Weight(z - 0.1); got <= 0 {
		t.Errorf("Jinc.Weight(%v) = %v, want > 0", z-0.1, got)
	}
}

func TestCubicPartitionOfUnity(t *testing.T) {
	// Mitchell-Netravali cubics reproduce constants: the weights at the
	// four taps around any phase sum to 1.
	kernels := []Kernel{BSpline, Mitchell, CatmullRom}

	for _, k := range kernels {
		for _, f := range []float64{0, 0.1, 0.25, 0.5, 0.75, 0.99} {
			sum := 0.0
			for n := -1; n <= 2; n++ {
				sum += k.Weight(float64(n) - f)
			}
			if math.Abs(sum-1.0) > 1e-9 {
				t.Errorf("%s taps at phase %v sum = %v, want 1.0", k.Name, f, sum)
			}
		}
	}
}

func TestKernelsSymmetric(t *testing.T) {
	kernels := []Kernel{Triangle, Gaussian, Mitchell, CatmullRom, Lanczos3, EwaLanczos}

	for _, k := range kernels {
		for _, x := range []float64{0.2, 0.7, 1.3, 1.9} {
			if x >= k.Radius {
				continue
			}
			if got, want := k.Weight(-x), k.Weight(x); got != want {
				t.Errorf("%s.Weight(-%v) = %v != Weight(%v) = %v", k.Name, x, got, x, want)
			}
		}
	}
}

func TestConfigBlurScalesSupport(t *testing.T) {
	base := Config{Kernel: Lanczos3}
	soft := Config{Kernel: Lanczos3, Blur: 2}

	if got, want := soft.SupportRadius(), base.SupportRadius()*2; got != want {
		t.Errorf("SupportRadius with blur 2 = %v, want %v", got, want)
	}

	// Blur stretches the coordinate: weight(2x) of the blurred config
	// equals weight(x) of the base config.
	for _, x := range []float64{0.3, 1.1, 2.4} {
		got := soft.Weight(2 * x)
		want := base.Weight(x)
		if math.Abs(got-want) > 1e-12 {
			t.Errorf("blurred Weight(%v) = %v, want %v", 2*x, got, want)
		}
	}
}

func TestConfigTaperFlattensCenter(t *testing.T) {
	cfg := Config{Kernel: CatmullRom, Taper: 0.5}

	center := cfg.Weight(0)
	for _, x := range []float64{0.1, 0.3, 0.5} {
		if got := cfg.Weight(x); got != center {
			t.Errorf("tapered Weight(%v) = %v, want %v (flat region)", x, got, center)
		}
	}

	// Past the taper the kernel still decays to zero at the support edge.
	if got := cfg.Weight(cfg.SupportRadius() + 0.01); got != 0 {
		t.Errorf("tapered Weight beyond radius = %v, want 0", got)
	}
}

func TestConfigRadiusOverride(t *testing.T) {
	cfg := Config{Kernel: Lanczos3, Radius: 2}

	if got := cfg.SupportRadius(); got != 2 {
		t.Errorf("SupportRadius with override = %v, want 2", got)
	}

	// The kernel is compressed into the overridden support: the rescaled
	// edge maps to the natural edge.
	if got := cfg.Weight(2); got != 0 {
		t.Errorf("overridden Weight(2) = %v, want 0", got)
	}
	if got := cfg.Weight(0); math.Abs(got-1.0) > 1e-12 {
		t.Errorf("overridden Weight(0) = %v, want 1.0", got)
	}
}

func TestWindowedStretchesWindow(t *testing.T) {
	// EwaLanczos windows jinc by jinc: at the base kernel's radius the
	// window has reached its own first zero, so the product vanishes.
	if got := EwaLanczos.Weight(EwaLanczos.Radius - 1e-9); math.Abs(got) > 1e-6 {
		t.Errorf("EwaLanczos.Weight near radius = %v, want ~0", got)
	}
	if EwaLanczos.Radius != Jinc().Radius {
		t.Errorf("EwaLanczos.Radius = %v, want %v", EwaLanczos.Radius, Jinc().Radius)
	}
}

func BenchmarkWeight(b *testing.B) {
	configs := []struct {
		name string
		cfg  Config
	}{
		{"catmull_rom", Config{Kernel: CatmullRom}},
		{"lanczos3", Config{Kernel: Lanczos3}},
		{"ewa_lanczos", Config{Kernel: EwaLanczos, Polar: true}},
	}

	for _, tc := range configs {
		b.Run(tc.name, func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				_ = tc.cfg.Weight(float64(i%100) / 33.0)
			}
		})
	}
}
