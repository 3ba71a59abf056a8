package softscale

import (
	"errors"
	"math"
	"testing"

	"github.com/gogpu/sampler"
)

func TestDeband_ZeroParamsPassthrough(t *testing.T) {
	src := pattern(16, 16)
	out, err := Deband(&sampler.SampleSrc{Tex: src}, &sampler.DebandParams{})
	if err != nil {
		t.Fatalf("Deband() error = %v", err)
	}
	if d := maxDelta(t, out, src); d != 0 {
		t.Errorf("zero iterations and zero grain changed the image by %g", d)
	}
}

func TestDeband_Deterministic(t *testing.T) {
	src := pattern(24, 24)
	a, err := Deband(&sampler.SampleSrc{Tex: src}, &sampler.DefaultDebandParams)
	if err != nil {
		t.Fatalf("Deband() error = %v", err)
	}
	b, err := Deband(&sampler.SampleSrc{Tex: src}, &sampler.DefaultDebandParams)
	if err != nil {
		t.Fatalf("Deband() error = %v", err)
	}
	if d := maxDelta(t, a, b); d != 0 {
		t.Errorf("two identical runs differ by %g, want a pure function of the input", d)
	}
}

func TestDeband_GrainOnly(t *testing.T) {
	src := linear(pattern(16, 16))
	p := &sampler.DebandParams{Threshold: 4, Radius: 16, Grain: 6}
	out, err := Deband(&sampler.SampleSrc{Tex: src}, p)
	if err != nil {
		t.Fatalf("Deband() error = %v", err)
	}

	// Noise is centered, so no channel moves further than half the grain
	// amplitude in the engine's 8-bit-style units.
	bound := p.Grain/8192*0.5 + 1e-12
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			got, want := out.At(x, y), src.At(x, y)
			for c := 0; c < 3; c++ {
				d := got[c] - want[c]
				if math.Abs(d) > bound {
					t.Fatalf("pixel (%d,%d)[%d] moved by %g, want at most %g", x, y, c, d, bound)
				}
				if d == 0 {
					t.Fatalf("pixel (%d,%d)[%d] carries no grain", x, y, c)
				}
			}
			if got[3] != want[3] {
				t.Fatalf("pixel (%d,%d) alpha changed to %g", x, y, got[3])
			}
		}
	}
}

func TestDeband_FlatImageUnchanged(t *testing.T) {
	src := flat(12, 12, [4]float64{0.4, 0.4, 0.4, 1})
	p := &sampler.DebandParams{Iterations: 3, Threshold: 4, Radius: 16}
	out, err := Deband(&sampler.SampleSrc{Tex: src}, p)
	if err != nil {
		t.Fatalf("Deband() error = %v", err)
	}
	if d := maxDelta(t, out, src); d > 1e-12 {
		t.Errorf("flat image changed by %g, want averaging to be a no-op", d)
	}
}

func TestDeband_SmoothsBanding(t *testing.T) {
	// Two quantization plateaus one 8-bit step apart. An aggressive
	// threshold must blend pixels near the seam without pushing any value
	// outside the plateau range.
	const lo, hi = 0.40, 0.404
	src := linear(NewImage(32, 32))
	for y := 0; y < 32; y++ {
		v := lo
		if y >= 16 {
			v = hi
		}
		for x := 0; x < 32; x++ {
			src.Set(x, y, [4]float64{v, v, v, 1})
		}
	}

	out, err := Deband(&sampler.SampleSrc{Tex: src},
		&sampler.DebandParams{Iterations: 1, Threshold: 100, Radius: 16})
	if err != nil {
		t.Fatalf("Deband() error = %v", err)
	}

	smoothed := 0
	for i := 0; i < len(out.Pix); i += 4 {
		v := out.Pix[i]
		if v < lo-1e-9 || v > hi+1e-9 {
			t.Fatalf("Pix[%d] = %g outside the plateau range", i, v)
		}
		if math.Abs(v-lo) > (hi-lo)*0.05 && math.Abs(v-hi) > (hi-lo)*0.05 {
			smoothed++
		}
	}
	if smoothed == 0 {
		t.Error("no pixel blended between the plateaus, want the seam dithered")
	}
}

func TestDeband_LinearRequiredWhenScaling(t *testing.T) {
	src := pattern(8, 8)
	_, err := Deband(&sampler.SampleSrc{Tex: src, NewW: 16, NewH: 16}, nil)
	if !errors.Is(err, sampler.ErrLinearRequired) {
		t.Errorf("Deband() error = %v, want ErrLinearRequired for a nearest-mode resize", err)
	}
}

func TestDeband_NilParamsUseDefaults(t *testing.T) {
	src := pattern(16, 16)
	implicit, err := Deband(&sampler.SampleSrc{Tex: src}, nil)
	if err != nil {
		t.Fatalf("Deband(nil) error = %v", err)
	}
	explicit, err := Deband(&sampler.SampleSrc{Tex: src}, &sampler.DefaultDebandParams)
	if err != nil {
		t.Fatalf("Deband(defaults) error = %v", err)
	}
	if d := maxDelta(t, implicit, explicit); d != 0 {
		t.Errorf("nil params deviate from the defaults by %g", d)
	}
	if d := maxDelta(t, implicit, src); d == 0 {
		t.Error("default grain left the image untouched")
	}
}
