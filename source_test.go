package sampler

import (
	"errors"
	"math"
	"testing"
)

// testTex is a minimal Texture stub for geometry and emission tests.
type testTex struct {
	w, h  int
	comps int
	mode  SampleMode
	store bool
}

func (t *testTex) Width() int             { return t.w }
func (t *testTex) Height() int            { return t.h }
func (t *testTex) Components() int        { return t.comps }
func (t *testTex) SampleMode() SampleMode { return t.mode }
func (t *testTex) StorageWritable() bool  { return t.store }

// Verify at compile time that the stub implements Texture.
var _ Texture = (*testTex)(nil)

func linearTex(w, h, comps int) *testTex {
	return &testTex{w: w, h: h, comps: comps, mode: SampleLinear, store: true}
}

func nearestTex(w, h, comps int) *testTex {
	return &testTex{w: w, h: h, comps: comps, mode: SampleNearest, store: true}
}

func TestResolveSample_Defaults(t *testing.T) {
	src := &SampleSrc{Tex: linearTex(100, 50, 3)}
	g, err := resolveSample(src)
	if err != nil {
		t.Fatalf("resolveSample() error = %v", err)
	}
	if g.rect != (Rect{0, 0, 100, 50}) {
		t.Errorf("rect = %+v, want full extent", g.rect)
	}
	if g.outW != 100 || g.outH != 50 {
		t.Errorf("out = %dx%d, want 100x50", g.outW, g.outH)
	}
	if g.comps != 3 {
		t.Errorf("comps = %d, want native 3", g.comps)
	}
	if g.scale != 1 {
		t.Errorf("scale = %g, want 1", g.scale)
	}
	if g.rx != 1 || g.ry != 1 {
		t.Errorf("ratios = %g, %g, want 1, 1", g.rx, g.ry)
	}
	if g.scaling() {
		t.Error("scaling() = true for a pure filter request")
	}
}

func TestResolveSample_PerAxisRectDefault(t *testing.T) {
	// A zero-span axis covers the full extent; the other axis keeps its
	// explicit sub-rect.
	src := &SampleSrc{
		Tex:  linearTex(100, 50, 4),
		Rect: Rect{Y0: 10, Y1: 40},
	}
	g, err := resolveSample(src)
	if err != nil {
		t.Fatalf("resolveSample() error = %v", err)
	}
	if g.rect != (Rect{0, 10, 100, 40}) {
		t.Errorf("rect = %+v, want X defaulted to (0,100)", g.rect)
	}
	if g.outW != 100 || g.outH != 30 {
		t.Errorf("out = %dx%d, want 100x30", g.outW, g.outH)
	}
}

func TestResolveSample_Ratios(t *testing.T) {
	tests := []struct {
		name       string
		src        SampleSrc
		rx, ry     float64
		outW, outH int
	}{
		{
			name: "2x upscale",
			src:  SampleSrc{Tex: linearTex(100, 100, 4), NewW: 200, NewH: 200},
			rx:   2, ry: 2, outW: 200, outH: 200,
		},
		{
			name: "downscale",
			src:  SampleSrc{Tex: linearTex(100, 100, 4), NewW: 25, NewH: 50},
			rx:   0.25, ry: 0.5, outW: 25, outH: 50,
		},
		{
			name: "fractional rect",
			src: SampleSrc{
				Tex:  linearTex(100, 100, 4),
				Rect: Rect{10.5, 0, 90.5, 100},
				NewW: 160, NewH: 100,
			},
			rx: 2, ry: 1, outW: 160, outH: 100,
		},
		{
			name: "flipped rect keeps positive ratio",
			src: SampleSrc{
				Tex:  linearTex(100, 100, 4),
				Rect: Rect{100, 0, 0, 100},
				NewW: 50, NewH: 100,
			},
			rx: 0.5, ry: 1, outW: 50, outH: 100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := resolveSample(&tt.src)
			if err != nil {
				t.Fatalf("resolveSample() error = %v", err)
			}
			if math.Abs(g.rx-tt.rx) > 1e-12 || math.Abs(g.ry-tt.ry) > 1e-12 {
				t.Errorf("ratios = %g, %g, want %g, %g", g.rx, g.ry, tt.rx, tt.ry)
			}
			if g.outW != tt.outW || g.outH != tt.outH {
				t.Errorf("out = %dx%d, want %dx%d", g.outW, g.outH, tt.outW, tt.outH)
			}
		})
	}
}

func TestResolveSample_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  *SampleSrc
		want error
	}{
		{name: "nil src", src: nil, want: ErrNilTexture},
		{name: "nil texture", src: &SampleSrc{}, want: ErrNilTexture},
		{
			name: "zero size texture",
			src:  &SampleSrc{Tex: linearTex(0, 100, 4)},
			want: ErrUnsupportedTexture,
		},
		{
			name: "rect outside texture",
			src: &SampleSrc{
				Tex:  linearTex(100, 100, 4),
				Rect: Rect{-1, 0, 99, 100},
			},
			want: ErrBadSourceRect,
		},
		{
			name: "rect beyond extent",
			src: &SampleSrc{
				Tex:  linearTex(100, 100, 4),
				Rect: Rect{0, 0, 100.5, 100},
			},
			want: ErrBadSourceRect,
		},
		{
			name: "negative output",
			src:  &SampleSrc{Tex: linearTex(100, 100, 4), NewW: -1},
			want: ErrBadOutputSize,
		},
		{
			name: "sub-texel rect rounds to zero output",
			src: &SampleSrc{
				Tex:  linearTex(100, 100, 4),
				Rect: Rect{10, 10, 10.2, 90},
			},
			want: ErrBadOutputSize,
		},
		{
			name: "component override out of range",
			src:  &SampleSrc{Tex: linearTex(100, 100, 4), Components: 5},
			want: ErrUnsupportedTexture,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := resolveSample(tt.src)
			if !errors.Is(err, tt.want) {
				t.Errorf("resolveSample() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestResolveSample_ComponentOverride(t *testing.T) {
	src := &SampleSrc{Tex: linearTex(8, 8, 4), Components: 1}
	g, err := resolveSample(src)
	if err != nil {
		t.Fatalf("resolveSample() error = %v", err)
	}
	if g.comps != 1 {
		t.Errorf("comps = %d, want override 1", g.comps)
	}
}
