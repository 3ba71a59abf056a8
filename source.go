package sampler

import (
	"fmt"
	"math"
)

// SampleMode is a texture's configured interpolation mode.
type SampleMode uint8

const (
	// SampleNearest fetches the nearest texel.
	SampleNearest SampleMode = iota

	// SampleLinear blends the four nearest texels.
	SampleLinear
)

// Texture describes a 2D texture involved in a sampling operation. It is
// the engine's view of the GPU resource abstraction: dimensions, native
// component layout, configured interpolation mode, and whether the texture
// can serve as a writable storage target. gpu.SourceTexture implements it;
// any type exposing these properties works.
type Texture interface {
	// Width and Height in texels.
	Width() int
	Height() int

	// Components reports the native component count (1 to 4).
	Components() int

	// SampleMode reports the configured interpolation mode.
	SampleMode() SampleMode

	// StorageWritable reports whether the texture can be bound as a
	// writable storage target. The compute fast path needs this on the
	// render destination.
	StorageWritable() bool
}

// Rect is a sub-rectangle in source texel coordinates, origin top-left.
// Fractional coordinates are allowed. A flipped rect (X1 < X0 or Y1 < Y0)
// samples mirrored along that axis.
type Rect struct {
	X0, Y0 float64
	X1, Y1 float64
}

// SampleSrc describes one sampling request: what to sample and how much
// of it. It is a value constructed immediately before a sampling call and
// not retained afterward; the texture is borrowed for the duration of the
// call.
type SampleSrc struct {
	// Tex is the texture to sample.
	Tex Texture

	// Rect is the sub-rect to sample from. An axis with zero span
	// covers the full texture extent from that axis offset.
	Rect Rect

	// Components overrides how many color components to sample.
	// 0 uses the texture's native count.
	Components int

	// NewW, NewH are the dimensions of the resulting output. 0 means
	// the rect's own dimensions: no resampling, pure filtering.
	NewW, NewH int

	// Scale is a factor multiplied into the sampled signal. 0 means 1.
	Scale float64
}

// sampleGeom is a descriptor resolved into concrete sampling geometry.
// All engines consume this instead of the raw SampleSrc.
type sampleGeom struct {
	tex  Texture
	rect Rect // resolved, may be flipped
	w, h int  // texture dimensions

	outW, outH int
	comps      int
	scale      float64

	// rx, ry are the per-axis scaling ratios: output pixels per source
	// texel. <1 means downscaling along that axis.
	rx, ry float64
}

// resolveSample resolves a partially-specified descriptor. It has no side
// effects on failure; every entry point calls it before touching the
// builder or any LUT slot.
func resolveSample(src *SampleSrc) (sampleGeom, error) {
	var g sampleGeom
	if src == nil || src.Tex == nil {
		return g, ErrNilTexture
	}
	g.tex = src.Tex
	g.w, g.h = src.Tex.Width(), src.Tex.Height()
	if g.w < 1 || g.h < 1 {
		return g, fmt.Errorf("%w: %dx%d texture", ErrUnsupportedTexture, g.w, g.h)
	}

	r := src.Rect
	if r.X1 == r.X0 {
		r.X1 = r.X0 + float64(g.w)
	}
	if r.Y1 == r.Y0 {
		r.Y1 = r.Y0 + float64(g.h)
	}
	if math.Min(r.X0, r.X1) < 0 || math.Max(r.X0, r.X1) > float64(g.w) ||
		math.Min(r.Y0, r.Y1) < 0 || math.Max(r.Y0, r.Y1) > float64(g.h) {
		return g, fmt.Errorf("%w: (%g,%g)-(%g,%g) in %dx%d texture",
			ErrBadSourceRect, r.X0, r.Y0, r.X1, r.Y1, g.w, g.h)
	}
	g.rect = r

	if src.NewW < 0 || src.NewH < 0 {
		return g, fmt.Errorf("%w: %dx%d", ErrBadOutputSize, src.NewW, src.NewH)
	}
	rw := math.Abs(r.X1 - r.X0)
	rh := math.Abs(r.Y1 - r.Y0)
	g.outW, g.outH = src.NewW, src.NewH
	if g.outW == 0 {
		g.outW = int(math.Round(rw))
	}
	if g.outH == 0 {
		g.outH = int(math.Round(rh))
	}
	if g.outW < 1 || g.outH < 1 {
		return g, fmt.Errorf("%w: resolved to %dx%d", ErrBadOutputSize, g.outW, g.outH)
	}

	g.comps = src.Components
	if g.comps == 0 {
		g.comps = src.Tex.Components()
	}
	if g.comps < 1 || g.comps > 4 {
		return g, fmt.Errorf("%w: %d components", ErrUnsupportedTexture, g.comps)
	}
	g.scale = src.Scale
	if g.scale == 0 {
		g.scale = 1
	}
	g.rx = float64(g.outW) / rw
	g.ry = float64(g.outH) / rh
	return g, nil
}

// scaling reports whether the request implies a scale change along either
// axis.
func (g sampleGeom) scaling() bool {
	return g.rx != 1 || g.ry != 1
}
