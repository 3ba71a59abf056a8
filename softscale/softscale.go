package softscale

import (
	"errors"
	"fmt"
	"math"

	"github.com/gogpu/sampler"
	"github.com/gogpu/sampler/kernel"
)

// ErrNoKernel is returned when filter parameters carry no kernel weight
// function. The CPU paths materialize their LUTs per call and never
// touch the params' ShaderObj slot, so a nil p.LUT is fine here but a
// zero Filter is not.
var ErrNoKernel = errors.New("softscale: filter params carry no kernel")

// geom is a sampling descriptor resolved against a float buffer, the CPU
// counterpart of the engines' geometry resolution. The same defaulting
// and validation rules apply: a zero rect axis spans the full extent,
// output dimensions default to the rect size, components to the buffer's
// native count, scale to 1.
type geom struct {
	img  *Image
	rect sampler.Rect
	w, h int

	outW, outH int
	comps      int
	scale      float64

	rx, ry float64
}

func resolve(src *sampler.SampleSrc) (geom, error) {
	var g geom
	if src == nil || src.Tex == nil {
		return g, sampler.ErrNilTexture
	}
	img, ok := src.Tex.(*Image)
	if !ok {
		return g, fmt.Errorf("%w: %T carries no pixels", sampler.ErrUnsupportedTexture, src.Tex)
	}
	g.img = img
	g.w, g.h = img.W, img.H
	if g.w < 1 || g.h < 1 || len(img.Pix) < g.w*g.h*4 {
		return g, fmt.Errorf("%w: %dx%d buffer holding %d values",
			sampler.ErrUnsupportedTexture, g.w, g.h, len(img.Pix))
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
		return g, fmt.Errorf("%w: (%g,%g)-(%g,%g) in %dx%d buffer",
			sampler.ErrBadSourceRect, r.X0, r.Y0, r.X1, r.Y1, g.w, g.h)
	}
	g.rect = r

	if src.NewW < 0 || src.NewH < 0 {
		return g, fmt.Errorf("%w: %dx%d", sampler.ErrBadOutputSize, src.NewW, src.NewH)
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
		return g, fmt.Errorf("%w: resolved to %dx%d", sampler.ErrBadOutputSize, g.outW, g.outH)
	}

	g.comps = src.Components
	if g.comps == 0 {
		g.comps = img.Components()
	}
	if g.comps < 1 || g.comps > 4 {
		return g, fmt.Errorf("%w: %d components", sampler.ErrUnsupportedTexture, g.comps)
	}
	g.scale = src.Scale
	if g.scale == 0 {
		g.scale = 1
	}
	g.rx = float64(g.outW) / rw
	g.ry = float64(g.outH) / rh
	return g, nil
}

func (g geom) scaling() bool {
	return g.rx != 1 || g.ry != 1
}

// pos maps an output pixel to its normalized source coordinate: uv over
// the output, rect origin plus uv times span. This is the mapping every
// emitted program applies.
func (g geom) pos(ox, oy int) (float64, float64) {
	ux := (float64(ox) + 0.5) / float64(g.outW)
	uy := (float64(oy) + 0.5) / float64(g.outH)
	px := g.rect.X0/float64(g.w) + ux*(g.rect.X1-g.rect.X0)/float64(g.w)
	py := g.rect.Y0/float64(g.h) + uy*(g.rect.Y1-g.rect.Y0)/float64(g.h)
	return px, py
}

func (g geom) output() *Image {
	out := NewImage(g.outW, g.outH)
	out.Mode = g.img.Mode
	return out
}

// fract mirrors the WGSL builtin: x - floor(x), in [0,1).
func fract(x float64) float64 {
	return x - math.Floor(x)
}

// compMask pads a color to the requested component count the way the
// emitted mask does: missing color channels 0, missing alpha 1.
func compMask(c [4]float64, comps int) [4]float64 {
	switch comps {
	case 1:
		return [4]float64{c[0], 0, 0, 1}
	case 2:
		return [4]float64{c[0], c[1], 0, 1}
	case 3:
		return [4]float64{c[0], c[1], c[2], 1}
	default:
		return c
	}
}

// lutEntries and cutoff resolve the same defaults FilterParams applies
// for the engines.
func lutEntries(p *sampler.FilterParams) int {
	if p.LUTEntries <= 0 {
		return 64
	}
	return p.LUTEntries
}

func cutoff(p *sampler.FilterParams) float64 {
	if p.Cutoff == 0 {
		return 0.001
	}
	return p.Cutoff
}

// lutAt mirrors the emitted lut_at helper: a manual lerp between the two
// nearest radial profile entries, index clamped to the profile.
func lutAt(weights []float32, d, idxScale float64) float64 {
	f := d * idxScale
	top := float64(len(weights) - 1)
	if f < 0 {
		f = 0
	} else if f > top {
		f = top
	}
	i0 := int(f)
	i1 := i0 + 1
	if i1 > len(weights)-1 {
		i1 = len(weights) - 1
	}
	w0 := float64(weights[i0])
	w1 := float64(weights[i1])
	return w0 + (w1-w0)*(f-float64(i0))
}

// Direct resamples with a single fetch per output pixel, the mirror of
// sampler.SampleDirect: the buffer's configured interpolation mode does
// all the work.
func Direct(src *sampler.SampleSrc) (*Image, error) {
	g, err := resolve(src)
	if err != nil {
		return nil, err
	}
	out := g.output()
	for oy := 0; oy < g.outH; oy++ {
		for ox := 0; ox < g.outW; ox++ {
			px, py := g.pos(ox, oy)
			c := g.img.Fetch(px, py)
			for i := range c {
				c[i] *= g.scale
			}
			out.Set(ox, oy, compMask(c, g.comps))
		}
	}
	return out, nil
}

// Bicubic resamples with the cubic B-spline, the mirror of
// sampler.SampleBicubic: sixteen taps collapsed into four bilinear
// fetches with analytically derived offsets and weights. The buffer must
// be in linear mode.
func Bicubic(src *sampler.SampleSrc) (*Image, error) {
	g, err := resolve(src)
	if err != nil {
		return nil, err
	}
	if g.img.Mode != sampler.SampleLinear {
		return nil, fmt.Errorf("%w: bicubic needs bilinear fetches", sampler.ErrLinearRequired)
	}

	out := g.output()
	ptX, ptY := 1/float64(g.w), 1/float64(g.h)
	for oy := 0; oy < g.outH; oy++ {
		for ox := 0; ox < g.outW; ox++ {
			posX, posY := g.pos(ox, oy)
			var frac, inv, g0, g1, h0, h1 [2]float64
			frac[0] = fract(posX*float64(g.w) + 0.5)
			frac[1] = fract(posY*float64(g.h) + 0.5)
			for a := 0; a < 2; a++ {
				inv[a] = 1 - frac[a]
				w0 := (1.0 / 6.0) * inv[a] * inv[a] * inv[a]
				w1 := 2.0/3.0 - 0.5*frac[a]*frac[a]*(2-frac[a])
				w2 := 2.0/3.0 - 0.5*inv[a]*inv[a]*(2-inv[a])
				w3 := (1.0 / 6.0) * frac[a] * frac[a] * frac[a]
				g0[a] = w0 + w1
				g1[a] = w2 + w3
				h0[a] = w1/g0[a] - 1 - frac[a]
				h1[a] = w3/g1[a] + 1 - frac[a]
			}

			c00 := g.img.Fetch(posX+ptX*h0[0], posY+ptY*h0[1])
			c10 := g.img.Fetch(posX+ptX*h1[0], posY+ptY*h0[1])
			c01 := g.img.Fetch(posX+ptX*h0[0], posY+ptY*h1[1])
			c11 := g.img.Fetch(posX+ptX*h1[0], posY+ptY*h1[1])
			var color [4]float64
			for i := range color {
				color[i] = g.scale * (g0[1]*(g0[0]*c00[i]+g1[0]*c10[i]) +
					g1[1]*(g0[0]*c01[i]+g1[0]*c11[i]))
			}
			out.Set(ox, oy, compMask(color, g.comps))
		}
	}
	return out, nil
}

// Polar resamples with a radially symmetric kernel, the mirror of
// sampler.SamplePolar: per-tap distance test against the cutoff radius,
// LUT lerp, weight-sum normalization with a nearest fallback for a
// degenerate sum.
func Polar(src *sampler.SampleSrc, p *sampler.FilterParams) (*Image, error) {
	g, err := resolve(src)
	if err != nil {
		return nil, err
	}
	if p == nil || p.Filter.Kernel.Weight == nil {
		return nil, ErrNoKernel
	}
	if !p.Filter.Polar {
		return nil, fmt.Errorf("%w: %q", sampler.ErrFilterNotPolar, p.Filter.Kernel.Name)
	}

	invScale := 1.0
	if !p.NoWidening {
		if r := math.Min(g.rx, g.ry); r < 1 {
			invScale = 1 / r
		}
	}
	entries := lutEntries(p)
	prof := kernel.RadialLUT(p.Filter, entries, invScale, cutoff(p))

	cutR := prof.CutoffRadius
	bound := int(math.Ceil(cutR))
	if bound < 1 {
		bound = 1
	}
	idxScale := 0.0
	if prof.Radius > 0 {
		idxScale = float64(entries-1) / prof.Radius
	}

	out := g.output()
	ptX, ptY := 1/float64(g.w), 1/float64(g.h)
	for oy := 0; oy < g.outH; oy++ {
		for ox := 0; ox < g.outW; ox++ {
			posX, posY := g.pos(ox, oy)
			fx := fract(posX*float64(g.w) - 0.5)
			fy := fract(posY*float64(g.h) - 0.5)
			baseX := posX - ptX*fx
			baseY := posY - ptY*fy

			var color [4]float64
			wsum := 0.0
			for dy := 1 - bound; dy <= bound; dy++ {
				for dx := 1 - bound; dx <= bound; dx++ {
					d := math.Hypot(float64(dx)-fx, float64(dy)-fy)
					if d >= cutR {
						continue
					}
					w := lutAt(prof.Weights, d, idxScale)
					wsum += w
					c := g.img.Fetch(baseX+ptX*float64(dx), baseY+ptY*float64(dy))
					for i := range color {
						color[i] += w * c[i]
					}
				}
			}
			if wsum > 0 {
				f := g.scale / wsum
				for i := range color {
					color[i] *= f
				}
			} else {
				color = g.img.Fetch(posX, posY)
				for i := range color {
					color[i] *= g.scale
				}
			}
			out.Set(ox, oy, compMask(color, g.comps))
		}
	}
	return out, nil
}

// Ortho convolves along one axis, the mirror of sampler.SampleOrtho
// including its off-axis rect forcing, so two passes compose into a full
// resize exactly like the emitted programs do. Antiringing clamps toward
// the range spanned by the two center taps.
func Ortho(pass sampler.SepPass, src *sampler.SampleSrc, p *sampler.FilterParams) (*Image, error) {
	if pass >= sampler.SepPasses {
		return nil, fmt.Errorf("%w: %d", sampler.ErrBadPass, pass)
	}
	fixed := sampler.SampleSrc{}
	if src != nil {
		fixed = *src
	}
	if fixed.Tex != nil {
		switch pass {
		case sampler.SepVert:
			fixed.Rect.X0 = 0
			fixed.Rect.X1 = float64(fixed.Tex.Width())
			fixed.NewW = fixed.Tex.Width()
		case sampler.SepHoriz:
			fixed.Rect.Y0 = 0
			fixed.Rect.Y1 = float64(fixed.Tex.Height())
			fixed.NewH = fixed.Tex.Height()
		}
	}
	g, err := resolve(&fixed)
	if err != nil {
		return nil, err
	}
	if p == nil || p.Filter.Kernel.Weight == nil {
		return nil, ErrNoKernel
	}
	if p.Filter.Polar {
		return nil, fmt.Errorf("%w: %q", sampler.ErrFilterPolar, p.Filter.Kernel.Name)
	}

	ratio := g.ry
	if pass == sampler.SepHoriz {
		ratio = g.rx
	}
	invScale := 1.0
	if !p.NoWidening && ratio < 1 {
		invScale = 1 / ratio
	}
	mat := kernel.PhaseLUT(p.Filter, lutEntries(p), invScale)
	taps := mat.Taps
	half := float64(taps/2 - 1)
	antiring := p.Antiring > 0
	strength := math.Min(p.Antiring, 1)

	out := g.output()
	ptX, ptY := 1/float64(g.w), 1/float64(g.h)
	for oy := 0; oy < g.outH; oy++ {
		for ox := 0; ox < g.outW; ox++ {
			posX, posY := g.pos(ox, oy)

			var fc float64
			if pass == sampler.SepHoriz {
				fc = fract(posX*float64(g.w) - 0.5)
			} else {
				fc = fract(posY*float64(g.h) - 0.5)
			}
			baseX, baseY := posX, posY
			if pass == sampler.SepHoriz {
				baseX = posX - ptX*(fc+half)
			} else {
				baseY = posY - ptY*(fc+half)
			}
			row := int(fc * float64(mat.Rows))
			if row < 0 {
				row = 0
			} else if row > mat.Rows-1 {
				row = mat.Rows - 1
			}

			var color, lo, hi [4]float64
			for n := 0; n < taps; n++ {
				w := float64(mat.Weights[row*mat.Stride+n])
				var c [4]float64
				if pass == sampler.SepHoriz {
					c = g.img.Fetch(baseX+ptX*float64(n), baseY)
				} else {
					c = g.img.Fetch(baseX, baseY+ptY*float64(n))
				}
				for i := range color {
					color[i] += w * c[i]
				}
				if antiring && n == taps/2-1 {
					lo, hi = c, c
				}
				if antiring && n == taps/2 {
					for i := range c {
						lo[i] = math.Min(lo[i], c[i])
						hi[i] = math.Max(hi[i], c[i])
					}
				}
			}
			if antiring {
				for i := range color {
					clamped := math.Min(math.Max(color[i], lo[i]), hi[i])
					color[i] += (clamped - color[i]) * strength
				}
			}
			if g.scale != 1 {
				for i := range color {
					color[i] *= g.scale
				}
			}
			out.Set(ox, oy, compMask(color, g.comps))
		}
	}
	return out, nil
}
