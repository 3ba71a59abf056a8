package sampler

import (
	"fmt"
	"math"

	"github.com/gogpu/sampler/kernel"
	"github.com/gogpu/sampler/shader"
)

// SepPass selects which axis of a separable resize a SampleOrtho call
// applies.
type SepPass uint8

const (
	// SepVert applies the vertical component of the transformation.
	SepVert SepPass = iota

	// SepHoriz applies the horizontal component.
	SepHoriz

	// SepPasses counts the pass selectors.
	SepPasses
)

// String returns the axis name for logs.
func (p SepPass) String() string {
	if p == SepHoriz {
		return "horizontal"
	}
	return "vertical"
}

// SampleOrtho emits a 1D convolution along one axis of the source. Two
// calls, one per pass, compose into a full 2D resize at a fraction of the
// polar engine's cost. The irrelevant axis of src.Rect is ignored: the
// call forces it to the texture's full extent so that the intermediate
// image keeps every column (or row) the other pass will need.
//
// The kernel is materialized into a phase matrix held in p.LUT: one row
// of pre-normalized tap weights per sub-texel phase, taps packed four to
// an RGBA texel. Antiringing applies here and only here; when
// p.Antiring > 0 the result is clamped toward the range spanned by the
// two center taps.
//
// Only 2D textures are supported. p.Filter must not be polar.
func SampleOrtho(sh *shader.Builder, pass SepPass, src *SampleSrc, p *FilterParams) error {
	if pass >= SepPasses {
		return fmt.Errorf("%w: %d", ErrBadPass, pass)
	}
	fixed := SampleSrc{}
	if src != nil {
		fixed = *src
	}
	if fixed.Tex != nil {
		switch pass {
		case SepVert:
			fixed.Rect.X0 = 0
			fixed.Rect.X1 = float64(fixed.Tex.Width())
			fixed.NewW = fixed.Tex.Width()
		case SepHoriz:
			fixed.Rect.Y0 = 0
			fixed.Rect.Y1 = float64(fixed.Tex.Height())
			fixed.NewH = fixed.Tex.Height()
		}
	}
	g, err := resolveSample(&fixed)
	if err != nil {
		return err
	}
	if p == nil || p.LUT == nil {
		return ErrMissingLUT
	}
	if p.Filter.Polar {
		return fmt.Errorf("%w: %q", ErrFilterPolar, p.Filter.Kernel.Name)
	}

	ratio := g.ry
	if pass == SepHoriz {
		ratio = g.rx
	}
	invScale := 1.0
	if !p.NoWidening && ratio < 1 {
		invScale = 1 / ratio
	}
	rows := p.lutEntries()

	obj := p.LUT
	fp := lutFingerprint(LUTPhase, p.Filter, rows, p.cutoff(), invScale, p.Antiring, p.NoWidening)
	rebuilt := obj.ensure(fp, func() lutData {
		mat := kernel.PhaseLUT(p.Filter, rows, invScale)
		return lutData{
			layout:  LUTPhase,
			weights: mat.Weights,
			entries: rows,
			taps:    mat.Taps,
			stride:  mat.Stride,
			radius:  mat.Radius,
			cutoff:  mat.Radius,
		}
	})
	taps := obj.Taps()

	variant := variantFragment
	if computeEligible(sh.Caps(), p, 0) {
		variant = variantCompute
	}
	if sh.Stage() == shader.StageCompute && variant != variantCompute {
		return fmt.Errorf("%w: program is compute-stage but the compute fast path is unavailable",
			ErrNoShaderPath)
	}
	if variant == variantCompute {
		if !sh.SetCompute(computeGroupDim, computeGroupDim) {
			return fmt.Errorf("%w: %dx%d workgroup rejected", ErrNoShaderPath,
				computeGroupDim, computeGroupDim)
		}
	}
	Logger().Debug("sampler: ortho",
		"pass", pass.String(),
		"variant", variant.String(),
		"kernel", p.Filter.Kernel.Name,
		"taps", taps,
		"antiring", p.Antiring,
		"lut_rebuilt", rebuilt)

	tex := sh.BindTexture2D("src_tex")
	smp := sh.BindSampler("src_smp")
	lut := sh.BindTexture2D("lut_tex")
	dst := ""
	if variant == variantCompute {
		dst = sh.BindStorageTexture2D("dst_img", storageFormat(sh.Caps()))
	}

	v := emitGeom(sh, g)
	ax := "y"
	if pass == SepHoriz {
		ax = "x"
	}
	fcoord := sh.Fresh("fcoord")
	base := sh.Fresh("base")
	row := sh.Fresh("row")
	sh.Stmt("let %s: f32 = fract(%s.%s * %s.%s - 0.5);", fcoord, v.pos, ax, v.size, ax)
	half := shader.Float(float64(taps/2 - 1))
	if pass == SepHoriz {
		sh.Stmt("let %s: vec2<f32> = vec2<f32>(%s.x - %s.x * (%s + %s), %s.y);",
			base, v.pos, v.pt, fcoord, half, v.pos)
	} else {
		sh.Stmt("let %s: vec2<f32> = vec2<f32>(%s.x, %s.y - %s.y * (%s + %s));",
			base, v.pos, v.pos, v.pt, fcoord, half)
	}
	sh.Stmt("let %s: i32 = clamp(i32(%s * %s), 0, %d);",
		row, fcoord, shader.Float(float64(obj.Rows())), obj.Rows()-1)

	antiring := p.Antiring > 0
	w4 := sh.Fresh("w4")
	c := sh.Fresh("c")
	sh.Stmt("var %s: vec4<f32>;", w4)
	sh.Stmt("var %s: vec4<f32>;", c)
	lo, hi := "", ""
	if antiring {
		lo, hi = sh.Fresh("lo"), sh.Fresh("hi")
		sh.Stmt("var %s: vec4<f32>;", lo)
		sh.Stmt("var %s: vec4<f32>;", hi)
	}

	swz := [4]string{"x", "y", "z", "w"}
	for n := 0; n < taps; n++ {
		if n%4 == 0 {
			sh.Stmt("%s = textureLoad(%s, vec2<i32>(%d, %s), 0);", w4, lut, n/4, row)
		}
		if pass == SepHoriz {
			sh.Stmt("%s = textureSampleLevel(%s, %s, vec2<f32>(%s.x + %s.x * %s, %s.y), 0.0);",
				c, tex, smp, base, v.pt, shader.Float(float64(n)), base)
		} else {
			sh.Stmt("%s = textureSampleLevel(%s, %s, vec2<f32>(%s.x, %s.y + %s.y * %s), 0.0);",
				c, tex, smp, base, base, v.pt, shader.Float(float64(n)))
		}
		sh.Stmt("color = color + %s.%s * %s;", w4, swz[n%4], c)
		if antiring && n == taps/2-1 {
			sh.Stmt("%s = %s;", lo, c)
			sh.Stmt("%s = %s;", hi, c)
		}
		if antiring && n == taps/2 {
			sh.Stmt("%s = min(%s, %s);", lo, lo, c)
			sh.Stmt("%s = max(%s, %s);", hi, hi, c)
		}
	}
	if antiring {
		strength := math.Min(p.Antiring, 1)
		sh.Stmt("color = mix(color, clamp(color, %s, %s), %s);", lo, hi, shader.Float(strength))
	}
	if g.scale != 1 {
		sh.Stmt("color = %s * color;", shader.Float(g.scale))
	}
	emitCompMask(sh, g.comps)
	if variant == variantCompute {
		emitComputeStore(sh, g, dst)
	}
	return nil
}
