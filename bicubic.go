package sampler

import (
	"fmt"

	"github.com/gogpu/sampler/shader"
)

// SampleBicubic emits an efficient bicubic sampler built on hardware
// bilinear interpolation: the sixteen cubic B-spline taps collapse into
// four bilinear fetches with analytically derived offsets and weights.
// Requires the source texture to be configured for linear sampling.
// Only works well when upscaling; there is no anti-aliasing, so avoid it
// for downscaling.
//
// The emitted code assigns the sampled color; in a compute-stage program
// the caller stores it.
func SampleBicubic(sh *shader.Builder, src *SampleSrc) error {
	g, err := resolveSample(src)
	if err != nil {
		return err
	}
	if g.tex.SampleMode() != SampleLinear {
		return fmt.Errorf("%w: bicubic needs hardware bilinear fetches", ErrLinearRequired)
	}

	tex := sh.BindTexture2D("src_tex")
	smp := sh.BindSampler("src_smp")
	v := emitGeom(sh, g)

	frac := sh.Fresh("fcoord")
	inv := sh.Fresh("inv")
	sh.Stmt("let %s: vec2<f32> = fract(%s * %s + vec2<f32>(0.5));", frac, v.pos, v.size)
	sh.Stmt("let %s: vec2<f32> = vec2<f32>(1.0) - %s;", inv, frac)

	// Cubic B-spline basis, evaluated per axis.
	w0 := sh.Fresh("w0")
	w1 := sh.Fresh("w1")
	w2 := sh.Fresh("w2")
	w3 := sh.Fresh("w3")
	sh.Stmt("let %s: vec2<f32> = (1.0 / 6.0) * %s * %s * %s;", w0, inv, inv, inv)
	sh.Stmt("let %s: vec2<f32> = vec2<f32>(2.0 / 3.0) - 0.5 * %s * %s * (vec2<f32>(2.0) - %s);",
		w1, frac, frac, frac)
	sh.Stmt("let %s: vec2<f32> = vec2<f32>(2.0 / 3.0) - 0.5 * %s * %s * (vec2<f32>(2.0) - %s);",
		w2, inv, inv, inv)
	sh.Stmt("let %s: vec2<f32> = (1.0 / 6.0) * %s * %s * %s;", w3, frac, frac, frac)

	// Pair the taps: one bilinear fetch replaces each adjacent pair,
	// positioned so the hardware lerp reproduces the pair's weights.
	g0 := sh.Fresh("g0")
	g1 := sh.Fresh("g1")
	h0 := sh.Fresh("h0")
	h1 := sh.Fresh("h1")
	sh.Stmt("let %s: vec2<f32> = %s + %s;", g0, w0, w1)
	sh.Stmt("let %s: vec2<f32> = %s + %s;", g1, w2, w3)
	sh.Stmt("let %s: vec2<f32> = %s / %s - vec2<f32>(1.0) - %s;", h0, w1, g0, frac)
	sh.Stmt("let %s: vec2<f32> = %s / %s + vec2<f32>(1.0) - %s;", h1, w3, g1, frac)

	c00 := sh.Fresh("c00")
	c10 := sh.Fresh("c10")
	c01 := sh.Fresh("c01")
	c11 := sh.Fresh("c11")
	sh.Stmt("let %s: vec4<f32> = textureSampleLevel(%s, %s, %s + %s * vec2<f32>(%s.x, %s.y), 0.0);",
		c00, tex, smp, v.pos, v.pt, h0, h0)
	sh.Stmt("let %s: vec4<f32> = textureSampleLevel(%s, %s, %s + %s * vec2<f32>(%s.x, %s.y), 0.0);",
		c10, tex, smp, v.pos, v.pt, h1, h0)
	sh.Stmt("let %s: vec4<f32> = textureSampleLevel(%s, %s, %s + %s * vec2<f32>(%s.x, %s.y), 0.0);",
		c01, tex, smp, v.pos, v.pt, h0, h1)
	sh.Stmt("let %s: vec4<f32> = textureSampleLevel(%s, %s, %s + %s * vec2<f32>(%s.x, %s.y), 0.0);",
		c11, tex, smp, v.pos, v.pt, h1, h1)

	sh.Stmt("color = %s * (%s.y * (%s.x * %s + %s.x * %s) + %s.y * (%s.x * %s + %s.x * %s));",
		shader.Float(g.scale), g0, g0, c00, g1, c10, g1, g0, c01, g1, c11)
	emitCompMask(sh, g.comps)
	return nil
}
