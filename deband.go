package sampler

import (
	"fmt"
	"math"

	"github.com/gogpu/sampler/shader"
)

// Deband removes visible quantization banding by replacing each pixel
// with a randomized local average wherever the neighborhood varies less
// than the threshold, then adds synthetic grain to mask what remains.
// Both stages are driven by a per-pixel deterministic hash, so identical
// inputs always produce identical output.
//
// A nil p selects DefaultDebandParams. Grain is applied even when
// p.Iterations is zero, which turns the call into a pure grain pass.
// When the source geometry implies a scale change the texture must be
// configured for linear sampling.
func Deband(sh *shader.Builder, src *SampleSrc, p *DebandParams) error {
	g, err := resolveSample(src)
	if err != nil {
		return err
	}
	if p == nil {
		p = &DefaultDebandParams
	}
	if g.scaling() && g.tex.SampleMode() != SampleLinear {
		return fmt.Errorf("%w: debanding while resampling", ErrLinearRequired)
	}
	Logger().Debug("sampler: deband",
		"iterations", p.Iterations,
		"threshold", p.Threshold,
		"radius", p.Radius,
		"grain", p.Grain)

	tex := sh.BindTexture2D("src_tex")
	smp := sh.BindSampler("src_smp")

	v := emitGeom(sh, g)
	seed := sh.Fresh("seed")
	sh.Stmt("let %s: vec2<f32> = floor(%s * %s);", seed, v.pos, v.size)
	h := shader.EmitPRNG(sh, seed)

	scale := shader.Float(g.scale)
	sh.Stmt("color = %s * textureSampleLevel(%s, %s, %s, 0.0);", scale, tex, smp, v.pos)

	if p.Iterations > 0 {
		dist := sh.Fresh("dist")
		dir := sh.Fresh("dir")
		o := sh.Fresh("o")
		avg := sh.Fresh("avg")
		diff := sh.Fresh("diff")
		sh.Stmt("var %s: f32;", dist)
		sh.Stmt("var %s: f32;", dir)
		sh.Stmt("var %s: vec2<f32>;", o)
		sh.Stmt("var %s: vec4<f32>;", avg)
		sh.Stmt("var %s: vec4<f32>;", diff)
		for i := 1; i <= p.Iterations; i++ {
			sh.Stmt("%s = prng_permute(%s);", h, h)
			sh.Stmt("%s = prng_rand(%s) * %s;", dist, h, shader.Float(p.Radius*float64(i)))
			sh.Stmt("%s = prng_permute(%s);", h, h)
			sh.Stmt("%s = prng_rand(%s) * %s;", dir, h, shader.Float(2*math.Pi))
			sh.Stmt("%s = %s * vec2<f32>(cos(%s), sin(%s));", o, dist, dir, dir)
			sh.Stmt("%s = vec4<f32>(0.0);", avg)
			for _, rot := range [4]string{
				"vec2<f32>(%[1]s.x, %[1]s.y)",
				"vec2<f32>(-%[1]s.y, %[1]s.x)",
				"vec2<f32>(-%[1]s.x, -%[1]s.y)",
				"vec2<f32>(%[1]s.y, -%[1]s.x)",
			} {
				off := fmt.Sprintf(rot, o)
				sh.Stmt("%s = %s + textureSampleLevel(%s, %s, %s + %s * %s, 0.0);",
					avg, avg, tex, smp, v.pos, v.pt, off)
			}
			sh.Stmt("%s = %s * %s;", avg, avg, shader.Float(g.scale*0.25))
			sh.Stmt("%s = abs(color - %s);", diff, avg)
			sh.Stmt("color = select(%s, color, %s > vec4<f32>(%s));",
				avg, diff, shader.Float(p.Threshold/(float64(i)*debandThresholdScale)))
		}
	}

	if p.Grain != 0 {
		noise := sh.Fresh("noise")
		sh.Stmt("var %s: vec3<f32>;", noise)
		for _, comp := range [3]string{"x", "y", "z"} {
			sh.Stmt("%s = prng_permute(%s);", h, h)
			sh.Stmt("%s.%s = prng_rand(%s);", noise, comp, h)
		}
		sh.Stmt("color = vec4<f32>(color.xyz + %s * (%s - vec3<f32>(0.5)), color.a);",
			shader.Float(p.Grain/debandGrainScale), noise)
	}

	emitCompMask(sh, g.comps)
	return nil
}

// Threshold and grain parameters are expressed in 8-bit-style units and
// divided down to the normalized [0,1] color range at emission time.
const (
	debandThresholdScale = 16384.0
	debandGrainScale     = 8192.0
)
