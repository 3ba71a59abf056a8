package sampler

import "github.com/gogpu/sampler/shader"

// SampleDirect emits a single native texture fetch at the mapped output
// coordinate, relying entirely on the texture's configured interpolation
// mode. It works for any scaling ratio but is low quality away from
// exact integer ratios: the useful cases are integer upscaling with
// nearest mode and exact 2x downscaling with linear mode.
//
// The emitted code assigns the sampled color; in a compute-stage program
// the caller stores it.
func SampleDirect(sh *shader.Builder, src *SampleSrc) error {
	g, err := resolveSample(src)
	if err != nil {
		return err
	}

	tex := sh.BindTexture2D("src_tex")
	smp := sh.BindSampler("src_smp")
	v := emitGeom(sh, g)
	sh.Stmt("color = %s * textureSampleLevel(%s, %s, %s, 0.0);",
		shader.Float(g.scale), tex, smp, v.pos)
	emitCompMask(sh, g.comps)
	return nil
}
