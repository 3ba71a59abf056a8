package sampler

import (
	"fmt"
	"math"

	"github.com/gogpu/sampler/kernel"
	"github.com/gogpu/sampler/shader"
)

// SamplePolar emits a 2D radially symmetric convolution over the source,
// the general-purpose high-quality scaler for both upscaling and
// downscaling. The kernel is materialized into a radial LUT held in
// p.LUT and rebuilt only when the configuration changes.
//
// The implementation is chosen per call from a closed set: a compute
// fast path that stages the input tile in workgroup memory and writes a
// storage texture, a textureGather fragment variant for single-component
// sources, and a plain fragment loop. All variants produce numerically
// equivalent output. The compute path owns the whole program: it switches
// the builder to a compute entry point and emits the final store itself.
//
// p.Filter must be a polar configuration. Antiringing does not apply to
// polar kernels; a requested strength is ignored.
func SamplePolar(sh *shader.Builder, src *SampleSrc, p *FilterParams) error {
	g, err := resolveSample(src)
	if err != nil {
		return err
	}
	if p == nil || p.LUT == nil {
		return ErrMissingLUT
	}
	if !p.Filter.Polar {
		return fmt.Errorf("%w: %q", ErrFilterNotPolar, p.Filter.Kernel.Name)
	}

	invScale := 1.0
	if !p.NoWidening {
		if r := math.Min(g.rx, g.ry); r < 1 {
			invScale = 1 / r
		}
	}
	entries := p.lutEntries()
	cutoff := p.cutoff()

	obj := p.LUT
	fp := lutFingerprint(LUTRadial, p.Filter, entries, cutoff, invScale, p.Antiring, p.NoWidening)
	rebuilt := obj.ensure(fp, func() lutData {
		prof := kernel.RadialLUT(p.Filter, entries, invScale, cutoff)
		return lutData{
			layout:  LUTRadial,
			weights: prof.Weights,
			entries: entries,
			radius:  prof.Radius,
			cutoff:  prof.CutoffRadius,
		}
	})

	cutR := obj.CutoffRadius()
	bound := int(math.Ceil(cutR))
	if bound < 1 {
		bound = 1
	}
	tileW := int(math.Ceil(float64(computeGroupDim)/g.rx)) + 2*bound + 1
	tileH := int(math.Ceil(float64(computeGroupDim)/g.ry)) + 2*bound + 1
	shmem := g.comps * tileW * tileH * 4

	variant := variantFragment
	switch {
	case computeEligible(sh.Caps(), p, shmem):
		variant = variantCompute
	case sh.Caps().Gather && g.comps == 1:
		variant = variantGather
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
	Logger().Debug("sampler: polar",
		"variant", variant.String(),
		"kernel", p.Filter.Kernel.Name,
		"radius", obj.Radius(),
		"taps", 2*bound,
		"lut_rebuilt", rebuilt)

	tex := sh.BindTexture2D("src_tex")
	smp := sh.BindSampler("src_smp")
	lut := sh.BindTexture2D("lut_tex")
	dst := ""
	if variant == variantCompute {
		dst = sh.BindStorageTexture2D("dst_img", storageFormat(sh.Caps()))
	}

	v := emitGeom(sh, g)
	fcoord := sh.Fresh("fcoord")
	base := sh.Fresh("base")
	sh.Stmt("let %s: vec2<f32> = fract(%s * %s - vec2<f32>(0.5));", fcoord, v.pos, v.size)
	sh.Stmt("let %s: vec2<f32> = %s - %s * %s;", base, v.pos, v.pt, fcoord)

	// Weight lookup with a manual lerp between LUT entries, so the LUT
	// texture needs no filterable format.
	wfn := sh.Fresh("lut_at")
	idxScale := 0.0
	if obj.Radius() > 0 {
		idxScale = float64(entries-1) / obj.Radius()
	}
	sh.Helper(wfn, fmt.Sprintf(`fn %s(d: f32) -> f32 {
    let f: f32 = clamp(d * %s, 0.0, %s);
    let i0: i32 = i32(f);
    let i1: i32 = min(i0 + 1, %d);
    let w0: f32 = textureLoad(%s, vec2<i32>(i0, 0), 0).x;
    let w1: f32 = textureLoad(%s, vec2<i32>(i1, 0), 0).x;
    return mix(w0, w1, f - f32(i0));
}`, wfn, shader.Float(idxScale), shader.Float(float64(entries-1)), entries-1, lut, lut))

	switch variant {
	case variantCompute:
		emitPolarCompute(sh, g, v, tex, smp, fcoord, base, wfn, cutR, bound, tileW, tileH)
	case variantGather:
		emitPolarGather(sh, g, v, tex, smp, fcoord, base, wfn, cutR, bound)
	default:
		emitPolarFragment(sh, g, v, tex, smp, fcoord, base, wfn, cutR, bound)
	}
	emitCompMask(sh, g.comps)
	if variant == variantCompute {
		emitComputeStore(sh, g, dst)
	}
	return nil
}

// polarSkip reports whether a tap at integer offset (dx, dy) can never
// fall inside the cutoff radius, regardless of the sub-texel phase. The
// phase lies in [0,1)^2, so positive offsets get a one-texel allowance.
func polarSkip(dx, dy int, cutoffRadius float64) bool {
	xx, yy := dx, dy
	if xx > 0 {
		xx--
	}
	if yy > 0 {
		yy--
	}
	return math.Hypot(float64(xx), float64(yy)) >= cutoffRadius
}

// emitPolarFragment emits the plain per-tap accumulation loop.
func emitPolarFragment(sh *shader.Builder, g sampleGeom, v geomVars,
	tex, smp, fcoord, base, wfn string, cutR float64, bound int) {

	cut := shader.Float(cutR)
	d := sh.Fresh("d")
	w := sh.Fresh("w")
	wsum := sh.Fresh("wsum")
	c := sh.Fresh("c")
	sh.Stmt("var %s: f32;", d)
	sh.Stmt("var %s: f32;", w)
	sh.Stmt("var %s: f32 = 0.0;", wsum)
	sh.Stmt("var %s: vec4<f32>;", c)

	for dy := 1 - bound; dy <= bound; dy++ {
		for dx := 1 - bound; dx <= bound; dx++ {
			if polarSkip(dx, dy, cutR) {
				continue
			}
			fx, fy := shader.Float(float64(dx)), shader.Float(float64(dy))
			sh.Stmt("%s = length(vec2<f32>(%s, %s) - %s);", d, fx, fy, fcoord)
			sh.Stmt("if (%s < %s) {", d, cut)
			sh.Stmt("    %s = %s(%s);", w, wfn, d)
			sh.Stmt("    %s = %s + %s;", wsum, wsum, w)
			sh.Stmt("    %s = textureSampleLevel(%s, %s, %s + %s * vec2<f32>(%s, %s), 0.0);",
				c, tex, smp, base, v.pt, fx, fy)
			sh.Stmt("    color = color + %s * %s;", w, c)
			sh.Stmt("}")
		}
	}
	emitPolarNormalize(sh, g, v, tex, smp, wsum)
}

// emitPolarNormalize divides by the summed weights rather than the
// kernel's analytic integral; a degenerate sum falls back to the nearest
// sample.
func emitPolarNormalize(sh *shader.Builder, g sampleGeom, v geomVars, tex, smp, wsum string) {
	sh.Stmt("if (%s > 0.0) {", wsum)
	sh.Stmt("    color = color * (%s / %s);", shader.Float(g.scale), wsum)
	sh.Stmt("} else {")
	sh.Stmt("    color = %s * textureSampleLevel(%s, %s, %s, 0.0);",
		shader.Float(g.scale), tex, smp, v.pos)
	sh.Stmt("}")
}

// gatherQuad is the texel order returned by textureGather: components
// x, y, z, w hold the quad's (0,1), (1,1), (1,0), (0,0) texels.
var gatherQuad = [4][2]int{{0, 1}, {1, 1}, {1, 0}, {0, 0}}

// emitPolarGather emits the single-component fragment variant: one
// textureGather per 2x2 block replaces four fetches.
func emitPolarGather(sh *shader.Builder, g sampleGeom, v geomVars,
	tex, smp, fcoord, base, wfn string, cutR float64, bound int) {

	cut := shader.Float(cutR)
	d := sh.Fresh("d")
	w := sh.Fresh("w")
	wsum := sh.Fresh("wsum")
	csum := sh.Fresh("csum")
	q := sh.Fresh("q")
	sh.Stmt("var %s: f32;", d)
	sh.Stmt("var %s: f32;", w)
	sh.Stmt("var %s: f32 = 0.0;", wsum)
	sh.Stmt("var %s: f32 = 0.0;", csum)
	sh.Stmt("var %s: vec4<f32>;", q)

	comps := [4]string{"x", "y", "z", "w"}
	for qy := 1 - bound; qy <= bound; qy += 2 {
		for qx := 1 - bound; qx <= bound; qx += 2 {
			quadLive := false
			for _, off := range gatherQuad {
				if !polarSkip(qx+off[0], qy+off[1], cutR) {
					quadLive = true
				}
			}
			if !quadLive {
				continue
			}
			sh.Stmt("%s = textureGather(0, %s, %s, %s + %s * vec2<f32>(%s, %s));",
				q, tex, smp, base, v.pt,
				shader.Float(float64(qx)+0.5), shader.Float(float64(qy)+0.5))
			for i, off := range gatherQuad {
				dx, dy := qx+off[0], qy+off[1]
				if polarSkip(dx, dy, cutR) {
					continue
				}
				sh.Stmt("%s = length(vec2<f32>(%s, %s) - %s);",
					d, shader.Float(float64(dx)), shader.Float(float64(dy)), fcoord)
				sh.Stmt("if (%s < %s) {", d, cut)
				sh.Stmt("    %s = %s(%s);", w, wfn, d)
				sh.Stmt("    %s = %s + %s;", wsum, wsum, w)
				sh.Stmt("    %s = %s + %s * %s.%s;", csum, csum, w, q, comps[i])
				sh.Stmt("}")
			}
		}
	}
	sh.Stmt("if (%s > 0.0) {", wsum)
	sh.Stmt("    color = vec4<f32>(%s * (%s / %s), 0.0, 0.0, 1.0);",
		csum, shader.Float(g.scale), wsum)
	sh.Stmt("} else {")
	sh.Stmt("    color = %s * textureSampleLevel(%s, %s, %s, 0.0);",
		shader.Float(g.scale), tex, smp, v.pos)
	sh.Stmt("}")
}

// emitPolarCompute emits the tiled compute variant: the workgroup
// cooperatively stages every texel its 16x16 output block can touch into
// workgroup memory, barriers, then accumulates from the tile. Channels
// are stored in separate scalar arrays sized to the source component
// count, which keeps the tile within the workgroup storage limit.
func emitPolarCompute(sh *shader.Builder, g sampleGeom, v geomVars,
	tex, smp, fcoord, base, wfn string, cutR float64, bound, tileW, tileH int) {

	cut := shader.Float(cutR)

	// Tile origin shared by the whole workgroup, derived from its first
	// output pixel so the load loop stays uniform.
	wuv := sh.Fresh("wuv")
	wpos := sh.Fresh("wpos")
	wbase := sh.Fresh("wbase")
	rel := sh.Fresh("rel")
	sh.Stmt("let %s: vec2<f32> = (vec2<f32>(wid.xy * %du) + vec2<f32>(0.5)) / vec2<f32>(%s, %s);",
		wuv, computeGroupDim, shader.Float(float64(g.outW)), shader.Float(float64(g.outH)))
	sh.Stmt("let %s: vec2<f32> = %s + %s * %s;", wpos, v.org, wuv, v.span)
	sh.Stmt("let %s: vec2<f32> = %s - %s * fract(%s * %s - vec2<f32>(0.5));",
		wbase, wpos, v.pt, wpos, v.size)
	sh.Stmt("let %s: vec2<i32> = vec2<i32>(round((%s - %s) * %s));", rel, base, wbase, v.size)

	swz := [4]string{"x", "y", "z", "w"}
	tiles := make([]string, g.comps)
	for i := range tiles {
		tiles[i] = sh.Shared(fmt.Sprintf("in%d", i), "f32", tileW*tileH)
	}

	lx := sh.Fresh("lx")
	ly := sh.Fresh("ly")
	tc := sh.Fresh("tc")
	sh.Stmt("let %s: i32 = i32(lidx %% %du);", lx, computeGroupDim)
	sh.Stmt("let %s: i32 = i32(lidx / %du);", ly, computeGroupDim)
	sh.Stmt("var %s: vec4<f32>;", tc)
	b1 := shader.Float(float64(bound - 1))
	sh.Stmt("for (var ty: i32 = %s; ty < %d; ty = ty + %d) {", ly, tileH, computeGroupDim)
	sh.Stmt("    for (var tx: i32 = %s; tx < %d; tx = tx + %d) {", lx, tileW, computeGroupDim)
	sh.Stmt("        %s = textureSampleLevel(%s, %s, %s + %s * vec2<f32>(f32(tx) - %s, f32(ty) - %s), 0.0);",
		tc, tex, smp, wbase, v.pt, b1, b1)
	for i, tile := range tiles {
		sh.Stmt("        %s[ty * %d + tx] = %s.%s;", tile, tileW, tc, swz[i])
	}
	sh.Stmt("    }")
	sh.Stmt("}")
	sh.Stmt("workgroupBarrier();")

	d := sh.Fresh("d")
	w := sh.Fresh("w")
	wsum := sh.Fresh("wsum")
	ti := sh.Fresh("ti")
	sh.Stmt("var %s: f32;", d)
	sh.Stmt("var %s: f32;", w)
	sh.Stmt("var %s: f32 = 0.0;", wsum)
	sh.Stmt("var %s: i32;", ti)

	for dy := 1 - bound; dy <= bound; dy++ {
		for dx := 1 - bound; dx <= bound; dx++ {
			if polarSkip(dx, dy, cutR) {
				continue
			}
			sh.Stmt("%s = length(vec2<f32>(%s, %s) - %s);",
				d, shader.Float(float64(dx)), shader.Float(float64(dy)), fcoord)
			sh.Stmt("if (%s < %s) {", d, cut)
			sh.Stmt("    %s = %s(%s);", w, wfn, d)
			sh.Stmt("    %s = %s + %s;", wsum, wsum, w)
			sh.Stmt("    %s = (%s.y + %d) * %d + %s.x + %d;", ti, rel, dy+bound-1, tileW, rel, dx+bound-1)
			sh.Stmt("    color = color + %s * %s;", w, tileVec4(tiles, ti))
			sh.Stmt("}")
		}
	}
	emitPolarNormalize(sh, g, v, tex, smp, wsum)
}

// tileVec4 reconstructs a vec4 expression from the per-component tile
// arrays, padding missing channels the way a texture fetch would.
func tileVec4(tiles []string, ti string) string {
	parts := [4]string{"0.0", "0.0", "0.0", "1.0"}
	for i, t := range tiles {
		parts[i] = fmt.Sprintf("%s[%s]", t, ti)
	}
	return fmt.Sprintf("vec4<f32>(%s, %s, %s, %s)", parts[0], parts[1], parts[2], parts[3])
}
