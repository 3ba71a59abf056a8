package sampler

import (
	"fmt"

	"github.com/gogpu/sampler/shader"
)

// computeGroupDim is the workgroup dimension of engine-emitted compute
// programs: 16x16 stays within the default invocation limit.
const computeGroupDim = 16

// geomVars names the WGSL locals shared by the sampling emitters.
type geomVars struct {
	uv   string // output position in [0,1]^2
	pos  string // source texture coordinate, normalized
	size string // source texture dimensions as vec2<f32>
	pt   string // one source texel in normalized units

	// org and span are the literal rect mapping terms, for emitters
	// that re-derive positions (the compute tile path).
	org, span string
}

// emitGeom declares the shared sampling locals. In a compute-stage
// program the output position is derived from the global invocation id;
// fragment programs receive it as the uv varying.
func emitGeom(sh *shader.Builder, g sampleGeom) geomVars {
	v := geomVars{uv: "uv"}
	if sh.Stage() == shader.StageCompute {
		v.uv = sh.Fresh("uv")
		sh.Stmt("let %s: vec2<f32> = (vec2<f32>(gid.xy) + vec2<f32>(0.5)) / vec2<f32>(%s, %s);",
			v.uv, shader.Float(float64(g.outW)), shader.Float(float64(g.outH)))
	}
	v.org = fmt.Sprintf("vec2<f32>(%s, %s)",
		shader.Float(g.rect.X0/float64(g.w)), shader.Float(g.rect.Y0/float64(g.h)))
	v.span = fmt.Sprintf("vec2<f32>(%s, %s)",
		shader.Float((g.rect.X1-g.rect.X0)/float64(g.w)),
		shader.Float((g.rect.Y1-g.rect.Y0)/float64(g.h)))

	v.size = sh.Fresh("size")
	v.pt = sh.Fresh("pt")
	v.pos = sh.Fresh("pos")
	sh.Stmt("let %s: vec2<f32> = vec2<f32>(%s, %s);",
		v.size, shader.Float(float64(g.w)), shader.Float(float64(g.h)))
	sh.Stmt("let %s: vec2<f32> = vec2<f32>(1.0) / %s;", v.pt, v.size)
	sh.Stmt("let %s: vec2<f32> = %s + %s * %s;", v.pos, v.org, v.uv, v.span)
	return v
}

// emitCompMask trims the accumulated color to the requested component
// count, matching what a fetch from a texture with that many channels
// returns: missing color channels 0, missing alpha 1.
func emitCompMask(sh *shader.Builder, comps int) {
	switch comps {
	case 1:
		sh.Stmt("color = vec4<f32>(color.x, 0.0, 0.0, 1.0);")
	case 2:
		sh.Stmt("color = vec4<f32>(color.xy, 0.0, 1.0);")
	case 3:
		sh.Stmt("color = vec4<f32>(color.xyz, 1.0);")
	}
}

// emitComputeStore bounds-checks the invocation against the output size
// and writes the accumulated color to the storage destination.
func emitComputeStore(sh *shader.Builder, g sampleGeom, dst string) {
	sh.Stmt("if (gid.x < %du && gid.y < %du) {", g.outW, g.outH)
	sh.Stmt("    textureStore(%s, vec2<i32>(gid.xy), color);", dst)
	sh.Stmt("}")
}

// dispatchVariant is the closed set of shader implementations the filter
// engines choose from.
type dispatchVariant uint8

const (
	variantFragment dispatchVariant = iota
	variantGather
	variantCompute
)

func (v dispatchVariant) String() string {
	switch v {
	case variantCompute:
		return "compute"
	case variantGather:
		return "gather"
	default:
		return "fragment"
	}
}

// computeEligible reports whether the compute fast path can be chosen:
// compute dispatch and storage writes available and permitted, the
// workgroup within the invocation limit, and the workgroup storage
// requirement satisfied.
func computeEligible(caps shader.Capabilities, p *FilterParams, shmemBytes int) bool {
	return caps.Compute && caps.StorageWrite && !p.NoCompute &&
		caps.AllowsWorkgroup(computeGroupDim, computeGroupDim) &&
		caps.AllowsWorkgroupStorage(shmemBytes)
}

// storageFormat resolves the destination texel format for compute
// dispatch.
func storageFormat(caps shader.Capabilities) string {
	if caps.StorageFormat != "" {
		return caps.StorageFormat
	}
	return "rgba8unorm"
}
