// Package sampler generates WGSL shader code for resampling and cleaning
// up image and video textures.
//
// # Overview
//
// sampler turns an abstract request, "sample this texture region,
// producing this many output pixels", into a correct shader program for
// the GoGPU ecosystem. It covers native/direct sampling, hardware
// bilinear-assisted bicubic, general polar (radially symmetric) kernels,
// general separable kernels applied one axis per pass, and a debanding
// filter for low-bit-depth sources. Filter lookup tables persist across
// frames through a caller-owned ShaderObj cache slot.
//
// Shader construction is synchronous CPU work on the calling goroutine.
// Executing the generated program (pipelines, bind groups, dispatch) is
// the caller's concern; the gpu sub-package stops at resource creation,
// LUT upload and shader-module compilation.
//
// # Quick Start
//
//	import (
//	    "github.com/gogpu/sampler"
//	    "github.com/gogpu/sampler/kernel"
//	    "github.com/gogpu/sampler/shader"
//	)
//
//	sh := shader.NewBuilder(caps)
//	var lut sampler.ShaderObj
//	defer lut.Destroy()
//
//	params := sampler.DefaultFilterParams()
//	params.Filter = kernel.Config{Kernel: kernel.EwaLanczos, Polar: true}
//	params.LUT = &lut
//
//	src := sampler.SampleSrc{Tex: tex, NewW: 1920, NewH: 1080}
//	if err := sampler.SamplePolar(sh, &src, &params); err != nil {
//	    // fall back to a cheaper path
//	    err = sampler.SampleBicubic(sh, &src)
//	}
//	program, err := shader.CompileProgram(sh)
//
// # Architecture
//
// The module is organized into:
//   - Root package: the engines (direct, bicubic, polar, ortho, deband)
//     and the ShaderObj LUT cache
//   - kernel: filter weight functions and LUT materialization
//   - shader: WGSL program assembly, compilation and caching
//   - gpu: texture and LUT resources on the wgpu HAL
//   - softscale: CPU reference implementation of the same math
//
// # Coordinate System
//
// Source rectangles are in texel coordinates of the source texture,
// origin top-left, fractional and flipped (negative span) rectangles
// allowed. Emitted programs map the full output over uv in [0,1].
package sampler

// Version information
const (
	// Version is the current version of the library
	Version = "0.2.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 2

	// VersionPatch is the patch version
	VersionPatch = 0
)
