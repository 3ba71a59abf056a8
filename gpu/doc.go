// Package gpu adapts the sampling engines to the gogpu/wgpu HAL.
//
// The package stops deliberately short of execution: it wraps HAL textures
// as engine sources, uploads materialized filter LUTs, compiles programs
// into shader modules and derives builder capabilities from a gogpu device
// provider. Bind groups, pipelines and dispatch stay with the caller, who
// already owns a render or compute loop with its own encoder lifecycle.
//
// The usual flow:
//
//	ctx, err := gpu.NewContext(provider)
//	sh := ctx.NewBuilder(shader.WithLabel("upscale"))
//	err = sampler.SamplePolar(sh, &src, &params)
//	program, err := shader.CompileProgram(sh)
//	module, err := ctx.NewShaderModule(program)
//	lut, err := ctx.UploadLUT(params.LUT)
//
// The module, the LUT texture view and the program's binding list are then
// everything a caller needs to build the bind group and run the pass.
package gpu
