// Package softscale is the CPU reference implementation of the sampling
// engines: the same geometry mapping, LUT lookup and accumulation rules
// as the emitted WGSL, run as plain float64 loops over pixel buffers.
//
// It exists so engine behavior is testable without a GPU, and doubles as
// a small software scaler. Resize covers everyday image scaling through
// golang.org/x/image/draw; Direct, Bicubic, Polar, Ortho and Deband
// mirror the shader paths on float buffers.
//
// Results match the generated programs up to float precision: the CPU
// path computes in float64 where the GPU runs f32, and it reproduces
// hardware bilinear filtering exactly rather than at the reduced
// sub-texel precision real samplers use.
package softscale
