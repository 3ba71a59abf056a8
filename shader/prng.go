package shader

import "math"

// Deterministic per-pixel PRNG used by the deband shader. The generator is
// a permutation polynomial hash over mod-289 arithmetic: cheap, stateless
// across invocations, and fully determined by the seed coordinates, so the
// same input always produces the same output.
//
// The Go functions mirror the emitted WGSL exactly (up to float precision)
// so the CPU reference path can reproduce shader results.

// prngHelpers is the WGSL source registered once per program.
const prngHelpers = `fn prng_mod289(x: f32) -> f32 {
    return x - floor(x * (1.0 / 289.0)) * 289.0;
}

fn prng_permute(x: f32) -> f32 {
    return prng_mod289((34.0 * x + 1.0) * x);
}

fn prng_rand(x: f32) -> f32 {
    return fract(x * (1.0 / 41.0));
}`

// EmitPRNG registers the PRNG helper functions and returns a statement
// declaring state, a fresh f32 hash variable seeded from the 2D coordinate
// expression coord. Successive values come from
// "state = prng_permute(state)" with prng_rand(state) in [0,1).
func EmitPRNG(b *Builder, coord string) (state string) {
	b.Helper("prng", prngHelpers)
	state = b.Fresh("h")
	b.Stmt("var %s: f32 = prng_permute(prng_permute(prng_permute(%s.x + 1.0) + %s.y + 1.0) + 1.0);",
		state, coord, coord)
	return state
}

// PRNGPermute is the Go mirror of prng_permute.
func PRNGPermute(x float64) float64 {
	x = (34*x + 1) * x
	return x - math.Floor(x*(1.0/289.0))*289.0
}

// PRNGRand is the Go mirror of prng_rand.
func PRNGRand(x float64) float64 {
	v := x * (1.0 / 41.0)
	return v - math.Floor(v)
}

// PRNGSeed is the Go mirror of the state initialization emitted by
// EmitPRNG for pixel coordinates (x, y).
func PRNGSeed(x, y float64) float64 {
	return PRNGPermute(PRNGPermute(PRNGPermute(x+1)+y+1) + 1)
}
