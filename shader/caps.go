// Package shader assembles WGSL programs for the sampling engines.
//
// A Builder accumulates resource bindings, module-scope helper functions and
// body statements, then renders a complete fragment or compute entry point.
// The engines query the Builder's Capabilities to pick between the compute
// fast path and the fragment fallbacks, and never emit constructs the
// declared capability set cannot run.
package shader

// DefaultMaxInvocations is the WebGPU default limit on invocations per
// workgroup. Emitted compute programs stay within it.
const DefaultMaxInvocations = 256

// DefaultMaxWorkgroupStorage is the WebGPU default limit on workgroup
// storage, in bytes.
const DefaultMaxWorkgroupStorage = 16384

// Capabilities describes what the target GPU supports. The zero value is
// the most conservative target: fragment-only, no storage writes, no
// texture gather.
type Capabilities struct {
	// Compute reports compute shader support.
	Compute bool

	// StorageWrite reports support for writable storage textures. The
	// compute fast path needs both Compute and StorageWrite plus a
	// destination texture that is storage-writable.
	StorageWrite bool

	// Gather reports textureGather support, used by the single-channel
	// polar fragment fallback.
	Gather bool

	// MaxInvocations bounds workgroup size (x*y*z). 0 means the WebGPU
	// default of 256.
	MaxInvocations int

	// MaxWorkgroupStorage bounds var<workgroup> memory per workgroup,
	// in bytes. 0 means the WebGPU default of 16384.
	MaxWorkgroupStorage int

	// StorageFormat is the texel format compute programs write their
	// storage destination with, e.g. "rgba16float". Empty means
	// "rgba8unorm".
	StorageFormat string
}

// maxInvocations resolves the default limit.
func (c Capabilities) maxInvocations() int {
	if c.MaxInvocations <= 0 {
		return DefaultMaxInvocations
	}
	return c.MaxInvocations
}

// AllowsWorkgroup reports whether an x by y workgroup fits the invocation
// limit.
func (c Capabilities) AllowsWorkgroup(x, y int) bool {
	if x < 1 || y < 1 {
		return false
	}
	return x*y <= c.maxInvocations()
}

// AllowsWorkgroupStorage reports whether bytes of var<workgroup> memory
// fit the storage limit.
func (c Capabilities) AllowsWorkgroupStorage(bytes int) bool {
	limit := c.MaxWorkgroupStorage
	if limit <= 0 {
		limit = DefaultMaxWorkgroupStorage
	}
	return bytes <= limit
}
