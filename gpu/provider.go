package gpu

import (
	"errors"
	"fmt"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/sampler"
	"github.com/gogpu/sampler/shader"
)

var (
	// ErrNilProvider is returned when creating a context from a nil
	// device provider.
	ErrNilProvider = errors.New("gpu: nil device provider")

	// ErrNoHALAccess is returned when the provider does not expose raw
	// HAL handles. gogpu application providers implement the HalDevice
	// and HalQueue accessors alongside gpucontext.DeviceProvider.
	ErrNoHALAccess = errors.New("gpu: provider does not expose HAL handles")

	// ErrNilDevice is returned when an operation needs a HAL device or
	// queue and got nil.
	ErrNilDevice = errors.New("gpu: nil HAL device")
)

// halProvider is the optional accessor pair through which gogpu providers
// hand out their underlying HAL handles.
type halProvider interface {
	HalDevice() any
	HalQueue() any
}

// Context bundles the HAL handles of one shared GPU device with the
// shader capabilities derived for it. Contexts are cheap value holders;
// the device and queue stay owned by the provider.
//
// Context methods are safe for concurrent use as long as the underlying
// HAL device is.
type Context struct {
	device hal.Device
	queue  hal.Queue
	caps   shader.Capabilities
}

// ContextOption configures a Context during creation.
type ContextOption func(*Context)

// WithCapabilities replaces the derived capability set entirely. Used
// when the caller has better knowledge of the device than the provider
// surface exposes, or to force the fragment fallbacks in tests.
func WithCapabilities(caps shader.Capabilities) ContextOption {
	return func(c *Context) { c.caps = caps }
}

// WithStorageFormat sets the texel format compute programs write their
// storage destination with. Formats that are not core storage formats
// leave the capability set unchanged.
func WithStorageFormat(format gputypes.TextureFormat) ContextOption {
	return func(c *Context) {
		if s := wgslStorageFormat(format); s != "" {
			c.caps.StorageFormat = s
		}
	}
}

// NewContext extracts the HAL device and queue from a gogpu device
// provider and derives the shader capabilities to build against. The
// provider keeps ownership of the device; closing it invalidates the
// Context.
func NewContext(provider gpucontext.DeviceProvider, opts ...ContextOption) (*Context, error) {
	if provider == nil {
		return nil, ErrNilProvider
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return nil, fmt.Errorf("%w: %T", ErrNoHALAccess, provider)
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, fmt.Errorf("%w: HalDevice returned %T", ErrNoHALAccess, hp.HalDevice())
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, fmt.Errorf("%w: HalQueue returned %T", ErrNoHALAccess, hp.HalQueue())
	}

	c := &Context{
		device: device,
		queue:  queue,
		caps:   deriveCapabilities(provider),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Device returns the shared HAL device.
func (c *Context) Device() hal.Device { return c.device }

// Queue returns the shared HAL queue.
func (c *Context) Queue() hal.Queue { return c.queue }

// Capabilities returns the capability set to construct builders with.
func (c *Context) Capabilities() shader.Capabilities { return c.caps }

// NewBuilder creates a shader builder targeting this device.
func (c *Context) NewBuilder(opts ...shader.BuilderOption) *shader.Builder {
	return shader.NewBuilder(c.caps, opts...)
}

// UploadLUT uploads a slot's weights on this context's device.
func (c *Context) UploadLUT(obj *sampler.ShaderObj) (*LUTTexture, error) {
	return UploadLUT(c.device, c.queue, obj)
}

// NewShaderModule creates the HAL module for a compiled program on this
// context's device.
func (c *Context) NewShaderModule(p *shader.Program) (hal.ShaderModule, error) {
	return NewShaderModule(c.device, p)
}

// deriveCapabilities maps the provider surface onto the builder's
// capability set. The WebGPU baseline guarantees compute, storage writes
// and textureGather, and the limits stay at the builder defaults; the
// surface format drives the storage texel format when it is one compute
// programs may write.
func deriveCapabilities(provider gpucontext.DeviceProvider) shader.Capabilities {
	caps := shader.Capabilities{
		Compute:      true,
		StorageWrite: true,
		Gather:       true,
	}
	if s := wgslStorageFormat(provider.SurfaceFormat()); s != "" {
		caps.StorageFormat = s
	}
	return caps
}

// wgslStorageFormat names the WGSL storage texel format for a texture
// format, or "" for formats core WebGPU cannot bind as a write-only
// storage texture. BGRA surfaces fall in the latter bucket, which is why
// a BGRA swapchain keeps the rgba8unorm default and blits.
func wgslStorageFormat(format gputypes.TextureFormat) string {
	switch format {
	case gputypes.TextureFormatRGBA8Unorm:
		return "rgba8unorm"
	case gputypes.TextureFormatRGBA16Float:
		return "rgba16float"
	case gputypes.TextureFormatRGBA32Float:
		return "rgba32float"
	case gputypes.TextureFormatR32Float:
		return "r32float"
	case gputypes.TextureFormatRG32Float:
		return "rg32float"
	default:
		return ""
	}
}
