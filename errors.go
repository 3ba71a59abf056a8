package sampler

import "errors"

// Engine errors. Every entry point validates before emitting, so a
// non-nil error means the builder received no bindings and no code. A LUT
// cache slot may still have been repopulated, but never left invalid.
var (
	// ErrNilTexture is returned when the sample source has no texture.
	ErrNilTexture = errors.New("sampler: nil source texture")

	// ErrUnsupportedTexture is returned when the texture reports
	// dimensions the engine cannot sample.
	ErrUnsupportedTexture = errors.New("sampler: unsupported texture")

	// ErrBadSourceRect is returned when the resolved source rectangle is
	// degenerate or exceeds the texture bounds.
	ErrBadSourceRect = errors.New("sampler: bad source rect")

	// ErrBadOutputSize is returned when an explicit output dimension is
	// negative.
	ErrBadOutputSize = errors.New("sampler: bad output size")

	// ErrLinearRequired is returned when an operation needs hardware
	// linear sampling but the texture is configured for nearest.
	ErrLinearRequired = errors.New("sampler: texture requires linear sampling mode")

	// ErrMissingLUT is returned when a filtering call has no LUT cache
	// slot to populate.
	ErrMissingLUT = errors.New("sampler: filter params carry no LUT slot")

	// ErrFilterNotPolar is returned by SamplePolar when the filter
	// configuration is not polar.
	ErrFilterNotPolar = errors.New("sampler: filter config is not polar")

	// ErrFilterPolar is returned by SampleOrtho when the filter
	// configuration is polar.
	ErrFilterPolar = errors.New("sampler: filter config is polar")

	// ErrBadPass is returned by SampleOrtho for a pass selector outside
	// the separable pass set.
	ErrBadPass = errors.New("sampler: bad separable pass")

	// ErrNoShaderPath is returned when no shader variant (compute or
	// fragment) can be constructed for the capability set.
	ErrNoShaderPath = errors.New("sampler: no usable shader path")
)
