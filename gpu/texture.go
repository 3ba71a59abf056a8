package gpu

import (
	"errors"
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/sampler"
)

var (
	// ErrNilTexture is returned when wrapping a nil HAL texture or view.
	ErrNilTexture = errors.New("gpu: nil HAL texture")

	// ErrBadExtent is returned for non-positive texture dimensions.
	ErrBadExtent = errors.New("gpu: bad texture extent")

	// ErrUnknownFormat is returned for texture formats the engines do not
	// sample.
	ErrUnknownFormat = errors.New("gpu: unknown texture format")
)

// FormatComponents reports how many channels a texture format carries, or
// 0 for formats the engines do not sample.
func FormatComponents(format gputypes.TextureFormat) int {
	switch format {
	case gputypes.TextureFormatR8Unorm, gputypes.TextureFormatR32Float:
		return 1
	case gputypes.TextureFormatRG32Float:
		return 2
	case gputypes.TextureFormatRGBA8Unorm, gputypes.TextureFormatRGBA8UnormSrgb,
		gputypes.TextureFormatBGRA8Unorm, gputypes.TextureFormatBGRA8UnormSrgb,
		gputypes.TextureFormatRGBA16Float, gputypes.TextureFormatRGBA32Float:
		return 4
	default:
		return 0
	}
}

// SourceTexture adapts a HAL texture to the engines' source interface.
// The wrapper borrows the texture and view; the caller keeps ownership
// and destroys them after the last pass that samples them.
type SourceTexture struct {
	tex  hal.Texture
	view hal.TextureView

	width  int
	height int
	comps  int
	format gputypes.TextureFormat
	mode   sampler.SampleMode
	store  bool
}

var _ sampler.Texture = (*SourceTexture)(nil)

// SourceConfig describes the HAL texture being wrapped. HAL handles are
// opaque, so the dimensions and format are declared rather than queried.
type SourceConfig struct {
	// Width and Height are the texture extent in texels.
	Width, Height int

	// Format is the texel format the texture was created with.
	Format gputypes.TextureFormat

	// Mode declares how the sampler paired with this texture filters.
	// The bicubic engine and the fragment fallbacks lean on linear
	// filtering; see NewSampler.
	Mode sampler.SampleMode

	// StorageWritable declares the texture carries storage binding
	// usage, making it a valid compute fast path destination.
	StorageWritable bool
}

// WrapTexture wraps a HAL texture for use as an engine source or
// destination.
func WrapTexture(tex hal.Texture, view hal.TextureView, cfg SourceConfig) (*SourceTexture, error) {
	if cfg.Width < 1 || cfg.Height < 1 {
		return nil, fmt.Errorf("%w: %dx%d", ErrBadExtent, cfg.Width, cfg.Height)
	}
	comps := FormatComponents(cfg.Format)
	if comps == 0 {
		return nil, fmt.Errorf("%w: %v", ErrUnknownFormat, cfg.Format)
	}
	if tex == nil || view == nil {
		return nil, ErrNilTexture
	}
	return &SourceTexture{
		tex:    tex,
		view:   view,
		width:  cfg.Width,
		height: cfg.Height,
		comps:  comps,
		format: cfg.Format,
		mode:   cfg.Mode,
		store:  cfg.StorageWritable,
	}, nil
}

// Width returns the texture width in texels.
func (t *SourceTexture) Width() int { return t.width }

// Height returns the texture height in texels.
func (t *SourceTexture) Height() int { return t.height }

// Components reports the channel count derived from the format.
func (t *SourceTexture) Components() int { return t.comps }

// SampleMode reports the declared filtering mode.
func (t *SourceTexture) SampleMode() sampler.SampleMode { return t.mode }

// StorageWritable reports whether the texture can serve as a compute
// program's storage destination.
func (t *SourceTexture) StorageWritable() bool { return t.store }

// Format returns the declared texel format.
func (t *SourceTexture) Format() gputypes.TextureFormat { return t.format }

// Texture returns the wrapped HAL texture.
func (t *SourceTexture) Texture() hal.Texture { return t.tex }

// View returns the wrapped HAL texture view, the handle bound for the
// program's source texture binding.
func (t *SourceTexture) View() hal.TextureView { return t.view }

// NewSampler creates the HAL sampler matching a source's sample mode,
// clamped to the edge on every axis the way the emitted programs expect.
func NewSampler(device hal.Device, mode sampler.SampleMode) (hal.Sampler, error) {
	if device == nil {
		return nil, ErrNilDevice
	}
	filter := gputypes.FilterModeNearest
	if mode == sampler.SampleLinear {
		filter = gputypes.FilterModeLinear
	}
	s, err := device.CreateSampler(&hal.SamplerDescriptor{
		Label:        "sampler_src",
		AddressModeU: gputypes.AddressModeClampToEdge,
		AddressModeV: gputypes.AddressModeClampToEdge,
		AddressModeW: gputypes.AddressModeClampToEdge,
		MagFilter:    filter,
		MinFilter:    filter,
		MipmapFilter: gputypes.FilterModeNearest,
	})
	if err != nil {
		return nil, fmt.Errorf("gpu: create sampler: %w", err)
	}
	return s, nil
}
