package gpu

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"sync/atomic"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/sampler"
)

// ErrEmptyLUT is returned when uploading a slot that holds no weights.
var ErrEmptyLUT = errors.New("gpu: shader object holds no LUT")

// LUTTexture is a slot's weights materialized as a GPU texture: a single
// r32float row for radial profiles, or one rgba32float row per phase with
// four taps packed per texel. The emitted programs read it with
// textureLoad, so no sampler is paired with it.
//
// LUTTexture implements the engine's Resource interface; once attached to
// its ShaderObj, the engine destroys it when the LUT goes stale.
type LUTTexture struct {
	device hal.Device
	tex    hal.Texture
	view   hal.TextureView

	width  int
	height int
	format gputypes.TextureFormat
	builds int

	released atomic.Bool
}

var _ sampler.Resource = (*LUTTexture)(nil)

// Width returns the texture width in texels.
func (t *LUTTexture) Width() int { return t.width }

// Height returns the texture height in texels.
func (t *LUTTexture) Height() int { return t.height }

// Format returns the texel format.
func (t *LUTTexture) Format() gputypes.TextureFormat { return t.format }

// Texture returns the HAL texture.
func (t *LUTTexture) Texture() hal.Texture { return t.tex }

// View returns the HAL texture view, the handle bound for the program's
// lut binding.
func (t *LUTTexture) View() hal.TextureView { return t.view }

// Destroy releases the HAL texture and view. Safe to call more than once.
func (t *LUTTexture) Destroy() {
	if t.released.Swap(true) {
		return
	}
	if t.view != nil {
		t.device.DestroyTextureView(t.view)
		t.view = nil
	}
	if t.tex != nil {
		t.device.DestroyTexture(t.tex)
		t.tex = nil
	}
}

// UploadLUT materializes a slot's weights as a GPU texture and attaches
// the result to the slot. When the slot already carries a texture from
// the current build the attached one is returned unchanged, so calling
// after every emit costs nothing between rebuilds.
func UploadLUT(device hal.Device, queue hal.Queue, obj *sampler.ShaderObj) (*LUTTexture, error) {
	if device == nil || queue == nil {
		return nil, ErrNilDevice
	}
	if obj == nil || obj.Empty() {
		return nil, ErrEmptyLUT
	}
	if cur, ok := uploadCurrent(obj); ok {
		return cur, nil
	}

	w, h, format, err := lutExtent(obj)
	if err != nil {
		return nil, err
	}
	label := lutLabel(obj.Layout())

	tex, err := device.CreateTexture(&hal.TextureDescriptor{
		Label:         label,
		Size:          hal.Extent3D{Width: uint32(w), Height: uint32(h), DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        format,
		Usage:         gputypes.TextureUsageTextureBinding | gputypes.TextureUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("gpu: create lut texture: %w", err)
	}
	view, err := device.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label:         label + "_view",
		Format:        format,
		Dimension:     gputypes.TextureViewDimension2D,
		Aspect:        gputypes.TextureAspectAll,
		MipLevelCount: 1,
	})
	if err != nil {
		device.DestroyTexture(tex)
		return nil, fmt.Errorf("gpu: create lut view: %w", err)
	}

	data := floatBytes(obj.Weights())
	queue.WriteTexture(
		&hal.ImageCopyTexture{Texture: tex, MipLevel: 0},
		data,
		&hal.ImageDataLayout{
			Offset:       0,
			BytesPerRow:  uint32(len(data) / h),
			RowsPerImage: uint32(h),
		},
		&hal.Extent3D{Width: uint32(w), Height: uint32(h), DepthOrArrayLayers: 1},
	)

	lt := &LUTTexture{
		device: device,
		tex:    tex,
		view:   view,
		width:  w,
		height: h,
		format: format,
		builds: obj.Builds(),
	}
	obj.SetResource(lt)

	sampler.Logger().Debug("gpu: lut uploaded",
		"label", label,
		"width", w,
		"height", h,
		"bytes", len(data),
		"build", lt.builds,
	)
	return lt, nil
}

// uploadCurrent returns the attached texture when it was uploaded from
// the slot's current build.
func uploadCurrent(obj *sampler.ShaderObj) (*LUTTexture, bool) {
	cur, ok := obj.Resource().(*LUTTexture)
	if !ok || cur.builds != obj.Builds() {
		return nil, false
	}
	return cur, true
}

// lutExtent sizes the texture for a slot's layout.
func lutExtent(obj *sampler.ShaderObj) (w, h int, format gputypes.TextureFormat, err error) {
	switch obj.Layout() {
	case sampler.LUTRadial:
		return obj.Resolution(), 1, gputypes.TextureFormatR32Float, nil
	case sampler.LUTPhase:
		return obj.Stride() / 4, obj.Rows(), gputypes.TextureFormatRGBA32Float, nil
	default:
		return 0, 0, format, fmt.Errorf("%w: layout %d", ErrEmptyLUT, obj.Layout())
	}
}

// lutLabel names the texture after its layout.
func lutLabel(layout sampler.LUTLayout) string {
	if layout == sampler.LUTPhase {
		return "sampler_lut_phase"
	}
	return "sampler_lut_radial"
}

// floatBytes serializes weights for queue upload, little-endian the way
// wgpu expects texel data.
func floatBytes(weights []float32) []byte {
	out := make([]byte, len(weights)*4)
	for i, f := range weights {
		binary.LittleEndian.PutUint32(out[i*4:], math.Float32bits(f))
	}
	return out
}
