package softscale

import (
	"image"
	"math"

	xdraw "golang.org/x/image/draw"

	"github.com/gogpu/sampler"
)

// Image is a float-valued RGBA pixel buffer, the CPU stand-in for a GPU
// texture. Pix holds W*H*4 values in row-major RGBA order, normally in
// [0,1]. Comps declares how many leading channels carry data; Mode
// selects the interpolation Fetch applies.
//
// Image implements sampler.Texture, so it slots directly into a
// SampleSrc for both the CPU paths in this package and shader
// generation.
type Image struct {
	W, H int
	Pix  []float64

	// Comps is the native component count in 1..4. 0 means 4.
	Comps int

	// Mode is the interpolation mode Fetch applies.
	Mode sampler.SampleMode
}

// NewImage allocates a zeroed w x h buffer with four components.
func NewImage(w, h int) *Image {
	return &Image{
		W:     w,
		H:     h,
		Pix:   make([]float64, w*h*4),
		Comps: 4,
	}
}

// Width returns the buffer width in pixels.
func (m *Image) Width() int { return m.W }

// Height returns the buffer height in pixels.
func (m *Image) Height() int { return m.H }

// Components reports the native component count.
func (m *Image) Components() int {
	if m.Comps == 0 {
		return 4
	}
	return m.Comps
}

// SampleMode reports the configured interpolation mode.
func (m *Image) SampleMode() sampler.SampleMode { return m.Mode }

// StorageWritable reports true: a CPU buffer is always writable.
func (m *Image) StorageWritable() bool { return true }

var _ sampler.Texture = (*Image)(nil)

// At returns the pixel at integer coordinates with the edge clamping a
// clamp-to-edge sampler applies. Channels beyond Components are padded
// the way a texture fetch pads them: color channels 0, alpha 1.
func (m *Image) At(x, y int) [4]float64 {
	if x < 0 {
		x = 0
	} else if x >= m.W {
		x = m.W - 1
	}
	if y < 0 {
		y = 0
	} else if y >= m.H {
		y = m.H - 1
	}
	px := [4]float64{0, 0, 0, 1}
	i := (y*m.W + x) * 4
	for c := 0; c < m.Components(); c++ {
		px[c] = m.Pix[i+c]
	}
	return px
}

// Set writes the pixel at integer coordinates. Out-of-bounds writes are
// ignored.
func (m *Image) Set(x, y int, c [4]float64) {
	if x < 0 || x >= m.W || y < 0 || y >= m.H {
		return
	}
	i := (y*m.W + x) * 4
	m.Pix[i+0] = c[0]
	m.Pix[i+1] = c[1]
	m.Pix[i+2] = c[2]
	m.Pix[i+3] = c[3]
}

// Fetch samples the buffer at normalized coordinates in [0,1] the way
// textureSampleLevel samples a clamp-to-edge texture: the nearest texel
// in nearest mode, the bilinear blend of the four nearest in linear
// mode.
func (m *Image) Fetch(px, py float64) [4]float64 {
	if m.Mode != sampler.SampleLinear {
		return m.At(int(math.Floor(px*float64(m.W))), int(math.Floor(py*float64(m.H))))
	}
	qx := px*float64(m.W) - 0.5
	qy := py*float64(m.H) - 0.5
	x0 := int(math.Floor(qx))
	y0 := int(math.Floor(qy))
	fx := qx - float64(x0)
	fy := qy - float64(y0)

	c00 := m.At(x0, y0)
	c10 := m.At(x0+1, y0)
	c01 := m.At(x0, y0+1)
	c11 := m.At(x0+1, y0+1)
	var out [4]float64
	for i := range out {
		top := c00[i] + (c10[i]-c00[i])*fx
		bot := c01[i] + (c11[i]-c01[i])*fx
		out[i] = top + (bot-top)*fy
	}
	return out
}

// FromImage converts any image into a float buffer. Channel values are
// the alpha-premultiplied values color.Color.RGBA returns, scaled to
// [0,1]. Mode starts as nearest; set it before sampling linearly.
func FromImage(img image.Image) *Image {
	b := img.Bounds()
	m := NewImage(b.Dx(), b.Dy())
	for y := 0; y < m.H; y++ {
		for x := 0; x < m.W; x++ {
			r, g, bl, a := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
			m.Set(x, y, [4]float64{
				float64(r) / 65535,
				float64(g) / 65535,
				float64(bl) / 65535,
				float64(a) / 65535,
			})
		}
	}
	return m
}

// ToNRGBA converts the buffer to an 8-bit image, values clamped to
// [0,1]. Channels are written as stored; no alpha un-premultiplication
// is applied.
func (m *Image) ToNRGBA() *image.NRGBA {
	out := image.NewNRGBA(image.Rect(0, 0, m.W, m.H))
	for y := 0; y < m.H; y++ {
		for x := 0; x < m.W; x++ {
			px := m.At(x, y)
			i := out.PixOffset(x, y)
			out.Pix[i+0] = quant8(px[0])
			out.Pix[i+1] = quant8(px[1])
			out.Pix[i+2] = quant8(px[2])
			out.Pix[i+3] = quant8(px[3])
		}
	}
	return out
}

func quant8(v float64) uint8 {
	return uint8(math.Round(math.Min(math.Max(v, 0), 1) * 255))
}

// Quality selects the x/image/draw scaler Resize uses.
type Quality uint8

const (
	// QualityNearest picks the nearest source pixel.
	QualityNearest Quality = iota

	// QualityBilinear blends the four nearest source pixels.
	QualityBilinear

	// QualityCatmullRom applies the Catmull-Rom interpolating cubic.
	QualityCatmullRom
)

// Resize scales src to w x h with the selected scaler. It is the plain
// image.Image convenience path; the engine mirrors in this package work
// on float buffers instead.
func Resize(src image.Image, w, h int, q Quality) *image.NRGBA {
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	var s xdraw.Scaler
	switch q {
	case QualityBilinear:
		s = xdraw.ApproxBiLinear
	case QualityCatmullRom:
		s = xdraw.CatmullRom
	default:
		s = xdraw.NearestNeighbor
	}
	s.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	return dst
}
