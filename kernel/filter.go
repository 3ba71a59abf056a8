// Package kernel provides the filter kernel functions used by the sampling
// shader generators, plus LUT materialization and frequency analysis.
//
// A Kernel is a symmetric weight function over [-Radius, Radius]. Separable
// resampling evaluates it along one axis; polar (EWA) resampling evaluates it
// by radial distance. Config wraps a Kernel with the shape parameters that
// identify a concrete filter for caching purposes.
package kernel

import (
	"math"
	"strconv"
)

// Kernel is a single weight function with its natural support radius.
// Weight is defined for x >= 0 and must return 0 for x >= Radius.
type Kernel struct {
	// Name identifies the kernel for cache fingerprinting and logging.
	Name string

	// Radius is the natural support radius in source texels.
	Radius float64

	// Weight evaluates the kernel at |x|.
	Weight func(x float64) float64
}

// sinc computes sin(pi*x)/(pi*x) with the removable singularity handled.
func sinc(x float64) float64 {
	if x == 0 {
		return 1
	}
	px := math.Pi * x
	return math.Sin(px) / px
}

// jinc computes 2*J1(pi*x)/(pi*x), the radial analogue of sinc.
func jinc(x float64) float64 {
	if x == 0 {
		return 1
	}
	px := math.Pi * x
	return 2 * math.J1(px) / px
}

// jincZero3 is the third zero of jinc, the natural radius for 3-lobe
// EWA filters.
const jincZero3 = 3.2383154841662362

// Cubic returns a member of the Mitchell-Netravali two-parameter cubic
// family. Well-known members: B=1,C=0 is the cubic B-spline, B=0,C=0.5 is
// Catmull-Rom, B=C=1/3 is Mitchell.
func Cubic(name string, b, c float64) Kernel {
	return Kernel{
		Name:   name,
		Radius: 2,
		Weight: func(x float64) float64 {
			x = math.Abs(x)
			x2 := x * x
			x3 := x2 * x
			switch {
			case x < 1:
				return ((12-9*b-6*c)*x3 + (-18+12*b+6*c)*x2 + (6 - 2*b)) / 6
			case x < 2:
				return ((-b-6*c)*x3 + (6*b+30*c)*x2 + (-12*b-48*c)*x + (8*b + 24*c)) / 6
			default:
				return 0
			}
		},
	}
}

// Lanczos returns the sinc kernel windowed by a stretched sinc, with the
// given number of lobes.
func Lanczos(lobes int) Kernel {
	r := float64(lobes)
	return Kernel{
		Name:   "lanczos" + strconv.Itoa(lobes),
		Radius: r,
		Weight: func(x float64) float64 {
			x = math.Abs(x)
			if x >= r {
				return 0
			}
			return sinc(x) * sinc(x/r)
		},
	}
}

// Jinc returns the bare 3-lobe jinc kernel. Used as the basis for EWA
// (polar) filters; rarely useful unwindowed.
func Jinc() Kernel {
	return Kernel{
		Name:   "jinc3",
		Radius: jincZero3,
		Weight: func(x float64) float64 {
			x = math.Abs(x)
			if x >= jincZero3 {
				return 0
			}
			return jinc(x)
		},
	}
}

// Standard kernels. These are package values so that two Configs naming the
// same kernel compare equal for cache purposes.
var (
	// Box is the nearest-neighbour kernel.
	Box = Kernel{
		Name:   "box",
		Radius: 0.5,
		Weight: func(x float64) float64 {
			if math.Abs(x) >= 0.5 {
				return 0
			}
			return 1
		},
	}

	// Triangle is the bilinear kernel.
	Triangle = Kernel{
		Name:   "triangle",
		Radius: 1,
		Weight: func(x float64) float64 {
			x = math.Abs(x)
			if x >= 1 {
				return 0
			}
			return 1 - x
		},
	}

	// Gaussian has sigma chosen so the support at radius 2 covers the
	// meaningful mass of the distribution.
	Gaussian = Kernel{
		Name:   "gaussian",
		Radius: 2,
		Weight: func(x float64) float64 {
			if math.Abs(x) >= 2 {
				return 0
			}
			return math.Exp(-2*x*x) * math.Sqrt(2/math.Pi)
		},
	}

	// Hermite is the interpolating cubic with zero ringing (B=0, C=0).
	// Its second lobe vanishes, so the effective radius is 1.
	Hermite = Kernel{Name: "hermite", Radius: 1, Weight: Cubic("hermite", 0, 0).Weight}

	// BSpline is the smoothest cubic (B=1, C=0). Not interpolating.
	BSpline = Cubic("bspline", 1, 0)

	// Mitchell is the perceptual compromise cubic (B=C=1/3).
	Mitchell = Cubic("mitchell", 1.0/3.0, 1.0/3.0)

	// CatmullRom is the interpolating cubic (B=0, C=0.5).
	CatmullRom = Cubic("catmull_rom", 0, 0.5)

	// Lanczos3 is the standard 3-lobe separable lanczos.
	Lanczos3 = Lanczos(3)

	// EwaLanczos is jinc windowed by jinc, the standard polar scaler.
	EwaLanczos = Windowed(Jinc(), Kernel{
		Name:   "jinc_window",
		Radius: 1.2196698912665045, // first zero of jinc
		Weight: func(x float64) float64 { return jinc(x) },
	})
)

// Windowed multiplies base by window, with the window stretched so its
// support matches the base kernel's radius.
func Windowed(base, window Kernel) Kernel {
	scale := window.Radius / base.Radius
	return Kernel{
		Name:   base.Name + "@" + window.Name,
		Radius: base.Radius,
		Weight: func(x float64) float64 {
			x = math.Abs(x)
			if x >= base.Radius {
				return 0
			}
			return base.Weight(x) * window.Weight(x*scale)
		},
	}
}

// Config identifies a concrete filter: a kernel plus shape parameters.
// Two Configs with equal Name/Radius/Blur/Taper/Polar describe the same
// filter; this structural identity is what the LUT cache fingerprints.
type Config struct {
	// Kernel is the weight function family member.
	Kernel Kernel

	// Radius overrides the kernel's natural support radius when > 0.
	// The kernel is rescaled so that its support exactly spans the
	// override.
	Radius float64

	// Blur scales the kernel support: > 1 softens, < 1 sharpens.
	// 0 means 1 (no adjustment).
	Blur float64

	// Taper flattens the kernel's response for |x| <= Taper.
	Taper float64

	// Polar marks the kernel as radially symmetric (EWA). Polar configs
	// feed SamplePolar; non-polar configs feed SampleOrtho.
	Polar bool
}

// SupportRadius returns the resolved support radius: the kernel radius
// (or override) scaled by Blur.
func (c Config) SupportRadius() float64 {
	r := c.Kernel.Radius
	if c.Radius > 0 {
		r = c.Radius
	}
	if c.Blur > 0 {
		r *= c.Blur
	}
	return r
}

// baseRadius is the radius before blur scaling.
func (c Config) baseRadius() float64 {
	if c.Radius > 0 {
		return c.Radius
	}
	return c.Kernel.Radius
}

// Weight evaluates the configured filter at |x|, applying radius override,
// blur and taper. Returns 0 outside SupportRadius.
func (c Config) Weight(x float64) float64 {
	x = math.Abs(x)
	r := c.baseRadius()
	if c.Blur > 0 {
		x /= c.Blur
	}
	if x >= r {
		return 0
	}
	if c.Taper > 0 {
		if x <= c.Taper {
			x = 0
		} else {
			x = (x - c.Taper) / (1 - c.Taper/r)
		}
	}
	// Rescale into the kernel's natural domain when the radius is
	// overridden.
	if c.Radius > 0 && c.Radius != c.Kernel.Radius {
		x *= c.Kernel.Radius / c.Radius
	}
	return c.Kernel.Weight(x)
}
