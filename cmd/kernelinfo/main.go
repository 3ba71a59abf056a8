// Command kernelinfo prints design-time diagnostics for the built-in
// sampling kernels: support radius, frequency response, sidelobe level
// and the lookup table the filter engines would materialize.
package main

import (
	"flag"
	"fmt"
	"log"
	"sort"

	"github.com/gogpu/sampler/kernel"
)

// kernels maps flag-friendly names to the package presets.
var kernels = map[string]kernel.Kernel{
	"box":         kernel.Box,
	"triangle":    kernel.Triangle,
	"gaussian":    kernel.Gaussian,
	"hermite":     kernel.Hermite,
	"bspline":     kernel.BSpline,
	"mitchell":    kernel.Mitchell,
	"catmull_rom": kernel.CatmullRom,
	"lanczos3":    kernel.Lanczos3,
	"ewa_lanczos": kernel.EwaLanczos,
}

// polarByDefault marks kernels that are normally used radially.
var polarByDefault = map[string]bool{
	"ewa_lanczos": true,
}

func main() {
	var (
		name    = flag.String("kernel", "lanczos3", "kernel to analyze")
		list    = flag.Bool("list", false, "list available kernels and exit")
		blur    = flag.Float64("blur", 0, "blur factor (>1 softens, <1 sharpens, 0 = off)")
		taper   = flag.Float64("taper", 0, "taper radius (flattens the center)")
		entries = flag.Int("entries", 64, "LUT resolution (radial entries or phase rows)")
		fftN    = flag.Int("n", 1024, "FFT size for the frequency response")
	)
	flag.Parse()

	if *list {
		names := make([]string, 0, len(kernels))
		for n := range kernels {
			names = append(names, n)
		}
		sort.Strings(names)
		for _, n := range names {
			k := kernels[n]
			fmt.Printf("  %-12s radius %.4f\n", n, k.Radius)
		}
		return
	}

	k, ok := kernels[*name]
	if !ok {
		log.Fatalf("Unknown kernel %q (use -list)", *name)
	}
	cfg := kernel.Config{
		Kernel: k,
		Blur:   *blur,
		Taper:  *taper,
		Polar:  polarByDefault[*name],
	}

	fmt.Printf("=== %s ===\n", k.Name)
	fmt.Printf("Support radius:  %.6f texels\n", cfg.SupportRadius())
	fmt.Printf("Polar:           %v\n", cfg.Polar)
	fmt.Printf("Sidelobe level:  %.6f relative to DC\n\n", kernel.SidelobeLevel(cfg, *fftN))

	printResponse(cfg, *fftN)
	printLUT(cfg, *entries)
}

// printResponse prints the magnitude response at a few frequencies of
// interest. Response samples the kernel at 8 points per texel, so bin k
// of an n-point FFT sits at k*8/n cycles per texel; the image Nyquist is
// 0.5 cycles per texel.
func printResponse(cfg kernel.Config, n int) {
	resp := kernel.Response(cfg, n)
	fmt.Println("Frequency response (cycles/texel):")
	for _, f := range []float64{0.125, 0.25, 0.375, 0.5, 0.75, 1.0} {
		bin := int(f * float64(n) / 8)
		if bin >= len(resp) {
			break
		}
		fmt.Printf("  %5.3f: %8.5f\n", f, resp[bin])
	}
	fmt.Println()
}

// printLUT materializes the lookup table the engines would build for this
// configuration and summarizes it.
func printLUT(cfg kernel.Config, entries int) {
	if cfg.Polar {
		prof := kernel.RadialLUT(cfg, entries, 1, 0.001)
		fmt.Printf("Radial LUT: %d entries over radius %.4f\n", len(prof.Weights), prof.Radius)
		fmt.Printf("  cutoff radius %.4f (tail below 0.001 trimmed)\n", prof.CutoffRadius)
		fmt.Printf("  w(0)=%.5f  w(mid)=%.5f  w(end)=%.5f\n",
			prof.Weights[0], prof.Weights[len(prof.Weights)/2], prof.Weights[len(prof.Weights)-1])
		return
	}
	mat := kernel.PhaseLUT(cfg, entries, 1)
	fmt.Printf("Phase LUT: %d rows x %d taps (stride %d)\n", mat.Rows, mat.Taps, mat.Stride)
	row := make([]float32, mat.Taps)
	copy(row, mat.Weights[:mat.Taps])
	fmt.Printf("  phase 0 weights: %v\n", row)
}
