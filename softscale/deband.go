package softscale

import (
	"fmt"
	"math"

	"github.com/gogpu/sampler"
	"github.com/gogpu/sampler/shader"
)

// Deband mirrors sampler.Deband on the CPU: the same per-pixel hash
// chain, iteration structure and grain, so identical inputs always give
// identical output and match the emitted program up to float precision.
//
// A nil p selects sampler.DefaultDebandParams. When the geometry implies
// a scale change the buffer must be in linear mode, like the shader
// path.
func Deband(src *sampler.SampleSrc, p *sampler.DebandParams) (*Image, error) {
	g, err := resolve(src)
	if err != nil {
		return nil, err
	}
	if p == nil {
		p = &sampler.DefaultDebandParams
	}
	if g.scaling() && g.img.Mode != sampler.SampleLinear {
		return nil, fmt.Errorf("%w: debanding while resampling", sampler.ErrLinearRequired)
	}

	out := g.output()
	ptX, ptY := 1/float64(g.w), 1/float64(g.h)
	for oy := 0; oy < g.outH; oy++ {
		for ox := 0; ox < g.outW; ox++ {
			posX, posY := g.pos(ox, oy)
			h := shader.PRNGSeed(math.Floor(posX*float64(g.w)), math.Floor(posY*float64(g.h)))

			color := g.img.Fetch(posX, posY)
			for i := range color {
				color[i] *= g.scale
			}

			for it := 1; it <= p.Iterations; it++ {
				h = shader.PRNGPermute(h)
				dist := shader.PRNGRand(h) * p.Radius * float64(it)
				h = shader.PRNGPermute(h)
				dir := shader.PRNGRand(h) * 2 * math.Pi
				lx := dist * math.Cos(dir)
				ly := dist * math.Sin(dir)

				// Average four quarter-turn rotations of the offset.
				var avg [4]float64
				for _, o := range [4][2]float64{{lx, ly}, {-ly, lx}, {-lx, -ly}, {ly, -lx}} {
					c := g.img.Fetch(posX+ptX*o[0], posY+ptY*o[1])
					for i := range avg {
						avg[i] += c[i]
					}
				}
				for i := range avg {
					avg[i] *= g.scale * 0.25
				}

				thr := p.Threshold / (float64(it) * debandThresholdScale)
				for i := range color {
					if math.Abs(color[i]-avg[i]) <= thr {
						color[i] = avg[i]
					}
				}
			}

			if p.Grain != 0 {
				var noise [3]float64
				for i := range noise {
					h = shader.PRNGPermute(h)
					noise[i] = shader.PRNGRand(h)
				}
				f := p.Grain / debandGrainScale
				for i := 0; i < 3; i++ {
					color[i] += f * (noise[i] - 0.5)
				}
			}
			out.Set(ox, oy, compMask(color, g.comps))
		}
	}
	return out, nil
}

// Threshold and grain divisors matching the emitted programs: the
// parameters are expressed in 8-bit-style units.
const (
	debandThresholdScale = 16384.0
	debandGrainScale     = 8192.0
)
