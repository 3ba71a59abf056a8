package sampler

import (
	"errors"

	"github.com/gogpu/sampler/shader"
)

// SampleAuto emits the best sampling path the current configuration
// supports: polar filtering when p carries a polar config and a LUT slot,
// hardware bicubic when the texture samples linearly, and the direct
// pass-through otherwise. Each step down the chain is logged at Warn
// level. Errors that no other path could fix, like a nil texture or an
// out-of-bounds rect, return immediately instead of cascading.
func SampleAuto(sh *shader.Builder, src *SampleSrc, p *FilterParams) error {
	if p != nil && p.LUT != nil && p.Filter.Polar {
		err := SamplePolar(sh, src, p)
		switch {
		case err == nil:
			return nil
		case errors.Is(err, ErrNoShaderPath):
			Logger().Warn("sampler: polar path unavailable, falling back to bicubic", "err", err)
		default:
			return err
		}
	}
	err := SampleBicubic(sh, src)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrLinearRequired):
		Logger().Warn("sampler: bicubic needs linear sampling, falling back to direct", "err", err)
	default:
		return err
	}
	return SampleDirect(sh, src)
}
