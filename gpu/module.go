package gpu

import (
	"errors"
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/sampler/shader"
)

// ErrNilProgram is returned when creating a module from a nil program.
var ErrNilProgram = errors.New("gpu: nil program")

// NewShaderModule creates the HAL shader module for a compiled program.
// The SPIR-V words produced at compile time are used directly; a program
// without them falls back to handing the HAL the WGSL source.
func NewShaderModule(device hal.Device, p *shader.Program) (hal.ShaderModule, error) {
	if device == nil {
		return nil, ErrNilDevice
	}
	if p == nil {
		return nil, ErrNilProgram
	}

	src := hal.ShaderSource{WGSL: p.Source}
	if len(p.SPIRV) > 0 {
		src = hal.ShaderSource{SPIRV: p.SPIRV}
	}
	mod, err := device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  p.Label,
		Source: src,
	})
	if err != nil {
		return nil, fmt.Errorf("gpu: create shader module %q: %w", p.Label, err)
	}
	return mod, nil
}

// LayoutEntries derives the bind group layout entries for a program's
// bindings, in binding order. Callers hand them to CreateBindGroupLayout
// and pair each entry with the matching resource view at bind time: the
// source texture view, its sampler, the LUT view and, for compute
// programs, the storage destination view.
func LayoutEntries(p *shader.Program) []gputypes.BindGroupLayoutEntry {
	if p == nil {
		return nil
	}
	visibility := gputypes.ShaderStageFragment
	if p.Stage == shader.StageCompute {
		visibility = gputypes.ShaderStageCompute
	}

	entries := make([]gputypes.BindGroupLayoutEntry, 0, len(p.Bindings))
	for _, bd := range p.Bindings {
		e := gputypes.BindGroupLayoutEntry{
			Binding:    uint32(bd.Index),
			Visibility: visibility,
		}
		switch bd.Kind {
		case shader.BindingTexture2D:
			e.Texture = &gputypes.TextureBindingLayout{
				SampleType:    gputypes.TextureSampleTypeFloat,
				ViewDimension: gputypes.TextureViewDimension2D,
			}
		case shader.BindingSampler:
			e.Sampler = &gputypes.SamplerBindingLayout{
				Type: gputypes.SamplerBindingTypeFiltering,
			}
		case shader.BindingStorageTexture2D:
			e.Storage = &gputypes.StorageTextureBindingLayout{
				Access:        gputypes.StorageTextureAccessWriteOnly,
				Format:        storageTextureFormat(bd.Format),
				ViewDimension: gputypes.TextureViewDimension2D,
			}
		}
		entries = append(entries, e)
	}
	return entries
}

// storageTextureFormat is the inverse of wgslStorageFormat, mapping the
// WGSL texel format of a storage binding back to the API format.
func storageTextureFormat(format string) gputypes.TextureFormat {
	switch format {
	case "rgba16float":
		return gputypes.TextureFormatRGBA16Float
	case "rgba32float":
		return gputypes.TextureFormatRGBA32Float
	case "r32float":
		return gputypes.TextureFormatR32Float
	case "rg32float":
		return gputypes.TextureFormatRG32Float
	default:
		return gputypes.TextureFormatRGBA8Unorm
	}
}
