package shader

import (
	"errors"
	"fmt"

	"github.com/gogpu/naga"
)

// ErrEmptyProgram is returned when compiling a builder with no body.
var ErrEmptyProgram = errors.New("shader: program has no body")

// Program is a compiled shader ready for module creation: the WGSL source
// it was built from, the SPIR-V words naga produced, and the metadata the
// executor needs to bind and dispatch it.
type Program struct {
	Label     string
	Source    string
	SPIRV     []uint32
	Stage     Stage
	Workgroup [2]int
	Bindings  []Binding
}

// CompileWGSL compiles WGSL source to SPIR-V words. SPIR-V is little-endian
// 32-bit words; naga returns bytes.
func CompileWGSL(source string) ([]uint32, error) {
	spirvBytes, err := naga.Compile(source)
	if err != nil {
		return nil, fmt.Errorf("shader: compile failed: %w", err)
	}

	words := make([]uint32, len(spirvBytes)/4)
	for i := range words {
		words[i] = uint32(spirvBytes[i*4]) |
			uint32(spirvBytes[i*4+1])<<8 |
			uint32(spirvBytes[i*4+2])<<16 |
			uint32(spirvBytes[i*4+3])<<24
	}
	return words, nil
}

// CompileProgram renders the builder and compiles it.
func CompileProgram(b *Builder) (*Program, error) {
	if len(b.body) == 0 {
		return nil, ErrEmptyProgram
	}
	source := b.Source()
	words, err := CompileWGSL(source)
	if err != nil {
		return nil, err
	}
	wx, wy := b.WorkgroupSize()
	return &Program{
		Label:     b.Label(),
		Source:    source,
		SPIRV:     words,
		Stage:     b.Stage(),
		Workgroup: [2]int{wx, wy},
		Bindings:  b.Bindings(),
	}, nil
}
