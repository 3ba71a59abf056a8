package shader

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
	lru "github.com/hashicorp/golang-lru"
)

// DefaultCacheSize bounds the compiled-program cache. Generated sources
// are deterministic, so a modest number of entries covers the steady state
// of a player or compositor reusing a handful of configurations.
const DefaultCacheSize = 64

// ProgramCache memoizes compiled programs by their WGSL source. Identical
// generated source (the common case across frames) compiles once.
//
// ProgramCache is safe for concurrent use.
type ProgramCache struct {
	entries *lru.Cache

	// compile is swapped in tests to count invocations.
	compile func(source string) ([]uint32, error)
}

// NewProgramCache creates a cache holding up to size compiled programs.
// size <= 0 uses DefaultCacheSize.
func NewProgramCache(size int) (*ProgramCache, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	entries, err := lru.New(size)
	if err != nil {
		return nil, fmt.Errorf("shader: program cache: %w", err)
	}
	return &ProgramCache{entries: entries, compile: CompileWGSL}, nil
}

// GetOrCompile renders the builder, returning a cached program when the
// identical source has been compiled before.
func (c *ProgramCache) GetOrCompile(b *Builder) (*Program, error) {
	if len(b.body) == 0 {
		return nil, ErrEmptyProgram
	}
	source := b.Source()
	key := xxhash.Sum64String(source)

	if v, ok := c.entries.Get(key); ok {
		p := v.(*Program)
		if p.Source == source {
			return p, nil
		}
	}

	words, err := c.compile(source)
	if err != nil {
		return nil, err
	}
	wx, wy := b.WorkgroupSize()
	p := &Program{
		Label:     b.Label(),
		Source:    source,
		SPIRV:     words,
		Stage:     b.Stage(),
		Workgroup: [2]int{wx, wy},
		Bindings:  b.Bindings(),
	}
	c.entries.Add(key, p)
	return p, nil
}

// Len reports the number of cached programs.
func (c *ProgramCache) Len() int { return c.entries.Len() }

// Purge drops every cached program.
func (c *ProgramCache) Purge() { c.entries.Purge() }
