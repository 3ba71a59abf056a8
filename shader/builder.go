package shader

import (
	"fmt"
	"strconv"
	"strings"
)

// Stage identifies the entry point kind of a program under construction.
type Stage uint8

const (
	// StageFragment renders one output pixel per fragment invocation.
	StageFragment Stage = iota

	// StageCompute writes output pixels through a storage texture.
	StageCompute
)

// BindingKind classifies a resource binding for the executor.
type BindingKind uint8

const (
	// BindingTexture2D is a sampled 2D float texture.
	BindingTexture2D BindingKind = iota

	// BindingSampler is a texture sampler.
	BindingSampler

	// BindingStorageTexture2D is a write-only storage texture.
	BindingStorageTexture2D
)

// Binding records one declared resource so the caller can construct the
// matching bind group when executing the program.
type Binding struct {
	// Name is the WGSL identifier of the binding.
	Name string

	// Label is the caller-supplied role ("source", "lut", "dest").
	Label string

	// Kind classifies the resource.
	Kind BindingKind

	// Group and Index locate the binding (all bindings use group 0).
	Group, Index int

	// Format is the texel format of storage texture bindings, e.g.
	// "rgba8unorm". Empty for other kinds.
	Format string
}

// Builder accumulates a WGSL program: bindings, module-scope helpers,
// workgroup storage and body statements. A Builder produces exactly one
// program and is not reused.
//
// Builder is not safe for concurrent use; shader construction is
// synchronous single-threaded work on the calling goroutine.
type Builder struct {
	caps  Capabilities
	label string

	stage    Stage
	wgX, wgY int

	bindings  []Binding
	helpers   []string
	helperSet map[string]bool
	shared    []string
	body      []string

	names map[string]int
}

// BuilderOption configures a Builder during creation.
type BuilderOption func(*Builder)

// WithLabel sets a debug label carried through compilation and caching.
func WithLabel(label string) BuilderOption {
	return func(b *Builder) { b.label = label }
}

// NewBuilder creates an empty fragment-stage builder for the given
// capability set.
func NewBuilder(caps Capabilities, opts ...BuilderOption) *Builder {
	b := &Builder{
		caps:      caps,
		helperSet: make(map[string]bool),
		names:     make(map[string]int),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Caps returns the capability set this builder targets.
func (b *Builder) Caps() Capabilities { return b.caps }

// Label returns the debug label, or "" when unset.
func (b *Builder) Label() string { return b.label }

// Stage returns the current entry point kind.
func (b *Builder) Stage() Stage { return b.stage }

// Workgroup size of a compute-stage program. Zero for fragment programs.
func (b *Builder) WorkgroupSize() (x, y int) { return b.wgX, b.wgY }

// Fresh returns an identifier unique within this program, derived from
// prefix. The first request for a prefix returns it unchanged.
func (b *Builder) Fresh(prefix string) string {
	n := b.names[prefix]
	b.names[prefix] = n + 1
	if n == 0 {
		return prefix
	}
	return prefix + "_" + strconv.Itoa(n)
}

// SetCompute switches the program to a compute entry point with the given
// workgroup size. Returns false, leaving the builder untouched, when the
// capability set has no compute support or the size exceeds the invocation
// limit.
func (b *Builder) SetCompute(x, y int) bool {
	if !b.caps.Compute || !b.caps.AllowsWorkgroup(x, y) {
		return false
	}
	b.stage = StageCompute
	b.wgX, b.wgY = x, y
	return true
}

// bind appends a binding declaration and returns its WGSL name.
func (b *Builder) bind(label string, kind BindingKind, format string) string {
	name := b.Fresh(label)
	b.bindings = append(b.bindings, Binding{
		Name:   name,
		Label:  label,
		Kind:   kind,
		Group:  0,
		Index:  len(b.bindings),
		Format: format,
	})
	return name
}

// BindTexture2D declares a sampled 2D texture and returns its name.
func (b *Builder) BindTexture2D(label string) string {
	return b.bind(label, BindingTexture2D, "")
}

// BindSampler declares a sampler and returns its name.
func (b *Builder) BindSampler(label string) string {
	return b.bind(label, BindingSampler, "")
}

// BindStorageTexture2D declares a write-only storage texture with the
// given texel format and returns its name.
func (b *Builder) BindStorageTexture2D(label, format string) string {
	return b.bind(label, BindingStorageTexture2D, format)
}

// Bindings returns the declared bindings in binding-index order.
func (b *Builder) Bindings() []Binding {
	out := make([]Binding, len(b.bindings))
	copy(out, b.bindings)
	return out
}

// Helper registers a module-scope function by name. Repeated registrations
// of the same name are dropped, so emitters can unconditionally declare
// their dependencies.
func (b *Builder) Helper(name, src string) {
	if b.helperSet[name] {
		return
	}
	b.helperSet[name] = true
	b.helpers = append(b.helpers, strings.TrimRight(src, "\n"))
}

// Shared declares a workgroup-shared array and returns its name. Only
// meaningful for compute programs.
func (b *Builder) Shared(label, elemType string, count int) string {
	name := b.Fresh(label)
	b.shared = append(b.shared,
		fmt.Sprintf("var<workgroup> %s: array<%s, %d>;", name, elemType, count))
	return name
}

// Stmt appends one body statement, fmt.Sprintf style.
func (b *Builder) Stmt(format string, args ...any) {
	if len(args) > 0 {
		format = fmt.Sprintf(format, args...)
	}
	b.body = append(b.body, format)
}

// Source renders the complete WGSL module.
//
// Fragment programs map the full output over uv in [0,1]^2 and return the
// accumulated color. Compute programs receive the output pixel from the
// global invocation id; the emitted body is responsible for the final
// textureStore, including its own bounds check.
func (b *Builder) Source() string {
	var sb strings.Builder

	for _, bd := range b.bindings {
		switch bd.Kind {
		case BindingTexture2D:
			fmt.Fprintf(&sb, "@group(%d) @binding(%d) var %s: texture_2d<f32>;\n", bd.Group, bd.Index, bd.Name)
		case BindingSampler:
			fmt.Fprintf(&sb, "@group(%d) @binding(%d) var %s: sampler;\n", bd.Group, bd.Index, bd.Name)
		case BindingStorageTexture2D:
			fmt.Fprintf(&sb, "@group(%d) @binding(%d) var %s: texture_storage_2d<%s, write>;\n", bd.Group, bd.Index, bd.Name, bd.Format)
		}
	}
	if len(b.bindings) > 0 {
		sb.WriteString("\n")
	}

	for _, s := range b.shared {
		sb.WriteString(s)
		sb.WriteString("\n")
	}
	if len(b.shared) > 0 {
		sb.WriteString("\n")
	}

	for _, h := range b.helpers {
		sb.WriteString(h)
		sb.WriteString("\n\n")
	}

	switch b.stage {
	case StageCompute:
		fmt.Fprintf(&sb, "@compute @workgroup_size(%d, %d, 1)\n", b.wgX, b.wgY)
		sb.WriteString("fn main(@builtin(global_invocation_id) gid: vec3<u32>,\n")
		sb.WriteString("        @builtin(local_invocation_index) lidx: u32,\n")
		sb.WriteString("        @builtin(workgroup_id) wid: vec3<u32>) {\n")
		sb.WriteString("    var color: vec4<f32> = vec4<f32>(0.0);\n")
		b.writeBody(&sb)
		sb.WriteString("}\n")
	default:
		sb.WriteString("@fragment\n")
		sb.WriteString("fn main(@location(0) uv: vec2<f32>) -> @location(0) vec4<f32> {\n")
		sb.WriteString("    var color: vec4<f32> = vec4<f32>(0.0);\n")
		b.writeBody(&sb)
		sb.WriteString("    return color;\n")
		sb.WriteString("}\n")
	}

	return sb.String()
}

func (b *Builder) writeBody(sb *strings.Builder) {
	for _, line := range b.body {
		for _, l := range strings.Split(line, "\n") {
			sb.WriteString("    ")
			sb.WriteString(l)
			sb.WriteString("\n")
		}
	}
}

// Float renders a float64 as a WGSL f32 literal. Integral values carry an
// explicit decimal point so the literal never parses as an integer.
func Float(v float64) string {
	s := strconv.FormatFloat(v, 'g', -1, 32)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

// Int renders an int as a WGSL literal.
func Int(v int) string {
	return strconv.Itoa(v)
}
