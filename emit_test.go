package sampler

import (
	"testing"

	"github.com/gogpu/sampler/shader"
)

func TestComputeEligible(t *testing.T) {
	full := computeCaps()
	tests := []struct {
		name  string
		caps  shader.Capabilities
		p     FilterParams
		shmem int
		want  bool
	}{
		{name: "full caps", caps: full, want: true},
		{name: "no compute", caps: shader.Capabilities{StorageWrite: true}, want: false},
		{name: "no storage write", caps: shader.Capabilities{Compute: true}, want: false},
		{name: "disabled by params", caps: full, p: FilterParams{NoCompute: true}, want: false},
		{
			name: "workgroup over invocation limit",
			caps: shader.Capabilities{Compute: true, StorageWrite: true, MaxInvocations: 64},
			want: false,
		},
		{name: "tile within storage limit", caps: full, shmem: 16384, want: true},
		{name: "tile over storage limit", caps: full, shmem: 16385, want: false},
		{
			name:  "raised storage limit",
			caps:  shader.Capabilities{Compute: true, StorageWrite: true, MaxWorkgroupStorage: 32768},
			shmem: 20000,
			want:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := computeEligible(tt.caps, &tt.p, tt.shmem); got != tt.want {
				t.Errorf("computeEligible() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestStorageFormat(t *testing.T) {
	if got := storageFormat(shader.Capabilities{}); got != "rgba8unorm" {
		t.Errorf("storageFormat() = %q, want the rgba8unorm default", got)
	}
	caps := shader.Capabilities{StorageFormat: "rgba16float"}
	if got := storageFormat(caps); got != "rgba16float" {
		t.Errorf("storageFormat() = %q, want the configured format", got)
	}
}

func TestDispatchVariant_String(t *testing.T) {
	if variantFragment.String() != "fragment" ||
		variantGather.String() != "gather" ||
		variantCompute.String() != "compute" {
		t.Error("variant names out of sync with their tags")
	}
}

func TestPolarSkip(t *testing.T) {
	tests := []struct {
		dx, dy int
		cutoff float64
		want   bool
	}{
		{0, 0, 3, false},
		{1, 0, 3, false},
		{3, 3, 3, false}, // nearest reachable point is hypot(2,2) < 3
		{-2, -2, 2.5, true},
		{2, 0, 3, false},
		{-3, 0, 3, true},
		{4, 0, 3, true}, // hypot(3,0) lands exactly on the cutoff
	}

	for _, tt := range tests {
		got := polarSkip(tt.dx, tt.dy, tt.cutoff)
		if got != tt.want {
			t.Errorf("polarSkip(%d, %d, %g) = %v, want %v", tt.dx, tt.dy, tt.cutoff, got, tt.want)
		}
	}
}
