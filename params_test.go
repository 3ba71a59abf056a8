package sampler

import "testing"

func TestDefaultFilterParams(t *testing.T) {
	p := DefaultFilterParams()
	if p.LUTEntries != 64 {
		t.Errorf("LUTEntries = %d, want 64", p.LUTEntries)
	}
	if p.Cutoff != 0.001 {
		t.Errorf("Cutoff = %g, want 0.001", p.Cutoff)
	}
	if p.Antiring != 0 || p.NoCompute || p.NoWidening {
		t.Error("optional knobs must default to off")
	}
}

func TestFilterParams_ZeroValueResolution(t *testing.T) {
	// A zero-valued params struct resolves to the same defaults.
	var p FilterParams
	if p.lutEntries() != 64 {
		t.Errorf("lutEntries() = %d, want 64", p.lutEntries())
	}
	if p.cutoff() != 0.001 {
		t.Errorf("cutoff() = %g, want 0.001", p.cutoff())
	}

	p.LUTEntries = 128
	p.Cutoff = 0.01
	if p.lutEntries() != 128 || p.cutoff() != 0.01 {
		t.Error("explicit values must pass through unchanged")
	}
}

func TestDefaultDebandParams(t *testing.T) {
	want := DebandParams{Iterations: 1, Threshold: 4.0, Radius: 16.0, Grain: 6.0}
	if DefaultDebandParams != want {
		t.Errorf("DefaultDebandParams = %+v, want %+v", DefaultDebandParams, want)
	}
}
