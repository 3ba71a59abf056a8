package sampler

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/gogpu/sampler/shader"
)

// recordingHandler captures log records for assertions.
type recordingHandler struct {
	mu      sync.Mutex
	records []slog.Record
}

func (h *recordingHandler) Enabled(context.Context, slog.Level) bool { return true }

func (h *recordingHandler) Handle(_ context.Context, r slog.Record) error {
	h.mu.Lock()
	h.records = append(h.records, r)
	h.mu.Unlock()
	return nil
}

func (h *recordingHandler) WithAttrs([]slog.Attr) slog.Handler { return h }
func (h *recordingHandler) WithGroup(string) slog.Handler      { return h }

func (h *recordingHandler) messages(level slog.Level) []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	var out []string
	for _, r := range h.records {
		if r.Level == level {
			out = append(out, r.Message)
		}
	}
	return out
}

func TestSampleAuto_PolarPreferred(t *testing.T) {
	sh := shader.NewBuilder(shader.Capabilities{})
	src := &SampleSrc{Tex: linearTex(100, 100, 4), NewW: 200, NewH: 200}
	if err := SampleAuto(sh, src, polarParams()); err != nil {
		t.Fatalf("SampleAuto() error = %v", err)
	}
	if !strings.Contains(sh.Source(), "lut_at(") {
		t.Error("configured polar filtering not used")
	}
}

func TestSampleAuto_FallsBackToBicubic(t *testing.T) {
	h := &recordingHandler{}
	SetLogger(slog.New(h))
	defer SetLogger(nil)

	// A compute-stage program whose polar compute path is disabled has
	// no polar variant left, so the chain steps down to bicubic.
	sh := shader.NewBuilder(computeCaps())
	if !sh.SetCompute(16, 16) {
		t.Fatal("SetCompute() = false")
	}
	src := &SampleSrc{Tex: linearTex(100, 100, 4), NewW: 200, NewH: 200}
	p := polarParams()
	p.NoCompute = true

	if err := SampleAuto(sh, src, p); err != nil {
		t.Fatalf("SampleAuto() error = %v", err)
	}

	out := sh.Source()
	if strings.Contains(out, "lut_at(") {
		t.Error("polar path used despite being unavailable")
	}
	if got := strings.Count(out, "textureSampleLevel("); got != 4 {
		t.Errorf("fetches = %d, want the four bicubic fetches", got)
	}

	warns := h.messages(slog.LevelWarn)
	if len(warns) != 1 || !strings.Contains(warns[0], "polar") {
		t.Errorf("warnings = %q, want one polar fallback warning", warns)
	}
}

func TestSampleAuto_FallsBackToDirect(t *testing.T) {
	h := &recordingHandler{}
	SetLogger(slog.New(h))
	defer SetLogger(nil)

	sh := shader.NewBuilder(shader.Capabilities{})
	src := &SampleSrc{Tex: nearestTex(100, 100, 4), NewW: 200, NewH: 200}

	if err := SampleAuto(sh, src, nil); err != nil {
		t.Fatalf("SampleAuto() error = %v", err)
	}
	if got := strings.Count(sh.Source(), "textureSampleLevel("); got != 1 {
		t.Errorf("fetches = %d, want the single direct fetch", got)
	}

	warns := h.messages(slog.LevelWarn)
	if len(warns) != 1 || !strings.Contains(warns[0], "bicubic") {
		t.Errorf("warnings = %q, want one bicubic fallback warning", warns)
	}
}

func TestSampleAuto_HardErrorsPropagate(t *testing.T) {
	src := &SampleSrc{
		Tex:  linearTex(100, 100, 4),
		Rect: Rect{0, 0, 200, 100},
	}
	err := SampleAuto(shader.NewBuilder(shader.Capabilities{}), src, polarParams())
	if !errors.Is(err, ErrBadSourceRect) {
		t.Errorf("error = %v, want ErrBadSourceRect without fallback", err)
	}

	err = SampleAuto(shader.NewBuilder(shader.Capabilities{}), nil, nil)
	if !errors.Is(err, ErrNilTexture) {
		t.Errorf("error = %v, want ErrNilTexture", err)
	}
}
