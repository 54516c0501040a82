package profile

import (
	"slices"
	"testing"
)

func TestMake(t *testing.T) {
	p := Make(WithMode("cpu"), WithPath("/tmp/prof"), WithQuiet(true))

	want := Profiler{Mode: "cpu", Path: "/tmp/prof", Quiet: true}
	if p != want {
		t.Errorf("Make() = %+v, want %+v", p, want)
	}
}

func TestProfiler_StartNoop(t *testing.T) {
	for _, mode := range []string{"", "bogus"} {
		ctrl := Make(WithMode(mode), WithPath(t.TempDir())).Start()
		if _, ok := ctrl.(ignore); !ok {
			t.Errorf("Start() with mode %q = %T, want no-op", mode, ctrl)
		}

		ctrl.Stop()
	}
}

func TestModes(t *testing.T) {
	modes := Modes()
	if !slices.IsSorted(modes) {
		t.Errorf("Modes() = %v, not sorted", modes)
	}

	if len(modes) > 0 && !slices.Contains(modes, "cpu") {
		t.Errorf("Modes() = %v, missing cpu", modes)
	}
}
