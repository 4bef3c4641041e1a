package profile

import (
	"slices"
	"testing"
)

func TestMake_AppliesOptions(t *testing.T) {
	p := Make(WithMode("cpu"), nil, WithPath("/tmp/p"), WithQuiet(true))

	want := Profiler{Mode: "cpu", Path: "/tmp/p", Quiet: true}
	if p != want {
		t.Errorf("Make() = %+v, want %+v", p, want)
	}
}

func TestStart_EmptyModeIsNoop(t *testing.T) {
	stop := Make().Start()
	if _, ok := stop.(ignore); !ok {
		t.Errorf("expected no-op handle, got %T", stop)
	}

	stop.Stop()
}

func TestStart_UnknownModeIsNoop(t *testing.T) {
	stop := Make(WithMode("bogus")).Start()
	if _, ok := stop.(ignore); !ok {
		t.Errorf("expected no-op handle, got %T", stop)
	}

	stop.Stop()
}

func TestModes_MatchBuild(t *testing.T) {
	modes := Modes()

	if Enabled != (len(modes) > 0) {
		t.Fatalf("Enabled = %v with modes %v", Enabled, modes)
	}

	if !slices.IsSorted(modes) {
		t.Errorf("modes not sorted: %v", modes)
	}
}
