package browse

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestHistory_Persist(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", HistoryFile)

	h := NewHistory(path)

	for _, e := range []HistoryEntry{
		{"Objects/Model", modePath},
		{"list", modeCtrl},
		{"Connections", modePath},
		{"  ", modePath},
		{"Root/  Kid ", modePath},
	} {
		if err := h.Write(e.Line, e.Mode); err != nil {
			t.Fatal(err)
		}
	}

	reloaded := NewHistory(path)
	if err := reloaded.Load(); err != nil {
		t.Fatal(err)
	}

	want := []HistoryEntry{
		{"Objects/Model", modePath},
		{"list", modeCtrl},
		{"Connections", modePath},
		{"Root/  Kid ", modePath},
	}

	if diff := cmp.Diff(want, reloaded.Entries()); diff != "" {
		t.Errorf("reloaded history mismatch (-want +got):\n%s", diff)
	}
}

func TestHistory_Duplicates(t *testing.T) {
	path := filepath.Join(t.TempDir(), HistoryFile)

	h := NewHistory(path)

	for _, e := range []HistoryEntry{
		{"a", modePath},
		{"b", modePath},
		{"b", modePath},
		{"a", modeCtrl},
		{"a", modePath},
	} {
		if err := h.Write(e.Line, e.Mode); err != nil {
			t.Fatal(err)
		}
	}

	want := []HistoryEntry{{"b", modePath}, {"a", modeCtrl}, {"a", modePath}}

	if diff := cmp.Diff(want, h.Entries()); diff != "" {
		t.Errorf("history mismatch (-want +got):\n%s", diff)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	if got, want := string(data), "P:b\nC:a\nP:a\n"; got != want {
		t.Errorf("history file = %q, want %q", got, want)
	}
}

func TestHistory_InMemory(t *testing.T) {
	h := NewHistory("")

	if err := h.Load(); err != nil {
		t.Fatal(err)
	}

	if err := h.Write("Objects", modePath); err != nil {
		t.Fatal(err)
	}

	if h.Len() != 1 {
		t.Errorf("expected 1 entry, got %d", h.Len())
	}

	if _, err := h.Entry(1); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("expected ErrOutOfBounds, got %v", err)
	}
}

func TestHistory_LoadMissing(t *testing.T) {
	h := NewHistory(filepath.Join(t.TempDir(), "missing"))
	if err := h.Load(); err != nil {
		t.Errorf("expected no error for missing file, got %v", err)
	}
}
