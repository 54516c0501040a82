package repl

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func TestHistory_AddInMemory(t *testing.T) {
	h := NewHistory("")

	for _, in := range []struct {
		line string
		mode inputMode
	}{
		{"a; 1", modeSource},
		{"  ", modeSource},
		{"list", modeCtrl},
		{"list", modeCtrl}, // repeated last entry
		{"a; 1", modeSource},
	} {
		if err := h.Add(in.line, in.mode); err != nil {
			t.Fatalf("Add(%q) error = %v", in.line, err)
		}
	}

	want := []HistoryEntry{
		{Line: "list", Mode: modeCtrl},
		{Line: "a; 1", Mode: modeSource},
	}
	if got := h.Entries(); !slices.Equal(got, want) {
		t.Errorf("Entries() = %v, want %v", got, want)
	}

	if _, err := h.Entry(h.Len()); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("Entry(%d) error = %v, want %v", h.Len(), err, ErrOutOfBounds)
	}
}

func TestHistory_Persist(t *testing.T) {
	path := HistoryPath(t.TempDir())

	h := NewHistory(path)
	if err := h.Load(); err != nil {
		t.Fatalf("Load() of missing file error = %v", err)
	}

	for _, line := range []string{"a; 1", "b; 2", "a; 1"} {
		if err := h.Add(line, modeSource); err != nil {
			t.Fatal(err)
		}
	}

	if err := h.Add("json", modeCtrl); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	if want := "S:b; 2\nS:a; 1\nC:json\n"; string(data) != want {
		t.Errorf("history file = %q, want %q", data, want)
	}

	loaded := NewHistory(path)
	if err := loaded.Load(); err != nil {
		t.Fatal(err)
	}

	if !slices.Equal(loaded.Entries(), h.Entries()) {
		t.Errorf("Load() = %v, want %v", loaded.Entries(), h.Entries())
	}
}

func TestHistory_LoadTruncates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history")

	var data []byte
	for range maxHistory + 5 {
		data = append(data, "S:x; 1\n"...)
	}

	data = append(data, "untagged; 2\n\nC:\n"...)

	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	h := NewHistory(path)
	if err := h.Load(); err != nil {
		t.Fatal(err)
	}

	if h.Len() != maxHistory {
		t.Errorf("Len() = %d, want %d", h.Len(), maxHistory)
	}

	last, err := h.Entry(h.Len() - 1)
	if err != nil {
		t.Fatal(err)
	}

	if last != (HistoryEntry{Line: "untagged; 2", Mode: modeSource}) {
		t.Errorf("last entry = %v", last)
	}
}
