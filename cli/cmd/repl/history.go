package repl

import (
	"bufio"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
)

// baseHistory is the file name of the history in the cache directory.
const baseHistory = "history.utf8"

// maxHistory bounds the number of entries kept.
const maxHistory = 1000

// Mode prefixes of history file lines.
var modeTag = map[inputMode]string{
	modeSource: "S:",
	modeCtrl:   "C:",
}

// HistoryEntry is a line entered in one of the input modes.
type HistoryEntry struct {
	Line string
	Mode inputMode
}

// History is an input history persisted to a file, one entry per line.
// An empty path keeps the history in memory only.
type History struct {
	mu      sync.RWMutex
	path    string
	entries []HistoryEntry
}

// HistoryPath returns the path of the history file in the cache directory
// dir.
func HistoryPath(dir string) string { return filepath.Join(dir, baseHistory) }

// NewHistory returns an empty History backed by the file at path.
func NewHistory(path string) *History {
	return &History{path: path}
}

// Load replaces the entries with those in the history file. A missing file
// is not an error.
func (h *History) Load() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.path == "" {
		return nil
	}

	file, err := os.Open(h.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}

	if err != nil {
		return err
	}
	defer file.Close()

	h.entries = h.entries[:0]

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		if e, ok := parseEntry(scanner.Text()); ok {
			h.entries = append(h.entries, e)
		}
	}

	if n := len(h.entries) - maxHistory; n > 0 {
		h.entries = slices.Delete(h.entries, 0, n)
	}

	return scanner.Err()
}

func parseEntry(line string) (HistoryEntry, bool) {
	line = strings.TrimSpace(line)
	if line == "" {
		return HistoryEntry{}, false
	}

	for mode, tag := range modeTag {
		if s, ok := strings.CutPrefix(line, tag); ok {
			return HistoryEntry{Line: s, Mode: mode}, s != ""
		}
	}

	return HistoryEntry{Line: line, Mode: modeSource}, true
}

func (e HistoryEntry) String() string { return modeTag[e.Mode] + e.Line }

// Add appends line to the history. An earlier identical entry in the same
// mode is moved to the end.
func (h *History) Add(line string, mode inputMode) error {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	entry := HistoryEntry{Line: line, Mode: mode}

	if n := len(h.entries); n > 0 && h.entries[n-1] == entry {
		return nil
	}

	rewrite := false

	if i := slices.Index(h.entries, entry); i >= 0 {
		h.entries = slices.Delete(h.entries, i, i+1)
		rewrite = true
	}

	h.entries = append(h.entries, entry)

	if n := len(h.entries) - maxHistory; n > 0 {
		h.entries = slices.Delete(h.entries, 0, n)
		rewrite = true
	}

	if h.path == "" {
		return nil
	}

	if rewrite {
		return h.save()
	}

	file, err := os.OpenFile(h.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return err
	}
	defer file.Close()

	_, err = file.WriteString(entry.String() + "\n")

	return err
}

// save rewrites the history file. h.mu must be held.
func (h *History) save() error {
	var b strings.Builder
	for _, e := range h.entries {
		b.WriteString(e.String() + "\n")
	}

	return os.WriteFile(h.path, []byte(b.String()), 0o600)
}

// Entry returns the entry at index i, where 0 is the oldest.
func (h *History) Entry(i int) (HistoryEntry, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if i < 0 || i >= len(h.entries) {
		return HistoryEntry{}, ErrOutOfBounds
	}

	return h.entries[i], nil
}

// Len returns the number of entries.
func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.entries)
}

// Entries returns a copy of all entries, oldest first.
func (h *History) Entries() []HistoryEntry {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return slices.Clone(h.entries)
}
