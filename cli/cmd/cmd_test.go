package cmd

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ardnew/konst/lang"
)

// writeSource creates a source file named name in dir.
func writeSource(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	return path
}

func TestSourcesReadStdinDefault(t *testing.T) {
	ctx := WithIO(t.Context(), strings.NewReader("a; 1"), nil, nil)

	got, err := Sources{}.read(ctx)
	if err != nil {
		t.Fatalf("read() error = %v", err)
	}

	if got != "a; 1" {
		t.Errorf("read() = %q, want %q", got, "a; 1")
	}
}

func TestSourcesReadSingleFile(t *testing.T) {
	path := writeSource(t, t.TempDir(), "a.konst", "a; 1")

	got, err := Sources{Source: []string{path}}.read(t.Context())
	if err != nil {
		t.Fatalf("read() error = %v", err)
	}

	if got != "a; 1" {
		t.Errorf("read() = %q, want %q", got, "a; 1")
	}
}

func TestSourcesReadMultipleFiles(t *testing.T) {
	dir := t.TempDir()
	first := writeSource(t, dir, "first.konst", "var x 1")
	second := writeSource(t, dir, "second.konst", "y; @(+ x 1)")

	src := Sources{Source: []string{first, second}}

	got, err := src.read(t.Context())
	if err != nil {
		t.Fatalf("read() error = %v", err)
	}

	if want := "var x 1\ny; @(+ x 1)"; got != want {
		t.Errorf("read() = %q, want %q", got, want)
	}

	// Constants declared in an earlier file are visible in later files.
	doc, _, err := src.parse(t.Context())
	if err != nil {
		t.Fatalf("parse() error = %v", err)
	}

	if v, _ := doc.Get("y"); !v.Equal(lang.IntegerValue(2)) {
		t.Errorf("y = %v, want 2", v)
	}
}

func TestSourcesReadDuplicatePaths(t *testing.T) {
	dir := t.TempDir()
	path := writeSource(t, dir, "a.konst", "a; 1")

	link := filepath.Join(dir, "link.konst")
	if err := os.Symlink(path, link); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}

	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}

	rel, err := filepath.Rel(wd, path)
	if err != nil {
		t.Fatal(err)
	}

	got, err := Sources{Source: []string{path, rel, link, path}}.read(t.Context())
	if err != nil {
		t.Fatalf("read() error = %v", err)
	}

	if got != "a; 1" {
		t.Errorf("read() = %q, want the file read once", got)
	}
}

func TestSourcesReadMultipleStdinCollapsed(t *testing.T) {
	path := writeSource(t, t.TempDir(), "a.konst", "a; 1")
	ctx := WithIO(t.Context(), strings.NewReader("b; 2"), nil, nil)

	got, err := Sources{Source: []string{"-", path, "-"}}.read(ctx)
	if err != nil {
		t.Fatalf("read() error = %v", err)
	}

	if want := "b; 2\na; 1"; got != want {
		t.Errorf("read() = %q, want %q", got, want)
	}
}

func TestSourcesReadNonexistentFile(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.konst")

	_, err := Sources{Source: []string{missing}}.read(t.Context())
	if !errors.Is(err, ErrReadSource) {
		t.Fatalf("read() error = %v, want %v", err, ErrReadSource)
	}

	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("read() error = %v, want wrapped %v", err, os.ErrNotExist)
	}
}

func TestSourcesReadCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	if _, err := (Sources{Source: []string{"-"}}).read(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("read() error = %v, want %v", err, context.Canceled)
	}
}

func TestWithParseOptions(t *testing.T) {
	ctx := WithParseOptions(t.Context(), lang.WithMaxDepth(1))
	ctx = WithIO(ctx, strings.NewReader("a; [[1]]"), nil, nil)

	_, _, err := Sources{}.parse(ctx)
	if !errors.Is(err, lang.ErrMaxDepthExceeded) {
		t.Errorf("parse() error = %v, want %v", err, lang.ErrMaxDepthExceeded)
	}

	// Options appended to a derived context leave the parent untouched.
	parent := WithParseOptions(t.Context(), lang.WithMaxDepth(5))
	_ = WithParseOptions(parent, lang.WithMaxDepth(1))

	if n := len(parseOptionsFrom(parent)); n != 1 {
		t.Errorf("parent has %d options, want 1", n)
	}
}

func TestErrorIs(t *testing.T) {
	err := ErrWriteOutput.Wrap(os.ErrClosed)

	if !errors.Is(err, ErrWriteOutput) {
		t.Errorf("errors.Is(%v, ErrWriteOutput) = false", err)
	}

	if errors.Is(err, ErrReadSource) {
		t.Errorf("errors.Is(%v, ErrReadSource) = true", err)
	}

	if !errors.Is(err, os.ErrClosed) {
		t.Errorf("errors.Is(%v, os.ErrClosed) = false", err)
	}

	if got, want := err.Error(), "write output: "+os.ErrClosed.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}
