package pkg

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
)

func TestMetadata(t *testing.T) {
	if Name != "konst" {
		t.Errorf("Name = %q, want %q", Name, "konst")
	}

	if Description == "" {
		t.Error("Description is empty")
	}

	if !slices.ContainsFunc(Author, func(a AuthorInfo) bool { return a.Name == "ardnew" }) {
		t.Errorf("Author = %v, want ardnew", Author)
	}
}

func TestVersion(t *testing.T) {
	buf, err := os.ReadFile("VERSION")
	if err != nil {
		t.Fatalf("read VERSION: %v", err)
	}

	if want := strings.TrimSpace(string(buf)); Version() != want {
		t.Errorf("Version() = %q, want %q", Version(), want)
	}
}

func TestPrefixOf(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/usr/local/bin/konst", "konst"},
		{"/opt/konst.exe", "konst"},
		{"/tmp/__debug_bin3021", Name},
		{"/home/me/.konst.bin", "konst"},
		{"/tmp/...", Name},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := prefixOf(filepath.FromSlash(tt.path)); got != tt.want {
				t.Errorf("prefixOf(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestUserDir(t *testing.T) {
	root := t.TempDir()

	got := userDir(func() (string, error) { return root, nil }, ".config")
	if want := filepath.Join(root, Prefix()); got != want {
		t.Errorf("userDir = %q, want %q", got, want)
	}

	if got := ConfigPath("config"); got != filepath.Join(ConfigDir(), "config") {
		t.Errorf("ConfigPath = %q", got)
	}
}
