package lang

import (
	"maps"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"sync"

	"github.com/ardnew/mung"
)

// Query builtins are created once per process and cloned into the
// environment of every query. Document entries shadow builtins of the same
// name.
var (
	builtinOnce sync.Once
	builtins    map[string]any
)

func queryBuiltins() map[string]any {
	builtinOnce.Do(func() {
		builtins = map[string]any{
			"platform": map[string]any{
				"os":   runtime.GOOS,
				"arch": runtime.GOARCH,
			},

			// Process environment lookup.
			"env": os.Getenv,

			"file": map[string]any{
				"exists": fileExists,
				"isDir":  fileIsDir,
			},

			"path": map[string]any{
				"abs": pathAbs,
				"cat": filepath.Join,
				"rel": pathRel,
				"sep": string(os.PathListSeparator),
			},

			// PATH-like list manipulation.
			"mung": map[string]any{
				"prefix": mungPrefix,
				"join":   mungJoin,
			},
		}
	})

	return maps.Clone(builtins)
}

// BuiltinNames returns the sorted top-level names available to queries in
// addition to the Document entries.
func BuiltinNames() []string {
	return slices.Sorted(maps.Keys(queryBuiltins()))
}

// BuiltinMembers returns the sorted member names of the builtin namespace
// name, such as "path", or nil if name is not a namespace.
func BuiltinMembers(name string) []string {
	m, ok := queryBuiltins()[name].(map[string]any)
	if !ok {
		return nil
	}

	return sortedKeys(m)
}

// Builtin returns the builtin at the dot-separated path, such as "path.cat".
func Builtin(path string) (any, bool) {
	var cur any = queryBuiltins()

	for seg := range strings.SplitSeq(path, ".") {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}

		if cur, ok = m[seg]; !ok {
			return nil, false
		}
	}

	return cur, true
}

func fileExists(path string) bool {
	_, err := os.Stat(path)

	return !os.IsNotExist(err)
}

func fileIsDir(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}

	return info.IsDir()
}

func pathAbs(path string) string {
	p, err := filepath.Abs(path)
	if err != nil {
		return path
	}

	return p
}

func pathRel(from, to string) string {
	p, err := filepath.Rel(pathAbs(from), pathAbs(to))
	if err != nil {
		return filepath.Join(from, to)
	}

	return p
}

// mungPrefix prepends items to the path list value.
func mungPrefix(value string, items ...string) string {
	return mung.Make(
		mung.WithSubjectItems(value),
		mung.WithDelim(string(os.PathListSeparator)),
		mung.WithPrefixItems(items...),
	).String()
}

// mungJoin joins items into a path list.
func mungJoin(items ...string) string {
	return mung.Make(
		mung.WithSubjectItems(items...),
		mung.WithDelim(string(os.PathListSeparator)),
	).String()
}
