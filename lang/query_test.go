package lang

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"runtime"
	"slices"
	"testing"
)

func TestDocument_Query(t *testing.T) {
	doc := mustParse(t, `
var base 8000
name; "api"
port; @(+ base 80)
hosts; ["a"; "b"; "c"]
ratio; 0.5
`)

	tests := []struct {
		name string
		expr string
		want string // fmt.Sprint of the result
	}{
		{"entry", "port", "8080"},
		{"arithmetic", "port + 1", "8081"},
		{"string concat", `name + ":" + string(port)`, "api:8080"},
		{"array length", "len(hosts)", "3"},
		{"array index", "hosts[1]", "b"},
		{"comparison", "ratio < 1", "true"},
		{"builtin ord", "ord(name)", "97"},
		{"filter", `filter(hosts, # != "b")`, "[a c]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := doc.Query(t.Context(), tt.expr)
			if err != nil {
				t.Fatalf("Query(%q) error: %v", tt.expr, err)
			}

			if s := fmt.Sprint(got); s != tt.want {
				t.Errorf("Query(%q) = %s (%T), want %s", tt.expr, s, got, tt.want)
			}
		})
	}
}

func TestDocument_QueryErrors(t *testing.T) {
	doc := mustParse(t, `name; "" n; 1`)

	tests := []struct {
		name    string
		expr    string
		wantErr error
	}{
		{"syntax error", "n +", ErrQueryCompile},
		{"unknown name", "missing", ErrQueryCompile},
		{"ord of empty string", "ord(name)", ErrQueryEvaluate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := doc.Query(t.Context(), tt.expr)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Query(%q) error = %v, want %v", tt.expr, err, tt.wantErr)
			}
		})
	}
}

func TestDocument_QueryCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	_, err := NewDocument().Query(ctx, "1")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("error = %v, want %v", err, context.Canceled)
	}
}

func TestDocument_QueryBuiltins(t *testing.T) {
	t.Setenv("KONST_QUERY_TEST", "set")

	doc := mustParse(t, `dir; "a" file; "shadowed"`)

	tests := []struct {
		name string
		expr string
		want string
	}{
		{"platform", "platform.os", runtime.GOOS},
		{"env", `env("KONST_QUERY_TEST")`, "set"},
		{"path cat", `path.cat(dir, "b")`, filepath.Join("a", "b")},
		{"entry shadows builtin", "file", "shadowed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := doc.Query(t.Context(), tt.expr)
			if err != nil {
				t.Fatalf("Query(%q) error: %v", tt.expr, err)
			}

			if s := fmt.Sprint(got); s != tt.want {
				t.Errorf("Query(%q) = %s, want %s", tt.expr, s, tt.want)
			}
		})
	}
}

func TestBuiltinNames(t *testing.T) {
	want := []string{"env", "file", "mung", "path", "platform"}
	if got := BuiltinNames(); !slices.Equal(got, want) {
		t.Errorf("BuiltinNames() = %v, want %v", got, want)
	}

	if got := BuiltinMembers("path"); !slices.Contains(got, "cat") {
		t.Errorf("BuiltinMembers(path) = %v, want cat", got)
	}

	if got := BuiltinMembers("env"); got != nil {
		t.Errorf("BuiltinMembers(env) = %v, want nil", got)
	}
}

func TestBuiltin(t *testing.T) {
	if v, ok := Builtin("platform.os"); !ok || v != runtime.GOOS {
		t.Errorf("Builtin(platform.os) = %v, %v", v, ok)
	}

	if _, ok := Builtin("path.cat"); !ok {
		t.Error("Builtin(path.cat) not found")
	}

	for _, path := range []string{"path.nope", "env.x", "nope", ""} {
		if _, ok := Builtin(path); ok {
			t.Errorf("Builtin(%q) found", path)
		}
	}
}

func TestFormatResult(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{"a<b", "a<b"},
		{int64(42), "42"},
		{1.5, "1.5"},
		{true, "true"},
		{nil, "null"},
		{[]any{"x", 1}, `["x",1]`},
		{map[string]any{"k": "v"}, `{"k":"v"}`},
	}

	for _, tt := range tests {
		if got := FormatResult(tt.in); got != tt.want {
			t.Errorf("FormatResult(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
