package repl

import (
	"errors"
	"strings"
	"testing"

	"github.com/ardnew/konst/lang"
	"github.com/ardnew/konst/log"
)

func newTestSession(t *testing.T, source string) *Session {
	t.Helper()

	s, err := NewSession(t.Context(), source, log.Logger{})
	if err != nil {
		t.Fatalf("NewSession() error = %v", err)
	}

	return s
}

func TestSession_Eval(t *testing.T) {
	s := newTestSession(t, "var x 5")

	steps := []struct {
		input string
		want  string
	}{
		{"", ""},
		{"y; @(+ x 2)", "y; 7"},
		{"?y * 2", "14"},
		{"  ? y + 1  ", "8"},
		{`name; "abc"`, `name; "abc"`},
		{`?name + "d"`, "abcd"},
		// Redeclaring x does not change y, which was evaluated before it.
		{"var x 10", "var x 10"},
		{"z; x", "z; 10"},
		// Duplicate entries replace the earlier value.
		{"y; 1", "y; 1"},
		{"hosts; [1; 2]", "hosts; [1; 2]"},
		{"?hosts", "[1,2]"},
	}

	for _, step := range steps {
		got, err := s.Eval(t.Context(), step.input)
		if err != nil {
			t.Fatalf("Eval(%q) error = %v", step.input, err)
		}

		if got != step.want {
			t.Errorf("Eval(%q) = %q, want %q", step.input, got, step.want)
		}
	}

	if s.Len() != 6 {
		t.Errorf("Len() = %d, want 6", s.Len())
	}

	if got := s.Document().Keys(); strings.Join(got, ",") != "y,name,z,hosts" {
		t.Errorf("Keys() = %v", got)
	}
}

func TestSession_EvalRejected(t *testing.T) {
	s := newTestSession(t, "a; 1")

	tests := []struct {
		input   string
		wantErr error
	}{
		{"b 2", lang.ErrUnexpectedToken},
		{"c; @(+ nope 1)", lang.ErrUnknownConstant},
		{`d; "open`, lang.ErrUnterminatedString},
		{`e; @(+ "a" 1)`, lang.ErrTypeMismatch},
		{`f; @(ord "")`, lang.ErrInvalidArgument},
		{"?missing +", lang.ErrQueryCompile},
	}

	for _, tt := range tests {
		_, err := s.Eval(t.Context(), tt.input)
		if !errors.Is(err, tt.wantErr) {
			t.Errorf("Eval(%q) error = %v, want %v", tt.input, err, tt.wantErr)
		}
	}

	if s.Len() != 0 || s.Source() != "a; 1" {
		t.Errorf("rejected lines changed the session: Len() = %d, Source() = %q", s.Len(), s.Source())
	}
}

func TestSession_Snippet(t *testing.T) {
	s := newTestSession(t, "a; 1")

	_, err := s.Eval(t.Context(), "b 2")
	if err == nil {
		t.Fatal("Eval() expected error")
	}

	want := "  2 | b 2\n        ^\n"
	if got := s.snippet(err, "b 2"); got != want {
		t.Errorf("snippet() = %q, want %q", got, want)
	}
}

func TestSession_ResetReplace(t *testing.T) {
	s := newTestSession(t, "var base 1\na; base")

	if _, err := s.Define(t.Context(), "b; @(+ base 1)"); err != nil {
		t.Fatal(err)
	}

	if err := s.Reset(t.Context()); err != nil {
		t.Fatal(err)
	}

	if _, ok := s.Document().Get("b"); ok || s.Len() != 0 {
		t.Errorf("Reset() kept entered lines: %q", s.Source())
	}

	if v, _ := s.Document().Get("a"); !v.Equal(lang.IntegerValue(1)) {
		t.Errorf("Reset() lost initial source: a = %v", v)
	}

	if err := s.Replace(t.Context(), "c; 3"); err != nil {
		t.Fatal(err)
	}

	if s.Source() != "c; 3" || s.Document().Len() != 1 || s.Constants().Len() != 0 {
		t.Errorf("Replace() source = %q", s.Source())
	}

	if err := s.Replace(t.Context(), "d"); !errors.Is(err, lang.ErrUnexpectedToken) {
		t.Errorf("Replace() error = %v, want %v", err, lang.ErrUnexpectedToken)
	}

	if s.Source() != "c; 3" {
		t.Errorf("failed Replace() changed source to %q", s.Source())
	}
}

func TestNewSession_Invalid(t *testing.T) {
	_, err := NewSession(t.Context(), "a; [1; 2", log.Logger{})
	if !errors.Is(err, lang.ErrUnexpectedToken) {
		t.Errorf("NewSession() error = %v, want %v", err, lang.ErrUnexpectedToken)
	}
}

func TestNewSession_Options(t *testing.T) {
	_, err := NewSession(t.Context(), "a; [[1]]", log.Logger{}, lang.WithMaxDepth(1))
	if !errors.Is(err, lang.ErrMaxDepthExceeded) {
		t.Errorf("NewSession() error = %v, want %v", err, lang.ErrMaxDepthExceeded)
	}
}
