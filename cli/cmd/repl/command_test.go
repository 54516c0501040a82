package repl

import (
	"errors"
	"strings"
	"testing"
)

func TestLookupCommand(t *testing.T) {
	tests := []struct {
		name string
		want string
		ok   bool
	}{
		{"list", "list", true},
		{"li", "list", true},
		{"q", "quit", true},
		{"j", "json", true},
		{"c", "", false}, // consts, clear
		{"", "", false},
		{"bogus", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, ok := lookupCommand(tt.name)
			if ok != tt.ok || c.name != tt.want {
				t.Errorf("lookupCommand(%q) = %q, %v; want %q, %v", tt.name, c.name, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestExecute(t *testing.T) {
	s := newTestSession(t, "var base 8000\nport; @(+ base 80)\nname; \"api\"")

	tests := []struct {
		input    string
		contains []string
		action   action
	}{
		{":list", []string{"port", "8080", "name", `"api"`}, actionNone},
		{"consts", []string{"base", "8000"}, actionNone},
		{":json", []string{`"port": 8080`, `"name": "api"`}, actionNone},
		{"yaml", []string{"port: 8080", "name: api"}, actionNone},
		{"env", []string{"PORT='8080'", "NAME='api'"}, actionNone},
		{"source", []string{"var base 8000"}, actionNone},
		{"help", []string{"list", "quit", "evaluate an expression"}, actionNone},
		{"clear", nil, actionClear},
		{"edit", nil, actionEdit},
		{":quit", nil, actionQuit},
		{"   ", nil, actionNone},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			out, act, err := execute(t.Context(), s, tt.input)
			if err != nil {
				t.Fatalf("execute(%q) error = %v", tt.input, err)
			}

			if act != tt.action {
				t.Errorf("execute(%q) action = %v, want %v", tt.input, act, tt.action)
			}

			for _, want := range tt.contains {
				if !strings.Contains(out, want) {
					t.Errorf("execute(%q) output missing %q:\n%s", tt.input, want, out)
				}
			}
		})
	}
}

func TestExecute_Reset(t *testing.T) {
	s := newTestSession(t, "a; 1")

	for _, line := range []string{"b; 2", "c; 3"} {
		if _, err := s.Define(t.Context(), line); err != nil {
			t.Fatal(err)
		}
	}

	out, _, err := execute(t.Context(), s, ":reset")
	if err != nil {
		t.Fatal(err)
	}

	if out != "discarded 2 line(s)" {
		t.Errorf("reset output = %q", out)
	}

	if s.Document().Len() != 1 {
		t.Errorf("Document().Len() = %d after reset, want 1", s.Document().Len())
	}
}

func TestExecute_Empty(t *testing.T) {
	s := newTestSession(t, "")

	for input, want := range map[string]string{
		"list":   "(no entries)",
		"consts": "(no constants)",
	} {
		out, _, err := execute(t.Context(), s, input)
		if err != nil || out != want {
			t.Errorf("execute(%q) = %q, %v; want %q", input, out, err, want)
		}
	}
}

func TestExecute_Unknown(t *testing.T) {
	s := newTestSession(t, "")

	if _, _, err := execute(t.Context(), s, ":bogus"); !errors.Is(err, ErrUnknownCommand) {
		t.Errorf("execute() error = %v, want %v", err, ErrUnknownCommand)
	}
}

func TestPreview(t *testing.T) {
	short := "[1; 2]"
	if got := preview(short); got != short {
		t.Errorf("preview(%q) = %q", short, got)
	}

	long := strings.Repeat("x", previewWidth+10)
	if got := preview(long); len([]rune(got)) != previewWidth || !strings.HasSuffix(got, "...") {
		t.Errorf("preview(long) = %q", got)
	}
}
