package lang

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"testing"
)

func TestError_Is(t *testing.T) {
	derived := ErrUnexpectedToken.At(Position{Line: 2, Column: 3}).
		With(slog.String("expected", ";"))

	if !errors.Is(derived, ErrUnexpectedToken) {
		t.Error("derived error does not match its sentinel")
	}

	if errors.Is(derived, ErrUnknownConstant) {
		t.Error("derived error matches an unrelated sentinel")
	}

	wrapped := fmt.Errorf("loading: %w", derived)
	if !errors.Is(wrapped, ErrUnexpectedToken) {
		t.Error("wrapped error does not match its sentinel")
	}

	if errors.Is(ErrUnexpectedToken, derived) {
		t.Error("sentinel matches a derived error")
	}
}

func TestError_Message(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "sentinel",
			err:  ErrTypeMismatch,
			want: "type mismatch",
		},
		{
			name: "position",
			err:  ErrUnterminatedString.At(Position{Line: 3, Column: 7}),
			want: "unterminated string at line 3, column 7",
		},
		{
			name: "detail",
			err: ErrUnknownConstant.At(Position{Line: 1, Column: 2}).
				With(slog.String("name", "y"), slog.Int("ignored", 1)),
			want: `unknown constant at line 1, column 2: name "y"`,
		},
		{
			name: "cause",
			err:  ErrReadInput.Wrap(errors.New("disk on fire")),
			want: "failed to read input: disk on fire",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestError_WithDoesNotMutate(t *testing.T) {
	base := ErrInvalidArgument.With(slog.String("op", "ord"))
	_ = base.With(slog.String("operand", "integer"))

	if _, ok := base.Attr("operand"); ok {
		t.Error("With mutated the receiver")
	}

	if len(ErrInvalidArgument.attrs) != 0 {
		t.Error("With mutated the sentinel")
	}
}

func TestError_WrapError(t *testing.T) {
	inner := ErrTypeMismatch.At(Position{Line: 1, Column: 1})

	if got := WrapError(fmt.Errorf("ctx: %w", inner)); got != inner {
		t.Errorf("WrapError did not return the wrapped *Error")
	}

	plain := errors.New("plain")
	if got := WrapError(plain); !errors.Is(got, plain) {
		t.Errorf("WrapError(plain) = %v, want wrapping %v", got, plain)
	}
}

func TestError_LogValue(t *testing.T) {
	err := ErrUnknownConstant.At(Position{Line: 4, Column: 9}).
		With(slog.String("name", "x"))

	var buf strings.Builder

	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				return slog.Attr{}
			}

			return a
		},
	}))
	logger.Error("failed", slog.Any("err", err))

	want := `level=ERROR msg=failed err.error="unknown constant" err.line=4 err.column=9 err.name=x` + "\n"
	if buf.String() != want {
		t.Errorf("log output = %q, want %q", buf.String(), want)
	}
}

func TestError_Snippet(t *testing.T) {
	src := "a; 1\nb; @(+ y 1)\nc; 3"

	_, err := ParseString(t.Context(), src)

	var le *Error
	if !errors.As(err, &le) {
		t.Fatalf("error = %v, want *Error", err)
	}

	want := "  2 | b; @(+ y 1)\n" +
		"             ^\n"
	if got := le.Snippet(src); got != want {
		t.Errorf("Snippet() =\n%q\nwant\n%q", got, want)
	}

	if got := ErrTypeMismatch.Snippet(src); got != "" {
		t.Errorf("Snippet() without position = %q, want empty", got)
	}
}
