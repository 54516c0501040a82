package lang

import (
	"errors"
	"log/slog"
	"strconv"
	"strings"
)

// Predefined errors (sentinel values).
//
// Errors returned by this package are derived from one of these values with
// [Error.At], [Error.With], or [Error.Wrap]; test for a kind with
// [errors.Is].
var (
	ErrUnterminatedString = NewError("unterminated string")
	ErrInvalidNumber      = NewError("invalid number")
	ErrUnknownCharacter   = NewError("unknown character")
	ErrUnexpectedToken    = NewError("unexpected token")
	ErrUnknownConstant    = NewError("unknown constant")
	ErrTypeMismatch       = NewError("type mismatch")
	ErrInvalidArgument    = NewError("invalid argument")
	ErrIntegerOverflow    = NewError("integer overflow")
	ErrMaxDepthExceeded   = NewError("maximum nesting depth exceeded")
	ErrReadInput          = NewError("failed to read input")
	ErrQueryCompile       = NewError("query compilation failed")
	ErrQueryEvaluate      = NewError("query evaluation failed")
)

// Error represents an error with an optional source position and structured
// logging attributes.
// It implements both error and slog.LogValuer interfaces.
type Error struct {
	kind  *Error      // Sentinel this error derives from (nil for sentinels)
	msg   string      // Kind description
	err   error       // Wrapped error (for errors.Unwrap)
	pos   *Position   // Location of detection, if known
	attrs []slog.Attr // Attributes for structured logging
}

// NewError creates a new sentinel Error with a message.
func NewError(msg string) *Error {
	return &Error{msg: msg}
}

// WrapError wraps a standard error into an Error.
// If err already is (or wraps) an *Error, that error is returned.
func WrapError(err error) *Error {
	ee := &Error{}
	if errors.As(err, &ee) {
		return ee
	}

	return &Error{err: err}
}

// Error implements the error interface.
func (e *Error) Error() string {
	// Build error message from whichever fields are set:
	//
	//   "<msg> at line L, column C: <err>"
	part := make([]string, 0, 2)

	if e.msg != "" {
		msg := e.msg
		if e.pos != nil {
			msg += " at " + e.pos.String()
		}

		part = append(part, msg)
	}

	if detail := e.detail(); detail != "" {
		part = append(part, detail)
	}

	if e.err != nil {
		part = append(part, e.err.Error())
	}

	return strings.Join(part, ": ")
}

// detail renders the attributes that refine the message of an error kind.
func (e *Error) detail() string {
	var fields []string

	for _, a := range e.attrs {
		switch a.Key {
		case "expected", "actual", "name", "char", "text", "op", "operand":
			fields = append(fields, a.Key+" "+strconv.Quote(a.Value.String()))
		}
	}

	return strings.Join(fields, ", ")
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *Error) Unwrap() error { return e.err }

// Is reports whether e was derived from the sentinel target.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}

	return e == t || (e.kind != nil && e.kind == t) ||
		(t.kind != nil && e.kind == t.kind && e.msg == t.msg)
}

// Position returns the source position at which the error was detected.
// The boolean result is false if no position was recorded.
func (e *Error) Position() (Position, bool) {
	if e.pos == nil {
		return Position{}, false
	}

	return *e.pos, true
}

// Attr returns the value of the attribute with the given key.
func (e *Error) Attr(key string) (slog.Value, bool) {
	for _, a := range e.attrs {
		if a.Key == key {
			return a.Value, true
		}
	}

	return slog.Value{}, false
}

// LogValue implements slog.LogValuer for rich structured logging.
func (e *Error) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.attrs)+4)

	if e.msg != "" {
		attrs = append(attrs, slog.String("error", e.msg))
	}

	if e.pos != nil {
		attrs = append(attrs,
			slog.Int("line", e.pos.Line),
			slog.Int("column", e.pos.Column),
		)
	}

	if e.err != nil {
		attrs = append(attrs, slog.String("cause", e.err.Error()))
	}

	return slog.GroupValue(append(attrs, e.attrs...)...)
}

// derive copies e so that the copy remembers its sentinel.
func (e *Error) derive() *Error {
	d := *e
	if d.kind == nil && e.msg != "" {
		d.kind = e
	}

	return &d
}

// Wrap creates a new Error wrapping another error.
func (e *Error) Wrap(err error) *Error {
	d := e.derive()
	d.err = err

	return d
}

// At creates a new Error recording the position of detection.
func (e *Error) At(pos Position) *Error {
	d := e.derive()
	d.pos = &pos

	return d
}

// With adds attributes to the error for structured logging.
// This creates a new Error instance to maintain immutability.
func (e *Error) With(attrs ...slog.Attr) *Error {
	newAttrs := make([]slog.Attr, len(e.attrs)+len(attrs))
	copy(newAttrs, e.attrs)
	copy(newAttrs[len(e.attrs):], attrs)

	d := e.derive()
	d.attrs = newAttrs

	return d
}

// Snippet formats the source line containing the error position with a
// marker pointing at the column. It returns the empty string if the error has
// no position or the position is outside of source.
func (e *Error) Snippet(source string) string {
	if e.pos == nil {
		return ""
	}

	lines := strings.Split(source, "\n")
	if e.pos.Line <= 0 || e.pos.Line > len(lines) {
		return ""
	}

	var src strings.Builder

	lineNum := strconv.Itoa(e.pos.Line)

	src.WriteString("  ")
	src.WriteString(lineNum)
	src.WriteString(" | ")
	src.WriteString(strings.TrimRight(lines[e.pos.Line-1], "\r"))
	src.WriteRune('\n')

	// 2 leading spaces + " | " (3 chars)
	padding := strings.Repeat(" ", len(lineNum)+5)
	if e.pos.Column > 0 {
		padding += strings.Repeat(" ", e.pos.Column-1)
	}

	src.WriteString(padding + "^\n")

	return src.String()
}
