package repl

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ardnew/konst/lang"
	"github.com/ardnew/konst/log"
)

// queryPrefix marks an input line as an expression to evaluate rather than
// source to accumulate.
const queryPrefix = "?"

// Session accumulates konst source one line at a time, reparsing the whole
// source on every accepted line.
//
// A line that fails to parse is rejected and leaves the Session unchanged.
type Session struct {
	opts   []lang.Option
	logger log.Logger
	base   string
	lines  []string
	doc    *lang.Document
	consts *lang.Constants
}

// NewSession returns a Session starting from source.
func NewSession(ctx context.Context, source string, logger log.Logger, opts ...lang.Option) (*Session, error) {
	s := &Session{opts: opts, logger: logger}
	if err := s.load(ctx, source, nil); err != nil {
		return nil, err
	}

	return s, nil
}

// load parses base followed by lines and commits the result on success.
func (s *Session) load(ctx context.Context, base string, lines []string) error {
	src := joinSource(base, lines)

	p := lang.NewParser(src, s.opts...)

	doc, err := p.Parse(ctx)
	if err != nil {
		return err
	}

	s.base, s.lines = base, lines
	s.doc, s.consts = doc, p.Constants()

	return nil
}

func joinSource(base string, lines []string) string {
	if base == "" {
		return strings.Join(lines, "\n")
	}

	return strings.Join(append([]string{base}, lines...), "\n")
}

// Source returns the accumulated source.
func (s *Session) Source() string { return joinSource(s.base, s.lines) }

// Document returns the Document translated from the accumulated source.
func (s *Session) Document() *lang.Document { return s.doc }

// Constants returns the constants defined by the accumulated source.
func (s *Session) Constants() *lang.Constants { return s.consts }

// Eval processes one line of input.
//
// A line starting with "?" is evaluated as a query and its result returned.
// Any other line is appended to the source, and the entries it added or
// changed are returned in konst syntax.
func (s *Session) Eval(ctx context.Context, input string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", nil
	}

	if expr, ok := strings.CutPrefix(input, queryPrefix); ok {
		result, err := s.doc.Query(ctx, strings.TrimSpace(expr))
		if err != nil {
			return "", err
		}

		return lang.FormatResult(result), nil
	}

	return s.Define(ctx, input)
}

// Define appends line to the source and returns the changed entries.
func (s *Session) Define(ctx context.Context, line string) (string, error) {
	prevDoc, prevConsts := s.doc, s.consts

	lines := append(s.lines[:len(s.lines):len(s.lines)], line)
	if err := s.load(ctx, s.base, lines); err != nil {
		s.logger.TraceContext(ctx, "repl line rejected", slog.String("line", line))

		return "", err
	}

	var out []string

	for key, v := range s.doc.All() {
		if old, ok := prevDoc.Get(key); !ok || !old.Equal(v) {
			out = append(out, key+"; "+v.String())
		}
	}

	for _, name := range s.consts.Names() {
		v, _ := s.consts.Lookup(name)
		if old, ok := prevConsts.Lookup(name); !ok || !old.Equal(v) {
			out = append(out, fmt.Sprintf("%s %s %s", lang.TokenVar, name, v))
		}
	}

	return strings.Join(out, "\n"), nil
}

// Replace discards the accumulated source in favor of source.
func (s *Session) Replace(ctx context.Context, source string) error {
	return s.load(ctx, source, nil)
}

// Reset discards the lines accepted since the Session started or the last
// Replace.
func (s *Session) Reset(ctx context.Context) error {
	return s.load(ctx, s.base, nil)
}

// Len returns the number of accepted lines.
func (s *Session) Len() int { return len(s.lines) }

// snippet returns the source excerpt locating err, as if line had been
// appended to the accumulated source.
func (s *Session) snippet(err error, line string) string {
	src := s.Source()
	if !strings.HasPrefix(strings.TrimSpace(line), queryPrefix) {
		src = joinSource(s.base, append(s.lines[:len(s.lines):len(s.lines)], strings.TrimSpace(line)))
	}

	return lang.WrapError(err).Snippet(src)
}
