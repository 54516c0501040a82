package cmd

import (
	"context"
	"io"
	"os"

	"github.com/alecthomas/kong"

	"github.com/ardnew/konst/lang"
)

type (
	kongKey    struct{}
	ioKey      struct{}
	optionsKey struct{}
)

// streams are the standard streams of a command.
type streams struct {
	in  io.Reader
	out io.Writer
	err io.Writer
}

// WithContext returns a copy of ctx holding the kong context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, kongKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, _ := ctx.Value(kongKey{}).(*kong.Context)

	return ktx
}

// WithIO returns a copy of ctx whose commands read stdin from in and write
// to out and errOut. Nil streams select the process streams.
func WithIO(ctx context.Context, in io.Reader, out, errOut io.Writer) context.Context {
	return context.WithValue(ctx, ioKey{}, streams{in, out, errOut})
}

func streamsFrom(ctx context.Context) streams {
	s, _ := ctx.Value(ioKey{}).(streams)

	if s.in == nil {
		s.in = os.Stdin
	}

	if s.out == nil {
		s.out = os.Stdout
	}

	if s.err == nil {
		s.err = os.Stderr
	}

	return s
}

// WithParseOptions returns a copy of ctx whose commands parse sources with
// opts in addition to those already held by ctx.
func WithParseOptions(ctx context.Context, opts ...lang.Option) context.Context {
	prev := parseOptionsFrom(ctx)

	return context.WithValue(ctx, optionsKey{}, append(prev[:len(prev):len(prev)], opts...))
}

func parseOptionsFrom(ctx context.Context) []lang.Option {
	opts, _ := ctx.Value(optionsKey{}).([]lang.Option)

	return opts
}
