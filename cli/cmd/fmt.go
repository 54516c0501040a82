package cmd

import (
	"context"
	"io"
	"log/slog"

	"github.com/ardnew/konst/lang"
)

// Fmt translates konst sources into one of the output formats.
type Fmt struct {
	JSON   JSON   `cmd:"" default:"withargs" help:"Translate to JSON (default)."`
	YAML   YAML   `cmd:""                    help:"Translate to YAML."`
	Env    Env    `cmd:""                    help:"Translate to shell variable assignments."`
	Native Native `cmd:""                    help:"Reformat as resolved konst entries."`
}

// JSON writes the Document as a JSON object.
type JSON struct {
	Indent int `default:"0" help:"Indent width, or 0 for compact output." short:"i"`

	Sources
}

// Run executes the json command.
func (j *JSON) Run(ctx context.Context) error {
	return run(ctx, "json", j.Sources, func(doc *lang.Document, w io.Writer) error {
		return doc.FormatJSON(ctx, w, j.Indent)
	})
}

// YAML writes the Document as a YAML mapping.
type YAML struct {
	Indent int `default:"2" help:"Indent width, or 0 for flow style." short:"i"`

	Sources
}

// Run executes the yaml command.
func (y *YAML) Run(ctx context.Context) error {
	return run(ctx, "yaml", y.Sources, func(doc *lang.Document, w io.Writer) error {
		return doc.FormatYAML(ctx, w, y.Indent)
	})
}

// Env writes the Document as NAME='value' lines.
type Env struct {
	Prefix string `default:"" help:"Prefix prepended to every variable name." short:"p"`

	Sources
}

// Run executes the env command.
func (e *Env) Run(ctx context.Context) error {
	return run(ctx, "env", e.Sources, func(doc *lang.Document, w io.Writer) error {
		return doc.FormatEnv(ctx, w, e.Prefix)
	})
}

// Native writes the Document in konst syntax.
type Native struct {
	Indent int `default:"1" help:"Write one entry per line if positive." short:"i"`

	Sources
}

// Run executes the native command.
func (n *Native) Run(ctx context.Context) error {
	return run(ctx, "native", n.Sources, func(doc *lang.Document, w io.Writer) error {
		return doc.Format(ctx, w, n.Indent)
	})
}

// run parses the sources and writes the Document with emit.
func run(
	ctx context.Context,
	format string,
	sources Sources,
	emit func(*lang.Document, io.Writer) error,
) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	doc, src, err := sources.parse(ctx)
	if err != nil {
		return parseFailure(ctx, format, src, err)
	}

	if err := emit(doc, streamsFrom(ctx).out); err != nil {
		return ErrWriteOutput.Wrap(err).With(slog.String("format", format))
	}

	return nil
}
