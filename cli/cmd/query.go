package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ardnew/konst/lang"
	"github.com/ardnew/konst/log"
)

// Query evaluates an expression against the translated Document.
type Query struct {
	Expr string `arg:"" help:"expr-lang expression; entries are variables." name:"expr"`

	Sources
}

// Run executes the query command.
func (q *Query) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	doc, src, err := q.parse(ctx)
	if err != nil {
		return parseFailure(ctx, "query", src, err)
	}

	result, err := doc.Query(ctx, q.Expr)
	if err != nil {
		return lang.WrapError(err).With(slog.String("command", "query"))
	}

	log.TraceContext(ctx, "query result",
		slog.String("expression", q.Expr),
		slog.String("type", fmt.Sprintf("%T", result)))

	if _, err := fmt.Fprintln(streamsFrom(ctx).out, lang.FormatResult(result)); err != nil {
		return ErrWriteOutput.Wrap(err)
	}

	return nil
}
