package cmd

import (
	"context"
	"os"
	"slices"

	"github.com/ardnew/konst/cli/cmd/repl"
	"github.com/ardnew/konst/log"
)

// Repl starts an interactive session.
type Repl struct {
	History bool `default:"true" help:"Persist input history in the cache directory." negatable:""`

	Sources
}

// Run executes the repl command.
//
// Unlike the other commands, Repl starts from empty source when no sources
// are given. Keys are read from the terminal when stdin is a source.
func (r *Repl) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	var src string

	if len(r.Source) > 0 {
		if src, err = r.read(ctx); err != nil {
			return err
		}
	}

	cfg := repl.Config{
		Source:   src,
		Options:  parseOptionsFrom(ctx),
		Logger:   log.Default(),
		InputTTY: slices.Contains(r.Source, stdinSource),
	}

	if r.History {
		if ktx := kongContextFrom(ctx); ktx != nil {
			if dir, ok := ktx.Model.Vars()[CacheIdentifier]; ok && dir != "" {
				cfg.HistoryPath = repl.HistoryPath(dir)
			}
		}
	}

	s := streamsFrom(ctx)

	if s.in != os.Stdin && !cfg.InputTTY {
		cfg.Input = s.in
	}

	if s.out != os.Stdout {
		cfg.Output = s.out
	}

	if err := repl.Run(ctx, cfg); err != nil {
		return parseFailure(ctx, "repl", src, err)
	}

	return nil
}
