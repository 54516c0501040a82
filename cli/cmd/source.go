package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/klauspost/readahead"

	"github.com/ardnew/konst/lang"
	"github.com/ardnew/konst/log"
)

// stdinSource names standard input among the sources.
const stdinSource = "-"

// Sources are the konst source files read by a command.
type Sources struct {
	Source []string `arg:"" help:"Source file(s), or '-' for stdin (default)." name:"source" optional:""`
}

// read returns the contents of the sources in order, joined with newlines.
//
// Standard input is read when no sources are given. A file named more than
// once, through any path or symlink, is read only at its first occurrence.
func (s Sources) read(ctx context.Context) (string, error) {
	names := s.Source
	if len(names) == 0 {
		names = []string{stdinSource}
	}

	var (
		parts []string
		seen  []os.FileInfo
		stdin bool
	)

	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return "", context.Cause(ctx)
		}

		if name == stdinSource {
			if stdin {
				continue
			}

			stdin = true

			text, err := readAll(streamsFrom(ctx).in)
			if err != nil {
				return "", ErrReadSource.With(slog.String("source", name)).Wrap(err)
			}

			parts = append(parts, text)

			continue
		}

		text, dup, err := readUnique(name, &seen)
		if err != nil {
			return "", ErrReadSource.With(slog.String("source", name)).Wrap(err)
		}

		if dup {
			log.DebugContext(ctx, "duplicate source skipped", slog.String("source", name))

			continue
		}

		parts = append(parts, text)
	}

	return strings.Join(parts, "\n"), nil
}

// readUnique reads the file at path unless it is the same file as one in
// seen, which is extended with it.
func readUnique(path string, seen *[]os.FileInfo) (text string, dup bool, err error) {
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		return "", false, err
	}

	f, err := os.Open(resolved)
	if err != nil {
		return "", false, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return "", false, err
	}

	for _, prev := range *seen {
		if os.SameFile(prev, info) {
			return "", true, nil
		}
	}

	*seen = append(*seen, info)

	text, err = readAll(f)

	return text, false, err
}

func readAll(r io.Reader) (string, error) {
	ra := readahead.NewReader(r)
	defer ra.Close()

	data, err := io.ReadAll(ra)

	return string(data), err
}

// parse reads the sources and translates them into a Document.
func (s Sources) parse(ctx context.Context, opts ...lang.Option) (*lang.Document, string, error) {
	src, err := s.read(ctx)
	if err != nil {
		return nil, "", err
	}

	doc, err := lang.ParseString(ctx, src, slices.Concat(parseOptionsFrom(ctx), opts)...)
	if err != nil {
		return nil, src, err
	}

	return doc, src, nil
}

// parseFailure writes the source snippet of a parse error to the error
// stream and returns err annotated with the command name.
func parseFailure(ctx context.Context, command, src string, err error) error {
	le := lang.WrapError(err)

	if snippet := le.Snippet(src); snippet != "" {
		_, _ = io.WriteString(streamsFrom(ctx).err, snippet)
	}

	return le.With(slog.String("command", command))
}
