package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/konst/lang"
	"github.com/ardnew/konst/log"
	"github.com/ardnew/konst/pkg"
	"github.com/ardnew/konst/profile"
)

// Init writes the current global flag values to the configuration file.
type Init struct {
	Force bool `help:"Overwrite an existing configuration file." short:"f"`
}

// Run executes the init command.
func (i *Init) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	ktx := kongContextFrom(ctx)
	if ktx == nil {
		panic("internal error: kong context undefined")
	}

	path, ok := ktx.Model.Vars()[ConfigIdentifier]
	if !ok {
		panic("internal error: configuration path undefined")
	}

	fileErr := ErrWriteConfig.With(slog.String("file", path))

	if _, err := os.Stat(path); err == nil && !i.Force {
		return fileErr.Wrap(ErrFileExists)
	}

	if err := os.MkdirAll(filepath.Dir(path), pkg.DirMode); err != nil {
		return fileErr.Wrap(err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fileErr.Wrap(err)
	}
	defer file.Close()

	doc := flagDocument(ktx)

	if err := doc.Format(ctx, file, 1); err != nil {
		return fileErr.Wrap(err)
	}

	log.DebugContext(ctx, "initialized configuration file",
		slog.String("path", path),
		slog.Int("entries", doc.Len()))

	return nil
}

// flagDocument returns the values of the application flags as a Document.
// Keys use underscores in place of hyphens.
func flagDocument(ktx *kong.Context) *lang.Document {
	ignore := []string{"help", "version", profile.Tag}

	doc := lang.NewDocument()

	for _, flag := range ktx.Model.Flags {
		if flag.Hidden || slices.ContainsFunc(ignore, func(s string) bool {
			return strings.HasPrefix(flag.Name, s)
		}) {
			continue
		}

		if v, ok := flagValue(ktx.FlagValue(flag)); ok {
			doc.Set(strings.ReplaceAll(flag.Name, "-", "_"), v)
		}
	}

	return doc
}

// flagValue converts a flag value into a konst value. Booleans become 1 or
// 0. Empty strings and lists are omitted.
func flagValue(val any) (lang.Value, bool) {
	switch v := val.(type) {
	case nil:
		return lang.Value{}, false

	case bool:
		if v {
			return lang.IntegerValue(1), true
		}

		return lang.IntegerValue(0), true

	case string:
		return lang.StringValue(v), v != ""

	case int:
		return lang.IntegerValue(int64(v)), true

	case int64:
		return lang.IntegerValue(v), true

	case uint:
		return lang.IntegerValue(int64(v)), true

	case float64:
		return lang.FloatValue(v), true

	case []string:
		elems := make([]lang.Value, len(v))
		for i, s := range v {
			elems[i] = lang.StringValue(s)
		}

		return lang.ArrayValue(elems...), len(v) > 0

	case fmt.Stringer:
		return lang.StringValue(v.String()), v.String() != ""

	default:
		return lang.StringValue(fmt.Sprint(v)), true
	}
}
