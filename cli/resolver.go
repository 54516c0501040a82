package cli

import (
	"context"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/konst/lang"
	"github.com/ardnew/konst/log"
)

// resolve returns a [kong.ConfigurationLoader] that parses config files
// written in the konst language.
//
// It can be used with [kong.Configuration] like this:
//
//	kong.Configuration(resolve(ctx), "/path/to/config")
//
// Each entry of the translated Document supplies the value of the flag of
// the same name:
//   - Flag names with hyphens (e.g., "log-level") should use underscores
//     in the config file (e.g., "log_level")
//   - Boolean flags take 1 or 0 (or the strings "true" and "false")
//   - Arrays supply repeated or comma-separated flags
//   - Constants may be used to compute values
//
// Example konst config file:
//
//	var depth 64
//
//	log_level; "debug"
//	log_pretty; 0
//	max_depth; @(* depth 2)
//
// This configuration will be applied to Kong flags:
//
//	--log-level=debug
//	--no-log-pretty
//	--max-depth=128
//
// Command-line flags override config file values. A config file that fails
// to parse is logged and otherwise ignored.
func resolve(ctx context.Context) kong.ConfigurationLoader {
	return func(r io.Reader) (kong.Resolver, error) {
		// The same file is loaded for every kong.Parse; cache the result.
		doc, err := lang.ParseReader(ctx, r, lang.WithCache(true))
		if err != nil {
			log.WarnContext(ctx, "configuration file ignored", slog.Any("error", err))

			return config{}, nil
		}

		return documentConfig(doc), nil
	}
}

// config implements [kong.Resolver] for konst language configs.
type config map[string]any

// documentConfig converts the entries of doc to flag values.
func documentConfig(doc *lang.Document) config {
	result := make(config, doc.Len())

	for key, v := range doc.All() {
		result[key] = flagValue(v)
	}

	return result
}

// flagValue converts v into the form kong decodes for flags: numbers as
// strings, arrays as slices.
func flagValue(v lang.Value) any {
	switch v.Kind() {
	case lang.KindInteger:
		i, _ := v.Int()

		return strconv.FormatInt(i, 10)

	case lang.KindFloat:
		f, _ := v.Float()

		return strconv.FormatFloat(f, 'f', -1, 64)

	case lang.KindArray:
		elems, _ := v.Array()

		out := make([]any, len(elems))
		for i, elem := range elems {
			out[i] = flagValue(elem)
		}

		return out

	default:
		s, _ := v.Str()

		return s
	}
}

// Validate implements [kong.Resolver].
func (r config) Validate(*kong.Application) error {
	// No validation needed - the config was already parsed successfully
	return nil
}

// Resolve implements [kong.Resolver].
func (r config) Resolve(
	_ *kong.Context,
	_ *kong.Path,
	flag *kong.Flag,
) (any, error) {
	// Kong flags use hyphens (e.g., "log-level") but konst identifiers
	// cannot. Try both forms.
	name := flag.Name

	if value, ok := r[name]; ok {
		return value, nil
	}

	if value, ok := r[strings.ReplaceAll(name, "-", "_")]; ok {
		return value, nil
	}

	// Not found - return nil to let Kong use defaults
	return nil, nil
}
