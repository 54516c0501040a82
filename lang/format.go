package lang

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-yaml"
)

// Format writes the Document in native konst syntax to the writer.
// Constants have already been resolved, so the output contains only entries.
func (d *Document) Format(_ context.Context, w io.Writer, indent int) error {
	sep := "\n"
	if indent <= 0 {
		sep = " "
	}

	i := 0
	for key, v := range d.All() {
		if i > 0 {
			if _, err := fmt.Fprint(w, sep); err != nil {
				return err
			}
		}

		i++

		if _, err := fmt.Fprint(w, key, "; ", v.String()); err != nil {
			return err
		}
	}

	// Final newline
	_, err := fmt.Fprintln(w)

	return err
}

// FormatJSON writes the Document as a JSON object to the writer, indenting
// nested elements by indent spaces if indent is positive.
func (d *Document) FormatJSON(_ context.Context, w io.Writer, indent int) error {
	jsonData, err := d.MarshalJSON()
	if err != nil {
		return err
	}

	if indent > 0 {
		var buf bytes.Buffer
		if err := json.Indent(&buf, jsonData, "", strings.Repeat(" ", indent)); err != nil {
			return err
		}

		jsonData = buf.Bytes()
	}

	_, err = fmt.Fprintln(w, string(jsonData))

	return err
}

// FormatYAML writes the Document as a YAML mapping to the writer.
// A non-positive indent selects flow style.
func (d *Document) FormatYAML(ctx context.Context, w io.Writer, indent int) error {
	var opts []yaml.EncodeOption
	if indent > 0 {
		opts = append(opts, yaml.Indent(indent))
	} else {
		opts = append(opts, yaml.Flow(true))
	}

	yamlData, err := yaml.MarshalContext(ctx, d.mapSlice(), opts...)
	if err != nil {
		return err
	}

	_, err = fmt.Fprint(w, string(yamlData))

	return err
}

// mapSlice returns the Document as an ordered YAML mapping.
func (d *Document) mapSlice() yaml.MapSlice {
	ms := make(yaml.MapSlice, 0, d.Len())
	for key, v := range d.All() {
		ms = append(ms, yaml.MapItem{Key: key, Value: v.ToNative()})
	}

	return ms
}

// FormatEnv writes the Document as shell variable assignments, one per line.
//
// Names are upper-cased and prefixed with prefix. Arrays are flattened and
// joined with the OS path-list separator.
func (d *Document) FormatEnv(_ context.Context, w io.Writer, prefix string) error {
	for key, v := range d.All() {
		name := EnvName(prefix, key)
		if _, err := fmt.Fprintf(w, "%s=%s\n", name, shellQuote(envValue(v))); err != nil {
			return err
		}
	}

	return nil
}

// EnvName returns the environment variable name for the entry key with the
// given prefix. Characters that are not valid in a shell identifier are
// replaced with '_'.
func EnvName(prefix, key string) string {
	name := strings.Map(func(r rune) rune {
		switch {
		case 'a' <= r && r <= 'z':
			return r - 'a' + 'A'
		case 'A' <= r && r <= 'Z', '0' <= r && r <= '9', r == '_':
			return r
		default:
			return '_'
		}
	}, prefix+key)

	if name != "" && isDigit(rune(name[0])) {
		name = "_" + name
	}

	return name
}

// envValue returns the string form of v for use as an environment value.
func envValue(v Value) string {
	switch v.kind {
	case KindString:
		return v.s
	case KindArray:
		return mungJoin(flatten(v)...)
	default:
		return v.String()
	}
}

// flatten returns the string forms of the scalar elements of an array in
// order, descending into nested arrays.
func flatten(v Value) []string {
	var out []string

	for _, elem := range v.a {
		if elem.kind == KindArray {
			out = append(out, flatten(elem)...)

			continue
		}

		out = append(out, envValue(elem))
	}

	return out
}

// shellQuote returns s enclosed in single quotes, suitable for POSIX shells.
func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
