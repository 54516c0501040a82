package lang

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"maps"
	"strings"
	"unicode/utf8"

	"github.com/expr-lang/expr"
)

// Query evaluates an expr-lang expression with the Document entries as its
// environment and returns the result.
//
// Entries are exposed by name with their native Go values (see
// [Value.ToNative]) and shadow the builtins listed by [BuiltinNames]. The
// function ord(s) returns the code point of the first character of s.
func (d *Document) Query(ctx context.Context, expression string) (any, error) {
	if ctx.Err() != nil {
		return nil, context.Cause(ctx)
	}

	env := queryBuiltins()
	maps.Copy(env, d.ToNative())

	program, err := expr.Compile(
		expression,
		expr.Env(env),
		expr.Function("ord", queryOrd, new(func(string) int64)),
	)
	if err != nil {
		return nil, ErrQueryCompile.Wrap(err).
			With(slog.String("expression", expression))
	}

	result, err := expr.Run(program, env)
	if err != nil {
		return nil, ErrQueryEvaluate.Wrap(err).
			With(slog.String("expression", expression))
	}

	return result, nil
}

func queryOrd(params ...any) (any, error) {
	s, _ := params[0].(string)
	if s == "" {
		return nil, ErrInvalidArgument.With(
			slog.String("op", TokenOrd.String()),
			slog.String("operand", "empty string"),
		)
	}

	r, _ := utf8.DecodeRuneInString(s)

	return int64(r), nil
}

// FormatResult renders a query result for display. Strings are returned
// verbatim and everything else as compact JSON.
func FormatResult(result any) string {
	if s, ok := result.(string); ok {
		return s
	}

	var buf bytes.Buffer

	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	if err := enc.Encode(result); err != nil {
		return fmt.Sprint(result)
	}

	return strings.TrimSuffix(buf.String(), "\n")
}
