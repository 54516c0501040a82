package repl

import (
	"maps"
	"reflect"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/expr-lang/expr/builtin"

	"github.com/ardnew/konst/lang"
)

// signature is the parameter list of a query function.
type signature struct {
	name   string
	params []string
}

// exprSignatures holds the parameters of the common expr-lang builtins.
// See https://expr-lang.org/docs/language-definition.
var exprSignatures = map[string][]string{
	"len":       {"v"},
	"all":       {"array", "predicate"},
	"any":       {"array", "predicate"},
	"one":       {"array", "predicate"},
	"none":      {"array", "predicate"},
	"map":       {"array", "mapper"},
	"filter":    {"array", "predicate"},
	"find":      {"array", "predicate"},
	"findIndex": {"array", "predicate"},
	"groupBy":   {"array", "mapper"},
	"sortBy":    {"array", "mapper"},
	"count":     {"array", "predicate"},
	"sum":       {"array"},
	"mean":      {"array"},
	"min":       {"array"},
	"max":       {"array"},
	"join":      {"array", "separator"},
	"split":     {"string", "separator"},
	"replace":   {"string", "old", "new"},
	"trim":      {"string"},
	"upper":     {"string"},
	"lower":     {"string"},
	"int":       {"v"},
	"float":     {"v"},
	"string":    {"v"},
	"type":      {"v"},
}

// exprBuiltinNames returns the names of the expr-lang builtin functions in
// sorted order.
func exprBuiltinNames() []string {
	return slices.Sorted(maps.Keys(builtin.Index))
}

var (
	signatureStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	signatureNameStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("6")).
				Bold(true)
	currentParamStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("11")).
				Bold(true)
)

// functionCall is the innermost call enclosing the cursor.
type functionCall struct {
	name     string // qualified name, e.g. "path.cat"
	argIndex int
	inCall   bool
}

// detectFunctionCall finds the call whose argument list contains the cursor
// and the index of the argument under it.
func detectFunctionCall(input string, cursor int) functionCall {
	cursor = min(max(cursor, 0), len(input))

	open, depth := -1, 0

scan:
	for i := cursor; i > 0; {
		r, size := utf8.DecodeLastRuneInString(input[:i])
		i -= size

		switch r {
		case ')':
			depth++
		case '(':
			if depth == 0 {
				open = i

				break scan
			}

			depth--
		}
	}

	if open < 0 {
		return functionCall{}
	}

	start := open
	for start > 0 {
		r, size := utf8.DecodeLastRuneInString(input[:start])
		if r != '.' && r != '_' && !isAlnum(r) {
			break
		}

		start -= size
	}

	name := input[start:open]
	if name == "" {
		return functionCall{}
	}

	arg := 0
	depth = 0

	for _, r := range input[open+1 : cursor] {
		switch r {
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
		case ',':
			if depth == 0 {
				arg++
			}
		}
	}

	return functionCall{name: name, argIndex: arg, inCall: true}
}

func isAlnum(r rune) bool {
	return 'a' <= r && r <= 'z' || 'A' <= r && r <= 'Z' || '0' <= r && r <= '9'
}

// signatureOf returns the signature of the query function name. Query
// builtins are inspected by reflection.
func signatureOf(name string) (signature, bool) {
	if name == lang.TokenOrd.String() {
		return signature{name: name, params: []string{"string"}}, true
	}

	if params, ok := exprSignatures[name]; ok {
		return signature{name: name, params: params}, true
	}

	fn, ok := lang.Builtin(name)
	if !ok {
		return signature{}, false
	}

	t := reflect.TypeOf(fn)
	if t == nil || t.Kind() != reflect.Func {
		return signature{}, false
	}

	params := make([]string, t.NumIn())
	for i := range params {
		if t.IsVariadic() && i == len(params)-1 {
			params[i] = "..." + typeName(t.In(i).Elem())
		} else {
			params[i] = typeName(t.In(i))
		}
	}

	return signature{name: name, params: params}, true
}

// typeName returns a short parameter name for t.
func typeName(t reflect.Type) string {
	switch t.Kind() {
	case reflect.String:
		return "string"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return "int"
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "uint"
	case reflect.Float32, reflect.Float64:
		return "float"
	case reflect.Bool:
		return "bool"
	case reflect.Slice:
		return "slice"
	case reflect.Map:
		return "map"
	case reflect.Func:
		return "func"
	case reflect.Pointer:
		return typeName(t.Elem())
	}

	if t.Name() != "" {
		return t.Name()
	}

	return "arg"
}

// String returns the plain signature, e.g. "path.cat(...string)".
func (s signature) String() string {
	return s.name + "(" + strings.Join(s.params, ", ") + ")"
}

// render returns the signature with the parameter at index arg highlighted.
// A variadic parameter is highlighted for every index from its own.
func (s signature) render(arg int) string {
	var b strings.Builder

	b.WriteString(signatureNameStyle.Render(s.name))
	b.WriteString(signatureStyle.Render("("))

	for i, p := range s.params {
		if i > 0 {
			b.WriteString(signatureStyle.Render(", "))
		}

		variadic := strings.HasPrefix(p, "...")
		if arg == i || (variadic && arg > i) {
			b.WriteString(currentParamStyle.Render(p))
		} else {
			b.WriteString(signatureStyle.Render(p))
		}
	}

	b.WriteString(signatureStyle.Render(")"))

	return b.String()
}
