// Package lang implements the konst configuration language: a tokenizer, a
// recursive-descent parser, and a constant-folding evaluator that translate
// konst source text into an ordered [Document] of resolved values.
//
// # Grammar
//
// Informal EBNF:
//
//	document      → (constant_decl | entry)* EOF
//	constant_decl → 'var' IDENTIFIER value [';']
//	entry         → IDENTIFIER ';' value
//	value         → NUMBER | STRING | IDENTIFIER | array | const_expr
//	array         → '[' (value (';' value)*)? ']'
//	const_expr    → '@' '(' prefix_expr ')'
//	prefix_expr   → ('+' | '-' | '*') prefix_expr prefix_expr
//	              | 'ord' '(' prefix_expr ')'
//	              | 'ord' prefix_expr
//	              | IDENTIFIER | NUMBER | STRING
//
// An IDENTIFIER in value position refers to a constant declared earlier with
// var. Constant expressions are evaluated as soon as they are parsed, so
// every value in a Document is fully resolved.
//
// # Example
//
//	var base 8000
//	var name "api"
//
//	service; name
//	port; @(+ base 80)
//	ratio; @(* 0.5 3)
//	initial; @(ord(name))
//	hosts; ["a.local"; "b.local"]
//
// translates to the JSON object
//
//	{"service":"api","port":8080,"ratio":1.5,"initial":97,"hosts":["a.local","b.local"]}
//
// # Values
//
// Integers are 64-bit signed and floats are 64-bit IEEE 754. Arithmetic on two
// integers yields an integer and fails with [ErrIntegerOverflow] if the result
// does not fit; any float operand promotes the operation to float. Strings are
// kept exactly as written between the quotes: a backslash prevents the next
// character from ending the string, but no escape sequences are decoded.
//
// # Errors
//
// Every error is an [*Error] derived from one of the sentinel values such as
// [ErrUnexpectedToken], carrying the position at which it was detected. Use
// [errors.Is] to test the kind and [Error.Snippet] to render the offending
// source line.
package lang
