package lang

import (
	"encoding/json"
	"errors"
	"testing"
	"unicode/utf8"
)

// FuzzLexer tests the lexer with random inputs to find edge cases.
func FuzzLexer(f *testing.F) {
	// Seed corpus with known valid inputs
	f.Add("foo")
	f.Add("123")
	f.Add("-12.5e-3")
	f.Add(".5")
	f.Add(`"string"`)
	f.Add(`"escaped\"quote"`)
	f.Add("@(+ 1 2)")
	f.Add("var x [1; 2]")
	f.Add(`"unterminated`)
	f.Add("#")

	f.Fuzz(func(t *testing.T, input string) {
		toks, err := Tokenize(input)
		if err != nil {
			var le *Error
			if !errors.As(err, &le) {
				t.Fatalf("error %T is not *Error: %v", err, err)
			}

			if _, ok := le.Position(); !ok {
				t.Fatalf("error without position: %v", err)
			}

			return
		}

		if len(toks) == 0 || toks[len(toks)-1].Kind != TokenEnd {
			t.Fatalf("token stream not terminated: %v", toks)
		}

		// Positions must be strictly increasing.
		for i := 1; i < len(toks); i++ {
			if toks[i].Pos.Offset <= toks[i-1].Pos.Offset && toks[i].Kind != TokenEnd {
				t.Errorf("token %d offset %d not after %d",
					i, toks[i].Pos.Offset, toks[i-1].Pos.Offset)
			}
		}
	})
}

// FuzzParse tests that parsing never panics and that every successful parse
// produces valid JSON.
func FuzzParse(f *testing.F) {
	f.Add("a; 1")
	f.Add(`var x 5; v; @(+ x 2)`)
	f.Add(`s; @(ord "A")`)
	f.Add(`l; [1; [2.5; "x"]; []]`)
	f.Add(`a; @(* 9223372036854775807 2)`)
	f.Add(formatSource)

	f.Fuzz(func(t *testing.T, input string) {
		doc, err := ParseString(t.Context(), input)
		if err != nil {
			if doc != nil {
				t.Fatalf("partial document returned with error %v", err)
			}

			return
		}

		data, err := doc.MarshalJSON()
		if err != nil {
			t.Fatalf("MarshalJSON error: %v", err)
		}

		// Raw strings from the source may hold invalid UTF-8, which the
		// encoder replaces; the output is still valid JSON.
		if !json.Valid(data) {
			t.Fatalf("invalid JSON for input %q: %s", input, data)
		}

		if utf8.ValidString(input) {
			var native map[string]any
			if err := json.Unmarshal(data, &native); err != nil {
				t.Fatalf("json.Unmarshal error: %v", err)
			}

			if len(native) != doc.Len() {
				t.Errorf("JSON has %d keys, document has %d", len(native), doc.Len())
			}
		}
	})
}
