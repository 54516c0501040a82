package lang

import (
	"strconv"
	"strings"
	"testing"
)

func benchSource(n int) string {
	var sb strings.Builder

	sb.WriteString("var base 1000\n")

	for i := range n {
		name := "key" + strconv.Itoa(i)
		sb.WriteString(name + "; @(+ base " + strconv.Itoa(i) + ")\n")
		sb.WriteString(name + "_list; [\"a\"; 1.5; [" + strconv.Itoa(i) + "]]\n")
	}

	return sb.String()
}

func BenchmarkLexer(b *testing.B) {
	src := benchSource(100)

	b.SetBytes(int64(len(src)))

	for b.Loop() {
		if _, err := Tokenize(src); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkParseString(b *testing.B) {
	src := benchSource(100)

	b.SetBytes(int64(len(src)))

	for b.Loop() {
		if _, err := ParseString(b.Context(), src); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkParseString_Cached(b *testing.B) {
	ClearCache()
	b.Cleanup(ClearCache)

	src := benchSource(100)

	for b.Loop() {
		if _, err := ParseString(b.Context(), src, WithCache(true)); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkMarshalJSON(b *testing.B) {
	doc := mustParse(b, benchSource(100))

	for b.Loop() {
		if _, err := doc.MarshalJSON(); err != nil {
			b.Fatal(err)
		}
	}
}
