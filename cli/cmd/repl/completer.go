package repl

import (
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/expr-lang/expr/builtin"
	"github.com/sahilm/fuzzy"

	"github.com/ardnew/konst/lang"
)

// isWordBoundary reports whether r delimits words for completion. This
// covers whitespace, member access and the punctuation of both konst
// source and expr-lang queries.
func isWordBoundary(r rune) bool {
	switch r {
	case '.', ' ', '\t', '"', '\'',
		'(', ')', '[', ']', '{', '}',
		'+', '-', '*', '/', '%',
		'<', '>', '=', '!', '@', '#',
		'&', '|', ',', '?', ':', ';':
		return true
	}

	return false
}

// wordBounds returns the word around the cursor and its byte offsets in
// input. The word is empty when the cursor sits between boundaries.
func wordBounds(input string, cursor int) (word string, start, end int) {
	cursor = min(max(cursor, 0), len(input))

	start = cursor
	for start > 0 {
		r, size := utf8.DecodeLastRuneInString(input[:start])
		if isWordBoundary(r) {
			break
		}

		start -= size
	}

	end = cursor
	for end < len(input) {
		r, size := utf8.DecodeRuneInString(input[end:])
		if isWordBoundary(r) {
			break
		}

		end += size
	}

	return input[start:end], start, end
}

// parentPath returns the member-access chain leading to the word starting
// at wordStart. For "x + path.ca" and the word "ca" it returns "path".
func parentPath(input string, wordStart int) string {
	prefix := input[:wordStart]
	if !strings.HasSuffix(prefix, ".") {
		return ""
	}

	prefix = strings.TrimRight(prefix, ".")

	pos := len(prefix)
	for pos > 0 {
		r, size := utf8.DecodeLastRuneInString(prefix[:pos])
		if r != '.' && isWordBoundary(r) {
			break
		}

		pos -= size
	}

	return prefix[pos:]
}

// isQuery reports whether input is a query line.
func isQuery(input string) bool {
	return strings.HasPrefix(strings.TrimSpace(input), queryPrefix)
}

// sourceCandidates returns the names valid in konst source: keywords,
// constants and entry names.
func sourceCandidates(s *Session) []string {
	names := []string{lang.TokenVar.String(), lang.TokenOrd.String()}
	names = append(names, s.Constants().Names()...)
	names = append(names, s.Document().Keys()...)

	return dedup(names)
}

// queryCandidates returns the names valid after parent in a query. The top
// level offers entries, query builtins and expr-lang functions.
func queryCandidates(s *Session, parent string) []string {
	if parent != "" {
		return lang.BuiltinMembers(parent)
	}

	names := s.Document().Keys()
	names = append(names, lang.BuiltinNames()...)
	names = append(names, lang.TokenOrd.String())
	names = append(names, exprBuiltinNames()...)

	return dedup(names)
}

func dedup(names []string) []string {
	seen := make(map[string]bool, len(names))

	return slices.DeleteFunc(names, func(n string) bool {
		if seen[n] {
			return true
		}

		seen[n] = true

		return false
	})
}

// computeMatches returns the fuzzy matches for the word at the cursor, best
// first, along with the word's offsets.
//
// An empty word yields no matches, except directly after a member access
// where all members are offered.
func (m model) computeMatches() (matches fuzzy.Matches, wordStart, wordEnd int) {
	input := m.input.Value()

	word, wordStart, wordEnd := wordBounds(input, m.input.Position())

	var (
		candidates []string
		parent     string
	)

	switch {
	case m.mode == modeCtrl:
		candidates = commandNames()
	case isQuery(input):
		parent = parentPath(input, wordStart)
		candidates = queryCandidates(m.session, parent)
	case strings.HasPrefix(input, commandPrefix):
		candidates = commandNames()
	default:
		candidates = sourceCandidates(m.session)
	}

	if len(candidates) == 0 {
		return nil, wordStart, wordEnd
	}

	if word == "" {
		if parent == "" {
			return nil, wordStart, wordEnd
		}

		matches = make(fuzzy.Matches, len(candidates))
		for i, c := range candidates {
			matches[i] = fuzzy.Match{Str: c, Index: i}
		}

		return matches, wordStart, wordEnd
	}

	return fuzzy.Find(word, candidates), wordStart, wordEnd
}

// renderCandidateBar renders the completion bar, ellipsized to width.
func renderCandidateBar(matches fuzzy.Matches, selected int, tabActive bool, width int) string {
	if len(matches) == 0 || width <= 0 {
		return ""
	}

	const sep = "  "

	ellipsis := hintStyle.Render("...")
	reserve := lipgloss.Width(sep) + lipgloss.Width(ellipsis)

	var b strings.Builder

	used := 0

	for i, match := range matches {
		rendered := renderCandidate(match, tabActive && i == selected)

		w := lipgloss.Width(rendered)
		if i > 0 {
			w += lipgloss.Width(sep)
		}

		last := i == len(matches)-1
		if i > 0 && ((!last && used+w+reserve > width) || (last && used+w > width)) {
			b.WriteString(sep + ellipsis)

			break
		}

		if i > 0 {
			b.WriteString(sep)
		}

		b.WriteString(rendered)

		used += w
	}

	return b.String()
}

// renderCandidate renders a candidate with its matched characters
// highlighted. Functions are suffixed with "()".
func renderCandidate(match fuzzy.Match, selected bool) string {
	base, highlight := suggestionStyle, matchStyle
	if selected {
		base, highlight = selectedStyle, selectedMatchStyle
	}

	var b strings.Builder

	// MatchedIndexes are byte offsets.
	for i, r := range match.Str {
		if slices.Contains(match.MatchedIndexes, i) {
			b.WriteString(highlight.Render(string(r)))
		} else {
			b.WriteString(base.Render(string(r)))
		}
	}

	if isFunction(match.Str) {
		b.WriteString(base.Render("()"))
	}

	return b.String()
}

// isFunction reports whether the top-level query name is callable.
func isFunction(name string) bool {
	if _, ok := builtin.Index[name]; ok || name == lang.TokenOrd.String() {
		return true
	}

	_, ok := signatureOf(name)

	return ok
}
