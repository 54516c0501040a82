package lang

import (
	"log/slog"
	"math"
	"strconv"
)

// Lexer splits source text into a sequence of [Token] values.
//
// Tokens are produced on demand by [Lexer.Next]. Once the input is exhausted,
// every further call returns a [TokenEnd] token.
type Lexer struct {
	cur *cursor
}

// NewLexer returns a Lexer reading src.
func NewLexer(src string) *Lexer {
	return &Lexer{cur: newCursor([]byte(src))}
}

// Next returns the next token in the input.
func (l *Lexer) Next() (Token, error) {
	l.skipSpace()

	pos := l.cur.position()
	if l.cur.eof() {
		return Token{Kind: TokenEnd, Pos: pos}, nil
	}

	r := l.cur.peek()

	switch {
	case r == '"':
		return l.scanString()

	case isDigit(r),
		r == '.' && isDigit(l.cur.peekAt(1)),
		r == '-' && isDigit(l.cur.peekAt(1)):
		return l.scanNumber()

	case isIdentStart(r):
		return l.scanIdentifier(), nil
	}

	if kind, ok := punctuation[r]; ok {
		l.cur.advance()

		return Token{Kind: kind, Pos: pos}, nil
	}

	return Token{}, ErrUnknownCharacter.At(pos).With(slog.String("char", string(r)))
}

// Tokenize returns every token of src up to and including the terminating
// [TokenEnd] token.
func Tokenize(src string) ([]Token, error) {
	l := NewLexer(src)

	var toks []Token

	for {
		tok, err := l.Next()
		if err != nil {
			return toks, err
		}

		toks = append(toks, tok)

		if tok.Kind == TokenEnd {
			return toks, nil
		}
	}
}

func (l *Lexer) skipSpace() {
	for !l.cur.eof() {
		switch l.cur.peek() {
		case ' ', '\t', '\r', '\n':
			l.cur.advance()
		default:
			return
		}
	}
}

// scanString scans a double-quoted string.
// A backslash causes the following character to be taken literally while
// scanning; the backslash itself is retained in the token text.
func (l *Lexer) scanString() (Token, error) {
	open := l.cur.position()

	l.cur.advance() // opening quote

	start := l.cur.pos

	for !l.cur.eof() {
		switch l.cur.peek() {
		case '"':
			text := l.cur.text(start)

			l.cur.advance() // closing quote

			return Token{Kind: TokenString, Value: StringValue(text), Pos: open}, nil

		case '\\':
			l.cur.advance()
			l.cur.advance()

		default:
			l.cur.advance()
		}
	}

	return Token{}, ErrUnterminatedString.At(open)
}

// scanNumber scans the longest match of
//
//	-?(digits | digits.digits | .digits)([eE][+-]?digits)?
func (l *Lexer) scanNumber() (Token, error) {
	pos := l.cur.position()
	float := false

	if l.cur.peek() == '-' {
		l.cur.advance()
	}

	l.scanDigits()

	if l.cur.peek() == '.' && isDigit(l.cur.peekAt(1)) {
		float = true

		l.cur.advance()
		l.scanDigits()
	}

	if r := l.cur.peek(); r == 'e' || r == 'E' {
		n := 1
		if s := l.cur.peekAt(1); s == '+' || s == '-' {
			n = 2
		}

		if isDigit(l.cur.peekAt(n)) {
			float = true

			for range n {
				l.cur.advance()
			}

			l.scanDigits()
		}
	}

	text := l.cur.text(pos.Offset)

	if !float {
		i, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return Token{}, ErrInvalidNumber.At(pos).
				With(slog.String("text", text)).
				Wrap(err)
		}

		return Token{Kind: TokenNumber, Value: IntegerValue(i), Pos: pos}, nil
	}

	f, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		e := ErrInvalidNumber.At(pos).With(slog.String("text", text))
		if err != nil {
			e = e.Wrap(err)
		}

		return Token{}, e
	}

	return Token{Kind: TokenNumber, Value: FloatValue(f), Pos: pos}, nil
}

func (l *Lexer) scanDigits() {
	for isDigit(l.cur.peek()) {
		l.cur.advance()
	}
}

func (l *Lexer) scanIdentifier() Token {
	pos := l.cur.position()

	for isIdentPart(l.cur.peek()) {
		l.cur.advance()
	}

	text := l.cur.text(pos.Offset)
	if kind, ok := keywords[text]; ok {
		return Token{Kind: kind, Value: StringValue(text), Pos: pos}
	}

	return Token{Kind: TokenIdentifier, Value: StringValue(text), Pos: pos}
}

func isDigit(r rune) bool { return '0' <= r && r <= '9' }

func isIdentStart(r rune) bool {
	return r == '_' || ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z')
}

func isIdentPart(r rune) bool { return isIdentStart(r) || isDigit(r) }
