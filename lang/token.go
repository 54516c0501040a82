package lang

//go:generate go tool stringer --linecomment --type TokenKind --output token_string.go

// TokenKind classifies a [Token].
type TokenKind uint8

const (
	TokenEnd        TokenKind = iota // end of input
	TokenNumber                      // number
	TokenString                      // string
	TokenIdentifier                  // identifier
	TokenVar                         // var
	TokenOrd                         // ord
	TokenLBracket                    // [
	TokenRBracket                    // ]
	TokenSemicolon                   // ;
	TokenAt                          // @
	TokenLParen                      // (
	TokenRParen                      // )
	TokenPlus                        // +
	TokenMinus                       // -
	TokenMultiply                    // *
)

// keywords maps reserved words to their token kinds.
var keywords = map[string]TokenKind{
	"var": TokenVar,
	"ord": TokenOrd,
}

// punctuation maps single-character symbols to their token kinds.
var punctuation = map[rune]TokenKind{
	'@': TokenAt,
	'[': TokenLBracket,
	']': TokenRBracket,
	';': TokenSemicolon,
	'(': TokenLParen,
	')': TokenRParen,
	'+': TokenPlus,
	'-': TokenMinus,
	'*': TokenMultiply,
}

// Token is a lexical unit produced by the tokenizer.
//
// Number tokens carry an Integer or Float value, String tokens carry the raw
// text between the quotes, and Identifier tokens carry the identifier name
// as a String value.
type Token struct {
	Kind  TokenKind
	Value Value
	Pos   Position
}

// Text returns the identifier name or raw string content of the token.
func (t Token) Text() string {
	s, _ := t.Value.Str()

	return s
}

// describe returns a short description of the token for error messages.
func (t Token) describe() string {
	switch t.Kind {
	case TokenNumber, TokenString:
		return t.Kind.String() + " " + t.Value.String()
	case TokenIdentifier:
		return t.Kind.String() + " " + t.Text()
	default:
		return t.Kind.String()
	}
}
