package lang

import (
	"context"
	"log/slog"

	"github.com/ardnew/konst/log"
)

// DefaultMaxDepth is the default limit on nesting of arrays and expressions.
const DefaultMaxDepth = 100

// optionsKey holds the options that affect the result of a parse.
// It is hashed to key the parse cache.
type optionsKey struct {
	MaxDepth int
}

type config struct {
	opts   optionsKey
	cache  bool
	logger log.Logger // outside optionsKey, doesn't affect cache
}

// Option configures parsing.
type Option func(*config)

// WithMaxDepth sets the maximum nesting depth of arrays and prefix
// expressions. A depth of zero or less disables the limit.
func WithMaxDepth(depth int) Option {
	return func(c *config) {
		c.opts.MaxDepth = depth
	}
}

// WithLogger sets the structured logger for trace-level debugging.
// If not provided, the logger is zero-valued and all logging is a no-op.
func WithLogger(logger log.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithCache enables memoization of parse results in a process-wide cache.
// It applies to [ParseString] and [ParseReader].
func WithCache(enable bool) Option {
	return func(c *config) {
		c.cache = enable
	}
}

func makeConfig(opts ...Option) config {
	cfg := config{opts: optionsKey{MaxDepth: DefaultMaxDepth}}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return cfg
}

// Parser is a recursive-descent parser producing a [Document] from konst
// source text. It reads one token of lookahead.
type Parser struct {
	source string
	cfg    config

	lex    *Lexer
	tok    Token
	consts *Constants
	doc    *Document
	depth  int
}

// NewParser returns a Parser for source.
func NewParser(source string, opts ...Option) *Parser {
	return &Parser{
		source: source,
		cfg:    makeConfig(opts...),
	}
}

// Parse parses the entire source and returns the resulting Document.
// Each call starts over with an empty constant table.
//
// No partial Document is returned on error.
func (p *Parser) Parse(ctx context.Context) (*Document, error) {
	p.lex = NewLexer(p.source)
	p.consts = NewConstants()
	p.doc = NewDocument()
	p.depth = 0

	p.cfg.logger.TraceContext(ctx, "parse start",
		slog.Int("source_bytes", len(p.source)),
		slog.Int("max_depth", p.cfg.opts.MaxDepth),
	)

	if err := p.next(); err != nil {
		return nil, err
	}

	for p.tok.Kind != TokenEnd {
		if ctx.Err() != nil {
			return nil, context.Cause(ctx)
		}

		var err error

		switch p.tok.Kind {
		case TokenVar:
			err = p.parseConstant(ctx)
		case TokenIdentifier:
			err = p.parseEntry(ctx)
		default:
			err = p.unexpected("declaration")
		}

		if err != nil {
			return nil, err
		}
	}

	p.cfg.logger.TraceContext(ctx, "parse complete",
		slog.Int("entries", p.doc.Len()),
		slog.Int("constants", p.consts.Len()),
	)

	return p.doc, nil
}

// Constants returns the constant table built by the most recent call to
// [Parser.Parse], or nil if Parse has not been called.
func (p *Parser) Constants() *Constants { return p.consts }

// parseConstant parses: 'var' IDENTIFIER value [';'].
func (p *Parser) parseConstant(ctx context.Context) error {
	if err := p.next(); err != nil {
		return err
	}

	name, err := p.expect(TokenIdentifier)
	if err != nil {
		return err
	}

	v, err := p.parseValue()
	if err != nil {
		return err
	}

	p.consts.Define(name.Text(), v)

	p.cfg.logger.TraceContext(ctx, "define constant",
		slog.String("name", name.Text()),
		slog.String("kind", v.Kind().String()),
	)

	if p.tok.Kind == TokenSemicolon {
		return p.next()
	}

	return nil
}

// parseEntry parses: IDENTIFIER ';' value.
func (p *Parser) parseEntry(ctx context.Context) error {
	name := p.tok

	if err := p.next(); err != nil {
		return err
	}

	if _, err := p.expect(TokenSemicolon); err != nil {
		return err
	}

	v, err := p.parseValue()
	if err != nil {
		return err
	}

	if _, dup := p.doc.Get(name.Text()); dup {
		p.cfg.logger.TraceContext(ctx, "replace entry",
			slog.String("name", name.Text()),
			slog.String("pos", name.Pos.String()),
		)
	}

	p.doc.Set(name.Text(), v)

	return nil
}

// parseValue parses: NUMBER | STRING | IDENTIFIER | array | const_expr.
func (p *Parser) parseValue() (Value, error) {
	switch p.tok.Kind {
	case TokenNumber, TokenString:
		v := p.tok.Value

		return v, p.next()

	case TokenIdentifier:
		v, ok := p.consts.Lookup(p.tok.Text())
		if !ok {
			return Value{}, ErrUnknownConstant.At(p.tok.Pos).
				With(slog.String("name", p.tok.Text()))
		}

		return v, p.next()

	case TokenLBracket:
		return p.parseArray()

	case TokenAt:
		return p.parseConstExpr()

	default:
		return Value{}, p.unexpected("value")
	}
}

// parseArray parses: '[' (value (';' value)*)? ']'.
func (p *Parser) parseArray() (Value, error) {
	if err := p.enter(); err != nil {
		return Value{}, err
	}
	defer p.leave()

	if err := p.next(); err != nil {
		return Value{}, err
	}

	if p.tok.Kind == TokenRBracket {
		return ArrayValue(), p.next()
	}

	var elems []Value

	for {
		v, err := p.parseValue()
		if err != nil {
			return Value{}, err
		}

		elems = append(elems, v)

		switch p.tok.Kind {
		case TokenSemicolon:
			if err := p.next(); err != nil {
				return Value{}, err
			}

		case TokenRBracket:
			return ArrayValue(elems...), p.next()

		default:
			return Value{}, p.unexpected("; or ]")
		}
	}
}

// parseConstExpr parses: '@' '(' prefix_expr ')' and evaluates the
// expression.
func (p *Parser) parseConstExpr() (Value, error) {
	if err := p.next(); err != nil {
		return Value{}, err
	}

	if _, err := p.expect(TokenLParen); err != nil {
		return Value{}, err
	}

	e, err := p.parsePrefix()
	if err != nil {
		return Value{}, err
	}

	if _, err := p.expect(TokenRParen); err != nil {
		return Value{}, err
	}

	return e.Eval(p.consts)
}

// parsePrefix parses a prefix_expr.
func (p *Parser) parsePrefix() (*Expr, error) {
	tok := p.tok

	switch tok.Kind {
	case TokenNumber, TokenString:
		return &Expr{Op: tok.Kind, Value: tok.Value, Pos: tok.Pos}, p.next()

	case TokenIdentifier:
		return &Expr{Op: tok.Kind, Name: tok.Text(), Pos: tok.Pos}, p.next()

	case TokenPlus, TokenMinus, TokenMultiply:
		if err := p.enter(); err != nil {
			return nil, err
		}
		defer p.leave()

		if err := p.next(); err != nil {
			return nil, err
		}

		lhs, err := p.parsePrefix()
		if err != nil {
			return nil, err
		}

		rhs, err := p.parsePrefix()
		if err != nil {
			return nil, err
		}

		return &Expr{Op: tok.Kind, Args: []*Expr{lhs, rhs}, Pos: tok.Pos}, nil

	case TokenOrd:
		if err := p.enter(); err != nil {
			return nil, err
		}
		defer p.leave()

		if err := p.next(); err != nil {
			return nil, err
		}

		// The operand may be written without parentheses: ord "A".
		paren := p.tok.Kind == TokenLParen
		if paren {
			if err := p.next(); err != nil {
				return nil, err
			}
		}

		arg, err := p.parsePrefix()
		if err != nil {
			return nil, err
		}

		if paren {
			if _, err := p.expect(TokenRParen); err != nil {
				return nil, err
			}
		}

		return &Expr{Op: tok.Kind, Args: []*Expr{arg}, Pos: tok.Pos}, nil

	default:
		return nil, p.unexpected("expression")
	}
}

// next advances the lookahead token.
func (p *Parser) next() error {
	tok, err := p.lex.Next()
	if err != nil {
		return err
	}

	p.tok = tok

	return nil
}

// expect consumes and returns the lookahead token if it has the given kind.
func (p *Parser) expect(kind TokenKind) (Token, error) {
	tok := p.tok
	if tok.Kind != kind {
		return Token{}, p.unexpected(kind.String())
	}

	return tok, p.next()
}

func (p *Parser) unexpected(expected string) error {
	return ErrUnexpectedToken.At(p.tok.Pos).With(
		slog.String("expected", expected),
		slog.String("actual", p.tok.describe()),
	)
}

func (p *Parser) enter() error {
	p.depth++
	if limit := p.cfg.opts.MaxDepth; limit > 0 && p.depth > limit {
		return ErrMaxDepthExceeded.At(p.tok.Pos).With(slog.Int("max_depth", limit))
	}

	return nil
}

func (p *Parser) leave() { p.depth-- }
