package lang

import (
	"log/slog"
	"math"
	"strings"
	"unicode/utf8"
)

// Expr is a node of a parsed prefix expression.
//
// The node kind is given by Op:
//
//   - [TokenNumber] or [TokenString]: a literal held in Value
//   - [TokenIdentifier]: a reference to the constant named Name
//   - [TokenPlus], [TokenMinus], [TokenMultiply]: a binary operation on Args[0]
//     and Args[1]
//   - [TokenOrd]: the code point of the first character of Args[0]
type Expr struct {
	Op    TokenKind
	Value Value
	Name  string
	Args  []*Expr
	Pos   Position
}

// Eval evaluates e, resolving identifiers in consts.
func (e *Expr) Eval(consts *Constants) (Value, error) {
	switch e.Op {
	case TokenNumber, TokenString:
		return e.Value, nil

	case TokenIdentifier:
		v, ok := consts.Lookup(e.Name)
		if !ok {
			return Value{}, ErrUnknownConstant.At(e.Pos).
				With(slog.String("name", e.Name))
		}

		return v, nil

	case TokenPlus, TokenMinus, TokenMultiply:
		if len(e.Args) != 2 {
			return Value{}, ErrInvalidArgument.At(e.Pos).
				With(slog.String("op", e.Op.String()), slog.Int("args", len(e.Args)))
		}

		lhs, err := e.Args[0].Eval(consts)
		if err != nil {
			return Value{}, err
		}

		rhs, err := e.Args[1].Eval(consts)
		if err != nil {
			return Value{}, err
		}

		return arithmetic(e.Op, e.Pos, lhs, rhs)

	case TokenOrd:
		if len(e.Args) != 1 {
			return Value{}, ErrInvalidArgument.At(e.Pos).
				With(slog.String("op", e.Op.String()), slog.Int("args", len(e.Args)))
		}

		arg, err := e.Args[0].Eval(consts)
		if err != nil {
			return Value{}, err
		}

		return ord(e.Pos, arg)

	default:
		return Value{}, ErrUnexpectedToken.At(e.Pos).
			With(slog.String("actual", e.Op.String()))
	}
}

// String returns e in prefix notation.
func (e *Expr) String() string {
	var sb strings.Builder

	e.writeTo(&sb)

	return sb.String()
}

func (e *Expr) writeTo(sb *strings.Builder) {
	switch e.Op {
	case TokenNumber, TokenString:
		sb.WriteString(e.Value.String())

	case TokenIdentifier:
		sb.WriteString(e.Name)

	case TokenOrd:
		sb.WriteString("ord(")

		for _, arg := range e.Args {
			arg.writeTo(sb)
		}

		sb.WriteByte(')')

	default:
		sb.WriteString(e.Op.String())

		for _, arg := range e.Args {
			sb.WriteByte(' ')
			arg.writeTo(sb)
		}
	}
}

// arithmetic applies a binary operator. Two integers produce an integer; any
// float operand promotes the operation to float.
func arithmetic(op TokenKind, pos Position, lhs, rhs Value) (Value, error) {
	for _, operand := range [...]Value{lhs, rhs} {
		if !operand.numeric() {
			return Value{}, ErrTypeMismatch.At(pos).With(
				slog.String("op", op.String()),
				slog.String("operand", operand.Kind().String()),
			)
		}
	}

	if lhs.kind == KindInteger && rhs.kind == KindInteger {
		r, ok := intOp(op, lhs.i, rhs.i)
		if !ok {
			return Value{}, ErrIntegerOverflow.At(pos).With(
				slog.String("op", op.String()),
				slog.Int64("lhs", lhs.i),
				slog.Int64("rhs", rhs.i),
			)
		}

		return IntegerValue(r), nil
	}

	a, b := lhs.asFloat(), rhs.asFloat()

	var r float64

	switch op {
	case TokenPlus:
		r = a + b
	case TokenMinus:
		r = a - b
	case TokenMultiply:
		r = a * b
	}

	if math.IsInf(r, 0) || math.IsNaN(r) {
		return Value{}, ErrInvalidNumber.At(pos).With(
			slog.String("op", op.String()),
			slog.Float64("lhs", a),
			slog.Float64("rhs", b),
		)
	}

	return FloatValue(r), nil
}

// intOp applies op to a and b, reporting false on overflow.
func intOp(op TokenKind, a, b int64) (int64, bool) {
	switch op {
	case TokenPlus:
		if (b > 0 && a > math.MaxInt64-b) || (b < 0 && a < math.MinInt64-b) {
			return 0, false
		}

		return a + b, true

	case TokenMinus:
		if (b < 0 && a > math.MaxInt64+b) || (b > 0 && a < math.MinInt64+b) {
			return 0, false
		}

		return a - b, true

	case TokenMultiply:
		if a == 0 || b == 0 {
			return 0, true
		}

		if (a == -1 && b == math.MinInt64) || (b == -1 && a == math.MinInt64) {
			return 0, false
		}

		c := a * b
		if c/b != a {
			return 0, false
		}

		return c, true
	}

	return 0, false
}

// ord returns the code point of the first character of a non-empty string.
func ord(pos Position, arg Value) (Value, error) {
	s, ok := arg.Str()
	if !ok {
		return Value{}, ErrInvalidArgument.At(pos).With(
			slog.String("op", TokenOrd.String()),
			slog.String("operand", arg.Kind().String()),
		)
	}

	if s == "" {
		return Value{}, ErrInvalidArgument.At(pos).With(
			slog.String("op", TokenOrd.String()),
			slog.String("operand", "empty string"),
		)
	}

	r, _ := utf8.DecodeRuneInString(s)

	return IntegerValue(int64(r)), nil
}
