package lang

import (
	"errors"
	"math"
	"testing"
)

func lit(v Value) *Expr {
	kind := TokenNumber
	if v.Kind() == KindString {
		kind = TokenString
	}

	return &Expr{Op: kind, Value: v}
}

func ref(name string) *Expr { return &Expr{Op: TokenIdentifier, Name: name} }

func op(kind TokenKind, args ...*Expr) *Expr { return &Expr{Op: kind, Args: args} }

func TestExpr_Eval(t *testing.T) {
	consts := NewConstants()
	consts.Define("x", IntegerValue(5))
	consts.Define("s", StringValue("Zed"))

	tests := []struct {
		name    string
		expr    *Expr
		want    Value
		wantErr error
	}{
		{
			name: "literal",
			expr: lit(FloatValue(1.25)),
			want: FloatValue(1.25),
		},
		{
			name: "reference",
			expr: ref("x"),
			want: IntegerValue(5),
		},
		{
			name:    "unknown reference",
			expr:    ref("nope"),
			wantErr: ErrUnknownConstant,
		},
		{
			name: "add",
			expr: op(TokenPlus, ref("x"), lit(IntegerValue(2))),
			want: IntegerValue(7),
		},
		{
			name: "subtract float",
			expr: op(TokenMinus, lit(FloatValue(0.5)), ref("x")),
			want: FloatValue(-4.5),
		},
		{
			name: "multiply",
			expr: op(TokenMultiply, ref("x"), ref("x")),
			want: IntegerValue(25),
		},
		{
			name: "ord",
			expr: op(TokenOrd, ref("s")),
			want: IntegerValue('Z'),
		},
		{
			name:    "multiply overflow",
			expr:    op(TokenMultiply, lit(IntegerValue(math.MaxInt64/2+1)), lit(IntegerValue(2))),
			wantErr: ErrIntegerOverflow,
		},
		{
			name: "multiply at minimum",
			expr: op(TokenMultiply, lit(IntegerValue(math.MinInt64/2)), lit(IntegerValue(2))),
			want: IntegerValue(math.MinInt64),
		},
		{
			name:    "string operand",
			expr:    op(TokenPlus, ref("s"), ref("x")),
			wantErr: ErrTypeMismatch,
		},
		{
			name:    "missing operand",
			expr:    op(TokenPlus, ref("x")),
			wantErr: ErrInvalidArgument,
		},
		{
			name:    "ord of integer",
			expr:    op(TokenOrd, ref("x")),
			wantErr: ErrInvalidArgument,
		},
		{
			name:    "inner error propagates",
			expr:    op(TokenPlus, lit(IntegerValue(1)), op(TokenOrd, lit(StringValue("")))),
			wantErr: ErrInvalidArgument,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.expr.Eval(consts)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Eval() error = %v, want %v", err, tt.wantErr)
				}

				return
			}

			if err != nil {
				t.Fatalf("Eval() error: %v", err)
			}

			if !got.Equal(tt.want) {
				t.Errorf("Eval() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestExpr_String(t *testing.T) {
	e := op(TokenPlus,
		op(TokenMultiply, ref("x"), lit(IntegerValue(2))),
		op(TokenOrd, lit(StringValue("A"))),
	)

	if got, want := e.String(), `+ * x 2 ord("A")`; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
