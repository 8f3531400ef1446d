package column

import (
	"github.com/leftmike/colexpr/expr"
)

// Column is the handle used to build expressions. It wraps exactly one expression and is
// never modified: every method returns a new Column.
type Column struct {
	e expr.Expr
}

func New(e expr.Expr) Column {
	if e == nil {
		panic("column.New: nil expression")
	}
	return Column{e}
}

// Col returns a reference to the field name, resolved when the column is evaluated.
func Col(name string) Column {
	return Column{expr.Ref(name)}
}

// Lit returns a constant column; if v is already a Column, it is returned unchanged.
func Lit(v interface{}) Column {
	if c, ok := v.(Column); ok {
		return c
	}
	return TypedLit(v)
}

// TypedLit returns a constant column for v. Evaluating it fails with
// expr.UnsupportedLiteralTypeError if v has no sql.Value representation.
func TypedLit(v interface{}) Column {
	return Column{expr.MakeLiteral(v)}
}

func (c Column) Expr() expr.Expr {
	return c.e
}

// Name is the name of the column in the output: its alias if it has one, otherwise the
// display name of its expression.
func (c Column) Name() string {
	return c.e.String()
}

func (c Column) String() string {
	return c.e.String()
}

func (c Column) Alias(name string) Column {
	return Column{&expr.Alias{Name: name, Expr: c.e}}
}

func (c Column) binary(op expr.Op, v interface{}) Column {
	return Column{&expr.Binary{Op: op, Left: c.e, Right: literal(v)}}
}

func (c Column) Eq(v interface{}) Column {
	return c.binary(expr.EqualOp, v)
}

func (c Column) Ne(v interface{}) Column {
	return c.binary(expr.NotEqualOp, v)
}

func (c Column) Gt(v interface{}) Column {
	return c.binary(expr.GreaterThanOp, v)
}

func (c Column) Ge(v interface{}) Column {
	return c.binary(expr.GreaterEqualOp, v)
}

func (c Column) Lt(v interface{}) Column {
	return c.binary(expr.LessThanOp, v)
}

func (c Column) Le(v interface{}) Column {
	return c.binary(expr.LessEqualOp, v)
}

func (c Column) Add(v interface{}) Column {
	return c.binary(expr.AddOp, v)
}

func (c Column) Sub(v interface{}) Column {
	return c.binary(expr.SubtractOp, v)
}

func (c Column) Mul(v interface{}) Column {
	return c.binary(expr.MultiplyOp, v)
}

// Div always returns a float; dividing by zero returns NULL.
func (c Column) Div(v interface{}) Column {
	return c.binary(expr.DivideOp, v)
}

func (c Column) Mod(v interface{}) Column {
	return c.binary(expr.ModuloOp, v)
}

func (c Column) And(v interface{}) Column {
	return c.binary(expr.AndOp, v)
}

func (c Column) Or(v interface{}) Column {
	return c.binary(expr.OrOp, v)
}

func (c Column) Concat(v interface{}) Column {
	return c.binary(expr.ConcatOp, v)
}

func (c Column) BitAnd(v interface{}) Column {
	return c.binary(expr.BinaryAndOp, v)
}

func (c Column) BitOr(v interface{}) Column {
	return c.binary(expr.BinaryOrOp, v)
}

func (c Column) LShift(v interface{}) Column {
	return c.binary(expr.LShiftOp, v)
}

func (c Column) RShift(v interface{}) Column {
	return c.binary(expr.RShiftOp, v)
}

func (c Column) Not() Column {
	return Column{&expr.Unary{Op: expr.NotOp, Expr: c.e}}
}

func (c Column) Negate() Column {
	return Column{&expr.Unary{Op: expr.NegateOp, Expr: c.e}}
}

func (c Column) IsNull() Column {
	return call("is_null", c.e)
}

func (c Column) IsNotNull() Column {
	return call("is_not_null", c.e)
}

// Exprs returns the expressions of cols, in order.
func Exprs(cols ...Column) []expr.Expr {
	exprs := make([]expr.Expr, len(cols))
	for i, c := range cols {
		exprs[i] = c.e
	}
	return exprs
}
