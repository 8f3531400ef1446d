package expr

import (
	"fmt"

	"github.com/leftmike/colexpr/evaluate"
	"github.com/leftmike/colexpr/sql"
)

// Expr is an immutable node of an expression tree. String returns the display name,
// which depends only on the structure of the tree.
type Expr interface {
	fmt.Stringer
	Eval(row sql.Row, ectx *evaluate.Context) (sql.Value, error)
	Children() []Expr
}

type Op int

const (
	AddOp Op = iota
	AndOp
	BinaryAndOp
	BinaryOrOp
	ConcatOp
	DivideOp
	EqualOp
	GreaterEqualOp
	GreaterThanOp
	LessEqualOp
	LessThanOp
	LShiftOp
	ModuloOp
	MultiplyOp
	NegateOp
	NotEqualOp
	NotOp
	OrOp
	RShiftOp
	SubtractOp
)

var opNames = [...]string{
	AddOp:          "+",
	AndOp:          "AND",
	BinaryAndOp:    "&",
	BinaryOrOp:     "|",
	ConcatOp:       "||",
	DivideOp:       "/",
	EqualOp:        "=",
	GreaterEqualOp: ">=",
	GreaterThanOp:  ">",
	LessEqualOp:    "<=",
	LessThanOp:     "<",
	LShiftOp:       "<<",
	ModuloOp:       "%",
	MultiplyOp:     "*",
	NegateOp:       "-",
	NotEqualOp:     "!=",
	NotOp:          "NOT",
	OrOp:           "OR",
	RShiftOp:       ">>",
	SubtractOp:     "-",
}

func (op Op) String() string {
	return opNames[op]
}

type Literal struct {
	Value sql.Value
}

// String renders strings without quotes, so lit("abc") is displayed as abc.
func (l *Literal) String() string {
	if s, ok := l.Value.(sql.StringValue); ok {
		return string(s)
	}
	return sql.Format(l.Value)
}

func (l *Literal) Eval(row sql.Row, ectx *evaluate.Context) (sql.Value, error) {
	return l.Value, nil
}

func (_ *Literal) Children() []Expr {
	return nil
}

func Nil() *Literal {
	return &Literal{nil}
}

func True() *Literal {
	return &Literal{sql.BoolValue(true)}
}

func False() *Literal {
	return &Literal{sql.BoolValue(false)}
}

func Int64Literal(i int64) *Literal {
	return &Literal{sql.Int64Value(i)}
}

func Float64Literal(f float64) *Literal {
	return &Literal{sql.Float64Value(f)}
}

func StringLiteral(s string) *Literal {
	return &Literal{sql.StringValue(s)}
}

func BytesLiteral(b []byte) *Literal {
	return &Literal{sql.BytesValue(b)}
}

// Ref is a reference to a field of the row, resolved when evaluated.
type Ref string

func (r Ref) String() string {
	return string(r)
}

func (r Ref) Eval(row sql.Row, ectx *evaluate.Context) (sql.Value, error) {
	v, err := row.Get(string(r))
	if err != nil {
		return nil, &UnresolvedReferenceError{Name: string(r), Err: err}
	}
	return v, nil
}

func (_ Ref) Children() []Expr {
	return nil
}

type Unary struct {
	Op   Op
	Expr Expr
}

func (u *Unary) String() string {
	return fmt.Sprintf("(%s %s)", opNames[u.Op], u.Expr)
}

func (u *Unary) Eval(row sql.Row, ectx *evaluate.Context) (sql.Value, error) {
	cf, ok := opFuncs[u.Op]
	if !ok || cf.minArgs != 1 {
		panic(fmt.Sprintf("unexpected unary op: %s", u.Op))
	}

	a, err := u.Expr.Eval(row, ectx)
	if err != nil {
		return nil, err
	} else if a == nil {
		return nil, nil
	}
	return cf.call(ectx, []sql.Value{a})
}

func (u *Unary) Children() []Expr {
	return []Expr{u.Expr}
}

type Binary struct {
	Op    Op
	Left  Expr
	Right Expr
}

func (b *Binary) String() string {
	return fmt.Sprintf("(%s %s %s)", b.Left, opNames[b.Op], b.Right)
}

func (b *Binary) Eval(row sql.Row, ectx *evaluate.Context) (sql.Value, error) {
	cf, ok := opFuncs[b.Op]
	if !ok || cf.minArgs != 2 {
		panic(fmt.Sprintf("unexpected binary op: %s", b.Op))
	}

	a0, err := b.Left.Eval(row, ectx)
	if err != nil {
		return nil, err
	}
	// AND and OR do not evaluate the right side once the result is known.
	if bv, ok := a0.(sql.BoolValue); ok {
		if (b.Op == AndOp && !bool(bv)) || (b.Op == OrOp && bool(bv)) {
			return bv, nil
		}
	}
	a1, err := b.Right.Eval(row, ectx)
	if err != nil {
		return nil, err
	}
	if (a0 == nil || a1 == nil) && !cf.handleNull {
		return nil, nil
	}
	return cf.call(ectx, []sql.Value{a0, a1})
}

func (b *Binary) Children() []Expr {
	return []Expr{b.Left, b.Right}
}

// Alias overrides the display name of an expression without changing its value.
type Alias struct {
	Name string
	Expr Expr
}

func (a *Alias) String() string {
	return a.Name
}

func (a *Alias) Eval(row sql.Row, ectx *evaluate.Context) (sql.Value, error) {
	return a.Expr.Eval(row, ectx)
}

func (a *Alias) Children() []Expr {
	return []Expr{a.Expr}
}

// Walk calls fn for e and then for each of its descendants, depth first, stopping early
// if fn returns false.
func Walk(e Expr, fn func(e Expr) bool) bool {
	if !fn(e) {
		return false
	}
	for _, c := range e.Children() {
		if !Walk(c, fn) {
			return false
		}
	}
	return true
}

// References returns the names of the fields referenced by e, in the order first seen.
func References(e Expr) []string {
	var refs []string
	seen := map[Ref]struct{}{}
	Walk(e,
		func(e Expr) bool {
			if r, ok := e.(Ref); ok {
				if _, ok := seen[r]; !ok {
					seen[r] = struct{}{}
					refs = append(refs, string(r))
				}
			}
			return true
		})
	return refs
}
