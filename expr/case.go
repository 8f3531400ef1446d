package expr

import (
	"strings"

	"github.com/leftmike/colexpr/evaluate"
	"github.com/leftmike/colexpr/sql"
)

type When struct {
	Cond  Expr
	Value Expr
}

// Case is CASE WHEN ... THEN ... [WHEN ... THEN ...]* [ELSE ...] END. Else is nil when
// there is no default.
type Case struct {
	Whens []When
	Else  Expr
}

// NewCase copies whens so that the new expression never shares storage with the caller.
func NewCase(whens []When, els Expr) *Case {
	if len(whens) == 0 {
		panic("expr.NewCase: at least one when is required")
	}
	return &Case{
		Whens: append([]When(nil), whens...),
		Else:  els,
	}
}

func (c *Case) String() string {
	var buf strings.Builder
	buf.WriteString("CASE")
	for _, w := range c.Whens {
		buf.WriteString(" WHEN ")
		buf.WriteString(w.Cond.String())
		buf.WriteString(" THEN ")
		buf.WriteString(w.Value.String())
	}
	if c.Else != nil {
		buf.WriteString(" ELSE ")
		buf.WriteString(c.Else.String())
	}
	buf.WriteString(" END")
	return buf.String()
}

// Eval evaluates the conditions in order and returns the value of the first one that is
// true; a NULL condition counts as false.
func (c *Case) Eval(row sql.Row, ectx *evaluate.Context) (sql.Value, error) {
	for _, w := range c.Whens {
		cond, err := w.Cond.Eval(row, ectx)
		if err != nil {
			return nil, err
		} else if cond == nil {
			continue
		}

		b, ok := cond.(sql.BoolValue)
		if !ok {
			return nil, &TypeMismatchError{Op: "CASE WHEN", Want: "boolean", Got: cond}
		}
		if b {
			return w.Value.Eval(row, ectx)
		}
	}

	if c.Else == nil {
		return nil, nil
	}
	return c.Else.Eval(row, ectx)
}

func (c *Case) Children() []Expr {
	children := make([]Expr, 0, len(c.Whens)*2+1)
	for _, w := range c.Whens {
		children = append(children, w.Cond, w.Value)
	}
	if c.Else != nil {
		children = append(children, c.Else)
	}
	return children
}
