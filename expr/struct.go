package expr

import (
	"strings"

	"github.com/leftmike/colexpr/evaluate"
	"github.com/leftmike/colexpr/sql"
)

// Struct builds a nested record from its fields, in order. Field names need not be unique.
type Struct struct {
	Names []string
	Exprs []Expr
}

// NewStruct names each field after its expression: the field name of a reference, the
// name of an alias, or else the display name.
func NewStruct(exprs ...Expr) *Struct {
	s := &Struct{
		Names: make([]string, len(exprs)),
		Exprs: make([]Expr, len(exprs)),
	}
	for i, e := range exprs {
		if a, ok := e.(*Alias); ok {
			s.Names[i] = a.Name
			e = a.Expr
		} else {
			s.Names[i] = e.String()
		}
		s.Exprs[i] = e
	}
	return s
}

func (s *Struct) String() string {
	var buf strings.Builder
	buf.WriteString("named_struct(")
	for i := range s.Exprs {
		if i > 0 {
			buf.WriteString(", ")
		}
		buf.WriteString(s.Names[i])
		buf.WriteString(", ")
		buf.WriteString(s.Exprs[i].String())
	}
	buf.WriteString(")")
	return buf.String()
}

func (s *Struct) Eval(row sql.Row, ectx *evaluate.Context) (sql.Value, error) {
	sv := make(sql.StructValue, len(s.Exprs))
	for i, e := range s.Exprs {
		v, err := e.Eval(row, ectx)
		if err != nil {
			return nil, err
		}
		sv[i] = sql.Field{Name: s.Names[i], Value: v}
	}
	return sv, nil
}

func (s *Struct) Children() []Expr {
	return append([]Expr(nil), s.Exprs...)
}
