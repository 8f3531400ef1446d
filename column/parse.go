package column

import (
	"github.com/leftmike/colexpr/expr"
)

// literal converts an operand: columns and case builders supply their expression, and
// anything else, strings included, is a constant.
func literal(v interface{}) expr.Expr {
	switch v := v.(type) {
	case Column:
		return v.e
	case CaseBuilder:
		return v.Column().e
	}
	return expr.MakeLiteral(v)
}

// parse converts an argument which names a column: a string is a reference to a field,
// and anything else is handled as an operand.
func parse(v interface{}) expr.Expr {
	if s, ok := v.(string); ok {
		return expr.Ref(s)
	}
	return literal(v)
}
