package column

import (
	"github.com/leftmike/colexpr/expr"
)

// CaseBuilder is a CASE expression still being built. It becomes a Column with Otherwise,
// which sets the default, or with Column, which leaves the default as NULL.
type CaseBuilder struct {
	whens []expr.When
}

// When starts a CASE expression: the value of the first condition which is true, in the
// order they were added.
func When(cond, value interface{}) CaseBuilder {
	return CaseBuilder{}.When(cond, value)
}

func (cb CaseBuilder) When(cond, value interface{}) CaseBuilder {
	whens := make([]expr.When, len(cb.whens), len(cb.whens)+1)
	copy(whens, cb.whens)
	return CaseBuilder{
		whens: append(whens, expr.When{Cond: literal(cond), Value: literal(value)}),
	}
}

func (cb CaseBuilder) Otherwise(value interface{}) Column {
	return Column{expr.NewCase(cb.whens, literal(value))}
}

func (cb CaseBuilder) Column() Column {
	return Column{expr.NewCase(cb.whens, nil)}
}

func (cb CaseBuilder) String() string {
	return cb.Column().String()
}

func openCase(c Column, op string) (*expr.Case, error) {
	ce, ok := c.e.(*expr.Case)
	if !ok {
		return nil, &expr.IllegalChainStateError{
			Op:     op,
			Reason: "may only be applied to a column created by when",
		}
	}
	if ce.Else != nil {
		return nil, &expr.IllegalChainStateError{
			Op:     op,
			Reason: "may not be applied once otherwise has been applied",
		}
	}
	return ce, nil
}

// When continues the CASE expression of a column created by CaseBuilder.Column. It fails
// with expr.IllegalChainStateError for any other column, including one finished by
// Otherwise.
func (c Column) When(cond, value interface{}) (CaseBuilder, error) {
	ce, err := openCase(c, "when")
	if err != nil {
		return CaseBuilder{}, err
	}
	return CaseBuilder{ce.Whens}.When(cond, value), nil
}

func (c Column) Otherwise(value interface{}) (Column, error) {
	ce, err := openCase(c, "otherwise")
	if err != nil {
		return Column{}, err
	}
	return CaseBuilder{ce.Whens}.Otherwise(value), nil
}
