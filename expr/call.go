package expr

import (
	"fmt"
	"sort"
	"strings"

	"github.com/leftmike/colexpr/evaluate"
	"github.com/leftmike/colexpr/sql"
)

type Call struct {
	Name string
	Args []Expr
	call *callFunc
}

func NewCall(name string, args ...Expr) (*Call, error) {
	cf, ok := funcs[name]
	if !ok {
		return nil, fmt.Errorf("colexpr: function \"%s\" not found", name)
	}
	if len(args) < int(cf.minArgs) {
		return nil, fmt.Errorf("colexpr: function \"%s\": minimum %d arguments got %d", name,
			cf.minArgs, len(args))
	}
	if len(args) > int(cf.maxArgs) {
		return nil, fmt.Errorf("colexpr: function \"%s\": maximum %d arguments got %d", name,
			cf.maxArgs, len(args))
	}

	return &Call{
		Name: name,
		Args: append([]Expr(nil), args...),
		call: cf,
	}, nil
}

func (c *Call) String() string {
	var buf strings.Builder
	buf.WriteString(c.Name)
	buf.WriteRune('(')
	for i, a := range c.Args {
		if i > 0 {
			buf.WriteString(", ")
		}
		buf.WriteString(a.String())
	}
	buf.WriteRune(')')
	return buf.String()
}

func (c *Call) Eval(row sql.Row, ectx *evaluate.Context) (sql.Value, error) {
	args := make([]sql.Value, len(c.Args))
	for i, a := range c.Args {
		var err error
		args[i], err = a.Eval(row, ectx)
		if err != nil {
			return nil, err
		} else if args[i] == nil && !c.call.handleNull {
			return nil, nil
		}
	}
	return c.call.call(ectx, args)
}

func (c *Call) Children() []Expr {
	return append([]Expr(nil), c.Args...)
}

// Functions returns the names of the functions which may be called.
func Functions() []string {
	names := make([]string, 0, len(funcs))
	for nam := range funcs {
		names = append(names, nam)
	}
	sort.Strings(names)
	return names
}
