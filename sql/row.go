package sql

import (
	"fmt"
)

type FieldNotFoundError struct {
	Name string
}

func (e *FieldNotFoundError) Error() string {
	return fmt.Sprintf("colexpr: field \"%s\" not found", e.Name)
}

// Row is one row of a partition: an ordered list of named values. It shares its layout
// with StructValue, including last-wins lookup for duplicate names.
type Row StructValue

func MakeRow(names []string, vals []Value) Row {
	if len(names) != len(vals) {
		panic(fmt.Sprintf("sql.MakeRow: %d names but %d values", len(names), len(vals)))
	}

	row := make(Row, len(names))
	for i := range names {
		row[i] = Field{Name: names[i], Value: vals[i]}
	}
	return row
}

func (r Row) Get(name string) (Value, error) {
	v, ok := StructValue(r).Lookup(name)
	if !ok {
		return nil, &FieldNotFoundError{name}
	}
	return v, nil
}

func (r Row) Names() []string {
	return StructValue(r).Names()
}

func (r Row) Values() []Value {
	vals := make([]Value, len(r))
	for i, f := range r {
		vals[i] = f.Value
	}
	return vals
}

func (r Row) String() string {
	return StructValue(r).String()
}
