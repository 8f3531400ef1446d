package testutil

import (
	"fmt"
	"reflect"

	"github.com/leftmike/colexpr/sql"
)

func RowValues(rows []sql.Row) [][]sql.Value {
	vals := make([][]sql.Value, len(rows))
	for i, row := range rows {
		vals[i] = row.Values()
	}
	return vals
}

func valueEqual(v1, v2 sql.Value) bool {
	if v1 == nil || v2 == nil {
		return v1 == nil && v2 == nil
	}
	return reflect.TypeOf(v1) == reflect.TypeOf(v2) && sql.Compare(v1, v2) == 0
}

// ValuesEqual reports whether two tables of values are equal. Values must be of the same
// type and compare equal, so lists and structs are compared by content. If trc is not nil,
// it is set to a description of the first difference.
func ValuesEqual(x, y [][]sql.Value, trc *string) bool {
	var s string
	defer func() {
		if trc != nil {
			*trc = s
		}
	}()

	if len(x) != len(y) {
		s = fmt.Sprintf("%d rows != %d rows", len(x), len(y))
		return false
	}
	for r := range x {
		if len(x[r]) != len(y[r]) {
			s = fmt.Sprintf("row %d: %d values != %d values", r, len(x[r]), len(y[r]))
			return false
		}
		for c := range x[r] {
			if !valueEqual(x[r][c], y[r][c]) {
				s = fmt.Sprintf("row %d column %d: %s (%T) != %s (%T)", r, c,
					sql.Format(x[r][c]), x[r][c], sql.Format(y[r][c]), y[r][c])
				return false
			}
		}
	}
	return true
}
