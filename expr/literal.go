package expr

import (
	"fmt"
	"math"

	"github.com/leftmike/colexpr/evaluate"
	"github.com/leftmike/colexpr/sql"
)

// ValueOf converts a Go value into a sql.Value.
func ValueOf(v interface{}) (sql.Value, error) {
	switch v := v.(type) {
	case nil:
		return nil, nil
	case sql.Value:
		return v, nil
	case bool:
		return sql.BoolValue(v), nil
	case int:
		return sql.Int64Value(v), nil
	case int8:
		return sql.Int64Value(v), nil
	case int16:
		return sql.Int64Value(v), nil
	case int32:
		return sql.Int64Value(v), nil
	case int64:
		return sql.Int64Value(v), nil
	case uint:
		if uint64(v) > math.MaxInt64 {
			break
		}
		return sql.Int64Value(v), nil
	case uint8:
		return sql.Int64Value(v), nil
	case uint16:
		return sql.Int64Value(v), nil
	case uint32:
		return sql.Int64Value(v), nil
	case uint64:
		if v > math.MaxInt64 {
			break
		}
		return sql.Int64Value(v), nil
	case float32:
		return sql.Float64Value(v), nil
	case float64:
		return sql.Float64Value(v), nil
	case string:
		return sql.StringValue(v), nil
	case []byte:
		return sql.BytesValue(append([]byte(nil), v...)), nil
	case []interface{}:
		lv := make(sql.ListValue, len(v))
		for i, e := range v {
			var err error
			lv[i], err = ValueOf(e)
			if err != nil {
				return nil, err
			}
		}
		return lv, nil
	}
	return nil, &UnsupportedLiteralTypeError{v}
}

func NewLiteral(v interface{}) (*Literal, error) {
	sv, err := ValueOf(v)
	if err != nil {
		return nil, err
	}
	return &Literal{sv}, nil
}

// MakeLiteral is NewLiteral for callers that build expressions without checking errors:
// an unsupported value becomes an expression that fails when evaluated.
func MakeLiteral(v interface{}) Expr {
	l, err := NewLiteral(v)
	if err != nil {
		return &invalidLiteral{v, err}
	}
	return l
}

type invalidLiteral struct {
	value interface{}
	err   error
}

func (il *invalidLiteral) String() string {
	return fmt.Sprintf("%v", il.value)
}

func (il *invalidLiteral) Eval(row sql.Row, ectx *evaluate.Context) (sql.Value, error) {
	return nil, il.err
}

func (_ *invalidLiteral) Children() []Expr {
	return nil
}
