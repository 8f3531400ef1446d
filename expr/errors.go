package expr

import (
	"fmt"

	"github.com/leftmike/colexpr/sql"
)

type UnresolvedReferenceError struct {
	Name string
	Err  error
}

func (e *UnresolvedReferenceError) Error() string {
	return fmt.Sprintf("colexpr: unable to resolve reference \"%s\"", e.Name)
}

func (e *UnresolvedReferenceError) Unwrap() error {
	return e.Err
}

type UnsupportedLiteralTypeError struct {
	Value interface{}
}

func (e *UnsupportedLiteralTypeError) Error() string {
	return fmt.Sprintf("colexpr: unsupported literal type %T: %v", e.Value, e.Value)
}

// IllegalChainStateError is returned when building an expression out of order, such as
// adding a when clause after otherwise.
type IllegalChainStateError struct {
	Op     string
	Reason string
}

func (e *IllegalChainStateError) Error() string {
	return fmt.Sprintf("colexpr: %s: %s", e.Op, e.Reason)
}

type TypeMismatchError struct {
	Op   string
	Want string
	Got  sql.Value
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("colexpr: %s: want %s got %s", e.Op, e.Want, sql.Format(e.Got))
}

// OverflowError is returned when the result of an operation on an integer does not fit in
// an int64. Addition, subtraction, multiplication and shifts wrap instead.
type OverflowError struct {
	Op    string
	Value sql.Value
}

func (e *OverflowError) Error() string {
	return fmt.Sprintf("colexpr: %s: integer overflow: %s", e.Op, sql.Format(e.Value))
}

type NoContextError struct {
	Expr string
}

func (e *NoContextError) Error() string {
	return fmt.Sprintf("colexpr: %s requires an evaluation context", e.Expr)
}

func want(kind string, v sql.Value) error {
	return &TypeMismatchError{Want: kind, Got: v}
}

func kindOf(v sql.Value) string {
	switch v.(type) {
	case nil:
		return "null"
	case sql.BoolValue:
		return "boolean"
	case sql.Int64Value, sql.Float64Value:
		return "number"
	case sql.StringValue:
		return "string"
	case sql.BytesValue:
		return "bytes"
	case sql.ListValue:
		return "list"
	case sql.StructValue:
		return "struct"
	default:
		panic(fmt.Sprintf("unexpected type for sql.Value: %T: %v", v, v))
	}
}
