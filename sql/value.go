package sql

import (
	"bytes"
	"fmt"
	"math"
	"strings"
)

const (
	NullString  = "NULL"
	TrueString  = "true"
	FalseString = "false"
)

// Value is the result of evaluating an expression; NULL is represented by a nil Value.
type Value interface {
	fmt.Stringer

	// return -1 if v1 < v2
	// return 0 if v1 == v2
	// return 1 if v1 > v2
	Compare(v2 Value) (int, error)
}

type BoolValue bool

func (b BoolValue) String() string {
	if b {
		return TrueString
	}
	return FalseString
}

func (b1 BoolValue) Compare(v2 Value) (int, error) {
	if b2, ok := v2.(BoolValue); ok {
		if b1 {
			if b2 {
				return 0, nil
			}
			return 1, nil
		} else {
			if b2 {
				return -1, nil
			}
			return 0, nil
		}
	}
	return 0, fmt.Errorf("colexpr: want boolean got %v", Format(v2))
}

type Int64Value int64

func (i Int64Value) String() string {
	return fmt.Sprintf("%v", int64(i))
}

func (i1 Int64Value) Compare(v2 Value) (int, error) {
	switch v2 := v2.(type) {
	case Int64Value:
		if i1 < v2 {
			return -1, nil
		} else if i1 > v2 {
			return 1, nil
		}
		return 0, nil
	case Float64Value:
		return compareFloat(float64(i1), float64(v2)), nil
	}
	return 0, fmt.Errorf("colexpr: want number got %v", Format(v2))
}

type Float64Value float64

func (d Float64Value) String() string {
	return fmt.Sprintf("%v", float64(d))
}

func (d1 Float64Value) Compare(v2 Value) (int, error) {
	switch v2 := v2.(type) {
	case Int64Value:
		return compareFloat(float64(d1), float64(v2)), nil
	case Float64Value:
		return compareFloat(float64(d1), float64(v2)), nil
	}
	return 0, fmt.Errorf("colexpr: want number got %v", Format(v2))
}

// compareFloat orders NaN above every other number and equal to itself.
func compareFloat(f1, f2 float64) int {
	switch {
	case f1 < f2:
		return -1
	case f1 > f2:
		return 1
	case f1 == f2:
		return 0
	case math.IsNaN(f1) && math.IsNaN(f2):
		return 0
	case math.IsNaN(f1):
		return 1
	}
	return -1
}

type StringValue string

func (s StringValue) String() string {
	return fmt.Sprintf("'%s'", string(s))
}

func (s1 StringValue) Compare(v2 Value) (int, error) {
	if s2, ok := v2.(StringValue); ok {
		return strings.Compare(string(s1), string(s2)), nil
	}
	return 0, fmt.Errorf("colexpr: want string got %v", Format(v2))
}

type BytesValue []byte

var (
	hexDigits = [16]rune{'0', '1', '2', '3', '4', '5', '6', '7', '8', '9', 'a', 'b', 'c', 'd',
		'e', 'f'}
)

func (b BytesValue) String() string {
	var buf bytes.Buffer
	buf.WriteString("'\\x")
	for _, v := range b {
		buf.WriteRune(hexDigits[v>>4])
		buf.WriteRune(hexDigits[v&0xF])
	}

	buf.WriteRune('\'')
	return buf.String()
}

func (b1 BytesValue) Compare(v2 Value) (int, error) {
	if b2, ok := v2.(BytesValue); ok {
		return bytes.Compare([]byte(b1), []byte(b2)), nil
	}
	return 0, fmt.Errorf("colexpr: want bytes got %v", Format(v2))
}

// ListValue is an ordered sequence of values; elements may be NULL.
type ListValue []Value

func (l ListValue) String() string {
	var buf strings.Builder
	buf.WriteRune('[')
	for i, v := range l {
		if i > 0 {
			buf.WriteString(", ")
		}
		buf.WriteString(Format(v))
	}
	buf.WriteRune(']')
	return buf.String()
}

func (l1 ListValue) Compare(v2 Value) (int, error) {
	l2, ok := v2.(ListValue)
	if !ok {
		return 0, fmt.Errorf("colexpr: want list got %v", Format(v2))
	}
	return compareSeq(len(l1), len(l2), func(i int) (Value, Value) { return l1[i], l2[i] })
}

type Field struct {
	Name  string
	Value Value
}

// StructValue is a nested record. Field order is the order of construction and duplicate
// names are allowed; Lookup returns the last field with a given name.
type StructValue []Field

func (sv StructValue) String() string {
	var buf strings.Builder
	buf.WriteRune('{')
	for i, f := range sv {
		if i > 0 {
			buf.WriteString(", ")
		}
		fmt.Fprintf(&buf, "%s: %s", f.Name, Format(f.Value))
	}
	buf.WriteRune('}')
	return buf.String()
}

func (sv StructValue) Lookup(name string) (Value, bool) {
	for i := len(sv) - 1; i >= 0; i-- {
		if sv[i].Name == name {
			return sv[i].Value, true
		}
	}
	return nil, false
}

func (sv StructValue) Names() []string {
	names := make([]string, len(sv))
	for i, f := range sv {
		names[i] = f.Name
	}
	return names
}

func (sv1 StructValue) Compare(v2 Value) (int, error) {
	sv2, ok := v2.(StructValue)
	if !ok {
		return 0, fmt.Errorf("colexpr: want struct got %v", Format(v2))
	}

	// Fields are compared in order, the name of each field before its value.
	return compareSeq(len(sv1)*2, len(sv2)*2,
		func(i int) (Value, Value) {
			if i%2 == 0 {
				return StringValue(sv1[i/2].Name), StringValue(sv2[i/2].Name)
			}
			return sv1[i/2].Value, sv2[i/2].Value
		})
}

func compareSeq(n1, n2 int, at func(i int) (Value, Value)) (int, error) {
	for i := 0; i < n1 && i < n2; i++ {
		e1, e2 := at(i)
		if e1 == nil || e2 == nil {
			if cmp := Compare(e1, e2); cmp != 0 {
				return cmp, nil
			}
			continue
		}
		cmp, err := e1.Compare(e2)
		if err != nil {
			return 0, err
		} else if cmp != 0 {
			return cmp, nil
		}
	}
	if n1 < n2 {
		return -1, nil
	} else if n1 > n2 {
		return 1, nil
	}
	return 0, nil
}

func kindRank(v Value) int {
	switch v.(type) {
	case BoolValue:
		return 1
	case Float64Value, Int64Value:
		return 2
	case StringValue:
		return 3
	case BytesValue:
		return 4
	case ListValue:
		return 5
	case StructValue:
		return 6
	default:
		panic(fmt.Sprintf("unexpected type for sql.Value: %T: %v", v, v))
	}
}

// Compare is a total order over values, suitable for sorting: NULL sorts first, then
// booleans, numbers, strings, bytes, lists and structs.
func Compare(v1, v2 Value) int {
	if v1 == nil {
		if v2 == nil {
			return 0
		}
		return -1
	}
	if v2 == nil {
		return 1
	}

	r1, r2 := kindRank(v1), kindRank(v2)
	if r1 < r2 {
		return -1
	} else if r1 > r2 {
		return 1
	}
	cmp, err := v1.Compare(v2)
	if err != nil {
		// Same rank, but nested elements of incompatible kinds.
		return strings.Compare(v1.String(), v2.String())
	}
	return cmp
}

func Format(v Value) string {
	if v == nil {
		return NullString
	}

	return v.String()
}
