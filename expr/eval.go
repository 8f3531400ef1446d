package expr

import (
	"errors"
	"fmt"
	"math"

	"github.com/cespare/xxhash/v2"

	"github.com/leftmike/colexpr/evaluate"
	"github.com/leftmike/colexpr/sql"
)

type callFunc struct {
	fn         func(ectx *evaluate.Context, args []sql.Value) (sql.Value, error)
	minArgs    int16
	maxArgs    int16
	name       string
	handleNull bool
}

func (cf *callFunc) call(ectx *evaluate.Context, args []sql.Value) (sql.Value, error) {
	v, err := cf.fn(ectx, args)
	var tme *TypeMismatchError
	if errors.As(err, &tme) && tme.Op == "" {
		tme.Op = cf.name
	}
	return v, err
}

var (
	opFuncs = map[Op]*callFunc{
		AddOp:          {fn: addCall, minArgs: 2, maxArgs: 2},
		AndOp:          {fn: andCall, minArgs: 2, maxArgs: 2, handleNull: true},
		BinaryAndOp:    {fn: binaryAndCall, minArgs: 2, maxArgs: 2},
		BinaryOrOp:     {fn: binaryOrCall, minArgs: 2, maxArgs: 2},
		ConcatOp:       {fn: concatCall, minArgs: 2, maxArgs: 2},
		DivideOp:       {fn: divideCall, minArgs: 2, maxArgs: 2},
		EqualOp:        {fn: equalCall, minArgs: 2, maxArgs: 2},
		GreaterEqualOp: {fn: greaterEqualCall, minArgs: 2, maxArgs: 2},
		GreaterThanOp:  {fn: greaterThanCall, minArgs: 2, maxArgs: 2},
		LessEqualOp:    {fn: lessEqualCall, minArgs: 2, maxArgs: 2},
		LessThanOp:     {fn: lessThanCall, minArgs: 2, maxArgs: 2},
		LShiftOp:       {fn: lShiftCall, minArgs: 2, maxArgs: 2},
		ModuloOp:       {fn: moduloCall, minArgs: 2, maxArgs: 2},
		MultiplyOp:     {fn: multiplyCall, minArgs: 2, maxArgs: 2},
		NegateOp:       {fn: negateCall, minArgs: 1, maxArgs: 1},
		NotEqualOp:     {fn: notEqualCall, minArgs: 2, maxArgs: 2},
		NotOp:          {fn: notCall, minArgs: 1, maxArgs: 1},
		OrOp:           {fn: orCall, minArgs: 2, maxArgs: 2, handleNull: true},
		RShiftOp:       {fn: rShiftCall, minArgs: 2, maxArgs: 2},
		SubtractOp:     {fn: subtractCall, minArgs: 2, maxArgs: 2},
	}

	funcs = map[string]*callFunc{
		"abs":      {fn: absCall, minArgs: 1, maxArgs: 1},
		"coalesce": {fn: coalesceCall, minArgs: 1, maxArgs: math.MaxInt16, handleNull: true},
		"concat":   {fn: concatCall, minArgs: 1, maxArgs: math.MaxInt16},
		"is_null":  {fn: isNullCall, minArgs: 1, maxArgs: 1, handleNull: true},
		"is_not_null": {fn: isNotNullCall, minArgs: 1, maxArgs: 1,
			handleNull: true},
		"spark_partition_id": {fn: partitionIDCall, minArgs: 0, maxArgs: 0},
		"xxhash64": {fn: xxhash64Call, minArgs: 1, maxArgs: math.MaxInt16,
			handleNull: true},
	}
)

func init() {
	for op, cf := range opFuncs {
		cf.name = op.String()

		if op == NegateOp || op == NotOp {
			if cf.minArgs != 1 || cf.maxArgs != 1 {
				panic(fmt.Sprintf("opFuncs[%s]: minArgs != 1 || maxArgs != 1", op))
			}
		} else {
			if cf.minArgs != 2 || cf.maxArgs != 2 {
				panic(fmt.Sprintf("opFuncs[%s]: minArgs != 2 || maxArgs != 2", op))
			}
		}
	}

	for nam, cf := range funcs {
		cf.name = nam
		if cf.minArgs < 0 || cf.maxArgs < cf.minArgs {
			panic(fmt.Sprintf("funcs[%s]: minArgs < 0 || maxArgs < minArgs", nam))
		}
	}
}

func numFunc(a0 sql.Value, a1 sql.Value, ifn func(i0, i1 sql.Int64Value) sql.Value,
	ffn func(f0, f1 sql.Float64Value) sql.Value) (sql.Value, error) {

	switch a0 := a0.(type) {
	case sql.Float64Value:
		switch a1 := a1.(type) {
		case sql.Float64Value:
			return ffn(a0, a1), nil
		case sql.Int64Value:
			return ffn(a0, sql.Float64Value(a1)), nil
		}
	case sql.Int64Value:
		switch a1 := a1.(type) {
		case sql.Float64Value:
			return ffn(sql.Float64Value(a0), a1), nil
		case sql.Int64Value:
			return ifn(a0, a1), nil
		}
	default:
		return nil, want("number", a0)
	}
	return nil, want("number", a1)
}

func intFunc(a0 sql.Value, a1 sql.Value, ifn func(i0, i1 sql.Int64Value) sql.Value) (sql.Value,
	error) {

	if a0, ok := a0.(sql.Int64Value); ok {
		if a1, ok := a1.(sql.Int64Value); ok {
			return ifn(a0, a1), nil
		}
		return nil, want("integer", a1)
	}
	return nil, want("integer", a0)
}

func shiftFunc(a0 sql.Value, a1 sql.Value,
	ifn func(i0 sql.Int64Value, i1 uint64) sql.Value) (sql.Value, error) {

	if a0, ok := a0.(sql.Int64Value); ok {
		if a1, ok := a1.(sql.Int64Value); ok {
			if a1 < 0 {
				return nil, want("non-negative integer", a1)
			}
			return ifn(a0, uint64(a1)), nil
		}
		return nil, want("integer", a1)
	}
	return nil, want("integer", a0)
}

func compareFunc(args []sql.Value, test func(cmp int) bool) (sql.Value, error) {
	cmp, err := args[0].Compare(args[1])
	if err != nil {
		return nil, want(kindOf(args[0]), args[1])
	}
	return sql.BoolValue(test(cmp)), nil
}

func addCall(ectx *evaluate.Context, args []sql.Value) (sql.Value, error) {
	return numFunc(args[0], args[1],
		func(i0, i1 sql.Int64Value) sql.Value {
			return i0 + i1
		},
		func(f0, f1 sql.Float64Value) sql.Value {
			return f0 + f1
		})
}

func boolArg(v sql.Value) (sql.BoolValue, bool, error) {
	if v == nil {
		return false, true, nil
	}
	if b, ok := v.(sql.BoolValue); ok {
		return b, false, nil
	}
	return false, false, want("boolean", v)
}

// andCall follows SQL three-valued logic: false AND NULL is false.
func andCall(ectx *evaluate.Context, args []sql.Value) (sql.Value, error) {
	b0, null0, err := boolArg(args[0])
	if err != nil {
		return nil, err
	}
	b1, null1, err := boolArg(args[1])
	if err != nil {
		return nil, err
	}

	if (!null0 && !bool(b0)) || (!null1 && !bool(b1)) {
		return sql.BoolValue(false), nil
	} else if null0 || null1 {
		return nil, nil
	}
	return sql.BoolValue(true), nil
}

func binaryAndCall(ectx *evaluate.Context, args []sql.Value) (sql.Value, error) {
	return intFunc(args[0], args[1],
		func(i0, i1 sql.Int64Value) sql.Value {
			return i0 & i1
		})
}

func binaryOrCall(ectx *evaluate.Context, args []sql.Value) (sql.Value, error) {
	return intFunc(args[0], args[1],
		func(i0, i1 sql.Int64Value) sql.Value {
			return i0 | i1
		})
}

func concatCall(ectx *evaluate.Context, args []sql.Value) (sql.Value, error) {
	s := ""
	for _, a := range args {
		switch v := a.(type) {
		case sql.StringValue:
			s += string(v)
		case sql.BytesValue:
			s += string(v)
		case sql.BoolValue, sql.Float64Value, sql.Int64Value, sql.ListValue, sql.StructValue:
			s += v.String()
		default:
			panic(fmt.Sprintf("unexpected type for sql.Value: %T: %v", a, a))
		}
	}
	return sql.StringValue(s), nil
}

// divideCall always returns a float; dividing by zero returns NULL.
func divideCall(ectx *evaluate.Context, args []sql.Value) (sql.Value, error) {
	return numFunc(args[0], args[1],
		func(i0, i1 sql.Int64Value) sql.Value {
			if i1 == 0 {
				return nil
			}
			return sql.Float64Value(i0) / sql.Float64Value(i1)
		},
		func(f0, f1 sql.Float64Value) sql.Value {
			if f1 == 0 {
				return nil
			}
			return f0 / f1
		})
}

func equalCall(ectx *evaluate.Context, args []sql.Value) (sql.Value, error) {
	return compareFunc(args, func(cmp int) bool { return cmp == 0 })
}

func greaterEqualCall(ectx *evaluate.Context, args []sql.Value) (sql.Value, error) {
	return compareFunc(args, func(cmp int) bool { return cmp >= 0 })
}

func greaterThanCall(ectx *evaluate.Context, args []sql.Value) (sql.Value, error) {
	return compareFunc(args, func(cmp int) bool { return cmp > 0 })
}

func lessEqualCall(ectx *evaluate.Context, args []sql.Value) (sql.Value, error) {
	return compareFunc(args, func(cmp int) bool { return cmp <= 0 })
}

func lessThanCall(ectx *evaluate.Context, args []sql.Value) (sql.Value, error) {
	return compareFunc(args, func(cmp int) bool { return cmp < 0 })
}

func lShiftCall(ectx *evaluate.Context, args []sql.Value) (sql.Value, error) {
	return shiftFunc(args[0], args[1],
		func(i0 sql.Int64Value, i1 uint64) sql.Value {
			return i0 << i1
		})
}

func moduloCall(ectx *evaluate.Context, args []sql.Value) (sql.Value, error) {
	return numFunc(args[0], args[1],
		func(i0, i1 sql.Int64Value) sql.Value {
			if i1 == 0 {
				return nil
			}
			return i0 % i1
		},
		func(f0, f1 sql.Float64Value) sql.Value {
			if f1 == 0 {
				return nil
			}
			return sql.Float64Value(math.Mod(float64(f0), float64(f1)))
		})
}

func multiplyCall(ectx *evaluate.Context, args []sql.Value) (sql.Value, error) {
	return numFunc(args[0], args[1],
		func(i0, i1 sql.Int64Value) sql.Value {
			return i0 * i1
		},
		func(f0, f1 sql.Float64Value) sql.Value {
			return f0 * f1
		})
}

func negateCall(ectx *evaluate.Context, args []sql.Value) (sql.Value, error) {
	switch a0 := args[0].(type) {
	case sql.Float64Value:
		return -a0, nil
	case sql.Int64Value:
		if a0 == math.MinInt64 {
			return nil, &OverflowError{Op: "-", Value: a0}
		}
		return -a0, nil
	}
	return nil, want("number", args[0])
}

func notEqualCall(ectx *evaluate.Context, args []sql.Value) (sql.Value, error) {
	return compareFunc(args, func(cmp int) bool { return cmp != 0 })
}

func notCall(ectx *evaluate.Context, args []sql.Value) (sql.Value, error) {
	if a0, ok := args[0].(sql.BoolValue); ok {
		return sql.BoolValue(a0 == false), nil
	}
	return nil, want("boolean", args[0])
}

// orCall follows SQL three-valued logic: true OR NULL is true.
func orCall(ectx *evaluate.Context, args []sql.Value) (sql.Value, error) {
	b0, null0, err := boolArg(args[0])
	if err != nil {
		return nil, err
	}
	b1, null1, err := boolArg(args[1])
	if err != nil {
		return nil, err
	}

	if (!null0 && bool(b0)) || (!null1 && bool(b1)) {
		return sql.BoolValue(true), nil
	} else if null0 || null1 {
		return nil, nil
	}
	return sql.BoolValue(false), nil
}

func rShiftCall(ectx *evaluate.Context, args []sql.Value) (sql.Value, error) {
	return shiftFunc(args[0], args[1],
		func(i0 sql.Int64Value, i1 uint64) sql.Value {
			return i0 >> i1
		})
}

func subtractCall(ectx *evaluate.Context, args []sql.Value) (sql.Value, error) {
	return numFunc(args[0], args[1],
		func(i0, i1 sql.Int64Value) sql.Value {
			return i0 - i1
		},
		func(f0, f1 sql.Float64Value) sql.Value {
			return f0 - f1
		})
}

func absCall(ectx *evaluate.Context, args []sql.Value) (sql.Value, error) {
	switch a0 := args[0].(type) {
	case sql.Float64Value:
		if a0 < 0 {
			return -a0, nil
		}
		return a0, nil
	case sql.Int64Value:
		if a0 == math.MinInt64 {
			return nil, &OverflowError{Op: "abs", Value: a0}
		} else if a0 < 0 {
			return -a0, nil
		}
		return a0, nil
	}
	return nil, want("number", args[0])
}

func coalesceCall(ectx *evaluate.Context, args []sql.Value) (sql.Value, error) {
	for _, a := range args {
		if a != nil {
			return a, nil
		}
	}
	return nil, nil
}

func isNullCall(ectx *evaluate.Context, args []sql.Value) (sql.Value, error) {
	return sql.BoolValue(args[0] == nil), nil
}

func isNotNullCall(ectx *evaluate.Context, args []sql.Value) (sql.Value, error) {
	return sql.BoolValue(args[0] != nil), nil
}

func partitionIDCall(ectx *evaluate.Context, args []sql.Value) (sql.Value, error) {
	if ectx == nil {
		return nil, &NoContextError{"spark_partition_id()"}
	}
	return sql.Int64Value(ectx.Partition()), nil
}

// xxhash64Call hashes the canonical rendering of each argument, NULL included, so equal
// rows hash equally in every partition.
func xxhash64Call(ectx *evaluate.Context, args []sql.Value) (sql.Value, error) {
	d := xxhash.New()
	for _, a := range args {
		d.WriteString(kindOf(a))
		d.Write([]byte{0})
		d.WriteString(sql.Format(a))
		d.Write([]byte{0})
	}
	return sql.Int64Value(int64(d.Sum64())), nil
}
