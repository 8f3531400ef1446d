package expr_test

import (
	"errors"
	"reflect"
	"testing"

	. "github.com/leftmike/colexpr/expr"
	"github.com/leftmike/colexpr/sql"
)

func mustCall(t *testing.T, name string, args ...Expr) *Call {
	t.Helper()

	c, err := NewCall(name, args...)
	if err != nil {
		t.Fatalf("NewCall(%s) failed with %s", name, err)
	}
	return c
}

func TestExpr(t *testing.T) {
	cases := []struct {
		e Expr
		s string
	}{
		{
			e: &Binary{
				Op:    DivideOp,
				Left:  &Unary{Op: NegateOp, Expr: Int64Literal(123)},
				Right: Int64Literal(456),
			},
			s: "((- 123) / 456)",
		},
		{
			e: mustCall(t, "coalesce",
				&Unary{Op: NegateOp, Expr: Int64Literal(123)},
				Int64Literal(456),
				&Binary{Op: AddOp, Left: Ref("def"), Right: Int64Literal(789)}),
			s: "coalesce((- 123), 456, (def + 789))",
		},
		{
			e: &Binary{Op: GreaterThanOp, Left: Ref("age"), Right: Int64Literal(4)},
			s: "(age > 4)",
		},
		{
			e: &Binary{Op: EqualOp, Left: Ref("name"), Right: StringLiteral("Alice")},
			s: "(name = Alice)",
		},
		{
			e: &Unary{Op: NotOp, Expr: True()},
			s: "(NOT true)",
		},
		{e: Nil(), s: "NULL"},
		{e: Float64Literal(1.5), s: "1.5"},
		{e: BytesLiteral([]byte{0xab}), s: `'\xab'`},
		{
			e: &Alias{Name: "rand", Expr: &Binary{Op: MultiplyOp, Left: NewRandSeed(Uniform, 42),
				Right: Int64Literal(3)}},
			s: "rand",
		},
		{
			e: &Binary{Op: MultiplyOp, Left: NewRandSeed(Uniform, 42), Right: Int64Literal(3)},
			s: "(rand(42) * 3)",
		},
		{e: NewRand(Gaussian), s: "randn()"},
		{e: NewRand(UUID), s: "uuid()"},
		{e: mustCall(t, "spark_partition_id"), s: "spark_partition_id()"},
	}

	for _, c := range cases {
		s := c.e.String()
		if s != c.s {
			t.Errorf("String() got %q want %q", s, c.s)
		}
		if c.e.String() != s {
			t.Errorf("String() not stable: %q", s)
		}
	}
}

func TestNewCall(t *testing.T) {
	fail := []struct {
		name string
		args []Expr
	}{
		{name: "unknown"},
		{name: "abs"},
		{name: "abs", args: []Expr{Int64Literal(1), Int64Literal(2)}},
		{name: "spark_partition_id", args: []Expr{Int64Literal(1)}},
		{name: "coalesce"},
	}

	for _, f := range fail {
		c, err := NewCall(f.name, f.args...)
		if err == nil {
			t.Errorf("NewCall(%s, %v) did not fail, got %s", f.name, f.args, c)
		}
	}

	args := []Expr{Int64Literal(1), Int64Literal(2)}
	c := mustCall(t, "concat", args...)
	args[0] = Int64Literal(3)
	if s := c.String(); s != "concat(1, 2)" {
		t.Errorf("NewCall(concat) shares args with caller: %s", s)
	}
}

func TestReferences(t *testing.T) {
	e := NewCase(
		[]When{
			{
				Cond:  &Binary{Op: GreaterThanOp, Left: Ref("age"), Right: Int64Literal(4)},
				Value: Ref("name"),
			},
			{
				Cond:  &Binary{Op: LessThanOp, Left: Ref("age"), Right: Ref("limit")},
				Value: Int64Literal(1),
			},
		},
		NewStruct(Ref("zip")))

	refs := References(e)
	want := []string{"age", "name", "limit", "zip"}
	if !reflect.DeepEqual(refs, want) {
		t.Errorf("References(%s) got %v want %v", e, refs, want)
	}

	cnt := 0
	Walk(e,
		func(e Expr) bool {
			cnt += 1
			return cnt < 3
		})
	if cnt != 3 {
		t.Errorf("Walk() did not stop early: visited %d", cnt)
	}
}

func TestLiteral(t *testing.T) {
	cases := []struct {
		v   interface{}
		val sql.Value
	}{
		{nil, nil},
		{true, sql.BoolValue(true)},
		{-1, sql.Int64Value(-1)},
		{int8(-8), sql.Int64Value(-8)},
		{int16(16), sql.Int64Value(16)},
		{int32(32), sql.Int64Value(32)},
		{int64(64), sql.Int64Value(64)},
		{uint(1), sql.Int64Value(1)},
		{uint8(8), sql.Int64Value(8)},
		{uint16(16), sql.Int64Value(16)},
		{uint32(32), sql.Int64Value(32)},
		{uint64(64), sql.Int64Value(64)},
		{float32(1.5), sql.Float64Value(1.5)},
		{2.5, sql.Float64Value(2.5)},
		{"abc", sql.StringValue("abc")},
		{[]byte("abc"), sql.BytesValue("abc")},
		{sql.Int64Value(7), sql.Int64Value(7)},
		{[]interface{}{1, "a", nil}, sql.ListValue{sql.Int64Value(1), sql.StringValue("a"), nil}},
	}

	for _, c := range cases {
		l, err := NewLiteral(c.v)
		if err != nil {
			t.Errorf("NewLiteral(%#v) failed with %s", c.v, err)
			continue
		}
		if !reflect.DeepEqual(l.Value, c.val) {
			t.Errorf("NewLiteral(%#v) got %#v want %#v", c.v, l.Value, c.val)
		}
		v, err := MakeLiteral(c.v).Eval(nil, nil)
		if err != nil {
			t.Errorf("MakeLiteral(%#v).Eval() failed with %s", c.v, err)
		} else if !reflect.DeepEqual(v, c.val) {
			t.Errorf("MakeLiteral(%#v).Eval() got %#v want %#v", c.v, v, c.val)
		}
	}

	fail := []interface{}{
		struct{}{},
		map[string]int{},
		uint64(1 << 63),
		[]interface{}{1, complex(1, 2)},
		&struct{ a int }{},
	}

	for _, f := range fail {
		l, err := NewLiteral(f)
		if err == nil {
			t.Errorf("NewLiteral(%#v) did not fail, got %s", f, l)
		}

		e := MakeLiteral(f)
		_, err = e.Eval(nil, nil)
		var ulte *UnsupportedLiteralTypeError
		if !errors.As(err, &ulte) {
			t.Errorf("MakeLiteral(%#v).Eval() got %v want UnsupportedLiteralTypeError", f, err)
		}
	}
}
