package expr_test

import (
	"errors"
	"reflect"
	"regexp"
	"testing"

	"github.com/leftmike/colexpr/evaluate"
	"github.com/leftmike/colexpr/expr"
	"github.com/leftmike/colexpr/sql"
)

func evalPartition(t *testing.T, e expr.Expr, ectx *evaluate.Context, n int) []sql.Value {
	t.Helper()

	var vals []sql.Value
	for i := 0; i < n; i++ {
		row := sql.MakeRow([]string{"id"}, []sql.Value{sql.Int64Value(i)})
		val, err := e.Eval(row, ectx)
		if err != nil {
			t.Fatalf("Eval(%s) failed with %s", e, err)
		}
		vals = append(vals, val)
	}
	return vals
}

func TestRandDeterminism(t *testing.T) {
	cases := []expr.Expr{
		expr.NewRandSeed(expr.Uniform, 42),
		expr.NewRand(expr.Uniform),
		expr.NewRandSeed(expr.Gaussian, -7),
		expr.NewRand(expr.UUID),
		binary(expr.MultiplyOp, expr.NewRandSeed(expr.Uniform, 42), expr.Int64Literal(3)),
	}

	for _, e := range cases {
		for p := 0; p < 3; p++ {
			v1 := evalPartition(t, e, evaluate.NewContext(p, 11), 4)
			v2 := evalPartition(t, e, evaluate.NewContext(p, 11), 4)
			if !reflect.DeepEqual(v1, v2) {
				t.Errorf("Eval(%s) in partition %d not repeatable: %v and %v", e, p, v1, v2)
			}

			for i := 1; i < len(v1); i++ {
				if reflect.DeepEqual(v1[i], v1[0]) {
					t.Errorf("Eval(%s) in partition %d repeated a draw: %v", e, p, v1)
				}
			}
		}

		v0 := evalPartition(t, e, evaluate.NewContext(0, 11), 4)
		v1 := evalPartition(t, e, evaluate.NewContext(1, 11), 4)
		if reflect.DeepEqual(v0, v1) {
			t.Errorf("Eval(%s) same in partitions 0 and 1: %v", e, v0)
		}
	}
}

func TestRandValues(t *testing.T) {
	vals := evalPartition(t, expr.NewRandSeed(expr.Uniform, 42), evaluate.NewContext(0, 0), 100)
	for _, v := range vals {
		f, ok := v.(sql.Float64Value)
		if !ok {
			t.Fatalf("rand(42) got %v want float", v)
		}
		if f < 0 || f >= 1 {
			t.Errorf("rand(42) got %v want [0, 1)", f)
		}
	}

	uuidRE := regexp.MustCompile(
		`^[0-9a-f]{8}-[0-9a-f]{4}-4[0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`)
	vals = evalPartition(t, expr.NewRand(expr.UUID), evaluate.NewContext(0, 0), 10)
	for _, v := range vals {
		s, ok := v.(sql.StringValue)
		if !ok || !uuidRE.MatchString(string(s)) {
			t.Errorf("uuid() got %v want version 4 uuid", v)
		}
	}
}

func TestRandSeed(t *testing.T) {
	// An unseeded rand uses the execution seed of the context.
	v1 := evalPartition(t, expr.NewRand(expr.Uniform), evaluate.NewContext(2, 42), 3)
	v2 := evalPartition(t, expr.NewRandSeed(expr.Uniform, 42), evaluate.NewContext(2, 0), 3)
	if !reflect.DeepEqual(v1, v2) {
		t.Errorf("rand() with seed 42 in context got %v want %v", v1, v2)
	}

	v3 := evalPartition(t, expr.NewRandSeed(expr.Uniform, 43), evaluate.NewContext(2, 0), 3)
	if reflect.DeepEqual(v2, v3) {
		t.Errorf("rand(42) and rand(43) got same values: %v", v2)
	}
}

func TestRandInstances(t *testing.T) {
	// Each expression instance draws from its own stream, even with the same seed.
	r1 := expr.NewRandSeed(expr.Uniform, 42)
	r2 := expr.NewRandSeed(expr.Uniform, 42)
	e := &expr.Struct{Names: []string{"r1", "r2"}, Exprs: []expr.Expr{r1, r2}}

	vals := evalPartition(t, e, evaluate.NewContext(0, 0), 3)
	for _, v := range vals {
		sv := v.(sql.StructValue)
		if sv[0].Value != sv[1].Value {
			t.Errorf("Eval(%s) got %s want equal fields", e, sv)
		}
	}

	// The same instance used twice in a tree draws twice per row.
	sum := binary(expr.AddOp, r1, r1)
	vals = evalPartition(t, sum, evaluate.NewContext(0, 0), 1)
	ref := evalPartition(t, r1, evaluate.NewContext(0, 0), 2)
	want := ref[0].(sql.Float64Value) + ref[1].(sql.Float64Value)
	if vals[0] != want {
		t.Errorf("Eval(%s) got %v want %v", sum, vals[0], want)
	}
}

func TestRandNoContext(t *testing.T) {
	_, err := expr.NewRand(expr.Uniform).Eval(nil, nil)
	var nce *expr.NoContextError
	if !errors.As(err, &nce) {
		t.Errorf("Eval(rand()) without context got %v want NoContextError", err)
	}
}
