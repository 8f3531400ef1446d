package column

import (
	"github.com/leftmike/colexpr/expr"
)

func call(name string, args ...expr.Expr) Column {
	c, err := expr.NewCall(name, args...)
	if err != nil {
		panic(err)
	}
	return Column{c}
}

func literals(v interface{}, vs []interface{}) []expr.Expr {
	args := make([]expr.Expr, 0, len(vs)+1)
	args = append(args, literal(v))
	for _, v := range vs {
		args = append(args, literal(v))
	}
	return args
}

// Rand returns a column of independent uniform samples from [0, 1). Without a seed, the
// execution seed is used.
func Rand() Column {
	return Column{expr.NewRand(expr.Uniform)}
}

func RandSeed(seed int64) Column {
	return Column{expr.NewRandSeed(expr.Uniform, seed)}
}

// Randn returns a column of independent samples from the standard normal distribution.
func Randn() Column {
	return Column{expr.NewRand(expr.Gaussian)}
}

func RandnSeed(seed int64) Column {
	return Column{expr.NewRandSeed(expr.Gaussian, seed)}
}

// UUID returns a column of version 4 UUIDs drawn from the per partition generator, so they
// are repeatable for the same execution seed.
func UUID() Column {
	return Column{expr.NewRand(expr.UUID)}
}

// Struct returns a column which combines cols into a single struct value. A string
// argument is the name of a column; an aliased column supplies the field name.
func Struct(cols ...interface{}) Column {
	exprs := make([]expr.Expr, len(cols))
	for i, c := range cols {
		exprs[i] = parse(c)
	}
	return Column{expr.NewStruct(exprs...)}
}

func Abs(v interface{}) Column {
	return call("abs", literal(v))
}

// Coalesce returns the first argument which is not NULL.
func Coalesce(v interface{}, vs ...interface{}) Column {
	return call("coalesce", literals(v, vs)...)
}

// Concat returns the concatenation of the arguments, or NULL if any of them is NULL.
func Concat(v interface{}, vs ...interface{}) Column {
	return call("concat", literals(v, vs)...)
}

func IsNull(v interface{}) Column {
	return call("is_null", literal(v))
}

func XXHash64(v interface{}, vs ...interface{}) Column {
	return call("xxhash64", literals(v, vs)...)
}

// PartitionID returns the index of the partition being evaluated.
func PartitionID() Column {
	return call("spark_partition_id")
}
