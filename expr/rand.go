package expr

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/leftmike/colexpr/evaluate"
	"github.com/leftmike/colexpr/sql"
)

type RandKind int

const (
	Uniform RandKind = iota
	Gaussian
	UUID
)

var randNames = [...]string{
	Uniform:  "rand",
	Gaussian: "randn",
	UUID:     "uuid",
}

// Rand draws a pseudo-random value for each row from a generator owned by the evaluation
// context. The generator is seeded from the seed and the partition, so evaluating a
// partition again with a new context returns the same values in the same row order.
// Without a seed, the execution seed of the context is used.
type Rand struct {
	kind    RandKind
	seed    int64
	hasSeed bool
}

func NewRand(kind RandKind) *Rand {
	return &Rand{kind: kind}
}

func NewRandSeed(kind RandKind, seed int64) *Rand {
	return &Rand{kind: kind, seed: seed, hasSeed: true}
}

func (r *Rand) String() string {
	if !r.hasSeed {
		return fmt.Sprintf("%s()", randNames[r.kind])
	}
	return fmt.Sprintf("%s(%d)", randNames[r.kind], r.seed)
}

func (r *Rand) Eval(row sql.Row, ectx *evaluate.Context) (sql.Value, error) {
	if ectx == nil {
		return nil, &NoContextError{r.String()}
	}

	seed := ectx.Seed()
	if r.hasSeed {
		seed = r.seed
	}
	rng := ectx.Rand(r, seed)

	switch r.kind {
	case Uniform:
		return sql.Float64Value(rng.Float64()), nil
	case Gaussian:
		return sql.Float64Value(rng.NormFloat64()), nil
	case UUID:
		u, err := uuid.NewRandomFromReader(rng)
		if err != nil {
			return nil, err
		}
		return sql.StringValue(u.String()), nil
	default:
		panic(fmt.Sprintf("unexpected rand kind: %d", r.kind))
	}
}

func (_ *Rand) Children() []Expr {
	return nil
}
