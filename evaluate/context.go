package evaluate

import (
	"fmt"

	"golang.org/x/exp/rand"
)

// Context is the per-partition state passed to every expression evaluation in one
// attempt at evaluating a partition. A retry must use a new Context built from the same
// partition and seed. A Context is owned by a single goroutine.
type Context struct {
	partition int
	seed      int64
	rands     map[randKey]*rand.Rand
}

type randKey struct {
	owner interface{}
	seed  int64
}

func NewContext(partition int, seed int64) *Context {
	return &Context{
		partition: partition,
		seed:      seed,
	}
}

func (ectx *Context) Partition() int {
	return ectx.partition
}

// Seed is the execution seed; generator-backed expressions without a seed of their own
// use it.
func (ectx *Context) Seed() int64 {
	return ectx.seed
}

func (ectx *Context) String() string {
	return fmt.Sprintf("partition-%d", ectx.partition)
}

// Rand returns the generator for owner and seed in this partition, creating it on first
// use. Successive calls return the same generator, so draws continue one stream; owner
// must be comparable and is usually the expression itself.
func (ectx *Context) Rand(owner interface{}, seed int64) *rand.Rand {
	key := randKey{owner, seed}
	if r, ok := ectx.rands[key]; ok {
		return r
	}

	if ectx.rands == nil {
		ectx.rands = map[randKey]*rand.Rand{}
	}
	r := rand.New(rand.NewSource(PartitionSeed(seed, ectx.partition)))
	ectx.rands[key] = r
	return r
}

// PartitionSeed derives the generator seed for a partition from a user or execution seed.
func PartitionSeed(seed int64, partition int) uint64 {
	return uint64(seed) + uint64(partition)
}
