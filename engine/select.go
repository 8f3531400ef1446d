package engine

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/leftmike/colexpr/column"
	"github.com/leftmike/colexpr/evaluate"
	"github.com/leftmike/colexpr/expr"
	"github.com/leftmike/colexpr/sql"
)

type Options struct {
	// Parallelism is the maximum number of partitions evaluated at once; zero means no
	// limit.
	Parallelism int
	// Retries is the number of times a failed partition is evaluated again.
	Retries int
	// Seed is the execution seed used by random expressions without their own seed.
	Seed int64
}

var (
	rowsEvaluated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "colexpr",
		Name:      "rows_evaluated_total",
		Help:      "Number of rows evaluated by successful partition attempts.",
	})
	partitionAttempts = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "colexpr",
		Name:      "partition_attempts_total",
		Help:      "Number of partition attempts started.",
	})
	partitionRetries = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "colexpr",
		Name:      "partition_retries_total",
		Help:      "Number of failed partition attempts which were retried.",
	})
)

// Select evaluates cols against every row of f and returns a frame with one column per
// col, named by col.Name, and the same partitioning as f. Partitions are evaluated in
// parallel; a partition which fails is evaluated again from the start with a new
// evaluation context, so its output does not depend on how many attempts it took.
func Select(ctx context.Context, f *Frame, opts Options, cols ...column.Column) (*Frame,
	error) {

	exprs := column.Exprs(cols...)
	names := make([]string, len(cols))
	for i, c := range cols {
		names[i] = c.Name()
	}

	out := &Frame{
		names:      names,
		partitions: make([][]sql.Row, len(f.partitions)),
	}
	g, gctx := errgroup.WithContext(ctx)
	if opts.Parallelism > 0 {
		g.SetLimit(opts.Parallelism)
	}
	for p := range f.partitions {
		p := p
		g.Go(func() error {
			rows, err := selectPartition(gctx, p, f.partitions[p], opts, names, exprs)
			if err != nil {
				return err
			}
			out.partitions[p] = rows
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func selectPartition(ctx context.Context, p int, rows []sql.Row, opts Options,
	names []string, exprs []expr.Expr) ([]sql.Row, error) {

	for attempt := 1; ; attempt++ {
		partitionAttempts.Inc()
		logger := log.WithFields(log.Fields{"partition": p, "attempt": attempt})
		logger.Debug("engine: evaluating partition")

		out, err := evalPartition(ctx, evaluate.NewContext(p, opts.Seed), rows, names, exprs)
		if err == nil {
			rowsEvaluated.Add(float64(len(out)))
			logger.WithField("rows", len(out)).Debug("engine: evaluated partition")
			return out, nil
		}
		if attempt > opts.Retries || ctx.Err() != nil {
			return nil, fmt.Errorf("engine: partition %d: %w", p, err)
		}

		partitionRetries.Inc()
		logger.WithError(err).Warn("engine: retrying partition")
	}
}

func evalPartition(ctx context.Context, ectx *evaluate.Context, rows []sql.Row,
	names []string, exprs []expr.Expr) ([]sql.Row, error) {

	out := make([]sql.Row, 0, len(rows))
	for _, row := range rows {
		err := ctx.Err()
		if err != nil {
			return nil, err
		}

		vals := make([]sql.Value, len(exprs))
		for i, e := range exprs {
			vals[i], err = e.Eval(row, ectx)
			if err != nil {
				return nil, err
			}
		}
		out = append(out, sql.MakeRow(names, vals))
	}
	return out, nil
}
