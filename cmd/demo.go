package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/leftmike/colexpr/column"
	"github.com/leftmike/colexpr/engine"
	"github.com/leftmike/colexpr/sql"
)

var (
	demoCmd = &cobra.Command{
		Use:   "demo",
		Short: "Evaluate sample column expressions over a small partitioned table",
		Args:  cobra.NoArgs,
		RunE:  demoRun,
	}

	partitions  = 2
	seed        int64
	parallelism = 0
	retries     = 0
)

func init() {
	fs := demoCmd.Flags()

	fs.IntVar(&partitions, "partitions", partitions, "number of `partitions` for the table")
	cfgVars["partitions"] = fs.Lookup("partitions")

	fs.Int64Var(&seed, "seed", seed, "execution `seed` for random expressions")
	cfgVars["seed"] = fs.Lookup("seed")

	fs.IntVar(&parallelism, "parallelism", parallelism,
		"maximum partitions evaluated at once; 0 is no limit")
	cfgVars["parallelism"] = fs.Lookup("parallelism")

	fs.IntVar(&retries, "retries", retries, "number of times to retry a failed partition")
	cfgVars["retries"] = fs.Lookup("retries")

	colexprCmd.AddCommand(demoCmd)
}

type query struct {
	title string
	cols  []column.Column
}

func demoQueries() []query {
	age := column.Col("age")
	name := column.Col("name")

	return []query{
		{
			title: "when(age = 2, 3).otherwise(4)",
			cols:  []column.Column{name, column.When(age.Eq(2), 3).Otherwise(4).Alias("age")},
		},
		{
			title: "spark_partition_id()",
			cols:  []column.Column{name, column.PartitionID()},
		},
		{
			title: "when(age > 4, 1).when(age < 3, -1).otherwise(0)",
			cols: []column.Column{
				name,
				column.When(age.Gt(4), 1).When(age.Lt(3), -1).Otherwise(0),
			},
		},
		{
			title: "when(age = 2, age + 1)",
			cols:  []column.Column{name, column.When(age.Eq(2), age.Add(1)).Column()},
		},
		{
			title: "struct(age, name)",
			cols:  []column.Column{column.Struct("age", name)},
		},
		{
			title: "concat, coalesce and xxhash64",
			cols: []column.Column{
				column.Concat(name, " is ", age),
				column.Coalesce(age, -1).Alias("age"),
				column.XXHash64(name, age),
			},
		},
		{
			title: "rand(42) * 3, randn() and uuid()",
			cols: []column.Column{
				name,
				column.RandSeed(42).Mul(3).Alias("rand"),
				column.Randn(),
				column.UUID(),
			},
		},
	}
}

// people returns the sample table, its rows split into n partitions of nearly equal size.
func people(n int) (*engine.Frame, error) {
	if n < 1 {
		return nil, fmt.Errorf("colexpr: partitions must be at least 1: %d", n)
	}

	rows := [][]sql.Value{
		{sql.Int64Value(2), sql.StringValue("Alice")},
		{sql.Int64Value(5), sql.StringValue("Bob")},
		{sql.Int64Value(4), sql.StringValue("Carol")},
		{nil, sql.StringValue("Dan")},
	}
	parts := make([][][]sql.Value, n)
	for p := range parts {
		parts[p] = rows[p*len(rows)/n : (p+1)*len(rows)/n]
	}
	return engine.NewFrame([]string{"age", "name"}, parts)
}

func demo(ctx context.Context, w io.Writer, queries []query, n int,
	opts engine.Options) error {

	f, err := people(n)
	if err != nil {
		return err
	}

	for _, q := range queries {
		log.WithField("query", q.title).Debug("demo: select")

		out, err := engine.Select(ctx, f, opts, q.cols...)
		if err != nil {
			return fmt.Errorf("%s: %w", q.title, err)
		}

		fmt.Fprintln(w, q.title)
		render(w, out)
		fmt.Fprintln(w)
	}
	return nil
}

func render(w io.Writer, f *engine.Frame) {
	tw := tablewriter.NewWriter(w)
	tw.SetAutoFormatHeaders(false)
	tw.SetAutoWrapText(false)
	tw.SetHeader(f.Columns())

	for _, r := range f.Rows() {
		row := make([]string, len(r))
		for cdx, v := range r.Values() {
			if s, ok := v.(sql.StringValue); ok {
				row[cdx] = string(s)
			} else {
				row[cdx] = sql.Format(v)
			}
		}
		tw.Append(row)
	}
	tw.Render()
	fmt.Fprintf(w, "(%d rows)\n", tw.NumLines())
}

func demoRun(cmd *cobra.Command, args []string) error {
	opts := engine.Options{
		Parallelism: parallelism,
		Retries:     retries,
		Seed:        seed,
	}
	return demo(context.Background(), cmd.OutOrStdout(), demoQueries(), partitions, opts)
}
