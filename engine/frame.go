package engine

import (
	"fmt"

	"github.com/leftmike/colexpr/sql"
)

// Frame is a table of rows divided into partitions. Rows keep their order within a
// partition.
type Frame struct {
	names      []string
	partitions [][]sql.Row
}

func NewFrame(names []string, partitions [][][]sql.Value) (*Frame, error) {
	f := &Frame{
		names:      append([]string(nil), names...),
		partitions: make([][]sql.Row, len(partitions)),
	}
	for p, vals := range partitions {
		rows := make([]sql.Row, len(vals))
		for r, row := range vals {
			if len(row) != len(names) {
				return nil, fmt.Errorf("engine: partition %d row %d: want %d values got %d", p,
					r, len(names), len(row))
			}
			rows[r] = sql.MakeRow(names, row)
		}
		f.partitions[p] = rows
	}
	return f, nil
}

func (f *Frame) Columns() []string {
	return f.names
}

func (f *Frame) NumPartitions() int {
	return len(f.partitions)
}

func (f *Frame) Partition(p int) []sql.Row {
	return f.partitions[p]
}

// Rows returns every row, in partition order.
func (f *Frame) Rows() []sql.Row {
	var rows []sql.Row
	for _, part := range f.partitions {
		rows = append(rows, part...)
	}
	return rows
}
