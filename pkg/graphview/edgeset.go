package graphview

import (
	"context"

	"github.com/rowgraph/rowgraph/pkg/observability"
	"github.com/rowgraph/rowgraph/pkg/rowstore"
)

// scanTickInterval is how many rows a full pass visits between progress
// hook emissions.
const scanTickInterval = 8192

// EdgeSet is a lazy view over all edges of the graph, one per backing
// row in row order. It materializes nothing: each iteration constructs
// edges on the fly and a fresh iteration always restarts at row 0.
type EdgeSet struct {
	view *View
}

// Len returns the number of edges, which equals the dataset's row count.
func (s *EdgeSet) Len() int64 {
	return s.view.store.RowCount()
}

// Each calls fn for every edge in row order, exactly once per row.
//
// The context is checked at every row, so a host can abort a long pass;
// progress hooks fire at coarse intervals. Unlike the indexed queries,
// errors here surface: a row that cannot be read, a missing weight
// configuration, or an error returned by fn stops the iteration and is
// returned to the caller. Consumers that aggregate over the whole edge
// set rely on seeing either every row or an error.
func (s *EdgeSet) Each(ctx context.Context, fn func(Edge) error) error {
	total := s.Len()
	observability.Scan().OnScanStart(total)
	for row := rowstore.RowID(0); row < total; row++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		e, err := s.view.EdgeAt(row)
		if err != nil {
			return err
		}
		if err := fn(e); err != nil {
			return err
		}
		if row%scanTickInterval == scanTickInterval-1 {
			observability.Scan().OnScanProgress(row + 1)
		}
	}
	observability.Scan().OnScanComplete(total)
	return nil
}
