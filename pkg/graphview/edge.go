package graphview

import (
	"fmt"

	"github.com/rowgraph/rowgraph/pkg/rowstore"
)

// VertexID identifies a graph vertex. Vertex IDs are drawn directly from
// the start_node and end_node column values of the backing dataset.
type VertexID = int64

// Edge is one graph edge materialized from a backing row.
//
// Edges are immutable values. Two edges are the same edge iff Source,
// Target, and Row are all equal; Weight is derived from the row and is
// not part of edge identity. Edges are constructed on demand by a View
// and never cached beyond the call that produced them.
type Edge struct {
	// Source is the start vertex (start_node column value).
	Source VertexID

	// Target is the end vertex (end_node column value).
	Target VertexID

	// Weight is the configured weight column value at Row.
	Weight float64

	// Row is the backing row that produced this edge. It uniquely
	// identifies the edge within its dataset.
	Row rowstore.RowID
}

// SameEdge reports whether e and other identify the same backing edge.
// Weight is derived from the row and does not participate.
func (e Edge) SameEdge(other Edge) bool {
	return e.Source == other.Source && e.Target == other.Target && e.Row == other.Row
}

// String formats the edge for logs and CLI output.
func (e Edge) String() string {
	return fmt.Sprintf("%d->%d (w=%g, row %d)", e.Source, e.Target, e.Weight, e.Row)
}
