// Package graphview presents a read-only graph over an indexed row
// store. Every adjacency, degree, and edge-existence query is answered
// with point lookups against the store's indexes; the only full-dataset
// passes are the one-time vertex-set materialization and the lazy
// edge-set iteration, both of which report progress through
// observability hooks and honor context cancellation at row granularity.
//
// # Error policy
//
// The View distinguishes three failure classes and treats each
// differently, on purpose:
//
//   - Schema errors (start_node or end_node missing) abort construction.
//   - Configuration errors (weight column not set before a
//     weight-dependent read) fail the calling operation with
//     ErrWeightNotSet.
//   - Storage and index errors inside read queries are collapsed to
//     empty results (empty slice, zero degree, "no edge") after a debug
//     log. A caller cannot distinguish a transient storage failure from
//     genuinely absent data; this fail-soft policy is part of the
//     documented contract of each query method.
//
// Mutation methods always fail with ErrReadOnly; the view never writes
// to its store.
package graphview

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/rowgraph/rowgraph/pkg/observability"
	"github.com/rowgraph/rowgraph/pkg/rowstore"
)

// Sentinel errors for view construction and queries.
var (
	// ErrMissingColumn indicates a required column is absent from the
	// dataset schema. Fatal at construction time.
	ErrMissingColumn = errors.New("graphview: required column missing")

	// ErrWeightNotSet indicates a weight-dependent operation ran before
	// the weight column was configured. Fatal to that call only.
	ErrWeightNotSet = errors.New("graphview: weight column not configured")

	// ErrReadOnly is returned by every mutation method. The view is a
	// strictly read-only projection of the dataset.
	ErrReadOnly = errors.New("graphview: view is read-only")

	// ErrNoGeometry indicates the dataset has no geometry-kinded column.
	ErrNoGeometry = errors.New("graphview: dataset has no geometry column")
)

// View exposes graph semantics over a row store using indexed lookups.
//
// A View borrows its store: it never owns or mutates it, and the host
// controls the store's lifetime. The memoized vertex set is the only
// state a View accumulates. Views are intended for single-threaded use;
// hosts that share one View across goroutines must synchronize
// externally or use one View per goroutine.
type View struct {
	store rowstore.Store
	log   *log.Logger

	startCol  int
	endCol    int
	weightCol int
	geomCol   int

	indexErr error

	vertexOnce sync.Once
	vertices   map[VertexID]struct{}
}

// Option configures a View during construction.
type Option func(*View) error

// WithLogger sets the logger used for fail-soft degradation notices.
// Without it the View stays silent.
func WithLogger(l *log.Logger) Option {
	return func(v *View) error {
		if l != nil {
			v.log = l
		}
		return nil
	}
}

// WithWeightColumn resolves and sets the weight column at construction
// time, equivalent to calling SetWeightColumn afterwards.
func WithWeightColumn(name string) Option {
	return func(v *View) error { return v.SetWeightColumn(name) }
}

// New builds a View over store. It resolves the start_node and end_node
// columns (failing with ErrMissingColumn if either is absent), locates
// an optional geometry column by kind, and ensures the three indexes the
// view queries: (start_node, end_node), (start_node), and (end_node).
//
// Index creation failure does not abort construction: it is logged and
// reported through observability hooks, and subsequent queries degrade
// to empty results. The weight column is not required here; configure it
// with WithWeightColumn or SetWeightColumn before any weight-dependent
// operation.
func New(store rowstore.Store, opts ...Option) (*View, error) {
	v := &View{
		store:     store,
		log:       log.New(io.Discard),
		weightCol: -1,
	}

	v.startCol = rowstore.ColumnIndex(store, StartNodeColumn)
	if v.startCol < 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, StartNodeColumn)
	}
	v.endCol = rowstore.ColumnIndex(store, EndNodeColumn)
	if v.endCol < 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, EndNodeColumn)
	}
	v.geomCol = rowstore.GeometryColumn(store)

	for _, opt := range opts {
		if err := opt(v); err != nil {
			return nil, err
		}
	}

	v.ensureIndexes()
	return v, nil
}

// ensureIndexes requests the three indexes the view depends on. Ensure
// semantics come from the store: existing indexes are left alone.
// Failures degrade queries instead of failing construction.
func (v *View) ensureIndexes() {
	for _, cols := range [][]int{
		{v.startCol, v.endCol},
		{v.startCol},
		{v.endCol},
	} {
		names := v.columnNames(cols)
		observability.Index().OnIndexBuildStart(names)
		err := v.store.EnsureIndexed(cols...)
		observability.Index().OnIndexBuildComplete(names, err)
		if err != nil {
			if v.indexErr == nil {
				v.indexErr = err
			}
			v.log.Warn("index unavailable, queries will degrade to empty results",
				"columns", names, "err", err)
		}
	}
}

// IndexError reports whether index creation degraded during construction.
// A non-nil result means index-backed queries return empty results.
// Callers that need hard failures instead of the fail-soft defaults
// should check this after New.
func (v *View) IndexError() error { return v.indexErr }

func (v *View) columnNames(cols []int) []string {
	schema := v.store.Columns()
	names := make([]string, len(cols))
	for i, c := range cols {
		names[i] = schema[c].Name
	}
	return names
}

// SetWeightColumn resolves the named column as the edge weight source.
// It must be called (or WithWeightColumn used) before any operation that
// materializes edges. Returns ErrMissingColumn if the column is absent.
func (v *View) SetWeightColumn(name string) error {
	col := rowstore.ColumnIndex(v.store, name)
	if col < 0 {
		return fmt.Errorf("%w: %s", ErrMissingColumn, name)
	}
	v.weightCol = col
	return nil
}

// WeightColumnSet reports whether a weight column has been configured.
func (v *View) WeightColumnSet() bool { return v.weightCol >= 0 }

// Store returns the underlying row store.
func (v *View) Store() rowstore.Store { return v.store }

func (v *View) requireWeight() error {
	if v.weightCol < 0 {
		return ErrWeightNotSet
	}
	return nil
}

// =============================================================================
// Row rehydration
// =============================================================================

func (v *View) sourceAt(row rowstore.RowID) (VertexID, error) {
	return v.store.GetInt(row, v.startCol)
}

func (v *View) targetAt(row rowstore.RowID) (VertexID, error) {
	return v.store.GetInt(row, v.endCol)
}

func (v *View) weightAt(row rowstore.RowID) (float64, error) {
	return v.store.GetFloat(row, v.weightCol)
}

// EdgeAt constructs the edge at the given row by direct random access,
// bypassing every index. Storage errors surface to the caller: this
// method feeds the statistics pass, which must see every row or fail.
// Requires the weight column to be configured.
func (v *View) EdgeAt(row rowstore.RowID) (Edge, error) {
	if err := v.requireWeight(); err != nil {
		return Edge{}, err
	}
	source, err := v.sourceAt(row)
	if err != nil {
		return Edge{}, fmt.Errorf("edge at row %d: %w", row, err)
	}
	target, err := v.targetAt(row)
	if err != nil {
		return Edge{}, fmt.Errorf("edge at row %d: %w", row, err)
	}
	weight, err := v.weightAt(row)
	if err != nil {
		return Edge{}, fmt.Errorf("edge at row %d: %w", row, err)
	}
	return Edge{Source: source, Target: target, Weight: weight, Row: row}, nil
}

// Geometry reads the geometry value at the given row. Geometry is
// read-through only: no graph operation interprets it. Returns
// ErrNoGeometry when the dataset has no geometry column.
func (v *View) Geometry(row rowstore.RowID) (rowstore.Geometry, error) {
	if v.geomCol < 0 {
		return "", ErrNoGeometry
	}
	return v.store.GetGeometry(row, v.geomCol)
}

// =============================================================================
// Indexed queries
// =============================================================================

// failSoft logs a degraded query and stands in for the swallowed error.
func (v *View) failSoft(op string, err error) {
	v.log.Debug("query degraded to empty result", "op", op, "err", err)
}

// EdgesBetween returns every edge from u to v via the composite
// (start_node, end_node) index. Storage and index failures collapse to
// an empty result; only ErrWeightNotSet is reported as an error.
func (v *View) EdgesBetween(u, w VertexID) ([]Edge, error) {
	if err := v.requireWeight(); err != nil {
		return nil, err
	}
	rows, err := v.store.QueryIndex2(v.startCol, v.endCol, u, w)
	if err != nil {
		v.failSoft("EdgesBetween", err)
		return nil, nil
	}
	edges := make([]Edge, 0, len(rows))
	for _, row := range rows {
		weight, err := v.weightAt(row)
		if err != nil {
			v.failSoft("EdgesBetween", err)
			return nil, nil
		}
		edges = append(edges, Edge{Source: u, Target: w, Weight: weight, Row: row})
	}
	return edges, nil
}

// AnyEdgeBetween returns the first edge from u to v, if one exists.
// Same fail-soft policy as EdgesBetween: a storage failure reads as
// "no edge".
func (v *View) AnyEdgeBetween(u, w VertexID) (Edge, bool, error) {
	if err := v.requireWeight(); err != nil {
		return Edge{}, false, err
	}
	rows, err := v.store.QueryIndex2(v.startCol, v.endCol, u, w)
	if err != nil {
		v.failSoft("AnyEdgeBetween", err)
		return Edge{}, false, nil
	}
	if len(rows) == 0 {
		return Edge{}, false, nil
	}
	weight, err := v.weightAt(rows[0])
	if err != nil {
		v.failSoft("AnyEdgeBetween", err)
		return Edge{}, false, nil
	}
	return Edge{Source: u, Target: w, Weight: weight, Row: rows[0]}, true, nil
}

// ContainsEdge reports whether at least one edge runs from u to v.
// Weight is never read, so an unconfigured weight column is fine.
// Storage failure reads as false.
func (v *View) ContainsEdge(u, w VertexID) bool {
	rows, err := v.store.QueryIndex2(v.startCol, v.endCol, u, w)
	if err != nil {
		v.failSoft("ContainsEdge", err)
		return false
	}
	return len(rows) > 0
}

// ContainsVertex reports whether w appears in the start_node or the
// end_node index. Storage failure reads as false.
func (v *View) ContainsVertex(w VertexID) bool {
	rows, err := v.store.QueryIndex(v.startCol, w)
	if err != nil {
		v.failSoft("ContainsVertex", err)
		return false
	}
	if len(rows) > 0 {
		return true
	}
	rows, err = v.store.QueryIndex(v.endCol, w)
	if err != nil {
		v.failSoft("ContainsVertex", err)
		return false
	}
	return len(rows) > 0
}

// OutgoingEdgesOf returns every edge whose source is w, rehydrated from
// the start_node index. Storage failures collapse to empty.
func (v *View) OutgoingEdgesOf(w VertexID) ([]Edge, error) {
	if err := v.requireWeight(); err != nil {
		return nil, err
	}
	rows, err := v.store.QueryIndex(v.startCol, w)
	if err != nil {
		v.failSoft("OutgoingEdgesOf", err)
		return nil, nil
	}
	edges := make([]Edge, 0, len(rows))
	for _, row := range rows {
		target, err := v.targetAt(row)
		if err != nil {
			v.failSoft("OutgoingEdgesOf", err)
			return nil, nil
		}
		weight, err := v.weightAt(row)
		if err != nil {
			v.failSoft("OutgoingEdgesOf", err)
			return nil, nil
		}
		edges = append(edges, Edge{Source: w, Target: target, Weight: weight, Row: row})
	}
	return edges, nil
}

// IncomingEdgesOf returns every edge whose target is w, rehydrated from
// the end_node index. Storage failures collapse to empty.
func (v *View) IncomingEdgesOf(w VertexID) ([]Edge, error) {
	if err := v.requireWeight(); err != nil {
		return nil, err
	}
	rows, err := v.store.QueryIndex(v.endCol, w)
	if err != nil {
		v.failSoft("IncomingEdgesOf", err)
		return nil, nil
	}
	edges := make([]Edge, 0, len(rows))
	for _, row := range rows {
		source, err := v.sourceAt(row)
		if err != nil {
			v.failSoft("IncomingEdgesOf", err)
			return nil, nil
		}
		weight, err := v.weightAt(row)
		if err != nil {
			v.failSoft("IncomingEdgesOf", err)
			return nil, nil
		}
		edges = append(edges, Edge{Source: source, Target: w, Weight: weight, Row: row})
	}
	return edges, nil
}

// EdgesOf returns every edge touching w in either direction. A self-loop
// appears in both underlying index lookups but is reported once, by row
// identity.
func (v *View) EdgesOf(w VertexID) ([]Edge, error) {
	outgoing, err := v.OutgoingEdgesOf(w)
	if err != nil {
		return nil, err
	}
	incoming, err := v.IncomingEdgesOf(w)
	if err != nil {
		return nil, err
	}
	seen := make(map[rowstore.RowID]struct{}, len(outgoing))
	edges := make([]Edge, 0, len(outgoing)+len(incoming))
	for _, e := range outgoing {
		seen[e.Row] = struct{}{}
		edges = append(edges, e)
	}
	for _, e := range incoming {
		if _, dup := seen[e.Row]; dup {
			continue
		}
		edges = append(edges, e)
	}
	return edges, nil
}

// OutDegree counts edges whose source is w. Defined as 0 when the index
// lookup fails or matches nothing; it never fails the caller.
func (v *View) OutDegree(w VertexID) int {
	rows, err := v.store.QueryIndex(v.startCol, w)
	if err != nil {
		v.failSoft("OutDegree", err)
		return 0
	}
	return len(rows)
}

// InDegree counts edges whose target is w. Defined as 0 when the index
// lookup fails or matches nothing; it never fails the caller.
func (v *View) InDegree(w VertexID) int {
	rows, err := v.store.QueryIndex(v.endCol, w)
	if err != nil {
		v.failSoft("InDegree", err)
		return 0
	}
	return len(rows)
}

// =============================================================================
// Vertex set and edge set
// =============================================================================

// VertexSet returns the set of all vertex IDs in the dataset.
//
// The set is computed once per View with a single full pass over all
// rows, reading both node columns of each row, and is memoized for every
// later call. Rows that fail to read are skipped with a debug log,
// consistent with the fail-soft policy.
func (v *View) VertexSet() map[VertexID]struct{} {
	v.vertexOnce.Do(func() {
		total := v.store.RowCount()
		v.vertices = make(map[VertexID]struct{}, total)
		observability.Scan().OnScanStart(total)
		for row := rowstore.RowID(0); row < total; row++ {
			source, err := v.sourceAt(row)
			if err != nil {
				v.failSoft("VertexSet", err)
				continue
			}
			target, err := v.targetAt(row)
			if err != nil {
				v.failSoft("VertexSet", err)
				continue
			}
			v.vertices[source] = struct{}{}
			v.vertices[target] = struct{}{}
			if row%scanTickInterval == scanTickInterval-1 {
				observability.Scan().OnScanProgress(row + 1)
			}
		}
		observability.Scan().OnScanComplete(total)
	})
	return v.vertices
}

// EdgeSet returns the lazy edge sequence of the graph. Nothing is
// materialized: edges are constructed row by row during iteration.
func (v *View) EdgeSet() *EdgeSet {
	return &EdgeSet{view: v}
}

// =============================================================================
// Mutations (unsupported)
// =============================================================================

// AddEdge always fails: the view is a read-only projection.
func (v *View) AddEdge(u, w VertexID) error {
	return fmt.Errorf("%w: AddEdge(%d, %d)", ErrReadOnly, u, w)
}

// AddVertex always fails: the view is a read-only projection.
func (v *View) AddVertex(w VertexID) error {
	return fmt.Errorf("%w: AddVertex(%d)", ErrReadOnly, w)
}

// RemoveEdge always fails: the view is a read-only projection.
func (v *View) RemoveEdge(u, w VertexID) error {
	return fmt.Errorf("%w: RemoveEdge(%d, %d)", ErrReadOnly, u, w)
}

// RemoveVertex always fails: the view is a read-only projection.
func (v *View) RemoveVertex(w VertexID) error {
	return fmt.Errorf("%w: RemoveVertex(%d)", ErrReadOnly, w)
}
