// Package rowstore defines the row-oriented storage contract that graph
// views are built on, and provides an in-memory, B-tree-indexed
// implementation for datasets loaded from CSV files.
//
// A Store exposes three capabilities:
//   - random-access column reads by row identifier (GetInt, GetFloat,
//     GetGeometry) plus the total row count
//   - point lookups through single-column and two-column indexes
//     (QueryIndex, QueryIndex2), returning matching row identifiers
//   - idempotent index creation (EnsureIndexed)
//
// Building and maintaining indexes is the store's responsibility; callers
// such as graphview only query them. Stores are read-only once loaded:
// there is no row mutation API.
package rowstore

import "errors"

// RowID identifies a row in a Store. Row IDs are dense and zero-based:
// valid IDs are 0..RowCount()-1.
type RowID = int64

// Sentinel errors for store operations.
var (
	// ErrRowRange indicates a row ID outside 0..RowCount()-1.
	ErrRowRange = errors.New("rowstore: row out of range")

	// ErrColumnRange indicates a column position outside the schema.
	ErrColumnRange = errors.New("rowstore: column out of range")

	// ErrColumnType indicates a typed read against a column of a
	// different kind (e.g. GetInt on a geometry column).
	ErrColumnType = errors.New("rowstore: column type mismatch")

	// ErrNotIndexed indicates a query against columns that have no index.
	ErrNotIndexed = errors.New("rowstore: columns not indexed")

	// ErrIndexColumns indicates an EnsureIndexed call with an unsupported
	// column count (only one- and two-column indexes exist).
	ErrIndexColumns = errors.New("rowstore: indexes span one or two columns")
)

// ColumnKind is the storage type of a column.
type ColumnKind int

const (
	// KindInt holds 64-bit integers (vertex identifiers).
	KindInt ColumnKind = iota
	// KindFloat holds 64-bit floats (weights and other measures).
	KindFloat
	// KindGeometry holds opaque geometry values, read through untouched.
	KindGeometry
)

// String returns the lowercase kind name.
func (k ColumnKind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindGeometry:
		return "geometry"
	default:
		return "unknown"
	}
}

// Column describes one column of a Store's schema.
type Column struct {
	Name string
	Kind ColumnKind
}

// Geometry is an opaque geometry value (WKT text as loaded). No consumer
// in this module interprets it; it exists for read-through access only.
type Geometry string

// Store is the row-oriented dataset contract.
//
// Implementations must be safe for concurrent reads after loading
// completes. All query methods treat the dataset as immutable; mutating
// a store while a consumer holds a reference to it is undefined behavior.
type Store interface {
	// RowCount returns the number of rows.
	RowCount() int64

	// GetInt reads an integer column value at the given row.
	GetInt(row RowID, col int) (int64, error)

	// GetFloat reads a float column value at the given row.
	GetFloat(row RowID, col int) (float64, error)

	// GetGeometry reads a geometry column value at the given row.
	GetGeometry(row RowID, col int) (Geometry, error)

	// Columns returns the schema in column-position order.
	Columns() []Column

	// QueryIndex returns the IDs of all rows whose value in col equals v,
	// in ascending row order. Returns ErrNotIndexed if col has no
	// single-column index.
	QueryIndex(col int, v int64) ([]RowID, error)

	// QueryIndex2 returns the IDs of all rows whose values in (colA, colB)
	// equal (a, b), in ascending row order. Returns ErrNotIndexed if the
	// column pair has no composite index.
	QueryIndex2(colA, colB int, a, b int64) ([]RowID, error)

	// EnsureIndexed creates an index over the given columns if one does
	// not already exist. Calling it again for the same columns is a no-op.
	EnsureIndexed(cols ...int) error
}

// ColumnIndex resolves a column name to its position in the schema.
// Returns -1 if no column has that name.
func ColumnIndex(s Store, name string) int {
	for i, c := range s.Columns() {
		if c.Name == name {
			return i
		}
	}
	return -1
}

// GeometryColumn locates the first geometry-kinded column by type, not
// name. Returns -1 if the schema has none.
func GeometryColumn(s Store) int {
	for i, c := range s.Columns() {
		if c.Kind == KindGeometry {
			return i
		}
	}
	return -1
}
