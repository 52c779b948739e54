package rowstore

import (
	"fmt"

	"github.com/tidwall/btree"
)

// singleEntry is one posting of a single-column index: a column value and
// the row that holds it. Ordering by (Key, Row) keeps duplicate keys
// distinct and yields row-ordered point lookups for free.
type singleEntry struct {
	Key int64
	Row RowID
}

func singleLess(a, b singleEntry) bool {
	if a.Key != b.Key {
		return a.Key < b.Key
	}
	return a.Row < b.Row
}

// pairEntry is one posting of a two-column composite index.
type pairEntry struct {
	KeyA int64
	KeyB int64
	Row  RowID
}

func pairLess(a, b pairEntry) bool {
	if a.KeyA != b.KeyA {
		return a.KeyA < b.KeyA
	}
	if a.KeyB != b.KeyB {
		return a.KeyB < b.KeyB
	}
	return a.Row < b.Row
}

// colData holds one column's values. Only the slice matching the column
// kind is populated.
type colData struct {
	ints   []int64
	floats []float64
	geoms  []Geometry
}

// MemoryStore is an in-memory Store backed by columnar slices, with
// B-tree indexes built on demand. Point lookups are bounded ascends from
// a pivot entry, so no query ever scans the full dataset.
//
// A MemoryStore has a load phase (AppendRow) followed by a read phase.
// It is not safe to interleave the two; once handed to a consumer the
// store must be treated as frozen.
type MemoryStore struct {
	cols []Column
	data []colData
	rows int64

	single map[int]*btree.BTreeG[singleEntry]
	pair   map[[2]int]*btree.BTreeG[pairEntry]
	builds int
}

// NewMemoryStore creates an empty store with the given schema.
func NewMemoryStore(cols []Column) *MemoryStore {
	return &MemoryStore{
		cols:   cols,
		data:   make([]colData, len(cols)),
		single: make(map[int]*btree.BTreeG[singleEntry]),
		pair:   make(map[[2]int]*btree.BTreeG[pairEntry]),
	}
}

// AppendRow appends one row. Values must match the schema positionally:
// int64 for KindInt, float64 for KindFloat, Geometry for KindGeometry.
// Rows appended after an index was built are not visible to that index,
// so all loading must precede EnsureIndexed.
func (s *MemoryStore) AppendRow(vals ...any) error {
	if len(vals) != len(s.cols) {
		return fmt.Errorf("rowstore: row has %d values, schema has %d columns", len(vals), len(s.cols))
	}
	for i, v := range vals {
		switch s.cols[i].Kind {
		case KindInt:
			n, ok := v.(int64)
			if !ok {
				return fmt.Errorf("%w: column %q wants int64, got %T", ErrColumnType, s.cols[i].Name, v)
			}
			s.data[i].ints = append(s.data[i].ints, n)
		case KindFloat:
			f, ok := v.(float64)
			if !ok {
				return fmt.Errorf("%w: column %q wants float64, got %T", ErrColumnType, s.cols[i].Name, v)
			}
			s.data[i].floats = append(s.data[i].floats, f)
		case KindGeometry:
			g, ok := v.(Geometry)
			if !ok {
				return fmt.Errorf("%w: column %q wants Geometry, got %T", ErrColumnType, s.cols[i].Name, v)
			}
			s.data[i].geoms = append(s.data[i].geoms, g)
		}
	}
	s.rows++
	return nil
}

// RowCount returns the number of rows.
func (s *MemoryStore) RowCount() int64 { return s.rows }

// Columns returns the schema in column-position order.
func (s *MemoryStore) Columns() []Column { return s.cols }

func (s *MemoryStore) checkCell(row RowID, col int, want ColumnKind) error {
	if row < 0 || row >= s.rows {
		return fmt.Errorf("%w: row %d of %d", ErrRowRange, row, s.rows)
	}
	if col < 0 || col >= len(s.cols) {
		return fmt.Errorf("%w: column %d of %d", ErrColumnRange, col, len(s.cols))
	}
	if s.cols[col].Kind != want {
		return fmt.Errorf("%w: column %q is %s, not %s", ErrColumnType, s.cols[col].Name, s.cols[col].Kind, want)
	}
	return nil
}

// GetInt reads an integer column value at the given row.
func (s *MemoryStore) GetInt(row RowID, col int) (int64, error) {
	if err := s.checkCell(row, col, KindInt); err != nil {
		return 0, err
	}
	return s.data[col].ints[row], nil
}

// GetFloat reads a float column value at the given row.
func (s *MemoryStore) GetFloat(row RowID, col int) (float64, error) {
	if err := s.checkCell(row, col, KindFloat); err != nil {
		return 0, err
	}
	return s.data[col].floats[row], nil
}

// GetGeometry reads a geometry column value at the given row.
func (s *MemoryStore) GetGeometry(row RowID, col int) (Geometry, error) {
	if err := s.checkCell(row, col, KindGeometry); err != nil {
		return "", err
	}
	return s.data[col].geoms[row], nil
}

// EnsureIndexed creates an index over the given columns if one does not
// already exist. One column builds a single-column index; two columns
// build a composite index keyed on both values in order. Indexed columns
// must be integer-kinded.
func (s *MemoryStore) EnsureIndexed(cols ...int) error {
	for _, c := range cols {
		if c < 0 || c >= len(s.cols) {
			return fmt.Errorf("%w: column %d of %d", ErrColumnRange, c, len(s.cols))
		}
		if s.cols[c].Kind != KindInt {
			return fmt.Errorf("%w: cannot index %s column %q", ErrColumnType, s.cols[c].Kind, s.cols[c].Name)
		}
	}

	switch len(cols) {
	case 1:
		if _, ok := s.single[cols[0]]; ok {
			return nil
		}
		tree := btree.NewBTreeG(singleLess)
		vals := s.data[cols[0]].ints
		for row := RowID(0); row < s.rows; row++ {
			tree.Set(singleEntry{Key: vals[row], Row: row})
		}
		s.single[cols[0]] = tree
		s.builds++
		return nil
	case 2:
		key := [2]int{cols[0], cols[1]}
		if _, ok := s.pair[key]; ok {
			return nil
		}
		tree := btree.NewBTreeG(pairLess)
		valsA := s.data[cols[0]].ints
		valsB := s.data[cols[1]].ints
		for row := RowID(0); row < s.rows; row++ {
			tree.Set(pairEntry{KeyA: valsA[row], KeyB: valsB[row], Row: row})
		}
		s.pair[key] = tree
		s.builds++
		return nil
	default:
		return fmt.Errorf("%w: got %d", ErrIndexColumns, len(cols))
	}
}

// IndexBuilds reports how many indexes have actually been built. Repeat
// EnsureIndexed calls for existing indexes do not increase it.
func (s *MemoryStore) IndexBuilds() int { return s.builds }

// QueryIndex returns the IDs of all rows whose value in col equals v, in
// ascending row order.
func (s *MemoryStore) QueryIndex(col int, v int64) ([]RowID, error) {
	tree, ok := s.single[col]
	if !ok {
		return nil, fmt.Errorf("%w: column %d", ErrNotIndexed, col)
	}
	var rows []RowID
	tree.Ascend(singleEntry{Key: v, Row: 0}, func(e singleEntry) bool {
		if e.Key != v {
			return false
		}
		rows = append(rows, e.Row)
		return true
	})
	return rows, nil
}

// QueryIndex2 returns the IDs of all rows whose values in (colA, colB)
// equal (a, b), in ascending row order.
func (s *MemoryStore) QueryIndex2(colA, colB int, a, b int64) ([]RowID, error) {
	tree, ok := s.pair[[2]int{colA, colB}]
	if !ok {
		return nil, fmt.Errorf("%w: columns (%d,%d)", ErrNotIndexed, colA, colB)
	}
	var rows []RowID
	tree.Ascend(pairEntry{KeyA: a, KeyB: b, Row: 0}, func(e pairEntry) bool {
		if e.KeyA != a || e.KeyB != b {
			return false
		}
		rows = append(rows, e.Row)
		return true
	})
	return rows, nil
}

// Ensure MemoryStore implements Store.
var _ Store = (*MemoryStore)(nil)
