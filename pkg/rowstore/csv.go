package rowstore

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
)

// ErrEmptyDataset indicates a CSV file without a header row.
var ErrEmptyDataset = errors.New("rowstore: dataset has no header row")

// LoadCSVFile loads a CSV dataset from a file path. See LoadCSV.
func LoadCSVFile(path string) (*MemoryStore, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return LoadCSV(f)
}

// LoadCSV reads a CSV dataset into a MemoryStore. The first record names
// the columns. Column kinds are inferred from the values, not the names:
// a column whose values all parse as integers is KindInt, one whose
// values all parse as numbers is KindFloat, and anything else (such as
// WKT text) is KindGeometry. A dataset with a header but no data rows
// falls back to name-based inference so that start_node and end_node
// remain integer columns.
func LoadCSV(r io.Reader) (*MemoryStore, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if len(records) == 0 {
		return nil, ErrEmptyDataset
	}

	header := records[0]
	body := records[1:]
	cols := make([]Column, len(header))
	for i, name := range header {
		cols[i] = Column{Name: name, Kind: inferKind(body, i, name)}
	}

	store := NewMemoryStore(cols)
	for n, record := range body {
		if len(record) != len(cols) {
			return nil, fmt.Errorf("row %d: %d values, want %d", n+1, len(record), len(cols))
		}
		vals := make([]any, len(cols))
		for i, cell := range record {
			switch cols[i].Kind {
			case KindInt:
				v, err := strconv.ParseInt(cell, 10, 64)
				if err != nil {
					return nil, fmt.Errorf("row %d, column %q: %w", n+1, cols[i].Name, err)
				}
				vals[i] = v
			case KindFloat:
				v, err := strconv.ParseFloat(cell, 64)
				if err != nil {
					return nil, fmt.Errorf("row %d, column %q: %w", n+1, cols[i].Name, err)
				}
				vals[i] = v
			case KindGeometry:
				vals[i] = Geometry(cell)
			}
		}
		if err := store.AppendRow(vals...); err != nil {
			return nil, fmt.Errorf("row %d: %w", n+1, err)
		}
	}
	return store, nil
}

// inferKind picks the narrowest kind that fits every value in the column.
func inferKind(body [][]string, col int, name string) ColumnKind {
	if len(body) == 0 {
		// No values to look at; keep the node columns integer-kinded.
		if name == "start_node" || name == "end_node" {
			return KindInt
		}
		return KindFloat
	}

	kind := KindInt
	for _, record := range body {
		if col >= len(record) {
			continue
		}
		cell := record[col]
		if _, err := strconv.ParseInt(cell, 10, 64); err == nil {
			continue
		}
		if _, err := strconv.ParseFloat(cell, 64); err == nil {
			if kind == KindInt {
				kind = KindFloat
			}
			continue
		}
		return KindGeometry
	}
	return kind
}
