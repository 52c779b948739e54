package analyze

import (
	"testing"

	"github.com/rowgraph/rowgraph/pkg/graphview"
	"github.com/rowgraph/rowgraph/pkg/rowstore"
)

// testRow is one edge of a test fixture: source, target, weight.
type testRow struct {
	source, target int64
	weight         float64
}

// newTestView loads rows into a memory store and opens a view with the
// weight column bound.
func newTestView(t *testing.T, rows []testRow) *graphview.View {
	t.Helper()
	s := rowstore.NewMemoryStore([]rowstore.Column{
		{Name: "start_node", Kind: rowstore.KindInt},
		{Name: "end_node", Kind: rowstore.KindInt},
		{Name: "weight", Kind: rowstore.KindFloat},
	})
	for _, r := range rows {
		if err := s.AppendRow(r.source, r.target, r.weight); err != nil {
			t.Fatalf("AppendRow: %v", err)
		}
	}
	v, err := graphview.New(s, graphview.WithWeightColumn("weight"))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return v
}
