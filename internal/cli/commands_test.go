package cli

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	apperrors "github.com/rowgraph/rowgraph/pkg/errors"
	"github.com/rowgraph/rowgraph/pkg/graphview"
	"github.com/rowgraph/rowgraph/pkg/rowstore"
)

func writeDataset(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "edges.csv")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write dataset: %v", err)
	}
	return path
}

const sampleCSV = `start_node,end_node,weight
1,2,1.0
2,3,1.0
1,3,3.0
5,6,2.0
`

func testCLI() *CLI {
	return New(io.Discard, LogInfo)
}

func TestOpenDataset(t *testing.T) {
	path := writeDataset(t, sampleCSV)
	c := testCLI()

	view, hash, err := openDataset(c.Logger, path, "weight")
	if err != nil {
		t.Fatalf("openDataset: %v", err)
	}
	if view == nil || hash == "" {
		t.Fatal("openDataset should return a view and a content hash")
	}
	if !view.WeightColumnSet() {
		t.Error("weight column should be bound")
	}

	// The hash keys cache entries, so it must track file content.
	path2 := writeDataset(t, sampleCSV+"6,7,1.0\n")
	_, hash2, err := openDataset(c.Logger, path2, "weight")
	if err != nil {
		t.Fatalf("openDataset: %v", err)
	}
	if hash == hash2 {
		t.Error("different dataset content should hash differently")
	}
}

func TestOpenDatasetMissingFile(t *testing.T) {
	c := testCLI()
	_, _, err := openDataset(c.Logger, filepath.Join(t.TempDir(), "nope.csv"), "weight")
	if !apperrors.Is(err, apperrors.ErrCodeFileNotFound) {
		t.Errorf("code = %v, want FILE_NOT_FOUND", apperrors.GetCode(err))
	}
}

func TestOpenDatasetBadSchema(t *testing.T) {
	path := writeDataset(t, "a,b\n1,2\n")
	c := testCLI()
	_, _, err := openDataset(c.Logger, path, "weight")
	if !apperrors.Is(err, apperrors.ErrCodeInvalidSchema) {
		t.Errorf("code = %v, want INVALID_SCHEMA", apperrors.GetCode(err))
	}
}

func TestOpenDatasetUnboundWeight(t *testing.T) {
	// A dataset without the weight column still opens; only the binding
	// degrades.
	path := writeDataset(t, "start_node,end_node\n1,2\n")
	c := testCLI()

	view, _, err := openDataset(c.Logger, path, "weight")
	if err != nil {
		t.Fatalf("openDataset: %v", err)
	}
	if view.WeightColumnSet() {
		t.Error("weight column should not be bound")
	}
}

func TestRunStats(t *testing.T) {
	path := writeDataset(t, sampleCSV)
	c := testCLI()

	opts := resolvedOptions{weightColumn: "weight", mode: "undirected"}
	if err := c.runStats(context.Background(), path, opts, true, true); err != nil {
		t.Fatalf("runStats: %v", err)
	}
}

func TestRunStatsInvalidMode(t *testing.T) {
	path := writeDataset(t, sampleCSV)
	c := testCLI()

	opts := resolvedOptions{weightColumn: "weight", mode: "sideways"}
	err := c.runStats(context.Background(), path, opts, true, true)
	if !apperrors.Is(err, apperrors.ErrCodeInvalidMode) {
		t.Errorf("code = %v, want INVALID_MODE", apperrors.GetCode(err))
	}
}

func TestRunStatsUnboundWeight(t *testing.T) {
	path := writeDataset(t, "start_node,end_node\n1,2\n")
	c := testCLI()

	opts := resolvedOptions{weightColumn: "weight", mode: "directed"}
	err := c.runStats(context.Background(), path, opts, true, true)
	if !apperrors.Is(err, apperrors.ErrCodeWeightNotSet) {
		t.Errorf("code = %v, want WEIGHT_NOT_SET", apperrors.GetCode(err))
	}
}

func TestRunPath(t *testing.T) {
	path := writeDataset(t, sampleCSV)
	c := testCLI()

	opts := resolvedOptions{weightColumn: "weight", mode: "directed"}
	if err := c.runPath(context.Background(), path, 1, 3, opts, true, true); err != nil {
		t.Fatalf("runPath: %v", err)
	}
}

func TestRunPathNoPath(t *testing.T) {
	path := writeDataset(t, sampleCSV)
	c := testCLI()

	opts := resolvedOptions{weightColumn: "weight", mode: "directed"}
	err := c.runPath(context.Background(), path, 1, 6, opts, true, true)
	if !apperrors.Is(err, apperrors.ErrCodeNoPath) {
		t.Errorf("code = %v, want NO_PATH", apperrors.GetCode(err))
	}
}

func TestRootCommandWiring(t *testing.T) {
	c := testCLI()
	root := c.RootCommand()

	want := []string{"stats", "path", "inspect", "cache", "completion"}
	for _, name := range want {
		found := false
		for _, cmd := range root.Commands() {
			if cmd.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("root command is missing %q", name)
		}
	}
}

func TestRootCommandInstallsContextLogger(t *testing.T) {
	c := testCLI()
	root := c.RootCommand()
	root.SetContext(context.Background())

	if err := root.PersistentPreRunE(root, nil); err != nil {
		t.Fatalf("PersistentPreRunE: %v", err)
	}
	if got := loggerFromContext(root.Context()); got != c.Logger {
		t.Error("pre-run should install the CLI logger into the command context")
	}
}

func TestRunStatsLogsThroughContext(t *testing.T) {
	path := writeDataset(t, sampleCSV)
	c := testCLI()

	var buf bytes.Buffer
	ctx := withLogger(context.Background(), newLogger(&buf, LogDebug))

	opts := resolvedOptions{weightColumn: "weight", mode: "undirected"}
	if err := c.runStats(ctx, path, opts, true, true); err != nil {
		t.Fatalf("runStats: %v", err)
	}
	if !strings.Contains(buf.String(), "stats run") {
		t.Error("runStats should log through the context logger")
	}
}

func TestRunStatsTextOutput(t *testing.T) {
	path := writeDataset(t, sampleCSV)
	c := testCLI()

	opts := resolvedOptions{weightColumn: "weight", mode: "undirected"}
	if err := c.runStats(context.Background(), path, opts, true, false); err != nil {
		t.Fatalf("runStats: %v", err)
	}
}

// unindexedStore rejects index creation so the view opens degraded.
type unindexedStore struct {
	rowstore.Store
}

var errIndexDown = errors.New("index backend down")

func (s unindexedStore) EnsureIndexed(cols ...int) error {
	return errIndexDown
}

func TestInspectVertexIndexUnavailable(t *testing.T) {
	store := rowstore.NewMemoryStore([]rowstore.Column{
		{Name: "start_node", Kind: rowstore.KindInt},
		{Name: "end_node", Kind: rowstore.KindInt},
		{Name: "weight", Kind: rowstore.KindFloat},
	})
	if err := store.AppendRow(int64(1), int64(2), 1.0); err != nil {
		t.Fatalf("AppendRow: %v", err)
	}

	view, err := graphview.New(unindexedStore{Store: store}, graphview.WithWeightColumn("weight"))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	c := testCLI()
	err = c.inspectVertex(view, "edges.csv", 1, "weight", false)
	if !apperrors.Is(err, apperrors.ErrCodeIndexUnavailable) {
		t.Errorf("code = %v, want INDEX_UNAVAILABLE", apperrors.GetCode(err))
	}
}

func TestKeyerScope(t *testing.T) {
	c := testCLI()
	key := c.keyer().StatsKey("hash", "weight", "directed")
	if !strings.HasPrefix(key, resultKeyScope) {
		t.Errorf("StatsKey = %q, want %q prefix", key, resultKeyScope)
	}
	if !strings.HasPrefix(strings.TrimPrefix(key, resultKeyScope), "stats:") {
		t.Errorf("StatsKey = %q, want scoped stats key", key)
	}
}
