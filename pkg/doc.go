// Package pkg provides the core libraries for rowgraph dataset analysis.
//
// # Overview
//
// Rowgraph treats a tabular edge-list dataset as a graph without ever
// materializing that graph: adjacency, degrees, and edge lookups are
// answered by index queries against the row store. The pkg directory is
// organized into five main areas:
//
//  1. [rowstore] - Columnar row storage with B-tree secondary indexes
//  2. [graphview] - Read-only graph semantics over an indexed store
//  3. [analyze] - Algorithms (shortest path, component statistics)
//  4. [cache] - Content-addressed caching of analysis results
//  5. [observability] - Progress hooks for long-running passes
//
// # Architecture
//
// The typical data flow through rowgraph:
//
//	CSV edge list
//	         ↓
//	    [rowstore] package (columns, rows, indexes)
//	         ↓
//	    [graphview] package (edges, adjacency, degrees)
//	         ↓
//	    [analyze] package (paths, component statistics)
//	         ↓
//	    terminal or JSON output
//
// # Quick Start
//
// Load a dataset and compute a shortest path:
//
//	import (
//	    "context"
//	    "github.com/rowgraph/rowgraph/pkg/analyze"
//	    "github.com/rowgraph/rowgraph/pkg/graphview"
//	    "github.com/rowgraph/rowgraph/pkg/rowstore"
//	)
//
//	// 1. Load the edge list
//	store, _ := rowstore.LoadCSVFile("roads.csv")
//
//	// 2. Open a graph view with a weight column
//	view, _ := graphview.New(store, graphview.WithWeightColumn("weight"))
//
//	// 3. Run an analysis
//	path, _ := analyze.ShortestPath(context.Background(), view, 1, 42, analyze.ModeDirected)
//
// # Main Packages
//
// [rowstore] stores the dataset in column-major form and maintains B-tree
// indexes over one or two integer columns. The Store interface is the
// seam other packages depend on; MemoryStore is the in-process
// implementation fed by the CSV loader.
//
// [graphview] projects graph semantics onto a Store. A View resolves the
// start_node and end_node columns at construction, answers every query
// through index lookups, and degrades read failures to empty results.
// Mutations always fail: the view is strictly read-only.
//
// [analyze] implements the algorithms: Dijkstra shortest paths under
// three edge-orientation modes and union-find component statistics that
// fold edge counts and weight totals per component.
//
// [cache] provides content-addressed result caching for the CLI, keyed
// by a hash of the dataset bytes plus analysis parameters.
//
// [observability] defines hook interfaces for index builds, dataset
// scans, and analysis runs, with no-op defaults and a global registry.
//
// [errors] carries the coded error surface the CLI presents to users.
//
// [buildinfo] exposes ldflags-injected version metadata.
package pkg
