package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	apperrors "github.com/rowgraph/rowgraph/pkg/errors"
	"github.com/rowgraph/rowgraph/pkg/graphview"
)

// inspectCommand creates the "inspect" command.
func (c *CLI) inspectCommand() *cobra.Command {
	var (
		weightFlag  string
		bindingPath string
		showEdges   bool
	)

	cmd := &cobra.Command{
		Use:   "inspect <dataset> [vertex]",
		Short: "Show dataset schema, or degrees and adjacency for a vertex",
		Long: `Inspect without a vertex argument prints the dataset's resolved schema:
column names, inferred kinds, and the row count.

With a vertex argument it prints the vertex's in-degree, out-degree, and
incident edges.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := resolveOptions(resolveInput{
				bindingPath: bindingPath,
				weightFlag:  weightFlag,
			})
			if err != nil {
				return err
			}
			if len(args) == 1 {
				return c.runInspectSchema(cmd.Context(), args[0], opts)
			}
			vertex, err := apperrors.ParseVertexArg(args[1])
			if err != nil {
				return err
			}
			return c.runInspectVertex(cmd.Context(), args[0], vertex, opts, showEdges)
		},
	}

	cmd.Flags().StringVarP(&weightFlag, "weight", "w", "", "weight column name (default \"weight\")")
	cmd.Flags().StringVarP(&bindingPath, "binding", "b", "", "TOML binding sidecar with column and mode defaults")
	cmd.Flags().BoolVar(&showEdges, "edges", false, "list incident edges for the vertex")

	return cmd
}

func (c *CLI) runInspectSchema(ctx context.Context, dataset string, opts resolvedOptions) error {
	logger := loggerFromContext(ctx)
	installHooks(logger)

	view, _, err := openDataset(logger, dataset, opts.weightColumn)
	if err != nil {
		return err
	}
	store := view.Store()

	printKeyValue("dataset", dataset)
	printKeyValue("rows", fmt.Sprintf("%d", store.RowCount()))
	weightState := "bound"
	if !view.WeightColumnSet() {
		weightState = "not bound"
	}
	printKeyValue("weight", fmt.Sprintf("%s (%s)", opts.weightColumn, weightState))
	indexState := "ready"
	if view.IndexError() != nil {
		indexState = "unavailable"
	}
	printKeyValue("indexes", indexState)

	printKeyValue("vertices", fmt.Sprintf("%d", len(view.VertexSet())))

	printNewline()
	for i, col := range store.Columns() {
		printDetail("column %d: %s (%s)", i, col.Name, col.Kind)
	}
	return nil
}

func (c *CLI) runInspectVertex(ctx context.Context, dataset string, vertex int64, opts resolvedOptions, showEdges bool) error {
	logger := loggerFromContext(ctx)
	installHooks(logger)

	view, _, err := openDataset(logger, dataset, opts.weightColumn)
	if err != nil {
		return err
	}
	return c.inspectVertex(view, dataset, vertex, opts.weightColumn, showEdges)
}

// inspectVertex prints adjacency for one vertex. Unlike the fail-soft
// library queries, degraded indexes surface here: degrees of zero from a
// broken index would be indistinguishable from an isolated vertex.
func (c *CLI) inspectVertex(view *graphview.View, dataset string, vertex int64, weightColumn string, showEdges bool) error {
	if err := view.IndexError(); err != nil {
		return apperrors.Wrap(apperrors.ErrCodeIndexUnavailable, err, "indexes for %s are unavailable", dataset)
	}

	v := graphview.VertexID(vertex)
	if !view.ContainsVertex(v) {
		return apperrors.New(apperrors.ErrCodeNotFound, "vertex %d does not appear in %s", vertex, dataset)
	}

	printSuccess("Vertex %d", vertex)
	printKeyValue("out-degree", fmt.Sprintf("%d", view.OutDegree(v)))
	printKeyValue("in-degree", fmt.Sprintf("%d", view.InDegree(v)))

	if !showEdges {
		return nil
	}

	edges, err := view.EdgesOf(v)
	if err != nil {
		if errors.Is(err, graphview.ErrWeightNotSet) {
			return apperrors.Wrap(apperrors.ErrCodeWeightNotSet, err, "weight column %q is not available", weightColumn)
		}
		return apperrors.Wrap(apperrors.ErrCodeInternal, err, "cannot list edges of %d", vertex)
	}
	printNewline()
	for _, e := range edges {
		printDetail("%d %s %d  (w=%g, row %d)", e.Source, iconArrow, e.Target, e.Weight, e.Row)
	}
	return nil
}
