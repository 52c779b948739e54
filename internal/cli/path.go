package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/rowgraph/rowgraph/pkg/analyze"
	apperrors "github.com/rowgraph/rowgraph/pkg/errors"
	"github.com/rowgraph/rowgraph/pkg/graphview"
)

const pathCacheTTL = 24 * time.Hour

// pathResult is the serialized form of a shortest-path answer.
type pathResult struct {
	Source int64          `json:"source"`
	Target int64          `json:"target"`
	Weight float64        `json:"weight"`
	Edges  []pathEdgeJSON `json:"edges"`
}

type pathEdgeJSON struct {
	Source int64   `json:"source"`
	Target int64   `json:"target"`
	Weight float64 `json:"weight"`
	Row    int64   `json:"row"`
}

// pathCommand creates the "path" command.
func (c *CLI) pathCommand() *cobra.Command {
	var (
		weightFlag  string
		modeFlag    string
		bindingPath string
		noCache     bool
		asJSON      bool
	)

	cmd := &cobra.Command{
		Use:   "path <dataset> <source> <target>",
		Short: "Compute the minimum-weight path between two vertices",
		Long: `Path runs a shortest-path search over the dataset's graph and prints the
edge sequence from source to target together with its total weight.

Vertices are the integer identifiers appearing in the start_node and
end_node columns. A search from a vertex to itself succeeds with an empty
path of weight zero.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := apperrors.ParseVertexArg(args[1])
			if err != nil {
				return err
			}
			target, err := apperrors.ParseVertexArg(args[2])
			if err != nil {
				return err
			}
			opts, err := resolveOptions(resolveInput{
				bindingPath: bindingPath,
				weightFlag:  weightFlag,
				modeFlag:    modeFlag,
			})
			if err != nil {
				return err
			}
			return c.runPath(cmd.Context(), args[0], source, target, opts, noCache, asJSON)
		},
	}

	cmd.Flags().StringVarP(&weightFlag, "weight", "w", "", "weight column name (default \"weight\")")
	cmd.Flags().StringVarP(&modeFlag, "mode", "m", "", "edge orientation: directed, reversed, or undirected (default \"directed\")")
	cmd.Flags().StringVarP(&bindingPath, "binding", "b", "", "TOML binding sidecar with column and mode defaults")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "bypass the result cache")
	cmd.Flags().BoolVar(&asJSON, "json", false, "emit results as JSON")

	return cmd
}

func (c *CLI) runPath(ctx context.Context, dataset string, source, target int64, opts resolvedOptions, noCache, asJSON bool) error {
	logger := loggerFromContext(ctx)
	runID := uuid.NewString()
	logger.Debug("path run", "id", runID, "dataset", dataset, "source", source, "target", target, "mode", opts.mode)
	installHooks(logger)

	mode, err := analyze.ParseMode(opts.mode)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrCodeInvalidMode, err, "unknown mode %q", opts.mode)
	}

	view, datasetHash, err := openDataset(logger, dataset, opts.weightColumn)
	if err != nil {
		return err
	}

	resultCache := newCache(noCache)
	defer resultCache.Close()
	key := c.keyer().PathKey(datasetHash, opts.weightColumn, mode.String(), source, target)

	if data, hit, cacheErr := resultCache.Get(ctx, key); cacheErr == nil && hit {
		var res pathResult
		if err := json.Unmarshal(data, &res); err == nil {
			logger.Debug("path served from cache", "key", key)
			return c.printPathResult(res, asJSON, true)
		}
	}

	prog := newProgress(logger)
	p, err := analyze.ShortestPath(ctx, view, graphview.VertexID(source), graphview.VertexID(target), mode)
	if err != nil {
		if errors.Is(err, analyze.ErrNoPath) {
			return apperrors.Wrap(apperrors.ErrCodeNoPath, err, "no path from %d to %d", source, target)
		}
		if errors.Is(err, graphview.ErrWeightNotSet) {
			return apperrors.Wrap(apperrors.ErrCodeWeightNotSet, err, "weight column %q is not available", opts.weightColumn)
		}
		return apperrors.Wrap(apperrors.ErrCodeInternal, err, "path search failed for %s", dataset)
	}
	prog.done(fmt.Sprintf("Found path with %d edges", len(p.Edges)))

	res := pathResult{
		Source: source,
		Target: target,
		Weight: p.Weight,
	}
	for _, e := range p.Edges {
		res.Edges = append(res.Edges, pathEdgeJSON{
			Source: int64(e.Source),
			Target: int64(e.Target),
			Weight: e.Weight,
			Row:    int64(e.Row),
		})
	}

	if data, jerr := json.Marshal(res); jerr == nil {
		if cerr := resultCache.Set(ctx, key, data, pathCacheTTL); cerr != nil {
			logger.Debug("cache write failed", "error", cerr)
		}
	}

	return c.printPathResult(res, asJSON, false)
}

func (c *CLI) printPathResult(res pathResult, asJSON, cached bool) error {
	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}

	if len(res.Edges) == 0 {
		printSuccess("Path from %d to %d: already there (weight 0)", res.Source, res.Target)
		printResultStatus(cached)
		return nil
	}

	printSuccess("Path from %d to %d: %d edges, total weight %g", res.Source, res.Target, len(res.Edges), res.Weight)
	for _, e := range res.Edges {
		printDetail("%d %s %d  (w=%g, row %d)", e.Source, iconArrow, e.Target, e.Weight, e.Row)
	}
	printResultStatus(cached)
	return nil
}
