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

// statsCacheTTL bounds how long cached component statistics are served.
// Entries are also invalidated by dataset content changes via the key hash.
const statsCacheTTL = 24 * time.Hour

// statsCommand creates the "stats" command.
func (c *CLI) statsCommand() *cobra.Command {
	var (
		weightFlag  string
		modeFlag    string
		bindingPath string
		noCache     bool
		asJSON      bool
	)

	cmd := &cobra.Command{
		Use:   "stats <dataset>",
		Short: "Compute connectivity statistics per connected component",
		Long: `Stats partitions the dataset's graph into connected components and
reports, for each component, the number of edges and the total edge weight.

The dataset is a CSV edge list with start_node and end_node columns. The
weight column defaults to "weight" and can be overridden with --weight or a
TOML binding sidecar.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := resolveOptions(resolveInput{
				bindingPath: bindingPath,
				weightFlag:  weightFlag,
				modeFlag:    modeFlag,
			})
			if err != nil {
				return err
			}
			return c.runStats(cmd.Context(), args[0], opts, noCache, asJSON)
		},
	}

	cmd.Flags().StringVarP(&weightFlag, "weight", "w", "", "weight column name (default \"weight\")")
	cmd.Flags().StringVarP(&modeFlag, "mode", "m", "", "edge orientation: directed, reversed, or undirected (default \"directed\")")
	cmd.Flags().StringVarP(&bindingPath, "binding", "b", "", "TOML binding sidecar with column and mode defaults")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "bypass the result cache")
	cmd.Flags().BoolVar(&asJSON, "json", false, "emit results as JSON")

	return cmd
}

func (c *CLI) runStats(ctx context.Context, dataset string, opts resolvedOptions, noCache, asJSON bool) error {
	logger := loggerFromContext(ctx)
	runID := uuid.NewString()
	logger.Debug("stats run", "id", runID, "dataset", dataset, "weight", opts.weightColumn, "mode", opts.mode)
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
	key := c.keyer().StatsKey(datasetHash, opts.weightColumn, mode.String())

	if data, hit, cacheErr := resultCache.Get(ctx, key); cacheErr == nil && hit {
		var stats []analyze.ComponentStats
		if err := json.Unmarshal(data, &stats); err == nil {
			logger.Debug("stats served from cache", "key", key)
			return c.printStatsResult(stats, asJSON, true)
		}
	}

	spin := newSpinnerWithContext(ctx, fmt.Sprintf("Analyzing %s", dataset))
	if !asJSON {
		spin.Start()
	}

	stats, err := analyze.SubgraphStatistics(ctx, view, mode)
	if err != nil {
		if !asJSON {
			if spin.Cancelled() {
				spin.Stop()
			} else {
				spin.StopWithError(fmt.Sprintf("Statistics failed for %s", dataset))
			}
		}
		if errors.Is(err, graphview.ErrWeightNotSet) {
			return apperrors.Wrap(apperrors.ErrCodeWeightNotSet, err, "weight column %q is not available", opts.weightColumn)
		}
		return apperrors.Wrap(apperrors.ErrCodeInternal, err, "statistics failed for %s", dataset)
	}
	if !asJSON {
		spin.StopWithSuccess(fmt.Sprintf("%d connected components", len(stats)))
	}

	if data, jerr := json.Marshal(stats); jerr == nil {
		if cerr := resultCache.Set(ctx, key, data, statsCacheTTL); cerr != nil {
			logger.Debug("cache write failed", "error", cerr)
		}
	}

	if asJSON {
		return c.printStatsResult(stats, true, false)
	}
	printStatsComponents(stats, false)
	return nil
}

func (c *CLI) printStatsResult(stats []analyze.ComponentStats, asJSON, cached bool) error {
	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(stats)
	}

	printSuccess("%d connected components", len(stats))
	printStatsComponents(stats, cached)
	return nil
}

func printStatsComponents(stats []analyze.ComponentStats, cached bool) {
	for _, s := range stats {
		printDetail("component %d: %d edges, total weight %g", s.ComponentID, s.EdgeCount, s.TotalWeight)
	}
	printResultStatus(cached)
}
