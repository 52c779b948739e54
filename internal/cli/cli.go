// Package cli implements the rowgraph command-line interface.
//
// This package provides commands for analyzing edge-list datasets as
// graphs: connected-component statistics, shortest paths, and per-vertex
// inspection. Analysis results are cached keyed by dataset content. The
// CLI is built using cobra and supports verbose logging via the
// charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - stats: Compute connectivity statistics per connected component
//   - path: Compute the minimum-weight path between two vertices
//   - inspect: Show degrees and adjacency for a single vertex
//   - cache: Manage the analysis result cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context to allow structured progress tracking.
package cli

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/rowgraph/rowgraph/pkg/buildinfo"
	"github.com/rowgraph/rowgraph/pkg/cache"
)

// appName is the application name used for directories and display.
const appName = "rowgraph"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
// Its persistent pre-run applies the --verbose level and installs the CLI
// logger into the command context, where run functions retrieve it with
// loggerFromContext.
func (c *CLI) RootCommand() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:          "rowgraph",
		Short:        "Rowgraph analyzes tabular edge lists as graphs",
		Long:         `Rowgraph reads an edge-list dataset (start_node, end_node, weight columns) and computes graph analyses over it: connected-component statistics, shortest paths, and per-vertex adjacency.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := LogInfo
			if verbose {
				level = LogDebug
			}
			c.SetLogLevel(level)
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	// Register all subcommands
	root.AddCommand(c.statsCommand())
	root.AddCommand(c.pathCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// newCache creates the result cache, falling back to a null cache when the
// cache directory is unavailable or caching is disabled.
func newCache(noCache bool) cache.Cache {
	if noCache {
		return cache.NewNullCache()
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache()
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		return cache.NewNullCache()
	}
	return fc
}

// resultKeyScope versions the cached result layout. Bump it when the
// serialized form of a cached analysis result changes so stale entries
// expire by key instead of unmarshaling into the new shape.
const resultKeyScope = "v1:"

// keyer returns the cache key generator for analysis results.
func (c *CLI) keyer() cache.Keyer {
	return cache.NewScopedKeyer(cache.NewDefaultKeyer(), resultKeyScope)
}

// cacheDir returns the cache directory using XDG standard (~/.cache/rowgraph/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
