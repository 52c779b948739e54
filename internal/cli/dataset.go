package cli

import (
	"errors"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/rowgraph/rowgraph/pkg/cache"
	apperrors "github.com/rowgraph/rowgraph/pkg/errors"
	"github.com/rowgraph/rowgraph/pkg/graphview"
	"github.com/rowgraph/rowgraph/pkg/observability"
	"github.com/rowgraph/rowgraph/pkg/rowstore"
)

// openDataset loads a CSV edge list and wraps it in a graph view.
// It returns the view together with a content hash of the dataset file,
// which keys cached analysis results.
func openDataset(logger *log.Logger, path, weightColumn string) (*graphview.View, string, error) {
	if err := apperrors.ValidateDatasetPath(path); err != nil {
		return nil, "", err
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, "", apperrors.Wrap(apperrors.ErrCodeFileNotFound, err, "dataset %s not found", path)
		}
		return nil, "", apperrors.Wrap(apperrors.ErrCodeInvalidDataset, err, "cannot read dataset %s", path)
	}
	hash := cache.Hash(raw)

	store, err := rowstore.LoadCSVFile(path)
	if err != nil {
		return nil, "", apperrors.Wrap(apperrors.ErrCodeInvalidDataset, err, "cannot load dataset %s", path)
	}

	view, err := graphview.New(store, graphview.WithLogger(logger))
	if err != nil {
		if errors.Is(err, graphview.ErrMissingColumn) {
			return nil, "", apperrors.Wrap(apperrors.ErrCodeInvalidSchema, err, "dataset %s has no usable edge schema", path)
		}
		return nil, "", apperrors.Wrap(apperrors.ErrCodeInternal, err, "cannot open dataset %s", path)
	}

	// A missing weight column degrades weight-dependent commands instead
	// of failing dataset open; inspect still works without it.
	if weightColumn != "" {
		if err := view.SetWeightColumn(weightColumn); err != nil {
			logger.Debug("weight column not bound", "column", weightColumn, "error", err)
		}
	}

	return view, hash, nil
}

// installHooks routes storage and analysis instrumentation to the logger
// at debug level.
func installHooks(logger *log.Logger) {
	observability.SetIndexHooks(logHooks{logger})
	observability.SetScanHooks(logHooks{logger})
	observability.SetAnalysisHooks(logHooks{logger})
}

type logHooks struct {
	logger *log.Logger
}

func (h logHooks) OnIndexBuildStart(columns []string) {
	h.logger.Debug("building index", "columns", columns)
}

func (h logHooks) OnIndexBuildComplete(columns []string, err error) {
	if err != nil {
		h.logger.Debug("index build failed", "columns", columns, "error", err)
		return
	}
	h.logger.Debug("index ready", "columns", columns)
}

func (h logHooks) OnScanStart(total int64) {
	h.logger.Debug("scan start", "rows", total)
}

func (h logHooks) OnScanProgress(done int64) {
	h.logger.Debug("scan progress", "rows", done)
}

func (h logHooks) OnScanComplete(total int64) {
	h.logger.Debug("scan complete", "rows", total)
}

func (h logHooks) OnAnalysisStart(kind string) {
	h.logger.Debug("analysis start", "kind", kind)
}

func (h logHooks) OnAnalysisComplete(kind string, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("analysis failed", "kind", kind, "duration", d, "error", err)
		return
	}
	h.logger.Debug("analysis complete", "kind", kind, "duration", d)
}
