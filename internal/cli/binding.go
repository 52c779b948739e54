package cli

import (
	"os"

	"github.com/BurntSushi/toml"

	apperrors "github.com/rowgraph/rowgraph/pkg/errors"
)

// binding is the optional TOML sidecar that binds analysis configuration
// to a dataset. Flags take precedence over sidecar values.
//
// Example:
//
//	[columns]
//	weight = "travel_time"
//
//	[graph]
//	mode = "undirected"
type binding struct {
	Columns struct {
		Weight string `toml:"weight"`
	} `toml:"columns"`
	Graph struct {
		Mode string `toml:"mode"`
	} `toml:"graph"`
}

// loadBinding reads and validates a binding sidecar file.
func loadBinding(path string) (*binding, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidBinding, err, "cannot read binding file %s", path)
	}

	var b binding
	if err := toml.Unmarshal(data, &b); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidBinding, err, "cannot parse binding file %s", path)
	}

	if b.Columns.Weight != "" {
		if err := apperrors.ValidateColumnName(b.Columns.Weight); err != nil {
			return nil, err
		}
	}

	return &b, nil
}

// resolveOptions merges command-line flags with an optional binding sidecar.
// Explicit flags win over sidecar values, which win over defaults.
type resolveInput struct {
	bindingPath string // --binding
	weightFlag  string // --weight (empty means unset)
	modeFlag    string // --mode (empty means unset)
}

type resolvedOptions struct {
	weightColumn string
	mode         string
}

func resolveOptions(in resolveInput) (resolvedOptions, error) {
	out := resolvedOptions{
		weightColumn: "weight",
		mode:         "directed",
	}

	if in.bindingPath != "" {
		b, err := loadBinding(in.bindingPath)
		if err != nil {
			return resolvedOptions{}, err
		}
		if b.Columns.Weight != "" {
			out.weightColumn = b.Columns.Weight
		}
		if b.Graph.Mode != "" {
			out.mode = b.Graph.Mode
		}
	}

	if in.weightFlag != "" {
		if err := apperrors.ValidateColumnName(in.weightFlag); err != nil {
			return resolvedOptions{}, err
		}
		out.weightColumn = in.weightFlag
	}
	if in.modeFlag != "" {
		out.mode = in.modeFlag
	}

	return out, nil
}
