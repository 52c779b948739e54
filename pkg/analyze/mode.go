package analyze

import (
	"errors"
	"fmt"
)

// Mode selects which edge direction counts as "connected" when an
// algorithm walks the graph. The numeric values are part of the wire
// contract with hosts and must not change.
type Mode int

const (
	// ModeDirected follows edges from source to target.
	ModeDirected Mode = 1

	// ModeReversed follows edges from target to source.
	ModeReversed Mode = 2

	// ModeUndirected ignores edge direction entirely.
	ModeUndirected Mode = 3
)

// ErrInvalidMode indicates a direction mode outside the defined set.
// Mode errors surface immediately; they are never collapsed.
var ErrInvalidMode = errors.New("analyze: invalid direction mode")

// Valid reports whether m is one of the defined modes.
func (m Mode) Valid() bool {
	return m == ModeDirected || m == ModeReversed || m == ModeUndirected
}

// String returns the lowercase mode name.
func (m Mode) String() string {
	switch m {
	case ModeDirected:
		return "directed"
	case ModeReversed:
		return "reversed"
	case ModeUndirected:
		return "undirected"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// ParseMode resolves a mode name as accepted on the command line.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "directed":
		return ModeDirected, nil
	case "reversed":
		return ModeReversed, nil
	case "undirected":
		return ModeUndirected, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidMode, s)
	}
}
