package graphview

// Column names the View requires or defaults to. The start and end node
// columns are fixed by contract; the weight column name is configurable
// and only defaults to "weight" when the caller asks for the default.
const (
	// StartNodeColumn is the required source-vertex column name.
	StartNodeColumn = "start_node"

	// EndNodeColumn is the required target-vertex column name.
	EndNodeColumn = "end_node"

	// DefaultWeightColumn is the conventional weight column name.
	DefaultWeightColumn = "weight"
)
