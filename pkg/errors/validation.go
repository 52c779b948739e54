package errors

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// columnNamePattern matches conventional tabular column identifiers:
// a letter or underscore followed by letters, digits or underscores.
var columnNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ValidateColumnName validates a user-supplied column name before it is
// bound against a dataset schema.
//
// The validation rules are intentionally conservative:
//   - No empty names
//   - No control characters or whitespace
//   - Identifier-shaped (letter or underscore start, then word characters)
//   - Maximum length of 128 characters
func ValidateColumnName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidBinding, "column name cannot be empty")
	}

	if len(name) > 128 {
		return New(ErrCodeInvalidBinding, "column name too long (max 128 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidBinding, "column name contains invalid control characters")
		}
	}

	if !columnNamePattern.MatchString(name) {
		return New(ErrCodeInvalidBinding, "column name %q is not a valid identifier", name)
	}

	return nil
}

// ValidateDatasetPath validates a dataset file path for safety.
// It rejects paths that could be used for traversal outside the intended
// working area when the path arrives from an untrusted binding file.
func ValidateDatasetPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidDataset, "dataset path cannot be empty")
	}

	if strings.ContainsRune(path, '\x00') {
		return New(ErrCodeInvalidDataset, "dataset path contains null byte")
	}

	for _, r := range path {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidDataset, "dataset path contains invalid control characters")
		}
	}

	return nil
}

// ParseVertexArg parses a command-line vertex argument into a vertex
// identifier. Vertex identifiers are signed 64-bit integers.
func ParseVertexArg(arg string) (int64, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(arg), 10, 64)
	if err != nil {
		return 0, Wrap(ErrCodeInvalidInput, err, "vertex argument %q is not an integer", arg)
	}
	return v, nil
}
