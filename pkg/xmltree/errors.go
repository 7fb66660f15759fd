package xmltree

import "errors"

var (
	// ErrNotFound is returned when a required path matches no node.
	ErrNotFound = errors.New("node not found")

	// ErrAmbiguous is returned when a path expected to match a single node
	// matches more than one.
	ErrAmbiguous = errors.New("ambiguous match")

	// ErrMissingValue is returned when a node exists but holds no value.
	ErrMissingValue = errors.New("missing value")
)
