package importfilter

import "errors"

// Sentinel errors for load and export failures. Per-value coercion
// problems are never surfaced as errors; see the coercion rules in load.go.
var (
	// ErrUnsupportedFormat indicates the filename extension is not a
	// recognized input format.
	ErrUnsupportedFormat = errors.New("importfilter: unsupported file format")

	// ErrParse indicates the format parser could not produce any rows.
	ErrParse = errors.New("importfilter: unable to parse input")

	// ErrEmptyTable indicates an export was requested for a table with no columns.
	ErrEmptyTable = errors.New("importfilter: table has no columns")

	// errDuplicateColumnName is returned when a file contains duplicate column names.
	errDuplicateColumnName = errors.New("duplicate column name")
)
