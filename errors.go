package motley

import "errors"

// Every failure returned by this package wraps exactly one of these kinds,
// so callers can branch with errors.Is without parsing messages.
// Operations attach their own context, in the form "Method(): detail: kind".
var (
	// ErrColumnNotFound is returned when a named column does not exist.
	ErrColumnNotFound = errors.New("column not found")

	// ErrDuplicateColumn is returned when an operation would create two
	// columns with the same name.
	ErrDuplicateColumn = errors.New("duplicate column name")

	// ErrLengthMismatch is returned when a sequence of values does not match
	// the DataFrame's row count, or when two DataFrames that must align do not.
	ErrLengthMismatch = errors.New("length mismatch")

	// ErrInvalidArgument is returned for malformed input, such as a negative
	// row count or a nil record.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNonNumericColumn is returned by operations that require a numeric
	// dtype, such as Mode.
	ErrNonNumericColumn = errors.New("non-numeric column")

	// ErrRowNotFound is returned when no row carries the requested label.
	ErrRowNotFound = errors.New("row not found")

	// ErrEmptyNumericColumn is returned by aggregations that are undefined
	// over zero numeric values, such as Min, Max, and Quartiles.
	ErrEmptyNumericColumn = errors.New("no numeric values in column")
)
