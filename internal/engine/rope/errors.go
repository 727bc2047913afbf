package rope

import (
	"errors"
	"fmt"
)

// Errors carried by panics from range-taking operations.
var (
	// ErrInvalidRange indicates a range whose start lies past its end.
	ErrInvalidRange = errors.New("invalid range")

	// ErrUnsupportedBound indicates a bound kind the operation does not accept,
	// such as an excluded start passed to Delete.
	ErrUnsupportedBound = errors.New("unsupported range bound")

	// ErrOffsetOutOfRange indicates an offset that cannot be represented.
	ErrOffsetOutOfRange = errors.New("offset out of range")
)

// RangeError describes a caller-contract violation. Operations panic with a
// *RangeError; use errors.Is on the recovered value to classify it.
type RangeError struct {
	Op    string
	Range Range
	Err   error
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("rope: %s %s: %v", e.Op, e.Range, e.Err)
}

func (e *RangeError) Unwrap() error {
	return e.Err
}

func panicRange(op string, rg Range, err error) {
	panic(&RangeError{Op: op, Range: rg, Err: err})
}
