package qrbyte

import (
	"errors"

	"github.com/RashadAnsari/qrbyte/internal/reedsolomon"
)

// Input errors. Generation is deterministic, so retrying the same input
// fails the same way.
var (
	ErrUnsupportedMode  = errors.New("qrbyte: unsupported data mode")
	ErrInvalidCharacter = errors.New("qrbyte: character not representable as a single byte")
	ErrCountOverflow    = errors.New("qrbyte: character count does not fit the count indicator")
	ErrMessageTooLong   = errors.New("qrbyte: content too long to encode")
)

// Internal faults. These point at a corrupted table or an encoder defect
// and are never caused by input alone.
var (
	ErrCapacityExceeded   = errors.New("qrbyte: BUG: data exceeds codeword capacity")
	ErrShapeMismatch      = errors.New("qrbyte: BUG: bit count does not match symbol shape")
	ErrInvariantViolation = reedsolomon.ErrInvariant
)

// IsInternal reports whether err is an internal fault rather than an
// input error.
func IsInternal(err error) bool {
	return errors.Is(err, ErrCapacityExceeded) ||
		errors.Is(err, ErrShapeMismatch) ||
		errors.Is(err, ErrInvariantViolation)
}
