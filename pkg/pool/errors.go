package pool

import "errors"

var (
	// ErrAllocationExhausted indicates that a request does not fit in the
	// remaining capacity of the current generation.
	ErrAllocationExhausted = errors.New("pool: allocation exhausted")

	// ErrReserveFailed indicates that the backing block for a new generation
	// could not be reserved.
	ErrReserveFailed = errors.New("pool: reserve failed")
)

// IsExhausted reports whether err is (or wraps) ErrAllocationExhausted.
func IsExhausted(err error) bool {
	return errors.Is(err, ErrAllocationExhausted)
}
