package power

import "github.com/iov-one/yieldvote/errors"

var (
	// ErrInvalidRange is returned when the start height is not lower than
	// the end height.
	ErrInvalidRange = errors.Register(1000, "invalid height range")

	// ErrFutureEnd is returned when the range ends above the current block
	// height.
	ErrFutureEnd = errors.Register(1001, "range ends in the future")

	// ErrNoHistory is returned for an account that never had a balance.
	ErrNoHistory = errors.Register(1002, "no balance history")
)
