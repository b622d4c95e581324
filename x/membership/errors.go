package membership

import "github.com/iov-one/yieldvote/errors"

var (
	// ErrAlreadyMember is returned when queueing the addition of an active
	// project.
	ErrAlreadyMember = errors.Register(1200, "already a member")

	// ErrAlreadyQueued is returned when the same change is queued twice.
	ErrAlreadyQueued = errors.Register(1201, "already queued")
)
