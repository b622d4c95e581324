package ballot

import "github.com/iov-one/yieldvote/errors"

var (
	ErrAlreadyVoted            = errors.Register(1100, "already voted in this cycle")
	ErrBelowMinimumVotingPower = errors.Register(1101, "voting power below minimum")
	ErrProjectCountMismatch    = errors.Register(1102, "points do not match projects")
	ErrPointsTooLarge          = errors.Register(1103, "points too large")
	ErrZeroVote                = errors.Register(1104, "zero vote")
)
