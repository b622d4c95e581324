package ballot

import (
	"github.com/iov-one/yieldvote"
	"github.com/iov-one/yieldvote/errors"
)

// Tally accumulates the votes of the current cycle. Weights are aligned with
// the active project list.
type Tally struct {
	Weights    []uint64
	TotalVotes uint64
	Voters     []yieldvote.Address
}

func (t *Tally) Validate() error {
	for i, v := range t.Voters {
		if err := v.Validate(); err != nil {
			return errors.Wrapf(err, "voter #%d", i)
		}
	}
	var sum uint64
	for _, w := range t.Weights {
		if sum+w < sum {
			return errors.Wrap(errors.ErrOverflow, "weights")
		}
		sum += w
	}
	if sum > t.TotalVotes {
		return errors.Wrapf(errors.ErrState, "weights %d exceed total votes %d", sum, t.TotalVotes)
	}
	return nil
}

// VoteRecord is the vote cast by a single account in the current cycle.
type VoteRecord struct {
	LastVoted int64
	Power     uint64
	Points    []uint64
	Sum       uint64
	Projects  []yieldvote.Address
}

func (r *VoteRecord) Validate() error {
	if len(r.Points) != len(r.Projects) {
		return errors.Wrap(ErrProjectCountMismatch, "record")
	}
	if r.Sum == 0 {
		return errors.Wrap(ErrZeroVote, "record")
	}
	return nil
}

// Window is the height range over which the voting power is measured.
type Window struct {
	Start int64
	End   int64
}

// Rules are the configured limits a vote must satisfy.
type Rules struct {
	// MinVotingPower is the lowest power allowed to vote. A vote without
	// any power is never accepted, regardless of this value.
	MinVotingPower uint64
	// MaxPoints is the highest value a single project can be given.
	MaxPoints uint64
	// Precision scales the intermediate results of weight computation.
	Precision uint64
}

var tallyKey = []byte("tally")
