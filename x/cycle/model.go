package cycle

import (
	"github.com/iov-one/yieldvote"
	"github.com/iov-one/yieldvote/errors"
	"github.com/iov-one/yieldvote/x/ballot"
)

// AdminConfig holds the owner managed parameters of the engine.
type AdminConfig struct {
	Owner yieldvote.Address `json:"owner"`
	// MinVotingPower is the lowest voting power accepted from a voter.
	MinVotingPower uint64 `json:"min_voting_power"`
	// MaxPoints is the highest value a voter can give to a single project.
	MaxPoints uint64 `json:"max_points"`
	// Precision scales intermediate results of weight and share
	// computation.
	Precision uint64 `json:"precision"`
	// CycleLength is the minimal number of blocks between two
	// distributions. It is also the length of the voting power window.
	CycleLength int64 `json:"cycle_length"`
}

func (c *AdminConfig) Validate() error {
	if err := c.Owner.Validate(); err != nil {
		return errors.Wrap(err, "owner")
	}
	if c.MaxPoints == 0 {
		return errors.Wrap(errors.ErrInput, "max points must be positive")
	}
	if c.Precision == 0 {
		return errors.Wrap(errors.ErrInput, "precision must be positive")
	}
	if c.CycleLength <= 0 {
		return errors.Wrap(errors.ErrInput, "cycle length must be positive")
	}
	return nil
}

func (c *AdminConfig) GetOwner() yieldvote.Address {
	return c.Owner
}

func (c *AdminConfig) rules() ballot.Rules {
	return ballot.Rules{
		MinVotingPower: c.MinVotingPower,
		MaxPoints:      c.MaxPoints,
		Precision:      c.Precision,
	}
}

// State is the progress of the cycle.
type State struct {
	LastClaimedHeight int64
}

func (s *State) Validate() error {
	if s.LastClaimedHeight < 0 {
		return errors.Wrap(errors.ErrState, "negative last claimed height")
	}
	return nil
}

// Payout describes a single distribution.
type Payout struct {
	Height  int64
	Claimed uint64
	// Base is the amount each project received regardless of votes.
	Base     uint64
	Projects []yieldvote.Address
	// Voted is the vote proportional amount paid to each project.
	Voted []uint64
	// Percentages are the vote shares of each project, scaled by the
	// configured precision.
	Percentages []uint64
}

const configPkg = "cycle"

var stateKey = []byte("state")
