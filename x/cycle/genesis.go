package cycle

import (
	"github.com/iov-one/yieldvote"
	"github.com/iov-one/yieldvote/errors"
)

// Genesis is the initial state of the engine.
type Genesis struct {
	Config   AdminConfig         `json:"config"`
	Projects []yieldvote.Address `json:"projects"`
	// StartHeight is the height the first cycle is anchored at. Voting
	// opens once the chain reaches it.
	StartHeight int64 `json:"start_height"`
}

func (g *Genesis) Validate() error {
	if err := g.Config.Validate(); err != nil {
		return errors.Wrap(err, "config")
	}
	if g.StartHeight < 0 {
		return errors.Wrap(errors.ErrInput, "negative start height")
	}
	for i, p := range g.Projects {
		if err := p.Validate(); err != nil {
			return errors.Wrapf(err, "project #%d", i)
		}
		if yieldvote.IndexOf(g.Projects[:i], p) >= 0 {
			return errors.Wrapf(errors.ErrDuplicate, "project %s", p)
		}
	}
	return nil
}
