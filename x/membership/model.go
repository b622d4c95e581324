package membership

import (
	"github.com/iov-one/yieldvote"
	"github.com/iov-one/yieldvote/errors"
)

// Set is the stored membership state: the active projects and the changes
// waiting for the next commit.
type Set struct {
	Active    []yieldvote.Address
	Additions []yieldvote.Address
	Removals  []yieldvote.Address
}

func (s *Set) Validate() error {
	if err := unique(s.Active, "active"); err != nil {
		return err
	}
	if err := unique(s.Additions, "additions"); err != nil {
		return err
	}
	if err := unique(s.Removals, "removals"); err != nil {
		return err
	}
	for _, p := range s.Additions {
		if yieldvote.IndexOf(s.Active, p) >= 0 {
			return errors.Wrapf(errors.ErrState, "queued addition %s is active", p)
		}
	}
	for _, p := range s.Removals {
		if yieldvote.IndexOf(s.Active, p) < 0 {
			return errors.Wrapf(errors.ErrState, "queued removal %s is not active", p)
		}
	}
	return nil
}

func unique(list []yieldvote.Address, name string) error {
	seen := make(map[string]struct{}, len(list))
	for i, p := range list {
		if err := p.Validate(); err != nil {
			return errors.Wrapf(err, "%s #%d", name, i)
		}
		if _, ok := seen[string(p)]; ok {
			return errors.Wrapf(errors.ErrDuplicate, "%s: %s", name, p)
		}
		seen[string(p)] = struct{}{}
	}
	return nil
}

// Pending lists the queued membership changes.
type Pending struct {
	Additions []yieldvote.Address
	Removals  []yieldvote.Address
}

var setKey = []byte("projects")
