package cycle

import (
	"context"

	"github.com/iov-one/yieldvote"
	"github.com/iov-one/yieldvote/errors"
	"github.com/iov-one/yieldvote/gconf"
)

// Admin is the capability of the configuration owner. It is valid only for
// the store it was obtained with.
type Admin struct {
	ctx  context.Context
	db   yieldvote.KVStore
	e    *Engine
	conf AdminConfig
}

// Admin returns the owner capability if caller is the configuration owner.
func (e *Engine) Admin(ctx context.Context, db yieldvote.KVStore, caller yieldvote.Address) (*Admin, error) {
	a := &Admin{ctx: ctx, db: db, e: e}
	if err := gconf.Authorize(db, configPkg, &a.conf, caller); err != nil {
		return nil, err
	}
	return a, nil
}

// Config returns the configuration as seen by this capability.
func (a *Admin) Config() AdminConfig {
	return a.conf
}

// SetMinVotingPower changes the lowest voting power accepted from a voter.
func (a *Admin) SetMinVotingPower(v uint64) error {
	c := a.conf
	c.MinVotingPower = v
	return a.save(c, "min_voting_power", v)
}

// SetMaxPoints changes the highest value a voter can give to one project.
func (a *Admin) SetMaxPoints(v uint64) error {
	c := a.conf
	c.MaxPoints = v
	return a.save(c, "max_points", v)
}

// SetPrecision changes the scale of weight and share computation.
func (a *Admin) SetPrecision(v uint64) error {
	c := a.conf
	c.Precision = v
	return a.save(c, "precision", v)
}

// SetCycleLength changes the number of blocks between two distributions.
func (a *Admin) SetCycleLength(v int64) error {
	c := a.conf
	c.CycleLength = v
	return a.save(c, "cycle_length", v)
}

// TransferOwnership hands the configuration over to a new owner. This
// capability remains usable only until the end of the current operation.
func (a *Admin) TransferOwnership(owner yieldvote.Address) error {
	c := a.conf
	c.Owner = owner
	return a.save(c, "owner", owner)
}

func (a *Admin) save(c AdminConfig, field string, value interface{}) error {
	if err := gconf.Save(a.db, configPkg, &c); err != nil {
		return errors.Wrapf(err, "set %s", field)
	}
	a.conf = c
	yieldvote.GetLogger(a.ctx).Info("configuration changed", "field", field, "value", value)
	return nil
}

// QueueAddition schedules a project to join at the end of the cycle.
func (a *Admin) QueueAddition(project yieldvote.Address) error {
	if project.Equals(a.e.addr) {
		return errors.Wrap(errors.ErrInput, "engine account cannot be a project")
	}
	return a.e.queue.QueueAddition(a.ctx, a.db, project)
}

// QueueRemoval schedules a project to leave at the end of the cycle.
func (a *Admin) QueueRemoval(project yieldvote.Address) error {
	return a.e.queue.QueueRemoval(a.ctx, a.db, project)
}

// UnqueueAddition cancels a scheduled addition.
func (a *Admin) UnqueueAddition(project yieldvote.Address) error {
	return a.e.queue.UnqueueAddition(a.ctx, a.db, project)
}

// UnqueueRemoval cancels a scheduled removal.
func (a *Admin) UnqueueRemoval(project yieldvote.Address) error {
	return a.e.queue.UnqueueRemoval(a.ctx, a.db, project)
}
