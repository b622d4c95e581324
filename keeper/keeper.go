/*
Package keeper triggers distributions automatically.

A keeper periodically asks a resolver if there is work to be done and, if
so, executes the returned payload. It needs no knowledge about the work
itself, which makes it usable by any external automation as well.
*/
package keeper

import (
	"context"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/iov-one/yieldvote/errors"
	"github.com/tendermint/tendermint/libs/log"
)

// Target is implemented by app.Service.
type Target interface {
	// Resolver returns true and a payload if there is work to be done.
	// Otherwise the payload describes why not.
	Resolver(context.Context) (bool, []byte)
	// Call executes a payload returned by the resolver.
	Call(context.Context, []byte) error
}

// Keeper runs the check-then-call loop for a single target.
type Keeper struct {
	target   Target
	interval time.Duration
	logger   log.Logger
	sched    *gocron.Scheduler
}

// NewKeeper returns a keeper checking given target every interval.
func NewKeeper(target Target, interval time.Duration, logger log.Logger) *Keeper {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	return &Keeper{
		target:   target,
		interval: interval,
		logger:   logger.With("module", "keeper"),
		sched:    gocron.NewScheduler(time.UTC),
	}
}

// Tick checks the target once and calls it when the resolver allows.
func (k *Keeper) Tick(ctx context.Context) error {
	ok, payload := k.target.Resolver(ctx)
	if !ok {
		k.logger.Debug("nothing to do", "reason", string(payload))
		return nil
	}
	if err := k.target.Call(ctx, payload); err != nil {
		k.logger.Error("call failed", "payload", string(payload), "err", err)
		return errors.Wrapf(err, "call %q", payload)
	}
	k.logger.Info("call executed", "payload", string(payload))
	return nil
}

// Start schedules Tick to run every interval in the background. A tick
// never starts before the previous one finished.
func (k *Keeper) Start(ctx context.Context) error {
	if k.interval <= 0 {
		return errors.Wrapf(errors.ErrInput, "interval %s", k.interval)
	}
	_, err := k.sched.Every(k.interval).SingletonMode().Do(func() {
		// Failures are logged by Tick.
		_ = k.Tick(ctx)
	})
	if err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	k.sched.StartAsync()
	return nil
}

// Stop ends the background checks and waits for a running one to finish.
func (k *Keeper) Stop() {
	k.sched.Stop()
}
