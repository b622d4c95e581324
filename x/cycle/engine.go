package cycle

import (
	"context"
	"math"
	"math/big"

	"github.com/iov-one/yieldvote"
	"github.com/iov-one/yieldvote/errors"
	"github.com/iov-one/yieldvote/gconf"
	"github.com/iov-one/yieldvote/orm"
	"github.com/iov-one/yieldvote/x/ballot"
	"github.com/iov-one/yieldvote/x/membership"
	"github.com/iov-one/yieldvote/x/power"
)

// AssetLedger is the asset ledger the engine claims yield from and pays
// projects with. Its balance history is the source of voting power.
// Required functionality is implemented by the x/asset extension.
type AssetLedger interface {
	power.CheckpointReader
	Balance(yieldvote.ReadOnlyKVStore, yieldvote.Address) (uint64, error)
	AccruedYield(yieldvote.ReadOnlyKVStore) (uint64, error)
	ClaimYield(ctx context.Context, db yieldvote.KVStore, amount uint64, to yieldvote.Address) error
	Transfer(ctx context.Context, db yieldvote.KVStore, from, to yieldvote.Address, amount uint64) error
}

// Engine drives distribution cycles.
type Engine struct {
	addr    yieldvote.Address
	assets  AssetLedger
	ballots *ballot.Ledger
	queue   *membership.Queue
	state   orm.Bucket
}

// NewEngine returns an engine paying projects from its own account on given
// ledger.
func NewEngine(assets AssetLedger) *Engine {
	return &Engine{
		addr:    yieldvote.NewAddress([]byte("cycle/engine")),
		assets:  assets,
		ballots: ballot.NewLedger(assets),
		queue:   membership.NewQueue(),
		state:   orm.NewBucket("cycle"),
	}
}

// Address returns the account the engine claims yield to.
func (e *Engine) Address() yieldvote.Address {
	return e.addr
}

// Init stores the initial configuration, project list and cycle anchor.
func (e *Engine) Init(ctx context.Context, db yieldvote.KVStore, g Genesis) error {
	if err := g.Validate(); err != nil {
		return errors.Wrap(err, "genesis")
	}
	if yieldvote.IndexOf(g.Projects, e.addr) >= 0 {
		return errors.Wrap(errors.ErrInput, "engine account cannot be a project")
	}
	switch ok, err := e.state.Has(db, stateKey); {
	case err != nil:
		return err
	case ok:
		return errors.Wrap(errors.ErrDuplicate, "engine already initialized")
	}
	if err := gconf.Save(db, configPkg, &g.Config); err != nil {
		return errors.Wrap(err, "config")
	}
	if err := e.queue.Init(db, g.Projects); err != nil {
		return err
	}
	if err := e.ballots.Reset(db, len(g.Projects)); err != nil {
		return err
	}
	if err := e.state.Put(db, stateKey, &State{LastClaimedHeight: g.StartHeight}); err != nil {
		return err
	}
	yieldvote.GetLogger(ctx).Info("cycle initialized",
		"projects", len(g.Projects),
		"start", g.StartHeight,
		"owner", g.Config.Owner)
	return nil
}

// Config returns the current configuration.
func (e *Engine) Config(db yieldvote.ReadOnlyKVStore) (*AdminConfig, error) {
	var c AdminConfig
	if err := gconf.Load(db, configPkg, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// State returns the progress of the current cycle.
func (e *Engine) State(db yieldvote.ReadOnlyKVStore) (*State, error) {
	var s State
	if err := e.state.One(db, stateKey, &s); err != nil {
		return nil, errors.Wrap(err, "cycle state")
	}
	return &s, nil
}

// Projects returns the active projects.
func (e *Engine) Projects(db yieldvote.ReadOnlyKVStore) ([]yieldvote.Address, error) {
	return e.queue.Projects(db)
}

// Pending returns the membership changes applied by the next distribution.
func (e *Engine) Pending(db yieldvote.ReadOnlyKVStore) (*membership.Pending, error) {
	return e.queue.Pending(db)
}

// Tally returns the votes accumulated in the current cycle.
func (e *Engine) Tally(db yieldvote.ReadOnlyKVStore) (*ballot.Tally, error) {
	return e.ballots.Tally(db)
}

// VotingWindow returns the height range voting power of the current cycle
// is measured over. It is the cycle length preceding the last claim.
func (e *Engine) VotingWindow(db yieldvote.ReadOnlyKVStore) (ballot.Window, error) {
	s, err := e.State(db)
	if err != nil {
		return ballot.Window{}, err
	}
	c, err := e.Config(db)
	if err != nil {
		return ballot.Window{}, err
	}
	return ballot.Window{
		Start: s.LastClaimedHeight - c.CycleLength,
		End:   s.LastClaimedHeight,
	}, nil
}

// VotingPower returns the power of given account in the current cycle.
func (e *Engine) VotingPower(ctx context.Context, db yieldvote.ReadOnlyKVStore, addr yieldvote.Address) (uint64, error) {
	w, err := e.VotingWindow(db)
	if err != nil {
		return 0, err
	}
	return power.VotingPower(ctx, db, e.assets, addr, w.Start, w.End)
}

// HistoricalVotingPower returns the power of given account over any past
// height range.
func (e *Engine) HistoricalVotingPower(ctx context.Context, db yieldvote.ReadOnlyKVStore, addr yieldvote.Address, start, end int64) (uint64, error) {
	return power.VotingPower(ctx, db, e.assets, addr, start, end)
}

// CastVote registers the vote of given account for the active projects.
func (e *Engine) CastVote(ctx context.Context, db yieldvote.KVStore, voter yieldvote.Address, points []uint64) error {
	c, err := e.Config(db)
	if err != nil {
		return err
	}
	w, err := e.VotingWindow(db)
	if err != nil {
		return err
	}
	projects, err := e.queue.Projects(db)
	if err != nil {
		return err
	}
	return e.ballots.CastVote(ctx, db, voter, points, projects, w, c.rules())
}

// Resolve returns nil if the cycle can be distributed now. Otherwise the
// returned error tells why not.
func (e *Engine) Resolve(ctx context.Context, db yieldvote.ReadOnlyKVStore) error {
	height, ok := yieldvote.GetHeight(ctx)
	if !ok {
		return errors.Wrap(errors.ErrState, "block height not set")
	}
	projects, err := e.queue.Projects(db)
	if err != nil {
		return err
	}
	if len(projects) == 0 {
		return errors.Wrap(ErrNoProjects, "nothing to distribute to")
	}

	s, err := e.State(db)
	if err != nil {
		return err
	}
	c, err := e.Config(db)
	if err != nil {
		return err
	}
	if c.CycleLength > math.MaxInt64-s.LastClaimedHeight {
		return errors.Wrapf(ErrTooSoon, "cycle of %d blocks never ends", c.CycleLength)
	}
	if next := s.LastClaimedHeight + c.CycleLength; height < next {
		return errors.Wrapf(ErrTooSoon, "next distribution at %d, now %d", next, height)
	}

	t, err := e.ballots.Tally(db)
	if err != nil {
		return err
	}
	if t.TotalVotes == 0 {
		return errors.Wrap(ErrNoVotes, "tally is empty")
	}

	bal, err := e.assets.Balance(db, e.addr)
	if err != nil {
		return errors.Wrap(err, "engine balance")
	}
	accrued, err := e.assets.AccruedYield(db)
	if err != nil {
		return errors.Wrap(err, "accrued yield")
	}
	n := uint64(len(projects))
	// An overflowing sum is more than enough.
	if sum := bal + accrued; sum >= bal && sum < n {
		return errors.Wrapf(ErrYieldTooLow, "%d available for %d projects", sum, n)
	}
	return nil
}

// Distribute claims all accrued yield and pays it to the active projects.
// It fails with ErrNotResolved unless Resolve allows it. The message of
// that error carries the reason and its code.
//
// Each project receives an equal share of half of the engine balance and a
// vote proportional share of the other half. Rounding leftovers stay on the
// engine account and are distributed in the next cycle.
func (e *Engine) Distribute(ctx context.Context, db yieldvote.KVStore) (*Payout, error) {
	if err := e.Resolve(ctx, db); err != nil {
		return nil, errors.Wrapf(ErrNotResolved, "%s (code %d)", err, errors.Code(err))
	}
	height, _ := yieldvote.GetHeight(ctx)

	accrued, err := e.assets.AccruedYield(db)
	if err != nil {
		return nil, errors.Wrap(err, "accrued yield")
	}
	if err := e.assets.ClaimYield(ctx, db, accrued, e.addr); err != nil {
		return nil, errors.Wrap(err, "claim yield")
	}
	if err := e.state.Put(db, stateKey, &State{LastClaimedHeight: height}); err != nil {
		return nil, err
	}

	c, err := e.Config(db)
	if err != nil {
		return nil, err
	}
	projects, err := e.queue.Projects(db)
	if err != nil {
		return nil, err
	}
	t, err := e.ballots.Tally(db)
	if err != nil {
		return nil, err
	}
	if len(t.Weights) != len(projects) {
		return nil, errors.Wrapf(errors.ErrState, "tally of %d projects, %d active", len(t.Weights), len(projects))
	}
	bal, err := e.assets.Balance(db, e.addr)
	if err != nil {
		return nil, errors.Wrap(err, "engine balance")
	}

	half := bal / 2
	p := &Payout{
		Height:      height,
		Claimed:     accrued,
		Base:        half / uint64(len(projects)),
		Projects:    projects,
		Voted:       make([]uint64, len(projects)),
		Percentages: make([]uint64, len(projects)),
	}
	for i, w := range t.Weights {
		p.Percentages[i], p.Voted[i] = share(half, w, t.TotalVotes, c.Precision)
	}

	for i, project := range projects {
		amount := p.Base + p.Voted[i]
		// Share is too small to be paid.
		if amount == 0 {
			continue
		}
		if err := e.assets.Transfer(ctx, db, e.addr, project, amount); err != nil {
			return nil, errors.Wrapf(err, "pay %s", project)
		}
	}

	yieldvote.GetLogger(ctx).Info("yield distributed",
		"voted", p.Voted,
		"base", p.Base,
		"percentages", p.Percentages,
		"projects", p.Projects,
		"claimed", p.Claimed,
		"height", p.Height)

	next, err := e.queue.Commit(ctx, db)
	if err != nil {
		return nil, errors.Wrap(err, "commit membership")
	}
	if err := e.ballots.Reset(db, len(next)); err != nil {
		return nil, errors.Wrap(err, "reset tally")
	}
	return p, nil
}

// share returns the scaled vote percentage of a weight and the part of the
// amount it is worth. Weights never exceed the total, so both results fit
// in their type.
func share(amount, weight, total, precision uint64) (pct, value uint64) {
	scale := new(big.Int).SetUint64(precision)

	r := new(big.Int).SetUint64(weight)
	r.Mul(r, scale)
	r.Quo(r, new(big.Int).SetUint64(total))

	v := new(big.Int).SetUint64(amount)
	v.Mul(v, r)
	v.Quo(v, scale)
	return r.Uint64(), v.Uint64()
}
