package ballot

import (
	"context"
	"math/big"

	"github.com/iov-one/yieldvote"
	"github.com/iov-one/yieldvote/errors"
	"github.com/iov-one/yieldvote/orm"
	"github.com/iov-one/yieldvote/x/power"
)

// Ledger stores the tally of the current cycle and the votes it is made of.
type Ledger struct {
	tally  orm.Bucket
	votes  orm.Bucket
	reader power.CheckpointReader
}

// NewLedger returns a vote ledger measuring voting power with the balance
// history provided by given reader.
func NewLedger(r power.CheckpointReader) *Ledger {
	return &Ledger{
		tally:  orm.NewBucket("ballot"),
		votes:  orm.NewBucket("ballot_vt"),
		reader: r,
	}
}

// Tally returns the votes accumulated in the current cycle.
func (l *Ledger) Tally(db yieldvote.ReadOnlyKVStore) (*Tally, error) {
	var t Tally
	if err := l.tally.One(db, tallyKey, &t); err != nil {
		return nil, errors.Wrap(err, "tally")
	}
	return &t, nil
}

// Vote returns the vote cast by given account in the current cycle.
func (l *Ledger) Vote(db yieldvote.ReadOnlyKVStore, voter yieldvote.Address) (*VoteRecord, error) {
	var r VoteRecord
	if err := l.votes.One(db, voter, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

// Reset drops all votes of the current cycle and starts an empty tally for
// given number of projects.
func (l *Ledger) Reset(db yieldvote.KVStore, projectCount int) error {
	if projectCount < 0 {
		return errors.Wrapf(errors.ErrInput, "project count %d", projectCount)
	}
	switch t, err := l.Tally(db); {
	case err == nil:
		for _, v := range t.Voters {
			if err := l.votes.Delete(db, v); err != nil {
				return err
			}
		}
	case errors.ErrNotFound.Is(err):
		// First cycle, nothing to clear.
	default:
		return err
	}
	return l.tally.Put(db, tallyKey, &Tally{Weights: make([]uint64, projectCount)})
}

// CastVote adds the vote of given account to the tally. Points are aligned
// with projects, the current active list. Voting power is measured over the
// window.
func (l *Ledger) CastVote(
	ctx context.Context,
	db yieldvote.KVStore,
	voter yieldvote.Address,
	points []uint64,
	projects []yieldvote.Address,
	window Window,
	rules Rules,
) error {
	if err := voter.Validate(); err != nil {
		return errors.Wrap(err, "voter")
	}
	height, ok := yieldvote.GetHeight(ctx)
	if !ok {
		return errors.Wrap(errors.ErrState, "block height not set")
	}

	switch ok, err := l.votes.Has(db, voter); {
	case err != nil:
		return err
	case ok:
		return errors.Wrapf(ErrAlreadyVoted, "voter %s", voter)
	}

	pw, err := power.VotingPower(ctx, db, l.reader, voter, window.Start, window.End)
	switch {
	case err == nil:
	case power.ErrNoHistory.Is(err):
		return errors.Wrapf(ErrBelowMinimumVotingPower, "voter %s never held a balance", voter)
	default:
		return errors.Wrap(err, "voting power")
	}
	minPower := rules.MinVotingPower
	if minPower == 0 {
		minPower = 1
	}
	if pw < minPower {
		return errors.Wrapf(ErrBelowMinimumVotingPower, "power %d, minimum %d", pw, minPower)
	}

	if len(points) != len(projects) {
		return errors.Wrapf(ErrProjectCountMismatch, "%d points, %d projects", len(points), len(projects))
	}
	var sum uint64
	for i, p := range points {
		if p > rules.MaxPoints {
			return errors.Wrapf(ErrPointsTooLarge, "project #%d: %d > %d", i, p, rules.MaxPoints)
		}
		// Each value is at most MaxPoints so only an absurd project
		// count can overflow.
		if sum+p < sum {
			return errors.Wrap(errors.ErrOverflow, "points sum")
		}
		sum += p
	}
	if sum == 0 {
		return errors.Wrap(ErrZeroVote, "all points are zero")
	}

	weights, err := Weights(points, pw, rules.Precision)
	if err != nil {
		return err
	}

	t, err := l.Tally(db)
	if err != nil {
		return err
	}
	if len(t.Weights) != len(projects) {
		return errors.Wrapf(errors.ErrState, "tally of %d projects, %d active", len(t.Weights), len(projects))
	}
	for i, w := range weights {
		if t.Weights[i]+w < t.Weights[i] {
			return errors.Wrapf(errors.ErrOverflow, "weight of project #%d", i)
		}
		t.Weights[i] += w
	}
	if t.TotalVotes+pw < t.TotalVotes {
		return errors.Wrap(errors.ErrOverflow, "total votes")
	}
	t.TotalVotes += pw
	t.Voters = append(t.Voters, voter)

	if err := l.tally.Put(db, tallyKey, t); err != nil {
		return err
	}
	rec := &VoteRecord{
		LastVoted: height,
		Power:     pw,
		Points:    points,
		Sum:       sum,
		Projects:  projects,
	}
	if err := l.votes.Put(db, voter, rec); err != nil {
		return err
	}

	yieldvote.GetLogger(ctx).Info("vote cast",
		"voter", voter,
		"points", points,
		"projects", projects,
		"power", pw)
	return nil
}

// Weights normalizes points so that they sum up to at most given power.
//
// Each weight is computed independently as
//   floor(points[i] * power * precision / sum / precision)
// so the rounding of one project never affects another. The total loss is
// lower than the number of projects.
func Weights(points []uint64, power, precision uint64) ([]uint64, error) {
	if precision == 0 {
		return nil, errors.Wrap(errors.ErrInput, "zero precision")
	}
	var sum big.Int
	for _, p := range points {
		sum.Add(&sum, new(big.Int).SetUint64(p))
	}
	if sum.Sign() == 0 {
		return nil, errors.Wrap(ErrZeroVote, "all points are zero")
	}

	pw := new(big.Int).SetUint64(power)
	scale := new(big.Int).SetUint64(precision)
	weights := make([]uint64, len(points))
	for i, p := range points {
		w := new(big.Int).SetUint64(p)
		w.Mul(w, pw)
		w.Mul(w, scale)
		w.Quo(w, &sum)
		w.Quo(w, scale)
		if !w.IsUint64() {
			return nil, errors.Wrapf(errors.ErrOverflow, "weight #%d", i)
		}
		weights[i] = w.Uint64()
	}
	return weights, nil
}
