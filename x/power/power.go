package power

import (
	"context"
	"math/bits"

	"github.com/iov-one/yieldvote"
	"github.com/iov-one/yieldvote/errors"
)

// CheckpointReader gives read access to the balance history of accounts.
// It is implemented by the asset ledger.
type CheckpointReader interface {
	// NumCheckpoints returns how many checkpoints are recorded for given
	// account.
	NumCheckpoints(db yieldvote.ReadOnlyKVStore, addr yieldvote.Address) (int, error)
	// CheckpointAt returns the checkpoint with given index. Index 0 is the
	// oldest one.
	CheckpointAt(db yieldvote.ReadOnlyKVStore, addr yieldvote.Address, index int) (yieldvote.Checkpoint, error)
}

// VotingPower returns the balance of given account integrated over the
// [start, end] height range. The range must not end above the block height
// declared in the context.
func VotingPower(
	ctx context.Context,
	db yieldvote.ReadOnlyKVStore,
	r CheckpointReader,
	addr yieldvote.Address,
	start, end int64,
) (uint64, error) {
	if start >= end {
		return 0, errors.Wrapf(ErrInvalidRange, "start %d, end %d", start, end)
	}
	height, ok := yieldvote.GetHeight(ctx)
	if !ok {
		return 0, errors.Wrap(errors.ErrState, "block height not set")
	}
	if end > height {
		return 0, errors.Wrapf(ErrFutureEnd, "end %d, height %d", end, height)
	}

	n, err := r.NumCheckpoints(db, addr)
	if err != nil {
		return 0, errors.Wrap(err, "count checkpoints")
	}
	if n == 0 {
		return 0, errors.Wrapf(ErrNoHistory, "account %s", addr)
	}
	at := func(i int) (yieldvote.Checkpoint, error) {
		return r.CheckpointAt(db, addr, i)
	}
	return integrate(n, at, start, end)
}

// Integrate returns the integral of the balance described by given
// checkpoints over the [start, end] height range. Checkpoints must be
// ordered by strictly increasing height.
func Integrate(cps []yieldvote.Checkpoint, start, end int64) (uint64, error) {
	if start >= end {
		return 0, errors.Wrapf(ErrInvalidRange, "start %d, end %d", start, end)
	}
	at := func(i int) (yieldvote.Checkpoint, error) {
		return cps[i], nil
	}
	return integrate(len(cps), at, start, end)
}

func integrate(n int, at func(int) (yieldvote.Checkpoint, error), start, end int64) (uint64, error) {
	i, err := lastAtOrBelow(n, at, end)
	if err != nil {
		return 0, err
	}

	var total uint64
	upper := end
	for ; i >= 0; i-- {
		cp, err := at(i)
		if err != nil {
			return 0, errors.Wrapf(err, "checkpoint %d", i)
		}
		if cp.Height > upper {
			return 0, errors.Wrapf(errors.ErrState, "checkpoint %d height %d above %d", i, cp.Height, upper)
		}
		lower := cp.Height
		if lower < start {
			lower = start
		}
		hi, area := bits.Mul64(cp.Value, uint64(upper-lower))
		if hi != 0 {
			return 0, errors.Wrap(errors.ErrOverflow, "segment power")
		}
		var carry uint64
		total, carry = bits.Add64(total, area, 0)
		if carry != 0 {
			return 0, errors.Wrap(errors.ErrOverflow, "total power")
		}
		if cp.Height <= start {
			break
		}
		upper = cp.Height
	}
	return total, nil
}

// lastAtOrBelow returns the index of the most recent checkpoint with height
// not greater than given one, or -1 if all checkpoints are above it.
func lastAtOrBelow(n int, at func(int) (yieldvote.Checkpoint, error), height int64) (int, error) {
	lo, hi := 0, n
	for lo < hi {
		mid := int(uint(lo+hi) >> 1)
		cp, err := at(mid)
		if err != nil {
			return 0, errors.Wrapf(err, "checkpoint %d", mid)
		}
		if cp.Height <= height {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo - 1, nil
}
