package asset

import (
	"context"
	"math"

	"github.com/iov-one/yieldvote"
	"github.com/iov-one/yieldvote/errors"
	"github.com/iov-one/yieldvote/orm"
)

// Ledger gives access to balances, balance history and yield. All state is
// kept in the KVStore passed to each call.
type Ledger struct {
	accounts    orm.Bucket
	checkpoints orm.Bucket
	pool        orm.Bucket
}

// NewLedger returns a ledger using the default buckets.
func NewLedger() *Ledger {
	return &Ledger{
		accounts:    orm.NewBucket("asset_acc"),
		checkpoints: orm.NewBucket("asset_cp"),
		pool:        orm.NewBucket("asset_pool"),
	}
}

// Balance returns the current balance of given account. Unknown accounts
// hold nothing.
func (l *Ledger) Balance(db yieldvote.ReadOnlyKVStore, addr yieldvote.Address) (uint64, error) {
	acc, err := l.account(db, addr)
	if err != nil {
		return 0, err
	}
	return acc.Balance, nil
}

// NumCheckpoints returns how many times the balance of given account
// changed at a distinct height.
func (l *Ledger) NumCheckpoints(db yieldvote.ReadOnlyKVStore, addr yieldvote.Address) (int, error) {
	acc, err := l.account(db, addr)
	if err != nil {
		return 0, err
	}
	return int(acc.Checkpoints), nil
}

// CheckpointAt returns the checkpoint of given account with given index.
// Index 0 is the oldest checkpoint.
func (l *Ledger) CheckpointAt(db yieldvote.ReadOnlyKVStore, addr yieldvote.Address, index int) (yieldvote.Checkpoint, error) {
	if index < 0 || uint64(index) > math.MaxUint32 {
		return yieldvote.Checkpoint{}, errors.Wrapf(errors.ErrInput, "index %d", index)
	}
	var cp checkpoint
	if err := l.checkpoints.One(db, checkpointKey(addr, uint32(index)), &cp); err != nil {
		return yieldvote.Checkpoint{}, err
	}
	return yieldvote.Checkpoint{Height: cp.Height, Value: cp.Value}, nil
}

// Mint creates new units on given account.
func (l *Ledger) Mint(ctx context.Context, db yieldvote.KVStore, to yieldvote.Address, amount uint64) error {
	if err := validateAmount(to, amount); err != nil {
		return err
	}
	acc, err := l.account(db, to)
	if err != nil {
		return err
	}
	if acc.Balance+amount < acc.Balance {
		return errors.Wrapf(errors.ErrOverflow, "balance of %s", to)
	}
	return l.setBalance(ctx, db, to, acc, acc.Balance+amount)
}

// Burn destroys units held by given account.
func (l *Ledger) Burn(ctx context.Context, db yieldvote.KVStore, from yieldvote.Address, amount uint64) error {
	if err := validateAmount(from, amount); err != nil {
		return err
	}
	acc, err := l.account(db, from)
	if err != nil {
		return err
	}
	if acc.Balance < amount {
		return errors.Wrapf(errors.ErrInsufficientAmount, "%s holds %d, want %d", from, acc.Balance, amount)
	}
	return l.setBalance(ctx, db, from, acc, acc.Balance-amount)
}

// Transfer moves units between two accounts. It fails if the source
// account does not hold enough.
func (l *Ledger) Transfer(ctx context.Context, db yieldvote.KVStore, from, to yieldvote.Address, amount uint64) error {
	if err := to.Validate(); err != nil {
		return errors.Wrap(err, "recipient")
	}
	if from.Equals(to) {
		return errors.Wrap(errors.ErrInput, "sender is the recipient")
	}
	if err := l.Burn(ctx, db, from, amount); err != nil {
		return errors.Wrap(err, "debit")
	}
	if err := l.Mint(ctx, db, to, amount); err != nil {
		return errors.Wrap(err, "credit")
	}
	yieldvote.GetLogger(ctx).Debug("transfer", "from", from, "to", to, "amount", amount)
	return nil
}

// AccrueYield adds yield to the pool. The yield is owned by nobody until it
// is claimed.
func (l *Ledger) AccrueYield(db yieldvote.KVStore, amount uint64) error {
	p, err := l.loadPool(db)
	if err != nil {
		return err
	}
	if p.Accrued+amount < p.Accrued {
		return errors.Wrap(errors.ErrOverflow, "accrued yield")
	}
	p.Accrued += amount
	return l.pool.Put(db, poolKey, p)
}

// AccruedYield returns the amount of yield that can be claimed.
func (l *Ledger) AccruedYield(db yieldvote.ReadOnlyKVStore) (uint64, error) {
	p, err := l.loadPool(db)
	if err != nil {
		return 0, err
	}
	return p.Accrued, nil
}

// ClaimYield takes given amount out of the yield pool and credits it to the
// recipient.
func (l *Ledger) ClaimYield(ctx context.Context, db yieldvote.KVStore, amount uint64, to yieldvote.Address) error {
	p, err := l.loadPool(db)
	if err != nil {
		return err
	}
	if amount > p.Accrued {
		return errors.Wrapf(errors.ErrInsufficientAmount, "accrued %d, claimed %d", p.Accrued, amount)
	}
	if amount == 0 {
		return nil
	}
	p.Accrued -= amount
	p.Claimed += amount
	if err := l.pool.Put(db, poolKey, p); err != nil {
		return err
	}
	if err := l.Mint(ctx, db, to, amount); err != nil {
		return errors.Wrap(err, "credit yield")
	}
	yieldvote.GetLogger(ctx).Debug("yield claimed", "to", to, "amount", amount)
	return nil
}

func (l *Ledger) account(db yieldvote.ReadOnlyKVStore, addr yieldvote.Address) (*Account, error) {
	var acc Account
	switch err := l.accounts.One(db, addr, &acc); {
	case err == nil:
		return &acc, nil
	case errors.ErrNotFound.Is(err):
		return &Account{}, nil
	default:
		return nil, err
	}
}

func (l *Ledger) loadPool(db yieldvote.ReadOnlyKVStore) (*Pool, error) {
	var p Pool
	switch err := l.pool.One(db, poolKey, &p); {
	case err == nil:
		return &p, nil
	case errors.ErrNotFound.Is(err):
		return &Pool{}, nil
	default:
		return nil, err
	}
}

// setBalance updates the balance and records the change in the account
// history. Several changes within the same block collapse into a single
// checkpoint.
func (l *Ledger) setBalance(ctx context.Context, db yieldvote.KVStore, addr yieldvote.Address, acc *Account, balance uint64) error {
	height, ok := yieldvote.GetHeight(ctx)
	if !ok {
		return errors.Wrap(errors.ErrState, "block height not set")
	}

	index := acc.Checkpoints
	if acc.Checkpoints > 0 {
		var last checkpoint
		if err := l.checkpoints.One(db, checkpointKey(addr, acc.Checkpoints-1), &last); err != nil {
			return errors.Wrap(err, "last checkpoint")
		}
		switch {
		case last.Height == height:
			index = acc.Checkpoints - 1
		case last.Height > height:
			return errors.Wrapf(errors.ErrState, "checkpoint at %d is above height %d", last.Height, height)
		}
	}
	if err := l.checkpoints.Put(db, checkpointKey(addr, index), &checkpoint{Height: height, Value: balance}); err != nil {
		return err
	}
	acc.Checkpoints = index + 1
	acc.Balance = balance
	return l.accounts.Put(db, addr, acc)
}

func validateAmount(addr yieldvote.Address, amount uint64) error {
	if err := addr.Validate(); err != nil {
		return errors.Wrap(err, "account")
	}
	if amount == 0 {
		return errors.Wrap(errors.ErrAmount, "zero amount")
	}
	return nil
}
