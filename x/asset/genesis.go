package asset

import (
	"context"

	"github.com/iov-one/yieldvote"
	"github.com/iov-one/yieldvote/errors"
)

// Genesis declares the initial state of the ledger.
type Genesis struct {
	Accounts []GenesisAccount `json:"accounts"`
	Yield    uint64           `json:"yield"`
}

// GenesisAccount is an account funded at genesis.
type GenesisAccount struct {
	Address yieldvote.Address `json:"address"`
	Balance uint64            `json:"balance"`
}

// FromGenesis mints all declared balances at the height set in the context
// and seeds the yield pool.
func (l *Ledger) FromGenesis(ctx context.Context, db yieldvote.KVStore, g Genesis) error {
	for i, a := range g.Accounts {
		if a.Balance == 0 {
			continue
		}
		if err := l.Mint(ctx, db, a.Address, a.Balance); err != nil {
			return errors.Wrapf(err, "account #%d", i)
		}
	}
	if g.Yield > 0 {
		if err := l.AccrueYield(db, g.Yield); err != nil {
			return errors.Wrap(err, "yield")
		}
	}
	return nil
}
