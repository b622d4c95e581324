package asset

import (
	"encoding/binary"

	"github.com/iov-one/yieldvote"
	"github.com/iov-one/yieldvote/errors"
)

// Account holds the current balance of an address and the number of
// checkpoints recorded for it.
type Account struct {
	Balance     uint64
	Checkpoints uint32
}

func (a *Account) Validate() error {
	if a.Balance > 0 && a.Checkpoints == 0 {
		return errors.Wrap(errors.ErrState, "balance without history")
	}
	return nil
}

type checkpoint struct {
	Height int64
	Value  uint64
}

func (c *checkpoint) Validate() error {
	if c.Height < 0 {
		return errors.Wrap(errors.ErrState, "negative height")
	}
	return nil
}

// Pool tracks the yield that accrued but was not claimed yet.
type Pool struct {
	Accrued uint64
	Claimed uint64
}

func (p *Pool) Validate() error {
	return nil
}

// checkpointKey is the account address followed by the big endian
// checkpoint index, so that checkpoints of an account are stored in order.
func checkpointKey(addr yieldvote.Address, index uint32) []byte {
	key := make([]byte, len(addr)+4)
	copy(key, addr)
	binary.BigEndian.PutUint32(key[len(addr):], index)
	return key
}

var poolKey = []byte("pool")
