package app

import (
	"testing"

	"github.com/iov-one/yieldvote/errors"
	"github.com/iov-one/yieldvote/votetest/assert"
)

func TestLoadGenesis(t *testing.T) {
	g, err := LoadGenesis("testdata/genesis.json")
	assert.Nil(t, err)
	assert.Nil(t, g.Cycle.Validate())

	assert.Equal(t, 2, len(g.Assets.Accounts))
	assert.Equal(t, uint64(1000), g.Assets.Accounts[0].Balance)
	assert.Equal(t, 2, len(g.Cycle.Projects))
	assert.Equal(t, int64(20), g.Cycle.StartHeight)
	assert.Equal(t, int64(20), g.Cycle.Config.CycleLength)
	assert.Equal(t, uint64(1000000), g.Cycle.Config.Precision)

	_, err = LoadGenesis("testdata/missing.json")
	assert.IsErr(t, errors.ErrInput, err)
}
