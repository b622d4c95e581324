package app

import (
	"encoding/json"
	"io/ioutil"

	"github.com/iov-one/yieldvote/errors"
	"github.com/iov-one/yieldvote/x/asset"
	"github.com/iov-one/yieldvote/x/cycle"
)

// Genesis file format.
type Genesis struct {
	Assets asset.Genesis `json:"assets"`
	Cycle  cycle.Genesis `json:"cycle"`
}

// LoadGenesis tries to load a given file into a Genesis struct.
func LoadGenesis(filePath string) (*Genesis, error) {
	raw, err := ioutil.ReadFile(filePath)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "loading genesis file: %s", err)
	}
	var gen Genesis
	if err := json.Unmarshal(raw, &gen); err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "unmarshaling genesis file: %s", err)
	}
	return &gen, nil
}
