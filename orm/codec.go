package orm

import (
	"github.com/iov-one/yieldvote/errors"
	amino "github.com/tendermint/go-amino"
)

// cdc encodes plain structs only. No interface registration is needed as
// records never hold interface fields.
var cdc = amino.NewCodec()

// schemaVersion prefixes every stored record. It also guarantees that a
// record with all fields zero is never stored as an empty value.
const schemaVersion byte = 1

// Marshal serializes a record into its binary representation.
func Marshal(m interface{}) ([]byte, error) {
	body, err := cdc.MarshalBinaryBare(m)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	raw := make([]byte, 1+len(body))
	raw[0] = schemaVersion
	copy(raw[1:], body)
	return raw, nil
}

// Unmarshal loads the binary representation into given pointer.
func Unmarshal(raw []byte, dst interface{}) error {
	if len(raw) == 0 {
		return errors.Wrap(errors.ErrDatabase, "empty record")
	}
	if raw[0] != schemaVersion {
		return errors.Wrapf(errors.ErrDatabase, "unknown schema version %d", raw[0])
	}
	// A record with only zero fields has an empty body.
	if len(raw) == 1 {
		return nil
	}
	if err := cdc.UnmarshalBinaryBare(raw[1:], dst); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return nil
}
