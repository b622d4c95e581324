package yieldvote

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"

	"github.com/iov-one/yieldvote/errors"
)

// AddressLength is the length of all addresses.
const AddressLength = 20

// Address identifies an account of the asset ledger. Voters, projects and
// the distribution pool are all addressed this way.
type Address []byte

// NewAddress hashes and truncates given seed into the proper size.
func NewAddress(seed []byte) Address {
	if seed == nil {
		return nil
	}
	h := sha256.Sum256(seed)
	return h[:AddressLength]
}

// ParseAddress decodes a hex encoded address, as produced by String.
func ParseAddress(enc string) (Address, error) {
	raw, err := hex.DecodeString(enc)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInput, "cannot decode hex")
	}
	addr := Address(raw)
	if err := addr.Validate(); err != nil {
		return nil, err
	}
	return addr, nil
}

// Equals checks if two addresses are the same
func (a Address) Equals(b Address) bool {
	return bytes.Equal(a, b)
}

// String returns a human readable string.
func (a Address) String() string {
	if len(a) == 0 {
		return "(nil)"
	}
	return strings.ToUpper(hex.EncodeToString(a))
}

// Validate returns an error if the address is not the valid size
func (a Address) Validate() error {
	if len(a) != AddressLength {
		return errors.ErrInput.Newf("address: %v", []byte(a))
	}
	return nil
}

// MarshalJSON provides a hex representation for JSON,
// to override the standard base64 []byte encoding
func (a Address) MarshalJSON() ([]byte, error) {
	return json.Marshal(strings.ToUpper(hex.EncodeToString(a)))
}

func (a *Address) UnmarshalJSON(raw []byte) error {
	var enc string
	if err := json.Unmarshal(raw, &enc); err != nil {
		return errors.Wrap(err, "cannot decode json")
	}
	// No value zero the address.
	if len(enc) == 0 {
		*a = nil
		return nil
	}
	addr, err := ParseAddress(enc)
	if err != nil {
		return err
	}
	*a = addr
	return nil
}

// IndexOf returns the position of addr in list or -1.
func IndexOf(list []Address, addr Address) int {
	for i, a := range list {
		if a.Equals(addr) {
			return i
		}
	}
	return -1
}
