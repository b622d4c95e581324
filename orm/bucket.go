package orm

import (
	"fmt"
	"regexp"

	"github.com/iov-one/yieldvote"
	"github.com/iov-one/yieldvote/errors"
)

var isBucketName = regexp.MustCompile(`^[a-z_]{3,10}$`).MatchString

// Model is implemented by every record stored in a bucket.
type Model interface {
	Validate() error
}

// Bucket is a prefixed subspace of the DB. Each bucket contains only one
// type of record.
type Bucket struct {
	name   string
	prefix []byte
}

// NewBucket creates a bucket to store data
func NewBucket(name string) Bucket {
	if !isBucketName(name) {
		panic(fmt.Sprintf("Illegal bucket: %s", name))
	}
	return Bucket{
		name:   name,
		prefix: append([]byte(name), ':'),
	}
}

// DBKey is the full key we store in the db, including prefix
// We copy into a new array rather than use append, as we don't
// want consequetive calls to overwrite the same byte array.
func (b Bucket) DBKey(key []byte) []byte {
	l := len(b.prefix)
	out := make([]byte, l+len(key))
	copy(out, b.prefix)
	copy(out[l:], key)
	return out
}

// One loads the record stored under given key into dst. It returns
// ErrNotFound if there is no such record.
func (b Bucket) One(db yieldvote.ReadOnlyKVStore, key []byte, dst Model) error {
	raw, err := db.Get(b.DBKey(key))
	if err != nil {
		return errors.Wrapf(err, "%s: get", b.name)
	}
	if raw == nil {
		return errors.Wrapf(errors.ErrNotFound, "%s: key %X", b.name, key)
	}
	if err := Unmarshal(raw, dst); err != nil {
		return errors.Wrapf(err, "%s: unmarshal", b.name)
	}
	return nil
}

// Has returns true if a record is stored under given key.
func (b Bucket) Has(db yieldvote.ReadOnlyKVStore, key []byte) (bool, error) {
	ok, err := db.Has(b.DBKey(key))
	if err != nil {
		return false, errors.Wrapf(err, "%s: has", b.name)
	}
	return ok, nil
}

// Put validates and stores given record under given key, overwriting any
// previous value.
func (b Bucket) Put(db yieldvote.KVStore, key []byte, m Model) error {
	if err := m.Validate(); err != nil {
		return errors.Wrapf(err, "%s: invalid record", b.name)
	}
	raw, err := Marshal(m)
	if err != nil {
		return errors.Wrapf(err, "%s: marshal", b.name)
	}
	if err := db.Set(b.DBKey(key), raw); err != nil {
		return errors.Wrapf(err, "%s: set", b.name)
	}
	return nil
}

// Delete removes the record stored under given key. Deleting a missing
// record is not an error.
func (b Bucket) Delete(db yieldvote.KVStore, key []byte) error {
	if err := db.Delete(b.DBKey(key)); err != nil {
		return errors.Wrapf(err, "%s: delete", b.name)
	}
	return nil
}
