package gconf

import (
	"github.com/iov-one/yieldvote"
	"github.com/iov-one/yieldvote/errors"
	"github.com/iov-one/yieldvote/orm"
)

// ReadStore is a subset of yieldvote.ReadOnlyKVStore.
type ReadStore interface {
	Get([]byte) ([]byte, error)
}

// Store is a subset of yieldvote.KVStore.
type Store interface {
	ReadStore
	Set([]byte, []byte) error
}

// Save will Validate the object, before writing it to a special "configuration"
// singleton for that package name.
func Save(db Store, pkg string, src orm.Model) error {
	key := configKey(pkg)
	if err := src.Validate(); err != nil {
		return errors.Wrapf(err, "validation: key %q", key)
	}
	raw, err := orm.Marshal(src)
	if err != nil {
		return errors.Wrapf(err, "marshal: key %q", key)
	}
	if err := db.Set(key, raw); err != nil {
		return errors.Wrapf(errors.ErrDatabase, "set: key %q: %s", key, err)
	}
	return nil
}

// Load reads the configuration of given package into dst. It returns
// ErrNotFound when the configuration was never saved.
func Load(db ReadStore, pkg string, dst interface{}) error {
	key := configKey(pkg)
	raw, err := db.Get(key)
	if err != nil {
		return err
	}
	if raw == nil {
		return errors.Wrapf(errors.ErrNotFound, "key %q", key)
	}
	if err := orm.Unmarshal(raw, dst); err != nil {
		return errors.Wrapf(err, "unmarshal: key %q", key)
	}
	return nil
}

// OwnedConfig is a configuration that declares an owner. Only the owner is
// authorized to change it.
type OwnedConfig interface {
	orm.Model
	GetOwner() yieldvote.Address
}

// Authorize loads the configuration of given package into conf and ensures
// that the caller is its owner.
func Authorize(db ReadStore, pkg string, conf OwnedConfig, caller yieldvote.Address) error {
	if err := Load(db, pkg, conf); err != nil {
		return errors.Wrap(err, "load current configuration")
	}
	owner := conf.GetOwner()
	if len(owner) == 0 {
		return errors.Wrap(errors.ErrUnauthorized, "configuration has no owner")
	}
	if !owner.Equals(caller) {
		return errors.Wrapf(errors.ErrUnauthorized, "%s is not the configuration owner", caller)
	}
	return nil
}

func configKey(pkg string) []byte {
	return []byte("_c:" + pkg)
}
