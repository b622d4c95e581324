package gconf

import (
	"testing"

	"github.com/iov-one/yieldvote"
	"github.com/iov-one/yieldvote/errors"
	"github.com/iov-one/yieldvote/store"
	"github.com/iov-one/yieldvote/votetest"
	"github.com/iov-one/yieldvote/votetest/assert"
)

type myConfig struct {
	Owner  yieldvote.Address
	Number int64
	Text   string
}

func (c *myConfig) Validate() error {
	if c.Number < 0 {
		return errors.Wrap(errors.ErrInput, "negative number")
	}
	if len(c.Owner) != 0 {
		return c.Owner.Validate()
	}
	return nil
}

func (c *myConfig) GetOwner() yieldvote.Address {
	return c.Owner
}

func TestSaveLoad(t *testing.T) {
	cases := map[string]struct {
		Conf        *myConfig
		WantSaveErr *errors.Error
	}{
		"all fields": {
			Conf: &myConfig{Owner: votetest.NewAddress(), Number: 852151421, Text: "foobar"},
		},
		"zero value": {
			Conf: &myConfig{},
		},
		"invalid owner cannot be saved": {
			Conf:        &myConfig{Owner: yieldvote.Address("too short")},
			WantSaveErr: errors.ErrInput,
		},
		"invalid number cannot be saved": {
			Conf:        &myConfig{Number: -1},
			WantSaveErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			if err := Save(db, "mypkg", tc.Conf); !tc.WantSaveErr.Is(err) {
				t.Fatalf("unexpected save error: %s", err)
			}
			if tc.WantSaveErr != nil {
				err := Load(db, "mypkg", &myConfig{})
				assert.IsErr(t, errors.ErrNotFound, err)
				return
			}

			var got myConfig
			assert.Nil(t, Load(db, "mypkg", &got))
			assert.Equal(t, tc.Conf.Number, got.Number)
			assert.Equal(t, tc.Conf.Text, got.Text)
			if !tc.Conf.Owner.Equals(got.Owner) {
				t.Fatalf("want owner %s, got %s", tc.Conf.Owner, got.Owner)
			}
		})
	}
}

func TestLoadIsScopedByPackage(t *testing.T) {
	db := store.MemStore()
	assert.Nil(t, Save(db, "one", &myConfig{Number: 1}))
	assert.Nil(t, Save(db, "two", &myConfig{Number: 2}))

	var c myConfig
	assert.Nil(t, Load(db, "two", &c))
	assert.Equal(t, int64(2), c.Number)

	err := Load(db, "three", &c)
	assert.IsErr(t, errors.ErrNotFound, err)
}

func TestAuthorize(t *testing.T) {
	owner := votetest.NewAddress()
	stranger := votetest.NewAddress()

	db := store.MemStore()
	var conf myConfig
	err := Authorize(db, "mypkg", &conf, owner)
	assert.IsErr(t, errors.ErrNotFound, err)

	assert.Nil(t, Save(db, "ownerless", &myConfig{Number: 3}))
	err = Authorize(db, "ownerless", &conf, owner)
	assert.IsErr(t, errors.ErrUnauthorized, err)

	assert.Nil(t, Save(db, "mypkg", &myConfig{Owner: owner, Number: 7}))
	err = Authorize(db, "mypkg", &conf, stranger)
	assert.IsErr(t, errors.ErrUnauthorized, err)

	conf = myConfig{}
	assert.Nil(t, Authorize(db, "mypkg", &conf, owner))
	assert.Equal(t, int64(7), conf.Number)
}
