package votetest

import (
	"testing"

	"github.com/iov-one/yieldvote"
	"github.com/iov-one/yieldvote/votetest/assert"
)

func TestNewAddressIsUnique(t *testing.T) {
	a, b := NewAddress(), NewAddress()
	assert.Nil(t, a.Validate())
	assert.Equal(t, false, a.Equals(b))
}

func TestRecorder(t *testing.T) {
	rec := NewRecorder()
	ctx := Ctx(12, rec)

	h, ok := yieldvote.GetHeight(ctx)
	assert.Equal(t, true, ok)
	assert.Equal(t, int64(12), h)

	logger := yieldvote.GetLogger(ctx).With("module", "test")
	logger.Info("hello", "who", "world")
	logger.Debug("quiet")

	got := rec.Messages("hello")
	assert.Equal(t, 1, len(got))
	assert.Equal(t, "info", got[0].Level)
	assert.Equal(t, "test", got[0].Value("module"))
	assert.Equal(t, "world", got[0].Value("who"))
	assert.Nil(t, got[0].Value("missing"))

	rec.Reset()
	assert.Equal(t, 0, len(rec.Messages("hello")))
}
