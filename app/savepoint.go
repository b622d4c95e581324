package app

import (
	"context"
	"time"

	"github.com/iov-one/yieldvote"
	"github.com/iov-one/yieldvote/errors"
)

type deliverFn func(ctx context.Context, db yieldvote.KVStore) error

type queryFn func(ctx context.Context, db yieldvote.ReadOnlyKVStore) error

// savepoint isolates all data written by fn and writes it to the store only
// if fn succeeds. Panics are turned into errors.
func savepoint(ctx context.Context, store yieldvote.CacheableKVStore, fn deliverFn) (err error) {
	cache := store.CacheWrap()
	defer func() {
		if err != nil {
			cache.Discard()
		}
	}()
	defer errors.Recover(&err)

	if err := fn(ctx, cache); err != nil {
		return err
	}
	if err := cache.Write(); err != nil {
		return errors.Wrap(err, "writing savepoint")
	}
	return nil
}

// recovered runs a read only operation, turning panics into errors.
func recovered(ctx context.Context, store yieldvote.ReadOnlyKVStore, fn queryFn) (err error) {
	defer errors.Recover(&err)
	return fn(ctx, store)
}

// logDuration writes information about the time and result to the logger.
// Failures are logged as errors, successful mutations as info and queries
// as debug.
func logDuration(ctx context.Context, start time.Time, op string, err error, lowPrio bool) {
	delta := time.Since(start)
	logger := yieldvote.GetLogger(ctx).With("duration", delta/time.Microsecond)

	if err != nil {
		logger.With("err", err).Error(op)
		return
	}
	if lowPrio {
		logger.Debug(op)
	} else {
		logger.Info(op)
	}
}
