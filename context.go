package yieldvote

import (
	"context"

	"github.com/tendermint/tendermint/libs/log"
)

type contextKey int // local to the yieldvote module

const (
	contextKeyHeight contextKey = iota
	contextKeyLogger
)

// DefaultLogger is used for all context that have not
// set anything themselves
var DefaultLogger = log.NewNopLogger()

// WithHeight sets the block height for the context.
// It panics if the height was already set, so that lower level code cannot
// move the clock for the rest of the operation.
func WithHeight(ctx context.Context, height int64) context.Context {
	if ctx.Value(contextKeyHeight) != nil {
		panic("Height already set")
	}
	return context.WithValue(ctx, contextKeyHeight, height)
}

// GetHeight returns the current block height
// If none was set, returns (0, false)
func GetHeight(ctx context.Context) (int64, bool) {
	val, ok := ctx.Value(contextKeyHeight).(int64)
	return val, ok
}

// WithLogger sets the logger for this context
func WithLogger(ctx context.Context, logger log.Logger) context.Context {
	return context.WithValue(ctx, contextKeyLogger, logger)
}

// WithLogInfo accepts keyvalue pairs, and returns another
// context like this, after passing all the keyvals to the
// Logger
func WithLogInfo(ctx context.Context, keyvals ...interface{}) context.Context {
	logger := GetLogger(ctx).With(keyvals...)
	return WithLogger(ctx, logger)
}

// GetLogger returns the currently set logger, or
// DefaultLogger if none was set
func GetLogger(ctx context.Context) log.Logger {
	val, ok := ctx.Value(contextKeyLogger).(log.Logger)
	if !ok {
		return DefaultLogger
	}
	return val
}
