package main

import (
	"context"
	"sync/atomic"
	"time"
)

// blockClock simulates a chain producing a block every interval.
type blockClock struct {
	height   int64
	interval time.Duration
}

func newBlockClock(start int64, interval time.Duration) *blockClock {
	return &blockClock{height: start, interval: interval}
}

// Height returns the height of the current block.
func (c *blockClock) Height() int64 {
	return atomic.LoadInt64(&c.height)
}

// Run produces blocks until the context is cancelled. onBlock is called
// after each new block.
func (c *blockClock) Run(ctx context.Context, onBlock func(height int64)) {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			onBlock(atomic.AddInt64(&c.height, 1))
		}
	}
}
