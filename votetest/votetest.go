/*
Package votetest provides helpers to write tests for yieldvote packages.
*/
package votetest

import (
	"context"
	"encoding/binary"
	"sync"
	"sync/atomic"

	"github.com/iov-one/yieldvote"
	"github.com/tendermint/tendermint/libs/log"
)

var addrSeq uint64

// NewAddress returns a valid address that was never returned before by this
// function.
func NewAddress() yieldvote.Address {
	var seed [8]byte
	binary.BigEndian.PutUint64(seed[:], atomic.AddUint64(&addrSeq, 1))
	return yieldvote.NewAddress(append([]byte("votetest/"), seed[:]...))
}

// Ctx returns a context set to given block height, logging to given logger.
// Logger may be nil.
func Ctx(height int64, logger log.Logger) context.Context {
	ctx := yieldvote.WithHeight(context.Background(), height)
	if logger != nil {
		ctx = yieldvote.WithLogger(ctx, logger)
	}
	return ctx
}

// Entry is a single log line captured by the Recorder.
type Entry struct {
	Level   string
	Msg     string
	Keyvals []interface{}
}

// Value returns the value logged under given key or nil.
func (e Entry) Value(key string) interface{} {
	for i := 0; i+1 < len(e.Keyvals); i += 2 {
		if k, ok := e.Keyvals[i].(string); ok && k == key {
			return e.Keyvals[i+1]
		}
	}
	return nil
}

// Recorder is a log.Logger that keeps all entries in memory so that tests
// can assert on emitted notifications.
type Recorder struct {
	mu      *sync.Mutex
	entries *[]Entry
	keyvals []interface{}
}

var _ log.Logger = (*Recorder)(nil)

// NewRecorder returns an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{
		mu:      &sync.Mutex{},
		entries: &[]Entry{},
	}
}

func (r *Recorder) Debug(msg string, keyvals ...interface{}) { r.add("debug", msg, keyvals) }
func (r *Recorder) Info(msg string, keyvals ...interface{})  { r.add("info", msg, keyvals) }
func (r *Recorder) Error(msg string, keyvals ...interface{}) { r.add("error", msg, keyvals) }

// With returns a logger writing to the same entries, prefixing all key
// values with given ones.
func (r *Recorder) With(keyvals ...interface{}) log.Logger {
	kv := make([]interface{}, 0, len(r.keyvals)+len(keyvals))
	kv = append(kv, r.keyvals...)
	kv = append(kv, keyvals...)
	return &Recorder{mu: r.mu, entries: r.entries, keyvals: kv}
}

func (r *Recorder) add(level, msg string, keyvals []interface{}) {
	kv := make([]interface{}, 0, len(r.keyvals)+len(keyvals))
	kv = append(kv, r.keyvals...)
	kv = append(kv, keyvals...)

	r.mu.Lock()
	defer r.mu.Unlock()
	*r.entries = append(*r.entries, Entry{Level: level, Msg: msg, Keyvals: kv})
}

// Messages returns all entries with given message, in the order they were
// logged.
func (r *Recorder) Messages(msg string) []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Entry
	for _, e := range *r.entries {
		if e.Msg == msg {
			out = append(out, e)
		}
	}
	return out
}

// Reset drops all recorded entries.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	*r.entries = nil
}
