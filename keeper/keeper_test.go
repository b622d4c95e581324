package keeper

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/iov-one/yieldvote/errors"
	"github.com/iov-one/yieldvote/votetest"
	"github.com/stretchr/testify/require"
)

type fakeTarget struct {
	mu      sync.Mutex
	ready   bool
	callErr error
	calls   [][]byte
}

func (f *fakeTarget) Resolver(context.Context) (bool, []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.ready {
		return false, []byte("too soon")
	}
	return true, []byte("go")
}

func (f *fakeTarget) Call(_ context.Context, payload []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, payload)
	// Executed work is not available again.
	f.ready = false
	return f.callErr
}

func (f *fakeTarget) numCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func TestTick(t *testing.T) {
	cases := map[string]struct {
		ready     bool
		callErr   error
		wantCalls int
		wantErr   *errors.Error
		wantLog   string
	}{
		"nothing to do": {
			ready:   false,
			wantLog: "nothing to do",
		},
		"call executed": {
			ready:     true,
			wantCalls: 1,
			wantLog:   "call executed",
		},
		"call failed": {
			ready:     true,
			callErr:   errors.ErrState,
			wantCalls: 1,
			wantErr:   errors.ErrState,
			wantLog:   "call failed",
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			target := &fakeTarget{ready: tc.ready, callErr: tc.callErr}
			rec := votetest.NewRecorder()
			k := NewKeeper(target, time.Second, rec)

			err := k.Tick(context.Background())
			require.True(t, tc.wantErr.Is(err), "unexpected error: %+v", err)
			require.Equal(t, tc.wantCalls, target.numCalls())
			require.Len(t, rec.Messages(tc.wantLog), 1)
		})
	}
}

func TestStartStop(t *testing.T) {
	target := &fakeTarget{ready: true}
	k := NewKeeper(target, 10*time.Millisecond, nil)

	require.NoError(t, k.Start(context.Background()))
	require.Eventually(t, func() bool {
		return target.numCalls() == 1
	}, 2*time.Second, 5*time.Millisecond)
	k.Stop()

	// Resolver says there is nothing more to do, so no more calls.
	time.Sleep(50 * time.Millisecond)
	require.Equal(t, 1, target.numCalls())
}

func TestStartRequiresInterval(t *testing.T) {
	k := NewKeeper(&fakeTarget{}, 0, nil)
	err := k.Start(context.Background())
	require.True(t, errors.ErrInput.Is(err))
}
