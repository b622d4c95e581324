package ballot

import (
	"testing"

	"github.com/iov-one/yieldvote"
	"github.com/iov-one/yieldvote/errors"
	"github.com/iov-one/yieldvote/store"
	"github.com/iov-one/yieldvote/votetest"
	"github.com/iov-one/yieldvote/votetest/assert"
	"github.com/iov-one/yieldvote/x/asset"
	"github.com/iov-one/yieldvote/x/power"
)

var defaultRules = Rules{
	MinVotingPower: 100,
	MaxPoints:      100,
	Precision:      1e9,
}

// window in which the voter minted in setup holds 100 units for 10 blocks.
var defaultWindow = Window{Start: 10, End: 20}

type fixture struct {
	db       yieldvote.CacheableKVStore
	assets   *asset.Ledger
	ballots  *Ledger
	projects []yieldvote.Address
}

func newFixture(t testing.TB, projectCount int) *fixture {
	t.Helper()
	f := &fixture{
		db:     store.MemStore(),
		assets: asset.NewLedger(),
	}
	f.ballots = NewLedger(f.assets)
	for i := 0; i < projectCount; i++ {
		f.projects = append(f.projects, votetest.NewAddress())
	}
	assert.Nil(t, f.ballots.Reset(f.db, projectCount))
	return f
}

// holder returns an account that owned given amount since the beginning of
// the default window.
func (f *fixture) holder(t testing.TB, amount uint64) yieldvote.Address {
	t.Helper()
	addr := votetest.NewAddress()
	assert.Nil(t, f.assets.Mint(votetest.Ctx(5, nil), f.db, addr, amount))
	return addr
}

func TestCastVote(t *testing.T) {
	cases := map[string]struct {
		projects int
		balance  uint64
		points   []uint64
		rules    Rules
		window   Window
		wantErr  *errors.Error
		wantW    []uint64
		wantVote uint64
	}{
		"single project takes all the power": {
			projects: 1,
			balance:  100,
			points:   []uint64{7},
			rules:    defaultRules,
			window:   defaultWindow,
			wantW:    []uint64{1000},
			wantVote: 1000,
		},
		"power is split by points": {
			projects: 2,
			balance:  100,
			points:   []uint64{30, 70},
			rules:    defaultRules,
			window:   defaultWindow,
			wantW:    []uint64{300, 700},
			wantVote: 1000,
		},
		"rounding loss stays in the total": {
			projects: 3,
			balance:  100,
			points:   []uint64{1, 1, 1},
			rules:    defaultRules,
			window:   defaultWindow,
			wantW:    []uint64{333, 333, 333},
			wantVote: 1000,
		},
		"power below minimum": {
			projects: 1,
			balance:  1,
			points:   []uint64{1},
			rules:    defaultRules,
			window:   defaultWindow,
			wantErr:  ErrBelowMinimumVotingPower,
		},
		"zero power with zero minimum": {
			projects: 1,
			balance:  100,
			points:   []uint64{1},
			rules:    Rules{MaxPoints: 10, Precision: 1},
			window:   Window{Start: 1, End: 5},
			wantErr:  ErrBelowMinimumVotingPower,
		},
		"window ends in the future": {
			projects: 1,
			balance:  100,
			points:   []uint64{1},
			rules:    defaultRules,
			window:   Window{Start: 10, End: 500},
			wantErr:  power.ErrFutureEnd,
		},
		"too few points": {
			projects: 3,
			balance:  100,
			points:   []uint64{1, 2},
			rules:    defaultRules,
			window:   defaultWindow,
			wantErr:  ErrProjectCountMismatch,
		},
		"too many points": {
			projects: 1,
			balance:  100,
			points:   []uint64{1, 2},
			rules:    defaultRules,
			window:   defaultWindow,
			wantErr:  ErrProjectCountMismatch,
		},
		"points above maximum": {
			projects: 2,
			balance:  100,
			points:   []uint64{1, 101},
			rules:    defaultRules,
			window:   defaultWindow,
			wantErr:  ErrPointsTooLarge,
		},
		"all points zero": {
			projects: 2,
			balance:  100,
			points:   []uint64{0, 0},
			rules:    defaultRules,
			window:   defaultWindow,
			wantErr:  ErrZeroVote,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			f := newFixture(t, tc.projects)
			voter := f.holder(t, tc.balance)

			ctx := votetest.Ctx(30, nil)
			err := f.ballots.CastVote(ctx, f.db, voter, tc.points, f.projects, tc.window, tc.rules)
			if !tc.wantErr.Is(err) {
				t.Fatalf("want %v error, got %+v", tc.wantErr, err)
			}

			tally, err := f.ballots.Tally(f.db)
			assert.Nil(t, err)
			if tc.wantErr != nil {
				assert.Equal(t, make([]uint64, tc.projects), tally.Weights)
				assert.Equal(t, uint64(0), tally.TotalVotes)
				return
			}
			assert.Equal(t, tc.wantW, tally.Weights)
			assert.Equal(t, tc.wantVote, tally.TotalVotes)
		})
	}
}

func TestVoteIsCastOncePerCycle(t *testing.T) {
	f := newFixture(t, 2)
	voter := f.holder(t, 100)
	ctx := votetest.Ctx(30, nil)

	assert.Nil(t, f.ballots.CastVote(ctx, f.db, voter, []uint64{1, 0}, f.projects, defaultWindow, defaultRules))
	err := f.ballots.CastVote(ctx, f.db, voter, []uint64{0, 1}, f.projects, defaultWindow, defaultRules)
	assert.IsErr(t, ErrAlreadyVoted, err)

	rec, err := f.ballots.Vote(f.db, voter)
	assert.Nil(t, err)
	assert.Equal(t, []uint64{1, 0}, rec.Points)
	assert.Equal(t, int64(30), rec.LastVoted)
	assert.Equal(t, uint64(1000), rec.Power)

	// A new cycle accepts the vote again, aligned to the new project count.
	assert.Nil(t, f.ballots.Reset(f.db, 3))
	_, err = f.ballots.Vote(f.db, voter)
	assert.IsErr(t, errors.ErrNotFound, err)

	projects := append(f.projects, votetest.NewAddress())
	assert.Nil(t, f.ballots.CastVote(ctx, f.db, voter, []uint64{0, 1, 1}, projects, defaultWindow, defaultRules))
	tally, err := f.ballots.Tally(f.db)
	assert.Nil(t, err)
	assert.Equal(t, []uint64{0, 500, 500}, tally.Weights)
	assert.Equal(t, 1, len(tally.Voters))
}

func TestVotesAreWeightedByPower(t *testing.T) {
	f := newFixture(t, 2)
	small := f.holder(t, 100)
	big := f.holder(t, 300)
	ctx := votetest.Ctx(30, nil)

	// Same vectors mirrored. The bigger holder wins the tally.
	assert.Nil(t, f.ballots.CastVote(ctx, f.db, small, []uint64{30, 70}, f.projects, defaultWindow, defaultRules))
	assert.Nil(t, f.ballots.CastVote(ctx, f.db, big, []uint64{70, 30}, f.projects, defaultWindow, defaultRules))

	tally, err := f.ballots.Tally(f.db)
	assert.Nil(t, err)
	assert.Equal(t, []uint64{300 + 2100, 700 + 900}, tally.Weights)
	assert.Equal(t, uint64(4000), tally.TotalVotes)
}

func TestVoteCastNotification(t *testing.T) {
	f := newFixture(t, 2)
	voter := f.holder(t, 100)
	rec := votetest.NewRecorder()

	err := f.ballots.CastVote(votetest.Ctx(30, rec), f.db, voter, []uint64{2, 3}, f.projects, defaultWindow, defaultRules)
	assert.Nil(t, err)

	events := rec.Messages("vote cast")
	assert.Equal(t, 1, len(events))
	assert.Equal(t, voter, events[0].Value("voter"))
	assert.Equal(t, []uint64{2, 3}, events[0].Value("points"))
	assert.Equal(t, f.projects, events[0].Value("projects"))
}

func TestWeights(t *testing.T) {
	cases := map[string]struct {
		points []uint64
		power  uint64
	}{
		"even":              {points: []uint64{1, 1}, power: 10},
		"uneven":            {points: []uint64{1, 2, 4}, power: 1000},
		"tiny power":        {points: []uint64{5, 5, 5, 5, 5}, power: 3},
		"huge power":        {points: []uint64{1, 99}, power: 1<<64 - 1},
		"single zero entry": {points: []uint64{0, 9}, power: 77},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			w, err := Weights(tc.points, tc.power, 1e18)
			assert.Nil(t, err)
			var sum uint64
			for _, v := range w {
				sum += v
			}
			if sum > tc.power {
				t.Fatalf("weights %d exceed power %d", sum, tc.power)
			}
			if loss := tc.power - sum; loss >= uint64(len(tc.points)) {
				t.Fatalf("rounding loss %d not below project count", loss)
			}
		})
	}

	a, err := Weights([]uint64{30, 70}, 1000, 1e9)
	assert.Nil(t, err)
	b, err := Weights([]uint64{70, 30}, 1000, 1e9)
	assert.Nil(t, err)
	assert.Equal(t, a[0], b[1])
	assert.Equal(t, a[1], b[0])

	_, err = Weights([]uint64{0, 0}, 1, 1)
	assert.IsErr(t, ErrZeroVote, err)
	_, err = Weights([]uint64{1}, 1, 0)
	assert.IsErr(t, errors.ErrInput, err)
}

func TestNewLedgerBuildsItsBuckets(t *testing.T) {
	assert.Equal(t, false, NewLedger(nil) == nil)
}
