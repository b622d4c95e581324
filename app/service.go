package app

import (
	"bytes"
	"context"
	"sync"
	"time"

	"github.com/iov-one/yieldvote"
	"github.com/iov-one/yieldvote/errors"
	"github.com/iov-one/yieldvote/x/asset"
	"github.com/iov-one/yieldvote/x/ballot"
	"github.com/iov-one/yieldvote/x/cycle"
	"github.com/iov-one/yieldvote/x/membership"
	"github.com/tendermint/tendermint/libs/log"
)

// DistributePayload is returned by the resolver when the cycle can be
// distributed. Passing it to Call triggers the distribution.
var DistributePayload = []byte("cycle/distribute")

// Clock provides the height of the block operations are executed in.
type Clock interface {
	Height() int64
}

// Service executes one operation at a time against the store.
type Service struct {
	mu     sync.Mutex
	store  yieldvote.CacheableKVStore
	clock  Clock
	logger log.Logger
	assets *asset.Ledger
	engine *cycle.Engine
}

// NewService returns a service operating on given store.
func NewService(store yieldvote.CacheableKVStore, clock Clock, logger log.Logger) *Service {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	assets := asset.NewLedger()
	return &Service{
		store:  store,
		clock:  clock,
		logger: logger,
		assets: assets,
		engine: cycle.NewEngine(assets),
	}
}

// EngineAddress returns the account holding yield between claim and
// payout.
func (s *Service) EngineAddress() yieldvote.Address {
	return s.engine.Address()
}

func (s *Service) deliver(ctx context.Context, op string, fn deliverFn) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx = s.context(ctx, op)
	start := time.Now()
	err := savepoint(ctx, s.store, fn)
	logDuration(ctx, start, op, err, false)
	return errors.Redact(err)
}

func (s *Service) query(ctx context.Context, op string, fn queryFn) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx = s.context(ctx, op)
	start := time.Now()
	err := recovered(ctx, s.store, fn)
	logDuration(ctx, start, op, err, true)
	return errors.Redact(err)
}

func (s *Service) context(ctx context.Context, op string) context.Context {
	ctx = yieldvote.WithHeight(ctx, s.clock.Height())
	ctx = yieldvote.WithLogger(ctx, s.logger)
	return yieldvote.WithLogInfo(ctx, "op", op)
}

// InitChain loads the genesis state. It can be done only once.
func (s *Service) InitChain(ctx context.Context, g *Genesis) error {
	return s.deliver(ctx, "init chain", func(ctx context.Context, db yieldvote.KVStore) error {
		if err := s.assets.FromGenesis(ctx, db, g.Assets); err != nil {
			return errors.Wrap(err, "assets")
		}
		return s.engine.Init(ctx, db, g.Cycle)
	})
}

// AccrueYield adds yield produced by the underlying asset.
func (s *Service) AccrueYield(ctx context.Context, amount uint64) error {
	return s.deliver(ctx, "accrue yield", func(ctx context.Context, db yieldvote.KVStore) error {
		return s.assets.AccrueYield(db, amount)
	})
}

// Transfer moves assets between two accounts.
func (s *Service) Transfer(ctx context.Context, from, to yieldvote.Address, amount uint64) error {
	return s.deliver(ctx, "transfer", func(ctx context.Context, db yieldvote.KVStore) error {
		return s.assets.Transfer(ctx, db, from, to, amount)
	})
}

// CastVote registers a vote for the active projects.
func (s *Service) CastVote(ctx context.Context, voter yieldvote.Address, points []uint64) error {
	return s.deliver(ctx, "cast vote", func(ctx context.Context, db yieldvote.KVStore) error {
		return s.engine.CastVote(ctx, db, voter, points)
	})
}

// Admin runs fn with the owner capability of the caller. All changes made
// by fn are dropped if it fails.
func (s *Service) Admin(ctx context.Context, caller yieldvote.Address, fn func(*cycle.Admin) error) error {
	return s.deliver(ctx, "admin", func(ctx context.Context, db yieldvote.KVStore) error {
		a, err := s.engine.Admin(ctx, db, caller)
		if err != nil {
			return err
		}
		return fn(a)
	})
}

// Distribute pays the yield of the finished cycle to the projects.
func (s *Service) Distribute(ctx context.Context) (*cycle.Payout, error) {
	var p *cycle.Payout
	err := s.deliver(ctx, "distribute", func(ctx context.Context, db yieldvote.KVStore) error {
		var err error
		p, err = s.engine.Distribute(ctx, db)
		return err
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Resolver tells if the cycle can be distributed now. When it can, the
// returned payload is to be passed to Call. Otherwise the payload describes
// the reason.
func (s *Service) Resolver(ctx context.Context) (bool, []byte) {
	err := s.query(ctx, "resolve", func(ctx context.Context, db yieldvote.ReadOnlyKVStore) error {
		return s.engine.Resolve(ctx, db)
	})
	if err != nil {
		return false, []byte(err.Error())
	}
	return true, DistributePayload
}

// Call executes an operation returned by the resolver.
func (s *Service) Call(ctx context.Context, payload []byte) error {
	if !bytes.Equal(payload, DistributePayload) {
		return errors.Wrapf(errors.ErrInput, "unknown payload %q", payload)
	}
	_, err := s.Distribute(ctx)
	return err
}

// Projects returns the active projects.
func (s *Service) Projects(ctx context.Context) ([]yieldvote.Address, error) {
	var out []yieldvote.Address
	err := s.query(ctx, "projects", func(ctx context.Context, db yieldvote.ReadOnlyKVStore) error {
		var err error
		out, err = s.engine.Projects(db)
		return err
	})
	return out, err
}

// ProjectCount returns the number of active projects.
func (s *Service) ProjectCount(ctx context.Context) (int, error) {
	p, err := s.Projects(ctx)
	return len(p), err
}

// Pending returns the membership changes waiting for the end of the cycle.
func (s *Service) Pending(ctx context.Context) (*membership.Pending, error) {
	var out *membership.Pending
	err := s.query(ctx, "pending", func(ctx context.Context, db yieldvote.ReadOnlyKVStore) error {
		var err error
		out, err = s.engine.Pending(db)
		return err
	})
	return out, err
}

// CurrentDistribution returns the votes accumulated in the current cycle.
func (s *Service) CurrentDistribution(ctx context.Context) (*ballot.Tally, error) {
	var out *ballot.Tally
	err := s.query(ctx, "current distribution", func(ctx context.Context, db yieldvote.ReadOnlyKVStore) error {
		var err error
		out, err = s.engine.Tally(db)
		return err
	})
	return out, err
}

// VotingPower returns the power of an account in the current cycle.
func (s *Service) VotingPower(ctx context.Context, addr yieldvote.Address) (uint64, error) {
	var out uint64
	err := s.query(ctx, "voting power", func(ctx context.Context, db yieldvote.ReadOnlyKVStore) error {
		var err error
		out, err = s.engine.VotingPower(ctx, db, addr)
		return err
	})
	return out, err
}

// HistoricalVotingPower returns the power of an account over a past range.
func (s *Service) HistoricalVotingPower(ctx context.Context, addr yieldvote.Address, start, end int64) (uint64, error) {
	var out uint64
	err := s.query(ctx, "historical voting power", func(ctx context.Context, db yieldvote.ReadOnlyKVStore) error {
		var err error
		out, err = s.engine.HistoricalVotingPower(ctx, db, addr, start, end)
		return err
	})
	return out, err
}

// Config returns the engine configuration.
func (s *Service) Config(ctx context.Context) (*cycle.AdminConfig, error) {
	var out *cycle.AdminConfig
	err := s.query(ctx, "config", func(ctx context.Context, db yieldvote.ReadOnlyKVStore) error {
		var err error
		out, err = s.engine.Config(db)
		return err
	})
	return out, err
}

// LastClaimedHeight returns the height of the last distribution, or the
// genesis anchor if none happened yet.
func (s *Service) LastClaimedHeight(ctx context.Context) (int64, error) {
	var out int64
	err := s.query(ctx, "last claimed height", func(ctx context.Context, db yieldvote.ReadOnlyKVStore) error {
		st, err := s.engine.State(db)
		if err != nil {
			return err
		}
		out = st.LastClaimedHeight
		return nil
	})
	return out, err
}

// Balance returns the asset balance of an account.
func (s *Service) Balance(ctx context.Context, addr yieldvote.Address) (uint64, error) {
	var out uint64
	err := s.query(ctx, "balance", func(ctx context.Context, db yieldvote.ReadOnlyKVStore) error {
		var err error
		out, err = s.assets.Balance(db, addr)
		return err
	})
	return out, err
}

// AccruedYield returns the yield that the next distribution claims.
func (s *Service) AccruedYield(ctx context.Context) (uint64, error) {
	var out uint64
	err := s.query(ctx, "accrued yield", func(ctx context.Context, db yieldvote.ReadOnlyKVStore) error {
		var err error
		out, err = s.assets.AccruedYield(db)
		return err
	})
	return out, err
}
