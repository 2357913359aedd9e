package app

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/iov-one/idm"
	"github.com/iov-one/idm/errors"
	"github.com/iov-one/idm/store"
	"github.com/tendermint/tendermint/libs/log"
)

// Ledger executes transactions in process, one at a time, against an in
// memory store. It runs the same handler stack as BaseApp without the
// tendermint consensus around it, which makes it useful for tests and
// tooling.
//
// Every Execute call is atomic. Events of successful calls are appended to
// an ordered log that observers can read with Events.
type Ledger struct {
	mu      sync.Mutex
	db      idm.CacheableKVStore
	handler idm.Handler
	queries idm.QueryRouter
	logger  log.Logger
	chainID string
	height  int64
	now     func() time.Time
	events  []idm.Event
}

// NewLedger returns a ledger with empty state. Use InitChain to load the
// genesis before executing transactions.
func NewLedger(chainID string, handler idm.Handler, queries idm.QueryRouter) *Ledger {
	return &Ledger{
		db:      store.MemStore(),
		handler: handler,
		queries: queries,
		logger:  log.NewNopLogger(),
		chainID: chainID,
		now:     time.Now,
	}
}

// WithLogger sets the logger passed to handlers.
func (l *Ledger) WithLogger(logger log.Logger) *Ledger {
	l.logger = logger
	return l
}

// WithClock sets the source of block time.
func (l *Ledger) WithClock(now func() time.Time) *Ledger {
	l.now = now
	return l
}

// InitChain stores the chain id and passes the app state to the
// initializer. It is all or nothing, as any other call.
func (l *Ledger) InitChain(init idm.Initializer, appState []byte) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	var opts idm.Options
	if len(appState) != 0 {
		if err := json.Unmarshal(appState, &opts); err != nil {
			return errors.Wrap(errors.ErrInput, err.Error())
		}
	}

	cache := l.db.CacheWrap()
	if err := saveChainID(cache, l.chainID); err != nil {
		cache.Discard()
		return err
	}
	if init != nil {
		if err := init.FromGenesis(opts, cache); err != nil {
			cache.Discard()
			return errors.Wrap(err, "genesis")
		}
	}
	return cache.Write()
}

// Execute delivers a single transaction. Each call is a new block.
func (l *Ledger) Execute(tx idm.Tx) (*idm.DeliverResult, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.height++
	ctx := idm.WithHeight(context.Background(), l.height)
	ctx = idm.WithChainID(ctx, l.chainID)
	ctx = idm.WithBlockTime(ctx, l.now())
	ctx = idm.WithLogger(ctx, l.logger.With("call", "execute", "path", idm.GetPath(tx)))

	res, err := deliverAtomic(ctx, l.db, l.handler, tx)
	if err != nil {
		return nil, err
	}
	l.events = append(l.events, res.Events...)
	return res, nil
}

// Query runs a read only query against the current state.
func (l *Ledger) Query(path string, data []byte) ([]idm.Model, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return RunQuery(l.queries, l.db, path, data)
}

// Store returns a read only view of the current state.
func (l *Ledger) Store() idm.ReadOnlyKVStore {
	return l.db
}

// Events returns a copy of all events emitted by successful transactions,
// in the order of emission.
func (l *Ledger) Events() []idm.Event {
	l.mu.Lock()
	defer l.mu.Unlock()
	cpy := make([]idm.Event, len(l.events))
	copy(cpy, l.events)
	return cpy
}
