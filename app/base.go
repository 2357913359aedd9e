package app

import (
	"github.com/iov-one/idm"
	"github.com/iov-one/idm/errors"
	abci "github.com/tendermint/tendermint/abci/types"
)

// BaseApp adds DeliverTx and CheckTx handlers to the storage and query
// functionality of StoreApp
type BaseApp struct {
	*StoreApp
	decoder idm.TxDecoder
	handler idm.Handler
	debug   bool
}

var _ abci.Application = BaseApp{}

// NewBaseApp constructs a basic abci application
func NewBaseApp(
	store *StoreApp,
	decoder idm.TxDecoder,
	handler idm.Handler,
	debug bool,
) BaseApp {
	return BaseApp{
		StoreApp: store,
		decoder:  decoder,
		handler:  handler,
		debug:    debug,
	}
}

// DeliverTx - ABCI - dispatches to the handler
func (b BaseApp) DeliverTx(txBytes []byte) abci.ResponseDeliverTx {
	tx, err := b.loadTx(txBytes)
	if err != nil {
		return idm.DeliverTxError(err, b.debug)
	}

	ctx := idm.WithLogInfo(b.BlockContext(),
		"call", "deliver_tx",
		"path", idm.GetPath(tx))

	res, err := deliverAtomic(ctx, b.DeliverStore(), b.handler, tx)
	if err != nil {
		return idm.DeliverTxError(err, b.debug)
	}
	return res.ToABCI()
}

// CheckTx - ABCI - dispatches to the handler
func (b BaseApp) CheckTx(txBytes []byte) abci.ResponseCheckTx {
	tx, err := b.loadTx(txBytes)
	if err != nil {
		return idm.CheckTxError(err, b.debug)
	}

	ctx := idm.WithLogInfo(b.BlockContext(),
		"call", "check_tx",
		"path", idm.GetPath(tx))

	res, err := checkAtomic(ctx, b.CheckStore(), b.handler, tx)
	if err != nil {
		return idm.CheckTxError(err, b.debug)
	}
	return res.ToABCI()
}

// loadTx calls the decoder, and capture any panics
func (b BaseApp) loadTx(txBytes []byte) (tx idm.Tx, err error) {
	defer errors.Recover(&err)
	tx, err = b.decoder(txBytes)
	return
}

// deliverAtomic runs the handler in a fresh cache wrap of the given store.
// Writes reach the store only if the handler succeeds, so a failed
// transaction leaves no trace.
func deliverAtomic(ctx idm.Context, db idm.CacheableKVStore, h idm.Handler, tx idm.Tx) (*idm.DeliverResult, error) {
	cache := db.CacheWrap()
	res, err := h.Deliver(ctx, cache, tx)
	if err != nil {
		cache.Discard()
		return nil, err
	}
	if err := cache.Write(); err != nil {
		return nil, errors.Wrap(err, "write tx changes")
	}
	if res == nil {
		res = &idm.DeliverResult{}
	}
	return res, nil
}

// checkAtomic is the CheckTx counterpart of deliverAtomic.
func checkAtomic(ctx idm.Context, db idm.CacheableKVStore, h idm.Handler, tx idm.Tx) (*idm.CheckResult, error) {
	cache := db.CacheWrap()
	res, err := h.Check(ctx, cache, tx)
	if err != nil {
		cache.Discard()
		return nil, err
	}
	if err := cache.Write(); err != nil {
		return nil, errors.Wrap(err, "write tx changes")
	}
	if res == nil {
		res = &idm.CheckResult{}
	}
	return res, nil
}
