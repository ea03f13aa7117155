package app

import (
	"context"

	"github.com/iov-one/htlc"
	"github.com/iov-one/htlc/errors"
	abci "github.com/tendermint/tendermint/abci/types"
)

// BaseApp adds DeliverTx and CheckTx handlers to the storage and query
// functionality of StoreApp.
//
// Every transaction runs in its own cache of the block store. The cache
// is written only when the handler succeeds, so a failed transaction
// leaves no trace.
type BaseApp struct {
	*StoreApp
	decoder htlc.TxDecoder
	handler htlc.Handler
	metrics *Metrics
	debug   bool
}

var _ abci.Application = BaseApp{}

// NewBaseApp constructs a basic abci application
func NewBaseApp(
	store *StoreApp,
	decoder htlc.TxDecoder,
	handler htlc.Handler,
	metrics *Metrics,
	debug bool,
) BaseApp {
	return BaseApp{
		StoreApp: store,
		decoder:  decoder,
		handler:  handler,
		metrics:  metrics,
		debug:    debug,
	}
}

// DeliverTx - ABCI - dispatches to the handler
func (b BaseApp) DeliverTx(txBytes []byte) abci.ResponseDeliverTx {
	tx, err := b.loadTx(txBytes)
	if err != nil {
		b.metrics.observe(nil, nil, err)
		return htlc.DeliverResponse(nil, err, b.debug)
	}

	ctx := htlc.WithLogInfo(b.BlockContext(), "call", "deliver_tx")
	res, err := b.deliver(ctx, b.DeliverStore(), tx)
	b.metrics.observe(tx, res, err)
	return htlc.DeliverResponse(res, err, b.debug)
}

// CheckTx - ABCI - dispatches to the handler
func (b BaseApp) CheckTx(txBytes []byte) abci.ResponseCheckTx {
	tx, err := b.loadTx(txBytes)
	if err != nil {
		return htlc.CheckResponse(nil, err, b.debug)
	}

	ctx := htlc.WithLogInfo(b.BlockContext(), "call", "check_tx")
	res, err := b.check(ctx, b.CheckStore(), tx)
	return htlc.CheckResponse(res, err, b.debug)
}

// deliver runs the handler in a cache of db and writes it back only on
// success.
func (b BaseApp) deliver(ctx context.Context, db htlc.CacheableKVStore, tx htlc.Tx) (res *htlc.DeliverResult, err error) {
	if err := checkChainID(ctx, tx); err != nil {
		return nil, err
	}
	cache := db.CacheWrap()
	defer func() {
		if err != nil {
			cache.Discard()
		}
	}()
	defer errors.Recover(&err)

	res, err = b.handler.Deliver(ctx, cache, tx)
	if err != nil {
		return nil, err
	}
	if err := cache.Write(); err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return res, nil
}

// check is deliver for the check store. A successful check is kept, so
// that later checks in the same block see its effect.
func (b BaseApp) check(ctx context.Context, db htlc.CacheableKVStore, tx htlc.Tx) (res *htlc.CheckResult, err error) {
	if err := checkChainID(ctx, tx); err != nil {
		return nil, err
	}
	cache := db.CacheWrap()
	defer func() {
		if err != nil {
			cache.Discard()
		}
	}()
	defer errors.Recover(&err)

	res, err = b.handler.Check(ctx, cache, tx)
	if err != nil {
		return nil, err
	}
	if err := cache.Write(); err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return res, nil
}

type chainIDTx interface {
	GetChainID() string
}

// checkChainID rejects transactions signed for another chain.
func checkChainID(ctx context.Context, tx htlc.Tx) error {
	ctid, ok := tx.(chainIDTx)
	if !ok {
		return nil
	}
	chainID, ok := htlc.ChainID(ctx)
	if !ok {
		return errors.Wrap(errors.ErrState, "chain is not initialized")
	}
	if got := ctid.GetChainID(); got != chainID {
		return errors.Wrapf(errors.ErrInput, "tx for chain %q, this is %q", got, chainID)
	}
	return nil
}

// loadTx calls the decoder, and capture any panics
func (b BaseApp) loadTx(txBytes []byte) (tx htlc.Tx, err error) {
	defer errors.Recover(&err)
	tx, err = b.decoder(txBytes)
	return
}
