package app

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/iov-one/htlc"
	"github.com/iov-one/htlc/errors"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

// StoreApp implements the ABCI calls that do not run transactions: chain
// setup, block boundaries, commits and queries. BaseApp embeds it.
//
// A failure in a call that takes no user input (Info, InitChain, Commit)
// leaves the node in an unknown state, so those calls panic.
type StoreApp struct {
	name        string
	logger      log.Logger
	state       *ledger
	initializer htlc.Initializer
	queryRouter htlc.QueryRouter

	// baseContext lives as long as the app and carries the chain id once
	// known. blockContext adds the height and time of the current block.
	baseContext  context.Context
	blockContext context.Context
}

// NewStoreApp opens the latest version of kv. It panics when the store
// cannot be loaded.
func NewStoreApp(name string, kv htlc.CommitKVStore, queries htlc.QueryRouter, ctx context.Context) *StoreApp {
	state, err := openLedger(kv)
	if err != nil {
		panic(err)
	}
	chainID, err := loadChainID(state.deliver)
	if err != nil {
		panic(err)
	}
	if chainID != "" {
		ctx = htlc.WithChainID(ctx, chainID)
	}
	s := &StoreApp{
		name:         name,
		state:        state,
		queryRouter:  queries,
		baseContext:  ctx,
		blockContext: ctx,
	}
	return s.WithLogger(log.NewNopLogger())
}

// WithInit sets the initializer run by InitChain.
func (s *StoreApp) WithInit(init htlc.Initializer) *StoreApp {
	s.initializer = init
	return s
}

// WithLogger sets the logger of the app and of every handler context.
func (s *StoreApp) WithLogger(logger log.Logger) *StoreApp {
	s.logger = logger
	s.baseContext = htlc.WithLogger(s.baseContext, logger)
	s.blockContext = htlc.WithLogger(s.blockContext, logger)
	return s
}

// GetChainID returns an empty string before InitChain.
func (s *StoreApp) GetChainID() string {
	id, _ := htlc.ChainID(s.baseContext)
	return id
}

func (s *StoreApp) Logger() log.Logger {
	return s.logger
}

// BlockContext is the context handlers of the current block run in.
func (s *StoreApp) BlockContext() context.Context {
	return s.blockContext
}

// DeliverStore is the block cache written on Commit.
func (s *StoreApp) DeliverStore() htlc.CacheableKVStore {
	return s.state.deliver
}

// CheckStore is the mempool cache dropped on Commit.
func (s *StoreApp) CheckStore() htlc.CacheableKVStore {
	return s.state.check
}

// genesis runs once per chain. A restarted node finds the chain id in
// the store and never gets here.
func (s *StoreApp) genesis(chainID string, appState []byte) error {
	if prev := s.GetChainID(); prev != "" {
		return errors.Wrapf(errors.ErrState, "chain %s already initialized", prev)
	}
	if len(appState) == 0 {
		return errors.Wrap(errors.ErrEmpty, "genesis app_state, run init first")
	}
	var opts htlc.Options
	if err := json.Unmarshal(appState, &opts); err != nil {
		return errors.Wrapf(errors.ErrInput, "app_state: %s", err)
	}
	if err := recordChainID(s.state.deliver, chainID); err != nil {
		return err
	}
	s.baseContext = htlc.WithChainID(s.baseContext, chainID)
	s.blockContext = s.baseContext
	if s.initializer == nil {
		return nil
	}
	return s.initializer.FromGenesis(opts, s.state.deliver)
}

func (s *StoreApp) Info(abci.RequestInfo) abci.ResponseInfo {
	head, err := s.state.head()
	if err != nil {
		panic(err)
	}
	s.logger.Info("synced", "height", head.Version, "hash", fmt.Sprintf("%X", head.Hash))
	return abci.ResponseInfo{
		Data:             s.name,
		Version:          htlc.Version(),
		LastBlockHeight:  head.Version,
		LastBlockAppHash: head.Hash,
	}
}

func (s *StoreApp) SetOption(abci.RequestSetOption) abci.ResponseSetOption {
	return abci.ResponseSetOption{Log: "not supported"}
}

func (s *StoreApp) InitChain(req abci.RequestInitChain) abci.ResponseInitChain {
	if err := s.genesis(req.ChainId, req.AppStateBytes); err != nil {
		panic(err)
	}
	s.logger.Info("genesis loaded", "chain", req.ChainId)
	return abci.ResponseInitChain{}
}

// BeginBlock sets the height and time of the block. The header time is
// the only clock handlers see.
func (s *StoreApp) BeginBlock(req abci.RequestBeginBlock) abci.ResponseBeginBlock {
	ctx := htlc.WithHeight(s.baseContext, req.Header.GetHeight())
	s.blockContext = htlc.WithBlockTime(ctx, req.Header.GetTime())
	return abci.ResponseBeginBlock{}
}

func (s *StoreApp) EndBlock(abci.RequestEndBlock) abci.ResponseEndBlock {
	return abci.ResponseEndBlock{}
}

func (s *StoreApp) Commit() abci.ResponseCommit {
	id, err := s.state.commit()
	if err != nil {
		panic(err)
	}
	s.logger.Debug("committed", "height", id.Version, "hash", fmt.Sprintf("%X", id.Hash))
	return abci.ResponseCommit{Data: id.Hash}
}

/*
Query reads the last committed state.

The path selects the handler, for example "/escrows" or "/balances". A
"?prefix" suffix turns the key lookup into a prefix scan. Key and Value of
the response are ResultSets of the same length, one entry per model.
*/
func (s *StoreApp) Query(req abci.RequestQuery) abci.ResponseQuery {
	path, mod := req.Path, ""
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path, mod = path[:i], path[i+1:]
	}
	h := s.queryRouter.Handler(path)
	if h == nil {
		return queryError(errors.Wrapf(errors.ErrNotFound, "query path %q", req.Path))
	}

	head, err := s.state.head()
	if err != nil {
		return queryError(err)
	}
	db := s.state.snapshot()
	defer db.Discard()

	models, err := h.Query(db, mod, req.Data)
	if err != nil {
		return queryError(err)
	}
	keys, err := ResultsFromKeys(models).Marshal()
	if err != nil {
		return queryError(err)
	}
	values, err := ResultsFromValues(models).Marshal()
	if err != nil {
		return queryError(err)
	}
	return abci.ResponseQuery{Height: head.Version, Key: keys, Value: values}
}

func queryError(err error) abci.ResponseQuery {
	code, log := errors.ResultInfo(err, false)
	return abci.ResponseQuery{Code: code, Log: log}
}
