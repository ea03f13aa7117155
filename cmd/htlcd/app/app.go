/*
Package htlcd links together all the various components
to construct the swap node.
*/
package htlcd

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/iov-one/htlc"
	"github.com/iov-one/htlc/app"
	"github.com/iov-one/htlc/errors"
	"github.com/iov-one/htlc/store/iavl"
	"github.com/iov-one/htlc/x"
	"github.com/iov-one/htlc/x/aswap"
	"github.com/iov-one/htlc/x/bank"
	"github.com/iov-one/htlc/x/sigs"
	"github.com/tendermint/tendermint/libs/log"
)

// InstructionNames labels the swap instructions in metrics.
var InstructionNames = map[htlc.InstructionTag]string{
	aswap.TagInitiate: "initiate",
	aswap.TagRedeem:   "redeem",
	aswap.TagRefund:   "refund",
}

// Authenticator returns the typical authentication,
// just using public key signatures
func Authenticator() x.Authenticator {
	return sigs.Authenticate{}
}

// Chain returns a chain of decorators, to handle logging, recovery and
// authentication.
func Chain() app.Decorators {
	return app.ChainDecorators(
		app.NewLogging(),
		app.NewRecovery(),
		sigs.NewDecorator(),
	)
}

// Router returns a router dispatching the instructions of the swap
// program.
func Router(programID htlc.Pubkey, authFn x.Authenticator) *app.Router {
	r := app.NewRouter(programID)
	aswap.RegisterRoutes(r, authFn, bank.NewController())
	return r
}

// QueryRouter returns a default query router,
// allowing access to "/escrows" and "/balances"
func QueryRouter() htlc.QueryRouter {
	r := htlc.NewQueryRouter()
	r.RegisterAll(
		aswap.RegisterQuery,
		bank.RegisterQuery,
	)
	return r
}

// Stack wires up a standard router with a standard decorator
// chain. This can be passed into BaseApp.
func Stack(programID htlc.Pubkey) htlc.Handler {
	return Chain().WithHandler(Router(programID, Authenticator()))
}

// Initializers load the genesis balances and configuration.
func Initializers() htlc.Initializer {
	return htlc.MultiInitializer{
		bank.NewInitializer(bank.NewController()),
		aswap.Initializer{},
	}
}

// Application constructs a basic ABCI application with
// the given arguments.
func Application(name string, programID htlc.Pubkey, kv htlc.CommitKVStore,
	metrics *app.Metrics, logger log.Logger, debug bool) app.BaseApp {

	store := app.NewStoreApp(name, kv, QueryRouter(), context.Background()).
		WithInit(Initializers()).
		WithLogger(logger)
	return app.NewBaseApp(store, app.DecodeTx, Stack(programID), metrics, debug)
}

// CommitKVStore opens the iavl store kept in the goleveldb directory
// dbPath. An empty path gives an in-memory store.
func CommitKVStore(dbPath string) (htlc.CommitKVStore, error) {
	if dbPath == "" {
		return iavl.MockCommitStore(), nil
	}
	abs, err := filepath.Abs(dbPath)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "database path %q: %s", dbPath, err)
	}
	// goleveldb appends ".db" to the name itself
	abs = strings.TrimSuffix(abs, ".db")
	return iavl.NewCommitStore(filepath.Dir(abs), filepath.Base(abs)), nil
}
