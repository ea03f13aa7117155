package htlc

import (
	"context"
	"regexp"
	"time"

	"github.com/tendermint/tendermint/libs/log"
)

type ctxKey int

const (
	heightKey ctxKey = iota
	blockTimeKey
	chainIDKey
	loggerKey
)

var (
	// DefaultLogger is returned by GetLogger when the context has none.
	DefaultLogger = log.NewNopLogger()

	// IsValidChainID accepts 6 to 20 letters, digits, "_" or "-".
	IsValidChainID = regexp.MustCompile(`^[a-zA-Z0-9_\-]{6,20}$`).MatchString
)

// WithHeight sets the block height. Setting it twice panics.
func WithHeight(ctx context.Context, height int64) context.Context {
	if _, ok := GetHeight(ctx); ok {
		panic("block height already set")
	}
	return context.WithValue(ctx, heightKey, height)
}

func GetHeight(ctx context.Context) (int64, bool) {
	h, ok := ctx.Value(heightKey).(int64)
	return h, ok
}

// WithBlockTime sets the time of the block header. Handlers read no other
// clock.
func WithBlockTime(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, blockTimeKey, t)
}

// BlockTime returns false when no block time is set or it is zero.
func BlockTime(ctx context.Context) (time.Time, bool) {
	t, ok := ctx.Value(blockTimeKey).(time.Time)
	if !ok || t.IsZero() {
		return time.Time{}, false
	}
	return t, true
}

// WithChainID binds the context to a chain. It panics on an invalid id or
// when the context is already bound.
func WithChainID(ctx context.Context, chainID string) context.Context {
	if _, ok := ChainID(ctx); ok {
		panic("chain id already set")
	}
	if !IsValidChainID(chainID) {
		panic("invalid chain id " + chainID)
	}
	return context.WithValue(ctx, chainIDKey, chainID)
}

func ChainID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(chainIDKey).(string)
	return id, ok
}

func WithLogger(ctx context.Context, logger log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// WithLogInfo adds key value pairs to every later log line of ctx.
func WithLogInfo(ctx context.Context, keyvals ...interface{}) context.Context {
	return WithLogger(ctx, GetLogger(ctx).With(keyvals...))
}

func GetLogger(ctx context.Context) log.Logger {
	if l, ok := ctx.Value(loggerKey).(log.Logger); ok {
		return l
	}
	return DefaultLogger
}
