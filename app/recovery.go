package app

import (
	"context"

	"github.com/iov-one/htlc"
	"github.com/iov-one/htlc/errors"
)

// Recovery converts a panic below it into an ErrPanic result, so that a
// broken transaction fails alone instead of halting the node.
type Recovery struct{}

var _ htlc.Decorator = Recovery{}

func NewRecovery() Recovery {
	return Recovery{}
}

func (Recovery) Check(ctx context.Context, db htlc.KVStore, tx htlc.Tx, next htlc.Checker) (res *htlc.CheckResult, err error) {
	defer errors.Recover(&err)
	return next.Check(ctx, db, tx)
}

func (Recovery) Deliver(ctx context.Context, db htlc.KVStore, tx htlc.Tx, next htlc.Deliverer) (res *htlc.DeliverResult, err error) {
	defer errors.Recover(&err)
	return next.Deliver(ctx, db, tx)
}

// Logging reports each delivered transaction. Rejections are logged at
// debug level as they are caused by users.
type Logging struct{}

var _ htlc.Decorator = Logging{}

func NewLogging() Logging {
	return Logging{}
}

func (Logging) Check(ctx context.Context, db htlc.KVStore, tx htlc.Tx, next htlc.Checker) (*htlc.CheckResult, error) {
	return next.Check(ctx, db, tx)
}

func (Logging) Deliver(ctx context.Context, db htlc.KVStore, tx htlc.Tx, next htlc.Deliverer) (*htlc.DeliverResult, error) {
	res, err := next.Deliver(ctx, db, tx)
	switch log := htlc.GetLogger(ctx); {
	case err != nil:
		log.Debug("tx rejected", "code", errors.Code(err), "err", err)
	case res != nil:
		log.Info("tx delivered", "log", res.Log)
	}
	return res, err
}
