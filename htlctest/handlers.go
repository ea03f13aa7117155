package htlctest

import (
	"context"

	"github.com/iov-one/htlc"
)

// calls counts invocations per ABCI phase.
type calls struct {
	check, deliver int
}

func (c *calls) CheckCallCount() int   { return c.check }
func (c *calls) DeliverCallCount() int { return c.deliver }
func (c *calls) CallCount() int        { return c.check + c.deliver }

// Handler is a scripted htlc.Handler. It writes Key and Value to the
// store when Key is set, then fails with CheckErr or DeliverErr or
// returns a copy of the configured result.
type Handler struct {
	calls

	CheckResult   htlc.CheckResult
	CheckErr      error
	DeliverResult htlc.DeliverResult
	DeliverErr    error

	Key, Value []byte
}

var _ htlc.Handler = (*Handler)(nil)

func (h *Handler) Check(_ context.Context, db htlc.KVStore, _ htlc.Tx) (*htlc.CheckResult, error) {
	h.check++
	if err := h.touch(db); err != nil {
		return nil, err
	}
	if h.CheckErr != nil {
		return nil, h.CheckErr
	}
	res := h.CheckResult
	return &res, nil
}

func (h *Handler) Deliver(_ context.Context, db htlc.KVStore, _ htlc.Tx) (*htlc.DeliverResult, error) {
	h.deliver++
	if err := h.touch(db); err != nil {
		return nil, err
	}
	if h.DeliverErr != nil {
		return nil, h.DeliverErr
	}
	res := h.DeliverResult
	return &res, nil
}

func (h *Handler) touch(db htlc.KVStore) error {
	if h.Key == nil {
		return nil
	}
	return db.Set(h.Key, h.Value)
}

// Decorator is a scripted htlc.Decorator. It fails with CheckErr or
// DeliverErr when set and otherwise calls the next handler.
type Decorator struct {
	calls

	CheckErr   error
	DeliverErr error
}

var _ htlc.Decorator = (*Decorator)(nil)

func (d *Decorator) Check(ctx context.Context, db htlc.KVStore, tx htlc.Tx, next htlc.Checker) (*htlc.CheckResult, error) {
	d.check++
	if d.CheckErr != nil {
		return nil, d.CheckErr
	}
	return next.Check(ctx, db, tx)
}

func (d *Decorator) Deliver(ctx context.Context, db htlc.KVStore, tx htlc.Tx, next htlc.Deliverer) (*htlc.DeliverResult, error) {
	d.deliver++
	if d.DeliverErr != nil {
		return nil, d.DeliverErr
	}
	return next.Deliver(ctx, db, tx)
}
