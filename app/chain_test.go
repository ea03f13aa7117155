package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/iov-one/htlc"
	"github.com/iov-one/htlc/errors"
	"github.com/iov-one/htlc/htlctest"
	"github.com/iov-one/htlc/store"
)

func TestChain(t *testing.T) {
	c1 := &htlctest.Decorator{}
	c2 := &htlctest.Decorator{}
	c3 := &htlctest.Decorator{}
	h := &htlctest.Handler{}

	var nilDecorator *htlctest.Decorator
	stack := ChainDecorators(
		c1,
		NewLogging(),
		NewRecovery(),
		nilDecorator,
		c2,
		panicAtHeight(6),
		c3,
	).WithHandler(h)

	bg := context.Background()
	db := store.MemStore()

	// make some calls, make sure it is fine
	_, err := stack.Check(htlc.WithHeight(bg, 4), db, nil)
	assert.NoError(t, err)
	_, err = stack.Deliver(htlc.WithHeight(bg, 4), db, nil)
	assert.NoError(t, err)

	assert.Equal(t, 1, c1.CheckCallCount())
	assert.Equal(t, 1, c2.DeliverCallCount())
	assert.Equal(t, 1, c3.DeliverCallCount())
	assert.Equal(t, 2, h.CallCount())

	// now, let's trigger a panic
	ctx := htlc.WithHeight(bg, 8)
	_, err = stack.Check(ctx, db, nil)
	assert.True(t, errors.ErrPanic.Is(err))
	_, err = stack.Deliver(ctx, db, nil)
	assert.True(t, errors.ErrPanic.Is(err))

	assert.Equal(t, 2, c1.CheckCallCount())
	assert.Equal(t, 2, c2.CheckCallCount())
	// the panic happens before c3 is reached
	assert.Equal(t, 1, c3.CheckCallCount())
	assert.Equal(t, 2, h.CallCount())
}

// panicAtHeight panics for all blocks from the given height on.
type panicAtHeight int64

func (p panicAtHeight) maybePanic(ctx context.Context) {
	if h, _ := htlc.GetHeight(ctx); h >= int64(p) {
		panic("too high")
	}
}

func (p panicAtHeight) Check(ctx context.Context, db htlc.KVStore, tx htlc.Tx, next htlc.Checker) (*htlc.CheckResult, error) {
	p.maybePanic(ctx)
	return next.Check(ctx, db, tx)
}

func (p panicAtHeight) Deliver(ctx context.Context, db htlc.KVStore, tx htlc.Tx, next htlc.Deliverer) (*htlc.DeliverResult, error) {
	p.maybePanic(ctx)
	return next.Deliver(ctx, db, tx)
}
