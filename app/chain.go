package app

import (
	"context"
	"reflect"

	"github.com/iov-one/htlc"
)

// Decorators is an ordered list of decorators waiting for the handler
// they wrap. The first decorator runs first.
//
//	app.ChainDecorators(
//	  app.NewLogging(),
//	  app.NewRecovery(),
//	  sigs.NewDecorator(),
//	).WithHandler(router)
type Decorators []htlc.Decorator

// ChainDecorators collects the decorators, skipping nil entries so that
// optional decorators can be passed unconditionally.
func ChainDecorators(ds ...htlc.Decorator) Decorators {
	var chain Decorators
	for _, d := range ds {
		if isNil(d) {
			continue
		}
		chain = append(chain, d)
	}
	return chain
}

func isNil(d htlc.Decorator) bool {
	if d == nil {
		return true
	}
	v := reflect.ValueOf(d)
	return v.Kind() == reflect.Ptr && v.IsNil()
}

// WithHandler closes the chain with h.
func (ds Decorators) WithHandler(h htlc.Handler) htlc.Handler {
	for i := len(ds) - 1; i >= 0; i-- {
		h = layer{decorator: ds[i], next: h}
	}
	return h
}

// layer runs one decorator in front of the rest of the stack.
type layer struct {
	decorator htlc.Decorator
	next      htlc.Handler
}

var _ htlc.Handler = layer{}

func (l layer) Check(ctx context.Context, db htlc.KVStore, tx htlc.Tx) (*htlc.CheckResult, error) {
	return l.decorator.Check(ctx, db, tx, l.next)
}

func (l layer) Deliver(ctx context.Context, db htlc.KVStore, tx htlc.Tx) (*htlc.DeliverResult, error) {
	return l.decorator.Deliver(ctx, db, tx, l.next)
}
