package wallettest

import "github.com/iov-one/wallet"

// Decorator is a mock implementation of the wallet.Decorator interface.
//
// Set DeliverErr to force error response. If error attribute is not set then
// wrapped handler method is called and its result returned.
// Each method call is counted. Regardless of the method call result the
// counter is incremented.
type Decorator struct {
	deliverCall int
	// DeliverErr if set is returned by the Deliver method before calling
	// the wrapped handler.
	DeliverErr error
}

var _ wallet.Decorator = (*Decorator)(nil)

func (d *Decorator) Deliver(ctx wallet.Context, db wallet.KVStore, tx wallet.Tx, next wallet.Handler) (*wallet.DeliverResult, error) {
	d.deliverCall++

	if d.DeliverErr != nil {
		return &wallet.DeliverResult{}, d.DeliverErr
	}
	return next.Deliver(ctx, db, tx)
}

func (d *Decorator) DeliverCallCount() int {
	return d.deliverCall
}

func Decorate(h wallet.Handler, d wallet.Decorator) wallet.Handler {
	return &decoratedHandler{hn: h, dc: d}
}

type decoratedHandler struct {
	hn wallet.Handler
	dc wallet.Decorator
}

var _ wallet.Handler = (*decoratedHandler)(nil)

func (d *decoratedHandler) Deliver(ctx wallet.Context, db wallet.KVStore, tx wallet.Tx) (*wallet.DeliverResult, error) {
	return d.dc.Deliver(ctx, db, tx, d.hn)
}
