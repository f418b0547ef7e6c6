package wallettest

import "github.com/iov-one/wallet"

// Handler is a mock implementation of the wallet.Handler interface.
//
// Optionally Key and Value can be set to make the handler write a single
// entry into the store before returning.
type Handler struct {
	deliverCall   int
	DeliverResult wallet.DeliverResult
	DeliverErr    error

	Key   []byte
	Value []byte
}

var _ wallet.Handler = (*Handler)(nil)

func (h *Handler) Deliver(ctx wallet.Context, db wallet.KVStore, tx wallet.Tx) (*wallet.DeliverResult, error) {
	h.deliverCall++
	if h.Key != nil {
		if err := db.Set(h.Key, h.Value); err != nil {
			return nil, err
		}
	}
	res := h.DeliverResult
	return &res, h.DeliverErr
}

func (h *Handler) DeliverCallCount() int {
	return h.deliverCall
}
