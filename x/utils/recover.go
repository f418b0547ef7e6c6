package utils

import (
	"github.com/iov-one/wallet"
	"github.com/iov-one/wallet/errors"
)

// Recovery is a decorator to recover from panics in transactions,
// so we can log them as errors
type Recovery struct{}

var _ wallet.Decorator = Recovery{}

// NewRecovery creates a Recovery decorator
func NewRecovery() Recovery {
	return Recovery{}
}

// Deliver turns panics into normal errors
func (r Recovery) Deliver(ctx wallet.Context, store wallet.KVStore, tx wallet.Tx, next wallet.Handler) (_ *wallet.DeliverResult, err error) {
	defer errors.Recover(&err)
	return next.Deliver(ctx, store, tx)
}
