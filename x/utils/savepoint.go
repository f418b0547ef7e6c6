package utils

import (
	"github.com/iov-one/wallet"
	"github.com/iov-one/wallet/errors"
)

// Savepoint will isolate all data inside of the call,
// and commit/rollback to savepoint based on if error
type Savepoint struct{}

var _ wallet.Decorator = Savepoint{}

// NewSavepoint creates a Savepoint decorator
func NewSavepoint() Savepoint {
	return Savepoint{}
}

// Deliver sets a checkpoint if the store supports it. All changes made by
// the wrapped handler are discarded when it returns an error.
func (s Savepoint) Deliver(ctx wallet.Context, store wallet.KVStore, tx wallet.Tx, next wallet.Handler) (*wallet.DeliverResult, error) {
	cstore, ok := store.(wallet.CacheableKVStore)
	if !ok {
		return next.Deliver(ctx, store, tx)
	}

	cache := cstore.CacheWrap()
	res, err := next.Deliver(ctx, cache, tx)
	if err != nil {
		cache.Discard()
		return nil, err
	}
	if err := cache.Write(); err != nil {
		return nil, errors.Wrap(err, "writing savepoint")
	}
	return res, nil
}
