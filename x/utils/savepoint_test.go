package utils

import (
	"context"
	"testing"

	"github.com/iov-one/wallet"
	"github.com/iov-one/wallet/errors"
	"github.com/iov-one/wallet/store"
	"github.com/iov-one/wallet/wallettest"
	"github.com/iov-one/wallet/wallettest/assert"
)

// nonCacheable hides the CacheWrap method of the wrapped store.
type nonCacheable struct {
	wallet.KVStore
}

func TestSavepoint(t *testing.T) {
	// always write ok, ov before calling functions
	ok, ov := []byte("demo"), []byte("data")
	// some key, value to try to write
	nk, nv := []byte{1, 2, 3}, []byte{4, 5, 6}

	cases := map[string]struct {
		handler   wallet.Handler
		cacheable bool
		wantErr   *errors.Error
		written   [][]byte
		missing   [][]byte
	}{
		"rollback on error": {
			handler:   &wallettest.Handler{Key: nk, Value: nv, DeliverErr: errors.ErrState},
			cacheable: true,
			wantErr:   errors.ErrState,
			written:   [][]byte{ok},
			missing:   [][]byte{nk},
		},
		"don't rollback when success returned": {
			handler:   &wallettest.Handler{Key: nk, Value: nv},
			cacheable: true,
			written:   [][]byte{ok, nk},
		},
		"store without cache is used directly": {
			handler:   &wallettest.Handler{Key: nk, Value: nv, DeliverErr: errors.ErrState},
			cacheable: false,
			wantErr:   errors.ErrState,
			written:   [][]byte{ok, nk},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			ctx := context.Background()
			kv := store.MemStore()
			assert.Nil(t, kv.Set(ok, ov))

			var db wallet.KVStore = kv
			if !tc.cacheable {
				db = nonCacheable{kv}
			}

			_, err := NewSavepoint().Deliver(ctx, db, &wallettest.Tx{}, tc.handler)
			assert.IsErr(t, tc.wantErr, err)

			for _, k := range tc.written {
				has, err := kv.Has(k)
				assert.Nil(t, err)
				assert.Equal(t, true, has)
			}
			for _, k := range tc.missing {
				has, err := kv.Has(k)
				assert.Nil(t, err)
				assert.Equal(t, false, has)
			}
		})
	}
}
