//nolint
package store

import "github.com/iov-one/wallet"

// Move references for all storage types into this package
// for shorter names everywhere

type ReadOnlyKVStore = wallet.ReadOnlyKVStore
type SetDeleter = wallet.SetDeleter
type KVStore = wallet.KVStore
type Batch = wallet.Batch
type Iterator = wallet.Iterator
type CacheableKVStore = wallet.CacheableKVStore
type KVCacheWrap = wallet.KVCacheWrap
type CommitKVStore = wallet.CommitKVStore
type CommitID = wallet.CommitID
