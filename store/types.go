package store

import "github.com/iov-one/yieldvote"

// Move references for all storage types into this package
// for shorter names everywhere

type ReadOnlyKVStore = yieldvote.ReadOnlyKVStore
type SetDeleter = yieldvote.SetDeleter
type KVStore = yieldvote.KVStore
type Batch = yieldvote.Batch
type CacheableKVStore = yieldvote.CacheableKVStore
type KVCacheWrap = yieldvote.KVCacheWrap
