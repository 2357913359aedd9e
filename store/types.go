package store

import "github.com/iov-one/idm"

// Move references for all storage types into this package
// for shorter names everywhere

type ReadOnlyKVStore = idm.ReadOnlyKVStore
type SetDeleter = idm.SetDeleter
type KVStore = idm.KVStore
type Batch = idm.Batch
type Iterator = idm.Iterator
type CacheableKVStore = idm.CacheableKVStore
type KVCacheWrap = idm.KVCacheWrap
type CommitKVStore = idm.CommitKVStore
type CommitID = idm.CommitID
type Model = idm.Model

// Pair constructs a model from a key-value pair
var Pair = idm.Pair
