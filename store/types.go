package store

import "github.com/iov-one/htlc"

// Move references for all storage types into this package
// for shorter names everywhere

type (
	ReadOnlyKVStore  = htlc.ReadOnlyKVStore
	SetDeleter       = htlc.SetDeleter
	KVStore          = htlc.KVStore
	Batch            = htlc.Batch
	Iterator         = htlc.Iterator
	CacheableKVStore = htlc.CacheableKVStore
	KVCacheWrap      = htlc.KVCacheWrap
	CommitKVStore    = htlc.CommitKVStore
	CommitID         = htlc.CommitID
	Model            = htlc.Model
)
