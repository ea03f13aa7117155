package store

import (
	"bytes"

	"github.com/google/btree"
)

const (
	btreeDegree  = 2
	freeListSize = btree.DefaultFreeListSize
)

// BTreeCacheable gives any KVStore a btree backed CacheWrap.
type BTreeCacheable struct {
	KVStore
}

var _ CacheableKVStore = BTreeCacheable{}

func (b BTreeCacheable) CacheWrap() KVCacheWrap {
	return NewBTreeCacheWrap(b.KVStore, b.NewBatch(), nil)
}

// MemStore returns an empty in-memory store. Nothing is persisted.
func MemStore() CacheableKVStore {
	var n nullStore
	return NewBTreeCacheWrap(n, n.NewBatch(), nil)
}

// entry is one cached write. A deleted entry hides the key in the store
// below.
type entry struct {
	key     []byte
	value   []byte
	deleted bool
}

func (e entry) Less(than btree.Item) bool {
	return bytes.Compare(e.key, than.(entry).key) < 0
}

// BTreeCacheWrap buffers writes over a read only store. Reads see the
// buffered writes first. Write replays them on the store through batch.
type BTreeCacheWrap struct {
	tree  *btree.BTree
	free  *btree.FreeList
	back  ReadOnlyKVStore
	batch Batch
}

var _ KVCacheWrap = BTreeCacheWrap{}

// NewBTreeCacheWrap caches kv. All writes must go through batch. A nil
// free list allocates a new one, passing the parent list shares nodes
// between nested caches.
func NewBTreeCacheWrap(kv ReadOnlyKVStore, batch Batch, free *btree.FreeList) BTreeCacheWrap {
	if free == nil {
		free = btree.NewFreeList(freeListSize)
	}
	return BTreeCacheWrap{
		tree:  btree.NewWithFreeList(btreeDegree, free),
		free:  free,
		back:  kv,
		batch: batch,
	}
}

func (b BTreeCacheWrap) CacheWrap() KVCacheWrap {
	return NewBTreeCacheWrap(b, b.NewBatch(), b.free)
}

// NewBatch returns a batch replaying its writes on this cache.
func (b BTreeCacheWrap) NewBatch() Batch {
	return newReplayBatch(b)
}

// Write flushes the buffered writes to the parent and empties the cache.
func (b BTreeCacheWrap) Write() error {
	err := b.batch.Write()
	b.Discard()
	return err
}

// Discard drops all buffered writes.
func (b BTreeCacheWrap) Discard() {
	for b.tree.DeleteMin() != nil {
	}
	if rb, ok := b.batch.(*replayBatch); ok {
		rb.reset()
	}
}

func (b BTreeCacheWrap) Set(key, value []byte) error {
	b.tree.ReplaceOrInsert(entry{key: key, value: value})
	return b.batch.Set(key, value)
}

func (b BTreeCacheWrap) Delete(key []byte) error {
	b.tree.ReplaceOrInsert(entry{key: key, deleted: true})
	return b.batch.Delete(key)
}

func (b BTreeCacheWrap) lookup(key []byte) (entry, bool) {
	found := b.tree.Get(entry{key: key})
	if found == nil {
		return entry{}, false
	}
	return found.(entry), true
}

func (b BTreeCacheWrap) Get(key []byte) ([]byte, error) {
	e, ok := b.lookup(key)
	if !ok {
		return b.back.Get(key)
	}
	if e.deleted {
		return nil, nil
	}
	return e.value, nil
}

func (b BTreeCacheWrap) Has(key []byte) (bool, error) {
	e, ok := b.lookup(key)
	if !ok {
		return b.back.Has(key)
	}
	return !e.deleted, nil
}

// Iterator walks start <= key < end in ascending order over the cache and
// the parent together.
func (b BTreeCacheWrap) Iterator(start, end []byte) (Iterator, error) {
	parent, err := b.back.Iterator(start, end)
	if err != nil {
		return nil, err
	}
	return newMergeIterator(b.entries(start, end), parent, true), nil
}

// ReverseIterator is Iterator in descending order.
func (b BTreeCacheWrap) ReverseIterator(start, end []byte) (Iterator, error) {
	parent, err := b.back.ReverseIterator(start, end)
	if err != nil {
		return nil, err
	}
	es := b.entries(start, end)
	for i, j := 0, len(es)-1; i < j; i, j = i+1, j-1 {
		es[i], es[j] = es[j], es[i]
	}
	return newMergeIterator(es, parent, false), nil
}

// entries returns the cached entries in [start, end), ascending. Nil
// bounds are open.
func (b BTreeCacheWrap) entries(start, end []byte) []entry {
	var es []entry
	collect := func(i btree.Item) bool {
		es = append(es, i.(entry))
		return true
	}
	switch {
	case start == nil && end == nil:
		b.tree.Ascend(collect)
	case start == nil:
		b.tree.AscendLessThan(entry{key: end}, collect)
	case end == nil:
		b.tree.AscendGreaterOrEqual(entry{key: start}, collect)
	default:
		b.tree.AscendRange(entry{key: start}, entry{key: end}, collect)
	}
	return es
}
