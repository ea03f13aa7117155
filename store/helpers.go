package store

import (
	"github.com/iov-one/htlc/errors"
)

// sliceIterator walks a prepared list of models.
type sliceIterator struct {
	models []Model
}

var _ Iterator = (*sliceIterator)(nil)

// IterateModels returns an iterator yielding models in slice order.
func IterateModels(models []Model) Iterator {
	return newSliceIterator(models)
}

func newSliceIterator(models []Model) *sliceIterator {
	return &sliceIterator{models: models}
}

func (s *sliceIterator) Next() ([]byte, []byte, error) {
	if len(s.models) == 0 {
		return nil, nil, errors.ErrIteratorDone
	}
	m := s.models[0]
	s.models = s.models[1:]
	return m.Key, m.Value, nil
}

func (s *sliceIterator) Release() {
	s.models = nil
}

// nullStore is the bottom layer of a memory store. It holds nothing and
// discards writes.
type nullStore struct{}

var _ KVStore = nullStore{}

func (nullStore) Get([]byte) ([]byte, error) { return nil, nil }
func (nullStore) Has([]byte) (bool, error)   { return false, nil }
func (nullStore) Set([]byte, []byte) error   { return nil }
func (nullStore) Delete([]byte) error        { return nil }
func (n nullStore) NewBatch() Batch          { return newReplayBatch(n) }
func (nullStore) Iterator(_, _ []byte) (Iterator, error) {
	return newSliceIterator(nil), nil
}
func (nullStore) ReverseIterator(_, _ []byte) (Iterator, error) {
	return newSliceIterator(nil), nil
}

// Op is a single buffered write. A nil Value marks a delete.
type Op struct {
	Key   []byte
	Value []byte
}

// SetOp buffers a write of value under key.
func SetOp(key, value []byte) Op {
	if value == nil {
		value = []byte{}
	}
	return Op{Key: key, Value: value}
}

// DelOp buffers a removal of key.
func DelOp(key []byte) Op {
	return Op{Key: key}
}

// Apply performs the operation on out.
func (o Op) Apply(out SetDeleter) error {
	if o.Value == nil {
		return out.Delete(o.Key)
	}
	return out.Set(o.Key, o.Value)
}

// replayBatch records operations and replays them in order on Write. It
// gives no atomicity, so it only backs memory caches.
type replayBatch struct {
	out SetDeleter
	ops []Op
}

var _ Batch = (*replayBatch)(nil)

// NewReplayBatch returns a batch that replays its operations on out when
// written. It gives no atomicity.
func NewReplayBatch(out SetDeleter) Batch {
	return newReplayBatch(out)
}

func newReplayBatch(out SetDeleter) *replayBatch {
	return &replayBatch{out: out}
}

func (b *replayBatch) Set(key, value []byte) error {
	b.ops = append(b.ops, SetOp(key, value))
	return nil
}

func (b *replayBatch) Delete(key []byte) error {
	b.ops = append(b.ops, DelOp(key))
	return nil
}

func (b *replayBatch) reset() {
	b.ops = nil
}

func (b *replayBatch) Write() error {
	for i, op := range b.ops {
		if err := op.Apply(b.out); err != nil {
			b.ops = b.ops[i:]
			return err
		}
	}
	b.ops = nil
	return nil
}
