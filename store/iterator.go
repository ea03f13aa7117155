package store

import (
	"bytes"

	"github.com/iov-one/htlc/errors"
)

// mergeIterator yields the cached entries of a cache wrap interleaved
// with the items of its parent. On equal keys the cached entry wins and a
// deleted entry hides the parent item.
type mergeIterator struct {
	cached    []entry
	parent    Iterator
	ascending bool

	head       *Model
	parentDone bool
}

var _ Iterator = (*mergeIterator)(nil)

func newMergeIterator(cached []entry, parent Iterator, ascending bool) *mergeIterator {
	return &mergeIterator{cached: cached, parent: parent, ascending: ascending}
}

func (m *mergeIterator) Next() ([]byte, []byte, error) {
	for {
		if err := m.fill(); err != nil {
			return nil, nil, err
		}
		if len(m.cached) == 0 && m.head == nil {
			return nil, nil, errors.ErrIteratorDone
		}

		if len(m.cached) == 0 || (m.head != nil && m.before(m.head.Key, m.cached[0].key)) {
			item := m.head
			m.head = nil
			return item.Key, item.Value, nil
		}

		e := m.cached[0]
		m.cached = m.cached[1:]
		if m.head != nil && bytes.Equal(m.head.Key, e.key) {
			m.head = nil
		}
		if !e.deleted {
			return e.key, e.value, nil
		}
	}
}

// before reports whether a comes first in iteration order.
func (m *mergeIterator) before(a, b []byte) bool {
	c := bytes.Compare(a, b)
	if m.ascending {
		return c < 0
	}
	return c > 0
}

// fill reads the next parent item unless one is waiting.
func (m *mergeIterator) fill() error {
	if m.head != nil || m.parentDone {
		return nil
	}
	key, value, err := m.parent.Next()
	switch {
	case errors.ErrIteratorDone.Is(err):
		m.parentDone = true
		return nil
	case err != nil:
		return err
	}
	m.head = &Model{Key: key, Value: value}
	return nil
}

func (m *mergeIterator) Release() {
	m.parent.Release()
	m.cached = nil
	m.head = nil
}
