package htlc

import (
	"fmt"

	"github.com/iov-one/htlc/errors"
)

const (
	// KeyQueryMod looks up a single key.
	KeyQueryMod = ""
	// PrefixQueryMod returns every item under the key prefix.
	PrefixQueryMod = "prefix"
)

// Model is one stored entry returned by a query.
type Model struct {
	Key   []byte
	Value []byte
}

func Pair(key, value []byte) Model {
	return Model{Key: key, Value: value}
}

// QueryHandler answers the queries sent to one path. mod is the text
// after "?" in the path and selects between a key lookup and a prefix
// scan.
type QueryHandler interface {
	Query(db ReadOnlyKVStore, mod string, data []byte) ([]Model, error)
}

// QueryRegister adds the query paths of one extension.
type QueryRegister func(QueryRouter)

// QueryRouter maps a path such as "/escrows" to its handler.
type QueryRouter struct {
	routes map[string]QueryHandler
}

func NewQueryRouter() QueryRouter {
	return QueryRouter{routes: map[string]QueryHandler{}}
}

func (r QueryRouter) RegisterAll(regs ...QueryRegister) {
	for _, reg := range regs {
		reg(r)
	}
}

// Register panics when path already has a handler.
func (r QueryRouter) Register(path string, h QueryHandler) {
	if _, dup := r.routes[path]; dup {
		panic(fmt.Sprintf("query path %q registered twice", path))
	}
	r.routes[path] = h
}

// Handler returns nil for an unknown path.
func (r QueryRouter) Handler(path string) QueryHandler {
	return r.routes[path]
}

// PrefixQuery collects every item in the store whose key starts with the
// prefix.
func PrefixQuery(db ReadOnlyKVStore, prefix []byte) ([]Model, error) {
	iter, err := db.Iterator(prefix, PrefixEnd(prefix))
	if err != nil {
		return nil, err
	}
	defer iter.Release()

	var res []Model
	for {
		key, value, err := iter.Next()
		if errors.ErrIteratorDone.Is(err) {
			return res, nil
		}
		if err != nil {
			return nil, err
		}
		res = append(res, Pair(key, value))
	}
}

// PrefixEnd returns the smallest key that is greater than every key with
// the given prefix, or nil if there is none.
func PrefixEnd(prefix []byte) []byte {
	end := append([]byte(nil), prefix...)
	for i := len(end) - 1; i >= 0; i-- {
		if end[i] < 0xff {
			end[i]++
			return end[:i+1]
		}
	}
	return nil
}
