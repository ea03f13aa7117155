package aswap

import (
	"github.com/iov-one/htlc"
	"github.com/iov-one/htlc/errors"
)

// RegisterQuery will register the escrows as "/escrows"
func RegisterQuery(qr htlc.QueryRouter) {
	qr.Register("/escrows", QueryHandler{})
}

// QueryHandler serves escrow records. The key query takes an escrow
// address, the prefix query any prefix of one.
type QueryHandler struct{}

var _ htlc.QueryHandler = QueryHandler{}

// Query implements htlc.QueryHandler.
func (QueryHandler) Query(db htlc.ReadOnlyKVStore, mod string, data []byte) ([]htlc.Model, error) {
	key := append([]byte(escrowPrefix), data...)
	switch mod {
	case htlc.KeyQueryMod:
		if len(data) != htlc.PubkeyLength {
			return nil, errors.Wrapf(errors.ErrInput, "want escrow address, got %d bytes", len(data))
		}
		value, err := db.Get(key)
		if err != nil {
			return nil, err
		}
		if value == nil {
			return nil, nil
		}
		return []htlc.Model{htlc.Pair(key, value)}, nil
	case htlc.PrefixQueryMod:
		return htlc.PrefixQuery(db, key)
	default:
		return nil, errors.Wrapf(errors.ErrInput, "unknown query mod %q", mod)
	}
}
