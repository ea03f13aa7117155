package bank

import (
	"github.com/iov-one/htlc"
	"github.com/iov-one/htlc/errors"
)

// RegisterQuery will register the balances as "/balances"
func RegisterQuery(qr htlc.QueryRouter) {
	qr.Register("/balances", QueryHandler{})
}

// QueryHandler serves balances. The key query takes mint‖owner (64 bytes)
// and the prefix query takes a mint, or a mint‖owner prefix.
type QueryHandler struct{}

var _ htlc.QueryHandler = QueryHandler{}

// Query implements htlc.QueryHandler.
func (QueryHandler) Query(db htlc.ReadOnlyKVStore, mod string, data []byte) ([]htlc.Model, error) {
	key := append([]byte(balancePrefix), data...)
	switch mod {
	case htlc.KeyQueryMod:
		if len(data) != 2*htlc.PubkeyLength {
			return nil, errors.Wrapf(errors.ErrInput, "want mint and owner, got %d bytes", len(data))
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
