package app

import (
	"github.com/iov-one/htlc"
	"github.com/iov-one/htlc/errors"
)

// ledger wraps the committed store with one cache per ABCI connection.
// Deliver writes reach the committed store on commit, check writes are
// dropped at the end of every block.
type ledger struct {
	committed htlc.CommitKVStore
	deliver   htlc.KVCacheWrap
	check     htlc.KVCacheWrap
}

func openLedger(kv htlc.CommitKVStore) (*ledger, error) {
	if err := kv.LoadLatestVersion(); err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	l := &ledger{committed: kv}
	l.reset()
	return l, nil
}

func (l *ledger) reset() {
	l.deliver = l.committed.CacheWrap()
	l.check = l.committed.CacheWrap()
}

// head is the version and hash of the last commit.
func (l *ledger) head() (htlc.CommitID, error) {
	return l.committed.LatestVersion()
}

// snapshot is a throwaway view of the last committed state.
func (l *ledger) snapshot() htlc.KVCacheWrap {
	return l.committed.CacheWrap()
}

func (l *ledger) commit() (htlc.CommitID, error) {
	if err := l.deliver.Write(); err != nil {
		return htlc.CommitID{}, err
	}
	l.check.Discard()
	id, err := l.committed.Commit()
	if err != nil {
		return id, err
	}
	l.reset()
	return id, nil
}

// chainIDKey lives outside of every bucket prefix.
var chainIDKey = []byte("_htlc:chain")

func loadChainID(kv htlc.ReadOnlyKVStore) (string, error) {
	raw, err := kv.Get(chainIDKey)
	if err != nil {
		return "", errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return string(raw), nil
}

// recordChainID writes the chain id once. Any later attempt fails.
func recordChainID(kv htlc.KVStore, chainID string) error {
	if !htlc.IsValidChainID(chainID) {
		return errors.Wrapf(errors.ErrInput, "chain id %q", chainID)
	}
	switch ok, err := kv.Has(chainIDKey); {
	case err != nil:
		return errors.Wrap(errors.ErrDatabase, err.Error())
	case ok:
		return errors.Wrap(errors.ErrState, "chain id already set")
	}
	return kv.Set(chainIDKey, []byte(chainID))
}
