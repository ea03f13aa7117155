package app

import (
	"github.com/iov-one/htlc"
	"github.com/iov-one/htlc/errors"
)

// ResultSet is the list of keys or values a query returns.
//
// Encoding: compact-u16 count, then each item as compact-u16 length and
// bytes.
type ResultSet struct {
	Results [][]byte
}

// Marshal encodes the set.
func (r *ResultSet) Marshal() ([]byte, error) {
	if len(r.Results) > htlc.MaxShortVec {
		return nil, errors.Wrap(errors.ErrInput, "too many results")
	}
	raw := htlc.AppendShortVec(nil, len(r.Results))
	for i, res := range r.Results {
		if len(res) > htlc.MaxShortVec {
			return nil, errors.Wrapf(errors.ErrInput, "result %d too large", i)
		}
		raw = htlc.AppendShortVec(raw, len(res))
		raw = append(raw, res...)
	}
	return raw, nil
}

// Unmarshal decodes the set.
func (r *ResultSet) Unmarshal(raw []byte) error {
	d := htlc.NewDecoder(raw)
	n := d.ShortVec("result count")
	results := make([][]byte, 0, n)
	for i := 0; i < n && d.Err() == nil; i++ {
		results = append(results, d.ShortVecBytes("result"))
	}
	if err := d.Finish(); err != nil {
		return errors.Wrap(err, "result set")
	}
	r.Results = results
	return nil
}

// ResultsFromKeys returns a ResultSet of all keys
// given a set of models
func ResultsFromKeys(models []htlc.Model) *ResultSet {
	res := make([][]byte, len(models))
	for i, m := range models {
		res[i] = m.Key
	}
	return &ResultSet{Results: res}
}

// ResultsFromValues returns a ResultSet of all values
// given a set of models
func ResultsFromValues(models []htlc.Model) *ResultSet {
	res := make([][]byte, len(models))
	for i, m := range models {
		res[i] = m.Value
	}
	return &ResultSet{Results: res}
}

// JoinResults inverts ResultsFromKeys and ResultsFromValues
// and makes then a consistent whole again
func JoinResults(keys, values *ResultSet) ([]htlc.Model, error) {
	kref, vref := keys.Results, values.Results
	if len(kref) != len(vref) {
		return nil, errors.Wrap(errors.ErrInput, "mismatched result set size")
	}
	mods := make([]htlc.Model, len(kref))
	for i := range mods {
		mods[i] = htlc.Model{
			Key:   kref[i],
			Value: vref[i],
		}
	}
	return mods, nil
}
