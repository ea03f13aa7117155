package htlc

import (
	"encoding/json"
	"testing"

	"github.com/iov-one/htlc/errors"
	"github.com/iov-one/htlc/htlctest/assert"
)

func TestReadOptions(t *testing.T) {
	cases := map[string]struct {
		json    string
		wantErr *errors.Error
		exp     []struct{ Key int }
	}{
		"happy path": {
			json: `{"list": [{"key": 1}, {"key": 2}]}`,
			exp:  []struct{ Key int }{{Key: 1}, {Key: 2}},
		},
		"missing key is a noop": {
			json: `{"other": 7}`,
		},
		"wrong type": {
			json:    `{"list": {"key": 1}}`,
			wantErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var opts Options
			assert.Nil(t, json.Unmarshal([]byte(tc.json), &opts))

			var got []struct{ Key int }
			err := opts.ReadOptions("list", &got)
			assert.IsErr(t, tc.wantErr, err)
			if tc.wantErr == nil {
				assert.Equal(t, tc.exp, got)
			}
		})
	}
}

type recordingInit struct {
	name  string
	calls *[]string
	err   error
}

func (r recordingInit) FromGenesis(Options, KVStore) error {
	*r.calls = append(*r.calls, r.name)
	return r.err
}

func TestMultiInitializer(t *testing.T) {
	var calls []string
	failure := errors.Wrap(errors.ErrState, "broken")
	m := MultiInitializer{
		recordingInit{name: "a", calls: &calls},
		recordingInit{name: "b", calls: &calls, err: failure},
		recordingInit{name: "c", calls: &calls},
	}

	err := m.FromGenesis(Options{}, nil)
	assert.IsErr(t, errors.ErrState, err)
	assert.Equal(t, []string{"a", "b"}, calls)
}
