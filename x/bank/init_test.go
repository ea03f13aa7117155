package bank

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/iov-one/htlc"
	"github.com/iov-one/htlc/errors"
	"github.com/iov-one/htlc/htlctest"
	"github.com/iov-one/htlc/htlctest/assert"
	"github.com/iov-one/htlc/store"
)

func TestGenesis(t *testing.T) {
	alice := htlctest.RandomPubkey()
	token := htlctest.RandomPubkey()

	cases := map[string]struct {
		genesis    string
		wantErr    *errors.Error
		wantNative uint64
		wantToken  uint64
	}{
		"no bank section": {
			genesis: `{}`,
		},
		"native and token balances": {
			genesis: fmt.Sprintf(`{"bank": [
				{"owner": %q, "amount": 500},
				{"owner": %q, "mint": %q, "amount": 20}
			]}`, alice, alice, token),
			wantNative: 500,
			wantToken:  20,
		},
		"missing owner": {
			genesis: `{"bank": [{"amount": 5}]}`,
			wantErr: errors.ErrEmpty,
		},
		"zero amount": {
			genesis: fmt.Sprintf(`{"bank": [{"owner": %q, "amount": 0}]}`, alice),
			wantErr: errors.ErrInvalidAmount,
		},
		"bad owner key": {
			genesis: `{"bank": [{"owner": "not-a-key", "amount": 5}]}`,
			wantErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var opts htlc.Options
			if err := json.Unmarshal([]byte(tc.genesis), &opts); err != nil {
				t.Fatalf("cannot unmarshal genesis: %s", err)
			}
			db := store.MemStore()
			ctrl := NewController()
			assert.IsErr(t, tc.wantErr, NewInitializer(ctrl).FromGenesis(opts, db))
			if tc.wantErr != nil {
				return
			}
			native, err := ctrl.Balance(db, NativeMint, alice)
			assert.Nil(t, err)
			assert.Equal(t, tc.wantNative, native)
			tokens, err := ctrl.Balance(db, token, alice)
			assert.Nil(t, err)
			assert.Equal(t, tc.wantToken, tokens)
		})
	}
}
